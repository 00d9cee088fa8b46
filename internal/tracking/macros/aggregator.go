package macros

import (
	"math"

	"github.com/fittrackhq/fittrack/internal/tracking/daykey"
)

// Goals are the user's daily targets; a zero value means "no goal set" and
// no percentage is computed for that field.
type Goals struct {
	ProteinGrams float64 `json:"proteinGrams"`
	CarbsGrams   float64 `json:"carbsGrams"`
	FatGrams     float64 `json:"fatGrams"`
	Calories     float64 `json:"calories"`
}

// FieldStats is the per-macro-field aggregate for one day.
type FieldStats struct {
	Total float64 `json:"total"`
	// Min and Max are the error-margin band around Total
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Goal float64 `json:"goal"`
	// Percentage of the goal, unclamped (can exceed 100); 0 when no goal
	Percentage float64 `json:"percentage"`
}

// DayStats is the aggregate for one calendar day. A field pointer is nil
// when no entry of that day supplied the field.
type DayStats struct {
	DayKey            string      `json:"dayKey"`
	Entries           []Entry     `json:"entries"`
	EntryCount        int         `json:"entryCount"`
	AvgErrorMarginPct float64     `json:"avgErrorMarginPct"`
	Protein           *FieldStats `json:"protein,omitempty"`
	Carbs             *FieldStats `json:"carbs,omitempty"`
	Fat               *FieldStats `json:"fat,omitempty"`
	Calories          *FieldStats `json:"calories,omitempty"`
}

// AggregateForDay filters entries down to the given day key and computes the
// per-field day totals and error bands. It returns nil when no entry keys to
// that day: "nothing logged" is a distinct signal from "logged zero".
//
// Each of the four macro fields aggregates independently: a field produces a
// statistic as long as at least one of the day's entries supplies it, summed
// over just the entries that do. The error margin, however, is averaged over
// ALL entries of the day and applied uniformly to every field's band.
func AggregateForDay(entries []Entry, dayKeyWanted string, goals Goals) *DayStats {
	if dayKeyWanted == "" {
		return nil
	}

	var dayEntries []Entry
	for _, e := range entries {
		if daykey.ToDayKey(e.Date) == dayKeyWanted {
			dayEntries = append(dayEntries, e)
		}
	}
	if len(dayEntries) == 0 {
		return nil
	}

	var marginSum float64
	for _, e := range dayEntries {
		m := e.ErrorMarginPct
		if m < 0 || math.IsNaN(m) || math.IsInf(m, 0) {
			m = 0
		}
		marginSum += m
	}
	avgMargin := marginSum / float64(len(dayEntries))

	return &DayStats{
		DayKey:            dayKeyWanted,
		Entries:           dayEntries,
		EntryCount:        len(dayEntries),
		AvgErrorMarginPct: avgMargin,
		Protein: fieldStats(dayEntries, avgMargin, goals.ProteinGrams, func(e Entry) *float64 {
			return e.ProteinGrams
		}),
		Carbs: fieldStats(dayEntries, avgMargin, goals.CarbsGrams, func(e Entry) *float64 {
			return e.CarbsGrams
		}),
		Fat: fieldStats(dayEntries, avgMargin, goals.FatGrams, func(e Entry) *float64 {
			return e.FatGrams
		}),
		Calories: fieldStats(dayEntries, avgMargin, goals.Calories, func(e Entry) *float64 {
			return e.Calories
		}),
	}
}

func fieldStats(entries []Entry, marginPct, goal float64, field func(Entry) *float64) *FieldStats {
	var total float64
	supplied := false
	for _, e := range entries {
		if v := field(e); v != nil {
			total += *v
			supplied = true
		}
	}
	if !supplied {
		return nil
	}

	fs := &FieldStats{
		Total: total,
		Min:   total * (1 - marginPct/100),
		Max:   total * (1 + marginPct/100),
		Goal:  goal,
	}
	if goal > 0 {
		fs.Percentage = total / goal * 100
	}
	return fs
}
