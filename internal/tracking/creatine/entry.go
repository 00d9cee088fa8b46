package creatine

import (
	"time"

	"github.com/fittrackhq/fittrack/internal/tracking/daykey"
)

// DefaultGrams is the usual daily maintenance dose, applied when an intake
// is logged without an explicit amount.
const DefaultGrams = 5

type Entry struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Grams     float64   `json:"grams"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
}

// DayKey returns the local calendar day the intake was logged on.
func (e Entry) DayKey() string {
	return daykey.FromTime(e.CreatedAt)
}

// FilterForDay returns the intakes logged on the given day, preserving order.
func FilterForDay(entries []Entry, dayKey string) []Entry {
	if dayKey == "" {
		return nil
	}
	var dayEntries []Entry
	for _, e := range entries {
		if e.DayKey() == dayKey {
			dayEntries = append(dayEntries, e)
		}
	}
	return dayEntries
}

// TotalGrams sums the intake amounts of the given entries.
func TotalGrams(entries []Entry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Grams
	}
	return total
}
