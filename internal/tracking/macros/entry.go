package macros

import "time"

// DefaultErrorMarginPct is applied when an entry is logged without an
// explicit margin.
const DefaultErrorMarginPct = 5

// Entry is one logged food/macro item. The four macro fields are optional
// and independent: an entry is loggable as long as it carries at least one
// of them or a free-text name. Unlike the other record kinds, a macro entry
// has a day key plus a free-form time-of-day string instead of a single
// timestamp.
type Entry struct {
	ID             int      `json:"id"`
	UserID         int      `json:"userId"`
	Name           string   `json:"name"`
	ProteinGrams   *float64 `json:"proteinGrams,omitempty"`
	CarbsGrams     *float64 `json:"carbsGrams,omitempty"`
	FatGrams       *float64 `json:"fatGrams,omitempty"`
	Calories       *float64 `json:"calories,omitempty"`
	ErrorMarginPct float64  `json:"errorMarginPct"`
	// Date is a day key ("YYYY-MM-DD"); TimeOfDay is whatever the user
	// typed ("morning", "14:20", "post workout")
	Date      string    `json:"date"`
	TimeOfDay string    `json:"timeOfDay"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsLoggable reports whether the entry carries enough information to be
// stored: at least one macro value or a name.
func (e Entry) IsLoggable() bool {
	if e.Name != "" {
		return true
	}
	return e.ProteinGrams != nil || e.CarbsGrams != nil || e.FatGrams != nil || e.Calories != nil
}
