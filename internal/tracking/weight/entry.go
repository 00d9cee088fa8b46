package weight

import "time"

// Entry is one body weight measurement in kilograms.
type Entry struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Kilos     float64   `json:"kilos"`
	CreatedAt time.Time `json:"createdAt"`
}
