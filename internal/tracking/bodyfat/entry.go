package bodyfat

import (
	"time"

	"github.com/fittrackhq/fittrack/internal/tracking/bodycomp"
)

// Entry is one stored body fat estimate, together with the measurements it
// was derived from (always in centimeters).
type Entry struct {
	ID       int          `json:"id"`
	UserID   int          `json:"userId"`
	Sex      bodycomp.Sex `json:"sex"`
	WaistCm  float64      `json:"waistCm"`
	NeckCm   float64      `json:"neckCm"`
	HipCm    float64      `json:"hipCm,omitempty"`
	HeightCm float64      `json:"heightCm"`
	// Percent is the estimate rounded to one decimal
	Percent   float64   `json:"percent"`
	CreatedAt time.Time `json:"createdAt"`
}
