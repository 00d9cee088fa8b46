package weight

const (
	DirectionUp     = "up"
	DirectionDown   = "down"
	DirectionStable = "stable"
)

// Trend compares the latest weight measurement against the mean of the
// trailing window of measurements before it.
type Trend struct {
	// Latest minus the window mean, in kilos
	Diff          float64 `json:"diff"`
	PercentChange float64 `json:"percentChange"`
	Direction     string  `json:"direction"`
	WindowDays    int     `json:"windowDays"`
	WindowMean    float64 `json:"windowMean"`
	Latest        float64 `json:"latest"`
}

// ComputeTrend expects history sorted latest first. The trailing window is
// the up-to-windowDays measurements right after the latest one. It returns
// nil when there is nothing to compare against: fewer than two measurements,
// an empty window, or a non-positive window mean (bogus data).
func ComputeTrend(history []Entry, windowDays int) *Trend {
	if len(history) < 2 || windowDays < 1 {
		return nil
	}

	latest := history[0]
	window := history[1:]
	if len(window) > windowDays {
		window = window[:windowDays]
	}

	var sum float64
	for _, e := range window {
		sum += e.Kilos
	}
	mean := sum / float64(len(window))
	if mean <= 0 {
		return nil
	}

	diff := latest.Kilos - mean
	direction := DirectionStable
	switch {
	case diff > 0:
		direction = DirectionUp
	case diff < 0:
		direction = DirectionDown
	}

	return &Trend{
		Diff:          diff,
		PercentChange: diff / mean * 100,
		Direction:     direction,
		WindowDays:    windowDays,
		WindowMean:    mean,
		Latest:        latest.Kilos,
	}
}
