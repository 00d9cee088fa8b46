package sessions

import (
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// SetTiming is one performed set inside a session. SetIndex is the
// zero-based order of the set within its exercise, as recorded by the
// client; it is explicit because set lists can arrive re-ordered or sparse.
type SetTiming struct {
	ID              int     `json:"id"`
	ExerciseID      int     `json:"exerciseId"`
	ExerciseName    string  `json:"exerciseName"`
	SetIndex        int     `json:"setIndex"`
	Kilos           float64 `json:"kilos"`
	Reps            int     `json:"reps"`
	DurationSeconds int     `json:"durationSeconds,omitempty"`
}

// Session is one workout session. FinishedAt is nil while the session is
// still in progress, which is what the live status lookup keys on.
type Session struct {
	ID              int         `json:"id"`
	UserID          int         `json:"-"`
	DayNumber       int         `json:"dayNumber"`
	Title           string      `json:"title,omitempty"`
	StartedAt       time.Time   `json:"startedAt"`
	FinishedAt      *time.Time  `json:"finishedAt,omitempty"`
	DurationSeconds int         `json:"durationSeconds"`
	CompletedSets   int         `json:"completedSets"`
	MuscleGroups    []string    `json:"muscleGroups,omitempty"`
	Sets            []SetTiming `json:"sets,omitempty"`
}

// InProgress reports whether the session has no finish timestamp yet.
func (s *Session) InProgress() bool {
	return s.FinishedAt == nil
}
