package sessions

import (
	"fmt"
	"sort"
)

// GroupedExercise is the per-exercise view of a session, derived from the
// flat set list and never persisted.
type GroupedExercise struct {
	Name string      `json:"name"`
	Sets []SetTiming `json:"sets"`
}

// GroupExercises groups a session's flat set list by exercise identity.
// The grouping key is the exercise display name when present, otherwise a
// synthesized "Exercise <id>" placeholder. Grouping by list position is
// wrong, set lists can arrive re-ordered or sparse. Groups come out in
// first-seen order, and sets within a group are sorted ascending by their
// explicit set index. Duplicate indexes keep their input order.
func GroupExercises(sets []SetTiming) []GroupedExercise {
	grouped := make(map[string][]SetTiming)
	var seenOrder []string
	for _, set := range sets {
		key := set.ExerciseName
		if key == "" {
			key = fmt.Sprintf("Exercise %d", set.ExerciseID)
		}
		if _, ok := grouped[key]; !ok {
			seenOrder = append(seenOrder, key)
		}
		grouped[key] = append(grouped[key], set)
	}

	exercises := make([]GroupedExercise, 0, len(seenOrder))
	for _, name := range seenOrder {
		exerciseSets := grouped[name]
		sort.SliceStable(exerciseSets, func(i, j int) bool {
			return exerciseSets[i].SetIndex < exerciseSets[j].SetIndex
		})
		exercises = append(exercises, GroupedExercise{
			Name: name,
			Sets: exerciseSets,
		})
	}

	return exercises
}
