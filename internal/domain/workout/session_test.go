package workout

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireConsistent(t *testing.T, s Session) {
	t.Helper()
	for i, ex := range s.Exercises {
		require.NotEmpty(t, ex.Sets, "exercise %d", i)
		want := 0
		for j, set := range ex.Sets {
			require.Equal(t, j+1, set.Number, "exercise %d set %d", i, j)
			want += Estimate(ex.ExerciseID, 1, set.Reps, set.WeightKg)
		}
		require.Equal(t, want, ex.CaloriesBurned, "exercise %d calories", i)
	}
}

func TestAddExerciseDefaults(t *testing.T) {
	var s Session
	require.NoError(t, s.AddExercise("bench-press"))

	require.Len(t, s.Exercises, 1)
	ex := s.Exercises[0]
	assert.Equal(t, "Bench Press", ex.ExerciseName)
	assert.Equal(t, "Chest", string(ex.Category))
	assert.Equal(t, []Set{{Number: 1, Reps: 10, WeightKg: 0}}, ex.Sets)
	assert.Equal(t, 11, ex.CaloriesBurned)
	requireConsistent(t, s)
}

func TestAddExerciseUnknownLeavesSessionUnchanged(t *testing.T) {
	var s Session
	require.NoError(t, s.AddExercise("squat"))
	before := s.Clone()

	err := s.AddExercise("flying-kick")
	assert.ErrorIs(t, err, ErrExerciseNotFound)
	assert.Equal(t, before, s)
}

func TestAddSetCopiesLastSet(t *testing.T) {
	var s Session
	require.NoError(t, s.AddExercise("bench-press"))
	require.NoError(t, s.UpdateSet(0, 0, SetFieldReps, 8))
	require.NoError(t, s.UpdateSet(0, 0, SetFieldWeight, 60))
	require.NoError(t, s.AddSet(0))

	require.Len(t, s.Exercises[0].Sets, 2)
	assert.Equal(t, Set{Number: 2, Reps: 8, WeightKg: 60}, s.Exercises[0].Sets[1])
	requireConsistent(t, s)

	assert.ErrorIs(t, s.AddSet(1), ErrIndexOutOfRange)
}

func TestRemoveSecondOfThreeSets(t *testing.T) {
	var s Session
	require.NoError(t, s.AddExercise("bench-press"))
	require.NoError(t, s.AddSet(0))
	require.NoError(t, s.AddSet(0))
	require.NoError(t, s.UpdateSet(0, 0, SetFieldReps, 8))
	require.NoError(t, s.UpdateSet(0, 2, SetFieldReps, 12))

	require.NoError(t, s.RemoveSet(0, 1))

	assert.Equal(t, []Set{
		{Number: 1, Reps: 8, WeightKg: 0},
		{Number: 2, Reps: 12, WeightKg: 0},
	}, s.Exercises[0].Sets)
	requireConsistent(t, s)
}

func TestRemoveLastRemainingSet(t *testing.T) {
	var s Session
	require.NoError(t, s.AddExercise("plank"))

	assert.ErrorIs(t, s.RemoveSet(0, 0), ErrLastSet)
	assert.Len(t, s.Exercises[0].Sets, 1)
	assert.ErrorIs(t, s.RemoveSet(0, 3), ErrIndexOutOfRange)
}

func TestUpdateSetValidation(t *testing.T) {
	var s Session
	require.NoError(t, s.AddExercise("squat"))
	before := s.Clone()

	assert.ErrorIs(t, s.UpdateSet(0, 0, SetFieldReps, -1), ErrInvalidSetValue)
	assert.ErrorIs(t, s.UpdateSet(0, 0, "tempo", 3), ErrInvalidSetField)
	assert.ErrorIs(t, s.UpdateSet(0, 5, SetFieldReps, 3), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.UpdateSet(2, 0, SetFieldReps, 3), ErrIndexOutOfRange)
	assert.Equal(t, before, s)
}

func TestUpdateSetTruncatesReps(t *testing.T) {
	var s Session
	require.NoError(t, s.AddExercise("squat"))
	require.NoError(t, s.UpdateSet(0, 0, SetFieldReps, 7.9))

	assert.Equal(t, 7, s.Exercises[0].Sets[0].Reps)
	requireConsistent(t, s)
}

func TestUpdateSetRejectsValuesAboveBounds(t *testing.T) {
	var s Session
	require.NoError(t, s.AddExercise("squat"))
	before := s.Clone()

	for _, reps := range []float64{MaxReps + 1, 4e18, 1e19} {
		assert.ErrorIs(t, s.UpdateSet(0, 0, SetFieldReps, reps), ErrInvalidSetValue, "reps %v", reps)
	}
	assert.ErrorIs(t, s.UpdateSet(0, 0, SetFieldWeight, MaxWeightKg+0.5), ErrInvalidSetValue)
	assert.Equal(t, before, s)

	require.NoError(t, s.UpdateSet(0, 0, SetFieldReps, MaxReps))
	require.NoError(t, s.UpdateSet(0, 0, SetFieldWeight, MaxWeightKg))
	assert.Equal(t, MaxReps, s.Exercises[0].Sets[0].Reps)
	assert.Positive(t, s.Exercises[0].CaloriesBurned)
	requireConsistent(t, s)
}

func TestFinalizeKeepsLocalCalendarDay(t *testing.T) {
	var s Session
	require.NoError(t, s.AddExercise("squat"))

	sydney := time.FixedZone("AEST", 10*60*60)
	date := time.Date(2024, 5, 6, 3, 0, 0, 0, sydney)
	w := s.Finalize("u1", date, "", time.Date(2024, 5, 6, 12, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), w.Date)
	assert.True(t, strings.HasPrefix(w.ID, "2024-05-06-"), w.ID)
}

func TestCaloriesStayConsistentAcrossEdits(t *testing.T) {
	var s Session
	steps := []func() error{
		func() error { return s.AddExercise("deadlift") },
		func() error { return s.AddExercise("treadmill") },
		func() error { return s.AddSet(0) },
		func() error { return s.UpdateSet(0, 1, SetFieldWeight, 140) },
		func() error { return s.AddSet(0) },
		func() error { return s.UpdateSet(1, 0, SetFieldReps, 30) },
		func() error { return s.RemoveSet(0, 0) },
		func() error { return s.AddSet(1) },
		func() error { return s.RemoveExercise(1) },
	}

	for i, step := range steps {
		require.NoError(t, step(), "step %d", i)
		requireConsistent(t, s)
	}
}

func TestTotalsAndDuration(t *testing.T) {
	var s Session
	assert.Equal(t, 0, s.TotalCalories())
	assert.Equal(t, 0, s.DurationEstimate())

	require.NoError(t, s.AddExercise("bench-press"))
	require.NoError(t, s.AddSet(0))
	require.NoError(t, s.AddSet(0))
	require.NoError(t, s.AddExercise("squat"))

	want := s.Exercises[0].CaloriesBurned + s.Exercises[1].CaloriesBurned
	assert.Equal(t, want, s.TotalCalories())
	assert.Equal(t, 10, s.DurationEstimate())

	require.NoError(t, s.AddExercise("plank"))
	assert.Equal(t, 13, s.DurationEstimate())
}

func TestCloneDoesNotShareSets(t *testing.T) {
	var s Session
	require.NoError(t, s.AddExercise("bench-press"))

	clone := s.Clone()
	clone.Exercises[0].Sets[0].Reps = 99

	assert.Equal(t, 10, s.Exercises[0].Sets[0].Reps)
}

func TestFinalize(t *testing.T) {
	var s Session
	require.NoError(t, s.AddExercise("bench-press"))
	require.NoError(t, s.AddSet(0))

	date := time.Date(2024, 3, 11, 18, 30, 0, 0, time.UTC)
	now := time.Date(2024, 3, 11, 19, 0, 0, 0, time.UTC)
	w := s.Finalize("user-1", date, "push day", now)

	assert.Equal(t, "2024-03-11-"+strconv.FormatInt(now.UnixMilli(), 10), w.ID)
	assert.Equal(t, "user-1", w.UserID)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), w.Date)
	assert.Equal(t, s.TotalCalories(), w.TotalCalories)
	assert.Equal(t, 5, w.DurationMinutes)
	assert.Equal(t, "push day", w.Notes)

	w.Exercises[0].Sets[0].Reps = 1
	assert.Equal(t, 10, s.Exercises[0].Sets[0].Reps)
}
