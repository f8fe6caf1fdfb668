package workout

import (
	"fmt"
	"math"
	"time"

	"fittrack-go/internal/domain/catalog"
	"fittrack-go/internal/domain/dailylog"
)

type SetField string

const (
	SetFieldReps   SetField = "reps"
	SetFieldWeight SetField = "weight"
)

// Session is a workout being edited before it is saved. Every mutation keeps
// the set numbering dense and the per-exercise calories current.
type Session struct {
	Exercises []Exercise `json:"exercises"`
}

func (s *Session) AddExercise(exerciseID string) error {
	ex, ok := catalog.Lookup(exerciseID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrExerciseNotFound, exerciseID)
	}

	entry := Exercise{
		ExerciseID:   ex.ID,
		ExerciseName: ex.Name,
		Category:     ex.Category,
		Sets:         []Set{{Number: 1, Reps: defaultReps, WeightKg: defaultWeightKg}},
	}
	entry.CaloriesBurned = exerciseCalories(entry)
	s.Exercises = append(s.Exercises, entry)
	return nil
}

func (s *Session) RemoveExercise(exerciseIndex int) error {
	if exerciseIndex < 0 || exerciseIndex >= len(s.Exercises) {
		return ErrIndexOutOfRange
	}
	s.Exercises = append(s.Exercises[:exerciseIndex], s.Exercises[exerciseIndex+1:]...)
	return nil
}

// AddSet appends a set that repeats the previous last set's reps and load.
func (s *Session) AddSet(exerciseIndex int) error {
	ex, err := s.exercise(exerciseIndex)
	if err != nil {
		return err
	}

	next := Set{Number: len(ex.Sets) + 1, Reps: defaultReps, WeightKg: defaultWeightKg}
	if n := len(ex.Sets); n > 0 {
		next.Reps = ex.Sets[n-1].Reps
		next.WeightKg = ex.Sets[n-1].WeightKg
	}
	ex.Sets = append(ex.Sets, next)
	ex.CaloriesBurned = exerciseCalories(*ex)
	return nil
}

func (s *Session) RemoveSet(exerciseIndex, setIndex int) error {
	ex, err := s.exercise(exerciseIndex)
	if err != nil {
		return err
	}
	if setIndex < 0 || setIndex >= len(ex.Sets) {
		return ErrIndexOutOfRange
	}
	if len(ex.Sets) == 1 {
		return ErrLastSet
	}

	ex.Sets = append(ex.Sets[:setIndex], ex.Sets[setIndex+1:]...)
	for i := range ex.Sets {
		ex.Sets[i].Number = i + 1
	}
	ex.CaloriesBurned = exerciseCalories(*ex)
	return nil
}

func (s *Session) UpdateSet(exerciseIndex, setIndex int, field SetField, value float64) error {
	ex, err := s.exercise(exerciseIndex)
	if err != nil {
		return err
	}
	if setIndex < 0 || setIndex >= len(ex.Sets) {
		return ErrIndexOutOfRange
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSetValue, value)
	}

	switch field {
	case SetFieldReps:
		if value > MaxReps {
			return fmt.Errorf("%w: reps %v above %d", ErrInvalidSetValue, value, MaxReps)
		}
		ex.Sets[setIndex].Reps = int(value)
	case SetFieldWeight:
		if value > MaxWeightKg {
			return fmt.Errorf("%w: weight %v above %d kg", ErrInvalidSetValue, value, MaxWeightKg)
		}
		ex.Sets[setIndex].WeightKg = value
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSetField, field)
	}

	ex.CaloriesBurned = exerciseCalories(*ex)
	return nil
}

func (s *Session) TotalCalories() int {
	total := 0
	for _, ex := range s.Exercises {
		total += ex.CaloriesBurned
	}
	return total
}

// DurationEstimate is a coarse display estimate: 2.5 minutes per set.
func (s *Session) DurationEstimate() int {
	minutes := 0.0
	for _, ex := range s.Exercises {
		minutes += float64(len(ex.Sets)) * minutesPerSetEstimate
	}
	return int(math.Round(minutes))
}

func (s *Session) Empty() bool {
	return len(s.Exercises) == 0
}

func (s Session) Clone() Session {
	return Session{Exercises: cloneExercises(s.Exercises)}
}

// Finalize turns the session into a workout record. Totals are always derived
// from the sets, never taken from the caller.
func (s *Session) Finalize(userID string, date time.Time, notes string, now time.Time) Workout {
	day := dailylog.Day(date)
	return Workout{
		ID:              fmt.Sprintf("%s-%d", day.Format("2006-01-02"), now.UnixMilli()),
		UserID:          userID,
		Date:            day,
		Exercises:       cloneExercises(s.Exercises),
		TotalCalories:   s.TotalCalories(),
		DurationMinutes: s.DurationEstimate(),
		Notes:           notes,
		CreatedAt:       now.UTC(),
	}
}

func (s *Session) exercise(index int) (*Exercise, error) {
	if index < 0 || index >= len(s.Exercises) {
		return nil, ErrIndexOutOfRange
	}
	return &s.Exercises[index], nil
}

func exerciseCalories(ex Exercise) int {
	total := 0
	for _, set := range ex.Sets {
		total += Estimate(ex.ExerciseID, 1, set.Reps, set.WeightKg)
	}
	return total
}

func cloneExercises(exercises []Exercise) []Exercise {
	if exercises == nil {
		return nil
	}
	cloned := make([]Exercise, len(exercises))
	for i, ex := range exercises {
		cloned[i] = ex
		cloned[i].Sets = append([]Set(nil), ex.Sets...)
	}
	return cloned
}
