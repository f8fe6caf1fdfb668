package workout

import "errors"

var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrLastSet          = errors.New("exercise must keep at least one set")
	ErrInvalidSetField  = errors.New("invalid set field")
	ErrInvalidSetValue  = errors.New("invalid set value")
	ErrEmptyWorkout     = errors.New("workout has no exercises")
	ErrInvalidWorkout   = errors.New("invalid workout")
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrInvalidDateRange = errors.New("from must not be after to")
)
