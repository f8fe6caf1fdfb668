package workout

import (
	"context"
	"time"
)

type Repository interface {
	ListWorkouts(ctx context.Context, userID string, filter ListFilter) ([]Workout, int64, error)
	ListWorkoutsForDate(ctx context.Context, userID string, date time.Time) ([]Workout, error)
	GetWorkoutByID(ctx context.Context, userID, workoutID string) (*Workout, error)
	CreateWorkout(ctx context.Context, workout *Workout) error
	DeleteWorkout(ctx context.Context, userID, workoutID string) (bool, error)
}

// DraftStore holds at most one unsaved session per user. Implementations
// return copies so callers never share set slices with the store.
type DraftStore interface {
	Get(userID string) (Session, bool)
	Put(userID string, session Session)
	Delete(userID string)
}

// Notifier is told when a user's saved data changed.
type Notifier interface {
	Notify(userID string)
}
