package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"fittrack-go/internal/domain/dailylog"
	"fittrack-go/internal/domain/workout"
)

type WorkoutRepository struct {
	client *Client
}

func (r *WorkoutRepository) ListWorkouts(ctx context.Context, userID string, filter workout.ListFilter) ([]workout.Workout, int64, error) {
	workouts := r.client.UserWorkouts(userID)
	q := workouts.Ref.Query
	if filter.From != nil {
		q = q.Where("date", ">=", filter.From.Format(dailylog.DateLayout))
	}
	if filter.To != nil {
		q = q.Where("date", "<=", filter.To.Format(dailylog.DateLayout))
	}

	items, err := workouts.All(ctx, q.OrderBy("date", firestore.Desc).OrderBy("createdAt", firestore.Desc))
	if err != nil {
		return nil, 0, err
	}

	total := int64(len(items))
	if filter.Offset > 0 {
		if filter.Offset >= len(items) {
			return []workout.Workout{}, total, nil
		}
		items = items[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(items) {
		items = items[:filter.Limit]
	}
	return items, total, nil
}

func (r *WorkoutRepository) ListWorkoutsForDate(ctx context.Context, userID string, date time.Time) ([]workout.Workout, error) {
	workouts := r.client.UserWorkouts(userID)
	q := workouts.Ref.Where("date", "==", date.Format(dailylog.DateLayout)).OrderBy("createdAt", firestore.Asc)
	return workouts.All(ctx, q)
}

func (r *WorkoutRepository) GetWorkoutByID(ctx context.Context, userID, workoutID string) (*workout.Workout, error) {
	w, err := r.client.UserWorkouts(userID).Doc(workoutID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, workout.ErrWorkoutNotFound
		}
		return nil, err
	}
	return w, nil
}

func (r *WorkoutRepository) CreateWorkout(ctx context.Context, w *workout.Workout) error {
	return r.client.UserWorkouts(w.UserID).Doc(w.ID).Set(ctx, w)
}

func (r *WorkoutRepository) DeleteWorkout(ctx context.Context, userID, workoutID string) (bool, error) {
	return r.client.UserWorkouts(userID).Doc(workoutID).Delete(ctx)
}
