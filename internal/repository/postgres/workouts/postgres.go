package workouts

import (
	"context"
	"errors"
	"time"

	workoutdomain "fittrack-go/internal/domain/workout"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListWorkouts(ctx context.Context, userID string, filter workoutdomain.ListFilter) ([]workoutdomain.Workout, int64, error) {
	query := r.db.WithContext(ctx).Model(&workoutdomain.Workout{}).Where("user_id = ?", userID)

	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("date desc, created_at desc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var items []workoutdomain.Workout
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *PostgresRepository) ListWorkoutsForDate(ctx context.Context, userID string, date time.Time) ([]workoutdomain.Workout, error) {
	var items []workoutdomain.Workout
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetWorkoutByID(ctx context.Context, userID, workoutID string) (*workoutdomain.Workout, error) {
	var workout workoutdomain.Workout
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, workoutID).
		First(&workout).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workoutdomain.ErrWorkoutNotFound
		}
		return nil, err
	}
	return &workout, nil
}

func (r *PostgresRepository) CreateWorkout(ctx context.Context, workout *workoutdomain.Workout) error {
	return r.db.WithContext(ctx).Create(workout).Error
}

func (r *PostgresRepository) DeleteWorkout(ctx context.Context, userID, workoutID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&workoutdomain.Workout{}, "user_id = ? AND id = ?", userID, workoutID)
	return result.RowsAffected > 0, result.Error
}
