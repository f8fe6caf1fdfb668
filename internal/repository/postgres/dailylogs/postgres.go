package dailylogs

import (
	"context"
	"errors"
	"time"

	logdomain "fittrack-go/internal/domain/dailylog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// UpsertLog writes the day's counters, replacing an existing row for the same
// (user_id, date). created_at keeps its original value, and log is refreshed
// from the stored row.
func (r *PostgresRepository) UpsertLog(ctx context.Context, log *logdomain.DailyLog) error {
	return r.db.WithContext(ctx).
		Clauses(clause.Returning{}, clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"workouts":   log.Workouts,
				"meals":      log.Meals,
				"has_pr":     log.HasPR,
				"weight_kg":  log.WeightKg,
				"notes":      log.Notes,
				"updated_at": time.Now().UTC(),
			}),
		}).
		Create(log).Error
}

func (r *PostgresRepository) GetLog(ctx context.Context, userID string, date time.Time) (*logdomain.DailyLog, error) {
	var log logdomain.DailyLog
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&log).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, logdomain.ErrLogNotFound
		}
		return nil, err
	}
	return &log, nil
}

func (r *PostgresRepository) ListLogs(ctx context.Context, userID string, filter logdomain.ListFilter) ([]logdomain.DailyLog, error) {
	query := r.db.WithContext(ctx).Model(&logdomain.DailyLog{}).Where("user_id = ?", userID)

	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}

	var items []logdomain.DailyLog
	if err := query.Order("date asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
