package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"fittrack-go/internal/domain/dailylog"
)

// DailyLogRepository implements dailylog.Repository. The document id is the
// calendar date, so saving a day twice merges into the same document.
type DailyLogRepository struct {
	client *Client
}

func (r *DailyLogRepository) UpsertLog(ctx context.Context, log *dailylog.DailyLog) error {
	ref := r.client.UserLogs(log.UserID).Doc(log.Date.Format(dailylog.DateLayout)).Ref
	data := DailyLogToFirestore(log)

	return r.client.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			if !isNotFound(err) {
				return err
			}
			data["createdAt"] = firestoreServerTime
		}
		return tx.Set(ref, data, firestore.MergeAll)
	})
}

func (r *DailyLogRepository) GetLog(ctx context.Context, userID string, date time.Time) (*dailylog.DailyLog, error) {
	log, err := r.client.UserLogs(userID).Doc(date.Format(dailylog.DateLayout)).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, dailylog.ErrLogNotFound
		}
		return nil, err
	}
	return log, nil
}

func (r *DailyLogRepository) ListLogs(ctx context.Context, userID string, filter dailylog.ListFilter) ([]dailylog.DailyLog, error) {
	logs := r.client.UserLogs(userID)
	q := logs.Ref.Query
	if filter.From != nil {
		q = q.Where("date", ">=", filter.From.Format(dailylog.DateLayout))
	}
	if filter.To != nil {
		q = q.Where("date", "<=", filter.To.Format(dailylog.DateLayout))
	}
	return logs.All(ctx, q.OrderBy("date", firestore.Asc))
}
