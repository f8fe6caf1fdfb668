package dailylog

import (
	"context"
	"time"
)

type Repository interface {
	UpsertLog(ctx context.Context, log *DailyLog) error
	GetLog(ctx context.Context, userID string, date time.Time) (*DailyLog, error)
	ListLogs(ctx context.Context, userID string, filter ListFilter) ([]DailyLog, error)
}

type Notifier interface {
	Notify(userID string)
}
