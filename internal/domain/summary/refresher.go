package summary

import (
	"context"

	"fittrack-go/internal/domain/dailylog"
	"fittrack-go/pkg/logger"
)

const defaultQueueSize = 64

// Refresher recomputes summaries when told that a user's data changed. Each
// recomputation reads the latest stored counters, so dropped or reordered
// notifications only delay a refresh; they never produce a stale result.
type Refresher struct {
	service   *Service
	queue     chan Notification
	onRefresh func(Summary)
	log       logger.Logger
}

func NewRefresher(service *Service, queueSize int, log logger.Logger) *Refresher {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &Refresher{
		service: service,
		queue:   make(chan Notification, queueSize),
		log:     log,
	}
}

// OnRefresh registers a callback for recomputed summaries. Call it before Run.
func (r *Refresher) OnRefresh(fn func(Summary)) {
	r.onRefresh = fn
}

// Notify drops the user's cached summaries and queues a recomputation. It
// never blocks; when the queue is full the next read recomputes anyway.
func (r *Refresher) Notify(userID string) {
	if userID == "" {
		return
	}
	r.service.Invalidate(userID)

	select {
	case r.queue <- Notification{UserID: userID}:
	default:
		r.log.Warn("summary: refresh queue full, dropping notification", "user_id", userID)
	}
}

// Run processes notifications until ctx is done.
func (r *Refresher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case n := <-r.queue:
			r.refresh(ctx, n)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context, n Notification) {
	r.service.Invalidate(n.UserID)
	for _, period := range []dailylog.Period{dailylog.PeriodWeekly, dailylog.PeriodMonthly} {
		result, err := r.service.Current(ctx, n.UserID, period)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			r.log.InternalError("summary: refresh failed", err, "user_id", n.UserID, "period", period)
			continue
		}
		if r.onRefresh != nil {
			r.onRefresh(result)
		}
	}
}
