package firestore

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"fittrack-go/internal/domain/dailylog"
	"fittrack-go/pkg/logger"
)

const watchRetryDelay = 5 * time.Second

type Notifier interface {
	Notify(userID string)
}

// LogWatcher listens to every user's logs collection and notifies when a log
// in the current week or month is added or changed, including writes made
// directly by mobile clients.
type LogWatcher struct {
	client   *Client
	notifier Notifier
	log      logger.Logger
}

func NewLogWatcher(client *Client, notifier Notifier, log logger.Logger) *LogWatcher {
	return &LogWatcher{client: client, notifier: notifier, log: log}
}

// Run blocks until ctx is done, restarting the listener after transient
// errors.
func (w *LogWatcher) Run(ctx context.Context) {
	for {
		err := w.listen(ctx)
		if ctx.Err() != nil {
			return
		}
		w.log.Warn("firestore: log listener stopped, restarting", "error", err, "retry_in", watchRetryDelay)

		select {
		case <-ctx.Done():
			return
		case <-time.After(watchRetryDelay):
		}
	}
}

// watchField is the log field the listener filters on. Every writer sets it,
// including mobile clients that never write updatedAt.
const watchField = "date"

// watchFloor is the earliest log date that can still change a current summary:
// the start of the week or the month containing now, whichever comes first.
func watchFloor(now time.Time) string {
	weekStart, _ := dailylog.WeekRange(now)
	monthStart, _ := dailylog.MonthRange(now)
	if monthStart.Before(weekStart) {
		weekStart = monthStart
	}
	return weekStart.Format(dailylog.DateLayout)
}

func (w *LogWatcher) listen(ctx context.Context) error {
	floor := watchFloor(time.Now())
	it := w.client.fs.CollectionGroup(logsCollection).Where(watchField, ">=", floor).Snapshots(ctx)
	defer it.Stop()

	// The first snapshot lists every matching log as added. Summaries are
	// computed on read, so only later changes need a refresh.
	initial := true
	for {
		snap, err := it.Next()
		if err != nil {
			if status.Code(err) == codes.Canceled || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		if initial {
			initial = false
			continue
		}

		for _, userID := range changedOwners(snap.Changes) {
			w.notifier.Notify(userID)
		}
	}
}

// changedOwners returns each user with an added or modified log once, in
// change order.
func changedOwners(changes []firestore.DocumentChange) []string {
	var owners []string
	seen := make(map[string]struct{}, len(changes))
	for _, change := range changes {
		if change.Kind == firestore.DocumentRemoved || change.Doc == nil {
			continue
		}
		userID := ownerID(change.Doc.Ref)
		if userID == "" {
			continue
		}
		if _, ok := seen[userID]; ok {
			continue
		}
		seen[userID] = struct{}{}
		owners = append(owners, userID)
	}
	return owners
}

// ownerID returns uid for a document at users/{uid}/logs/{date}.
func ownerID(ref *firestore.DocumentRef) string {
	if ref == nil || ref.Parent == nil || ref.Parent.Parent == nil {
		return ""
	}
	return ref.Parent.Parent.ID
}
