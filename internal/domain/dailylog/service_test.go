package dailylog

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

type fakeLogRepo struct {
	logs map[string]DailyLog
}

func newFakeLogRepo() *fakeLogRepo {
	return &fakeLogRepo{logs: make(map[string]DailyLog)}
}

func logKey(userID string, date time.Time) string {
	return userID + "/" + date.Format(DateLayout)
}

func (r *fakeLogRepo) UpsertLog(ctx context.Context, log *DailyLog) error {
	r.logs[logKey(log.UserID, log.Date)] = *log
	return nil
}

func (r *fakeLogRepo) GetLog(ctx context.Context, userID string, date time.Time) (*DailyLog, error) {
	log, ok := r.logs[logKey(userID, date)]
	if !ok {
		return nil, ErrLogNotFound
	}
	return &log, nil
}

func (r *fakeLogRepo) ListLogs(ctx context.Context, userID string, filter ListFilter) ([]DailyLog, error) {
	items := make([]DailyLog, 0)
	for _, log := range r.logs {
		if log.UserID != userID {
			continue
		}
		if filter.From != nil && log.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && log.Date.After(*filter.To) {
			continue
		}
		items = append(items, log)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Date.Before(items[j].Date) })
	return items, nil
}

type countingNotifier struct {
	calls int
}

func (n *countingNotifier) Notify(userID string) {
	n.calls++
}

func newTestService() (*Service, *fakeLogRepo, *countingNotifier) {
	repo := newFakeLogRepo()
	notifier := &countingNotifier{}
	service := NewService(repo, notifier)
	service.now = func() time.Time {
		return time.Date(2024, 5, 8, 9, 0, 0, 0, time.UTC)
	}
	return service, repo, notifier
}

func TestSaveLogUpsertsByDate(t *testing.T) {
	service, repo, notifier := newTestService()
	ctx := context.Background()

	first := SaveLogInput{UserID: "u1", Date: time.Date(2024, 5, 8, 7, 0, 0, 0, time.UTC), Workouts: 1, Meals: 2}
	if _, err := service.SaveLog(ctx, first); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second := SaveLogInput{UserID: "u1", Date: time.Date(2024, 5, 8, 21, 0, 0, 0, time.UTC), Workouts: 2, Meals: 3, HasPR: true}
	saved, err := service.SaveLog(ctx, second)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(repo.logs) != 1 {
		t.Fatalf("expected a single log for the day, got %d", len(repo.logs))
	}
	if !saved.Date.Equal(date(2024, 5, 8)) {
		t.Fatalf("expected date normalized to day, got %s", saved.Date)
	}
	got, err := service.GetLog(ctx, "u1", date(2024, 5, 8))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Workouts != 2 || got.Meals != 3 || !got.HasPR {
		t.Fatalf("expected last write to win, got %+v", got)
	}
	if notifier.calls != 2 {
		t.Fatalf("expected two notifications, got %d", notifier.calls)
	}
}

func TestSaveLogValidation(t *testing.T) {
	service, repo, notifier := newTestService()
	badWeight := 0.0
	day := date(2024, 5, 8)

	cases := map[string]SaveLogInput{
		"no user":          {Date: day},
		"no date":          {UserID: "u1"},
		"negative workout": {UserID: "u1", Date: day, Workouts: -1},
		"negative meals":   {UserID: "u1", Date: day, Meals: -2},
		"zero weight":      {UserID: "u1", Date: day, WeightKg: &badWeight},
	}
	for name, input := range cases {
		if _, err := service.SaveLog(context.Background(), input); !errors.Is(err, ErrInvalidLog) {
			t.Fatalf("%s: expected ErrInvalidLog, got %v", name, err)
		}
	}
	if len(repo.logs) != 0 || notifier.calls != 0 {
		t.Fatalf("expected nothing saved")
	}
}

func TestHistoryReturnsAscendingWindow(t *testing.T) {
	service, repo, _ := newTestService()
	for _, d := range []time.Time{date(2024, 5, 8), date(2024, 5, 1), date(2024, 4, 1), date(2024, 5, 7)} {
		repo.logs[logKey("u1", d)] = DailyLog{UserID: "u1", Date: d, Workouts: 1}
	}

	logs, err := service.History(context.Background(), "u1", 7)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("expected 3 logs, got %d", len(logs))
	}
	if !logs[0].Date.Equal(date(2024, 5, 1)) || !logs[2].Date.Equal(date(2024, 5, 8)) {
		t.Fatalf("expected ascending order, got %s..%s", logs[0].Date, logs[2].Date)
	}

	all, err := service.History(context.Background(), "u1", 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected default window of 30 days to hold 3 logs, got %d", len(all))
	}
}

func TestListLogsRejectsInvertedRange(t *testing.T) {
	service, _, _ := newTestService()
	from := date(2024, 5, 9)
	to := date(2024, 5, 1)

	if _, err := service.ListLogs(context.Background(), "u1", ListFilter{From: &from, To: &to}); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestPeriodStats(t *testing.T) {
	service, repo, _ := newTestService()
	add := func(d time.Time, workouts, meals int, pr bool) {
		repo.logs[logKey("u1", d)] = DailyLog{UserID: "u1", Date: d, Workouts: workouts, Meals: meals, HasPR: pr}
	}
	add(date(2024, 5, 5), 1, 1, true)
	add(date(2024, 5, 6), 1, 3, false)
	add(date(2024, 5, 8), 2, 4, false)
	repo.logs[logKey("u2", date(2024, 5, 7))] = DailyLog{UserID: "u2", Date: date(2024, 5, 7), Workouts: 5}

	now := time.Date(2024, 5, 8, 9, 0, 0, 0, time.UTC)
	weekly := Targets{Workouts: 4, Meals: 10}

	week, err := service.PeriodStats(context.Background(), "u1", PeriodWeekly, now, weekly)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if week.WorkoutsDone != 3 || week.MealsDone != 7 || week.HasPR {
		t.Fatalf("unexpected weekly stats %+v", week)
	}
	if week.WorkoutsTarget != 4 || week.MealsTarget != 10 {
		t.Fatalf("unexpected weekly targets %+v", week)
	}
	if !week.From.Equal(date(2024, 5, 6)) || !week.To.Equal(date(2024, 5, 12)) {
		t.Fatalf("unexpected weekly window %s..%s", week.From, week.To)
	}

	month, err := service.PeriodStats(context.Background(), "u1", PeriodMonthly, now, weekly)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if month.WorkoutsDone != 4 || month.MealsDone != 8 || !month.HasPR {
		t.Fatalf("unexpected monthly stats %+v", month)
	}
	if month.WorkoutsTarget != 16 || month.MealsTarget != 40 {
		t.Fatalf("unexpected monthly targets %+v", month)
	}

	if _, err := service.PeriodStats(context.Background(), "u1", "daily", now, weekly); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}
