package dailylog

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	defaultHistoryDays = 30
	maxHistoryDays     = 366
)

type Service struct {
	repo     Repository
	notifier Notifier
	now      func() time.Time
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

// SaveLog stores the counters for a day, replacing whatever was saved for the
// same day before.
func (s *Service) SaveLog(ctx context.Context, input SaveLogInput) (*DailyLog, error) {
	if err := validateLogInput(input); err != nil {
		return nil, err
	}

	log := DailyLog{
		UserID:   input.UserID,
		Date:     Day(input.Date),
		Workouts: input.Workouts,
		Meals:    input.Meals,
		HasPR:    input.HasPR,
		WeightKg: input.WeightKg,
		Notes:    strings.TrimSpace(input.Notes),
	}
	if err := s.repo.UpsertLog(ctx, &log); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify(input.UserID)
	}
	return &log, nil
}

func (s *Service) GetLog(ctx context.Context, userID string, date time.Time) (*DailyLog, error) {
	return s.repo.GetLog(ctx, userID, Day(date))
}

func (s *Service) ListLogs(ctx context.Context, userID string, filter ListFilter) ([]DailyLog, error) {
	if filter.From != nil {
		from := Day(*filter.From)
		filter.From = &from
	}
	if filter.To != nil {
		to := Day(*filter.To)
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, ErrInvalidDateRange
	}
	return s.repo.ListLogs(ctx, userID, filter)
}

// History returns the logs of the last days days up to today, oldest first.
func (s *Service) History(ctx context.Context, userID string, days int) ([]DailyLog, error) {
	if days <= 0 {
		days = defaultHistoryDays
	}
	if days > maxHistoryDays {
		days = maxHistoryDays
	}

	to := Day(s.now())
	from := to.AddDate(0, 0, -days)
	return s.repo.ListLogs(ctx, userID, ListFilter{From: &from, To: &to})
}

// PeriodStats aggregates the logs of the period containing now against the
// user's weekly targets.
func (s *Service) PeriodStats(ctx context.Context, userID string, period Period, now time.Time, weekly Targets) (Stats, error) {
	from, to, err := period.Range(now)
	if err != nil {
		return Stats{}, err
	}

	logs, err := s.repo.ListLogs(ctx, userID, ListFilter{From: &from, To: &to})
	if err != nil {
		return Stats{}, fmt.Errorf("list logs: %w", err)
	}

	totals := Aggregate(logs)
	targets := period.Targets(weekly)
	return Stats{
		Period:         period,
		From:           from,
		To:             to,
		WorkoutsDone:   totals.Workouts,
		WorkoutsTarget: targets.Workouts,
		MealsDone:      totals.Meals,
		MealsTarget:    targets.Meals,
		HasPR:          totals.HasPR,
	}, nil
}

func validateLogInput(input SaveLogInput) error {
	if input.UserID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidLog)
	}
	if input.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidLog)
	}
	if input.Workouts < 0 || input.Meals < 0 {
		return fmt.Errorf("%w: counters must not be negative", ErrInvalidLog)
	}
	if w := input.WeightKg; w != nil && (*w <= 0 || math.IsNaN(*w) || math.IsInf(*w, 0)) {
		return fmt.Errorf("%w: weight must be positive", ErrInvalidLog)
	}
	return nil
}
