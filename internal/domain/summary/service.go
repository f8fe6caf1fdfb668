package summary

import (
	"context"
	"fmt"
	"time"

	"fittrack-go/internal/domain/dailylog"
	"fittrack-go/internal/domain/profile"
	"fittrack-go/internal/domain/scoring"
)

const defaultCacheTTL = time.Minute

type ProfileReader interface {
	Get(ctx context.Context, userID string) (*profile.Profile, error)
}

type StatsReader interface {
	PeriodStats(ctx context.Context, userID string, period dailylog.Period, now time.Time, weekly dailylog.Targets) (dailylog.Stats, error)
}

type Config struct {
	CacheTTL time.Duration
}

type Service struct {
	profiles ProfileReader
	stats    StatsReader
	cache    Cache
	cacheTTL time.Duration
	now      func() time.Time
}

func NewService(profiles ProfileReader, stats StatsReader, cache Cache, cfg Config) *Service {
	cfg = normalizeConfig(cfg)
	if cache == nil {
		cache = noopCache{}
	}
	return &Service{
		profiles: profiles,
		stats:    stats,
		cache:    cache,
		cacheTTL: cfg.CacheTTL,
		now:      time.Now,
	}
}

func normalizeConfig(cfg Config) Config {
	if cfg.CacheTTL < 0 {
		cfg.CacheTTL = 0
	}
	return cfg
}

// DefaultConfig is used when the caller has no configuration of its own.
func DefaultConfig() Config {
	return Config{CacheTTL: defaultCacheTTL}
}

// Summary scores the period containing now. Results are served from the
// cache until they expire or the user is invalidated.
func (s *Service) Summary(ctx context.Context, userID string, period dailylog.Period, now time.Time) (Summary, error) {
	from, _, err := period.Range(now)
	if err != nil {
		return Summary{}, err
	}

	key := CacheKey{UserID: userID, Period: period, From: from.Format(dailylog.DateLayout)}
	if s.cacheTTL > 0 {
		if cached, ok := s.cache.Get(key); ok {
			return cached, nil
		}
	}

	result, err := s.compute(ctx, userID, period, now)
	if err != nil {
		return Summary{}, err
	}

	if s.cacheTTL > 0 {
		s.cache.Set(key, result, s.cacheTTL)
	}
	return result, nil
}

// Current is Summary for the current time.
func (s *Service) Current(ctx context.Context, userID string, period dailylog.Period) (Summary, error) {
	return s.Summary(ctx, userID, period, s.now())
}

func (s *Service) Invalidate(userID string) {
	s.cache.DeleteUser(userID)
}

// Reset drops every cached summary.
func (s *Service) Reset() {
	s.cache.Clear()
}

func (s *Service) compute(ctx context.Context, userID string, period dailylog.Period, now time.Time) (Summary, error) {
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return Summary{}, fmt.Errorf("load profile: %w", err)
	}

	stats, err := s.stats.PeriodStats(ctx, userID, period, now, dailylog.Targets{
		Workouts: p.WeeklyWorkoutsTarget,
		Meals:    p.WeeklyMealsTarget,
	})
	if err != nil {
		return Summary{}, err
	}

	result := scoring.Evaluate(scoring.Input{
		WorkoutsDone:   stats.WorkoutsDone,
		WorkoutsTarget: stats.WorkoutsTarget,
		MealsDone:      stats.MealsDone,
		MealsTarget:    stats.MealsTarget,
		HasPR:          stats.HasPR,
	})

	return Summary{
		Result:       result,
		UserID:       userID,
		Period:       period,
		From:         stats.From,
		To:           stats.To,
		AthleteType:  p.AthleteType,
		AthleteLabel: scoring.AthleteLabel(p.AthleteType, result.Badge),
		ComputedAt:   s.now().UTC(),
	}, nil
}
