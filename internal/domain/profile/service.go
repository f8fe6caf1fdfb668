package profile

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the stored profile, or the defaults when the user has none yet.
func (s *Service) Get(ctx context.Context, userID string) (*Profile, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidProfile)
	}

	stored, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			p := Default(userID)
			return &p, nil
		}
		return nil, err
	}

	fillDefaults(stored)
	return stored, nil
}

func (s *Service) Update(ctx context.Context, input UpdateProfileInput) (*Profile, error) {
	p, err := s.Get(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		p.Name = strings.TrimSpace(*input.Name)
	}
	if input.AthleteType != nil {
		p.AthleteType = strings.TrimSpace(*input.AthleteType)
	}
	if input.WeightKg != nil {
		p.WeightKg = *input.WeightKg
	}
	if input.HeightCm != nil {
		p.HeightCm = *input.HeightCm
	}
	if input.WeeklyWorkoutsTarget != nil {
		p.WeeklyWorkoutsTarget = *input.WeeklyWorkoutsTarget
	}
	if input.WeeklyMealsTarget != nil {
		p.WeeklyMealsTarget = *input.WeeklyMealsTarget
	}
	if input.WeightUnit != nil {
		p.WeightUnit = strings.ToLower(strings.TrimSpace(*input.WeightUnit))
	}
	if input.HeightUnit != nil {
		p.HeightUnit = strings.ToLower(strings.TrimSpace(*input.HeightUnit))
	}
	if input.DarkMode != nil {
		p.DarkMode = *input.DarkMode
	}
	if input.Onboarded != nil {
		p.Onboarded = *input.Onboarded
	}

	if err := validate(p); err != nil {
		return nil, err
	}
	if p.AthleteType == "" {
		p.AthleteType = DefaultAthleteType
	}

	if err := s.repo.SaveProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpsertIdentity records the identity claims of an authenticated user without
// touching their preferences.
func (s *Service) UpsertIdentity(ctx context.Context, userID, email, avatarURL string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidProfile)
	}
	return s.repo.UpsertIdentity(ctx, userID, strings.TrimSpace(email), strings.TrimSpace(avatarURL))
}

func validate(p *Profile) error {
	if p.WeeklyWorkoutsTarget < 1 {
		return fmt.Errorf("%w: weekly workouts target must be at least 1", ErrInvalidProfile)
	}
	if p.WeeklyMealsTarget < 1 {
		return fmt.Errorf("%w: weekly meals target must be at least 1", ErrInvalidProfile)
	}
	if !positiveFinite(p.WeightKg) {
		return fmt.Errorf("%w: weight must be positive", ErrInvalidProfile)
	}
	if !positiveFinite(p.HeightCm) {
		return fmt.Errorf("%w: height must be positive", ErrInvalidProfile)
	}
	if p.WeightUnit != WeightUnitKg && p.WeightUnit != WeightUnitLbs {
		return fmt.Errorf("%w: unknown weight unit %q", ErrInvalidProfile, p.WeightUnit)
	}
	if p.HeightUnit != HeightUnitCm && p.HeightUnit != HeightUnitFt {
		return fmt.Errorf("%w: unknown height unit %q", ErrInvalidProfile, p.HeightUnit)
	}
	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// fillDefaults patches fields left empty by an identity-only upsert.
func fillDefaults(p *Profile) {
	d := Default(p.UserID)
	if p.AthleteType == "" {
		p.AthleteType = d.AthleteType
	}
	if p.WeightKg <= 0 {
		p.WeightKg = d.WeightKg
	}
	if p.HeightCm <= 0 {
		p.HeightCm = d.HeightCm
	}
	if p.WeeklyWorkoutsTarget <= 0 {
		p.WeeklyWorkoutsTarget = d.WeeklyWorkoutsTarget
	}
	if p.WeeklyMealsTarget <= 0 {
		p.WeeklyMealsTarget = d.WeeklyMealsTarget
	}
	if p.WeightUnit == "" {
		p.WeightUnit = d.WeightUnit
	}
	if p.HeightUnit == "" {
		p.HeightUnit = d.HeightUnit
	}
}
