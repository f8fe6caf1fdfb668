package handler

import (
	"errors"
	"net/http"
	"time"

	profiledomain "fittrack-go/internal/domain/profile"
)

var errInvalidUnit = errors.New("invalid unit")

type updateProfileRequest struct {
	Name                 *string  `json:"name"`
	AthleteType          *string  `json:"athlete_type"`
	WeightKg             *float64 `json:"weight_kg"`
	HeightCm             *float64 `json:"height_cm"`
	WeeklyWorkoutsTarget *int     `json:"weekly_workouts_target"`
	WeeklyMealsTarget    *int     `json:"weekly_meals_target"`
	WeightUnit           *string  `json:"weight_unit"`
	HeightUnit           *string  `json:"height_unit"`
	DarkMode             *bool    `json:"dark_mode"`
	Onboarded            *bool    `json:"onboarded"`
}

type profileResponse struct {
	UserID               string     `json:"user_id"`
	Name                 string     `json:"name"`
	Email                string     `json:"email"`
	AvatarURL            string     `json:"avatar_url"`
	AthleteType          string     `json:"athlete_type"`
	WeightKg             float64    `json:"weight_kg"`
	HeightCm             float64    `json:"height_cm"`
	WeeklyWorkoutsTarget int        `json:"weekly_workouts_target"`
	WeeklyMealsTarget    int        `json:"weekly_meals_target"`
	WeightUnit           string     `json:"weight_unit"`
	HeightUnit           string     `json:"height_unit"`
	DarkMode             bool       `json:"dark_mode"`
	Onboarded            bool       `json:"onboarded"`
	UpdatedAt            *time.Time `json:"updated_at,omitempty"`
}

func toProfileResponse(p profiledomain.Profile) profileResponse {
	response := profileResponse{
		UserID:               p.UserID,
		Name:                 p.Name,
		Email:                p.Email,
		AvatarURL:            p.AvatarURL,
		AthleteType:          p.AthleteType,
		WeightKg:             p.WeightKg,
		HeightCm:             p.HeightCm,
		WeeklyWorkoutsTarget: p.WeeklyWorkoutsTarget,
		WeeklyMealsTarget:    p.WeeklyMealsTarget,
		WeightUnit:           p.WeightUnit,
		HeightUnit:           p.HeightUnit,
		DarkMode:             p.DarkMode,
		Onboarded:            p.Onboarded,
	}
	if !p.UpdatedAt.IsZero() {
		updated := p.UpdatedAt
		response.UpdatedAt = &updated
	}
	return response
}

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	p, err := h.Profiles.Get(r.Context(), user.ID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(*p))
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	updated, err := h.Profiles.Update(r.Context(), profiledomain.UpdateProfileInput{
		UserID:               user.ID,
		Name:                 req.Name,
		AthleteType:          req.AthleteType,
		WeightKg:             req.WeightKg,
		HeightCm:             req.HeightCm,
		WeeklyWorkoutsTarget: req.WeeklyWorkoutsTarget,
		WeeklyMealsTarget:    req.WeeklyMealsTarget,
		WeightUnit:           req.WeightUnit,
		HeightUnit:           req.HeightUnit,
		DarkMode:             req.DarkMode,
		Onboarded:            req.Onboarded,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	// Targets feed the score, so cached summaries are stale now.
	h.Summaries.Invalidate(user.ID)

	writeJSON(w, http.StatusOK, toProfileResponse(*updated))
}
