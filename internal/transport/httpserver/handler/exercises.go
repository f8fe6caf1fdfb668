package handler

import (
	"fmt"
	"net/http"
	"strings"

	"fittrack-go/internal/domain/catalog"
	workoutdomain "fittrack-go/internal/domain/workout"
	"github.com/go-chi/chi/v5"
)

type estimateRequest struct {
	Sets     int     `json:"sets"`
	Reps     int     `json:"reps"`
	WeightKg float64 `json:"weight_kg"`
}

type estimateResponse struct {
	ExerciseID string `json:"exercise_id"`
	Calories   int    `json:"calories"`
}

type exerciseListResponse struct {
	Items []catalog.Exercise `json:"items"`
	Total int                `json:"total"`
}

func (h *Handlers) ListExercises(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))

	var items []catalog.Exercise
	if category == "" {
		items = catalog.All()
	} else {
		items = catalog.ByCategory(catalog.Category(category))
	}

	writeJSON(w, http.StatusOK, exerciseListResponse{Items: items, Total: len(items)})
}

func (h *Handlers) ListExerciseCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": catalog.Categories()})
}

func (h *Handlers) GetExercise(w http.ResponseWriter, r *http.Request) {
	ex, ok := catalog.Lookup(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "exercise_not_found", "exercise not found")
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

func (h *Handlers) EstimateExercise(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.Sets < 0 || req.Reps < 0 || req.WeightKg < 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "sets, reps and weight_kg must not be negative")
		return
	}
	if req.Sets > workoutdomain.MaxSets || req.Reps > workoutdomain.MaxReps || req.WeightKg > workoutdomain.MaxWeightKg {
		writeError(w, http.StatusBadRequest, "invalid_request", fmt.Sprintf(
			"sets, reps and weight_kg must not exceed %d, %d and %d", workoutdomain.MaxSets, workoutdomain.MaxReps, workoutdomain.MaxWeightKg))
		return
	}

	exerciseID := chi.URLParam(r, "id")
	if _, ok := catalog.Lookup(exerciseID); !ok {
		writeError(w, http.StatusNotFound, "exercise_not_found", "exercise not found")
		return
	}

	writeJSON(w, http.StatusOK, estimateResponse{
		ExerciseID: exerciseID,
		Calories:   workoutdomain.Estimate(exerciseID, req.Sets, req.Reps, req.WeightKg),
	})
}
