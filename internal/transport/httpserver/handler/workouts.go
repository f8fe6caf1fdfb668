package handler

import (
	"net/http"
	"strings"
	"time"

	logdomain "fittrack-go/internal/domain/dailylog"
	workoutdomain "fittrack-go/internal/domain/workout"
	"github.com/go-chi/chi/v5"
)

type setRequest struct {
	Reps     int     `json:"reps"`
	WeightKg float64 `json:"weight_kg"`
}

type exerciseRequest struct {
	ExerciseID string       `json:"exercise_id"`
	Sets       []setRequest `json:"sets"`
}

type createWorkoutRequest struct {
	Date      string            `json:"date"`
	Notes     string            `json:"notes"`
	Exercises []exerciseRequest `json:"exercises"`
}

type workoutResponse struct {
	ID              string                   `json:"id"`
	Date            string                   `json:"date"`
	Exercises       []workoutdomain.Exercise `json:"exercises"`
	TotalCalories   int                      `json:"total_calories"`
	DurationMinutes int                      `json:"duration_minutes"`
	Notes           string                   `json:"notes"`
	CreatedAt       time.Time                `json:"created_at"`
}

type workoutListResponse struct {
	Items []workoutResponse `json:"items"`
	Total int64             `json:"total"`
}

func toWorkoutResponse(w workoutdomain.Workout) workoutResponse {
	exercises := w.Exercises
	if exercises == nil {
		exercises = []workoutdomain.Exercise{}
	}
	return workoutResponse{
		ID:              w.ID,
		Date:            w.Date.Format(logdomain.DateLayout),
		Exercises:       exercises,
		TotalCalories:   w.TotalCalories,
		DurationMinutes: w.DurationMinutes,
		Notes:           w.Notes,
		CreatedAt:       w.CreatedAt,
	}
}

func toWorkoutList(items []workoutdomain.Workout, total int64) workoutListResponse {
	response := make([]workoutResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toWorkoutResponse(item))
	}
	return workoutListResponse{Items: response, Total: total}
}

func (h *Handlers) ListWorkouts(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	if date := query.Get("date"); date != "" {
		day, err := parseDateRequired(date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid date")
			return
		}
		items, err := h.Workouts.ListWorkoutsForDate(r.Context(), user.ID, day)
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toWorkoutList(items, int64(len(items))))
		return
	}

	from, err := parseDateParam(query.Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid from date")
		return
	}
	to, err := parseDateParam(query.Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid to date")
		return
	}
	limit, err := parseIntParam(query.Get("limit"), 50)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid limit")
		return
	}
	offset, err := parseIntParam(query.Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid offset")
		return
	}

	items, total, err := h.Workouts.ListWorkouts(r.Context(), user.ID, workoutdomain.ListFilter{
		From:   from,
		To:     to,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toWorkoutList(items, total))
}

func (h *Handlers) CreateWorkout(w http.ResponseWriter, r *http.Request) {
	var req createWorkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	date, err := parseDateOptional(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid date")
		return
	}

	input := workoutdomain.CreateWorkoutInput{
		UserID: user.ID,
		Date:   date,
		Notes:  req.Notes,
	}
	for _, ex := range req.Exercises {
		entry := workoutdomain.ExerciseInput{ExerciseID: strings.TrimSpace(ex.ExerciseID)}
		for _, set := range ex.Sets {
			entry.Sets = append(entry.Sets, workoutdomain.SetInput{Reps: set.Reps, WeightKg: set.WeightKg})
		}
		input.Exercises = append(input.Exercises, entry)
	}

	created, err := h.Workouts.CreateWorkout(r.Context(), input)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toWorkoutResponse(*created))
}

func (h *Handlers) GetWorkout(w http.ResponseWriter, r *http.Request) {
	workoutID := strings.TrimSpace(chi.URLParam(r, "id"))
	if workoutID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	item, err := h.Workouts.GetWorkout(r.Context(), user.ID, workoutID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toWorkoutResponse(*item))
}

func (h *Handlers) DeleteWorkout(w http.ResponseWriter, r *http.Request) {
	workoutID := strings.TrimSpace(chi.URLParam(r, "id"))
	if workoutID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.Workouts.DeleteWorkout(r.Context(), user.ID, workoutID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
