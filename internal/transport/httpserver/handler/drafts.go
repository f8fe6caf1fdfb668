package handler

import (
	"net/http"
	"strings"

	workoutdomain "fittrack-go/internal/domain/workout"
	"github.com/go-chi/chi/v5"
)

type addDraftExerciseRequest struct {
	ExerciseID string `json:"exercise_id"`
}

type updateDraftSetRequest struct {
	Field string   `json:"field"`
	Value *float64 `json:"value"`
}

type saveDraftRequest struct {
	Date  string `json:"date"`
	Notes string `json:"notes"`
}

type draftResponse struct {
	Exercises         []workoutdomain.Exercise `json:"exercises"`
	TotalCalories     int                      `json:"total_calories"`
	EstimatedDuration int                      `json:"estimated_duration_minutes"`
}

func toDraftResponse(s workoutdomain.Session) draftResponse {
	exercises := s.Exercises
	if exercises == nil {
		exercises = []workoutdomain.Exercise{}
	}
	return draftResponse{
		Exercises:         exercises,
		TotalCalories:     s.TotalCalories(),
		EstimatedDuration: s.DurationEstimate(),
	}
}

func (h *Handlers) writeDraft(w http.ResponseWriter, r *http.Request, draft workoutdomain.Session, err error) {
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDraftResponse(draft))
}

func (h *Handlers) GetDraft(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toDraftResponse(h.Workouts.GetDraft(user.ID)))
}

func (h *Handlers) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	h.Workouts.DiscardDraft(user.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) AddDraftExercise(w http.ResponseWriter, r *http.Request) {
	var req addDraftExerciseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if strings.TrimSpace(req.ExerciseID) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "exercise_id is required")
		return
	}

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	draft, err := h.Workouts.AddDraftExercise(user.ID, strings.TrimSpace(req.ExerciseID))
	h.writeDraft(w, r, draft, err)
}

func (h *Handlers) RemoveDraftExercise(w http.ResponseWriter, r *http.Request) {
	index, err := parseIndex(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid exercise index")
		return
	}

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	draft, err := h.Workouts.RemoveDraftExercise(user.ID, index)
	h.writeDraft(w, r, draft, err)
}

func (h *Handlers) AddDraftSet(w http.ResponseWriter, r *http.Request) {
	index, err := parseIndex(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid exercise index")
		return
	}

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	draft, err := h.Workouts.AddDraftSet(user.ID, index)
	h.writeDraft(w, r, draft, err)
}

func (h *Handlers) RemoveDraftSet(w http.ResponseWriter, r *http.Request) {
	index, err := parseIndex(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid exercise index")
		return
	}
	set, err := parseIndex(chi.URLParam(r, "set"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid set index")
		return
	}

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	draft, err := h.Workouts.RemoveDraftSet(user.ID, index, set)
	h.writeDraft(w, r, draft, err)
}

func (h *Handlers) UpdateDraftSet(w http.ResponseWriter, r *http.Request) {
	var req updateDraftSetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.Value == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "value is required")
		return
	}

	index, err := parseIndex(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid exercise index")
		return
	}
	set, err := parseIndex(chi.URLParam(r, "set"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid set index")
		return
	}

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	draft, err := h.Workouts.UpdateDraftSet(workoutdomain.UpdateSetInput{
		UserID:        user.ID,
		ExerciseIndex: index,
		SetIndex:      set,
		Field:         workoutdomain.SetField(strings.ToLower(strings.TrimSpace(req.Field))),
		Value:         *req.Value,
	})
	h.writeDraft(w, r, draft, err)
}

func (h *Handlers) SaveDraft(w http.ResponseWriter, r *http.Request) {
	var req saveDraftRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
			return
		}
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

	saved, err := h.Workouts.SaveDraft(r.Context(), workoutdomain.SaveDraftInput{
		UserID: user.ID,
		Date:   date,
		Notes:  req.Notes,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toWorkoutResponse(*saved))
}
