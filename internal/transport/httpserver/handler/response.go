package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	logdomain "fittrack-go/internal/domain/dailylog"
	nutritiondomain "fittrack-go/internal/domain/nutrition"
	profiledomain "fittrack-go/internal/domain/profile"
	workoutdomain "fittrack-go/internal/domain/workout"
	"fittrack-go/internal/transport/httpserver/middleware"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func currentUser(w http.ResponseWriter, r *http.Request) (middleware.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
	}
	return user, ok
}

type errorMapping struct {
	target error
	status int
	code   string
}

var domainErrors = []errorMapping{
	{workoutdomain.ErrExerciseNotFound, http.StatusNotFound, "exercise_not_found"},
	{workoutdomain.ErrWorkoutNotFound, http.StatusNotFound, "workout_not_found"},
	{workoutdomain.ErrIndexOutOfRange, http.StatusNotFound, "index_out_of_range"},
	{workoutdomain.ErrLastSet, http.StatusConflict, "last_set"},
	{workoutdomain.ErrEmptyWorkout, http.StatusUnprocessableEntity, "empty_workout"},
	{workoutdomain.ErrInvalidSetField, http.StatusBadRequest, "invalid_request"},
	{workoutdomain.ErrInvalidSetValue, http.StatusBadRequest, "invalid_request"},
	{workoutdomain.ErrInvalidWorkout, http.StatusBadRequest, "invalid_request"},
	{workoutdomain.ErrInvalidDateRange, http.StatusBadRequest, "invalid_request"},
	{logdomain.ErrLogNotFound, http.StatusNotFound, "log_not_found"},
	{logdomain.ErrInvalidLog, http.StatusBadRequest, "invalid_request"},
	{logdomain.ErrInvalidPeriod, http.StatusBadRequest, "invalid_request"},
	{logdomain.ErrInvalidDateRange, http.StatusBadRequest, "invalid_request"},
	{profiledomain.ErrInvalidProfile, http.StatusBadRequest, "invalid_request"},
	{nutritiondomain.ErrAnalyzerDisabled, http.StatusServiceUnavailable, "analyzer_disabled"},
	{nutritiondomain.ErrInvalidImage, http.StatusBadRequest, "invalid_image"},
	{nutritiondomain.ErrImageTooLarge, http.StatusRequestEntityTooLarge, "image_too_large"},
	{nutritiondomain.ErrMalformedAnalysis, http.StatusBadGateway, "analysis_failed"},
}

// writeServiceError maps domain errors to their HTTP form. Anything unknown is
// logged as an internal error and hidden from the client.
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range domainErrors {
		if errors.Is(err, m.target) {
			writeError(w, m.status, m.code, err.Error())
			return
		}
	}

	userID, _ := middleware.UserIDFromContext(r.Context())
	h.log.InternalError("http: request failed", err, "method", r.Method, "path", r.URL.Path, "user_id", userID)
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
