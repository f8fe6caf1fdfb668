package handler

import (
	"errors"
	"net/http"
	"time"

	logdomain "fittrack-go/internal/domain/dailylog"
	"github.com/go-chi/chi/v5"
)

type saveLogRequest struct {
	Workouts int      `json:"workouts"`
	Meals    int      `json:"meals"`
	HasPR    bool     `json:"has_pr"`
	WeightKg *float64 `json:"weight_kg"`
	Notes    string   `json:"notes"`
}

type logResponse struct {
	Date      string     `json:"date"`
	Workouts  int        `json:"workouts"`
	Meals     int        `json:"meals"`
	HasPR     bool       `json:"has_pr"`
	WeightKg  *float64   `json:"weight_kg"`
	Notes     string     `json:"notes"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type logListResponse struct {
	Items []logResponse `json:"items"`
	Total int           `json:"total"`
}

func toLogResponse(l logdomain.DailyLog) logResponse {
	response := logResponse{
		Date:     l.Date.Format(logdomain.DateLayout),
		Workouts: l.Workouts,
		Meals:    l.Meals,
		HasPR:    l.HasPR,
		WeightKg: l.WeightKg,
		Notes:    l.Notes,
	}
	if !l.CreatedAt.IsZero() {
		created := l.CreatedAt
		response.CreatedAt = &created
	}
	if !l.UpdatedAt.IsZero() {
		updated := l.UpdatedAt
		response.UpdatedAt = &updated
	}
	return response
}

func toLogList(items []logdomain.DailyLog) logListResponse {
	response := make([]logResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toLogResponse(item))
	}
	return logListResponse{Items: response, Total: len(response)}
}

func (h *Handlers) ListLogs(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
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

	items, err := h.Logs.ListLogs(r.Context(), user.ID, logdomain.ListFilter{From: from, To: to})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toLogList(items))
}

func (h *Handlers) LogHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	days, err := parseIntParam(r.URL.Query().Get("days"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid days")
		return
	}

	items, err := h.Logs.History(r.Context(), user.ID, days)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toLogList(items))
}

// GetLog answers with an empty log for days that were never saved.
func (h *Handlers) GetLog(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateRequired(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid date")
		return
	}

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	item, err := h.Logs.GetLog(r.Context(), user.ID, date)
	if errors.Is(err, logdomain.ErrLogNotFound) {
		writeJSON(w, http.StatusOK, toLogResponse(logdomain.DailyLog{UserID: user.ID, Date: date}))
		return
	}
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toLogResponse(*item))
}

func (h *Handlers) SaveLog(w http.ResponseWriter, r *http.Request) {
	var req saveLogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	date, err := parseDateRequired(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid date")
		return
	}

	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	saved, err := h.Logs.SaveLog(r.Context(), logdomain.SaveLogInput{
		UserID:   user.ID,
		Date:     date,
		Workouts: req.Workouts,
		Meals:    req.Meals,
		HasPR:    req.HasPR,
		WeightKg: req.WeightKg,
		Notes:    req.Notes,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toLogResponse(*saved))
}
