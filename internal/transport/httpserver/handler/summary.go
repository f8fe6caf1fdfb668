package handler

import (
	"net/http"
	"strings"

	logdomain "fittrack-go/internal/domain/dailylog"
	profiledomain "fittrack-go/internal/domain/profile"
	summarydomain "fittrack-go/internal/domain/summary"
)

type bodyResponse struct {
	WeightUnit string `json:"weight_unit"`
	HeightUnit string `json:"height_unit"`
	Weight     string `json:"weight"`
	Height     string `json:"height"`
}

type summaryResponse struct {
	summarydomain.Summary
	From string       `json:"from"`
	To   string       `json:"to"`
	Body bodyResponse `json:"body"`
}

func (h *Handlers) GetSummary(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	period, err := logdomain.ParsePeriod(query.Get("period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "period must be weekly or monthly")
		return
	}
	weightUnit, err := unitParam(query.Get("weight_unit"), profiledomain.WeightUnitKg, profiledomain.WeightUnitLbs)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid weight_unit")
		return
	}
	heightUnit, err := unitParam(query.Get("height_unit"), profiledomain.HeightUnitCm, profiledomain.HeightUnitFt)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid height_unit")
		return
	}

	result, err := h.Summaries.Summary(r.Context(), user.ID, period, h.now())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	p, err := h.Profiles.Get(r.Context(), user.ID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if weightUnit == "" {
		weightUnit = p.WeightUnit
	}
	if heightUnit == "" {
		heightUnit = p.HeightUnit
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		Summary: result,
		From:    result.From.Format(logdomain.DateLayout),
		To:      result.To.Format(logdomain.DateLayout),
		Body: bodyResponse{
			WeightUnit: weightUnit,
			HeightUnit: heightUnit,
			Weight:     displayWeight(p.WeightKg, weightUnit),
			Height:     displayHeight(p.HeightCm, heightUnit),
		},
	})
}

// unitParam accepts one of the allowed units or an empty value.
func unitParam(value string, allowed ...string) (string, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return "", nil
	}
	for _, unit := range allowed {
		if value == unit {
			return value, nil
		}
	}
	return "", errInvalidUnit
}
