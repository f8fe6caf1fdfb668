package handler

import (
	"net/http"

	nutritiondomain "fittrack-go/internal/domain/nutrition"
)

type analyzeRequest struct {
	ImageBase64 string `json:"image_base64"`
	MIMEType    string `json:"mime_type"`
}

func (h *Handlers) AnalyzeMeal(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	if _, ok := currentUser(w, r); !ok {
		return
	}

	analysis, err := h.Nutrition.Analyze(r.Context(), nutritiondomain.AnalyzeInput{
		ImageBase64: req.ImageBase64,
		MIMEType:    req.MIMEType,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}
