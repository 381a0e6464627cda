package handlers

import (
	"encoding/json"
	"net/http"

	"scamshield/internal/domain/services"
	"scamshield/pkg/logger"
)

// URLHandler handles standalone URL risk checks
type URLHandler struct {
	logger *logger.Logger
}

// NewURLHandler creates a new URLHandler
func NewURLHandler(log *logger.Logger) *URLHandler {
	return &URLHandler{logger: log.WithComponent("url-handler")}
}

// CheckRequest is the request body for a URL check
type CheckRequest struct {
	URL string `json:"url"`
}

// Check handles POST /api/v1/url/check
func (h *URLHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	result := services.AnalyzeURL(req.URL)

	h.logger.Debug().Int("score", result.Score).Msg("url checked")
	writeJSON(w, http.StatusOK, result)
}
