package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"scamshield/internal/config"
	"scamshield/internal/domain/models"
	"scamshield/internal/domain/services"
	"scamshield/internal/infrastructure/cache"
	"scamshield/internal/streaming"
	"scamshield/pkg/logger"
)

// AnalyzeHandler handles message analysis endpoints
type AnalyzeHandler struct {
	cfg       config.AnalysisConfig
	analyzer  *services.Analyzer
	cache     *cache.RedisCache
	publisher *streaming.NATSPublisher
	logger    *logger.Logger
}

// NewAnalyzeHandler creates a new AnalyzeHandler
func NewAnalyzeHandler(cfg config.AnalysisConfig, analyzer *services.Analyzer, c *cache.RedisCache, pub *streaming.NATSPublisher, log *logger.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		cfg:       cfg,
		analyzer:  analyzer,
		cache:     c,
		publisher: pub,
		logger:    log.WithComponent("analyze-handler"),
	}
}

// AnalyzeRequest is the request body for message analysis
type AnalyzeRequest struct {
	Text    string         `json:"text"`
	Context map[string]any `json:"context,omitempty"`
}

// AnalyzeResponse wraps the engine result with request metadata.
type AnalyzeResponse struct {
	RequestID  string `json:"request_id,omitempty"`
	AnalyzedAt string `json:"analyzed_at"`
	*models.AnalysisResult
}

// Analyze handles POST /api/v1/analyze
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug().Err(err).Msg("invalid request body")
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	if max := h.cfg.MaxTextChars; max > 0 && len([]rune(req.Text)) > max {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("text too long (max %d characters)", max))
		return
	}

	result := h.analyzer.Analyze(req.Text, req.Context)

	h.recordAndPublish(r, result)

	h.logger.Info().
		Int("score", result.RiskScore).
		Str("level", string(result.RiskLevel)).
		Str("stage", string(result.Stage)).
		Msg("message analyzed")

	writeJSON(w, http.StatusOK, AnalyzeResponse{
		RequestID:      middleware.GetReqID(r.Context()),
		AnalyzedAt:     time.Now().UTC().Format(time.RFC3339),
		AnalysisResult: result,
	})
}

// recordAndPublish updates anonymized counters and emits the analysis
// event. Both are best-effort; the response never waits on them to
// succeed.
func (h *AnalyzeHandler) recordAndPublish(r *http.Request, result *models.AnalysisResult) {
	if h.cache != nil {
		if err := h.cache.RecordAnalysis(r.Context(), result); err != nil {
			h.logger.Warn().Err(err).Msg("failed to record stats")
		}
	}
	if err := h.publisher.PublishAnalysis(r.Context(), streaming.NewAnalysisEvent(result)); err != nil {
		h.logger.Warn().Err(err).Msg("failed to publish analysis event")
	}
}
