package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"scamshield/internal/config"
	"scamshield/internal/domain/models"
	"scamshield/internal/domain/services"
	"scamshield/internal/infrastructure/cache"
	"scamshield/pkg/logger"
)

// WebhookHandler relays inbound messaging-platform messages through
// the analyzer and answers with a plain-text reply per message.
type WebhookHandler struct {
	cfg      config.AnalysisConfig
	analyzer *services.Analyzer
	cache    *cache.RedisCache
	logger   *logger.Logger
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(cfg config.AnalysisConfig, analyzer *services.Analyzer, c *cache.RedisCache, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		cfg:      cfg,
		analyzer: analyzer,
		cache:    c,
		logger:   log.WithComponent("webhook-handler"),
	}
}

// InboundMessage is one relayed message
type InboundMessage struct {
	MessageID string `json:"message_id,omitempty"`
	Text      string `json:"text"`
}

// WebhookRequest is the relay payload
type WebhookRequest struct {
	Messages []InboundMessage `json:"messages"`
}

// MessageReply is the per-message verdict with a ready-to-send reply.
type MessageReply struct {
	MessageID string           `json:"message_id,omitempty"`
	RiskScore int              `json:"risk_score"`
	RiskLevel models.RiskLevel `json:"risk_level"`
	Reply     string           `json:"reply"`
}

// Messages handles POST /webhook/messages
func (h *WebhookHandler) Messages(w http.ResponseWriter, r *http.Request) {
	var req WebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, "at least one message is required")
		return
	}
	if max := h.cfg.MaxBatchSize; max > 0 && len(req.Messages) > max {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("maximum %d messages per batch", max))
		return
	}

	replies := make([]MessageReply, 0, len(req.Messages))
	for _, msg := range req.Messages {
		result := h.analyzer.Analyze(msg.Text, nil)
		if h.cache != nil {
			if err := h.cache.RecordAnalysis(r.Context(), result); err != nil {
				h.logger.Warn().Err(err).Msg("failed to record stats")
			}
		}
		replies = append(replies, MessageReply{
			MessageID: msg.MessageID,
			RiskScore: result.RiskScore,
			RiskLevel: result.RiskLevel,
			Reply:     FormatReply(result),
		})
	}

	h.logger.Info().Int("messages", len(replies)).Msg("webhook batch analyzed")
	writeJSON(w, http.StatusOK, map[string]any{"replies": replies})
}

// Per-level headline for the plain-text reply.
var replyHeadlines = map[models.RiskLevel]string{
	models.RiskLow:      "風險評估：低",
	models.RiskMedium:   "風險評估：中",
	models.RiskHigh:     "風險評估：高，這很可能是詐騙",
	models.RiskCritical: "風險評估：極高，極可能是詐騙",
}

// FormatReply renders an analysis result as a single plain-text
// message suitable for a chat reply.
func FormatReply(result *models.AnalysisResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s（%d/100）\n", replyHeadlines[result.RiskLevel], result.RiskScore)
	b.WriteString(result.Explanation)
	if len(result.RecommendedActions) > 0 {
		b.WriteString("\n建議：")
		for i, action := range result.RecommendedActions {
			fmt.Fprintf(&b, "\n%d. %s", i+1, action)
		}
	}
	return b.String()
}
