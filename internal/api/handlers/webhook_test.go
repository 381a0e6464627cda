package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scamshield/internal/config"
	"scamshield/internal/domain/models"
	"scamshield/internal/domain/services"
	"scamshield/pkg/logger"
)

func newTestWebhookHandler(maxBatch int) *WebhookHandler {
	cfg := config.AnalysisConfig{MaxTextChars: 5000, MaxBatchSize: maxBatch}
	return NewWebhookHandler(cfg, services.NewAnalyzer(zerolog.Nop()), nil, logger.NewNop())
}

func TestWebhookValidation(t *testing.T) {
	h := newTestWebhookHandler(2)

	t.Run("empty batch", func(t *testing.T) {
		rec := postJSON(t, h.Messages, WebhookRequest{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("batch too large", func(t *testing.T) {
		rec := postJSON(t, h.Messages, WebhookRequest{Messages: []InboundMessage{
			{Text: "a"}, {Text: "b"}, {Text: "c"},
		}})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestWebhookReplies(t *testing.T) {
	h := newTestWebhookHandler(50)

	rec := postJSON(t, h.Messages, WebhookRequest{Messages: []InboundMessage{
		{MessageID: "m1", Text: "早安，吃飽了嗎？"},
		{MessageID: "m2", Text: "請立即匯款並提供驗證碼，逾期帳戶將被凍結"},
	}})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Replies []MessageReply `json:"replies"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Replies, 2)

	assert.Equal(t, "m1", resp.Replies[0].MessageID)
	assert.Equal(t, models.RiskLow, resp.Replies[0].RiskLevel)
	assert.Contains(t, resp.Replies[0].Reply, "風險評估：低")

	assert.Equal(t, models.RiskCritical, resp.Replies[1].RiskLevel)
	assert.Contains(t, resp.Replies[1].Reply, "風險評估：極高")
	assert.Contains(t, resp.Replies[1].Reply, "建議：")
}

func TestFormatReply(t *testing.T) {
	result := &models.AnalysisResult{
		RiskScore:          96,
		RiskLevel:          models.RiskCritical,
		Explanation:        "測試說明",
		RecommendedActions: []string{"動作一", "動作二"},
	}
	reply := FormatReply(result)

	lines := strings.Split(reply, "\n")
	assert.Equal(t, "風險評估：極高，極可能是詐騙（96/100）", lines[0])
	assert.Contains(t, reply, "測試說明")
	assert.Contains(t, reply, "1. 動作一")
	assert.Contains(t, reply, "2. 動作二")
}
