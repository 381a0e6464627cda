package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
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

func newTestAnalyzeHandler(t *testing.T) *AnalyzeHandler {
	t.Helper()
	cfg := config.AnalysisConfig{MaxTextChars: 5000, MaxBatchSize: 50}
	return NewAnalyzeHandler(cfg, services.NewAnalyzer(zerolog.Nop()), nil, nil, logger.NewNop())
}

func postJSON(t *testing.T, handler http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestAnalyzeHandlerValidation(t *testing.T) {
	h := newTestAnalyzeHandler(t)

	t.Run("missing text", func(t *testing.T) {
		rec := postJSON(t, h.Analyze, AnalyzeRequest{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		h.Analyze(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("text too long", func(t *testing.T) {
		rec := postJSON(t, h.Analyze, AnalyzeRequest{Text: strings.Repeat("騙", 5001)})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "too long")
	})

	t.Run("length limit counts runes not bytes", func(t *testing.T) {
		rec := postJSON(t, h.Analyze, AnalyzeRequest{Text: strings.Repeat("安", 5000)})
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAnalyzeHandlerResult(t *testing.T) {
	h := newTestAnalyzeHandler(t)

	rec := postJSON(t, h.Analyze, AnalyzeRequest{Text: "請立即匯款並提供驗證碼，逾期帳戶將被凍結"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AnalyzedAt string           `json:"analyzed_at"`
		RiskScore  int              `json:"risk_score"`
		RiskLevel  models.RiskLevel `json:"risk_level"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AnalyzedAt)
	assert.GreaterOrEqual(t, resp.RiskScore, 95)
	assert.Equal(t, models.RiskCritical, resp.RiskLevel)
}

func TestURLHandlerCheck(t *testing.T) {
	h := NewURLHandler(logger.NewNop())

	t.Run("missing url", func(t *testing.T) {
		rec := postJSON(t, h.Check, CheckRequest{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("shortener scored", func(t *testing.T) {
		rec := postJSON(t, h.Check, CheckRequest{URL: "http://bit.ly/abc"})
		require.Equal(t, http.StatusOK, rec.Code)

		var result models.SuspiciousURL
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, 25, result.Score)
		assert.Equal(t, "使用短網址服務", result.Reason)
	})
}
