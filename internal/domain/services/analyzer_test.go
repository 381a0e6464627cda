package services

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scamshield/internal/domain/models"
)

func newTestAnalyzer() *Analyzer {
	return NewAnalyzer(zerolog.Nop())
}

func ruleNames(result *models.AnalysisResult) []string {
	names := make([]string, len(result.TriggeredRules))
	for i, h := range result.TriggeredRules {
		names[i] = h.Name
	}
	return names
}

func TestAnalyzeEmptyInput(t *testing.T) {
	a := newTestAnalyzer()
	for _, text := range []string{"", "   ", "\n\t  \n"} {
		result := a.Analyze(text, nil)
		require.NotNil(t, result)
		assert.Equal(t, 0, result.RiskScore)
		assert.Equal(t, models.RiskLow, result.RiskLevel)
		assert.Equal(t, models.StageTrustBuilding, result.Stage)
		assert.Empty(t, result.ScamTypes)
		assert.Empty(t, result.TriggeredRules)
		assert.NotNil(t, result.ScamTypes)
		assert.NotNil(t, result.TriggeredRules)
		assert.NotEmpty(t, result.Explanation)
		assert.NotEmpty(t, result.RecommendedActions)
	}
}

func TestAnalyzeScoreBounds(t *testing.T) {
	a := newTestAnalyzer()
	texts := []string{
		"早安",
		"請立即匯款並提供驗證碼，警察說逾期帳戶將被凍結！點此 http://bit.ly/x 下載APP，" +
			"投資保證獲利，寶貝借我錢，包裹無法配送，刷單兼職日領，帳號 12345678901234。",
		"http://203.0.113.5/@x " + "http://bit.ly/a http://tinyurl.com/b https://x.y.z.w.xyz/c",
	}
	for _, text := range texts {
		result := a.Analyze(text, nil)
		assert.GreaterOrEqual(t, result.RiskScore, 0)
		assert.LessOrEqual(t, result.RiskScore, 100)
		assert.Contains(t, []models.RiskLevel{
			models.RiskLow, models.RiskMedium, models.RiskHigh, models.RiskCritical,
		}, result.RiskLevel)
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	a := newTestAnalyzer()
	text := "帳戶異常，請立即提供驗證碼，否則帳戶將被凍結"

	first, err := json.Marshal(a.Analyze(text, nil))
	require.NoError(t, err)
	second, err := json.Marshal(a.Analyze(text, nil))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestAnalyzeOTPGate(t *testing.T) {
	a := newTestAnalyzer()
	// A lone OTP solicitation scores low numerically but the gate
	// still forces the level up.
	result := a.Analyze("請提供簡訊驗證碼", nil)
	assert.Equal(t, models.RiskCritical, result.RiskLevel)
	assert.True(t, result.HasScamType(models.ScamTypeOTPRequest))
}

func TestAnalyzeTransferUrgencyGate(t *testing.T) {
	a := newTestAnalyzer()
	result := a.Analyze("請立即轉帳處理", nil)
	assert.GreaterOrEqual(t, result.RiskLevel.Rank(), models.RiskHigh.Rank())
}

func TestAnalyzeComboTransferOTPUrgency(t *testing.T) {
	a := newTestAnalyzer()
	result := a.Analyze("請立即匯款並提供驗證碼，逾期帳戶將被凍結", nil)

	assert.GreaterOrEqual(t, result.RiskScore, 95)
	assert.Equal(t, models.RiskCritical, result.RiskLevel)
	assert.Contains(t, ruleNames(result), "高危組合：匯款 + 驗證碼 + 急迫")
}

func TestAnalyzeScenarioAccountFreeze(t *testing.T) {
	a := newTestAnalyzer()
	result := a.Analyze("帳戶異常，請立即提供驗證碼，否則帳戶將被凍結", nil)

	names := ruleNames(result)
	assert.Contains(t, names, "假冒權威/客服")
	assert.Contains(t, names, "急迫恐嚇")
	assert.Contains(t, names, "索取個資/驗證碼")
	assert.Contains(t, names, "高危組合：假冒權威/客服 + 索取驗證碼")
	assert.Equal(t, models.RiskCritical, result.RiskLevel)
	assert.GreaterOrEqual(t, result.RiskScore, 85)
}

func TestAnalyzeScenarioInvestmentGroup(t *testing.T) {
	a := newTestAnalyzer()
	result := a.Analyze("老師保證獲利，加入群組跟單", nil)

	assert.True(t, result.HasScamType(models.ScamTypeInvestment))
	assert.Equal(t, models.StageTrustBuilding, result.Stage)
	require.NotEmpty(t, result.ReplyTemplates)
	assert.Equal(t, replyTemplates[scenarioInvestment][0], result.ReplyTemplates[0])
}

func TestAnalyzeScenarioGreeting(t *testing.T) {
	a := newTestAnalyzer()
	result := a.Analyze("早安，吃飽了嗎？", nil)

	assert.Equal(t, 0, result.RiskScore)
	assert.Equal(t, models.RiskLow, result.RiskLevel)
	assert.Empty(t, result.TriggeredRules)
	assert.Empty(t, result.ScamTypes)
	assert.Equal(t, "未觀察到明顯的詐騙話術特徵，但仍建議保持警覺、避免點擊不明連結。", result.Explanation)
}

func TestAnalyzeScenarioShortLinkOnly(t *testing.T) {
	a := newTestAnalyzer()
	result := a.Analyze("http://bit.ly/a1b2c3", nil)

	assert.GreaterOrEqual(t, result.RiskScore, linkOnlyFloor)
	assert.LessOrEqual(t, result.RiskLevel.Rank(), models.RiskMedium.Rank())
	assert.True(t, result.HasScamType(models.ScamTypePhishingLink))
	require.Len(t, result.SuspiciousURLs, 1)
	assert.Positive(t, result.SuspiciousURLs[0].Score)
	assert.LessOrEqual(t, result.SuspiciousURLs[0].Score, maxURLScore)
}

func TestAnalyzeStageProgression(t *testing.T) {
	a := newTestAnalyzer()
	tests := []struct {
		name string
		text string
		want models.Stage
	}{
		{"greeting stays early", "您好，我是客服人員", models.StageTrustBuilding},
		{"link pushes to click", "請點擊連結 http://short.example.tk/x 查看", models.StageClickInducement},
		{"otp pushes to data", "請提供驗證碼完成認證", models.StageDataSolicitation},
		{"payment wins over all", "請點擊連結並提供驗證碼後馬上匯款", models.StagePaymentDemand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Analyze(tt.text, nil).Stage)
		})
	}
}

func TestAnalyzeTriggeredRulesSorted(t *testing.T) {
	a := newTestAnalyzer()
	result := a.Analyze("請立即匯款並提供驗證碼，逾期帳戶將被凍結，點此 http://bit.ly/x", nil)

	require.NotEmpty(t, result.TriggeredRules)
	for i := 1; i < len(result.TriggeredRules); i++ {
		assert.GreaterOrEqual(t,
			result.TriggeredRules[i-1].Score, result.TriggeredRules[i].Score)
	}
	for _, h := range result.TriggeredRules {
		assert.LessOrEqual(t, len(h.EvidenceSentences), maxComboEvidence)
	}
}

func TestAnalyzeLongNumberBonus(t *testing.T) {
	a := newTestAnalyzer()
	base := a.Analyze("請匯款過來", nil)
	withAccount := a.Analyze("請匯款過來 1234567890123456", nil)
	assert.Greater(t, withAccount.RiskScore, base.RiskScore)
	assert.Contains(t, withAccount.Entities.LongNumbers, "1234567890123456")
}

func TestCompressScore(t *testing.T) {
	assert.Equal(t, 0, compressScore(-5))
	assert.Equal(t, 0, compressScore(0))
	assert.Equal(t, 90, compressScore(90))
	assert.Equal(t, 95, compressScore(100))
	assert.Equal(t, 100, compressScore(110))
	assert.Equal(t, 100, compressScore(500))
}

func TestScoreToLevelThresholds(t *testing.T) {
	tests := []struct {
		score int
		want  models.RiskLevel
	}{
		{0, models.RiskLow}, {34, models.RiskLow},
		{35, models.RiskMedium}, {64, models.RiskMedium},
		{65, models.RiskHigh}, {84, models.RiskHigh},
		{85, models.RiskCritical}, {100, models.RiskCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, scoreToLevel(tt.score), "score %d", tt.score)
	}
}
