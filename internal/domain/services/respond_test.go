package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scamshield/internal/domain/models"
)

func TestPickScenarioPriority(t *testing.T) {
	hit := func(id string) ruleHit {
		for _, r := range defaultRules {
			if r.ID == id {
				return ruleHit{rule: r, evidence: []string{"x"}}
			}
		}
		t.Fatalf("unknown rule %s", id)
		return ruleHit{}
	}

	tests := []struct {
		name string
		hits []ruleHit
		text string
		want scenario
	}{
		{"investment beats romance", []ruleHit{hit(ruleRomance), hit(ruleInvestment)}, "", scenarioInvestment},
		{"romance beats impersonation", []ruleHit{hit(ruleImpersonation), hit(ruleRomance)}, "", scenarioRomance},
		{"impersonation beats transfer", []ruleHit{hit(ruleTransfer), hit(ruleImpersonation)}, "", scenarioCustomerService},
		{"transfer beats logistics", []ruleHit{hit(ruleLogistics), hit(ruleTransfer)}, "", scenarioTransfer},
		{"logistics beats job", []ruleHit{hit(ruleJob), hit(ruleLogistics)}, "", scenarioLogistics},
		{"sniff investment from text", nil, "這個平台保證獲利", scenarioInvestment},
		{"sniff logistics from text", nil, "你的包裹到了", scenarioLogistics},
		{"generic fallback", nil, "早安", scenarioGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pickScenario(tt.hits, tt.text))
		})
	}
}

func TestRecommendedActions(t *testing.T) {
	base := recommendedActions(models.RiskHigh, nil)
	assert.Equal(t, actionsByLevel[models.RiskHigh], base)

	withLogistics := recommendedActions(models.RiskHigh, []models.ScamType{models.ScamTypeLogistics})
	require.Len(t, withLogistics, len(base)+1)
	assert.Equal(t, actionsByType[models.ScamTypeLogistics], withLogistics[len(withLogistics)-1])

	// Appending must not mutate the shared level table.
	assert.Len(t, actionsByLevel[models.RiskHigh], 3)
}

func TestReplyTemplatesTruncation(t *testing.T) {
	assert.Len(t, replyTemplatesFor(scenarioTransfer, models.RiskLow), 3)
	assert.Len(t, replyTemplatesFor(scenarioTransfer, models.RiskMedium), 3)
	assert.Len(t, replyTemplatesFor(scenarioTransfer, models.RiskHigh), 5)
	assert.Len(t, replyTemplatesFor(scenarioTransfer, models.RiskCritical), 5)
	assert.Equal(t, replyTemplates[scenarioGeneric][:3], replyTemplatesFor("unknown", models.RiskLow))
}

func TestBuildExplanation(t *testing.T) {
	hits := []models.RuleHit{
		{Name: "索取個資/驗證碼", Score: 30},
		{Name: "要求匯款/點數", Score: 28},
		{Name: "投資詐騙", Score: 26},
		{Name: "急迫恐嚇", Score: 22},
	}
	got := buildExplanation(models.RiskCritical, hits)
	assert.Contains(t, got, "索取個資/驗證碼、要求匯款/點數、投資詐騙")
	assert.NotContains(t, got, "急迫恐嚇")

	assert.Contains(t, buildExplanation(models.RiskLow, hits[:1]), "風險偏低")
	assert.NotEmpty(t, buildExplanation(models.RiskMedium, nil))
}
