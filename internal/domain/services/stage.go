package services

import (
	"strings"

	"scamshield/internal/domain/models"
)

// Per-stage keyword indicators, checked against the normalized text.
// Listed least to most advanced.
var stageKeywords = []struct {
	stage    models.Stage
	keywords []string
}{
	{models.StageTrustBuilding, []string{
		"您好", "你好", "恭喜", "中獎", "老師", "寶貝", "想你",
		"官方", "客服", "通知", "親愛的",
	}},
	{models.StageClickInducement, []string{
		"點此", "點擊", "連結", "網址", "下載", "安裝", "登入", "加LINE", "加賴",
	}},
	{models.StageDataSolicitation, []string{
		"驗證碼", "OTP", "身分證", "帳號", "密碼", "卡號", "CVV", "個資",
	}},
	{models.StagePaymentDemand, []string{
		"匯款", "轉帳", "付款", "繳費", "儲值", "購買點數", "保證金", "手續費",
	}},
}

// classifyStage infers how far along the scam lifecycle the message
// is. Indicators are stage keywords in the text, URL entities (a link
// implies click inducement) and the stage tags of fired rules; the
// most advanced indicated stage wins. No indicators means the message
// is at most opening moves, so trust_building.
func classifyStage(normalized string, ents models.Entities, hits []ruleHit) models.Stage {
	stage := models.StageTrustBuilding

	for _, sk := range stageKeywords {
		if sk.stage.Rank() <= stage.Rank() {
			continue
		}
		for _, kw := range sk.keywords {
			if containsFold(normalized, kw) {
				stage = sk.stage
				break
			}
		}
	}

	if len(ents.URLs) > 0 && models.StageClickInducement.Rank() > stage.Rank() {
		stage = models.StageClickInducement
	}

	for _, h := range hits {
		if h.rule.Stage != "" && h.rule.Stage.Rank() > stage.Rank() {
			stage = h.rule.Stage
		}
	}
	return stage
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
