package services

import (
	"fmt"
	"sort"
	"strings"

	"scamshield/internal/domain/models"
)

var actionsByLevel = map[models.RiskLevel][]string{
	models.RiskLow: {
		"先別急著回覆，確認對方身份與來意。",
		"不要點擊不明連結或下載不明 App。",
		"涉及帳務改用官網/官方客服自行查詢（不要用對方給的電話或連結）。",
	},
	models.RiskMedium: {
		"停止提供任何個資、帳號、驗證碼、卡號等資訊。",
		"改用『你自己找得到的官方管道』回撥確認（例如銀行官網客服）。",
		"把對話截圖保存，必要時找可信任的人一起判斷。",
	},
	models.RiskHigh: {
		"立刻停止匯款/購買點數/任何付款動作。",
		"若已提供驗證碼或密碼，立即改密碼並聯繫銀行/平台客服凍結風險操作。",
		"保存證據（對話、帳號、連結、匯款資訊），考慮報警或打 165 查證。",
	},
	models.RiskCritical: {
		"立即停止所有交易，並立刻聯繫銀行做止付/凍結/爭議處理。",
		"若已轉帳或買點數，立刻保留憑證、截圖，打 165 並就近報案。",
		"不要再與對方糾纏，所有聯絡改由官方/警方處理。",
	},
}

// Extra advice appended when a specific category was detected.
var actionsByType = map[models.ScamType]string{
	models.ScamTypeLogistics:  "物流問題請用原購物平台或貨運公司官網的單號查詢，不要透過簡訊連結處理。",
	models.ScamTypeJobTask:    "任何要求先墊付、先儲值的兼職都是詐騙，不要支付任何款項。",
	models.ScamTypeInvestment: "投資請透過合法券商/交易所，查證平台是否經金管會核准。",
}

type scenario string

const (
	scenarioInvestment      scenario = "investment"
	scenarioRomance         scenario = "romance"
	scenarioCustomerService scenario = "customer_service"
	scenarioTransfer        scenario = "transfer"
	scenarioLogistics       scenario = "logistics"
	scenarioJob             scenario = "job_task"
	scenarioGeneric         scenario = "generic"
)

var replyTemplates = map[scenario][]string{
	scenarioCustomerService: {
		"我會透過官方網站/APP 的客服管道自行查詢，請勿再要求我提供驗證碼或遠端操作。",
		"若真有異常，請提供案件編號與可供我『自行查證』的官方資訊。",
		"我不會點擊任何連結或下載任何 App，請用正式公告或官方客服說明。",
		"我會保留對話紀錄並向 165 查證，謝謝。",
		"請勿再以『立刻處理/否則凍結』施壓，我只接受官方流程。",
	},
	scenarioTransfer: {
		"我不會轉帳、買點數或提供任何付款資訊；若有需要請走正式平台流程。",
		"請提供正式帳單/合約與官方聯絡方式，我會自行向官方確認。",
		"任何要求我『立刻匯款』的訊息我都會先當成高風險處理。",
		"我會保留對話與收款資訊，必要時提供給 165/警方。",
		"請停止要求我付款或提供驗證碼。",
	},
	scenarioInvestment: {
		"我不接受保證獲利或帶單投資，請勿再邀我入群或提供平台連結。",
		"我會自行評估並透過合法券商/交易所操作，不會私下入金或提供個資。",
		"請不要再推『內幕/明牌/限時機會』，我不會跟單。",
		"任何要求轉帳到私人帳戶的投資邀約我都會直接拒絕。",
		"我會向 165 查證該平台/群組資訊。",
	},
	scenarioRomance: {
		"我理解你的狀況，但我不會以轉帳/買點數方式協助金錢需求。",
		"如果真的需要幫忙，請你找身邊家人朋友或正式機構處理。",
		"任何『急用錢、保證金、解凍金』我都不會支付，請理解。",
		"我們可以聊，但金錢往來我一律拒絕。",
		"我會保留對話紀錄，避免誤會與風險。",
	},
	scenarioLogistics: {
		"我會用原購物平台的訂單頁面自行查詢物流狀態，不會點擊簡訊裡的連結。",
		"若包裹真的有問題，請貨運公司透過官方 App 或官網通知我。",
		"我不會在任何連結頁面補繳運費或填寫卡號。",
		"我會保留這則訊息並向 165 查證，謝謝。",
		"請勿再傳送任何取件或補費連結給我。",
	},
	scenarioJob: {
		"我不做任何需要先墊付或先儲值的工作，請勿再聯絡。",
		"正當工作不會要求員工先付錢，我會向 165 查證這個職缺。",
		"請提供公司統編與正式勞動契約，否則我不會繼續對話。",
		"我不會提供銀行帳戶或身分證件供『接單』使用。",
		"我會保留對話紀錄，必要時提供給警方。",
	},
	scenarioGeneric: {
		"我不會提供驗證碼、帳號密碼或任何個資，也不會點擊不明連結。",
		"請提供可供我自行查證的官方資訊，否則我會停止對話。",
		"我會保留對話紀錄並向 165 查證，謝謝。",
		"請勿催促我做任何付款或驗證動作。",
		"之後我只透過官方管道處理。",
	},
}

// Scenario fallbacks sniffed from the raw text when no rule decides.
var scenarioSniff = []struct {
	s        scenario
	keywords []string
}{
	{scenarioInvestment, []string{"投資", "獲利", "帶單", "usdt", "btc", "平台"}},
	{scenarioRomance, []string{"寶貝", "想你", "借我", "急用錢", "醫藥費"}},
	{scenarioCustomerService, []string{"客服", "銀行", "警察", "檢察官", "系統通知"}},
	{scenarioLogistics, []string{"包裹", "物流", "宅配", "取件"}},
	{scenarioJob, []string{"刷單", "兼職", "日領"}},
}

// pickScenario maps fired rules to a reply scenario. Priority reflects
// how targeted the matching template set is; keyword sniffing only
// decides when no rule did.
func pickScenario(hits []ruleHit, text string) scenario {
	fired := make(map[string]bool, len(hits))
	for _, h := range hits {
		fired[h.rule.ID] = true
	}

	switch {
	case fired[ruleInvestment]:
		return scenarioInvestment
	case fired[ruleRomance]:
		return scenarioRomance
	case fired[ruleImpersonation]:
		return scenarioCustomerService
	case fired[ruleTransfer]:
		return scenarioTransfer
	case fired[ruleLogistics]:
		return scenarioLogistics
	case fired[ruleJob]:
		return scenarioJob
	}

	lower := strings.ToLower(text)
	for _, sn := range scenarioSniff {
		for _, kw := range sn.keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return sn.s
			}
		}
	}
	return scenarioGeneric
}

// recommendedActions returns the fixed per-level advice plus any
// category-specific supplements, in scam-type order of the result.
func recommendedActions(level models.RiskLevel, types []models.ScamType) []string {
	actions := make([]string, len(actionsByLevel[level]))
	copy(actions, actionsByLevel[level])
	for _, t := range types {
		if extra, ok := actionsByType[t]; ok {
			actions = append(actions, extra)
		}
	}
	return actions
}

// replyTemplatesFor truncates the scenario template set by urgency:
// low-risk replies stay short, high-risk ones include the full set.
func replyTemplatesFor(s scenario, level models.RiskLevel) []string {
	templates, ok := replyTemplates[s]
	if !ok {
		templates = replyTemplates[scenarioGeneric]
	}
	n := 3
	if level == models.RiskHigh || level == models.RiskCritical {
		n = 5
	}
	if n > len(templates) {
		n = len(templates)
	}
	out := make([]string, n)
	copy(out, templates[:n])
	return out
}

// buildExplanation summarizes the verdict in Traditional Chinese,
// naming the top three contributing rules.
func buildExplanation(level models.RiskLevel, hits []models.RuleHit) string {
	if len(hits) == 0 {
		return "未觀察到明顯的詐騙話術特徵，但仍建議保持警覺、避免點擊不明連結。"
	}

	top := make([]models.RuleHit, len(hits))
	copy(top, hits)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Score > top[j].Score })
	if len(top) > 3 {
		top = top[:3]
	}
	names := make([]string, len(top))
	for i, h := range top {
		names[i] = h.Name
	}
	tags := strings.Join(names, "、")

	switch level {
	case models.RiskLow:
		return fmt.Sprintf("文字中出現一些可疑訊號（%s），但整體風險偏低；建議先查證再回覆。", tags)
	case models.RiskMedium:
		return fmt.Sprintf("文字中有多個常見詐騙特徵（%s），風險中等；建議停止提供個資並改用官方管道查證。", tags)
	case models.RiskHigh:
		return fmt.Sprintf("文字中出現高風險特徵（%s），很可能是詐騙；建議立刻停止付款/提供驗證碼並保存證據。", tags)
	default:
		return fmt.Sprintf("文字中出現多項高危組合（%s），極可能是詐騙；請立即止付、保存證據並聯繫 165 或警方。", tags)
	}
}
