package services

import (
	"regexp"
	"strings"

	"scamshield/internal/domain/models"
)

// Keyword vocabularies, Traditional Chinese. Grouped by the tactic they
// signal; each group backs exactly one rule.
var scamKeywords = map[string][]string{
	"urgency_threat": {
		"立即", "馬上", "立刻", "現在就", "最後通知", "限時", "逾期", "超時",
		"不配合", "不處理", "將", "會", "凍結", "停用", "封鎖", "提告", "告發",
		"刑責", "移送", "法院", "偵辦", "拘提", "扣押", "罰款",
	},
	"transfer_payment": {
		"匯款", "轉帳", "匯入", "匯到", "匯至", "匯給", "刷流水",
		"點數", "遊戲點數", "購買點數", "儲值", "代充", "禮物卡", "序號",
		"ATM", "無卡", "超商繳費", "超商代碼", "繳費代碼",
		"掃碼", "QR", "收款碼", "轉錢", "打錢", "匯錢",
		"保證金", "解凍金", "手續費", "驗證金", "押金", "保證費",
	},
	"otp_personal_info": {
		"驗證碼", "簡訊驗證碼", "OTP", "動態碼", "一次性密碼",
		"身分證", "身分證字號", "帳號", "密碼", "銀行帳號", "卡號", "信用卡",
		"CVV", "背面三碼", "有效期限", "戶頭", "存摺", "金融卡",
		"姓名", "生日", "住址", "地址", "電話", "手機號碼",
		"遠端", "遠端協助", "TeamViewer", "AnyDesk",
	},
	"impersonation_authority": {
		"警察", "檢察官", "法院", "刑警", "調查局", "地檢署", "派出所",
		"銀行", "金管會", "客服", "官方客服", "系統通知", "帳戶異常", "資安", "風控",
		"蝦皮客服", "momo客服", "PChome客服", "LINE客服",
	},
	"suspicious_link_download": {
		"點此", "連結", "網址", "下載", "安裝", "APP", "應用程式", "apk",
		"更新", "升級", "安全性更新", "驗證連結", "登入連結",
		"加入群", "投資群", "私訊我", "加LINE", "加賴", "加Telegram", "TG",
	},
	"investment_scam": {
		"投資", "帶單", "老師", "助理", "內幕", "明牌", "保證獲利", "穩賺不賠",
		"高報酬", "高收益", "飆股", "配息", "套利", "群組", "跟單",
		"平台", "入金", "出金", "加碼", "補倉", "爆倉", "槓桿", "期貨", "外匯",
		"虛擬貨幣", "USDT", "比特幣", "BTC", "ETH",
	},
	"romance_money": {
		"我愛你", "想你", "寶貝", "老公", "老婆", "靈魂伴侶",
		"遇到困難", "急用錢", "借我", "借錢", "周轉", "醫藥費", "住院", "手術費",
		"機票", "海關", "保釋", "保證金", "卡住", "帳戶被凍結", "先幫我", "我會還",
	},
	"logistics_parcel": {
		"包裹", "物流", "貨運", "宅配", "超商取貨", "取件", "派送", "配送",
		"地址不完整", "地址有誤", "無法配送", "配送失敗", "派送失敗",
		"補繳運費", "關稅", "清關", "重新安排", "重新派送", "查詢單號", "貨態",
	},
	"job_task": {
		"刷單", "兼職", "在家工作", "日領", "輕鬆賺", "高薪", "日薪",
		"接單", "做任務", "搶單", "墊付", "墊款", "返利", "佣金", "抽成",
		"打字員", "小幫手", "按讚賺錢", "追蹤賺錢",
	},
}

var apkPattern = regexp.MustCompile(`(?i)\.apk\b|安裝.*app|下載.*app|側載|未知來源`)

// keywordPattern compiles a case-insensitive alternation over literal
// keywords. An empty list yields a pattern that never matches.
func keywordPattern(keywords []string) *regexp.Regexp {
	if len(keywords) == 0 {
		return regexp.MustCompile(`$a`)
	}
	escaped := make([]string, len(keywords))
	for i, k := range keywords {
		escaped[i] = regexp.QuoteMeta(k)
	}
	return regexp.MustCompile(`(?i)(` + strings.Join(escaped, "|") + `)`)
}

// Rule is one entry of the detection table. Match reports whether a
// single sentence triggers the rule; rules share no state.
type Rule struct {
	ID     string
	Name   string
	Weight int
	Types  []models.ScamType
	Stage  models.Stage
	Match  func(sentence string) bool
}

const (
	ruleUrgency       = "urgency"
	ruleTransfer      = "transfer"
	ruleOTP           = "otp"
	ruleImpersonation = "impersonation"
	ruleLink          = "link"
	ruleInvestment    = "investment"
	ruleRomance       = "romance"
	ruleLogistics     = "logistics"
	ruleJob           = "job"
)

var defaultRules = buildRules()

func buildRules() []Rule {
	urgency := keywordPattern(scamKeywords["urgency_threat"])
	transfer := keywordPattern(scamKeywords["transfer_payment"])
	otp := keywordPattern(scamKeywords["otp_personal_info"])
	impersonation := keywordPattern(scamKeywords["impersonation_authority"])
	suspicious := keywordPattern(scamKeywords["suspicious_link_download"])
	investment := keywordPattern(scamKeywords["investment_scam"])
	romance := keywordPattern(scamKeywords["romance_money"])
	logistics := keywordPattern(scamKeywords["logistics_parcel"])
	job := keywordPattern(scamKeywords["job_task"])

	return []Rule{
		{
			ID: ruleUrgency, Name: "急迫恐嚇", Weight: 22,
			Types: []models.ScamType{models.ScamTypeIntimidation},
			Match: urgency.MatchString,
		},
		{
			ID: ruleTransfer, Name: "要求匯款/點數", Weight: 28,
			Types: []models.ScamType{models.ScamTypeTransferRequest},
			Stage: models.StagePaymentDemand,
			Match: transfer.MatchString,
		},
		{
			ID: ruleOTP, Name: "索取個資/驗證碼", Weight: 30,
			Types: []models.ScamType{models.ScamTypeOTPRequest},
			Stage: models.StageDataSolicitation,
			Match: otp.MatchString,
		},
		{
			ID: ruleImpersonation, Name: "假冒權威/客服", Weight: 24,
			Types: []models.ScamType{models.ScamTypeImpersonation},
			Stage: models.StageTrustBuilding,
			Match: impersonation.MatchString,
		},
		{
			ID: ruleLink, Name: "可疑連結/下載App", Weight: 24,
			Types: []models.ScamType{models.ScamTypePhishingLink},
			Match: func(s string) bool {
				return suspicious.MatchString(s) ||
					urlPattern.MatchString(s) ||
					apkPattern.MatchString(s)
			},
		},
		{
			ID: ruleInvestment, Name: "投資詐騙", Weight: 26,
			Types: []models.ScamType{models.ScamTypeInvestment},
			Stage: models.StageTrustBuilding,
			Match: investment.MatchString,
		},
		{
			ID: ruleRomance, Name: "感情借錢", Weight: 26,
			Types: []models.ScamType{models.ScamTypeRomance},
			Stage: models.StageTrustBuilding,
			Match: romance.MatchString,
		},
		{
			ID: ruleLogistics, Name: "物流詐騙", Weight: 20,
			Types: []models.ScamType{models.ScamTypeLogistics},
			Stage: models.StageClickInducement,
			Match: logistics.MatchString,
		},
		{
			ID: ruleJob, Name: "刷單兼職", Weight: 24,
			Types: []models.ScamType{models.ScamTypeJobTask},
			Stage: models.StageTrustBuilding,
			Match: job.MatchString,
		},
	}
}

// Evidence caps.
const (
	maxRuleEvidence  = 4
	maxComboEvidence = 5
)

// ruleHit is the internal record of a fired rule, keeping the Rule ID
// for combo and gate checks that the public RuleHit does not need.
type ruleHit struct {
	rule     Rule
	evidence []string
}

// evaluateRules runs every rule over the sentence list. Each rule
// contributes at most once per analysis regardless of how many
// sentences match.
func evaluateRules(sentences []string) []ruleHit {
	var hits []ruleHit
	for _, r := range defaultRules {
		var ev []string
		seen := make(map[string]bool)
		for _, s := range sentences {
			if seen[s] || !r.Match(s) {
				continue
			}
			seen[s] = true
			ev = append(ev, s)
			if len(ev) == maxRuleEvidence {
				break
			}
		}
		if len(ev) > 0 {
			hits = append(hits, ruleHit{rule: r, evidence: ev})
		}
	}
	return hits
}
