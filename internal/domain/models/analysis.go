package models

// RiskLevel is the categorical risk of an analyzed message.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Rank returns the ordering of a risk level (low < medium < high < critical).
func (l RiskLevel) Rank() int {
	switch l {
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	case RiskCritical:
		return 3
	default:
		return 0
	}
}

// MaxLevel returns the higher of two risk levels.
func MaxLevel(a, b RiskLevel) RiskLevel {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// ScamType is a closed enumeration of scam categories a rule can tag.
type ScamType string

const (
	ScamTypePhishingLink    ScamType = "phishing_link"
	ScamTypeTransferRequest ScamType = "transfer_request"
	ScamTypeOTPRequest      ScamType = "otp_request"
	ScamTypeImpersonation   ScamType = "impersonation"
	ScamTypeInvestment      ScamType = "investment"
	ScamTypeRomance         ScamType = "romance"
	ScamTypeIntimidation    ScamType = "intimidation"
	ScamTypeLogistics       ScamType = "logistics"
	ScamTypeJobTask         ScamType = "job_task"
)

// Stage is a position in the inferred scam-conversation lifecycle.
// Later stages mean the conversation has progressed further.
type Stage string

const (
	StageTrustBuilding    Stage = "trust_building"
	StageClickInducement  Stage = "click_inducement"
	StageDataSolicitation Stage = "data_solicitation"
	StagePaymentDemand    Stage = "payment_demand"
)

// Rank returns the ordering of a stage within the lifecycle.
func (s Stage) Rank() int {
	switch s {
	case StageClickInducement:
		return 1
	case StageDataSolicitation:
		return 2
	case StagePaymentDemand:
		return 3
	default:
		return 0
	}
}

// RuleHit records a detection rule that fired, with the sentences
// that triggered it retained as evidence.
type RuleHit struct {
	Name              string   `json:"name"`
	Score             int      `json:"score"`
	EvidenceSentences []string `json:"evidence_sentences"`
}

// SuspiciousURL is the per-URL risk assessment.
type SuspiciousURL struct {
	URL    string `json:"url"`
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

// Entities holds entity matches extracted from the full message text.
// Each list is de-duplicated and in first-occurrence order.
type Entities struct {
	URLs        []string `json:"urls"`
	Phones      []string `json:"phones"`
	Emails      []string `json:"emails"`
	LongNumbers []string `json:"long_numbers"`
}

// AnalysisResult is the structured risk assessment for one message.
// It carries no timestamps or generated IDs so that identical input
// always yields an identical result.
type AnalysisResult struct {
	RiskScore          int             `json:"risk_score"`
	RiskLevel          RiskLevel       `json:"risk_level"`
	Stage              Stage           `json:"stage"`
	ScamTypes          []ScamType      `json:"scam_types"`
	TriggeredRules     []RuleHit       `json:"triggered_rules"`
	Explanation        string          `json:"explanation"`
	RecommendedActions []string        `json:"recommended_actions"`
	ReplyTemplates     []string        `json:"reply_templates"`
	SuspiciousURLs     []SuspiciousURL `json:"suspicious_urls"`
	Entities           Entities        `json:"entities"`
}

// HasScamType reports whether the result's category set contains t.
func (r *AnalysisResult) HasScamType(t ScamType) bool {
	for _, st := range r.ScamTypes {
		if st == t {
			return true
		}
	}
	return false
}
