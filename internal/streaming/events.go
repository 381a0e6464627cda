package streaming

import (
	"time"

	"github.com/google/uuid"

	"scamshield/internal/domain/models"
)

// EventType represents the type of analysis event
type EventType string

const (
	EventTypeAnalysis EventType = "analysis"
	EventTypeReport   EventType = "report_submitted"
)

// AnalysisEvent is the real-time event emitted after each analysis.
// It carries only categorical facts about the verdict, never the
// analyzed text or extracted entities.
type AnalysisEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`

	RiskScore int               `json:"risk_score"`
	RiskLevel models.RiskLevel  `json:"risk_level"`
	Stage     models.Stage      `json:"stage"`
	ScamTypes []models.ScamType `json:"scam_types"`
	RuleCount int               `json:"rule_count"`
	URLCount  int               `json:"url_count"`
}

// NewAnalysisEvent builds the event for one analysis result.
func NewAnalysisEvent(result *models.AnalysisResult) *AnalysisEvent {
	return &AnalysisEvent{
		ID:        uuid.New().String(),
		Type:      EventTypeAnalysis,
		Timestamp: time.Now().UTC(),
		RiskScore: result.RiskScore,
		RiskLevel: result.RiskLevel,
		Stage:     result.Stage,
		ScamTypes: result.ScamTypes,
		RuleCount: len(result.TriggeredRules),
		URLCount:  len(result.SuspiciousURLs),
	}
}

// ReportEvent notifies reviewers that a new scam sample was submitted.
type ReportEvent struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	ReportID  uuid.UUID       `json:"report_id"`
	ScamType  models.ScamType `json:"scam_type"`
}

// NewReportEvent builds the event for a submitted report.
func NewReportEvent(report *models.ScamReport) *ReportEvent {
	return &ReportEvent{
		ID:        uuid.New().String(),
		Type:      EventTypeReport,
		Timestamp: time.Now().UTC(),
		ReportID:  report.ID,
		ScamType:  report.ScamType,
	}
}
