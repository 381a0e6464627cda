package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportStatus is the review state of a user-submitted scam report.
type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusApproved ReportStatus = "approved"
	ReportStatusRejected ReportStatus = "rejected"
)

// ScamReport is a scam sample voluntarily submitted by a user for review.
// This is the only place message content is ever stored, and only because
// the user explicitly asked for it to be reported.
type ScamReport struct {
	ID          uuid.UUID    `json:"id"`
	ScamType    ScamType     `json:"scam_type"`
	Content     string       `json:"content"`
	Description string       `json:"description,omitempty"`
	Status      ReportStatus `json:"status"`
	ReportedAt  time.Time    `json:"reported_at"`
	ReviewedAt  *time.Time   `json:"reviewed_at,omitempty"`
}
