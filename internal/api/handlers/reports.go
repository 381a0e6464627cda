package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"scamshield/internal/config"
	"scamshield/internal/domain/models"
	"scamshield/internal/infrastructure/database/repository"
	"scamshield/internal/streaming"
	"scamshield/pkg/logger"
)

// ReportsHandler handles user-submitted scam reports and their review.
type ReportsHandler struct {
	cfg       config.AnalysisConfig
	repo      *repository.ReportRepository
	publisher *streaming.NATSPublisher
	logger    *logger.Logger
}

// NewReportsHandler creates a new ReportsHandler
func NewReportsHandler(cfg config.AnalysisConfig, repo *repository.ReportRepository, pub *streaming.NATSPublisher, log *logger.Logger) *ReportsHandler {
	return &ReportsHandler{
		cfg:       cfg,
		repo:      repo,
		publisher: pub,
		logger:    log.WithComponent("reports-handler"),
	}
}

// SubmitRequest is the request body for a scam report
type SubmitRequest struct {
	ScamType    models.ScamType `json:"scam_type"`
	Content     string          `json:"content"`
	Description string          `json:"description,omitempty"`
}

var validScamTypes = map[models.ScamType]bool{
	models.ScamTypePhishingLink:    true,
	models.ScamTypeTransferRequest: true,
	models.ScamTypeOTPRequest:      true,
	models.ScamTypeImpersonation:   true,
	models.ScamTypeInvestment:      true,
	models.ScamTypeRomance:         true,
	models.ScamTypeIntimidation:    true,
	models.ScamTypeLogistics:       true,
	models.ScamTypeJobTask:         true,
}

// Submit handles POST /api/v1/reports
func (h *ReportsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		writeError(w, http.StatusServiceUnavailable, "reporting is not enabled")
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}
	if max := h.cfg.MaxTextChars; max > 0 && len([]rune(req.Content)) > max {
		writeError(w, http.StatusBadRequest, "content too long")
		return
	}
	if !validScamTypes[req.ScamType] {
		writeError(w, http.StatusBadRequest, "unknown scam_type")
		return
	}

	report, err := h.repo.Create(r.Context(), &models.ScamReport{
		ScamType:    req.ScamType,
		Content:     req.Content,
		Description: req.Description,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create report")
		writeError(w, http.StatusInternalServerError, "failed to create report")
		return
	}

	if err := h.publisher.PublishReport(r.Context(), streaming.NewReportEvent(report)); err != nil {
		h.logger.Warn().Err(err).Msg("failed to publish report event")
	}

	h.logger.Info().Str("report_id", report.ID.String()).Str("scam_type", string(report.ScamType)).Msg("report submitted")
	writeJSON(w, http.StatusCreated, report)
}

// List handles GET /api/v1/admin/reports
func (h *ReportsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		writeError(w, http.StatusServiceUnavailable, "reporting is not enabled")
		return
	}

	status := models.ReportStatus(r.URL.Query().Get("status"))
	limit := parseQueryInt(r, "limit", 50)
	offset := parseQueryInt(r, "offset", 0)

	reports, err := h.repo.List(r.Context(), status, limit, offset)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list reports")
		writeError(w, http.StatusInternalServerError, "failed to list reports")
		return
	}
	if reports == nil {
		reports = []*models.ScamReport{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"reports": reports,
		"count":   len(reports),
	})
}

// Approve handles POST /api/v1/admin/reports/{id}/approve
func (h *ReportsHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, models.ReportStatusApproved)
}

// Reject handles POST /api/v1/admin/reports/{id}/reject
func (h *ReportsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, models.ReportStatusRejected)
}

func (h *ReportsHandler) review(w http.ResponseWriter, r *http.Request, status models.ReportStatus) {
	if h.repo == nil {
		writeError(w, http.StatusServiceUnavailable, "reporting is not enabled")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid report id")
		return
	}

	report, err := h.repo.UpdateStatus(r.Context(), id, status)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to update report")
		writeError(w, http.StatusInternalServerError, "failed to update report")
		return
	}

	h.logger.Info().Str("report_id", id.String()).Str("status", string(status)).Msg("report reviewed")
	writeJSON(w, http.StatusOK, report)
}

func parseQueryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}
