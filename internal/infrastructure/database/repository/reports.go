package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"scamshield/internal/domain/models"
)

// ErrNotFound is returned when a report does not exist.
var ErrNotFound = errors.New("report not found")

// ReportRepository handles scam report persistence
type ReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new report repository
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// Create inserts a new report
func (r *ReportRepository) Create(ctx context.Context, report *models.ScamReport) (*models.ScamReport, error) {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if report.Status == "" {
		report.Status = models.ReportStatusPending
	}
	report.ReportedAt = time.Now()

	query := `
		INSERT INTO scam_reports (id, scam_type, content, description, status, reported_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, reported_at`

	err := r.pool.QueryRow(ctx, query,
		report.ID, report.ScamType, report.Content, report.Description,
		report.Status, report.ReportedAt,
	).Scan(&report.ID, &report.ReportedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	return report, nil
}

// GetByID retrieves a report by ID
func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ScamReport, error) {
	query := `
		SELECT id, scam_type, content, description, status, reported_at, reviewed_at
		FROM scam_reports
		WHERE id = $1`

	return r.scanReport(r.pool.QueryRow(ctx, query, id))
}

// List retrieves reports, newest first, optionally filtered by status.
func (r *ReportRepository) List(ctx context.Context, status models.ReportStatus, limit, offset int) ([]*models.ScamReport, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := `
		SELECT id, scam_type, content, description, status, reported_at, reviewed_at
		FROM scam_reports
		WHERE ($1 = '' OR status = $1)
		ORDER BY reported_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, string(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []*models.ScamReport
	for rows.Next() {
		report, err := r.scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// UpdateStatus transitions a report to approved or rejected.
func (r *ReportRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReportStatus) (*models.ScamReport, error) {
	query := `
		UPDATE scam_reports
		SET status = $2, reviewed_at = $3
		WHERE id = $1
		RETURNING id, scam_type, content, description, status, reported_at, reviewed_at`

	report, err := r.scanReport(r.pool.QueryRow(ctx, query, id, status, time.Now()))
	if err != nil {
		return nil, err
	}
	return report, nil
}

// CountByStatus returns the number of reports per status.
func (r *ReportRepository) CountByStatus(ctx context.Context) (map[models.ReportStatus]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM scam_reports GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.ReportStatus]int64)
	for rows.Next() {
		var status models.ReportStatus
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *ReportRepository) scanReport(row pgx.Row) (*models.ScamReport, error) {
	var report models.ScamReport
	err := row.Scan(
		&report.ID, &report.ScamType, &report.Content, &report.Description,
		&report.Status, &report.ReportedAt, &report.ReviewedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan report: %w", err)
	}
	return &report, nil
}
