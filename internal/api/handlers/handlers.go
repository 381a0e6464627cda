package handlers

import (
	"encoding/json"
	"net/http"

	"scamshield/internal/config"
	"scamshield/internal/domain/services"
	"scamshield/internal/infrastructure/cache"
	"scamshield/internal/infrastructure/database"
	"scamshield/internal/infrastructure/database/repository"
	"scamshield/internal/streaming"
	"scamshield/pkg/logger"
)

// Handlers holds all API handlers
type Handlers struct {
	Health  *HealthHandler
	Analyze *AnalyzeHandler
	URL     *URLHandler
	Stats   *StatsHandler
	Reports *ReportsHandler
	Webhook *WebhookHandler
}

// Dependencies holds dependencies for handlers. Cache, Reports and
// Publisher may be nil when the corresponding backend is disabled.
type Dependencies struct {
	Config    config.Config
	Analyzer  *services.Analyzer
	Cache     *cache.RedisCache
	DB        *database.PostgresDB
	Reports   *repository.ReportRepository
	Publisher *streaming.NATSPublisher
	Logger    *logger.Logger
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(deps.Config.App.Version, deps.Cache, dbOrNil(deps.DB), deps.Logger),
		Analyze: NewAnalyzeHandler(deps.Config.Analysis, deps.Analyzer, deps.Cache, deps.Publisher, deps.Logger),
		URL:     NewURLHandler(deps.Logger),
		Stats:   NewStatsHandler(deps.Cache, deps.Reports, deps.Logger),
		Reports: NewReportsHandler(deps.Config.Analysis, deps.Reports, deps.Publisher, deps.Logger),
		Webhook: NewWebhookHandler(deps.Config.Analysis, deps.Analyzer, deps.Cache, deps.Logger),
	}
}

// dbOrNil avoids storing a typed nil behind the dbPinger interface.
func dbOrNil(db *database.PostgresDB) dbPinger {
	if db == nil {
		return nil
	}
	return db
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a generic JSON error without internal details.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
