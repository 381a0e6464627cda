package handlers

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"scamshield/internal/infrastructure/cache"
	"scamshield/internal/infrastructure/database/repository"
	"scamshield/pkg/logger"
)

// StatsHandler serves the anonymized daily usage aggregates.
type StatsHandler struct {
	cache   *cache.RedisCache
	reports *repository.ReportRepository
	logger  *logger.Logger
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(c *cache.RedisCache, reports *repository.ReportRepository, log *logger.Logger) *StatsHandler {
	return &StatsHandler{
		cache:   c,
		reports: reports,
		logger:  log.WithComponent("stats-handler"),
	}
}

// StatsResponse is the daily aggregate view. Counters only; no text.
type StatsResponse struct {
	Day     string           `json:"day"`
	Total   int64            `json:"total"`
	Levels  map[string]int64 `json:"levels"`
	Types   map[string]int64 `json:"types"`
	Domains []DomainCount    `json:"domains"`
	Reports map[string]int64 `json:"reports,omitempty"`
}

// DomainCount is one flagged domain with its hit count.
type DomainCount struct {
	Domain string `json:"domain"`
	Count  int64  `json:"count"`
}

// Get handles GET /api/v1/stats
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	day := time.Now().UTC()
	resp := StatsResponse{
		Day:     day.Format("2006-01-02"),
		Levels:  map[string]int64{},
		Types:   map[string]int64{},
		Domains: []DomainCount{},
	}

	if h.cache != nil {
		raw, err := h.cache.GetDailyStats(r.Context(), day)
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to read stats")
			writeError(w, http.StatusInternalServerError, "stats unavailable")
			return
		}
		parseStats(raw, &resp)
	}

	if h.reports != nil {
		counts, err := h.reports.CountByStatus(r.Context())
		if err != nil {
			h.logger.Warn().Err(err).Msg("failed to count reports")
		} else {
			resp.Reports = make(map[string]int64, len(counts))
			for status, n := range counts {
				resp.Reports[string(status)] = n
			}
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// parseStats expands the flat Redis hash into the response shape.
func parseStats(raw map[string]string, resp *StatsResponse) {
	for field, val := range raw {
		n := parseInt64(val)
		switch {
		case field == "total":
			resp.Total = n
		case strings.HasPrefix(field, "level:"):
			resp.Levels[strings.TrimPrefix(field, "level:")] = n
		case strings.HasPrefix(field, "type:"):
			resp.Types[strings.TrimPrefix(field, "type:")] = n
		case strings.HasPrefix(field, "domain:"):
			resp.Domains = append(resp.Domains, DomainCount{
				Domain: strings.TrimPrefix(field, "domain:"),
				Count:  n,
			})
		}
	}
	sort.Slice(resp.Domains, func(i, j int) bool {
		if resp.Domains[i].Count != resp.Domains[j].Count {
			return resp.Domains[i].Count > resp.Domains[j].Count
		}
		return resp.Domains[i].Domain < resp.Domains[j].Domain
	})
}

func parseInt64(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
