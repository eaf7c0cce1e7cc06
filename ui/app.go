package ui

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"trialintel/app"
	"trialintel/domain/core"
	"trialintel/domain/enrich"
	"trialintel/domain/trial"
	"trialintel/internal/assets"
)

// App represents the exploration API and static asset server.
type App struct {
	router     *chi.Mux
	records    []trial.Record
	index      *enrich.Index
	meta       assets.Meta
	enrichment *app.EnrichmentService
	publicDir  string
}

// Config holds UI application configuration
type Config struct {
	Records   []trial.Record
	Index     *enrich.Index
	PublicDir string
	Prior     enrich.Prior
}

// NewApp creates the application over an already-published corpus.
func NewApp(config Config) *App {
	a := &App{
		router:     chi.NewRouter(),
		records:    config.Records,
		index:      config.Index,
		meta:       assets.BuildMeta(config.Records, core.Now()),
		enrichment: app.NewEnrichmentService(config.Prior),
		publicDir:  config.PublicDir,
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/api/meta", a.handleMeta)
	a.router.Get("/api/enrichment", a.handleEnrichment)
	a.router.Get("/api/enrichment/outliers", a.handleOutliers)
	a.router.Get("/api/trials", a.handleTrials)
	a.router.Get("/api/trials/{nctID}", a.handleTrialDetail)

	if a.publicDir != "" {
		fileServer := http.FileServer(http.Dir(a.publicDir))
		a.router.Handle("/assets/*", http.StripPrefix("/assets/", fileServer))
	}
}

// Router exposes the configured handler for serving and tests.
func (a *App) Router() http.Handler {
	return a.router
}

func (a *App) handleMeta(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.meta)
}

func (a *App) handleEnrichment(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.index)
}

// handleOutliers ranks groups in one aggregate cell by posterior probability
// of exceeding the cohort baseline.
func (a *App) handleOutliers(w http.ResponseWriter, r *http.Request) {
	scope := queryOrDefault(r, "scope", enrich.ScopeAll)
	groupBy := queryOrDefault(r, "group_by", enrich.GroupByCompany)
	phase := queryOrDefault(r, "phase", enrich.PhaseAll)
	bucket := queryOrDefault(r, "bucket", "SAFETY")
	minN := queryIntOrDefault(r, "min_n", 5)

	ranked := a.enrichment.RankGroups(a.index, scope, groupBy, phase, bucket, minN)
	if ranked == nil {
		ranked = []app.RankedGroup{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"scope":    scope,
		"group_by": groupBy,
		"phase":    phase,
		"bucket":   bucket,
		"min_n":    minN,
		"groups":   ranked,
	})
}

// handleTrials lists compact rows, optionally filtered by a substring match
// on the search blob and by classification reason.
func (a *App) handleTrials(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	reason := strings.TrimSpace(r.URL.Query().Get("reason"))
	limit := queryIntOrDefault(r, "limit", 100)
	if limit > 1000 {
		limit = 1000
	}

	rows := make([]assets.IndexRow, 0, limit)
	for _, row := range assets.BuildIndexRows(a.records) {
		if reason != "" && row.Reason != reason {
			continue
		}
		if q != "" && !strings.Contains(row.SearchBlob, q) {
			continue
		}
		rows = append(rows, row)
		if len(rows) >= limit {
			break
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count": len(rows),
		"rows":  rows,
	})
}

func (a *App) handleTrialDetail(w http.ResponseWriter, r *http.Request) {
	nctID := chi.URLParam(r, "nctID")
	for _, rec := range a.records {
		if rec.NCTID == nctID {
			writeJSON(w, http.StatusOK, rec)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "trial not found"})
}

func queryOrDefault(r *http.Request, key, def string) string {
	if v := strings.TrimSpace(r.URL.Query().Get(key)); v != "" {
		return v
	}
	return def
}

func queryIntOrDefault(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
