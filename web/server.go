package web

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"aicockpit-dashboard/board"
	"aicockpit-dashboard/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server handles HTTP requests
type Server struct {
	Router  *chi.Mux
	config  *config.Config
	builder *board.Builder
	cache   *board.Cache
}

// NewServer creates a new web server over a table builder.
func NewServer(cfg *config.Config, builder *board.Builder) *Server {
	s := &Server{
		config:  cfg,
		builder: builder,
		cache:   board.NewCache(time.Duration(cfg.CacheTTLMinutes) * time.Minute),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Minute))

	r.Get("/health", s.healthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Get("/issues", s.getIssues)
		r.Get("/gantt", s.getGantt)
		r.Get("/stats", s.getStats)
		r.Get("/incidents", s.getIncidents)
		r.Get("/bugs", s.getBugs)
	})

	s.Router = r
}

// healthCheck returns server health status
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "aicockpit-dashboard-api",
	})
}

// projectKey resolves the project for a request, defaulting to the
// configured board project.
func (s *Server) projectKey(r *http.Request) string {
	if project := r.URL.Query().Get("project"); project != "" {
		return project
	}
	return s.config.ProjectKey
}

// boardTable returns the board dataset for a project, served from the
// cache within its TTL window.
func (s *Server) boardTable(project string) *board.Table {
	key := "board:" + project
	if table, ok := s.cache.Get(key); ok {
		return table
	}
	table := s.builder.BuildBoard(project)
	s.cache.Put(key, table)
	return table
}

func (s *Server) getIssues(w http.ResponseWriter, r *http.Request) {
	table := s.boardTable(s.projectKey(r))
	s.writeTable(w, table)
}

func (s *Server) getGantt(w http.ResponseWriter, r *http.Request) {
	table := s.boardTable(s.projectKey(r))

	var selected []string
	if areas := r.URL.Query().Get("areas"); areas != "" {
		for _, area := range strings.Split(areas, ",") {
			if area = strings.TrimSpace(area); area != "" {
				selected = append(selected, area)
			}
		}
	}

	intervals := board.GanttIntervals(table, selected)

	writeJSON(w, map[string]interface{}{
		"status":    "success",
		"data":      intervals,
		"warnings":  table.Warnings,
		"stats":     map[string]int{"intervals": len(intervals)},
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	table := s.boardTable(s.projectKey(r))
	stats := board.Summarize(table)

	writeJSON(w, map[string]interface{}{
		"status":    "success",
		"data":      stats,
		"warnings":  table.Warnings,
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) getIncidents(w http.ResponseWriter, r *http.Request) {
	project := s.projectKey(r)
	key := "incidents:" + project
	table, ok := s.cache.Get(key)
	if !ok {
		table = s.builder.BuildIncidents(project)
		s.cache.Put(key, table)
	}
	s.writeTable(w, table)
}

func (s *Server) getBugs(w http.ResponseWriter, r *http.Request) {
	project := s.projectKey(r)
	key := "bugs:" + project
	table, ok := s.cache.Get(key)
	if !ok {
		table = s.builder.BuildBugs(project)
		s.cache.Put(key, table)
	}
	s.writeTable(w, table)
}

// writeTable sends a table in the standard response envelope. An empty
// table is "no data", not an error.
func (s *Server) writeTable(w http.ResponseWriter, table *board.Table) {
	issues := table.Issues
	if issues == nil {
		issues = []board.Issue{}
	}
	writeJSON(w, map[string]interface{}{
		"status":    "success",
		"data":      issues,
		"warnings":  table.Warnings,
		"stats":     map[string]int{"issues": len(table.Issues)},
		"timestamp": time.Now().UTC(),
	})
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(payload)
}

// Start starts the web server
func (s *Server) Start(port string) error {
	return http.ListenAndServe(":"+port, s.Router)
}
