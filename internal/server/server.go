package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"logsight/internal/metrics"
	"logsight/internal/report"
)

// Server exposes a built report over HTTP. The report is computed once
// before the server starts and never mutated, so handlers need no locking.
type Server struct {
	report *report.Report
	addr   string
}

// New creates a stats API server for an already built report
func New(rep *report.Report, addr string) *Server {
	return &Server{
		report: rep,
		addr:   addr,
	}
}

// Start starts the HTTP server. Blocks.
func (s *Server) Start() error {
	log.Printf("[SERVER] Starting on %s", s.addr)
	return http.ListenAndServe(s.addr, s.routes())
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/api/v1/report", s.handleReport)
	r.Get("/api/v1/summary", s.handleSummary)
	r.Get("/api/v1/hours", s.handleHours)
	r.Get("/api/v1/status-codes", s.handleStatusCodes)

	return r
}

// handleReport returns the full report as JSON
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	metrics.QueriesServed.WithLabelValues("report").Inc()
	writeJSON(w, s.report)
}

// Summary is the condensed headline view of a report.
type Summary struct {
	TotalRecords  int `json:"total_records"`
	UniqueHosts   int `json:"unique_hosts"`
	NotFoundCount int `json:"not_found_count"`
}

// handleSummary returns the headline numbers
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	metrics.QueriesServed.WithLabelValues("summary").Inc()
	writeJSON(w, Summary{
		TotalRecords:  s.report.TotalRecords,
		UniqueHosts:   s.report.UniqueHosts,
		NotFoundCount: s.report.NotFoundCount,
	})
}

// handleHours returns the 24-bucket hourly distribution
func (s *Server) handleHours(w http.ResponseWriter, r *http.Request) {
	metrics.QueriesServed.WithLabelValues("hours").Inc()
	writeJSON(w, s.report.HourlyDistribution)
}

// handleStatusCodes returns the status code frequencies
func (s *Server) handleStatusCodes(w http.ResponseWriter, r *http.Request) {
	metrics.QueriesServed.WithLabelValues("status-codes").Inc()
	writeJSON(w, s.report.StatusDistribution)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
