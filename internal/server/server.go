// Package server exposes the variant-track pipeline as a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/varviz3d/varviz3d/internal/service"
	"github.com/varviz3d/varviz3d/internal/uniprot"
)

// TrackService is the pipeline surface the server needs.
// *service.Service satisfies it.
type TrackService interface {
	BuildTracks(ctx context.Context, accession string, window int) (*service.TrackBundle, error)
	Domains(ctx context.Context, accession string) (*service.DomainSet, error)
	FindRSID(ctx context.Context, accession, rsid string) (*service.RSIDResult, error)
	Resolve(ctx context.Context, symbol string) (*uniprot.ResolveResult, error)
}

// Server handles the JSON API routes.
type Server struct {
	svc    TrackService
	logger *zap.Logger
}

// New creates a server. A nil logger disables access logging.
func New(svc TrackService, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{svc: svc, logger: logger}
}

// Handler returns the routed HTTP handler with access logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/tracks/{accession}", s.handleTracks)
	mux.HandleFunc("GET /api/domains/{accession}", s.handleDomains)
	mux.HandleFunc("GET /api/rsid/{accession}/{rsid}", s.handleRSID)
	mux.HandleFunc("GET /api/resolve/{symbol}", s.handleResolve)
	return s.logRequests(mux)
}

// logRequests tags each request with a UUID and logs method, path, and
// duration at debug level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		w.Header().Set("X-Request-ID", reqID)
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			zap.String("request_id", reqID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTracks(w http.ResponseWriter, r *http.Request) {
	accession := r.PathValue("accession")

	window := 0
	if raw := r.URL.Query().Get("win"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "win must be a positive integer")
			return
		}
		window = n
	}

	bundle, err := s.svc.BuildTracks(r.Context(), accession, window)
	if err != nil {
		s.logger.Warn("tracks failed",
			zap.String("accession", accession), zap.Error(err))
		writeError(w, http.StatusBadGateway, "could not resolve sequence")
		return
	}
	// Degraded sources still render all-zero tracks; the source field
	// tells the front end to show "no variant data available".
	writeJSON(w, http.StatusOK, bundle)
}

func (s *Server) handleDomains(w http.ResponseWriter, r *http.Request) {
	accession := r.PathValue("accession")
	ds, err := s.svc.Domains(r.Context(), accession)
	if err != nil {
		s.logger.Warn("domains failed",
			zap.String("accession", accession), zap.Error(err))
		writeError(w, http.StatusBadGateway, "could not fetch domain annotations")
		return
	}
	writeJSON(w, http.StatusOK, ds)
}

func (s *Server) handleRSID(w http.ResponseWriter, r *http.Request) {
	accession := r.PathValue("accession")
	res, err := s.svc.FindRSID(r.Context(), accession, r.PathValue("rsid"))
	if err != nil {
		s.logger.Warn("rsid search failed",
			zap.String("accession", accession), zap.Error(err))
		writeError(w, http.StatusBadGateway, "rsid search failed")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")
	res, err := s.svc.Resolve(r.Context(), symbol)
	if err != nil {
		s.logger.Warn("resolve failed",
			zap.String("symbol", symbol), zap.Error(err))
		writeError(w, http.StatusBadGateway, "gene symbol resolution failed")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
