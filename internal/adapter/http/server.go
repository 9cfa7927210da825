package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/couchcryptid/ghg-globe/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 64 << 10

// Globe is the application surface served over HTTP.
type Globe interface {
	sharedobs.ReadinessChecker
	Gases() []domain.GasSpec
	Selection() domain.Selection
	Select(sel domain.Selection) error
	Scene(sel domain.Selection) ([]domain.Marker, error)
	CityInfo(city string, sel domain.Selection) (domain.CityInfo, error)
	SubmitReport(ctx context.Context, in domain.ReportInput) (domain.CommunityReport, error)
	Reports() []domain.CommunityReport
	Report(id string) (domain.ReportInfo, error)
}

// Server exposes the globe JSON API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	globe      Globe
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics and the /api routes.
func NewServer(addr string, globe Globe, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		globe:  globe,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(globe))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/gases", s.handleGases)
	mux.HandleFunc("GET /api/selection", s.handleGetSelection)
	mux.HandleFunc("PUT /api/selection", s.handlePutSelection)
	mux.HandleFunc("GET /api/markers", s.handleMarkers)
	mux.HandleFunc("GET /api/cities/{city}", s.handleCity)
	mux.HandleFunc("GET /api/reports", s.handleListReports)
	mux.HandleFunc("GET /api/reports/{id}", s.handleGetReport)
	mux.HandleFunc("POST /api/reports", s.handleSubmitReport)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleGases(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.globe.Gases())
}

func (s *Server) handleGetSelection(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.globe.Selection())
}

func (s *Server) handlePutSelection(w http.ResponseWriter, r *http.Request) {
	var sel domain.Selection
	if err := decodeJSON(w, r, &sel); err != nil {
		s.writeError(w, err)
		return
	}
	gas, err := domain.ParseGas(string(sel.Gas))
	if err != nil {
		s.writeError(w, err)
		return
	}
	sel.Gas = gas
	if err := s.globe.Select(sel); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.globe.Selection())
}

func (s *Server) handleMarkers(w http.ResponseWriter, r *http.Request) {
	sel, err := selectionFromQuery(r, s.globe.Selection())
	if err != nil {
		s.writeError(w, err)
		return
	}
	markers, err := s.globe.Scene(sel)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, markers)
}

func (s *Server) handleCity(w http.ResponseWriter, r *http.Request) {
	sel, err := selectionFromQuery(r, s.globe.Selection())
	if err != nil {
		s.writeError(w, err)
		return
	}
	info, err := s.globe.CityInfo(r.PathValue("city"), sel)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleListReports(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.globe.Reports())
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	info, err := s.globe.Report(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleSubmitReport(w http.ResponseWriter, r *http.Request) {
	var in domain.ReportInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, err)
		return
	}
	report, err := s.globe.SubmitReport(r.Context(), in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, report)
}

// errBadRequest marks malformed query parameters and request bodies.
var errBadRequest = errors.New("bad request")

// selectionFromQuery overlays the gas, year and opacity query parameters on
// fallback. The result is validated by the service.
func selectionFromQuery(r *http.Request, fallback domain.Selection) (domain.Selection, error) {
	q := r.URL.Query()
	sel := fallback

	if v := q.Get("gas"); v != "" {
		gas, err := domain.ParseGas(v)
		if err != nil {
			return sel, err
		}
		sel.Gas = gas
	}
	if v := q.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return sel, fmt.Errorf("%w: invalid year %q", errBadRequest, v)
		}
		sel.Year = year
	}
	if v := q.Get("opacity"); v != "" {
		opacity, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return sel, fmt.Errorf("%w: invalid opacity %q", errBadRequest, v)
		}
		sel.Opacity = opacity
	}
	return sel, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return nil
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Field: verr.Field})
	case errors.Is(err, errBadRequest),
		errors.Is(err, domain.ErrUnknownGas),
		errors.Is(err, domain.ErrYearOutOfRange),
		errors.Is(err, domain.ErrOpacityOutOfRange):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUnknownCity),
		errors.Is(err, domain.ErrReportNotFound):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		s.logger.Error("request failed", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response failed", "status", status, "error", err)
	}
}
