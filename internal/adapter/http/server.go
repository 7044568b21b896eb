package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/weather-forecast-service/internal/domain"
)

// refreshTimeout bounds a blocking POST /refresh. It stays below the
// server's write timeout so the error response still goes out.
const refreshTimeout = 50 * time.Second

// ForecastService is the forecast view served over HTTP.
type ForecastService interface {
	sharedobs.ReadinessChecker
	Identifier() string
	Forecast() []domain.DaySummary
	LastUpdate() (time.Time, bool)
	RefreshNow(ctx context.Context) ([]domain.DaySummary, error)
}

// Server exposes the forecast view plus health, readiness, and metrics
// endpoints.
type Server struct {
	httpServer *http.Server
	service    ForecastService
	logger     *slog.Logger
}

// forecastResponse is the body of GET /forecast and POST /refresh.
type forecastResponse struct {
	Identifier string              `json:"identifier"`
	UpdatedAt  *time.Time          `json:"updated_at"`
	Days       []domain.DaySummary `json:"days"`
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics,
// /forecast and /refresh routes.
func NewServer(addr string, service ForecastService, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: refreshTimeout + 10*time.Second,
			IdleTimeout:  60 * time.Second,
		},
		service: service,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(service))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /forecast", s.handleForecast)
	mux.HandleFunc("POST /refresh", s.handleRefresh)

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

func (s *Server) handleForecast(w http.ResponseWriter, _ *http.Request) {
	s.writeView(w, s.service.Forecast())
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), refreshTimeout)
	defer cancel()

	days, err := s.service.RefreshNow(ctx)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		s.logger.Warn("manual refresh failed", "error", err)
		sharedobs.WriteJSON(w, status, map[string]string{
			"status": "refresh failed",
			"error":  err.Error(),
		})
		return
	}
	s.writeView(w, days)
}

// writeView encodes the whole body before the status line goes out, so an
// unencodable view becomes a 500 instead of a truncated 200.
func (s *Server) writeView(w http.ResponseWriter, days []domain.DaySummary) {
	body, err := json.Marshal(s.view(days))
	if err != nil {
		s.logger.Error("encode forecast view failed", "error", err)
		sharedobs.WriteJSON(w, http.StatusInternalServerError, map[string]string{
			"status": "encode failed",
			"error":  err.Error(),
		})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(append(body, '\n')) //nolint:errcheck // client gone
}

func (s *Server) view(days []domain.DaySummary) forecastResponse {
	resp := forecastResponse{
		Identifier: s.service.Identifier(),
		Days:       days,
	}
	if resp.Days == nil {
		resp.Days = []domain.DaySummary{}
	}
	if t, ok := s.service.LastUpdate(); ok {
		resp.UpdatedAt = &t
	}
	return resp
}

