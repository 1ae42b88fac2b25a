package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"movesmart/internal/config"
	"movesmart/internal/database"
	"movesmart/internal/metrics"
	"movesmart/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// HTTPServer exposes the public booking/contact API and the admin surface.
type HTTPServer struct {
	cfg      config.HTTPConfig
	db       *database.DB
	bookings *service.BookingService
	contacts *service.ContactService
	catalog  *service.CatalogService
	logger   zerolog.Logger
	server   *http.Server
}

func NewHTTPServer(
	cfg config.HTTPConfig,
	rateCfg config.RateLimitConfig,
	db *database.DB,
	bookings *service.BookingService,
	contacts *service.ContactService,
	catalog *service.CatalogService,
	logger zerolog.Logger,
) *HTTPServer {
	srv := &HTTPServer{
		cfg:      cfg,
		db:       db,
		bookings: bookings,
		contacts: contacts,
		catalog:  catalog,
		logger:   logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/bookings", srv.handleCreateBooking)
	mux.HandleFunc("/api/contact", srv.handleContact)
	mux.HandleFunc("/api/services", srv.handleServices)
	mux.HandleFunc("/api/testimonials", srv.handleTestimonials)
	mux.HandleFunc("/api/admin/bookings", srv.handleAdminBookings)
	mux.HandleFunc("/api/admin/bookings/export", srv.handleAdminExport)
	mux.HandleFunc("/api/admin/bookings/", srv.handleAdminBookingStatus)
	mux.HandleFunc("/healthz", srv.handleHealth)

	limiter := newRateLimiter(rateCfg)
	handler := srv.loggingMiddleware(limiter.Wrap(mux))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

// Handler returns the fully wrapped handler, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if s.db != nil {
		if err := s.db.PingContext(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		metrics.IncHTTP(r.URL.Path, strconv.Itoa(recorder.status))
		s.logger.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
