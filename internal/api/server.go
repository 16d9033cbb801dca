// Package api serves the latest monitor results over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/marker"
	"github.com/rxtech-lab/argo-signal/internal/markethours"
	"github.com/rxtech-lab/argo-signal/internal/metrics"
	"github.com/rxtech-lab/argo-signal/internal/monitor"
)

const shutdownTimeout = 5 * time.Second

// Server is the read-only HTTP API over a monitor store.
type Server struct {
	store   *monitor.Store
	symbols []string
	// session is nil when market hours are ignored.
	session *markethours.Session
	metrics *metrics.Metrics
	// journal holds the alerts sent, when the monitor keeps one.
	journal marker.Marker
	logger  *logger.Logger
	now     func() time.Time
}

// NewServer creates the API for the watch list symbols.
func NewServer(store *monitor.Store, symbols []string, session *markethours.Session, metrics *metrics.Metrics, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Server{
		store:   store,
		symbols: symbols,
		session: session,
		metrics: metrics,
		logger:  log,
		now:     time.Now,
	}
}

// WithJournal serves the alerts recorded in journal.
func (s *Server) WithJournal(journal marker.Marker) *Server {
	s.journal = journal
	return s
}

// Router returns the API routes.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(corsMiddleware)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/symbols", s.handleSymbols).Methods(http.MethodGet)
	api.HandleFunc("/stocks", s.handleStocks).Methods(http.MethodGet)
	api.HandleFunc("/analysis/{symbol}", s.handleAnalysis).Methods(http.MethodGet)
	api.HandleFunc("/history/{symbol}", s.handleHistory).Methods(http.MethodGet)
	api.HandleFunc("/markers/{symbol}", s.handleMarkers).Methods(http.MethodGet)
	api.HandleFunc("/alerts/{symbol}", s.handleAlerts).Methods(http.MethodGet)

	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	if s.metrics != nil {
		router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}

	return router
}

// Serve listens on address until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, address string) error {
	server := &http.Server{
		Addr:              address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("API listening", zap.String("address", address))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) marketStatus() (string, bool) {
	if s.session == nil {
		return "ABERTO", true
	}

	now := s.now()

	return s.session.Status(now), s.session.IsOpen(now)
}

func (s *Server) handleSymbols(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string][]string{"symbols": s.symbols})
}

func (s *Server) handleStocks(w http.ResponseWriter, _ *http.Request) {
	status, open := s.marketStatus()

	stocks := []Stock{}
	for _, rec := range s.store.Recommendations() {
		stocks = append(stocks, newStock(rec, status, open))
	}

	s.writeJSON(w, http.StatusOK, stocks)
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]
	if !slices.Contains(s.symbols, symbol) {
		s.writeError(w, http.StatusNotFound, "symbol not monitored")
		return
	}

	rec, ok := s.store.Recommendation(symbol)
	if !ok {
		s.writeError(w, http.StatusServiceUnavailable, "no analysis available yet")
		return
	}

	status, open := s.marketStatus()
	s.writeJSON(w, http.StatusOK, newStock(rec, status, open))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]
	if !slices.Contains(s.symbols, symbol) {
		s.writeError(w, http.StatusNotFound, "symbol not monitored")
		return
	}

	rows, _ := s.store.Rows(symbol)

	history, ok := newHistory(rows)
	if !ok {
		s.writeError(w, http.StatusServiceUnavailable, "no history available yet")
		return
	}

	s.writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleMarkers(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]
	if !slices.Contains(s.symbols, symbol) {
		s.writeError(w, http.StatusNotFound, "symbol not monitored")
		return
	}

	rows, _ := s.store.Rows(symbol)
	s.writeJSON(w, http.StatusOK, marker.FromFrame(symbol, rows))
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]
	if !slices.Contains(s.symbols, symbol) {
		s.writeError(w, http.StatusNotFound, "symbol not monitored")
		return
	}

	if s.journal == nil {
		s.writeJSON(w, http.StatusOK, []marker.Mark{})
		return
	}

	marks, err := s.journal.GetMarks(symbol)
	if err != nil {
		s.logger.Error("Failed to read alert journal", zap.String("symbol", symbol), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to read alerts")

		return
	}

	s.writeJSON(w, http.StatusOK, marks)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	response := struct {
		Status    string     `json:"status"`
		LastCycle *time.Time `json:"last_cycle"`
	}{Status: "ok"}

	if snapshot, ok := s.store.Latest(); ok {
		response.LastCycle = &snapshot.FinishedAt
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}
