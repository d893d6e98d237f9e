// Package api serves the tracker over a local HTTP JSON interface so other
// front ends can share the same store.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/julianstephens/waketrack/internal/activity"
	"github.com/julianstephens/waketrack/internal/constants"
	wterrors "github.com/julianstephens/waketrack/internal/errors"
	"github.com/julianstephens/waketrack/internal/gamification"
	"github.com/julianstephens/waketrack/internal/logger"
	"github.com/julianstephens/waketrack/internal/repository"
)

type Options struct {
	// DailyGoal is the productive-hour target used when a user has no daily goal.
	DailyGoal float64
	// InsightDays is the default insight window.
	InsightDays int
	Now         func() time.Time
}

type Server struct {
	router *mux.Router
	repo   repository.Repository
	store  *activity.Store
	game   *gamification.Engine
	opts   Options
	log    *log.Logger
}

func NewServer(repo repository.Repository, game *gamification.Engine, opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.InsightDays <= 0 {
		opts.InsightDays = constants.DefaultInsightDays
	}
	if opts.DailyGoal <= 0 {
		opts.DailyGoal = constants.DefaultDailyGoalHours
	}
	s := &Server{
		router: mux.NewRouter(),
		repo:   repo,
		store:  activity.New(repo),
		game:   game,
		opts:   opts,
		log:    logger.Component("api"),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(s.logRequests)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/classify", s.handleClassify).Methods(http.MethodPost)

	u := api.PathPrefix("/users/{user}").Subrouter()
	u.HandleFunc("/days/{date}", s.handleGetDay).Methods(http.MethodGet)
	u.HandleFunc("/days/{date}", s.handlePutDay).Methods(http.MethodPut)
	u.HandleFunc("/days/{date}", s.handleDeleteDay).Methods(http.MethodDelete)
	u.HandleFunc("/days/{date}/slots/{hour}", s.handlePutSlot).Methods(http.MethodPut)
	u.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	u.HandleFunc("/trends", s.handleTrends).Methods(http.MethodGet)
	u.HandleFunc("/patterns", s.handlePatterns).Methods(http.MethodGet)
	u.HandleFunc("/streak", s.handleStreak).Methods(http.MethodGet)
	u.HandleFunc("/search", s.handleSearch).Methods(http.MethodGet)
	u.HandleFunc("/gamification", s.handleGamification).Methods(http.MethodGet)
	u.HandleFunc("/insights", s.handleInsights).Methods(http.MethodGet)
	u.HandleFunc("/export", s.handleExport).Methods(http.MethodGet)
	u.HandleFunc("/import", s.handleImport).Methods(http.MethodPost)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.log.Info("Listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("Request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// writeError maps the error taxonomy onto status codes.
func writeError(w http.ResponseWriter, err error) {
	var (
		verr *wterrors.ValidationError
		ferr *wterrors.FormatError
		serr *wterrors.StorageError
	)
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error(), Field: verr.Field})
	case errors.As(err, &ferr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.As(err, &serr):
		logger.Error("Storage failure", "op", serr.Op, "key", serr.Key, "error", serr.Err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "storage failure"})
	default:
		logger.Error("Request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
	}
}
