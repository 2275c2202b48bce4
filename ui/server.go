package ui

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"time"

	"burnoutlens/adapters/chart"
	apperrors "burnoutlens/internal/errors"
	"burnoutlens/internal/logging"
	"burnoutlens/internal/report"
	"burnoutlens/internal/session"
	"burnoutlens/ui/middleware"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Deps are the collaborators of the dashboard server. Builder is nil when the
// dataset could not be loaded; LoadErr then explains why.
type Deps struct {
	Builder    *report.Builder
	LoadErr    error
	Sessions   *session.Manager
	SessionTTL time.Duration
	Charts     *chart.Renderer
	Logger     zerolog.Logger
}

// Server represents the web server for the burnout dashboard
type Server struct {
	router     *gin.Engine
	templates  *template.Template
	builder    *report.Builder
	loadErr    error
	sessions   *session.Manager
	sessionTTL time.Duration
	charts     *chart.Renderer
	logger     zerolog.Logger
}

// NewServer parses the templates and wires the routes
func NewServer(deps Deps) (*Server, error) {
	s := &Server{
		router:     gin.New(),
		builder:    deps.Builder,
		loadErr:    deps.LoadErr,
		sessions:   deps.Sessions,
		sessionTTL: deps.SessionTTL,
		charts:     deps.Charts,
		logger:     logging.Component(deps.Logger, "ui"),
	}
	if s.builder == nil && s.loadErr == nil {
		s.loadErr = apperrors.InternalError("no dataset configured")
	}
	if s.sessions == nil {
		s.sessions = session.NewManager(s.sessionTTL)
	}
	if s.charts == nil {
		s.charts = chart.NewRenderer(0, 0)
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	s.templates = tmpl

	s.setupMiddleware(deps.Logger)
	s.setupRoutes()
	return s, nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)

	api := s.router.Group("/api")
	api.GET("/health", s.handleHealth)

	data := api.Group("", s.requireDataset)
	data.GET("/options", s.handleOptions)
	data.GET("/dashboard", s.handleDashboard)
	data.GET("/chart.png", s.handleChart)
	data.GET("/session", s.handleSession)
	data.PUT("/session/selection", s.handleSetSelection)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("dashboard listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info().Msg("shutting down dashboard")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// setupMiddleware installs recovery, request logging and session resolution
func (s *Server) setupMiddleware(logger zerolog.Logger) {
	s.router.Use(gin.Recovery())
	s.router.Use(logging.GinMiddleware(logger))
	s.router.Use(middleware.Session(s.sessions, s.sessionTTL, logger))
}
