package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/kshitij-139/GEM-JD/internal/generator"
	"github.com/kshitij-139/GEM-JD/internal/session"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	sessionCookie   = "gemjd_session"
	sessionHeader   = "X-Session-ID"
	shutdownTimeout = 10 * time.Second
)

// Options configures the web form.
type Options struct {
	Brand              string
	DefaultTemperature float64
	SessionTTL         time.Duration
}

// Server serves the HTML form and the JSON API over one session manager.
type Server struct {
	svc      *generator.Service
	sessions *session.Manager
	opts     Options
	logger   *slog.Logger
	engine   *gin.Engine
}

// New creates a server with all routes registered.
func New(svc *generator.Service, sessions *session.Manager, opts Options, logger *slog.Logger) *Server {
	s := &Server{
		svc:      svc,
		sessions: sessions,
		opts:     opts,
		logger:   logger,
		engine:   gin.New(),
	}

	s.engine.Use(gin.Recovery(), requestLogger(logger))
	s.engine.SetHTMLTemplate(template.Must(
		template.New("").Funcs(template.FuncMap{"temp": formatTemperature}).ParseFS(templatesFS, "templates/*.html"),
	))

	s.engine.GET("/", s.handleIndex)
	s.engine.POST("/generate", s.handleSubmit)

	api := s.engine.Group("/api/v1")
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", sessionHeader}
	config.ExposeHeaders = []string{sessionHeader}
	api.Use(cors.New(config))
	{
		api.GET("/health", s.handleHealth)
		api.GET("/options", s.handleOptions)
		api.POST("/generate", s.handleGenerate)
	}

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Run listens on addr until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

// sessionFor resolves the caller's session from the cookie (or the API
// header) and creates one when it is missing or expired.
func (s *Server) sessionFor(c *gin.Context) *session.Session {
	id, err := c.Cookie(sessionCookie)
	if err != nil || id == "" {
		id = c.GetHeader(sessionHeader)
	}
	sess, created := s.sessions.GetOrCreate(id)
	if created {
		s.logger.Debug("session created", "session", sess.ID)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, sess.ID, int(s.opts.SessionTTL.Seconds()), "/", "", false, true)
	c.Header(sessionHeader, sess.ID)
	return sess
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
		)
	}
}

func formatTemperature(t float64) string {
	return fmt.Sprintf("%.1f", t)
}
