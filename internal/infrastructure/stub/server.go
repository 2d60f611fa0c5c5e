package stub

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/domain"
)

// Config carries the stub backend settings.
type Config struct {
	JWTSecret string
	// TokenTTL bounds the signed token lifetime. Defaults to 8 hours.
	TokenTTL time.Duration
	// Revoker defaults to an in-memory implementation when nil.
	Revoker TokenRevoker
	Logger  zerolog.Logger
	// Metrics enables the echoprometheus middleware and /metrics. Off by
	// default so parallel tests do not fight over the default registry.
	Metrics bool
}

// Server is the stub backend: the full REST surface over in-memory fixtures.
type Server struct {
	echo      *echo.Echo
	store     *Store
	revoker   TokenRevoker
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func New(cfg Config) *Server {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = domain.RenewalWindow
	}
	if cfg.Revoker == nil {
		cfg.Revoker = NewMemoryRevoker()
	}

	s := &Server{
		store:     NewStore(),
		revoker:   cfg.Revoker,
		jwtSecret: cfg.JWTSecret,
		tokenTTL:  cfg.TokenTTL,
		log:       cfg.Logger,
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = newHTTPErrorHandler(cfg.Logger)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	if cfg.Metrics {
		e.Use(echoprometheus.NewMiddleware(metricsNamespace))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e.POST("/auth/login", s.login)

	authed := e.Group("", s.authenticate)
	authed.GET("/auth/me", s.me)
	authed.POST("/auth/logout", s.logout)

	users := authed.Group("/users", requireRole(domain.RoleAdmin))
	users.GET("", s.listUsers)
	users.POST("", s.createUser)
	users.PUT("/:id", s.updateUser)
	users.DELETE("/:id", s.deleteUser)

	authed.GET("/projects", s.listProjects)
	authed.POST("/projects", s.createProject, requireRole(domain.RoleAdmin, domain.RolePMO))
	authed.PUT("/projects/:id", s.updateProject)
	authed.DELETE("/projects/:id", s.deleteProject)

	authed.GET("/projects/:id/phases", s.listPhases)
	authed.POST("/projects/:id/phases", s.createPhase)
	authed.PUT("/phases/:id", s.updatePhase)
	authed.DELETE("/phases/:id", s.deletePhase)

	authed.GET("/reference/utilisateurs", s.listUtilisateurs)
	authed.GET("/reference/:table", s.listReference)

	s.echo = e
	return s
}

// Handler exposes the router for httptest in integration tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves on the given address until Shutdown.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// --- envelope helpers ---

func respondData(c echo.Context, status int, data any) error {
	return c.JSON(status, map[string]any{"success": true, "data": data})
}

func respondList(c echo.Context, data any, count int) error {
	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": data, "count": count})
}

func respondMessage(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]any{"success": true, "message": msg})
}
