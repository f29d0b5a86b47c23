package server

import (
	"net/http"
	"time"

	"github.com/existflow/ironplan/internal/logger"
	"github.com/existflow/ironplan/internal/store"
	"github.com/existflow/ironplan/internal/token"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server is the project-management API server
type Server struct {
	store  *store.Store
	tokens *token.Service
	echo   *echo.Echo
}

// New creates a new server around an already-opened store and token
// service
func New(st *store.Store, tokens *token.Service) *Server {
	s := &Server{
		store:  st,
		tokens: tokens,
	}
	s.setupEcho()
	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true

	// Custom logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)

			res := c.Response()
			logger.Info("HTTP request",
				logger.F("method", req.Method),
				logger.F("uri", req.RequestURI),
				logger.F("status", res.Status),
				logger.F("duration", time.Since(start).String()))

			return err
		}
	})

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	e.GET("/", s.handleWelcome)
	e.GET("/health", s.handleHealth)

	// Auth endpoints (public)
	e.POST("/auth/register", s.handleRegister)
	e.POST("/auth/login", s.handleLogin)

	// Protected endpoints
	protected := e.Group("")
	protected.Use(s.authMiddleware)
	protected.GET("/me", s.handleMe)

	protected.POST("/projects", s.handleCreateProject)
	protected.GET("/projects", s.handleListProjects)
	protected.PUT("/projects/:id", s.handleUpdateProject)
	protected.DELETE("/projects/:id", s.handleDeleteProject)

	protected.GET("/projects/:id/tasks", s.handleListProjectTasks)
	protected.POST("/projects/:id/tasks", s.handleCreateTask)

	protected.GET("/tasks", s.handleListTasks)
	protected.PUT("/tasks/:id", s.handleUpdateTask)
	protected.DELETE("/tasks/:id", s.handleDeleteTask)

	s.echo = e
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) handleWelcome(c echo.Context) error {
	return c.String(http.StatusOK, "Welcome to the Project Management API!")
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
