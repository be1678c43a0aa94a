package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/hrcore/employee-service/internal/api/handler"
	"github.com/hrcore/employee-service/internal/api/middleware"
	"github.com/hrcore/employee-service/internal/core/ports"
)

// Dependencies carries everything the HTTP layer needs. It is assembled once
// in main.
type Dependencies struct {
	Auth      ports.AuthService
	Tokens    ports.TokenService
	Positions ports.PositionService
	Employees ports.EmployeeService

	// Checks are pinged by the readiness probe.
	Checks      []handler.DependencyCheck
	CORSOrigins []string
	Log         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// HTTP metrics get their own registry so several routers can coexist in
	// one process; /metrics serves it together with the default registry.
	httpMetrics := prometheus.NewRegistry()

	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// --- Global middleware ---
	e.Pre(echomiddleware.RemoveTrailingSlash())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderAuthorization,
			echo.HeaderContentType,
			handler.HeaderIdempotencyKey,
		},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "employees",
		Registerer: httpMetrics,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || strings.HasPrefix(c.Path(), "/swagger")
		},
	}))
	e.Use(middleware.RequestLogger(deps.Log))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	positionHandler := handler.NewPositionHandler(deps.Positions)
	employeeHandler := handler.NewEmployeeHandler(deps.Employees)
	healthHandler := handler.NewHealthHandler(deps.Checks...)
	authMiddleware := middleware.Auth(deps.Tokens)

	// --- Public routes ---
	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, httpMetrics},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Protected routes ---
	positions := e.Group("/positions", authMiddleware)
	positions.POST("", positionHandler.Create)
	positions.GET("", positionHandler.List)
	positions.GET("/:id", positionHandler.Get)
	positions.PUT("/:id", positionHandler.Update)
	positions.DELETE("/:id", positionHandler.Delete)

	employees := e.Group("/employees", authMiddleware)
	employees.POST("", employeeHandler.Create)
	employees.GET("", employeeHandler.List)
	employees.GET("/:id", employeeHandler.Get)
	employees.PUT("/:id", employeeHandler.Update)
	employees.DELETE("/:id", employeeHandler.Delete)

	return e
}
