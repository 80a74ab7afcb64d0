package api

import (
	"github.com/graph-gophers/graphql-go"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/blogql/blog-api/internal/api/docs"
	"github.com/blogql/blog-api/internal/api/handler"
	"github.com/blogql/blog-api/internal/api/middleware"
	"github.com/blogql/blog-api/internal/core/ports"
)

// Deps are the collaborators the HTTP surface needs.
type Deps struct {
	Schema *graphql.Schema
	Auth   ports.AuthService
	// Checks feed the readiness probe, keyed by dependency name.
	Checks map[string]handler.Check
	Log    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(middleware.Metrics())

	// --- GraphQL ---
	graphqlHandler := handler.NewGraphQLHandler(d.Schema)
	e.POST("/graphql", graphqlHandler.Serve, middleware.Viewer(d.Auth, d.Log))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Checks)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Ops ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
