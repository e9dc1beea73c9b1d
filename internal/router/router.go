package router

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"exercisetracker/internal/config"
	"exercisetracker/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	gatherer prometheus.Gatherer,
	healthHandler *handler.HealthHandler,
	userHandler *handler.UserHandler,
	exerciseHandler *handler.ExerciseHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins(),
	}))

	e.GET("/healthz", healthHandler.Live)
	e.GET("/readyz", healthHandler.Ready)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// User directory
	api.POST("/users", userHandler.CreateUser)
	api.GET("/users", userHandler.ListUsers)

	// Exercise log
	api.POST("/users/:id/exercises", exerciseHandler.AddExercise)
	api.GET("/users/:id/logs", exerciseHandler.GetLogs)
}
