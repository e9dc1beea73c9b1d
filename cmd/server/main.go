package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	_ "exercisetracker/docs" // swagger docs

	"exercisetracker/internal/cache"
	"exercisetracker/internal/config"
	"exercisetracker/internal/db"
	"exercisetracker/internal/handler"
	"exercisetracker/internal/metrics"
	"exercisetracker/internal/router"
	"exercisetracker/internal/service"
)

// @title Exercise Tracker API
// @version 1.0
// @description Users and their timestamped exercise logs.
// @host localhost:3000
// @BasePath /api
// @schemes http
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := db.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	log.Printf("store driver: %s", store.Driver)

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(ctx); err != nil {
		log.Printf("Warning: redis unreachable, continuing without cache hits: %v", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.New(reg)

	// Initialize services
	userService := service.NewUserService(store.Users, cacheClient, cfg.UserCacheTTL, recorder)
	exerciseService := service.NewExerciseService(userService, store.Exercises, recorder)

	// Initialize handlers
	respond := handler.Responder{SoftNotFound: cfg.SoftNotFound}
	healthHandler := handler.NewHealthHandler(map[string]handler.Pinger{
		"store": store,
		"cache": cacheClient,
	})
	userHandler := handler.NewUserHandler(userService, respond)
	exerciseHandler := handler.NewExerciseHandler(exerciseService, respond)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, reg, healthHandler, userHandler, exerciseHandler)

	log.Printf("Swagger documentation available at: %s", swaggerURL(cfg))

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server start: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if err := store.Close(shutCtx); err != nil {
		log.Printf("store close: %v", err)
	}
	if err := cacheClient.Close(); err != nil {
		log.Printf("cache close: %v", err)
	}
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host + "/swagger/index.html"
}
