package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/KOFI-GYIMAH/portfolio-api/docs"
	"github.com/KOFI-GYIMAH/portfolio-api/internal/config"
	"github.com/KOFI-GYIMAH/portfolio-api/internal/contact"
	"github.com/KOFI-GYIMAH/portfolio-api/internal/db"
	"github.com/KOFI-GYIMAH/portfolio-api/internal/directory"
	"github.com/KOFI-GYIMAH/portfolio-api/internal/github"
	"github.com/KOFI-GYIMAH/portfolio-api/internal/handler"
	md "github.com/KOFI-GYIMAH/portfolio-api/internal/middleware"
	"github.com/KOFI-GYIMAH/portfolio-api/internal/models"
	"github.com/KOFI-GYIMAH/portfolio-api/internal/queue"
	"github.com/KOFI-GYIMAH/portfolio-api/internal/worker"
	"github.com/KOFI-GYIMAH/portfolio-api/pkg/logger"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Portfolio API
// @version 1.0.0
// @description Repository directory, section navigation and contact inbox backing the portfolio site.
// @host localhost:8081
// @BasePath /v1
func main() {
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.LevelDebug)
	}

	// * Load configuration
	cfg, err := config.LoadConfiguration()
	if err != nil {
		logger.Error("‼️ Failed to load config: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// * Initialize GitHub client and the cached directory
	githubClient := github.NewClient(
		cfg.GitHubToken,
		github.WithBaseURL(cfg.GitHubAPIURL),
		github.WithTimeout(cfg.HTTPTimeout),
	)

	cacheCfg := directory.DefaultCacheConfig()
	cacheCfg.ListStaleTime = cfg.RepoStaleTime
	cacheCfg.ListGCTime = cfg.RepoGCTime
	cacheCfg.FacetStaleTime = cfg.FacetStaleTime
	cacheCfg.FacetGCTime = cfg.FacetGCTime
	repoDirectory := directory.NewCached(directory.New(githubClient), cacheCfg)

	// * Keep the owner's listing warm
	go worker.NewWarmWorker(repoDirectory, cfg.WarmInterval, cfg.GitHubOwner).Run(ctx)

	// * Contact inbox, only with a database
	var contactSubmitter handler.ContactSubmitter
	if cfg.ContactEnabled() {
		database, err := db.NewPostgresDB(cfg.DBURL)
		if err != nil {
			logger.Error("Failed to initialize database: %v", err)
			os.Exit(1)
		}
		defer database.Close()

		if err := database.Migrate("file://migrations"); err != nil {
			logger.Error("Failed to run migrations: %v", err)
			os.Exit(1)
		}
		logger.Info("Successfully ran migrations")

		var rabbitMQ *queue.RabbitMQ
		if cfg.RabbitMQURL != "" {
			rabbitMQ, err = queue.NewRabbitMQ(cfg.RabbitMQURL)
			if err != nil {
				logger.Warn("RabbitMQ unavailable, contact notifications disabled: %v", err)
				rabbitMQ = nil
			} else {
				defer rabbitMQ.Close()
			}
		}

		var publisher models.ContactPublisher
		if rabbitMQ != nil {
			publisher = rabbitMQ
		}
		contactService := contact.NewService(database, publisher)

		if rabbitMQ != nil {
			go worker.NewNotifyWorker(rabbitMQ, contactService.HandleNotification).Run(ctx)
		}

		contactSubmitter = contactService
	} else {
		logger.Warn("DATABASE_URL not set, contact form disabled")
	}

	// * Create API server
	router := mux.NewRouter()
	router.Use(md.LoggingMiddleware)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	router.PathPrefix("/v1/swagger/").Handler(httpSwagger.WrapHandler)

	api := router.PathPrefix("/v1").Subrouter()
	handler.NewDirectoryHandler(repoDirectory, repoDirectory).RegisterRoutes(api)
	handler.NewNavigationHandler(cfg.Sections).RegisterRoutes(api)
	handler.NewContactHandler(contactSubmitter).RegisterRoutes(api)

	server := &http.Server{
		Addr:              cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting API server on %s for %s", cfg.ServerPort, cfg.GitHubOwner)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("API server error: %v", err)
			os.Exit(1)
		}
	}()

	// * Wait for termination signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}
