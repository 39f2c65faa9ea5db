package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/internal/adapter/handler"
	"github.com/johnquangdev/meeting-summarizer/internal/adapter/repository"
	domainrepo "github.com/johnquangdev/meeting-summarizer/internal/domain/repositories"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/metrics"
	emailuse "github.com/johnquangdev/meeting-summarizer/internal/usecase/email"
	summaryuse "github.com/johnquangdev/meeting-summarizer/internal/usecase/summary"
	pkgai "github.com/johnquangdev/meeting-summarizer/pkg/ai"
	"github.com/johnquangdev/meeting-summarizer/pkg/config"
	"github.com/johnquangdev/meeting-summarizer/pkg/mailer"
	pkgvalidator "github.com/johnquangdev/meeting-summarizer/pkg/validator"
)

// @title           Meeting Summarizer API
// @version         1.0
// @description     Generate, edit, store and email AI meeting summaries
// @BasePath  /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	validator := pkgvalidator.New()
	e.Validator = validator

	e.HideBanner = true
	e.HidePort = false
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(logger)

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
	}))
	e.Use(middleware.RequestID())
	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	log.Println("🔧 Initializing dependencies...")

	// Initialize document store
	log.Printf("📦 Connecting to %s store...", cfg.Store.Driver)
	repo, closeStore, err := openStore(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// Initialize AI components
	log.Println("🤖 Initializing Groq client...")
	groqClient := pkgai.NewGroqClient(&cfg.Groq)
	summaryService := summaryuse.NewSummaryService(repo, groqClient, m, logger)

	// Initialize mailer
	log.Println("✉️  Initializing SMTP sender...")
	sender, err := mailer.NewSender(cfg.SMTP)
	if err != nil {
		log.Fatalf("Failed to initialize SMTP sender: %v", err)
	}
	if cfg.SMTP.Host == "" {
		log.Println("⚠️  SMTP_HOST not set; /api/email/send will fail until configured")
	}
	emailService := emailuse.NewEmailService(sender, validator, m, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg,
		handler.NewSummaryHandler(summaryService, logger),
		handler.NewEmailHandler(emailService, logger),
		registry,
	)
	router.Setup(e)

	// Start server
	go func() {
		addr := cfg.GetServerAddr()
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
		return
	}

	log.Println("✅ Server stopped gracefully")
}

// openStore connects the configured summary store and returns a func that
// releases it
func openStore(cfg *config.Config, logger *zap.Logger) (domainrepo.SummaryRepository, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Store.ConnectTimeout)
	defer cancel()

	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := database.NewPostgresDB(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}

		// Production deployments manage schema with sql-migrate in CI/CD
		if cfg.Store.AutoMigrate {
			if cfg.IsProduction() {
				_ = database.CloseDB(db, logger)
				return nil, nil, fmt.Errorf("DB_AUTO_MIGRATE is enabled in production")
			}
			log.Println("🔄 Applying migrations...")
			if err := database.AutoMigrate(db, logger); err != nil {
				_ = database.CloseDB(db, logger)
				return nil, nil, err
			}
		} else {
			log.Println("🔄 Skipping migrations; run sql-migrate to manage the schema")
		}
		return repository.NewSummaryRepository(db), func() { _ = database.CloseDB(db, logger) }, nil

	case config.StoreDriverMongo:
		client, mdb, err := database.NewMongoDB(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer closeCancel()
			_ = database.CloseMongo(closeCtx, client, logger)
		}
		return repository.NewMongoSummaryRepository(mdb), closeFn, nil

	case config.StoreDriverMemory:
		log.Println("⚠️  Using in-memory store; summaries are lost on restart")
		return repository.NewMemorySummaryRepository(), func() {}, nil
	}

	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
