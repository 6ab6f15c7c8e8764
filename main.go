package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql (migrations)
	"go.uber.org/zap"

	"github.com/wikibhasha/wikibhasha-engine/pkg/auth"
	"github.com/wikibhasha/wikibhasha-engine/pkg/config"
	"github.com/wikibhasha/wikibhasha-engine/pkg/database"
	"github.com/wikibhasha/wikibhasha-engine/pkg/handlers"
	"github.com/wikibhasha/wikibhasha-engine/pkg/logging"
	"github.com/wikibhasha/wikibhasha-engine/pkg/middleware"
	"github.com/wikibhasha/wikibhasha-engine/pkg/repositories"
	"github.com/wikibhasha/wikibhasha-engine/pkg/services"
	"github.com/wikibhasha/wikibhasha-engine/pkg/wiki"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck // flush on shutdown is best-effort

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("base_url", cfg.BaseURL),
		zap.String("database", cfg.Database.Database),
		zap.String("wikipedia_base_url", cfg.Wikipedia.BaseURL))

	ctx := context.Background()

	// Run migrations through database/sql before opening the pool
	migrationDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatal("Failed to open migration connection", zap.String("error", logging.SanitizeError(err)))
	}
	if err := database.RunMigrations(migrationDB, cfg.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.String("error", logging.SanitizeError(err)))
	}
	if err := migrationDB.Close(); err != nil {
		logger.Warn("Failed to close migration connection", zap.Error(err))
	}

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.String("error", logging.SanitizeError(err)))
	}
	defer db.Close()

	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.String("error", logging.SanitizeError(err)))
	}
	if redisClient == nil {
		logger.Info("Redis not configured; summary caching disabled")
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	sentenceRepo := repositories.NewSentenceRepository(db)

	// Collaborators and services
	summarySource := wiki.NewSummarySource(&cfg.Wikipedia, redisClient, cfg.Redis.SummaryTTL, logger)
	authService := auth.NewService(&cfg.Auth, userRepo, logger)
	projectService := services.NewProjectService(projectRepo, summarySource, logger)
	sentenceService := services.NewSentenceService(sentenceRepo, projectRepo, logger)
	userService := services.NewUserService(userRepo, logger)

	authMiddleware := auth.NewMiddleware(authService, logger)

	mux := http.NewServeMux()

	// Register handlers
	handlers.NewHealthHandler(cfg, db, logger).RegisterRoutes(mux)
	handlers.NewAuthHandler(authService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewProjectsHandler(projectService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewSentencesHandler(sentenceService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewUsersHandler(userService, logger).RegisterRoutes(mux, authMiddleware)

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting wikibhasha-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// newLogger builds the process logger: human-readable locally, JSON
// elsewhere.
func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
