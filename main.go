package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for migrations
	"go.uber.org/zap"

	"github.com/mediamarket-ai/chat-engine/pkg/auth"
	"github.com/mediamarket-ai/chat-engine/pkg/config"
	"github.com/mediamarket-ai/chat-engine/pkg/crud"
	"github.com/mediamarket-ai/chat-engine/pkg/database"
	"github.com/mediamarket-ai/chat-engine/pkg/handlers"
	"github.com/mediamarket-ai/chat-engine/pkg/logging"
	"github.com/mediamarket-ai/chat-engine/pkg/middleware"
	"github.com/mediamarket-ai/chat-engine/pkg/models"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("bind_addr", cfg.BindAddr),
		zap.String("port", cfg.Port),
		zap.Bool("auth_verification", cfg.Auth.EnableVerification),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.URL())),
		zap.Int("max_delete_limit", cfg.CRUD.MaxDeleteLimit))

	ctx := context.Background()

	// Migrations run over database/sql because the migrate driver requires it.
	sqlDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatal("Failed to open migration connection", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, cfg.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	_ = sqlDB.Close()

	db, err := database.Connect(ctx, cfg.Database.URL(), cfg.Database.MaxConnections)
	if err != nil {
		logger.Fatal("Failed to connect to database",
			zap.String("error", logging.SanitizeError(err)))
	}
	defer db.Close()

	jwksClient, err := auth.NewJWKSClient(&auth.JWKSConfig{
		EnableVerification: cfg.Auth.EnableVerification,
		JWKSEndpoints:      cfg.Auth.JWKSEndpoints,
	})
	if err != nil {
		logger.Fatal("Failed to create JWKS client", zap.Error(err))
	}
	defer jwksClient.Close()

	authMiddleware := auth.NewMiddleware(jwksClient, logger)

	deleteCap := cfg.CRUD.MaxDeleteLimit
	tenantEngine := crud.NewEngine[models.Tenant, models.TenantCreate, models.TenantUpdate](db, models.TenantBinding(), deleteCap)
	userEngine := crud.NewEngine[models.User, models.UserCreate, models.UserUpdate](db, models.UserBinding(), deleteCap)
	sessionEngine := crud.NewEngine[models.ChatSession, models.ChatSessionCreate, models.ChatSessionUpdate](db, models.ChatSessionBinding(), deleteCap)
	logEngine := crud.NewEngine[models.ChatLog, models.ChatLogCreate, models.ChatLogUpdate](db, models.ChatLogBinding(), deleteCap)

	mux := http.NewServeMux()

	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewTenantsHandler(tenantEngine, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewUsersHandler(userEngine, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewChatSessionsHandler(sessionEngine, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewChatLogsHandler(logEngine, logger).RegisterRoutes(mux, authMiddleware)

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting chat-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
