package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/lawithanx/jcorp/internal/config"
	"github.com/lawithanx/jcorp/internal/infrastructure/blockchain"
	"github.com/lawithanx/jcorp/internal/infrastructure/models"
	"github.com/lawithanx/jcorp/internal/infrastructure/repositories"
	"github.com/lawithanx/jcorp/internal/interfaces/http/handlers"
	"github.com/lawithanx/jcorp/internal/interfaces/http/middleware"
	"github.com/lawithanx/jcorp/internal/usecases"
	"github.com/lawithanx/jcorp/pkg/jwt"
	"github.com/lawithanx/jcorp/pkg/logger"
	"github.com/lawithanx/jcorp/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newSessionStore = redis.NewSessionStore
	newEVMClient    = blockchain.NewEVMClient
	runServer       = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
		if err := db.AutoMigrate(&models.Payment{}, &models.Project{}, &models.Agent{}); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Blockchain node connection
	evmClient, err := newEVMClient(cfg.Blockchain.RPCURL)
	if err != nil {
		logger.Error(context.Background(), "Failed to connect to blockchain node", zap.Error(err))
		return fmt.Errorf("failed to connect to blockchain node: %w", err)
	}
	defer evmClient.Close()
	logger.Info(context.Background(), "Blockchain node connected", zap.String("rpc", cfg.Blockchain.RPCURL))

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	// Repositories
	paymentRepo := repositories.NewPaymentRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	agentRepo := repositories.NewAgentRepository(db)

	// Usecases
	paymentUsecase := usecases.NewPaymentUsecase(paymentRepo, evmClient, cfg.Blockchain, cfg.Payment)
	authUsecase := usecases.NewAuthUsecase(jwtService, sessionStore, cfg.Security, cfg.JWT.RefreshExpiry)
	catalogUsecase := usecases.NewCatalogUsecase(projectRepo, agentRepo)

	// Handlers
	paymentHandler := handlers.NewPaymentHandler(paymentUsecase)
	downloadHandler := handlers.NewDownloadHandler(paymentUsecase)
	adminHandler := handlers.NewAdminHandler(authUsecase)
	catalogHandler := handlers.NewCatalogHandler(catalogUsecase)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIRoutes(r, routeDeps{
		paymentHandler:  paymentHandler,
		downloadHandler: downloadHandler,
		adminHandler:    adminHandler,
		catalogHandler:  catalogHandler,
		authMiddleware:  middleware.AuthMiddleware(jwtService),
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		os.Exit(0)
	}()

	log.Printf("🚀 Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
