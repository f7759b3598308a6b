package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"shieldnest.backend/internal/config"
	"shieldnest.backend/internal/infrastructure/repositories"
	"shieldnest.backend/internal/interfaces/http/handlers"
	"shieldnest.backend/internal/interfaces/http/middleware"
	"shieldnest.backend/internal/usecases"
	"shieldnest.backend/pkg/jwt"
	"shieldnest.backend/pkg/logger"
	"shieldnest.backend/pkg/redis"
	"shieldnest.backend/pkg/walletsig"
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
			PrepareStmt:    false,
			TranslateError: true,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
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
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Repositories and stores
	userRepo := repositories.NewUserRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	walletRepo := repositories.NewWalletRepository(db)
	nonceRepo := repositories.NewNonceRepository(db)
	visitorStore := redis.NewVisitorWalletStore(cfg.Wallet.VisitorTTL)

	verifier := newVerifier(cfg)

	// Usecases
	accountService := usecases.NewAccountService(userRepo, profileRepo, jwtService, cfg.Security.AllowAnonymousAuth)
	walletUsecase := usecases.NewWalletUsecase(walletRepo, cfg.Wallet.ChainID)
	walletAuthUsecase := usecases.NewWalletAuthUsecase(
		nonceRepo, walletRepo, accountService, walletUsecase, verifier,
		cfg.Wallet.SignDocPrefix, cfg.Wallet.NonceTTL,
	)
	migrationUsecase := usecases.NewMigrationUsecase(walletRepo, visitorStore, accountService, cfg.Wallet.ChainID)

	// Handlers
	authHandler := handlers.NewAuthHandler(accountService, migrationUsecase)
	walletAuthHandler := handlers.NewWalletAuthHandler(walletAuthUsecase)
	walletHandler := handlers.NewWalletHandler(walletUsecase, accountService, migrationUsecase)
	visitorHandler := handlers.NewVisitorHandler(visitorStore)

	authMiddleware := middleware.AuthMiddleware(jwtService)
	optionalAuthMiddleware := middleware.OptionalAuthMiddleware(jwtService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:            authHandler,
		walletAuthHandler:      walletAuthHandler,
		walletHandler:          walletHandler,
		visitorHandler:         visitorHandler,
		authMiddleware:         authMiddleware,
		optionalAuthMiddleware: optionalAuthMiddleware,
	})

	log.Printf("🚀 ShieldNest Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// newVerifier selects the signature scheme matching the configured chain's
// address format.
func newVerifier(cfg *config.Config) walletsig.Verifier {
	if cfg.Wallet.AddressFormat == "evm" {
		return walletsig.NewEVMVerifier()
	}
	return walletsig.NewADR36Verifier(cfg.Wallet.AddressPrefix)
}
