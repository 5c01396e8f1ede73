package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brixium.backend/internal/config"
	domainRepos "brixium.backend/internal/domain/repositories"
	"brixium.backend/internal/infrastructure/datasources/postgres"
	"brixium.backend/internal/infrastructure/jobs"
	"brixium.backend/internal/infrastructure/repositories"
	"brixium.backend/internal/infrastructure/seed"
	"brixium.backend/internal/infrastructure/snapshot"
	"brixium.backend/internal/interfaces/http/handlers"
	"brixium.backend/internal/interfaces/http/middleware"
	"brixium.backend/internal/usecases"
	"brixium.backend/pkg/crypto"
	"brixium.backend/pkg/jwt"
	"brixium.backend/pkg/logger"
	"brixium.backend/pkg/redis"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	loadDotenv      = godotenv.Load
	loadCfg         = config.Load
	initLog         = logger.Init
	initRedis       = redis.Init
	openDB          = postgres.NewConnection
	newSessionStore = redis.NewSessionStore
	runServer       = serve
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

// serve runs srv until ctx is cancelled, then drains it within timeout
func serve(ctx context.Context, srv *http.Server, timeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env, cfg.Server.LogLevel)
	defer logger.Sync()
	bootCtx := context.Background()
	logger.Info(bootCtx, "Logger initialized", zap.String("env", cfg.Server.Env))

	// Redis backs sessions and idempotency keys, and is mandatory only as the snapshot backend
	redisReady := false
	if cfg.Redis.URL != "" {
		if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
			if cfg.Snapshot.Backend == config.SnapshotBackendRedis {
				logger.Error(bootCtx, "Failed to initialize Redis", zap.Error(err))
				return fmt.Errorf("failed to initialize redis: %w", err)
			}
			logger.Warn(bootCtx, "Redis unavailable, sessions and idempotency keys disabled", zap.Error(err))
		} else {
			redisReady = true
			defer redis.Close()
			logger.Info(bootCtx, "Redis initialized")
		}
	}

	backend, cleanup, err := openSnapshotBackend(bootCtx, cfg, redisReady)
	if err != nil {
		return err
	}
	defer cleanup()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	hasher := crypto.NewHasher(cfg.Security.BcryptCost)
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)

	var sessionStore *redis.SessionStore
	if redisReady {
		sessionStore, err = newSessionStore(cfg.Security.SessionEncryptionKey)
		if err != nil {
			return fmt.Errorf("failed to initialize session store: %w", err)
		}
	}

	// Load state, seeding collections the backend does not have yet
	store := repositories.NewStore(backend)
	if err := store.Load(bootCtx, func() (*seed.Data, error) {
		return seed.Load(time.Now().UTC(), hasher)
	}); err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	// Initialize repositories
	uow := repositories.NewUnitOfWork(store)
	userRepo := repositories.NewUserRepository(store)
	txRepo := repositories.NewTransactionRepository(store)
	kycRepo := repositories.NewKYCRepository(store)
	withdrawalRepo := repositories.NewWithdrawalRepository(store)
	notifRepo := repositories.NewNotificationRepository(store)
	settingsRepo := repositories.NewSettingsRepository(store)

	// Initialize usecases
	admin := usecases.AdminCredentials{ID: cfg.Admin.ID, Email: cfg.Admin.Email, Password: cfg.Admin.Password}
	var sessions usecases.SessionStore
	var sessionReader middleware.SessionReader
	if sessionStore != nil {
		sessions = sessionStore
		sessionReader = sessionStore
	}
	feeGate := usecases.NewFeeGate(settingsRepo)
	authUsecase := usecases.NewAuthUsecase(userRepo, settingsRepo, jwtService, hasher, sessions, cfg.Security.SessionTTL, admin)
	accountUsecase := usecases.NewAccountUsecase(uow, userRepo, settingsRepo, hasher)
	ledgerUsecase := usecases.NewLedgerUsecase(uow, userRepo, txRepo, notifRepo, settingsRepo, feeGate, hasher)
	kycUsecase := usecases.NewKYCUsecase(uow, kycRepo, userRepo, notifRepo)
	withdrawalUsecase := usecases.NewWithdrawalUsecase(uow, withdrawalRepo, userRepo, txRepo, notifRepo, settingsRepo, feeGate)
	notificationUsecase := usecases.NewNotificationUsecase(notifRepo, userRepo)
	settingsUsecase := usecases.NewSettingsUsecase(uow, settingsRepo)
	adminUsecase := usecases.NewAdminUsecase(uow, userRepo, kycRepo, withdrawalRepo, settingsRepo)

	// Start background jobs
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checkpointJob := jobs.NewSnapshotCheckpointJob(store, cfg.Snapshot.CheckpointInterval)
	go checkpointJob.Start(ctx)
	defer checkpointJob.Stop()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r, cfg.Server.AllowedOrigins)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:         handlers.NewAuthHandler(authUsecase),
		accountHandler:      handlers.NewAccountHandler(accountUsecase),
		ledgerHandler:       handlers.NewLedgerHandler(ledgerUsecase),
		kycHandler:          handlers.NewKYCHandler(kycUsecase),
		withdrawalHandler:   handlers.NewWithdrawalHandler(withdrawalUsecase),
		notificationHandler: handlers.NewNotificationHandler(notificationUsecase),
		settingsHandler:     handlers.NewSettingsHandler(settingsUsecase, feeGate),
		adminHandler:        handlers.NewAdminHandler(adminUsecase),
		authMiddleware:      middleware.AuthMiddleware(jwtService, sessionReader),
		idempotencyTTL:      cfg.Security.IdempotencyTTL,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info(bootCtx, "Brixium backend starting",
		zap.String("port", cfg.Server.Port),
		zap.String("snapshot_backend", cfg.Snapshot.Backend),
		zap.Int("routes", len(r.Routes())),
	)

	serveErr := runServer(ctx, srv, cfg.Server.ShutdownTimeout)

	// Final mirror of every collection before exit
	flushCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := store.FlushAll(flushCtx); err != nil {
		logger.Error(bootCtx, "Final snapshot flush failed", zap.Error(err))
	}

	if serveErr != nil {
		return fmt.Errorf("failed to start server: %w", serveErr)
	}
	logger.Info(bootCtx, "Server stopped")
	return nil
}

// openSnapshotBackend picks where collections are mirrored
func openSnapshotBackend(ctx context.Context, cfg *config.Config, redisReady bool) (domainRepos.SnapshotStore, func(), error) {
	noop := func() {}

	switch cfg.Snapshot.Backend {
	case config.SnapshotBackendRedis:
		if !redisReady {
			return nil, noop, errors.New("redis snapshot backend requires REDIS_URL")
		}
		return snapshot.NewRedisStore(redis.GetClient(), cfg.Snapshot.KeyPrefix), noop, nil

	case config.SnapshotBackendPostgres:
		db, err := openDB(cfg.Database)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to connect to database: %w", err)
		}
		store := snapshot.NewSQLStore(db)
		if err := store.Migrate(ctx); err != nil {
			closeDB(db)
			return nil, noop, fmt.Errorf("failed to migrate snapshot table: %w", err)
		}
		logger.Info(ctx, "Connected to PostgreSQL snapshot backend")
		return store, func() { closeDB(db) }, nil

	case config.SnapshotBackendMemory:
		logger.Warn(ctx, "Memory snapshot backend: state is lost on restart")
		return snapshot.NewMemoryStore(), noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown snapshot backend %q", cfg.Snapshot.Backend)
	}
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
