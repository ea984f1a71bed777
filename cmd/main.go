package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	configs "github.com/Payphone-Digital/carrental/config"
	"github.com/Payphone-Digital/carrental/internal/constants"
	"github.com/Payphone-Digital/carrental/internal/handler"
	"github.com/Payphone-Digital/carrental/internal/middleware"
	"github.com/Payphone-Digital/carrental/internal/repository"
	"github.com/Payphone-Digital/carrental/internal/router"
	"github.com/Payphone-Digital/carrental/internal/service"
	"github.com/Payphone-Digital/carrental/pkg/cache"
	"github.com/Payphone-Digital/carrental/pkg/database"
	"github.com/Payphone-Digital/carrental/pkg/logger"
	"github.com/Payphone-Digital/carrental/pkg/redis"
	"github.com/Payphone-Digital/carrental/pkg/storage"
	"github.com/Payphone-Digital/carrental/pkg/validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Initialize Zap logger
	if err := logger.InitLogger(config); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
		zap.String("version", constants.AppVersion),
	)

	db, err := database.NewPostgresDB(database.ConfigFrom(config))
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.GetLogger().Fatal("Failed to run database migrations", zap.Error(err))
	}
	if err := database.OptimizedIndexes(db); err != nil {
		logger.GetLogger().Fatal("Failed to create database indexes", zap.Error(err))
	}
	logger.GetLogger().Info("Database migrated successfully")

	if err := database.Seed(db, config.Seed); err != nil {
		// Don't fail, the admin may already exist
		logger.GetLogger().Error("Failed to seed database", zap.Error(err))
	}

	redisClient, err := redis.NewClient(config)
	if err != nil {
		logger.GetLogger().Warn("Redis unavailable, falling back to in-memory cache", zap.Error(err))
		redisClient = &redis.Client{}
	}
	defer redisClient.Close()

	memoryCache := cache.NewCache(time.Minute)
	defer memoryCache.Close()

	jwtService, err := service.NewJWTService(config.JWT.Secret, service.TokenTTL{
		Session:  config.JWT.SessionTTL,
		Ticket:   config.JWT.TicketTTL,
		Verified: config.JWT.VerifiedTTL,
	})
	if err != nil {
		logger.GetLogger().Fatal("Failed to initialize token service", zap.Error(err))
	}

	if err := validation.RegisterWithGin(); err != nil {
		logger.GetLogger().Fatal("Failed to register validation rules", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	verificationRepo := repository.NewPhoneVerificationRepository(db)
	carRepo := repository.NewCarRepository(db)
	files := storage.NewLocalStore(config.Upload.Dir, config.Upload.MaxFileSize)

	// Services
	cacheService := service.NewCacheService(redisClient, memoryCache)
	authService := service.NewAuthService(userRepo, files, service.NewBcryptHasher(service.DefaultBcryptCost), jwtService)
	verificationService := service.NewVerificationService(verificationRepo, jwtService, service.NewLogSMSNotifier(),
		config.Verification.CodeTTL, config.Verification.CodeLength)
	userService := service.NewUserService(userRepo, cacheService, config.Cache.ProfileTTL)
	carService := service.NewCarService(carRepo)
	uploadService := service.NewUploadService(files)

	logger.GetLogger().Info("Services initialized",
		zap.String("cache_backend", cacheService.Backend()),
		zap.String("upload_dir", config.Upload.Dir),
	)

	// Middleware
	validationMiddleware, err := middleware.NewValidationMiddleware()
	if err != nil {
		logger.GetLogger().Fatal("Failed to initialize validation middleware", zap.Error(err))
	}
	jwtMiddleware := middleware.NewJWTMiddleware(jwtService, userService)

	if config.App.Environment == constants.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.NewRouter(
		handler.NewAuthHandler(authService, verificationService),
		handler.NewUserHandler(userService),
		handler.NewCarHandler(carService),
		handler.NewUploadHandler(uploadService),
		handler.NewCacheHandler(cacheService, userService),
		handler.NewHealthHandler(db, cacheService),

		validationMiddleware,
		jwtMiddleware,
		config,
	).SetupRoutes()

	srv := &http.Server{
		Addr:              ":" + config.App.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.GetLogger().Info("Server starting",
			zap.String("port", config.App.Port),
			zap.String("host", "0.0.0.0"),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.GetLogger().Fatal("Failed to start server",
				zap.Error(err),
				zap.String("port", config.App.Port),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.GetLogger().Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.GetLogger().Error("Server forced to shutdown", zap.Error(err))
	}
	logger.GetLogger().Info("Server exited")
}
