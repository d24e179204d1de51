package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/projectcnw/sales-backoffice/config"
	"github.com/projectcnw/sales-backoffice/internal/auth"
	"github.com/projectcnw/sales-backoffice/internal/middleware"
	"github.com/projectcnw/sales-backoffice/internal/pkg/broker"
	"github.com/projectcnw/sales-backoffice/internal/pkg/cache"
	"github.com/projectcnw/sales-backoffice/internal/pkg/logger"
	"github.com/projectcnw/sales-backoffice/internal/pkg/postgres"
	"github.com/projectcnw/sales-backoffice/internal/pkg/search"

	authH "github.com/projectcnw/sales-backoffice/internal/auth/handler"
	authRepoPkg "github.com/projectcnw/sales-backoffice/internal/auth/repository"
	authUCPkg "github.com/projectcnw/sales-backoffice/internal/auth/usecase"

	catalogH "github.com/projectcnw/sales-backoffice/internal/catalog/handler"
	catalogRepoPkg "github.com/projectcnw/sales-backoffice/internal/catalog/repository"
	catalogUCPkg "github.com/projectcnw/sales-backoffice/internal/catalog/usecase"

	catH "github.com/projectcnw/sales-backoffice/internal/category/handler"
	catRepoPkg "github.com/projectcnw/sales-backoffice/internal/category/repository"
	catUCPkg "github.com/projectcnw/sales-backoffice/internal/category/usecase"

	chanH "github.com/projectcnw/sales-backoffice/internal/channel/handler"
	chanRepoPkg "github.com/projectcnw/sales-backoffice/internal/channel/repository"
	chanUCPkg "github.com/projectcnw/sales-backoffice/internal/channel/usecase"

	promoH "github.com/projectcnw/sales-backoffice/internal/promotion/handler"
	promoRepoPkg "github.com/projectcnw/sales-backoffice/internal/promotion/repository"
	promoUCPkg "github.com/projectcnw/sales-backoffice/internal/promotion/usecase"

	categoryDTO "github.com/projectcnw/sales-backoffice/internal/category/dto"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.Config{
		IsDevelopment:     cfg.Server.AppEnv == "dev",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5. Initialize Kafka Producer
	kafkaProducer := broker.NewProducer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.PublishTopic,
	})
	defer kafkaProducer.Close()
	appLogger.Info("Connected to Kafka Producer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.PublishTopic))

	// 6. Initialize Elasticsearch
	var esClient *search.Client
	if cfg.Elastic.Enabled {
		esClient, err = search.NewClient(&search.Config{
			Addresses: cfg.Elastic.Addresses,
			Username:  cfg.Elastic.Username,
			Password:  cfg.Elastic.Password,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Elasticsearch (Search features might be limited)", zap.Error(err))
			esClient = nil
		} else {
			appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
		}
	}

	// 7. Initialize Repositories
	authRepo := authRepoPkg.NewPGRepository(db)
	catalogRepo := catalogRepoPkg.NewPGRepository(db)
	catRepo := catRepoPkg.NewPGRepository(db)
	promoRepo := promoRepoPkg.NewPGRepository(db)
	chanRepo := chanRepoPkg.NewPGRepository(db)

	// 8. Initialize UseCases
	tokenService := auth.NewTokenService(cfg.JWT.SecretKey, time.Duration(cfg.JWT.TokenTTLHours)*time.Hour)
	authUC := authUCPkg.NewAuthUseCase(authRepo, tokenService, appLogger)
	catalogUC := catalogUCPkg.NewBaseProductUseCase(catalogRepo, redisClient, esClient, cfg.Elastic.Index, appLogger)
	catUC := catUCPkg.NewCategoryUseCase(catRepo, appLogger)
	promoUC := promoUCPkg.NewPromotionUseCase(promoRepo, appLogger)
	chanUC := chanUCPkg.NewChannelUseCase(chanRepo, kafkaProducer, appLogger)

	// 9. Initialize Handlers
	authHandler := authH.NewAuthHandler(authUC, appLogger)
	catalogHandler := catalogH.NewBaseProductHandler(catalogUC, appLogger)
	catHandler := catH.NewCategoryHandler(catUC, appLogger)
	promoHandler := promoH.NewPromotionHandler(promoUC, appLogger)
	chanHandler := chanH.NewChannelHandler(chanUC, appLogger)

	// 10. Build HTTP server
	if cfg.Server.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("slug", categoryDTO.SlugValidator); err != nil {
			appLogger.Fatal("Could not register slug validator", zap.Error(err))
		}
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.RequestLogger(appLogger))

	authMW := middleware.NewAuthMiddleware(tokenService, authRepo, appLogger)
	router.Use(authMW.Authenticate())

	users := router.Group("/api/v1/users")
	authHandler.MapRoutes(users)

	admin := router.Group("/admin", authMW.RequireAuth())
	catalogHandler.MapRoutes(admin)
	catHandler.MapRoutes(admin)
	promoHandler.MapRoutes(admin)
	chanHandler.MapRoutes(admin)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPPort,
		Handler: router,
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
