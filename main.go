package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"citizenhub/config"
	"citizenhub/cron"
	"citizenhub/database"
	"citizenhub/database/repository"
	"citizenhub/handlers"
	"citizenhub/middleware"
	"citizenhub/routes"
	"citizenhub/services/directory"
	"citizenhub/services/review"
	"citizenhub/services/rules"
	"citizenhub/services/user"
	"citizenhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	if config.AppConfig.JWTSecret == "" {
		logger.Fatal("main: JWT_SECRET must be set")
	}
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	utils.InitRedis()

	// repositories.
	serviceRepo := repository.NewMongoServiceRepo()
	userRepo := repository.NewMongoUserRepository()
	reviewRepo := repository.NewMongoReviewRepo()

	// services.
	engine := rules.NewEngine(rules.FeeAdjustmentsFromConfig(config.AppConfig))
	cache := directory.NewRedisServiceCache(utils.GetCacheClient(), time.Duration(config.AppConfig.ServiceCacheTTL)*time.Second)
	directoryService := directory.NewDirectoryService(serviceRepo, engine, cache, config.AppConfig.PermanentDeleteToken)

	sessions := utils.NewRedisSessionStore(utils.GetAuthCacheClient())
	userService := user.NewUserService(userRepo, sessions)

	queue := asynq.NewClient(cron.QueueRedisOpt())
	defer queue.Close()
	reviewService := review.NewReviewService(reviewRepo, directoryService, queue)
	worker := cron.InitRatingWorker(reviewService)

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, []*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()}, database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	handlerBundle := handlers.NewHandlerBundle(userRepo, sessions, directoryService, userService, reviewService)
	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting server", zap.String("addr", srv.Addr), zap.String("env", config.GetEnv()))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	worker.Shutdown()
	if err := database.Disconnect(ctx); err != nil {
		logger.Error("main: mongo disconnect failed", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}
