package main

import (
	"os"

	"github.com/quizflow/quiz-service/internal/cache"
	"github.com/quizflow/quiz-service/internal/config"
	"github.com/quizflow/quiz-service/internal/handlers"
	"github.com/quizflow/quiz-service/internal/models"
	"github.com/quizflow/quiz-service/internal/repositories/postgres"
	"github.com/quizflow/quiz-service/internal/services"
	"github.com/quizflow/quiz-service/internal/session"
	"github.com/quizflow/quiz-service/internal/utils"
	"github.com/quizflow/quiz-service/internal/validator"
	"github.com/quizflow/quiz-service/pkg"
	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
		gin.SetMode(gin.ReleaseMode)
	} else {
		logger = utils.NewDevelopmentLogger()
	}
	slogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Question{}, &models.ScoreRecord{}); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Error("Failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		logger.Error("Failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	repo := postgres.NewRepository(db)
	cacheService := cache.NewRedisCache(redisClient, slogger)
	sessions := session.NewRedisStore(cacheService, cfg.SessionTTL)
	v := validator.New()

	serviceManager := services.NewServiceManager(repo, sessions, publisher, slogger, v)

	casdoorClient := casdoorsdk.NewClient(
		cfg.Casdoor.Endpoint,
		cfg.Casdoor.ClientID,
		cfg.Casdoor.ClientSecret,
		cfg.Casdoor.Certificate,
		cfg.Casdoor.Organization,
		cfg.Casdoor.Application,
	)
	verifier := handlers.NewCasdoorVerifier(casdoorClient)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlerManager := handlers.NewHandlerManager(serviceManager, verifier, logger)
	handlerManager.SetupRoutes(router)

	logger.Info("Starting quiz service", "port", cfg.Port, "environment", cfg.Environment)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
