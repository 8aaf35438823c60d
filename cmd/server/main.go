package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vera24m/ultimatum-game/internal/common/clock"
	"github.com/vera24m/ultimatum-game/internal/common/uuid"
	"github.com/vera24m/ultimatum-game/internal/draw"
	"github.com/vera24m/ultimatum-game/internal/handlers/web"
	answerRepo "github.com/vera24m/ultimatum-game/internal/repositories/answer"
	catalogRepo "github.com/vera24m/ultimatum-game/internal/repositories/catalog"
	playerRepo "github.com/vera24m/ultimatum-game/internal/repositories/player"
	roundRepo "github.com/vera24m/ultimatum-game/internal/repositories/round"
	sessionRepo "github.com/vera24m/ultimatum-game/internal/repositories/session"
	"github.com/vera24m/ultimatum-game/internal/services/experiment"
	"github.com/vera24m/ultimatum-game/internal/services/export"
	"github.com/vera24m/ultimatum-game/internal/services/questionnaire"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	numRounds := getEnvInt("NUM_ROUNDS", experiment.DefaultNumRounds)

	// Initialize repositories
	catalog, err := catalogRepo.NewRedis(&catalogRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.Fatal("Failed to create catalog repository", zap.Error(err))
	}

	players, err := playerRepo.NewRedis(&playerRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.Fatal("Failed to create player repository", zap.Error(err))
	}

	rounds, err := roundRepo.NewRedis(&roundRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.Fatal("Failed to create round repository", zap.Error(err))
	}

	answers, err := answerRepo.NewRedis(&answerRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.Fatal("Failed to create answer repository", zap.Error(err))
	}

	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{
		RedisClient: redisClient,
		TTL:         getEnvDuration("SESSION_TTL", sessionRepo.DefaultTTL),
	})
	if err != nil {
		logger.Fatal("Failed to create session repository", zap.Error(err))
	}

	// Seed the opponent pool and the question catalog. One opponent per
	// kind per round slot so no session runs out of fresh opponents.
	if err := catalog.Seed(ctx, &catalogRepo.SeedInput{
		OpponentsPerKind: numRounds,
	}); err != nil {
		logger.Fatal("Failed to seed reference data", zap.Error(err))
	}

	systemClock := &clock.DefaultClock{}
	uuidGenerator := uuid.New()
	picker := draw.New(&draw.Config{})

	// Initialize services
	experimentSvc, err := experiment.New(&experiment.Config{
		NumRounds:       numRounds,
		AmountAvailable: experiment.DefaultAmountAvailable,
		CatalogRepo:     catalog,
		PlayerRepo:      players,
		RoundRepo:       rounds,
		SessionRepo:     sessions,
		Clock:           systemClock,
		UUIDGenerator:   uuidGenerator,
		Picker:          picker,
	})
	if err != nil {
		logger.Fatal("Failed to create experiment service", zap.Error(err))
	}

	questionnaireSvc, err := questionnaire.New(&questionnaire.Config{
		QuestionsPerPage: getEnvInt("QUESTIONS_PER_PAGE", 2),
		Orphans:          getEnvInt("QUESTION_ORPHANS", 0),
		CatalogRepo:      catalog,
		AnswerRepo:       answers,
		PlayerRepo:       players,
		SessionRepo:      sessions,
		Clock:            systemClock,
	})
	if err != nil {
		logger.Fatal("Failed to create questionnaire service", zap.Error(err))
	}

	exportSvc, err := export.New(&export.Config{
		CatalogRepo: catalog,
		PlayerRepo:  players,
		RoundRepo:   rounds,
		AnswerRepo:  answers,
	})
	if err != nil {
		logger.Fatal("Failed to create export service", zap.Error(err))
	}

	handler, err := web.New(&web.Config{
		ExperimentService:    experimentSvc,
		QuestionnaireService: questionnaireSvc,
		ExportService:        exportSvc,
		UUIDGenerator:        uuidGenerator,
		Logger:               logger,
	})
	if err != nil {
		logger.Fatal("Failed to create web handler", zap.Error(err))
	}

	server := &http.Server{
		Addr:    getEnv("ADDR", ":8080"),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("Server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for a termination signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown failed", zap.Error(err))
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
