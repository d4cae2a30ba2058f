package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/Rohit1301k/dareroom/internal/catalog"
	"github.com/Rohit1301k/dareroom/internal/config"
	"github.com/Rohit1301k/dareroom/internal/handler"
	"github.com/Rohit1301k/dareroom/internal/middleware"
	"github.com/Rohit1301k/dareroom/internal/pkg/cache"
	"github.com/Rohit1301k/dareroom/internal/pkg/database"
	"github.com/Rohit1301k/dareroom/internal/repository"
	"github.com/Rohit1301k/dareroom/internal/service"
	"github.com/Rohit1301k/dareroom/internal/session"
	"github.com/Rohit1301k/dareroom/internal/store"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// @title           Dareroom API
// @version         1.0
// @description     Shared game-state store and API for truth-or-dare party rooms

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey SessionToken
// @in header
// @name X-Session-Token
// @description Opaque session token returned by room create and join.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg.Log.Level)
	defer logger.Sync()

	logger.Info("Starting dareroom server",
		zap.String("mode", cfg.Server.Mode),
		zap.Int("port", cfg.Server.Port),
		zap.String("store", cfg.Store.Backend),
	)

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Initialize the record store
	gameStore, err := openStore(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open store", zap.Error(err))
	}
	defer gameStore.Close()

	// Initialize Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, logger)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer cache.Close(redisClient, logger)

	// Initialize session manager
	sessions := session.NewManager(redisClient, cfg.Session.TTL, logger)

	// Initialize repositories
	roomRepo := repository.NewRoomRepository(gameStore)
	playerRepo := repository.NewPlayerRepository(gameStore)
	turnRepo := repository.NewTurnRepository(gameStore)
	messageRepo := repository.NewMessageRepository(gameStore)
	questionRepo := repository.NewQuestionRepository(gameStore)

	// Seed the question catalog on first run
	seeded, err := questionRepo.SeedIfEmpty(context.Background(), catalog.Questions())
	if err != nil {
		logger.Fatal("Failed to seed questions", zap.Error(err))
	}
	if seeded > 0 {
		logger.Info("Seeded question catalog", zap.Int("count", seeded))
	}

	// Initialize services
	roomService := service.NewRoomService(roomRepo, playerRepo, messageRepo, cfg.Game.RoomCodeLength, logger)
	gameService := service.NewGameService(roomRepo, playerRepo, turnRepo, messageRepo, questionRepo, cfg.Game.MinPlayers, logger)
	messageService := service.NewMessageService(roomRepo, playerRepo, messageRepo, cfg.Game.MaxMessageLen, logger)
	presenceService := service.NewPresenceService(roomRepo, playerRepo, cfg.Game.TypingExpiry, logger)

	// Initialize handlers
	roomHandler := handler.NewRoomHandler(roomService, sessions)
	gameHandler := handler.NewGameHandler(gameService)
	messageHandler := handler.NewMessageHandler(messageService, presenceService)
	sessionHandler := handler.NewSessionHandler(roomService)

	// Setup router
	router := setupRouter(
		cfg,
		logger,
		sessions,
		redisClient,
		roomHandler,
		gameHandler,
		messageHandler,
		sessionHandler,
	)

	// Create server
	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Server is running",
			zap.String("addr", srv.Addr),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// openStore picks the record store backend from configuration. The
// file store is self-contained; postgres keeps every record as a JSONB
// row and shares the instance-spanning sequence.
func openStore(cfg *config.Config, logger *zap.Logger) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendFile:
		return store.NewFileStore(cfg.Store.File.Dir, logger)
	case config.BackendPostgres:
		db, err := database.NewPostgres(&cfg.Store.Postgres, logger)
		if err != nil {
			return nil, err
		}
		return store.NewPostgresStore(db, logger)
	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.Store.Backend)
	}
}

func initLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(err)
	}

	return logger
}

func setupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	sessions *session.Manager,
	redisClient *redis.Client,
	roomHandler *handler.RoomHandler,
	gameHandler *handler.GameHandler,
	messageHandler *handler.MessageHandler,
	sessionHandler *handler.SessionHandler,
) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Session resume
		sess := v1.Group("/session")
		sess.Use(middleware.RequireSession(sessions))
		{
			sess.GET("", sessionHandler.Get)
		}

		// Room routes without a session: create, join, spectate
		rooms := v1.Group("/rooms")
		rooms.Use(middleware.OptionalSession(sessions))
		rooms.Use(middleware.APIRateLimit(redisClient))
		{
			rooms.POST("", middleware.JoinRateLimit(redisClient), roomHandler.Create)
			rooms.POST("/:code/join", middleware.JoinRateLimit(redisClient), roomHandler.Join)
			rooms.GET("/:code", roomHandler.Get)
			rooms.GET("/:code/state", gameHandler.State)
			rooms.GET("/:code/messages", messageHandler.List)
			rooms.GET("/:code/typing", messageHandler.Typing)
		}

		// Room routes that act as a player
		player := v1.Group("/rooms")
		player.Use(middleware.RequireSession(sessions))
		player.Use(middleware.APIRateLimit(redisClient))
		{
			player.POST("/:code/leave", roomHandler.Leave)
			player.POST("/:code/start", gameHandler.Start)
			player.POST("/:code/choose", gameHandler.Choose)
			player.POST("/:code/question/change", gameHandler.ChangeQuestion)
			player.POST("/:code/complete", gameHandler.Complete)
			player.POST("/:code/end", gameHandler.End)
			player.POST("/:code/messages", middleware.MessageRateLimit(redisClient), messageHandler.Send)
			player.POST("/:code/typing", messageHandler.SetTyping)
		}
	}

	return router
}
