package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HuiyanRoy/GomokuMaster/internal/config"
	"github.com/HuiyanRoy/GomokuMaster/internal/repository/postgres"
	"github.com/HuiyanRoy/GomokuMaster/internal/repository/redis"
	"github.com/HuiyanRoy/GomokuMaster/internal/service/bot"
	"github.com/HuiyanRoy/GomokuMaster/internal/service/cleanup"
	"github.com/HuiyanRoy/GomokuMaster/internal/service/game"
	"github.com/HuiyanRoy/GomokuMaster/internal/service/session"
	"github.com/HuiyanRoy/GomokuMaster/internal/service/stats"
	transportHttp "github.com/HuiyanRoy/GomokuMaster/internal/transport/http"
	"github.com/HuiyanRoy/GomokuMaster/internal/transport/http/middleware"
	"github.com/HuiyanRoy/GomokuMaster/internal/transport/websocket"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}

	cfg := config.LoadConfig()

	// 1. Database
	db, err := postgres.Open(cfg.DBDriver, cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeMin)
	if err != nil {
		log.Fatalf("Database unreachable: %v", err)
	}
	defer db.Close()

	log.Println("Running database migrations...")
	if err := postgres.RunMigrations(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Database migration completed successfully")

	// 2. Repositories
	gameRepo := postgres.NewGameRepo(db)
	userRepo := postgres.NewUserRepo(db)
	sessionRepo := postgres.NewSessionRepo(db)

	// 3. Redis (optional)
	if err := redis.InitRedis(cfg.RedisURL, cfg.RedisPassword); err != nil {
		log.Printf("Failed to initialize Redis: %v", err)
	}
	defer redis.CloseRedis()

	var cache session.CacheRepository
	if redis.IsRedisEnabled() && redis.RedisClient != nil {
		cache = redis.NewRedisCache(redis.RedisClient)
	}

	// 4. Services
	defaultDifficulty, ok := bot.ParseDifficulty(cfg.DefaultDifficulty)
	if !ok {
		log.Printf("Unknown DEFAULT_DIFFICULTY %q, using %s", cfg.DefaultDifficulty, defaultDifficulty)
	}

	statsService := stats.NewService(gameRepo, cache, cfg.StatsCacheTTL)
	authService := session.NewAuthService(userRepo, sessionRepo, cache)
	connManager := websocket.NewConnectionManager()
	sessionManager := game.NewSessionManager(gameRepo, statsService, connManager, game.Options{
		ThinkDelay:        cfg.BotThinkDelay,
		DefaultDifficulty: defaultDifficulty,
		IdleTimeout:       cfg.SessionIdleTimeout,
	})
	gameService := game.NewService(gameRepo)

	// 5. Background workers
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cleanupWorker := cleanup.NewWorker(sessionManager, sessionRepo, cfg.CleanupInterval)
	go cleanupWorker.Start(ctx)

	// 6. Handlers
	authHandler := transportHttp.NewAuthHandler(authService, statsService, connManager)
	historyHandler := transportHttp.NewHistoryHandler(gameService)
	gameHandler := transportHttp.NewGameHandler(sessionManager, statsService)
	wsHandler := websocket.NewHandler(connManager, sessionManager, authService)

	// 7. Router
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	authMW := middleware.AuthMiddleware(authService)

	router.GET("/healthz", transportHttp.Health)
	router.GET("/api/difficulties", gameHandler.Difficulties)
	router.POST("/api/auth/register", authHandler.Register)
	router.POST("/api/auth/login", authHandler.Login)

	protected := router.Group("/api")
	protected.Use(authMW)
	{
		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/auth/me", authHandler.Me)
		protected.GET("/stats", gameHandler.GetStats)
		protected.GET("/game", gameHandler.CurrentGame)
		protected.GET("/history", historyHandler.GetHistory)
		protected.GET("/history/:id", historyHandler.GetGameDetails)
	}

	// WebSocket Route (auth handled inside the WS handler itself)
	router.GET("/ws", wsHandler.HandleWebSocket)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
