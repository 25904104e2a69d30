package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/connectk/backend/internal/config"
	"github.com/connectk/backend/internal/domain"
	redisrepo "github.com/connectk/backend/internal/repository/redis"
	"github.com/connectk/backend/internal/service/cleanup"
	"github.com/connectk/backend/internal/service/game"
	httptransport "github.com/connectk/backend/internal/transport/http"
	"github.com/connectk/backend/internal/transport/http/middleware"
	wstransport "github.com/connectk/backend/internal/transport/websocket"
)

func main() {
	log.Println("Starting connect-k backend server...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.LoadConfig()

	if err := redisrepo.Init(); err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer redisrepo.Close()

	var store game.CacheRepository
	if redisrepo.Enabled() {
		store = redisrepo.NewCache()
	}

	hub := wstransport.NewHub()

	engine := game.NewEngine(game.Config{
		Bounds: domain.Bounds{
			MinCol:    -cfg.BoardHalfWidth,
			MaxCol:    cfg.BoardHalfWidth,
			MaxHeight: cfg.BoardMaxHeight,
		},
		SearchDepth: cfg.BotSearchDepth,
		SessionTTL:  cfg.SessionTTL,
	}, store, hub)

	worker := cleanup.NewWorker(engine, cfg.CleanupInterval)
	worker.Start()

	identities := httptransport.NewIdentityStore(store, cfg.SessionTTL)
	gameHandler := httptransport.NewGameHandler(engine, identities)
	watchHandler := wstransport.NewHandler(hub, engine, identities)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/game", gameHandler.HandleGame)
	mux.HandleFunc("/api/game/move", gameHandler.HandleMove)
	mux.HandleFunc("/api/game/computer-move", gameHandler.HandleComputerMove)
	mux.HandleFunc("/api/game/watch", watchHandler.HandleWatch)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: middleware.EnableCORS(mux),
	}

	log.Printf("Server is listening on port %s\n", cfg.Port)

	go func() {
		err := httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Server is shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
