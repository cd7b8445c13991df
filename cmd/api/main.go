package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/johnquangdev/meeting-facilitator/pkg/validator"

	"github.com/johnquangdev/meeting-facilitator/internal/adapter/handler"
	"github.com/johnquangdev/meeting-facilitator/internal/usecase/extract"
	"github.com/johnquangdev/meeting-facilitator/internal/usecase/meeting"
	pkgai "github.com/johnquangdev/meeting-facilitator/pkg/ai"
	"github.com/johnquangdev/meeting-facilitator/pkg/config"
	"github.com/johnquangdev/meeting-facilitator/pkg/speech"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize extraction engine
	log.Println("🤖 Initializing extraction engine...")
	rules := extract.RulesFromConfig(&cfg.Engine)
	ollamaClient := pkgai.NewOllamaClient(&cfg.Ollama)
	primary := extract.NewPrimaryExtractor(ollamaClient, rules, cfg.Ollama.RetryMaxElapsed, logger)
	patterns := extract.NewPatternExtractor(rules, logger)
	reconciler := extract.NewReconciler(primary, patterns, logger)
	log.Printf("✅ Primary extractor using %s at %s", cfg.Ollama.Model, cfg.Ollama.BaseURL)

	// Initialize facilitator
	log.Println("🤝 Initializing facilitator...")
	speakers := meeting.NewSpeakerIdentifier(cfg.Engine.KnownSpeakers)
	facilitator := meeting.NewFacilitator(reconciler, speakers, logger)

	// Initialize speech-to-text (optional)
	var transcriber speech.Transcriber
	if aaiTranscriber := speech.NewAssemblyAITranscriber(&cfg.Speech, logger); aaiTranscriber != nil {
		log.Println("🎤 Speech-to-text enabled (AssemblyAI)")
		transcriber = aaiTranscriber
		defer aaiTranscriber.Close()
	} else {
		log.Println("⚠️  No ASSEMBLYAI_API_KEY set, audio fragments disabled")
	}

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	analyzeHandler := handler.NewAnalyze(facilitator, logger)
	liveHandler := handler.NewLiveSession(facilitator, transcriber, cfg.Server.AllowedOrigins, logger)

	router := handler.NewRouter(cfg, analyzeHandler, liveHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped")
}
