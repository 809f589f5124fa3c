package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"estatechat/internal/config"
	"estatechat/internal/handler"
	"estatechat/internal/memory"
	"estatechat/internal/repository"
	"estatechat/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Print version info
	log.Printf("EstateChat Assistant")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database connection
	repo, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
		cfg.Search.StructuredLimit,
	)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	log.Println("✅ Connected to PostgreSQL database")

	vectors := repository.NewVectorRepository(repo)

	// Initialize embedding client
	var embedder service.Embedder
	if cfg.OpenAI.Enabled {
		embedder = service.NewEmbeddingClient(&cfg.OpenAI)
		log.Printf("✅ Embedding client initialized")
		log.Printf("   - API Base: %s", cfg.OpenAI.APIBase)
		log.Printf("   - Embedding model: %s", cfg.OpenAI.EmbeddingModel)
	} else {
		embedder = service.NoopEmbedder{}
		log.Println("⚠️  Embedding API is disabled - semantic search will return no results")
		log.Println("   Set OPENAI_API_KEY environment variable to enable semantic search")
	}

	// Initialize session memory
	sessionMemory := memory.NewManager(memory.NewFileStore(cfg.Memory.Dir))

	// Initialize services
	router := service.NewRouter()
	planner := service.NewPlanner(router)
	retriever := service.NewRetrievalAgent(embedder, vectors)
	estimator := service.NewRenovationEstimator()
	researcher := service.NewResearchAgent()
	reporter := service.NewReportWriter(cfg.Reports.Dir)
	orchestrator := service.NewOrchestrator(
		router, planner, repo, retriever, estimator, researcher, reporter, sessionMemory,
	)

	log.Println("✅ Services initialized")

	// Initialize handlers
	chatHandler := handler.NewChatHandler(orchestrator)
	searchHandler := handler.NewSearchHandler(retriever, repo, cfg.Search.DefaultLimit, cfg.Search.MaxLimit)
	sessionHandler := handler.NewSessionHandler(sessionMemory)
	embeddingHandler := handler.NewEmbeddingHandler(vectors, cfg.OpenAI.EmbeddingDimensions)

	// Setup Gin router
	engine := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	engine.Use(cors.New(corsConfig))

	// Health check endpoint
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "estatechat",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	engine.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := engine.Group("/api/v1")
	{
		// Conversational endpoint
		apiV1.POST("/chat", chatHandler.Chat)

		// Search endpoints
		apiV1.POST("/search", searchHandler.Search)
		apiV1.GET("/properties/:id", searchHandler.GetProperty)
		apiV1.GET("/properties/:id/similar", searchHandler.Similar)
		apiV1.GET("/statistics", searchHandler.Statistics)

		// Session memory endpoints
		apiV1.GET("/sessions/:id/memory", sessionHandler.GetMemory)
		apiV1.DELETE("/sessions/:id/memory", sessionHandler.ClearMemory)
		apiV1.GET("/sessions/:id/saved", sessionHandler.ListSaved)

		// Embedding endpoints
		apiV1.POST("/embeddings/batch", embeddingHandler.BatchUpdate)
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("🚀 Starting server on %s", addr)
	log.Printf("📝 API Documentation: http://localhost:%d/api/v1", cfg.Server.Port)

	// Graceful shutdown
	go func() {
		if err := engine.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	log.Println("✅ Server stopped")
}
