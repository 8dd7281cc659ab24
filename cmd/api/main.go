package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/AleksL04/SmartKitBud/internal/auth"
	"github.com/AleksL04/SmartKitBud/internal/db"
	"github.com/AleksL04/SmartKitBud/internal/extract"
	"github.com/AleksL04/SmartKitBud/internal/inventory"
	"github.com/AleksL04/SmartKitBud/internal/logger"
	"github.com/AleksL04/SmartKitBud/internal/middleware"
	"github.com/AleksL04/SmartKitBud/internal/pocketbase"
	"github.com/AleksL04/SmartKitBud/internal/recipes"
	"github.com/AleksL04/SmartKitBud/internal/session"
	"github.com/AleksL04/SmartKitBud/internal/storage"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	log := logger.New()

	required := []string{
		"SESSION_SECRET",
		"GEMINI_API_KEY",
		"GEMINI_MODEL",
		"SPOONACULAR_API_KEY",
	}

	backend := os.Getenv("STORE_BACKEND")
	if backend == "" {
		backend = "pocketbase"
	}
	switch backend {
	case "pocketbase":
		required = append(required, "POCKETBASE_URL")
	case "postgres":
		required = append(required, "DATABASE_URL")
	default:
		log.Fatal().Str("backend", backend).Msg("STORE_BACKEND must be pocketbase or postgres")
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatal().Str("var", k).Msg("missing env var")
		}
	}

	production := os.Getenv("APP_ENV") == "production"
	ctx := context.Background()

	// ───────────────────────── SESSION ─────────────────────────
	ttl := session.DefaultTTL
	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid SESSION_TTL")
		}
		ttl = parsed
	}

	codec, err := session.NewCodec(os.Getenv("SESSION_SECRET"), ttl, log)
	if err != nil {
		log.Fatal().Err(err).Msg("session codec init failed")
	}

	// ───────────────────────── STORE BACKEND ─────────────────────────
	var (
		gateway   auth.Gateway
		registrar *auth.Service
		itemRepo  inventory.Repository
	)

	switch backend {
	case "pocketbase":
		pb := pocketbase.New(os.Getenv("POCKETBASE_URL"))
		gateway = auth.NewPocketBaseGateway(pb)
		itemRepo = inventory.NewPocketBaseRepository(pb)
		log.Info().Str("url", os.Getenv("POCKETBASE_URL")).Msg("using PocketBase record store")

	case "postgres":
		pool, err := db.Connect(ctx, os.Getenv("DATABASE_URL"))
		if err != nil {
			log.Fatal().Err(err).Msg("postgres init failed")
		}
		defer pool.Close()

		localAuth := auth.NewService(auth.NewPostgresUserRepository(pool))
		gateway = localAuth
		registrar = localAuth
		itemRepo = inventory.NewPostgresRepository(pool)
		log.Info().Msg("✅ connected to Postgres")
	}

	// ───────────────────────── ORACLE ─────────────────────────
	extractor, err := extract.NewGeminiExtractor(
		ctx,
		os.Getenv("GEMINI_API_KEY"),
		os.Getenv("GEMINI_MODEL"),
		log,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("gemini init failed")
	}

	// ───────────────────────── ARCHIVE (OPTIONAL) ─────────────────────────
	var archive inventory.Archiver
	if os.Getenv("R2_ENDPOINT") != "" {
		r2, err := storage.NewR2Client(ctx, storage.R2Config{
			Endpoint:  os.Getenv("R2_ENDPOINT"),
			AccessKey: os.Getenv("R2_ACCESS_KEY"),
			SecretKey: os.Getenv("R2_SECRET_KEY"),
			Bucket:    os.Getenv("R2_BUCKET_NAME"),
			BaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
		})
		if err != nil {
			log.Fatal().Err(err).Msg("R2 init failed")
		}
		archive = r2
		log.Info().Msg("receipt archive enabled")
	}

	// ───────────────────────── SERVICES ─────────────────────────
	authHandler := auth.NewHandler(gateway, registrar, codec, production)

	inventoryService := inventory.NewService(itemRepo, log)
	inventoryHandler := inventory.NewHandler(inventoryService, extractor, archive, log)

	recipeService := recipes.NewService(recipes.NewClient(os.Getenv("SPOONACULAR_API_KEY")))
	recipeHandler := recipes.NewHandler(recipeService)

	// ───────────────────────── GIN ─────────────────────────
	if production {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── PUBLIC ROUTES ─────────────────────────
	r.POST("/login", authHandler.Login)
	r.POST("/register", authHandler.Register)
	r.GET("/logout", authHandler.Logout)
	r.POST("/logout", authHandler.Logout)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── PROTECTED ROUTES ─────────────────────────
	protected := r.Group("/")
	protected.Use(middleware.SessionMiddleware(codec))
	{
		protected.POST("/upload", inventoryHandler.Upload)
		protected.POST("/commit", inventoryHandler.Commit)
		protected.GET("/items", inventoryHandler.ListItems)
		protected.DELETE("/items/:id", inventoryHandler.DeleteItem)
		protected.POST("/recipes", recipeHandler.Suggest)
	}

	// ───────────────────────── START ─────────────────────────
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info().Str("port", port).Msg("🚀 API running")
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	}
}
