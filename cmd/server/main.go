package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"osrs-bingo.backend/internal/config"
	"osrs-bingo.backend/internal/infrastructure/discord"
	"osrs-bingo.backend/internal/infrastructure/repositories"
	discordwire "osrs-bingo.backend/internal/interfaces/discord"
	"osrs-bingo.backend/internal/interfaces/http/handlers"
	"osrs-bingo.backend/internal/interfaces/http/middleware"
	"osrs-bingo.backend/internal/usecases"
	"osrs-bingo.backend/pkg/logger"
	"osrs-bingo.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer  = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB   = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
	newSession = discordgo.New
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Discord signs every interaction; without the key nothing can be served.
	publicKey, err := discordwire.ParsePublicKey(cfg.Discord.PublicKey)
	if err != nil {
		return fmt.Errorf("failed to parse DISCORD_PUBLIC_KEY: %w", err)
	}

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (commands will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Discord REST client and proof image host
	session, err := newSession("Bot " + cfg.Discord.BotToken)
	if err != nil {
		return fmt.Errorf("failed to create discord session: %w", err)
	}
	botClient := discord.NewClient(session)
	imageHost := discord.NewImageHost(cfg.Cloudflare.BaseURL, cfg.Cloudflare.AccountID, cfg.Cloudflare.APIToken)
	ownerCache := redis.NewOwnerCache(cfg.Cache.OwnerTTL)

	// Initialize repositories
	gameRepo := repositories.NewGameRepository(db)
	teamRepo := repositories.NewTeamRepository(db)
	memberRepo := repositories.NewTeamMemberRepository(db)
	freeAgentRepo := repositories.NewFreeAgentRepository(db)
	participantRepo := repositories.NewParticipantRepository(db)
	squareRepo := repositories.NewSquareRepository(db)
	completionRepo := repositories.NewCompletionRepository(db)
	adminRoleRepo := repositories.NewAdminRoleRepository(db)
	guildOwnerRepo := repositories.NewGuildOwnerRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize usecases
	membershipUsecase := usecases.NewMembershipUsecase(gameRepo, teamRepo, memberRepo, freeAgentRepo, participantRepo, squareRepo, completionRepo, uow)
	gameUsecase := usecases.NewGameUsecase(gameRepo, teamRepo, memberRepo, participantRepo, squareRepo, completionRepo, botClient, uow)
	proofUsecase := usecases.NewProofUsecase(gameRepo, teamRepo, participantRepo, squareRepo, completionRepo, botClient, imageHost, uow)
	adminUsecase := usecases.NewAdminUsecase(adminRoleRepo, guildOwnerRepo, botClient, ownerCache)
	autocompleteUsecase := usecases.NewAutocompleteUsecase(gameRepo, teamRepo, participantRepo, squareRepo, completionRepo)

	// Initialize handlers
	interactionHandler := handlers.NewInteractionHandler(membershipUsecase, gameUsecase, proofUsecase, adminUsecase, autocompleteUsecase, cfg.Discord.AppID)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	registerRoutes(r, routeDeps{
		interactionHandler:  interactionHandler,
		signatureMiddleware: middleware.SignatureMiddleware(publicKey),
	})

	// Print all registered routes for debugging
	log.Println("📋 Registered Routes:")
	for _, route := range r.Routes() {
		log.Printf("   %s %s", route.Method, route.Path)
	}

	// Start server
	log.Printf("🚀 Bingo Backend starting on port %s", cfg.Server.Port)
	log.Printf("🎯 Interactions: http://localhost:%s/interactions", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
