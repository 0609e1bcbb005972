package container

import (
	"fmt"

	"github.com/belovedly/backend/internal/config"
	"github.com/belovedly/backend/internal/delivery/http"
	"github.com/belovedly/backend/internal/delivery/http/handler"
	"github.com/belovedly/backend/internal/delivery/http/middleware"
	"github.com/belovedly/backend/internal/infrastructure/database"
	"github.com/belovedly/backend/internal/infrastructure/server"
	"github.com/belovedly/backend/internal/repository/postgres"
	"github.com/belovedly/backend/internal/storage"
	"github.com/belovedly/backend/internal/usecase/comments"
	"github.com/belovedly/backend/internal/usecase/matching"
	"github.com/belovedly/backend/internal/usecase/profile"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize storage collaborators
	kv := storage.NewRedisKV(redisClient)
	backups, err := storage.NewBackupStore(cfg.Comments.BackupDir, cfg.Comments.BackupKeep)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize backup store: %w", err)
	}

	// Initialize repositories
	profileRepo := postgres.NewProfileRepository(db)
	interactionRepo := postgres.NewInteractionRepository(db)
	matchRepo := postgres.NewMatchRepository(db)

	// Initialize use cases
	profileUseCase := profile.NewProfileUseCase(profileRepo)

	matchingUseCase := matching.NewMatchingUseCase(
		profileRepo,
		interactionRepo,
		matchRepo,
		cfg.Matching.MaxDistanceMiles,
		cfg.Matching.PageSize,
	)

	commentsUseCase := comments.NewCommentsUseCase(
		kv,
		backups,
		cfg.Comments.EditWindow,
		cfg.Comments.MaxViewDepth,
	)

	// Initialize handlers
	profileHandler := handler.NewProfileHandler(profileUseCase)
	matchingHandler := handler.NewMatchingHandler(matchingUseCase)
	commentHandler := handler.NewCommentHandler(commentsUseCase, profileUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.AccessSecret)

	// Initialize router
	router := http.NewRouter(
		profileHandler,
		matchingHandler,
		commentHandler,
		authMiddleware,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter)

	return &Container{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	// Close Redis
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			fmt.Printf("Error closing Redis: %v\n", err)
		}
	}

	// Close database
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
