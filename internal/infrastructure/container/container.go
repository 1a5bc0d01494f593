package container

import (
	"context"
	"fmt"
	"net/url"

	"github.com/gdugdh24/cofounders-backend/internal/config"
	deliveryhttp "github.com/gdugdh24/cofounders-backend/internal/delivery/http"
	"github.com/gdugdh24/cofounders-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/cofounders-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/cofounders-backend/internal/infrastructure/database"
	"github.com/gdugdh24/cofounders-backend/internal/infrastructure/gemini"
	"github.com/gdugdh24/cofounders-backend/internal/infrastructure/linkedin"
	"github.com/gdugdh24/cofounders-backend/internal/infrastructure/server"
	"github.com/gdugdh24/cofounders-backend/internal/infrastructure/storage"
	"github.com/gdugdh24/cofounders-backend/internal/logging"
	"github.com/gdugdh24/cofounders-backend/internal/repository/postgres"
	"github.com/gdugdh24/cofounders-backend/internal/repository/redisstore"
	"github.com/gdugdh24/cofounders-backend/internal/usecase/auth"
	"github.com/gdugdh24/cofounders-backend/internal/usecase/gate"
	"github.com/gdugdh24/cofounders-backend/internal/usecase/onboarding"
	"github.com/gdugdh24/cofounders-backend/internal/usecase/profile"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
	Gemini *gemini.GeminiClient
	Logger logging.Logger
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Container, error) {
	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := database.RunMigrations(ctx, db.DB); err != nil {
		db.Close()
		return nil, err
	}

	// Initialize Redis
	redisClient, err := database.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	c := &Container{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Logger: logger,
	}

	// Initialize repositories
	profileRepo := postgres.NewProfileRepository(db)
	sessionRepo := redisstore.NewSessionStore(redisClient)
	stateRepo := redisstore.NewOAuthStateStore(redisClient)
	draftRepo := redisstore.NewDraftStore(redisClient)
	submitLock := redisstore.NewSubmitLock(redisClient)

	// Optional collaborators
	var opts []onboarding.Option

	objectStorage, err := storage.NewStorage(ctx, cfg.Storage)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	if objectStorage != nil {
		opts = append(opts, onboarding.WithAvatarMirror(storage.NewAvatarMirror(objectStorage, cfg.Storage.PublicBaseURL, cfg.Storage.AvatarHosts)))
	}

	if cfg.GeminiAPIKey != "" {
		geminiClient, err := gemini.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			// Don't fail, just continue without AI features
			logger.Warn(ctx, "failed to initialize gemini client", "error", err)
		} else {
			c.Gemini = geminiClient
			opts = append(opts, onboarding.WithBioGenerator(geminiClient))
		}
	}

	// Initialize use cases
	authUseCase := auth.NewAuthUseCase(
		linkedin.NewClient(cfg.LinkedIn),
		sessionRepo,
		stateRepo,
		cfg.JWT,
		logger.With("component", "auth"),
	)

	profileUseCase := profile.NewProfileUseCase(
		profileRepo,
		logger.With("component", "profile"),
	)

	onboardingUseCase := onboarding.NewOnboardingUseCase(
		profileRepo,
		draftRepo,
		submitLock,
		logger.With("component", "onboarding"),
		opts...,
	)

	gateUseCase := gate.NewGateUseCase(cfg.App.BypassPrefixes, gate.DefaultPublicPaths, gate.Paths{
		SignIn:     cfg.App.LoginPath,
		Onboarding: profile.OnboardingPath,
		Dashboard:  profile.DashboardPath,
	})

	// Initialize handlers
	cookie := middleware.SessionCookie{Secure: cfg.App.SecureCookies}
	authHandler := handler.NewAuthHandler(authUseCase, profileUseCase, cookie, logger)
	onboardingHandler := handler.NewOnboardingHandler(onboardingUseCase)
	profileHandler := handler.NewProfileHandler(profileUseCase)
	pageHandler := handler.NewPageHandler(cfg.App.WebRoot)

	// Initialize middleware
	sessionMiddleware := middleware.NewSessionMiddleware(authUseCase, cookie, logger)

	// Initialize router
	router := deliveryhttp.NewRouter(
		authHandler,
		onboardingHandler,
		profileHandler,
		pageHandler,
		sessionMiddleware,
		gateUseCase,
		profileUseCase,
		logger.With("component", "http"),
		cfg.App.LoginPath,
		staticMounts(cfg.Storage)...,
	)

	// Initialize server
	c.Server = server.NewServer(&cfg.Server, router.Setup(), logger)

	return c, nil
}

// staticMounts serves locally stored uploads under the path of their public
// base URL.
func staticMounts(cfg config.StorageConfig) []deliveryhttp.StaticMount {
	if storage.StorageType(cfg.Type) != storage.StorageTypeLocal || cfg.PublicBaseURL == "" {
		return nil
	}
	u, err := url.Parse(cfg.PublicBaseURL)
	if err != nil || u.Path == "" || u.Path == "/" {
		return nil
	}
	return []deliveryhttp.StaticMount{{Prefix: u.Path, Dir: cfg.Path}}
}

// Close closes all connections
func (c *Container) Close() error {
	ctx := context.Background()

	if c.Gemini != nil {
		if err := c.Gemini.Close(); err != nil {
			c.Logger.Warn(ctx, "error closing gemini client", "error", err)
		}
	}

	// Close Redis
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn(ctx, "error closing redis", "error", err)
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
