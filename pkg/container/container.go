package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"catalog-backend/internal/config"
	accountHandler "catalog-backend/internal/domains/account/handler"
	accountService "catalog-backend/internal/domains/account/service"
	bookHandler "catalog-backend/internal/domains/book/handler"
	bookService "catalog-backend/internal/domains/book/service"
	infraCache "catalog-backend/internal/infrastructure/cache"
	"catalog-backend/internal/infrastructure/database"
	"catalog-backend/internal/repomanager"
	"catalog-backend/internal/shared/apperr"
	"catalog-backend/pkg/cache"
	"catalog-backend/pkg/fieldcipher"
	"catalog-backend/pkg/jwt"
	"catalog-backend/pkg/store"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config     *config.Config
	DB         *database.PostgresDB    // nil khi STORE_DRIVER=memory
	Redis      *infraCache.RedisClient // nil khi Redis tắt hoặc không kết nối được
	Cache      cache.Cache             // nil cùng lúc với Redis
	JWTManager *jwt.Manager
	Cipher     *fieldcipher.Cipher
	Repos      *repomanager.Manager

	// ========================================
	// SERVICE LAYER
	// ========================================
	AccountService accountService.ServiceInterface
	BookService    bookService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================
	AccountHandler *accountHandler.Handler
	BookHandler    *bookHandler.Handler
}

// NewContainer tạo và initialize toàn bộ dependency graph.
// Thứ tự: Config -> Infrastructure -> Security -> Repositories -> Services -> Handlers
func NewContainer(cfg *config.Config) (*Container, error) {
	log.Info().Msg("Initializing DI container")

	c := &Container{Config: cfg}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// STEP 1: storage backend
	backend, err := c.initStore(ctx)
	if err != nil {
		c.Cleanup()
		return nil, err
	}
	c.Repos = repomanager.New(backend)

	// STEP 2: Redis (optional)
	c.initCache(ctx)

	// STEP 3: token + field cipher
	if err := c.initSecurity(); err != nil {
		c.Cleanup()
		return nil, err
	}

	// STEP 4: services + handlers
	c.initServices()
	c.initHandlers()

	log.Info().
		Str("store", cfg.Store.Driver).
		Bool("cache", c.Cache != nil).
		Msg("DI container initialized")
	return c, nil
}

func (c *Container) initStore(ctx context.Context) (store.Backend, error) {
	if c.Config.Store.Driver == config.StoreDriverMemory {
		log.Warn().Msg("Using in-memory store, data is lost on restart")
		return store.NewMemoryBackend(), nil
	}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	if dbConfig.AutoMigrate {
		if err := database.RunMigrations(ctx, dbConfig.DSN()); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	return store.NewPostgresBackend(db.Pool), nil
}

// initCache: Redis lỗi không chặn startup, book service chạy không cache
func (c *Container) initCache(ctx context.Context) {
	if !c.Config.Redis.Enabled {
		log.Info().Msg("Redis cache disabled")
		return
	}

	client := infraCache.NewRedisClient(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := client.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, continuing without book cache")
		_ = client.Close()
		return
	}
	c.Redis = client
	c.Cache = client
}

func (c *Container) initSecurity() error {
	tokens, err := jwt.NewManager(jwt.Config{
		Secret:           c.Config.JWT.Key,
		Issuer:           c.Config.JWT.Issuer,
		Audience:         c.Config.JWT.Audience,
		ValidateIssuer:   c.Config.JWT.ValidateIssuer,
		ValidateAudience: c.Config.JWT.ValidateAudience,
	})
	if err != nil {
		return apperr.Configuration(fmt.Errorf("jwt: %w", err))
	}
	c.JWTManager = tokens

	cipher, err := fieldcipher.New(c.Config.Security.EncryptionKey, c.Config.Security.EncryptionIV)
	if err != nil {
		return apperr.Configuration(fmt.Errorf("field cipher: %w", err))
	}
	c.Cipher = cipher
	return nil
}

func (c *Container) initServices() {
	c.AccountService = accountService.NewAccountService(
		func() accountService.UnitOfWork { return c.Repos.Begin() },
		c.JWTManager,
	)
	c.BookService = bookService.NewService(
		func() bookService.UnitOfWork { return c.Repos.Begin() },
		c.Cipher,
		c.Cache,
		c.Config.Redis.BookTTL,
	)
}

func (c *Container) initHandlers() {
	c.AccountHandler = accountHandler.NewHandler(c.AccountService)
	c.BookHandler = bookHandler.NewHandler(c.BookService)
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up resources")

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Redis")
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}
}
