// Package container builds the process-wide dependency graph once at startup.
// Every component receives its handles from here by reference; Close tears
// the graph down on shutdown.
package container

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/relief-directory/config"
	"github.com/oksasatya/relief-directory/internal/application"
	repo "github.com/oksasatya/relief-directory/internal/domain/repository"
	"github.com/oksasatya/relief-directory/internal/infrastructure/cache"
	"github.com/oksasatya/relief-directory/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/relief-directory/internal/infrastructure/postgres"
	"github.com/oksasatya/relief-directory/pkg/helpers"
)

type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	PGPool *pgxpool.Pool // nil with the memory driver
	Redis  *redis.Client // nil when REDIS_ADDR is empty or unreachable
	JWT    *helpers.JWTManager

	Users     repo.UserRepository
	Resources repo.ResourceRepository
	Audit     repo.AuditRepository

	AuthService     *application.AuthService
	ResourceService *application.ResourceService
}

// New connects the configured store and cache and wires the services.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	switch cfg.StoreDriver {
	case "memory":
		store := memory.NewStore()
		c.Users, c.Resources, c.Audit = store.Users, store.Resources, store.Audit
		logger.Warn("using in-memory store; data is lost on restart")
	case "postgres":
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			return nil, err
		}
		c.PGPool = pool
		if cfg.MigrateOnStart {
			if err := pginfra.RunMigrations(cfg.PostgresDSN(), logger); err != nil {
				pool.Close()
				return nil, err
			}
		}
		c.Users = pginfra.NewUserRepository(pool)
		c.Resources = pginfra.NewResourceRepository(pool)
		c.Audit = pginfra.NewAuditRepository(pool)
	default:
		return nil, errors.New("unknown store driver: " + cfg.StoreDriver)
	}

	var listCache application.ListCache
	if cfg.RedisAddr != "" {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := rdb.Ping(pctx).Err()
		cancel()
		if err != nil {
			helpers.LogError(logger, "redis unreachable, list cache disabled", err, logrus.Fields{"addr": cfg.RedisAddr})
			_ = rdb.Close()
		} else {
			c.Redis = rdb
			listCache = cache.NewResourceListCache(rdb, cfg.ListCacheTTL)
		}
	}

	if cfg.BcryptCost < 10 {
		logger.WithField("cost", cfg.BcryptCost).Warn("BCRYPT_COST below 10 weakens password storage")
	}

	c.JWT = helpers.NewJWTManager(cfg.JWTSecret)
	auth, err := application.NewAuthService(c.Users, c.JWT, c.Audit, logger, cfg.BcryptCost)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.AuthService = auth
	c.ResourceService = application.NewResourceService(c.Resources, c.Users, c.Audit, listCache, logger)
	return c, nil
}

// Ping reports whether the backing store is reachable
func (c *Container) Ping(ctx context.Context) error {
	if c.PGPool == nil {
		return nil
	}
	return c.PGPool.Ping(ctx)
}

// Close releases the pool and redis client. Safe to call more than once.
func (c *Container) Close() {
	if c.Redis != nil {
		_ = c.Redis.Close()
		c.Redis = nil
	}
	if c.PGPool != nil {
		c.PGPool.Close()
		c.PGPool = nil
	}
}
