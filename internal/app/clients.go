package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/newsroom-backend/internal/clients/redis"
	"github.com/yungbote/newsroom-backend/internal/platform/logger"
	"github.com/yungbote/newsroom-backend/internal/services"
)

type Clients struct {
	Redis   *redis.RevocationStore
	Revoker services.TokenRevoker
}

// wireClients picks the token revocation backend. Redis is used when
// REDIS_ADDR is set; otherwise revocations live in process memory.
func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	if strings.TrimSpace(cfg.RedisAddr) == "" {
		log.Warn("REDIS_ADDR not set; token revocations are kept in memory")
		return Clients{Revoker: services.NewMemoryRevoker()}, nil
	}
	store, err := redis.NewRevocationStore(log, redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return Clients{}, fmt.Errorf("init redis revocation store: %w", err)
	}
	return Clients{Redis: store, Revoker: store}, nil
}

func (c *Clients) healthChecks() []healthCheck {
	if c == nil || c.Redis == nil {
		return nil
	}
	return []healthCheck{{name: "redis", ping: func(ctx context.Context) error { return c.Redis.Ping(ctx) }}}
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
