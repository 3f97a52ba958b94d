package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/newsroom-backend/internal/platform/logger"
)

type Options struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// RevocationStore records revoked token ids as keys that expire together
// with the token.
type RevocationStore struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
	now    func() time.Time
}

func NewRevocationStore(log *logger.Logger, opts Options) (*RevocationStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(opts.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	prefix := opts.KeyPrefix
	if prefix == "" {
		prefix = "newsroom:revoked:"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RevocationStore{
		log:    log.With("service", "RedisRevocationStore"),
		rdb:    rdb,
		prefix: prefix,
		now:    time.Now,
	}, nil
}

func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if s == nil || s.rdb == nil {
		return fmt.Errorf("redis revocation store not initialized")
	}
	if tokenID == "" {
		return nil
	}
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.rdb.SetNX(ctx, s.prefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis setnx: %w", err)
	}
	return nil
}

func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if s == nil || s.rdb == nil {
		return false, fmt.Errorf("redis revocation store not initialized")
	}
	if tokenID == "" {
		return false, nil
	}
	n, err := s.rdb.Exists(ctx, s.prefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

// Ping reports connectivity for the health check.
func (s *RevocationStore) Ping(ctx context.Context) error {
	if s == nil || s.rdb == nil {
		return fmt.Errorf("redis revocation store not initialized")
	}
	return s.rdb.Ping(ctx).Err()
}

func (s *RevocationStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}
