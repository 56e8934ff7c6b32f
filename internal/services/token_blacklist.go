// internal/services/token_blacklist.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/hyeonwoo-dev/furniture-shop/internal/config"
	"github.com/hyeonwoo-dev/furniture-shop/internal/utils"
)

// TokenBlacklist bans access tokens on logout so a signed token cannot
// be replayed for the rest of its lifetime. Entries live in Redis keyed
// by the token's sha-256 hash and expire together with the token.
type TokenBlacklist struct {
	rdb *redis.Client
}

func NewTokenBlacklist(cfg *config.Config) *TokenBlacklist {
	if cfg.Redis.Host == "" {
		// No Redis in local development; the blacklist degrades to a no-op.
		return &TokenBlacklist{}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	return &TokenBlacklist{rdb: rdb}
}

func (b *TokenBlacklist) Ban(ctx context.Context, token string, ttl time.Duration) error {
	if b.rdb == nil || ttl <= 0 {
		return nil
	}

	key := blacklistKey(token)
	if err := b.rdb.Set(ctx, key, "banned", ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

func (b *TokenBlacklist) IsBanned(ctx context.Context, token string) (bool, error) {
	if b.rdb == nil {
		return false, nil
	}

	_, err := b.rdb.Get(ctx, blacklistKey(token)).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return true, nil
}

func blacklistKey(token string) string {
	return "blacklist:" + utils.HashString(token)
}
