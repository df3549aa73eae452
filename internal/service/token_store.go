package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const RedisRevokedKeyPrefix = "revoked:"

// TokenStore is a deny-list of revoked token ids. A token is valid on its
// signature and expiry alone unless its id has been revoked here. Entries
// expire together with the token they revoke.
type TokenStore interface {
	// Revoke puts tokenID on the deny-list until expiresAt. It reports false
	// when the id was already revoked.
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) (bool, error)
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type redisTokenStore struct {
	redisClient *redis.Client
	log         *logrus.Logger
	now         func() time.Time
}

func NewTokenStore(redisClient *redis.Client, log *logrus.Logger) TokenStore {
	return &redisTokenStore{redisClient: redisClient, log: log, now: time.Now}
}

func revokedKey(tokenID string) string {
	return RedisRevokedKeyPrefix + tokenID
}

// revocationTTL is how long a deny-list entry must live. Zero means the token
// has already expired and needs no entry.
func revocationTTL(expiresAt, now time.Time) time.Duration {
	ttl := expiresAt.Sub(now)
	if ttl <= 0 {
		return 0
	}
	// Round up so the entry never disappears before the token does.
	return ttl.Truncate(time.Second) + time.Second
}

func (s *redisTokenStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) (bool, error) {
	ttl := revocationTTL(expiresAt, s.now())
	if ttl == 0 {
		return true, nil
	}

	ok, err := s.redisClient.SetNX(ctx, revokedKey(tokenID), "1", ttl).Result()
	if err != nil {
		s.log.Warnf("Failed to revoke token %s: %+v", tokenID, err)
		return false, fmt.Errorf("revoke token: %w", err)
	}
	return ok, nil
}

func (s *redisTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.redisClient.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return n > 0, nil
}
