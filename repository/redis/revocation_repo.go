package redis

import (
	"context"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/taskdeck/backend/repository"
)

type revocationRepository struct {
	client *redislib.Client
	prefix string
}

// NewRevocationRepository creates the Redis-backed token denylist used by
// logout. Keys expire together with the token they revoke, so the list never
// grows past the set of live-but-logged-out tokens.
func NewRevocationRepository(client *redislib.Client) repository.TokenRevocations {
	return &revocationRepository{
		client: client,
		prefix: "revoked:",
	}
}

func (r *revocationRepository) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// already past natural expiry, nothing to deny
		return nil
	}
	return r.client.Set(ctx, r.prefix+tokenID, "1", ttl).Err()
}

func (r *revocationRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	n, err := r.client.Exists(ctx, r.prefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
