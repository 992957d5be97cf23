package repository

import (
	"context"
	"time"
)

// TokenRevocations is the denylist backing logout-before-expiry. Entries are
// keyed by token id (jti) and only need to outlive the token's natural expiry.
type TokenRevocations interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
