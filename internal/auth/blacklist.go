package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistPrefix = "auth:revoked:"

// Blacklist tracks signed-out token IDs in Redis until their natural expiry.
type Blacklist struct {
	client *redis.Client
}

// NewBlacklist creates a token blacklist.
func NewBlacklist(client *redis.Client) *Blacklist {
	return &Blacklist{client: client}
}

// Revoke marks a token ID as signed out for the remaining token lifetime.
func (b *Blacklist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return b.client.Set(ctx, blacklistPrefix+tokenID, "1", ttl).Err()
}

// IsRevoked reports whether a token ID has been signed out.
func (b *Blacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
