package redis

import (
	"context"
	"time"

	"go.uber.org/zap"
	"osrs-bingo.backend/pkg/logger"
)

// OwnerCache is the redis-backed freshness window over guild ownership.
// Cache faults degrade to a miss; the table and the platform remain the
// sources of truth.
type OwnerCache struct {
	ttl time.Duration
}

var (
	setOwnerValue = Set
	getOwnerValue = Get
)

// NewOwnerCache creates an owner cache with the given freshness TTL.
func NewOwnerCache(ttl time.Duration) *OwnerCache {
	return &OwnerCache{ttl: ttl}
}

func ownerKey(guildID string) string {
	return "guild_owner:" + guildID
}

// GetOwner returns the cached owner id for a guild, if still fresh.
func (c *OwnerCache) GetOwner(ctx context.Context, guildID string) (string, bool) {
	ownerID, err := getOwnerValue(ctx, ownerKey(guildID))
	if err != nil || ownerID == "" {
		return "", false
	}
	return ownerID, true
}

// SetOwner caches the owner id for the configured freshness window.
func (c *OwnerCache) SetOwner(ctx context.Context, guildID, ownerID string) {
	if err := setOwnerValue(ctx, ownerKey(guildID), ownerID, c.ttl); err != nil {
		logger.Warn(ctx, "owner cache write failed",
			zap.String("guild_id", guildID), zap.Error(err))
	}
}
