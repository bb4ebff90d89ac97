package repositories

import (
	"context"

	"osrs-bingo.backend/internal/domain/entities"
)

type AdminRoleRepository interface {
	Add(ctx context.Context, role *entities.AdminRole) error
	Remove(ctx context.Context, guildID, roleID string) error
	List(ctx context.Context, guildID string) ([]*entities.AdminRole, error)
}

type GuildOwnerRepository interface {
	Get(ctx context.Context, guildID string) (*entities.GuildOwner, error)
	// Upsert inserts the owner row or replaces a stale one.
	Upsert(ctx context.Context, guildID, ownerID string) error
}
