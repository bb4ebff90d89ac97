package usecases

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"osrs-bingo.backend/internal/domain/entities"
	domainerrors "osrs-bingo.backend/internal/domain/errors"
	"osrs-bingo.backend/internal/domain/repositories"
	"osrs-bingo.backend/pkg/logger"
)

// GuildFetcher resolves a guild's owner from the host platform.
type GuildFetcher interface {
	FetchGuildOwner(ctx context.Context, guildID string) (string, error)
}

// OwnerCache is the freshness window over the guild_owners table. A miss
// means the row must be re-validated (or fetched upstream).
type OwnerCache interface {
	GetOwner(ctx context.Context, guildID string) (string, bool)
	SetOwner(ctx context.Context, guildID, ownerID string)
}

// AdminUsecase answers "may this user run admin commands" and manages
// the admin role registry.
type AdminUsecase struct {
	roleRepo  repositories.AdminRoleRepository
	ownerRepo repositories.GuildOwnerRepository
	fetcher   GuildFetcher
	cache     OwnerCache
}

func NewAdminUsecase(
	roleRepo repositories.AdminRoleRepository,
	ownerRepo repositories.GuildOwnerRepository,
	fetcher GuildFetcher,
	cache OwnerCache,
) *AdminUsecase {
	return &AdminUsecase{
		roleRepo:  roleRepo,
		ownerRepo: ownerRepo,
		fetcher:   fetcher,
		cache:     cache,
	}
}

// ResolveOwner returns the guild's owner, consulting cache, then the
// guild_owners table, then the platform, upserting on the way back.
func (u *AdminUsecase) ResolveOwner(ctx context.Context, guildID string) (string, error) {
	if u.cache != nil {
		if ownerID, ok := u.cache.GetOwner(ctx, guildID); ok {
			return ownerID, nil
		}
	}

	owner, err := u.ownerRepo.Get(ctx, guildID)
	if err == nil {
		if u.cache != nil {
			u.cache.SetOwner(ctx, guildID, owner.OwnerID)
		}
		return owner.OwnerID, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return "", err
	}

	ownerID, err := u.fetcher.FetchGuildOwner(ctx, guildID)
	if err != nil {
		return "", err
	}
	if err := u.ownerRepo.Upsert(ctx, guildID, ownerID); err != nil {
		return "", err
	}
	if u.cache != nil {
		u.cache.SetOwner(ctx, guildID, ownerID)
	}
	return ownerID, nil
}

// IsAdmin reports whether the user is the guild owner or holds one of
// the registered admin roles.
func (u *AdminUsecase) IsAdmin(ctx context.Context, guildID, userID string, memberRoles []string) (bool, error) {
	ownerID, err := u.ResolveOwner(ctx, guildID)
	if err != nil {
		// An unreachable platform should not lock admins with registered
		// roles out; fall through to the role check.
		logger.Warn(ctx, "guild owner resolution failed",
			zap.String("guild_id", guildID), zap.Error(err))
	} else if ownerID == userID {
		return true, nil
	}

	roles, err := u.roleRepo.List(ctx, guildID)
	if err != nil {
		return false, err
	}
	registered := make(map[string]bool, len(roles))
	for _, r := range roles {
		registered[r.RoleID] = true
	}
	for _, roleID := range memberRoles {
		if registered[roleID] {
			return true, nil
		}
	}
	return false, nil
}

// AddRole registers a guild role as admin-granting.
func (u *AdminUsecase) AddRole(ctx context.Context, guildID, adminID, roleID, roleName string) error {
	existing, err := u.roleRepo.List(ctx, guildID)
	if err != nil {
		return err
	}
	for _, r := range existing {
		if r.RoleID == roleID {
			return domainerrors.Conflict("**" + r.RoleName + "** is already an admin role.")
		}
	}
	return u.roleRepo.Add(ctx, &entities.AdminRole{
		GuildID:  guildID,
		RoleID:   roleID,
		RoleName: roleName,
		AddedBy:  adminID,
	})
}

// RemoveRole deregisters an admin role.
func (u *AdminUsecase) RemoveRole(ctx context.Context, guildID, roleID string) error {
	err := u.roleRepo.Remove(ctx, guildID, roleID)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.NotFound("That role is not registered as an admin role.")
	}
	return err
}

// ListRoles returns the guild's registered admin roles.
func (u *AdminUsecase) ListRoles(ctx context.Context, guildID string) ([]*entities.AdminRole, error) {
	return u.roleRepo.List(ctx, guildID)
}

// Setup refreshes the guild-owner row. Only the owner themselves may run
// it, which doubles as proof the fetched owner is current.
func (u *AdminUsecase) Setup(ctx context.Context, guildID, userID string) error {
	ownerID, err := u.fetcher.FetchGuildOwner(ctx, guildID)
	if err != nil {
		return err
	}
	if ownerID != userID {
		return domainerrors.Unauthorized("Only the server owner can run setup.")
	}
	if err := u.ownerRepo.Upsert(ctx, guildID, ownerID); err != nil {
		return err
	}
	if u.cache != nil {
		u.cache.SetOwner(ctx, guildID, ownerID)
	}
	return nil
}
