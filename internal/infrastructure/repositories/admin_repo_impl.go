package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"osrs-bingo.backend/internal/domain/entities"
	domainerrors "osrs-bingo.backend/internal/domain/errors"
	"osrs-bingo.backend/internal/infrastructure/models"
)

type AdminRoleRepository struct {
	db *gorm.DB
}

func NewAdminRoleRepository(db *gorm.DB) *AdminRoleRepository {
	return &AdminRoleRepository{db: db}
}

func (r *AdminRoleRepository) Add(ctx context.Context, role *entities.AdminRole) error {
	m := &models.AdminRole{
		GuildID:  role.GuildID,
		RoleID:   role.RoleID,
		RoleName: role.RoleName,
		AddedBy:  role.AddedBy,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

func (r *AdminRoleRepository) Remove(ctx context.Context, guildID, roleID string) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Where("guild_id = ? AND role_id = ?", guildID, roleID).
		Delete(&models.AdminRole{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *AdminRoleRepository) List(ctx context.Context, guildID string) ([]*entities.AdminRole, error) {
	var ms []models.AdminRole
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("guild_id = ?", guildID).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.AdminRole, 0, len(ms))
	for i := range ms {
		m := ms[i]
		items = append(items, &entities.AdminRole{
			GuildID:   m.GuildID,
			RoleID:    m.RoleID,
			RoleName:  m.RoleName,
			AddedBy:   m.AddedBy,
			CreatedAt: m.CreatedAt,
		})
	}
	return items, nil
}

type GuildOwnerRepository struct {
	db *gorm.DB
}

func NewGuildOwnerRepository(db *gorm.DB) *GuildOwnerRepository {
	return &GuildOwnerRepository{db: db}
}

func (r *GuildOwnerRepository) Get(ctx context.Context, guildID string) (*entities.GuildOwner, error) {
	var m models.GuildOwner
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("guild_id = ?", guildID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.GuildOwner{
		GuildID:   m.GuildID,
		OwnerID:   m.OwnerID,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

func (r *GuildOwnerRepository) Upsert(ctx context.Context, guildID, ownerID string) error {
	m := &models.GuildOwner{
		GuildID:   guildID,
		OwnerID:   ownerID,
		UpdatedAt: time.Now(),
	}
	return GetDB(ctx, r.db).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "guild_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"owner_id", "updated_at"}),
		}).
		Create(m).Error
}
