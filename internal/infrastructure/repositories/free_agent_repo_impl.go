package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"osrs-bingo.backend/internal/domain/entities"
	"osrs-bingo.backend/internal/infrastructure/models"
)

type FreeAgentRepository struct {
	db *gorm.DB
}

func NewFreeAgentRepository(db *gorm.DB) *FreeAgentRepository {
	return &FreeAgentRepository{db: db}
}

func (r *FreeAgentRepository) Add(ctx context.Context, agent *entities.FreeAgent) error {
	m := &models.FreeAgent{
		ID:       agent.ID,
		GuildID:  agent.GuildID,
		GameID:   agent.GameID,
		UserID:   agent.UserID,
		Username: agent.Username,
		Timezone: agent.Timezone,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

func (r *FreeAgentRepository) Exists(ctx context.Context, guildID string, gameID uuid.UUID, userID string) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.FreeAgent{}).
		Where("guild_id = ? AND game_id = ? AND user_id = ?", guildID, gameID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *FreeAgentRepository) Remove(ctx context.Context, guildID string, gameID uuid.UUID, userID string) error {
	return GetDB(ctx, r.db).WithContext(ctx).
		Where("guild_id = ? AND game_id = ? AND user_id = ?", guildID, gameID, userID).
		Delete(&models.FreeAgent{}).Error
}

func (r *FreeAgentRepository) ListByGuild(ctx context.Context, guildID string) ([]*entities.FreeAgent, error) {
	var ms []models.FreeAgent
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("guild_id = ?", guildID).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.FreeAgent, 0, len(ms))
	for i := range ms {
		m := ms[i]
		items = append(items, &entities.FreeAgent{
			ID:        m.ID,
			GuildID:   m.GuildID,
			GameID:    m.GameID,
			UserID:    m.UserID,
			Username:  m.Username,
			Timezone:  m.Timezone,
			CreatedAt: m.CreatedAt,
		})
	}
	return items, nil
}
