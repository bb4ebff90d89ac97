package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"osrs-bingo.backend/internal/infrastructure/models"
)

type ParticipantRepository struct {
	db *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

func (r *ParticipantRepository) Add(ctx context.Context, gameID, teamID uuid.UUID) error {
	m := &models.GameParticipant{
		GameID:   gameID,
		TeamID:   teamID,
		JoinedAt: time.Now(),
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

func (r *ParticipantRepository) Exists(ctx context.Context, gameID, teamID uuid.UUID) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.GameParticipant{}).
		Where("game_id = ? AND team_id = ?", gameID, teamID).
		Count(&count).Error
	return count > 0, err
}

func (r *ParticipantRepository) CountByGame(ctx context.Context, gameID uuid.UUID) (int, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.GameParticipant{}).
		Where("game_id = ?", gameID).
		Count(&count).Error
	return int(count), err
}

func (r *ParticipantRepository) TeamIDsByGame(ctx context.Context, gameID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.GameParticipant{}).
		Where("game_id = ?", gameID).
		Order("joined_at ASC").
		Pluck("team_id", &ids).Error
	return ids, err
}

func (r *ParticipantRepository) DeleteByGame(ctx context.Context, gameID uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).
		Where("game_id = ?", gameID).
		Delete(&models.GameParticipant{}).Error
}

func (r *ParticipantRepository) DeleteByTeam(ctx context.Context, teamID uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).
		Where("team_id = ?", teamID).
		Delete(&models.GameParticipant{}).Error
}
