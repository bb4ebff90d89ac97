package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"osrs-bingo.backend/internal/domain/entities"
	domainerrors "osrs-bingo.backend/internal/domain/errors"
	"osrs-bingo.backend/internal/infrastructure/models"
)

type TeamMemberRepository struct {
	db *gorm.DB
}

func NewTeamMemberRepository(db *gorm.DB) *TeamMemberRepository {
	return &TeamMemberRepository{db: db}
}

func (r *TeamMemberRepository) Add(ctx context.Context, member *entities.TeamMember) error {
	m := &models.TeamMember{
		ID:       member.ID,
		TeamID:   member.TeamID,
		UserID:   member.UserID,
		Timezone: member.Timezone,
		JoinedAt: member.JoinedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

func (r *TeamMemberRepository) Remove(ctx context.Context, teamID uuid.UUID, userID string) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&models.TeamMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *TeamMemberRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.TeamMember, error) {
	var ms []models.TeamMember
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("joined_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.TeamMember, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *TeamMemberRepository) Count(ctx context.Context, teamID uuid.UUID) (int, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.TeamMember{}).
		Where("team_id = ?", teamID).
		Count(&count).Error
	return int(count), err
}

func (r *TeamMemberRepository) EarliestJoined(ctx context.Context, teamID uuid.UUID) (*entities.TeamMember, error) {
	var m models.TeamMember
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("joined_at ASC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *TeamMemberRepository) DeleteByTeam(ctx context.Context, teamID uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).
		Where("team_id = ?", teamID).
		Delete(&models.TeamMember{}).Error
}

func (r *TeamMemberRepository) DeleteByGame(ctx context.Context, gameID uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).
		Where("team_id IN (?)", GetDB(ctx, r.db).
			Model(&models.Team{}).
			Select("id").
			Where("game_id = ?", gameID)).
		Delete(&models.TeamMember{}).Error
}

func (r *TeamMemberRepository) toEntity(m *models.TeamMember) *entities.TeamMember {
	return &entities.TeamMember{
		ID:       m.ID,
		TeamID:   m.TeamID,
		UserID:   m.UserID,
		Timezone: m.Timezone,
		JoinedAt: m.JoinedAt,
	}
}
