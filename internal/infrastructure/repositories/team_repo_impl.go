package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"osrs-bingo.backend/internal/domain/entities"
	domainerrors "osrs-bingo.backend/internal/domain/errors"
	domainRepos "osrs-bingo.backend/internal/domain/repositories"
	"osrs-bingo.backend/internal/infrastructure/models"
)

type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, team *entities.Team) error {
	m := r.toModel(team)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	team.CreatedAt = m.CreatedAt
	team.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *TeamRepository) GetByName(ctx context.Context, guildID string, gameID uuid.UUID, name string) (*entities.Team, error) {
	var m models.Team
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("guild_id = ? AND game_id = ? AND team_name = ?", guildID, gameID, name).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *TeamRepository) GetByUser(ctx context.Context, guildID string, gameID uuid.UUID, userID string) (*entities.Team, error) {
	var m models.Team
	err := GetDB(ctx, r.db).WithContext(ctx).
		Joins("LEFT JOIN team_members tm ON tm.team_id = teams.id AND tm.user_id = ?", userID).
		Where("teams.guild_id = ? AND teams.game_id = ? AND (teams.captain_id = ? OR tm.user_id IS NOT NULL)",
			guildID, gameID, userID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *TeamRepository) GetByCaptain(ctx context.Context, guildID string, gameID uuid.UUID, captainID string) (*entities.Team, error) {
	var m models.Team
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("guild_id = ? AND game_id = ? AND captain_id = ?", guildID, gameID, captainID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *TeamRepository) CountByGame(ctx context.Context, gameID uuid.UUID) (int, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Team{}).
		Where("game_id = ?", gameID).
		Count(&count).Error
	return int(count), err
}

func (r *TeamRepository) ListByGame(ctx context.Context, gameID uuid.UUID) ([]*domainRepos.TeamWithSize, error) {
	var ms []models.Team
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*domainRepos.TeamWithSize, 0, len(ms))
	for i := range ms {
		var count int64
		if err := GetDB(ctx, r.db).WithContext(ctx).
			Model(&models.TeamMember{}).
			Where("team_id = ?", ms[i].ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		items = append(items, &domainRepos.TeamWithSize{
			Team:        r.toEntity(&ms[i]),
			MemberCount: int(count),
		})
	}
	return items, nil
}

func (r *TeamRepository) FirstWithRoom(ctx context.Context, gameID uuid.UUID, maxTeamSize int) (*entities.Team, error) {
	var m models.Team
	// Effective size counts the captain on top of member rows.
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("game_id = ?", gameID).
		Where("(SELECT COUNT(*) FROM team_members tm WHERE tm.team_id = teams.id) + 1 < ?", maxTeamSize).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *TeamRepository) SetCaptain(ctx context.Context, teamID uuid.UUID, captainID, captainTimezone string) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Team{}).
		Where("id = ?", teamID).
		Updates(map[string]interface{}{
			"captain_id":       captainID,
			"captain_timezone": captainTimezone,
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, teamID uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Team{}, "id = ?", teamID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *TeamRepository) DeleteByGame(ctx context.Context, gameID uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).
		Where("game_id = ?", gameID).
		Delete(&models.Team{}).Error
}

func (r *TeamRepository) toEntity(m *models.Team) *entities.Team {
	return &entities.Team{
		ID:              m.ID,
		GuildID:         m.GuildID,
		GameID:          m.GameID,
		Name:            m.TeamName,
		Type:            entities.TeamType(m.Type),
		CaptainID:       m.CaptainID,
		CaptainTimezone: m.CaptainTimezone,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func (r *TeamRepository) toModel(e *entities.Team) *models.Team {
	return &models.Team{
		ID:              e.ID,
		GuildID:         e.GuildID,
		GameID:          e.GameID,
		TeamName:        e.Name,
		Type:            string(e.Type),
		CaptainID:       e.CaptainID,
		CaptainTimezone: e.CaptainTimezone,
	}
}
