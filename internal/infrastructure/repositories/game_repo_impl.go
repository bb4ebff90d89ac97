package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"osrs-bingo.backend/internal/domain/entities"
	domainerrors "osrs-bingo.backend/internal/domain/errors"
	"osrs-bingo.backend/internal/infrastructure/models"
)

type GameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) Create(ctx context.Context, game *entities.Game) error {
	m := r.toModel(game)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	game.CreatedAt = m.CreatedAt
	game.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *GameRepository) GetByName(ctx context.Context, guildID, name string) (*entities.Game, error) {
	var m models.BingoGame
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("guild_id = ? AND name = ?", guildID, name).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *GameRepository) GetActiveByName(ctx context.Context, guildID, name string) (*entities.Game, error) {
	var m models.BingoGame
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("guild_id = ? AND name = ? AND active = ?", guildID, name, true).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *GameRepository) GetCurrentActive(ctx context.Context, guildID string) (*entities.Game, error) {
	var m models.BingoGame
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("guild_id = ? AND active = ?", guildID, true).
		Order("start_date DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *GameRepository) List(ctx context.Context, guildID string, limit int) ([]*entities.Game, error) {
	var ms []models.BingoGame
	query := GetDB(ctx, r.db).WithContext(ctx).
		Where("guild_id = ?", guildID).
		Order("start_date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.Game, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *GameRepository) End(ctx context.Context, id uuid.UUID, endedBy string, winnerTeamName string, winnerTeamMembers []string) error {
	updates := map[string]interface{}{
		"active":     false,
		"ended_by":   endedBy,
		"ended_at":   time.Now(),
		"updated_at": time.Now(),
	}
	if winnerTeamName != "" {
		updates["winner_team_name"] = winnerTeamName
		encoded, err := json.Marshal(winnerTeamMembers)
		if err != nil {
			return err
		}
		updates["winner_team_members"] = string(encoded)
	}

	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.BingoGame{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *GameRepository) toEntity(m *models.BingoGame) *entities.Game {
	var members []string
	if m.WinnerTeamMembers.Valid && m.WinnerTeamMembers.String != "" {
		// Winner snapshot is denormalized JSON; a decode failure just
		// loses the member list, not the game row.
		_ = json.Unmarshal([]byte(m.WinnerTeamMembers.String), &members)
	}
	return &entities.Game{
		ID:                m.ID,
		GuildID:           m.GuildID,
		Name:              m.Name,
		Description:       m.Description,
		BoardSize:         m.BoardSize,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		Active:            m.Active,
		MaxTeams:          m.MaxTeams,
		MinTeamSize:       m.MinTeamSize,
		MaxTeamSize:       m.MaxTeamSize,
		CreatedBy:         m.CreatedBy,
		EndedBy:           m.EndedBy,
		EndedAt:           m.EndedAt,
		WinnerTeamName:    m.WinnerTeamName,
		WinnerTeamMembers: members,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func (r *GameRepository) toModel(e *entities.Game) *models.BingoGame {
	m := &models.BingoGame{
		ID:             e.ID,
		GuildID:        e.GuildID,
		Name:           e.Name,
		Description:    e.Description,
		BoardSize:      e.BoardSize,
		StartDate:      e.StartDate,
		EndDate:        e.EndDate,
		Active:         e.Active,
		MaxTeams:       e.MaxTeams,
		MinTeamSize:    e.MinTeamSize,
		MaxTeamSize:    e.MaxTeamSize,
		CreatedBy:      e.CreatedBy,
		EndedBy:        e.EndedBy,
		EndedAt:        e.EndedAt,
		WinnerTeamName: e.WinnerTeamName,
	}
	if len(e.WinnerTeamMembers) > 0 {
		if encoded, err := json.Marshal(e.WinnerTeamMembers); err == nil {
			m.WinnerTeamMembers = null.StringFrom(string(encoded))
		}
	}
	return m
}
