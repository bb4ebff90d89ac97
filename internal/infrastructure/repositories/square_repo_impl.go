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

type SquareRepository struct {
	db *gorm.DB
}

func NewSquareRepository(db *gorm.DB) *SquareRepository {
	return &SquareRepository{db: db}
}

func (r *SquareRepository) Create(ctx context.Context, square *entities.Square) error {
	m := &models.BingoSquare{
		ID:        square.ID,
		GameID:    square.GameID,
		PositionX: square.PositionX,
		PositionY: square.PositionY,
		GoalName:  square.GoalName,
		Points:    square.Points,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

func (r *SquareRepository) GetByPosition(ctx context.Context, gameID uuid.UUID, x, y int) (*entities.Square, error) {
	var m models.BingoSquare
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("game_id = ? AND position_x = ? AND position_y = ?", gameID, x, y).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *SquareRepository) GetByGoal(ctx context.Context, gameID uuid.UUID, goalName string) (*entities.Square, error) {
	var m models.BingoSquare
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("game_id = ? AND goal_name = ?", gameID, goalName).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *SquareRepository) ListByGame(ctx context.Context, gameID uuid.UUID) ([]*entities.Square, error) {
	var ms []models.BingoSquare
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("position_y ASC, position_x ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.Square, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *SquareRepository) toEntity(m *models.BingoSquare) *entities.Square {
	return &entities.Square{
		ID:        m.ID,
		GameID:    m.GameID,
		PositionX: m.PositionX,
		PositionY: m.PositionY,
		GoalName:  m.GoalName,
		Points:    m.Points,
		CreatedAt: m.CreatedAt,
	}
}
