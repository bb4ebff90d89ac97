package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"osrs-bingo.backend/internal/domain/entities"
	domainerrors "osrs-bingo.backend/internal/domain/errors"
	"osrs-bingo.backend/internal/infrastructure/models"
)

type CompletionRepository struct {
	db *gorm.DB
}

func NewCompletionRepository(db *gorm.DB) *CompletionRepository {
	return &CompletionRepository{db: db}
}

func (r *CompletionRepository) Create(ctx context.Context, completion *entities.Completion) error {
	m := &models.TeamSquareCompletion{
		ID:          completion.ID,
		TeamID:      completion.TeamID,
		SquareID:    completion.SquareID,
		ProofURL:    completion.ProofURL,
		SubmittedBy: completion.SubmittedBy,
		SubmittedAt: completion.SubmittedAt,
		Verified:    completion.Verified,
		VerifiedBy:  completion.VerifiedBy,
		VerifiedAt:  completion.VerifiedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

func (r *CompletionRepository) HasVerified(ctx context.Context, teamID, squareID uuid.UUID) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.TeamSquareCompletion{}).
		Where("team_id = ? AND square_id = ? AND verified = ?", teamID, squareID, true).
		Count(&count).Error
	return count > 0, err
}

func (r *CompletionRepository) EarliestUnverified(ctx context.Context, teamID, squareID uuid.UUID) (*entities.Completion, error) {
	var m models.TeamSquareCompletion
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("team_id = ? AND square_id = ? AND verified = ?", teamID, squareID, false).
		Order("submitted_at ASC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *CompletionRepository) Verify(ctx context.Context, id uuid.UUID, verifiedBy string) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.TeamSquareCompletion{}).
		Where("id = ? AND verified = ?", id, false).
		Updates(map[string]interface{}{
			"verified":    true,
			"verified_by": verifiedBy,
			"verified_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *CompletionRepository) CountForSquare(ctx context.Context, teamID, squareID uuid.UUID) (int, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.TeamSquareCompletion{}).
		Where("team_id = ? AND square_id = ?", teamID, squareID).
		Count(&count).Error
	return int(count), err
}

func (r *CompletionRepository) CountForSubmitter(ctx context.Context, teamID, squareID uuid.UUID, userID string) (int, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.TeamSquareCompletion{}).
		Where("team_id = ? AND square_id = ? AND submitted_by = ?", teamID, squareID, userID).
		Count(&count).Error
	return int(count), err
}

func (r *CompletionRepository) ListForSquare(ctx context.Context, teamID, squareID uuid.UUID) ([]*entities.Completion, error) {
	var ms []models.TeamSquareCompletion
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("team_id = ? AND square_id = ?", teamID, squareID).
		Order("submitted_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toEntities(ms), nil
}

func (r *CompletionRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.Completion, error) {
	var ms []models.TeamSquareCompletion
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("submitted_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toEntities(ms), nil
}

func (r *CompletionRepository) TeamIDsWithVerified(ctx context.Context, gameID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.TeamSquareCompletion{}).
		Distinct("team_square_completions.team_id").
		Joins("JOIN teams ON teams.id = team_square_completions.team_id").
		Where("teams.game_id = ? AND team_square_completions.verified = ?", gameID, true).
		Pluck("team_square_completions.team_id", &ids).Error
	return ids, err
}

func (r *CompletionRepository) DeleteByGame(ctx context.Context, gameID uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).
		Where("square_id IN (?)", GetDB(ctx, r.db).
			Model(&models.BingoSquare{}).
			Select("id").
			Where("game_id = ?", gameID)).
		Delete(&models.TeamSquareCompletion{}).Error
}

func (r *CompletionRepository) toEntity(m *models.TeamSquareCompletion) *entities.Completion {
	return &entities.Completion{
		ID:          m.ID,
		TeamID:      m.TeamID,
		SquareID:    m.SquareID,
		ProofURL:    m.ProofURL,
		SubmittedBy: m.SubmittedBy,
		SubmittedAt: m.SubmittedAt,
		Verified:    m.Verified,
		VerifiedBy:  m.VerifiedBy,
		VerifiedAt:  m.VerifiedAt,
	}
}

func (r *CompletionRepository) toEntities(ms []models.TeamSquareCompletion) []*entities.Completion {
	items := make([]*entities.Completion, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items
}
