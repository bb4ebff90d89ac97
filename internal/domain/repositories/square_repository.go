package repositories

import (
	"context"

	"github.com/google/uuid"
	"osrs-bingo.backend/internal/domain/entities"
)

type SquareRepository interface {
	Create(ctx context.Context, square *entities.Square) error
	GetByPosition(ctx context.Context, gameID uuid.UUID, x, y int) (*entities.Square, error)
	GetByGoal(ctx context.Context, gameID uuid.UUID, goalName string) (*entities.Square, error)
	// ListByGame returns squares in row-major order (y, then x).
	ListByGame(ctx context.Context, gameID uuid.UUID) ([]*entities.Square, error)
}

type CompletionRepository interface {
	Create(ctx context.Context, completion *entities.Completion) error
	// HasVerified reports whether any verified completion exists for the
	// (team, square) pair. Once true, it stays true.
	HasVerified(ctx context.Context, teamID, squareID uuid.UUID) (bool, error)
	// EarliestUnverified returns the oldest pending submission for the
	// pair, the row an admin verification applies to.
	EarliestUnverified(ctx context.Context, teamID, squareID uuid.UUID) (*entities.Completion, error)
	Verify(ctx context.Context, id uuid.UUID, verifiedBy string) error
	CountForSquare(ctx context.Context, teamID, squareID uuid.UUID) (int, error)
	CountForSubmitter(ctx context.Context, teamID, squareID uuid.UUID, userID string) (int, error)
	ListForSquare(ctx context.Context, teamID, squareID uuid.UUID) ([]*entities.Completion, error)
	// ListByTeam returns a team's submissions newest-first.
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.Completion, error)
	// TeamIDsWithVerified lists teams holding at least one verified
	// completion in the game, the winner_team autocomplete source.
	TeamIDsWithVerified(ctx context.Context, gameID uuid.UUID) ([]uuid.UUID, error)
	DeleteByGame(ctx context.Context, gameID uuid.UUID) error
}
