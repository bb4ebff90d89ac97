package repositories

import (
	"context"

	"github.com/google/uuid"
	"osrs-bingo.backend/internal/domain/entities"
)

type GameRepository interface {
	Create(ctx context.Context, game *entities.Game) error
	// GetByName looks a game up by guild-unique name regardless of state.
	GetByName(ctx context.Context, guildID, name string) (*entities.Game, error)
	// GetActiveByName returns the game only when it is still active.
	GetActiveByName(ctx context.Context, guildID, name string) (*entities.Game, error)
	// GetCurrentActive returns the most recent active game for a guild,
	// ordered by start date descending. This is the explicit selection
	// policy for commands that omit the game option.
	GetCurrentActive(ctx context.Context, guildID string) (*entities.Game, error)
	// List returns games newest-first; limit <= 0 means no limit.
	List(ctx context.Context, guildID string, limit int) ([]*entities.Game, error)
	// End snapshots the winner, marks the game inactive and stamps who
	// ended it. The teardown of dependent rows is the caller's job.
	End(ctx context.Context, id uuid.UUID, endedBy string, winnerTeamName string, winnerTeamMembers []string) error
}

type ParticipantRepository interface {
	Add(ctx context.Context, gameID, teamID uuid.UUID) error
	Exists(ctx context.Context, gameID, teamID uuid.UUID) (bool, error)
	CountByGame(ctx context.Context, gameID uuid.UUID) (int, error)
	// TeamIDsByGame lists the teams that opted into a game's board.
	TeamIDsByGame(ctx context.Context, gameID uuid.UUID) ([]uuid.UUID, error)
	DeleteByGame(ctx context.Context, gameID uuid.UUID) error
	DeleteByTeam(ctx context.Context, teamID uuid.UUID) error
}
