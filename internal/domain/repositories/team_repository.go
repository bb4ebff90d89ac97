package repositories

import (
	"context"

	"github.com/google/uuid"
	"osrs-bingo.backend/internal/domain/entities"
)

// TeamWithSize pairs a team with its member-row count (captain excluded).
type TeamWithSize struct {
	Team        *entities.Team
	MemberCount int
}

type TeamRepository interface {
	Create(ctx context.Context, team *entities.Team) error
	GetByName(ctx context.Context, guildID string, gameID uuid.UUID, name string) (*entities.Team, error)
	// GetByUser finds the team the user captains or belongs to within a
	// game. Returns ErrNotFound when the user has no team.
	GetByUser(ctx context.Context, guildID string, gameID uuid.UUID, userID string) (*entities.Team, error)
	GetByCaptain(ctx context.Context, guildID string, gameID uuid.UUID, captainID string) (*entities.Team, error)
	CountByGame(ctx context.Context, gameID uuid.UUID) (int, error)
	ListByGame(ctx context.Context, gameID uuid.UUID) ([]*TeamWithSize, error)
	// FirstWithRoom returns some team whose effective size is below max.
	// Tie-break among candidates is not guaranteed stable.
	FirstWithRoom(ctx context.Context, gameID uuid.UUID, maxTeamSize int) (*entities.Team, error)
	SetCaptain(ctx context.Context, teamID uuid.UUID, captainID, captainTimezone string) error
	Delete(ctx context.Context, teamID uuid.UUID) error
	DeleteByGame(ctx context.Context, gameID uuid.UUID) error
}

type TeamMemberRepository interface {
	Add(ctx context.Context, member *entities.TeamMember) error
	Remove(ctx context.Context, teamID uuid.UUID, userID string) error
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.TeamMember, error)
	Count(ctx context.Context, teamID uuid.UUID) (int, error)
	// EarliestJoined returns the member with the lowest joined_at, the
	// promotion order when a captain departs.
	EarliestJoined(ctx context.Context, teamID uuid.UUID) (*entities.TeamMember, error)
	DeleteByTeam(ctx context.Context, teamID uuid.UUID) error
	DeleteByGame(ctx context.Context, gameID uuid.UUID) error
}

type FreeAgentRepository interface {
	Add(ctx context.Context, agent *entities.FreeAgent) error
	Exists(ctx context.Context, guildID string, gameID uuid.UUID, userID string) (bool, error)
	Remove(ctx context.Context, guildID string, gameID uuid.UUID, userID string) error
	ListByGuild(ctx context.Context, guildID string) ([]*entities.FreeAgent, error)
}
