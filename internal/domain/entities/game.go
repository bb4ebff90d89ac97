package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

const (
	MinBoardSize     = 3
	MaxBoardSize     = 10
	DefaultBoardSize = 5
)

type Game struct {
	ID                uuid.UUID   `json:"id"`
	GuildID           string      `json:"guildId"`
	Name              string      `json:"name"`
	Description       string      `json:"description,omitempty"`
	BoardSize         int         `json:"boardSize"`
	StartDate         time.Time   `json:"startDate"`
	EndDate           time.Time   `json:"endDate"`
	Active            bool        `json:"active"`
	MaxTeams          int         `json:"maxTeams"`
	MinTeamSize       int         `json:"minTeamSize"`
	MaxTeamSize       int         `json:"maxTeamSize"`
	CreatedBy         string      `json:"createdBy"`
	EndedBy           null.String `json:"endedBy,omitempty"`
	EndedAt           null.Time   `json:"endedAt,omitempty"`
	WinnerTeamName    null.String `json:"winnerTeamName,omitempty"`
	WinnerTeamMembers []string    `json:"winnerTeamMembers,omitempty"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

// GameSpec holds the admin-supplied parameters for a new game.
type GameSpec struct {
	Name        string
	Description string
	BoardSize   int
	StartDate   time.Time
	EndDate     time.Time
	MaxTeams    int
	MinTeamSize int
	MaxTeamSize int
}

// GameParticipant records a team that has opted into a game's board,
// distinct from the team merely existing.
type GameParticipant struct {
	GameID   uuid.UUID `json:"gameId"`
	TeamID   uuid.UUID `json:"teamId"`
	JoinedAt time.Time `json:"joinedAt"`
}
