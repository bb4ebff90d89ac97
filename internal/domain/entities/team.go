package entities

import (
	"time"

	"github.com/google/uuid"
)

// TeamType is the closed set of signup flavors a team can have.
type TeamType string

const (
	TeamTypeTeam    TeamType = "team"
	TeamTypePartner TeamType = "partner"
	TeamTypeSolo    TeamType = "solo_team"
)

func (t TeamType) Valid() bool {
	switch t {
	case TeamTypeTeam, TeamTypePartner, TeamTypeSolo:
		return true
	}
	return false
}

// Team belongs to exactly one game. The captain is tracked here, not as a
// member row; a team's effective size is len(members) + 1.
type Team struct {
	ID              uuid.UUID `json:"id"`
	GuildID         string    `json:"guildId"`
	GameID          uuid.UUID `json:"gameId"`
	Name            string    `json:"name"`
	Type            TeamType  `json:"type"`
	CaptainID       string    `json:"captainId"`
	CaptainTimezone string    `json:"captainTimezone"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type TeamMember struct {
	ID       uuid.UUID `json:"id"`
	TeamID   uuid.UUID `json:"teamId"`
	UserID   string    `json:"userId"`
	Timezone string    `json:"timezone"`
	JoinedAt time.Time `json:"joinedAt"`
}

// EffectiveSize is the size used for game-join eligibility: the captain
// counts as a member even though no member row exists for them.
func EffectiveSize(memberCount int) int {
	return memberCount + 1
}
