package entities

import (
	"time"

	"github.com/google/uuid"
)

// FreeAgent is a waiting-pool entry, removed once matched to a team.
type FreeAgent struct {
	ID        uuid.UUID `json:"id"`
	GuildID   string    `json:"guildId"`
	GameID    uuid.UUID `json:"gameId"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"createdAt"`
}
