package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type BingoGame struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	GuildID           string    `gorm:"type:varchar(32);not null;index;uniqueIndex:idx_bingo_games_guild_name,priority:1"`
	Name              string    `gorm:"type:varchar(120);not null;uniqueIndex:idx_bingo_games_guild_name,priority:2"`
	Description       string    `gorm:"type:text"`
	BoardSize         int       `gorm:"not null;default:5"`
	StartDate         time.Time `gorm:"not null"`
	EndDate           time.Time `gorm:"not null"`
	Active            bool      `gorm:"not null;default:true"`
	MaxTeams          int       `gorm:"not null"`
	MinTeamSize       int       `gorm:"not null"`
	MaxTeamSize       int       `gorm:"not null"`
	CreatedBy         string    `gorm:"type:varchar(32);not null"`
	EndedBy           null.String
	EndedAt           null.Time
	WinnerTeamName    null.String
	WinnerTeamMembers null.String `gorm:"type:text"` // JSON array of mentions
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (BingoGame) TableName() string {
	return "bingo_games"
}

type GameParticipant struct {
	GameID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	TeamID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	JoinedAt time.Time
}

func (GameParticipant) TableName() string {
	return "game_participants"
}
