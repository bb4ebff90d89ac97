package models

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	GuildID         string    `gorm:"type:varchar(32);not null;index"`
	GameID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_teams_game_name,priority:1"`
	TeamName        string    `gorm:"type:varchar(120);not null;uniqueIndex:idx_teams_game_name,priority:2"`
	Type            string    `gorm:"type:varchar(16);not null;default:'team'"`
	CaptainID       string    `gorm:"type:varchar(32);not null;index"`
	CaptainTimezone string    `gorm:"type:varchar(64);not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Team) TableName() string {
	return "teams"
}

type TeamMember struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TeamID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_team_members_team_user,priority:1"`
	UserID   string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_team_members_team_user,priority:2"`
	Timezone string    `gorm:"type:varchar(64);not null"`
	JoinedAt time.Time `gorm:"not null"`
}

func (TeamMember) TableName() string {
	return "team_members"
}

type FreeAgent struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	GuildID   string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_free_agents_pool,priority:1"`
	GameID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_free_agents_pool,priority:2"`
	UserID    string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_free_agents_pool,priority:3"`
	Username  string    `gorm:"type:varchar(120);not null"`
	Timezone  string    `gorm:"type:varchar(64);not null"`
	CreatedAt time.Time
}

func (FreeAgent) TableName() string {
	return "free_agents"
}
