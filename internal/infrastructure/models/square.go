package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type BingoSquare struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	GameID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bingo_squares_position,priority:1"`
	PositionX int       `gorm:"not null;uniqueIndex:idx_bingo_squares_position,priority:2"`
	PositionY int       `gorm:"not null;uniqueIndex:idx_bingo_squares_position,priority:3"`
	GoalName  string    `gorm:"type:varchar(200);not null"`
	Points    int       `gorm:"not null"`
	CreatedAt time.Time
}

func (BingoSquare) TableName() string {
	return "bingo_squares"
}

type TeamSquareCompletion struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TeamID      uuid.UUID `gorm:"type:uuid;not null;index"`
	SquareID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProofURL    string    `gorm:"type:text;not null"`
	SubmittedBy string    `gorm:"type:varchar(32);not null"`
	SubmittedAt time.Time `gorm:"not null"`
	Verified    bool      `gorm:"not null;default:false"`
	VerifiedBy  null.String
	VerifiedAt  null.Time
}

func (TeamSquareCompletion) TableName() string {
	return "team_square_completions"
}
