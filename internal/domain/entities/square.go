package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Square is one cell of a bingo board. Positions are zero-based and unique
// per game; assignment is first free cell in row-major scan order.
type Square struct {
	ID        uuid.UUID `json:"id"`
	GameID    uuid.UUID `json:"gameId"`
	PositionX int       `json:"positionX"`
	PositionY int       `json:"positionY"`
	GoalName  string    `json:"goalName"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"createdAt"`
}

// MaxProofBytes caps proof attachments at 10 MiB. Both the pre-download
// size check and the download itself enforce it.
const MaxProofBytes = 10 << 20

// Completion is a proof submission by a team for a square. Multiple
// unverified submissions may coexist; at most one becomes verified, and a
// verified completion is terminal.
type Completion struct {
	ID          uuid.UUID   `json:"id"`
	TeamID      uuid.UUID   `json:"teamId"`
	SquareID    uuid.UUID   `json:"squareId"`
	ProofURL    string      `json:"proofUrl"`
	SubmittedBy string      `json:"submittedBy"`
	SubmittedAt time.Time   `json:"submittedAt"`
	Verified    bool        `json:"verified"`
	VerifiedBy  null.String `json:"verifiedBy,omitempty"`
	VerifiedAt  null.Time   `json:"verifiedAt,omitempty"`
}
