package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"osrs-bingo.backend/internal/domain/entities"
	domainerrors "osrs-bingo.backend/internal/domain/errors"
	"osrs-bingo.backend/internal/domain/repositories"
)

// AttachmentFetcher retrieves an attachment's bytes, validating that it
// is an image within the size cap.
type AttachmentFetcher interface {
	DownloadAttachment(ctx context.Context, url string) ([]byte, string, error)
}

// ProofUploader rehosts proof bytes and returns a permanent URL.
type ProofUploader interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// ProofAttachment is the resolved attachment metadata from the platform.
type ProofAttachment struct {
	URL         string
	Filename    string
	ContentType string
	Size        int
}

// SubmitResult reports where a submission landed in the team's history.
type SubmitResult struct {
	Game        *entities.Game
	Team        *entities.Team
	Square      *entities.Square
	ProofURL    string
	UserOrdinal int
	TeamTotal   int
}

// CellStatus is the board glyph for one square from a team's viewpoint.
type CellStatus string

const (
	CellVerified  CellStatus = "verified"
	CellSubmitted CellStatus = "submitted"
	CellPending   CellStatus = "pending"
	CellEmpty     CellStatus = "empty"
)

type BoardCell struct {
	Square *entities.Square
	Status CellStatus
}

// BoardView is the rendered grid: BoardSize rows of BoardSize cells.
type BoardView struct {
	Game  *entities.Game
	Team  *entities.Team
	Cells [][]BoardCell
}

// SquareHistory is a square's submission log for one team.
type SquareHistory struct {
	Square      *entities.Square
	Team        *entities.Team
	Completions []*entities.Completion
}

// ProofRecord pairs a completion with the goal it was submitted for.
type ProofRecord struct {
	GoalName   string
	Completion *entities.Completion
}

// ProofAudit is the full submission history of a team.
type ProofAudit struct {
	Game    *entities.Game
	Team    *entities.Team
	Records []ProofRecord
}

// ProofUsecase handles proof submission, verification and board views.
type ProofUsecase struct {
	gameRepo        repositories.GameRepository
	teamRepo        repositories.TeamRepository
	participantRepo repositories.ParticipantRepository
	squareRepo      repositories.SquareRepository
	completionRepo  repositories.CompletionRepository
	fetcher         AttachmentFetcher
	uploader        ProofUploader
	uow             repositories.UnitOfWork
}

func NewProofUsecase(
	gameRepo repositories.GameRepository,
	teamRepo repositories.TeamRepository,
	participantRepo repositories.ParticipantRepository,
	squareRepo repositories.SquareRepository,
	completionRepo repositories.CompletionRepository,
	fetcher AttachmentFetcher,
	uploader ProofUploader,
	uow repositories.UnitOfWork,
) *ProofUsecase {
	return &ProofUsecase{
		gameRepo:        gameRepo,
		teamRepo:        teamRepo,
		participantRepo: participantRepo,
		squareRepo:      squareRepo,
		completionRepo:  completionRepo,
		fetcher:         fetcher,
		uploader:        uploader,
		uow:             uow,
	}
}

func (u *ProofUsecase) resolveGame(ctx context.Context, guildID, gameName string) (*entities.Game, error) {
	if gameName != "" {
		game, err := u.gameRepo.GetByName(ctx, guildID, gameName)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return nil, domainerrors.NotFound("No game named **" + gameName + "** was found.")
			}
			return nil, err
		}
		return game, nil
	}
	game, err := u.gameRepo.GetCurrentActive(ctx, guildID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NewAppError("There is no active bingo game right now.", domainerrors.ErrNoActiveGame)
		}
		return nil, err
	}
	return game, nil
}

func (u *ProofUsecase) findSquare(ctx context.Context, game *entities.Game, squareRef string) (*entities.Square, error) {
	if x, y, ok := ParseCoordinates(squareRef); ok {
		square, err := u.squareRepo.GetByPosition(ctx, game.ID, x, y)
		if err == nil {
			return square, nil
		}
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
	}
	square, err := u.squareRepo.GetByGoal(ctx, game.ID, squareRef)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("No square matching **" + squareRef + "** was found on the board.")
		}
		return nil, err
	}
	return square, nil
}

// SubmitProof validates eligibility, rehosts the attachment, and records
// the completion.
func (u *ProofUsecase) SubmitProof(ctx context.Context, guildID, userID, gameName, squareRef string, attachment *ProofAttachment) (*SubmitResult, error) {
	if attachment == nil || attachment.URL == "" {
		return nil, domainerrors.Validation("A proof image attachment is required.")
	}
	if !strings.HasPrefix(attachment.ContentType, "image/") {
		return nil, domainerrors.Validation("Proof must be an image file.")
	}
	if attachment.Size > entities.MaxProofBytes {
		return nil, domainerrors.Validation("Proof image is too large (10MB max).")
	}

	game, err := u.resolveGame(ctx, guildID, gameName)
	if err != nil {
		return nil, err
	}
	if !game.Active {
		return nil, domainerrors.NewAppError("**"+game.Name+"** has already ended.", domainerrors.ErrGameEnded)
	}

	team, err := u.teamRepo.GetByUser(ctx, guildID, game.ID, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("You are not on a team. Use `/signup` to create or join one first.")
		}
		return nil, err
	}

	participating, err := u.participantRepo.Exists(ctx, game.ID, team.ID)
	if err != nil {
		return nil, err
	}
	if !participating {
		return nil, domainerrors.NotFound("Your team has not joined **" + game.Name + "** yet. Use `/bingo join` first.")
	}

	square, err := u.findSquare(ctx, game, squareRef)
	if err != nil {
		return nil, err
	}

	verified, err := u.completionRepo.HasVerified(ctx, team.ID, square.ID)
	if err != nil {
		return nil, err
	}
	if verified {
		return nil, domainerrors.NewAppError(
			"Your team already has a verified completion for that square.",
			domainerrors.ErrAlreadyVerified)
	}

	data, _, err := u.fetcher.DownloadAttachment(ctx, attachment.URL)
	if err != nil {
		return nil, err
	}
	proofURL, err := u.uploader.Upload(ctx, attachment.Filename, data)
	if err != nil {
		return nil, err
	}

	completion := &entities.Completion{
		ID:          uuid.New(),
		TeamID:      team.ID,
		SquareID:    square.ID,
		ProofURL:    proofURL,
		SubmittedBy: userID,
		SubmittedAt: timeNow(),
	}
	if err := u.completionRepo.Create(ctx, completion); err != nil {
		return nil, err
	}

	ordinal, err := u.completionRepo.CountForSubmitter(ctx, team.ID, square.ID, userID)
	if err != nil {
		return nil, err
	}
	total, err := u.completionRepo.CountForSquare(ctx, team.ID, square.ID)
	if err != nil {
		return nil, err
	}

	return &SubmitResult{
		Game:        game,
		Team:        team,
		Square:      square,
		ProofURL:    proofURL,
		UserOrdinal: ordinal,
		TeamTotal:   total,
	}, nil
}

// VerifySquare marks a team's earliest pending submission verified.
func (u *ProofUsecase) VerifySquare(ctx context.Context, guildID, adminID, gameName, teamName, squareRef string) (*entities.Square, *entities.Team, error) {
	game, err := u.resolveGame(ctx, guildID, gameName)
	if err != nil {
		return nil, nil, err
	}
	if !game.Active {
		return nil, nil, domainerrors.NewAppError("**"+game.Name+"** has already ended.", domainerrors.ErrGameEnded)
	}

	team, err := u.teamRepo.GetByName(ctx, guildID, game.ID, teamName)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil, domainerrors.NotFound("Team **" + teamName + "** was not found in this game.")
		}
		return nil, nil, err
	}

	square, err := u.findSquare(ctx, game, squareRef)
	if err != nil {
		return nil, nil, err
	}

	verified, err := u.completionRepo.HasVerified(ctx, team.ID, square.ID)
	if err != nil {
		return nil, nil, err
	}
	if verified {
		return nil, nil, domainerrors.NewAppError(
			"That square is already verified for **"+team.Name+"**.",
			domainerrors.ErrAlreadyVerified)
	}

	pending, err := u.completionRepo.EarliestUnverified(ctx, team.ID, square.ID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil, domainerrors.NotFound("No submission found for **" + team.Name + "** on that square.")
		}
		return nil, nil, err
	}

	if err := u.completionRepo.Verify(ctx, pending.ID, adminID); err != nil {
		return nil, nil, err
	}
	return square, team, nil
}

// ViewSquare returns a square's submission history for the invoking
// user's team.
func (u *ProofUsecase) ViewSquare(ctx context.Context, guildID, userID, gameName, squareRef string) (*SquareHistory, error) {
	game, err := u.resolveGame(ctx, guildID, gameName)
	if err != nil {
		return nil, err
	}

	team, err := u.teamRepo.GetByUser(ctx, guildID, game.ID, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("You are not on a team for this game.")
		}
		return nil, err
	}

	square, err := u.findSquare(ctx, game, squareRef)
	if err != nil {
		return nil, err
	}

	completions, err := u.completionRepo.ListForSquare(ctx, team.ID, square.ID)
	if err != nil {
		return nil, err
	}
	return &SquareHistory{Square: square, Team: team, Completions: completions}, nil
}

// ViewBoard projects the full grid with a status glyph per cell.
func (u *ProofUsecase) ViewBoard(ctx context.Context, guildID, gameName, teamName string) (*BoardView, error) {
	game, err := u.resolveGame(ctx, guildID, gameName)
	if err != nil {
		return nil, err
	}

	team, err := u.teamRepo.GetByName(ctx, guildID, game.ID, teamName)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Team **" + teamName + "** was not found in this game.")
		}
		return nil, err
	}

	squares, err := u.squareRepo.ListByGame(ctx, game.ID)
	if err != nil {
		return nil, err
	}

	completions, err := u.completionRepo.ListByTeam(ctx, team.ID)
	if err != nil {
		return nil, err
	}
	status := make(map[uuid.UUID]CellStatus)
	for _, c := range completions {
		if c.Verified {
			status[c.SquareID] = CellVerified
		} else if status[c.SquareID] != CellVerified {
			status[c.SquareID] = CellSubmitted
		}
	}

	bySpot := make(map[[2]int]*entities.Square, len(squares))
	for _, sq := range squares {
		bySpot[[2]int{sq.PositionX, sq.PositionY}] = sq
	}

	cells := make([][]BoardCell, game.BoardSize)
	for y := 0; y < game.BoardSize; y++ {
		row := make([]BoardCell, game.BoardSize)
		for x := 0; x < game.BoardSize; x++ {
			sq := bySpot[[2]int{x, y}]
			if sq == nil {
				row[x] = BoardCell{Status: CellEmpty}
				continue
			}
			st, ok := status[sq.ID]
			if !ok {
				st = CellPending
			}
			row[x] = BoardCell{Square: sq, Status: st}
		}
		cells[y] = row
	}
	return &BoardView{Game: game, Team: team, Cells: cells}, nil
}

// ViewProofs returns every submission a team has made, with goal names.
func (u *ProofUsecase) ViewProofs(ctx context.Context, guildID, gameName, teamName string) (*ProofAudit, error) {
	game, err := u.resolveGame(ctx, guildID, gameName)
	if err != nil {
		return nil, err
	}

	team, err := u.teamRepo.GetByName(ctx, guildID, game.ID, teamName)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Team **" + teamName + "** was not found in this game.")
		}
		return nil, err
	}

	squares, err := u.squareRepo.ListByGame(ctx, game.ID)
	if err != nil {
		return nil, err
	}
	goalByID := make(map[uuid.UUID]string, len(squares))
	for _, sq := range squares {
		goalByID[sq.ID] = sq.GoalName
	}

	completions, err := u.completionRepo.ListByTeam(ctx, team.ID)
	if err != nil {
		return nil, err
	}
	records := make([]ProofRecord, 0, len(completions))
	for _, c := range completions {
		records = append(records, ProofRecord{GoalName: goalByID[c.SquareID], Completion: c})
	}
	return &ProofAudit{Game: game, Team: team, Records: records}, nil
}
