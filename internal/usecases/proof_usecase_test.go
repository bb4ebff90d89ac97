package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"osrs-bingo.backend/internal/domain/entities"
	domainerrors "osrs-bingo.backend/internal/domain/errors"
	"osrs-bingo.backend/internal/usecases"
)

type proofFixture struct {
	gameRepo        *MockGameRepository
	teamRepo        *MockTeamRepository
	participantRepo *MockParticipantRepository
	squareRepo      *MockSquareRepository
	completionRepo  *MockCompletionRepository
	fetcher         *MockAttachmentFetcher
	uploader        *MockProofUploader
	uow             *MockUnitOfWork
	uc              *usecases.ProofUsecase
}

func newProofFixture() *proofFixture {
	f := &proofFixture{
		gameRepo:        new(MockGameRepository),
		teamRepo:        new(MockTeamRepository),
		participantRepo: new(MockParticipantRepository),
		squareRepo:      new(MockSquareRepository),
		completionRepo:  new(MockCompletionRepository),
		fetcher:         new(MockAttachmentFetcher),
		uploader:        new(MockProofUploader),
		uow:             new(MockUnitOfWork),
	}
	f.uc = usecases.NewProofUsecase(
		f.gameRepo, f.teamRepo, f.participantRepo, f.squareRepo,
		f.completionRepo, f.fetcher, f.uploader, f.uow,
	)
	return f
}

func pngAttachment() *usecases.ProofAttachment {
	return &usecases.ProofAttachment{
		URL:         "https://cdn.example.com/proof.png",
		Filename:    "proof.png",
		ContentType: "image/png",
		Size:        2048,
	}
}

func TestSubmitProofSuccess(t *testing.T) {
	f := newProofFixture()
	game := activeTestGame()
	ctx := context.Background()
	team := &entities.Team{ID: uuid.New(), Name: "Skillers", GameID: game.ID, CaptainID: "captain-1"}
	square := &entities.Square{ID: uuid.New(), GameID: game.ID, PositionX: 1, PositionY: 2, GoalName: "Fire cape"}

	f.gameRepo.On("GetCurrentActive", ctx, "guild-1").Return(game, nil)
	f.teamRepo.On("GetByUser", ctx, "guild-1", game.ID, "user-2").Return(team, nil)
	f.participantRepo.On("Exists", ctx, game.ID, team.ID).Return(true, nil)
	f.squareRepo.On("GetByPosition", ctx, game.ID, 1, 2).Return(square, nil)
	f.completionRepo.On("HasVerified", ctx, team.ID, square.ID).Return(false, nil)
	f.fetcher.On("DownloadAttachment", ctx, "https://cdn.example.com/proof.png").
		Return([]byte{0x89, 0x50}, "image/png", nil)
	f.uploader.On("Upload", ctx, "proof.png", []byte{0x89, 0x50}).
		Return("https://images.example.com/abc/public", nil)
	f.completionRepo.On("Create", ctx, mock.AnythingOfType("*entities.Completion")).Return(nil)
	f.completionRepo.On("CountForSubmitter", ctx, team.ID, square.ID, "user-2").Return(1, nil)
	f.completionRepo.On("CountForSquare", ctx, team.ID, square.ID).Return(3, nil)

	result, err := f.uc.SubmitProof(ctx, "guild-1", "user-2", "", "1,2", pngAttachment())
	require.NoError(t, err)
	require.Equal(t, "https://images.example.com/abc/public", result.ProofURL)
	require.Equal(t, 1, result.UserOrdinal)
	require.Equal(t, 3, result.TeamTotal)
	require.Equal(t, square.ID, result.Square.ID)
	f.completionRepo.AssertExpectations(t)
}

func TestSubmitProofFallsBackToGoalName(t *testing.T) {
	f := newProofFixture()
	game := activeTestGame()
	ctx := context.Background()
	team := &entities.Team{ID: uuid.New(), GameID: game.ID, CaptainID: "captain-1"}
	square := &entities.Square{ID: uuid.New(), GameID: game.ID, GoalName: "Fire cape"}

	f.gameRepo.On("GetCurrentActive", ctx, "guild-1").Return(game, nil)
	f.teamRepo.On("GetByUser", ctx, "guild-1", game.ID, "user-2").Return(team, nil)
	f.participantRepo.On("Exists", ctx, game.ID, team.ID).Return(true, nil)
	f.squareRepo.On("GetByGoal", ctx, game.ID, "Fire cape").Return(square, nil)
	f.completionRepo.On("HasVerified", ctx, team.ID, square.ID).Return(false, nil)
	f.fetcher.On("DownloadAttachment", ctx, mock.Anything).Return([]byte{1}, "image/png", nil)
	f.uploader.On("Upload", ctx, mock.Anything, mock.Anything).Return("https://images.example.com/x", nil)
	f.completionRepo.On("Create", ctx, mock.AnythingOfType("*entities.Completion")).Return(nil)
	f.completionRepo.On("CountForSubmitter", ctx, team.ID, square.ID, "user-2").Return(1, nil)
	f.completionRepo.On("CountForSquare", ctx, team.ID, square.ID).Return(1, nil)

	_, err := f.uc.SubmitProof(ctx, "guild-1", "user-2", "", "Fire cape", pngAttachment())
	require.NoError(t, err)
	f.squareRepo.AssertNotCalled(t, "GetByPosition", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitProofRejectsNonImage(t *testing.T) {
	f := newProofFixture()
	att := pngAttachment()
	att.ContentType = "application/pdf"

	_, err := f.uc.SubmitProof(context.Background(), "guild-1", "user-2", "", "1,2", att)
	require.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestSubmitProofRejectsOversized(t *testing.T) {
	f := newProofFixture()
	att := pngAttachment()
	att.Size = entities.MaxProofBytes + 1

	_, err := f.uc.SubmitProof(context.Background(), "guild-1", "user-2", "", "1,2", att)
	require.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestSubmitProofRequiresAttachment(t *testing.T) {
	f := newProofFixture()

	_, err := f.uc.SubmitProof(context.Background(), "guild-1", "user-2", "", "1,2", nil)
	require.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestSubmitProofEndedGame(t *testing.T) {
	f := newProofFixture()
	game := activeTestGame()
	game.Active = false
	ctx := context.Background()

	f.gameRepo.On("GetByName", ctx, "guild-1", "Summer24").Return(game, nil)

	_, err := f.uc.SubmitProof(ctx, "guild-1", "user-2", "Summer24", "1,2", pngAttachment())
	require.ErrorIs(t, err, domainerrors.ErrGameEnded)
}

func TestSubmitProofTeamNotParticipating(t *testing.T) {
	f := newProofFixture()
	game := activeTestGame()
	ctx := context.Background()
	team := &entities.Team{ID: uuid.New(), GameID: game.ID}

	f.gameRepo.On("GetCurrentActive", ctx, "guild-1").Return(game, nil)
	f.teamRepo.On("GetByUser", ctx, "guild-1", game.ID, "user-2").Return(team, nil)
	f.participantRepo.On("Exists", ctx, game.ID, team.ID).Return(false, nil)

	_, err := f.uc.SubmitProof(ctx, "guild-1", "user-2", "", "1,2", pngAttachment())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	require.Contains(t, domainerrors.UserMessage(err, ""), "/bingo join")
}

func TestSubmitProofAlreadyVerified(t *testing.T) {
	f := newProofFixture()
	game := activeTestGame()
	ctx := context.Background()
	team := &entities.Team{ID: uuid.New(), GameID: game.ID}
	square := &entities.Square{ID: uuid.New(), GameID: game.ID}

	f.gameRepo.On("GetCurrentActive", ctx, "guild-1").Return(game, nil)
	f.teamRepo.On("GetByUser", ctx, "guild-1", game.ID, "user-2").Return(team, nil)
	f.participantRepo.On("Exists", ctx, game.ID, team.ID).Return(true, nil)
	f.squareRepo.On("GetByPosition", ctx, game.ID, 1, 2).Return(square, nil)
	f.completionRepo.On("HasVerified", ctx, team.ID, square.ID).Return(true, nil)

	_, err := f.uc.SubmitProof(ctx, "guild-1", "user-2", "", "1,2", pngAttachment())
	require.ErrorIs(t, err, domainerrors.ErrAlreadyVerified)
	f.fetcher.AssertNotCalled(t, "DownloadAttachment", mock.Anything, mock.Anything)
}

func TestVerifySquareSuccess(t *testing.T) {
	f := newProofFixture()
	game := activeTestGame()
	ctx := context.Background()
	team := &entities.Team{ID: uuid.New(), Name: "Skillers", GameID: game.ID}
	square := &entities.Square{ID: uuid.New(), GameID: game.ID, PositionX: 0, PositionY: 0}
	pending := &entities.Completion{ID: uuid.New(), TeamID: team.ID, SquareID: square.ID}

	f.gameRepo.On("GetCurrentActive", ctx, "guild-1").Return(game, nil)
	f.teamRepo.On("GetByName", ctx, "guild-1", game.ID, "Skillers").Return(team, nil)
	f.squareRepo.On("GetByPosition", ctx, game.ID, 0, 0).Return(square, nil)
	f.completionRepo.On("HasVerified", ctx, team.ID, square.ID).Return(false, nil)
	f.completionRepo.On("EarliestUnverified", ctx, team.ID, square.ID).Return(pending, nil)
	f.completionRepo.On("Verify", ctx, pending.ID, "admin-1").Return(nil)

	gotSquare, gotTeam, err := f.uc.VerifySquare(ctx, "guild-1", "admin-1", "", "Skillers", "0,0")
	require.NoError(t, err)
	require.Equal(t, square.ID, gotSquare.ID)
	require.Equal(t, team.ID, gotTeam.ID)
	f.completionRepo.AssertExpectations(t)
}

func TestVerifySquareNoSubmission(t *testing.T) {
	f := newProofFixture()
	game := activeTestGame()
	ctx := context.Background()
	team := &entities.Team{ID: uuid.New(), Name: "Skillers", GameID: game.ID}
	square := &entities.Square{ID: uuid.New(), GameID: game.ID}

	f.gameRepo.On("GetCurrentActive", ctx, "guild-1").Return(game, nil)
	f.teamRepo.On("GetByName", ctx, "guild-1", game.ID, "Skillers").Return(team, nil)
	f.squareRepo.On("GetByPosition", ctx, game.ID, 0, 0).Return(square, nil)
	f.completionRepo.On("HasVerified", ctx, team.ID, square.ID).Return(false, nil)
	f.completionRepo.On("EarliestUnverified", ctx, team.ID, square.ID).Return(nil, domainerrors.ErrNotFound)

	_, _, err := f.uc.VerifySquare(ctx, "guild-1", "admin-1", "", "Skillers", "0,0")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestVerifySquareAlreadyVerified(t *testing.T) {
	f := newProofFixture()
	game := activeTestGame()
	ctx := context.Background()
	team := &entities.Team{ID: uuid.New(), Name: "Skillers", GameID: game.ID}
	square := &entities.Square{ID: uuid.New(), GameID: game.ID}

	f.gameRepo.On("GetCurrentActive", ctx, "guild-1").Return(game, nil)
	f.teamRepo.On("GetByName", ctx, "guild-1", game.ID, "Skillers").Return(team, nil)
	f.squareRepo.On("GetByPosition", ctx, game.ID, 0, 0).Return(square, nil)
	f.completionRepo.On("HasVerified", ctx, team.ID, square.ID).Return(true, nil)

	_, _, err := f.uc.VerifySquare(ctx, "guild-1", "admin-1", "", "Skillers", "0,0")
	require.ErrorIs(t, err, domainerrors.ErrAlreadyVerified)
	f.completionRepo.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifySquareEndedGame(t *testing.T) {
	f := newProofFixture()
	game := activeTestGame()
	game.Active = false
	ctx := context.Background()

	f.gameRepo.On("GetByName", ctx, "guild-1", "Summer24").Return(game, nil)

	_, _, err := f.uc.VerifySquare(ctx, "guild-1", "admin-1", "Summer24", "Skillers", "0,0")
	require.ErrorIs(t, err, domainerrors.ErrGameEnded)
}

func TestViewBoardStatuses(t *testing.T) {
	f := newProofFixture()
	game := activeTestGame()
	game.BoardSize = 3
	ctx := context.Background()
	team := &entities.Team{ID: uuid.New(), Name: "Skillers", GameID: game.ID}

	verified := &entities.Square{ID: uuid.New(), GameID: game.ID, PositionX: 0, PositionY: 0, GoalName: "A"}
	submitted := &entities.Square{ID: uuid.New(), GameID: game.ID, PositionX: 1, PositionY: 0, GoalName: "B"}
	untouched := &entities.Square{ID: uuid.New(), GameID: game.ID, PositionX: 2, PositionY: 0, GoalName: "C"}

	f.gameRepo.On("GetCurrentActive", ctx, "guild-1").Return(game, nil)
	f.teamRepo.On("GetByName", ctx, "guild-1", game.ID, "Skillers").Return(team, nil)
	f.squareRepo.On("ListByGame", ctx, game.ID).Return([]*entities.Square{verified, submitted, untouched}, nil)
	f.completionRepo.On("ListByTeam", ctx, team.ID).Return([]*entities.Completion{
		{ID: uuid.New(), TeamID: team.ID, SquareID: verified.ID, Verified: true},
		{ID: uuid.New(), TeamID: team.ID, SquareID: verified.ID, Verified: false},
		{ID: uuid.New(), TeamID: team.ID, SquareID: submitted.ID, Verified: false},
	}, nil)

	board, err := f.uc.ViewBoard(ctx, "guild-1", "", "Skillers")
	require.NoError(t, err)
	require.Len(t, board.Cells, 3)
	require.Equal(t, usecases.CellVerified, board.Cells[0][0].Status)
	require.Equal(t, usecases.CellSubmitted, board.Cells[0][1].Status)
	require.Equal(t, usecases.CellPending, board.Cells[0][2].Status)
	require.Equal(t, usecases.CellEmpty, board.Cells[1][0].Status)
	require.Nil(t, board.Cells[1][0].Square)
}

func TestViewSquareHistory(t *testing.T) {
	f := newProofFixture()
	game := activeTestGame()
	ctx := context.Background()
	team := &entities.Team{ID: uuid.New(), GameID: game.ID}
	square := &entities.Square{ID: uuid.New(), GameID: game.ID, GoalName: "Fire cape"}
	completions := []*entities.Completion{
		{ID: uuid.New(), TeamID: team.ID, SquareID: square.ID},
	}

	f.gameRepo.On("GetCurrentActive", ctx, "guild-1").Return(game, nil)
	f.teamRepo.On("GetByUser", ctx, "guild-1", game.ID, "user-2").Return(team, nil)
	f.squareRepo.On("GetByGoal", ctx, game.ID, "Fire cape").Return(square, nil)
	f.completionRepo.On("ListForSquare", ctx, team.ID, square.ID).Return(completions, nil)

	history, err := f.uc.ViewSquare(ctx, "guild-1", "user-2", "", "Fire cape")
	require.NoError(t, err)
	require.Len(t, history.Completions, 1)
	require.Equal(t, "Fire cape", history.Square.GoalName)
}

func TestViewProofsPairsGoalNames(t *testing.T) {
	f := newProofFixture()
	game := activeTestGame()
	ctx := context.Background()
	team := &entities.Team{ID: uuid.New(), Name: "Skillers", GameID: game.ID}
	square := &entities.Square{ID: uuid.New(), GameID: game.ID, GoalName: "Fire cape"}

	f.gameRepo.On("GetCurrentActive", ctx, "guild-1").Return(game, nil)
	f.teamRepo.On("GetByName", ctx, "guild-1", game.ID, "Skillers").Return(team, nil)
	f.squareRepo.On("ListByGame", ctx, game.ID).Return([]*entities.Square{square}, nil)
	f.completionRepo.On("ListByTeam", ctx, team.ID).Return([]*entities.Completion{
		{ID: uuid.New(), TeamID: team.ID, SquareID: square.ID, Verified: true},
	}, nil)

	audit, err := f.uc.ViewProofs(ctx, "guild-1", "", "Skillers")
	require.NoError(t, err)
	require.Len(t, audit.Records, 1)
	require.Equal(t, "Fire cape", audit.Records[0].GoalName)
}
