package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"osrs-bingo.backend/internal/domain/entities"
	domainerrors "osrs-bingo.backend/internal/domain/errors"
	"osrs-bingo.backend/internal/domain/repositories"
	"osrs-bingo.backend/pkg/logger"
)

// EventScheduler announces a new game on the host platform. Failures are
// logged, never surfaced; the game exists either way.
type EventScheduler interface {
	ScheduleGameEvent(ctx context.Context, guildID, name, description string, start, end time.Time) error
}

// GameUsecase handles the game lifecycle from creation to teardown.
type GameUsecase struct {
	gameRepo        repositories.GameRepository
	teamRepo        repositories.TeamRepository
	memberRepo      repositories.TeamMemberRepository
	participantRepo repositories.ParticipantRepository
	squareRepo      repositories.SquareRepository
	completionRepo  repositories.CompletionRepository
	scheduler       EventScheduler
	uow             repositories.UnitOfWork
}

func NewGameUsecase(
	gameRepo repositories.GameRepository,
	teamRepo repositories.TeamRepository,
	memberRepo repositories.TeamMemberRepository,
	participantRepo repositories.ParticipantRepository,
	squareRepo repositories.SquareRepository,
	completionRepo repositories.CompletionRepository,
	scheduler EventScheduler,
	uow repositories.UnitOfWork,
) *GameUsecase {
	return &GameUsecase{
		gameRepo:        gameRepo,
		teamRepo:        teamRepo,
		memberRepo:      memberRepo,
		participantRepo: participantRepo,
		squareRepo:      squareRepo,
		completionRepo:  completionRepo,
		scheduler:       scheduler,
		uow:             uow,
	}
}

// resolveActive finds the game a command targets: by name when given,
// otherwise the guild's most recent active game.
func (u *GameUsecase) resolveActive(ctx context.Context, guildID, gameName string) (*entities.Game, error) {
	if gameName != "" {
		game, err := u.gameRepo.GetActiveByName(ctx, guildID, gameName)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return nil, domainerrors.NotFound("No active game named **" + gameName + "** was found.")
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

// CreateGame validates and persists a new game, then announces it
// best-effort.
func (u *GameUsecase) CreateGame(ctx context.Context, guildID, adminID string, spec *entities.GameSpec) (*entities.Game, error) {
	if spec.Name == "" {
		return nil, domainerrors.Validation("A game name is required.")
	}
	if spec.BoardSize == 0 {
		spec.BoardSize = entities.DefaultBoardSize
	}
	if spec.BoardSize < entities.MinBoardSize || spec.BoardSize > entities.MaxBoardSize {
		return nil, domainerrors.Validation("Board size must be between 3 and 10.")
	}
	if spec.StartDate.IsZero() || spec.EndDate.IsZero() {
		return nil, domainerrors.Validation("Both a start date and an end date are required.")
	}
	if !spec.EndDate.After(spec.StartDate) {
		return nil, domainerrors.Validation("The end date must be after the start date.")
	}
	if spec.MaxTeams <= 0 || spec.MinTeamSize <= 0 || spec.MaxTeamSize < spec.MinTeamSize {
		return nil, domainerrors.Validation("Team size and count limits must be positive, with max size at least min size.")
	}

	if _, err := u.gameRepo.GetByName(ctx, guildID, spec.Name); err == nil {
		return nil, domainerrors.Conflict("A game named **" + spec.Name + "** already exists in this server.")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	game := &entities.Game{
		ID:          uuid.New(),
		GuildID:     guildID,
		Name:        spec.Name,
		Description: spec.Description,
		BoardSize:   spec.BoardSize,
		StartDate:   spec.StartDate,
		EndDate:     spec.EndDate,
		Active:      true,
		MaxTeams:    spec.MaxTeams,
		MinTeamSize: spec.MinTeamSize,
		MaxTeamSize: spec.MaxTeamSize,
		CreatedBy:   adminID,
	}
	if err := u.gameRepo.Create(ctx, game); err != nil {
		return nil, err
	}

	if u.scheduler != nil {
		if err := u.scheduler.ScheduleGameEvent(ctx, guildID, game.Name, game.Description, game.StartDate, game.EndDate); err != nil {
			logger.Warn(ctx, "scheduled event creation failed",
				zap.String("guild_id", guildID),
				zap.String("game", game.Name),
				zap.Error(err))
		}
	}
	return game, nil
}

// JoinGame opts the invoking user's team into a game's board.
func (u *GameUsecase) JoinGame(ctx context.Context, guildID, userID, gameName string) (*entities.Team, *entities.Game, error) {
	game, err := u.resolveActive(ctx, guildID, gameName)
	if err != nil {
		return nil, nil, err
	}

	team, err := u.teamRepo.GetByUser(ctx, guildID, game.ID, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil, domainerrors.NotFound("You are not on a team for this game. Use `/signup` first.")
		}
		return nil, nil, err
	}

	memberCount, err := u.memberRepo.Count(ctx, team.ID)
	if err != nil {
		return nil, nil, err
	}
	size := entities.EffectiveSize(memberCount)
	if size < game.MinTeamSize || size > game.MaxTeamSize {
		return nil, nil, domainerrors.Capacity("Your team's size does not meet the game's team size limits.")
	}

	joined, err := u.participantRepo.Exists(ctx, game.ID, team.ID)
	if err != nil {
		return nil, nil, err
	}
	if joined {
		return nil, nil, domainerrors.Conflict("Your team has already joined **" + game.Name + "**.")
	}

	participants, err := u.participantRepo.CountByGame(ctx, game.ID)
	if err != nil {
		return nil, nil, err
	}
	if participants >= game.MaxTeams {
		return nil, nil, domainerrors.Capacity("**" + game.Name + "** is already full.")
	}

	if err := u.participantRepo.Add(ctx, game.ID, team.ID); err != nil {
		return nil, nil, err
	}
	return team, game, nil
}

// AddSquare places a goal on the first free cell in row-major order.
func (u *GameUsecase) AddSquare(ctx context.Context, guildID, gameName, goalName string, points int) (*entities.Square, error) {
	if goalName == "" {
		return nil, domainerrors.Validation("A goal name is required.")
	}

	game, err := u.resolveActive(ctx, guildID, gameName)
	if err != nil {
		return nil, err
	}

	squares, err := u.squareRepo.ListByGame(ctx, game.ID)
	if err != nil {
		return nil, err
	}

	occupied := make(map[[2]int]bool, len(squares))
	for _, sq := range squares {
		occupied[[2]int{sq.PositionX, sq.PositionY}] = true
	}

	square := &entities.Square{
		ID:       uuid.New(),
		GameID:   game.ID,
		GoalName: goalName,
		Points:   points,
	}
	placed := false
	for y := 0; y < game.BoardSize && !placed; y++ {
		for x := 0; x < game.BoardSize; x++ {
			if !occupied[[2]int{x, y}] {
				square.PositionX = x
				square.PositionY = y
				placed = true
				break
			}
		}
	}
	if !placed {
		return nil, domainerrors.Capacity("The board for **" + game.Name + "** is already full.")
	}

	if err := u.squareRepo.Create(ctx, square); err != nil {
		return nil, err
	}
	return square, nil
}

// EndGame snapshots the winner onto the game row, deactivates it, and
// tears down every dependent row in one transaction.
func (u *GameUsecase) EndGame(ctx context.Context, guildID, adminID, gameName, winnerTeamName string) (*entities.Game, error) {
	game, err := u.resolveActive(ctx, guildID, gameName)
	if err != nil {
		return nil, err
	}

	var winnerMembers []string
	if winnerTeamName != "" {
		winner, err := u.teamRepo.GetByName(ctx, guildID, game.ID, winnerTeamName)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return nil, domainerrors.NotFound("Team **" + winnerTeamName + "** was not found in this game.")
			}
			return nil, err
		}
		members, err := u.memberRepo.ListByTeam(ctx, winner.ID)
		if err != nil {
			return nil, err
		}
		winnerMembers = append(winnerMembers, "<@"+winner.CaptainID+">")
		for _, m := range members {
			winnerMembers = append(winnerMembers, "<@"+m.UserID+">")
		}
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.gameRepo.End(txCtx, game.ID, adminID, winnerTeamName, winnerMembers); err != nil {
			return err
		}
		if err := u.completionRepo.DeleteByGame(txCtx, game.ID); err != nil {
			return err
		}
		if err := u.memberRepo.DeleteByGame(txCtx, game.ID); err != nil {
			return err
		}
		if err := u.participantRepo.DeleteByGame(txCtx, game.ID); err != nil {
			return err
		}
		return u.teamRepo.DeleteByGame(txCtx, game.ID)
	})
	if err != nil {
		return nil, err
	}

	return u.gameRepo.GetByName(ctx, guildID, game.Name)
}

// ListGames returns games newest-first, capped at 10 unless all is set.
func (u *GameUsecase) ListGames(ctx context.Context, guildID string, all bool) ([]*entities.Game, error) {
	limit := 10
	if all {
		limit = 0
	}
	return u.gameRepo.List(ctx, guildID, limit)
}
