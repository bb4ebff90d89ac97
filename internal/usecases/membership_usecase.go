package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"osrs-bingo.backend/internal/domain/entities"
	domainerrors "osrs-bingo.backend/internal/domain/errors"
	"osrs-bingo.backend/internal/domain/repositories"
)

// LeaveOutcome names which departure branch applied.
type LeaveOutcome string

const (
	LeaveDisbanded LeaveOutcome = "disbanded"
	LeavePromoted  LeaveOutcome = "promoted"
	LeaveLeft      LeaveOutcome = "left"
	LeaveLeftPool  LeaveOutcome = "left_pool"
	LeaveNone      LeaveOutcome = "none"
)

// LeaveResult describes what LeaveTeam did for the invoking user.
type LeaveResult struct {
	Outcome      LeaveOutcome
	TeamName     string
	NewCaptainID string
}

// PoolResult is the outcome of a free-agent signup: either an immediate
// assignment to a team with room, or a waiting-pool entry.
type PoolResult struct {
	AssignedTeam *entities.Team
}

// TeamOverview is the myteam projection: the team, its roster, and the
// goals it has verified so far.
type TeamOverview struct {
	Game           *entities.Game
	Team           *entities.Team
	Members        []*entities.TeamMember
	CompletedGoals []string
}

// MembershipUsecase handles team formation and roster changes.
type MembershipUsecase struct {
	gameRepo        repositories.GameRepository
	teamRepo        repositories.TeamRepository
	memberRepo      repositories.TeamMemberRepository
	freeAgentRepo   repositories.FreeAgentRepository
	participantRepo repositories.ParticipantRepository
	squareRepo      repositories.SquareRepository
	completionRepo  repositories.CompletionRepository
	uow             repositories.UnitOfWork
}

func NewMembershipUsecase(
	gameRepo repositories.GameRepository,
	teamRepo repositories.TeamRepository,
	memberRepo repositories.TeamMemberRepository,
	freeAgentRepo repositories.FreeAgentRepository,
	participantRepo repositories.ParticipantRepository,
	squareRepo repositories.SquareRepository,
	completionRepo repositories.CompletionRepository,
	uow repositories.UnitOfWork,
) *MembershipUsecase {
	return &MembershipUsecase{
		gameRepo:        gameRepo,
		teamRepo:        teamRepo,
		memberRepo:      memberRepo,
		freeAgentRepo:   freeAgentRepo,
		participantRepo: participantRepo,
		squareRepo:      squareRepo,
		completionRepo:  completionRepo,
		uow:             uow,
	}
}

func (u *MembershipUsecase) activeGame(ctx context.Context, guildID string) (*entities.Game, error) {
	game, err := u.gameRepo.GetCurrentActive(ctx, guildID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NewAppError("There is no active bingo game right now.", domainerrors.ErrNoActiveGame)
		}
		return nil, err
	}
	return game, nil
}

// ensureUnaffiliated rejects users who already captain or belong to a
// team in the given game.
func (u *MembershipUsecase) ensureUnaffiliated(ctx context.Context, guildID string, gameID uuid.UUID, userID string) error {
	existing, err := u.teamRepo.GetByUser(ctx, guildID, gameID, userID)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return err
	}
	if existing != nil {
		return domainerrors.Conflict("You are already on team **" + existing.Name + "** for this game.")
	}
	return nil
}

// CreateTeam registers a new team captained by the invoking user and
// opts it into the current game's board.
func (u *MembershipUsecase) CreateTeam(ctx context.Context, guildID, userID, teamName, timezone string, teamType entities.TeamType) (*entities.Team, error) {
	if teamName == "" {
		return nil, domainerrors.Validation("A team name is required.")
	}
	if !teamType.Valid() {
		teamType = entities.TeamTypeTeam
	}

	game, err := u.activeGame(ctx, guildID)
	if err != nil {
		return nil, err
	}

	teamCount, err := u.teamRepo.CountByGame(ctx, game.ID)
	if err != nil {
		return nil, err
	}
	if teamCount >= game.MaxTeams {
		return nil, domainerrors.Capacity("This game already has the maximum number of teams.")
	}

	if err := u.ensureUnaffiliated(ctx, guildID, game.ID, userID); err != nil {
		return nil, err
	}

	if _, err := u.teamRepo.GetByName(ctx, guildID, game.ID, teamName); err == nil {
		return nil, domainerrors.Conflict("A team named **" + teamName + "** already exists for this game.")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	team := &entities.Team{
		ID:              uuid.New(),
		GuildID:         guildID,
		GameID:          game.ID,
		Name:            teamName,
		Type:            teamType,
		CaptainID:       userID,
		CaptainTimezone: timezone,
	}
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.teamRepo.Create(txCtx, team); err != nil {
			return err
		}
		return u.participantRepo.Add(txCtx, game.ID, team.ID)
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

// JoinTeam adds the invoking user to an existing team by name.
func (u *MembershipUsecase) JoinTeam(ctx context.Context, guildID, userID, teamName, timezone string) (*entities.Team, error) {
	game, err := u.activeGame(ctx, guildID)
	if err != nil {
		return nil, err
	}

	if err := u.ensureUnaffiliated(ctx, guildID, game.ID, userID); err != nil {
		return nil, err
	}

	team, err := u.teamRepo.GetByName(ctx, guildID, game.ID, teamName)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Team **" + teamName + "** was not found.")
		}
		return nil, err
	}

	memberCount, err := u.memberRepo.Count(ctx, team.ID)
	if err != nil {
		return nil, err
	}
	if entities.EffectiveSize(memberCount) >= game.MaxTeamSize {
		return nil, domainerrors.Capacity("Team **" + team.Name + "** is already full.")
	}

	member := &entities.TeamMember{
		ID:       uuid.New(),
		TeamID:   team.ID,
		UserID:   userID,
		Timezone: timezone,
		JoinedAt: time.Now(),
	}
	if err := u.memberRepo.Add(ctx, member); err != nil {
		return nil, err
	}
	return team, nil
}

// JoinFreeAgentPool auto-assigns the user to the first team with room,
// or queues them when every team is full.
func (u *MembershipUsecase) JoinFreeAgentPool(ctx context.Context, guildID, userID, username, timezone string) (*PoolResult, error) {
	game, err := u.activeGame(ctx, guildID)
	if err != nil {
		return nil, err
	}

	if err := u.ensureUnaffiliated(ctx, guildID, game.ID, userID); err != nil {
		return nil, err
	}

	queued, err := u.freeAgentRepo.Exists(ctx, guildID, game.ID, userID)
	if err != nil {
		return nil, err
	}
	if queued {
		return nil, domainerrors.Conflict("You are already in the free agent pool for this game.")
	}

	team, err := u.teamRepo.FirstWithRoom(ctx, game.ID, game.MaxTeamSize)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	if team != nil {
		member := &entities.TeamMember{
			ID:       uuid.New(),
			TeamID:   team.ID,
			UserID:   userID,
			Timezone: timezone,
			JoinedAt: time.Now(),
		}
		if err := u.memberRepo.Add(ctx, member); err != nil {
			return nil, err
		}
		return &PoolResult{AssignedTeam: team}, nil
	}

	agent := &entities.FreeAgent{
		ID:       uuid.New(),
		GuildID:  guildID,
		GameID:   game.ID,
		UserID:   userID,
		Username: username,
		Timezone: timezone,
	}
	if err := u.freeAgentRepo.Add(ctx, agent); err != nil {
		return nil, err
	}
	return &PoolResult{}, nil
}

// LeaveTeam removes the user from whatever they are part of: their team
// (with captaincy handoff or disband), or the free agent pool. Users in
// neither get a no-op result rather than an error.
func (u *MembershipUsecase) LeaveTeam(ctx context.Context, guildID, userID string) (*LeaveResult, error) {
	game, err := u.activeGame(ctx, guildID)
	if err != nil {
		return nil, err
	}

	team, err := u.teamRepo.GetByUser(ctx, guildID, game.ID, userID)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	if team != nil {
		memberCount, err := u.memberRepo.Count(ctx, team.ID)
		if err != nil {
			return nil, err
		}

		if team.CaptainID == userID {
			if memberCount < game.MinTeamSize {
				// Too small to survive the captain leaving.
				err := u.uow.Do(ctx, func(txCtx context.Context) error {
					if err := u.memberRepo.DeleteByTeam(txCtx, team.ID); err != nil {
						return err
					}
					if err := u.participantRepo.DeleteByTeam(txCtx, team.ID); err != nil {
						return err
					}
					return u.teamRepo.Delete(txCtx, team.ID)
				})
				if err != nil {
					return nil, err
				}
				return &LeaveResult{Outcome: LeaveDisbanded, TeamName: team.Name}, nil
			}

			successor, err := u.memberRepo.EarliestJoined(ctx, team.ID)
			if err != nil {
				return nil, err
			}
			err = u.uow.Do(ctx, func(txCtx context.Context) error {
				if err := u.teamRepo.SetCaptain(txCtx, team.ID, successor.UserID, successor.Timezone); err != nil {
					return err
				}
				return u.memberRepo.Remove(txCtx, team.ID, successor.UserID)
			})
			if err != nil {
				return nil, err
			}
			return &LeaveResult{Outcome: LeavePromoted, TeamName: team.Name, NewCaptainID: successor.UserID}, nil
		}

		// Regular member. Remaining effective size is memberCount
		// (one fewer member row, captain still implicit).
		if memberCount < game.MinTeamSize {
			return nil, domainerrors.Capacity("Leaving would drop **" + team.Name + "** below the minimum team size.")
		}
		if err := u.memberRepo.Remove(ctx, team.ID, userID); err != nil {
			return nil, err
		}
		return &LeaveResult{Outcome: LeaveLeft, TeamName: team.Name}, nil
	}

	queued, err := u.freeAgentRepo.Exists(ctx, guildID, game.ID, userID)
	if err != nil {
		return nil, err
	}
	if queued {
		if err := u.freeAgentRepo.Remove(ctx, guildID, game.ID, userID); err != nil {
			return nil, err
		}
		return &LeaveResult{Outcome: LeaveLeftPool}, nil
	}

	return &LeaveResult{Outcome: LeaveNone}, nil
}

// AddTeamMember lets a captain pull a user onto their team, clearing any
// free-agent entry the user had.
func (u *MembershipUsecase) AddTeamMember(ctx context.Context, guildID, captainID, targetUserID, timezone string) (*entities.Team, error) {
	game, err := u.activeGame(ctx, guildID)
	if err != nil {
		return nil, err
	}

	team, err := u.teamRepo.GetByCaptain(ctx, guildID, game.ID, captainID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("Only team captains can add members.")
		}
		return nil, err
	}

	if err := u.ensureUnaffiliated(ctx, guildID, game.ID, targetUserID); err != nil {
		// The conflict message is about the target, not the captain.
		if errors.Is(err, domainerrors.ErrConflict) {
			return nil, domainerrors.Conflict("That user is already on a team for this game.")
		}
		return nil, err
	}

	memberCount, err := u.memberRepo.Count(ctx, team.ID)
	if err != nil {
		return nil, err
	}
	if entities.EffectiveSize(memberCount) >= game.MaxTeamSize {
		return nil, domainerrors.Capacity("Your team is already at the maximum size.")
	}

	member := &entities.TeamMember{
		ID:       uuid.New(),
		TeamID:   team.ID,
		UserID:   targetUserID,
		Timezone: timezone,
		JoinedAt: time.Now(),
	}
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.memberRepo.Add(txCtx, member); err != nil {
			return err
		}
		return u.freeAgentRepo.Remove(txCtx, guildID, game.ID, targetUserID)
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

// MyTeam returns the invoking user's team, roster and verified goals.
func (u *MembershipUsecase) MyTeam(ctx context.Context, guildID, userID string) (*TeamOverview, error) {
	game, err := u.activeGame(ctx, guildID)
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

	members, err := u.memberRepo.ListByTeam(ctx, team.ID)
	if err != nil {
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
	seen := make(map[uuid.UUID]bool)
	var goals []string
	for _, c := range completions {
		if !c.Verified || seen[c.SquareID] {
			continue
		}
		seen[c.SquareID] = true
		if goal, ok := goalByID[c.SquareID]; ok {
			goals = append(goals, goal)
		}
	}

	return &TeamOverview{Game: game, Team: team, Members: members, CompletedGoals: goals}, nil
}

// ListTeams returns every team in the current game with its size.
func (u *MembershipUsecase) ListTeams(ctx context.Context, guildID string) (*entities.Game, []*repositories.TeamWithSize, error) {
	game, err := u.activeGame(ctx, guildID)
	if err != nil {
		return nil, nil, err
	}
	teams, err := u.teamRepo.ListByGame(ctx, game.ID)
	if err != nil {
		return nil, nil, err
	}
	return game, teams, nil
}

// ListUnpaired returns the guild's waiting free agents.
func (u *MembershipUsecase) ListUnpaired(ctx context.Context, guildID string) ([]*entities.FreeAgent, error) {
	return u.freeAgentRepo.ListByGuild(ctx, guildID)
}
