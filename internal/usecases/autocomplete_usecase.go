package usecases

import (
	"context"
	"errors"
	"fmt"

	"osrs-bingo.backend/internal/domain/entities"
	domainerrors "osrs-bingo.backend/internal/domain/errors"
	"osrs-bingo.backend/internal/domain/repositories"
)

// MaxChoices is the platform's cap on autocomplete suggestions.
const MaxChoices = 25

// Choice is one autocomplete suggestion.
type Choice struct {
	Name  string
	Value string
}

// AutocompleteUsecase produces suggestion lists for focused command
// options. Matching is case-insensitive substring containment in store
// order; an unreachable store yields an empty list, never an error
// surfaced to the user.
type AutocompleteUsecase struct {
	gameRepo        repositories.GameRepository
	teamRepo        repositories.TeamRepository
	participantRepo repositories.ParticipantRepository
	squareRepo      repositories.SquareRepository
	completionRepo  repositories.CompletionRepository
}

func NewAutocompleteUsecase(
	gameRepo repositories.GameRepository,
	teamRepo repositories.TeamRepository,
	participantRepo repositories.ParticipantRepository,
	squareRepo repositories.SquareRepository,
	completionRepo repositories.CompletionRepository,
) *AutocompleteUsecase {
	return &AutocompleteUsecase{
		gameRepo:        gameRepo,
		teamRepo:        teamRepo,
		participantRepo: participantRepo,
		squareRepo:      squareRepo,
		completionRepo:  completionRepo,
	}
}

func appendChoice(choices []Choice, name, value, partial string) []Choice {
	if len(choices) >= MaxChoices {
		return choices
	}
	if partial != "" && !containsFold(name, partial) && !containsFold(value, partial) {
		return choices
	}
	return append(choices, Choice{Name: name, Value: value})
}

// Games suggests game names across the guild.
func (u *AutocompleteUsecase) Games(ctx context.Context, guildID, partial string) ([]Choice, error) {
	games, err := u.gameRepo.List(ctx, guildID, 0)
	if err != nil {
		return nil, err
	}
	var choices []Choice
	for _, g := range games {
		choices = appendChoice(choices, g.Name, g.Name, partial)
	}
	return choices, nil
}

// TeamsWithRoom suggests joinable teams in the current game.
func (u *AutocompleteUsecase) TeamsWithRoom(ctx context.Context, guildID, partial string) ([]Choice, error) {
	game, err := u.gameRepo.GetCurrentActive(ctx, guildID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	teams, err := u.teamRepo.ListByGame(ctx, game.ID)
	if err != nil {
		return nil, err
	}
	var choices []Choice
	for _, t := range teams {
		size := entities.EffectiveSize(t.MemberCount)
		if size >= game.MaxTeamSize {
			continue
		}
		label := fmt.Sprintf("%s (%d/%d)", t.Team.Name, size, game.MaxTeamSize)
		choices = appendChoice(choices, label, t.Team.Name, partial)
	}
	return choices, nil
}

// ParticipatingTeams suggests teams that joined the current game.
func (u *AutocompleteUsecase) ParticipatingTeams(ctx context.Context, guildID, partial string) ([]Choice, error) {
	game, err := u.gameRepo.GetCurrentActive(ctx, guildID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	participating, err := u.participantRepo.TeamIDsByGame(ctx, game.ID)
	if err != nil {
		return nil, err
	}
	members := make(map[string]bool, len(participating))
	for _, id := range participating {
		members[id.String()] = true
	}
	teams, err := u.teamRepo.ListByGame(ctx, game.ID)
	if err != nil {
		return nil, err
	}
	var choices []Choice
	for _, t := range teams {
		if !members[t.Team.ID.String()] {
			continue
		}
		choices = appendChoice(choices, t.Team.Name, t.Team.Name, partial)
	}
	return choices, nil
}

// Squares suggests board squares for the invoking user's team, matched
// by goal name or "x,y" coordinates. Values are always coordinates.
func (u *AutocompleteUsecase) Squares(ctx context.Context, guildID, userID, partial string) ([]Choice, error) {
	game, err := u.gameRepo.GetCurrentActive(ctx, guildID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if _, err := u.teamRepo.GetByUser(ctx, guildID, game.ID, userID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	squares, err := u.squareRepo.ListByGame(ctx, game.ID)
	if err != nil {
		return nil, err
	}
	var choices []Choice
	for _, sq := range squares {
		coord := fmt.Sprintf("%d,%d", sq.PositionX, sq.PositionY)
		label := fmt.Sprintf("(%s) %s", coord, sq.GoalName)
		choices = appendChoice(choices, label, coord, partial)
	}
	return choices, nil
}

// WinnerTeams suggests teams holding at least one verified completion.
func (u *AutocompleteUsecase) WinnerTeams(ctx context.Context, guildID, partial string) ([]Choice, error) {
	game, err := u.gameRepo.GetCurrentActive(ctx, guildID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	withVerified, err := u.completionRepo.TeamIDsWithVerified(ctx, game.ID)
	if err != nil {
		return nil, err
	}
	eligible := make(map[string]bool, len(withVerified))
	for _, id := range withVerified {
		eligible[id.String()] = true
	}
	teams, err := u.teamRepo.ListByGame(ctx, game.ID)
	if err != nil {
		return nil, err
	}
	var choices []Choice
	for _, t := range teams {
		if !eligible[t.Team.ID.String()] {
			continue
		}
		choices = appendChoice(choices, t.Team.Name, t.Team.Name, partial)
	}
	return choices, nil
}
