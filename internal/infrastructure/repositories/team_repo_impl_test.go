package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"osrs-bingo.backend/internal/domain/entities"
	domainerrors "osrs-bingo.backend/internal/domain/errors"
)

func newTeam(guildID string, gameID uuid.UUID, name, captainID string) *entities.Team {
	return &entities.Team{
		ID:              uuid.New(),
		GuildID:         guildID,
		GameID:          gameID,
		Name:            name,
		Type:            entities.TeamTypeTeam,
		CaptainID:       captainID,
		CaptainTimezone: "UTC",
	}
}

func addMember(t *testing.T, repo *TeamMemberRepository, teamID uuid.UUID, userID string, joined time.Time) {
	t.Helper()
	require.NoError(t, repo.Add(context.Background(), &entities.TeamMember{
		ID:       uuid.New(),
		TeamID:   teamID,
		UserID:   userID,
		Timezone: "UTC",
		JoinedAt: joined,
	}))
}

func TestTeamRepository_CreateAndLookups(t *testing.T) {
	db := newTestDB(t)
	createTeamTables(t, db)
	teams := NewTeamRepository(db)
	members := NewTeamMemberRepository(db)
	ctx := context.Background()

	gameID := uuid.New()
	legends := newTeam("guild-1", gameID, "Iron Legends", "cap-1")
	rivals := newTeam("guild-1", gameID, "Rune Rivals", "cap-2")
	require.NoError(t, teams.Create(ctx, legends))
	require.NoError(t, teams.Create(ctx, rivals))
	require.Error(t, teams.Create(ctx, newTeam("guild-1", gameID, "Iron Legends", "cap-3")))

	addMember(t, members, legends.ID, "user-1", time.Now())

	got, err := teams.GetByName(ctx, "guild-1", gameID, "Iron Legends")
	require.NoError(t, err)
	require.Equal(t, legends.ID, got.ID)
	require.Equal(t, entities.TeamTypeTeam, got.Type)

	// Captain and member both resolve to the same team.
	got, err = teams.GetByUser(ctx, "guild-1", gameID, "cap-1")
	require.NoError(t, err)
	require.Equal(t, legends.ID, got.ID)

	got, err = teams.GetByUser(ctx, "guild-1", gameID, "user-1")
	require.NoError(t, err)
	require.Equal(t, legends.ID, got.ID)

	_, err = teams.GetByUser(ctx, "guild-1", gameID, "stranger")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	got, err = teams.GetByCaptain(ctx, "guild-1", gameID, "cap-2")
	require.NoError(t, err)
	require.Equal(t, rivals.ID, got.ID)

	_, err = teams.GetByCaptain(ctx, "guild-1", gameID, "user-1")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	count, err := teams.CountByGame(ctx, gameID)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestTeamRepository_ListByGameMemberCounts(t *testing.T) {
	db := newTestDB(t)
	createTeamTables(t, db)
	teams := NewTeamRepository(db)
	members := NewTeamMemberRepository(db)
	ctx := context.Background()

	gameID := uuid.New()
	full := newTeam("guild-1", gameID, "Full Squad", "cap-1")
	empty := newTeam("guild-1", gameID, "Captain Only", "cap-2")
	require.NoError(t, teams.Create(ctx, full))
	require.NoError(t, teams.Create(ctx, empty))

	addMember(t, members, full.ID, "user-1", time.Now())
	addMember(t, members, full.ID, "user-2", time.Now())

	listed, err := teams.ListByGame(ctx, gameID)
	require.NoError(t, err)
	require.Len(t, listed, 2)

	byName := map[string]int{}
	for _, item := range listed {
		byName[item.Team.Name] = item.MemberCount
	}
	require.Equal(t, 2, byName["Full Squad"])
	require.Equal(t, 0, byName["Captain Only"])
}

func TestTeamRepository_FirstWithRoom(t *testing.T) {
	db := newTestDB(t)
	createTeamTables(t, db)
	teams := NewTeamRepository(db)
	members := NewTeamMemberRepository(db)
	ctx := context.Background()

	gameID := uuid.New()
	full := newTeam("guild-1", gameID, "Full Squad", "cap-1")
	require.NoError(t, teams.Create(ctx, full))
	addMember(t, members, full.ID, "user-1", time.Now())
	addMember(t, members, full.ID, "user-2", time.Now())

	// Effective size 3 (two members plus captain) leaves no room at max 3.
	_, err := teams.FirstWithRoom(ctx, gameID, 3)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	got, err := teams.FirstWithRoom(ctx, gameID, 4)
	require.NoError(t, err)
	require.Equal(t, full.ID, got.ID)
}

func TestTeamRepository_SetCaptainAndDelete(t *testing.T) {
	db := newTestDB(t)
	createTeamTables(t, db)
	teams := NewTeamRepository(db)
	ctx := context.Background()

	gameID := uuid.New()
	team := newTeam("guild-1", gameID, "Iron Legends", "cap-1")
	require.NoError(t, teams.Create(ctx, team))

	require.NoError(t, teams.SetCaptain(ctx, team.ID, "user-1", "Europe/London"))
	got, err := teams.GetByName(ctx, "guild-1", gameID, "Iron Legends")
	require.NoError(t, err)
	require.Equal(t, "user-1", got.CaptainID)
	require.Equal(t, "Europe/London", got.CaptainTimezone)

	require.ErrorIs(t, teams.SetCaptain(ctx, uuid.New(), "x", "UTC"), domainerrors.ErrNotFound)

	require.NoError(t, teams.Delete(ctx, team.ID))
	require.ErrorIs(t, teams.Delete(ctx, team.ID), domainerrors.ErrNotFound)

	other := newTeam("guild-1", gameID, "Rune Rivals", "cap-2")
	require.NoError(t, teams.Create(ctx, other))
	require.NoError(t, teams.DeleteByGame(ctx, gameID))
	count, err := teams.CountByGame(ctx, gameID)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestTeamMemberRepository_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	createTeamTables(t, db)
	teams := NewTeamRepository(db)
	members := NewTeamMemberRepository(db)
	ctx := context.Background()

	gameID := uuid.New()
	team := newTeam("guild-1", gameID, "Iron Legends", "cap-1")
	require.NoError(t, teams.Create(ctx, team))

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	addMember(t, members, team.ID, "user-late", base.Add(time.Hour))
	addMember(t, members, team.ID, "user-early", base)

	count, err := members.Count(ctx, team.ID)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	listed, err := members.ListByTeam(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.Equal(t, "user-early", listed[0].UserID)

	earliest, err := members.EarliestJoined(ctx, team.ID)
	require.NoError(t, err)
	require.Equal(t, "user-early", earliest.UserID)

	require.NoError(t, members.Remove(ctx, team.ID, "user-early"))
	require.ErrorIs(t, members.Remove(ctx, team.ID, "user-early"), domainerrors.ErrNotFound)

	require.NoError(t, members.DeleteByTeam(ctx, team.ID))
	count, err = members.Count(ctx, team.ID)
	require.NoError(t, err)
	require.Equal(t, 0, count)

	_, err = members.EarliestJoined(ctx, team.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestTeamMemberRepository_DeleteByGame(t *testing.T) {
	db := newTestDB(t)
	createTeamTables(t, db)
	teams := NewTeamRepository(db)
	members := NewTeamMemberRepository(db)
	ctx := context.Background()

	gameID := uuid.New()
	otherGameID := uuid.New()
	inGame := newTeam("guild-1", gameID, "Iron Legends", "cap-1")
	outside := newTeam("guild-1", otherGameID, "Rune Rivals", "cap-2")
	require.NoError(t, teams.Create(ctx, inGame))
	require.NoError(t, teams.Create(ctx, outside))

	addMember(t, members, inGame.ID, "user-1", time.Now())
	addMember(t, members, outside.ID, "user-2", time.Now())

	require.NoError(t, members.DeleteByGame(ctx, gameID))

	count, err := members.Count(ctx, inGame.ID)
	require.NoError(t, err)
	require.Equal(t, 0, count)

	count, err = members.Count(ctx, outside.ID)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestFreeAgentRepository_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	createTeamTables(t, db)
	repo := NewFreeAgentRepository(db)
	ctx := context.Background()

	gameID := uuid.New()
	agent := &entities.FreeAgent{
		ID:       uuid.New(),
		GuildID:  "guild-1",
		GameID:   gameID,
		UserID:   "user-1",
		Username: "zezima",
		Timezone: "UTC",
	}
	require.NoError(t, repo.Add(ctx, agent))
	require.Error(t, repo.Add(ctx, agent))

	ok, err := repo.Exists(ctx, "guild-1", gameID, "user-1")
	require.NoError(t, err)
	require.True(t, ok)

	listed, err := repo.ListByGuild(ctx, "guild-1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "zezima", listed[0].Username)

	require.NoError(t, repo.Remove(ctx, "guild-1", gameID, "user-1"))
	ok, err = repo.Exists(ctx, "guild-1", gameID, "user-1")
	require.NoError(t, err)
	require.False(t, ok)
}
