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

func newGame(guildID, name string, start time.Time, active bool) *entities.Game {
	return &entities.Game{
		ID:          uuid.New(),
		GuildID:     guildID,
		Name:        name,
		Description: "clan event",
		BoardSize:   5,
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 14),
		Active:      active,
		MaxTeams:    8,
		MinTeamSize: 2,
		MaxTeamSize: 5,
		CreatedBy:   "admin-1",
	}
}

func TestGameRepository_CreateAndLookups(t *testing.T) {
	db := newTestDB(t)
	createGameTables(t, db)
	repo := NewGameRepository(db)
	ctx := context.Background()

	older := newGame("guild-1", "Spring24", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), true)
	newer := newGame("guild-1", "Summer24", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), true)
	ended := newGame("guild-1", "Winter23", time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), false)
	otherGuild := newGame("guild-2", "Summer24", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), true)

	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))
	require.NoError(t, repo.Create(ctx, ended))
	require.NoError(t, repo.Create(ctx, otherGuild))

	got, err := repo.GetByName(ctx, "guild-1", "Winter23")
	require.NoError(t, err)
	require.Equal(t, ended.ID, got.ID)
	require.False(t, got.Active)

	_, err = repo.GetActiveByName(ctx, "guild-1", "Winter23")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	got, err = repo.GetActiveByName(ctx, "guild-1", "Summer24")
	require.NoError(t, err)
	require.Equal(t, newer.ID, got.ID)

	// Two active games: the one with the later start date wins.
	current, err := repo.GetCurrentActive(ctx, "guild-1")
	require.NoError(t, err)
	require.Equal(t, newer.ID, current.ID)

	all, err := repo.List(ctx, "guild-1", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, newer.ID, all[0].ID)

	limited, err := repo.List(ctx, "guild-1", 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
}

func TestGameRepository_DuplicateName(t *testing.T) {
	db := newTestDB(t)
	createGameTables(t, db)
	repo := NewGameRepository(db)
	ctx := context.Background()

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, newGame("guild-1", "Summer24", start, true)))
	require.Error(t, repo.Create(ctx, newGame("guild-1", "Summer24", start, true)))
	// Same name in another guild is fine.
	require.NoError(t, repo.Create(ctx, newGame("guild-2", "Summer24", start, true)))
}

func TestGameRepository_EndWithWinner(t *testing.T) {
	db := newTestDB(t)
	createGameTables(t, db)
	repo := NewGameRepository(db)
	ctx := context.Background()

	game := newGame("guild-1", "Summer24", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), true)
	require.NoError(t, repo.Create(ctx, game))

	members := []string{"<@100>", "<@200>", "<@300>"}
	require.NoError(t, repo.End(ctx, game.ID, "admin-1", "Iron Legends", members))

	got, err := repo.GetByName(ctx, "guild-1", "Summer24")
	require.NoError(t, err)
	require.False(t, got.Active)
	require.Equal(t, "admin-1", got.EndedBy.String)
	require.True(t, got.EndedAt.Valid)
	require.Equal(t, "Iron Legends", got.WinnerTeamName.String)
	require.Equal(t, members, got.WinnerTeamMembers)

	_, err = repo.GetCurrentActive(ctx, "guild-1")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestGameRepository_EndWithoutWinner(t *testing.T) {
	db := newTestDB(t)
	createGameTables(t, db)
	repo := NewGameRepository(db)
	ctx := context.Background()

	game := newGame("guild-1", "Summer24", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), true)
	require.NoError(t, repo.Create(ctx, game))
	require.NoError(t, repo.End(ctx, game.ID, "admin-1", "", nil))

	got, err := repo.GetByName(ctx, "guild-1", "Summer24")
	require.NoError(t, err)
	require.False(t, got.Active)
	require.False(t, got.WinnerTeamName.Valid)
	require.Empty(t, got.WinnerTeamMembers)

	require.ErrorIs(t, repo.End(ctx, uuid.New(), "admin-1", "", nil), domainerrors.ErrNotFound)
}

func TestGameRepository_DBErrorBranches(t *testing.T) {
	db := newTestDB(t)
	// intentionally skip table creation
	repo := NewGameRepository(db)
	ctx := context.Background()

	require.Error(t, repo.Create(ctx, newGame("g", "n", time.Now(), true)))
	_, err := repo.GetByName(ctx, "g", "n")
	require.Error(t, err)
	_, err = repo.GetActiveByName(ctx, "g", "n")
	require.Error(t, err)
	_, err = repo.GetCurrentActive(ctx, "g")
	require.Error(t, err)
	_, err = repo.List(ctx, "g", 0)
	require.Error(t, err)
	require.Error(t, repo.End(ctx, uuid.New(), "a", "", nil))
}

func TestParticipantRepository_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	createGameTables(t, db)
	repo := NewParticipantRepository(db)
	ctx := context.Background()

	gameID := uuid.New()
	teamA := uuid.New()
	teamB := uuid.New()

	require.NoError(t, repo.Add(ctx, gameID, teamA))
	require.NoError(t, repo.Add(ctx, gameID, teamB))
	require.Error(t, repo.Add(ctx, gameID, teamA))

	ok, err := repo.Exists(ctx, gameID, teamA)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.Exists(ctx, gameID, uuid.New())
	require.NoError(t, err)
	require.False(t, ok)

	count, err := repo.CountByGame(ctx, gameID)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	ids, err := repo.TeamIDsByGame(ctx, gameID)
	require.NoError(t, err)
	require.Len(t, ids, 2)

	require.NoError(t, repo.DeleteByTeam(ctx, teamA))
	count, err = repo.CountByGame(ctx, gameID)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	require.NoError(t, repo.DeleteByGame(ctx, gameID))
	count, err = repo.CountByGame(ctx, gameID)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}
