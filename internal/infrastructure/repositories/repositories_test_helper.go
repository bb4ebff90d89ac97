package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createGameTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE bingo_games (
		id TEXT PRIMARY KEY,
		guild_id TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT,
		board_size INTEGER NOT NULL,
		start_date DATETIME NOT NULL,
		end_date DATETIME NOT NULL,
		active BOOLEAN NOT NULL DEFAULT 1,
		max_teams INTEGER NOT NULL,
		min_team_size INTEGER NOT NULL,
		max_team_size INTEGER NOT NULL,
		created_by TEXT NOT NULL,
		ended_by TEXT,
		ended_at DATETIME,
		winner_team_name TEXT,
		winner_team_members TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE (guild_id, name)
	);`)
	mustExec(t, db, `CREATE TABLE game_participants (
		game_id TEXT NOT NULL,
		team_id TEXT NOT NULL,
		joined_at DATETIME,
		PRIMARY KEY (game_id, team_id)
	);`)
}

func createTeamTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE teams (
		id TEXT PRIMARY KEY,
		guild_id TEXT NOT NULL,
		game_id TEXT NOT NULL,
		team_name TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT 'team',
		captain_id TEXT NOT NULL,
		captain_timezone TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE (game_id, team_name)
	);`)
	mustExec(t, db, `CREATE TABLE team_members (
		id TEXT PRIMARY KEY,
		team_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		timezone TEXT NOT NULL,
		joined_at DATETIME NOT NULL,
		UNIQUE (team_id, user_id)
	);`)
	mustExec(t, db, `CREATE TABLE free_agents (
		id TEXT PRIMARY KEY,
		guild_id TEXT NOT NULL,
		game_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		username TEXT NOT NULL,
		timezone TEXT NOT NULL,
		created_at DATETIME,
		UNIQUE (guild_id, game_id, user_id)
	);`)
}

func createSquareTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE bingo_squares (
		id TEXT PRIMARY KEY,
		game_id TEXT NOT NULL,
		position_x INTEGER NOT NULL,
		position_y INTEGER NOT NULL,
		goal_name TEXT NOT NULL,
		points INTEGER NOT NULL,
		created_at DATETIME,
		UNIQUE (game_id, position_x, position_y)
	);`)
	mustExec(t, db, `CREATE TABLE team_square_completions (
		id TEXT PRIMARY KEY,
		team_id TEXT NOT NULL,
		square_id TEXT NOT NULL,
		proof_url TEXT NOT NULL,
		submitted_by TEXT NOT NULL,
		submitted_at DATETIME NOT NULL,
		verified BOOLEAN NOT NULL DEFAULT 0,
		verified_by TEXT,
		verified_at DATETIME
	);`)
}

func createAdminTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE admin_roles (
		guild_id TEXT NOT NULL,
		role_id TEXT NOT NULL,
		role_name TEXT NOT NULL,
		added_by TEXT NOT NULL,
		created_at DATETIME,
		PRIMARY KEY (guild_id, role_id)
	);`)
	mustExec(t, db, `CREATE TABLE guild_owners (
		guild_id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		updated_at DATETIME
	);`)
}
