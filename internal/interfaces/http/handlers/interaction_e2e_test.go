package handlers_test

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

// Full competition walkthrough: game setup, team formation, board
// population, proof submission, verification and teardown.
func TestFullCompetitionFlow(t *testing.T) {
	s := newBingoStack(t, "owner-1")
	createSummerGame(t, s)
	require.Equal(t, 1, s.scheduler.calls)

	// Owner fills the 3x3 board.
	goals := []string{
		"Fire cape", "Dragon pickaxe", "Barrows set",
		"Abyssal whip", "100 KC Zulrah", "Quest cape",
		"Champion scroll", "Pet drop", "Inferno cape",
	}
	for _, goal := range goals {
		resp := s.post(t, subcommand("guild-1", "owner-1", "bingo", "add_square", opt("goal", goal)))
		require.Contains(t, content(t, resp), goal)
	}
	// A 10th goal has nowhere to go on a 3x3 board.
	resp := s.post(t, subcommand("guild-1", "owner-1", "bingo", "add_square", opt("goal", "Overflow")))
	require.Contains(t, content(t, resp), "already full")

	// Alice founds Skillers; Bob joins by name; Carol lands there as a
	// free agent while it is the only team with room.
	resp = s.post(t, subcommand("guild-1", "alice", "signup", "create_team",
		opt("team_name", "Skillers"), opt("timezone", "UTC")))
	require.Contains(t, content(t, resp), "Skillers")
	resp = s.post(t, subcommand("guild-1", "bob", "signup", "join_team", opt("team_name", "Skillers")))
	require.Contains(t, content(t, resp), "joined team")
	resp = s.post(t, subcommand("guild-1", "carol", "signup", "free_agent", opt("timezone", "EST")))
	require.Contains(t, content(t, resp), "placed on team **Skillers**")

	// Dave and Eve form Ironmen to meet the minimum size.
	resp = s.post(t, subcommand("guild-1", "dave", "signup", "create_team", opt("team_name", "Ironmen")))
	require.Contains(t, content(t, resp), "Ironmen")
	resp = s.post(t, subcommand("guild-1", "eve", "signup", "join_team", opt("team_name", "Ironmen")))
	require.Contains(t, content(t, resp), "Ironmen")

	// A second create by an affiliated user is rejected.
	resp = s.post(t, subcommand("guild-1", "bob", "signup", "create_team", opt("team_name", "Another")))
	require.Contains(t, content(t, resp), "already on team")

	// Both teams enter the game.
	resp = s.post(t, subcommand("guild-1", "alice", "bingo", "join"))
	require.Contains(t, content(t, resp), "joined **Summer24**")
	resp = s.post(t, subcommand("guild-1", "dave", "bingo", "join"))
	require.Contains(t, content(t, resp), "joined **Summer24**")
	resp = s.post(t, subcommand("guild-1", "alice", "bingo", "join"))
	require.Contains(t, content(t, resp), "already joined")

	// Roster views.
	resp = s.post(t, command("guild-1", "alice", "myteam"))
	require.Contains(t, content(t, resp), "<@alice>")
	require.Contains(t, content(t, resp), "<@bob>")
	resp = s.post(t, command("guild-1", "anyone", "list_teams"))
	require.Contains(t, content(t, resp), "Skillers")
	require.Contains(t, content(t, resp), "Ironmen")
	resp = s.post(t, command("guild-1", "anyone", "listunpaired"))
	require.Contains(t, content(t, resp), "pool is empty")

	// Bob submits proof for Fire cape by coordinates.
	resp = s.post(t, subcommand("guild-1", "bob", "bingo", "submit",
		opt("square", "0,0"), proofOption()))
	require.Contains(t, content(t, resp), "Fire cape")
	require.Contains(t, content(t, resp), "1st submission")

	// A second submission for the same square stacks.
	resp = s.post(t, subcommand("guild-1", "alice", "bingo", "submit",
		opt("square", "Fire cape"), proofOption()))
	require.Contains(t, content(t, resp), "2 total")

	// Board shows the square as submitted, not verified.
	resp = s.post(t, subcommand("guild-1", "anyone", "bingo", "view", opt("team", "Skillers")))
	require.Contains(t, content(t, resp), "❌")

	// Admin verifies; the earliest submission wins.
	resp = s.post(t, subcommand("guild-1", "owner-1", "bingo", "verify",
		opt("team", "Skillers"), opt("square", "0,0")))
	require.Contains(t, content(t, resp), "verified for team **Skillers**")

	// Verified is terminal: further submissions and verifies bounce.
	resp = s.post(t, subcommand("guild-1", "bob", "bingo", "submit",
		opt("square", "0,0"), proofOption()))
	require.Contains(t, content(t, resp), "already has a verified completion")
	resp = s.post(t, subcommand("guild-1", "owner-1", "bingo", "verify",
		opt("team", "Skillers"), opt("square", "0,0")))
	require.Contains(t, content(t, resp), "already verified")

	// Board and history reflect the verified square.
	resp = s.post(t, subcommand("guild-1", "anyone", "bingo", "view", opt("team", "Skillers")))
	require.Contains(t, content(t, resp), "✅")
	resp = s.post(t, subcommand("guild-1", "bob", "bingo", "view_square", opt("square", "0,0")))
	require.Contains(t, content(t, resp), "Fire cape")
	resp = s.post(t, command("guild-1", "anyone", "view_proofs", opt("team", "Skillers")))
	require.Contains(t, content(t, resp), "Fire cape")
	require.Contains(t, content(t, resp), "verified by <@owner-1>")

	// The winner autocomplete only offers teams with verified squares.
	auto := &discordgo.Interaction{
		Type:    discordgo.InteractionApplicationCommandAutocomplete,
		GuildID: "guild-1",
		Member:  &discordgo.Member{User: &discordgo.User{ID: "owner-1"}},
		Data: discordgo.ApplicationCommandInteractionData{
			Name: "bingo",
			Options: []*discordgo.ApplicationCommandInteractionDataOption{{
				Name: "end_game", Type: discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandInteractionDataOption{
					{Name: "winner_team", Type: discordgo.ApplicationCommandOptionString, Value: "", Focused: true},
				},
			}},
		},
	}
	acResp := s.post(t, auto)
	require.Len(t, acResp.Data.Choices, 1)
	require.Equal(t, "Skillers", acResp.Data.Choices[0].Value)

	// End the game with Skillers as winners.
	resp = s.post(t, subcommand("guild-1", "owner-1", "bingo", "end_game", opt("winner_team", "Skillers")))
	require.Contains(t, content(t, resp), "has ended")
	require.Contains(t, content(t, resp), "🏆")
	for _, mention := range []string{"<@alice>", "<@bob>", "<@carol>"} {
		require.Contains(t, content(t, resp), mention)
	}

	// Teardown: no active game, no teams, history kept.
	resp = s.post(t, command("guild-1", "alice", "myteam"))
	require.Contains(t, content(t, resp), "no active bingo game")
	resp = s.post(t, subcommand("guild-1", "anyone", "bingo", "list_games"))
	require.Contains(t, content(t, resp), "ended")
	require.Contains(t, content(t, resp), "won by **Skillers**")

	var teams, completions int64
	require.NoError(t, s.db.Table("teams").Count(&teams).Error)
	require.NoError(t, s.db.Table("team_square_completions").Count(&completions).Error)
	require.Zero(t, teams)
	require.Zero(t, completions)
}

func TestLeaveTeamFlow(t *testing.T) {
	s := newBingoStack(t, "owner-1")
	createSummerGame(t, s)

	s.post(t, subcommand("guild-1", "alice", "signup", "create_team", opt("team_name", "Skillers")))
	s.post(t, subcommand("guild-1", "bob", "signup", "join_team", opt("team_name", "Skillers")))
	s.post(t, subcommand("guild-1", "carol", "signup", "join_team", opt("team_name", "Skillers")))

	// Captain leaves: earliest member (Bob) is promoted.
	resp := s.post(t, command("guild-1", "alice", "leave_team"))
	require.Contains(t, content(t, resp), "<@bob> is the new captain")

	// Carol leaving would drop below the minimum of 2.
	resp = s.post(t, command("guild-1", "carol", "leave_team"))
	require.Contains(t, content(t, resp), "below the minimum")

	// Captain of a minimum-size team leaving disbands it.
	resp = s.post(t, command("guild-1", "bob", "leave_team"))
	require.Contains(t, content(t, resp), "disbanded")

	resp = s.post(t, command("guild-1", "bob", "leave_team"))
	require.Contains(t, content(t, resp), "not on a team")
}

func TestSubmitRejectsNonParticipatingTeam(t *testing.T) {
	s := newBingoStack(t, "owner-1")
	createSummerGame(t, s)
	s.post(t, subcommand("guild-1", "owner-1", "bingo", "add_square", opt("goal", "Fire cape")))

	s.post(t, subcommand("guild-1", "alice", "signup", "create_team", opt("team_name", "Skillers")))
	s.post(t, subcommand("guild-1", "bob", "signup", "join_team", opt("team_name", "Skillers")))

	// Skillers exists but has not joined the game board.
	resp := s.post(t, subcommand("guild-1", "alice", "bingo", "submit",
		opt("square", "0,0"), proofOption()))
	require.Contains(t, content(t, resp), "/bingo join")

	// A user with no team gets signup guidance instead.
	resp = s.post(t, subcommand("guild-1", "zed", "bingo", "submit",
		opt("square", "0,0"), proofOption()))
	require.Contains(t, content(t, resp), "/signup")
}

