package discord_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
	"osrs-bingo.backend/internal/interfaces/discord"
)

func TestParsePublicKey(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	parsed, err := discord.ParsePublicKey(hex.EncodeToString(pub))
	require.NoError(t, err)
	require.Equal(t, pub, parsed)
}

func TestParsePublicKeyRejectsGarbage(t *testing.T) {
	_, err := discord.ParsePublicKey("not-hex")
	require.ErrorIs(t, err, discord.ErrInvalidPublicKey)

	_, err = discord.ParsePublicKey("abcd")
	require.ErrorIs(t, err, discord.ErrInvalidPublicKey)
}

func TestSubcommandAndOptions(t *testing.T) {
	data := discordgo.ApplicationCommandInteractionData{
		Name: "bingo",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			{
				Name: "create",
				Type: discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandInteractionDataOption{
					{Name: "name", Type: discordgo.ApplicationCommandOptionString, Value: "Summer24"},
					{Name: "board_size", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(5)},
					{Name: "all", Type: discordgo.ApplicationCommandOptionBoolean, Value: true},
				},
			},
		},
	}

	sub, opts := discord.Subcommand(data)
	require.Equal(t, "create", sub)
	require.Equal(t, "Summer24", discord.OptionString(opts, "name"))
	require.Equal(t, 5, discord.OptionInt(opts, "board_size"))
	require.True(t, discord.OptionBool(opts, "all"))
	require.Empty(t, discord.OptionString(opts, "missing"))
}

func TestSubcommandFlatCommand(t *testing.T) {
	data := discordgo.ApplicationCommandInteractionData{
		Name: "signup",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			{Name: "team_name", Type: discordgo.ApplicationCommandOptionString, Value: "Skillers"},
		},
	}

	sub, opts := discord.Subcommand(data)
	require.Empty(t, sub)
	require.Equal(t, "Skillers", discord.OptionString(opts, "team_name"))
}

func TestFocusedOption(t *testing.T) {
	opts := []*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "game", Type: discordgo.ApplicationCommandOptionString, Value: "Sum"},
		{Name: "team", Type: discordgo.ApplicationCommandOptionString, Value: "", Focused: true},
	}
	focused := discord.FocusedOption(opts)
	require.NotNil(t, focused)
	require.Equal(t, "team", focused.Name)

	require.Nil(t, discord.FocusedOption(nil))
}

func TestResolvedRole(t *testing.T) {
	data := discordgo.ApplicationCommandInteractionData{
		Resolved: &discordgo.ApplicationCommandInteractionDataResolved{
			Roles: map[string]*discordgo.Role{
				"900": {ID: "900", Name: "Bingo Admins"},
			},
		},
	}
	opts := []*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "role", Type: discordgo.ApplicationCommandOptionRole, Value: "900"},
	}

	id, name := discord.ResolvedRole(data, opts, "role")
	require.Equal(t, "900", id)
	require.Equal(t, "Bingo Admins", name)

	id, name = discord.ResolvedRole(discordgo.ApplicationCommandInteractionData{}, opts, "role")
	require.Equal(t, "900", id)
	require.Equal(t, "900", name)

	id, _ = discord.ResolvedRole(data, opts, "missing")
	require.Empty(t, id)
}

func TestResolvedAttachment(t *testing.T) {
	data := discordgo.ApplicationCommandInteractionData{
		Resolved: &discordgo.ApplicationCommandInteractionDataResolved{
			Attachments: map[string]*discordgo.MessageAttachment{
				"123": {ID: "123", Filename: "proof.png", ContentType: "image/png", Size: 2048, URL: "https://cdn.example.com/proof.png"},
			},
		},
	}
	opts := []*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "proof", Type: discordgo.ApplicationCommandOptionAttachment, Value: "123"},
	}

	att := discord.ResolvedAttachment(data, opts, "proof")
	require.NotNil(t, att)
	require.Equal(t, "proof.png", att.Filename)

	require.Nil(t, discord.ResolvedAttachment(data, opts, "other"))
	require.Nil(t, discord.ResolvedAttachment(discordgo.ApplicationCommandInteractionData{}, opts, "proof"))
}

func TestUserIDFallback(t *testing.T) {
	i := &discordgo.Interaction{Member: &discordgo.Member{User: &discordgo.User{ID: "100"}, Roles: []string{"r1"}}}
	require.Equal(t, "100", discord.UserID(i))
	require.Equal(t, []string{"r1"}, discord.MemberRoles(i))

	i = &discordgo.Interaction{User: &discordgo.User{ID: "200"}}
	require.Equal(t, "200", discord.UserID(i))
	require.Nil(t, discord.MemberRoles(i))

	require.Empty(t, discord.UserID(&discordgo.Interaction{}))
}
