// Command register-commands pushes the bot's slash command definitions
// to Discord. Run it once after deploying, and again whenever the
// command surface changes.
package main

import (
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	"osrs-bingo.backend/internal/config"
)

func minv(v float64) *float64 { return &v }

func gameOption(required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Name:         "game",
		Description:  "Name of the bingo game (defaults to the active game)",
		Type:         discordgo.ApplicationCommandOptionString,
		Required:     required,
		Autocomplete: true,
	}
}

func timezoneOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Name:        "timezone",
		Description: "Your timezone (e.g. EST, GMT+2)",
		Type:        discordgo.ApplicationCommandOptionString,
		Required:    true,
	}
}

func squareOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Name:         "square",
		Description:  "Board square, as coordinates or goal name",
		Type:         discordgo.ApplicationCommandOptionString,
		Required:     true,
		Autocomplete: true,
	}
}

func teamOption(description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Name:         "team",
		Description:  description,
		Type:         discordgo.ApplicationCommandOptionString,
		Required:     required,
		Autocomplete: true,
	}
}

func commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "signup",
			Description: "Sign up for the active bingo game",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "create_team",
					Description: "Create a new team and become its captain",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "team_name", Description: "Name of the new team", Type: discordgo.ApplicationCommandOptionString, Required: true},
						timezoneOption(),
						{
							Name:        "type",
							Description: "Team type",
							Type:        discordgo.ApplicationCommandOptionString,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "Team", Value: "team"},
								{Name: "Partner", Value: "partner"},
								{Name: "Solo", Value: "solo_team"},
							},
						},
					},
				},
				{
					Name:        "join_team",
					Description: "Join an existing team",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "team_name", Description: "Team to join", Type: discordgo.ApplicationCommandOptionString, Required: true, Autocomplete: true},
						timezoneOption(),
					},
				},
				{
					Name:        "free_agent",
					Description: "Join the free agent pool and get placed automatically",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options:     []*discordgo.ApplicationCommandOption{timezoneOption()},
				},
			},
		},
		{
			Name:        "leave_team",
			Description: "Leave your team or the free agent pool",
		},
		{
			Name:        "myteam",
			Description: "Show your team, its roster and verified goals",
		},
		{
			Name:        "list_teams",
			Description: "List all teams in the active game",
		},
		{
			Name:        "listunpaired",
			Description: "List users waiting in the free agent pool",
		},
		{
			Name:        "add_team_member",
			Description: "Add a user to your team (captains only)",
			Options: []*discordgo.ApplicationCommandOption{
				{Name: "user", Description: "User to add", Type: discordgo.ApplicationCommandOptionUser, Required: true},
				timezoneOption(),
			},
		},
		{
			Name:        "view_proofs",
			Description: "Show a team's full proof submission history",
			Options: []*discordgo.ApplicationCommandOption{
				gameOption(false),
				teamOption("Team to audit (defaults to your own)", false),
			},
		},
		{
			Name:        "admin",
			Description: "Manage which roles can run admin commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "add_role",
					Description: "Allow a role to run admin commands",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "role", Description: "Role to grant", Type: discordgo.ApplicationCommandOptionRole, Required: true},
					},
				},
				{
					Name:        "remove_role",
					Description: "Revoke a role's admin access",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "role", Description: "Role to revoke", Type: discordgo.ApplicationCommandOptionRole, Required: true},
					},
				},
				{
					Name:        "list_roles",
					Description: "List the registered admin roles",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
			},
		},
		{
			Name:        "bingo",
			Description: "Play and manage bingo games",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "create_game",
					Description: "Create a new bingo game (admins only)",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "name", Description: "Name of the bingo game", Type: discordgo.ApplicationCommandOptionString, Required: true},
						{Name: "start_date", Description: "Start date (YYYY-MM-DD)", Type: discordgo.ApplicationCommandOptionString, Required: true},
						{Name: "end_date", Description: "End date (YYYY-MM-DD)", Type: discordgo.ApplicationCommandOptionString, Required: true},
						{Name: "max_teams", Description: "Maximum number of teams", Type: discordgo.ApplicationCommandOptionInteger, Required: true, MinValue: minv(1), MaxValue: 100},
						{Name: "min_team_size", Description: "Minimum players per team", Type: discordgo.ApplicationCommandOptionInteger, Required: true, MinValue: minv(1), MaxValue: 10},
						{Name: "max_team_size", Description: "Maximum players per team", Type: discordgo.ApplicationCommandOptionInteger, Required: true, MinValue: minv(1), MaxValue: 999},
						{Name: "description", Description: "Description of the bingo game", Type: discordgo.ApplicationCommandOptionString},
						{Name: "board_size", Description: "Board size (3-10)", Type: discordgo.ApplicationCommandOptionInteger, MinValue: minv(3), MaxValue: 10},
					},
				},
				{
					Name:        "add_square",
					Description: "Add a goal to the board (admins only)",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "goal", Description: "Goal to achieve (e.g. 'Get a Fire cape')", Type: discordgo.ApplicationCommandOptionString, Required: true},
						{Name: "points", Description: "Points for completing this goal", Type: discordgo.ApplicationCommandOptionInteger, MinValue: minv(1)},
						gameOption(false),
					},
				},
				{
					Name:        "join",
					Description: "Enter your team into a game (captains only)",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options:     []*discordgo.ApplicationCommandOption{gameOption(false)},
				},
				{
					Name:        "submit",
					Description: "Submit proof for completing a square",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						squareOption(),
						{Name: "proof", Description: "Screenshot proving the completion", Type: discordgo.ApplicationCommandOptionAttachment, Required: true},
						gameOption(false),
					},
				},
				{
					Name:        "verify",
					Description: "Verify a team's submission (admins only)",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						teamOption("Team whose submission to verify", true),
						squareOption(),
						gameOption(false),
					},
				},
				{
					Name:        "view",
					Description: "View a team's bingo board",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						teamOption("Team to view (defaults to your own)", false),
						gameOption(false),
					},
				},
				{
					Name:        "view_square",
					Description: "View the submission history of one square",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						squareOption(),
						gameOption(false),
					},
				},
				{
					Name:        "end_game",
					Description: "End a game and tear down its teams (admins only)",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "winner_team", Description: "Winning team to announce", Type: discordgo.ApplicationCommandOptionString, Autocomplete: true},
						gameOption(false),
					},
				},
				{
					Name:        "list_games",
					Description: "List bingo games in this server",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{Name: "all", Description: "Include ended games", Type: discordgo.ApplicationCommandOptionBoolean},
					},
				},
			},
		},
		{
			Name:        "setup",
			Description: "Register the server owner with the bot",
		},
		{
			Name:        "help",
			Description: "Show the list of bot commands",
		},
		{
			Name:        "invite",
			Description: "Get the bot's invite link",
		},
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if cfg.Discord.AppID == "" || cfg.Discord.BotToken == "" {
		log.Fatal("DISCORD_APP_ID and DISCORD_BOT_TOKEN are required")
	}

	session, err := discordgo.New("Bot " + cfg.Discord.BotToken)
	if err != nil {
		log.Fatalf("failed to create discord session: %v", err)
	}

	registered, err := session.ApplicationCommandBulkOverwrite(cfg.Discord.AppID, "", commands())
	if err != nil {
		log.Fatalf("command registration failed: %v", err)
	}

	log.Printf("registered %d commands for application %s", len(registered), cfg.Discord.AppID)
	log.Printf("invite: https://discord.com/oauth2/authorize?client_id=%s&permissions=2147502080&scope=bot%%20applications.commands", cfg.Discord.AppID)
}
