package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"osrs-bingo.backend/internal/domain/entities"
	domainerrors "osrs-bingo.backend/internal/domain/errors"
	"osrs-bingo.backend/internal/interfaces/discord"
	"osrs-bingo.backend/internal/interfaces/http/middleware"
	"osrs-bingo.backend/internal/interfaces/http/response"
	"osrs-bingo.backend/internal/usecases"
	"osrs-bingo.backend/pkg/logger"
)

const dateLayout = "2006-01-02"

// InteractionHandler is the single entry point for the platform's
// interaction webhook: ping, autocomplete and slash commands.
type InteractionHandler struct {
	membership   *usecases.MembershipUsecase
	games        *usecases.GameUsecase
	proofs       *usecases.ProofUsecase
	admin        *usecases.AdminUsecase
	autocomplete *usecases.AutocompleteUsecase
	appID        string
}

func NewInteractionHandler(
	membership *usecases.MembershipUsecase,
	games *usecases.GameUsecase,
	proofs *usecases.ProofUsecase,
	admin *usecases.AdminUsecase,
	autocomplete *usecases.AutocompleteUsecase,
	appID string,
) *InteractionHandler {
	return &InteractionHandler{
		membership:   membership,
		games:        games,
		proofs:       proofs,
		admin:        admin,
		autocomplete: autocomplete,
		appID:        appID,
	}
}

// Handle dispatches an interaction payload.
// POST /interactions
func (h *InteractionHandler) Handle(c *gin.Context) {
	var interaction discordgo.Interaction
	if err := c.ShouldBindJSON(&interaction); err != nil {
		response.Error(c, domainerrors.Validation("malformed interaction payload"))
		return
	}

	switch interaction.Type {
	case discordgo.InteractionPing:
		response.Success(c, http.StatusOK, discordgo.InteractionResponse{Type: discordgo.InteractionResponsePong})
	case discordgo.InteractionApplicationCommandAutocomplete:
		response.Success(c, http.StatusOK, h.handleAutocomplete(c.Request.Context(), &interaction))
	case discordgo.InteractionApplicationCommand:
		response.Success(c, http.StatusOK, h.handleCommand(c.Request.Context(), &interaction))
	default:
		response.Error(c, domainerrors.Validation("unsupported interaction type"))
	}
}

// handleCommand runs the command and converts any error into an
// ephemeral user-facing message. Nothing propagates to the transport.
func (h *InteractionHandler) handleCommand(ctx context.Context, i *discordgo.Interaction) discordgo.InteractionResponse {
	data, ok := i.Data.(discordgo.ApplicationCommandInteractionData)
	if !ok || i.GuildID == "" {
		return ephemeral("This command can only be used inside a server.")
	}

	content, flags, err := h.dispatch(ctx, i, data)
	if err != nil {
		middleware.ObserveCommand(data.Name, "error")
		logger.Warn(ctx, "command failed",
			zap.String("command", data.Name),
			zap.String("guild_id", i.GuildID),
			zap.Error(err))
		return ephemeral(domainerrors.UserMessage(err, "Something went wrong. Please try again later."))
	}
	middleware.ObserveCommand(data.Name, "ok")
	return discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content, Flags: flags},
	}
}

func (h *InteractionHandler) dispatch(ctx context.Context, i *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData) (string, discordgo.MessageFlags, error) {
	userID := discord.UserID(i)
	sub, opts := discord.Subcommand(data)

	switch data.Name {
	case "signup":
		return h.handleSignup(ctx, i, sub, opts)
	case "leave_team":
		return h.handleLeaveTeam(ctx, i.GuildID, userID)
	case "myteam":
		overview, err := h.membership.MyTeam(ctx, i.GuildID, userID)
		if err != nil {
			return "", 0, err
		}
		return renderMyTeam(overview), 0, nil
	case "list_teams":
		game, teams, err := h.membership.ListTeams(ctx, i.GuildID)
		if err != nil {
			return "", 0, err
		}
		return renderTeamList(game, teams), 0, nil
	case "listunpaired":
		agents, err := h.membership.ListUnpaired(ctx, i.GuildID)
		if err != nil {
			return "", 0, err
		}
		return renderFreeAgents(agents), 0, nil
	case "add_team_member":
		target := discord.OptionString(opts, "user")
		team, err := h.membership.AddTeamMember(ctx, i.GuildID, userID, target, discord.OptionString(opts, "timezone"))
		if err != nil {
			return "", 0, err
		}
		return "Added <@" + target + "> to team **" + team.Name + "**.", 0, nil
	case "view_proofs":
		audit, err := h.proofs.ViewProofs(ctx, i.GuildID,
			discord.OptionString(opts, "game"), discord.OptionString(opts, "team"))
		if err != nil {
			return "", 0, err
		}
		return renderProofAudit(audit), 0, nil
	case "admin":
		return h.handleAdmin(ctx, i, data, sub, opts)
	case "bingo":
		return h.handleBingo(ctx, i, data, sub, opts)
	case "setup":
		if err := h.admin.Setup(ctx, i.GuildID, userID); err != nil {
			return "", 0, err
		}
		return "Setup complete. The server owner is registered.", discordgo.MessageFlagsEphemeral, nil
	case "help":
		return renderHelp(), discordgo.MessageFlagsEphemeral, nil
	case "invite":
		return renderInvite(h.appID), discordgo.MessageFlagsEphemeral, nil
	default:
		return "", 0, domainerrors.NotFound("Unknown command.")
	}
}

func (h *InteractionHandler) handleSignup(ctx context.Context, i *discordgo.Interaction, sub string, opts []*discordgo.ApplicationCommandInteractionDataOption) (string, discordgo.MessageFlags, error) {
	userID := discord.UserID(i)
	timezone := discord.OptionString(opts, "timezone")

	switch sub {
	case "create_team":
		teamType := entities.TeamType(discord.OptionString(opts, "type"))
		team, err := h.membership.CreateTeam(ctx, i.GuildID, userID,
			discord.OptionString(opts, "team_name"), timezone, teamType)
		if err != nil {
			return "", 0, err
		}
		return "Team **" + team.Name + "** created. You are the captain.", 0, nil
	case "join_team":
		team, err := h.membership.JoinTeam(ctx, i.GuildID, userID,
			discord.OptionString(opts, "team_name"), timezone)
		if err != nil {
			return "", 0, err
		}
		return "You joined team **" + team.Name + "**.", 0, nil
	case "free_agent":
		username := ""
		if i.Member != nil && i.Member.User != nil {
			username = i.Member.User.Username
		}
		result, err := h.membership.JoinFreeAgentPool(ctx, i.GuildID, userID, username, timezone)
		if err != nil {
			return "", 0, err
		}
		if result.AssignedTeam != nil {
			return "You were placed on team **" + result.AssignedTeam.Name + "**.", 0, nil
		}
		return "All teams are full right now. You are in the free agent pool and will be placed when a spot opens.", 0, nil
	default:
		return "", 0, domainerrors.Validation("Unknown signup option.")
	}
}

func (h *InteractionHandler) handleLeaveTeam(ctx context.Context, guildID, userID string) (string, discordgo.MessageFlags, error) {
	result, err := h.membership.LeaveTeam(ctx, guildID, userID)
	if err != nil {
		return "", 0, err
	}
	switch result.Outcome {
	case usecases.LeaveDisbanded:
		return "You left and team **" + result.TeamName + "** was disbanded.", 0, nil
	case usecases.LeavePromoted:
		return "You left team **" + result.TeamName + "**. <@" + result.NewCaptainID + "> is the new captain.", 0, nil
	case usecases.LeaveLeft:
		return "You left team **" + result.TeamName + "**.", 0, nil
	case usecases.LeaveLeftPool:
		return "You left the free agent pool.", 0, nil
	default:
		return "You are not on a team or in the free agent pool.", discordgo.MessageFlagsEphemeral, nil
	}
}

func (h *InteractionHandler) handleAdmin(ctx context.Context, i *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData, sub string, opts []*discordgo.ApplicationCommandInteractionDataOption) (string, discordgo.MessageFlags, error) {
	if err := h.requireAdmin(ctx, i); err != nil {
		return "", 0, err
	}

	switch sub {
	case "add_role":
		roleID, roleName := discord.ResolvedRole(data, opts, "role")
		if roleID == "" {
			return "", 0, domainerrors.Validation("A role is required.")
		}
		if err := h.admin.AddRole(ctx, i.GuildID, discord.UserID(i), roleID, roleName); err != nil {
			return "", 0, err
		}
		return "**" + roleName + "** can now run admin commands.", discordgo.MessageFlagsEphemeral, nil
	case "remove_role":
		roleID, roleName := discord.ResolvedRole(data, opts, "role")
		if roleID == "" {
			return "", 0, domainerrors.Validation("A role is required.")
		}
		if err := h.admin.RemoveRole(ctx, i.GuildID, roleID); err != nil {
			return "", 0, err
		}
		return "**" + roleName + "** is no longer an admin role.", discordgo.MessageFlagsEphemeral, nil
	case "list_roles":
		roles, err := h.admin.ListRoles(ctx, i.GuildID)
		if err != nil {
			return "", 0, err
		}
		return renderAdminRoles(roles), discordgo.MessageFlagsEphemeral, nil
	default:
		return "", 0, domainerrors.Validation("Unknown admin option.")
	}
}

func (h *InteractionHandler) handleBingo(ctx context.Context, i *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData, sub string, opts []*discordgo.ApplicationCommandInteractionDataOption) (string, discordgo.MessageFlags, error) {
	userID := discord.UserID(i)
	gameName := discord.OptionString(opts, "game")

	switch sub {
	case "create_game":
		if err := h.requireAdmin(ctx, i); err != nil {
			return "", 0, err
		}
		spec, err := parseGameSpec(opts)
		if err != nil {
			return "", 0, err
		}
		game, err := h.games.CreateGame(ctx, i.GuildID, userID, spec)
		if err != nil {
			return "", 0, err
		}
		return renderGameCreated(game), 0, nil
	case "add_square":
		if err := h.requireAdmin(ctx, i); err != nil {
			return "", 0, err
		}
		square, err := h.games.AddSquare(ctx, i.GuildID, gameName,
			discord.OptionString(opts, "goal"), discord.OptionInt(opts, "points"))
		if err != nil {
			return "", 0, err
		}
		return renderSquareAdded(square), 0, nil
	case "join":
		team, game, err := h.games.JoinGame(ctx, i.GuildID, userID, gameName)
		if err != nil {
			return "", 0, err
		}
		return "Team **" + team.Name + "** joined **" + game.Name + "**. Good luck!", 0, nil
	case "submit":
		att := discord.ResolvedAttachment(data, opts, "proof")
		var proof *usecases.ProofAttachment
		if att != nil {
			proof = &usecases.ProofAttachment{
				URL:         att.URL,
				Filename:    att.Filename,
				ContentType: att.ContentType,
				Size:        att.Size,
			}
		}
		result, err := h.proofs.SubmitProof(ctx, i.GuildID, userID, gameName,
			discord.OptionString(opts, "square"), proof)
		if err != nil {
			return "", 0, err
		}
		return renderSubmitResult(userID, result), 0, nil
	case "verify":
		if err := h.requireAdmin(ctx, i); err != nil {
			return "", 0, err
		}
		square, team, err := h.proofs.VerifySquare(ctx, i.GuildID, userID, gameName,
			discord.OptionString(opts, "team"), discord.OptionString(opts, "square"))
		if err != nil {
			return "", 0, err
		}
		return renderVerified(square, team), 0, nil
	case "view":
		board, err := h.proofs.ViewBoard(ctx, i.GuildID, gameName, discord.OptionString(opts, "team"))
		if err != nil {
			return "", 0, err
		}
		return renderBoard(board), 0, nil
	case "view_square":
		history, err := h.proofs.ViewSquare(ctx, i.GuildID, userID, gameName,
			discord.OptionString(opts, "square"))
		if err != nil {
			return "", 0, err
		}
		return renderSquareHistory(history), 0, nil
	case "end_game":
		if err := h.requireAdmin(ctx, i); err != nil {
			return "", 0, err
		}
		game, err := h.games.EndGame(ctx, i.GuildID, userID, gameName,
			discord.OptionString(opts, "winner_team"))
		if err != nil {
			return "", 0, err
		}
		return renderGameEnded(game), 0, nil
	case "list_games":
		games, err := h.games.ListGames(ctx, i.GuildID, discord.OptionBool(opts, "all"))
		if err != nil {
			return "", 0, err
		}
		return renderGameList(games), 0, nil
	default:
		return "", 0, domainerrors.Validation("Unknown bingo option.")
	}
}

func (h *InteractionHandler) requireAdmin(ctx context.Context, i *discordgo.Interaction) error {
	ok, err := h.admin.IsAdmin(ctx, i.GuildID, discord.UserID(i), discord.MemberRoles(i))
	if err != nil {
		return err
	}
	if !ok {
		return domainerrors.Unauthorized("You need to be the server owner or hold an admin role to do that.")
	}
	return nil
}

func parseGameSpec(opts []*discordgo.ApplicationCommandInteractionDataOption) (*entities.GameSpec, error) {
	start, err := time.Parse(dateLayout, discord.OptionString(opts, "start_date"))
	if err != nil {
		return nil, domainerrors.Validation("Dates must be in YYYY-MM-DD format.")
	}
	end, err := time.Parse(dateLayout, discord.OptionString(opts, "end_date"))
	if err != nil {
		return nil, domainerrors.Validation("Dates must be in YYYY-MM-DD format.")
	}
	return &entities.GameSpec{
		Name:        discord.OptionString(opts, "name"),
		Description: discord.OptionString(opts, "description"),
		BoardSize:   discord.OptionInt(opts, "board_size"),
		StartDate:   start,
		EndDate:     end,
		MaxTeams:    discord.OptionInt(opts, "max_teams"),
		MinTeamSize: discord.OptionInt(opts, "min_team_size"),
		MaxTeamSize: discord.OptionInt(opts, "max_team_size"),
	}, nil
}

// handleAutocomplete suggests values for the focused option. Failures
// degrade to an empty list.
func (h *InteractionHandler) handleAutocomplete(ctx context.Context, i *discordgo.Interaction) discordgo.InteractionResponse {
	var choices []usecases.Choice
	data, ok := i.Data.(discordgo.ApplicationCommandInteractionData)
	if ok && i.GuildID != "" {
		_, opts := discord.Subcommand(data)
		if focused := discord.FocusedOption(opts); focused != nil {
			partial, _ := focused.Value.(string)
			var err error
			switch focused.Name {
			case "game":
				choices, err = h.autocomplete.Games(ctx, i.GuildID, partial)
			case "team_name":
				choices, err = h.autocomplete.TeamsWithRoom(ctx, i.GuildID, partial)
			case "team":
				choices, err = h.autocomplete.ParticipatingTeams(ctx, i.GuildID, partial)
			case "square":
				choices, err = h.autocomplete.Squares(ctx, i.GuildID, discord.UserID(i), partial)
			case "winner_team":
				choices, err = h.autocomplete.WinnerTeams(ctx, i.GuildID, partial)
			}
			if err != nil {
				logger.Warn(ctx, "autocomplete failed",
					zap.String("option", focused.Name), zap.Error(err))
				choices = nil
			}
		}
	}

	wire := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(choices))
	for _, ch := range choices {
		wire = append(wire, &discordgo.ApplicationCommandOptionChoice{Name: ch.Name, Value: ch.Value})
	}
	return discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: wire},
	}
}

func ephemeral(content string) discordgo.InteractionResponse {
	return discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content, Flags: discordgo.MessageFlagsEphemeral},
	}
}
