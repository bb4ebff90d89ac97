package handlers

import (
	"fmt"
	"strings"

	"osrs-bingo.backend/internal/domain/entities"
	"osrs-bingo.backend/internal/domain/repositories"
	"osrs-bingo.backend/internal/usecases"
)

// Board glyphs: verified, submitted but unverified, no submission yet,
// and a cell with no square assigned.
const (
	glyphVerified  = "✅"
	glyphSubmitted = "❌"
	glyphPending   = "⬜"
	glyphEmpty     = "🔳"
)

func renderMyTeam(o *usecases.TeamOverview) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** — %s\n", o.Team.Name, o.Game.Name)
	fmt.Fprintf(&b, "Captain: <@%s>", o.Team.CaptainID)
	if o.Team.CaptainTimezone != "" {
		fmt.Fprintf(&b, " (%s)", o.Team.CaptainTimezone)
	}
	b.WriteString("\n")
	if len(o.Members) > 0 {
		b.WriteString("Members:\n")
		for _, m := range o.Members {
			fmt.Fprintf(&b, "- <@%s>", m.UserID)
			if m.Timezone != "" {
				fmt.Fprintf(&b, " (%s)", m.Timezone)
			}
			b.WriteString("\n")
		}
	}
	if len(o.CompletedGoals) > 0 {
		fmt.Fprintf(&b, "Completed squares (%d): %s\n", len(o.CompletedGoals), strings.Join(o.CompletedGoals, ", "))
	} else {
		b.WriteString("No verified squares yet.\n")
	}
	return b.String()
}

func renderTeamList(game *entities.Game, teams []*repositories.TeamWithSize) string {
	if len(teams) == 0 {
		return "No teams have signed up for **" + game.Name + "** yet."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Teams in **%s** (%d/%d):\n", game.Name, len(teams), game.MaxTeams)
	for _, t := range teams {
		size := entities.EffectiveSize(t.MemberCount)
		fmt.Fprintf(&b, "- **%s** (%d/%d) — captain <@%s>\n", t.Team.Name, size, game.MaxTeamSize, t.Team.CaptainID)
	}
	return b.String()
}

func renderFreeAgents(agents []*entities.FreeAgent) string {
	if len(agents) == 0 {
		return "The free agent pool is empty."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Free agents waiting for a team (%d):\n", len(agents))
	for _, a := range agents {
		fmt.Fprintf(&b, "- <@%s>", a.UserID)
		if a.Timezone != "" {
			fmt.Fprintf(&b, " (%s)", a.Timezone)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderProofAudit(audit *usecases.ProofAudit) string {
	if len(audit.Records) == 0 {
		return "**" + audit.Team.Name + "** has not submitted any proofs for **" + audit.Game.Name + "**."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Proofs submitted by **%s** in **%s**:\n", audit.Team.Name, audit.Game.Name)
	for _, r := range audit.Records {
		c := r.Completion
		fmt.Fprintf(&b, "- **%s** by <@%s> <t:%d:R>", r.GoalName, c.SubmittedBy, c.SubmittedAt.Unix())
		if c.Verified {
			b.WriteString(" " + glyphVerified)
			if c.VerifiedBy.Valid {
				fmt.Fprintf(&b, " verified by <@%s>", c.VerifiedBy.String)
			}
		} else {
			b.WriteString(" (pending)")
		}
		fmt.Fprintf(&b, " — %s\n", c.ProofURL)
	}
	return b.String()
}

func renderAdminRoles(roles []*entities.AdminRole) string {
	if len(roles) == 0 {
		return "No admin roles are registered. Only the server owner can run admin commands."
	}
	var b strings.Builder
	b.WriteString("Registered admin roles:\n")
	for _, r := range roles {
		fmt.Fprintf(&b, "- **%s** (added by <@%s>)\n", r.RoleName, r.AddedBy)
	}
	return b.String()
}

func renderGameCreated(game *entities.Game) string {
	return fmt.Sprintf(
		"Bingo game **%s** created!\nBoard: %dx%d · Teams: up to %d of %d-%d players\nRuns <t:%d:D> to <t:%d:D>.",
		game.Name, game.BoardSize, game.BoardSize,
		game.MaxTeams, game.MinTeamSize, game.MaxTeamSize,
		game.StartDate.Unix(), game.EndDate.Unix(),
	)
}

func renderSquareAdded(square *entities.Square) string {
	msg := fmt.Sprintf("Added **%s** at (%d,%d)", square.GoalName, square.PositionX, square.PositionY)
	if square.Points > 0 {
		msg += fmt.Sprintf(" worth %d points", square.Points)
	}
	return msg + "."
}

func renderSubmitResult(userID string, r *usecases.SubmitResult) string {
	return fmt.Sprintf(
		"Proof for **%s** submitted! This is <@%s>'s %s submission for this square (%d total for **%s**).\n%s",
		r.Square.GoalName, userID, usecases.OrdinalSuffix(r.UserOrdinal),
		r.TeamTotal, r.Team.Name, r.ProofURL,
	)
}

func renderVerified(square *entities.Square, team *entities.Team) string {
	return fmt.Sprintf("%s **%s** verified for team **%s**!", glyphVerified, square.GoalName, team.Name)
}

func renderBoard(v *usecases.BoardView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** board for team **%s**:\n", v.Game.Name, v.Team.Name)
	goalLine := 1
	var goals []string
	for _, row := range v.Cells {
		for _, cell := range row {
			switch cell.Status {
			case usecases.CellVerified:
				b.WriteString(glyphVerified)
			case usecases.CellSubmitted:
				b.WriteString(glyphSubmitted)
			case usecases.CellPending:
				b.WriteString(glyphPending)
			default:
				b.WriteString(glyphEmpty)
			}
			if cell.Square != nil {
				goals = append(goals, fmt.Sprintf("%d. (%d,%d) %s", goalLine, cell.Square.PositionX, cell.Square.PositionY, cell.Square.GoalName))
				goalLine++
			}
		}
		b.WriteString("\n")
	}
	b.WriteString(glyphVerified + " verified · " + glyphSubmitted + " awaiting verification · " + glyphPending + " open · " + glyphEmpty + " no goal\n")
	if len(goals) > 0 {
		b.WriteString(strings.Join(goals, "\n"))
	}
	return b.String()
}

func renderSquareHistory(h *usecases.SquareHistory) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** (%d,%d) — team **%s**\n",
		h.Square.GoalName, h.Square.PositionX, h.Square.PositionY, h.Team.Name)
	if len(h.Completions) == 0 {
		b.WriteString("No submissions yet.")
		return b.String()
	}
	for _, c := range h.Completions {
		fmt.Fprintf(&b, "- <@%s> <t:%d:R>", c.SubmittedBy, c.SubmittedAt.Unix())
		if c.Verified {
			b.WriteString(" " + glyphVerified)
		} else {
			b.WriteString(" (pending)")
		}
		fmt.Fprintf(&b, " — %s\n", c.ProofURL)
	}
	return b.String()
}

func renderGameEnded(game *entities.Game) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** has ended!", game.Name)
	if game.WinnerTeamName.Valid {
		fmt.Fprintf(&b, "\n🏆 Congratulations to team **%s**", game.WinnerTeamName.String)
		if len(game.WinnerTeamMembers) > 0 {
			fmt.Fprintf(&b, ": %s", strings.Join(game.WinnerTeamMembers, " "))
		}
		b.WriteString("!")
	}
	return b.String()
}

func renderGameList(games []*entities.Game) string {
	if len(games) == 0 {
		return "No bingo games have been created in this server."
	}
	var b strings.Builder
	b.WriteString("Bingo games:\n")
	for _, g := range games {
		state := "ended"
		if g.Active {
			state = "active"
		}
		fmt.Fprintf(&b, "- **%s** (%s) <t:%d:D> to <t:%d:D>", g.Name, state, g.StartDate.Unix(), g.EndDate.Unix())
		if g.WinnerTeamName.Valid {
			fmt.Fprintf(&b, " — won by **%s**", g.WinnerTeamName.String)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderHelp() string {
	return strings.Join([]string{
		"**Bingo bot commands**",
		"`/signup create_team|join_team|free_agent` — create or join a team, or enter the free agent pool",
		"`/leave_team` — leave your team or the free agent pool",
		"`/myteam` — your team, roster and verified squares",
		"`/list_teams` — every team in the current game",
		"`/listunpaired` — free agents still waiting for a team",
		"`/add_team_member` — (captains) add a user to your team",
		"`/bingo join` — enter your team into the current game",
		"`/bingo view` — a team's board",
		"`/bingo view_square` — your team's submissions for one square",
		"`/bingo submit` — submit proof for a square",
		"`/bingo list_games` — recent games",
		"`/view_proofs` — a team's full submission history",
		"",
		"**Admin**",
		"`/bingo create_game` · `/bingo add_square` · `/bingo verify` · `/bingo end_game`",
		"`/admin add_role|remove_role|list_roles` — manage who counts as admin",
		"`/setup` — (owner) register the server owner",
	}, "\n")
}

func renderInvite(appID string) string {
	return "Invite me to your server:\n" +
		"https://discord.com/oauth2/authorize?client_id=" + appID +
		"&permissions=2147502080&scope=bot%20applications.commands"
}
