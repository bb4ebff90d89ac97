package discord

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"osrs-bingo.backend/internal/domain/entities"
	domainerrors "osrs-bingo.backend/internal/domain/errors"
)

const requestTimeout = 15 * time.Second

// Client wraps a REST-only discordgo session. The gateway is never
// opened; interactions arrive over the HTTP endpoint instead.
type Client struct {
	session *discordgo.Session
}

func NewClient(session *discordgo.Session) *Client {
	return &Client{session: session}
}

// FetchGuildOwner returns a guild's owner id.
func (c *Client) FetchGuildOwner(ctx context.Context, guildID string) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	guild, err := c.session.Guild(guildID, discordgo.WithContext(reqCtx))
	if err != nil {
		return "", domainerrors.Upstream("Could not fetch guild information.", err)
	}
	return guild.OwnerID, nil
}

// ScheduleGameEvent creates the guild scheduled event announcing a game.
// Callers treat failures as non-fatal; the game exists either way.
func (c *Client) ScheduleGameEvent(ctx context.Context, guildID, name, description string, start, end time.Time) error {
	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	_, err := c.session.GuildScheduledEventCreate(guildID, NewGameEvent(name, description, start, end),
		discordgo.WithContext(reqCtx))
	if err != nil {
		return domainerrors.Upstream("Could not create the server event.", err)
	}
	return nil
}

// NewGameEvent builds the scheduled event payload for a bingo game.
// External events need a location and an end time.
func NewGameEvent(name, description string, start, end time.Time) *discordgo.GuildScheduledEventParams {
	return &discordgo.GuildScheduledEventParams{
		Name:               name + " Bingo",
		Description:        description,
		ScheduledStartTime: &start,
		ScheduledEndTime:   &end,
		PrivacyLevel:       discordgo.GuildScheduledEventPrivacyLevelGuildOnly,
		EntityType:         discordgo.GuildScheduledEventEntityTypeExternal,
		EntityMetadata:     &discordgo.GuildScheduledEventEntityMetadata{Location: "Gielinor"},
	}
}

// DownloadAttachment fetches a proof attachment and enforces the image
// content type and size cap. Attachment URLs are plain CDN links, so the
// fetch goes through the session's HTTP client rather than the REST API.
func (c *Client) DownloadAttachment(ctx context.Context, url string) ([]byte, string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.session.Client.Do(req)
	if err != nil {
		return nil, "", domainerrors.Upstream("Could not download the proof image.", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", domainerrors.Upstream("Could not download the proof image.",
			fmt.Errorf("attachment download failed: status=%d", resp.StatusCode))
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", domainerrors.Validation("Proof must be an image file.")
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, entities.MaxProofBytes+1))
	if err != nil {
		return nil, "", domainerrors.Upstream("Could not download the proof image.", err)
	}
	if len(data) > entities.MaxProofBytes {
		return nil, "", domainerrors.Validation("Proof image is too large (10MB max).")
	}
	return data, contentType, nil
}
