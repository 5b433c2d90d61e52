// Package discord delivers notifications through channel webhooks and
// manages guild scheduled events over the Discord REST API.
package discord

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"livelaunch/internal/domain"
)

const (
	maxEmbedTitle       = 256
	maxEmbedDescription = 4096
	maxImageBytes       = 8 << 20
)

type Config struct {
	Token   string
	Timeout time.Duration
}

type Client struct {
	session *discordgo.Session
	logger  *slog.Logger
}

func New(cfg Config, logger *slog.Logger) (*Client, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Client = &http.Client{Timeout: cfg.Timeout}
	session.UserAgent = "DiscordBot (https://github.com/bwmarrin/discordgo, LiveLaunch)"

	return &Client{
		session: session,
		logger:  logger.With("component", "discord"),
	}, nil
}

// Deliver executes the destination's webhook with msg.
func (c *Client) Deliver(ctx context.Context, dest domain.Destination, msg domain.Message) error {
	webhookID, token, err := ParseWebhookURL(dest.WebhookURL)
	if err != nil {
		return err
	}

	_, err = c.session.WebhookExecute(webhookID, token, false, webhookParams(msg), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("execute webhook: %w", mapError(err))
	}
	return nil
}

func (c *Client) CreateEvent(ctx context.Context, guildID string, event domain.ScheduledEvent) (string, error) {
	params := eventParams(event)
	if event.ImageURL != "" {
		image, err := c.fetchImage(ctx, event.ImageURL)
		if err != nil {
			c.logger.Debug("skipping event image", "url", event.ImageURL, "error", err)
		}
		params.Image = image
	}

	created, err := c.session.GuildScheduledEventCreate(guildID, params, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("create scheduled event: %w", mapError(err))
	}
	return created.ID, nil
}

func (c *Client) UpdateEvent(ctx context.Context, guildID, eventID string, event domain.ScheduledEvent) error {
	_, err := c.session.GuildScheduledEventEdit(guildID, eventID, eventParams(event), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("update scheduled event: %w", mapError(err))
	}
	return nil
}

func (c *Client) DeleteEvent(ctx context.Context, guildID, eventID string) error {
	if err := c.session.GuildScheduledEventDelete(guildID, eventID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("delete scheduled event: %w", mapError(err))
	}
	return nil
}

// ParseWebhookURL splits a webhook URL into its id and token.
func ParseWebhookURL(raw string) (id, token string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("parse webhook url: %w", err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, p := range parts {
		if p == "webhooks" && i+2 < len(parts) && parts[i+1] != "" && parts[i+2] != "" {
			return parts[i+1], parts[i+2], nil
		}
	}
	return "", "", fmt.Errorf("invalid webhook url %q", raw)
}

// mapError turns REST failures the caller acts on into domain sentinels.
func mapError(err error) error {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return err
	}

	if restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeMissingPermissions {
		return fmt.Errorf("%w: %w", domain.ErrForbidden, err)
	}
	if restErr.Response != nil {
		switch restErr.Response.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
		case http.StatusForbidden:
			return fmt.Errorf("%w: %w", domain.ErrForbidden, err)
		}
	}
	return err
}

func webhookParams(msg domain.Message) *discordgo.WebhookParams {
	params := &discordgo.WebhookParams{
		Content:   msg.Content,
		Username:  msg.Username,
		AvatarURL: msg.AvatarURL,
	}
	// Plain content messages rely on the platform's own link preview.
	if msg.Content != "" {
		return params
	}

	embed := &discordgo.MessageEmbed{
		Title:       clip(msg.Title, maxEmbedTitle),
		URL:         msg.URL,
		Description: clip(msg.Body, maxEmbedDescription),
		Color:       msg.Color,
	}
	if !msg.Timestamp.IsZero() {
		embed.Timestamp = msg.Timestamp.UTC().Format(time.RFC3339)
	}
	if msg.ImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: msg.ImageURL}
	}
	params.Embeds = []*discordgo.MessageEmbed{embed}
	return params
}

func eventParams(event domain.ScheduledEvent) *discordgo.GuildScheduledEventParams {
	start, end := event.Start, event.End
	return &discordgo.GuildScheduledEventParams{
		Name:               event.Name,
		Description:        event.Description,
		ScheduledStartTime: &start,
		ScheduledEndTime:   &end,
		PrivacyLevel:       discordgo.GuildScheduledEventPrivacyLevelGuildOnly,
		EntityType:         discordgo.GuildScheduledEventEntityTypeExternal,
		EntityMetadata: &discordgo.GuildScheduledEventEntityMetadata{
			Location: event.Location,
		},
	}
}

// fetchImage downloads an image and encodes it as a data URI for upload.
func (c *Client) fetchImage(ctx context.Context, imageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.session.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return "", err
	}
	if len(data) > maxImageBytes {
		return "", errors.New("image too large")
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		contentType = http.DetectContentType(data)
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
