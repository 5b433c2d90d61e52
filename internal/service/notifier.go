package service

import (
	"context"
	"errors"
	"log/slog"

	"livelaunch/internal/domain"
	"livelaunch/internal/metrics"
)

// Notifier selects what a guild should receive in a cycle and delivers it.
// Everything except the scheduled-event announcement is guarded by the ledger
// and marked only after a successful delivery.
type Notifier struct {
	deliverer Deliverer
	ledger    Ledger
	guilds    GuildStore
	logger    *slog.Logger
}

func NewNotifier(deliverer Deliverer, ledger Ledger, guilds GuildStore, logger *slog.Logger) *Notifier {
	return &Notifier{
		deliverer: deliverer,
		ledger:    ledger,
		guilds:    guilds,
		logger:    logger,
	}
}

// Notify runs every notification kind for one guild.
func (n *Notifier) Notify(ctx context.Context, c *Cycle, guild *domain.GuildPreference) {
	n.countdowns(ctx, c, guild)
	n.changes(ctx, c, guild)
	n.news(ctx, c, guild)
	n.streams(ctx, c, guild)
}

// EventCreated announces a new scheduled event when the guild asked for it.
func (n *Notifier) EventCreated(ctx context.Context, c *Cycle, guild *domain.GuildPreference, item domain.TimelineItem) {
	if !guild.Notify.ScheduledEvent {
		return
	}
	n.send(ctx, c, guild, domain.TrackNotifications, scheduledEventMessage(item))
}

func (n *Notifier) countdowns(ctx context.Context, c *Cycle, guild *domain.GuildPreference) {
	if len(guild.Countdowns) == 0 {
		return
	}
	for _, item := range c.Timeline {
		if !guild.Notify.KindEnabled(item.Kind) || !guild.AllowsItem(item) || domain.IsTerminalStatus(item.Status) {
			continue
		}
		for _, minutes := range guild.Countdowns {
			if !c.Crossed(item.Start, minutes) {
				continue
			}
			key := domain.CountdownKey(guild.GuildID, item.ID, minutes)
			n.sendOnce(ctx, c, guild, domain.TrackNotifications, key, countdownMessage(item, minutes))
		}
	}
}

func (n *Notifier) changes(ctx context.Context, c *Cycle, guild *domain.GuildPreference) {
	for _, item := range c.Timeline {
		change, ok := c.Changes[item.ID]
		if !ok || !guild.AllowsItem(item) {
			continue
		}
		if change.StatusChanged && guild.Notify.StatusEnabled(item.Status) {
			key := domain.StatusKey(guild.GuildID, item.ID, item.Status, change.StatusAt)
			n.sendOnce(ctx, c, guild, domain.TrackNotifications, key, statusMessage(item, change.Previous.Status))
		}
		if change.StartChanged && guild.Notify.T0Change {
			key := domain.T0ChangeKey(guild.GuildID, item.ID, item.Start)
			n.sendOnce(ctx, c, guild, domain.TrackNotifications, key, t0ChangeMessage(item, change.Previous.Start))
		}
	}
}

func (n *Notifier) news(ctx context.Context, c *Cycle, guild *domain.GuildPreference) {
	for _, article := range c.Articles {
		if !guild.NewsSites.Allows(article.NewsSite) || article.PublishedAt.Before(guild.News.Since) {
			continue
		}
		key := domain.NewsKey(guild.GuildID, article.ID)
		n.sendOnce(ctx, c, guild, domain.TrackNews, key, newsMessage(article))
	}
}

func (n *Notifier) streams(ctx context.Context, c *Cycle, guild *domain.GuildPreference) {
	for _, stream := range c.Streams {
		if item, ok := c.Item(stream.ItemID); ok && !guild.AllowsItem(item) {
			continue
		}
		key := domain.StreamKey(guild.GuildID, stream.VideoID)
		n.sendOnce(ctx, c, guild, domain.TrackMessages, key, streamMessage(stream))
	}
}

func (n *Notifier) sendOnce(
	ctx context.Context,
	c *Cycle,
	guild *domain.GuildPreference,
	track domain.Track,
	key domain.SentKey,
	msg domain.Message,
) {
	if !guild.Destination(track).Enabled() || ctx.Err() != nil {
		return
	}

	sent, err := n.ledger.HasSent(ctx, key)
	if err != nil {
		n.logger.Error("failed to check ledger",
			"guild_id", guild.GuildID,
			"kind", key.Kind,
			"item_id", key.ItemID,
			"error", err,
		)
		return
	}
	if sent {
		return
	}

	if !n.send(ctx, c, guild, track, msg) {
		return
	}

	if _, err := n.ledger.MarkSent(ctx, key); err != nil {
		n.logger.Error("failed to mark sent",
			"guild_id", guild.GuildID,
			"kind", key.Kind,
			"item_id", key.ItemID,
			"error", err,
		)
	}
}

func (n *Notifier) send(
	ctx context.Context,
	c *Cycle,
	guild *domain.GuildPreference,
	track domain.Track,
	msg domain.Message,
) bool {
	dest := guild.Destination(track)
	if !dest.Enabled() || ctx.Err() != nil {
		return false
	}

	err := n.deliverer.Deliver(ctx, dest, msg)
	metrics.RecordNotification(msg.Kind, err == nil)
	if err == nil {
		c.sent.Add(1)
		return true
	}

	c.failed.Add(1)
	n.logger.Warn("delivery failed",
		"guild_id", guild.GuildID,
		"track", track,
		"kind", msg.Kind,
		"error", err,
	)

	if errors.Is(err, domain.ErrNotFound) {
		n.logger.Info("webhook gone, clearing track", "guild_id", guild.GuildID, "track", track)
		if err := n.guilds.ClearTrack(ctx, guild.GuildID, track); err != nil {
			n.logger.Error("failed to clear track", "guild_id", guild.GuildID, "track", track, "error", err)
		}
		guild.Clear(track)
	}
	return false
}
