package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"livelaunch/internal/domain"
	"livelaunch/internal/metrics"
)

// EventSynchronizer mirrors timeline items as platform scheduled events,
// one link per (guild, item), at most ScheduledEventsCap links per guild.
type EventSynchronizer struct {
	platform EventPlatform
	links    EventLinkStore
	guilds   GuildStore
	notifier *Notifier
	logger   *slog.Logger
}

func NewEventSynchronizer(
	platform EventPlatform,
	links EventLinkStore,
	guilds GuildStore,
	notifier *Notifier,
	logger *slog.Logger,
) *EventSynchronizer {
	return &EventSynchronizer{
		platform: platform,
		links:    links,
		guilds:   guilds,
		notifier: notifier,
		logger:   logger,
	}
}

// Sync reconciles a guild's links with the cycle timeline. Existing links are
// removed or updated first, links past the cap are dropped latest-start first,
// then new items are linked in timeline order until the cap is reached. Links
// of a kind whose feed failed this cycle are left untouched.
func (s *EventSynchronizer) Sync(ctx context.Context, c *Cycle, guild *domain.GuildPreference) {
	links, err := s.links.ListByGuild(ctx, guild.GuildID)
	if err != nil {
		s.logger.Error("failed to list scheduled events", "guild_id", guild.GuildID, "error", err)
		return
	}

	kept := make([]domain.ScheduledEventLink, 0, len(links))
	for _, link := range links {
		if ctx.Err() != nil {
			return
		}

		item, ok := c.Item(link.ItemID)
		if !ok && guild.EventsEnabled() && !c.Covers(domain.KindOf(link.ItemID)) {
			kept = append(kept, link)
			continue
		}
		if !ok || !s.wanted(c, guild, item) {
			if !s.remove(ctx, c, guild, link) {
				kept = append(kept, link)
			}
			continue
		}

		if link.Differs(item) && !s.update(ctx, c, guild, link, item) {
			continue
		}
		kept = append(kept, link)
	}

	kept = s.trim(ctx, c, guild, kept)

	linked := make(map[string]struct{}, len(kept))
	for _, link := range kept {
		linked[link.ItemID] = struct{}{}
	}

	for _, item := range c.Timeline {
		if len(linked) >= guild.ScheduledEventsCap || ctx.Err() != nil {
			return
		}
		if _, ok := linked[item.ID]; ok || !s.wanted(c, guild, item) {
			continue
		}
		if s.create(ctx, c, guild, item) {
			linked[item.ID] = struct{}{}
		}
	}
}

// trim removes links past the guild cap, latest start first. A link whose
// removal fails keeps its slot.
func (s *EventSynchronizer) trim(
	ctx context.Context,
	c *Cycle,
	guild *domain.GuildPreference,
	kept []domain.ScheduledEventLink,
) []domain.ScheduledEventLink {
	excess := len(kept) - guild.ScheduledEventsCap
	if excess <= 0 {
		return kept
	}

	start := func(link domain.ScheduledEventLink) time.Time {
		if item, ok := c.Item(link.ItemID); ok {
			return item.Start
		}
		return link.Start
	}
	slices.SortStableFunc(kept, func(a, b domain.ScheduledEventLink) int {
		return start(b).Compare(start(a))
	})

	out := make([]domain.ScheduledEventLink, 0, len(kept))
	for _, link := range kept {
		if excess > 0 && ctx.Err() == nil && s.remove(ctx, c, guild, link) {
			excess--
			continue
		}
		out = append(out, link)
	}
	return out
}

// wanted reports whether the guild should have a scheduled event for item.
func (s *EventSynchronizer) wanted(c *Cycle, guild *domain.GuildPreference, item domain.TimelineItem) bool {
	if !guild.EventsEnabled() || !item.End.After(c.Now) || domain.IsTerminalStatus(item.Status) {
		return false
	}
	if item.IsLaunch() && !guild.Events.Launch || !item.IsLaunch() && !guild.Events.Event {
		return false
	}
	if item.PrimaryURL == nil && !guild.Events.NoURL {
		return false
	}
	return guild.AllowsItem(item)
}

func (s *EventSynchronizer) create(ctx context.Context, c *Cycle, guild *domain.GuildPreference, item domain.TimelineItem) bool {
	id, err := s.platform.CreateEvent(ctx, guild.GuildID, toScheduledEvent(item, c.Now))
	metrics.RecordScheduledEvent("create", err == nil)
	if err != nil {
		if gone(err) {
			s.logger.Warn("lost access to scheduled events, disabling",
				"guild_id", guild.GuildID,
				"error", err,
			)
			if err := s.guilds.DisableScheduledEvents(ctx, guild.GuildID); err != nil {
				s.logger.Error("failed to disable scheduled events", "guild_id", guild.GuildID, "error", err)
			}
			guild.Clear(domain.TrackEvents)
			return false
		}
		s.logger.Warn("failed to create scheduled event",
			"guild_id", guild.GuildID,
			"item_id", item.ID,
			"error", err,
		)
		return false
	}

	link := domain.ScheduledEventLink{
		EventID: id,
		GuildID: guild.GuildID,
		ItemID:  item.ID,
		Name:    item.Name,
		Start:   item.Start,
		End:     item.End,
	}
	if err := s.links.Add(ctx, link); err != nil {
		s.logger.Error("failed to store scheduled event, removing it",
			"guild_id", guild.GuildID,
			"item_id", item.ID,
			"event_id", id,
			"error", err,
		)
		if err := s.platform.DeleteEvent(ctx, guild.GuildID, id); err != nil && !gone(err) {
			s.logger.Error("orphaned scheduled event", "guild_id", guild.GuildID, "event_id", id, "error", err)
		}
		return false
	}

	c.created.Add(1)
	s.logger.Debug("scheduled event created", "guild_id", guild.GuildID, "item_id", item.ID, "event_id", id)
	s.notifier.EventCreated(ctx, c, guild, item)
	return true
}

// update pushes changed item fields. It returns false when the platform event
// no longer exists and the link was dropped.
func (s *EventSynchronizer) update(
	ctx context.Context,
	c *Cycle,
	guild *domain.GuildPreference,
	link domain.ScheduledEventLink,
	item domain.TimelineItem,
) bool {
	err := s.platform.UpdateEvent(ctx, guild.GuildID, link.EventID, toScheduledEvent(item, c.Now))
	metrics.RecordScheduledEvent("update", err == nil)

	switch {
	case err == nil:
		link.Name, link.Start, link.End = item.Name, item.Start, item.End
		if err := s.links.Update(ctx, link); err != nil {
			s.logger.Error("failed to update scheduled event link", "guild_id", guild.GuildID, "item_id", item.ID, "error", err)
		}
		c.updated.Add(1)
		return true
	case gone(err):
		s.logger.Info("scheduled event gone, unlinking", "guild_id", guild.GuildID, "event_id", link.EventID)
		if err := s.links.Remove(ctx, guild.GuildID, link.ItemID); err != nil {
			s.logger.Error("failed to remove scheduled event link", "guild_id", guild.GuildID, "item_id", link.ItemID, "error", err)
			return true
		}
		return false
	default:
		s.logger.Warn("failed to update scheduled event", "guild_id", guild.GuildID, "event_id", link.EventID, "error", err)
		return true
	}
}

// remove deletes the platform event and its link. It returns false when the
// link is still in place.
func (s *EventSynchronizer) remove(ctx context.Context, c *Cycle, guild *domain.GuildPreference, link domain.ScheduledEventLink) bool {
	err := s.platform.DeleteEvent(ctx, guild.GuildID, link.EventID)
	metrics.RecordScheduledEvent("delete", err == nil || gone(err))
	if err != nil && !gone(err) {
		s.logger.Warn("failed to delete scheduled event", "guild_id", guild.GuildID, "event_id", link.EventID, "error", err)
		return false
	}

	if err := s.links.Remove(ctx, guild.GuildID, link.ItemID); err != nil {
		s.logger.Error("failed to remove scheduled event link", "guild_id", guild.GuildID, "item_id", link.ItemID, "error", err)
		return false
	}

	c.deleted.Add(1)
	return true
}

// gone reports whether the platform considers the target absent or off-limits.
func gone(err error) bool {
	return errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrForbidden)
}
