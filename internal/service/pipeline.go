package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"livelaunch/internal/config"
	"livelaunch/internal/domain"
	"livelaunch/internal/metrics"
	"livelaunch/internal/source/youtube"
	"livelaunch/internal/timeline"
)

const (
	PollerID = "livelaunch"

	persistTimeout = 30 * time.Second
)

type Pipeline struct {
	timeline  TimelineSource
	news      NewsSource
	presence  PresenceSource
	channels  []string
	guilds    GuildStore
	items     ItemStore
	pollState PollStateStore
	txManager TransactionManager
	notifier  *Notifier
	events    *EventSynchronizer
	logger    *slog.Logger
	config    config.PollConfig
	now       func() time.Time
}

func NewPipeline(
	timelineSource TimelineSource,
	news NewsSource,
	presence PresenceSource,
	channels []string,
	guilds GuildStore,
	items ItemStore,
	pollState PollStateStore,
	txManager TransactionManager,
	notifier *Notifier,
	events *EventSynchronizer,
	logger *slog.Logger,
	cfg config.PollConfig,
) *Pipeline {
	return &Pipeline{
		timeline:  timelineSource,
		news:      news,
		presence:  presence,
		channels:  channels,
		guilds:    guilds,
		items:     items,
		pollState: pollState,
		txManager: txManager,
		notifier:  notifier,
		events:    events,
		logger:    logger,
		config:    cfg,
		now:       time.Now,
	}
}

// Poll runs one cycle: fetch all feeds, build the timeline, notify and sync
// every guild, then persist item states and the poll timestamp. Per-guild
// work stops when ctx is done; whatever was delivered stays recorded.
func (p *Pipeline) Poll(ctx context.Context) (*domain.CycleStats, error) {
	startTime := time.Now()
	now := p.now().UTC()
	cycleID := uuid.NewString()
	logger := p.logger.With("cycle_id", cycleID)

	logger.Info("starting poll cycle", "guild_workers", p.config.Workers)

	feed, articles, live := p.fetch(ctx)
	launches, events := feed.launches, feed.events
	items := timeline.Build(launches, events, p.config.MaxItems)

	stats := &domain.CycleStats{
		CycleID:       cycleID,
		Launches:      len(launches),
		Events:        len(events),
		TimelineItems: len(items),
		Articles:      len(articles),
	}
	defer func() {
		stats.Duration = time.Since(startTime)
		metrics.ObserveCycle(stats.Duration, stats.Skipped)
	}()

	guilds, err := p.guilds.ListEnabled(ctx)
	if err != nil {
		stats.Skipped = true
		return stats, fmt.Errorf("list guilds: %w", err)
	}
	stats.Guilds = len(guilds)

	state := p.loadPollState(ctx, logger)
	c := newCycle(cycleID, now, p.since(state, now), items)
	if !feed.launchesOK {
		c.markStale(domain.KindLaunch)
	}
	if !feed.eventsOK {
		c.markStale(domain.KindEvent)
	}
	if !c.complete() {
		logger.Warn("feed failed, keeping its items as they were",
			"launches_ok", feed.launchesOK,
			"events_ok", feed.eventsOK,
		)
	}
	c.Articles = articles
	c.Streams = p.streams(items, live, now)
	stats.Streams = len(c.Streams)

	hasTimeline := len(items) > 0
	if !hasTimeline {
		logger.Warn("no timeline items this cycle, keeping prior state")
	}

	prior, err := p.items.List(ctx)
	priorLoaded := err == nil
	if priorLoaded {
		c.detectChanges(prior, p.config.RetryWindow)
	} else {
		logger.Error("failed to load item states", "error", err)
	}

	p.fanOut(ctx, c, guilds, hasTimeline)
	c.fillStats(stats)

	// Item states are written even after the deadline so each transition is
	// detected once. Guilds the fan-out missed get it while it is pending.
	if hasTimeline && priorLoaded {
		persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
		defer cancel()
		if err := p.persistItems(persistCtx, c); err != nil {
			logger.Error("failed to persist item states", "error", err)
		}
	}

	if err := ctx.Err(); err != nil {
		logger.Warn("poll cycle deadline reached, remaining guilds skipped", "error", err)
		return stats, fmt.Errorf("fan out: %w", err)
	}

	// A failed feed leaves the countdown window open so its thresholds are
	// caught on the next cycle.
	if hasTimeline && c.complete() {
		if err := p.updatePollState(ctx, state, now); err != nil {
			return stats, fmt.Errorf("update poll state: %w", err)
		}
	}

	logger.Info("poll cycle completed",
		"launches", stats.Launches,
		"events", stats.Events,
		"timeline_items", stats.TimelineItems,
		"articles", stats.Articles,
		"streams", stats.Streams,
		"guilds", stats.Guilds,
		"sent", c.sent.Load(),
		"failed", c.failed.Load(),
		"events_created", c.created.Load(),
		"events_updated", c.updated.Load(),
		"events_deleted", c.deleted.Load(),
		"duration", time.Since(startTime),
	)

	return stats, nil
}

type timelineFeed struct {
	launches, events     []domain.TimelineItem
	launchesOK, eventsOK bool
}

// fetch queries the three feeds concurrently. Adapters never fail; an empty
// result means no update.
func (p *Pipeline) fetch(ctx context.Context) (feed timelineFeed, articles []domain.NewsArticle, live []domain.LiveStream) {
	var g errgroup.Group

	g.Go(func() error {
		feed.launches, feed.events, feed.launchesOK, feed.eventsOK = p.timeline.Upcoming(ctx)
		metrics.RecordFeedItems("ll2", len(feed.launches)+len(feed.events))
		return nil
	})
	g.Go(func() error {
		articles = p.news.Articles(ctx)
		metrics.RecordFeedItems("snapi", len(articles))
		return nil
	})
	g.Go(func() error {
		for _, channelID := range p.channels {
			if stream, ok := p.presence.Live(ctx, channelID); ok {
				live = append(live, stream)
			}
		}
		metrics.RecordFeedItems("youtube", len(live))
		return nil
	})

	_ = g.Wait()
	return feed, articles, live
}

// streams collects YouTube videos of items starting around now plus the
// channels reported live, one entry per video.
func (p *Pipeline) streams(items []domain.TimelineItem, live []domain.LiveStream, now time.Time) []domain.LiveStream {
	seen := make(map[string]struct{})
	var out []domain.LiveStream

	add := func(s domain.LiveStream) {
		if _, ok := seen[s.VideoID]; ok {
			return
		}
		seen[s.VideoID] = struct{}{}
		out = append(out, s)
	}

	for _, item := range items {
		if item.PrimaryURL == nil || item.Start.Sub(now).Abs() > p.config.StreamWindow {
			continue
		}
		videoID, ok := youtube.VideoID(*item.PrimaryURL)
		if !ok {
			continue
		}
		add(domain.LiveStream{
			VideoID:     videoID,
			Title:       item.Name,
			ChannelName: item.AgencyName,
			ItemID:      item.ID,
		})
	}
	for _, s := range live {
		add(s)
	}
	return out
}

// fanOut processes guilds in parallel. Timeline-driven work is skipped when
// the timeline is empty.
func (p *Pipeline) fanOut(ctx context.Context, c *Cycle, guilds []domain.GuildPreference, hasTimeline bool) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(p.config.Workers, 1))

	for i := range guilds {
		guild := guilds[i]
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			p.notifier.Notify(gctx, c, &guild)
			if hasTimeline {
				p.events.Sync(gctx, c, &guild)
			}
			return nil
		})
	}

	_ = g.Wait()
}

// persistItems stores the state of every timeline item and drops rows of
// items that left a feed. Rows of a kind whose feed failed are kept.
func (p *Pipeline) persistItems(ctx context.Context, c *Cycle) error {
	keep := make([]string, len(c.Timeline))
	for i, item := range c.Timeline {
		keep[i] = item.ID
	}
	kinds := c.coveredKinds()

	return p.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		for _, item := range c.Timeline {
			if err := p.items.Upsert(txCtx, c.State(item)); err != nil {
				return fmt.Errorf("upsert item %s: %w", item.ID, err)
			}
		}
		if len(kinds) == 0 {
			return nil
		}
		if _, err := p.items.DeleteExcept(txCtx, kinds, keep); err != nil {
			return fmt.Errorf("delete stale items: %w", err)
		}
		return nil
	})
}

func (p *Pipeline) loadPollState(ctx context.Context, logger *slog.Logger) *domain.PollState {
	state, err := p.pollState.Get(ctx, PollerID)
	if err != nil {
		logger.Error("failed to load poll state", "error", err)
		return &domain.PollState{PollerID: PollerID}
	}
	return state
}

// since picks the lower bound of the countdown window: the last completed
// poll, but never further back than CountdownMaxLookback.
func (p *Pipeline) since(state *domain.PollState, now time.Time) time.Time {
	if state.LastPollAt.IsZero() {
		return now.Add(-min(p.config.Interval, p.config.CountdownMaxLookback))
	}
	floor := now.Add(-p.config.CountdownMaxLookback)
	if state.LastPollAt.Before(floor) {
		return floor
	}
	return state.LastPollAt
}

func (p *Pipeline) updatePollState(ctx context.Context, state *domain.PollState, now time.Time) error {
	state.PollerID = PollerID
	state.LastPollAt = now
	state.TotalCycles++
	return p.pollState.Update(ctx, state)
}
