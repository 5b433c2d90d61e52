package service

import (
	"sync/atomic"
	"time"

	"livelaunch/internal/domain"
	"livelaunch/internal/timeline"
)

// Change describes a status or T-0 transition still to be announced.
// Previous holds the status and start before the transition; StatusAt and
// StartAt are when each transition was first observed.
type Change struct {
	Previous      domain.ItemState
	StatusChanged bool
	StatusAt      time.Time
	StartChanged  bool
	StartAt       time.Time
}

// Cycle is the read-only snapshot every guild of one poll cycle works from.
// Only the counters are written concurrently.
type Cycle struct {
	ID    string
	Now   time.Time
	Since time.Time // previous poll, lower bound for countdown crossings

	Timeline []domain.TimelineItem
	Changes  map[string]Change
	Articles []domain.NewsArticle
	Streams  []domain.LiveStream

	index  map[string]domain.TimelineItem
	states map[string]domain.ItemState
	stale  map[domain.ItemKind]bool

	sent    atomic.Int64
	failed  atomic.Int64
	created atomic.Int64
	updated atomic.Int64
	deleted atomic.Int64
}

func newCycle(id string, now, since time.Time, items []domain.TimelineItem) *Cycle {
	return &Cycle{
		ID:       id,
		Now:      now,
		Since:    since,
		Timeline: items,
		Changes:  make(map[string]Change),
		index:    timeline.Index(items),
		states:   make(map[string]domain.ItemState),
		stale:    make(map[domain.ItemKind]bool),
	}
}

// markStale records that the feed for kind failed this cycle.
func (c *Cycle) markStale(kind domain.ItemKind) {
	c.stale[kind] = true
}

// Covers reports whether the timeline is authoritative for kind, so that a
// missing item of that kind has really left the feed.
func (c *Cycle) Covers(kind domain.ItemKind) bool {
	return !c.stale[kind]
}

// coveredKinds lists the kinds whose feed answered this cycle.
func (c *Cycle) coveredKinds() []domain.ItemKind {
	var kinds []domain.ItemKind
	for _, kind := range []domain.ItemKind{domain.KindLaunch, domain.KindEvent} {
		if c.Covers(kind) {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// complete reports whether every feed answered this cycle.
func (c *Cycle) complete() bool {
	return len(c.stale) == 0
}

// Item looks up a timeline item by id.
func (c *Cycle) Item(id string) (domain.TimelineItem, bool) {
	item, ok := c.index[id]
	return item, ok
}

// Crossed reports whether start-minutes fell in (Since, Now].
func (c *Cycle) Crossed(start time.Time, minutes int) bool {
	threshold := start.Add(-time.Duration(minutes) * time.Minute)
	return threshold.After(c.Since) && !threshold.After(c.Now)
}

// detectChanges compares the timeline against the stored item states and
// records the state to persist for each item. A transition stays pending for
// retry after it was first seen, so guilds whose delivery failed get it on a
// later cycle; the ledger keeps it to one delivery per guild. Items seen for
// the first time produce no change.
func (c *Cycle) detectChanges(prior map[string]domain.ItemState, retry time.Duration) {
	for _, item := range c.Timeline {
		state := domain.StateOf(item)
		prev, ok := prior[item.ID]
		if !ok {
			c.states[item.ID] = state
			continue
		}

		state.PrevStatus, state.StatusChangedAt = prev.PrevStatus, prev.StatusChangedAt
		state.PrevStart, state.StartChangedAt = prev.PrevStart, prev.StartChangedAt
		if item.IsLaunch() && prev.Status != 0 && prev.Status != item.Status {
			state.PrevStatus, state.StatusChangedAt = prev.Status, c.Now
		}
		if !prev.Start.Equal(item.Start) {
			state.PrevStart, state.StartChangedAt = prev.Start, c.Now
		}
		c.states[item.ID] = state

		change := Change{Previous: prev}
		if state.PrevStatus != 0 && state.PrevStatus != state.Status && c.Now.Sub(state.StatusChangedAt) <= retry {
			change.StatusChanged = true
			change.Previous.Status = state.PrevStatus
			change.StatusAt = state.StatusChangedAt
		}
		if !state.PrevStart.IsZero() && !state.PrevStart.Equal(state.Start) && c.Now.Sub(state.StartChangedAt) <= retry {
			change.StartChanged = true
			change.Previous.Start = state.PrevStart
			change.StartAt = state.StartChangedAt
		}
		if change.StatusChanged || change.StartChanged {
			c.Changes[item.ID] = change
		}
	}
}

// State returns the item state to persist for a timeline item.
func (c *Cycle) State(item domain.TimelineItem) domain.ItemState {
	if state, ok := c.states[item.ID]; ok {
		return state
	}
	return domain.StateOf(item)
}

func (c *Cycle) fillStats(stats *domain.CycleStats) {
	stats.Sent = int(c.sent.Load())
	stats.Failed = int(c.failed.Load())
	stats.EventsCreated = int(c.created.Load())
	stats.EventsUpdated = int(c.updated.Load())
	stats.EventsDeleted = int(c.deleted.Load())
}
