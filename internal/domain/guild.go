package domain

import (
	"strings"
	"time"
)

// Track is one of the independent destinations a guild can enable.
type Track string

const (
	TrackMessages      Track = "messages"
	TrackNews          Track = "news"
	TrackNotifications Track = "notifications"
	TrackEvents        Track = "events"
)

// Destination is where a track delivers to. Since is when the track was
// enabled; news published earlier is not backfilled.
type Destination struct {
	ChannelID  string
	WebhookURL string
	Since      time.Time
}

func (d Destination) Enabled() bool {
	return d.WebhookURL != ""
}

// IntFilter is a set of ids with include/exclude polarity. An empty set
// allows everything regardless of polarity.
type IntFilter struct {
	IDs     map[int]struct{}
	Exclude bool
}

func NewIntFilter(exclude bool, ids ...int) IntFilter {
	f := IntFilter{IDs: make(map[int]struct{}, len(ids)), Exclude: exclude}
	for _, id := range ids {
		f.IDs[id] = struct{}{}
	}
	return f
}

func (f IntFilter) Allows(id int) bool {
	if len(f.IDs) == 0 {
		return true
	}
	_, ok := f.IDs[id]
	return ok != f.Exclude
}

// NameFilter matches names case-insensitively.
type NameFilter struct {
	Names   map[string]struct{}
	Exclude bool
}

func NewNameFilter(exclude bool, names ...string) NameFilter {
	f := NameFilter{Names: make(map[string]struct{}, len(names)), Exclude: exclude}
	for _, n := range names {
		f.Names[strings.ToLower(n)] = struct{}{}
	}
	return f
}

func (f NameFilter) Allows(name string) bool {
	if len(f.Names) == 0 {
		return true
	}
	_, ok := f.Names[strings.ToLower(name)]
	return ok != f.Exclude
}

// NotificationToggles selects which notification types a guild receives on
// its notifications track.
type NotificationToggles struct {
	Launch         bool
	Event          bool
	T0Change       bool
	TBD            bool
	TBC            bool
	Go             bool
	Liftoff        bool
	Hold           bool
	Deploy         bool
	EndStatus      bool
	ScheduledEvent bool
}

// StatusEnabled reports whether the toggle for a launch status code is on.
func (t NotificationToggles) StatusEnabled(status int) bool {
	switch status {
	case StatusGo:
		return t.Go
	case StatusTBD:
		return t.TBD
	case StatusTBC:
		return t.TBC
	case StatusHold:
		return t.Hold
	case StatusInFlight:
		return t.Liftoff
	case StatusDeployed:
		return t.Deploy
	case StatusSuccess, StatusFailure, StatusPartialFailure:
		return t.EndStatus
	}
	return false
}

// KindEnabled reports whether notifications are wanted for an item kind.
func (t NotificationToggles) KindEnabled(kind ItemKind) bool {
	if kind == KindLaunch {
		return t.Launch
	}
	return t.Event
}

// EventToggles selects which timeline items become scheduled events.
type EventToggles struct {
	Launch bool
	Event  bool
	NoURL  bool // also mirror items without a stream URL
}

// GuildPreference is the per-guild subscription snapshot read at cycle start.
type GuildPreference struct {
	GuildID string

	Messages      Destination
	News          Destination
	Notifications Destination

	// ScheduledEventsCap is the maximum number of concurrently linked
	// scheduled events; zero disables the feature.
	ScheduledEventsCap int
	Events             EventToggles
	Notify             NotificationToggles

	Countdowns []int
	Agencies   IntFilter
	NewsSites  NameFilter
}

func (g GuildPreference) Destination(track Track) Destination {
	switch track {
	case TrackMessages:
		return g.Messages
	case TrackNews:
		return g.News
	case TrackNotifications:
		return g.Notifications
	}
	return Destination{}
}

func (g GuildPreference) EventsEnabled() bool {
	return g.ScheduledEventsCap > 0
}

// AllowsItem applies the agency filter. Events have no agency and always pass.
func (g GuildPreference) AllowsItem(item TimelineItem) bool {
	if !item.IsLaunch() {
		return true
	}
	return g.Agencies.Allows(item.AgencyID)
}

// Clear drops a track's destination from this snapshot.
func (g *GuildPreference) Clear(track Track) {
	switch track {
	case TrackMessages:
		g.Messages = Destination{}
	case TrackNews:
		g.News = Destination{}
	case TrackNotifications:
		g.Notifications = Destination{}
	case TrackEvents:
		g.ScheduledEventsCap = 0
	}
}
