package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"livelaunch/internal/domain"
)

type TimelineSource interface {
	Upcoming(ctx context.Context) (launches, events []domain.TimelineItem, launchesOK, eventsOK bool)
}

type NewsSource interface {
	Articles(ctx context.Context) []domain.NewsArticle
}

type PresenceSource interface {
	Live(ctx context.Context, channelID string) (domain.LiveStream, bool)
}

type GuildStore interface {
	ListEnabled(ctx context.Context) ([]domain.GuildPreference, error)
	DisableScheduledEvents(ctx context.Context, guildID string) error
	ClearTrack(ctx context.Context, guildID string, track domain.Track) error
}

type ItemStore interface {
	List(ctx context.Context) (map[string]domain.ItemState, error)
	Upsert(ctx context.Context, state domain.ItemState) error
	DeleteExcept(ctx context.Context, kinds []domain.ItemKind, keep []string) (int64, error)
}

type Ledger interface {
	HasSent(ctx context.Context, key domain.SentKey) (bool, error)
	MarkSent(ctx context.Context, key domain.SentKey) (bool, error)
}

type EventLinkStore interface {
	ListByGuild(ctx context.Context, guildID string) ([]domain.ScheduledEventLink, error)
	Add(ctx context.Context, link domain.ScheduledEventLink) error
	Update(ctx context.Context, link domain.ScheduledEventLink) error
	Remove(ctx context.Context, guildID, itemID string) error
}

type PollStateStore interface {
	Get(ctx context.Context, pollerID string) (*domain.PollState, error)
	Update(ctx context.Context, state *domain.PollState) error
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Deliverer interface {
	Deliver(ctx context.Context, dest domain.Destination, msg domain.Message) error
}

type EventPlatform interface {
	CreateEvent(ctx context.Context, guildID string, event domain.ScheduledEvent) (string, error)
	UpdateEvent(ctx context.Context, guildID, eventID string, event domain.ScheduledEvent) error
	DeleteEvent(ctx context.Context, guildID, eventID string) error
}
