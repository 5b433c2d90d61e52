package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"livelaunch/internal/domain"
)

type EventLinkStore struct {
	db *sqlx.DB
}

func NewEventLinkStore(db *sqlx.DB) *EventLinkStore {
	return &EventLinkStore{db: db}
}

func (s *EventLinkStore) ListByGuild(ctx context.Context, guildID string) ([]domain.ScheduledEventLink, error) {
	query := `
		SELECT scheduled_event_id, guild_id, item_id, name, start_at, end_at
		FROM scheduled_events
		WHERE guild_id = $1
		ORDER BY start_at`

	var links []domain.ScheduledEventLink
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &links, query, guildID)
	return links, err
}

func (s *EventLinkStore) ListByItem(ctx context.Context, itemID string) ([]domain.ScheduledEventLink, error) {
	query := `
		SELECT scheduled_event_id, guild_id, item_id, name, start_at, end_at
		FROM scheduled_events
		WHERE item_id = $1`

	var links []domain.ScheduledEventLink
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &links, query, itemID)
	return links, err
}

func (s *EventLinkStore) Add(ctx context.Context, link domain.ScheduledEventLink) error {
	query := `
		INSERT INTO scheduled_events (guild_id, item_id, scheduled_event_id, name, start_at, end_at)
		VALUES (:guild_id, :item_id, :scheduled_event_id, :name, :start_at, :end_at)
		ON CONFLICT (guild_id, item_id) DO UPDATE SET
			scheduled_event_id = EXCLUDED.scheduled_event_id,
			name = EXCLUDED.name,
			start_at = EXCLUDED.start_at,
			end_at = EXCLUDED.end_at`

	_, err := sqlx.NamedExecContext(ctx, GetExecutor(ctx, s.db), query, link)
	return err
}

func (s *EventLinkStore) Update(ctx context.Context, link domain.ScheduledEventLink) error {
	query := `
		UPDATE scheduled_events
		SET name = :name, start_at = :start_at, end_at = :end_at
		WHERE guild_id = :guild_id AND item_id = :item_id`

	_, err := sqlx.NamedExecContext(ctx, GetExecutor(ctx, s.db), query, link)
	return err
}

func (s *EventLinkStore) Remove(ctx context.Context, guildID, itemID string) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"DELETE FROM scheduled_events WHERE guild_id = $1 AND item_id = $2",
		guildID, itemID,
	)
	return err
}
