package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"livelaunch/internal/domain"
)

// SentStore is the delivery ledger. Rows are never updated; a repeated insert
// of the same key is a no-op.
type SentStore struct {
	db *sqlx.DB
}

func NewSentStore(db *sqlx.DB) *SentStore {
	return &SentStore{db: db}
}

func (s *SentStore) HasSent(ctx context.Context, key domain.SentKey) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM sent_items
			WHERE kind = $1 AND guild_id = $2 AND item_id = $3
		)`

	var sent bool
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &sent, query, key.Kind, key.GuildID, key.ItemID)
	return sent, err
}

// MarkSent records key and reports whether this call inserted it.
func (s *SentStore) MarkSent(ctx context.Context, key domain.SentKey) (bool, error) {
	query := `
		INSERT INTO sent_items (kind, guild_id, item_id, sent_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (kind, guild_id, item_id) DO NOTHING`

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, key.Kind, key.GuildID, key.ItemID, time.Now())
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SentStore) ListByGuild(ctx context.Context, guildID string) ([]domain.SentRecord, error) {
	query := `
		SELECT kind, guild_id, item_id, sent_at
		FROM sent_items
		WHERE guild_id = $1
		ORDER BY sent_at`

	var records []domain.SentRecord
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &records, query, guildID)
	return records, err
}
