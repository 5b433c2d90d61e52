package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"livelaunch/internal/domain"
)

type PollStateStore struct {
	db *sqlx.DB
}

func NewPollStateStore(db *sqlx.DB) *PollStateStore {
	return &PollStateStore{db: db}
}

// Get returns the poller's state, or an empty state before its first cycle.
func (s *PollStateStore) Get(ctx context.Context, pollerID string) (*domain.PollState, error) {
	var state domain.PollState
	query := `
		SELECT id, poller_id, last_poll_at, total_cycles
		FROM poll_state
		WHERE poller_id = $1`

	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &state, query, pollerID)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.PollState{PollerID: pollerID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *PollStateStore) Update(ctx context.Context, state *domain.PollState) error {
	query := `
		INSERT INTO poll_state (poller_id, last_poll_at, total_cycles)
		VALUES ($1, $2, $3)
		ON CONFLICT (poller_id) DO UPDATE SET
			last_poll_at = EXCLUDED.last_poll_at,
			total_cycles = EXCLUDED.total_cycles`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		state.PollerID,
		state.LastPollAt,
		state.TotalCycles,
	)
	return err
}
