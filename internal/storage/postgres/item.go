package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"livelaunch/internal/domain"
)

// ItemStore keeps the last observed state of every timeline item.
type ItemStore struct {
	db *sqlx.DB
}

func NewItemStore(db *sqlx.DB) *ItemStore {
	return &ItemStore{db: db}
}

func (s *ItemStore) List(ctx context.Context) (map[string]domain.ItemState, error) {
	query := `
		SELECT item_id, kind, name, agency_id, status, start_at, end_at,
			prev_status, status_changed_at, prev_start_at, start_changed_at
		FROM items`

	var states []domain.ItemState
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &states, query); err != nil {
		return nil, err
	}

	result := make(map[string]domain.ItemState, len(states))
	for _, st := range states {
		result[st.ItemID] = st
	}
	return result, nil
}

func (s *ItemStore) Upsert(ctx context.Context, state domain.ItemState) error {
	query := `
		INSERT INTO items (
			item_id, kind, name, agency_id, status, start_at, end_at,
			prev_status, status_changed_at, prev_start_at, start_changed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (item_id) DO UPDATE SET
			name = EXCLUDED.name,
			agency_id = EXCLUDED.agency_id,
			status = EXCLUDED.status,
			start_at = EXCLUDED.start_at,
			end_at = EXCLUDED.end_at,
			prev_status = EXCLUDED.prev_status,
			status_changed_at = EXCLUDED.status_changed_at,
			prev_start_at = EXCLUDED.prev_start_at,
			start_changed_at = EXCLUDED.start_changed_at,
			updated_at = NOW()`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		state.ItemID,
		state.Kind,
		state.Name,
		state.AgencyID,
		state.Status,
		state.Start,
		state.End,
		state.PrevStatus,
		state.StatusChangedAt,
		state.PrevStart,
		state.StartChangedAt,
	)
	return err
}

// DeleteExcept removes the rows of the given kinds whose item is not in keep.
// Rows of other kinds are left alone.
func (s *ItemStore) DeleteExcept(ctx context.Context, kinds []domain.ItemKind, keep []string) (int64, error) {
	if len(kinds) == 0 {
		return 0, nil
	}

	if keep == nil {
		keep = []string{}
	}

	kindNames := make([]string, len(kinds))
	for i, k := range kinds {
		kindNames[i] = string(k)
	}

	query := `DELETE FROM items WHERE kind = ANY($1) AND NOT (item_id = ANY($2))`

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, pq.Array(kindNames), pq.Array(keep))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
