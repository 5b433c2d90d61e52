package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"livelaunch/internal/domain"
)

// GuildStore holds per-guild subscriptions. Filter and countdown rows cascade
// with the guild row.
type GuildStore struct {
	db *sqlx.DB
}

func NewGuildStore(db *sqlx.DB) *GuildStore {
	return &GuildStore{db: db}
}

type guildRow struct {
	GuildID string `db:"guild_id"`

	ChannelID              sql.NullString `db:"channel_id"`
	WebhookURL             sql.NullString `db:"webhook_url"`
	NewsChannelID          sql.NullString `db:"news_channel_id"`
	NewsWebhookURL         sql.NullString `db:"news_webhook_url"`
	NewsEnabledAt          sql.NullTime   `db:"news_enabled_at"`
	NotificationChannelID  sql.NullString `db:"notification_channel_id"`
	NotificationWebhookURL sql.NullString `db:"notification_webhook_url"`

	ScheduledEvents int  `db:"scheduled_events"`
	SELaunch        bool `db:"se_launch"`
	SEEvent         bool `db:"se_event"`
	SENoURL         bool `db:"se_no_url"`

	AgencyExclude bool `db:"agency_include_exclude"`
	NewsExclude   bool `db:"news_include_exclude"`

	NotifyLaunch         bool `db:"notification_launch"`
	NotifyEvent          bool `db:"notification_event"`
	NotifyT0Change       bool `db:"notification_t0_change"`
	NotifyTBD            bool `db:"notification_tbd"`
	NotifyTBC            bool `db:"notification_tbc"`
	NotifyGo             bool `db:"notification_go"`
	NotifyLiftoff        bool `db:"notification_liftoff"`
	NotifyHold           bool `db:"notification_hold"`
	NotifyDeploy         bool `db:"notification_deploy"`
	NotifyEndStatus      bool `db:"notification_end_status"`
	NotifyScheduledEvent bool `db:"notification_scheduled_event"`
}

const guildColumns = `
	guild_id,
	channel_id, webhook_url,
	news_channel_id, news_webhook_url, news_enabled_at,
	notification_channel_id, notification_webhook_url,
	scheduled_events, se_launch, se_event, se_no_url,
	agency_include_exclude, news_include_exclude,
	notification_launch, notification_event, notification_t0_change,
	notification_tbd, notification_tbc, notification_go, notification_liftoff,
	notification_hold, notification_deploy, notification_end_status,
	notification_scheduled_event`

func (r guildRow) toDomain() domain.GuildPreference {
	return domain.GuildPreference{
		GuildID: r.GuildID,
		Messages: domain.Destination{
			ChannelID:  r.ChannelID.String,
			WebhookURL: r.WebhookURL.String,
		},
		News: domain.Destination{
			ChannelID:  r.NewsChannelID.String,
			WebhookURL: r.NewsWebhookURL.String,
			Since:      r.NewsEnabledAt.Time,
		},
		Notifications: domain.Destination{
			ChannelID:  r.NotificationChannelID.String,
			WebhookURL: r.NotificationWebhookURL.String,
		},
		ScheduledEventsCap: r.ScheduledEvents,
		Events: domain.EventToggles{
			Launch: r.SELaunch,
			Event:  r.SEEvent,
			NoURL:  r.SENoURL,
		},
		Notify: domain.NotificationToggles{
			Launch:         r.NotifyLaunch,
			Event:          r.NotifyEvent,
			T0Change:       r.NotifyT0Change,
			TBD:            r.NotifyTBD,
			TBC:            r.NotifyTBC,
			Go:             r.NotifyGo,
			Liftoff:        r.NotifyLiftoff,
			Hold:           r.NotifyHold,
			Deploy:         r.NotifyDeploy,
			EndStatus:      r.NotifyEndStatus,
			ScheduledEvent: r.NotifyScheduledEvent,
		},
		Agencies:  domain.NewIntFilter(r.AgencyExclude),
		NewsSites: domain.NewNameFilter(r.NewsExclude),
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// ListEnabled returns every guild with its filter sets and countdowns.
func (s *GuildStore) ListEnabled(ctx context.Context) ([]domain.GuildPreference, error) {
	exec := GetExecutor(ctx, s.db)

	var rows []guildRow
	if err := sqlx.SelectContext(ctx, exec, &rows, "SELECT "+guildColumns+" FROM enabled_guilds ORDER BY guild_id"); err != nil {
		return nil, fmt.Errorf("select guilds: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	prefs := make([]domain.GuildPreference, len(rows))
	byID := make(map[string]*domain.GuildPreference, len(rows))
	for i, r := range rows {
		prefs[i] = r.toDomain()
		byID[r.GuildID] = &prefs[i]
	}

	var agencies []struct {
		GuildID  string `db:"guild_id"`
		AgencyID int    `db:"agency_id"`
	}
	if err := sqlx.SelectContext(ctx, exec, &agencies, "SELECT guild_id, agency_id FROM agency_filter"); err != nil {
		return nil, fmt.Errorf("select agency filters: %w", err)
	}
	for _, a := range agencies {
		if g, ok := byID[a.GuildID]; ok {
			g.Agencies.IDs[a.AgencyID] = struct{}{}
		}
	}

	var sites []struct {
		GuildID  string `db:"guild_id"`
		NewsSite string `db:"news_site"`
	}
	if err := sqlx.SelectContext(ctx, exec, &sites, "SELECT guild_id, news_site FROM news_filter"); err != nil {
		return nil, fmt.Errorf("select news filters: %w", err)
	}
	for _, n := range sites {
		if g, ok := byID[n.GuildID]; ok {
			g.NewsSites.Names[strings.ToLower(n.NewsSite)] = struct{}{}
		}
	}

	var countdowns []struct {
		GuildID string `db:"guild_id"`
		Minutes int    `db:"minutes"`
	}
	if err := sqlx.SelectContext(ctx, exec, &countdowns, "SELECT guild_id, minutes FROM notification_countdown ORDER BY minutes DESC"); err != nil {
		return nil, fmt.Errorf("select countdowns: %w", err)
	}
	for _, c := range countdowns {
		if g, ok := byID[c.GuildID]; ok {
			g.Countdowns = append(g.Countdowns, c.Minutes)
		}
	}

	return prefs, nil
}

// Get returns one guild without its filter sets.
func (s *GuildStore) Get(ctx context.Context, guildID string) (*domain.GuildPreference, error) {
	var row guildRow
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row,
		"SELECT "+guildColumns+" FROM enabled_guilds WHERE guild_id = $1", guildID)
	if err != nil {
		return nil, err
	}
	pref := row.toDomain()
	return &pref, nil
}

// Upsert writes the guild's destinations, toggles and filter polarities. The
// news start time is kept while the news webhook stays set.
func (s *GuildStore) Upsert(ctx context.Context, pref domain.GuildPreference) error {
	newsSince := sql.NullTime{}
	if pref.News.Enabled() {
		newsSince = sql.NullTime{Time: pref.News.Since, Valid: true}
		if pref.News.Since.IsZero() {
			newsSince.Time = time.Now()
		}
	}

	query := `
		INSERT INTO enabled_guilds (` + guildColumns + `)
		VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25
		)
		ON CONFLICT (guild_id) DO UPDATE SET
			channel_id = EXCLUDED.channel_id,
			webhook_url = EXCLUDED.webhook_url,
			news_channel_id = EXCLUDED.news_channel_id,
			news_webhook_url = EXCLUDED.news_webhook_url,
			news_enabled_at = CASE
				WHEN EXCLUDED.news_webhook_url IS NULL THEN NULL
				ELSE COALESCE(enabled_guilds.news_enabled_at, EXCLUDED.news_enabled_at)
			END,
			notification_channel_id = EXCLUDED.notification_channel_id,
			notification_webhook_url = EXCLUDED.notification_webhook_url,
			scheduled_events = EXCLUDED.scheduled_events,
			se_launch = EXCLUDED.se_launch,
			se_event = EXCLUDED.se_event,
			se_no_url = EXCLUDED.se_no_url,
			agency_include_exclude = EXCLUDED.agency_include_exclude,
			news_include_exclude = EXCLUDED.news_include_exclude,
			notification_launch = EXCLUDED.notification_launch,
			notification_event = EXCLUDED.notification_event,
			notification_t0_change = EXCLUDED.notification_t0_change,
			notification_tbd = EXCLUDED.notification_tbd,
			notification_tbc = EXCLUDED.notification_tbc,
			notification_go = EXCLUDED.notification_go,
			notification_liftoff = EXCLUDED.notification_liftoff,
			notification_hold = EXCLUDED.notification_hold,
			notification_deploy = EXCLUDED.notification_deploy,
			notification_end_status = EXCLUDED.notification_end_status,
			notification_scheduled_event = EXCLUDED.notification_scheduled_event,
			updated_at = NOW()`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		pref.GuildID,
		nullString(pref.Messages.ChannelID), nullString(pref.Messages.WebhookURL),
		nullString(pref.News.ChannelID), nullString(pref.News.WebhookURL), newsSince,
		nullString(pref.Notifications.ChannelID), nullString(pref.Notifications.WebhookURL),
		pref.ScheduledEventsCap, pref.Events.Launch, pref.Events.Event, pref.Events.NoURL,
		pref.Agencies.Exclude, pref.NewsSites.Exclude,
		pref.Notify.Launch, pref.Notify.Event, pref.Notify.T0Change,
		pref.Notify.TBD, pref.Notify.TBC, pref.Notify.Go, pref.Notify.Liftoff,
		pref.Notify.Hold, pref.Notify.Deploy, pref.Notify.EndStatus,
		pref.Notify.ScheduledEvent,
	)
	return err
}

// ClearTrack disables one track. For the events track the cap drops to zero
// and the synchronizer removes the remaining links on its next pass.
func (s *GuildStore) ClearTrack(ctx context.Context, guildID string, track domain.Track) error {
	var set string
	switch track {
	case domain.TrackMessages:
		set = "channel_id = NULL, webhook_url = NULL"
	case domain.TrackNews:
		set = "news_channel_id = NULL, news_webhook_url = NULL, news_enabled_at = NULL"
	case domain.TrackNotifications:
		set = "notification_channel_id = NULL, notification_webhook_url = NULL"
	case domain.TrackEvents:
		set = "scheduled_events = 0"
	default:
		return fmt.Errorf("unknown track %q", track)
	}

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"UPDATE enabled_guilds SET "+set+", updated_at = NOW() WHERE guild_id = $1",
		guildID,
	)
	return err
}

func (s *GuildStore) DisableScheduledEvents(ctx context.Context, guildID string) error {
	return s.ClearTrack(ctx, guildID, domain.TrackEvents)
}

// Disable clears a track and drops the guild once nothing is left enabled.
func (s *GuildStore) Disable(ctx context.Context, guildID string, track domain.Track) error {
	if err := s.ClearTrack(ctx, guildID, track); err != nil {
		return err
	}

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, `
		DELETE FROM enabled_guilds
		WHERE guild_id = $1
			AND webhook_url IS NULL
			AND news_webhook_url IS NULL
			AND notification_webhook_url IS NULL
			AND scheduled_events = 0
			AND NOT EXISTS (SELECT 1 FROM scheduled_events WHERE guild_id = $1)`,
		guildID,
	)
	return err
}

func (s *GuildStore) Delete(ctx context.Context, guildID string) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, "DELETE FROM enabled_guilds WHERE guild_id = $1", guildID)
	return err
}

func (s *GuildStore) AddAgencyFilter(ctx context.Context, guildID string, agencyIDs []int) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, `
		INSERT INTO agency_filter (guild_id, agency_id)
		SELECT $1::text, UNNEST($2::integer[])
		ON CONFLICT DO NOTHING`,
		guildID, pq.Array(int64s(agencyIDs)),
	)
	return err
}

func (s *GuildStore) RemoveAgencyFilter(ctx context.Context, guildID string, agencyIDs []int) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"DELETE FROM agency_filter WHERE guild_id = $1 AND agency_id = ANY($2)",
		guildID, pq.Array(int64s(agencyIDs)),
	)
	return err
}

func (s *GuildStore) AddNewsFilter(ctx context.Context, guildID string, sites []string) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, `
		INSERT INTO news_filter (guild_id, news_site)
		SELECT $1::text, LOWER(UNNEST($2::text[]))
		ON CONFLICT DO NOTHING`,
		guildID, pq.Array(sites),
	)
	return err
}

func (s *GuildStore) RemoveNewsFilter(ctx context.Context, guildID string, sites []string) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, `
		DELETE FROM news_filter
		WHERE guild_id = $1 AND news_site = ANY(SELECT LOWER(UNNEST($2::text[])))`,
		guildID, pq.Array(sites),
	)
	return err
}

func (s *GuildStore) AddCountdown(ctx context.Context, guildID string, minutes []int) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, `
		INSERT INTO notification_countdown (guild_id, minutes)
		SELECT $1::text, UNNEST($2::integer[])
		ON CONFLICT DO NOTHING`,
		guildID, pq.Array(int64s(minutes)),
	)
	return err
}

func (s *GuildStore) RemoveCountdown(ctx context.Context, guildID string, minutes []int) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"DELETE FROM notification_countdown WHERE guild_id = $1 AND minutes = ANY($2)",
		guildID, pq.Array(int64s(minutes)),
	)
	return err
}

func int64s(in []int) []int64 {
	out := make([]int64, len(in))
	for i, v := range in {
		out[i] = int64(v)
	}
	return out
}
