package domain

import "time"

// ScheduledEventLink binds a platform scheduled event to a guild and item.
// Name, Start and End are the values last pushed to the platform.
type ScheduledEventLink struct {
	EventID string    `db:"scheduled_event_id"`
	GuildID string    `db:"guild_id"`
	ItemID  string    `db:"item_id"`
	Name    string    `db:"name"`
	Start   time.Time `db:"start_at"`
	End     time.Time `db:"end_at"`
}

// Differs reports whether the item changed since the link was last synced.
func (l ScheduledEventLink) Differs(item TimelineItem) bool {
	return l.Name != item.Name || !l.Start.Equal(item.Start) || !l.End.Equal(item.End)
}

// ScheduledEvent is the payload sent to the platform.
type ScheduledEvent struct {
	Name        string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	ImageURL    string
}
