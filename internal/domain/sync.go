package domain

import "time"

// CycleStats holds statistics about one poll cycle.
type CycleStats struct {
	CycleID       string
	Launches      int
	Events        int
	TimelineItems int
	Articles      int
	Streams       int
	Guilds        int
	Sent          int
	Failed        int
	EventsCreated int
	EventsUpdated int
	EventsDeleted int
	Skipped       bool
	Duration      time.Duration
}

// PollState records when a poller last completed a cycle.
type PollState struct {
	ID          int64     `db:"id"`
	PollerID    string    `db:"poller_id"`
	LastPollAt  time.Time `db:"last_poll_at"`
	TotalCycles int64     `db:"total_cycles"`
}
