package domain

import (
	"fmt"
	"time"
)

type SentKind string

const (
	SentNews      SentKind = "news"
	SentStream    SentKind = "stream"
	SentCountdown SentKind = "countdown"
	SentStatus    SentKind = "status"
	SentT0Change  SentKind = "t0_change"
)

// SentKey identifies one delivered item for one guild.
type SentKey struct {
	Kind    SentKind
	GuildID string
	ItemID  string
}

func NewsKey(guildID string, articleID int64) SentKey {
	return SentKey{Kind: SentNews, GuildID: guildID, ItemID: fmt.Sprintf("%d", articleID)}
}

func StreamKey(guildID, videoID string) SentKey {
	return SentKey{Kind: SentStream, GuildID: guildID, ItemID: videoID}
}

func CountdownKey(guildID, itemID string, minutes int) SentKey {
	return SentKey{Kind: SentCountdown, GuildID: guildID, ItemID: fmt.Sprintf("%s:%d", itemID, minutes)}
}

// StatusKey identifies one status transition, recorded at changedAt.
func StatusKey(guildID, itemID string, status int, changedAt time.Time) SentKey {
	return SentKey{Kind: SentStatus, GuildID: guildID, ItemID: fmt.Sprintf("%s:%d:%d", itemID, status, changedAt.Unix())}
}

// T0ChangeKey identifies one move of an item's start time.
func T0ChangeKey(guildID, itemID string, start time.Time) SentKey {
	return SentKey{Kind: SentT0Change, GuildID: guildID, ItemID: fmt.Sprintf("%s:%d", itemID, start.Unix())}
}

type SentRecord struct {
	Kind    SentKind  `db:"kind"`
	GuildID string    `db:"guild_id"`
	ItemID  string    `db:"item_id"`
	SentAt  time.Time `db:"sent_at"`
}
