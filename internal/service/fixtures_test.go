package service

import (
	"io"
	"log/slog"
	"time"

	"livelaunch/internal/domain"
	"livelaunch/testdata/utils"
)

var base = time.Date(2026, 10, 20, 12, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testLaunch(id string, start time.Time, agencyID, status int) domain.TimelineItem {
	return domain.TimelineItem{
		ID:         "launch:" + id,
		ExternalID: id,
		Kind:       domain.KindLaunch,
		Name:       "Launch " + id,
		PrimaryURL: utils.Ptr("https://www.youtube.com/watch?v=" + id),
		Start:      start,
		End:        start.Add(time.Hour),
		Location:   "LC-39A",
		AgencyID:   agencyID,
		AgencyName: "SpaceX",
		Status:     status,
	}
}

func testEvent(id string, start time.Time) domain.TimelineItem {
	return domain.TimelineItem{
		ID:         "event:" + id,
		ExternalID: id,
		Kind:       domain.KindEvent,
		Name:       "Event " + id,
		PrimaryURL: utils.Ptr("https://example.com/" + id),
		Start:      start,
		End:        start.Add(time.Hour),
		Location:   "ISS",
	}
}

func destination(guildID string, track domain.Track) domain.Destination {
	return domain.Destination{
		ChannelID:  guildID + "-" + string(track),
		WebhookURL: "https://discord.com/api/webhooks/1/" + guildID + "-" + string(track),
	}
}

func testGuild(id string) domain.GuildPreference {
	return domain.GuildPreference{
		GuildID:       id,
		Messages:      destination(id, domain.TrackMessages),
		News:          destination(id, domain.TrackNews),
		Notifications: destination(id, domain.TrackNotifications),
	}
}
