package service

import (
	"fmt"
	"strings"
	"time"

	"livelaunch/internal/domain"
)

const (
	KindCountdown      = "countdown"
	KindStatus         = "status"
	KindT0Change       = "t0_change"
	KindNews           = "news"
	KindStream         = "stream"
	KindScheduledEvent = "scheduled_event"

	botName = "LiveLaunch"

	maxEventName        = 100
	maxEventLocation    = 100
	maxEventDescription = 1000
)

var statusColors = map[int]int{
	domain.StatusGo:             0x00ff00,
	domain.StatusTBD:            0xaaaaaa,
	domain.StatusSuccess:        0x00ff00,
	domain.StatusFailure:        0xff0000,
	domain.StatusHold:           0xffaa00,
	domain.StatusInFlight:       0x0099ff,
	domain.StatusPartialFailure: 0xff6600,
	domain.StatusTBC:            0xaaaaaa,
	domain.StatusDeployed:       0x00ff00,
}

// discordTime renders t with the platform's localized timestamp markup.
func discordTime(t time.Time) string {
	return fmt.Sprintf("<t:%d:F>", t.Unix())
}

func humanMinutes(minutes int) string {
	switch {
	case minutes%1440 == 0:
		return plural(minutes/1440, "day")
	case minutes%60 == 0:
		return plural(minutes/60, "hour")
	}
	return plural(minutes, "minute")
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// linkLine renders the item's tracking-site pages as markdown links.
func linkLine(item domain.TimelineItem) string {
	links := item.Links()
	parts := make([]string, len(links))
	for i, l := range links {
		parts[i] = fmt.Sprintf("[%s](%s)", l.Name, l.URL)
	}
	return strings.Join(parts, " | ")
}

func itemMessage(kind string, item domain.TimelineItem, body string) domain.Message {
	if line := linkLine(item); line != "" {
		body += "\n" + line
	}
	msg := domain.Message{
		Kind:      kind,
		Username:  botName,
		Title:     item.Name,
		Body:      body,
		URL:       item.PageURL(),
		Timestamp: item.Start,
	}
	if item.PrimaryURL != nil {
		msg.URL = *item.PrimaryURL
	}
	if item.ImageURL != nil {
		msg.ImageURL = *item.ImageURL
	}
	if item.IsLaunch() {
		msg.Color = statusColors[item.Status]
	}
	return msg
}

func countdownMessage(item domain.TimelineItem, minutes int) domain.Message {
	body := fmt.Sprintf("Starts in %s, %s", humanMinutes(minutes), discordTime(item.Start))
	if item.IsLaunch() {
		body = fmt.Sprintf("%s\n%s from %s", body, item.AgencyName, item.Location)
	}
	return itemMessage(KindCountdown, item, body)
}

func statusMessage(item domain.TimelineItem, previous int) domain.Message {
	body := fmt.Sprintf("Status changed from %s to **%s**",
		domain.StatusName(previous), domain.StatusName(item.Status))
	return itemMessage(KindStatus, item, body)
}

func t0ChangeMessage(item domain.TimelineItem, previous time.Time) domain.Message {
	body := fmt.Sprintf("T-0 moved from %s to **%s**", discordTime(previous), discordTime(item.Start))
	return itemMessage(KindT0Change, item, body)
}

func scheduledEventMessage(item domain.TimelineItem) domain.Message {
	body := fmt.Sprintf("Scheduled event created for %s", discordTime(item.Start))
	return itemMessage(KindScheduledEvent, item, body)
}

func newsMessage(article domain.NewsArticle) domain.Message {
	return domain.Message{
		Kind:      KindNews,
		Username:  article.NewsSite,
		Title:     article.Title,
		URL:       article.URL,
		Body:      article.Summary,
		ImageURL:  article.ImageURL,
		Timestamp: article.PublishedAt,
	}
}

func streamMessage(stream domain.LiveStream) domain.Message {
	username := stream.ChannelName
	if username == "" {
		username = botName
	}
	return domain.Message{
		Kind:     KindStream,
		Username: username,
		Content:  stream.URL(),
		Title:    stream.Title,
	}
}

// toScheduledEvent renders an item for the platform. The platform rejects
// starts in the past, so live or started items begin one minute from now.
func toScheduledEvent(item domain.TimelineItem, now time.Time) domain.ScheduledEvent {
	earliest := now.Add(time.Minute)
	start := item.Start
	if item.IsLiveNow || start.Before(earliest) {
		start = earliest
	}

	end := item.End
	if !end.After(start) {
		length := item.End.Sub(item.Start)
		if length <= 0 {
			length = time.Hour
		}
		end = start.Add(length)
	}

	event := domain.ScheduledEvent{
		Name:     clip(item.Name, maxEventName),
		Location: "Unknown",
		Start:    start,
		End:      end,
	}
	switch {
	case item.PrimaryURL != nil:
		event.Location = clip(*item.PrimaryURL, maxEventLocation)
	case item.Location != "":
		event.Location = clip(item.Location, maxEventLocation)
	}
	// Links go last and are never cut; the description gives way.
	var lines []string
	for _, l := range item.Links() {
		lines = append(lines, l.Name+": "+l.URL)
	}
	links := strings.Join(lines, "\n")
	if item.Description != nil && *item.Description != "" {
		room := maxEventDescription - len([]rune(links)) - 2
		lines = append([]string{clip(*item.Description, max(room, 0)), ""}, lines...)
	}
	event.Description = clip(strings.TrimSpace(strings.Join(lines, "\n")), maxEventDescription)
	if item.ImageURL != nil {
		event.ImageURL = *item.ImageURL
	}
	return event
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
