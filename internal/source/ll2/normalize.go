package ll2

import (
	"fmt"
	"strings"
	"time"

	"github.com/sosodev/duration"
)

const (
	MaxDescriptionLength = 1000
	ellipsis             = "..."

	DefaultEventDuration = time.Hour
	EVADuration          = 6 * time.Hour
)

var imageExtensions = []string{".gif", ".jpeg", ".jpg", ".png", ".webp"}

var eventDurations = map[string]time.Duration{
	"EVA": EVADuration,
}

// NamePrefix returns the marker put in front of an item name for a NET
// precision code, or an empty string when the precision is exact enough.
func NamePrefix(net time.Time, precisionID int) string {
	net = net.UTC()
	switch precisionID {
	case 2:
		return fmt.Sprintf("[NET %02d:00 UTC] ", net.Hour())
	case 3:
		return "[Morning (local)] "
	case 4:
		return "[Afternoon (local)] "
	case 5:
		return "[NET " + net.Format("January 2") + "] "
	case 6:
		_, week := net.ISOWeek()
		return fmt.Sprintf("[NET Week %d] ", week)
	case 7:
		return "[NET " + net.Format("January") + "] "
	case 8, 9, 10, 11:
		return fmt.Sprintf("[Q%d %d] ", precisionID-7, net.Year())
	case 12, 13:
		return fmt.Sprintf("[H%d %d] ", precisionID-11, net.Year())
	case 14:
		return fmt.Sprintf("[TBD %d] ", net.Year())
	case 15:
		return fmt.Sprintf("[FY %d] ", net.Year())
	}
	return ""
}

// PickVideo returns the URL with the lowest priority value; ties keep the
// first one encountered.
func PickVideo(videos []VideoURL) *string {
	var picked *VideoURL
	for i := range videos {
		if videos[i].URL == "" {
			continue
		}
		if picked == nil || videos[i].Priority < picked.Priority {
			picked = &videos[i]
		}
	}
	if picked == nil {
		return nil
	}
	url := picked.URL
	return &url
}

// TruncateDescription cuts descriptions longer than MaxDescriptionLength
// characters so that the result, ellipsis included, is exactly that long.
func TruncateDescription(desc *string) *string {
	if desc == nil || *desc == "" {
		return nil
	}
	runes := []rune(*desc)
	if len(runes) <= MaxDescriptionLength {
		return desc
	}
	truncated := string(runes[:MaxDescriptionLength-len(ellipsis)]) + ellipsis
	return &truncated
}

// ValidImageURL drops URLs that do not end in an accepted image extension.
func ValidImageURL(img *Image) *string {
	if img == nil || img.ImageURL == "" {
		return nil
	}
	lower := strings.ToLower(img.ImageURL)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			url := img.ImageURL
			return &url
		}
	}
	return nil
}

// EventDuration resolves how long an event lasts: an explicit ISO-8601
// duration wins, then the per-type default, then one hour.
func EventDuration(eventType *IDName, iso *string) time.Duration {
	if iso != nil && *iso != "" {
		if d, err := duration.Parse(*iso); err == nil {
			if td := d.ToTimeDuration(); td >= 0 {
				return td
			}
		}
		return DefaultEventDuration
	}
	if eventType != nil {
		if d, ok := eventDurations[eventType.Name]; ok {
			return d
		}
	}
	return DefaultEventDuration
}
