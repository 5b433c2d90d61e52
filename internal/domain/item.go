package domain

import (
	"fmt"
	"strings"
	"time"
)

type ItemKind string

const (
	KindLaunch ItemKind = "launch"
	KindEvent  ItemKind = "event"
)

// Launch status codes as reported by the launch feed.
const (
	StatusGo             = 1
	StatusTBD            = 2
	StatusSuccess        = 3
	StatusFailure        = 4
	StatusHold           = 5
	StatusInFlight       = 6
	StatusPartialFailure = 7
	StatusTBC            = 8
	StatusDeployed       = 9
)

var statusNames = map[int]string{
	StatusGo:             "Go for Launch",
	StatusTBD:            "To Be Determined",
	StatusSuccess:        "Launch Successful",
	StatusFailure:        "Launch Failure",
	StatusHold:           "On Hold",
	StatusInFlight:       "Launch in Flight",
	StatusPartialFailure: "Launch was a Partial Failure",
	StatusTBC:            "To Be Confirmed",
	StatusDeployed:       "Payload Deployed",
}

// StatusName returns the human readable label of a launch status code.
func StatusName(status int) string {
	if name, ok := statusNames[status]; ok {
		return name
	}
	return "Unknown"
}

// IsTerminalStatus reports whether a launch has a final outcome.
func IsTerminalStatus(status int) bool {
	return status == StatusSuccess || status == StatusFailure || status == StatusPartialFailure
}

// TimelineItem is a launch or a generic event normalized from the launch feed.
// Kind-specific fields (AgencyID, AgencyName, Status) are zero for events.
type TimelineItem struct {
	ID          string // source-qualified, e.g. "launch:<uuid>"
	ExternalID  string
	Kind        ItemKind
	Name        string
	Description *string
	PrimaryURL  *string
	ImageURL    *string
	Start       time.Time
	End         time.Time
	Location    string
	IsLiveNow   bool
	Slug        string
	FlightClub  bool

	AgencyID   int
	AgencyName string
	Status     int
}

func (i TimelineItem) IsLaunch() bool {
	return i.Kind == KindLaunch
}

// KindOf derives the item kind from a source-qualified id.
func KindOf(id string) ItemKind {
	if strings.HasPrefix(id, string(KindLaunch)+":") {
		return KindLaunch
	}
	return KindEvent
}

const (
	spaceLaunchNowLaunchURL = "https://spacelaunchnow.me/launch/%s/"
	spaceLaunchNowEventURL  = "https://spacelaunchnow.me/event/%s/"
	go4LiftoffLaunchURL     = "https://go4liftoff.com/launch/id/%s"
	go4LiftoffEventURL      = "https://go4liftoff.com/event/id/%s"
	flightClubURL           = "https://flightclub.io/result?llId=%s"
)

// Link is a named page about an item on a tracking site.
type Link struct {
	Name string
	URL  string
}

// PageURL is the item's Space Launch Now page, empty without a slug.
func (i TimelineItem) PageURL() string {
	if i.Slug == "" {
		return ""
	}
	if i.IsLaunch() {
		return fmt.Sprintf(spaceLaunchNowLaunchURL, i.Slug)
	}
	return fmt.Sprintf(spaceLaunchNowEventURL, i.Slug)
}

// Links lists the tracking-site pages known for the item.
func (i TimelineItem) Links() []Link {
	var links []Link
	if i.ExternalID != "" {
		format := go4LiftoffEventURL
		if i.IsLaunch() {
			format = go4LiftoffLaunchURL
		}
		links = append(links, Link{Name: "Go4Liftoff", URL: fmt.Sprintf(format, i.ExternalID)})
	}
	if page := i.PageURL(); page != "" {
		links = append(links, Link{Name: "Space Launch Now", URL: page})
	}
	if i.FlightClub && i.ExternalID != "" {
		links = append(links, Link{Name: "Flight Club", URL: fmt.Sprintf(flightClubURL, i.ExternalID)})
	}
	return links
}

// ItemState is the last observed state of a timeline item, kept between
// cycles to detect status and T-0 changes. PrevStatus and PrevStart hold the
// values before the latest transition so its announcement can be retried.
type ItemState struct {
	ItemID   string    `db:"item_id"`
	Kind     ItemKind  `db:"kind"`
	Name     string    `db:"name"`
	AgencyID int       `db:"agency_id"`
	Status   int       `db:"status"`
	Start    time.Time `db:"start_at"`
	End      time.Time `db:"end_at"`

	PrevStatus      int       `db:"prev_status"`
	StatusChangedAt time.Time `db:"status_changed_at"`
	PrevStart       time.Time `db:"prev_start_at"`
	StartChangedAt  time.Time `db:"start_changed_at"`
}

// StateOf snapshots the fields of an item tracked between cycles.
func StateOf(item TimelineItem) ItemState {
	return ItemState{
		ItemID:   item.ID,
		Kind:     item.Kind,
		Name:     item.Name,
		AgencyID: item.AgencyID,
		Status:   item.Status,
		Start:    item.Start,
		End:      item.End,
	}
}
