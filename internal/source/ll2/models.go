package ll2

// PageResponse is the paginated list envelope returned by the LL2 API.
type PageResponse[T any] struct {
	Count   int     `json:"count"`
	Next    *string `json:"next"`
	Results []T     `json:"results"`
}

type Launch struct {
	ID                    string     `json:"id"`
	Name                  string     `json:"name"`
	Slug                  string     `json:"slug"`
	Net                   string     `json:"net"`
	NetPrecision          *IDName    `json:"net_precision"`
	Status                *IDName    `json:"status"`
	LaunchServiceProvider *IDName    `json:"launch_service_provider"`
	Mission               *Mission   `json:"mission"`
	Image                 *Image     `json:"image"`
	Pad                   *Pad       `json:"pad"`
	VidURLs               []VideoURL `json:"vid_urls"`
	WebcastLive           bool       `json:"webcast_live"`
	FlightclubURL         *string    `json:"flightclub_url"`
}

type Event struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	Date          string     `json:"date"`
	DatePrecision *IDName    `json:"date_precision"`
	Type          *IDName    `json:"type"`
	Duration      *string    `json:"duration"`
	Description   *string    `json:"description"`
	Location      *string    `json:"location"`
	Image         *Image     `json:"image"`
	VidURLs       []VideoURL `json:"vid_urls"`
	WebcastLive   bool       `json:"webcast_live"`
}

type IDName struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Mission struct {
	Description *string `json:"description"`
}

type Image struct {
	ImageURL string `json:"image_url"`
}

type Pad struct {
	Location *IDName `json:"location"`
}

type VideoURL struct {
	URL      string `json:"url"`
	Priority int    `json:"priority"`
}
