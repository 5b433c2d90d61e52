package domain

import "time"

type NewsArticle struct {
	ID          int64
	Title       string
	URL         string
	ImageURL    string
	NewsSite    string
	Summary     string
	PublishedAt time.Time
}

// LiveStream is a video that is (or is about to be) streaming.
type LiveStream struct {
	VideoID     string
	Title       string
	ChannelID   string
	ChannelName string

	// ItemID links a stream found on a timeline item back to that item.
	ItemID string
}

func (s LiveStream) URL() string {
	return "https://www.youtube.com/watch?v=" + s.VideoID
}
