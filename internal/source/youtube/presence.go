package youtube

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"livelaunch/internal/domain"
)

const SourceID = "youtube"

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([^&\s/?#]+)`),
	regexp.MustCompile(`youtube\.com/embed/([^&\s/?#]+)`),
	regexp.MustCompile(`youtube\.com/v/([^&\s/?#]+)`),
	regexp.MustCompile(`youtube\.com/live/([^&\s/?#]+)`),
}

// VideoID extracts a video id from a YouTube URL.
func VideoID(url string) (string, bool) {
	for _, p := range videoIDPatterns {
		if m := p.FindStringSubmatch(url); m != nil {
			return m[1], true
		}
	}
	return "", false
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Presence scrapes a channel's live page to tell whether it is streaming.
// The page layout is not a stable API, so every failure means "not live".
type Presence struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

func NewPresence(cfg Config, logger *slog.Logger) *Presence {
	return &Presence{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		logger:     logger.With("source", SourceID),
	}
}

// Live makes a single attempt to read the channel's live page.
func (p *Presence) Live(ctx context.Context, channelID string) (domain.LiveStream, bool) {
	doc, err := p.fetch(ctx, channelID)
	if err != nil {
		p.logger.Warn("failed to fetch live page", "channel_id", channelID, "error", err)
		return domain.LiveStream{}, false
	}

	stream, ok := parseLivePage(doc, channelID)
	if !ok {
		p.logger.Debug("channel not live", "channel_id", channelID)
	}
	return stream, ok
}

func (p *Presence) fetch(ctx context.Context, channelID string) (*goquery.Document, error) {
	url := fmt.Sprintf("%s/channel/%s/live", p.baseURL, channelID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept-Language", "en")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// parseLivePage reads the canonical watch URL and the live marker embedded
// in the page's initial data.
func parseLivePage(doc *goquery.Document, channelID string) (domain.LiveStream, bool) {
	canonical, _ := doc.Find(`link[rel="canonical"]`).First().Attr("href")
	videoID, ok := VideoID(canonical)
	if !ok {
		return domain.LiveStream{}, false
	}

	live := false
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(s.Text(), `"isLiveNow":true`) {
			live = true
			return false
		}
		return true
	})
	if !live {
		return domain.LiveStream{}, false
	}

	title, _ := doc.Find(`meta[name="title"]`).First().Attr("content")
	if title == "" {
		title, _ = doc.Find(`meta[property="og:title"]`).First().Attr("content")
	}
	if title == "" {
		title = "Live Stream"
	}
	channelName, _ := doc.Find(`link[itemprop="name"]`).First().Attr("content")

	return domain.LiveStream{
		VideoID:     videoID,
		Title:       title,
		ChannelID:   channelID,
		ChannelName: channelName,
	}, true
}
