package ll2

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"livelaunch/internal/domain"
)

const (
	SourceID   = "ll2"
	SourceName = "Launch Library 2"

	launchPrefix = "launch:"
	eventPrefix  = "event:"
)

// Config holds LL2 source configuration.
type Config struct {
	BaseURL        string
	Token          string
	PageSize       int
	MaxPages       int
	LookaheadDays  int
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Source fetches upcoming launches and events from the LL2 API.
type Source struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	pageSize       int
	maxPages       int
	lookahead      time.Duration
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	now            func() time.Time
	logger         *slog.Logger
}

// New creates a new LL2 source.
func New(cfg Config, logger *slog.Logger) *Source {
	return &Source{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:        cfg.BaseURL,
		token:          cfg.Token,
		pageSize:       cfg.PageSize,
		maxPages:       max(cfg.MaxPages, 1),
		lookahead:      time.Duration(cfg.LookaheadDays) * 24 * time.Hour,
		maxAttempts:    max(cfg.MaxAttempts, 1),
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		now:            time.Now,
		logger:         logger.With("source", SourceID),
	}
}

func (s *Source) ID() string {
	return SourceID
}

func (s *Source) Name() string {
	return SourceName
}

// Upcoming fetches launches and events concurrently. A failing feed is
// reported through its ok flag, never as an error.
func (s *Source) Upcoming(ctx context.Context) (launches, events []domain.TimelineItem, launchesOK, eventsOK bool) {
	var g errgroup.Group
	g.Go(func() error {
		launches, launchesOK = s.Launches(ctx)
		return nil
	})
	g.Go(func() error {
		events, eventsOK = s.Events(ctx)
		return nil
	})
	_ = g.Wait()
	return launches, events, launchesOK, eventsOK
}

// Launches fetches upcoming launches within the look-ahead window. ok is
// false when any page failed; the records read before the failure are kept.
func (s *Source) Launches(ctx context.Context) (items []domain.TimelineItem, ok bool) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(s.pageSize))
	q.Set("mode", "detailed")
	q.Set("net__lte", s.maxNet())

	entries, err := fetchAll[Launch](ctx, s, s.baseURL+"/launches/upcoming/?"+q.Encode())
	if err != nil {
		s.logger.Error("failed to fetch launches", "error", err, "partial", len(entries))
		if len(entries) == 0 {
			return nil, false
		}
	}

	items = make([]domain.TimelineItem, 0, len(entries))
	for _, e := range entries {
		item, valid := s.transformLaunch(e)
		if !valid {
			continue
		}
		items = append(items, item)
	}

	s.logger.Debug("fetched launches", "count", len(items))
	return items, err == nil
}

// Events fetches upcoming generic events within the look-ahead window.
func (s *Source) Events(ctx context.Context) (items []domain.TimelineItem, ok bool) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(s.pageSize))
	q.Set("date__lte", s.maxNet())

	entries, err := fetchAll[Event](ctx, s, s.baseURL+"/events/upcoming/?"+q.Encode())
	if err != nil {
		s.logger.Error("failed to fetch events", "error", err, "partial", len(entries))
		if len(entries) == 0 {
			return nil, false
		}
	}

	items = make([]domain.TimelineItem, 0, len(entries))
	for _, e := range entries {
		item, valid := s.transformEvent(e)
		if !valid {
			continue
		}
		items = append(items, item)
	}

	s.logger.Debug("fetched events", "count", len(items))
	return items, err == nil
}

func (s *Source) maxNet() string {
	return s.now().UTC().Add(s.lookahead).Format(time.RFC3339)
}

// fetchAll follows "next" links up to maxPages and returns every record
// collected, including those from pages before a failure.
func fetchAll[T any](ctx context.Context, s *Source, pageURL string) ([]T, error) {
	var all []T

	for page := 0; page < s.maxPages && pageURL != ""; page++ {
		var resp PageResponse[T]
		if err := s.fetchPage(ctx, pageURL, &resp); err != nil {
			return all, fmt.Errorf("fetch page %d: %w", page, err)
		}

		all = append(all, resp.Results...)

		s.logger.Debug("fetched page",
			"page", page,
			"results", len(resp.Results),
			"total", len(all),
		)

		pageURL = ""
		if resp.Next != nil {
			pageURL = *resp.Next
		}
	}

	return all, nil
}

func (s *Source) fetchPage(ctx context.Context, url string, out any) error {
	var err error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		err = s.doRequest(ctx, url, out)
		if err == nil {
			return nil
		}

		if attempt == s.maxAttempts {
			break
		}

		backoff := s.calculateBackoff(attempt)
		s.logger.Warn("request failed, retrying",
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}

	return fmt.Errorf("after %d attempts: %w", s.maxAttempts, err)
}

func (s *Source) doRequest(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "LiveLaunch/1.0")
	if s.token != "" {
		req.Header.Set("Authorization", "Token "+s.token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func (s *Source) calculateBackoff(attempt int) time.Duration {
	backoff := s.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > s.maxBackoff {
		backoff = s.maxBackoff
	}
	return backoff
}

func (s *Source) transformLaunch(l Launch) (domain.TimelineItem, bool) {
	if l.ID == "" {
		s.logger.Warn("skipping launch without id", "name", l.Name)
		return domain.TimelineItem{}, false
	}

	net, err := time.Parse(time.RFC3339, l.Net)
	if err != nil {
		s.logger.Warn("failed to parse net",
			"external_id", l.ID,
			"net", l.Net,
		)
		return domain.TimelineItem{}, false
	}

	status := 0
	if l.Status != nil {
		status = l.Status.ID
	}

	name := l.Name
	if l.NetPrecision != nil {
		name = NamePrefix(net, l.NetPrecision.ID) + name
	} else if status == domain.StatusTBD {
		name = "[TBD] " + name
	}

	var desc *string
	if l.Mission != nil {
		desc = TruncateDescription(l.Mission.Description)
	}

	location := "Unknown"
	if l.Pad != nil && l.Pad.Location != nil && l.Pad.Location.Name != "" {
		location = l.Pad.Location.Name
	}

	item := domain.TimelineItem{
		ID:          launchPrefix + l.ID,
		ExternalID:  l.ID,
		Kind:        domain.KindLaunch,
		Name:        name,
		Description: desc,
		PrimaryURL:  PickVideo(l.VidURLs),
		ImageURL:    ValidImageURL(l.Image),
		Start:       net,
		End:         net.Add(DefaultEventDuration),
		Location:    location,
		IsLiveNow:   l.WebcastLive,
		Slug:        l.Slug,
		FlightClub:  l.FlightclubURL != nil && *l.FlightclubURL != "",
		AgencyName:  "Unknown",
		Status:      status,
	}

	if l.LaunchServiceProvider != nil {
		item.AgencyID = l.LaunchServiceProvider.ID
		if l.LaunchServiceProvider.Name != "" {
			item.AgencyName = l.LaunchServiceProvider.Name
		}
	}

	return item, true
}

func (s *Source) transformEvent(e Event) (domain.TimelineItem, bool) {
	date, err := time.Parse(time.RFC3339, e.Date)
	if err != nil {
		s.logger.Warn("failed to parse date",
			"external_id", e.ID,
			"date", e.Date,
		)
		return domain.TimelineItem{}, false
	}

	name := e.Name
	if e.DatePrecision != nil {
		name = NamePrefix(date, e.DatePrecision.ID) + name
	} else {
		name = "[TBD] " + name
	}

	location := "Unknown"
	if e.Location != nil && *e.Location != "" {
		location = *e.Location
	}

	externalID := strconv.FormatInt(e.ID, 10)

	return domain.TimelineItem{
		ID:          eventPrefix + externalID,
		ExternalID:  externalID,
		Kind:        domain.KindEvent,
		Name:        name,
		Description: TruncateDescription(e.Description),
		PrimaryURL:  PickVideo(e.VidURLs),
		ImageURL:    ValidImageURL(e.Image),
		Start:       date,
		End:         date.Add(EventDuration(e.Type, e.Duration)),
		Location:    location,
		IsLiveNow:   e.WebcastLive,
		Slug:        e.Slug,
	}, true
}
