package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"livelaunch/internal/domain"
	"livelaunch/internal/service/mocks"
)

type NotifierTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	deliverer *mocks.MockDeliverer
	ledger    *mocks.MockLedger
	guilds    *mocks.MockGuildStore

	notifier *Notifier
}

func (s *NotifierTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.deliverer = mocks.NewMockDeliverer(s.ctrl)
	s.ledger = mocks.NewMockLedger(s.ctrl)
	s.guilds = mocks.NewMockGuildStore(s.ctrl)

	s.notifier = NewNotifier(s.deliverer, s.ledger, s.guilds, testLogger())
}

func (s *NotifierTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestNotifierTestSuite(t *testing.T) {
	suite.Run(t, new(NotifierTestSuite))
}

func (s *NotifierTestSuite) countdownGuild(id string, minutes ...int) domain.GuildPreference {
	g := testGuild(id)
	g.Notify.Launch = true
	g.Notify.Event = true
	g.Countdowns = minutes
	return g
}

func (s *NotifierTestSuite) TestCountdown_SentOnceAndMarked() {
	ctx := context.Background()
	item := testLaunch("a", base.Add(10*time.Minute), 121, domain.StatusGo)
	c := newCycle("c1", base, base.Add(-3*time.Minute), []domain.TimelineItem{item})
	guild := s.countdownGuild("g1", 10, 60)
	key := domain.CountdownKey("g1", item.ID, 10)

	s.ledger.EXPECT().HasSent(ctx, key).Return(false, nil)
	s.deliverer.EXPECT().
		Deliver(ctx, guild.Notifications, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Destination, msg domain.Message) error {
			s.Equal(KindCountdown, msg.Kind)
			s.Equal(item.Name, msg.Title)
			s.Contains(msg.Body, "10 minutes")
			return nil
		})
	s.ledger.EXPECT().MarkSent(ctx, key).Return(true, nil)

	s.notifier.Notify(ctx, c, &guild)

	s.Equal(int64(1), c.sent.Load())
}

func (s *NotifierTestSuite) TestCountdown_RepeatedCyclesDeliverOnce() {
	ctx := context.Background()
	item := testLaunch("a", base.Add(10*time.Minute), 121, domain.StatusGo)
	guild := s.countdownGuild("g1", 10)
	key := domain.CountdownKey("g1", item.ID, 10)

	sent := false
	s.ledger.EXPECT().HasSent(ctx, key).DoAndReturn(func(context.Context, domain.SentKey) (bool, error) {
		return sent, nil
	}).Times(2)
	s.ledger.EXPECT().MarkSent(ctx, key).DoAndReturn(func(context.Context, domain.SentKey) (bool, error) {
		sent = true
		return true, nil
	})
	s.deliverer.EXPECT().Deliver(ctx, guild.Notifications, gomock.Any()).Return(nil).Times(1)

	// The second cycle overlaps the first window, as after a missed poll.
	first := newCycle("c1", base, base.Add(-3*time.Minute), []domain.TimelineItem{item})
	second := newCycle("c2", base.Add(time.Minute), base.Add(-3*time.Minute), []domain.TimelineItem{item})

	s.notifier.Notify(ctx, first, &guild)
	s.notifier.Notify(ctx, second, &guild)
}

func (s *NotifierTestSuite) TestCountdown_NotCrossed() {
	ctx := context.Background()
	item := testLaunch("a", base.Add(30*time.Minute), 121, domain.StatusGo)
	c := newCycle("c1", base, base.Add(-3*time.Minute), []domain.TimelineItem{item})
	guild := s.countdownGuild("g1", 10, 60)

	s.notifier.Notify(ctx, c, &guild)
}

func (s *NotifierTestSuite) TestCountdown_ThresholdOnLowerBoundIsNotCrossed() {
	c := newCycle("c1", base, base.Add(-3*time.Minute), nil)

	s.False(c.Crossed(base.Add(7*time.Minute), 10))
	s.True(c.Crossed(base.Add(8*time.Minute), 10))
	s.True(c.Crossed(base.Add(10*time.Minute), 10))
	s.False(c.Crossed(base.Add(11*time.Minute), 10))
}

func (s *NotifierTestSuite) TestCountdown_DeliveryFailureDoesNotMark() {
	ctx := context.Background()
	item := testLaunch("a", base.Add(10*time.Minute), 121, domain.StatusGo)
	c := newCycle("c1", base, base.Add(-3*time.Minute), []domain.TimelineItem{item})
	guild := s.countdownGuild("g1", 10)

	s.ledger.EXPECT().HasSent(ctx, gomock.Any()).Return(false, nil)
	s.deliverer.EXPECT().Deliver(ctx, gomock.Any(), gomock.Any()).Return(errors.New("timeout"))

	s.notifier.Notify(ctx, c, &guild)

	s.Equal(int64(1), c.failed.Load())
	s.Equal(int64(0), c.sent.Load())
}

func (s *NotifierTestSuite) TestCountdown_LedgerErrorSkips() {
	ctx := context.Background()
	item := testLaunch("a", base.Add(10*time.Minute), 121, domain.StatusGo)
	c := newCycle("c1", base, base.Add(-3*time.Minute), []domain.TimelineItem{item})
	guild := s.countdownGuild("g1", 10)

	s.ledger.EXPECT().HasSent(ctx, gomock.Any()).Return(false, errors.New("connection reset"))

	s.notifier.Notify(ctx, c, &guild)
}

func (s *NotifierTestSuite) TestCountdown_KindToggle() {
	ctx := context.Background()
	ev := testEvent("7", base.Add(10*time.Minute))
	c := newCycle("c1", base, base.Add(-3*time.Minute), []domain.TimelineItem{ev})
	guild := s.countdownGuild("g1", 10)
	guild.Notify.Event = false

	s.notifier.Notify(ctx, c, &guild)
}

func (s *NotifierTestSuite) TestCountdown_AgencyFilterPolarity() {
	ctx := context.Background()
	excluded := testLaunch("a", base.Add(10*time.Minute), 44, domain.StatusGo)
	other := testLaunch("b", base.Add(10*time.Minute), 121, domain.StatusGo)
	c := newCycle("c1", base, base.Add(-3*time.Minute), []domain.TimelineItem{excluded, other})

	exclude := s.countdownGuild("exclude", 10)
	exclude.Agencies = domain.NewIntFilter(true, 44)
	include := s.countdownGuild("include", 10)
	include.Agencies = domain.NewIntFilter(false, 44)

	s.ledger.EXPECT().HasSent(ctx, domain.CountdownKey("exclude", other.ID, 10)).Return(false, nil)
	s.ledger.EXPECT().MarkSent(ctx, domain.CountdownKey("exclude", other.ID, 10)).Return(true, nil)
	s.ledger.EXPECT().HasSent(ctx, domain.CountdownKey("include", excluded.ID, 10)).Return(false, nil)
	s.ledger.EXPECT().MarkSent(ctx, domain.CountdownKey("include", excluded.ID, 10)).Return(true, nil)

	s.deliverer.EXPECT().
		Deliver(ctx, exclude.Notifications, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Destination, msg domain.Message) error {
			s.Equal(other.Name, msg.Title)
			return nil
		})
	s.deliverer.EXPECT().
		Deliver(ctx, include.Notifications, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Destination, msg domain.Message) error {
			s.Equal(excluded.Name, msg.Title)
			return nil
		})

	s.notifier.Notify(ctx, c, &exclude)
	s.notifier.Notify(ctx, c, &include)
}

func (s *NotifierTestSuite) TestStatusChange_LiftoffOnlyForToggledGuild() {
	ctx := context.Background()
	item := testLaunch("a", base.Add(-time.Minute), 121, domain.StatusInFlight)
	c := newCycle("c1", base, base.Add(-3*time.Minute), []domain.TimelineItem{item})
	c.detectChanges(map[string]domain.ItemState{
		item.ID: {ItemID: item.ID, Kind: domain.KindLaunch, Status: domain.StatusGo, Start: item.Start, End: item.End},
	}, time.Hour)

	toggled := testGuild("toggled")
	toggled.Notify.Liftoff = true
	untoggled := testGuild("untoggled")
	untoggled.Notify.Go = true
	key := domain.StatusKey("toggled", item.ID, domain.StatusInFlight, base)

	s.ledger.EXPECT().HasSent(ctx, key).Return(false, nil)
	s.ledger.EXPECT().MarkSent(ctx, key).Return(true, nil)
	s.deliverer.EXPECT().
		Deliver(ctx, toggled.Notifications, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Destination, msg domain.Message) error {
			s.Equal(KindStatus, msg.Kind)
			s.Contains(msg.Body, "Go for Launch")
			s.Contains(msg.Body, "Launch in Flight")
			return nil
		}).Times(1)

	s.notifier.Notify(ctx, c, &toggled)
	s.notifier.Notify(ctx, c, &untoggled)
}

func (s *NotifierTestSuite) TestStatusChange_UnchangedOrNewItemsAreQuiet() {
	ctx := context.Background()
	same := testLaunch("a", base.Add(time.Hour), 121, domain.StatusGo)
	fresh := testLaunch("b", base.Add(time.Hour), 121, domain.StatusInFlight)
	c := newCycle("c1", base, base.Add(-3*time.Minute), []domain.TimelineItem{same, fresh})
	c.detectChanges(map[string]domain.ItemState{same.ID: domain.StateOf(same)}, time.Hour)

	guild := testGuild("g1")
	guild.Notify.Go = true
	guild.Notify.Liftoff = true

	s.Empty(c.Changes)
	s.notifier.Notify(ctx, c, &guild)
}

func (s *NotifierTestSuite) TestT0Change() {
	ctx := context.Background()
	item := testLaunch("a", base.Add(2*time.Hour), 121, domain.StatusGo)
	previous := domain.StateOf(item)
	previous.Start = base.Add(time.Hour)
	c := newCycle("c1", base, base.Add(-3*time.Minute), []domain.TimelineItem{item})
	c.detectChanges(map[string]domain.ItemState{item.ID: previous}, time.Hour)

	guild := testGuild("g1")
	guild.Notify.T0Change = true
	key := domain.T0ChangeKey("g1", item.ID, item.Start)

	s.ledger.EXPECT().HasSent(ctx, key).Return(false, nil)
	s.deliverer.EXPECT().
		Deliver(ctx, guild.Notifications, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Destination, msg domain.Message) error {
			s.Equal(KindT0Change, msg.Kind)
			return nil
		})
	s.ledger.EXPECT().MarkSent(ctx, key).Return(true, nil)

	s.notifier.Notify(ctx, c, &guild)
}

func (s *NotifierTestSuite) TestStatusChange_FailedDeliveryRetriedNextCycle() {
	ctx := context.Background()
	item := testLaunch("a", base.Add(time.Minute), 121, domain.StatusInFlight)
	previous := domain.StateOf(item)
	previous.Status = domain.StatusGo

	guild := testGuild("g1")
	guild.Notify.Liftoff = true
	key := domain.StatusKey("g1", item.ID, domain.StatusInFlight, base)

	first := newCycle("c1", base, base.Add(-3*time.Minute), []domain.TimelineItem{item})
	first.detectChanges(map[string]domain.ItemState{item.ID: previous}, 30*time.Minute)

	s.ledger.EXPECT().HasSent(ctx, key).Return(false, nil).Times(2)
	gomock.InOrder(
		s.deliverer.EXPECT().Deliver(ctx, guild.Notifications, gomock.Any()).Return(errors.New("503")),
		s.deliverer.EXPECT().
			Deliver(ctx, guild.Notifications, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.Destination, msg domain.Message) error {
				s.Contains(msg.Body, "Go for Launch")
				s.Contains(msg.Body, "Launch in Flight")
				return nil
			}),
	)
	s.ledger.EXPECT().MarkSent(ctx, key).Return(true, nil)

	s.notifier.Notify(ctx, first, &guild)

	// the state stored after the first cycle already carries the new status
	second := newCycle("c2", base.Add(3*time.Minute), base, []domain.TimelineItem{item})
	second.detectChanges(map[string]domain.ItemState{item.ID: first.State(item)}, 30*time.Minute)
	s.Require().Contains(second.Changes, item.ID)

	s.notifier.Notify(ctx, second, &guild)
}

func (s *NotifierTestSuite) TestStatusChange_PendingExpiresAfterRetryWindow() {
	ctx := context.Background()
	item := testLaunch("a", base.Add(time.Hour), 121, domain.StatusHold)
	stored := domain.StateOf(item)
	stored.PrevStatus = domain.StatusGo
	stored.StatusChangedAt = base.Add(-time.Hour)

	c := newCycle("c1", base, base.Add(-3*time.Minute), []domain.TimelineItem{item})
	c.detectChanges(map[string]domain.ItemState{item.ID: stored}, 30*time.Minute)

	guild := testGuild("g1")
	guild.Notify.Hold = true

	s.Empty(c.Changes)
	s.Equal(stored, c.State(item))
	s.notifier.Notify(ctx, c, &guild)
}

func (s *NotifierTestSuite) TestNews_FilteredAndGuarded() {
	ctx := context.Background()
	c := newCycle("c1", base, base.Add(-3*time.Minute), nil)
	c.Articles = []domain.NewsArticle{
		{ID: 1, Title: "Allowed", NewsSite: "SpaceNews", PublishedAt: base.Add(-time.Hour)},
		{ID: 2, Title: "Blocked", NewsSite: "Teslarati", PublishedAt: base.Add(-time.Hour)},
		{ID: 3, Title: "Already sent", NewsSite: "spacenews", PublishedAt: base.Add(-time.Hour)},
		{ID: 4, Title: "Before enable", NewsSite: "SpaceNews", PublishedAt: base.Add(-48 * time.Hour)},
	}

	guild := testGuild("g1")
	guild.News.Since = base.Add(-24 * time.Hour)
	guild.NewsSites = domain.NewNameFilter(true, "teslarati")

	s.ledger.EXPECT().HasSent(ctx, domain.NewsKey("g1", 1)).Return(false, nil)
	s.ledger.EXPECT().HasSent(ctx, domain.NewsKey("g1", 3)).Return(true, nil)
	s.deliverer.EXPECT().
		Deliver(ctx, guild.News, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Destination, msg domain.Message) error {
			s.Equal(KindNews, msg.Kind)
			s.Equal("Allowed", msg.Title)
			s.Equal("SpaceNews", msg.Username)
			return nil
		})
	s.ledger.EXPECT().MarkSent(ctx, domain.NewsKey("g1", 1)).Return(true, nil)

	s.notifier.Notify(ctx, c, &guild)
}

func (s *NotifierTestSuite) TestNews_TrackDisabled() {
	ctx := context.Background()
	c := newCycle("c1", base, base.Add(-3*time.Minute), nil)
	c.Articles = []domain.NewsArticle{{ID: 1, Title: "A", NewsSite: "SpaceNews", PublishedAt: base}}

	guild := testGuild("g1")
	guild.News = domain.Destination{}

	s.notifier.Notify(ctx, c, &guild)
}

func (s *NotifierTestSuite) TestStreams_AgencyFilterAppliesToTimelineStreams() {
	ctx := context.Background()
	item := testLaunch("vid1", base, 44, domain.StatusGo)
	c := newCycle("c1", base, base.Add(-3*time.Minute), []domain.TimelineItem{item})
	c.Streams = []domain.LiveStream{
		{VideoID: "vid1", Title: item.Name, ItemID: item.ID},
		{VideoID: "nasa", Title: "NASA Live", ChannelID: "UCnasa", ChannelName: "NASA"},
	}

	guild := testGuild("g1")
	guild.Agencies = domain.NewIntFilter(true, 44)

	s.ledger.EXPECT().HasSent(ctx, domain.StreamKey("g1", "nasa")).Return(false, nil)
	s.deliverer.EXPECT().
		Deliver(ctx, guild.Messages, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Destination, msg domain.Message) error {
			s.Equal(KindStream, msg.Kind)
			s.Equal("https://www.youtube.com/watch?v=nasa", msg.Content)
			s.Equal("NASA", msg.Username)
			return nil
		})
	s.ledger.EXPECT().MarkSent(ctx, domain.StreamKey("g1", "nasa")).Return(true, nil)

	s.notifier.Notify(ctx, c, &guild)
}

func (s *NotifierTestSuite) TestWebhookGoneClearsTrack() {
	ctx := context.Background()
	c := newCycle("c1", base, base.Add(-3*time.Minute), nil)
	c.Articles = []domain.NewsArticle{
		{ID: 1, Title: "A", NewsSite: "SpaceNews", PublishedAt: base},
		{ID: 2, Title: "B", NewsSite: "SpaceNews", PublishedAt: base},
	}
	guild := testGuild("g1")

	s.ledger.EXPECT().HasSent(ctx, domain.NewsKey("g1", 1)).Return(false, nil)
	s.deliverer.EXPECT().Deliver(ctx, guild.News, gomock.Any()).Return(domain.ErrNotFound)
	s.guilds.EXPECT().ClearTrack(ctx, "g1", domain.TrackNews).Return(nil)

	s.notifier.Notify(ctx, c, &guild)

	s.False(guild.News.Enabled())
}

func (s *NotifierTestSuite) TestEventCreated_RespectsToggle() {
	ctx := context.Background()
	item := testLaunch("a", base.Add(time.Hour), 121, domain.StatusGo)
	c := newCycle("c1", base, base.Add(-3*time.Minute), []domain.TimelineItem{item})

	off := testGuild("off")
	s.notifier.EventCreated(ctx, c, &off, item)

	on := testGuild("on")
	on.Notify.ScheduledEvent = true
	s.deliverer.EXPECT().
		Deliver(ctx, on.Notifications, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Destination, msg domain.Message) error {
			s.Equal(KindScheduledEvent, msg.Kind)
			return nil
		})
	s.notifier.EventCreated(ctx, c, &on, item)
}

func (s *NotifierTestSuite) TestCancelledContextSendsNothing() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	item := testLaunch("a", base.Add(10*time.Minute), 121, domain.StatusGo)
	c := newCycle("c1", base, base.Add(-3*time.Minute), []domain.TimelineItem{item})
	c.Articles = []domain.NewsArticle{{ID: 1, Title: "A", NewsSite: "SpaceNews", PublishedAt: base}}
	guild := s.countdownGuild("g1", 10)

	s.notifier.Notify(ctx, c, &guild)
}
