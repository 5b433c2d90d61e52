package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"livelaunch/internal/config"
	"livelaunch/internal/domain"
	"livelaunch/internal/service/mocks"
)

type PipelineTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	timeline  *mocks.MockTimelineSource
	news      *mocks.MockNewsSource
	presence  *mocks.MockPresenceSource
	guilds    *mocks.MockGuildStore
	items     *mocks.MockItemStore
	pollState *mocks.MockPollStateStore
	txManager *mocks.MockTransactionManager
	ledger    *mocks.MockLedger
	deliverer *mocks.MockDeliverer
	platform  *mocks.MockEventPlatform
	links     *mocks.MockEventLinkStore

	pipeline *Pipeline
	cfg      config.PollConfig
}

func (s *PipelineTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.timeline = mocks.NewMockTimelineSource(s.ctrl)
	s.news = mocks.NewMockNewsSource(s.ctrl)
	s.presence = mocks.NewMockPresenceSource(s.ctrl)
	s.guilds = mocks.NewMockGuildStore(s.ctrl)
	s.items = mocks.NewMockItemStore(s.ctrl)
	s.pollState = mocks.NewMockPollStateStore(s.ctrl)
	s.txManager = mocks.NewMockTransactionManager(s.ctrl)
	s.ledger = mocks.NewMockLedger(s.ctrl)
	s.deliverer = mocks.NewMockDeliverer(s.ctrl)
	s.platform = mocks.NewMockEventPlatform(s.ctrl)
	s.links = mocks.NewMockEventLinkStore(s.ctrl)

	s.cfg = config.PollConfig{
		Interval:             3 * time.Minute,
		Deadline:             2 * time.Minute,
		MaxItems:             64,
		Workers:              4,
		CountdownMaxLookback: 15 * time.Minute,
		StreamWindow:         time.Hour,
		RetryWindow:          30 * time.Minute,
	}

	logger := testLogger()
	notifier := NewNotifier(s.deliverer, s.ledger, s.guilds, logger)
	events := NewEventSynchronizer(s.platform, s.links, s.guilds, notifier, logger)

	s.pipeline = NewPipeline(
		s.timeline,
		s.news,
		s.presence,
		[]string{"UCnasa"},
		s.guilds,
		s.items,
		s.pollState,
		s.txManager,
		notifier,
		events,
		logger,
		s.cfg,
	)
	s.pipeline.now = func() time.Time { return base }
}

func (s *PipelineTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestPipelineTestSuite(t *testing.T) {
	suite.Run(t, new(PipelineTestSuite))
}

func (s *PipelineTestSuite) expectTx() {
	s.txManager.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)
}

func (s *PipelineTestSuite) TestPoll_FullCycle() {
	ctx := context.Background()

	launch := testLaunch("a", base.Add(10*time.Minute), 121, domain.StatusInFlight)
	later := testLaunch("b", base.Add(48*time.Hour), 121, domain.StatusTBD)
	event := testEvent("7", base.Add(5*time.Hour))
	article := domain.NewsArticle{ID: 9, Title: "News", NewsSite: "SpaceNews", PublishedAt: base.Add(-time.Hour)}

	guild := testGuild("g1")
	guild.Notify = domain.NotificationToggles{Launch: true, Liftoff: true}
	guild.Countdowns = []int{10}

	s.timeline.EXPECT().Upcoming(gomock.Any()).Return([]domain.TimelineItem{later, launch}, []domain.TimelineItem{event}, true, true)
	s.news.EXPECT().Articles(gomock.Any()).Return([]domain.NewsArticle{article})
	s.presence.EXPECT().Live(gomock.Any(), "UCnasa").Return(domain.LiveStream{}, false)

	s.guilds.EXPECT().ListEnabled(ctx).Return([]domain.GuildPreference{guild}, nil)
	s.pollState.EXPECT().Get(ctx, PollerID).Return(&domain.PollState{
		PollerID:    PollerID,
		LastPollAt:  base.Add(-3 * time.Minute),
		TotalCycles: 4,
	}, nil)

	previous := domain.StateOf(launch)
	previous.Status = domain.StatusGo
	s.items.EXPECT().List(ctx).Return(map[string]domain.ItemState{
		launch.ID:    previous,
		"launch:old": {ItemID: "launch:old"},
	}, nil)

	// countdown at T-10, liftoff status change, news, stream of item a
	s.ledger.EXPECT().HasSent(gomock.Any(), gomock.Any()).Return(false, nil).Times(4)
	s.ledger.EXPECT().MarkSent(gomock.Any(), domain.CountdownKey("g1", launch.ID, 10)).Return(true, nil)
	s.ledger.EXPECT().MarkSent(gomock.Any(), domain.StatusKey("g1", launch.ID, domain.StatusInFlight, base)).Return(true, nil)
	s.ledger.EXPECT().MarkSent(gomock.Any(), domain.NewsKey("g1", 9)).Return(true, nil)
	s.ledger.EXPECT().MarkSent(gomock.Any(), domain.StreamKey("g1", "a")).Return(true, nil)

	var kinds []string
	s.deliverer.EXPECT().
		Deliver(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Destination, msg domain.Message) error {
			kinds = append(kinds, msg.Kind)
			return nil
		}).Times(4)

	s.links.EXPECT().ListByGuild(gomock.Any(), "g1").Return(nil, nil)

	s.expectTx()
	persisted := make(map[string]domain.ItemState)
	s.items.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, state domain.ItemState) error {
			persisted[state.ItemID] = state
			return nil
		}).Times(3)
	s.items.EXPECT().
		DeleteExcept(gomock.Any(), []domain.ItemKind{domain.KindLaunch, domain.KindEvent}, []string{launch.ID, event.ID, later.ID}).
		Return(int64(1), nil)

	s.pollState.EXPECT().
		Update(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, state *domain.PollState) error {
			s.True(state.LastPollAt.Equal(base))
			s.Equal(int64(5), state.TotalCycles)
			return nil
		})

	stats, err := s.pipeline.Poll(ctx)

	s.Require().NoError(err)
	s.NotEmpty(stats.CycleID)
	s.Equal(2, stats.Launches)
	s.Equal(1, stats.Events)
	s.Equal(3, stats.TimelineItems)
	s.Equal(1, stats.Articles)
	s.Equal(1, stats.Streams)
	s.Equal(1, stats.Guilds)
	s.Equal(4, stats.Sent)
	s.False(stats.Skipped)
	s.ElementsMatch([]string{KindCountdown, KindStatus, KindNews, KindStream}, kinds)
	s.Equal(domain.StatusGo, persisted[launch.ID].PrevStatus)
	s.True(persisted[launch.ID].StatusChangedAt.Equal(base))
	s.Zero(persisted[later.ID].PrevStatus)
}

func (s *PipelineTestSuite) TestPoll_LaunchFeedOutageKeepsLaunches() {
	ctx := context.Background()
	launch := testLaunch("a", base.Add(5*time.Hour), 121, domain.StatusGo)
	event := testEvent("b", base.Add(6*time.Hour))
	guild := eventsGuild("g1", 5)

	s.timeline.EXPECT().Upcoming(gomock.Any()).Return(nil, []domain.TimelineItem{event}, false, true)
	s.news.EXPECT().Articles(gomock.Any()).Return(nil)
	s.presence.EXPECT().Live(gomock.Any(), "UCnasa").Return(domain.LiveStream{}, false)

	s.guilds.EXPECT().ListEnabled(ctx).Return([]domain.GuildPreference{guild}, nil)
	s.pollState.EXPECT().Get(ctx, PollerID).Return(&domain.PollState{PollerID: PollerID, LastPollAt: base.Add(-3 * time.Minute)}, nil)
	s.items.EXPECT().List(ctx).Return(map[string]domain.ItemState{
		launch.ID: domain.StateOf(launch),
		event.ID:  domain.StateOf(event),
	}, nil)

	s.links.EXPECT().ListByGuild(gomock.Any(), "g1").Return([]domain.ScheduledEventLink{
		linkFor("g1", launch, "ev-a"),
		linkFor("g1", event, "ev-b"),
	}, nil)

	s.expectTx()
	s.items.EXPECT().Upsert(gomock.Any(), domain.StateOf(event)).Return(nil)
	s.items.EXPECT().
		DeleteExcept(gomock.Any(), []domain.ItemKind{domain.KindEvent}, []string{event.ID}).
		Return(int64(0), nil)

	stats, err := s.pipeline.Poll(ctx)

	s.Require().NoError(err)
	s.Equal(1, stats.TimelineItems)
	s.Zero(stats.EventsDeleted)
	s.Zero(stats.EventsCreated)
}

func (s *PipelineTestSuite) TestPoll_BothFeedsFailedKeepsItemRows() {
	ctx := context.Background()
	launch := testLaunch("a", base.Add(5*time.Hour), 121, domain.StatusGo)

	// records read before a page failed
	s.timeline.EXPECT().Upcoming(gomock.Any()).Return([]domain.TimelineItem{launch}, nil, false, false)
	s.news.EXPECT().Articles(gomock.Any()).Return(nil)
	s.presence.EXPECT().Live(gomock.Any(), "UCnasa").Return(domain.LiveStream{}, false)
	s.guilds.EXPECT().ListEnabled(ctx).Return(nil, nil)
	s.pollState.EXPECT().Get(ctx, PollerID).Return(&domain.PollState{PollerID: PollerID}, nil)
	s.items.EXPECT().List(ctx).Return(map[string]domain.ItemState{}, nil)

	s.expectTx()
	s.items.EXPECT().Upsert(gomock.Any(), domain.StateOf(launch)).Return(nil)

	_, err := s.pipeline.Poll(ctx)

	s.Require().NoError(err)
}

func (s *PipelineTestSuite) TestPoll_EmptyTimelineKeepsState() {
	ctx := context.Background()
	article := domain.NewsArticle{ID: 1, Title: "News", NewsSite: "SpaceNews", PublishedAt: base}
	guild := eventsGuild("g1", 5)

	s.timeline.EXPECT().Upcoming(gomock.Any()).Return(nil, nil, false, false)
	s.news.EXPECT().Articles(gomock.Any()).Return([]domain.NewsArticle{article})
	s.presence.EXPECT().Live(gomock.Any(), "UCnasa").Return(domain.LiveStream{}, false)

	s.guilds.EXPECT().ListEnabled(ctx).Return([]domain.GuildPreference{guild}, nil)
	s.pollState.EXPECT().Get(ctx, PollerID).Return(&domain.PollState{PollerID: PollerID}, nil)
	s.items.EXPECT().List(ctx).Return(map[string]domain.ItemState{}, nil)

	s.ledger.EXPECT().HasSent(gomock.Any(), domain.NewsKey("g1", 1)).Return(false, nil)
	s.deliverer.EXPECT().Deliver(gomock.Any(), guild.News, gomock.Any()).Return(nil)
	s.ledger.EXPECT().MarkSent(gomock.Any(), domain.NewsKey("g1", 1)).Return(true, nil)

	stats, err := s.pipeline.Poll(ctx)

	s.Require().NoError(err)
	s.Equal(0, stats.TimelineItems)
	s.Equal(1, stats.Sent)
}

func (s *PipelineTestSuite) TestPoll_GuildListFailureSkipsCycle() {
	ctx := context.Background()

	s.timeline.EXPECT().Upcoming(gomock.Any()).Return(nil, nil, false, false)
	s.news.EXPECT().Articles(gomock.Any()).Return(nil)
	s.presence.EXPECT().Live(gomock.Any(), "UCnasa").Return(domain.LiveStream{}, false)
	s.guilds.EXPECT().ListEnabled(ctx).Return(nil, errors.New("connection refused"))

	stats, err := s.pipeline.Poll(ctx)

	s.Error(err)
	s.True(stats.Skipped)
}

func (s *PipelineTestSuite) TestPoll_ItemStateFailureSkipsPersistence() {
	ctx := context.Background()
	launch := testLaunch("a", base.Add(5*time.Hour), 121, domain.StatusGo)

	s.timeline.EXPECT().Upcoming(gomock.Any()).Return([]domain.TimelineItem{launch}, nil, true, true)
	s.news.EXPECT().Articles(gomock.Any()).Return(nil)
	s.presence.EXPECT().Live(gomock.Any(), "UCnasa").Return(domain.LiveStream{}, false)
	s.guilds.EXPECT().ListEnabled(ctx).Return(nil, nil)
	s.pollState.EXPECT().Get(ctx, PollerID).Return(nil, errors.New("timeout"))
	s.items.EXPECT().List(ctx).Return(nil, errors.New("timeout"))
	s.pollState.EXPECT().Update(ctx, gomock.Any()).Return(nil)

	stats, err := s.pipeline.Poll(ctx)

	s.Require().NoError(err)
	s.Equal(1, stats.TimelineItems)
}

func (s *PipelineTestSuite) TestPoll_DeadlineStopsBeforePollState() {
	ctx, cancel := context.WithCancel(context.Background())
	launch := testLaunch("a", base.Add(5*time.Hour), 121, domain.StatusGo)

	s.timeline.EXPECT().Upcoming(gomock.Any()).Return([]domain.TimelineItem{launch}, nil, true, true)
	s.news.EXPECT().Articles(gomock.Any()).Return(nil)
	s.presence.EXPECT().Live(gomock.Any(), "UCnasa").Return(domain.LiveStream{}, false)
	s.guilds.EXPECT().ListEnabled(ctx).DoAndReturn(func(context.Context) ([]domain.GuildPreference, error) {
		return []domain.GuildPreference{testGuild("g1")}, nil
	})
	s.pollState.EXPECT().Get(ctx, PollerID).Return(&domain.PollState{PollerID: PollerID}, nil)
	s.items.EXPECT().List(ctx).DoAndReturn(func(context.Context) (map[string]domain.ItemState, error) {
		cancel()
		return map[string]domain.ItemState{}, nil
	})

	s.expectTx()
	s.items.EXPECT().Upsert(gomock.Any(), domain.StateOf(launch)).Return(nil)
	s.items.EXPECT().
		DeleteExcept(gomock.Any(), []domain.ItemKind{domain.KindLaunch, domain.KindEvent}, []string{launch.ID}).
		Return(int64(0), nil)

	_, err := s.pipeline.Poll(ctx)

	s.ErrorIs(err, context.Canceled)
}

func (s *PipelineTestSuite) TestSince() {
	s.True(s.pipeline.since(&domain.PollState{}, base).Equal(base.Add(-3 * time.Minute)))

	recent := &domain.PollState{LastPollAt: base.Add(-4 * time.Minute)}
	s.True(s.pipeline.since(recent, base).Equal(base.Add(-4 * time.Minute)))

	stale := &domain.PollState{LastPollAt: base.Add(-6 * time.Hour)}
	s.True(s.pipeline.since(stale, base).Equal(base.Add(-15 * time.Minute)))
}

func (s *PipelineTestSuite) TestStreams_WindowAndDedup() {
	soon := testLaunch("soon", base.Add(30*time.Minute), 121, domain.StatusGo)
	far := testLaunch("far", base.Add(3*time.Hour), 121, domain.StatusGo)
	notYouTube := testEvent("7", base)
	live := []domain.LiveStream{
		{VideoID: "soon", Title: "duplicate", ChannelID: "UCspacex"},
		{VideoID: "nasa", Title: "NASA Live", ChannelID: "UCnasa"},
	}

	got := s.pipeline.streams([]domain.TimelineItem{soon, far, notYouTube}, live, base)

	s.Require().Len(got, 2)
	s.Equal("soon", got[0].VideoID)
	s.Equal(soon.ID, got[0].ItemID)
	s.Equal("nasa", got[1].VideoID)
}
