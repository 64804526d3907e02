package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"

	"github.com/anchal00/blackjack/internal/db"
	"github.com/anchal00/blackjack/internal/db/mocks"
	"github.com/anchal00/blackjack/internal/game"
	"github.com/anchal00/blackjack/internal/logger"
	"github.com/anchal00/blackjack/internal/state"
)

var start = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type ServiceTestSuite struct {
	suite.Suite
	newRepo func(t *testing.T) db.Repository
	repo    db.Repository
	clock   *quartz.Mock
	service *Service
	ctx     context.Context
}

func TestServiceWithSqlite(t *testing.T) {
	suite.Run(t, &ServiceTestSuite{newRepo: func(t *testing.T) db.Repository {
		store, err := db.SetupDB("sqlite3", ":memory:", logger.Nop())
		require.NoError(t, err)
		return store
	}})
}

func TestServiceWithInMemoryStore(t *testing.T) {
	suite.Run(t, &ServiceTestSuite{newRepo: func(*testing.T) db.Repository {
		return state.NewInMemoryStore()
	}})
}

func (suite *ServiceTestSuite) SetupTest() {
	suite.repo = suite.newRepo(suite.T())
	suite.clock = quartz.NewMock(suite.T())
	suite.clock.Set(start)
	suite.service = New(suite.repo, logger.Nop(), WithClock(suite.clock), WithSeed(99))
	suite.ctx = context.Background()
}

func (suite *ServiceTestSuite) TearDownTest() {
	suite.repo.CloseConnection()
}

// seed stores a game in progress whose deck yields draws first, already dealt.
func (suite *ServiceTestSuite) seed(token, clientID, draws string) *game.Game {
	g := stacked(token, clientID, draws, suite.clock.Now())
	suite.Require().NoError(game.Deal(g))
	suite.Require().NoError(suite.repo.CreateGame(suite.ctx, g))
	return g
}

func stacked(token, clientID, draws string, now time.Time) *game.Game {
	g := game.NewGame(token, clientID, now)
	top := game.MustParseCards(draws)
	for _, c := range game.StandardDeck() {
		if !slices.Contains(top, c) {
			g.Deck = append(g.Deck, c)
		}
	}
	slices.Reverse(top)
	g.Deck = append(g.Deck, top...)
	return g
}

func (suite *ServiceTestSuite) TestDealCreatesGame() {
	g, err := suite.service.Deal(suite.ctx, "client")
	suite.Require().NoError(err)
	suite.NotEmpty(g.Token)
	suite.Equal("client", g.ClientID)
	suite.Equal(game.StatusPlaying, g.Status)
	suite.Equal(start, g.StartedOn.UTC())
	suite.Len(g.Deck, 48)
	suite.Len(g.PlayerCards, 2)
	suite.Len(g.DealerCards, 2)
	suite.NoError(game.Verify(g))
}

func (suite *ServiceTestSuite) TestDealIsIdempotent() {
	first, err := suite.service.Deal(suite.ctx, "client")
	suite.Require().NoError(err)
	second, err := suite.service.Deal(suite.ctx, "client")
	suite.Require().NoError(err)
	suite.Equal(first.Token, second.Token)
	suite.Equal(first.PlayerCards, second.PlayerCards)
	suite.Equal(first.DealerCards, second.DealerCards)

	for range 2 {
		active, err := suite.service.ActiveGame(suite.ctx, "client", "")
		suite.Require().NoError(err)
		suite.Equal(first.Token, active.Token)
		suite.Equal(first.PlayerCards, active.PlayerCards)
	}
	byToken, err := suite.service.ActiveGame(suite.ctx, "someone-else", first.Token)
	suite.Require().NoError(err)
	suite.Equal(first.DealerCards, byToken.DealerCards)
}

func (suite *ServiceTestSuite) TestNoActiveGame() {
	_, err := suite.service.ActiveGame(suite.ctx, "client", "")
	suite.ErrorIs(err, ErrNoActiveGame)
	_, err = suite.service.Hit(suite.ctx, "client", "")
	suite.ErrorIs(err, ErrNoActiveGame)
	_, err = suite.service.Stand(suite.ctx, "client", "missing-token")
	suite.ErrorIs(err, ErrNoActiveGame)
	_, err = suite.service.Stats(suite.ctx, "client")
	suite.ErrorIs(err, ErrNoStats)
}

func (suite *ServiceTestSuite) TestHitKeepsPlaying() {
	suite.seed("t1", "client", "5♠,10♥,6♦,7♣,2♠")
	g, err := suite.service.Hit(suite.ctx, "client", "")
	suite.Require().NoError(err)
	suite.Equal(game.StatusPlaying, g.Status)
	suite.Equal(13, g.PlayerValue())
	suite.Len(g.Deck, 47)

	stored, err := suite.service.ActiveGame(suite.ctx, "client", "t1")
	suite.Require().NoError(err)
	suite.Equal(g.PlayerCards, stored.PlayerCards)

	_, err = suite.service.Stats(suite.ctx, "client")
	suite.ErrorIs(err, ErrNoStats)
}

func (suite *ServiceTestSuite) TestHitBustRecordsLoss() {
	suite.seed("t1", "client", "10♠,2♥,6♦,3♣,K♠")
	g, err := suite.service.Hit(suite.ctx, "client", "t1")
	suite.Require().NoError(err)
	suite.Equal(game.StatusBust, g.Status)

	stat, err := suite.service.Stats(suite.ctx, "client")
	suite.Require().NoError(err)
	suite.Equal(&game.Stat{ClientID: "client", Losses: 1}, stat)

	_, err = suite.service.ActiveGame(suite.ctx, "client", "")
	suite.ErrorIs(err, ErrNoActiveGame)
	_, err = suite.service.Hit(suite.ctx, "client", "t1")
	suite.ErrorIs(err, ErrNoActiveGame)
}

func (suite *ServiceTestSuite) TestStandNaturalWins() {
	suite.seed("t1", "client", "A♠,10♥,K♦,8♣")
	g, err := suite.service.Stand(suite.ctx, "client", "")
	suite.Require().NoError(err)
	suite.Equal(game.StatusPlayerWins, g.Status)
	suite.Equal(21, g.PlayerValue())
	suite.Equal(18, g.DealerValue())

	stat, err := suite.service.Stats(suite.ctx, "client")
	suite.Require().NoError(err)
	suite.Equal(&game.Stat{ClientID: "client", Wins: 1}, stat)
}

func (suite *ServiceTestSuite) TestStandOutcomes() {
	tests := []struct {
		client string
		draws  string
		want   game.Status
	}{
		{"dealer-bust", "10♠,10♥,8♦,6♣,9♠", game.StatusDealerBust},
		{"dealer-wins", "10♠,10♥,7♦,9♣", game.StatusDealerWins},
		{"draw", "10♠,10♥,8♦,8♣", game.StatusDraw},
	}
	for i, tt := range tests {
		suite.seed(fmt.Sprintf("t%d", i), tt.client, tt.draws)
		g, err := suite.service.Stand(suite.ctx, tt.client, "")
		suite.Require().NoError(err)
		suite.Equal(tt.want, g.Status, tt.client)

		stat, err := suite.service.Stats(suite.ctx, tt.client)
		suite.Require().NoError(err)
		want := game.Stat{ClientID: tt.client}
		want.Record(tt.want.Outcome())
		suite.Equal(&want, stat)
	}
}

func (suite *ServiceTestSuite) TestStatsAccumulateAcrossRounds() {
	for i := range 5 {
		g, err := suite.service.Deal(suite.ctx, "client")
		suite.Require().NoError(err)
		suite.Require().Equal(game.StatusPlaying, g.Status, "round %d", i)
		_, err = suite.service.Stand(suite.ctx, "client", g.Token)
		suite.Require().NoError(err)
		suite.clock.Advance(time.Minute)
	}
	stat, err := suite.service.Stats(suite.ctx, "client")
	suite.Require().NoError(err)
	suite.Equal(int64(5), stat.Total())

	history, err := suite.service.History(suite.ctx, "client", nil)
	suite.Require().NoError(err)
	suite.Len(history, 5)

	since := start.Add(150 * time.Second)
	recent, err := suite.service.History(suite.ctx, "client", &since)
	suite.Require().NoError(err)
	suite.Len(recent, 2)
}

func (suite *ServiceTestSuite) TestHistoryExcludesGameInProgress() {
	suite.seed("t1", "client", "A♠,10♥,K♦,8♣")
	_, err := suite.service.Stand(suite.ctx, "client", "")
	suite.Require().NoError(err)
	_, err = suite.service.Deal(suite.ctx, "client")
	suite.Require().NoError(err)

	history, err := suite.service.History(suite.ctx, "client", nil)
	suite.Require().NoError(err)
	suite.Require().Len(history, 1)
	suite.Equal("t1", history[0].Token)

	n, err := suite.service.DeleteHistory(suite.ctx, "client", "")
	suite.Require().NoError(err)
	suite.Equal(int64(1), n)
	_, err = suite.service.ActiveGame(suite.ctx, "client", "")
	suite.NoError(err)
}

func (suite *ServiceTestSuite) TestConcurrentDealsCreateOneGame() {
	tokens := make([]string, 20)
	var group errgroup.Group
	for i := range tokens {
		group.Go(func() error {
			g, err := suite.service.Deal(suite.ctx, "client")
			if err != nil {
				return err
			}
			tokens[i] = g.Token
			return nil
		})
	}
	suite.Require().NoError(group.Wait())
	for _, token := range tokens {
		suite.Equal(tokens[0], token)
	}
}

func (suite *ServiceTestSuite) TestConcurrentHitsNeverDoubleDeal() {
	suite.seed("t1", "client", "2♠,10♥,2♦,7♣")
	var hits atomic.Int64
	var group errgroup.Group
	for range 30 {
		group.Go(func() error {
			_, err := suite.service.Hit(suite.ctx, "client", "t1")
			switch {
			case err == nil:
				hits.Add(1)
				return nil
			case errors.Is(err, ErrNoActiveGame):
				return nil
			}
			return err
		})
	}
	suite.Require().NoError(group.Wait())
	suite.assertSingleBust("client", "t1", hits.Load())
}

// Two service instances share one store, as two server processes would. They
// do not share client locks, so the store's versioning must reject stale writes.
func (suite *ServiceTestSuite) TestConcurrentHitsAcrossInstances() {
	suite.seed("t1", "client", "2♠,10♥,2♦,7♣")
	other := New(suite.repo, logger.Nop(), WithClock(suite.clock))
	var hits atomic.Int64
	var group errgroup.Group
	for i := range 30 {
		s := suite.service
		if i%2 == 1 {
			s = other
		}
		group.Go(func() error {
			for {
				_, err := s.Hit(suite.ctx, "client", "t1")
				switch {
				case err == nil:
					hits.Add(1)
					return nil
				case errors.Is(err, db.ErrStaleGame):
					continue
				case errors.Is(err, ErrNoActiveGame):
					return nil
				}
				return err
			}
		})
	}
	suite.Require().NoError(group.Wait())
	suite.assertSingleBust("client", "t1", hits.Load())
}

func (suite *ServiceTestSuite) assertSingleBust(clientID, token string, hits int64) {
	history, err := suite.service.History(suite.ctx, clientID, nil)
	suite.Require().NoError(err)
	suite.Require().Len(history, 1)
	g := history[0]
	suite.Equal(token, g.Token)
	suite.Equal(game.StatusBust, g.Status)
	suite.Equal(int64(len(g.PlayerCards)-2), hits)
	suite.NoError(game.Verify(g))

	stat, err := suite.service.Stats(suite.ctx, clientID)
	suite.Require().NoError(err)
	suite.Equal(&game.Stat{ClientID: clientID, Losses: 1}, stat)
}

func TestStandSaveFailureReturnsNoGame(t *testing.T) {
	repo := mocks.NewRepository(t)
	g := stacked("t1", "client", "A♠,10♥,K♦,8♣", start)
	require.NoError(t, game.Deal(g))
	repo.On("GetActiveGameByClient", mock.Anything, "client").Return(g, nil)
	repo.On("FinishGame", mock.Anything, mock.AnythingOfType("*game.Game"), game.OutcomeWin).Return(errors.New("disk full"))

	s := New(repo, logger.Nop())
	got, err := s.Stand(context.Background(), "client", "")
	require.Error(t, err)
	require.Nil(t, got)
}

func TestCorruptGameIsRejected(t *testing.T) {
	repo := mocks.NewRepository(t)
	g := stacked("t1", "client", "A♠,10♥,K♦,8♣", start)
	require.NoError(t, game.Deal(g))
	g.Deck = g.Deck[1:]
	repo.On("GetActiveGameByToken", mock.Anything, "t1").Return(g, nil)

	s := New(repo, logger.Nop())
	_, err := s.Hit(context.Background(), "client", "t1")
	require.ErrorIs(t, err, game.ErrInvariant)
	repo.AssertNotCalled(t, "UpdateGame", mock.Anything, mock.Anything)
}

func TestDealLosesCreateRace(t *testing.T) {
	repo := mocks.NewRepository(t)
	winner := stacked("winner", "client", "A♠,10♥,K♦,8♣", start)
	require.NoError(t, game.Deal(winner))
	repo.On("GetActiveGameByClient", mock.Anything, "client").Return(nil, db.ErrNotFound).Once()
	repo.On("CreateGame", mock.Anything, mock.AnythingOfType("*game.Game")).Return(db.ErrActiveGameExists)
	repo.On("GetActiveGameByClient", mock.Anything, "client").Return(winner, nil).Once()

	s := New(repo, logger.Nop(), WithTokenGenerator(func() string { return "loser" }))
	g, err := s.Deal(context.Background(), "client")
	require.NoError(t, err)
	require.Equal(t, "winner", g.Token)
}
