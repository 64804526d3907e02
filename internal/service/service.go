package service

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/anchal00/blackjack/internal/db"
	"github.com/anchal00/blackjack/internal/game"
	"github.com/anchal00/blackjack/internal/logger"
	"github.com/anchal00/blackjack/internal/state"
)

var (
	ErrNoActiveGame = errors.New("no active game")
	ErrNoStats      = errors.New("device has no recorded stats")
)

// Service runs blackjack rounds on top of a db.Repository. Every mutating
// call holds the client's lock from load to save, so requests from one
// client never interleave.
type Service struct {
	repo     db.Repository
	locks    *state.ClientLocks
	clock    quartz.Clock
	logger   logger.Logger
	newToken func() string

	rngMu sync.Mutex
	rng   *rand.Rand
}

type Option func(*Service)

func WithClock(clock quartz.Clock) Option {
	return func(s *Service) { s.clock = clock }
}

// WithSeed makes deck shuffles reproducible. A zero seed keeps the global source.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		if seed != 0 {
			s.rng = game.NewRand(seed)
		}
	}
}

func WithTokenGenerator(newToken func() string) Option {
	return func(s *Service) { s.newToken = newToken }
}

func New(repo db.Repository, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		locks:    state.NewClientLocks(),
		clock:    quartz.NewReal(),
		logger:   log.Named("service"),
		newToken: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Deal returns the client's game in progress, or starts a new one.
func (s *Service) Deal(ctx context.Context, clientID string) (*game.Game, error) {
	unlock := s.locks.Lock(clientID)
	defer unlock()

	g, err := s.load(ctx, clientID, "")
	if !errors.Is(err, ErrNoActiveGame) {
		return g, err
	}
	g = game.NewGame(s.newToken(), clientID, s.clock.Now())
	s.shuffle(g)
	if err := game.Deal(g); err != nil {
		return nil, err
	}
	err = s.repo.CreateGame(ctx, g)
	if errors.Is(err, db.ErrActiveGameExists) {
		// Another server instance dealt first.
		return s.load(ctx, clientID, "")
	}
	if err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}
	s.logger.Info(fmt.Sprintf("Created new game for %s:%s", clientID, g.Token))
	return g, nil
}

func (s *Service) shuffle(g *game.Game) {
	if s.rng == nil {
		game.CreateDeck(g, nil)
		return
	}
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	game.CreateDeck(g, s.rng)
}

// ActiveGame looks up the game in progress by token, or by client when token is empty.
func (s *Service) ActiveGame(ctx context.Context, clientID, token string) (*game.Game, error) {
	return s.load(ctx, clientID, token)
}

func (s *Service) load(ctx context.Context, clientID, token string) (*game.Game, error) {
	var g *game.Game
	var err error
	if token == "" {
		g, err = s.repo.GetActiveGameByClient(ctx, clientID)
	} else {
		g, err = s.repo.GetActiveGameByToken(ctx, token)
	}
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrNoActiveGame
	}
	if err != nil {
		if errors.Is(err, game.ErrInvariant) {
			s.logger.With("client", clientID).Error("Corrupt game state", err)
		}
		return nil, err
	}
	if err := game.Verify(g); err != nil {
		s.logger.With("client", clientID).Error("Corrupt game state", err)
		return nil, err
	}
	return g, nil
}

// Hit draws a card for the player. A bust ends the round and is recorded as a loss.
func (s *Service) Hit(ctx context.Context, clientID, token string) (*game.Game, error) {
	unlock := s.locks.Lock(clientID)
	defer unlock()

	g, err := s.load(ctx, clientID, token)
	if err != nil {
		return nil, err
	}
	if err := game.Hit(g); err != nil {
		return nil, err
	}
	s.logger.Debug(fmt.Sprintf("HIT: %s", g.Token))
	if g.Status.Terminal() {
		if err := s.finish(ctx, g, g.Status.Outcome()); err != nil {
			return nil, err
		}
		return g, nil
	}
	if err := s.repo.UpdateGame(ctx, g); err != nil {
		return nil, fmt.Errorf("save game %s: %w", g.Token, err)
	}
	return g, nil
}

// Stand lets the dealer draw out, resolves the round and records the outcome.
func (s *Service) Stand(ctx context.Context, clientID, token string) (*game.Game, error) {
	unlock := s.locks.Lock(clientID)
	defer unlock()

	g, err := s.load(ctx, clientID, token)
	if err != nil {
		return nil, err
	}
	outcome, err := game.Stand(g)
	if err != nil {
		return nil, err
	}
	s.logger.Debug(fmt.Sprintf("STAND: %s", g.Token))
	if err := s.finish(ctx, g, outcome); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Service) finish(ctx context.Context, g *game.Game, outcome game.Outcome) error {
	if err := s.repo.FinishGame(ctx, g, outcome); err != nil {
		return fmt.Errorf("finish game %s: %w", g.Token, err)
	}
	s.logger.Info(fmt.Sprintf("Game %s of %s ended: %s", g.Token, g.ClientID, g.Status))
	return nil
}

func (s *Service) Stats(ctx context.Context, clientID string) (*game.Stat, error) {
	stat, err := s.repo.GetStat(ctx, clientID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrNoStats
	}
	return stat, err
}

// History lists the client's finished games, oldest first, optionally only
// those started at or after since.
func (s *Service) History(ctx context.Context, clientID string, since *time.Time) ([]*game.Game, error) {
	return s.repo.GetHistory(ctx, clientID, since)
}

// DeleteHistory removes finished games. Games in progress are never deleted.
func (s *Service) DeleteHistory(ctx context.Context, clientID, token string) (int64, error) {
	unlock := s.locks.Lock(clientID)
	defer unlock()
	return s.repo.DeleteHistory(ctx, clientID, token)
}
