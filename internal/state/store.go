package state

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/anchal00/blackjack/internal/db"
	"github.com/anchal00/blackjack/internal/game"
)

// InMemoryStore is a db.Repository kept in process memory. Games are stored
// as clones so callers never share slices with the store.
type InMemoryStore struct {
	mu    sync.Mutex
	games map[string]*game.Game
	stats map[string]*game.Stat
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		games: make(map[string]*game.Game),
		stats: make(map[string]*game.Stat),
	}
}

func (i *InMemoryStore) CloseConnection() {}

func (i *InMemoryStore) CreateGame(_ context.Context, g *game.Game) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if _, exists := i.games[g.Token]; exists {
		return fmt.Errorf("game %s already exists", g.Token)
	}
	if g.Status == game.StatusPlaying && len(i.active(g.ClientID)) > 0 {
		return db.ErrActiveGameExists
	}
	g.Version = 1
	i.games[g.Token] = g.Clone()
	return nil
}

func (i *InMemoryStore) UpdateGame(_ context.Context, g *game.Game) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.update(g)
}

func (i *InMemoryStore) update(g *game.Game) error {
	stored, exists := i.games[g.Token]
	if !exists || stored.Version != g.Version || stored.Status != game.StatusPlaying {
		return db.ErrStaleGame
	}
	g.Version++
	i.games[g.Token] = g.Clone()
	return nil
}

func (i *InMemoryStore) FinishGame(_ context.Context, g *game.Game, outcome game.Outcome) error {
	delta := game.Stat{}
	delta.Record(outcome)
	if delta.Total() != 1 || !g.Status.Terminal() {
		return fmt.Errorf("finish game %s with status %s and outcome %s: %w", g.Token, g.Status, outcome, game.ErrInvariant)
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.update(g); err != nil {
		return err
	}
	stat, exists := i.stats[g.ClientID]
	if !exists {
		stat = &game.Stat{ClientID: g.ClientID}
		i.stats[g.ClientID] = stat
	}
	stat.Record(outcome)
	return nil
}

func (i *InMemoryStore) GetActiveGameByClient(_ context.Context, clientID string) (*game.Game, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	active := i.active(clientID)
	switch len(active) {
	case 0:
		return nil, db.ErrNotFound
	case 1:
		return active[0].Clone(), nil
	}
	return nil, fmt.Errorf("%w: client %s has %d active games", game.ErrInvariant, clientID, len(active))
}

func (i *InMemoryStore) active(clientID string) []*game.Game {
	var active []*game.Game
	for _, g := range i.games {
		if g.ClientID == clientID && g.Status == game.StatusPlaying {
			active = append(active, g)
		}
	}
	return active
}

func (i *InMemoryStore) GetActiveGameByToken(_ context.Context, token string) (*game.Game, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	g, exists := i.games[token]
	if !exists || g.Status != game.StatusPlaying {
		return nil, db.ErrNotFound
	}
	return g.Clone(), nil
}

func (i *InMemoryStore) GetHistory(_ context.Context, clientID string, since *time.Time) ([]*game.Game, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	history := []*game.Game{}
	for _, g := range i.games {
		if g.ClientID != clientID || g.Status == game.StatusPlaying {
			continue
		}
		if since != nil && g.StartedOn.Before(*since) {
			continue
		}
		history = append(history, g.Clone())
	}
	slices.SortFunc(history, func(a, b *game.Game) int {
		if c := a.StartedOn.Compare(b.StartedOn); c != 0 {
			return c
		}
		if a.Token < b.Token {
			return -1
		}
		if a.Token > b.Token {
			return 1
		}
		return 0
	})
	return history, nil
}

func (i *InMemoryStore) DeleteHistory(_ context.Context, clientID, token string) (int64, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	var n int64
	for t, g := range i.games {
		if g.ClientID != clientID || g.Status == game.StatusPlaying {
			continue
		}
		if token != "" && t != token {
			continue
		}
		delete(i.games, t)
		n++
	}
	return n, nil
}

func (i *InMemoryStore) GetStat(_ context.Context, clientID string) (*game.Stat, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	stat, exists := i.stats[clientID]
	if !exists {
		return nil, db.ErrNotFound
	}
	s := *stat
	return &s, nil
}
