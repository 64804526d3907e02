//go:generate mockery --name=Repository --output=./mocks
package db

import (
	"context"
	"errors"
	"time"

	"github.com/anchal00/blackjack/internal/game"
	"github.com/anchal00/blackjack/internal/logger"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrActiveGameExists is returned by CreateGame when the client already has a game in progress.
	ErrActiveGameExists = errors.New("client already has an active game")
	// ErrStaleGame is returned when a game changed, or finished, since it was read.
	ErrStaleGame = errors.New("game was modified concurrently")
)

// Repository persists games and per-client stats.
//
// Only games with status playing are returned by the active lookups. History
// never includes games in progress. Writes of an existing game are versioned:
// they succeed only if the stored version matches g.Version, and bump it.
type Repository interface {
	CloseConnection()
	CreateGame(ctx context.Context, g *game.Game) error
	UpdateGame(ctx context.Context, g *game.Game) error
	// FinishGame stores a terminal game and records its outcome in the
	// client's stats as one atomic unit.
	FinishGame(ctx context.Context, g *game.Game, outcome game.Outcome) error
	GetActiveGameByClient(ctx context.Context, clientID string) (*game.Game, error)
	GetActiveGameByToken(ctx context.Context, token string) (*game.Game, error)
	GetHistory(ctx context.Context, clientID string, since *time.Time) ([]*game.Game, error)
	// DeleteHistory removes finished games of the client, or only the one named by token.
	DeleteHistory(ctx context.Context, clientID, token string) (int64, error)
	GetStat(ctx context.Context, clientID string) (*game.Stat, error)
}

func SetupDB(driver, dsn string, log logger.Logger) (*SqlStore, error) {
	repository := &SqlStore{
		Logger: log.Named("database"),
	}
	err := repository.SetupConnection(driver, dsn)
	return repository, err
}
