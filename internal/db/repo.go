package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/anchal00/blackjack/internal/game"
	"github.com/anchal00/blackjack/internal/logger"
)

const activeClientIndex = "idx_games_active_client"

var schema = `CREATE TABLE IF NOT EXISTS games (
  token varchar(36) PRIMARY KEY,
  client_id varchar(64) NOT NULL,
  status varchar(16) NOT NULL,
  started_on bigint NOT NULL,
  deck text NOT NULL,
  player_cards text NOT NULL,
  dealer_cards text NOT NULL,
  version bigint DEFAULT 1 NOT NULL,

  CONSTRAINT valid_status CHECK (status IN ('playing', 'bust', 'dealer-bust', 'player-wins', 'dealer-wins', 'draw'))
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_games_active_client ON games(client_id) WHERE status = 'playing';
CREATE INDEX IF NOT EXISTS idx_games_client_started ON games(client_id, started_on);

CREATE TABLE IF NOT EXISTS stats (
  client_id varchar(64) PRIMARY KEY,
  wins bigint DEFAULT 0 NOT NULL,
  losses bigint DEFAULT 0 NOT NULL,
  draws bigint DEFAULT 0 NOT NULL,

  CONSTRAINT non_negative_stats CHECK (wins >= 0 AND losses >= 0 AND draws >= 0)
);`

type SqlStore struct {
	Conn   *sqlx.DB
	Logger logger.Logger
}

func (s *SqlStore) SetupConnection(driver, dsn string) error {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		s.Logger.Error("Database setup failed", err)
		return err
	}
	if driver == "sqlite3" {
		// sqlite allows a single writer, and every connection to :memory: is a new database.
		db.SetMaxOpenConns(1)
	}
	s.Conn = db
	if _, err := s.Conn.Exec(schema); err != nil {
		s.Logger.Error("Failed to apply schema", err)
		s.Conn.Close()
		return err
	}
	s.Logger.Info(fmt.Sprintf("Database %s setup successfully", driver))
	return nil
}

func (s *SqlStore) CloseConnection() {
	s.Logger.Info("Closing database connection")
	if err := s.Conn.Close(); err != nil {
		s.Logger.Error("Failed to tear down database connection", err)
		return
	}
	s.Logger.Info("Database connection closed successfully")
}

func (s *SqlStore) CreateGame(ctx context.Context, g *game.Game) error {
	row := fromGame(g)
	row.Version = 1
	createGameSQL := `INSERT INTO games(token, client_id, status, started_on, deck, player_cards, dealer_cards, version)
VALUES(:token, :client_id, :status, :started_on, :deck, :player_cards, :dealer_cards, :version);`
	if _, err := s.Conn.NamedExecContext(ctx, createGameSQL, row); err != nil {
		if isActiveGameViolation(err) {
			s.Logger.Debug(fmt.Sprintf("Client %s already has an active game", g.ClientID))
			return ErrActiveGameExists
		}
		s.Logger.Error("Failed to create new game", err)
		return err
	}
	g.Version = row.Version
	s.Logger.Info(fmt.Sprintf("Game %s created successfully", g.Token))
	return nil
}

const updateGameSQL = `UPDATE games
SET status = :status, deck = :deck, player_cards = :player_cards, dealer_cards = :dealer_cards, version = version + 1
WHERE token = :token AND version = :version AND status = 'playing';`

func (s *SqlStore) UpdateGame(ctx context.Context, g *game.Game) error {
	res, err := s.Conn.NamedExecContext(ctx, updateGameSQL, fromGame(g))
	if err != nil {
		s.Logger.Error(fmt.Sprintf("Failed to update game %s", g.Token), err)
		return err
	}
	if err := checkUpdated(res); err != nil {
		return err
	}
	g.Version++
	return nil
}

func (s *SqlStore) FinishGame(ctx context.Context, g *game.Game, outcome game.Outcome) error {
	delta := game.Stat{ClientID: g.ClientID}
	delta.Record(outcome)
	if delta.Total() != 1 || !g.Status.Terminal() {
		return fmt.Errorf("finish game %s with status %s and outcome %s: %w", g.Token, g.Status, outcome, game.ErrInvariant)
	}
	txn, err := s.Conn.BeginTxx(ctx, nil)
	if err != nil {
		s.Logger.Error("Failed to finish game", err)
		return err
	}
	res, err := txn.NamedExecContext(ctx, updateGameSQL, fromGame(g))
	if err == nil {
		err = checkUpdated(res)
	}
	if err != nil {
		if !errors.Is(err, ErrStaleGame) {
			s.Logger.Error(fmt.Sprintf("Failed to save finished game %s", g.Token), err)
		}
		return s.rollback(txn, "FinishGame", err)
	}
	upsertStatSQL := `INSERT INTO stats(client_id, wins, losses, draws) VALUES(:client_id, :wins, :losses, :draws)
ON CONFLICT(client_id) DO UPDATE SET
  wins = stats.wins + excluded.wins,
  losses = stats.losses + excluded.losses,
  draws = stats.draws + excluded.draws;`
	stat := Stat{ClientID: delta.ClientID, Wins: delta.Wins, Losses: delta.Losses, Draws: delta.Draws}
	if _, err := txn.NamedExecContext(ctx, upsertStatSQL, stat); err != nil {
		s.Logger.Error(fmt.Sprintf("Failed to record %s for %s", outcome, g.ClientID), err)
		return s.rollback(txn, "FinishGame", err)
	}
	if err := txn.Commit(); err != nil {
		s.Logger.Error("Failed to Commit FinishGame txn", err)
		return err
	}
	g.Version++
	s.Logger.Info(fmt.Sprintf("Game %s finished with %s", g.Token, g.Status))
	return nil
}

func (s *SqlStore) rollback(txn *sqlx.Tx, op string, cause error) error {
	if errRoll := txn.Rollback(); errRoll != nil {
		s.Logger.Error(fmt.Sprintf("Failed to rollback %s txn", op), errRoll)
		return errors.Join(cause, errRoll)
	}
	return cause
}

func (s *SqlStore) GetActiveGameByClient(ctx context.Context, clientID string) (*game.Game, error) {
	sql := s.Conn.Rebind(`SELECT * FROM games WHERE client_id = ? AND status = 'playing' LIMIT 2;`)
	rows := []Game{}
	if err := s.Conn.SelectContext(ctx, &rows, sql, clientID); err != nil {
		s.Logger.Error("Failed to fetch active game", err)
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return rows[0].toGame(), nil
	}
	return nil, fmt.Errorf("%w: client %s has %d active games", game.ErrInvariant, clientID, len(rows))
}

func (s *SqlStore) GetActiveGameByToken(ctx context.Context, token string) (*game.Game, error) {
	sql := s.Conn.Rebind(`SELECT * FROM games WHERE token = ? AND status = 'playing';`)
	return s.getGame(ctx, sql, token)
}

func (s *SqlStore) getGame(ctx context.Context, query string, args ...any) (*game.Game, error) {
	row := Game{}
	if err := s.Conn.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		s.Logger.Error("Failed to fetch game", err)
		return nil, err
	}
	return row.toGame(), nil
}

func (s *SqlStore) GetHistory(ctx context.Context, clientID string, since *time.Time) ([]*game.Game, error) {
	query := `SELECT * FROM games WHERE client_id = ? AND status <> 'playing'`
	args := []any{clientID}
	if since != nil {
		query += ` AND started_on >= ?`
		args = append(args, since.UnixMilli())
	}
	query += ` ORDER BY started_on, token;`
	rows := []Game{}
	if err := s.Conn.SelectContext(ctx, &rows, s.Conn.Rebind(query), args...); err != nil {
		s.Logger.Error(fmt.Sprintf("Failed to fetch history of %s", clientID), err)
		return nil, err
	}
	games := make([]*game.Game, len(rows))
	for i, r := range rows {
		games[i] = r.toGame()
	}
	return games, nil
}

func (s *SqlStore) DeleteHistory(ctx context.Context, clientID, token string) (int64, error) {
	query := `DELETE FROM games WHERE client_id = ? AND status <> 'playing'`
	args := []any{clientID}
	if token != "" {
		query += ` AND token = ?`
		args = append(args, token)
	}
	res, err := s.Conn.ExecContext(ctx, s.Conn.Rebind(query), args...)
	if err != nil {
		s.Logger.Error(fmt.Sprintf("Failed to delete history of %s", clientID), err)
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	s.Logger.Info(fmt.Sprintf("Deleted %d games of %s", n, clientID))
	return n, nil
}

func (s *SqlStore) GetStat(ctx context.Context, clientID string) (*game.Stat, error) {
	query := s.Conn.Rebind(`SELECT * FROM stats WHERE client_id = ?;`)
	row := Stat{}
	if err := s.Conn.GetContext(ctx, &row, query, clientID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		s.Logger.Error("Failed to fetch stats", err)
		return nil, err
	}
	return row.toStat(), nil
}

func checkUpdated(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStaleGame
	}
	return nil
}

func isActiveGameViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" && pqErr.Constraint == activeClientIndex
	}
	return false
}
