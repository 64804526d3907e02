package db

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/anchal00/blackjack/internal/game"
)

// CardList is stored as a comma separated column, e.g. "A♠,10♥".
type CardList []game.Card

func (c CardList) Value() (driver.Value, error) {
	return game.FormatCards(c), nil
}

func (c *CardList) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case nil:
	default:
		return fmt.Errorf("cannot scan %T into CardList", src)
	}
	cards, err := game.ParseCards(s)
	if err != nil {
		return err
	}
	*c = cards
	return nil
}

type Game struct {
	Token       string   `db:"token"`
	ClientID    string   `db:"client_id"`
	Status      string   `db:"status"`
	StartedOn   int64    `db:"started_on"`
	Deck        CardList `db:"deck"`
	PlayerCards CardList `db:"player_cards"`
	DealerCards CardList `db:"dealer_cards"`
	Version     int64    `db:"version"`
}

type Stat struct {
	ClientID string `db:"client_id"`
	Wins     int64  `db:"wins"`
	Losses   int64  `db:"losses"`
	Draws    int64  `db:"draws"`
}

func fromGame(g *game.Game) Game {
	return Game{
		Token:       g.Token,
		ClientID:    g.ClientID,
		Status:      string(g.Status),
		StartedOn:   g.StartedOn.UnixMilli(),
		Deck:        g.Deck,
		PlayerCards: g.PlayerCards,
		DealerCards: g.DealerCards,
		Version:     g.Version,
	}
}

func (r Game) toGame() *game.Game {
	return &game.Game{
		Token:       r.Token,
		ClientID:    r.ClientID,
		Status:      game.Status(r.Status),
		StartedOn:   time.UnixMilli(r.StartedOn),
		Deck:        nonNil(r.Deck),
		PlayerCards: nonNil(r.PlayerCards),
		DealerCards: nonNil(r.DealerCards),
		Version:     r.Version,
	}
}

func (r Stat) toStat() *game.Stat {
	return &game.Stat{ClientID: r.ClientID, Wins: r.Wins, Losses: r.Losses, Draws: r.Draws}
}

func nonNil(c CardList) []game.Card {
	if c == nil {
		return []game.Card{}
	}
	return c
}
