package game

import (
	"errors"
	"time"
)

var (
	ErrDeckExhausted = errors.New("deck exhausted")
	ErrGameOver      = errors.New("game is not in progress")
	ErrInvariant     = errors.New("game invariant violated")
)

// Status is the lifecycle state of a Game. Playing is the only non-terminal value.
type Status string

const (
	StatusPlaying    Status = "playing"
	StatusBust       Status = "bust"
	StatusDealerBust Status = "dealer-bust"
	StatusPlayerWins Status = "player-wins"
	StatusDealerWins Status = "dealer-wins"
	StatusDraw       Status = "draw"
)

func (s Status) Terminal() bool {
	return s != StatusPlaying
}

func (s Status) Valid() bool {
	switch s {
	case StatusPlaying, StatusBust, StatusDealerBust, StatusPlayerWins, StatusDealerWins, StatusDraw:
		return true
	}
	return false
}

// Outcome maps a terminal status to the stat counter it increments.
// It returns OutcomeNone for StatusPlaying.
func (s Status) Outcome() Outcome {
	switch s {
	case StatusDealerBust, StatusPlayerWins:
		return OutcomeWin
	case StatusBust, StatusDealerWins:
		return OutcomeLoss
	case StatusDraw:
		return OutcomeDraw
	}
	return OutcomeNone
}

type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLoss
	OutcomeDraw
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	case OutcomeDraw:
		return "draw"
	}
	return "none"
}

// Game is a single round for one client. The deck is a stack: cards are drawn from its tail.
type Game struct {
	Token       string
	ClientID    string
	Status      Status
	StartedOn   time.Time
	Deck        []Card
	PlayerCards []Card
	DealerCards []Card
	// Version is bumped by the store on every write and used for optimistic concurrency.
	Version int64
}

func NewGame(token, clientID string, startedOn time.Time) *Game {
	return &Game{
		Token:       token,
		ClientID:    clientID,
		Status:      StatusPlaying,
		StartedOn:   startedOn.Truncate(time.Millisecond),
		Deck:        []Card{},
		PlayerCards: []Card{},
		DealerCards: []Card{},
	}
}

func (g *Game) PlayerValue() int {
	return HandValue(g.PlayerCards)
}

func (g *Game) DealerValue() int {
	return HandValue(g.DealerCards)
}

// Clone returns a deep copy so callers can mutate it without touching the original.
func (g *Game) Clone() *Game {
	c := *g
	c.Deck = append([]Card{}, g.Deck...)
	c.PlayerCards = append([]Card{}, g.PlayerCards...)
	c.DealerCards = append([]Card{}, g.DealerCards...)
	return &c
}

// Stat is the running tally of finished rounds for a client.
type Stat struct {
	ClientID string
	Wins     int64
	Losses   int64
	Draws    int64
}

// Record increments exactly one counter for a terminal outcome.
func (s *Stat) Record(o Outcome) {
	switch o {
	case OutcomeWin:
		s.Wins++
	case OutcomeLoss:
		s.Losses++
	case OutcomeDraw:
		s.Draws++
	}
}

func (s Stat) Total() int64 {
	return s.Wins + s.Losses + s.Draws
}
