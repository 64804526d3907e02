package parser

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/anchal00/blackjack/internal/game"
)

type GameResponse struct {
	Token       string      `json:"token"`
	ClientID    string      `json:"clientId,omitempty"`
	PlayerCards []game.Card `json:"playerCards"`
	DealerCards []game.Card `json:"dealerCards"`
	PlayerValue int         `json:"playerValue"`
	DealerValue int         `json:"dealerValue"`
	Status      game.Status `json:"status"`
	StartedOn   int64       `json:"startedOn"`
}

// NewGameResponse hides the dealer's hand while the round is in progress.
func NewGameResponse(g *game.Game) GameResponse {
	resp := GameResponse{
		Token:       g.Token,
		ClientID:    g.ClientID,
		PlayerCards: g.PlayerCards,
		DealerCards: []game.Card{},
		PlayerValue: g.PlayerValue(),
		Status:      g.Status,
		StartedOn:   g.StartedOn.UnixMilli(),
	}
	if g.Status.Terminal() {
		resp.DealerCards = g.DealerCards
		resp.DealerValue = g.DealerValue()
	}
	return resp
}

func NewHistoryResponse(games []*game.Game) []GameResponse {
	history := make([]GameResponse, len(games))
	for i, g := range games {
		history[i] = NewGameResponse(g)
	}
	return history
}

type StatsResponse struct {
	Wins   int64 `json:"wins"`
	Losses int64 `json:"losses"`
	Draws  int64 `json:"draws"`
}

func NewStatsResponse(s *game.Stat) StatsResponse {
	return StatsResponse{Wins: s.Wins, Losses: s.Losses, Draws: s.Draws}
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type PlayerAction string

const (
	ActionDeal  PlayerAction = "deal"
	ActionGame  PlayerAction = "game"
	ActionHit   PlayerAction = "hit"
	ActionStand PlayerAction = "stand"
	ActionStats PlayerAction = "stats"
)

// GamePlayerInput is a message sent by the client over the websocket channel.
type GamePlayerInput struct {
	Action PlayerAction `json:"action"`
	Token  string       `json:"token,omitempty"`
}

func ParseGamePlayerInput(data []byte) (*GamePlayerInput, error) {
	input := &GamePlayerInput{}
	if err := json.Unmarshal(data, input); err != nil {
		return nil, err
	}
	input.Action = PlayerAction(strings.ToLower(strings.TrimSpace(string(input.Action))))
	switch input.Action {
	case ActionDeal, ActionGame, ActionHit, ActionStand, ActionStats:
		return input, nil
	}
	return nil, fmt.Errorf("unknown action %q", input.Action)
}

// GameServerMessage is a reply on the websocket channel. Exactly one of
// Game, Stats and Error is set.
type GameServerMessage struct {
	Action PlayerAction   `json:"action"`
	Game   *GameResponse  `json:"game,omitempty"`
	Stats  *StatsResponse `json:"stats,omitempty"`
	Error  *ErrorResponse `json:"error,omitempty"`
}

// ParseHistoryStart accepts RFC 3339 timestamps, plain dates and epoch
// milliseconds. ok is false when start is set but cannot be parsed.
func ParseHistoryStart(start string) (since *time.Time, ok bool) {
	start = strings.TrimSpace(start)
	if start == "" {
		return nil, true
	}
	if ms, err := strconv.ParseInt(start, 10, 64); err == nil {
		t := time.UnixMilli(ms)
		return &t, true
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", time.DateOnly} {
		if t, err := time.Parse(layout, start); err == nil {
			return &t, true
		}
	}
	return nil, false
}

type DeleteResponse struct {
	Deleted bool  `json:"deleted"`
	Count   int64 `json:"count"`
}
