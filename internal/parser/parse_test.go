package parser

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anchal00/blackjack/internal/game"
)

func TestGameResponseHidesDealerWhilePlaying(t *testing.T) {
	g := game.NewGame("t1", "client", time.UnixMilli(1_700_000_000_000))
	g.PlayerCards = game.MustParseCards("A♠,K♦")
	g.DealerCards = game.MustParseCards("10♥,8♣")

	data, err := json.Marshal(NewGameResponse(g))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"token": "t1",
		"clientId": "client",
		"playerCards": ["A♠", "K♦"],
		"dealerCards": [],
		"playerValue": 21,
		"dealerValue": 0,
		"status": "playing",
		"startedOn": 1700000000000
	}`, string(data))

	g.Status = game.StatusPlayerWins
	resp := NewGameResponse(g)
	assert.Equal(t, g.DealerCards, resp.DealerCards)
	assert.Equal(t, 18, resp.DealerValue)
}

func TestParseGamePlayerInput(t *testing.T) {
	input, err := ParseGamePlayerInput([]byte(`{"action": " HIT ", "token": "t1"}`))
	require.NoError(t, err)
	assert.Equal(t, ActionHit, input.Action)
	assert.Equal(t, "t1", input.Token)

	_, err = ParseGamePlayerInput([]byte(`{"action": "split"}`))
	assert.Error(t, err)
	_, err = ParseGamePlayerInput([]byte(`not json`))
	assert.Error(t, err)
}

func TestParseHistoryStart(t *testing.T) {
	tests := []struct {
		input  string
		wantOK bool
		want   int64
	}{
		{input: "", wantOK: true, want: -1},
		{input: "1700000000000", wantOK: true, want: 1_700_000_000_000},
		{input: "2023-11-14T22:13:20Z", wantOK: true, want: 1_700_000_000_000},
		{input: "2024-01-02", wantOK: true, want: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC).UnixMilli()},
		{input: "yesterday", wantOK: false, want: -1},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			since, ok := ParseHistoryStart(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.want < 0 {
				assert.Nil(t, since)
				return
			}
			require.NotNil(t, since)
			assert.Equal(t, tt.want, since.UnixMilli())
		})
	}
}
