package game

import (
	"fmt"
	rand "math/rand/v2"
)

// DeckSize is the number of cards in a standard deck without jokers.
const DeckSize = 52

const goldenRatio64 = 0x9e3779b97f4a7c15

// NewRand returns a *rand.Rand seeded deterministically from seed, so a
// server started with the same seed deals the same sequence of decks.
func NewRand(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// StandardDeck returns the 52 cards in canonical suit-major order.
func StandardDeck() []Card {
	cards := make([]Card, 0, DeckSize)
	for suit := Spades; suit <= Diamonds; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// CreateDeck fills the game's deck with a freshly shuffled standard deck.
// A nil rng falls back to the global source.
func CreateDeck(g *Game, rng *rand.Rand) {
	g.Deck = StandardDeck()
	n := len(g.Deck)
	for i := 0; i < n; i++ {
		var j int
		if rng != nil {
			j = i + rng.IntN(n-i)
		} else {
			j = i + rand.IntN(n-i)
		}
		g.Deck[i], g.Deck[j] = g.Deck[j], g.Deck[i]
	}
}

// draw pops the last card of the deck.
func (g *Game) draw() (Card, bool) {
	n := len(g.Deck)
	if n == 0 {
		return Card{}, false
	}
	c := g.Deck[n-1]
	g.Deck = g.Deck[:n-1]
	return c, true
}

// Verify checks that deck and hands together hold every card of one deck exactly once.
func Verify(g *Game) error {
	total := len(g.Deck) + len(g.PlayerCards) + len(g.DealerCards)
	if total != DeckSize {
		return fmt.Errorf("%w: game %s holds %d cards", ErrInvariant, g.Token, total)
	}
	seen := make(map[Card]struct{}, DeckSize)
	for _, pile := range [][]Card{g.Deck, g.PlayerCards, g.DealerCards} {
		for _, c := range pile {
			if !c.Valid() {
				return fmt.Errorf("%w: game %s holds invalid card %d/%d", ErrInvariant, g.Token, c.Rank, c.Suit)
			}
			if _, dup := seen[c]; dup {
				return fmt.Errorf("%w: game %s holds %s twice", ErrInvariant, g.Token, c)
			}
			seen[c] = struct{}{}
		}
	}
	if !g.Status.Valid() {
		return fmt.Errorf("%w: game %s has unknown status %q", ErrInvariant, g.Token, g.Status)
	}
	return nil
}
