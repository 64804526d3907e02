package game

import (
	"fmt"
	"strings"
)

// Suit is kept only for display, it never affects scoring.
type Suit uint8

const (
	Spades Suit = iota
	Clubs
	Hearts
	Diamonds
)

var suitGlyphs = [...]string{"♠", "♣", "♥", "♦"}

func (s Suit) String() string {
	if int(s) >= len(suitGlyphs) {
		return "?"
	}
	return suitGlyphs[s]
}

// Rank represents a card rank from Two to Ace
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

func (r Rank) String() string {
	switch {
	case r >= Two && r <= Ten:
		return fmt.Sprintf("%d", int(r))
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	}
	return "?"
}

// Card is a rank and a suit. Its text form is the rank followed by the suit glyph, e.g. "10♥".
type Card struct {
	Rank Rank
	Suit Suit
}

func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Valid reports whether the card belongs to a standard 52-card set.
func (c Card) Valid() bool {
	return c.Rank >= Two && c.Rank <= Ace && int(c.Suit) < len(suitGlyphs)
}

func (c Card) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid card %d/%d", c.Rank, c.Suit)
	}
	return []byte(c.String()), nil
}

func (c *Card) UnmarshalText(text []byte) error {
	card, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = card
	return nil
}

// ParseCard parses the text form produced by Card.String.
func ParseCard(s string) (Card, error) {
	for suit, glyph := range suitGlyphs {
		rank, ok := strings.CutSuffix(s, glyph)
		if !ok {
			continue
		}
		r, err := parseRank(rank)
		if err != nil {
			return Card{}, fmt.Errorf("invalid card %q: %w", s, err)
		}
		return NewCard(r, Suit(suit)), nil
	}
	return Card{}, fmt.Errorf("invalid card %q: unknown suit", s)
}

func parseRank(s string) (Rank, error) {
	switch s {
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	case "A":
		return Ace, nil
	}
	for r := Two; r <= Ten; r++ {
		if r.String() == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown rank %q", s)
}

// ParseCards parses a comma separated list of cards. An empty string is an empty list.
func ParseCards(s string) ([]Card, error) {
	if s == "" {
		return []Card{}, nil
	}
	parts := strings.Split(s, ",")
	cards := make([]Card, 0, len(parts))
	for _, p := range parts {
		c, err := ParseCard(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// FormatCards is the inverse of ParseCards.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}

// MustParseCards panics on malformed input. Meant for tests and fixtures.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}
