package game

import "fmt"

// DealerStandsOn is the value at which the dealer stops drawing.
const DealerStandsOn = 17

// Deal hands out the opening cards in the order player, dealer, player, dealer.
func Deal(g *Game) error {
	if len(g.Deck) < 4 {
		return fmt.Errorf("deal game %s: %w", g.Token, ErrDeckExhausted)
	}
	for range 2 {
		p, _ := g.draw()
		g.PlayerCards = append(g.PlayerCards, p)
		d, _ := g.draw()
		g.DealerCards = append(g.DealerCards, d)
	}
	return nil
}

// Hit draws one card for the player and marks the game bust when the hand goes over 21.
func Hit(g *Game) error {
	if g.Status.Terminal() {
		return fmt.Errorf("hit game %s: %w", g.Token, ErrGameOver)
	}
	c, ok := g.draw()
	if !ok {
		return fmt.Errorf("hit game %s: %w", g.Token, ErrDeckExhausted)
	}
	g.PlayerCards = append(g.PlayerCards, c)
	if HandValue(g.PlayerCards) > Blackjack {
		g.Status = StatusBust
	}
	return nil
}

// DealerPlay draws for the dealer until the hand reaches DealerStandsOn.
// Running out of cards is not an error, the dealer stands on whatever it has.
func DealerPlay(g *Game) error {
	if g.Status.Terminal() {
		return fmt.Errorf("stand game %s: %w", g.Token, ErrGameOver)
	}
	for HandValue(g.DealerCards) < DealerStandsOn {
		c, ok := g.draw()
		if !ok {
			break
		}
		g.DealerCards = append(g.DealerCards, c)
	}
	return nil
}
