package game

import "fmt"

// Resolve decides the terminal status of a round. A player bust takes
// precedence over a dealer bust.
func Resolve(player, dealer []Card) Status {
	pv, dv := HandValue(player), HandValue(dealer)
	switch {
	case pv > Blackjack:
		return StatusBust
	case dv > Blackjack:
		return StatusDealerBust
	case pv > dv:
		return StatusPlayerWins
	case dv > pv:
		return StatusDealerWins
	default:
		return StatusDraw
	}
}

// Finish fixes the terminal status of g and returns the outcome to record.
func Finish(g *Game) (Outcome, error) {
	if g.Status.Terminal() {
		return OutcomeNone, fmt.Errorf("finish game %s: %w", g.Token, ErrGameOver)
	}
	g.Status = Resolve(g.PlayerCards, g.DealerCards)
	return g.Status.Outcome(), nil
}

// Stand ends the player's turn: the dealer draws out and the round is resolved.
func Stand(g *Game) (Outcome, error) {
	if err := DealerPlay(g); err != nil {
		return OutcomeNone, err
	}
	return Finish(g)
}
