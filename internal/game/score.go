package game

// Blackjack is the highest hand value that does not bust.
const Blackjack = 21

// HandValue scores a hand. Aces are set aside and resolved after the other
// cards, in hand order. Each ace counts 11 if the running total, plus one for
// every ace still unresolved, stays at or below 21, and 1 otherwise.
// Values over 21 are returned as is.
func HandValue(cards []Card) int {
	total, aces := 0, 0
	for _, c := range cards {
		switch {
		case c.Rank == Ace:
			aces++
		case c.Rank >= Jack:
			total += 10
		default:
			total += int(c.Rank)
		}
	}
	for i := range aces {
		pending := aces - i - 1
		if total+11+pending <= Blackjack {
			total += 11
		} else {
			total++
		}
	}
	return total
}
