// Package game implements the blackjack round: deck construction and
// shuffling, the opening deal, player hits, dealer play, hand scoring and
// outcome resolution.
//
// Everything here operates on an in-memory Game value and performs no I/O.
// Callers are responsible for serializing access to a Game and persisting it.
//
// A two-card 21 is scored like any other 21; there is no natural blackjack
// rule. The dealer plays the same scoring rules as the player and stands on
// every 17, soft or hard.
package game
