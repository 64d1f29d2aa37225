package rules

import "github.com/domino14/hearts/cards"

// TrickWinner returns the highest card of the led suit in trick.
func TrickWinner(trick cards.CardSet, lead cards.Card) cards.Card {
	return (trick & lead.Suit()).Max()
}

// Nined reports whether the highest led-suit card in trick is a nine. A
// nined trick keeps going around instead of completing.
func Nined(trick cards.CardSet, lead cards.Card) bool {
	return cards.Nines.Contains(TrickWinner(trick, lead))
}

// Completes reports whether trick is finished once its latest card is on
// the table. accounted is every card captured in earlier tricks.
func Completes(trick, accounted cards.CardSet, lead cards.Card) bool {
	if accounted|trick == cards.Deck {
		return true
	}
	return trick.Len() >= 4 && !Nined(trick, lead)
}

// HolderOf returns the seat whose hand holds c, or -1.
func HolderOf(hands [4]cards.CardSet, c cards.Card) int {
	for seat, h := range hands {
		if h.Contains(c) {
			return seat
		}
	}
	return -1
}
