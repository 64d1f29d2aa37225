// Package scoring turns captured cards into points and zero-sum money.
package scoring

import (
	"github.com/samber/lo"

	"github.com/domino14/hearts/cards"
)

// Score returns the points for the cards in won. Positive is bad for the
// player holding them, except that capturing the queen of spades together
// with every heart inverts the sign.
func Score(won, charged cards.CardSet) int {
	hearts := (won & cards.Hearts).Len()
	if charged.Intersects(cards.AceHearts) {
		hearts *= 2
	}

	queen := 0
	if won.Intersects(cards.QueenSpades) {
		queen = 13
		if charged.Intersects(cards.QueenSpades) {
			queen = 26
		}
	}

	jack := 0
	if won.Intersects(cards.JackDiamonds) {
		jack = -10
		if charged.Intersects(cards.JackDiamonds) {
			jack = -20
		}
	}

	mult := 1
	if won.Intersects(cards.TenClubs) {
		mult = 2
		if charged.Intersects(cards.TenClubs) {
			mult = 4
		}
	}

	if Swept(won) {
		return mult * (jack - hearts - queen)
	}
	return mult * (jack + hearts + queen)
}

// Swept reports whether won holds the queen of spades and all thirteen
// hearts.
func Swept(won cards.CardSet) bool {
	return won.ContainsAll(cards.Hearts | cards.QueenSpades)
}

// Money is what player collects from (or pays to) the other three seats.
// The four values for any won distribution sum to zero.
func Money(won [4]cards.CardSet, charged cards.CardSet, player int) int {
	me := Score(won[player], charged)
	left := Score(won[(player+1)%4], charged)
	across := Score(won[(player+2)%4], charged)
	right := Score(won[(player+3)%4], charged)
	return left + across + right - 3*me
}

// Moneys returns Money for every seat.
func Moneys(won [4]cards.CardSet, charged cards.CardSet) [4]int {
	var out [4]int
	for i := range out {
		out[i] = Money(won, charged, i)
	}
	return out
}

// Total sums a money vector; it is zero for every vector Moneys returns.
func Total(m [4]int) int {
	return lo.Sum(m[:])
}
