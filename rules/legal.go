// Package rules holds the play rules of charged Hearts: which cards a seat
// may play, which of those are worth searching, and how tricks resolve.
package rules

import "github.com/domino14/hearts/cards"

// chargeOrder is the order in which charged cards are withheld from a lead.
var chargeOrder = [cards.NumSuits]cards.CardSet{
	cards.QueenSpades, cards.AceHearts, cards.TenClubs, cards.JackDiamonds,
}

// LegalPlays returns the cards of hand that may be played. ledSuits is the
// union of the suit lanes led so far (empty during the first trick), lead
// is the card that led the current trick or cards.NoCard when leading.
func LegalPlays(hand, charged, ledSuits cards.CardSet, lead cards.Card, heartsBroken bool) cards.CardSet {
	plays := hand

	if ledSuits.Empty() {
		if plays.Intersects(cards.TwoClubs) {
			return cards.TwoClubs
		}
		switch {
		case plays.Intersects(^cards.Points):
			plays = plays.Minus(cards.Points)
		case plays.Intersects(cards.JackDiamonds):
			return cards.JackDiamonds
		case plays.Intersects(cards.QueenSpades):
			return cards.QueenSpades
		}
	}

	if lead == cards.NoCard {
		if !heartsBroken && plays.Intersects(^cards.Hearts) {
			plays = plays.Minus(cards.Hearts)
		}
		var withheld cards.CardSet
		for _, c := range chargeOrder {
			if charged.Intersects(c) && !ledSuits.Intersects(c) {
				withheld |= c
			}
		}
		// a charged card may still be led if it is all that is left
		if !plays.Minus(withheld).Empty() {
			plays = plays.Minus(withheld)
		}
		return plays
	}

	suit := lead.Suit()
	if plays.Intersects(suit) {
		plays = plays.Intersect(suit)
		if !ledSuits.Intersects(suit) && plays.Len() > 1 {
			plays = plays.Minus(charged & suit)
		}
	}
	return plays
}
