package rules

import "github.com/domino14/hearts/cards"

const laneLow = 0x0001_0001_0001_0001

// Special returns the cards that never share trick-taking and scoring value
// with a neighbour: every nine, QS, JD, TC, and AH once it is charged.
func Special(charged cards.CardSet) cards.CardSet {
	return cards.Nines | cards.QueenSpades | cards.JackDiamonds | cards.TenClubs |
		(charged & cards.AceHearts)
}

// DistinctPlays drops every play that is interchangeable with a higher play
// of the same suit. Two plays are interchangeable when every rank between
// them is accounted for (already captured, or beaten in the forming trick)
// or is itself a play. Special cards are always kept, and an unaccounted
// special card keeps the plays around it apart.
func DistinctPlays(plays, accounted, charged cards.CardSet) cards.CardSet {
	specialPlays := plays & Special(charged)
	magic := uint64(plays &^ specialPlays)
	blocks := magic | uint64(accounted)
	// Smear every plain play downward through blocks. Eleven steps cover the
	// widest gap inside a 13-card lane.
	for i := 0; i < 11; i++ {
		magic = (magic | magic>>1) & blocks
	}
	// Adding the complement clears each smeared run and sets the bit above
	// its top member, so magic>>1 picks the top play of every run.
	magic += ^magic<<1 | laneLow
	return specialPlays | plays&cards.CardSet(magic>>1)
}
