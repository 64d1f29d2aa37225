package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/hearts/cards"
)

const bignum = 1<<63 - 2

const numSeats = 4

// Zobrist generates a zobrist hash for a charged Hearts position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	toAct [numSeats]uint64

	handTable  [numSeats][64]uint64
	wonTable   [numSeats][64]uint64
	trickTable [64]uint64
	leadTable  [64]uint64
	ledTable   [cards.NumSuits]uint64
	chargeTbl  [64]uint64

	initialized bool
}

func (z *Zobrist) Initialize() {
	for s := 0; s < numSeats; s++ {
		z.toAct[s] = frand.Uint64n(bignum) + 1
		for c := 0; c < 64; c++ {
			z.handTable[s][c] = frand.Uint64n(bignum) + 1
			z.wonTable[s][c] = frand.Uint64n(bignum) + 1
		}
	}
	for c := 0; c < 64; c++ {
		z.trickTable[c] = frand.Uint64n(bignum) + 1
		z.leadTable[c] = frand.Uint64n(bignum) + 1
		z.chargeTbl[c] = frand.Uint64n(bignum) + 1
	}
	for i := range z.ledTable {
		z.ledTable[i] = frand.Uint64n(bignum) + 1
	}
	z.initialized = true
}

func (z *Zobrist) Initialized() bool {
	return z.initialized
}

func hashSet(key uint64, s cards.CardSet, table *[64]uint64) uint64 {
	for s != 0 {
		c := s.Min()
		key ^= table[c]
		s = s.Remove(c)
	}
	return key
}

// Hash keys a complete position. lead is cards.NoCard when the seat to act
// is leading.
func (z *Zobrist) Hash(hands, won [numSeats]cards.CardSet, charged, ledSuits, trick cards.CardSet,
	lead cards.Card, toAct int) uint64 {

	key := z.toAct[toAct]
	for s := 0; s < numSeats; s++ {
		key = hashSet(key, hands[s], &z.handTable[s])
		key = hashSet(key, won[s], &z.wonTable[s])
	}
	key = hashSet(key, trick, &z.trickTable)
	key = hashSet(key, charged, &z.chargeTbl)
	if lead != cards.NoCard {
		key ^= z.leadTable[lead]
	}
	for i, suit := range cards.Suits {
		if ledSuits.Intersects(suit) {
			key ^= z.ledTable[i]
		}
	}
	return key
}
