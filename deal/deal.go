// Package deal generates and checks the four hands of a deal.
package deal

import (
	"errors"
	"fmt"

	"lukechampine.com/frand"

	"github.com/domino14/hearts/cards"
	"github.com/domino14/hearts/solver"
)

const HandSize = 13

var (
	ErrBadDeal     = errors.New("bad deal")
	ErrBadHandSize = errors.New("hand size out of range")
)

// Dealer shuffles the deck. The zero value is not usable; see NewDealer.
type Dealer struct {
	randomizer *frand.RNG
}

// NewDealer returns a dealer that draws from the system entropy source.
func NewDealer() *Dealer {
	return &Dealer{randomizer: frand.New()}
}

// NewSeededDealer returns a dealer whose sequence of deals is fixed by
// seed.
func NewSeededDealer(seed [32]byte) *Dealer {
	return &Dealer{randomizer: frand.NewCustom(seed[:], 1024, 12)}
}

func (d *Dealer) shuffled() []cards.Card {
	deck := cards.Deck.Cards()
	d.randomizer.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// Deal returns four random 13-card hands.
func (d *Dealer) Deal() [4]cards.CardSet {
	var hands [4]cards.CardSet
	for i, c := range d.shuffled() {
		hands[i/HandSize] |= c.Set()
	}
	return hands
}

// Endgame returns a random position with n cards left in every hand. The
// other cards have already been captured, four at a time, by random seats,
// and every suit counts as led. A random seat leads. Endgame(13) is the
// start of a fresh deal.
func (d *Dealer) Endgame(n int) (solver.Position, error) {
	if n < 1 || n > HandSize {
		return solver.Position{}, fmt.Errorf("%w: %d", ErrBadHandSize, n)
	}
	if n == HandSize {
		return solver.NewDealPosition(d.Deal())
	}
	deck := d.shuffled()
	pos := solver.Position{Lead: cards.NoCard, LedSuits: cards.Deck}
	for i, c := range deck[:4*n] {
		pos.Hands[i/n] |= c.Set()
	}
	captured := deck[4*n:]
	for len(captured) > 0 {
		seat := d.randomizer.Intn(4)
		for _, c := range captured[:4] {
			pos.Won[seat] |= c.Set()
		}
		captured = captured[4:]
	}
	pos.Player = d.randomizer.Intn(4)
	return pos, pos.Validate()
}

// Validate checks that hands are four disjoint 13-card hands covering the
// deck.
func Validate(hands [4]cards.CardSet) error {
	var seen cards.CardSet
	for i, h := range hands {
		if h.Len() != HandSize {
			return fmt.Errorf("%w: hand %d has %d cards", ErrBadDeal, i, h.Len())
		}
		if seen.Intersects(h) {
			return fmt.Errorf("%w: hand %d repeats %s", ErrBadDeal, i, seen&h)
		}
		seen |= h
	}
	if seen != cards.Deck {
		return fmt.Errorf("%w: missing %s", ErrBadDeal, cards.Deck&^seen)
	}
	return nil
}
