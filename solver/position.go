package solver

import (
	"errors"
	"fmt"

	"github.com/domino14/hearts/cards"
	"github.com/domino14/hearts/rules"
)

var ErrInvalidPosition = errors.New("invalid position")

// Position is a snapshot of a deal in progress. It is a value: playing a
// card returns a new Position and never touches the receiver.
//
// Cards already played to the current trick stay in their holder's hand
// until the trick completes; that is how the capturing seat is found.
type Position struct {
	Hands    [4]cards.CardSet
	Won      [4]cards.CardSet
	Charged  cards.CardSet
	LedSuits cards.CardSet // union of the suit lanes led so far
	Lead     cards.Card    // NoCard when Player is leading
	Trick    cards.CardSet
	Player   int
}

// NewDealPosition returns the position before the first card of a deal:
// nothing captured, nothing charged, the holder of the two of clubs to
// lead.
func NewDealPosition(hands [4]cards.CardSet) (Position, error) {
	pos := Position{Hands: hands, Lead: cards.NoCard}
	pos.Player = rules.HolderOf(hands, cards.TwoClubs.Max())
	if pos.Player < 0 {
		return pos, fmt.Errorf("%w: nobody holds the two of clubs", ErrInvalidPosition)
	}
	return pos, pos.Validate()
}

// Captured is every card in a completed trick.
func (p Position) Captured() cards.CardSet {
	return p.Won[0] | p.Won[1] | p.Won[2] | p.Won[3]
}

// Done reports whether every card has been captured.
func (p Position) Done() bool {
	return p.Captured() == cards.Deck
}

// Playable is what seat still has to play.
func (p Position) Playable(seat int) cards.CardSet {
	return p.Hands[seat] &^ p.Trick
}

func (p Position) HeartsBroken() bool {
	return p.Captured().Intersects(cards.Hearts)
}

// Legal returns the legal plays of the seat to act.
func (p Position) Legal() cards.CardSet {
	return rules.LegalPlays(p.Playable(p.Player), p.Charged, p.LedSuits, p.Lead, p.HeartsBroken())
}

// Candidates returns the legal plays worth searching: interchangeable
// plays are collapsed, treating captured cards and cards already beaten
// in the forming trick as accounted for.
func (p Position) Candidates() cards.CardSet {
	var lost cards.CardSet
	if !p.Trick.Empty() {
		lost = p.Trick.Remove(rules.TrickWinner(p.Trick, p.Lead))
	}
	return rules.DistinctPlays(p.Legal(), p.Captured()|lost, p.Charged)
}

// Play puts c on the table for the seat to act. It reports whether the
// card completed the trick.
func (p Position) Play(c cards.Card) (Position, bool) {
	next := p
	if p.Trick.Empty() {
		next.Lead = c
	}
	trick := p.Trick.Add(c)
	if !rules.Completes(trick, p.Captured(), next.Lead) {
		next.Trick = trick
		next.Player = (p.Player + 1) % 4
		return next.skipEmpty(), false
	}
	winner := rules.HolderOf(p.Hands, rules.TrickWinner(trick, next.Lead))
	for i := range next.Hands {
		next.Hands[i] &^= trick
	}
	next.Won[winner] |= trick
	next.LedSuits |= next.Lead.Suit()
	next.Lead = cards.NoCard
	next.Trick = 0
	next.Player = winner
	return next.skipEmpty(), true
}

// skipEmpty passes the turn on from seats with nothing left to play. An
// extended trick can exhaust one hand while others still hold cards.
func (p Position) skipEmpty() Position {
	if p.Done() {
		return p
	}
	for p.Playable(p.Player).Empty() {
		p.Player = (p.Player + 1) % 4
	}
	return p
}

// Validate checks that the position could arise in play.
func (p Position) Validate() error {
	var seen cards.CardSet
	for i, h := range p.Hands {
		if seen.Intersects(h) {
			return fmt.Errorf("%w: hand %d repeats %s", ErrInvalidPosition, i, seen&h)
		}
		seen |= h
	}
	for i, w := range p.Won {
		if seen.Intersects(w) {
			return fmt.Errorf("%w: won cards of seat %d repeat %s", ErrInvalidPosition, i, seen&w)
		}
		seen |= w
	}
	if seen != cards.Deck {
		return fmt.Errorf("%w: cards unaccounted for: %s", ErrInvalidPosition, cards.Deck&^seen)
	}
	if !cards.Chargeable.ContainsAll(p.Charged) {
		return fmt.Errorf("%w: %s cannot be charged", ErrInvalidPosition, p.Charged&^cards.Chargeable)
	}
	for _, suit := range cards.Suits {
		if p.LedSuits.Intersects(suit) && !p.LedSuits.ContainsAll(suit) {
			return fmt.Errorf("%w: led suits must be whole suit lanes", ErrInvalidPosition)
		}
	}
	if p.Player < 0 || p.Player > 3 {
		return fmt.Errorf("%w: seat %d", ErrInvalidPosition, p.Player)
	}
	if !(p.Hands[0] | p.Hands[1] | p.Hands[2] | p.Hands[3]).ContainsAll(p.Trick) {
		return fmt.Errorf("%w: trick cards %s are not held", ErrInvalidPosition, p.Trick)
	}
	switch {
	case p.Trick.Empty() && p.Lead != cards.NoCard:
		return fmt.Errorf("%w: lead %s without a trick", ErrInvalidPosition, p.Lead)
	case !p.Trick.Empty() && !p.Trick.Contains(p.Lead):
		return fmt.Errorf("%w: lead %s is not in the trick %s", ErrInvalidPosition, p.Lead, p.Trick)
	}
	if !p.Done() && p.Playable(p.Player).Empty() {
		return fmt.Errorf("%w: seat %d has nothing to play", ErrInvalidPosition, p.Player)
	}
	return nil
}

func (p Position) String() string {
	return fmt.Sprintf("%s / %s / %s / %s (to act %d, trick %q, charged %q)",
		p.Hands[0], p.Hands[1], p.Hands[2], p.Hands[3], p.Player, p.Trick.String(), p.Charged.String())
}
