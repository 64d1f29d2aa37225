// Package charge picks the cards each seat charges before play begins.
//
// The choice is made greedily, one seat at a time in seat order, on top of
// the perfect-information solver. It does not search the joint space of
// charges, so an earlier seat never reacts to a later seat's charges.
package charge

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/hearts/cards"
	"github.com/domino14/hearts/solver"
)

var ErrAlreadyCharged = errors.New("position already has charges")

// Result is the charge set the selector settled on and the resolved deal
// under it.
type Result struct {
	Charged cards.CardSet
	Won     [4]cards.CardSet
	Money   [4]int
	// Solves counts solver invocations, the baseline included.
	Solves int
}

type Selector struct {
	solver *solver.Solver
}

func NewSelector(s *solver.Solver) *Selector {
	return &Selector{solver: s}
}

// Select resolves pos with no charges, then lets each seat from 0 to 3 add
// the held chargeable card that most improves its own money, repeatedly,
// until no addition improves it.
func (sel *Selector) Select(ctx context.Context, pos solver.Position) (Result, error) {
	if !pos.Charged.Empty() {
		return Result{}, fmt.Errorf("%w: %s", ErrAlreadyCharged, pos.Charged)
	}
	res := Result{}
	base, err := sel.solve(ctx, pos, 0, &res)
	if err != nil {
		return res, err
	}
	res.Won, res.Money = base.Won, base.Money

	for seat := 0; seat < 4; seat++ {
		for {
			best := cards.NoCard
			var bestRes solver.Result
			bestMoney := res.Money[seat]
			for _, c := range (pos.Hands[seat] & cards.Chargeable &^ res.Charged).Cards() {
				r, err := sel.solve(ctx, pos, res.Charged.Add(c), &res)
				if err != nil {
					return res, err
				}
				if r.Money[seat] > bestMoney {
					best, bestRes, bestMoney = c, r, r.Money[seat]
				}
			}
			if best == cards.NoCard {
				break
			}
			res.Charged = res.Charged.Add(best)
			res.Won, res.Money = bestRes.Won, bestRes.Money
			log.Info().Int("seat", seat).Str("card", best.String()).
				Int("money", bestMoney).Str("charged", res.Charged.String()).
				Msg("charge-adopted")
		}
	}
	log.Debug().Str("charged", res.Charged.String()).Ints("money", res.Money[:]).
		Int("solves", res.Solves).Msg("charges-selected")
	return res, nil
}

func (sel *Selector) solve(ctx context.Context, pos solver.Position, charged cards.CardSet, res *Result) (solver.Result, error) {
	pos.Charged = charged
	res.Solves++
	return sel.solver.Solve(ctx, pos)
}
