package charge

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/hearts/cards"
	"github.com/domino14/hearts/scoring"
	"github.com/domino14/hearts/solver"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func endgame(hands [4]string, restTo int) solver.Position {
	pos := solver.Position{Lead: cards.NoCard, LedSuits: cards.Deck}
	var held cards.CardSet
	for i, h := range hands {
		pos.Hands[i] = cards.MustParse(h)
		held |= pos.Hands[i]
	}
	pos.Won[restTo] = cards.Deck &^ held
	return pos
}

func newSelector(threads int, tt bool) *Selector {
	s := solver.NewSolver()
	s.SetTableFraction(0)
	s.SetThreads(threads)
	s.SetTranspositionTableOptim(tt)
	return NewSelector(s)
}

func TestSelectGreedy(t *testing.T) {
	is := is.New(t)
	// One trick left: seat 1 takes QS AH TC with the ace of spades.
	// Seat 0 charges the queen, seat 2 declines to double its own hearts,
	// and seat 3 charges the ten of clubs.
	pos := endgame([4]string{"QS", "AS", "AH", "TC"}, 2)
	res, err := newSelector(1, true).Select(context.Background(), pos)
	is.NoErr(err)
	is.Equal(res.Charged, cards.MustParse("QS TC"))
	is.Equal(res.Won[1], cards.MustParse("AQS AH TC"))
	is.Equal(res.Money, [4]int{110, -322, 102, 110})
	is.Equal(res.Solves, 4)
}

func TestSelectNothingToCharge(t *testing.T) {
	is := is.New(t)
	pos := endgame([4]string{"2S", "AS", "3S", "QH"}, 0)
	res, err := newSelector(1, true).Select(context.Background(), pos)
	is.NoErr(err)
	is.Equal(res.Charged, cards.CardSet(0))
	is.Equal(res.Solves, 1)
	is.Equal(res.Money, scoring.Moneys(res.Won, 0))
}

func TestSelectAlreadyCharged(t *testing.T) {
	is := is.New(t)
	pos := endgame([4]string{"QS", "AS", "AH", "TC"}, 2)
	pos.Charged = cards.QueenSpades
	_, err := newSelector(1, true).Select(context.Background(), pos)
	is.True(errors.Is(err, ErrAlreadyCharged))
}

func TestSelectInvalidPosition(t *testing.T) {
	is := is.New(t)
	pos := endgame([4]string{"QS", "AS", "AH", "TC"}, 2)
	pos.Hands[0] = 0
	_, err := newSelector(1, true).Select(context.Background(), pos)
	is.True(errors.Is(err, solver.ErrInvalidPosition))
}

func TestSelectReproducible(t *testing.T) {
	is := is.New(t)
	pos := endgame([4]string{"KT4S AH", "Q83S JD", "A7S TC 3H", "J9S 6H 7D"}, 3)
	first, err := newSelector(1, true).Select(context.Background(), pos)
	is.NoErr(err)
	// seat 0 charges AH, seat 1 the queen, seat 2 the ten; seat 1 keeps JD uncharged
	is.Equal(first.Charged, cards.MustParse("QS AH TC"))
	is.Equal(first.Won, [4]cards.CardSet{
		cards.MustParse("8S A63H"),
		cards.MustParse("AKQJT7S J7D"),
		0,
		cards.MustParse("965432S KQJT987542H AKQT9865432D AKQJT98765432C"),
	})
	is.Equal(first.Money, [4]int{78, 38, 102, -218})
	is.Equal(first.Solves, 6)
	is.Equal(first.Money, scoring.Moneys(first.Won, first.Charged))

	for _, sel := range []*Selector{
		newSelector(1, true), newSelector(1, false), newSelector(4, true), newSelector(4, false),
	} {
		for i := 0; i < 2; i++ {
			res, err := sel.Select(context.Background(), pos)
			is.NoErr(err)
			is.Equal(res, first)
		}
	}
}
