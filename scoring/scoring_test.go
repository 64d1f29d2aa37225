package scoring

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/hearts/cards"
)

func TestScore(t *testing.T) {
	is := is.New(t)
	type tc struct {
		won     string
		charged cards.CardSet
		score   int
	}
	qt := cards.QueenSpades | cards.TenClubs
	at := cards.AceHearts | cards.TenClubs
	cases := []tc{
		{"AJT5S J63H 96D A953C", 0, 3},
		{"AJT5S J63H 96D A953C", qt, 3},
		{"AJT5S J63H 96D A953C", cards.JackDiamonds, 3},
		{"AJT5S J63H 96D A953C", cards.AceHearts, 6},
		{"AJT5S J63H 96D A953C", at, 6},

		{"973S T92H K7D KT74C", 0, 6},
		{"973S T92H K7D KT74C", qt, 12},
		{"973S T92H K7D KT74C", cards.JackDiamonds, 6},
		{"973S T92H K7D KT74C", cards.AceHearts, 12},
		{"973S T92H K7D KT74C", at, 24},

		{"KQ6S A5H JT542D Q82C", 0, 5},
		{"KQ6S A5H JT542D Q82C", qt, 18},
		{"KQ6S A5H JT542D Q82C", cards.JackDiamonds, -5},
		{"KQ6S A5H JT542D Q82C", cards.AceHearts, 7},
		{"KQ6S A5H JT542D Q82C", at, 7},

		{"84S KQ874H AQ83D J6C", 0, 5},
		{"84S KQ874H AQ83D J6C", qt, 5},
		{"84S KQ874H AQ83D J6C", cards.JackDiamonds, 5},
		{"84S KQ874H AQ83D J6C", cards.AceHearts, 10},
		{"84S KQ874H AQ83D J6C", at, 10},

		{"", 0, 0},
		{"", cards.Chargeable, 0},
	}
	for _, c := range cases {
		is.Equal(Score(cards.MustParse(c.won), c.charged), c.score) // c.won
	}
}

func TestScoreSweep(t *testing.T) {
	is := is.New(t)
	sweep := cards.Hearts | cards.QueenSpades
	is.True(Swept(sweep))
	is.Equal(Score(sweep, 0), -26)
	is.Equal(Score(sweep, cards.QueenSpades|cards.TenClubs), -39)
	is.Equal(Score(sweep, cards.JackDiamonds), -26)
	is.Equal(Score(sweep, cards.AceHearts), -39)
	is.Equal(Score(sweep, cards.AceHearts|cards.TenClubs), -39)
	// the jack keeps its sign and the ten still multiplies
	is.Equal(Score(sweep|cards.JackDiamonds|cards.TenClubs, 0), 2*(-10-13-13))

	// one heart short is not a sweep
	is.True(!Swept(sweep.Remove(cards.MustParseCard("2H"))))
	is.Equal(Score(sweep.Remove(cards.MustParseCard("2H")), 0), 25)
}

func TestMoney(t *testing.T) {
	is := is.New(t)
	won := [4]cards.CardSet{
		cards.MustParse("AJT5S J63H 96D A953C"),
		cards.MustParse("973S T92H K7D KT74C"),
		cards.MustParse("KQ6S A5H JT542D Q82C"),
		cards.MustParse("84S KQ874H AQ83D J6C"),
	}
	is.Equal(Moneys(won, 0), [4]int{7, -5, -1, -1})
	is.Equal(Moneys(won, cards.AceHearts), [4]int{11, -13, 7, -5})
	is.Equal(Moneys(won, cards.TenClubs), [4]int{13, -23, 5, 5})
	is.Equal(Money(won, 0, 0), 7)
}

func TestMoneyZeroSum(t *testing.T) {
	is := is.New(t)
	dists := [][4]cards.CardSet{
		{cards.Spades, cards.Hearts, cards.Clubs, cards.Diamonds},
		{cards.Hearts | cards.QueenSpades, cards.Spades &^ cards.QueenSpades, cards.Clubs, cards.Diamonds},
		{0, 0, 0, cards.Deck},
		{cards.MustParse("AJT5S J63H 96D A953C"), cards.MustParse("973S T92H K7D KT74C"), 0, 0},
	}
	charges := []cards.CardSet{0, cards.AceHearts, cards.QueenSpades | cards.TenClubs, cards.Chargeable}
	for _, won := range dists {
		for _, ch := range charges {
			is.Equal(Total(Moneys(won, ch)), 0)
		}
	}
}
