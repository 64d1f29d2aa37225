package cards

import (
	"errors"
	"fmt"
	"strings"
)

const (
	rankChars = "23456789TJQKA"
	suitChars = "CDHS"
)

var (
	ErrBadRank    = errors.New("unrecognized rank")
	ErrBadSuit    = errors.New("unrecognized suit")
	ErrEmptyGroup = errors.New("suit group has no ranks")
	ErrDuplicate  = errors.New("duplicate card")
)

func (c Card) String() string {
	if !c.Valid() {
		return "--"
	}
	return string([]byte{rankChars[c.Rank()], suitChars[c.SuitIndex()]})
}

// String formats s canonically: suit groups spades, hearts, diamonds,
// clubs, each with ranks high to low, e.g. "AQT8642S KJ9753H". The empty
// set formats as "".
func (s CardSet) String() string {
	var sb strings.Builder
	for i := NumSuits - 1; i >= 0; i-- {
		lane := uint64(s) >> (laneBits * i) & uint64(Clubs)
		if lane == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		for r := NumRanks - 1; r >= 0; r-- {
			if lane&(1<<r) != 0 {
				sb.WriteByte(rankChars[r])
			}
		}
		sb.WriteByte(suitChars[i])
	}
	return sb.String()
}

func rankOf(b byte) (int, error) {
	r := strings.IndexByte(rankChars, b)
	if r < 0 {
		return 0, fmt.Errorf("%w %q", ErrBadRank, b)
	}
	return r, nil
}

func suitOf(b byte) (int, error) {
	s := strings.IndexByte(suitChars, b)
	if s < 0 {
		return 0, fmt.Errorf("%w %q", ErrBadSuit, b)
	}
	return s, nil
}

// ParseCard parses two-character notation such as "QS" or "TC".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return NoCard, fmt.Errorf("card %q: want rank and suit", s)
	}
	r, err := rankOf(s[0])
	if err != nil {
		return NoCard, fmt.Errorf("card %q: %w", s, err)
	}
	su, err := suitOf(s[1])
	if err != nil {
		return NoCard, fmt.Errorf("card %q: %w", s, err)
	}
	return NewCard(r, su), nil
}

// Parse reads space-separated suit groups like "AQT8642S KJ9753H". Ranks
// inside a group may come in any order.
func Parse(s string) (CardSet, error) {
	var set CardSet
	for _, group := range strings.Fields(s) {
		su, err := suitOf(group[len(group)-1])
		if err != nil {
			return 0, fmt.Errorf("group %q: %w", group, err)
		}
		if len(group) == 1 {
			return 0, fmt.Errorf("group %q: %w", group, ErrEmptyGroup)
		}
		for i := 0; i < len(group)-1; i++ {
			r, err := rankOf(group[i])
			if err != nil {
				return 0, fmt.Errorf("group %q: %w", group, err)
			}
			c := NewCard(r, su)
			if set.Contains(c) {
				return 0, fmt.Errorf("group %q: %w %s", group, ErrDuplicate, c)
			}
			set = set.Add(c)
		}
	}
	return set, nil
}

// MustParse is Parse for literals in tests and tables; it panics on error.
func MustParse(s string) CardSet {
	set, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return set
}

// MustParseCard is ParseCard that panics on error.
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}
