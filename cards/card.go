package cards

import "math/bits"

// Card is one of the 52 playing cards. The low 4 bits hold the rank
// (0 = two .. 12 = ace) and the next 2 bits hold the suit, so every suit
// occupies its own 16-bit lane of a CardSet.
//
//	63    48 47    32 31    16 15     0
//	 SPADES   HEARTS   DIAMONDS  CLUBS
//	 ...AKQJT98765432 in the low 13 bits of each lane
type Card uint8

// NoCard marks the absence of a card, e.g. the lead of a trick nobody has
// led yet.
const NoCard Card = 0xff

const (
	Two = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const (
	ClubsIdx = iota
	DiamondsIdx
	HeartsIdx
	SpadesIdx
)

const (
	NumRanks = 13
	NumSuits = 4
	NumCards = NumRanks * NumSuits
	laneBits = 16
)

// NewCard builds a card from a rank (Two..Ace) and a suit index.
func NewCard(rank, suit int) Card {
	return Card(laneBits*suit + rank)
}

// Rank returns 0 for a two up to 12 for an ace.
func (c Card) Rank() int {
	return int(c % laneBits)
}

// SuitIndex returns ClubsIdx, DiamondsIdx, HeartsIdx or SpadesIdx.
func (c Card) SuitIndex() int {
	return int(c / laneBits)
}

// Suit returns the lane mask of the card's suit.
func (c Card) Suit() CardSet {
	return Clubs << (laneBits * (c / laneBits))
}

// Set returns the singleton set holding c.
func (c Card) Set() CardSet {
	return CardSet(1) << c
}

func (c Card) Valid() bool {
	return c < 64 && c.Rank() < NumRanks
}

// CardSet is a set of cards, one bit per card.
type CardSet uint64

const (
	Clubs    CardSet = 0x0000_0000_0000_1fff
	Diamonds CardSet = 0x0000_0000_1fff_0000
	Hearts   CardSet = 0x0000_1fff_0000_0000
	Spades   CardSet = 0x1fff_0000_0000_0000
	Deck             = Clubs | Diamonds | Hearts | Spades

	Chargeable CardSet = 0x0400_1000_0200_0100
	Nines      CardSet = 0x0080_0080_0080_0080

	TwoClubs     CardSet = 0x0000_0000_0000_0001
	TenClubs             = Clubs & Chargeable
	JackDiamonds         = Diamonds & Chargeable
	AceHearts            = Hearts & Chargeable
	QueenSpades          = Spades & Chargeable

	// Points are the cards that may not be dumped on the first trick.
	Points = Hearts | QueenSpades | JackDiamonds

	// laneLow has the lowest bit of every lane set.
	laneLow CardSet = 0x0001_0001_0001_0001
)

// Suits in descending priority order.
var Suits = [NumSuits]CardSet{Spades, Hearts, Diamonds, Clubs}

func (s CardSet) Len() int {
	return bits.OnesCount64(uint64(s))
}

func (s CardSet) Empty() bool {
	return s == 0
}

// Max returns the member with the highest encoding, or NoCard. Across suits
// this orders spades above hearts above diamonds above clubs, so it is only
// meaningful as "highest card" when s is known to hold a single suit.
func (s CardSet) Max() Card {
	if s == 0 {
		return NoCard
	}
	return Card(63 - bits.LeadingZeros64(uint64(s)))
}

// Min returns the member with the lowest encoding, or NoCard.
func (s CardSet) Min() Card {
	if s == 0 {
		return NoCard
	}
	return Card(bits.TrailingZeros64(uint64(s)))
}

func (s CardSet) Contains(c Card) bool {
	return s&c.Set() != 0
}

// ContainsAll reports whether every member of o is in s.
func (s CardSet) ContainsAll(o CardSet) bool {
	return s&o == o
}

func (s CardSet) Intersects(o CardSet) bool {
	return s&o != 0
}

func (s CardSet) Add(c Card) CardSet {
	return s | c.Set()
}

func (s CardSet) Remove(c Card) CardSet {
	return s &^ c.Set()
}

func (s CardSet) Union(o CardSet) CardSet {
	return s | o
}

func (s CardSet) Intersect(o CardSet) CardSet {
	return s & o
}

func (s CardSet) Minus(o CardSet) CardSet {
	return s &^ o
}

// Suit returns the lane mask of the highest-priority suit present in s, or
// the empty set. For a set confined to one suit that is simply its suit.
func (s CardSet) Suit() CardSet {
	for _, suit := range Suits {
		if s.Intersects(suit) {
			return suit
		}
	}
	return 0
}

// Each calls fn for every member from the highest encoding down.
func (s CardSet) Each(fn func(Card)) {
	for s != 0 {
		c := s.Max()
		s = s.Remove(c)
		fn(c)
	}
}

// Cards returns the members from the highest encoding down.
func (s CardSet) Cards() []Card {
	out := make([]Card, 0, s.Len())
	s.Each(func(c Card) {
		out = append(out, c)
	})
	return out
}

// SetOf builds a set from individual cards.
func SetOf(cs ...Card) CardSet {
	var s CardSet
	for _, c := range cs {
		s = s.Add(c)
	}
	return s
}
