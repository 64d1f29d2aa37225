package solver

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/hearts/cards"
)

func TestTTableEntry(t *testing.T) {
	is := is.New(t)
	tt := &TranspositionTable{}
	tt.SetSingleThreadedMode()
	// smallest table: 1<<16 elems
	tt.Reset(0)
	is.Equal(tt.sizePowerOf2, minSizePowerOf2)
	is.Equal(len(tt.table), 1<<minSizePowerOf2)

	won := [4]cards.CardSet{cards.Spades, cards.Hearts, cards.Diamonds, cards.Clubs}
	const key = uint64(9409641586937047728)
	tt.store(key, won)

	got, ok := tt.lookup(key)
	is.True(ok)
	is.Equal(got, won)

	is.Equal(tt.t2collisions.Load(), uint64(0))
	// same slot, different position
	_, ok = tt.lookup(key + 1<<minSizePowerOf2)
	is.True(!ok)
	is.Equal(tt.t2collisions.Load(), uint64(1))

	// an empty slot is a plain miss
	_, ok = tt.lookup(key + 1)
	is.True(!ok)
	is.Equal(tt.lookups.Load(), uint64(3))
	is.Equal(tt.t2collisions.Load(), uint64(1))

	created, lookups, hits, t2 := tt.Stats()
	is.Equal([]uint64{created, lookups, hits, t2}, []uint64{1, 3, 1, 1})

	tt.Reset(0)
	_, ok = tt.lookup(key)
	is.True(!ok)
	is.Equal(tt.lookups.Load(), uint64(1))
}

func TestTTableMultiThreaded(t *testing.T) {
	is := is.New(t)
	tt := &TranspositionTable{}
	tt.SetMultiThreadedMode()
	tt.Reset(0)
	won := [4]cards.CardSet{cards.Deck, 0, 0, 0}
	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for k := uint64(0); k < 1000; k++ {
				tt.store(k*4+uint64(i), won)
			}
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}
	is.Equal(tt.created.Load(), uint64(4000))
	got, ok := tt.lookup(17)
	is.True(ok)
	is.Equal(got, won)
}
