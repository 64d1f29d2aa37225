package solver

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/hearts/cards"
)

// 40 bytes (entrySize)
type TableEntry struct {
	hash uint64
	won  [4]cards.CardSet
}

const entrySize = 40

const (
	minSizePowerOf2 = 16
	maxSizePowerOf2 = 27
)

func (t TableEntry) valid() bool {
	// every resolved distribution covers the deck, so an empty one is unused.
	return t.won[0]|t.won[1]|t.won[2]|t.won[3] != 0
}

type TableLock interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

type FakeLock struct{}

func (f FakeLock) Lock()    {}
func (f FakeLock) Unlock()  {}
func (f FakeLock) RLock()   {}
func (f FakeLock) RUnlock() {}

// TranspositionTable remembers the resolved won distribution of positions
// already searched. Resolution is a pure function of the position, so an
// entry is exact and never needs bounds or depths.
type TranspositionTable struct {
	TableLock
	table        []TableEntry
	created      atomic.Uint64
	lookups      atomic.Uint64
	hits         atomic.Uint64
	sizePowerOf2 int
	sizeMask     uint64
	// "type 2" collisions: another position sits in the same slot.
	t2collisions atomic.Uint64
}

func (t *TranspositionTable) SetSingleThreadedMode() {
	t.TableLock = &FakeLock{}
}

func (t *TranspositionTable) SetMultiThreadedMode() {
	t.TableLock = new(sync.RWMutex)
}

func (t *TranspositionTable) lookup(zval uint64) ([4]cards.CardSet, bool) {
	t.RLock()
	defer t.RUnlock()
	t.lookups.Add(1)
	entry := t.table[zval&t.sizeMask]
	if entry.hash != zval || !entry.valid() {
		if entry.valid() {
			t.t2collisions.Add(1)
		}
		return [4]cards.CardSet{}, false
	}
	t.hits.Add(1)
	// a full 64-bit match is taken as the same position.
	return entry.won, true
}

func (t *TranspositionTable) store(zval uint64, won [4]cards.CardSet) {
	t.Lock()
	defer t.Unlock()
	// just overwrite whatever is there.
	t.table[zval&t.sizeMask] = TableEntry{hash: zval, won: won}
	t.created.Add(1)
}

// Reset sizes the table to fractionOfMemory of system memory, rounded down
// to a power of two and clamped, and clears it.
func (t *TranspositionTable) Reset(fractionOfMemory float64) {
	if t.TableLock == nil {
		t.SetSingleThreadedMode()
	}
	t.Lock()
	defer t.Unlock()
	totalMem := memory.TotalMemory()
	desiredNElems := fractionOfMemory * (float64(totalMem) / float64(entrySize))
	t.sizePowerOf2 = minSizePowerOf2
	if desiredNElems > 1 {
		t.sizePowerOf2 = int(math.Log2(desiredNElems))
	}
	t.sizePowerOf2 = min(max(t.sizePowerOf2, minSizePowerOf2), maxSizePowerOf2)

	numElems := 1 << t.sizePowerOf2
	t.sizeMask = uint64(numElems - 1)
	reset := false
	if t.table != nil && len(t.table) == numElems {
		reset = true
		clear(t.table)
	} else {
		t.table = make([]TableEntry, numElems)
	}

	log.Debug().Int("num-elems", numElems).
		Float64("desired-num-elems", desiredNElems).
		Int("estimated-total-memory-bytes", numElems*entrySize).
		Uint64("total-system-memory-bytes", totalMem).
		Bool("reset", reset).
		Msg("transposition-table-size")

	t.created.Store(0)
	t.lookups.Store(0)
	t.hits.Store(0)
	t.t2collisions.Store(0)
}

func (t *TranspositionTable) sized() bool {
	return t.table != nil
}

// Stats returns the created, lookup, hit and type 2 collision counters.
func (t *TranspositionTable) Stats() (created, lookups, hits, t2collisions uint64) {
	return t.created.Load(), t.lookups.Load(), t.hits.Load(), t.t2collisions.Load()
}
