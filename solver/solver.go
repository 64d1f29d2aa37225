// Package solver resolves a charged Hearts deal under perfect information.
// Every seat picks the card that maximizes its own money given how the
// rest of the deal actually plays out; this is not minimax, all four seats
// share the same decision rule.
package solver

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/hearts/cards"
	"github.com/domino14/hearts/scoring"
	"github.com/domino14/hearts/zobrist"
)

// DefaultTableFraction is the share of system memory given to the
// transposition table when the caller does not choose one.
const DefaultTableFraction = 0.05

// Result is the resolved outcome of a position.
type Result struct {
	Won   [4]cards.CardSet
	Money [4]int
	Nodes uint64
}

// Step is one card of the principal line.
type Step struct {
	Seat      int
	Card      cards.Card
	Completed bool // the card completed its trick
	Winner    int  // seat capturing the trick, or -1
}

type Solver struct {
	zobrist *zobrist.Zobrist
	ttable  *TranspositionTable

	transpositionTableOptim bool
	tableFraction           float64
	threads                 int

	nodes atomic.Uint64
}

// Init initializes the solver: single-threaded, transposition table on.
func (s *Solver) Init() {
	s.zobrist = &zobrist.Zobrist{}
	s.zobrist.Initialize()
	s.ttable = &TranspositionTable{}
	s.ttable.SetSingleThreadedMode()
	s.transpositionTableOptim = true
	s.tableFraction = DefaultTableFraction
	s.threads = 1
}

// NewSolver returns an initialized solver.
func NewSolver() *Solver {
	s := &Solver{}
	s.Init()
	return s
}

// SetThreads sets how many root candidates are resolved concurrently.
func (s *Solver) SetThreads(threads int) {
	s.threads = max(threads, 1)
	if s.threads > 1 {
		s.ttable.SetMultiThreadedMode()
	} else {
		s.ttable.SetSingleThreadedMode()
	}
}

func (s *Solver) Threads() int {
	return s.threads
}

func (s *Solver) SetTranspositionTableOptim(tt bool) {
	s.transpositionTableOptim = tt
}

// SetTableFraction sets the share of system memory for the transposition
// table. It takes effect at the next ClearTranspositionTable or first
// Solve.
func (s *Solver) SetTableFraction(f float64) {
	s.tableFraction = f
}

// ClearTranspositionTable drops every remembered position. Entries stay
// valid across solves of different charge sets, since the charges are part
// of the key.
func (s *Solver) ClearTranspositionTable() {
	s.ttable.Reset(s.tableFraction)
}

func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}

// Solve resolves pos to the end of the deal.
func (s *Solver) Solve(ctx context.Context, pos Position) (Result, error) {
	if err := pos.Validate(); err != nil {
		return Result{}, err
	}
	if s.transpositionTableOptim && !s.ttable.sized() {
		s.ClearTranspositionTable()
	}
	log.Debug().Str("position", pos.String()).Int("threads", s.threads).
		Bool("ttable", s.transpositionTableOptim).Msg("solve-config")
	tstart := time.Now()
	s.nodes.Store(0)

	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})
	g.Go(func() error {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		var lastNodes uint64
		for {
			select {
			case <-done:
				return nil
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				nodes := s.nodes.Load()
				log.Debug().Uint64("nps", nodes-lastNodes).Msg("nodes-per-second")
				lastNodes = nodes
			}
		}
	})
	var won [4]cards.CardSet
	g.Go(func() error {
		defer close(done)
		var err error
		if pos.Done() {
			won = pos.Won
			return nil
		}
		_, won, err = s.choose(gctx, pos, s.threads > 1)
		return err
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{Won: won, Money: scoring.Moneys(won, pos.Charged), Nodes: s.nodes.Load()}
	created, lookups, hits, t2 := s.ttable.Stats()
	log.Debug().
		Uint64("nodes", res.Nodes).
		Uint64("ttable-created", created).
		Uint64("ttable-lookups", lookups).
		Uint64("ttable-hits", hits).
		Uint64("ttable-t2collisions", t2).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("solve-returning")
	return res, nil
}

// Line replays the optimal continuation of pos one card at a time.
func (s *Solver) Line(ctx context.Context, pos Position) ([]Step, error) {
	if err := pos.Validate(); err != nil {
		return nil, err
	}
	if s.transpositionTableOptim && !s.ttable.sized() {
		s.ClearTranspositionTable()
	}
	var line []Step
	for !pos.Done() {
		c, _, err := s.choose(ctx, pos, s.threads > 1)
		if err != nil {
			return line, err
		}
		step := Step{Seat: pos.Player, Card: c, Winner: -1}
		before := pos
		pos, step.Completed = pos.Play(c)
		if step.Completed {
			for i := range pos.Won {
				if pos.Won[i] != before.Won[i] {
					step.Winner = i
				}
			}
		}
		line = append(line, step)
	}
	return line, nil
}

func (s *Solver) resolve(ctx context.Context, pos Position) ([4]cards.CardSet, error) {
	if pos.Done() {
		return pos.Won, nil
	}
	if ctx.Err() != nil {
		return [4]cards.CardSet{}, ctx.Err()
	}
	var key uint64
	if s.transpositionTableOptim {
		key = s.zobrist.Hash(pos.Hands, pos.Won, pos.Charged, pos.LedSuits, pos.Trick, pos.Lead, pos.Player)
		if won, ok := s.ttable.lookup(key); ok {
			return won, nil
		}
	}
	_, won, err := s.choose(ctx, pos, false)
	if err != nil {
		return won, err
	}
	if s.transpositionTableOptim {
		s.ttable.store(key, won)
	}
	return won, nil
}

// choose resolves every candidate of the seat to act and returns the one
// with the best money for that seat. Ties go to the highest card encoding,
// which is the order candidates are tried in.
func (s *Solver) choose(ctx context.Context, pos Position, parallel bool) (cards.Card, [4]cards.CardSet, error) {
	candidates := pos.Candidates().Cards()
	s.nodes.Add(1)
	outcomes := make([][4]cards.CardSet, len(candidates))

	if parallel && len(candidates) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.threads)
		for i, c := range candidates {
			g.Go(func() error {
				next, _ := pos.Play(c)
				won, err := s.resolve(gctx, next)
				outcomes[i] = won
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return cards.NoCard, [4]cards.CardSet{}, err
		}
	} else {
		for i, c := range candidates {
			next, _ := pos.Play(c)
			won, err := s.resolve(ctx, next)
			if err != nil {
				return cards.NoCard, won, err
			}
			outcomes[i] = won
		}
	}

	best := -1
	bestMoney := 0
	for i, won := range outcomes {
		m := scoring.Money(won, pos.Charged, pos.Player)
		if best < 0 || m > bestMoney {
			best, bestMoney = i, m
		}
	}
	if best < 0 {
		return cards.NoCard, [4]cards.CardSet{}, fmt.Errorf("%w: seat %d has no candidate plays", ErrInvalidPosition, pos.Player)
	}
	return candidates[best], outcomes[best], nil
}
