package shell

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/hearts/cards"
	"github.com/domino14/hearts/charge"
	"github.com/domino14/hearts/config"
	"github.com/domino14/hearts/solver"
	"github.com/domino14/hearts/stats"
)

const (
	defaultBatchDeals = 10
	histogramBins     = 12
	histogramWidth    = 40
)

// batch analyzes random late positions: charges are selected and the deal
// resolved for each, and money is summarized per seat.
//
//	batch [-n deals] [-cards per-hand] [-threads workers] [-hist seat]
func (sc *ShellController) batch(cmd *shellcmd) (*Response, error) {
	n, err := cmd.options.IntDefault("n", defaultBatchDeals)
	if err != nil {
		return nil, err
	}
	perHand, err := cmd.options.IntDefault("cards", sc.config.GetInt(config.ConfigBatchCards))
	if err != nil {
		return nil, err
	}
	workers, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigThreads))
	if err != nil {
		return nil, err
	}
	workers = max(workers, 1)
	histSeat, err := cmd.options.IntDefault("hist", -1)
	if err != nil {
		return nil, err
	}

	// the dealer is not safe for concurrent use; deal everything up front.
	positions := make([]solver.Position, n)
	for i := range positions {
		positions[i], err = sc.dealer.Endgame(perHand)
		if err != nil {
			return nil, err
		}
	}

	tstart := time.Now()
	results := make([]charge.Result, n)
	jobs := make(chan int)
	g, gctx := errgroup.WithContext(sc.ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := range positions {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < workers; w++ {
		// every worker owns its solver and transposition table
		sel := charge.NewSelector(newSolver(sc.config, 1))
		g.Go(func() error {
			for i := range jobs {
				res, err := sel.Select(gctx, positions[i])
				if err != nil {
					return err
				}
				results[i] = res
				log.Debug().Int("deal", i).Int("worker", w).Ints("money", res.Money[:]).Msg("batch-deal-done")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var seats stats.Seats
	chargeCounts := map[cards.Card]int{}
	for _, res := range results {
		seats.Push(res.Money)
		for _, c := range res.Charged.Cards() {
			chargeCounts[c]++
		}
	}
	log.Info().Int("deals", n).Int("workers", workers).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).Msg("batch-done")
	out := formatBatch(&seats, chargeCounts, perHand)
	if histSeat >= 0 && histSeat < 4 {
		money := lo.Map(results, func(r charge.Result, _ int) float64 { return float64(r.Money[histSeat]) })
		hist, err := formatHistogram(money)
		if err != nil {
			return nil, err
		}
		out += fmt.Sprintf("\nmoney of seat %d:\n%s", histSeat, hist)
	}
	return msg(out), nil
}

func formatHistogram(values []float64) (string, error) {
	if len(lo.Uniq(values)) < 2 {
		return "not enough distinct values for a histogram", nil
	}
	var buf bytes.Buffer
	h := histogram.Hist(histogramBins, values)
	if err := histogram.Fprint(&buf, h, histogram.Linear(histogramWidth)); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func formatBatch(seats *stats.Seats, chargeCounts map[cards.Card]int, perHand int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "deals: %d (%d cards per hand)\n", seats.Deals(), perHand)
	fmt.Fprintf(&sb, "%-5s%9s%9s%22s\n", "seat", "mean", "stdev", "95% interval")
	for i := range seats {
		lo95, hi95 := seats[i].Interval(95)
		fmt.Fprintf(&sb, "%-5d%9.2f%9.2f%11.2f%11.2f\n", i, seats[i].Mean(), seats[i].Stdev(), lo95, hi95)
	}
	charged := lo.Filter(cards.Chargeable.Cards(), func(c cards.Card, _ int) bool { return chargeCounts[c] > 0 })
	if len(charged) == 0 {
		sb.WriteString("charged: none")
		return sb.String()
	}
	sb.WriteString("charged:")
	for _, c := range charged {
		fmt.Fprintf(&sb, " %s x%d", c, chargeCounts[c])
	}
	return sb.String()
}
