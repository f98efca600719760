package texas

import (
	"context"
	"fmt"
	"runtime"

	"github.com/yangrq1018/holdem-bot/util"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat/combin"
)

type HandCardsProbability struct {
	HandClass
	Prob    float64
	AccProb float64 // cumulated probability of getting this class or better
	Count   int
}

// HistogramHandTypes enumerates every way the known cards can be completed
// to seven and reports how often each class is made.
func HistogramHandTypes(ctx context.Context, known Hand) ([]HandCardsProbability, error) {
	if len(known) < 2 || len(known) > 7 {
		return nil, fmt.Errorf("need 2 to 7 known cards, got %d", len(known))
	}
	for i := range known {
		if known[:i].Contains(known[i]) {
			return nil, fmt.Errorf("duplicate card %s", known[i])
		}
	}
	remaining := GetRemainingCards(known)
	leftToShow := 7 - len(known)
	if leftToShow == 0 {
		class, _ := Classify(known)
		return histogram(map[HandClass]int{class: 1}, 1), nil
	}
	total := combin.Binomial(len(remaining), leftToShow)

	workers := util.Min(runtime.NumCPU(), total)
	partial := make([]map[HandClass]int, workers)
	g, ctx := errgroup.WithContext(ctx)
	chunk := (total + workers - 1) / workers
	for w := 0; w < workers; w++ {
		w := w
		lo, hi := w*chunk, util.Min((w+1)*chunk, total)
		g.Go(func() error {
			dist := make(map[HandClass]int)
			idx := make([]int, leftToShow)
			cards := make(Hand, 7)
			copy(cards, known)
			for i := lo; i < hi; i++ {
				if i%4096 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				combin.IndexToCombination(idx, i, len(remaining), leftToShow)
				for k, j := range idx {
					cards[len(known)+k] = remaining[j]
				}
				class, _ := Classify(cards)
				dist[class]++
			}
			partial[w] = dist
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	distribution := make(map[HandClass]int)
	for _, dist := range partial {
		for k, v := range dist {
			distribution[k] += v
		}
	}
	return histogram(distribution, total), nil
}

func histogram(distribution map[HandClass]int, total int) []HandCardsProbability {
	probSlice := make([]HandCardsProbability, 0, int(StraightFlush))
	accProb := 0.0
	for h := StraightFlush; h >= HighCard; h-- {
		p := float64(distribution[h]) / float64(total)
		accProb += p
		probSlice = append(probSlice, HandCardsProbability{
			HandClass: h,
			Prob:      p,
			Count:     distribution[h],
			AccProb:   accProb,
		})
	}
	return probSlice
}
