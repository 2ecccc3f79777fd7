package optimize

import (
	"runtime"
	"sort"
	"sync"

	"btc-strategy-lab/internal/model"
	"btc-strategy-lab/internal/swing"
)

// Grid enumerates the entry-threshold combinations to sweep. Empty axes
// keep the corresponding base value.
type Grid struct {
	EntryRSI   []float64
	EntryADX   []float64
	EMADistMax []float64
}

// Candidate pairs one threshold combination with its backtest result.
type Candidate struct {
	Thresholds swing.Thresholds `json:"thresholds"`
	Result     swing.Result     `json:"result"`
}

// Sweep backtests every combination in the grid and returns candidates
// sorted by ROI descending. The swing engine is a pure function of its
// inputs, so combinations run concurrently across workers; workers <= 0
// means GOMAXPROCS.
func Sweep(bars []model.PriceBar, base swing.Params, g Grid, workers int) []Candidate {
	combos := g.expand(base.Thresholds)
	if len(combos) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(combos) {
		workers = len(combos)
	}

	out := make([]Candidate, len(combos))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				p := base
				p.Thresholds = combos[i]
				out[i] = Candidate{
					Thresholds: combos[i],
					Result:     swing.Run(bars, p),
				}
			}
		}()
	}
	for i := range combos {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Result.ROIPct > out[j].Result.ROIPct
	})
	return out
}

func (g Grid) expand(base swing.Thresholds) []swing.Thresholds {
	rsis := orAxis(g.EntryRSI, base.EntryRSI)
	adxs := orAxis(g.EntryADX, base.EntryADX)
	dists := orAxis(g.EMADistMax, base.EMADistMax)

	combos := make([]swing.Thresholds, 0, len(rsis)*len(adxs)*len(dists))
	for _, rsi := range rsis {
		for _, adx := range adxs {
			for _, dist := range dists {
				th := base
				th.EntryRSI = rsi
				th.EntryADX = adx
				th.EMADistMax = dist
				combos = append(combos, th)
			}
		}
	}
	return combos
}

func orAxis(axis []float64, base float64) []float64 {
	if len(axis) == 0 {
		return []float64{base}
	}
	return axis
}
