package score

import (
	"btc-strategy-lab/internal/model"
)

// Indicator is one row of the scoring table: ascending breakpoints mapped
// to descending point awards via strict < comparison. A value equal to a
// breakpoint falls through to the next (lower-score) bucket, so e.g. an
// AHR999 of exactly 0.45 scores 13, not 20.
type Indicator struct {
	Name        string
	Max         int
	breakpoints []float64 // ascending
	points      []int     // len = len(breakpoints); below breakpoints[i] -> points[i]
	labels      []string  // len = len(breakpoints)+1; last is the "else" bucket
	value       func(model.PriceBar) float64
}

// Table is the canonical scoring table. Both the single-row and the
// vectorized scorer read from it, which is what guarantees they agree:
// there is exactly one set of thresholds in the program.
//
// Per-indicator maxima sum to 100.
var Table = []Indicator{
	{
		Name: "AHR999", Max: 20,
		breakpoints: []float64{0.45, 0.8, 1.2},
		points:      []int{20, 13, 5},
		labels: []string{
			"historical capitulation zone (<0.45)",
			"undervalued (0.45-0.8)",
			"fair value (0.8-1.2)",
			"overvalued (>1.2)",
		},
		value: func(b model.PriceBar) float64 { return b.AHR999 },
	},
	{
		Name: "MVRV_Z_Proxy", Max: 18,
		breakpoints: []float64{-1.0, 0, 2.0},
		points:      []int{18, 12, 4},
		labels: []string{
			"deep value bottom (z < -1)",
			"undervalued (-1 to 0)",
			"neutral (0 to 2)",
			"overheated (z > 2)",
		},
		value: func(b model.PriceBar) float64 { return b.MVRVZProxy },
	},
	{
		Name: "Pi_Cycle", Max: 15,
		breakpoints: []float64{-10, -3, 5},
		points:      []int{15, 10, 4},
		labels: []string{
			"deep pi-cycle bottom zone",
			"approaching pi-cycle bottom",
			"pi-cycle neutral",
			"far from pi-cycle bottom",
		},
		value: func(b model.PriceBar) float64 { return b.PiCycleGap },
	},
	{
		Name: "SMA_200W", Max: 15,
		breakpoints: []float64{1.0, 1.3, 2.0, 4.0},
		points:      []int{15, 11, 5, 1},
		labels: []string{
			"below the 200-week mean (historic floor)",
			"near the 200-week mean (<1.3x)",
			"normal range (1.3-2x)",
			"stretched (2-4x)",
			"extremely stretched (>4x)",
		},
		value: func(b model.PriceBar) float64 { return b.SMA200WRatio },
	},
	{
		Name: "Puell_Multiple", Max: 12,
		breakpoints: []float64{0.5, 0.8, 1.5},
		points:      []int{12, 8, 3},
		labels: []string{
			"miner capitulation (bottom signal)",
			"miners under stress",
			"miners at normal profit",
			"miners at rich profit",
		},
		value: func(b model.PriceBar) float64 { return b.PuellProxy },
	},
	{
		Name: "RSI_Monthly", Max: 10,
		breakpoints: []float64{30, 40, 55},
		points:      []int{10, 7, 2},
		labels: []string{
			"monthly deeply oversold",
			"monthly oversold",
			"monthly neutral",
			"monthly strong",
		},
		value: func(b model.PriceBar) float64 { return b.RSIMonthly },
	},
	{
		Name: "PowerLaw", Max: 5,
		breakpoints: []float64{2.0, 5.0, 10.0},
		points:      []int{5, 3, 1},
		labels: []string{
			"near the power-law support",
			"slightly above power-law support",
			"normal range",
			"far above power-law support",
		},
		value: func(b model.PriceBar) float64 { return b.PowerLawRatio },
	},
	{
		Name: "Mayer_Multiple", Max: 5,
		breakpoints: []float64{0.8, 1.0, 1.5},
		points:      []int{5, 3, 1},
		labels: []string{
			"well below the 2-year mean",
			"below the 2-year mean",
			"fair range",
			"above the 2-year mean",
		},
		value: func(b model.PriceBar) float64 { return b.MayerMultiple },
	},
}

// step resolves one indicator value against the table. bucket indexes
// labels; points is 0 for the "else" bucket.
func (ind *Indicator) step(v float64) (points int, bucket int) {
	for i, bp := range ind.breakpoints {
		if v < bp {
			return ind.points[i], i
		}
	}
	return 0, len(ind.breakpoints)
}

// Detail is the per-indicator breakdown entry of the single-row scorer.
type Detail struct {
	Value float64 `json:"value"`
	Score int     `json:"score"`
	Max   int     `json:"max"`
	Label string  `json:"label"`
}

// Row scores a single bar, returning the 0-100 total and a per-indicator
// breakdown. Indicators whose value is undefined contribute 0 and are
// omitted from the breakdown.
func Row(bar model.PriceBar) (int, map[string]Detail) {
	total := 0
	details := make(map[string]Detail, len(Table))
	for i := range Table {
		ind := &Table[i]
		v := ind.value(bar)
		if !model.Defined(v) {
			continue
		}
		pts, bucket := ind.step(v)
		total += pts
		details[ind.Name] = Detail{
			Value: v,
			Score: pts,
			Max:   ind.Max,
			Label: ind.labels[bucket],
		}
	}
	return total, details
}

// Series scores every bar, mapping the same canonical step functions
// elementwise, so Series(bars)[i] == Row(bars[i]) total for every i.
// Undefined indicator values contribute 0.
func Series(bars []model.PriceBar) []int {
	out := make([]int, len(bars))
	for i := range bars {
		total := 0
		for j := range Table {
			ind := &Table[j]
			v := ind.value(bars[i])
			if !model.Defined(v) {
				continue
			}
			pts, _ := ind.step(v)
			total += pts
		}
		out[i] = total
	}
	return out
}
