package main

import (
	"flag"
	"fmt"
	"time"

	"btc-strategy-lab/internal/config"
	"btc-strategy-lab/internal/data"
	"btc-strategy-lab/internal/dualinvest"
	"btc-strategy-lab/internal/indicator"
	"btc-strategy-lab/internal/score"
	"btc-strategy-lab/internal/swing"
)

// Demo:
// - Generate a synthetic daily BTC series
// - Compute the indicator columns
// - Run every engine once and print the summaries
func main() {
	days := flag.Int("days", 500, "Number of synthetic days")
	seed := flag.Int64("seed", 42, "Random-walk seed")
	flag.Parse()

	candles := data.GenerateCandles(data.SyntheticParams{
		Start:    time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC),
		Days:     *days,
		StartPx:  40_000,
		DriftPct: 0.08,
		VolPct:   2.5,
		Seed:     *seed,
	})
	bars, err := data.ToBars(candles)
	if err != nil {
		panic(err)
	}
	indicator.Compute(bars)
	indicator.ComputeCycle(bars)

	cfg := config.Default()

	fmt.Printf("=== synthetic series: %d bars, %.2f -> %.2f ===\n\n",
		len(bars), bars[0].Close, bars[len(bars)-1].Close)

	res := swing.Run(bars, cfg.SwingParams())
	fmt.Println("swing backtest:")
	fmt.Printf("  final equity $%.2f  ROI %.2f%%  round trips %d  maxDD %.2f%%\n",
		res.FinalEquity, res.ROIPct, res.TradeCount, res.MaxDrawdownPct)
	fmt.Printf("  win rate %.1f%%  sharpe %.2f\n\n",
		res.Stats.WinRatePct, res.Stats.Sharpe)

	events := dualinvest.Run(bars, cfg.DualParams(cfg.RiskFreeRate))
	equity := 1.0
	opens := 0
	for _, ev := range events {
		if ev.Action == "Open" {
			opens++
		}
		equity = ev.EquityBTC
	}
	fmt.Println("dual-investment backtest:")
	fmt.Printf("  %d opens, final equity %.6f BTC\n\n", opens, equity)

	last := bars[len(bars)-1]
	total, breakdown := score.Row(last)
	fmt.Printf("bottom score: %d/100 (cycle %+d), %d indicators defined\n\n",
		total, score.Cycle(last), len(breakdown))

	if sug := dualinvest.Suggest(bars, cfg.Dual.TermDays, cfg.RiskFreeRate); sug != nil {
		fmt.Printf("suggestion @ %s (close %.2f):\n",
			sug.Time.Format("2006-01-02"), sug.Close)
		for _, t := range sug.SellLadder {
			fmt.Printf("  sell %-12s strike %.2f (%.0f%%) APY %.2f%%\n",
				t.Name, t.Strike, t.WeightPct, t.APYPct)
		}
		for _, t := range sug.BuyLadder {
			fmt.Printf("  buy  %-12s strike %.2f (%.0f%%) APY %.2f%%\n",
				t.Name, t.Strike, t.WeightPct, t.APYPct)
		}
		for _, r := range sug.Reasons {
			fmt.Printf("  - %s\n", r)
		}
	}
}
