package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"btc-strategy-lab/internal/config"
	"btc-strategy-lab/internal/data"
	"btc-strategy-lab/internal/dualinvest"
	"btc-strategy-lab/internal/indicator"
	"btc-strategy-lab/internal/ladder"
	"btc-strategy-lab/internal/model"
	"btc-strategy-lab/internal/optimize"
	"btc-strategy-lab/internal/score"
	"btc-strategy-lab/internal/swing"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "swing":
		cmdSwing(os.Args[2:])
	case "dual":
		cmdDual(os.Args[2:])
	case "score":
		cmdScore(os.Args[2:])
	case "ladder":
		cmdLadder(os.Args[2:])
	case "optimize":
		cmdOptimize(os.Args[2:])
	case "fetch":
		cmdFetch(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli swing    --data candles.json [--config config.yaml] [--out results/trades.csv]")
	fmt.Println("  cli dual     --data candles.json [--config config.yaml] [--out results/events.csv]")
	fmt.Println("  cli score    --data candles.json [--history]")
	fmt.Println("  cli ladder   --data candles.json [--config config.yaml]")
	fmt.Println("  cli optimize --data candles.json [--config config.yaml] [--top 10]")
	fmt.Println("  cli fetch    --symbol BTCUSDT --start 2023-01-01 --end 2024-01-01 --out candles.json")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - swing outputs the trade ledger; dual outputs the open/settlement log")
	fmt.Println("  - fetch pulls daily klines from Binance (no API key needed)")
}

func loadBars(path string) (string, []model.PriceBar) {
	symbol, bars, err := data.LoadCandleJSON(path)
	if err != nil {
		panic(err)
	}
	indicator.Compute(bars)
	indicator.ComputeCycle(bars)
	return symbol, bars
}

func loadConfig(path string) *config.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func cmdSwing(args []string) {
	fs := flag.NewFlagSet("swing", flag.ExitOnError)
	dataPath := fs.String("data", "candles.json", "Path to candle JSON")
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "", "Optional trade ledger CSV path")
	_ = fs.Parse(args)

	symbol, bars := loadBars(*dataPath)
	cfg := loadConfig(*cfgPath)
	res := swing.Run(bars, cfg.SwingParams())

	fmt.Printf("%s: %d bars, %d round trips\n", symbol, len(bars), res.TradeCount)
	fmt.Printf("Final equity $%.2f  ROI %.2f%%  MaxDD %.2f%%\n",
		res.FinalEquity, res.ROIPct, res.MaxDrawdownPct)
	fmt.Printf("Win rate %.1f%%  Sharpe %.2f  AvgWin %.2f%%  AvgLoss %.2f%%\n",
		res.Stats.WinRatePct, res.Stats.Sharpe, res.Stats.AvgWinPct, res.Stats.AvgLossPct)

	if *outPath != "" {
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			panic(err)
		}
		if err := swing.WriteTradesCSV(*outPath, res.Trades); err != nil {
			panic(err)
		}
		fmt.Printf("Wrote %d trades to %s\n", len(res.Trades), *outPath)
	}
}

func cmdDual(args []string) {
	fs := flag.NewFlagSet("dual", flag.ExitOnError)
	dataPath := fs.String("data", "candles.json", "Path to candle JSON")
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "", "Optional event log CSV path")
	_ = fs.Parse(args)

	symbol, bars := loadBars(*dataPath)
	cfg := loadConfig(*cfgPath)
	events := dualinvest.Run(bars, cfg.DualParams(cfg.RiskFreeRate))

	opens, settles := 0, 0
	equity := 1.0
	for _, ev := range events {
		switch ev.Action {
		case "Open":
			opens++
		case "Settlement":
			settles++
		}
		equity = ev.EquityBTC
	}
	fmt.Printf("%s: %d bars, %d opens, %d settlements\n", symbol, len(bars), opens, settles)
	fmt.Printf("Final equity %.6f BTC (started 1.000000)\n", equity)

	if *outPath != "" {
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			panic(err)
		}
		if err := dualinvest.WriteEventsCSV(*outPath, events); err != nil {
			panic(err)
		}
		fmt.Printf("Wrote %d events to %s\n", len(events), *outPath)
	}
}

func cmdScore(args []string) {
	fs := flag.NewFlagSet("score", flag.ExitOnError)
	dataPath := fs.String("data", "candles.json", "Path to candle JSON")
	history := fs.Bool("history", false, "Print the full score series")
	_ = fs.Parse(args)

	symbol, bars := loadBars(*dataPath)
	if len(bars) == 0 {
		panic("no candles in input")
	}

	last := bars[len(bars)-1]
	total, breakdown := score.Row(last)
	fmt.Printf("%s @ %s\n", symbol, last.Time.Format("2006-01-02"))
	fmt.Printf("Bottom score %d/100  Cycle score %+d\n", total, score.Cycle(last))
	for name, d := range breakdown {
		fmt.Printf("  %-16s %8.3f  %2d/%-2d  %s\n", name, d.Value, d.Score, d.Max, d.Label)
	}

	if *history {
		series := score.Series(bars)
		for i := range bars {
			fmt.Printf("%s,%d\n", bars[i].Time.Format("2006-01-02"), series[i])
		}
	}
}

func cmdLadder(args []string) {
	fs := flag.NewFlagSet("ladder", flag.ExitOnError)
	dataPath := fs.String("data", "candles.json", "Path to candle JSON")
	cfgPath := fs.String("config", "", "Path to YAML config")
	_ = fs.Parse(args)

	symbol, bars := loadBars(*dataPath)
	cfg := loadConfig(*cfgPath)
	sug := dualinvest.Suggest(bars, cfg.Dual.TermDays, cfg.RiskFreeRate)
	if sug == nil {
		panic("no candles in input")
	}

	fmt.Printf("%s @ %s  close %.2f\n", symbol, sug.Time.Format("2006-01-02"), sug.Close)
	printLadder("SELL_HIGH", sug.SellLadder)
	printLadder("BUY_LOW", sug.BuyLadder)
	for _, r := range sug.Reasons {
		fmt.Printf("  - %s\n", r)
	}
}

func printLadder(name string, tiers []ladder.Tier) {
	if len(tiers) == 0 {
		fmt.Printf("%s: (filtered out)\n", name)
		return
	}
	fmt.Printf("%s:\n", name)
	for _, t := range tiers {
		fmt.Printf("  %-12s strike %10.2f  %3.0f%%  dist %+.2f%%  APY %.2f%%\n",
			t.Name, t.Strike, t.WeightPct, t.DistancePct, t.APYPct)
	}
}

func cmdOptimize(args []string) {
	fs := flag.NewFlagSet("optimize", flag.ExitOnError)
	dataPath := fs.String("data", "candles.json", "Path to candle JSON")
	cfgPath := fs.String("config", "", "Path to YAML config")
	top := fs.Int("top", 10, "Show top N candidates (0=all)")
	workers := fs.Int("workers", 0, "Worker goroutines (0=GOMAXPROCS)")
	_ = fs.Parse(args)

	_, bars := loadBars(*dataPath)
	cfg := loadConfig(*cfgPath)

	grid := optimize.Grid{
		EntryRSI:   []float64{45, 50, 55, 60},
		EntryADX:   []float64{15, 20, 25},
		EMADistMax: []float64{1.0, 1.5, 2.0, 3.0},
	}
	candidates := optimize.Sweep(bars, cfg.SwingParams(), grid, *workers)
	if *top > 0 && *top < len(candidates) {
		candidates = candidates[:*top]
	}

	fmt.Printf("%-4s %-8s %-8s %-8s %-10s %-8s %-8s\n",
		"rank", "rsi", "adx", "dist", "roi%", "trades", "maxdd%")
	for i, c := range candidates {
		fmt.Printf("%-4d %-8.1f %-8.1f %-8.2f %-10.2f %-8d %-8.2f\n",
			i+1, c.Thresholds.EntryRSI, c.Thresholds.EntryADX, c.Thresholds.EMADistMax,
			c.Result.ROIPct, c.Result.TradeCount, c.Result.MaxDrawdownPct)
	}
}

func cmdFetch(args []string) {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	symbol := fs.String("symbol", "BTCUSDT", "Binance symbol")
	start := fs.String("start", "", "Start date (YYYY-MM-DD)")
	end := fs.String("end", "", "End date (YYYY-MM-DD)")
	outPath := fs.String("out", "candles.json", "Output JSON path")
	_ = fs.Parse(args)

	if *start == "" || *end == "" {
		fmt.Println("--start and --end are required")
		os.Exit(2)
	}
	startT, err := time.Parse("2006-01-02", *start)
	if err != nil {
		panic(err)
	}
	endT, err := time.Parse("2006-01-02", *end)
	if err != nil {
		panic(err)
	}

	client := data.NewBinanceClient("", 0, nil)
	candles, err := client.DailyKlines(*symbol, startT, endT)
	if err != nil {
		panic(err)
	}

	if dir := filepath.Dir(*outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			panic(err)
		}
	}
	if err := data.SaveCandleJSON(*outPath, *symbol, candles); err != nil {
		panic(err)
	}
	fmt.Printf("Wrote %d candles to %s\n", len(candles), *outPath)
}
