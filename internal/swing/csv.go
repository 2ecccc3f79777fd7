package swing

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// WriteTradesCSV dumps the trade log to path.
func WriteTradesCSV(path string, trades []Trade) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"type",
		"time",
		"price",
		"effective_price",
		"balance",
		"position",
		"reason",
		"pnl",
		"pnl_pct",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, t := range trades {
		row := []string{
			string(t.Type),
			t.Time.Format(time.RFC3339),
			fmtFloat(t.Price),
			fmtFloat(t.EffectivePrice),
			fmtFloat(t.Balance),
			fmtFloat(t.Position),
			t.Reason,
			fmtFloat(t.PnL),
			fmtFloat(t.PnLPct),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
