package dualinvest

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// WriteEventsCSV dumps the open/settlement log to path.
func WriteEventsCSV(path string, events []Event) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"action",
		"time",
		"fixing",
		"strike",
		"asset",
		"balance",
		"product",
		"note",
		"equity_btc",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, e := range events {
		row := []string{
			e.Action,
			e.Time.Format(time.RFC3339),
			fmtFloat(e.Fixing),
			fmtFloat(e.Strike),
			string(e.Asset),
			fmtFloat(e.Balance),
			string(e.Product),
			e.Note,
			fmtFloat(e.EquityBTC),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 8, 64)
}
