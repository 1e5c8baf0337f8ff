package report

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"github.com/Rigvedsarougi/Project-A/internal/backtest"
	"github.com/Rigvedsarougi/Project-A/internal/core"
	"github.com/Rigvedsarougi/Project-A/internal/paper"
)

// WriteBacktestCSV exports the full per-bar backtest frame. Undefined
// values render as empty fields.
func WriteBacktestCSV(w io.Writer, r *backtest.Result) error {
	cw := csv.NewWriter(w)

	header := []string{
		"date", "open", "close", "signal", "position",
		"daily_return", "strategy_return", "cum_market", "cum_strategy",
	}
	if err := cw.Write(header); err != nil {
		return core.WrapError(core.ErrExportFailed, err)
	}

	for i := 0; i < r.Bars(); i++ {
		row := []string{
			r.Dates[i].Format(dateLayout),
			num(r.Open[i]),
			num(r.Close[i]),
			strconv.Itoa(r.Signal[i]),
			strconv.Itoa(r.Position[i]),
			num(r.DailyReturn[i]),
			num(r.StrategyReturn[i]),
			num(r.CumMarket[i]),
			num(r.CumStrategy[i]),
		}
		if err := cw.Write(row); err != nil {
			return core.WrapError(core.ErrExportFailed, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return core.WrapError(core.ErrExportFailed, err)
	}
	return nil
}

// WriteLedgerCSV exports the per-bar paper account state.
func WriteLedgerCSV(w io.Writer, l *paper.Ledger) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"date", "cash", "shares", "total"}); err != nil {
		return core.WrapError(core.ErrExportFailed, err)
	}

	for _, e := range l.Entries {
		row := []string{
			e.Date.Format(dateLayout),
			num(e.Cash),
			strconv.FormatInt(e.Shares, 10),
			num(e.Total),
		}
		if err := cw.Write(row); err != nil {
			return core.WrapError(core.ErrExportFailed, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return core.WrapError(core.ErrExportFailed, err)
	}
	return nil
}

func num(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
