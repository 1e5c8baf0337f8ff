package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Rigvedsarougi/Project-A/internal/backtest"
	"github.com/Rigvedsarougi/Project-A/internal/paper"
	"github.com/Rigvedsarougi/Project-A/internal/storage/archive"
)

// Exporter renders results to CSV and archives them. Keys are
// deterministic per symbol, window pair and last bar date, so
// re-exporting the same run overwrites the previous file.
type Exporter struct {
	store archive.Store
}

// NewExporter creates an exporter over the given store.
func NewExporter(store archive.Store) *Exporter {
	return &Exporter{store: store}
}

// SaveBacktest archives the per-bar backtest frame and returns its key.
func (e *Exporter) SaveBacktest(ctx context.Context, r *backtest.Result) (string, error) {
	var buf bytes.Buffer
	if err := WriteBacktestCSV(&buf, r); err != nil {
		return "", err
	}

	last := r.Dates[len(r.Dates)-1].Format("20060102")
	key := fmt.Sprintf("backtests/%s/%s_sma%d-%d.csv",
		r.Symbol, last, r.ShortWindow, r.LongWindow)

	if err := e.store.Put(ctx, key, buf.Bytes()); err != nil {
		return "", err
	}
	return key, nil
}

// SaveLedger archives the paper account ledger and returns its key.
func (e *Exporter) SaveLedger(ctx context.Context, l *paper.Ledger) (string, error) {
	var buf bytes.Buffer
	if err := WriteLedgerCSV(&buf, l); err != nil {
		return "", err
	}

	last := l.Entries[len(l.Entries)-1].Date.Format("20060102")
	key := fmt.Sprintf("accounts/%s/%s.csv", l.Symbol, last)

	if err := e.store.Put(ctx, key, buf.Bytes()); err != nil {
		return "", err
	}
	return key, nil
}
