// Package report renders pipeline results for the terminal and for
// CSV export.
package report

import (
	"fmt"
	"io"
	"math"

	"github.com/Rigvedsarougi/Project-A/internal/app"
	"github.com/Rigvedsarougi/Project-A/internal/backtest"
	"github.com/Rigvedsarougi/Project-A/internal/core"
	"github.com/Rigvedsarougi/Project-A/internal/indicator"
	"github.com/Rigvedsarougi/Project-A/internal/paper"
	"github.com/olekukonko/tablewriter"
)

const dateLayout = "2006-01-02"

// tailRows caps how many bars the console tables print.
const tailRows = 10

// Console writes human-readable tables to an io.Writer.
type Console struct {
	out io.Writer
}

// NewConsole creates a console reporter.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Series prints a summary and the last bars of a price series.
func (c *Console) Series(s *core.PriceSeries) {
	first := s.Bars[0].Date.Format(dateLayout)
	last := s.Bars[len(s.Bars)-1].Date.Format(dateLayout)
	fmt.Fprintf(c.out, "\n%s: %d bars, %s to %s\n", s.Symbol, s.Len(), first, last)

	table := tablewriter.NewWriter(c.out)
	table.Header("Date", "Open", "High", "Low", "Close", "Volume")
	for _, b := range tail(s.Bars) {
		table.Append(
			b.Date.Format(dateLayout),
			fmt.Sprintf("%.2f", b.Open),
			fmt.Sprintf("%.2f", b.High),
			fmt.Sprintf("%.2f", b.Low),
			fmt.Sprintf("%.2f", b.Close),
			fmt.Sprintf("%d", b.Volume),
		)
	}
	table.Render()
}

// Frame prints the last bars of an indicator frame.
func (c *Console) Frame(f *indicator.Frame) {
	fmt.Fprintf(c.out, "\n%s indicators (SMA %d/%d, RSI %d, MACD 12-26-9)\n",
		f.Series.Symbol, f.ShortWindow, f.LongWindow, indicator.RSIPeriod)

	shortHdr := fmt.Sprintf("SMA%d", f.ShortWindow)
	longHdr := fmt.Sprintf("SMA%d", f.LongWindow)

	table := tablewriter.NewWriter(c.out)
	table.Header("Date", "Close", shortHdr, longHdr, "RSI", "MACD", "Signal")
	n := f.Series.Len()
	for i := start(n); i < n; i++ {
		table.Append(
			f.Series.Bars[i].Date.Format(dateLayout),
			fmt.Sprintf("%.2f", f.Series.Bars[i].Close),
			cell(f.SMAShort[i]),
			cell(f.SMALong[i]),
			cell(f.RSI[i]),
			cell(f.MACD[i]),
			cell(f.MACDSignal[i]),
		)
	}
	table.Render()
}

// Backtest prints the performance metrics of a run.
func (c *Console) Backtest(r *backtest.Result) {
	fmt.Fprintf(c.out, "\n%s backtest, SMA %d/%d crossover over %d bars\n",
		r.Symbol, r.ShortWindow, r.LongWindow, r.Bars())

	sharpe := "n/a (degenerate returns)"
	if r.Metrics.SharpeValid {
		sharpe = fmt.Sprintf("%.4f", r.Metrics.Sharpe)
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("Metric", "Value")
	table.Append("Market return", pct(r.Metrics.MarketReturn))
	table.Append("Strategy return", pct(r.Metrics.StrategyReturn))
	table.Append("Outperformance", pct(r.Metrics.Outperformance))
	table.Append("Max drawdown", pct(r.Metrics.MaxDrawdown))
	table.Append("Annualized volatility", pct(r.Metrics.Volatility))
	table.Append("Sharpe ratio", sharpe)
	table.Render()
}

// Summary prints per-column statistics of the fetched table.
func (c *Console) Summary(s *app.Summary) {
	fmt.Fprintf(c.out, "\n%s data statistics\n", s.Symbol)

	table := tablewriter.NewWriter(c.out)
	table.Header("Column", "Count", "Mean", "Std", "Min", "25%", "50%", "75%", "Max")
	for _, col := range s.Columns {
		table.Append(
			col.Name,
			fmt.Sprintf("%d", col.Count),
			cell(col.Mean),
			cell(col.Std),
			cell(col.Min),
			cell(col.Q25),
			cell(col.Median),
			cell(col.Q75),
			cell(col.Max),
		)
	}
	table.Render()
}

// Account prints the ledger summary and its most recent entries.
func (c *Console) Account(l *paper.Ledger) {
	fmt.Fprintf(c.out, "\n%s paper account: capital %.2f, commission %.2f, %d trades\n",
		l.Symbol, l.InitialCapital, l.Commission, l.Trades)

	table := tablewriter.NewWriter(c.out)
	table.Header("Date", "Cash", "Shares", "Total")
	for _, e := range tailEntries(l.Entries) {
		table.Append(
			e.Date.Format(dateLayout),
			fmt.Sprintf("%.2f", e.Cash),
			fmt.Sprintf("%d", e.Shares),
			fmt.Sprintf("%.2f", e.Total),
		)
	}
	table.Render()

	fmt.Fprintf(c.out, "final value %.2f, pnl %+.2f, roi %+.2f%%\n",
		l.FinalValue(), l.PnL(), l.ROI()*100)
}

func tail(bars []core.Bar) []core.Bar {
	return bars[start(len(bars)):]
}

func tailEntries(entries []paper.Entry) []paper.Entry {
	return entries[start(len(entries)):]
}

func start(n int) int {
	if n > tailRows {
		return n - tailRows
	}
	return 0
}

func cell(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}

func pct(v float64) string {
	return fmt.Sprintf("%+.2f%%", v*100)
}
