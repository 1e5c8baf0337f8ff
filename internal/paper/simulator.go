// Package paper replays backtested position changes against a cash
// account, producing a day-by-day ledger.
package paper

import (
	"fmt"
	"math"
	"time"

	"github.com/Rigvedsarougi/Project-A/internal/backtest"
	"github.com/Rigvedsarougi/Project-A/internal/core"
)

// Config holds the account parameters for a simulation run.
type Config struct {
	InitialCapital float64
	Commission     float64 // flat fee per executed trade
}

// Entry is one day's account state.
type Entry struct {
	Date   time.Time
	Cash   float64
	Shares int64
	Total  float64
}

// Ledger is the day-by-day account history of one simulation.
type Ledger struct {
	Symbol         string
	InitialCapital float64
	Commission     float64
	Entries        []Entry
	Trades         int // executed buys and sells
}

// FinalValue returns the account value on the last bar.
func (l *Ledger) FinalValue() float64 {
	if len(l.Entries) == 0 {
		return l.InitialCapital
	}
	return l.Entries[len(l.Entries)-1].Total
}

// PnL returns the profit or loss over the run.
func (l *Ledger) PnL() float64 {
	return l.FinalValue() - l.InitialCapital
}

// ROI returns the fractional return on the initial capital.
func (l *Ledger) ROI() float64 {
	return l.PnL() / l.InitialCapital
}

// Simulator replays position changes bar by bar. Trades execute at the
// bar's opening price, whole shares only, with a flat commission per
// trade.
type Simulator struct {
	cfg Config
}

// New creates a simulator, rejecting non-positive capital and negative
// commission.
func New(cfg Config) (*Simulator, error) {
	if cfg.InitialCapital <= 0 {
		return nil, core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("initial capital must be positive, got %f", cfg.InitialCapital))
	}
	if cfg.Commission < 0 {
		return nil, core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("commission cannot be negative, got %f", cfg.Commission))
	}
	return &Simulator{cfg: cfg}, nil
}

// Run replays the backtest's position series. It refuses to run
// without a prior backtest result.
//
// At each bar with an entry the account buys floor(Cash/Open) shares;
// if cash does not cover a single share no trade occurs. An exit sells
// the full holding. The day's total is cash plus shares marked at the
// close. An open position on the last bar is left open.
func (s *Simulator) Run(bt *backtest.Result) (*Ledger, error) {
	if bt == nil || len(bt.Position) == 0 {
		return nil, core.WrapError(core.ErrPrecondition,
			fmt.Errorf("simulation requires a backtest with a position series"))
	}

	n := bt.Bars()
	ledger := &Ledger{
		Symbol:         bt.Symbol,
		InitialCapital: s.cfg.InitialCapital,
		Commission:     s.cfg.Commission,
		Entries:        make([]Entry, n),
	}

	cash := s.cfg.InitialCapital
	var shares int64

	ledger.Entries[0] = Entry{
		Date:   bt.Dates[0],
		Cash:   cash,
		Shares: shares,
		Total:  s.cfg.InitialCapital,
	}

	for i := 1; i < n; i++ {
		switch {
		case bt.Position[i] == 1:
			toBuy := int64(math.Floor(cash / bt.Open[i]))
			if toBuy > 0 {
				cash -= float64(toBuy)*bt.Open[i] + s.cfg.Commission
				shares += toBuy
				ledger.Trades++
			}
		case bt.Position[i] == -1 && shares > 0:
			cash += float64(shares)*bt.Open[i] - s.cfg.Commission
			shares = 0
			ledger.Trades++
		}

		ledger.Entries[i] = Entry{
			Date:   bt.Dates[i],
			Cash:   cash,
			Shares: shares,
			Total:  cash + float64(shares)*bt.Close[i],
		}
	}

	return ledger, nil
}
