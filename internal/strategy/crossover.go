// Package strategy derives discrete trading positions from indicator columns.
package strategy

import (
	"fmt"

	"github.com/Rigvedsarougi/Project-A/internal/core"
	"github.com/Rigvedsarougi/Project-A/internal/indicator"
)

// Series holds the per-bar output of a strategy evaluation.
// Signal is the discrete state (0 = flat, 1 = long). Position is the
// signal delta from the prior bar: +1 entry, -1 exit, 0 no change.
type Series struct {
	Signal   []int
	Position []int
}

// Crossover is a moving average crossover strategy: long while the
// short SMA sits above the long SMA, flat otherwise.
type Crossover struct {
	shortWindow int
	longWindow  int
}

// NewCrossover creates a crossover strategy for the given windows.
func NewCrossover(shortWindow, longWindow int) *Crossover {
	return &Crossover{
		shortWindow: shortWindow,
		longWindow:  longWindow,
	}
}

func (c *Crossover) Name() string {
	return "sma_crossover"
}

func (c *Crossover) Description() string {
	return fmt.Sprintf("SMA Crossover (%d/%d)", c.shortWindow, c.longWindow)
}

// Evaluate derives the signal and position columns from a computed
// indicator frame. The first shortWindow bars are forced flat
// regardless of the SMA comparison; an undefined SMA value compares as
// not-greater and also yields a flat signal.
func (c *Crossover) Evaluate(f *indicator.Frame) (*Series, error) {
	if f == nil || f.Series.Len() == 0 {
		return nil, core.ErrPrecondition
	}
	if len(f.SMAShort) != f.Series.Len() || len(f.SMALong) != f.Series.Len() {
		return nil, core.WrapError(core.ErrInsufficientData,
			fmt.Errorf("misaligned SMA columns: %d/%d for %d bars",
				len(f.SMAShort), len(f.SMALong), f.Series.Len()))
	}

	n := f.Series.Len()
	signal := make([]int, n)
	position := make([]int, n)

	for i := c.shortWindow; i < n; i++ {
		// NaN > NaN is false, so undefined values stay flat.
		if f.SMAShort[i] > f.SMALong[i] {
			signal[i] = 1
		}
	}

	// Position[0] has no prior bar and stays 0.
	for i := 1; i < n; i++ {
		position[i] = signal[i] - signal[i-1]
	}

	return &Series{Signal: signal, Position: position}, nil
}
