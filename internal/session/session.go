// Package session holds the most recently computed frame of each
// pipeline stage for a user session. Frames are replaced on write and
// read back as snapshots; nothing here survives the process.
package session

import (
	"sync"

	"github.com/Rigvedsarougi/Project-A/internal/backtest"
	"github.com/Rigvedsarougi/Project-A/internal/core"
	"github.com/Rigvedsarougi/Project-A/internal/indicator"
	"github.com/Rigvedsarougi/Project-A/internal/paper"
)

// Session caches one result per pipeline stage: the fetched price
// table, the indicator frame derived from it, the backtest result, and
// the simulated account ledger.
type Session struct {
	ID string

	mu       sync.RWMutex
	series   *core.PriceSeries
	frame    *indicator.Frame
	backtest *backtest.Result
	account  *paper.Ledger
}

// Series returns the cached price series, if any.
func (s *Session) Series() (*core.PriceSeries, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.series, s.series != nil
}

// SetSeries replaces the cached series and invalidates everything
// derived from the previous one.
func (s *Session) SetSeries(p *core.PriceSeries) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.series = p
	s.frame = nil
	s.backtest = nil
	s.account = nil
}

// Frame returns the cached indicator frame, if any.
func (s *Session) Frame() (*indicator.Frame, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame, s.frame != nil
}

// SetFrame replaces the cached indicator frame.
func (s *Session) SetFrame(f *indicator.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame = f
}

// Backtest returns the cached backtest result, if any.
func (s *Session) Backtest() (*backtest.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.backtest, s.backtest != nil
}

// SetBacktest replaces the cached backtest result and invalidates the
// account ledger simulated from the previous one.
func (s *Session) SetBacktest(r *backtest.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backtest = r
	s.account = nil
}

// Account returns the cached account ledger, if any.
func (s *Session) Account() (*paper.Ledger, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account, s.account != nil
}

// SetAccount replaces the cached account ledger.
func (s *Session) SetAccount(l *paper.Ledger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account = l
}
