// Package app orchestrates the analysis pipeline for a session: fetch,
// indicators, backtest, simulation. Each action reads the prior frames
// it needs from the session, computes a fresh snapshot, and writes it
// back; the stages themselves never share mutable state.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Rigvedsarougi/Project-A/internal/backtest"
	"github.com/Rigvedsarougi/Project-A/internal/collector"
	"github.com/Rigvedsarougi/Project-A/internal/config"
	"github.com/Rigvedsarougi/Project-A/internal/core"
	"github.com/Rigvedsarougi/Project-A/internal/indicator"
	"github.com/Rigvedsarougi/Project-A/internal/metrics"
	"github.com/Rigvedsarougi/Project-A/internal/paper"
	"github.com/Rigvedsarougi/Project-A/internal/session"
	"github.com/Rigvedsarougi/Project-A/internal/strategy"
	"go.uber.org/zap"
)

// App wires the provider, session cache and metrics behind the user
// actions.
type App struct {
	cfg      *config.Config
	provider collector.Provider
	sessions *session.Manager
	metrics  *metrics.Registry
	logger   *zap.Logger
}

// New creates an App. The metrics registry may be nil when metrics are
// disabled.
func New(cfg *config.Config, provider collector.Provider, reg *metrics.Registry, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		cfg:      cfg,
		provider: provider,
		sessions: session.NewManager(cfg.Server.MaxSessions),
		metrics:  reg,
		logger:   logger,
	}
}

// Sessions exposes the session manager for the serving layer.
func (a *App) Sessions() *session.Manager {
	return a.sessions
}

// NewSession starts a fresh session.
func (a *App) NewSession() *session.Session {
	s := a.sessions.Create()
	if a.metrics != nil {
		a.metrics.SetActiveSessions(a.sessions.Len())
	}
	return s
}

// Fetch retrieves the price history for a symbol and caches it in the
// session, replacing any previous series and everything derived from
// it.
func (a *App) Fetch(ctx context.Context, s *session.Session, symbol string, start, end time.Time) (*core.PriceSeries, error) {
	if end.Before(start) {
		return nil, core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("end date %s before start date %s",
				end.Format("2006-01-02"), start.Format("2006-01-02")))
	}

	series, err := a.provider.FetchHistory(ctx, symbol, start, end)
	if err != nil {
		a.recordFetch("error")
		a.logger.Warn("fetch failed",
			zap.String("symbol", symbol),
			zap.Error(err))
		return nil, err
	}

	s.SetSeries(&series)
	a.recordFetch("success")
	a.logger.Info("fetched price history",
		zap.String("symbol", symbol),
		zap.Int("bars", series.Len()),
		zap.String("provider", a.provider.Name()))

	return &series, nil
}

// Indicators computes the indicator frame over the session's fetched
// series.
func (a *App) Indicators(s *session.Session, shortWindow, longWindow int) (*indicator.Frame, error) {
	if err := a.validateWindows(shortWindow, longWindow); err != nil {
		return nil, err
	}

	series, ok := s.Series()
	if !ok {
		return nil, core.WrapError(core.ErrPrecondition,
			fmt.Errorf("fetch data before calculating indicators"))
	}

	frame, err := indicator.Compute(*series, shortWindow, longWindow)
	if err != nil {
		return nil, err
	}

	s.SetFrame(frame)
	a.logger.Info("indicators calculated",
		zap.String("symbol", series.Symbol),
		zap.Int("short_window", shortWindow),
		zap.Int("long_window", longWindow))

	return frame, nil
}

// Backtest runs the crossover strategy over the session's series and
// caches the result. The indicator frame is reused when its windows
// match, otherwise recomputed for the requested ones.
func (a *App) Backtest(s *session.Session, shortWindow, longWindow int) (*backtest.Result, error) {
	if err := a.validateWindows(shortWindow, longWindow); err != nil {
		return nil, err
	}

	series, ok := s.Series()
	if !ok {
		a.recordBacktest("error")
		return nil, core.WrapError(core.ErrPrecondition,
			fmt.Errorf("fetch data before running a backtest"))
	}

	frame, ok := s.Frame()
	if !ok || frame.ShortWindow != shortWindow || frame.LongWindow != longWindow {
		var err error
		frame, err = indicator.Compute(*series, shortWindow, longWindow)
		if err != nil {
			a.recordBacktest("error")
			return nil, err
		}
		s.SetFrame(frame)
	}

	sig, err := strategy.NewCrossover(shortWindow, longWindow).Evaluate(frame)
	if err != nil {
		a.recordBacktest("error")
		return nil, err
	}

	result, err := backtest.Run(frame, sig)
	if err != nil {
		a.recordBacktest("error")
		return nil, err
	}

	s.SetBacktest(result)
	a.recordBacktest("success")
	a.logger.Info("backtest completed",
		zap.String("symbol", result.Symbol),
		zap.Float64("strategy_return", result.Metrics.StrategyReturn),
		zap.Float64("market_return", result.Metrics.MarketReturn),
		zap.Bool("sharpe_defined", result.Metrics.SharpeValid))

	return result, nil
}

// Simulate replays the session's backtested positions against a paper
// account and caches the ledger.
func (a *App) Simulate(s *session.Session, initialCapital, commission float64) (*paper.Ledger, error) {
	bt, ok := s.Backtest()
	if !ok {
		a.recordSimulation("error", 0)
		return nil, core.WrapError(core.ErrPrecondition,
			fmt.Errorf("run a backtest before simulating"))
	}

	sim, err := paper.New(paper.Config{
		InitialCapital: initialCapital,
		Commission:     commission,
	})
	if err != nil {
		a.recordSimulation("error", 0)
		return nil, err
	}

	ledger, err := sim.Run(bt)
	if err != nil {
		a.recordSimulation("error", 0)
		return nil, err
	}

	s.SetAccount(ledger)
	a.recordSimulation("success", ledger.Trades)
	a.logger.Info("simulation completed",
		zap.String("symbol", ledger.Symbol),
		zap.Int("trades", ledger.Trades),
		zap.Float64("final_value", ledger.FinalValue()),
		zap.Float64("roi", ledger.ROI()))

	return ledger, nil
}

func (a *App) validateWindows(shortWindow, longWindow int) error {
	return config.StrategyConfig{
		ShortWindow: shortWindow,
		LongWindow:  longWindow,
	}.Validate()
}

func (a *App) recordFetch(status string) {
	if a.metrics != nil {
		a.metrics.RecordFetch(status)
	}
}

func (a *App) recordBacktest(status string) {
	if a.metrics != nil {
		a.metrics.RecordBacktest(status)
	}
}

func (a *App) recordSimulation(status string, trades int) {
	if a.metrics != nil {
		a.metrics.RecordSimulation(status, trades)
	}
}
