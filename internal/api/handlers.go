package api

import (
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/Rigvedsarougi/Project-A/internal/api/response"
	"github.com/Rigvedsarougi/Project-A/internal/app"
	"github.com/Rigvedsarougi/Project-A/internal/backtest"
	"github.com/Rigvedsarougi/Project-A/internal/core"
	"github.com/Rigvedsarougi/Project-A/internal/indicator"
	"github.com/Rigvedsarougi/Project-A/internal/paper"
	"github.com/Rigvedsarougi/Project-A/internal/session"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type fetchRequest struct {
	Symbol string `json:"symbol"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

type windowsRequest struct {
	ShortWindow int `json:"short_window"`
	LongWindow  int `json:"long_window"`
}

type simulateRequest struct {
	InitialCapital float64 `json:"initial_capital"`
	Commission     float64 `json:"commission"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.app.NewSession()
	s.logger.Info("session created", zap.String("session_id", sess.ID))
	response.JSON(w, http.StatusCreated, map[string]string{"session_id": sess.ID})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.app.Sessions().Get(id); err != nil {
		response.Error(w, err)
		return
	}
	s.app.Sessions().Delete(id)
	if s.metrics != nil {
		s.metrics.SetActiveSessions(s.app.Sessions().Len())
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.app.Sessions().Get(r.PathValue("id"))
	if err != nil {
		response.Error(w, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req fetchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, core.WrapError(core.ErrConfigInvalid, err))
		return
	}

	start, err := time.Parse(dateLayout, req.Start)
	if err != nil {
		response.Error(w, core.WrapError(core.ErrConfigInvalid, err))
		return
	}
	end, err := time.Parse(dateLayout, req.End)
	if err != nil {
		response.Error(w, core.WrapError(core.ErrConfigInvalid, err))
		return
	}

	series, err := s.app.Fetch(r.Context(), sess, req.Symbol, start, end)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.JSON(w, http.StatusOK, seriesView(series))
}

func (s *Server) handleIndicators(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	req := windowsRequest{
		ShortWindow: s.cfg.Strategy.ShortWindow,
		LongWindow:  s.cfg.Strategy.LongWindow,
	}
	if err := decodeOptional(r, &req); err != nil {
		response.Error(w, err)
		return
	}

	frame, err := s.app.Indicators(sess, req.ShortWindow, req.LongWindow)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.JSON(w, http.StatusOK, frameView(frame))
}

func (s *Server) handleBacktest(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	req := windowsRequest{
		ShortWindow: s.cfg.Strategy.ShortWindow,
		LongWindow:  s.cfg.Strategy.LongWindow,
	}
	if err := decodeOptional(r, &req); err != nil {
		response.Error(w, err)
		return
	}

	result, err := s.app.Backtest(sess, req.ShortWindow, req.LongWindow)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.JSON(w, http.StatusOK, backtestView(result))
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	req := simulateRequest{
		InitialCapital: s.cfg.Paper.InitialCapital,
		Commission:     s.cfg.Paper.Commission,
	}
	if err := decodeOptional(r, &req); err != nil {
		response.Error(w, err)
		return
	}

	ledger, err := s.app.Simulate(sess, req.InitialCapital, req.Commission)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.JSON(w, http.StatusOK, accountView(ledger))
}

func (s *Server) handleGetData(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	series, ok := sess.Series()
	if !ok {
		response.Error(w, core.ErrNoData)
		return
	}

	if frame, ok := sess.Frame(); ok {
		response.JSON(w, http.StatusOK, frameView(frame))
		return
	}
	response.JSON(w, http.StatusOK, seriesView(series))
}

func (s *Server) handleDescribe(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	summary, err := s.app.Describe(sess)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, summaryView(summary))
}

func (s *Server) handleGetBacktest(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	result, ok := sess.Backtest()
	if !ok {
		response.Error(w, core.ErrPrecondition)
		return
	}
	response.JSON(w, http.StatusOK, backtestView(result))
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	ledger, ok := sess.Account()
	if !ok {
		response.Error(w, core.ErrPrecondition)
		return
	}
	response.JSON(w, http.StatusOK, accountView(ledger))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.app.Sessions().Len(),
	})
}

// decodeOptional fills req from the body when one is present. An empty
// body keeps the configured defaults.
func decodeOptional(r *http.Request, req any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return core.WrapError(core.ErrConfigInvalid, err)
	}
	return nil
}

// View types. Indicator and return columns use pointers so that NaN
// warm-up values serialize as JSON null.

type barView struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

type seriesPayload struct {
	Symbol string    `json:"symbol"`
	Bars   []barView `json:"bars"`
}

func seriesView(s *core.PriceSeries) seriesPayload {
	bars := make([]barView, s.Len())
	for i, b := range s.Bars {
		bars[i] = barView{
			Date:   b.Date.Format(dateLayout),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		}
	}
	return seriesPayload{Symbol: s.Symbol, Bars: bars}
}

type framePayload struct {
	Symbol      string     `json:"symbol"`
	ShortWindow int        `json:"short_window"`
	LongWindow  int        `json:"long_window"`
	Dates       []string   `json:"dates"`
	Close       []float64  `json:"close"`
	SMAShort    []*float64 `json:"sma_short"`
	SMALong     []*float64 `json:"sma_long"`
	RSI         []*float64 `json:"rsi"`
	MACD        []*float64 `json:"macd"`
	MACDSignal  []*float64 `json:"macd_signal"`
}

func frameView(f *indicator.Frame) framePayload {
	return framePayload{
		Symbol:      f.Series.Symbol,
		ShortWindow: f.ShortWindow,
		LongWindow:  f.LongWindow,
		Dates:       dateStrings(f.Series.Dates()),
		Close:       f.Series.Closes(),
		SMAShort:    nullable(f.SMAShort),
		SMALong:     nullable(f.SMALong),
		RSI:         nullable(f.RSI),
		MACD:        nullable(f.MACD),
		MACDSignal:  nullable(f.MACDSignal),
	}
}

type metricsPayload struct {
	MarketReturn   float64  `json:"market_return"`
	StrategyReturn float64  `json:"strategy_return"`
	Outperformance float64  `json:"outperformance"`
	MaxDrawdown    float64  `json:"max_drawdown"`
	Volatility     float64  `json:"volatility"`
	Sharpe         *float64 `json:"sharpe"`
}

type backtestPayload struct {
	Symbol         string         `json:"symbol"`
	ShortWindow    int            `json:"short_window"`
	LongWindow     int            `json:"long_window"`
	Dates          []string       `json:"dates"`
	Open           []float64      `json:"open"`
	Close          []float64      `json:"close"`
	Signal         []int          `json:"signal"`
	Position       []int          `json:"position"`
	DailyReturn    []*float64     `json:"daily_return"`
	StrategyReturn []*float64     `json:"strategy_return"`
	CumMarket      []float64      `json:"cum_market"`
	CumStrategy    []float64      `json:"cum_strategy"`
	Metrics        metricsPayload `json:"metrics"`
}

func backtestView(r *backtest.Result) backtestPayload {
	m := metricsPayload{
		MarketReturn:   r.Metrics.MarketReturn,
		StrategyReturn: r.Metrics.StrategyReturn,
		Outperformance: r.Metrics.Outperformance,
		MaxDrawdown:    r.Metrics.MaxDrawdown,
		Volatility:     r.Metrics.Volatility,
	}
	if r.Metrics.SharpeValid {
		sharpe := r.Metrics.Sharpe
		m.Sharpe = &sharpe
	}

	return backtestPayload{
		Symbol:         r.Symbol,
		ShortWindow:    r.ShortWindow,
		LongWindow:     r.LongWindow,
		Dates:          dateStrings(r.Dates),
		Open:           r.Open,
		Close:          r.Close,
		Signal:         r.Signal,
		Position:       r.Position,
		DailyReturn:    nullable(r.DailyReturn),
		StrategyReturn: nullable(r.StrategyReturn),
		CumMarket:      r.CumMarket,
		CumStrategy:    r.CumStrategy,
		Metrics:        m,
	}
}

type columnStatsView struct {
	Name   string   `json:"name"`
	Count  int      `json:"count"`
	Mean   float64  `json:"mean"`
	Std    *float64 `json:"std"`
	Min    float64  `json:"min"`
	Q25    float64  `json:"q25"`
	Median float64  `json:"median"`
	Q75    float64  `json:"q75"`
	Max    float64  `json:"max"`
}

type summaryPayload struct {
	Symbol  string            `json:"symbol"`
	Columns []columnStatsView `json:"columns"`
}

func summaryView(s *app.Summary) summaryPayload {
	cols := make([]columnStatsView, len(s.Columns))
	for i, c := range s.Columns {
		v := columnStatsView{
			Name:   c.Name,
			Count:  c.Count,
			Mean:   c.Mean,
			Min:    c.Min,
			Q25:    c.Q25,
			Median: c.Median,
			Q75:    c.Q75,
			Max:    c.Max,
		}
		if !math.IsNaN(c.Std) {
			std := c.Std
			v.Std = &std
		}
		cols[i] = v
	}
	return summaryPayload{Symbol: s.Symbol, Columns: cols}
}

type entryView struct {
	Date   string  `json:"date"`
	Cash   float64 `json:"cash"`
	Shares int64   `json:"shares"`
	Total  float64 `json:"total"`
}

type accountPayload struct {
	Symbol         string      `json:"symbol"`
	InitialCapital float64     `json:"initial_capital"`
	Commission     float64     `json:"commission"`
	Trades         int         `json:"trades"`
	Entries        []entryView `json:"entries"`
	FinalValue     float64     `json:"final_value"`
	PnL            float64     `json:"pnl"`
	ROI            float64     `json:"roi"`
}

func accountView(l *paper.Ledger) accountPayload {
	entries := make([]entryView, len(l.Entries))
	for i, e := range l.Entries {
		entries[i] = entryView{
			Date:   e.Date.Format(dateLayout),
			Cash:   e.Cash,
			Shares: e.Shares,
			Total:  e.Total,
		}
	}
	return accountPayload{
		Symbol:         l.Symbol,
		InitialCapital: l.InitialCapital,
		Commission:     l.Commission,
		Trades:         l.Trades,
		Entries:        entries,
		FinalValue:     l.FinalValue(),
		PnL:            l.PnL(),
		ROI:            l.ROI(),
	}
}

func nullable(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		out[i] = &v
	}
	return out
}

func dateStrings(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format(dateLayout)
	}
	return out
}
