// Package collector defines the market data provider boundary.
package collector

import (
	"context"
	"time"

	"github.com/Rigvedsarougi/Project-A/internal/core"
)

// Provider fetches historical daily bars for a symbol. An empty range
// is core.ErrNoData; transport or parse failures wrap
// core.ErrProviderFailed. Either way the fetch is terminal for the
// triggering action: there are no partial results.
type Provider interface {
	Name() string
	FetchHistory(ctx context.Context, symbol string, start, end time.Time) (core.PriceSeries, error)
}
