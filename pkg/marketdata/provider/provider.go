package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderYahoo   ProviderType = "yahoo"
	ProviderPolygon ProviderType = "polygon"
	ProviderBinance ProviderType = "binance"
	ProviderFile    ProviderType = "file"
)

// Interval is the bar size requested from a provider, expressed the way
// Polygon does: a multiplier of a timespan.
type Interval struct {
	Multiplier int
	Timespan   models.Timespan
}

// DailyInterval is one bar per trading day.
var DailyInterval = Interval{Multiplier: 1, Timespan: models.Day}

// Provider retrieves OHLCV history for one instrument.
type Provider interface {
	// Name returns the provider type.
	Name() ProviderType
	// Fetch returns the bars of symbol between start and end, both inclusive.
	// An empty result is an ErrCodeDataUnavailable error, never an empty slice.
	// example:
	// Fetch(ctx, "PETR4.SA", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))
	Fetch(ctx context.Context, symbol string, start time.Time, end time.Time) ([]types.MarketData, error)
}

// Config selects and configures a provider.
type Config struct {
	Type ProviderType
	// APIKey is required by Polygon.
	APIKey string
	// BaseURL overrides the Yahoo chart endpoint.
	BaseURL string
	// DataPath is the parquet or csv file read by the file provider.
	DataPath string
	Interval Interval
}

// NewMarketDataProvider creates a new market data provider based on the provider type.
func NewMarketDataProvider(config Config, log *logger.Logger) (Provider, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	interval := config.Interval
	if interval.Multiplier == 0 {
		interval = DailyInterval
	}

	switch config.Type {
	case ProviderYahoo:
		return NewYahooClient(config.BaseURL, interval, log)
	case ProviderPolygon:
		return NewPolygonClient(config.APIKey, interval)
	case ProviderBinance:
		return NewBinanceClient(interval)
	case ProviderFile:
		return NewFileSource(config.DataPath, log)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported market data provider: %s", config.Type)
	}
}

// emptyResult is the error returned when a provider has no bars in range.
func emptyResult(provider ProviderType, symbol string, start, end time.Time) error {
	return errors.New(errors.ErrCodeDataUnavailable,
		fmt.Sprintf("%s returned no data for %s between %s and %s",
			provider, symbol, start.Format(time.DateOnly), end.Format(time.DateOnly)))
}
