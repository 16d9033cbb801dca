// Package marketdata builds market data sources from configuration and
// downloads their history to local parquet or csv files.
package marketdata

import (
	"context"
	"io"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata/provider"
)

// Source retrieves the OHLCV history of one instrument.
type Source interface {
	// Fetch returns the bars of symbol between start and end. An empty
	// result is an ErrCodeDataUnavailable error.
	Fetch(ctx context.Context, symbol string, start time.Time, end time.Time) ([]types.MarketData, error)
}

// SourceConfig selects the provider used by the analysis and monitor commands.
type SourceConfig struct {
	Provider provider.ProviderType `yaml:"provider" json:"provider" jsonschema:"title=Provider,enum=yahoo,enum=polygon,enum=binance,enum=file,default=yahoo" validate:"required,oneof=yahoo polygon binance file"`
	APIKey   string                `yaml:"api_key" json:"api_key,omitempty" jsonschema:"title=API key,description=Polygon API key. Read from POLYGON_API_KEY when empty" secret:"true" validate:"required_if=Provider polygon"`
	BaseURL  string                `yaml:"base_url" json:"base_url,omitempty" jsonschema:"title=Base URL,description=Overrides the Yahoo chart endpoint" validate:"omitempty,url"`
	DataPath string                `yaml:"data_path" json:"data_path,omitempty" jsonschema:"title=Data file,description=Parquet or csv file read by the file provider" validate:"required_if=Provider file"`
	Interval Timespan              `yaml:"interval" json:"interval,omitempty" jsonschema:"title=Interval,default=1d" validate:"omitempty,oneof=1m 5m 15m 30m 1h 4h 1d 1w 1M"`
}

// DefaultSourceConfig reads daily bars from Yahoo Finance.
func DefaultSourceConfig() SourceConfig {
	return SourceConfig{
		Provider: provider.ProviderYahoo,
		APIKey:   "",
		BaseURL:  "",
		DataPath: "",
		Interval: TimespanOneDay,
	}
}

// Validate checks the struct tags of the config.
func (c SourceConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid source configuration", err)
	}

	return nil
}

// NewSource validates config and creates the provider it selects.
func NewSource(config SourceConfig, log *logger.Logger) (Source, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return provider.NewMarketDataProvider(provider.Config{
		Type:     config.Provider,
		APIKey:   config.APIKey,
		BaseURL:  config.BaseURL,
		DataPath: config.DataPath,
		Interval: config.Interval.Interval(),
	}, log)
}

// CloseSource releases the resources held by source, if any.
func CloseSource(source Source) error {
	if closer, ok := source.(io.Closer); ok {
		return closer.Close()
	}

	return nil
}
