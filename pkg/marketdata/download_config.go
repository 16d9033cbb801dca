package marketdata

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata/provider"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata/writer"
)

// BaseDownloadConfig contains common fields for all download configurations.
type BaseDownloadConfig struct {
	Ticker    string `json:"ticker" jsonschema:"title=Ticker,description=The symbol to download data for (e.g. PETR4.SA or BTCUSDT),required" validate:"required"`
	StartDate string `json:"startDate" jsonschema:"title=Start Date,description=Start date,format=date-time,required" validate:"required"`
	EndDate   string `json:"endDate" jsonschema:"title=End Date,description=End date,format=date-time,required" validate:"required"`
	Interval  string `json:"interval" jsonschema:"title=Interval,description=Data interval,required,enum=1m,enum=5m,enum=15m,enum=30m,enum=1h,enum=4h,enum=1d,enum=1w,enum=1M" validate:"required,oneof=1m 5m 15m 30m 1h 4h 1d 1w 1M"`
	Format    string `json:"format,omitempty" jsonschema:"title=Format,description=Output file format,enum=parquet,enum=csv,default=parquet" validate:"omitempty,oneof=parquet csv"`
}

// YahooDownloadConfig contains configuration for downloading from Yahoo Finance.
type YahooDownloadConfig struct {
	BaseDownloadConfig

	BaseURL string `json:"baseUrl,omitempty" jsonschema:"title=Base URL,description=Overrides the Yahoo chart endpoint" validate:"omitempty,url"`
}

// PolygonDownloadConfig contains configuration for downloading from Polygon.io.
type PolygonDownloadConfig struct {
	BaseDownloadConfig

	ApiKey string `json:"apiKey" jsonschema:"title=API Key,description=Polygon.io API key for authentication,required" secret:"true" validate:"required"`
}

// BinanceDownloadConfig contains configuration for downloading from Binance.
// Binance public market data API does not require authentication.
type BinanceDownloadConfig struct {
	BaseDownloadConfig
}

// Validate validates the BaseDownloadConfig fields.
func (c *BaseDownloadConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	// Validate date formats
	if _, err := time.Parse(time.RFC3339, c.StartDate); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid startDate format, expected RFC3339", err)
	}

	if _, err := time.Parse(time.RFC3339, c.EndDate); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid endDate format, expected RFC3339", err)
	}

	return nil
}

// Validate validates the YahooDownloadConfig.
func (c *YahooDownloadConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	return c.BaseDownloadConfig.Validate()
}

// Validate validates the PolygonDownloadConfig.
func (c *PolygonDownloadConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	return c.BaseDownloadConfig.Validate()
}

// Validate validates the BinanceDownloadConfig.
func (c *BinanceDownloadConfig) Validate() error {
	return c.BaseDownloadConfig.Validate()
}

// ToDownloadParams converts a BaseDownloadConfig to DownloadParams.
func (c *BaseDownloadConfig) ToDownloadParams() (DownloadParams, error) {
	startDate, err := time.Parse(time.RFC3339, c.StartDate)
	if err != nil {
		return DownloadParams{}, fmt.Errorf("failed to parse startDate: %w", err)
	}

	endDate, err := time.Parse(time.RFC3339, c.EndDate)
	if err != nil {
		return DownloadParams{}, fmt.Errorf("failed to parse endDate: %w", err)
	}

	return DownloadParams{
		Ticker:    c.Ticker,
		StartDate: startDate,
		EndDate:   endDate,
		Interval:  Timespan(c.Interval),
	}, nil
}

func (c *BaseDownloadConfig) format() writer.Format {
	if c.Format == "" {
		return writer.FormatParquet
	}

	return writer.Format(c.Format)
}

// ToClientConfig converts a YahooDownloadConfig to ClientConfig.
func (c *YahooDownloadConfig) ToClientConfig(dataPath string) ClientConfig {
	return ClientConfig{
		ProviderType:  provider.ProviderYahoo,
		Format:        c.format(),
		DataPath:      dataPath,
		PolygonApiKey: "",
		YahooBaseURL:  c.BaseURL,
	}
}

// ToClientConfig converts a PolygonDownloadConfig to ClientConfig.
func (c *PolygonDownloadConfig) ToClientConfig(dataPath string) ClientConfig {
	return ClientConfig{
		ProviderType:  provider.ProviderPolygon,
		Format:        c.format(),
		DataPath:      dataPath,
		PolygonApiKey: c.ApiKey,
		YahooBaseURL:  "",
	}
}

// ToClientConfig converts a BinanceDownloadConfig to ClientConfig.
func (c *BinanceDownloadConfig) ToClientConfig(dataPath string) ClientConfig {
	return ClientConfig{
		ProviderType:  provider.ProviderBinance,
		Format:        c.format(),
		DataPath:      dataPath,
		PolygonApiKey: "",
		YahooBaseURL:  "",
	}
}

// DownloadConfig is implemented by every provider download configuration.
type DownloadConfig interface {
	Validate() error
	ToDownloadParams() (DownloadParams, error)
	ToClientConfig(dataPath string) ClientConfig
}

func parseConfig[T any, P interface {
	*T
	Validate() error
}](jsonConfig string) (*T, error) {
	var config T
	if err := json.Unmarshal([]byte(jsonConfig), &config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse JSON config", err)
	}

	if err := P(&config).Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// ParseYahooConfig parses JSON into a YahooDownloadConfig.
func ParseYahooConfig(jsonConfig string) (*YahooDownloadConfig, error) {
	return parseConfig[YahooDownloadConfig](jsonConfig)
}

// ParsePolygonConfig parses JSON into a PolygonDownloadConfig.
func ParsePolygonConfig(jsonConfig string) (*PolygonDownloadConfig, error) {
	return parseConfig[PolygonDownloadConfig](jsonConfig)
}

// ParseBinanceConfig parses JSON into a BinanceDownloadConfig.
func ParseBinanceConfig(jsonConfig string) (*BinanceDownloadConfig, error) {
	return parseConfig[BinanceDownloadConfig](jsonConfig)
}
