package marketdata

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata/provider"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata/writer"
)

// OnDownloadProgress reports how many of total bars have been written.
type OnDownloadProgress func(current float64, total float64, message string)

// ClientConfig holds the configuration for the market data client.
type ClientConfig struct {
	ProviderType  provider.ProviderType `validate:"required,oneof=yahoo polygon binance"`
	Format        writer.Format         `validate:"required,oneof=parquet csv"`
	DataPath      string                `validate:"required"`
	PolygonApiKey string                `validate:"required_if=ProviderType polygon"`
	YahooBaseURL  string                `validate:"omitempty,url"`
}

// DownloadParams holds the parameters for a market data download request.
type DownloadParams struct {
	Ticker    string    `validate:"required"`
	StartDate time.Time `validate:"required"`
	EndDate   time.Time `validate:"required,gtfield=StartDate"`
	Interval  Timespan  `validate:"required,oneof=1m 5m 15m 30m 1h 4h 1d 1w 1M"`
}

// Client downloads history from a provider and stores it with a DuckDB writer.
type Client struct {
	config     ClientConfig
	validate   *validator.Validate
	onProgress OnDownloadProgress
	logger     *logger.Logger
	// newProvider is replaced in tests.
	newProvider func(provider.Config, *logger.Logger) (provider.Provider, error)
}

// NewClient creates a new market data client with the given configuration.
func NewClient(config ClientConfig, onProgress OnDownloadProgress, log *logger.Logger) (*Client, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid client configuration", err)
	}

	if onProgress == nil {
		onProgress = func(float64, float64, string) {}
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Client{
		config:      config,
		validate:    validate,
		onProgress:  onProgress,
		logger:      log,
		newProvider: provider.NewMarketDataProvider,
	}, nil
}

// Download fetches the bars described by params and writes them to
// DataPath. It returns the path of the written file.
// The context can be used to cancel the download operation.
func (c *Client) Download(ctx context.Context, params DownloadParams) (string, error) {
	if err := c.validate.Struct(params); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidParameter, "invalid download parameters", err)
	}

	marketProvider, err := c.newProvider(provider.Config{
		Type:     c.config.ProviderType,
		APIKey:   c.config.PolygonApiKey,
		BaseURL:  c.config.YahooBaseURL,
		DataPath: "",
		Interval: params.Interval.Interval(),
	}, c.logger)
	if err != nil {
		return "", fmt.Errorf("failed to create %s provider: %w", c.config.ProviderType, err)
	}

	c.onProgress(0, 1, fmt.Sprintf("Fetching %s from %s", params.Ticker, marketProvider.Name()))

	bars, err := marketProvider.Fetch(ctx, params.Ticker, params.StartDate, params.EndDate)
	if err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}

	marketWriter, err := c.setupWriter(params)
	if err != nil {
		return "", fmt.Errorf("failed to setup writer: %w", err)
	}

	defer func() {
		if err := marketWriter.Close(); err != nil {
			c.logger.Warn("Failed to close writer", zap.Error(err))
		}
	}()

	total := float64(len(bars))

	for i, bar := range bars {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		if err := marketWriter.Write(bar); err != nil {
			return "", err
		}

		c.onProgress(float64(i+1), total, fmt.Sprintf("Writing %s", params.Ticker))
	}

	outputPath, err := marketWriter.Finalize()
	if err != nil {
		return "", err
	}

	c.logger.Info("Downloaded market data",
		zap.String("symbol", params.Ticker),
		zap.Int("bars", len(bars)),
		zap.String("path", outputPath),
	)

	return outputPath, nil
}

// OutputPath returns the file written for params:
// TICKER_START_END_INTERVAL.<format>
func (c *Client) OutputPath(params DownloadParams) string {
	outputFileName := fmt.Sprintf("%s_%s_%s_%s.%s",
		strings.ReplaceAll(params.Ticker, "/", "_"),
		params.StartDate.Format(time.DateOnly),
		params.EndDate.Format(time.DateOnly),
		params.Interval,
		c.config.Format)

	return filepath.Join(c.config.DataPath, outputFileName)
}

// setupWriter creates the data directory and an initialized DuckDB writer.
func (c *Client) setupWriter(params DownloadParams) (writer.MarketDataWriter, error) {
	if err := os.MkdirAll(c.config.DataPath, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMarketDataWriteFailed,
			fmt.Sprintf("failed to create %s", c.config.DataPath), err)
	}

	outputPath := c.OutputPath(params)
	duckdbWriter := writer.NewDuckDBWriter(outputPath, c.logger)

	if err := duckdbWriter.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize DuckDB writer at %s: %w", outputPath, err)
	}

	return duckdbWriter, nil
}
