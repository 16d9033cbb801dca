package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

const (
	// DefaultYahooBaseURL is the Yahoo Finance chart endpoint.
	DefaultYahooBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

	yahooAttempts        = 3
	yahooInitialInterval = 2 * time.Second
	yahooRequestTimeout  = 30 * time.Second
)

// YahooClient reads daily history from the Yahoo Finance chart API.
type YahooClient struct {
	httpClient      *http.Client
	baseURL         string
	interval        string
	logger          *logger.Logger
	attempts        int
	initialInterval time.Duration
}

// NewYahooClient creates a Yahoo client. An empty baseURL selects DefaultYahooBaseURL.
func NewYahooClient(baseURL string, interval Interval, log *logger.Logger) (Provider, error) {
	yahooInterval, err := convertTimespanToYahooInterval(interval.Timespan, interval.Multiplier)
	if err != nil {
		return nil, err
	}

	if baseURL == "" {
		baseURL = DefaultYahooBaseURL
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &YahooClient{
		httpClient:      &http.Client{Timeout: yahooRequestTimeout},
		baseURL:         baseURL,
		interval:        yahooInterval,
		logger:          log,
		attempts:        yahooAttempts,
		initialInterval: yahooInitialInterval,
	}, nil
}

// Name returns the provider type.
func (c *YahooClient) Name() ProviderType {
	return ProviderYahoo
}

// Fetch downloads the chart of symbol. Failed requests are retried with
// exponential backoff; client errors other than 429 are not retried.
func (c *YahooClient) Fetch(ctx context.Context, symbol string, start time.Time, end time.Time) ([]types.MarketData, error) {
	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, url.PathEscape(symbol), url.Values{
		"period1":  {strconv.FormatInt(start.Unix(), 10)},
		"period2":  {strconv.FormatInt(end.Unix(), 10)},
		"interval": {c.interval},
		"events":   {"history"},
	}.Encode())

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.initialInterval

	attempt := 0

	body, err := backoff.RetryNotifyWithData(func() ([]byte, error) {
		attempt++
		return c.get(ctx, endpoint)
	}, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(c.attempts-1)), ctx),
		func(err error, wait time.Duration) {
			c.logger.Warn("Yahoo request failed, retrying",
				zap.String("symbol", symbol),
				zap.Int("attempt", attempt),
				zap.Duration("wait", wait),
				zap.Error(err),
			)
		})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMarketDataFetchFailed,
			fmt.Sprintf("all %d attempts failed for %s", attempt, symbol), err)
	}

	bars, err := parseYahooChart(symbol, body)
	if err != nil {
		return nil, err
	}

	if len(bars) == 0 {
		return nil, emptyResult(ProviderYahoo, symbol, start, end)
	}

	if last := bars[len(bars)-1].Time; end.Sub(last) > 5*24*time.Hour {
		c.logger.Warn("Stale market data",
			zap.String("symbol", symbol),
			zap.Time("last_bar", last),
		)
	}

	return bars, nil
}

func (c *YahooClient) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; argo-signal)")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("yahoo returned status %d", resp.StatusCode)
	default:
		return nil, backoff.Permanent(fmt.Errorf("yahoo returned status %d: %s",
			resp.StatusCode, gjson.GetBytes(body, "chart.error.description").String()))
	}
}

// parseYahooChart reads the first chart result. Bars with a missing price or
// volume (Yahoo reports null on non-trading days) are skipped.
//
// When the chart carries an adjclose series, open, high, low and close are
// scaled by adjclose/close so splits and dividends do not leave gaps in the
// history. Volume is left as reported.
func parseYahooChart(symbol string, body []byte) ([]types.MarketData, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.Newf(errors.ErrCodeMarketDataParseFailed, "invalid chart JSON for %s", symbol)
	}

	chart := gjson.ParseBytes(body).Get("chart")

	if description := chart.Get("error.description"); description.Exists() {
		return nil, errors.Newf(errors.ErrCodeDataUnavailable, "yahoo chart error for %s: %s", symbol, description.String())
	}

	result := chart.Get("result.0")
	if !result.Exists() {
		return nil, nil
	}

	timestamps := result.Get("timestamp").Array()
	quote := result.Get("indicators.quote.0")
	columns := map[string][]gjson.Result{
		"open":   quote.Get("open").Array(),
		"high":   quote.Get("high").Array(),
		"low":    quote.Get("low").Array(),
		"close":  quote.Get("close").Array(),
		"volume": quote.Get("volume").Array(),
	}

	adjusted := result.Get("indicators.adjclose.0.adjclose")
	if adjusted.Exists() {
		columns["adjclose"] = adjusted.Array()
	}

	for name, values := range columns {
		if len(values) != len(timestamps) {
			return nil, errors.Newf(errors.ErrCodeMarketDataParseFailed,
				"chart for %s has %d timestamps but %d %s values", symbol, len(timestamps), len(values), name)
		}
	}

	bars := make([]types.MarketData, 0, len(timestamps))

	for i, ts := range timestamps {
		if !present(columns, i) {
			continue
		}

		closePrice := columns["close"][i].Float()

		factor := 1.0
		if adjusted.Exists() && closePrice != 0 {
			factor = columns["adjclose"][i].Float() / closePrice
		}

		bars = append(bars, types.MarketData{
			Id:     "",
			Symbol: symbol,
			Time:   time.Unix(ts.Int(), 0).UTC(),
			Open:   columns["open"][i].Float() * factor,
			High:   columns["high"][i].Float() * factor,
			Low:    columns["low"][i].Float() * factor,
			Close:  closePrice * factor,
			Volume: columns["volume"][i].Float(),
		})
	}

	return bars, nil
}

func present(columns map[string][]gjson.Result, i int) bool {
	for _, values := range columns {
		if values[i].Type != gjson.Number {
			return false
		}
	}

	return true
}

// convertTimespanToYahooInterval maps the interval to a Yahoo chart interval.
// Yahoo intervals: 1m, 2m, 5m, 15m, 30m, 60m, 90m, 1h, 1d, 5d, 1wk, 1mo, 3mo
func convertTimespanToYahooInterval(timespan models.Timespan, multiplier int) (string, error) {
	switch {
	case timespan == models.Minute && (multiplier == 1 || multiplier == 2 || multiplier == 5 || multiplier == 15 || multiplier == 30):
		return fmt.Sprintf("%dm", multiplier), nil
	case timespan == models.Hour && multiplier == 1:
		return "1h", nil
	case timespan == models.Day && (multiplier == 1 || multiplier == 5):
		return fmt.Sprintf("%dd", multiplier), nil
	case timespan == models.Week && multiplier == 1:
		return "1wk", nil
	case timespan == models.Month && (multiplier == 1 || multiplier == 3):
		return fmt.Sprintf("%dmo", multiplier), nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidPeriod, "unsupported interval for Yahoo: %d %s", multiplier, timespan)
	}
}
