package provider

import (
	"context"
	"fmt"
	"strconv"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// binancePageSize is the default number of klines per request.
const binancePageSize = 500

// BinanceKlinesService is the fluent klines request used here.
type BinanceKlinesService interface {
	Symbol(symbol string) BinanceKlinesService
	Interval(interval string) BinanceKlinesService
	StartTime(startTime int64) BinanceKlinesService
	EndTime(endTime int64) BinanceKlinesService
	Do(ctx context.Context) ([]*binance.Kline, error)
}

// BinanceAPIClient abstracts the Binance client for testing.
type BinanceAPIClient interface {
	NewKlinesService() BinanceKlinesService
}

type binanceClientWrapper struct {
	client *binance.Client
}

func (w *binanceClientWrapper) NewKlinesService() BinanceKlinesService {
	return &binanceKlinesServiceWrapper{service: w.client.NewKlinesService()}
}

type binanceKlinesServiceWrapper struct {
	service *binance.KlinesService
}

func (w *binanceKlinesServiceWrapper) Symbol(symbol string) BinanceKlinesService {
	w.service = w.service.Symbol(symbol)
	return w
}

func (w *binanceKlinesServiceWrapper) Interval(interval string) BinanceKlinesService {
	w.service = w.service.Interval(interval)
	return w
}

func (w *binanceKlinesServiceWrapper) StartTime(startTime int64) BinanceKlinesService {
	w.service = w.service.StartTime(startTime)
	return w
}

func (w *binanceKlinesServiceWrapper) EndTime(endTime int64) BinanceKlinesService {
	w.service = w.service.EndTime(endTime)
	return w
}

func (w *binanceKlinesServiceWrapper) Do(ctx context.Context) ([]*binance.Kline, error) {
	return w.service.Do(ctx)
}

type BinanceClient struct {
	client   BinanceAPIClient
	interval Interval
}

// NewBinanceClient creates a client for the public Binance market data API.
func NewBinanceClient(interval Interval) (Provider, error) {
	if _, err := convertTimespanToBinanceInterval(interval.Timespan, interval.Multiplier); err != nil {
		return nil, err
	}

	return &BinanceClient{
		client:   &binanceClientWrapper{client: binance.NewClient("", "")},
		interval: interval,
	}, nil
}

// NewBinanceClientWithAPI creates a BinanceClient on top of a custom API client.
func NewBinanceClientWithAPI(client BinanceAPIClient, interval Interval) *BinanceClient {
	return &BinanceClient{
		client:   client,
		interval: interval,
	}
}

// Name returns the provider type.
func (c *BinanceClient) Name() ProviderType {
	return ProviderBinance
}

// Fetch pages through the klines of symbol in range. Each page starts one
// millisecond after the close time of the previous page's last kline.
func (c *BinanceClient) Fetch(ctx context.Context, symbol string, start time.Time, end time.Time) ([]types.MarketData, error) {
	interval, err := convertTimespanToBinanceInterval(c.interval.Timespan, c.interval.Multiplier)
	if err != nil {
		return nil, err
	}

	endTimeMillis := end.UnixMilli()
	currentStartTime := start.UnixMilli()

	var bars []types.MarketData

	for {
		klines, err := c.client.NewKlinesService().
			Symbol(symbol).
			Interval(interval).
			StartTime(currentStartTime).
			EndTime(endTimeMillis).
			Do(ctx)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMarketDataFetchFailed,
				fmt.Sprintf("failed to fetch klines for %s from Binance", symbol), err)
		}

		page, err := convertKlines(symbol, klines)
		if err != nil {
			return nil, err
		}

		bars = append(bars, page...)

		if len(klines) < binancePageSize {
			break
		}

		currentStartTime = klines[len(klines)-1].CloseTime + 1
		if currentStartTime >= endTimeMillis {
			break
		}
	}

	if len(bars) == 0 {
		return nil, emptyResult(ProviderBinance, symbol, start, end)
	}

	return bars, nil
}

// convertKlines converts Binance klines to bars stamped with the open time.
func convertKlines(symbol string, klines []*binance.Kline) ([]types.MarketData, error) {
	bars := make([]types.MarketData, 0, len(klines))

	for _, k := range klines {
		values := make([]float64, 5)
		for i, raw := range []string{k.Open, k.High, k.Low, k.Close, k.Volume} {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeMarketDataParseFailed,
					fmt.Sprintf("invalid kline value %q for %s", raw, symbol), err)
			}

			values[i] = v
		}

		bars = append(bars, types.MarketData{
			Id:     "",
			Symbol: symbol,
			Time:   time.UnixMilli(k.OpenTime).UTC(),
			Open:   values[0],
			High:   values[1],
			Low:    values[2],
			Close:  values[3],
			Volume: values[4],
		})
	}

	return bars, nil
}

// convertTimespanToBinanceInterval converts the polygon timespan and multiplier to a Binance interval string.
// Binance intervals: 1m, 3m, 5m, 15m, 30m, 1h, 2h, 4h, 6h, 8h, 12h, 1d, 3d, 1w, 1M
// Ref: https://binance-docs.github.io/apidocs/spot/en/#kline-candlestick-data
func convertTimespanToBinanceInterval(timespan models.Timespan, multiplier int) (string, error) {
	switch timespan {
	case models.Minute:
		return fmt.Sprintf("%dm", multiplier), nil
	case models.Hour:
		return fmt.Sprintf("%dh", multiplier), nil
	case models.Day:
		return fmt.Sprintf("%dd", multiplier), nil
	case models.Week:
		if multiplier == 1 {
			return "1w", nil
		}

		return "", errors.Newf(errors.ErrCodeInvalidPeriod, "unsupported weekly multiplier for Binance: %d", multiplier)
	case models.Month:
		if multiplier == 1 {
			return "1M", nil
		}

		return "", errors.Newf(errors.ErrCodeInvalidPeriod, "unsupported monthly multiplier for Binance: %d", multiplier)
	default:
		return "", errors.Newf(errors.ErrCodeInvalidPeriod, "unsupported timespan for Binance: %s", timespan)
	}
}
