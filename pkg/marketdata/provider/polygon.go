package provider

import (
	"context"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"

	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// PolygonAggsIterator is the part of the Polygon aggregates iterator used here.
type PolygonAggsIterator interface {
	Next() bool
	Item() models.Agg
	Err() error
}

// PolygonAPIClient abstracts the Polygon REST client for testing.
type PolygonAPIClient interface {
	ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator
}

type polygonAPIWrapper struct {
	client *polygon.Client
}

func (w *polygonAPIWrapper) ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator {
	return w.client.ListAggs(ctx, params, options...)
}

type PolygonClient struct {
	apiClient PolygonAPIClient
	interval  Interval
}

func NewPolygonClient(apiKey string, interval Interval) (Provider, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "apiKey is required")
	}

	return &PolygonClient{
		apiClient: &polygonAPIWrapper{client: polygon.New(apiKey)},
		interval:  interval,
	}, nil
}

// NewPolygonClientWithAPI creates a PolygonClient on top of a custom API client.
func NewPolygonClientWithAPI(apiClient PolygonAPIClient, interval Interval) *PolygonClient {
	return &PolygonClient{
		apiClient: apiClient,
		interval:  interval,
	}
}

// Name returns the provider type.
func (c *PolygonClient) Name() ProviderType {
	return ProviderPolygon
}

// Fetch lists the aggregates of symbol in range.
func (c *PolygonClient) Fetch(ctx context.Context, symbol string, start time.Time, end time.Time) ([]types.MarketData, error) {
	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     symbol,
		Multiplier: c.interval.Multiplier,
		Timespan:   c.interval.Timespan,
		From:       models.Millis(start),
		To:         models.Millis(end),
	}.WithLimit(50000)

	iter := c.apiClient.ListAggs(ctx, params)

	var bars []types.MarketData

	for iter.Next() {
		agg := iter.Item()
		bars = append(bars, types.MarketData{
			Id:     "",
			Symbol: symbol,
			Time:   time.Time(agg.Timestamp),
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: agg.Volume,
		})
	}

	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMarketDataFetchFailed,
			fmt.Sprintf("error iterating polygon aggregates for %s", symbol), err)
	}

	if len(bars) == 0 {
		return nil, emptyResult(ProviderPolygon, symbol, start, end)
	}

	return bars, nil
}
