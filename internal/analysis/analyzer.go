// Package analysis runs the signal pipeline for one instrument: fetch the
// history, normalize it, compute the indicator frame, synthesize the signals
// and read the recommendation off the last row.
package analysis

import (
	"context"
	"time"

	"github.com/rxtech-lab/argo-signal/internal/indicator"
	"github.com/rxtech-lab/argo-signal/internal/series"
	"github.com/rxtech-lab/argo-signal/internal/strategy"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata"
)

// DefaultLookback is the history requested per analysis, two years of daily bars.
const DefaultLookback = 2 * 365 * 24 * time.Hour

// Result is the outcome of one analysis.
type Result struct {
	Symbol         string
	Rows           []types.SignalRow
	Recommendation Recommendation
}

// Run computes the signal frame of bars and its recommendation. It is pure:
// no I/O and bars is not modified.
func Run(symbol string, bars []types.MarketData, params types.Parameters) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	normalized, err := series.Normalize(symbol, bars, params.MinPeriods)
	if err != nil {
		return nil, err
	}

	frame, err := indicator.NewEngine(params).Compute(symbol, normalized)
	if err != nil {
		return nil, err
	}

	rows, err := strategy.Synthesize(frame, params)
	if err != nil {
		return nil, err
	}

	last, ok := strategy.Latest(rows)
	if !ok {
		return nil, errors.Newf(errors.ErrCodeSignalSynthesis, "no signal rows for %s", symbol)
	}

	return &Result{
		Symbol:         symbol,
		Rows:           rows,
		Recommendation: NewRecommendation(symbol, last, params),
	}, nil
}

// Analyzer fetches history from a source and runs the pipeline on it.
type Analyzer struct {
	source   marketdata.Source
	params   types.Parameters
	lookback time.Duration
	now      func() time.Time
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLookback sets how far back history is requested.
func WithLookback(lookback time.Duration) Option {
	return func(a *Analyzer) {
		a.lookback = lookback
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		a.now = now
	}
}

// NewAnalyzer validates params and creates an analyzer over source.
func NewAnalyzer(source marketdata.Source, params types.Parameters, opts ...Option) (*Analyzer, error) {
	if source == nil {
		return nil, errors.New(errors.ErrCodeMissingParameter, "market data source is required")
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	a := &Analyzer{
		source:   source,
		params:   params,
		lookback: DefaultLookback,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// Parameters returns the analyzer's signal parameters.
func (a *Analyzer) Parameters() types.Parameters {
	return a.params
}

// Analyze fetches the lookback window of symbol ending now and runs the pipeline.
func (a *Analyzer) Analyze(ctx context.Context, symbol string) (*Result, error) {
	end := a.now()

	bars, err := a.source.Fetch(ctx, symbol, end.Add(-a.lookback), end)
	if err != nil {
		return nil, err
	}

	return Run(symbol, bars, a.params)
}
