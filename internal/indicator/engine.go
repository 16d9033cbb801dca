package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/series"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// Engine computes the indicator frame of a normalized series.
// An Engine holds only its parameters and can be shared between goroutines;
// every Compute call builds fresh accumulators.
type Engine struct {
	params types.Parameters
}

// NewEngine creates an engine for params.
func NewEngine(params types.Parameters) *Engine {
	return &Engine{params: params}
}

// Parameters returns the engine configuration.
func (e *Engine) Parameters() types.Parameters {
	return e.params
}

// Compute runs the indicator battery over bars in one pass.
//
// bars must be normalized: strictly increasing timestamps. Rows whose ADX is
// still warming up are dropped. If fewer than MinPeriods rows remain the
// result is an InsufficientDataError and no frame is returned.
func (e *Engine) Compute(symbol string, bars []types.MarketData) (types.Frame, error) {
	if err := e.params.Validate(); err != nil {
		return types.Frame{}, err
	}

	if len(bars) == 0 {
		return types.Frame{}, errors.Newf(errors.ErrCodeDataUnavailable, "no bars for %s", symbol)
	}

	for i := 1; i < len(bars); i++ {
		if !bars[i].Time.After(bars[i-1].Time) {
			return types.Frame{}, errors.Newf(errors.ErrCodeDataUnavailable,
				"bars for %s are not strictly increasing at index %d", symbol, i)
		}
	}

	battery, adx, err := e.battery()
	if err != nil {
		return types.Frame{}, err
	}

	rows := make([]types.IndicatorRow, len(bars))
	defined := make([]bool, len(bars))

	for i, bar := range bars {
		rows[i].MarketData = bar
		battery.Update(bar, &rows[i])

		defined[i] = adx == nil || adx.Defined()
	}

	rows = e.truncate(rows, defined, adx)

	if err := series.CheckHistory(symbol, len(rows), e.params.MinPeriods); err != nil {
		return types.Frame{}, err
	}

	return types.Frame{Symbol: symbol, Rows: rows}, nil
}

// battery registers the indicators in column order. The returned ADX is nil
// when ADX is disabled.
func (e *Engine) battery() (*Battery, *ADX, error) {
	p := e.params
	battery := NewBattery()

	indicators := []Indicator{
		NewMA(types.IndicatorTypeSMAFast, p.SMAFast),
		NewMA(types.IndicatorTypeSMASlow, p.SMASlow),
		NewRSI(p.RSIPeriod),
		NewMACD(p.MACDFast, p.MACDSlow, p.MACDSignal),
		NewBollingerBands(p.BBPeriod, p.BBStdDev),
		NewRelativeVolume(p.VolumePeriod),
	}

	var adx *ADX
	if p.UseADX {
		adx = NewADX(p.ADXPeriod)
		indicators = append(indicators, adx)
	}

	for _, indicator := range indicators {
		if err := battery.RegisterIndicator(indicator); err != nil {
			return nil, nil, err
		}
	}

	return battery, adx, nil
}

// truncate drops undefined rows. A degenerate ADX keeps every row with an
// ADX of zero.
func (e *Engine) truncate(rows []types.IndicatorRow, defined []bool, adx *ADX) []types.IndicatorRow {
	if adx != nil && adx.Degenerate() {
		for i := range rows {
			rows[i].ADX = optional.Some(0.0)
		}

		return rows
	}

	kept := rows[:0]
	for i, row := range rows {
		if defined[i] {
			kept = append(kept, row)
		}
	}

	return kept
}
