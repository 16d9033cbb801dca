package indicator

import (
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// MA indicator implements a rolling simple moving average of the close price.
// Warm-up rows average over the bars seen so far.
type MA struct {
	column types.IndicatorType
	period int
	window *rollingWindow
}

// NewMA creates a moving average writing into column, which must be
// types.IndicatorTypeSMAFast or types.IndicatorTypeSMASlow.
func NewMA(column types.IndicatorType, period int) *MA {
	return &MA{
		column: column,
		period: period,
		window: newRollingWindow(period),
	}
}

// Name returns the name of the indicator.
func (m *MA) Name() types.IndicatorType {
	return m.column
}

// Period returns the window length.
func (m *MA) Period() int {
	return m.period
}

// Update feeds the close price and writes the current mean.
func (m *MA) Update(bar types.MarketData, row *types.IndicatorRow) {
	m.window.Push(bar.Close)
	value := m.window.Mean()

	switch m.column {
	case types.IndicatorTypeSMAFast:
		row.SMAFast = value
	case types.IndicatorTypeSMASlow:
		row.SMASlow = value
	}
}
