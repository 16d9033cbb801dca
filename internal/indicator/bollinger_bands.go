package indicator

import (
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// BollingerBands indicator implements the rolling mean of the close plus and
// minus a multiple of the rolling sample standard deviation.
type BollingerBands struct {
	period    int
	stdDevMul float64
	window    *rollingWindow
}

// NewBollingerBands creates Bollinger Bands over period bars with stdDevMul
// standard deviations on each side.
func NewBollingerBands(period int, stdDevMul float64) *BollingerBands {
	return &BollingerBands{
		period:    period,
		stdDevMul: stdDevMul,
		window:    newRollingWindow(period),
	}
}

// Name returns the name of the indicator.
func (bb *BollingerBands) Name() types.IndicatorType {
	return types.IndicatorTypeBBUpper
}

// Update writes the upper and lower band. With a single sample the standard
// deviation is 0 and both bands equal the close.
func (bb *BollingerBands) Update(bar types.MarketData, row *types.IndicatorRow) {
	bb.window.Push(bar.Close)

	middle := bb.window.Mean()
	width := bb.stdDevMul * bb.window.SampleStd()

	row.BBUpper = middle + width
	row.BBLower = middle - width
}
