package indicator

import (
	"github.com/rxtech-lab/argo-signal/internal/types"
)

const (
	// rsiFirstBar is the RSI of the first bar, which has no price change.
	rsiFirstBar = 50.0
	// rsiNoLoss is the RSI whenever the rolling average loss is zero.
	rsiNoLoss = 100.0
)

// RSI indicator implements the Relative Strength Index from rolling means
// of gains and losses. The first bar contributes a zero gain and a zero loss.
type RSI struct {
	period    int
	gains     *rollingWindow
	losses    *rollingWindow
	prevClose float64
	seen      bool
}

// NewRSI creates a new RSI indicator over period bars.
func NewRSI(period int) *RSI {
	return &RSI{
		period: period,
		gains:  newRollingWindow(period),
		losses: newRollingWindow(period),
	}
}

// Name returns the name of the indicator.
func (r *RSI) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Update feeds the close price and writes the RSI into row.
func (r *RSI) Update(bar types.MarketData, row *types.IndicatorRow) {
	if !r.seen {
		r.seen = true
		r.prevClose = bar.Close
		r.gains.Push(0)
		r.losses.Push(0)
		row.RSI = rsiFirstBar

		return
	}

	delta := bar.Close - r.prevClose
	r.prevClose = bar.Close

	gain, loss := 0.0, 0.0
	if delta > 0 {
		gain = delta
	} else if delta < 0 {
		loss = -delta
	}

	r.gains.Push(gain)
	r.losses.Push(loss)

	avgLoss := r.losses.Mean()
	if avgLoss == 0 {
		row.RSI = rsiNoLoss

		return
	}

	rs := r.gains.Mean() / avgLoss
	row.RSI = 100 - (100 / (1 + rs))
}
