package indicator

import (
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// MACD indicator implements Moving Average Convergence Divergence.
// The line is EMA(fast) - EMA(slow) of the close, the signal is an EMA of the
// line and the histogram is line minus signal.
type MACD struct {
	fast   *EMA
	slow   *EMA
	signal *EMA
}

// NewMACD creates a MACD with the given spans.
func NewMACD(fastPeriod, slowPeriod, signalPeriod int) *MACD {
	return &MACD{
		fast:   NewEMA(fastPeriod),
		slow:   NewEMA(slowPeriod),
		signal: NewEMA(signalPeriod),
	}
}

// Name returns the name of the indicator.
func (m *MACD) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Update writes the line, signal and histogram columns.
func (m *MACD) Update(bar types.MarketData, row *types.IndicatorRow) {
	line := m.fast.Next(bar.Close) - m.slow.Next(bar.Close)
	signal := m.signal.Next(line)

	row.MACD = line
	row.MACDSignal = signal
	row.MACDHist = line - signal
}
