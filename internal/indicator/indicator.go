// Package indicator computes the fixed battery of technical indicators that
// feeds the signal rules.
//
// Every indicator is a streaming accumulator: it consumes one bar at a time,
// keeps bounded state (a running window, EMA state or Wilder state) and
// writes its columns into the row of the bar it just consumed. The Engine
// runs the whole battery in a single pass over a normalized series.
package indicator

import (
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// Indicator defines methods that any technical indicator must implement.
type Indicator interface {
	// Name returns the name of the indicator's primary column.
	Name() types.IndicatorType
	// Update feeds the next bar and writes the indicator columns into row.
	Update(bar types.MarketData, row *types.IndicatorRow)
}
