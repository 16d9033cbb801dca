package indicator

import (
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// Battery is the ordered set of indicators run by one engine pass.
// Indicators are updated in registration order.
type Battery struct {
	indicators []Indicator
	names      map[types.IndicatorType]struct{}
}

// NewBattery creates an empty battery.
func NewBattery() *Battery {
	return &Battery{
		indicators: nil,
		names:      make(map[types.IndicatorType]struct{}),
	}
}

// RegisterIndicator appends an indicator to the battery.
func (b *Battery) RegisterIndicator(indicator Indicator) error {
	name := indicator.Name()
	if _, exists := b.names[name]; exists {
		return errors.Newf(errors.ErrCodeInvalidParameter, "RegisterIndicator: indicator with name %s already registered", name)
	}

	b.names[name] = struct{}{}
	b.indicators = append(b.indicators, indicator)

	return nil
}

// ListIndicators returns the registered indicator names in update order.
func (b *Battery) ListIndicators() []types.IndicatorType {
	names := make([]types.IndicatorType, 0, len(b.indicators))
	for _, indicator := range b.indicators {
		names = append(names, indicator.Name())
	}

	return names
}

// Update feeds bar to every indicator in order.
func (b *Battery) Update(bar types.MarketData, row *types.IndicatorRow) {
	for _, indicator := range b.indicators {
		indicator.Update(bar, row)
	}
}
