package indicator

import (
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// volumeMAFallback replaces a zero volume mean as the relative volume denominator.
const volumeMAFallback = 1.0

// RelativeVolume writes the rolling mean of the volume and the ratio of the
// bar's volume to that mean.
type RelativeVolume struct {
	period int
	window *rollingWindow
}

// NewRelativeVolume creates a relative volume indicator over period bars.
func NewRelativeVolume(period int) *RelativeVolume {
	return &RelativeVolume{
		period: period,
		window: newRollingWindow(period),
	}
}

// Name returns the name of the indicator.
func (v *RelativeVolume) Name() types.IndicatorType {
	return types.IndicatorTypeVolumeRel
}

// Update writes volume_ma20 and volume_rel.
func (v *RelativeVolume) Update(bar types.MarketData, row *types.IndicatorRow) {
	v.window.Push(bar.Volume)

	mean := v.window.Mean()
	row.VolumeMA20 = mean

	if mean == 0 {
		row.VolumeRel = bar.Volume / volumeMAFallback

		return
	}

	row.VolumeRel = bar.Volume / mean
}
