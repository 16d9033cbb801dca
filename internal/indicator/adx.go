package indicator

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// ADX indicator implements the Average Directional Index.
//
// True range and directional movement are Wilder-smoothed, turned into the
// directional indicators and DX, and DX is Wilder-smoothed again. Each
// smoothing needs period samples, so with period 14 the first defined ADX is
// on the 27th bar. A zero smoothed true range or a zero DI sum marks the
// whole series degenerate; the engine then replaces it with zeros.
type ADX struct {
	period int

	tr    *wilderAverage
	plus  *wilderAverage
	minus *wilderAverage
	dx    *wilderAverage

	prevHigh   float64
	prevLow    float64
	prevClose  float64
	seen       bool
	defined    bool
	degenerate bool
}

// NewADX creates a new ADX indicator.
func NewADX(period int) *ADX {
	return &ADX{
		period: period,
		tr:     newWilderAverage(period),
		plus:   newWilderAverage(period),
		minus:  newWilderAverage(period),
		dx:     newWilderAverage(period),
	}
}

// Name returns the name of the indicator.
func (a *ADX) Name() types.IndicatorType {
	return types.IndicatorTypeADX
}

// Defined reports whether the last Update produced an ADX value.
func (a *ADX) Defined() bool {
	return a.defined
}

// Degenerate reports whether a zero denominator was hit on any bar so far.
func (a *ADX) Degenerate() bool {
	return a.degenerate
}

// Update writes the ADX into row, or None while it is still undefined.
func (a *ADX) Update(bar types.MarketData, row *types.IndicatorRow) {
	trueRange, plusDM, minusDM := a.directionalMove(bar)

	smoothedTR, ok := a.tr.Next(trueRange)
	smoothedPlus, _ := a.plus.Next(plusDM)
	smoothedMinus, _ := a.minus.Next(minusDM)

	a.defined = false
	row.ADX = optional.None[float64]()

	if !ok {
		return
	}

	if smoothedTR == 0 {
		a.degenerate = true

		return
	}

	plusDI := 100 * smoothedPlus / smoothedTR
	minusDI := 100 * smoothedMinus / smoothedTR

	diSum := plusDI + minusDI
	if diSum == 0 {
		a.degenerate = true

		return
	}

	dx := 100 * math.Abs(plusDI-minusDI) / diSum

	value, ok := a.dx.Next(dx)
	if !ok {
		return
	}

	a.defined = true
	row.ADX = optional.Some(value)
}

// directionalMove returns the true range and the +DM/-DM of bar. The first
// bar has no previous close, so its true range is high minus low and both
// movements are zero.
func (a *ADX) directionalMove(bar types.MarketData) (float64, float64, float64) {
	defer func() {
		a.prevHigh = bar.High
		a.prevLow = bar.Low
		a.prevClose = bar.Close
		a.seen = true
	}()

	if !a.seen {
		return bar.High - bar.Low, 0, 0
	}

	trueRange := math.Max(bar.High-bar.Low,
		math.Max(math.Abs(bar.High-a.prevClose), math.Abs(bar.Low-a.prevClose)))

	upMove := bar.High - a.prevHigh
	downMove := a.prevLow - bar.Low

	plusDM, minusDM := 0.0, 0.0
	if upMove > downMove && upMove > 0 {
		plusDM = upMove
	}

	if downMove > upMove && downMove > 0 {
		minusDM = downMove
	}

	return trueRange, plusDM, minusDM
}
