package indicator

// wilderAverage is Wilder's smoothing with alpha = 1/period in its
// bias-adjusted form: the weighted mean of every sample seen so far with
// weights (1-alpha)^age, normalized by the sum of the weights. The value is
// undefined until minPeriods samples have been fed.
type wilderAverage struct {
	decay      float64
	num        float64
	den        float64
	count      int
	minPeriods int
}

func newWilderAverage(period int) *wilderAverage {
	return &wilderAverage{
		decay:      1 - 1/float64(period),
		minPeriods: period,
	}
}

// Next feeds x and returns the smoothed value and whether it is defined.
func (w *wilderAverage) Next(x float64) (float64, bool) {
	w.num = x + w.decay*w.num
	w.den = 1 + w.decay*w.den
	w.count++

	return w.Value()
}

// Value returns the current smoothed value and whether it is defined.
func (w *wilderAverage) Value() (float64, bool) {
	if w.count < w.minPeriods {
		return 0, false
	}

	return w.num / w.den, true
}
