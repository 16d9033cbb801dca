package indicator

// EMA is the recursive exponential moving average with alpha = 2/(span+1).
// It is seeded with the first value and carries no bias adjustment.
type EMA struct {
	alpha  float64
	value  float64
	seeded bool
}

// NewEMA creates an EMA for the given span.
func NewEMA(span int) *EMA {
	return &EMA{
		alpha: 2.0 / (float64(span) + 1.0),
	}
}

// Next feeds v and returns the updated average.
func (e *EMA) Next(v float64) float64 {
	if !e.seeded {
		e.value = v
		e.seeded = true

		return e.value
	}

	e.value += e.alpha * (v - e.value)

	return e.value
}

// Value returns the current average, 0 before the first sample.
func (e *EMA) Value() float64 {
	return e.value
}
