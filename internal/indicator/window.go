package indicator

import "math"

// rollingWindow keeps the last size samples in a preallocated circular buffer.
// Statistics are taken over however many samples exist, so a window that is
// not yet full behaves like a shorter window instead of being undefined.
type rollingWindow struct {
	buf   []float64
	idx   int
	count int
}

func newRollingWindow(size int) *rollingWindow {
	return &rollingWindow{
		buf: make([]float64, size),
	}
}

// Push adds a sample, evicting the oldest one when the window is full.
func (w *rollingWindow) Push(v float64) {
	w.buf[w.idx] = v
	w.idx = (w.idx + 1) % len(w.buf)

	if w.count < len(w.buf) {
		w.count++
	}
}

// Len returns the number of samples currently held.
func (w *rollingWindow) Len() int {
	return w.count
}

// Mean returns the arithmetic mean of the held samples, 0 when empty.
// The sum is recomputed from the buffer so a window of identical samples
// yields that sample exactly, with no drift from earlier evictions.
func (w *rollingWindow) Mean() float64 {
	if w.count == 0 {
		return 0
	}

	return w.sum() / float64(w.count)
}

// SampleStd returns the sample standard deviation (n-1 denominator).
// Fewer than two samples yield 0.
func (w *rollingWindow) SampleStd() float64 {
	if w.count < 2 {
		return 0
	}

	mean := w.Mean()

	var squared float64
	for i := 0; i < w.count; i++ {
		diff := w.buf[i] - mean
		squared += diff * diff
	}

	return math.Sqrt(squared / float64(w.count-1))
}

func (w *rollingWindow) sum() float64 {
	var sum float64
	for i := 0; i < w.count; i++ {
		sum += w.buf[i]
	}

	return sum
}
