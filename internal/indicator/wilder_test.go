package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
)

type WilderTestSuite struct {
	suite.Suite
}

func TestWilderSuite(t *testing.T) {
	suite.Run(t, new(WilderTestSuite))
}

func (suite *WilderTestSuite) TestUndefinedBeforeMinPeriods() {
	w := newWilderAverage(14)
	for i := 0; i < 13; i++ {
		_, ok := w.Next(float64(i))
		suite.False(ok, "sample %d", i)
	}

	_, ok := w.Next(13)
	suite.True(ok)
}

// The streaming value must match the bias-adjusted weighted mean computed
// from scratch over all samples.
func (suite *WilderTestSuite) TestMatchesAdjustedWeightedMean() {
	const period = 4
	samples := []float64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3}

	w := newWilderAverage(period)
	decay := 1 - 1/float64(period)

	for n := range samples {
		got, ok := w.Next(samples[n])

		var num, den float64
		for i := 0; i <= n; i++ {
			weight := math.Pow(decay, float64(n-i))
			num += weight * samples[i]
			den += weight
		}

		if n+1 < period {
			suite.False(ok)
			continue
		}

		suite.True(ok)
		suite.InDelta(num/den, got, 1e-12, "sample %d", n)
	}
}
