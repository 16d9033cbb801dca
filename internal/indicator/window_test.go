package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
)

type RollingWindowTestSuite struct {
	suite.Suite
}

func TestRollingWindowSuite(t *testing.T) {
	suite.Run(t, new(RollingWindowTestSuite))
}

func (suite *RollingWindowTestSuite) TestEmptyWindow() {
	w := newRollingWindow(3)
	suite.Equal(0, w.Len())
	suite.Equal(0.0, w.Mean())
	suite.Equal(0.0, w.SampleStd())
}

func (suite *RollingWindowTestSuite) TestPartialWindow() {
	w := newRollingWindow(5)
	w.Push(2)
	w.Push(4)

	suite.Equal(2, w.Len())
	suite.Equal(3.0, w.Mean())
	suite.InDelta(math.Sqrt(2), w.SampleStd(), 1e-12)
}

func (suite *RollingWindowTestSuite) TestEviction() {
	w := newRollingWindow(3)
	for _, v := range []float64{1, 2, 3, 4, 5} {
		w.Push(v)
	}

	suite.Equal(3, w.Len())
	suite.Equal(4.0, w.Mean())
	suite.Equal(1.0, w.SampleStd())
}

func (suite *RollingWindowTestSuite) TestSingleSampleStdIsZero() {
	w := newRollingWindow(20)
	w.Push(42)

	suite.Equal(42.0, w.Mean())
	suite.Equal(0.0, w.SampleStd())
}

func (suite *RollingWindowTestSuite) TestIdenticalSamplesMeanIsExact() {
	w := newRollingWindow(20)
	for i := 0; i < 57; i++ {
		w.Push(1234567)
		suite.Equal(1234567.0, w.Mean())
	}
}
