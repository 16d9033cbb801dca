package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type EMATestSuite struct {
	suite.Suite
}

func TestEMASuite(t *testing.T) {
	suite.Run(t, new(EMATestSuite))
}

func (suite *EMATestSuite) TestSeededWithFirstValue() {
	ema := NewEMA(12)
	suite.Equal(0.0, ema.Value())
	suite.Equal(38.5, ema.Next(38.5))
	suite.Equal(38.5, ema.Value())
}

func (suite *EMATestSuite) TestRecursion() {
	// span 3 gives alpha 0.5
	ema := NewEMA(3)

	suite.Equal(1.0, ema.Next(1))
	suite.Equal(1.5, ema.Next(2))
	suite.Equal(2.25, ema.Next(3))
}

func (suite *EMATestSuite) TestConstantInputStaysConstant() {
	ema := NewEMA(26)
	for i := 0; i < 100; i++ {
		suite.Equal(20.0, ema.Next(20))
	}
}
