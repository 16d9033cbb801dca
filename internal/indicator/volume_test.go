package indicator

import (
	"testing"

	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/stretchr/testify/suite"
)

type RelativeVolumeTestSuite struct {
	suite.Suite
}

func TestRelativeVolumeSuite(t *testing.T) {
	suite.Run(t, new(RelativeVolumeTestSuite))
}

func (suite *RelativeVolumeTestSuite) update(v *RelativeVolume, volume float64) types.IndicatorRow {
	var row types.IndicatorRow
	v.Update(types.MarketData{Volume: volume}, &row)

	return row
}

func (suite *RelativeVolumeTestSuite) TestName() {
	suite.Equal(types.IndicatorTypeVolumeRel, NewRelativeVolume(20).Name())
}

func (suite *RelativeVolumeTestSuite) TestPartialWindow() {
	v := NewRelativeVolume(20)
	suite.update(v, 100)
	row := suite.update(v, 300)

	suite.Equal(200.0, row.VolumeMA20)
	suite.Equal(1.5, row.VolumeRel)
}

func (suite *RelativeVolumeTestSuite) TestIdenticalVolumeIsExactlyOne() {
	v := NewRelativeVolume(20)
	for i := 0; i < 45; i++ {
		row := suite.update(v, 28_345_700)
		suite.Equal(1.0, row.VolumeRel, "bar %d", i)
	}
}

func (suite *RelativeVolumeTestSuite) TestIdenticalRunAfterVariedVolume() {
	v := NewRelativeVolume(20)
	for _, volume := range []float64{12, 7_000, 31, 999_999} {
		suite.update(v, volume)
	}

	var row types.IndicatorRow
	for i := 0; i < 20; i++ {
		row = suite.update(v, 4_500)
	}

	suite.Equal(1.0, row.VolumeRel)
}

func (suite *RelativeVolumeTestSuite) TestZeroMeanUsesFallback() {
	v := NewRelativeVolume(20)
	row := suite.update(v, 0)

	suite.Equal(0.0, row.VolumeMA20)
	suite.Equal(0.0, row.VolumeRel)
}
