package indicator

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/mocks"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type EngineTestSuite struct {
	suite.Suite
	params types.Parameters
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (suite *EngineTestSuite) SetupTest() {
	suite.params = types.DefaultParameters()
}

func (suite *EngineTestSuite) TestComputeDropsADXWarmUp() {
	bars := mocks.GenerateDaily("PETR4.SA", 250)

	frame, err := NewEngine(suite.params).Compute("PETR4.SA", bars)
	suite.Require().NoError(err)

	suite.Equal("PETR4.SA", frame.Symbol)
	suite.Equal(250-26, frame.Len())
	suite.Equal(bars[26].Time, frame.Rows[0].Time)
	suite.Equal(bars[249].Close, frame.Rows[frame.Len()-1].Close)
}

func (suite *EngineTestSuite) TestNoUndefinedCells() {
	bars := mocks.GenerateDaily("VALE3.SA", 180)

	frame, err := NewEngine(suite.params).Compute("VALE3.SA", bars)
	suite.Require().NoError(err)
	suite.LessOrEqual(frame.Len(), len(bars))

	for i, row := range frame.Rows {
		for _, column := range types.IndicatorColumns {
			value, ok := row.Value(column)
			suite.True(ok, "row %d column %s", i, column)
			suite.False(math.IsNaN(value) || math.IsInf(value, 0), "row %d column %s", i, column)
		}
	}
}

func (suite *EngineTestSuite) TestRowProperties() {
	bars := mocks.GenerateDaily("ITUB4.SA", 400)

	frame, err := NewEngine(suite.params).Compute("ITUB4.SA", bars)
	suite.Require().NoError(err)

	for _, row := range frame.Rows {
		suite.GreaterOrEqual(row.RSI, 0.0)
		suite.LessOrEqual(row.RSI, 100.0)
		suite.Equal(row.MACD-row.MACDSignal, row.MACDHist)
		suite.GreaterOrEqual(row.BBUpper, row.BBLower)
	}
}

func (suite *EngineTestSuite) TestDeterministic() {
	bars := mocks.GenerateDaily("BBDC4.SA", 200)
	engine := NewEngine(suite.params)

	first, err := engine.Compute("BBDC4.SA", bars)
	suite.Require().NoError(err)

	second, err := engine.Compute("BBDC4.SA", bars)
	suite.Require().NoError(err)

	suite.Equal(first, second)
}

func (suite *EngineTestSuite) TestInputNotMutated() {
	bars := mocks.GenerateDaily("ABEV3.SA", 120)
	snapshot := append([]types.MarketData(nil), bars...)

	_, err := NewEngine(suite.params).Compute("ABEV3.SA", bars)
	suite.Require().NoError(err)
	suite.Equal(snapshot, bars)
}

func (suite *EngineTestSuite) TestIdenticalVolumeRunIsOne() {
	bars := mocks.GenerateDaily("WEGE3.SA", 150)
	for i := 60; i < 100; i++ {
		bars[i].Volume = 12_000_000
	}

	frame, err := NewEngine(suite.params).Compute("WEGE3.SA", bars)
	suite.Require().NoError(err)

	for _, row := range frame.Rows {
		if !row.Time.Before(bars[79].Time) && !row.Time.After(bars[99].Time) {
			suite.Equal(1.0, row.VolumeRel, "bar at %s", row.Time)
		}
	}
}

func (suite *EngineTestSuite) TestDegenerateADXKeepsEveryRow() {
	bars := mocks.GenerateFlat("PETR4.SA", 80, 30, 1_000_000)

	frame, err := NewEngine(suite.params).Compute("PETR4.SA", bars)
	suite.Require().NoError(err)
	suite.Equal(80, frame.Len())

	for _, row := range frame.Rows {
		suite.True(row.ADX.IsSome())
		suite.Equal(0.0, row.ADX.Unwrap())
	}
}

func (suite *EngineTestSuite) TestDisabledADX() {
	suite.params.UseADX = false
	bars := mocks.GenerateDaily("PETR4.SA", 60)

	frame, err := NewEngine(suite.params).Compute("PETR4.SA", bars)
	suite.Require().NoError(err)
	suite.Equal(60, frame.Len())

	for _, row := range frame.Rows {
		suite.True(row.ADX.IsNone())
	}
}

func (suite *EngineTestSuite) TestInsufficientAfterWarmUp() {
	// 60 bars pass the floor but only 34 survive the ADX warm-up
	bars := mocks.GenerateDaily("PETR4.SA", 60)

	frame, err := NewEngine(suite.params).Compute("PETR4.SA", bars)
	suite.Error(err)
	suite.Empty(frame.Rows)
	suite.True(errors.IsInsufficientDataError(err))
	suite.True(errors.IsNoResult(err))

	var insufficient *errors.InsufficientDataError
	suite.Require().True(errors.As(err, &insufficient))
	suite.Equal(50, insufficient.Required)
	suite.Equal(34, insufficient.Actual)
	suite.Equal("PETR4.SA", insufficient.Symbol)
}

func (suite *EngineTestSuite) TestEmptyInput() {
	_, err := NewEngine(suite.params).Compute("PETR4.SA", nil)
	suite.True(errors.HasCode(err, errors.ErrCodeDataUnavailable))
}

func (suite *EngineTestSuite) TestUnsortedInput() {
	bars := mocks.GenerateDaily("PETR4.SA", 100)
	bars[10], bars[11] = bars[11], bars[10]

	_, err := NewEngine(suite.params).Compute("PETR4.SA", bars)
	suite.True(errors.HasCode(err, errors.ErrCodeDataUnavailable))
}

func (suite *EngineTestSuite) TestInvalidParameters() {
	suite.params.SMAFast = 60

	_, err := NewEngine(suite.params).Compute("PETR4.SA", mocks.GenerateDaily("PETR4.SA", 100))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func (suite *EngineTestSuite) TestRisingSeriesTrendColumns() {
	bars := mocks.GenerateLinear("PETR4.SA", 120, 20, 0.2, 5_000_000)

	frame, err := NewEngine(suite.params).Compute("PETR4.SA", bars)
	suite.Require().NoError(err)

	last := frame.Rows[frame.Len()-1]
	suite.Greater(last.SMAFast, last.SMASlow)
	suite.Greater(last.MACD, last.MACDSignal)
	suite.Greater(last.MACDHist, 0.0)
	suite.Equal(100.0, last.RSI)
	suite.Greater(last.ADX.Unwrap(), suite.params.ADXMin)
}
