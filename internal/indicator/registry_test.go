package indicator

import (
	"testing"

	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type BatteryTestSuite struct {
	suite.Suite
}

func TestBatterySuite(t *testing.T) {
	suite.Run(t, new(BatteryTestSuite))
}

func (suite *BatteryTestSuite) TestRegisterKeepsOrder() {
	battery := NewBattery()
	suite.NoError(battery.RegisterIndicator(NewRSI(14)))
	suite.NoError(battery.RegisterIndicator(NewMA(types.IndicatorTypeSMAFast, 20)))
	suite.NoError(battery.RegisterIndicator(NewADX(14)))

	suite.Equal([]types.IndicatorType{
		types.IndicatorTypeRSI,
		types.IndicatorTypeSMAFast,
		types.IndicatorTypeADX,
	}, battery.ListIndicators())
}

func (suite *BatteryTestSuite) TestRegisterDuplicate() {
	battery := NewBattery()
	suite.NoError(battery.RegisterIndicator(NewMA(types.IndicatorTypeSMAFast, 20)))

	err := battery.RegisterIndicator(NewMA(types.IndicatorTypeSMAFast, 10))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
	suite.Contains(err.Error(), "already registered")
	suite.Len(battery.ListIndicators(), 1)
}

func (suite *BatteryTestSuite) TestUpdateFeedsEveryIndicator() {
	battery := NewBattery()
	suite.NoError(battery.RegisterIndicator(NewMA(types.IndicatorTypeSMAFast, 20)))
	suite.NoError(battery.RegisterIndicator(NewMA(types.IndicatorTypeSMASlow, 50)))
	suite.NoError(battery.RegisterIndicator(NewBollingerBands(20, 2)))

	var row types.IndicatorRow
	battery.Update(types.MarketData{Close: 12}, &row)

	suite.Equal(12.0, row.SMAFast)
	suite.Equal(12.0, row.SMASlow)
	suite.Equal(12.0, row.BBUpper)
	suite.Equal(12.0, row.BBLower)
}
