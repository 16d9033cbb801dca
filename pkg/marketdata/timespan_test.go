package marketdata

import (
	"testing"

	"github.com/polygon-io/client-go/rest/models"
	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/argo-signal/pkg/marketdata/provider"
)

type TimespanTestSuite struct {
	suite.Suite
}

func TestTimespanSuite(t *testing.T) {
	suite.Run(t, new(TimespanTestSuite))
}

func (suite *TimespanTestSuite) TestInterval() {
	tests := []struct {
		timespan   Timespan
		multiplier int
		unit       models.Timespan
	}{
		{TimespanOneMinute, 1, models.Minute},
		{TimespanFiveMinutes, 5, models.Minute},
		{TimespanFifteenMinutes, 15, models.Minute},
		{TimespanThirtyMinutes, 30, models.Minute},
		{TimespanOneHour, 1, models.Hour},
		{TimespanFourHours, 4, models.Hour},
		{TimespanOneDay, 1, models.Day},
		{TimespanOneWeek, 1, models.Week},
		{TimespanOneMonth, 1, models.Month},
	}

	for _, tc := range tests {
		suite.Run(string(tc.timespan), func() {
			suite.True(tc.timespan.IsValid())
			suite.Equal(tc.multiplier, tc.timespan.Multiplier())
			suite.Equal(tc.unit, tc.timespan.Timespan())
		})
	}
}

func (suite *TimespanTestSuite) TestUnknownDefaultsToDaily() {
	unknown := Timespan("7x")
	suite.False(unknown.IsValid())
	suite.Equal(provider.DailyInterval, unknown.Interval())
	suite.Equal(1, unknown.Multiplier())
	suite.Equal(models.Day, unknown.Timespan())
}
