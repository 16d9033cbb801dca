package marketdata

import (
	"github.com/polygon-io/client-go/rest/models"

	"github.com/rxtech-lab/argo-signal/pkg/marketdata/provider"
)

// Timespan is the short interval notation accepted on the command line and in
// download configs, e.g. "1d" or "15m".
type Timespan string

const (
	TimespanOneMinute      Timespan = "1m"
	TimespanFiveMinutes    Timespan = "5m"
	TimespanFifteenMinutes Timespan = "15m"
	TimespanThirtyMinutes  Timespan = "30m"
	TimespanOneHour        Timespan = "1h"
	TimespanFourHours      Timespan = "4h"
	TimespanOneDay         Timespan = "1d"
	TimespanOneWeek        Timespan = "1w"
	TimespanOneMonth       Timespan = "1M"
)

var timespans = map[Timespan]provider.Interval{
	TimespanOneMinute:      {Multiplier: 1, Timespan: models.Minute},
	TimespanFiveMinutes:    {Multiplier: 5, Timespan: models.Minute},
	TimespanFifteenMinutes: {Multiplier: 15, Timespan: models.Minute},
	TimespanThirtyMinutes:  {Multiplier: 30, Timespan: models.Minute},
	TimespanOneHour:        {Multiplier: 1, Timespan: models.Hour},
	TimespanFourHours:      {Multiplier: 4, Timespan: models.Hour},
	TimespanOneDay:         {Multiplier: 1, Timespan: models.Day},
	TimespanOneWeek:        {Multiplier: 1, Timespan: models.Week},
	TimespanOneMonth:       {Multiplier: 1, Timespan: models.Month},
}

// IsValid reports whether t is a known timespan.
func (t Timespan) IsValid() bool {
	_, ok := timespans[t]
	return ok
}

// Interval returns the provider interval of t. Unknown timespans are daily.
func (t Timespan) Interval() provider.Interval {
	if interval, ok := timespans[t]; ok {
		return interval
	}

	return provider.DailyInterval
}

func (t Timespan) Multiplier() int {
	return t.Interval().Multiplier
}

func (t Timespan) Timespan() models.Timespan {
	return t.Interval().Timespan
}
