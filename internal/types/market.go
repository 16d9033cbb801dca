package types

import (
	"math"
	"time"
)

// MarketData is one daily bar of an instrument's OHLCV history.
type MarketData struct {
	Id     string    `yaml:"id" json:"id" csv:"id"`
	Symbol string    `yaml:"symbol" json:"symbol" csv:"symbol"`
	Time   time.Time `yaml:"time" json:"time" csv:"time"`
	Open   float64   `yaml:"open" json:"open" csv:"open"`
	High   float64   `yaml:"high" json:"high" csv:"high"`
	Low    float64   `yaml:"low" json:"low" csv:"low"`
	Close  float64   `yaml:"close" json:"close" csv:"close"`
	Volume float64   `yaml:"volume" json:"volume" csv:"volume"`
}

// IsWellFormed reports whether every price is finite and the volume is a
// finite non-negative number. The zero time is rejected as well.
func (m MarketData) IsWellFormed() bool {
	if m.Time.IsZero() {
		return false
	}

	for _, v := range [...]float64{m.Open, m.High, m.Low, m.Close, m.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return m.Volume >= 0
}
