package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// Parameters is the immutable configuration of one indicator and signal
// computation. It is passed by value into every engine and synthesizer call.
type Parameters struct {
	// RSIBuy is the oversold threshold: RSI below it is bullish.
	RSIBuy float64 `yaml:"rsi_buy" json:"rsi_buy" jsonschema:"title=RSI buy threshold,minimum=0,maximum=100,default=35" validate:"gte=0,lte=100,ltfield=RSISell"`
	// RSISell is the overbought threshold: RSI above it is bearish.
	RSISell float64 `yaml:"rsi_sell" json:"rsi_sell" jsonschema:"title=RSI sell threshold,minimum=0,maximum=100,default=70" validate:"gte=0,lte=100"`
	// SMAFast is the window of the fast simple moving average.
	SMAFast int `yaml:"sma_fast" json:"sma_fast" jsonschema:"title=Fast SMA window,minimum=1,default=20" validate:"min=1,ltfield=SMASlow"`
	// SMASlow is the window of the slow simple moving average.
	SMASlow int `yaml:"sma_slow" json:"sma_slow" jsonschema:"title=Slow SMA window,minimum=1,default=50" validate:"min=1"`
	// VolumeMin is the minimum relative volume (volume over its 20 bar mean).
	VolumeMin float64 `yaml:"volume_min" json:"volume_min" jsonschema:"title=Minimum relative volume,minimum=0,default=1.5" validate:"gte=0"`
	// ADXMin is the minimum ADX for a trend to count as strong.
	ADXMin float64 `yaml:"adx_min" json:"adx_min" jsonschema:"title=Minimum ADX,minimum=0,maximum=100,default=25" validate:"gte=0,lte=100"`
	// MinPeriods is the minimum-period floor checked before and after indicator computation.
	MinPeriods int `yaml:"min_periods" json:"min_periods" jsonschema:"title=Minimum periods,minimum=1,default=50" validate:"min=1"`
	// UseADX toggles the ADX column. When false, ADX criteria are treated as satisfied.
	UseADX bool `yaml:"use_adx" json:"use_adx" jsonschema:"title=Use ADX,default=true"`

	RSIPeriod    int     `yaml:"rsi_period" json:"rsi_period" jsonschema:"title=RSI period,minimum=1,default=14" validate:"min=1"`
	MACDFast     int     `yaml:"macd_fast" json:"macd_fast" jsonschema:"title=MACD fast span,minimum=1,default=12" validate:"min=1,ltfield=MACDSlow"`
	MACDSlow     int     `yaml:"macd_slow" json:"macd_slow" jsonschema:"title=MACD slow span,minimum=1,default=26" validate:"min=1"`
	MACDSignal   int     `yaml:"macd_signal" json:"macd_signal" jsonschema:"title=MACD signal span,minimum=1,default=9" validate:"min=1"`
	BBPeriod     int     `yaml:"bb_period" json:"bb_period" jsonschema:"title=Bollinger window,minimum=1,default=20" validate:"min=1"`
	BBStdDev     float64 `yaml:"bb_std_dev" json:"bb_std_dev" jsonschema:"title=Bollinger width in standard deviations,exclusiveMinimum=0,default=2" validate:"gt=0"`
	VolumePeriod int     `yaml:"volume_period" json:"volume_period" jsonschema:"title=Volume mean window,minimum=1,default=20" validate:"min=1"`
	ADXPeriod    int     `yaml:"adx_period" json:"adx_period" jsonschema:"title=ADX period,minimum=1,default=14" validate:"min=1"`
}

// DefaultParameters returns the stock configuration of the trade bot.
func DefaultParameters() Parameters {
	return Parameters{
		RSIBuy:       35,
		RSISell:      70,
		SMAFast:      20,
		SMASlow:      50,
		VolumeMin:    1.5,
		ADXMin:       25,
		MinPeriods:   50,
		UseADX:       true,
		RSIPeriod:    14,
		MACDFast:     12,
		MACDSlow:     26,
		MACDSignal:   9,
		BBPeriod:     20,
		BBStdDev:     2,
		VolumePeriod: 20,
		ADXPeriod:    14,
	}
}

// Validate checks ranges and the ordering between paired fields.
func (p Parameters) Validate() error {
	validate := validator.New()
	if err := validate.Struct(p); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameter, "invalid signal parameters", err)
	}

	return nil
}
