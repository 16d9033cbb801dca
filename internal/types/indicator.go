package types

// IndicatorType names a derived column of the indicator frame.
// The values double as column names in exported frames.
type IndicatorType string

const (
	IndicatorTypeSMAFast    IndicatorType = "trend_sma_fast"
	IndicatorTypeSMASlow    IndicatorType = "trend_sma_slow"
	IndicatorTypeRSI        IndicatorType = "momentum_rsi"
	IndicatorTypeMACD       IndicatorType = "trend_macd"
	IndicatorTypeMACDSignal IndicatorType = "trend_macd_signal"
	IndicatorTypeMACDHist   IndicatorType = "trend_macd_hist"
	IndicatorTypeBBUpper    IndicatorType = "trend_bb_upper"
	IndicatorTypeBBLower    IndicatorType = "trend_bb_lower"
	IndicatorTypeVolumeMA   IndicatorType = "volume_ma20"
	IndicatorTypeVolumeRel  IndicatorType = "volume_rel"
	IndicatorTypeADX        IndicatorType = "trend_adx"

	// ColumnSignal is the name of the final merged signal column.
	ColumnSignal = "Sinal"
)

// IndicatorColumns lists the derived columns in output order.
var IndicatorColumns = []IndicatorType{
	IndicatorTypeSMAFast,
	IndicatorTypeSMASlow,
	IndicatorTypeRSI,
	IndicatorTypeMACD,
	IndicatorTypeMACDSignal,
	IndicatorTypeMACDHist,
	IndicatorTypeBBUpper,
	IndicatorTypeBBLower,
	IndicatorTypeVolumeMA,
	IndicatorTypeVolumeRel,
	IndicatorTypeADX,
}
