package types

import (
	"github.com/moznion/go-optional"
)

// IndicatorRow is one bar of the indicator frame with its derived columns.
type IndicatorRow struct {
	MarketData

	SMAFast    float64
	SMASlow    float64
	RSI        float64
	MACD       float64
	MACDSignal float64
	MACDHist   float64
	BBUpper    float64
	BBLower    float64
	VolumeMA20 float64
	VolumeRel  float64
	// ADX is None only when ADX is disabled in the parameters.
	ADX optional.Option[float64]
}

// Value returns the named derived column. The second result is false for
// an unknown column or a disabled ADX.
func (r IndicatorRow) Value(column IndicatorType) (float64, bool) {
	switch column {
	case IndicatorTypeSMAFast:
		return r.SMAFast, true
	case IndicatorTypeSMASlow:
		return r.SMASlow, true
	case IndicatorTypeRSI:
		return r.RSI, true
	case IndicatorTypeMACD:
		return r.MACD, true
	case IndicatorTypeMACDSignal:
		return r.MACDSignal, true
	case IndicatorTypeMACDHist:
		return r.MACDHist, true
	case IndicatorTypeBBUpper:
		return r.BBUpper, true
	case IndicatorTypeBBLower:
		return r.BBLower, true
	case IndicatorTypeVolumeMA:
		return r.VolumeMA20, true
	case IndicatorTypeVolumeRel:
		return r.VolumeRel, true
	case IndicatorTypeADX:
		if r.ADX.IsNone() {
			return 0, false
		}

		return r.ADX.Unwrap(), true
	default:
		return 0, false
	}
}

// Frame is the indicator frame of one instrument. Rows are index-aligned
// with the normalized series after warm-up truncation.
type Frame struct {
	Symbol string
	Rows   []IndicatorRow
}

// Len returns the number of retained rows.
func (f Frame) Len() int {
	return len(f.Rows)
}

// SignalRow is an indicator row with the outcome of both rule stages and
// the merged signal.
type SignalRow struct {
	IndicatorRow

	// Graded is the outcome of the graded voting stage.
	Graded SignalGrade
	// Overlay is the outcome of the strict overlay stage, in {-1, 0, 1}.
	Overlay SignalGrade
	// Signal is the final merged grade.
	Signal SignalGrade
}
