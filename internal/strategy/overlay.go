package strategy

import (
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// Overlay is the strict overlay stage. It returns a weak buy or a weak sell
// only when every condition of that direction holds, and hold otherwise.
// Band touches count: the close may equal the band. When both directions
// fire the sell wins.
func Overlay(row types.IndicatorRow, params types.Parameters) types.SignalGrade {
	confirmed := adxAbove(row, params) && row.VolumeRel > params.VolumeMin

	buy := confirmed &&
		row.SMAFast > row.SMASlow &&
		row.RSI < params.RSIBuy &&
		row.Close <= row.BBLower

	sell := confirmed &&
		row.SMAFast < row.SMASlow &&
		row.RSI > params.RSISell &&
		row.Close >= row.BBUpper

	switch {
	case sell:
		return types.SignalWeakSell
	case buy:
		return types.SignalWeakBuy
	default:
		return types.SignalHold
	}
}
