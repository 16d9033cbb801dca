// Package strategy turns an indicator frame into graded signals.
//
// Two independent rule stages are evaluated per row: a graded vote over
// seven predicates per direction and a strict overlay. Merge combines them
// with a fixed precedence.
package strategy

import (
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// majority is the number of predicates out of seven needed for a weak signal.
const majority = 5

// BullishVotes evaluates the seven bullish predicates of a row with strict
// comparisons. The ADX vote is true when ADX is disabled.
func BullishVotes(row types.IndicatorRow, params types.Parameters) []bool {
	return []bool{
		row.RSI < params.RSIBuy,
		row.MACD > row.MACDSignal,
		row.MACDHist > 0,
		row.SMAFast > row.SMASlow,
		row.Close < row.BBLower,
		row.VolumeRel > params.VolumeMin,
		adxAbove(row, params),
	}
}

// BearishVotes evaluates the seven bearish predicates of a row.
func BearishVotes(row types.IndicatorRow, params types.Parameters) []bool {
	return []bool{
		row.RSI > params.RSISell,
		row.MACD < row.MACDSignal,
		row.MACDHist < 0,
		row.SMAFast < row.SMASlow,
		row.Close > row.BBUpper,
		row.VolumeRel > params.VolumeMin,
		adxAbove(row, params),
	}
}

// Grade is the graded voting stage.
//
// All seven bullish votes give a strong buy, five or more a weak buy. The
// bearish tally is applied afterwards and replaces any bullish outcome, so a
// row meeting both majorities grades as a sell.
func Grade(row types.IndicatorRow, params types.Parameters) types.SignalGrade {
	grade := types.SignalHold

	switch bullish := count(BullishVotes(row, params)); {
	case bullish == 7:
		grade = types.SignalStrongBuy
	case bullish >= majority:
		grade = types.SignalWeakBuy
	}

	switch bearish := count(BearishVotes(row, params)); {
	case bearish == 7:
		grade = types.SignalStrongSell
	case bearish >= majority:
		grade = types.SignalWeakSell
	}

	return grade
}

func adxAbove(row types.IndicatorRow, params types.Parameters) bool {
	adx, ok := row.Value(types.IndicatorTypeADX)
	if !ok {
		return true
	}

	return adx > params.ADXMin
}

func count(votes []bool) int {
	n := 0
	for _, v := range votes {
		if v {
			n++
		}
	}

	return n
}
