package types

import "fmt"

// SignalGrade is the discrete trading signal attached to each frame row.
type SignalGrade int

const (
	// SignalStrongSell means every bearish criterion holds.
	SignalStrongSell SignalGrade = -2
	// SignalWeakSell means most bearish criteria hold.
	SignalWeakSell SignalGrade = -1
	// SignalHold means no actionable setup.
	SignalHold SignalGrade = 0
	// SignalWeakBuy means most bullish criteria hold.
	SignalWeakBuy SignalGrade = 1
	// SignalStrongBuy means every bullish criterion holds.
	SignalStrongBuy SignalGrade = 2
)

// String returns a stable english name for the grade.
func (g SignalGrade) String() string {
	switch g {
	case SignalStrongSell:
		return "strong_sell"
	case SignalWeakSell:
		return "weak_sell"
	case SignalHold:
		return "hold"
	case SignalWeakBuy:
		return "weak_buy"
	case SignalStrongBuy:
		return "strong_buy"
	default:
		return fmt.Sprintf("signal(%d)", int(g))
	}
}

// IsValid reports whether the grade is inside [-2, 2].
func (g SignalGrade) IsValid() bool {
	return g >= SignalStrongSell && g <= SignalStrongBuy
}

// IsBuy reports whether the grade recommends buying.
func (g SignalGrade) IsBuy() bool {
	return g > SignalHold && g.IsValid()
}

// IsSell reports whether the grade recommends selling.
func (g SignalGrade) IsSell() bool {
	return g < SignalHold && g.IsValid()
}

// Strength returns the absolute grade: 2 strong, 1 weak, 0 neutral.
func (g SignalGrade) Strength() int {
	if g < 0 {
		return int(-g)
	}

	return int(g)
}
