package analysis

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"

	"github.com/rxtech-lab/argo-signal/internal/notification"
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// Intensity is the strength word of a recommendation.
type Intensity string

const (
	IntensityStrong   Intensity = "FORTE"
	IntensityModerate Intensity = "MODERADO"
	IntensityNeutral  Intensity = "NEUTRO"
)

// IntensityOf maps |signal| 2, 1 and 0 to FORTE, MODERADO and NEUTRO.
func IntensityOf(signal types.SignalGrade) Intensity {
	switch signal.Strength() {
	case 2:
		return IntensityStrong
	case 1:
		return IntensityModerate
	default:
		return IntensityNeutral
	}
}

// rsiOversold is the RSI floor a sell signal must stay above to be confirmed.
const rsiOversold = 30

// Recommendation is the actionable reading of the last row of a signal frame.
type Recommendation struct {
	ID        string                   `json:"id"`
	Symbol    string                   `json:"symbol"`
	Time      time.Time                `json:"time"`
	Price     decimal.Decimal          `json:"price"`
	Signal    types.SignalGrade        `json:"signal"`
	Intensity Intensity                `json:"intensity"`
	RSI       float64                  `json:"rsi"`
	VolumeRel float64                  `json:"volume_rel"`
	ADX       optional.Option[float64] `json:"adx"`
	// Confirmed is false when a buy or sell is not backed by momentum,
	// relative volume and trend strength on the same bar.
	Confirmed bool `json:"confirmed"`
}

// NewRecommendation reads row, the last row of a signal frame.
func NewRecommendation(symbol string, row types.SignalRow, params types.Parameters) Recommendation {
	return Recommendation{
		ID:        uuid.New().String(),
		Symbol:    symbol,
		Time:      row.Time,
		Price:     decimal.NewFromFloat(row.Close).Round(2),
		Signal:    row.Signal,
		Intensity: IntensityOf(row.Signal),
		RSI:       row.RSI,
		VolumeRel: row.VolumeRel,
		ADX:       row.ADX,
		Confirmed: confirm(row, params),
	}
}

func confirm(row types.SignalRow, params types.Parameters) bool {
	if row.Signal == types.SignalHold {
		return true
	}

	adx := row.ADX.IsNone() || row.ADX.Unwrap() > params.ADXMin
	volume := row.VolumeRel > params.VolumeMin

	if row.Signal.IsBuy() {
		return row.RSI < params.RSISell && volume && adx
	}

	return row.RSI > rsiOversold && volume && adx
}

// Action is COMPRA, VENDA or MANTER.
func (r Recommendation) Action() string {
	switch {
	case r.Signal.IsBuy():
		return "COMPRA"
	case r.Signal.IsSell():
		return "VENDA"
	default:
		return "MANTER"
	}
}

// Text renders the recommendation, e.g.
//
//	COMPRA FORTE PETR4.SA a R$38.12 (RSI: 28.1, Vol: 1.8x, ADX: 31.0)
//	MANTER PETR4.SA - Neutro (R$38.12, RSI: 52.3)
//
// A disabled ADX prints as 0.0.
func (r Recommendation) Text() string {
	price := r.Price.StringFixed(2)

	if r.Signal == types.SignalHold {
		return fmt.Sprintf("MANTER %s - Neutro (R$%s, RSI: %.1f)", r.Symbol, price, r.RSI)
	}

	return fmt.Sprintf("%s %s %s a R$%s (RSI: %.1f, Vol: %.1fx, ADX: %.1f)",
		r.Action(), r.Intensity, r.Symbol, price, r.RSI, r.VolumeRel, r.ADX.TakeOr(0))
}

func (r Recommendation) String() string {
	return r.Text()
}

// Alert converts the recommendation into a notification.
func (r Recommendation) Alert() notification.Alert {
	return notification.Alert{
		ID:      r.ID,
		Symbol:  r.Symbol,
		Subject: notification.Subject(r.Symbol),
		Message: r.Text(),
		Signal:  r.Signal,
		Price:   r.Price.InexactFloat64(),
		Time:    r.Time,
	}
}
