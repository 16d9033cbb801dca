package api

import (
	"math"
	"time"

	"github.com/rxtech-lab/argo-signal/internal/analysis"
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// marketClosed replaces the action while the exchange is closed.
const marketClosed = "MERCADO FECHADO"

// Stock is the API view of a recommendation.
type Stock struct {
	Symbol         string   `json:"symbol"`
	Price          float64  `json:"price"`
	RSI            float64  `json:"rsi"`
	ADX            *float64 `json:"adx"`
	VolumeRel      float64  `json:"volume_rel"`
	Signal         int      `json:"signal"`
	Intensity      string   `json:"intensity"`
	Recommendation string   `json:"recommendation"`
	Confirmed      bool     `json:"confirmed"`
	Text           string   `json:"text"`
	Date           string   `json:"date"`
	MarketStatus   string   `json:"market_status"`
}

func newStock(rec analysis.Recommendation, marketStatus string, open bool) Stock {
	var adx *float64
	if rec.ADX.IsSome() {
		value := rec.ADX.Unwrap()
		adx = &value
	}

	action := rec.Action()
	if !open {
		action = marketClosed
	}

	return Stock{
		Symbol:         rec.Symbol,
		Price:          rec.Price.InexactFloat64(),
		RSI:            rec.RSI,
		ADX:            adx,
		VolumeRel:      rec.VolumeRel,
		Signal:         int(rec.Signal),
		Intensity:      string(rec.Intensity),
		Recommendation: action,
		Confirmed:      rec.Confirmed,
		Text:           rec.Text(),
		Date:           rec.Time.Format(time.DateTime),
		MarketStatus:   marketStatus,
	}
}

// History is the closing price chart of the last month.
type History struct {
	Dates  []string  `json:"dates"`
	Prices []float64 `json:"prices"`
	Min    float64   `json:"min"`
	Max    float64   `json:"max"`
	// Change is the percent change from the first to the last close.
	Change float64 `json:"change"`
}

// newHistory builds the chart from the rows of the month before the last
// row. ok is false when rows is empty.
func newHistory(rows []types.SignalRow) (History, bool) {
	if len(rows) == 0 {
		return History{}, false
	}

	from := rows[len(rows)-1].Time.AddDate(0, -1, 0)

	history := History{
		Dates:  []string{},
		Prices: []float64{},
		Min:    math.Inf(1),
		Max:    math.Inf(-1),
	}

	for _, row := range rows {
		if row.Time.Before(from) {
			continue
		}

		price := round2(row.Close)
		history.Dates = append(history.Dates, row.Time.Format("02/01/2006"))
		history.Prices = append(history.Prices, price)
		history.Min = math.Min(history.Min, price)
		history.Max = math.Max(history.Max, price)
	}

	first := history.Prices[0]
	last := history.Prices[len(history.Prices)-1]

	if first != 0 {
		history.Change = round2((last - first) / first * 100)
	}

	return history, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

type errorResponse struct {
	Error string `json:"error"`
}
