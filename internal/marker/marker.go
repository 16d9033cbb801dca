// Package marker places buy and sell marks on signal charts and keeps a
// journal of the alerts the monitor sent.
package marker

import (
	"time"

	"github.com/rxtech-lab/argo-signal/internal/types"
)

type MarkShape string

const (
	MarkShapeTriangleUp   MarkShape = "triangle-up"
	MarkShapeTriangleDown MarkShape = "triangle-down"
)

type MarkColor string

const (
	MarkColorGreen MarkColor = "green"
	MarkColorRed   MarkColor = "red"
)

// Mark is one point of interest on a price chart.
type Mark struct {
	Symbol string            `json:"symbol"`
	Time   time.Time         `json:"time"`
	Price  float64           `json:"price"`
	Signal types.SignalGrade `json:"signal"`
	Shape  MarkShape         `json:"shape"`
	Color  MarkColor         `json:"color"`
	Title  string            `json:"title"`
	Reason string            `json:"reason,omitempty"`
}

// Marker records marks and returns them per instrument.
type Marker interface {
	// Mark records row with the reason it was marked.
	Mark(symbol string, row types.SignalRow, reason string) error
	// GetMarks returns the marks of symbol in time order.
	GetMarks(symbol string) ([]Mark, error)
}

// New builds the mark of row. ok is false for a hold row.
func New(symbol string, row types.SignalRow, reason string) (Mark, bool) {
	mark := Mark{
		Symbol: symbol,
		Time:   row.Time,
		Price:  row.Close,
		Signal: row.Signal,
		Reason: reason,
	}

	switch {
	case row.Signal.IsBuy():
		mark.Shape = MarkShapeTriangleUp
		mark.Color = MarkColorGreen
		mark.Title = "Compra"
	case row.Signal.IsSell():
		mark.Shape = MarkShapeTriangleDown
		mark.Color = MarkColorRed
		mark.Title = "Venda"
	default:
		return Mark{}, false
	}

	return mark, true
}

// FromFrame marks every buy and sell row of a signal frame.
func FromFrame(symbol string, rows []types.SignalRow) []Mark {
	marks := []Mark{}

	for _, row := range rows {
		if mark, ok := New(symbol, row, ""); ok {
			marks = append(marks, mark)
		}
	}

	return marks
}
