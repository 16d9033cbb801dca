package strategy

import (
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// Synthesize evaluates both stages on every row of frame and merges them.
// The frame is not modified.
func Synthesize(frame types.Frame, params types.Parameters) ([]types.SignalRow, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if frame.Len() == 0 {
		return nil, errors.Newf(errors.ErrCodeDataUnavailable, "empty indicator frame for %s", frame.Symbol)
	}

	rows := make([]types.SignalRow, frame.Len())
	for i, row := range frame.Rows {
		graded := Grade(row, params)
		overlay := Overlay(row, params)

		rows[i] = types.SignalRow{
			IndicatorRow: row,
			Graded:       graded,
			Overlay:      overlay,
			Signal:       Merge(overlay, graded),
		}
	}

	return rows, nil
}

// Latest returns the last row of a signal frame.
func Latest(rows []types.SignalRow) (types.SignalRow, bool) {
	if len(rows) == 0 {
		return types.SignalRow{}, false
	}

	return rows[len(rows)-1], true
}
