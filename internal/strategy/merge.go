package strategy

import (
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// Merge returns the overlay outcome when it fired and the graded outcome otherwise.
func Merge(overlay, graded types.SignalGrade) types.SignalGrade {
	if overlay != types.SignalHold {
		return overlay
	}

	return graded
}
