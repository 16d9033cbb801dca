// Package series canonicalizes raw OHLCV histories before indicator computation.
package series

import (
	"sort"

	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// DefaultMinPeriods is the minimum-period floor used when none is configured.
const DefaultMinPeriods = 50

// Normalize returns a copy of bars sorted ascending by time with duplicate
// timestamps removed (the first occurrence wins). The input slice is never
// modified.
//
// It fails with ErrCodeDataUnavailable for an empty series, with
// ErrCodeMalformedBar when a bar has a non-finite value or negative volume,
// and with an InsufficientDataError when fewer than minPeriods bars remain.
// A non-positive minPeriods selects DefaultMinPeriods.
func Normalize(symbol string, bars []types.MarketData, minPeriods int) ([]types.MarketData, error) {
	if minPeriods <= 0 {
		minPeriods = DefaultMinPeriods
	}

	if len(bars) == 0 {
		return nil, errors.Newf(errors.ErrCodeDataUnavailable, "no bars available for %s", symbol)
	}

	sorted := make([]types.MarketData, len(bars))
	copy(sorted, bars)

	for i := range sorted {
		if !sorted[i].IsWellFormed() {
			return nil, errors.Newf(errors.ErrCodeMalformedBar, "malformed bar for %s at %s", symbol, sorted[i].Time.Format("2006-01-02"))
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	out := sorted[:1]
	for _, bar := range sorted[1:] {
		if bar.Time.Equal(out[len(out)-1].Time) {
			continue
		}

		out = append(out, bar)
	}

	if err := CheckHistory(symbol, len(out), minPeriods); err != nil {
		return nil, err
	}

	return out, nil
}

// CheckHistory fails with an InsufficientDataError when count is below minPeriods.
func CheckHistory(symbol string, count int, minPeriods int) error {
	if count < minPeriods {
		return errors.NewInsufficientDataErrorf(minPeriods, count, symbol,
			"insufficient history for %s: required %d periods, got %d", symbol, minPeriods, count)
	}

	return nil
}
