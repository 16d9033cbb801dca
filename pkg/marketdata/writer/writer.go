package writer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// Format is the file format of an export.
type Format string

const (
	FormatParquet Format = "parquet"
	FormatCSV     Format = "csv"
)

// MarketDataWriter defines the interface for writing market data to a destination.
type MarketDataWriter interface {
	// Initialize sets up the writer, potentially creating tables or files.
	Initialize() error
	// Write persists a single market data point.
	Write(data types.MarketData) error
	// Finalize completes the writing process (e.g., commits transactions, exports files).
	Finalize() (outputPath string, err error)
	// Close releases any resources held by the writer.
	Close() error
	// GetOutputPath returns the configured output file path.
	GetOutputPath() string
}

// FormatFromPath derives the export format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return FormatParquet, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidParameter, "unsupported export file %s: expected .parquet or .csv", path)
	}
}

// copyStatement builds the DuckDB COPY statement exporting table to path.
func copyStatement(table, path string, format Format) string {
	quoted := strings.ReplaceAll(path, "'", "''")

	if format == FormatCSV {
		return fmt.Sprintf(`COPY %s TO '%s' (FORMAT CSV, HEADER)`, table, quoted)
	}

	return fmt.Sprintf(`COPY %s TO '%s' (FORMAT PARQUET)`, table, quoted)
}
