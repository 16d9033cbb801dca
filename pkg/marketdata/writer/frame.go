package writer

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"

	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// FrameColumns is the column order of an exported signal frame after the
// time index.
var FrameColumns = append(append([]string{"Open", "High", "Low", "Close", "Volume"},
	indicatorColumnNames()...), types.ColumnSignal)

// FrameWriter exports signal frames for chart renderers. Each call writes one
// file per symbol into the output directory; nothing is read back.
type FrameWriter struct {
	outputDir string
	format    Format
	logger    *logger.Logger
}

// NewFrameWriter creates a FrameWriter.
func NewFrameWriter(outputDir string, format Format, log *logger.Logger) (*FrameWriter, error) {
	if format != FormatParquet && format != FormatCSV {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "unsupported frame format: %s", format)
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &FrameWriter{
		outputDir: outputDir,
		format:    format,
		logger:    log,
	}, nil
}

// PathFor returns the file written for symbol.
func (w *FrameWriter) PathFor(symbol string) string {
	name := strings.NewReplacer("/", "_", "\\", "_", " ", "_").Replace(symbol)

	return filepath.Join(w.outputDir, fmt.Sprintf("%s_signals.%s", name, w.format))
}

// WriteFrame writes rows to the symbol's file and returns its path.
// A disabled ADX is written as NULL.
func (w *FrameWriter) WriteFrame(symbol string, rows []types.SignalRow) (outputPath string, err error) {
	if len(rows) == 0 {
		return "", errors.Newf(errors.ErrCodeExportFailed, "no rows to export for %s", symbol)
	}

	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeExportFailed, "failed to create output directory", err)
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeExportFailed, "failed to open DuckDB connection", err)
	}
	defer db.Close()

	if _, err := db.Exec(createFrameTable()); err != nil {
		return "", errors.Wrap(errors.ErrCodeExportFailed, "failed to create frame table", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeExportFailed, "failed to begin transaction", err)
	}

	stmt, err := tx.Prepare(insertFrameRow())
	if err != nil {
		tx.Rollback()

		return "", errors.Wrap(errors.ErrCodeExportFailed, "failed to prepare statement", err)
	}

	for _, row := range rows {
		if _, err := stmt.Exec(frameValues(row)...); err != nil {
			stmt.Close()
			tx.Rollback()

			return "", errors.Wrap(errors.ErrCodeExportFailed, "failed to insert frame row", err)
		}
	}

	stmt.Close()

	if err := tx.Commit(); err != nil {
		return "", errors.Wrap(errors.ErrCodeExportFailed, "failed to commit frame rows", err)
	}

	outputPath = w.PathFor(symbol)
	if _, err := db.Exec(copyStatement("(SELECT * FROM signal_frame ORDER BY time)", outputPath, w.format)); err != nil {
		return "", errors.Wrap(errors.ErrCodeExportFailed, fmt.Sprintf("failed to export frame to %s", outputPath), err)
	}

	w.logger.Debug("Exported signal frame",
		zap.String("symbol", symbol),
		zap.String("path", outputPath),
		zap.Int("rows", len(rows)),
	)

	return outputPath, nil
}

func indicatorColumnNames() []string {
	names := make([]string, 0, len(types.IndicatorColumns))
	for _, column := range types.IndicatorColumns {
		names = append(names, string(column))
	}

	return names
}

func createFrameTable() string {
	columns := []string{"time TIMESTAMP", "symbol TEXT"}
	for _, name := range FrameColumns {
		kind := "DOUBLE"
		if name == types.ColumnSignal {
			kind = "INTEGER"
		}

		columns = append(columns, fmt.Sprintf("%q %s", name, kind))
	}

	return fmt.Sprintf("CREATE TABLE signal_frame (%s)", strings.Join(columns, ", "))
}

func insertFrameRow() string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(FrameColumns)+2), ", ")

	return fmt.Sprintf("INSERT INTO signal_frame VALUES (%s)", placeholders)
}

func frameValues(row types.SignalRow) []any {
	values := []any{row.Time, row.Symbol, row.Open, row.High, row.Low, row.Close, row.Volume}

	for _, column := range types.IndicatorColumns {
		value, ok := row.Value(column)
		if !ok {
			values = append(values, nil)
			continue
		}

		values = append(values, value)
	}

	return append(values, int(row.Signal))
}
