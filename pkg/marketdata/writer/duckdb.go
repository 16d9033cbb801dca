package writer

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"

	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// DuckDBWriter buffers bars in an in-memory DuckDB table and exports them to
// a parquet or csv file on Finalize. It backs the download cache read by the
// file provider.
type DuckDBWriter struct {
	db         *sql.DB
	tx         *sql.Tx
	stmt       *sql.Stmt
	outputPath string
	logger     *logger.Logger
}

// NewDuckDBWriter creates a new DuckDBWriter exporting to outputPath.
// The extension of outputPath selects the format.
func NewDuckDBWriter(outputPath string, log *logger.Logger) MarketDataWriter {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &DuckDBWriter{
		outputPath: outputPath,
		logger:     log,
	}
}

// Initialize opens the database, creates the table, begins a transaction
// and prepares the insert statement.
func (w *DuckDBWriter) Initialize() (err error) {
	if _, err := FormatFromPath(w.outputPath); err != nil {
		return err
	}

	w.db, err = sql.Open("duckdb", "")
	if err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to open DuckDB connection", err)
	}

	_, err = w.db.Exec(`
		CREATE TABLE IF NOT EXISTS market_data (
			id TEXT,
			time TIMESTAMP,
			symbol TEXT,
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE,
			volume DOUBLE
		)
	`)
	if err != nil {
		w.db.Close()
		w.db = nil

		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to create table", err)
	}

	w.tx, err = w.db.Begin()
	if err != nil {
		w.db.Close()
		w.db = nil

		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to begin transaction", err)
	}

	w.stmt, err = w.tx.Prepare(`
		INSERT INTO market_data (id, time, symbol, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		w.tx.Rollback()
		w.db.Close()
		w.tx = nil
		w.db = nil

		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to prepare statement", err)
	}

	return nil
}

// Write inserts one bar. Bars without an id get a fresh UUID.
func (w *DuckDBWriter) Write(data types.MarketData) error {
	if w.stmt == nil {
		return errors.New(errors.ErrCodeMarketDataWriteFailed, "writer not initialized or statement is nil")
	}

	id := data.Id
	if id == "" {
		id = uuid.New().String()
	}

	_, err := w.stmt.Exec(
		id,
		data.Time,
		data.Symbol,
		data.Open,
		data.High,
		data.Low,
		data.Close,
		data.Volume,
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to insert data", err)
	}

	return nil
}

// Finalize commits the transaction and exports the table.
func (w *DuckDBWriter) Finalize() (outputPath string, err error) {
	if w.tx == nil {
		return "", errors.New(errors.ErrCodeMarketDataWriteFailed, "writer not initialized or transaction is nil")
	}

	if err = w.tx.Commit(); err != nil {
		w.tx.Rollback()
		w.tx = nil

		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to commit transaction", err)
	}

	w.tx = nil

	format, err := FormatFromPath(w.outputPath)
	if err != nil {
		return "", err
	}

	if _, err = w.db.Exec(copyStatement("(SELECT * FROM market_data ORDER BY symbol, time)", w.outputPath, format)); err != nil {
		return "", errors.Wrap(errors.ErrCodeExportFailed, fmt.Sprintf("failed to export to %s", format), err)
	}

	w.logger.Info("Exported market data", zap.String("path", w.outputPath), zap.String("format", string(format)))

	return w.outputPath, nil
}

// GetOutputPath returns the configured output file path.
func (w *DuckDBWriter) GetOutputPath() string {
	return w.outputPath
}

// Close closes the statement and the connection, rolling back an
// unfinished transaction.
func (w *DuckDBWriter) Close() error {
	var closeErrors []string

	if w.stmt != nil {
		if err := w.stmt.Close(); err != nil {
			closeErrors = append(closeErrors, fmt.Sprintf("failed to close statement: %v", err))
		}

		w.stmt = nil
	}

	if w.tx != nil {
		if err := w.tx.Rollback(); err != nil {
			w.logger.Warn("Failed to rollback transaction during close", zap.Error(err))
		}

		w.tx = nil
	}

	if w.db != nil {
		if err := w.db.Close(); err != nil {
			closeErrors = append(closeErrors, fmt.Sprintf("failed to close db connection: %v", err))
		}

		w.db = nil
	}

	if len(closeErrors) > 0 {
		return errors.New(errors.ErrCodeMarketDataWriteFailed,
			"errors occurred during close:\n- "+strings.Join(closeErrors, "\n- "))
	}

	return nil
}
