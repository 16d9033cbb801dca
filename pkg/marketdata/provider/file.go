package provider

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"

	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// FileSource reads bars from a parquet or csv file produced by the download
// command, querying it in place with an in-memory DuckDB.
type FileSource struct {
	db     *sql.DB
	path   string
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewFileSource opens an in-memory DuckDB over the file at path.
func NewFileSource(path string, log *logger.Logger) (Provider, error) {
	if path == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "data path is required for the file provider")
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	if _, err := fileReader(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open DuckDB connection", err)
	}

	return &FileSource{
		db:     db,
		path:   path,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Name returns the provider type.
func (f *FileSource) Name() ProviderType {
	return ProviderFile
}

// Fetch selects the bars of symbol in range, ordered by time.
func (f *FileSource) Fetch(ctx context.Context, symbol string, start time.Time, end time.Time) ([]types.MarketData, error) {
	reader, err := fileReader(f.path)
	if err != nil {
		return nil, err
	}

	query, args, err := f.sq.
		Select("id", "time", "symbol", "open", "high", "low", "close", "volume").
		From(reader).
		Where(squirrel.And{
			squirrel.Eq{"symbol": symbol},
			squirrel.GtOrEq{"time": start},
			squirrel.LtOrEq{"time": end},
		}).
		OrderBy("time ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	f.logger.Debug("Reading bars from file",
		zap.String("path", f.path),
		zap.String("symbol", symbol),
	)

	rows, err := f.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, fmt.Sprintf("failed to query %s", f.path), err)
	}
	defer rows.Close()

	var bars []types.MarketData

	for rows.Next() {
		var (
			id  sql.NullString
			bar types.MarketData
		)

		if err := rows.Scan(&id, &bar.Time, &bar.Symbol, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeMarketDataParseFailed, "failed to scan bar", err)
		}

		bar.Id = id.String
		bars = append(bars, bar)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to read rows", err)
	}

	if len(bars) == 0 {
		return nil, emptyResult(ProviderFile, symbol, start, end)
	}

	return bars, nil
}

// Close releases the DuckDB connection.
func (f *FileSource) Close() error {
	return f.db.Close()
}

// fileReader returns the DuckDB table function reading path.
func fileReader(path string) (string, error) {
	quoted := strings.ReplaceAll(path, "'", "''")

	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return fmt.Sprintf("read_parquet('%s')", quoted), nil
	case ".csv":
		return fmt.Sprintf("read_csv_auto('%s')", quoted), nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidParameter, "unsupported data file %s: expected .parquet or .csv", path)
	}
}
