package marker

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"

	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// Journal is a Marker backed by an in-memory DuckDB database. The monitor
// marks every alert it sends; Write exports the journal to parquet.
type Journal struct {
	mu     sync.Mutex
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewJournal creates an empty journal.
func NewJournal(log *logger.Logger) (*Journal, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to open journal database", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()

		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to connect to journal database", err)
	}

	journal := &Journal{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}

	if err := journal.initialize(); err != nil {
		db.Close()

		return nil, err
	}

	return journal, nil
}

func (j *Journal) initialize() error {
	_, err := j.db.Exec(`
		CREATE SEQUENCE IF NOT EXISTS mark_id_seq;
		CREATE TABLE IF NOT EXISTS marks (
			id INTEGER PRIMARY KEY DEFAULT nextval('mark_id_seq'),
			symbol TEXT NOT NULL,
			time TIMESTAMP NOT NULL,
			price DOUBLE NOT NULL,
			signal INTEGER NOT NULL,
			shape TEXT NOT NULL,
			color TEXT NOT NULL,
			title TEXT NOT NULL,
			reason TEXT
		);
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to create marks table", err)
	}

	return nil
}

// Mark implements Marker. Hold rows are ignored.
func (j *Journal) Mark(symbol string, row types.SignalRow, reason string) error {
	mark, ok := New(symbol, row, reason)
	if !ok {
		return nil
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	_, err := j.sq.
		Insert("marks").
		Columns("symbol", "time", "price", "signal", "shape", "color", "title", "reason").
		Values(mark.Symbol, mark.Time, mark.Price, int(mark.Signal), string(mark.Shape), string(mark.Color), mark.Title, mark.Reason).
		RunWith(j.db).
		Exec()
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to insert mark", err)
	}

	return nil
}

// GetMarks implements Marker.
func (j *Journal) GetMarks(symbol string) ([]Mark, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	rows, err := j.sq.
		Select("symbol", "time", "price", "signal", "shape", "color", "title", "reason").
		From("marks").
		Where(squirrel.Eq{"symbol": symbol}).
		OrderBy("time ASC", "id ASC").
		RunWith(j.db).
		Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query marks", err)
	}
	defer rows.Close()

	marks := []Mark{}

	for rows.Next() {
		var (
			mark   Mark
			signal int
			shape  string
			color  string
			reason sql.NullString
		)

		if err := rows.Scan(&mark.Symbol, &mark.Time, &mark.Price, &signal, &shape, &color, &mark.Title, &reason); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan mark", err)
		}

		mark.Signal = types.SignalGrade(signal)
		mark.Shape = MarkShape(shape)
		mark.Color = MarkColor(color)
		mark.Reason = reason.String
		marks = append(marks, mark)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating marks", err)
	}

	return marks, nil
}

// Write exports the journal to dir/marks.parquet and returns the file path.
func (j *Journal) Write(dir string) (string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeExportFailed, "failed to create journal directory", err)
	}

	path := filepath.Join(dir, "marks.parquet")

	quoted := strings.ReplaceAll(path, "'", "''")

	if _, err := j.db.Exec(fmt.Sprintf(`COPY marks TO '%s' (FORMAT PARQUET)`, quoted)); err != nil {
		return "", errors.Wrap(errors.ErrCodeExportFailed, "failed to export marks to parquet", err)
	}

	j.logger.Info("Exported alert journal", zap.String("path", path))

	return path, nil
}

// Close releases the database.
func (j *Journal) Close() error {
	return j.db.Close()
}
