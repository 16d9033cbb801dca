package writer

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type DuckDBWriterTestSuite struct {
	suite.Suite
	tempDir string
}

func TestDuckDBWriterSuite(t *testing.T) {
	suite.Run(t, new(DuckDBWriterTestSuite))
}

func (suite *DuckDBWriterTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
}

func (suite *DuckDBWriterTestSuite) bar(i int) types.MarketData {
	return types.MarketData{
		Symbol: "PETR4.SA",
		Time:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
		Open:   37.5 + float64(i),
		High:   38.5 + float64(i),
		Low:    37.0 + float64(i),
		Close:  38.0 + float64(i),
		Volume: 25_000_000 + float64(i*100),
	}
}

func (suite *DuckDBWriterTestSuite) TestNewDuckDBWriter() {
	outputPath := filepath.Join(suite.tempDir, "test.parquet")
	writer := NewDuckDBWriter(outputPath, nil)
	suite.NotNil(writer)
	suite.Equal(outputPath, writer.GetOutputPath())

	duckWriter, ok := writer.(*DuckDBWriter)
	suite.True(ok)
	suite.Nil(duckWriter.db)
	suite.Nil(duckWriter.tx)
	suite.Nil(duckWriter.stmt)
}

func (suite *DuckDBWriterTestSuite) TestInitializeRejectsUnknownExtension() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "test.json"), nil)

	err := writer.Initialize()
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func (suite *DuckDBWriterTestSuite) TestWriteWithoutInitialize() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "test_no_init.parquet"), nil)

	err := writer.Write(suite.bar(0))
	suite.Error(err)
	suite.Contains(err.Error(), "not initialized")
}

func (suite *DuckDBWriterTestSuite) TestFinalizeWithoutInitialize() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "test_finalize_no_init.parquet"), nil)

	_, err := writer.Finalize()
	suite.Error(err)
	suite.Contains(err.Error(), "not initialized")
}

func (suite *DuckDBWriterTestSuite) TestCloseWithoutInitialize() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "test_close.parquet"), nil)
	suite.NoError(writer.Close())
}

func (suite *DuckDBWriterTestSuite) TestDoubleClose() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "test_double_close.parquet"), nil)
	suite.Require().NoError(writer.Initialize())

	suite.NoError(writer.Close())
	suite.NoError(writer.Close())
}

func (suite *DuckDBWriterTestSuite) TestFullWorkflowParquet() {
	outputPath := filepath.Join(suite.tempDir, "petr4.parquet")
	suite.workflow(outputPath, "read_parquet")
}

func (suite *DuckDBWriterTestSuite) TestFullWorkflowCSV() {
	outputPath := filepath.Join(suite.tempDir, "petr4.csv")
	suite.workflow(outputPath, "read_csv_auto")
}

func (suite *DuckDBWriterTestSuite) workflow(outputPath, reader string) {
	writer := NewDuckDBWriter(outputPath, nil)
	suite.Require().NoError(writer.Initialize())
	defer writer.Close()

	for i := 9; i >= 0; i-- {
		suite.Require().NoError(writer.Write(suite.bar(i)))
	}

	path, err := writer.Finalize()
	suite.Require().NoError(err)
	suite.Equal(outputPath, path)

	_, statErr := os.Stat(outputPath)
	suite.Require().NoError(statErr)

	db, err := sql.Open("duckdb", "")
	suite.Require().NoError(err)
	defer db.Close()

	var (
		count     int
		firstTime time.Time
		emptyIDs  int
	)

	err = db.QueryRow("SELECT COUNT(*), MIN(time), COUNT(*) FILTER (WHERE id IS NULL OR id = '') FROM " +
		reader + "('" + outputPath + "')").Scan(&count, &firstTime, &emptyIDs)
	suite.Require().NoError(err)
	suite.Equal(10, count)
	suite.Equal(suite.bar(0).Time, firstTime.UTC())
	suite.Equal(0, emptyIDs)
}

func (suite *DuckDBWriterTestSuite) TestWriteAfterFinalize() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "after.parquet"), nil)
	suite.Require().NoError(writer.Initialize())
	defer writer.Close()

	suite.Require().NoError(writer.Write(suite.bar(0)))
	_, err := writer.Finalize()
	suite.Require().NoError(err)

	// the statement belonged to the committed transaction
	suite.Error(writer.Write(suite.bar(1)))
}

func (suite *DuckDBWriterTestSuite) TestDoubleFinalize() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "double.parquet"), nil)
	suite.Require().NoError(writer.Initialize())
	defer writer.Close()

	_, err := writer.Finalize()
	suite.Require().NoError(err)

	_, err = writer.Finalize()
	suite.Error(err)
	suite.Contains(err.Error(), "not initialized")
}

func (suite *DuckDBWriterTestSuite) TestFinalizeExportError() {
	outputPath := filepath.Join(suite.tempDir, "missing", "dir", "out.parquet")
	writer := NewDuckDBWriter(outputPath, nil)
	suite.Require().NoError(writer.Initialize())
	defer writer.Close()

	suite.Require().NoError(writer.Write(suite.bar(0)))

	_, err := writer.Finalize()
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeExportFailed))
}

func (suite *DuckDBWriterTestSuite) TestFormatFromPath() {
	format, err := FormatFromPath("/data/PETR4.SA.PARQUET")
	suite.NoError(err)
	suite.Equal(FormatParquet, format)

	format, err = FormatFromPath("bars.csv")
	suite.NoError(err)
	suite.Equal(FormatCSV, format)

	_, err = FormatFromPath("bars.xlsx")
	suite.Error(err)
}
