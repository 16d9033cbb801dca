package provider

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata/writer"
)

type FileSourceTestSuite struct {
	suite.Suite
	tempDir string
	start   time.Time
}

func TestFileSourceSuite(t *testing.T) {
	suite.Run(t, new(FileSourceTestSuite))
}

func (suite *FileSourceTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
	suite.start = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
}

// writeFile exports ten bars of two symbols to name, newest first.
func (suite *FileSourceTestSuite) writeFile(name string) string {
	path := filepath.Join(suite.tempDir, name)
	w := writer.NewDuckDBWriter(path, logger.NewNopLogger())
	suite.Require().NoError(w.Initialize())

	defer func() { _ = w.Close() }()

	for _, symbol := range []string{"PETR4.SA", "VALE3.SA"} {
		for i := 9; i >= 0; i-- {
			suite.Require().NoError(w.Write(types.MarketData{
				Symbol: symbol,
				Time:   suite.start.AddDate(0, 0, i),
				Open:   30 + float64(i),
				High:   31 + float64(i),
				Low:    29 + float64(i),
				Close:  30.5 + float64(i),
				Volume: 1_000_000,
			}))
		}
	}

	_, err := w.Finalize()
	suite.Require().NoError(err)

	return path
}

func (suite *FileSourceTestSuite) TestNewFileSourceValidation() {
	_, err := NewFileSource("", nil)
	suite.True(errors.HasCode(err, errors.ErrCodeMissingParameter))

	_, err = NewFileSource("bars.json", nil)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func (suite *FileSourceTestSuite) TestFetchParquet() {
	source, err := NewFileSource(suite.writeFile("bars.parquet"), nil)
	suite.Require().NoError(err)

	defer func() { _ = source.(*FileSource).Close() }()

	suite.Equal(ProviderFile, source.Name())

	bars, err := source.Fetch(context.Background(), "PETR4.SA", suite.start, suite.start.AddDate(0, 0, 4))
	suite.Require().NoError(err)
	suite.Require().Len(bars, 5)

	for i, bar := range bars {
		suite.Equal("PETR4.SA", bar.Symbol)
		suite.True(suite.start.AddDate(0, 0, i).Equal(bar.Time), "bar %d at %s", i, bar.Time)
		suite.Equal(30.5+float64(i), bar.Close)
		suite.NotEmpty(bar.Id)
	}
}

func (suite *FileSourceTestSuite) TestFetchCSV() {
	source, err := NewFileSource(suite.writeFile("bars.csv"), logger.NewNopLogger())
	suite.Require().NoError(err)

	defer func() { _ = source.(*FileSource).Close() }()

	bars, err := source.Fetch(context.Background(), "VALE3.SA", suite.start, suite.start.AddDate(0, 1, 0))
	suite.Require().NoError(err)
	suite.Len(bars, 10)
	suite.Equal("VALE3.SA", bars[9].Symbol)
	suite.Equal(39.5, bars[9].Close)
}

func (suite *FileSourceTestSuite) TestFetchUnknownSymbol() {
	source, err := NewFileSource(suite.writeFile("bars.parquet"), nil)
	suite.Require().NoError(err)

	defer func() { _ = source.(*FileSource).Close() }()

	bars, err := source.Fetch(context.Background(), "ITUB4.SA", suite.start, suite.start.AddDate(0, 1, 0))
	suite.Nil(bars)
	suite.True(errors.HasCode(err, errors.ErrCodeDataUnavailable))
}

func (suite *FileSourceTestSuite) TestFetchMissingFile() {
	source, err := NewFileSource(filepath.Join(suite.tempDir, "missing.parquet"), nil)
	suite.Require().NoError(err)

	defer func() { _ = source.(*FileSource).Close() }()

	_, err = source.Fetch(context.Background(), "PETR4.SA", suite.start, suite.start.AddDate(0, 1, 0))
	suite.True(errors.HasCode(err, errors.ErrCodeQueryFailed))
}

func (suite *FileSourceTestSuite) TestFileReader() {
	reader, err := fileReader("/data/it's.parquet")
	suite.NoError(err)
	suite.Equal("read_parquet('/data/it''s.parquet')", reader)

	reader, err = fileReader("bars.CSV")
	suite.NoError(err)
	suite.Equal("read_csv_auto('bars.CSV')", reader)
}

func (suite *FileSourceTestSuite) TestNewMarketDataProvider() {
	p, err := NewMarketDataProvider(Config{Type: ProviderYahoo}, nil)
	suite.NoError(err)
	suite.Equal(ProviderYahoo, p.Name())

	p, err = NewMarketDataProvider(Config{Type: ProviderBinance}, nil)
	suite.NoError(err)
	suite.Equal(ProviderBinance, p.Name())

	_, err = NewMarketDataProvider(Config{Type: ProviderPolygon}, nil)
	suite.True(errors.HasCode(err, errors.ErrCodeMissingParameter))

	_, err = NewMarketDataProvider(Config{Type: "bloomberg"}, nil)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidProvider))
}
