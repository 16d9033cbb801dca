package marketdata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/rxtech-lab/argo-signal/internal/logger"
	pkgerrors "github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/rxtech-lab/argo-signal/mocks"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata/provider"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata/writer"
)

// ClientTestSuite is a test suite for the Client implementation
type ClientTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockProvider *mocks.MockProvider
	tempDir      string
	params       DownloadParams
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

// SetupTest runs before each test
func (suite *ClientTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockProvider = mocks.NewMockProvider(suite.ctrl)
	suite.tempDir = suite.T().TempDir()
	suite.params = DownloadParams{
		Ticker:    "PETR4.SA",
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Interval:  TimespanOneDay,
	}
}

func (suite *ClientTestSuite) newClient(format writer.Format, onProgress OnDownloadProgress) *Client {
	client, err := NewClient(ClientConfig{
		ProviderType: provider.ProviderYahoo,
		Format:       format,
		DataPath:     filepath.Join(suite.tempDir, "data"),
	}, onProgress, logger.NewNopLogger())
	suite.Require().NoError(err)

	client.newProvider = func(config provider.Config, _ *logger.Logger) (provider.Provider, error) {
		suite.Equal(provider.ProviderYahoo, config.Type)
		suite.Equal(provider.DailyInterval, config.Interval)
		return suite.mockProvider, nil
	}

	return client
}

func (suite *ClientTestSuite) TestClientDownload() {
	bars := mocks.GenerateDaily("PETR4.SA", 30)

	suite.mockProvider.EXPECT().Name().Return(provider.ProviderYahoo)
	suite.mockProvider.EXPECT().
		Fetch(gomock.Any(), "PETR4.SA", suite.params.StartDate, suite.params.EndDate).
		Return(bars, nil)

	var last, total float64

	client := suite.newClient(writer.FormatParquet, func(current, t float64, _ string) {
		last, total = current, t
	})

	path, err := client.Download(context.Background(), suite.params)
	suite.Require().NoError(err)
	suite.Equal(filepath.Join(suite.tempDir, "data", "PETR4.SA_2024-01-01_2024-12-31_1d.parquet"), path)
	suite.Equal(30.0, last)
	suite.Equal(30.0, total)

	db, err := sql.Open("duckdb", "")
	suite.Require().NoError(err)
	defer db.Close()

	var count int
	suite.Require().NoError(db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM read_parquet('%s')", path)).Scan(&count))
	suite.Equal(30, count)
}

func (suite *ClientTestSuite) TestClientDownloadCSV() {
	suite.mockProvider.EXPECT().Name().Return(provider.ProviderYahoo)
	suite.mockProvider.EXPECT().
		Fetch(gomock.Any(), "PETR4.SA", gomock.Any(), gomock.Any()).
		Return(mocks.GenerateDaily("PETR4.SA", 5), nil)

	path, err := suite.newClient(writer.FormatCSV, nil).Download(context.Background(), suite.params)
	suite.Require().NoError(err)
	suite.Equal(".csv", filepath.Ext(path))
}

func (suite *ClientTestSuite) TestClientDownloadFetchError() {
	suite.mockProvider.EXPECT().Name().Return(provider.ProviderYahoo)
	suite.mockProvider.EXPECT().
		Fetch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, pkgerrors.New(pkgerrors.ErrCodeDataUnavailable, "no data"))

	_, err := suite.newClient(writer.FormatParquet, nil).Download(context.Background(), suite.params)
	suite.Error(err)
	suite.Contains(err.Error(), "download failed")
	suite.True(pkgerrors.HasCode(err, pkgerrors.ErrCodeDataUnavailable))
}

func (suite *ClientTestSuite) TestClientDownloadProviderError() {
	client := suite.newClient(writer.FormatParquet, nil)
	client.newProvider = func(provider.Config, *logger.Logger) (provider.Provider, error) {
		return nil, errors.New("boom")
	}

	_, err := client.Download(context.Background(), suite.params)
	suite.Error(err)
	suite.Contains(err.Error(), "failed to create yahoo provider")
}

func (suite *ClientTestSuite) TestDownloadParamsValidation() {
	client := suite.newClient(writer.FormatParquet, nil)

	tests := []struct {
		name   string
		mutate func(*DownloadParams)
	}{
		{"missing ticker", func(p *DownloadParams) { p.Ticker = "" }},
		{"end before start", func(p *DownloadParams) { p.EndDate = p.StartDate.AddDate(0, 0, -1) }},
		{"missing start", func(p *DownloadParams) { p.StartDate = time.Time{} }},
		{"invalid interval", func(p *DownloadParams) { p.Interval = "2d" }},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			params := suite.params
			tc.mutate(&params)

			_, err := client.Download(context.Background(), params)
			suite.Error(err)
			suite.True(pkgerrors.HasCode(err, pkgerrors.ErrCodeInvalidParameter))
		})
	}
}

func (suite *ClientTestSuite) TestClientConfigValidation() {
	tests := []struct {
		name   string
		config ClientConfig
		valid  bool
	}{
		{"yahoo", ClientConfig{ProviderType: provider.ProviderYahoo, Format: writer.FormatParquet, DataPath: "/tmp"}, true},
		{"binance csv", ClientConfig{ProviderType: provider.ProviderBinance, Format: writer.FormatCSV, DataPath: "/tmp"}, true},
		{"polygon with key", ClientConfig{ProviderType: provider.ProviderPolygon, Format: writer.FormatParquet, DataPath: "/tmp", PolygonApiKey: "key"}, true},
		{"polygon without key", ClientConfig{ProviderType: provider.ProviderPolygon, Format: writer.FormatParquet, DataPath: "/tmp"}, false},
		{"file provider", ClientConfig{ProviderType: provider.ProviderFile, Format: writer.FormatParquet, DataPath: "/tmp"}, false},
		{"unknown format", ClientConfig{ProviderType: provider.ProviderYahoo, Format: "json", DataPath: "/tmp"}, false},
		{"missing data path", ClientConfig{ProviderType: provider.ProviderYahoo, Format: writer.FormatParquet}, false},
		{"bad yahoo url", ClientConfig{ProviderType: provider.ProviderYahoo, Format: writer.FormatParquet, DataPath: "/tmp", YahooBaseURL: "::"}, false},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			client, err := NewClient(tc.config, nil, nil)
			if tc.valid {
				suite.NoError(err)
				suite.NotNil(client)
				return
			}

			suite.Error(err)
			suite.True(pkgerrors.HasCode(err, pkgerrors.ErrCodeInvalidConfiguration))
		})
	}
}

func (suite *ClientTestSuite) TestOutputPath() {
	client, err := NewClient(ClientConfig{ProviderType: provider.ProviderBinance, Format: writer.FormatCSV, DataPath: "/data"}, nil, nil)
	suite.Require().NoError(err)

	params := suite.params
	params.Ticker = "BTC/USDT"
	params.Interval = TimespanFourHours

	suite.Equal("/data/BTC_USDT_2024-01-01_2024-12-31_4h.csv", client.OutputPath(params))
}
