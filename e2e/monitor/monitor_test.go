package monitor_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/argo-signal/e2e/monitor/mockserver"
	"github.com/rxtech-lab/argo-signal/internal/analysis"
	"github.com/rxtech-lab/argo-signal/internal/api"
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/marker"
	"github.com/rxtech-lab/argo-signal/internal/metrics"
	"github.com/rxtech-lab/argo-signal/internal/monitor"
	"github.com/rxtech-lab/argo-signal/internal/notification"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata/provider"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata/writer"
)

// MonitorE2ETestSuite runs the monitor against a mock Yahoo server and
// reads the results back through the HTTP API.
type MonitorE2ETestSuite struct {
	suite.Suite
	yahoo   *mockserver.MockYahooServer
	webhook *httptest.Server
	mu      sync.Mutex
	alerts  []notification.Alert
}

func TestMonitorE2ETestSuite(t *testing.T) {
	suite.Run(t, new(MonitorE2ETestSuite))
}

func (suite *MonitorE2ETestSuite) SetupTest() {
	suite.alerts = nil

	suite.yahoo = mockserver.NewMockYahooServer()
	suite.yahoo.AddSymbol("PETR4.SA", 300, 0.004, 1)
	suite.yahoo.AddSymbol("VALE3.SA", 300, -0.004, 2)
	suite.yahoo.AddSymbol("ITUB4.SA", 300, 0, 3)
	// Too short for the indicators.
	suite.yahoo.AddSymbol("NEW3.SA", 20, 0, 4)

	suite.webhook = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var alert notification.Alert
		if err := json.NewDecoder(r.Body).Decode(&alert); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		suite.mu.Lock()
		suite.alerts = append(suite.alerts, alert)
		suite.mu.Unlock()

		w.WriteHeader(http.StatusNoContent)
	}))
}

func (suite *MonitorE2ETestSuite) TearDownTest() {
	suite.yahoo.Close()
	suite.webhook.Close()
}

func (suite *MonitorE2ETestSuite) TestCycleThroughAPI() {
	symbols := []string{"PETR4.SA", "VALE3.SA", "ITUB4.SA", "NEW3.SA", "GONE3.SA"}
	log := logger.NewNopLogger()

	source, err := marketdata.NewSource(marketdata.SourceConfig{
		Provider: provider.ProviderYahoo,
		BaseURL:  suite.yahoo.BaseURL(),
		Interval: marketdata.TimespanOneDay,
	}, log)
	suite.Require().NoError(err)

	analyzer, err := analysis.NewAnalyzer(source, types.DefaultParameters())
	suite.Require().NoError(err)

	journal, err := marker.NewJournal(log)
	suite.Require().NoError(err)
	defer journal.Close()

	exporter, err := writer.NewFrameWriter(suite.T().TempDir(), writer.FormatParquet, log)
	suite.Require().NoError(err)

	notifier := notification.New(notification.Config{
		Log:     true,
		Webhook: &notification.WebhookConfig{URL: suite.webhook.URL},
	}, log)

	m := metrics.NewMetrics()

	mon, err := monitor.New(monitor.Config{Symbols: symbols, MaxConcurrency: 3}, analyzer, notifier, log,
		monitor.WithMetrics(m),
		monitor.WithExporter(exporter),
		monitor.WithMarker(journal),
	)
	suite.Require().NoError(err)

	snapshot, err := mon.RunCycle(context.Background())
	suite.Require().NoError(err)
	suite.Len(snapshot.Results, 3)
	suite.Contains(snapshot.Errors, "NEW3.SA")
	suite.Contains(snapshot.Errors, "GONE3.SA")
	suite.Equal(1, suite.yahoo.Requests("GONE3.SA"))

	actionable := 0
	for _, result := range snapshot.Results {
		if result.Recommendation.Signal != types.SignalHold {
			actionable++
		}
	}

	suite.mu.Lock()
	suite.Len(suite.alerts, actionable)
	suite.mu.Unlock()

	router := api.NewServer(mon.Store(), symbols, nil, m, log).WithJournal(journal).Router()

	req := httptest.NewRequest(http.MethodGet, "/api/stocks", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	suite.Equal(http.StatusOK, rec.Code)

	var stocks []api.Stock
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &stocks))
	suite.Len(stocks, 3)

	for _, stock := range stocks {
		suite.Equal(snapshot.Results[stock.Symbol].Recommendation.Text(), stock.Text)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/history/PETR4.SA", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	suite.Equal(http.StatusOK, rec.Code)

	var history api.History
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &history))
	suite.NotEmpty(history.Prices)
	suite.LessOrEqual(history.Min, history.Max)

	req = httptest.NewRequest(http.MethodGet, "/api/analysis/NEW3.SA", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	suite.Equal(http.StatusServiceUnavailable, rec.Code)
}
