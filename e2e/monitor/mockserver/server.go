// Package mockserver provides a mock Yahoo Finance chart server for testing.
// Bars are generated per symbol with mocks.DataGenerator.
package mockserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/mocks"
)

// ChartPath is the chart endpoint served, relative to the server URL.
const ChartPath = "/v8/finance/chart"

// MockYahooServer serves generated daily charts.
type MockYahooServer struct {
	mu       sync.RWMutex
	server   *httptest.Server
	bars     map[string][]types.MarketData
	requests map[string]int
	// failures holds the status returned for a symbol instead of data.
	failures map[string]int
}

// NewMockYahooServer starts a server with no symbols.
func NewMockYahooServer() *MockYahooServer {
	s := &MockYahooServer{
		bars:     make(map[string][]types.MarketData),
		requests: make(map[string]int),
		failures: make(map[string]int),
	}

	router := mux.NewRouter()
	router.HandleFunc(ChartPath+"/{symbol}", s.handleChart).Methods(http.MethodGet)

	s.server = httptest.NewServer(router)

	return s
}

// BaseURL is the chart endpoint to configure the Yahoo source with.
func (s *MockYahooServer) BaseURL() string {
	return s.server.URL + ChartPath
}

// Close stops the server.
func (s *MockYahooServer) Close() {
	s.server.Close()
}

// AddSymbol generates count daily bars of symbol ending today.
func (s *MockYahooServer) AddSymbol(symbol string, count int, trend float64, seed int64) {
	config := mocks.DefaultConfig()
	config.Symbol = symbol
	config.Count = count
	config.Trend = trend
	config.StartTime = time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 0, -count)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.bars[symbol] = mocks.NewDataGenerator(seed).Generate(config)
}

// Fail makes every request of symbol return status.
func (s *MockYahooServer) Fail(symbol string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures[symbol] = status
}

// Requests returns how many chart requests symbol received.
func (s *MockYahooServer) Requests(symbol string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.requests[symbol]
}

type quote struct {
	Open   []float64 `json:"open"`
	High   []float64 `json:"high"`
	Low    []float64 `json:"low"`
	Close  []float64 `json:"close"`
	Volume []float64 `json:"volume"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func writeChart(w http.ResponseWriter, status int, chart map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"chart": chart})
}

// handleChart handles GET /v8/finance/chart/{symbol}
func (s *MockYahooServer) handleChart(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	s.mu.Lock()
	s.requests[symbol]++
	failure := s.failures[symbol]
	bars, ok := s.bars[symbol]
	s.mu.Unlock()

	if failure != 0 {
		writeChart(w, failure, map[string]any{
			"result": nil,
			"error":  chartError{Code: "Internal Server Error", Description: "mock failure"},
		})

		return
	}

	if !ok {
		writeChart(w, http.StatusNotFound, map[string]any{
			"result": nil,
			"error":  chartError{Code: "Not Found", Description: "No data found, symbol may be delisted"},
		})

		return
	}

	period1, _ := strconv.ParseInt(r.URL.Query().Get("period1"), 10, 64)
	period2, _ := strconv.ParseInt(r.URL.Query().Get("period2"), 10, 64)

	var (
		timestamps []int64
		q          quote
	)

	for _, bar := range bars {
		ts := bar.Time.Unix()
		if ts < period1 || (period2 > 0 && ts > period2) {
			continue
		}

		timestamps = append(timestamps, ts)
		q.Open = append(q.Open, bar.Open)
		q.High = append(q.High, bar.High)
		q.Low = append(q.Low, bar.Low)
		q.Close = append(q.Close, bar.Close)
		q.Volume = append(q.Volume, bar.Volume)
	}

	writeChart(w, http.StatusOK, map[string]any{
		"result": []map[string]any{{
			"meta":       map[string]any{"symbol": symbol, "currency": "BRL"},
			"timestamp":  timestamps,
			"indicators": map[string]any{"quote": []quote{q}},
		}},
		"error": nil,
	})
}
