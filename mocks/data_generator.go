package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/argo-signal/internal/types"
)

// DataGenerator generates realistic daily bars for tests.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how market data is generated.
type GeneratorConfig struct {
	// Symbol is the ticker (e.g., "PETR4.SA", "VALE3.SA")
	Symbol string
	// StartTime is the beginning of the data series
	StartTime time.Time
	// Interval is the duration between each bar
	Interval time.Duration
	// Count is the number of data points to generate
	Count int
	// InitialPrice is the starting price
	InitialPrice float64
	// Volatility controls price movement (0.01 = 1% typical daily volatility)
	Volatility float64
	// Trend is the drift factor (-0.01 to 0.01 for bearish to bullish)
	Trend float64
	// VolumeBase is the average volume per bar
	VolumeBase float64
	// VolumeVariance is the variance in volume (0.0 to 1.0)
	VolumeVariance float64
}

// DefaultConfig returns one trading year of daily bars.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Symbol:         "PETR4.SA",
		StartTime:      time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Interval:       24 * time.Hour,
		Count:          250,
		InitialPrice:   38.0,
		Volatility:     0.015,
		Trend:          0.0,
		VolumeBase:     30_000_000,
		VolumeVariance: 0.3,
	}
}

// Generate creates a slice of MarketData based on the configuration.
// Prices follow a geometric Brownian motion.
func (g *DataGenerator) Generate(config GeneratorConfig) []types.MarketData {
	data := make([]types.MarketData, config.Count)
	currentPrice := config.InitialPrice
	currentTime := config.StartTime

	for i := 0; i < config.Count; i++ {
		open := currentPrice

		// Box-Muller transform for a normal sample
		u1 := g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		priceChange := config.Volatility * z
		drift := config.Trend / float64(config.Count)

		close := open * (1 + priceChange + drift)
		if close <= 0 {
			close = open * 0.99
		}

		highExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)
		lowExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)

		high := math.Max(open, close) + highExtension
		low := math.Min(open, close) - lowExtension
		if low <= 0 {
			low = math.Min(open, close) * 0.99
		}

		volumeVariation := 1.0 + (g.rng.Float64()*2-1)*config.VolumeVariance
		volume := config.VolumeBase * volumeVariation
		if volume < 0 {
			volume = config.VolumeBase * 0.1
		}

		data[i] = types.MarketData{
			Id:     "",
			Symbol: config.Symbol,
			Time:   currentTime,
			Open:   roundToDecimals(open, 2),
			High:   roundToDecimals(high, 2),
			Low:    roundToDecimals(low, 2),
			Close:  roundToDecimals(close, 2),
			Volume: math.Round(volume),
		}

		currentPrice = close
		currentTime = currentTime.Add(config.Interval)
	}

	return data
}

// GenerateMultiSymbol generates data for multiple symbols.
func (g *DataGenerator) GenerateMultiSymbol(symbols []string, baseConfig GeneratorConfig) []types.MarketData {
	var allData []types.MarketData

	for _, symbol := range symbols {
		config := baseConfig
		config.Symbol = symbol
		config.InitialPrice = baseConfig.InitialPrice * (0.8 + g.rng.Float64()*0.4)
		config.Volatility = baseConfig.Volatility * (0.8 + g.rng.Float64()*0.4)

		symbolData := g.Generate(config)
		allData = append(allData, symbolData...)
	}

	return allData
}

// GenerateDaily returns count reproducible daily bars for symbol.
func GenerateDaily(symbol string, count int) []types.MarketData {
	gen := NewDataGenerator(42)
	config := DefaultConfig()
	config.Symbol = symbol
	config.Count = count

	return gen.Generate(config)
}

// GenerateLinear returns daily bars whose close moves by step every bar,
// with a one unit high/low range and a constant volume.
func GenerateLinear(symbol string, count int, start, step, volume float64) []types.MarketData {
	config := DefaultConfig()
	data := make([]types.MarketData, count)

	for i := 0; i < count; i++ {
		close := start + step*float64(i)
		data[i] = types.MarketData{
			Symbol: symbol,
			Time:   config.StartTime.Add(time.Duration(i) * config.Interval),
			Open:   close - step/2,
			High:   close + 0.5,
			Low:    close - 0.5,
			Close:  close,
			Volume: volume,
		}
	}

	return data
}

// GenerateFlat returns daily bars with identical prices and volume.
func GenerateFlat(symbol string, count int, price, volume float64) []types.MarketData {
	return GenerateLinear(symbol, count, price, 0, volume)
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(val*pow) / pow
}
