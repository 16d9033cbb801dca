package marketdata

import (
	"sort"

	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata/provider"
	"github.com/rxtech-lab/argo-signal/pkg/schema"
)

// ProviderInfo contains metadata about a market data provider.
type ProviderInfo struct {
	Name         string `json:"name"`
	DisplayName  string `json:"displayName"`
	Description  string `json:"description"`
	RequiresAuth bool   `json:"requiresAuth"`
}

// providerRegistry holds metadata about the providers the download command supports.
var providerRegistry = map[provider.ProviderType]ProviderInfo{
	provider.ProviderYahoo: {
		Name:         string(provider.ProviderYahoo),
		DisplayName:  "Yahoo Finance",
		Description:  "Daily history for B3 and other exchanges through the public chart API",
		RequiresAuth: false,
	},
	provider.ProviderPolygon: {
		Name:         string(provider.ProviderPolygon),
		DisplayName:  "Polygon.io",
		Description:  "US stock market data provider with real-time and historical OHLCV data",
		RequiresAuth: true,
	},
	provider.ProviderBinance: {
		Name:         string(provider.ProviderBinance),
		DisplayName:  "Binance",
		Description:  "Cryptocurrency exchange with extensive market data for crypto trading pairs",
		RequiresAuth: false,
	},
}

// GetSupportedProviders returns the supported provider names, sorted.
func GetSupportedProviders() []string {
	providers := make([]string, 0, len(providerRegistry))
	for providerType := range providerRegistry {
		providers = append(providers, string(providerType))
	}

	sort.Strings(providers)

	return providers
}

// GetProviderInfo returns metadata for a specific provider.
func GetProviderInfo(providerName string) (ProviderInfo, error) {
	info, exists := providerRegistry[provider.ProviderType(providerName)]
	if !exists {
		return ProviderInfo{}, unsupported(providerName)
	}

	return info, nil
}

// GetDownloadConfigSchema returns the JSON schema for a provider's download configuration.
func GetDownloadConfigSchema(providerName string) (string, error) {
	switch provider.ProviderType(providerName) {
	case provider.ProviderYahoo:
		//nolint:exhaustruct // Empty struct is intentional for schema generation
		return schema.ToJSONSchema(YahooDownloadConfig{})
	case provider.ProviderPolygon:
		//nolint:exhaustruct // Empty struct is intentional for schema generation
		return schema.ToJSONSchema(PolygonDownloadConfig{})
	case provider.ProviderBinance:
		//nolint:exhaustruct // Empty struct is intentional for schema generation
		return schema.ToJSONSchema(BinanceDownloadConfig{})
	default:
		return "", unsupported(providerName)
	}
}

// GetDownloadSecretFields returns the fields of a provider's download
// configuration that hold credentials.
func GetDownloadSecretFields(providerName string) ([]string, error) {
	switch provider.ProviderType(providerName) {
	case provider.ProviderYahoo:
		//nolint:exhaustruct // Empty struct is intentional for field introspection
		return schema.SecretFields(YahooDownloadConfig{}), nil
	case provider.ProviderPolygon:
		//nolint:exhaustruct // Empty struct is intentional for field introspection
		return schema.SecretFields(PolygonDownloadConfig{}), nil
	case provider.ProviderBinance:
		//nolint:exhaustruct // Empty struct is intentional for field introspection
		return schema.SecretFields(BinanceDownloadConfig{}), nil
	default:
		return nil, unsupported(providerName)
	}
}

// ParseDownloadConfig parses a JSON configuration string for the given provider.
func ParseDownloadConfig(providerName string, jsonConfig string) (DownloadConfig, error) {
	switch provider.ProviderType(providerName) {
	case provider.ProviderYahoo:
		return asDownloadConfig(ParseYahooConfig(jsonConfig))
	case provider.ProviderPolygon:
		return asDownloadConfig(ParsePolygonConfig(jsonConfig))
	case provider.ProviderBinance:
		return asDownloadConfig(ParseBinanceConfig(jsonConfig))
	default:
		return nil, unsupported(providerName)
	}
}

// asDownloadConfig keeps a failed parse from returning a typed nil pointer.
func asDownloadConfig[T DownloadConfig](config T, err error) (DownloadConfig, error) {
	if err != nil {
		return nil, err
	}

	return config, nil
}

func unsupported(providerName string) error {
	return errors.Newf(errors.ErrCodeInvalidProvider, "unsupported provider: %s", providerName)
}
