// Package config loads the argo-signal YAML configuration and the secrets
// kept in the environment.
package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rxtech-lab/argo-signal/internal/markethours"
	"github.com/rxtech-lab/argo-signal/internal/monitor"
	"github.com/rxtech-lab/argo-signal/internal/notification"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/internal/version"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata/provider"
	"github.com/rxtech-lab/argo-signal/pkg/marketdata/writer"
	"github.com/rxtech-lab/argo-signal/pkg/schema"
)

// Environment variables holding secrets.
const (
	EnvPolygonAPIKey = "POLYGON_API_KEY"
	EnvEmailPassword = "EMAIL_PASSWORD"
)

// DefaultSymbols is the B3 watch list of the trade bot.
var DefaultSymbols = []string{"PETR4.SA", "VALE3.SA", "ITUB4.SA", "BBDC4.SA", "ABEV3.SA"}

// ExportConfig enables writing every signal frame to disk.
type ExportConfig struct {
	Dir    string        `yaml:"dir" json:"dir" jsonschema:"title=Export directory" validate:"required"`
	Format writer.Format `yaml:"format" json:"format" jsonschema:"title=File format,enum=parquet,enum=csv,default=parquet" validate:"required,oneof=parquet csv"`
	// Journal also dumps the alerts sent during the run to Dir/marks.parquet
	// on exit. The file is write-only; nothing reads it back.
	Journal bool `yaml:"journal" json:"journal" jsonschema:"title=Export alert journal,default=false"`
}

// APIConfig configures the HTTP API.
type APIConfig struct {
	Address string `yaml:"address" json:"address" jsonschema:"title=Listen address,default=:8080" validate:"required,hostname_port"`
}

// Config is the argo-signal configuration file.
type Config struct {
	// Version is the argo-signal version the file was written for.
	Version     string                  `yaml:"version" json:"version,omitempty" jsonschema:"title=Config version"`
	Symbols     []string                `yaml:"symbols" json:"symbols" jsonschema:"title=Instruments" validate:"required,min=1,dive,required"`
	Parameters  types.Parameters        `yaml:"parameters" json:"parameters" jsonschema:"title=Signal parameters"`
	Source      marketdata.SourceConfig `yaml:"source" json:"source" jsonschema:"title=Market data source"`
	Lookback    time.Duration           `yaml:"lookback" json:"lookback" jsonschema:"title=History fetched per analysis,type=string,default=17520h" validate:"min=24h"`
	Notify      notification.Config     `yaml:"notification" json:"notification" jsonschema:"title=Alert channels"`
	MarketHours markethours.Config      `yaml:"market_hours" json:"market_hours" jsonschema:"title=Market hours"`
	Monitor     monitor.Config          `yaml:"monitor" json:"monitor" jsonschema:"title=Monitor loop"`
	Export      *ExportConfig           `yaml:"export" json:"export,omitempty" jsonschema:"title=Frame export" validate:"omitempty"`
	API         APIConfig               `yaml:"api" json:"api" jsonschema:"title=HTTP API"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Version:     "",
		Symbols:     append([]string(nil), DefaultSymbols...),
		Parameters:  types.DefaultParameters(),
		Source:      marketdata.DefaultSourceConfig(),
		Lookback:    2 * 365 * 24 * time.Hour,
		Notify:      notification.Config{Log: true},
		MarketHours: markethours.DefaultConfig(),
		Monitor: monitor.Config{
			Interval:       monitor.DefaultInterval,
			MaxConcurrency: monitor.DefaultMaxConcurrency,
		},
		API: APIConfig{Address: ":8080"},
	}
}

// Load reads the config file at path on top of Default, fills secrets from
// the environment and validates the result. An empty path loads the defaults.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
		}

		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse config %s", path)
		}
	}

	config.ApplyEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadEnv loads .env style files into the process environment. Missing
// files are ignored and variables already set win.
func LoadEnv(files ...string) error {
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}

		if err := godotenv.Load(file); err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to load env file %s", file)
		}
	}

	return nil
}

// ApplyEnv fills secrets left empty in the file from the environment.
func (c *Config) ApplyEnv() {
	if c.Source.APIKey == "" && c.Source.Provider == provider.ProviderPolygon {
		c.Source.APIKey = os.Getenv(EnvPolygonAPIKey)
	}

	if c.Notify.Email != nil && c.Notify.Email.Password == "" {
		c.Notify.Email.Password = os.Getenv(EnvEmailPassword)
	}
}

// Validate checks struct tags, nested sections and the config version.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	if err := c.Parameters.Validate(); err != nil {
		return err
	}

	if err := c.Source.Validate(); err != nil {
		return err
	}

	if c.MarketHours.Enabled {
		if _, err := markethours.NewSession(c.MarketHours); err != nil {
			return err
		}
	}

	return version.CheckConfigCompatibility(version.GetVersion(), c.Version)
}

// MonitorConfig returns the monitor section completed with the watch list.
func (c *Config) MonitorConfig() monitor.Config {
	config := c.Monitor
	config.Symbols = c.Symbols
	config.NotifyOnHold = c.Notify.NotifyOnHold

	return config
}

// Session returns the market session, or nil when cycles ignore market hours.
func (c *Config) Session() (*markethours.Session, error) {
	if !c.MarketHours.Enabled {
		return nil, nil
	}

	return markethours.NewSession(c.MarketHours)
}

// Schema returns the JSON schema of the configuration file.
func Schema() (string, error) {
	return schema.ToJSONSchema(Config{})
}

// SecretFields lists the json names of the fields read from the environment.
func SecretFields() []string {
	fields := schema.SecretFields(marketdata.SourceConfig{})
	fields = append(fields, schema.SecretFields(notification.EmailConfig{})...)

	return fields
}
