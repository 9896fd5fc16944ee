package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "loadpv/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
	Datasets  DatasetsConfig  `yaml:"datasets" envconfig:"DATASETS"`
	Chart     ChartConfig     `yaml:"chart" envconfig:"CHART"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `yaml:"host" split_words:"true"`
	Port            int           `yaml:"port" split_words:"true"`
	ReadTimeout     time.Duration `yaml:"read_timeout" split_words:"true"`
	WriteTimeout    time.Duration `yaml:"write_timeout" split_words:"true"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" split_words:"true"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" split_words:"true"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" split_words:"true"`
	RequestTimeout  time.Duration `yaml:"request_timeout" split_words:"true"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" split_words:"true"`
	EnableCORS     bool            `yaml:"enable_cors" split_words:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" split_words:"true"`
	RPS     float64 `yaml:"rps" split_words:"true"`
	Burst   int     `yaml:"burst" split_words:"true"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" split_words:"true"`
	Output      string `yaml:"output" split_words:"true"`
	FilePath    string `yaml:"file_path" split_words:"true"`
	Development bool   `yaml:"development" split_words:"true"`
}

// TelemetryConfig controls OpenTelemetry tracing and metrics
type TelemetryConfig struct {
	Enabled        bool   `yaml:"enabled" split_words:"true"`
	ServiceName    string `yaml:"service_name" split_words:"true"`
	TracesExporter string `yaml:"traces_exporter" split_words:"true"` // stdout or none
	MetricsEnabled bool   `yaml:"metrics_enabled" split_words:"true"`
}

// DatasetsConfig names the two workbooks behind the view. Relative paths are
// resolved against DataDir.
type DatasetsConfig struct {
	DataDir string        `yaml:"data_dir" split_words:"true"`
	Load    DatasetConfig `yaml:"load" envconfig:"LOAD"`
	PV      DatasetConfig `yaml:"pv" envconfig:"PV"`
}

// DatasetConfig describes one workbook-backed series.
//
// Leaf fields use split_words rather than envconfig tags: envconfig falls
// back to the bare tag name, and a field tagged PATH would read $PATH.
//
// When SheetFromVillage is set the request's village picks the sheet by name.
// Otherwise Sheet picks it by name, or SheetIndex by position if Sheet is empty.
type DatasetConfig struct {
	Name             string `yaml:"name" split_words:"true"`
	Title            string `yaml:"title" split_words:"true"`
	Path             string `yaml:"path" split_words:"true"`
	Sheet            string `yaml:"sheet" split_words:"true"`
	SheetIndex       int    `yaml:"sheet_index" split_words:"true"`
	SheetFromVillage bool   `yaml:"sheet_from_village" split_words:"true"`
	DatetimeColumn   string `yaml:"datetime_column" split_words:"true"`
	ValueColumn      string `yaml:"value_column" split_words:"true"`
	Unit             string `yaml:"unit" split_words:"true"`
}

// ChartConfig sizes the PNG charts served by the API
type ChartConfig struct {
	Width  int `yaml:"width" split_words:"true"`
	Height int `yaml:"height" split_words:"true"`
}

// All returns the datasets in display order: load first, then PV.
func (d DatasetsConfig) All() []DatasetConfig {
	return []DatasetConfig{d.Load, d.PV}
}

// Lookup finds a dataset by name.
func (d DatasetsConfig) Lookup(name string) (DatasetConfig, bool) {
	for _, ds := range d.All() {
		if ds.Name == name {
			return ds, true
		}
	}
	return DatasetConfig{}, false
}

// Names returns the dataset names in display order.
func (d DatasetsConfig) Names() []string {
	all := d.All()
	names := make([]string, len(all))
	for i, ds := range all {
		names[i] = ds.Name
	}
	return names
}

// Load builds the configuration: defaults, then the optional YAML file, then
// LOADPV_* environment overrides. Dataset paths are resolved and the result
// validated.
func Load() (*Config, error) {
	cfg := Default()

	configFile, err := findConfigFile()
	if err != nil {
		return nil, apperrors.NewConfigError("failed to locate config file", err)
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).
				WithContext("file", configFile)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.resolvePaths(); err != nil {
		return nil, apperrors.NewConfigError("failed to resolve paths", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays YAML values onto cfg. Keys absent from the file keep
// their current values.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// resolvePaths anchors the data directory at the working directory and the
// dataset files at the data directory.
func (c *Config) resolvePaths() error {
	if !filepath.IsAbs(c.Datasets.DataDir) {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		c.Datasets.DataDir = resolvePath(wd, c.Datasets.DataDir)
	}

	c.Datasets.Load.Path = resolvePath(c.Datasets.DataDir, c.Datasets.Load.Path)
	c.Datasets.PV.Path = resolvePath(c.Datasets.DataDir, c.Datasets.PV.Path)
	return nil
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return apperrors.NewConfigError(fmt.Sprintf("invalid server port: %d", c.Server.Port), nil)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return apperrors.NewConfigError("server read and write timeouts must be positive", nil)
	}
	if c.Security.EnableCORS && len(c.Security.AllowedOrigins) == 0 {
		return apperrors.NewConfigError("at least one allowed origin must be specified", nil)
	}

	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		c.Logging.Output = "console"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}

	switch strings.ToLower(c.Telemetry.TracesExporter) {
	case "", "none", "stdout":
	default:
		return apperrors.NewConfigError(fmt.Sprintf("unknown traces exporter %q", c.Telemetry.TracesExporter), nil)
	}

	seen := make(map[string]bool)
	for _, ds := range c.Datasets.All() {
		if err := ds.validate(); err != nil {
			return err
		}
		if seen[ds.Name] {
			return apperrors.NewConfigError(fmt.Sprintf("duplicate dataset name %q", ds.Name), nil)
		}
		seen[ds.Name] = true
	}

	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		c.Chart.Width, c.Chart.Height = DefaultChartWidth, DefaultChartHeight
	}
	return nil
}

func (d DatasetConfig) validate() error {
	switch {
	case d.Name == "":
		return apperrors.NewConfigError("dataset name is required", nil)
	case d.Path == "":
		return apperrors.NewConfigError(fmt.Sprintf("dataset %s: path is required", d.Name), nil)
	case d.DatetimeColumn == "" || d.ValueColumn == "":
		return apperrors.NewConfigError(fmt.Sprintf("dataset %s: datetime and value columns are required", d.Name), nil)
	case !d.SheetFromVillage && d.Sheet == "" && d.SheetIndex < 0:
		return apperrors.NewConfigError(fmt.Sprintf("dataset %s: sheet index must not be negative", d.Name), nil)
	}
	return nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20, // 1MB
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  DefaultRequestTimeout,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     50,
				Burst:   100,
			},
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Telemetry: TelemetryConfig{
			Enabled:        true,
			ServiceName:    "loadpv",
			TracesExporter: "none",
			MetricsEnabled: true,
		},
		Datasets: DatasetsConfig{
			DataDir: DefaultDataDir,
			Load: DatasetConfig{
				Name:             DatasetLoad,
				Title:            "Load",
				Path:             "load.xlsx",
				SheetFromVillage: true,
				DatetimeColumn:   "datetime",
				ValueColumn:      "load",
				Unit:             "MW",
			},
			PV: DatasetConfig{
				Name:           DatasetPV,
				Title:          "PV generation",
				Path:           "pv.xlsx",
				SheetIndex:     0,
				DatetimeColumn: "datetime",
				ValueColumn:    "generator",
				Unit:           "MW",
			},
		},
		Chart: ChartConfig{
			Width:  DefaultChartWidth,
			Height: DefaultChartHeight,
		},
	}
}
