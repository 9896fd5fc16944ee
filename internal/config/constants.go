package config

import (
	"time"

	"loadpv/pkg/contracts"
)

// Application constants
const (
	AppName    = "Village Load & PV Viewer"
	AppVersion = contracts.Version

	// EnvPrefix namespaces environment overrides, e.g. LOADPV_SERVER_PORT.
	EnvPrefix = "LOADPV"
	// ConfigFileEnv names a YAML file to load instead of the search path.
	ConfigFileEnv = "LOADPV_CONFIG"

	DefaultDataDir  = "data"
	DefaultLogsDir  = "logs"
	DefaultLogLevel = "info"
	DefaultLogFile  = "logs/app.log"

	DefaultRequestTimeout = 30 * time.Second

	DefaultChartWidth  = 900
	DefaultChartHeight = 400
)

// Dataset names used by routes, metrics and the view page.
const (
	DatasetLoad = "load"
	DatasetPV   = "pv"
)
