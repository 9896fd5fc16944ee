// Package config loads the viewer's configuration into one explicit struct
// that is passed to constructors. Nothing else in the module reads the
// environment or hard-codes file paths or column names.
//
// # Configuration Sources
//
// Sources are applied in order, later ones overriding earlier ones:
//
//	1. Default() values
//	2. A YAML file: $LOADPV_CONFIG, else config.yaml or configs/config.yaml
//	3. Environment variables with the LOADPV_ prefix
//
// # Environment Variables
//
// Nested fields join their names with underscores:
//
//	LOADPV_SERVER_PORT=9090
//	LOADPV_LOGGING_LEVEL=debug
//	LOADPV_DATASETS_DATA_DIR=/srv/loadpv/data
//	LOADPV_DATASETS_PV_VALUE_COLUMN=output
//	LOADPV_TELEMETRY_TRACES_EXPORTER=stdout
//
// # Datasets
//
// Two datasets are configured. "load" takes its sheet from the requested
// village; "pv" reads a fixed sheet (index 0 by default). Relative dataset
// paths are resolved against Datasets.DataDir, which is itself resolved
// against the working directory.
//
// # Example YAML
//
//	server:
//	  port: 8080
//	datasets:
//	  data_dir: /srv/loadpv/data
//	  load:
//	    path: load.xlsx
//	    value_column: load
//	  pv:
//	    path: pv.xls
//	    sheet: Generation
package config
