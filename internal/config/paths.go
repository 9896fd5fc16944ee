package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// configSearchPath lists the YAML locations tried when ConfigFileEnv is unset.
var configSearchPath = []string{
	"config.yaml",
	"configs/config.yaml",
	"../configs/config.yaml",
}

// findConfigFile returns the YAML file to load, or "" when none exists.
// An explicit LOADPV_CONFIG that does not exist is an error.
func findConfigFile() (string, error) {
	if explicit := os.Getenv(ConfigFileEnv); explicit != "" {
		if !FileExists(explicit) {
			return "", fmt.Errorf("config file %s not found", explicit)
		}
		return explicit, nil
	}

	for _, location := range configSearchPath {
		if FileExists(location) {
			return location, nil
		}
	}
	return "", nil
}

// resolvePath anchors a relative path at base. Absolute paths pass through.
func resolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// FileExists reports whether path names an existing regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
