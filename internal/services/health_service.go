package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"loadpv/internal/config"
	"loadpv/pkg/contracts"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	datasets  config.DatasetsConfig
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Ready reports whether the status is "ready".
func (s HealthStatus) Ready() bool {
	return s.Status == "ready"
}

// NewHealthService creates a new health service
func NewHealthService(version string, datasets config.DatasetsConfig, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("health service initialized", slog.String("version", version))

	return &HealthService{
		version:   version,
		datasets:  datasets,
		startTime: time.Now(),
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
	}
}

// ReadinessCheck reports ready when every configured source file exists.
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   hs.version,
		Services:  make(map[string]interface{}),
	}

	for _, ds := range hs.datasets.All() {
		sh := checkSource(ds.Path)
		status.Services[ds.Name] = sh
		if sh.Status != "ready" {
			status.Status = "not_ready"
		}
	}

	if !status.Ready() {
		hs.logger.WarnContext(ctx, "readiness check failed", slog.Any("services", status.Services))
	}
	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	info := contracts.GetVersionInfo()
	return map[string]interface{}{
		"version":      hs.version,
		"api_version":  info.APIVersion,
		"build_time":   info.BuildTime,
		"git_commit":   info.GitCommit,
		"go_version":   runtime.Version(),
		"os":           runtime.GOOS,
		"arch":         runtime.GOARCH,
		"uptime":       time.Since(hs.startTime).Seconds(),
		"start_time":   hs.startTime.Format(time.RFC3339),
		"current_time": time.Now().Format(time.RFC3339),
	}
}

func checkSource(path string) ServiceHealth {
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return ServiceHealth{Status: "not_ready", Message: fmt.Sprintf("source not found: %s", path)}
	case err != nil:
		return ServiceHealth{Status: "not_ready", Message: fmt.Sprintf("source not accessible: %v", err)}
	case info.IsDir():
		return ServiceHealth{Status: "not_ready", Message: fmt.Sprintf("source is a directory: %s", path)}
	}
	return ServiceHealth{Status: "ready", Message: path}
}
