package http

import (
	"context"

	"loadpv/internal/config"
	"loadpv/pkg/contracts/domain"
)

// SeriesServiceInterface defines the series operations the handlers need
type SeriesServiceInterface interface {
	ListVillages(ctx context.Context) ([]string, error)
	Dataset(ctx context.Context, name, village, date string) (domain.DatasetResult, error)
	DayView(ctx context.Context, village, date string) *domain.DayView
	Datasets() []config.DatasetConfig
}
