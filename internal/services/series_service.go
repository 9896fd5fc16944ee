package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"loadpv/internal/config"
	"loadpv/internal/dayseries"
	apperrors "loadpv/internal/errors"
	"loadpv/internal/infrastructure"
	"loadpv/internal/workbook"
	"loadpv/pkg/contracts/domain"
)

// SeriesService reads the configured load and PV workbooks and extracts day
// series from them. It holds no per-request state: every call opens, reads
// and closes its own sources.
type SeriesService struct {
	datasets config.DatasetsConfig
	opener   workbook.Opener
	tracer   trace.Tracer
	metrics  *infrastructure.BusinessMetrics
	logger   *slog.Logger
}

// SeriesOption configures a SeriesService.
type SeriesOption func(*SeriesService)

// WithTracer sets the tracer used for per-extraction spans.
func WithTracer(tracer trace.Tracer) SeriesOption {
	return func(s *SeriesService) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithMetrics sets the instruments extraction outcomes are recorded on.
func WithMetrics(metrics *infrastructure.BusinessMetrics) SeriesOption {
	return func(s *SeriesService) {
		s.metrics = metrics
	}
}

// NewSeriesService creates a series service over the given datasets.
// A nil opener reads from the filesystem.
func NewSeriesService(datasets config.DatasetsConfig, opener workbook.Opener, logger *slog.Logger, opts ...SeriesOption) *SeriesService {
	if opener == nil {
		opener = workbook.FileOpener{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &SeriesService{
		datasets: datasets,
		opener:   opener,
		tracer:   tracenoop.NewTracerProvider().Tracer(infrastructure.InstrumentationName),
		logger:   logger.With(slog.String("component", "series_service")),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.logger.Info("series service initialized",
		slog.String("load_path", datasets.Load.Path),
		slog.String("pv_path", datasets.PV.Path))
	return s
}

// Datasets returns the dataset configuration in display order.
func (s *SeriesService) Datasets() []config.DatasetConfig {
	return s.datasets.All()
}

// ListVillages returns the sheet names of the load workbook in declared order.
func (s *SeriesService) ListVillages(ctx context.Context) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "series.list_villages",
		trace.WithAttributes(attribute.String("path", s.datasets.Load.Path)))
	defer span.End()

	src, err := s.opener.Open(ctx, s.datasets.Load.Path)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}
	defer src.Close()

	names := src.SheetNames()
	s.logger.DebugContext(ctx, "listed villages", slog.Int("count", len(names)))
	return names, nil
}

// Dataset extracts one named dataset for village and date. The returned
// result always carries the dataset's metadata; on failure Series is nil and
// the error is returned.
func (s *SeriesService) Dataset(ctx context.Context, name, village, date string) (domain.DatasetResult, error) {
	ds, ok := s.datasets.Lookup(name)
	if !ok {
		return domain.DatasetResult{}, apperrors.NotFoundError(fmt.Sprintf("dataset %q", name))
	}

	result := domain.DatasetResult{DatasetMeta: metaFor(ds, village, date)}
	series, err := s.extract(ctx, ds, village, date)
	if err != nil {
		return result, err
	}
	result.Series = series
	return result, nil
}

// DayView extracts every dataset for village and date. Datasets are read
// concurrently and independently: a failure is recorded on that dataset's
// result and never hides the others.
func (s *SeriesService) DayView(ctx context.Context, village, date string) *domain.DayView {
	all := s.datasets.All()
	results := make([]domain.DatasetResult, len(all))

	var g errgroup.Group
	for i, ds := range all {
		g.Go(func() error {
			results[i] = s.resultFor(ctx, ds, village, date)
			return nil
		})
	}
	_ = g.Wait()

	view := &domain.DayView{
		Village:  village,
		Date:     date,
		Datasets: results,
	}

	var failures []string
	for _, r := range results {
		if r.Failed() {
			failures = append(failures, fmt.Sprintf("%s: %s", r.Title, r.Error))
		}
	}
	view.Message = strings.Join(failures, "; ")
	return view
}

func (s *SeriesService) resultFor(ctx context.Context, ds config.DatasetConfig, village, date string) domain.DatasetResult {
	result := domain.DatasetResult{DatasetMeta: metaFor(ds, village, date)}

	series, err := s.extract(ctx, ds, village, date)
	if err != nil {
		result.Error = apperrors.MessageOf(err)
		result.ErrorType = string(apperrors.TypeOf(err))
		return result
	}
	result.Series = series
	return result
}

// extract runs one traced, measured extraction.
func (s *SeriesService) extract(ctx context.Context, ds config.DatasetConfig, village, date string) (domain.DaySeries, error) {
	ctx, span := s.tracer.Start(ctx, "series.extract", trace.WithAttributes(
		attribute.String("dataset", ds.Name),
		attribute.String("village", village),
		attribute.String("date", date),
	))
	defer span.End()

	start := time.Now()
	series, err := s.load(ctx, ds, village, date)
	elapsed := time.Since(start)

	if err != nil {
		errType := apperrors.TypeOf(err)
		infrastructure.RecordError(ctx, err)
		s.metrics.RecordExtraction(ctx, ds.Name, string(errType), elapsed, 0)
		s.logger.WarnContext(ctx, "extraction failed",
			slog.String("dataset", ds.Name),
			slog.String("village", village),
			slog.String("date", date),
			slog.String("error_type", string(errType)),
			slog.String("error", err.Error()))
		return nil, err
	}

	span.SetAttributes(attribute.Int("points", len(series)))
	s.metrics.RecordExtraction(ctx, ds.Name, "", elapsed, len(series))
	s.logger.DebugContext(ctx, "extraction complete",
		slog.String("dataset", ds.Name),
		slog.String("village", village),
		slog.String("date", date),
		slog.Int("points", len(series)),
		slog.Duration("duration", elapsed))
	return series, nil
}

func (s *SeriesService) load(ctx context.Context, ds config.DatasetConfig, village, date string) (domain.DaySeries, error) {
	target, err := dayseries.ParseDate(date)
	if err != nil {
		return nil, err
	}

	sel, err := selectorFor(ds, village)
	if err != nil {
		return nil, err
	}

	src, err := s.opener.Open(ctx, ds.Path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	sheet, err := src.Sheet(sel)
	if err != nil {
		return nil, err
	}

	return dayseries.Extract(sheet, dayseries.ColumnMapping{
		Datetime: ds.DatetimeColumn,
		Value:    ds.ValueColumn,
	}, target)
}

func selectorFor(ds config.DatasetConfig, village string) (workbook.Selector, error) {
	if ds.SheetFromVillage {
		if strings.TrimSpace(village) == "" {
			return workbook.Selector{}, apperrors.NewAppValidationError(
				fmt.Sprintf("village is required for dataset %s", ds.Name))
		}
		return workbook.ByName(village), nil
	}
	return workbook.SelectorFor(ds.Sheet, ds.SheetIndex), nil
}

func metaFor(ds config.DatasetConfig, village, date string) domain.DatasetMeta {
	meta := domain.DatasetMeta{
		Name:  ds.Name,
		Title: ds.Title,
		Unit:  ds.Unit,
		Date:  date,
	}
	if ds.SheetFromVillage {
		meta.Village = village
	}
	return meta
}
