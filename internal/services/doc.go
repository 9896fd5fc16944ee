// Package services holds the request-level logic between the HTTP handlers
// and the workbook readers.
//
// SeriesService opens the configured load and PV workbooks, selects the
// sheet for a dataset (by village name or by configured selector) and hands
// it to the day-series extractor. DayView reads both datasets concurrently
// and records each failure on its own result, so one broken source never
// hides the other's chart.
//
// Services take their dependencies through constructors: the dataset
// configuration, a workbook.Opener, a *slog.Logger and optional tracing and
// metrics instruments.
package services
