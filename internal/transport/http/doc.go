// Package http contains the HTTP handlers of the viewer.
//
// HTMLHandler serves the village/date form and the day view page from
// embedded templates. SeriesHandler exposes the same data as JSON under
// /api, plus CSV, XLSX, PDF and PNG downloads. HealthHandler answers
// liveness and readiness probes, and ClientLogHandler accepts log lines
// from the view page's scripts.
//
// Errors are rendered as RFC 7807 problem details by errors.ErrorHandler.
// The JSON day view is the exception: it always answers 200 and reports
// failures per dataset, the same way the HTML page does.
package http
