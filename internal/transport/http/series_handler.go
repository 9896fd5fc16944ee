package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "loadpv/internal/errors"
	"loadpv/internal/exporter"
	mw "loadpv/internal/middleware"
	api "loadpv/pkg/contracts/api/v1"
)

// SeriesHandler serves villages, day series and their downloads as JSON or files
type SeriesHandler struct {
	service      SeriesServiceInterface
	validator    *mw.QueryValidator
	errorHandler *apierrors.ErrorHandler
	renderOpts   exporter.RenderOptions
	logger       *slog.Logger
}

// NewSeriesHandler creates a new series handler. renderOpts sizes PNG
// charts and controls the CSV BOM.
func NewSeriesHandler(service SeriesServiceInterface, validator *mw.QueryValidator, errorHandler *apierrors.ErrorHandler, renderOpts exporter.RenderOptions, logger *slog.Logger) *SeriesHandler {
	return &SeriesHandler{
		service:      service,
		validator:    validator,
		errorHandler: errorHandler,
		renderOpts:   renderOpts,
		logger:       logger.With(slog.String("component", "series_handler")),
	}
}

// Routes returns the series routes on their own router
func (h *SeriesHandler) Routes() chi.Router {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes registers the series routes on r
func (h *SeriesHandler) RegisterRoutes(r chi.Router) {
	r.Get("/villages", h.GetVillages)
	r.Get("/series", h.GetDayView)

	r.Route("/series/{dataset}", func(r chi.Router) {
		r.Use(h.DatasetCtx)
		r.Get("/", h.GetDataset)
		r.Get("/export.{format}", h.Export)
		r.Get("/chart.png", h.Chart)
	})
}

// DatasetCtx rejects malformed dataset names before any source is opened
func (h *SeriesHandler) DatasetCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dataset := chi.URLParam(r, "dataset")
		if dataset == "" || len(dataset) > 64 {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("dataset", "Invalid dataset name"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetVillages handles GET /api/villages
func (h *SeriesHandler) GetVillages(w http.ResponseWriter, r *http.Request) {
	villages, err := h.service.ListVillages(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   villages,
		"count":  len(villages),
	})
}

// GetDayView handles GET /api/series. Per-dataset failures are reported
// inside the body; the response itself is 200.
func (h *SeriesHandler) GetDayView(w http.ResponseWriter, r *http.Request) {
	var q api.SeriesQuery
	if err := h.validator.Decode(r, &q); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	view := h.service.DayView(r.Context(), q.Village, q.Date)
	if view.Message != "" {
		h.logger.InfoContext(r.Context(), "day view has failed datasets",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("village", q.Village),
			slog.String("date", q.Date),
			slog.String("message", view.Message))
	}
	render.JSON(w, r, view)
}

// GetDataset handles GET /api/series/{dataset}
func (h *SeriesHandler) GetDataset(w http.ResponseWriter, r *http.Request) {
	var q api.DatasetQuery
	if err := h.validator.Decode(r, &q); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, err := h.service.Dataset(r.Context(), chi.URLParam(r, "dataset"), q.Village, q.Date)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// Export handles GET /api/series/{dataset}/export.{format}
func (h *SeriesHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := api.ExportFormat(chi.URLParam(r, "format"))
	if !format.Valid() {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("format",
			fmt.Sprintf("format must be one of: %s, %s, %s, %s", api.ExportCSV, api.ExportXLSX, api.ExportPDF, api.ExportPNG)))
		return
	}
	h.serveFile(w, r, format, true)
}

// Chart handles GET /api/series/{dataset}/chart.png
func (h *SeriesHandler) Chart(w http.ResponseWriter, r *http.Request) {
	h.serveFile(w, r, api.ExportPNG, false)
}

func (h *SeriesHandler) serveFile(w http.ResponseWriter, r *http.Request, format api.ExportFormat, attachment bool) {
	var q api.DatasetQuery
	if err := h.validator.Decode(r, &q); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, err := h.service.Dataset(r.Context(), chi.URLParam(r, "dataset"), q.Village, q.Date)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	data, err := exporter.Render(format, result.DatasetMeta, result.Series, h.renderOpts)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render export",
			slog.String("format", string(format)),
			slog.String("dataset", result.Name),
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, err)
		return
	}

	disposition := "inline"
	if attachment {
		disposition = "attachment"
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", exporter.ContentDisposition(disposition, result.DatasetMeta, format))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
