package http

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	apierrors "loadpv/internal/errors"
	"loadpv/internal/exporter"
	mw "loadpv/internal/middleware"
	api "loadpv/pkg/contracts/api/v1"
	"loadpv/pkg/contracts/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"value":       exporter.FormatValue,
	"chartValues": exporter.RoundedValues,
}

// HTMLHandler serves the village/date form and the day view page
type HTMLHandler struct {
	service   SeriesServiceInterface
	validator *mw.QueryValidator
	templates *template.Template
	logger    *slog.Logger
}

// sourceInfo is one configured data source listed on the index page
type sourceInfo struct {
	Title string
	Path  string
}

type indexPage struct {
	Villages []string
	Sources  []sourceInfo
	Notice   string
}

type viewPage struct {
	Village  string
	Date     string
	Datasets []domain.DatasetResult
	Message  string
}

// NewHTMLHandler parses the embedded templates and creates the handler
func NewHTMLHandler(service SeriesServiceInterface, validator *mw.QueryValidator, logger *slog.Logger) (*HTMLHandler, error) {
	tmpl, err := template.New("pages").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &HTMLHandler{
		service:   service,
		validator: validator,
		templates: tmpl,
		logger:    logger.With(slog.String("component", "html_handler")),
	}, nil
}

// Index handles GET /. A failure to list villages is logged and shown as a
// notice next to an empty selector; the form is still served.
func (h *HTMLHandler) Index(w http.ResponseWriter, r *http.Request) {
	page := indexPage{}
	for _, ds := range h.service.Datasets() {
		page.Sources = append(page.Sources, sourceInfo{Title: ds.Title, Path: ds.Path})
	}

	villages, err := h.service.ListVillages(r.Context())
	if err != nil {
		h.logger.WarnContext(r.Context(), "failed to list villages",
			slog.String("error", err.Error()),
			slog.String("error_type", string(apierrors.TypeOf(err))))
		page.Notice = "Villages could not be loaded: " + apierrors.MessageOf(err)
		villages = []string{}
	}
	page.Villages = villages

	h.render(w, r, "index.html", page)
}

// View handles GET /view. Both parameters are required; a request missing
// either goes back to the form.
func (h *HTMLHandler) View(w http.ResponseWriter, r *http.Request) {
	q := api.SeriesQuery{
		Village: strings.TrimSpace(r.URL.Query().Get("village")),
		Date:    strings.TrimSpace(r.URL.Query().Get("date")),
	}
	if q.Village == "" || q.Date == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	page := viewPage{Village: q.Village, Date: q.Date}
	if err := h.validator.ValidateStruct(&q); err != nil {
		page.Message = "Invalid request: " + validationSummary(err)
		h.render(w, r, "view.html", page)
		return
	}

	view := h.service.DayView(r.Context(), q.Village, q.Date)
	page.Datasets = view.Datasets
	page.Message = view.Message
	if view.Message != "" {
		h.logger.WarnContext(r.Context(), "view rendered with errors",
			slog.String("village", q.Village),
			slog.String("date", q.Date),
			slog.String("message", view.Message))
	}

	h.render(w, r, "view.html", page)
}

// render executes into a buffer first so a template error never leaves a
// half-written page.
func (h *HTMLHandler) render(w http.ResponseWriter, r *http.Request, name string, data interface{}) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render template",
			slog.String("template", name),
			slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

func validationSummary(err error) string {
	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		return err.Error()
	}
	details, ok := apiErr.Details.([]apierrors.ValidationError)
	if !ok {
		return apiErr.Message
	}
	msgs := make([]string, len(details))
	for i, d := range details {
		msgs[i] = d.Message
	}
	return strings.Join(msgs, "; ")
}
