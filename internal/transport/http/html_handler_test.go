package http

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "loadpv/internal/errors"
	mw "loadpv/internal/middleware"
	"loadpv/internal/shared/testutil"
	"loadpv/pkg/contracts/domain"
)

func newTestHTMLHandler(t *testing.T, svc SeriesServiceInterface) (*HTMLHandler, *testutil.BufferedSlogHandler) {
	t.Helper()
	logger, logs := testutil.NewTestLogger(t)
	h, err := NewHTMLHandler(svc, mw.NewQueryValidator(logger), logger)
	require.NoError(t, err)
	return h, logs
}

func TestHTMLHandler_Index(t *testing.T) {
	svc := new(MockSeriesService)
	svc.On("ListVillages").Return([]string{"Alpha", "Beta"}, nil)
	h, _ := newTestHTMLHandler(t, svc)

	rec := httptest.NewRecorder()
	h.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, `<option value="Alpha">Alpha</option>`)
	assert.Contains(t, body, `<option value="Beta">Beta</option>`)
	assert.Contains(t, body, `type="date"`)
	assert.NotContains(t, body, `class="notice"`)
}

func TestHTMLHandler_IndexListingFailure(t *testing.T) {
	svc := new(MockSeriesService)
	svc.On("ListVillages").Return(nil, apierrors.NewSourceInvalidError("/data/load.xlsx", errors.New("zip: not a valid zip file")))
	h, logs := newTestHTMLHandler(t, svc)

	rec := httptest.NewRecorder()
	h.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `class="notice"`)
	assert.Contains(t, body, "data source is not a readable workbook")
	assert.NotContains(t, body, "<option")
	testutil.AssertLogContains(t, logs, slog.LevelWarn, "failed to list villages")
	testutil.AssertLogAttr(t, logs, "error_type", "SOURCE_INVALID")
}

func TestHTMLHandler_ViewRedirects(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"no parameters", ""},
		{"no date", "?village=Alpha"},
		{"no village", "?date=2024-01-01"},
		{"blank village", "?village=%20%20&date=2024-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockSeriesService)
			h, _ := newTestHTMLHandler(t, svc)

			rec := httptest.NewRecorder()
			h.View(rec, httptest.NewRequest(http.MethodGet, "/view"+tt.query, nil))

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/", rec.Header().Get("Location"))
			svc.AssertNotCalled(t, "DayView")
		})
	}
}

func TestHTMLHandler_View(t *testing.T) {
	view := &domain.DayView{
		Village: "Alpha",
		Date:    "2024-01-01",
		Datasets: []domain.DatasetResult{
			loadResult(domain.DaySeries{{Time: "00:00", Value: 2}, {Time: "00:30", Value: 1.5}}),
			{
				DatasetMeta: domain.DatasetMeta{Name: "pv", Title: "PV generation", Date: "2024-01-01"},
				Error:       "data source not found: /data/pv.xlsx",
				ErrorType:   "SOURCE_NOT_FOUND",
			},
		},
		Message: "PV generation: data source not found: /data/pv.xlsx",
	}
	svc := new(MockSeriesService)
	svc.On("DayView", "Alpha", "2024-01-01").Return(view)
	h, logs := newTestHTMLHandler(t, svc)

	rec := httptest.NewRecorder()
	h.View(rec, httptest.NewRequest(http.MethodGet, "/view?village=Alpha&date=2024-01-01", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `class="error"`)
	assert.Contains(t, body, "PV generation: data source not found: /data/pv.xlsx")
	assert.Contains(t, body, "<td>00:30</td><td>1.500000</td>")
	assert.Contains(t, body, `id="chart-0"`)
	assert.NotContains(t, body, `id="chart-1"`)
	assert.Contains(t, body, "/api/series/load/export.csv?village=Alpha&date=2024-01-01")
	assert.Contains(t, body, "chart.umd.min.js")
	testutil.AssertLogContains(t, logs, slog.LevelWarn, "view rendered with errors")
}

func TestHTMLHandler_ViewChartDataRounded(t *testing.T) {
	view := &domain.DayView{
		Village:  "Alpha",
		Date:     "2024-01-01",
		Datasets: []domain.DatasetResult{loadResult(domain.DaySeries{{Time: "00:00", Value: 1.23456789}, {Time: "00:30", Value: 0.5}})},
	}
	svc := new(MockSeriesService)
	svc.On("DayView", "Alpha", "2024-01-01").Return(view)
	h, _ := newTestHTMLHandler(t, svc)

	rec := httptest.NewRecorder()
	h.View(rec, httptest.NewRequest(http.MethodGet, "/view?village=Alpha&date=2024-01-01", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "[1.234568,0.5]")
	assert.Contains(t, body, "<td>00:00</td><td>1.234568</td>")
	assert.NotContains(t, body, "1.23456789")
}

func TestHTMLHandler_ViewEmptySeries(t *testing.T) {
	view := &domain.DayView{
		Village:  "Alpha",
		Date:     "2030-01-01",
		Datasets: []domain.DatasetResult{loadResult(domain.DaySeries{})},
	}
	svc := new(MockSeriesService)
	svc.On("DayView", "Alpha", "2030-01-01").Return(view)
	h, _ := newTestHTMLHandler(t, svc)

	rec := httptest.NewRecorder()
	h.View(rec, httptest.NewRequest(http.MethodGet, "/view?village=Alpha&date=2030-01-01", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "No data for this day.")
	assert.NotContains(t, body, `class="error"`)
	assert.NotContains(t, body, "<canvas")
}

func TestHTMLHandler_ViewInvalidVillage(t *testing.T) {
	svc := new(MockSeriesService)
	h, _ := newTestHTMLHandler(t, svc)

	rec := httptest.NewRecorder()
	h.View(rec, httptest.NewRequest(http.MethodGet, "/view?village=%07bell&date=2024-01-01", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid request")
	svc.AssertNotCalled(t, "DayView", "\abell", "2024-01-01")
}
