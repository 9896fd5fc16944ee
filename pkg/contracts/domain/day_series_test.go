package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaySeries_Accessors(t *testing.T) {
	s := DaySeries{{Time: "00:00", Value: 2}, {Time: "00:30", Value: 1.5}}

	assert.Equal(t, []string{"00:00", "00:30"}, s.Labels())
	assert.Equal(t, []float64{2, 1.5}, s.Values())
	assert.False(t, s.Empty())
	assert.True(t, DaySeries{}.Empty())
}

func TestDatasetResult_JSON(t *testing.T) {
	ok := DatasetResult{
		DatasetMeta: DatasetMeta{Name: "load", Title: "Load", Unit: "MW", Village: "Alpha", Date: "2024-01-01"},
		Series:      DaySeries{},
	}
	data, err := json.Marshal(ok)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"load","title":"Load","unit":"MW","village":"Alpha","date":"2024-01-01","series":[]}`, string(data))

	failed := DatasetResult{DatasetMeta: DatasetMeta{Name: "pv"}, Error: "boom", ErrorType: "SOURCE_NOT_FOUND"}
	assert.True(t, failed.Failed())
	assert.False(t, ok.Failed())
}

func TestDayView_Dataset(t *testing.T) {
	view := &DayView{Datasets: []DatasetResult{{DatasetMeta: DatasetMeta{Name: "load"}}, {DatasetMeta: DatasetMeta{Name: "pv"}}}}

	pv, found := view.Dataset("pv")
	assert.True(t, found)
	assert.Equal(t, "pv", pv.Name)

	_, found = view.Dataset("wind")
	assert.False(t, found)
}
