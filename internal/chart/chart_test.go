package chart

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loadpv/pkg/contracts/domain"
)

var meta = domain.DatasetMeta{Name: "load", Title: "Load", Unit: "MW", Village: "Alpha", Date: "2024-01-01"}

func TestRenderPNG(t *testing.T) {
	tests := []struct {
		name   string
		series domain.DaySeries
	}{
		{name: "series", series: domain.DaySeries{{Time: "00:00", Value: 2}, {Time: "00:30", Value: 1.5}, {Time: "01:00", Value: 3}}},
		{name: "single point", series: domain.DaySeries{{Time: "12:00", Value: 4.25}}},
		{name: "negative values", series: domain.DaySeries{{Time: "00:00", Value: -1}, {Time: "01:00", Value: -2}}},
		{name: "empty", series: domain.DaySeries{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := RenderPNG(meta, tt.series, 640, 320)
			require.NoError(t, err)

			img, err := png.Decode(bytes.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, 640, img.Bounds().Dx())
			assert.Equal(t, 320, img.Bounds().Dy())
		})
	}
}

func TestRenderPNG_InvalidSize(t *testing.T) {
	_, err := RenderPNG(meta, nil, 0, 100)
	assert.Error(t, err)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Load, Alpha, 2024-01-01", Title(meta, false))
	assert.Equal(t, "PV generation, 2024-01-01 (no data)",
		Title(domain.DatasetMeta{Title: "PV generation", Date: "2024-01-01"}, true))
	assert.Equal(t, "Load, Zürich, 2024-01-01",
		Title(domain.DatasetMeta{Title: "Load", Village: "Zürich", Date: "2024-01-01"}, false))
	assert.Equal(t, "Load, 2024-01-01",
		Title(domain.DatasetMeta{Title: "Load", Village: "東村", Date: "2024-01-01"}, false))
}

func TestLatin1(t *testing.T) {
	assert.True(t, Latin1(""))
	assert.True(t, Latin1("Alpha"))
	assert.True(t, Latin1("Señora Ñandú"))
	assert.False(t, Latin1("東村"))
	assert.False(t, Latin1("Łódź"))
}

func TestRenderPNG_NonLatinVillage(t *testing.T) {
	cjk := meta
	cjk.Village = "東村"

	data, err := RenderPNG(cjk, domain.DaySeries{{Time: "00:00", Value: 1}}, 320, 200)
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
}

func TestLabelTicks(t *testing.T) {
	labels := make([]string, 96)
	for i := range labels {
		labels[i] = "x"
	}

	ticks := labelTicks(labels)
	require.Len(t, ticks, 96)

	labelled := 0
	for _, tk := range ticks {
		if tk.Label != "" {
			labelled++
		}
	}
	assert.Equal(t, 24, labelled)
	assert.Equal(t, "x", ticks[0].Label)
	assert.Empty(t, ticks[1].Label)
}
