package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scentesia/neuroaudio/internal/frequency"
)

func testSummary(t *testing.T, values ...float64) frequency.Summary {
	t.Helper()
	s, err := frequency.NewSeries(values)
	require.NoError(t, err)
	return frequency.Summarize(s, 10)
}

func TestRender(t *testing.T) {
	meta := Meta{
		JobID:         "A1B2C3D4",
		Label:         "Acme Aromas",
		CreatedAt:     time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		AudioDuration: 30 * time.Second,
	}

	art, err := Renderer{}.Render(meta, testSummary(t, 1, 2, 3, 4, 5, 6, 7, 8))
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", art.MIMEType)
	assert.GreaterOrEqual(t, art.Pages, 1)
	assert.True(t, bytes.HasPrefix(art.Data, []byte("%PDF")), "artifact must be a PDF document")
}

func TestRenderSingleValueDistribution(t *testing.T) {
	// A degenerate one-bucket histogram must still render, not error.
	art, err := Renderer{}.Render(Meta{JobID: "FFFFFFFF", CreatedAt: time.Now()}, testSummary(t, 7))
	require.NoError(t, err)
	assert.NotEmpty(t, art.Data)
}

func TestRenderHistogramPNG(t *testing.T) {
	png, err := renderHistogram(testSummary(t, 1, 1, 2, 3, 5, 8, 13))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")), "chart must be a PNG image")
}

func TestFoldASCII(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme", "Acme"},
		{"Ção Paulo Aromas", "Cao Paulo Aromas"},
		{"Crème Brûlée", "Creme Brulee"},
		{"株式会社", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FoldASCII(tt.in))
	}
}

func TestFileLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme Aromas", "Acme_Aromas"},
		{"  Ção / Paulo!  ", "Cao_Paulo"},
		{"a--b..c", "a_b_c"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FileLabel(tt.in))
	}
}
