// Package report renders the statistical report for a completed synthesis
// job: a paginated PDF with descriptive statistics, plain-language
// explanations, and a histogram of the input frequencies.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/scentesia/neuroaudio/internal/frequency"
	"github.com/scentesia/neuroaudio/pkg/models"
)

// ErrRender is returned when the report document cannot be produced.
var ErrRender = errors.New("report: render failed")

// Meta carries job context printed in the report header and footer.
type Meta struct {
	JobID         string // short job id
	Label         string // submitting-company label, may be empty
	CreatedAt     time.Time
	AudioDuration time.Duration
}

// statRow pairs a statistic with its value for the report table.
type statRow struct {
	name  string
	value float64
}

// explanations maps each statistic name to a short non-technical
// description. Every row rendered in the report must have an entry here.
var explanations = map[string]string{
	"Count":              "How many frequency values were read from the file and mixed into the audio.",
	"Mean":               "The average of all frequencies in the series.",
	"Median":             "The middle value when the frequencies are sorted; unlike the mean it ignores extreme outliers.",
	"Standard deviation": "How far the frequencies typically spread out around the average. Zero means every value is identical.",
	"Minimum":            "The lowest frequency found in the series.",
	"Maximum":            "The highest frequency found in the series.",
	"1st quartile":       "One quarter of all frequencies fall below this value.",
	"3rd quartile":       "Three quarters of all frequencies fall below this value.",
}

// Renderer produces report artifacts. The zero value is ready to use.
type Renderer struct{}

// Render builds the PDF report for a summary. The histogram is rendered
// first; a degenerate single-value distribution still yields a valid chart.
func (Renderer) Render(meta Meta, sum frequency.Summary) (*models.ReportArtifact, error) {
	hist, err := renderHistogram(sum)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("NeuroAudio Report", false)
	pdf.SetAuthor("NeuroAudio System", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "NeuroAudio Technical Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(0, 5, "Frequency Processing Platform", "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "PROCESSING INFORMATION", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	label := meta.Label
	if label == "" {
		label = "Client"
	}
	info := []string{
		fmt.Sprintf("Company: %s", FoldASCII(label)),
		fmt.Sprintf("Processing ID: %s", meta.JobID),
		fmt.Sprintf("Date: %s", meta.CreatedAt.Format("02/01/2006 15:04:05")),
		fmt.Sprintf("Total frequencies: %d", sum.Count),
		fmt.Sprintf("Audio duration: %.0f seconds", meta.AudioDuration.Seconds()),
	}
	for _, line := range info {
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "FREQUENCY STATISTICS", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	rows := []statRow{
		{"Count", float64(sum.Count)},
		{"Mean", sum.Mean},
		{"Median", sum.Median},
		{"Standard deviation", sum.StdDev},
		{"Minimum", sum.Min},
		{"Maximum", sum.Max},
		{"1st quartile", sum.Q1},
		{"3rd quartile", sum.Q3},
	}
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(45, 6, row.name, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(35, 6, fmt.Sprintf("%.6f", row.value), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 6, explanations[row.name], "", "L", false)
	}
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "FREQUENCY DISTRIBUTION", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("histogram", opts, bytes.NewReader(hist))
	pdf.ImageOptions("histogram", 15, pdf.GetY(), 180, 0, true, opts, 0, "")

	pdf.SetY(-25)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5, "NeuroAudio System - Technical Processing", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Document ID: %s", meta.JobID), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	return &models.ReportArtifact{
		Data:     buf.Bytes(),
		MIMEType: "application/pdf",
		Pages:    pdf.PageCount(),
	}, nil
}
