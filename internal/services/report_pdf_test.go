package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderReportPDF(t *testing.T) {
	r, err := NewReportBuilder().Build(table(
		mm("ABC123", "DSP1", "John Doe", "R1", 85),
		mm("DEF456", "DSP1", "John Doe", "R1", 30),
		mm("GHI789", "", "Bob Johnson", "R3", 100),
	))
	require.NoError(t, err)

	generated := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	pdf, filename, err := RenderReportPDF(r, generated)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.Equal(t, "PNOV_REPORT_20250314.pdf", filename)
}

func TestRenderReportPDF_WithoutHighValueSection(t *testing.T) {
	pdf, _, err := RenderReportPDF(Report{GrandTotal: 0}, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}

func TestRenderReportPDF_AccentedNames(t *testing.T) {
	tr := gofpdf.New("P", "mm", "A4", "").UnicodeTranslatorFromDescriptor("")
	assert.Equal(t, "Zo\xeb M\xfcller", tr("Zoë Müller"))

	r, err := NewReportBuilder().Build(table(
		mm("A1", "Dépôt Nord", "Zoë Müller", "R1", 120),
		mm("A2", "Dépôt Nord", "Zoë Müller", "R1", 60),
	))
	require.NoError(t, err)

	pdf, _, err := RenderReportPDF(r, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}
