package pdf_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mandu619/apa-depto-personal/internal/application/dto"
	"github.com/mandu619/apa-depto-personal/internal/infrastructure/pdf"
)

func TestReportPDF_Render(t *testing.T) {
	report := &dto.ReportResponse{
		Query: dto.ReportQuery{Mode: dto.ReportByType, Filter: "guantes", From: "2026-01-01"},
		Rows: []dto.ReportRow{
			{Date: "2026-03-02", Kind: "Asignación", EntryType: "Guantes", Worker: "Ana Pérez", EntryID: "e1", Description: "Nitrilo M", Quantity: 4, Reason: "Reposición"},
			{Date: "2026-03-01", Kind: "Merma", EntryType: "Guantes", EntryID: "e1", Description: "Nitrilo M", Quantity: 1, Reason: "Otro: roto"},
		},
		Summary:     dto.ReportSummary{Rows: 2, TotalQuantity: 5, ScrapQuantity: 1, RemainingStock: 12500},
		GeneratedAt: time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC),
	}

	out, err := pdf.NewReportPDF("").Render(report)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestReportPDF_EmptyReport(t *testing.T) {
	out, err := pdf.NewReportPDF("Depósito").Render(&dto.ReportResponse{GeneratedAt: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))

	_, err = pdf.NewReportPDF("").Render(nil)
	assert.Error(t, err)
}
