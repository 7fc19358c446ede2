package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/ekaraca/bulut-istakip/models"
	"github.com/ekaraca/bulut-istakip/utils"
)

// ReportService renders the stored rows into downloadable exports: a
// compact summary table and a detailed paginated PDF.
type ReportService struct{}

func NewReportService() *ReportService {
	return &ReportService{}
}

// SummaryRow is one line of the compact export.
type SummaryRow struct {
	Company   string `json:"company"`
	Position  string `json:"position"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Notes     string `json:"notes"`
}

// BuildSummary produces the compact tabular export with truncated notes.
func (rs *ReportService) BuildSummary(apps []models.Application) []SummaryRow {
	rows := make([]SummaryRow, 0, len(apps))
	for _, app := range apps {
		rows = append(rows, SummaryRow{
			Company:   app.Company,
			Position:  app.Position,
			Status:    string(app.Status),
			Timestamp: app.LastActionAt.Format(models.SheetTimeFormat),
			Notes:     utils.Truncate(app.Notes, 60),
		})
	}
	return rows
}

// BuildPDF renders one detailed block per application with its full
// history, most recent first. The core PDF fonts only cover cp1252, so
// every string goes through Transliterate first; generation must never
// fail because of free text.
func (rs *ReportService) BuildPDF(apps []models.Application, historyByApp map[string][]models.HistoryEntry, now time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, utils.Transliterate("Is Takip Raporu"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 5, now.Format(models.SheetTimeFormat), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for _, app := range apps {
		rs.writeApplication(pdf, app, historyByApp[app.ID])
	}
	if len(apps) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 8, utils.Transliterate("Kayit yok."), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (rs *ReportService) writeApplication(pdf *fpdf.Fpdf, app models.Application, history []models.HistoryEntry) {
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, utils.Transliterate(fmt.Sprintf("%s - %s", app.Company, app.Position)), "B", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	statusLine := fmt.Sprintf("%s | son islem: %s", app.Status.SheetLabel(), app.LastActionAt.Format(models.SheetTimeFormat))
	pdf.CellFormat(0, 6, utils.Transliterate(statusLine), "", 1, "L", false, 0, "")

	if app.Link != "" {
		pdf.SetTextColor(0, 0, 200)
		pdf.WriteLinkString(6, utils.Transliterate(app.Link), app.Link)
		pdf.Ln(6)
		pdf.SetTextColor(0, 0, 0)
	}

	if app.Notes != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 5, utils.Transliterate("Not: "+app.Notes), "", "L", false)
	}

	if len(history) > 0 {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(0, 6, utils.Transliterate("Gecmis"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for _, entry := range history {
			line := fmt.Sprintf("%s  %s  %s",
				entry.Timestamp.Format(models.SheetTimeFormat),
				entry.Action.SheetLabel(),
				entry.Detail)
			pdf.MultiCell(0, 5, utils.Transliterate(line), "", "L", false)
		}
	}
	pdf.Ln(6)
}
