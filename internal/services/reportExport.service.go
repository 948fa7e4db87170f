package services

import (
	"bytes"
	"fmt"
	"time"

	"reefclean/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/xuri/excelize/v2"
)

const summarySheet = "Summary"

var summaryHeaders = []string{
	"Job ID",
	"Client",
	"Vessel",
	"Date",
	"Status",
	"Sections",
	"Completed",
	"Average %",
}

type ReportExportService struct {
	log logger.Logger
}

func NewReportExportService() *ReportExportService {
	return &ReportExportService{log: logger.New("reportExportService")}
}

// SummaryWorkbook renders the summary report as an xlsx workbook.
func (s *ReportExportService) SummaryWorkbook(summary types.ReportSummary) ([]byte, error) {
	log := s.log.Function("SummaryWorkbook")

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Warn("failed to close workbook", "error", err)
		}
	}()

	index, err := f.NewSheet(summarySheet)
	if err != nil {
		return nil, log.Err("failed to create sheet", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, log.Err("failed to remove default sheet", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return nil, log.Err("failed to create title style", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F6F8B"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, log.Err("failed to create header style", err)
	}

	title := fmt.Sprintf(
		"Cleaning summary %s to %s",
		summary.From.Format(time.DateOnly),
		summary.To.Format(time.DateOnly),
	)
	if err := f.SetCellValue(summarySheet, "A1", title); err != nil {
		return nil, log.Err("failed to write title", err)
	}
	if err := f.SetCellStyle(summarySheet, "A1", "A1", titleStyle); err != nil {
		return nil, log.Err("failed to style title", err)
	}

	const headerRow = 3
	for col, header := range summaryHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, headerRow)
		if err != nil {
			return nil, log.Err("failed to resolve header cell", err)
		}
		if err := f.SetCellValue(summarySheet, cell, header); err != nil {
			return nil, log.Err("failed to write header", err, "header", header)
		}
		if err := f.SetCellStyle(summarySheet, cell, cell, headerStyle); err != nil {
			return nil, log.Err("failed to style header", err, "header", header)
		}
	}

	if err := f.SetColWidth(summarySheet, "A", "A", 38); err != nil {
		return nil, log.Err("failed to size columns", err)
	}
	if err := f.SetColWidth(summarySheet, "B", "E", 22); err != nil {
		return nil, log.Err("failed to size columns", err)
	}

	for i, row := range summary.Rows {
		cell, err := excelize.CoordinatesToCellName(1, headerRow+1+i)
		if err != nil {
			return nil, log.Err("failed to resolve row cell", err)
		}

		values := []any{
			row.JobID.String(),
			row.ClientName,
			row.VesselName,
			row.Date.Format(time.DateTime),
			row.Status,
			row.TotalSections,
			row.CompletedSections,
			row.AveragePercent,
		}
		if err := f.SetSheetRow(summarySheet, cell, &values); err != nil {
			return nil, log.Err("failed to write row", err, "jobID", row.JobID)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, log.Err("failed to write workbook", err)
	}

	return buf.Bytes(), nil
}
