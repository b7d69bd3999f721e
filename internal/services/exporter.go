package services

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"alfredoptarigan/ats-analyzer/internal/models"
)

const (
	ExportSheetName  = "ATS Results"
	XLSXContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportTimeLayout = time.RFC3339
	defaultSheetName = "Sheet1"
)

var exportHeaders = []string{
	"Rank", "File Name", "Name", "Email", "JD Score", "General Score", "Status", "Processed At", "Error",
}

type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

type Exporter interface {
	Export(results []models.BatchItemResult) (*ExportFile, error)
}

// XLSXExporter writes rows in the order given; callers rank first.
type XLSXExporter struct {
	now func() time.Time
}

func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{now: time.Now}
}

func (e *XLSXExporter) Export(results []models.BatchItemResult) (*ExportFile, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheetName, ExportSheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(ExportSheetName, "A1", &exportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, r := range results {
		row := []any{
			i + 1,
			r.FileName,
			r.Name,
			r.Email,
			r.JScore,
			r.GScore,
			string(r.Status),
			r.ProcessingTime.Format(exportTimeLayout),
			r.Error,
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(ExportSheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(ExportSheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze header row: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return &ExportFile{
		FileName:    fmt.Sprintf("ats_results_%d.xlsx", e.now().Unix()),
		ContentType: XLSXContentType,
		Data:        buf.Bytes(),
	}, nil
}
