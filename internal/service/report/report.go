package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"flatplan/internal/layout"
	"flatplan/internal/storage"
)

type ReportStorage interface {
	GetLayout(ctx context.Context, id string) (*storage.Layout, error)
}

type ReportService struct {
	storage ReportStorage
}

func NewReportService(storage ReportStorage) *ReportService {
	return &ReportService{storage: storage}
}

// GenerateExcel renders the analytics view of one layout into an .xlsx
// workbook and returns the encoded bytes.
func (g *ReportService) GenerateExcel(ctx context.Context, layoutID string) ([]byte, error) {
	const op = "service.report.GenerateExcel"

	doc, err := g.storage.GetLayout(ctx, layoutID)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch layout: %w", op, err)
	}

	d, _ := layout.FromRecords(doc.Pages)
	analytics := layout.ComputeAnalytics(d)

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Flatplan Report"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	f.SetCellValue(sheet, "A1", doc.PublicationName)
	f.SetCellValue(sheet, "B1", doc.IssueName)
	f.SetCellValue(sheet, "C1", doc.PublicationDate)
	f.SetCellStyle(sheet, "A1", "C1", headerStyle)

	f.SetCellValue(sheet, "A3", "Total pages")
	f.SetCellValue(sheet, "B3", analytics.TotalPages)
	f.SetCellValue(sheet, "A4", "Editorial pages (incl. fractional)")
	f.SetCellValue(sheet, "B4", analytics.TotalEditorial)
	f.SetCellValue(sheet, "A5", "Advertisement pages (incl. fractional)")
	f.SetCellValue(sheet, "B5", analytics.TotalAds)

	row := 7
	row = writeTypeBlock(f, sheet, row, layout.PageEditorial, analytics.PageTypes.Edit)
	row = writeTypeBlock(f, sheet, row, layout.PageAd, analytics.PageTypes.Ad)
	row = writeMixedBlock(f, sheet, row, analytics.PageTypes.Mixed)
	row = writeTypeBlock(f, sheet, row, layout.PagePlaceholder, analytics.PageTypes.Placeholder)
	if analytics.PageTypes.Unknown.Total > 0 {
		row = writeTypeBlock(f, sheet, row, layout.PageUnknown, analytics.PageTypes.Unknown)
	}

	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Fractional unit sizes")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
	row++
	for _, size := range []string{"1/4", "1/3", "1/2", "2/3"} {
		if count := analytics.FractionalAdSizes[size]; count > 0 {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), size+" page units")
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), count)
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: encoding workbook: %w", op, err)
	}

	return buf.Bytes(), nil
}

// writeTypeBlock writes one page-type header with its section rows and
// returns the next free row.
func writeTypeBlock(f *excelize.File, sheet string, row int, t layout.PageType, stats layout.TypeStats) int {
	info := t.Info()

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{info.Color}, Pattern: 1},
	})

	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), info.Label+" pages")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), stats.Total)
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), style)
	row++

	for section, count := range stats.Sections {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "  "+section)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), count)
		row++
	}

	return row + 1
}

func writeMixedBlock(f *excelize.File, sheet string, row int, stats layout.MixedTypeStats) int {
	row = writeTypeBlock(f, sheet, row, layout.PageMixed, stats.TypeStats) - 1

	if stats.Total > 0 {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "  Advertisement share")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), fmt.Sprintf("%.0f%%", stats.AdPercentage*100))
		row++
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "  Editorial share")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), fmt.Sprintf("%.0f%%", stats.EditorialPercentage*100))
		row++
	}

	return row + 1
}
