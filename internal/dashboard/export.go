package dashboard

import (
	"bytes"
	"fmt"

	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/models"
	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/store"

	"github.com/xuri/excelize/v2"
)

const (
	exportSheet       = "Products"
	xlsxContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportFilePattern = "products_%s.xlsx"
)

var exportColumns = []struct {
	title string
	width float64
}{
	{"Name", 48},
	{"Category", 18},
	{"Competitor Price", 18},
	{"Suggested Price", 18},
	{"Min Competitor", 16},
	{"Max Competitor", 16},
	{"Average Competitor", 18},
	{"Competitiveness", 16},
	{"Source", 20},
	{"Stock", 14},
	{"Link", 60},
	{"Updated At", 22},
}

// BuildProductWorkbook lays the stored products out one per row below a
// styled header. Missing prices are left blank.
func BuildProductWorkbook(products []models.Product) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, col.title); err != nil {
			return nil, err
		}
		_ = f.SetCellStyle(exportSheet, cell, cell, headerStyle)

		colName, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(exportSheet, colName, colName, col.width)
	}

	for r, p := range products {
		row := []any{p.Name, p.Category, nil, nil, nil, nil, nil, nil, p.Source, p.Stock, p.Link, p.UpdatedAt.Format("2006-01-02 15:04:05")}
		if p.CompetitorPrice != nil {
			row[2] = *p.CompetitorPrice
		}
		if p.AISuggestedPrice != nil {
			row[3] = *p.AISuggestedPrice
		}
		// unreadable diagnostics only blank their columns
		if intel, err := store.DecodeIntelligence(p.PriceIntelligence); err == nil && intel != nil {
			row[4] = intel.MinCompetitorPrice
			row[5] = intel.MaxCompetitorPrice
			row[6] = intel.AverageCompetitorPrice
			row[7] = intel.CompetitivenessScore
		}

		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", r+2, err)
		}
	}

	_ = f.SetPanes(exportSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}
