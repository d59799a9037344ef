package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/clinic-crm/internal/models"
)

const sheetName = "Pacientes"

func XLSX(leads []models.Lead) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}

	for i, header := range Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for r, l := range leads {
		values := row(l)
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheetName, cell, v)
		}
		// Valor as a number so the sheet can sum it
		valueCell, _ := excelize.CoordinatesToCellName(7, r+2)
		f.SetCellValue(sheetName, valueCell, l.Value.InexactFloat64())
	}

	f.SetColWidth(sheetName, "A", "K", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
