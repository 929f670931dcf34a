package report

import (
	"bytes"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Employees"

// WriteXLSX формирует XLSX отчёт: лист Employees с жирной строкой
// заголовка и теми же колонками, что в CSV
func WriteXLSX(rows []Row) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E6E6E6"}},
	})
	if err != nil {
		return nil, err
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(xlsxSheet, cell, col); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(xlsxSheet, "A1", "D1", headerStyle); err != nil {
		return nil, err
	}

	for i, row := range rows {
		values := []any{row.Name, row.Email, row.Salary, row.DepartmentName}
		for j, value := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(xlsxSheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(xlsxSheet, "A", "B", 30); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(xlsxSheet, "C", "D", 18); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}
