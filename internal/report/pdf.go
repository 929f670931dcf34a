package report

import (
	"bytes"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
)

// Геометрия таблицы на странице A4, мм
const (
	pdfColName   = 45.0
	pdfColEmail  = 65.0
	pdfColSalary = 30.0
	pdfColDept   = 50.0
	pdfRowHeight = 8.0
	pdfPageLimit = 270.0
)

// WritePDF формирует табличный PDF отчёт. Строка заголовка повторяется
// на каждой странице; пустой набор данных даёт корректный документ
// без строк таблицы.
func WritePDF(rows []Row) (*bytes.Buffer, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Employee Report", false)
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(false, 10)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Employee Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Generated: "+time.Now().Format("2006-01-02 15:04:05"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(pdfColName, pdfRowHeight, "Name", "1", 0, "L", true, 0, "")
		pdf.CellFormat(pdfColEmail, pdfRowHeight, "Email", "1", 0, "L", true, 0, "")
		pdf.CellFormat(pdfColSalary, pdfRowHeight, "Salary", "1", 0, "R", true, 0, "")
		pdf.CellFormat(pdfColDept, pdfRowHeight, "Department", "1", 1, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 9)
	}

	writeHeader()

	for _, row := range rows {
		if pdf.GetY()+pdfRowHeight > pdfPageLimit {
			pdf.AddPage()
			writeHeader()
		}

		pdf.CellFormat(pdfColName, pdfRowHeight, row.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(pdfColEmail, pdfRowHeight, row.Email, "1", 0, "L", false, 0, "")
		pdf.CellFormat(pdfColSalary, pdfRowHeight, strconv.FormatFloat(row.Salary, 'f', 2, 64), "1", 0, "R", false, 0, "")
		pdf.CellFormat(pdfColDept, pdfRowHeight, row.DepartmentName, "1", 1, "L", false, 0, "")
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, err
	}

	return buf, nil
}
