package report

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// WriteCSV формирует CSV отчёт: строка заголовка и по строке на сотрудника.
// Значения с разделителями и кавычками экранируются по RFC 4180.
func WriteCSV(rows []Row) (*bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if err := w.Write(columns); err != nil {
		return nil, err
	}

	for _, row := range rows {
		record := []string{
			row.Name,
			row.Email,
			strconv.FormatFloat(row.Salary, 'f', 2, 64),
			row.DepartmentName,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf, nil
}
