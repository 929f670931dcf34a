package report

// Row - одна строка отчёта по сотрудникам
type Row struct {
	Name           string
	Email          string
	Salary         float64
	DepartmentName string
}

// Заголовки колонок, единые для всех форматов
var columns = []string{"name", "email", "salary", "department"}
