package domain

import (
	"errors"
	"fmt"
)

// Определение бизнес-ошибок
var (
	ErrDepartmentNotFound      = errors.New("department not found")
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrDuplicateDepartmentName = errors.New("department with this name already exists")
	ErrDuplicateEmail          = errors.New("employee with this email already exists")
	ErrDepartmentNotExists     = errors.New("referenced department does not exist")
	ErrExportFailed            = errors.New("report export failed")
)

// DepartmentNotEmptyError возвращается при попытке удалить отдел,
// в котором ещё числятся сотрудники
type DepartmentNotEmptyError struct {
	Count int64
}

func (e *DepartmentNotEmptyError) Error() string {
	return fmt.Sprintf("cannot delete department: it has %d employee(s) assigned", e.Count)
}
