package dto

import (
	"time"
)

// CreateEmployeeRequest - запрос на создание сотрудника
type CreateEmployeeRequest struct {
	Name         string  `json:"name" validate:"required,min=2,max=100"`
	Email        string  `json:"email" validate:"required,email"`
	Salary       float64 `json:"salary" validate:"required,gt=0"`
	DepartmentID int64   `json:"department_id" validate:"required,min=1"`
}

// UpdateEmployeeRequest - запрос на частичное обновление сотрудника.
// Поля со значением nil не изменяются.
type UpdateEmployeeRequest struct {
	Name         *string  `json:"name" validate:"omitempty,min=2,max=100"`
	Email        *string  `json:"email" validate:"omitempty,email"`
	Salary       *float64 `json:"salary" validate:"omitempty,gt=0"`
	DepartmentID *int64   `json:"department_id" validate:"omitempty,min=1"`
}

// CreateDepartmentRequest - запрос на создание отдела
type CreateDepartmentRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

// UpdateDepartmentRequest - запрос на обновление отдела
type UpdateDepartmentRequest struct {
	Name *string `json:"name" validate:"omitempty,min=2,max=100"`
}

// DepartmentSummary - краткие сведения об отделе внутри ответа по сотруднику
type DepartmentSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// EmployeeResponse - ответ с данными сотрудника
type EmployeeResponse struct {
	ID           int64              `json:"id"`
	Name         string             `json:"name"`
	Email        string             `json:"email"`
	Salary       float64            `json:"salary"`
	DepartmentID int64              `json:"department_id"`
	Department   *DepartmentSummary `json:"department,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// DepartmentResponse - ответ с данными отдела
type DepartmentResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	// omitzero: при include_employees пустой отдел отдаёт "employees": [],
	// а в ответах без вложенных сотрудников поле отсутствует.
	Employees []EmployeeResponse `json:"employees,omitzero"`
}

// FieldError - ошибка валидации конкретного поля
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Pagination - метаданные постраничного вывода
type Pagination struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	TotalRecords int64 `json:"total_records"`
	PerPage      int   `json:"per_page"`
	HasNext      bool  `json:"has_next"`
	HasPrev      bool  `json:"has_prev"`
}

// Response - единый конверт JSON ответа
type Response struct {
	Success    bool         `json:"success"`
	Message    string       `json:"message,omitempty"`
	Count      *int         `json:"count,omitempty"`
	Data       any          `json:"data,omitempty"`
	Errors     []FieldError `json:"errors,omitempty"`
	Pagination *Pagination  `json:"pagination,omitempty"`
	Error      string       `json:"error,omitempty"`
}

// HealthResponse - ответ health check
type HealthResponse struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}
