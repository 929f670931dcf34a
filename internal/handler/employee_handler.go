package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/employee-management-api/internal/domain"
	"github.com/employee-management-api/internal/dto"
	"github.com/employee-management-api/internal/query"
	"github.com/employee-management-api/internal/service"
)

type EmployeeHandler struct {
	responder
	empService    service.EmployeeService
	reportService service.ReportService
	validator     *validator.Validate
}

func NewEmployeeHandler(
	empService service.EmployeeService,
	reportService service.ReportService,
	logger *slog.Logger,
	production bool,
) *EmployeeHandler {
	return &EmployeeHandler{
		responder:     responder{logger: logger, production: production},
		empService:    empService,
		reportService: reportService,
		validator:     newValidator(),
	}
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.respondValidationError(w, err)
		return
	}

	emp, err := h.empService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("employee created",
		slog.String("name", emp.Name),
		slog.Int64("id", emp.ID),
	)

	h.respondJSON(w, http.StatusCreated, dto.Response{
		Success: true,
		Message: "Employee created successfully",
		Data:    toEmployeeResponse(emp),
	})
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := h.parseListParams(r)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	employees, pagination, err := h.empService.List(r.Context(), params)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	data := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		data = append(data, toEmployeeResponse(&employees[i]))
	}

	h.respondJSON(w, http.StatusOK, dto.Response{
		Success:    true,
		Data:       data,
		Pagination: pagination,
	})
}

func (h *EmployeeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid employee id", nil)
		return
	}

	emp, err := h.empService.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.Response{
		Success: true,
		Data:    toEmployeeResponse(emp),
	})
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid employee id", nil)
		return
	}

	var req dto.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.respondValidationError(w, err)
		return
	}

	emp, err := h.empService.Update(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("employee updated",
		slog.String("name", emp.Name),
		slog.Int64("id", emp.ID),
	)

	h.respondJSON(w, http.StatusOK, dto.Response{
		Success: true,
		Message: "Employee updated successfully",
		Data:    toEmployeeResponse(emp),
	})
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid employee id", nil)
		return
	}

	if err := h.empService.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("employee deleted", slog.Int64("id", id))

	h.respondJSON(w, http.StatusOK, dto.Response{
		Success: true,
		Message: "Employee deleted successfully",
	})
}

func (h *EmployeeHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "text/csv", h.reportService.ExportCSV)
}

func (h *EmployeeHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "application/pdf", h.reportService.ExportPDF)
}

func (h *EmployeeHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", h.reportService.ExportXLSX)
}

type exportFunc func(ctx context.Context, departmentID *int64) (*bytes.Buffer, string, error)

func (h *EmployeeHandler) export(w http.ResponseWriter, r *http.Request, contentType string, generate exportFunc) {
	departmentID, err := parseOptionalInt64(r, "department_id")
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	buf, filename, err := generate(r.Context(), departmentID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write export body", slog.Any("error", err))
	}
}

// parseListParams разбирает параметры списочного запроса; проверка границ
// и колонок выполняется при построении плана выборки
func (h *EmployeeHandler) parseListParams(r *http.Request) (query.ListEmployeesParams, error) {
	params := query.ListEmployeesParams{
		Search:    r.URL.Query().Get("search"),
		SortBy:    r.URL.Query().Get("sort_by"),
		SortOrder: r.URL.Query().Get("sort_order"),
	}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			return params, &query.ValidationError{Field: "page", Message: "page must be an integer"}
		}
		params.Page = page
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return params, &query.ValidationError{Field: "limit", Message: "limit must be an integer"}
		}
		params.Limit = limit
	}

	departmentID, err := parseOptionalInt64(r, "department_id")
	if err != nil {
		return params, err
	}
	params.DepartmentID = departmentID

	return params, nil
}

// extractID читает идентификатор из пути запроса
func extractID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// parseOptionalInt64 читает необязательный числовой параметр запроса
func parseOptionalInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, &query.ValidationError{Field: name, Message: name + " must be an integer"}
	}
	return &value, nil
}

func toEmployeeResponse(emp *domain.Employee) dto.EmployeeResponse {
	resp := dto.EmployeeResponse{
		ID:           emp.ID,
		Name:         emp.Name,
		Email:        emp.Email,
		Salary:       emp.Salary,
		DepartmentID: emp.DepartmentID,
		CreatedAt:    emp.CreatedAt,
		UpdatedAt:    emp.UpdatedAt,
	}

	if emp.Department != nil {
		resp.Department = &dto.DepartmentSummary{
			ID:   emp.Department.ID,
			Name: emp.Department.Name,
		}
	}

	return resp
}
