package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/employee-management-api/internal/domain"
	"github.com/employee-management-api/internal/dto"
	"github.com/employee-management-api/internal/service"
)

type DepartmentHandler struct {
	responder
	deptService service.DepartmentService
	validator   *validator.Validate
}

func NewDepartmentHandler(
	deptService service.DepartmentService,
	logger *slog.Logger,
	production bool,
) *DepartmentHandler {
	return &DepartmentHandler{
		responder:   responder{logger: logger, production: production},
		deptService: deptService,
		validator:   newValidator(),
	}
}

func (h *DepartmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.respondValidationError(w, err)
		return
	}

	dept, err := h.deptService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("department created",
		slog.String("name", dept.Name),
		slog.Int64("id", dept.ID),
	)

	h.respondJSON(w, http.StatusCreated, dto.Response{
		Success: true,
		Message: "Department created successfully",
		Data:    toDepartmentResponse(dept, false),
	})
}

func (h *DepartmentHandler) List(w http.ResponseWriter, r *http.Request) {
	includeEmployees := r.URL.Query().Get("include_employees") == "true"

	departments, err := h.deptService.List(r.Context(), includeEmployees)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	data := make([]dto.DepartmentResponse, 0, len(departments))
	for i := range departments {
		data = append(data, toDepartmentResponse(&departments[i], includeEmployees))
	}

	count := len(data)
	h.respondJSON(w, http.StatusOK, dto.Response{
		Success: true,
		Count:   &count,
		Data:    data,
	})
}

func (h *DepartmentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid department id", nil)
		return
	}

	dept, err := h.deptService.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.Response{
		Success: true,
		Data:    toDepartmentResponse(dept, true),
	})
}

func (h *DepartmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid department id", nil)
		return
	}

	var req dto.UpdateDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.respondValidationError(w, err)
		return
	}

	dept, err := h.deptService.Update(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.Response{
		Success: true,
		Message: "Department updated successfully",
		Data:    toDepartmentResponse(dept, false),
	})
}

func (h *DepartmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid department id", nil)
		return
	}

	if err := h.deptService.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("department deleted", slog.Int64("id", id))

	h.respondJSON(w, http.StatusOK, dto.Response{
		Success: true,
		Message: "Department deleted successfully",
	})
}

func toDepartmentResponse(dept *domain.Department, includeEmployees bool) dto.DepartmentResponse {
	resp := dto.DepartmentResponse{
		ID:        dept.ID,
		Name:      dept.Name,
		CreatedAt: dept.CreatedAt,
		UpdatedAt: dept.UpdatedAt,
	}

	if includeEmployees {
		resp.Employees = make([]dto.EmployeeResponse, 0, len(dept.Employees))
		for i := range dept.Employees {
			resp.Employees = append(resp.Employees, toEmployeeResponse(&dept.Employees[i]))
		}
	}

	return resp
}
