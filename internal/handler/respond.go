package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/employee-management-api/internal/domain"
	"github.com/employee-management-api/internal/dto"
	"github.com/employee-management-api/internal/query"
)

// responder содержит общую для всех хендлеров логику формирования ответов
// и единую трансляцию доменных ошибок в HTTP статусы
type responder struct {
	logger     *slog.Logger
	production bool
}

func (rp *responder) respondJSON(w http.ResponseWriter, status int, resp dto.Response) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		rp.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (rp *responder) respondError(w http.ResponseWriter, status int, message string, errs []dto.FieldError) {
	rp.respondJSON(w, status, dto.Response{
		Success: false,
		Message: message,
		Errors:  errs,
	})
}

// respondInternal отвечает 500; подробности ошибки попадают в тело
// только вне боевого режима
func (rp *responder) respondInternal(w http.ResponseWriter, message string, err error) {
	resp := dto.Response{
		Success: false,
		Message: message,
	}
	if !rp.production && err != nil {
		resp.Error = err.Error()
	}
	rp.respondJSON(w, http.StatusInternalServerError, resp)
}

// handleServiceError - единственная точка перевода ошибок сервисного слоя
// в статусы и тела HTTP ответов
func (rp *responder) handleServiceError(w http.ResponseWriter, err error) {
	var notEmpty *domain.DepartmentNotEmptyError
	var invalidQuery *query.ValidationError

	switch {
	case errors.Is(err, domain.ErrEmployeeNotFound):
		rp.respondError(w, http.StatusNotFound, "Employee not found", nil)
	case errors.Is(err, domain.ErrDepartmentNotFound):
		rp.respondError(w, http.StatusNotFound, "Department not found", nil)
	case errors.Is(err, domain.ErrDepartmentNotExists):
		rp.respondError(w, http.StatusBadRequest, "Department not found", nil)
	case errors.Is(err, domain.ErrDuplicateEmail):
		rp.respondError(w, http.StatusBadRequest, "Employee with this email already exists", nil)
	case errors.Is(err, domain.ErrDuplicateDepartmentName):
		rp.respondError(w, http.StatusBadRequest, "Department with this name already exists", nil)
	case errors.As(err, &notEmpty):
		message := fmt.Sprintf("Cannot delete department. It has %d employee(s) assigned.", notEmpty.Count)
		rp.respondError(w, http.StatusBadRequest, message, nil)
	case errors.As(err, &invalidQuery):
		rp.respondError(w, http.StatusBadRequest, "Validation error", []dto.FieldError{
			{Field: invalidQuery.Field, Message: invalidQuery.Message},
		})
	case errors.Is(err, domain.ErrExportFailed):
		rp.logger.Error("export failed", slog.Any("error", err))
		rp.respondInternal(w, "Failed to generate report", err)
	default:
		rp.logger.Error("internal error", slog.Any("error", err))
		rp.respondInternal(w, "Internal Server Error", err)
	}
}

// respondValidationError разворачивает ошибки валидатора в массив
// ошибок по полям
func (rp *responder) respondValidationError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		rp.respondError(w, http.StatusBadRequest, "Validation error", nil)
		return
	}

	fieldErrs := make([]dto.FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fieldErrs = append(fieldErrs, dto.FieldError{
			Field:   fe.Field(),
			Message: fieldErrorMessage(fe),
		})
	}

	rp.respondError(w, http.StatusBadRequest, "Validation error", fieldErrs)
}

// newValidator создаёт валидатор, который в ошибках использует имена полей
// из json тегов
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldLabels - человекочитаемые имена полей для сообщений об ошибках
var fieldLabels = map[string]string{
	"name":          "Name",
	"email":         "Email",
	"salary":        "Salary",
	"department_id": "Department ID",
}

func fieldErrorMessage(fe validator.FieldError) string {
	label := fieldLabels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Please provide a valid email address"
	case "gt":
		return label + " must be a positive number"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", label, fe.Param())
		}
		return label + " must be positive"
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", label, fe.Param())
	default:
		return label + " is invalid"
	}
}
