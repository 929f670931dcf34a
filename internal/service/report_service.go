package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/employee-management-api/internal/domain"
	"github.com/employee-management-api/internal/report"
	"github.com/employee-management-api/internal/repository"
)

// ReportService определяет интерфейс экспорта отчётов по сотрудникам.
// Каждый метод возвращает готовый буфер артефакта и рекомендуемое имя файла;
// частичные файлы наружу не отдаются.
type ReportService interface {
	ExportCSV(ctx context.Context, departmentID *int64) (*bytes.Buffer, string, error)
	ExportPDF(ctx context.Context, departmentID *int64) (*bytes.Buffer, string, error)
	ExportXLSX(ctx context.Context, departmentID *int64) (*bytes.Buffer, string, error)
}

type reportService struct {
	empRepo repository.EmployeeRepository
	logger  *slog.Logger
}

// NewReportService создаёт новый экземпляр сервиса отчётов
func NewReportService(empRepo repository.EmployeeRepository, logger *slog.Logger) ReportService {
	return &reportService{
		empRepo: empRepo,
		logger:  logger,
	}
}

func (s *reportService) ExportCSV(ctx context.Context, departmentID *int64) (*bytes.Buffer, string, error) {
	rows, err := s.fetchRows(ctx, departmentID)
	if err != nil {
		return nil, "", err
	}

	buf, err := report.WriteCSV(rows)
	if err != nil {
		s.logger.Error("csv rendering failed", slog.Any("error", err))
		return nil, "", fmt.Errorf("%w: %w", domain.ErrExportFailed, err)
	}

	return buf, "employees.csv", nil
}

func (s *reportService) ExportPDF(ctx context.Context, departmentID *int64) (*bytes.Buffer, string, error) {
	rows, err := s.fetchRows(ctx, departmentID)
	if err != nil {
		return nil, "", err
	}

	buf, err := report.WritePDF(rows)
	if err != nil {
		s.logger.Error("pdf rendering failed", slog.Any("error", err))
		return nil, "", fmt.Errorf("%w: %w", domain.ErrExportFailed, err)
	}

	return buf, "employees.pdf", nil
}

func (s *reportService) ExportXLSX(ctx context.Context, departmentID *int64) (*bytes.Buffer, string, error) {
	rows, err := s.fetchRows(ctx, departmentID)
	if err != nil {
		return nil, "", err
	}

	buf, err := report.WriteXLSX(rows)
	if err != nil {
		s.logger.Error("xlsx rendering failed", slog.Any("error", err))
		return nil, "", fmt.Errorf("%w: %w", domain.ErrExportFailed, err)
	}

	return buf, "employees.xlsx", nil
}

// fetchRows загружает весь набор данных отчёта, опционально по одному отделу
func (s *reportService) fetchRows(ctx context.Context, departmentID *int64) ([]report.Row, error) {
	employees, err := s.empRepo.FindForReport(ctx, departmentID)
	if err != nil {
		s.logger.Error("report dataset fetch failed", slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", domain.ErrExportFailed, err)
	}

	rows := make([]report.Row, 0, len(employees))
	for _, emp := range employees {
		row := report.Row{
			Name:   emp.Name,
			Email:  emp.Email,
			Salary: emp.Salary,
		}
		if emp.Department != nil {
			row.DepartmentName = emp.Department.Name
		}
		rows = append(rows, row)
	}

	return rows, nil
}
