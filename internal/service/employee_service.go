package service

import (
	"context"
	"math"
	"strings"

	"github.com/employee-management-api/internal/domain"
	"github.com/employee-management-api/internal/dto"
	"github.com/employee-management-api/internal/query"
	"github.com/employee-management-api/internal/repository"
)

// EmployeeService определяет интерфейс бизнес-логики для сотрудников
type EmployeeService interface {
	Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*domain.Employee, error)
	List(ctx context.Context, params query.ListEmployeesParams) ([]domain.Employee, *dto.Pagination, error)
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	Update(ctx context.Context, id int64, req *dto.UpdateEmployeeRequest) (*domain.Employee, error)
	Delete(ctx context.Context, id int64) error
}

type employeeService struct {
	empRepo  repository.EmployeeRepository
	deptRepo repository.DepartmentRepository
}

// NewEmployeeService создаёт новый экземпляр сервиса
func NewEmployeeService(empRepo repository.EmployeeRepository, deptRepo repository.DepartmentRepository) EmployeeService {
	return &employeeService{
		empRepo:  empRepo,
		deptRepo: deptRepo,
	}
}

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*domain.Employee, error) {
	// Проверяем существование отдела
	if _, err := s.deptRepo.GetByID(ctx, req.DepartmentID); err != nil {
		if err == domain.ErrDepartmentNotFound {
			return nil, domain.ErrDepartmentNotExists
		}
		return nil, err
	}

	email := strings.TrimSpace(req.Email)

	// Проверяем уникальность email
	exists, err := s.empRepo.ExistsByEmail(ctx, email, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	emp := &domain.Employee{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Salary:       roundSalary(req.Salary),
		DepartmentID: req.DepartmentID,
	}

	if err := s.empRepo.Create(ctx, emp); err != nil {
		return nil, err
	}

	// Перечитываем запись вместе с данными отдела
	return s.empRepo.GetByID(ctx, emp.ID)
}

func (s *employeeService) List(ctx context.Context, params query.ListEmployeesParams) ([]domain.Employee, *dto.Pagination, error) {
	plan, err := query.BuildEmployeeListPlan(params)
	if err != nil {
		return nil, nil, err
	}

	employees, total, err := s.empRepo.List(ctx, plan)
	if err != nil {
		return nil, nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(plan.Limit)))

	pagination := &dto.Pagination{
		CurrentPage:  plan.Page,
		TotalPages:   totalPages,
		TotalRecords: total,
		PerPage:      plan.Limit,
		HasNext:      plan.Page < totalPages,
		HasPrev:      plan.Page > 1,
	}

	return employees, pagination, nil
}

func (s *employeeService) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	return s.empRepo.GetByID(ctx, id)
}

func (s *employeeService) Update(ctx context.Context, id int64, req *dto.UpdateEmployeeRequest) (*domain.Employee, error) {
	emp, err := s.empRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		emp.Name = strings.TrimSpace(*req.Name)
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)

		exists, err := s.empRepo.ExistsByEmail(ctx, email, &id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicateEmail
		}

		emp.Email = email
	}

	if req.Salary != nil {
		emp.Salary = roundSalary(*req.Salary)
	}

	if req.DepartmentID != nil {
		if _, err := s.deptRepo.GetByID(ctx, *req.DepartmentID); err != nil {
			if err == domain.ErrDepartmentNotFound {
				return nil, domain.ErrDepartmentNotExists
			}
			return nil, err
		}
		emp.DepartmentID = *req.DepartmentID
	}

	// Save не трогает связанные записи, обнуляем подгруженный отдел
	emp.Department = nil

	if err := s.empRepo.Update(ctx, emp); err != nil {
		return nil, err
	}

	return s.empRepo.GetByID(ctx, id)
}

func (s *employeeService) Delete(ctx context.Context, id int64) error {
	if _, err := s.empRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return s.empRepo.Delete(ctx, id)
}

// roundSalary приводит зарплату к двум знакам после запятой,
// как в колонке decimal(10,2)
func roundSalary(salary float64) float64 {
	return math.Round(salary*100) / 100
}
