package repository

import (
	"context"
	"errors"

	"github.com/employee-management-api/internal/domain"
	"github.com/employee-management-api/internal/query"
	"gorm.io/gorm"
)

// EmployeeRepository определяет интерфейс для работы с сотрудниками
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	List(ctx context.Context, plan *query.Plan) ([]domain.Employee, int64, error)
	FindForReport(ctx context.Context, departmentID *int64) ([]domain.Employee, error)
	Update(ctx context.Context, emp *domain.Employee) error
	Delete(ctx context.Context, id int64) error
	ExistsByEmail(ctx context.Context, email string, excludeID *int64) (bool, error)
	CountByDepartment(ctx context.Context, departmentID int64) (int64, error)
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository создаёт новый экземпляр репозитория
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	if err := r.db.WithContext(ctx).Create(emp).Error; err != nil {
		return translateEmployeeConstraint(err)
	}
	return nil
}

// translateEmployeeConstraint переводит нарушения ограничений БД в доменные
// ошибки. Сервис проверяет уникальность и ссылки заранее, но конкурентные
// запросы могут обойти эти проверки — тогда срабатывает ограничение в БД.
func translateEmployeeConstraint(err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrDuplicateEmail
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.ErrDepartmentNotExists
	}
	return err
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.db.WithContext(ctx).Preload("Department").First(&emp, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

// List выполняет план выборки: считает общее количество совпадений
// и возвращает одну страницу записей с данными отдела
func (r *employeeRepository) List(ctx context.Context, plan *query.Plan) ([]domain.Employee, int64, error) {
	filtered := func() (*gorm.DB, error) {
		db := r.db.WithContext(ctx).Model(&domain.Employee{})
		if plan.Filter != nil {
			clause, args, err := query.Compile(plan.Filter)
			if err != nil {
				return nil, err
			}
			db = db.Where(clause, args...)
		}
		return db, nil
	}

	db, err := filtered()
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db, err = filtered()
	if err != nil {
		return nil, 0, err
	}

	var employees []domain.Employee
	err = db.Preload("Department").
		Order(plan.OrderClause()).
		Limit(plan.Limit).
		Offset(plan.Offset).
		Find(&employees).Error
	if err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// FindForReport возвращает весь набор данных для экспорта без пагинации
func (r *employeeRepository) FindForReport(ctx context.Context, departmentID *int64) ([]domain.Employee, error) {
	db := r.db.WithContext(ctx).Preload("Department").Order("name ASC")
	if departmentID != nil {
		db = db.Where("department_id = ?", *departmentID)
	}

	var employees []domain.Employee
	if err := db.Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	if err := r.db.WithContext(ctx).Save(emp).Error; err != nil {
		return translateEmployeeConstraint(err)
	}
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Employee{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepository) ExistsByEmail(ctx context.Context, email string, excludeID *int64) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&domain.Employee{}).Where("email = ?", email)
	if excludeID != nil {
		db = db.Where("id != ?", *excludeID)
	}

	err := db.Count(&count).Error
	return count > 0, err
}

func (r *employeeRepository) CountByDepartment(ctx context.Context, departmentID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("department_id = ?", departmentID).
		Count(&count).Error
	return count, err
}
