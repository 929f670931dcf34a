package repository

import (
	"context"
	"errors"

	"github.com/employee-management-api/internal/domain"
	"gorm.io/gorm"
)

// DepartmentRepository определяет интерфейс для работы с отделами
type DepartmentRepository interface {
	Create(ctx context.Context, dept *domain.Department) error
	GetByID(ctx context.Context, id int64) (*domain.Department, error)
	GetByIDWithEmployees(ctx context.Context, id int64) (*domain.Department, error)
	List(ctx context.Context, includeEmployees bool) ([]domain.Department, error)
	Update(ctx context.Context, dept *domain.Department) error
	Delete(ctx context.Context, id int64) error
	ExistsByName(ctx context.Context, name string, excludeID *int64) (bool, error)
}

type departmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository создаёт новый экземпляр репозитория
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	if err := r.db.WithContext(ctx).Create(dept).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateDepartmentName
		}
		return err
	}
	return nil
}

func (r *departmentRepository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	var dept domain.Department
	err := r.db.WithContext(ctx).First(&dept, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrDepartmentNotFound
		}
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepository) GetByIDWithEmployees(ctx context.Context, id int64) (*domain.Department, error) {
	var dept domain.Department
	err := r.db.WithContext(ctx).
		Preload("Employees", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		First(&dept, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrDepartmentNotFound
		}
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepository) List(ctx context.Context, includeEmployees bool) ([]domain.Department, error) {
	db := r.db.WithContext(ctx).Order("name ASC")

	if includeEmployees {
		db = db.Preload("Employees", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		})
	}

	var departments []domain.Department
	if err := db.Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *departmentRepository) Update(ctx context.Context, dept *domain.Department) error {
	if err := r.db.WithContext(ctx).Save(dept).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateDepartmentName
		}
		return err
	}
	return nil
}

func (r *departmentRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Department{}, id)
	if result.Error != nil {
		// Сервис заранее проверяет наличие сотрудников, но между проверкой
		// и удалением сотрудника могли добавить — тогда сработает ON DELETE RESTRICT.
		if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
			var count int64
			r.db.WithContext(ctx).Model(&domain.Employee{}).
				Where("department_id = ?", id).Count(&count)
			return &domain.DepartmentNotEmptyError{Count: count}
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrDepartmentNotFound
	}
	return nil
}

func (r *departmentRepository) ExistsByName(ctx context.Context, name string, excludeID *int64) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&domain.Department{}).Where("name = ?", name)
	if excludeID != nil {
		db = db.Where("id != ?", *excludeID)
	}

	err := db.Count(&count).Error
	return count > 0, err
}
