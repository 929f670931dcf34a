package repository_test

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/employee-management-api/internal/domain"
	"github.com/employee-management-api/internal/query"
	"github.com/employee-management-api/internal/repository"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	if err := db.AutoMigrate(&domain.Department{}, &domain.Employee{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	return db
}

func seedData(t *testing.T, db *gorm.DB) (engID, mktID int64) {
	t.Helper()
	ctx := context.Background()

	deptRepo := repository.NewDepartmentRepository(db)
	empRepo := repository.NewEmployeeRepository(db)

	eng := &domain.Department{Name: "Engineering"}
	mkt := &domain.Department{Name: "Marketing"}
	for _, dept := range []*domain.Department{eng, mkt} {
		if err := deptRepo.Create(ctx, dept); err != nil {
			t.Fatalf("failed to seed department: %v", err)
		}
	}

	employees := []*domain.Employee{
		{Name: "John Smith", Email: "john.smith@x.com", Salary: 95000, DepartmentID: eng.ID},
		{Name: "Ann Lee", Email: "ann.lee@x.com", Salary: 88000, DepartmentID: eng.ID},
		{Name: "Kate Brown", Email: "kate.johnson@x.com", Salary: 72000, DepartmentID: mkt.ID},
		{Name: "Mike Green", Email: "mike.green@x.com", Salary: 69000, DepartmentID: mkt.ID},
		{Name: "Lisa Ray", Email: "lisa.ray@x.com", Salary: 81000, DepartmentID: mkt.ID},
	}
	for _, emp := range employees {
		if err := empRepo.Create(ctx, emp); err != nil {
			t.Fatalf("failed to seed employee: %v", err)
		}
	}

	return eng.ID, mkt.ID
}

func mustPlan(t *testing.T, params query.ListEmployeesParams) *query.Plan {
	t.Helper()
	plan, err := query.BuildEmployeeListPlan(params)
	if err != nil {
		t.Fatalf("failed to build plan: %v", err)
	}
	return plan
}

func TestEmployeeRepository_ListSearch(t *testing.T) {
	db := setupDB(t)
	seedData(t, db)
	empRepo := repository.NewEmployeeRepository(db)

	plan := mustPlan(t, query.ListEmployeesParams{Search: "JOHN"})
	employees, total, err := empRepo.List(context.Background(), plan)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	// John Smith по имени и Kate Brown по адресу kate.johnson@x.com
	if total != 2 {
		t.Fatalf("expected 2 matches, got %d", total)
	}
	if employees[0].Name != "John Smith" || employees[1].Name != "Kate Brown" {
		t.Errorf("unexpected matches: %v, %v", employees[0].Name, employees[1].Name)
	}
}

func TestEmployeeRepository_ListPagination(t *testing.T) {
	db := setupDB(t)
	seedData(t, db)
	empRepo := repository.NewEmployeeRepository(db)

	plan := mustPlan(t, query.ListEmployeesParams{Page: 2, Limit: 2})
	employees, total, err := empRepo.List(context.Background(), plan)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if total != 5 {
		t.Errorf("expected total 5, got %d", total)
	}
	if len(employees) != 2 {
		t.Fatalf("expected 2 records on page, got %d", len(employees))
	}
	// Сортировка по name ASC: Ann, John, Kate, Lisa, Mike
	if employees[0].Name != "Kate Brown" || employees[1].Name != "Lisa Ray" {
		t.Errorf("unexpected page content: %v, %v", employees[0].Name, employees[1].Name)
	}
}

func TestEmployeeRepository_ListDepartmentFilter(t *testing.T) {
	db := setupDB(t)
	engID, _ := seedData(t, db)
	empRepo := repository.NewEmployeeRepository(db)

	plan := mustPlan(t, query.ListEmployeesParams{DepartmentID: &engID})
	employees, total, err := empRepo.List(context.Background(), plan)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if total != 2 {
		t.Fatalf("expected 2 engineers, got %d", total)
	}
	for _, emp := range employees {
		if emp.DepartmentID != engID {
			t.Errorf("employee %q from wrong department", emp.Name)
		}
		if emp.Department == nil || emp.Department.Name != "Engineering" {
			t.Errorf("expected joined department for %q", emp.Name)
		}
	}
}

func TestEmployeeRepository_ListSortDesc(t *testing.T) {
	db := setupDB(t)
	seedData(t, db)
	empRepo := repository.NewEmployeeRepository(db)

	plan := mustPlan(t, query.ListEmployeesParams{SortBy: "salary", SortOrder: "desc"})
	employees, _, err := empRepo.List(context.Background(), plan)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	for i := 1; i < len(employees); i++ {
		if employees[i].Salary > employees[i-1].Salary {
			t.Fatalf("salaries not in descending order: %v", employees)
		}
	}
}

func TestEmployeeRepository_ExistsByEmail(t *testing.T) {
	db := setupDB(t)
	seedData(t, db)
	empRepo := repository.NewEmployeeRepository(db)
	ctx := context.Background()

	exists, err := empRepo.ExistsByEmail(ctx, "ann.lee@x.com", nil)
	if err != nil {
		t.Fatalf("exists check failed: %v", err)
	}
	if !exists {
		t.Error("expected existing email to be found")
	}

	exists, err = empRepo.ExistsByEmail(ctx, "nobody@x.com", nil)
	if err != nil {
		t.Fatalf("exists check failed: %v", err)
	}
	if exists {
		t.Error("unexpected match for unknown email")
	}

	// Исключение собственной записи при обновлении
	var ann domain.Employee
	if err := db.Where("email = ?", "ann.lee@x.com").First(&ann).Error; err != nil {
		t.Fatalf("failed to load employee: %v", err)
	}
	exists, err = empRepo.ExistsByEmail(ctx, "ann.lee@x.com", &ann.ID)
	if err != nil {
		t.Fatalf("exists check failed: %v", err)
	}
	if exists {
		t.Error("own record must be excluded")
	}
}

func TestEmployeeRepository_CountByDepartment(t *testing.T) {
	db := setupDB(t)
	_, mktID := seedData(t, db)
	empRepo := repository.NewEmployeeRepository(db)

	count, err := empRepo.CountByDepartment(context.Background(), mktID)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3, got %d", count)
	}
}

func TestEmployeeRepository_FindForReport(t *testing.T) {
	db := setupDB(t)
	_, mktID := seedData(t, db)
	empRepo := repository.NewEmployeeRepository(db)

	employees, err := empRepo.FindForReport(context.Background(), &mktID)
	if err != nil {
		t.Fatalf("report fetch failed: %v", err)
	}

	if len(employees) != 3 {
		t.Fatalf("expected 3 records, got %d", len(employees))
	}
	for i := 1; i < len(employees); i++ {
		if employees[i].Name < employees[i-1].Name {
			t.Fatalf("report rows not sorted by name: %v", employees)
		}
	}
	for _, emp := range employees {
		if emp.Department == nil || emp.Department.Name != "Marketing" {
			t.Errorf("expected joined department for %q", emp.Name)
		}
	}
}

func TestEmployeeRepository_DeleteNotFound(t *testing.T) {
	db := setupDB(t)
	empRepo := repository.NewEmployeeRepository(db)

	err := empRepo.Delete(context.Background(), 99)
	if !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Errorf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestDepartmentRepository_GetByIDWithEmployees(t *testing.T) {
	db := setupDB(t)
	engID, _ := seedData(t, db)
	deptRepo := repository.NewDepartmentRepository(db)

	dept, err := deptRepo.GetByIDWithEmployees(context.Background(), engID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if len(dept.Employees) != 2 {
		t.Fatalf("expected 2 employees, got %d", len(dept.Employees))
	}
	if dept.Employees[0].Name != "Ann Lee" {
		t.Errorf("employees not sorted by name: %v", dept.Employees[0].Name)
	}
}

func TestDepartmentRepository_ExistsByName(t *testing.T) {
	db := setupDB(t)
	engID, _ := seedData(t, db)
	deptRepo := repository.NewDepartmentRepository(db)
	ctx := context.Background()

	exists, err := deptRepo.ExistsByName(ctx, "Engineering", nil)
	if err != nil {
		t.Fatalf("exists check failed: %v", err)
	}
	if !exists {
		t.Error("expected existing name to be found")
	}

	exists, err = deptRepo.ExistsByName(ctx, "Engineering", &engID)
	if err != nil {
		t.Fatalf("exists check failed: %v", err)
	}
	if exists {
		t.Error("own record must be excluded")
	}
}

func TestDepartmentRepository_List(t *testing.T) {
	db := setupDB(t)
	seedData(t, db)
	deptRepo := repository.NewDepartmentRepository(db)

	departments, err := deptRepo.List(context.Background(), true)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(departments) != 2 {
		t.Fatalf("expected 2 departments, got %d", len(departments))
	}
	if departments[0].Name != "Engineering" || departments[1].Name != "Marketing" {
		t.Errorf("departments not sorted by name: %v", departments)
	}
	if len(departments[0].Employees) != 2 {
		t.Errorf("expected preloaded employees, got %d", len(departments[0].Employees))
	}
}

// Нарушения ограничений на уровне БД (конкурентная запись мимо проверок
// сервиса) должны приходить наружу как доменные ошибки, а не сырые ошибки драйвера.
func TestEmployeeRepository_CreateDuplicateEmailConstraint(t *testing.T) {
	db := setupDB(t)
	engID, _ := seedData(t, db)
	empRepo := repository.NewEmployeeRepository(db)

	err := empRepo.Create(context.Background(), &domain.Employee{
		Name:         "Another John",
		Email:        "john.smith@x.com",
		Salary:       50000,
		DepartmentID: engID,
	})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestEmployeeRepository_CreateUnknownDepartmentConstraint(t *testing.T) {
	db := setupDB(t)
	seedData(t, db)
	empRepo := repository.NewEmployeeRepository(db)

	err := empRepo.Create(context.Background(), &domain.Employee{
		Name:         "Orphan",
		Email:        "orphan@x.com",
		Salary:       50000,
		DepartmentID: 9999,
	})
	if !errors.Is(err, domain.ErrDepartmentNotExists) {
		t.Fatalf("expected ErrDepartmentNotExists, got %v", err)
	}
}

func TestEmployeeRepository_UpdateDuplicateEmailConstraint(t *testing.T) {
	db := setupDB(t)
	seedData(t, db)
	empRepo := repository.NewEmployeeRepository(db)

	emp, err := empRepo.GetByID(context.Background(), 2)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	emp.Department = nil
	emp.Email = "john.smith@x.com"

	err = empRepo.Update(context.Background(), emp)
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestDepartmentRepository_CreateDuplicateNameConstraint(t *testing.T) {
	db := setupDB(t)
	seedData(t, db)
	deptRepo := repository.NewDepartmentRepository(db)

	err := deptRepo.Create(context.Background(), &domain.Department{Name: "Engineering"})
	if !errors.Is(err, domain.ErrDuplicateDepartmentName) {
		t.Fatalf("expected ErrDuplicateDepartmentName, got %v", err)
	}
}

func TestDepartmentRepository_DeleteWithEmployeesConstraint(t *testing.T) {
	db := setupDB(t)
	engID, _ := seedData(t, db)
	deptRepo := repository.NewDepartmentRepository(db)

	err := deptRepo.Delete(context.Background(), engID)

	var notEmpty *domain.DepartmentNotEmptyError
	if !errors.As(err, &notEmpty) {
		t.Fatalf("expected DepartmentNotEmptyError, got %v", err)
	}
	if notEmpty.Count != 2 {
		t.Errorf("expected 2 assigned employees, got %d", notEmpty.Count)
	}
}
