package query

import (
	"fmt"
	"strings"
)

// Границы постраничного вывода
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// DefaultSortBy - колонка сортировки по умолчанию
const DefaultSortBy = "name"

// sortableColumns - закрытый список колонок, по которым разрешена сортировка
var sortableColumns = map[string]bool{
	"id":            true,
	"name":          true,
	"email":         true,
	"salary":        true,
	"department_id": true,
	"created_at":    true,
	"updated_at":    true,
}

// filterableColumns - закрытый список колонок, допустимых в предикатах
var filterableColumns = map[string]bool{
	"id":            true,
	"name":          true,
	"email":         true,
	"salary":        true,
	"department_id": true,
}

// ValidationError описывает отклонённый параметр запроса
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Predicate - узел явного дерева фильтрации
type Predicate interface {
	isPredicate()
}

// Equals - точное совпадение значения колонки
type Equals struct {
	Field string
	Value any
}

// Contains - вхождение подстроки в значение колонки
type Contains struct {
	Field           string
	Needle          string
	CaseInsensitive bool
}

// And - логическое И над вложенными предикатами
type And struct {
	Predicates []Predicate
}

// Or - логическое ИЛИ над вложенными предикатами
type Or struct {
	Predicates []Predicate
}

func (Equals) isPredicate()   {}
func (Contains) isPredicate() {}
func (And) isPredicate()      {}
func (Or) isPredicate()       {}

// Plan - проверенный план выборки: фильтр, сортировка и границы страницы
type Plan struct {
	Filter    Predicate
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
	Offset    int
}

// ListEmployeesParams - параметры списочного запроса сотрудников.
// Нулевые значения означают "не задано".
type ListEmployeesParams struct {
	Page         int
	Limit        int
	DepartmentID *int64
	Search       string
	SortBy       string
	SortOrder    string
}

// BuildEmployeeListPlan превращает параметры запроса в безопасный план выборки.
// Неизвестные колонки сортировки и значения вне границ отклоняются.
func BuildEmployeeListPlan(params ListEmployeesParams) (*Plan, error) {
	page := params.Page
	if page == 0 {
		page = DefaultPage
	}
	if page < 1 {
		return nil, &ValidationError{Field: "page", Message: "page must be greater than or equal to 1"}
	}

	limit := params.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 {
		return nil, &ValidationError{Field: "limit", Message: "limit must be greater than 0"}
	}
	if limit > MaxLimit {
		return nil, &ValidationError{Field: "limit", Message: fmt.Sprintf("limit cannot exceed %d", MaxLimit)}
	}

	sortBy := params.SortBy
	if sortBy == "" {
		sortBy = DefaultSortBy
	}
	if !sortableColumns[sortBy] {
		return nil, &ValidationError{Field: "sort_by", Message: fmt.Sprintf("unknown sort column %q", sortBy)}
	}

	sortOrder := strings.ToUpper(params.SortOrder)
	if sortOrder == "" {
		sortOrder = "ASC"
	}
	if sortOrder != "ASC" && sortOrder != "DESC" {
		return nil, &ValidationError{Field: "sort_order", Message: "sort_order must be ASC or DESC"}
	}

	var predicates []Predicate
	if params.DepartmentID != nil {
		predicates = append(predicates, Equals{Field: "department_id", Value: *params.DepartmentID})
	}
	if params.Search != "" {
		predicates = append(predicates, Or{Predicates: []Predicate{
			Contains{Field: "name", Needle: params.Search, CaseInsensitive: true},
			Contains{Field: "email", Needle: params.Search, CaseInsensitive: true},
		}})
	}

	var filter Predicate
	switch len(predicates) {
	case 0:
	case 1:
		filter = predicates[0]
	default:
		filter = And{Predicates: predicates}
	}

	return &Plan{
		Filter:    filter,
		SortBy:    sortBy,
		SortOrder: sortOrder,
		Page:      page,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}, nil
}

// OrderClause возвращает выражение ORDER BY для плана
func (p *Plan) OrderClause() string {
	return p.SortBy + " " + p.SortOrder
}

// Compile транслирует дерево предикатов в условие SQL с плейсхолдерами.
// Регистронезависимое сравнение выражено через LOWER(...) LIKE, чтобы одно
// и то же условие работало и в PostgreSQL, и в SQLite.
func Compile(p Predicate) (string, []any, error) {
	switch pred := p.(type) {
	case Equals:
		if !filterableColumns[pred.Field] {
			return "", nil, &ValidationError{Field: pred.Field, Message: "unknown filter column"}
		}
		return pred.Field + " = ?", []any{pred.Value}, nil

	case Contains:
		if !filterableColumns[pred.Field] {
			return "", nil, &ValidationError{Field: pred.Field, Message: "unknown filter column"}
		}
		needle := "%" + escapeLike(pred.Needle) + "%"
		if pred.CaseInsensitive {
			return "LOWER(" + pred.Field + `) LIKE ? ESCAPE '\'`, []any{strings.ToLower(needle)}, nil
		}
		return pred.Field + ` LIKE ? ESCAPE '\'`, []any{needle}, nil

	case And:
		return compileGroup(pred.Predicates, " AND ")

	case Or:
		return compileGroup(pred.Predicates, " OR ")

	default:
		return "", nil, fmt.Errorf("unsupported predicate type %T", p)
	}
}

func compileGroup(predicates []Predicate, op string) (string, []any, error) {
	if len(predicates) == 0 {
		return "", nil, fmt.Errorf("empty predicate group")
	}

	clauses := make([]string, 0, len(predicates))
	var args []any
	for _, child := range predicates {
		clause, childArgs, err := Compile(child)
		if err != nil {
			return "", nil, err
		}
		clauses = append(clauses, clause)
		args = append(args, childArgs...)
	}

	return "(" + strings.Join(clauses, op) + ")", args, nil
}

// escapeLike экранирует спецсимволы LIKE в пользовательском вводе
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
