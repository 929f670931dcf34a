package query

import (
	"errors"
	"testing"
)

func TestBuildEmployeeListPlan_Defaults(t *testing.T) {
	plan, err := BuildEmployeeListPlan(ListEmployeesParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plan.Page != 1 || plan.Limit != 10 || plan.Offset != 0 {
		t.Errorf("unexpected defaults: page=%d limit=%d offset=%d", plan.Page, plan.Limit, plan.Offset)
	}
	if plan.SortBy != "name" || plan.SortOrder != "ASC" {
		t.Errorf("unexpected sort defaults: %s %s", plan.SortBy, plan.SortOrder)
	}
	if plan.Filter != nil {
		t.Error("expected no filter")
	}
}

func TestBuildEmployeeListPlan_Offset(t *testing.T) {
	tests := []struct {
		page, limit, offset int
	}{
		{1, 10, 0},
		{2, 10, 10},
		{3, 25, 50},
		{7, 1, 6},
	}

	for _, tt := range tests {
		plan, err := BuildEmployeeListPlan(ListEmployeesParams{Page: tt.page, Limit: tt.limit})
		if err != nil {
			t.Fatalf("page=%d limit=%d: unexpected error: %v", tt.page, tt.limit, err)
		}
		if plan.Offset != tt.offset {
			t.Errorf("page=%d limit=%d: expected offset %d, got %d", tt.page, tt.limit, tt.offset, plan.Offset)
		}
	}
}

func TestBuildEmployeeListPlan_Bounds(t *testing.T) {
	tests := []struct {
		name   string
		params ListEmployeesParams
		field  string
	}{
		{"negative page", ListEmployeesParams{Page: -1}, "page"},
		{"negative limit", ListEmployeesParams{Limit: -5}, "limit"},
		{"limit over cap", ListEmployeesParams{Limit: MaxLimit + 1}, "limit"},
		{"unknown sort column", ListEmployeesParams{SortBy: "password"}, "sort_by"},
		{"bad sort order", ListEmployeesParams{SortOrder: "sideways"}, "sort_order"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildEmployeeListPlan(tt.params)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, verr.Field)
			}
		})
	}
}

func TestBuildEmployeeListPlan_SortOrderCaseInsensitive(t *testing.T) {
	plan, err := BuildEmployeeListPlan(ListEmployeesParams{SortOrder: "desc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.SortOrder != "DESC" {
		t.Errorf("expected DESC, got %q", plan.SortOrder)
	}
	if plan.OrderClause() != "name DESC" {
		t.Errorf("unexpected order clause: %q", plan.OrderClause())
	}
}

func TestBuildEmployeeListPlan_Filter(t *testing.T) {
	deptID := int64(3)
	plan, err := BuildEmployeeListPlan(ListEmployeesParams{
		DepartmentID: &deptID,
		Search:       "john",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	and, ok := plan.Filter.(And)
	if !ok {
		t.Fatalf("expected And root, got %T", plan.Filter)
	}
	if len(and.Predicates) != 2 {
		t.Fatalf("expected 2 predicates, got %d", len(and.Predicates))
	}

	eq, ok := and.Predicates[0].(Equals)
	if !ok || eq.Field != "department_id" || eq.Value != deptID {
		t.Errorf("unexpected department predicate: %+v", and.Predicates[0])
	}

	or, ok := and.Predicates[1].(Or)
	if !ok || len(or.Predicates) != 2 {
		t.Fatalf("expected Or of 2 predicates, got %+v", and.Predicates[1])
	}
	for _, child := range or.Predicates {
		contains, ok := child.(Contains)
		if !ok || !contains.CaseInsensitive || contains.Needle != "john" {
			t.Errorf("unexpected search predicate: %+v", child)
		}
	}
}

func TestCompile_Contains(t *testing.T) {
	clause, args, err := Compile(Contains{Field: "name", Needle: "John", CaseInsensitive: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if clause != `LOWER(name) LIKE ? ESCAPE '\'` {
		t.Errorf("unexpected clause: %q", clause)
	}
	if len(args) != 1 || args[0] != "%john%" {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestCompile_EscapesLikeWildcards(t *testing.T) {
	_, args, err := Compile(Contains{Field: "name", Needle: "50%_done", CaseInsensitive: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if args[0] != `%50\%\_done%` {
		t.Errorf("wildcards must be escaped, got %v", args[0])
	}
}

func TestCompile_Tree(t *testing.T) {
	filter := And{Predicates: []Predicate{
		Equals{Field: "department_id", Value: int64(2)},
		Or{Predicates: []Predicate{
			Contains{Field: "name", Needle: "ann", CaseInsensitive: true},
			Contains{Field: "email", Needle: "ann", CaseInsensitive: true},
		}},
	}}

	clause, args, err := Compile(filter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `(department_id = ? AND (LOWER(name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\'))`
	if clause != want {
		t.Errorf("unexpected clause:\n got %q\nwant %q", clause, want)
	}
	if len(args) != 3 {
		t.Errorf("expected 3 args, got %v", args)
	}
}

func TestCompile_RejectsUnknownColumn(t *testing.T) {
	_, _, err := Compile(Equals{Field: "password", Value: "x"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
