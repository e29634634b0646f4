package query_test

import (
	"reflect"
	"testing"

	"github.com/JaimeStill/doc-archive/pkg/query"
)

func docsProjection() *query.ProjectionMap {
	return query.NewProjectionMap("", "documents", "d").
		Project("id", "ID").
		Project("name", "Name").
		Project("title", "Title").
		Project("created_at", "CreatedAt")
}

func TestProjectionMap_Table(t *testing.T) {
	tests := []struct {
		schema string
		want   string
	}{
		{"", "documents d"},
		{"public", "public.documents d"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			pm := query.NewProjectionMap(tt.schema, "documents", "d")
			if got := pm.Table(); got != tt.want {
				t.Errorf("Table() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProjectionMap_Columns(t *testing.T) {
	pm := docsProjection()

	if got := pm.Columns(); got != "d.id, d.name, d.title, d.created_at" {
		t.Errorf("Columns() = %q", got)
	}
	if got := pm.Column("Name"); got != "d.name" {
		t.Errorf("Column(Name) = %q, want d.name", got)
	}
	if got := pm.Column("Unknown"); got != "Unknown" {
		t.Errorf("Column(Unknown) = %q, want Unknown", got)
	}
}

func TestBuilder_BuildPage(t *testing.T) {
	name := "65"
	search := "report"

	qb := query.NewBuilder(docsProjection(), query.SortField{Field: "CreatedAt", Descending: true}).
		WhereContains("Name", &name).
		WhereSearch(&search, "Name", "Title")

	sql, args := qb.BuildPage(2, 10)

	want := `SELECT d.id, d.name, d.title, d.created_at FROM documents d` +
		` WHERE d.name LIKE $1 ESCAPE '\' AND (d.name LIKE $2 ESCAPE '\' OR d.title LIKE $3 ESCAPE '\')` +
		` ORDER BY d.created_at DESC LIMIT 10 OFFSET 10`
	if sql != want {
		t.Errorf("BuildPage() sql =\n%s\nwant\n%s", sql, want)
	}

	wantArgs := []any{"%65%", "%report%", "%report%"}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Errorf("BuildPage() args = %v, want %v", args, wantArgs)
	}
}

func TestBuilder_BuildCount_IgnoresEmpty(t *testing.T) {
	empty := ""
	qb := query.NewBuilder(docsProjection()).
		WhereContains("Name", nil).
		WhereContains("Title", &empty).
		WhereEquals("ID", nil).
		WhereIn("ID", nil)

	sql, args := qb.BuildCount()
	if sql != "SELECT COUNT(*) FROM documents d" {
		t.Errorf("BuildCount() = %q", sql)
	}
	if len(args) != 0 {
		t.Errorf("BuildCount() args = %v, want none", args)
	}
}

func TestBuilder_WhereIn(t *testing.T) {
	qb := query.NewBuilder(docsProjection()).WhereIn("ID", []any{"a", "b"})

	sql, args := qb.BuildAll()
	want := "SELECT d.id, d.name, d.title, d.created_at FROM documents d WHERE d.id IN ($1, $2)"
	if sql != want {
		t.Errorf("BuildAll() = %q, want %q", sql, want)
	}
	if len(args) != 2 {
		t.Errorf("len(args) = %d, want 2", len(args))
	}
}

func TestBuilder_WhereSuffix(t *testing.T) {
	year := "-2025"
	_, args := query.NewBuilder(docsProjection()).WhereSuffix("Title", &year).BuildAll()

	if len(args) != 1 || args[0] != "%-2025" {
		t.Errorf("args = %v, want [%%-2025]", args)
	}
}

func TestBuilder_OrderByFields_IgnoresUnknown(t *testing.T) {
	qb := query.NewBuilder(docsProjection(), query.SortField{Field: "CreatedAt"}).
		OrderByFields([]query.SortField{{Field: "Name"}, {Field: "password"}})

	sql, _ := qb.BuildAll()
	want := "SELECT d.id, d.name, d.title, d.created_at FROM documents d ORDER BY d.name ASC"
	if sql != want {
		t.Errorf("BuildAll() = %q, want %q", sql, want)
	}
}

func TestBuilder_BuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(docsProjection()).BuildSingle("ID", "abc")

	if sql != "SELECT d.id, d.name, d.title, d.created_at FROM documents d WHERE d.id = $1" {
		t.Errorf("BuildSingle() = %q", sql)
	}
	if len(args) != 1 || args[0] != "abc" {
		t.Errorf("BuildSingle() args = %v", args)
	}
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"100%", `100\%`},
		{"ص_0001", `ص\_0001`},
		{`a\b`, `a\\b`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := query.EscapeLike(tt.in); got != tt.want {
				t.Errorf("EscapeLike(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseSortFields(t *testing.T) {
	got := query.ParseSortFields("Name, -CreatedAt,")
	want := []query.SortField{
		{Field: "Name"},
		{Field: "CreatedAt", Descending: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseSortFields() = %v, want %v", got, want)
	}

	if got := query.ParseSortFields(""); got != nil {
		t.Errorf("ParseSortFields(\"\") = %v, want nil", got)
	}
}
