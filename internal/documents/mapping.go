package documents

import (
	"net/url"

	"github.com/JaimeStill/doc-archive/pkg/query"
	"github.com/JaimeStill/doc-archive/pkg/repository"
)

var projection = query.NewProjectionMap("", "documents", "d").
	Project("id", "ID").
	Project("name", "Name").
	Project("date", "Date").
	Project("title", "Title").
	Project("issuing_dept", "IssuingDept").
	Project("classification", "Classification").
	Project("legal_paragraph", "LegalParagraph").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "CreatedAt", Descending: true}

// fieldColumns maps search fields to projection names.
var fieldColumns = map[Field]string{
	FieldName:           "Name",
	FieldDate:           "Date",
	FieldTitle:          "Title",
	FieldDepartment:     "IssuingDept",
	FieldClassification: "Classification",
}

func scanDocument(s repository.Scanner) (Document, error) {
	var d Document
	err := s.Scan(
		&d.ID,
		&d.Name,
		&d.Date,
		&d.Title,
		&d.IssuingDept,
		&d.Classification,
		&d.LegalParagraph,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}

// Filters contains optional criteria for listing documents.
type Filters struct {
	Name           *string
	Date           *string
	Title          *string
	IssuingDept    *string
	Classification *string
	// Year matches documents whose dd-mm-yyyy date ends in the year.
	Year *string
}

// FiltersFromQuery extracts document filters from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	set := func(key string, dst **string) {
		if v := values.Get(key); v != "" {
			*dst = &v
		}
	}

	set("name", &f.Name)
	set("date", &f.Date)
	set("title", &f.Title)
	set("issuing_dept", &f.IssuingDept)
	set("classification", &f.Classification)
	set("year", &f.Year)
	return f
}

// Apply adds filter conditions to the query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	var year *string
	if f.Year != nil {
		y := "-" + *f.Year
		year = &y
	}

	return b.
		WhereContains("Name", f.Name).
		WhereContains("Date", f.Date).
		WhereContains("Title", f.Title).
		WhereContains("IssuingDept", f.IssuingDept).
		WhereContains("Classification", f.Classification).
		WhereSuffix("Date", year)
}
