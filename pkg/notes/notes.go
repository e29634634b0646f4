// Package notes reads and writes the legacy "label: value | label: value"
// attachment notes format stored on image rows.
package notes

import (
	"strings"
)

// Pair separator and the label vocabulary, in rendering order.
const (
	PairSeparator = " | "

	LabelNumber         = "رقم"
	LabelDate           = "تاريخ"
	LabelTitle          = "مضمون"
	LabelDepartment     = "جهة"
	LabelClassification = "تصنيف"
	LabelNotes          = "ملاحظات"
)

// English aliases accepted when parsing.
var aliases = map[string]string{
	"number":         LabelNumber,
	"date":           LabelDate,
	"title":          LabelTitle,
	"subject":        LabelTitle,
	"department":     LabelDepartment,
	"classification": LabelClassification,
	"notes":          LabelNotes,
}

// Fields is the typed projection of a notes string.
type Fields struct {
	Number         string            `json:"number,omitempty"`
	Date           string            `json:"date,omitempty"`
	Title          string            `json:"title,omitempty"`
	Department     string            `json:"department,omitempty"`
	Classification string            `json:"classification,omitempty"`
	Notes          string            `json:"notes,omitempty"`
	Extra          map[string]string `json:"extra,omitempty"`
}

// Empty reports whether no recognized label carried a value.
func (f Fields) Empty() bool {
	return f.Number == "" && f.Date == "" && f.Title == "" &&
		f.Department == "" && f.Classification == "" && f.Notes == ""
}

// Parse splits s on "|" and reads each "label: value" pair. Values are
// trimmed; empty values and pairs without a colon are skipped. Unknown
// labels land in Extra. The first occurrence of a label wins.
func Parse(s string) Fields {
	var f Fields

	for _, pair := range strings.Split(s, "|") {
		label, value, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		label = strings.TrimSpace(label)
		value = strings.TrimSpace(value)
		if label == "" || value == "" {
			continue
		}

		if canonical, ok := aliases[strings.ToLower(label)]; ok {
			label = canonical
		}

		if dst := f.slot(label); dst != nil {
			if *dst == "" {
				*dst = value
			}
			continue
		}

		if f.Extra == nil {
			f.Extra = make(map[string]string)
		}
		if _, exists := f.Extra[label]; !exists {
			f.Extra[label] = value
		}
	}

	return f
}

// Format renders the recognized fields in canonical label order, skipping
// empty values. Extra labels are not rendered.
func Format(f Fields) string {
	pairs := make([]string, 0, 6)
	for _, kv := range [][2]string{
		{LabelNumber, f.Number},
		{LabelDate, f.Date},
		{LabelTitle, f.Title},
		{LabelDepartment, f.Department},
		{LabelClassification, f.Classification},
		{LabelNotes, f.Notes},
	} {
		if v := strings.TrimSpace(kv[1]); v != "" {
			pairs = append(pairs, kv[0]+": "+v)
		}
	}
	return strings.Join(pairs, PairSeparator)
}

func (f *Fields) slot(label string) *string {
	switch label {
	case LabelNumber:
		return &f.Number
	case LabelDate:
		return &f.Date
	case LabelTitle:
		return &f.Title
	case LabelDepartment:
		return &f.Department
	case LabelClassification:
		return &f.Classification
	case LabelNotes:
		return &f.Notes
	default:
		return nil
	}
}
