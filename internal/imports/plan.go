// Package imports reconciles batches of scanned page files against the
// document store: it groups pages into logical documents, reuses documents
// already archived under the same number and date, and appends pages after
// the ones already stored.
package imports

import (
	"path/filepath"
	"sort"

	"github.com/JaimeStill/doc-archive/pkg/filename"
)

// Fallback document names for files whose names could not be parsed.
const (
	unrecognizedPrefix = "ملفات مستوردة عن "
	UnrecognizedNoDept = "ملفات مستوردة (بدون معلومات)"
)

// UnrecognizedName returns the fallback document name for department.
// An empty department selects UnrecognizedNoDept.
func UnrecognizedName(department string) string {
	if department == "" {
		return UnrecognizedNoDept
	}
	return unrecognizedPrefix + department
}

// PlannedFile is one source file and the sequence parsed from its name.
type PlannedFile struct {
	Path     string  `json:"path"`
	Name     string  `json:"name"`
	Sequence *string `json:"sequence,omitempty"`
}

// PlannedDocument is one logical document of a batch.
type PlannedDocument struct {
	Number     string        `json:"number"`
	Date       string        `json:"date"`
	Department string        `json:"department"`
	Name       string        `json:"name"`
	Files      []PlannedFile `json:"files"`
	// Duplicates lists unsequenced files displaced by a later main page.
	// They stay in Files, after the sequenced pages.
	Duplicates []string `json:"duplicates,omitempty"`
}

// UnrecognizedGroup collects unparsable files sharing an inferred department.
type UnrecognizedGroup struct {
	Department string        `json:"department"`
	Name       string        `json:"name"`
	Files      []PlannedFile `json:"files"`
}

// Batch is the grouping of a set of files before anything is persisted.
type Batch struct {
	Documents    []PlannedDocument   `json:"documents"`
	Unrecognized []UnrecognizedGroup `json:"unrecognized"`
	Total        int                 `json:"total"`
}

// UnrecognizedCount returns the number of files that failed to parse.
func (b *Batch) UnrecognizedCount() int {
	n := 0
	for _, g := range b.Unrecognized {
		n += len(g.Files)
	}
	return n
}

type docKey struct {
	number string
	date   string
}

// Plan groups files into logical documents keyed by (number, date). The
// first department seen for a key wins. Within a document the main page
// comes first, then sequenced pages in ascending order, then any other
// files of the key in input order. Documents are ordered numerically.
func Plan(parser *filename.Parser, files []string) *Batch {
	batch := &Batch{
		Documents:    []PlannedDocument{},
		Unrecognized: []UnrecognizedGroup{},
		Total:        len(files),
	}

	var keys []docKey
	planned := make(map[docKey]*PlannedDocument)
	byName := make(map[docKey]map[string][]PlannedFile)
	inputOrder := make(map[docKey][]PlannedFile)

	unrecognized := make(map[string]*UnrecognizedGroup)
	var deptOrder []string

	for _, path := range files {
		name := filepath.Base(path)
		parsed := parser.Parse(name)

		if !parsed.Valid {
			dept, _ := parser.InferDepartment(name)
			g, ok := unrecognized[dept]
			if !ok {
				g = &UnrecognizedGroup{Department: dept, Name: UnrecognizedName(dept)}
				unrecognized[dept] = g
				deptOrder = append(deptOrder, dept)
			}
			g.Files = append(g.Files, PlannedFile{Path: path, Name: name})
			continue
		}

		k := docKey{parsed.Number, parsed.Date}
		if _, ok := planned[k]; !ok {
			planned[k] = &PlannedDocument{
				Number:     parsed.Number,
				Date:       parsed.Date,
				Department: parsed.Department,
				Name:       filename.DocumentName(parsed.Number, parsed.Date),
			}
			byName[k] = make(map[string][]PlannedFile)
			keys = append(keys, k)
		}

		f := PlannedFile{Path: path, Name: name, Sequence: parsed.Sequence}
		byName[k][name] = append(byName[k][name], f)
		inputOrder[k] = append(inputOrder[k], f)
	}

	for _, k := range keys {
		doc := planned[k]
		doc.Files = orderFiles(doc, byName[k], inputOrder[k])
	}

	sort.SliceStable(keys, func(i, j int) bool {
		return filename.CompareNumbers(keys[i].number, keys[j].number) < 0
	})
	for _, k := range keys {
		batch.Documents = append(batch.Documents, *planned[k])
	}

	for _, dept := range deptOrder {
		batch.Unrecognized = append(batch.Unrecognized, *unrecognized[dept])
	}

	return batch
}

func orderFiles(doc *PlannedDocument, byName map[string][]PlannedFile, input []PlannedFile) []PlannedFile {
	names := make([]string, len(input))
	for i, f := range input {
		names[i] = f.Name
	}

	ordered := make([]PlannedFile, 0, len(input))
	taken := make(map[string]int)

	if g, ok := filename.GroupImages(names)[doc.Number]; ok {
		doc.Duplicates = g.Duplicates
		for _, name := range dedupe(g.Ordered()) {
			ordered = append(ordered, byName[name]...)
			taken[name] = len(byName[name])
		}
	}

	for _, f := range input {
		if taken[f.Name] > 0 {
			continue
		}
		ordered = append(ordered, f)
	}
	return ordered
}

// dedupe drops repeated names, which occur when the same base name arrives
// from different directories.
func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := names[:0:0]
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
