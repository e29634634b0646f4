// Package filename parses scanned-page file names of the form
//
//	<number> في <d-m-yyyy> <department letter>[_<sequence>].<ext>
//
// and groups multi-page scans into ordered per-number sequences.
// Everything here is pure string processing; malformed names are an
// expected input and never produce an error.
package filename

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Department abbreviation letters used in file names.
const (
	AbbrevAna   = "ص"
	AbbrevAnbar = "و"
)

// DefaultDepartments resolves abbreviation letters to display names.
var DefaultDepartments = map[string]string{
	AbbrevAna:   "Security Personnel Division — Ana",
	AbbrevAnbar: "Security Personnel Section — Anbar",
}

var (
	extPattern  = regexp.MustCompile(`\.[\p{L}\p{N}_]+$`)
	namePattern = regexp.MustCompile(
		`(\p{Nd}+)[\s\p{Zs}]+في[\s\p{Zs}]+(\p{Nd}{1,2}[-/]\p{Nd}{1,2}[-/]\p{Nd}{4})[\s\p{Zs}]+([صو])(?:_(\p{Nd}{4}))?`,
	)
	dateSep = regexp.MustCompile(`[-/]`)
)

// Parsed is the structured form of a canonical file name.
// When Valid is false every other field is zero.
type Parsed struct {
	Number     string  `json:"number"`
	Date       string  `json:"date"`
	Department string  `json:"department"`
	Sequence   *string `json:"sequence,omitempty"`
	Valid      bool    `json:"is_valid"`
}

// Parser resolves department abbreviations against a lookup table.
type Parser struct {
	departments map[string]string
}

// NewParser creates a Parser using departments, falling back to
// DefaultDepartments when the table is empty.
func NewParser(departments map[string]string) *Parser {
	if len(departments) == 0 {
		departments = DefaultDepartments
	}
	table := make(map[string]string, len(departments))
	for k, v := range departments {
		table[k] = v
	}
	return &Parser{departments: table}
}

var defaultParser = NewParser(nil)

// Parse parses name with the default department table.
func Parse(name string) Parsed {
	return defaultParser.Parse(name)
}

// Parse extracts number, date, department, and sequence from name.
// Digits in the number and sequence are returned in ASCII.
// Only the final extension is stripped. Unknown abbreviations pass through
// as written. A date that is not a real calendar date is kept as written.
func (p *Parser) Parse(name string) Parsed {
	stem := extPattern.ReplaceAllString(name, "")

	m := namePattern.FindStringSubmatch(stem)
	if m == nil {
		return Parsed{}
	}

	parsed := Parsed{
		Number:     ToASCIIDigits(m[1]),
		Date:       NormalizeDate(m[2]),
		Department: p.Department(m[3]),
		Valid:      true,
	}
	if m[4] != "" {
		seq := ToASCIIDigits(m[4])
		parsed.Sequence = &seq
	}
	return parsed
}

// Department resolves an abbreviation letter; unknown letters are returned unchanged.
func (p *Parser) Department(abbrev string) string {
	if name, ok := p.departments[abbrev]; ok {
		return name
	}
	return abbrev
}

// Abbreviation returns the letter for a department display name.
func (p *Parser) Abbreviation(department string) (string, bool) {
	for abbrev, name := range p.departments {
		if name == department {
			return abbrev, true
		}
	}
	return "", false
}

// InferDepartment is the loose fallback for names that fail Parse: a name
// containing ص (including صادر) maps to the Ana department, otherwise one
// containing و (including وارد) maps to Anbar. It never makes a name valid.
func (p *Parser) InferDepartment(name string) (string, bool) {
	switch {
	case strings.Contains(name, AbbrevAna):
		return p.Department(AbbrevAna), true
	case strings.Contains(name, AbbrevAnbar):
		return p.Department(AbbrevAnbar), true
	default:
		return "", false
	}
}

// GenerateName renders the canonical file stem for a document.
func (p *Parser) GenerateName(number, date, department string) string {
	abbrev, ok := p.Abbreviation(department)
	if !ok {
		abbrev = department
	}
	return strings.TrimSpace(DocumentName(number, date) + " " + abbrev)
}

// NormalizeDate renders a d-m-yyyy or d/m/yyyy token as dd-mm-yyyy.
// Tokens that do not form a valid calendar date are returned unchanged.
func NormalizeDate(token string) string {
	parts := dateSep.Split(token, -1)
	if len(parts) != 3 {
		return token
	}

	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(ToASCIIDigits(part))
		if err != nil {
			return token
		}
		nums[i] = n
	}

	day, month, year := nums[0], nums[1], nums[2]
	if month < 1 || month > 12 || day < 1 {
		return token
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return token
	}

	return fmt.Sprintf("%02d-%02d-%04d", day, month, year)
}

// ToASCIIDigits maps Arabic-Indic and extended Arabic-Indic digits to ASCII.
func ToASCIIDigits(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '٠' && r <= '٩':
			return '0' + (r - '٠')
		case r >= '۰' && r <= '۹':
			return '0' + (r - '۰')
		default:
			return r
		}
	}, s)
}
