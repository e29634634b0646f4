package filename

import (
	"regexp"
	"strings"
)

// Separator joins number and date in document names.
const Separator = "في"

// Spellings of the separator produced by OCR and keyboard variants.
var separatorVariants = regexp.MustCompile(`[\s\p{Zs}]+(?:في|فى|فی)[\s\p{Zs}]+`)

// DocumentName renders the canonical document name "<number> في <date>".
func DocumentName(number, date string) string {
	return number + " " + Separator + " " + date
}

// SplitName splits a document name on the first separator variant.
// The date is the first whitespace-delimited token after the separator.
func SplitName(name string) (number, date string, ok bool) {
	loc := separatorVariants.FindStringIndex(name)
	if loc == nil {
		return "", "", false
	}

	number = strings.TrimSpace(name[:loc[0]])
	rest := strings.Fields(name[loc[1]:])
	if number == "" || len(rest) == 0 {
		return "", "", false
	}
	return number, rest[0], true
}

// LeadingToken returns the first whitespace-delimited token of name,
// normally the document number.
func LeadingToken(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
