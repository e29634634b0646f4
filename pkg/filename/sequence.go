package filename

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	numberPrefix   = regexp.MustCompile(`^(\p{Nd}+)[\s\p{Zs}]+في`)
	sequenceSuffix = regexp.MustCompile(`_(\p{Nd}{4})(?:\.[\p{L}\p{N}_]+)?$`)
)

// Group is the set of files sharing one document number.
type Group struct {
	Number string `json:"number"`
	// Main is the unsequenced page; empty when the batch has none.
	Main string `json:"main,omitempty"`
	// Pages are the sequenced files in ascending sequence order.
	Pages []string `json:"pages"`
	// Duplicates holds earlier unsequenced files displaced by a later Main.
	Duplicates []string `json:"duplicates,omitempty"`
}

// Ordered returns the import order: Main, then Pages, then Duplicates.
func (g *Group) Ordered() []string {
	out := make([]string, 0, len(g.Pages)+len(g.Duplicates)+1)
	if g.Main != "" {
		out = append(out, g.Main)
	}
	out = append(out, g.Pages...)
	out = append(out, g.Duplicates...)
	return out
}

// ExtractNumber returns the leading "<digits> في" number of name in ASCII
// digits. It is looser than Parse and ignores everything after the separator.
func ExtractNumber(name string) (string, bool) {
	m := numberPrefix.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return ToASCIIDigits(m[1]), true
}

// ExtractSequence returns the integer value of a trailing _DDDD suffix.
func ExtractSequence(name string) (int, bool) {
	m := sequenceSuffix.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(ToASCIIDigits(m[1]))
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsMainImage reports whether name carries no sequence suffix.
func IsMainImage(name string) bool {
	_, ok := ExtractSequence(name)
	return !ok
}

// GroupImages groups names by document number. Names without a leading
// number are dropped. When several unsequenced names share a number the
// last one becomes Main and the earlier ones are kept in Duplicates.
// Pages are stable-sorted by sequence so equal sequences keep input order.
func GroupImages(names []string) map[string]*Group {
	type page struct {
		name string
		seq  int
	}

	groups := make(map[string]*Group)
	pages := make(map[string][]page)

	for _, name := range names {
		number, ok := ExtractNumber(name)
		if !ok {
			continue
		}

		g, exists := groups[number]
		if !exists {
			g = &Group{Number: number, Pages: []string{}}
			groups[number] = g
		}

		if seq, ok := ExtractSequence(name); ok {
			pages[number] = append(pages[number], page{name: name, seq: seq})
			continue
		}

		if g.Main != "" {
			g.Duplicates = append(g.Duplicates, g.Main)
		}
		g.Main = name
	}

	for number, ps := range pages {
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].seq < ps[j].seq })
		g := groups[number]
		for _, p := range ps {
			g.Pages = append(g.Pages, p.name)
		}
	}

	return groups
}

// GroupKeys returns the group numbers in ascending numeric order.
func GroupKeys(groups map[string]*Group) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return CompareNumbers(keys[i], keys[j]) < 0
	})
	return keys
}

// CompareNumbers orders digit strings by numeric value, falling back to
// string order for equal values or non-numeric input.
func CompareNumbers(a, b string) int {
	ai, aErr := strconv.ParseUint(ToASCIIDigits(a), 10, 64)
	bi, bErr := strconv.ParseUint(ToASCIIDigits(b), 10, 64)

	switch {
	case aErr == nil && bErr == nil && ai != bi:
		if ai < bi {
			return -1
		}
		return 1
	case aErr == nil && bErr != nil:
		return -1
	case aErr != nil && bErr == nil:
		return 1
	}

	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// RankByNumber orders items by how well their number matches term: exact
// match first, then numbers starting with term, then any other hit.
// Each tier sorts by CompareNumbers.
func RankByNumber[T any](items []T, term string, number func(T) string) {
	tier := func(n string) int {
		switch {
		case n == term:
			return 0
		case strings.HasPrefix(n, term):
			return 1
		default:
			return 2
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		ni, nj := number(items[i]), number(items[j])
		if ti, tj := tier(ni), tier(nj); ti != tj {
			return ti < tj
		}
		return CompareNumbers(ni, nj) < 0
	})
}
