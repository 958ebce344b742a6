// Package options turns raw column values and reference-data payloads into
// the uniform option lists used by filter controls and form dropdowns.
package options

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Option is one selectable value. Value is the lookup key: the case-folded
// label for options derived from raw rows, or the source's own value (such
// as a hex color) for reference-data options. Detail carries an optional
// description.
type Option struct {
	ID     int    `json:"id"`
	Value  string `json:"value"`
	Label  string `json:"label"`
	Detail string `json:"detail,omitempty"`
}

// Pair is a town and state used to build postal facility options.
type Pair struct {
	Town  string
	State string
}

// Distinct collects the labels of every item in sources into a de-duplicated
// list. Labels are trimmed, blanks are dropped and duplicates are detected
// case-insensitively; the first casing seen wins. The result is sorted by
// label ignoring case and accents and ids follow the sorted position.
func Distinct[T any](label func(T) string, sources ...[]T) []Option {
	fold := cases.Fold()
	seen := make(map[string]struct{})
	out := make([]Option, 0)

	for _, src := range sources {
		for _, item := range src {
			l := strings.TrimSpace(label(item))
			if l == "" {
				continue
			}
			key := fold.String(l)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, Option{Value: key, Label: l})
		}
	}

	return Sort(out)
}

// Strings is Distinct over plain string columns.
func Strings(sources ...[]string) []Option {
	return Distinct(func(s string) string { return s }, sources...)
}

// FromPairs builds "Town, State" options. Pairs with a blank town or state
// are skipped and duplicates are matched case-insensitively on both parts.
func FromPairs(sources ...[]Pair) []Option {
	fold := cases.Fold()
	seen := make(map[string]struct{})
	out := make([]Option, 0)

	for _, src := range sources {
		for _, p := range src {
			town, state := strings.TrimSpace(p.Town), strings.TrimSpace(p.State)
			if town == "" || state == "" {
				continue
			}
			key := fold.String(town) + "|" + fold.String(state)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, Option{Value: key, Label: town + ", " + state})
		}
	}

	return Sort(out)
}

// Sort orders opts by label ignoring case and accents, then renumbers ids
// by position. The input slice is sorted in place and returned.
func Sort(opts []Option) []Option {
	col := collate.New(language.Und, collate.IgnoreCase, collate.IgnoreDiacritics)
	slices.SortStableFunc(opts, func(a, b Option) int {
		return col.CompareString(a.Label, b.Label)
	})
	for i := range opts {
		opts[i].ID = i
	}
	return opts
}

// Labels returns the labels of opts in order.
func Labels(opts []Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Label
	}
	return out
}

// Find returns the option whose value or label matches s case-insensitively.
func Find(opts []Option, s string) (Option, bool) {
	s = strings.TrimSpace(s)
	for _, o := range opts {
		if strings.EqualFold(o.Value, s) || strings.EqualFold(o.Label, s) {
			return o, true
		}
	}
	return Option{}, false
}
