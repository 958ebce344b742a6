// Package daterange parses the free-text date_range column of catalog
// entries ("1825", "1825-1845") for display and for year filtering.
package daterange

import (
	"strconv"
	"strings"
)

// Placeholder is shown for a missing first or last year.
const Placeholder = "—"

// FirstLast is the display form of a date range.
type FirstLast struct {
	FirstSeen string
	LastSeen  string
}

// Year is a parsed year. Valid is false when the text had no leading digits.
type Year struct {
	Value int
	Valid bool
}

// Range holds the comparable bounds of a date range.
type Range struct {
	Begin Year
	End   Year
}

// Display splits s at the first hyphen. Empty parts are shown as Placeholder,
// and a string without a hyphen is a single first-seen year.
func Display(s string) FirstLast {
	s = strings.TrimSpace(s)
	if s == "" {
		return FirstLast{FirstSeen: Placeholder, LastSeen: Placeholder}
	}

	first, last, found := strings.Cut(s, "-")
	if !found {
		return FirstLast{FirstSeen: s, LastSeen: Placeholder}
	}
	return FirstLast{FirstSeen: orPlaceholder(first), LastSeen: orPlaceholder(last)}
}

// Bounds returns the begin and end years of s. A single year is both the
// begin and the end.
func Bounds(s string) Range {
	first, last, found := strings.Cut(s, "-")
	begin := ParseYear(first)
	if !found {
		return Range{Begin: begin, End: begin}
	}
	return Range{Begin: begin, End: ParseYear(last)}
}

// ParseYear reads the leading integer of s after trimming spaces. Anything
// after the digits is ignored; no digits at all gives an invalid Year.
func ParseYear(s string) Year {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "+")

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return Year{}
	}

	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return Year{}
	}
	return Year{Value: v, Valid: true}
}

// Join builds the stored form from a first and last year. Blank parts are
// omitted, so Join("1825", "") is "1825".
func Join(first, last string) string {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	if first == Placeholder {
		first = ""
	}
	if last == Placeholder {
		last = ""
	}

	switch {
	case first == "" && last == "":
		return ""
	case last == "":
		return first
	case first == "":
		return "-" + last
	default:
		return first + "-" + last
	}
}

// AtLeast reports whether the range's end year is >= bound. An invalid end
// year or bound never matches.
func (r Range) AtLeast(bound Year) bool {
	return r.End.Valid && bound.Valid && r.End.Value >= bound.Value
}

// AtMost reports whether the range's begin year is <= bound. An invalid
// begin year or bound never matches.
func (r Range) AtMost(bound Year) bool {
	return r.Begin.Valid && bound.Valid && r.Begin.Value <= bound.Value
}

func (y Year) String() string {
	if !y.Valid {
		return Placeholder
	}
	return strconv.Itoa(y.Value)
}

func orPlaceholder(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return Placeholder
	}
	return s
}
