package filter

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/worldcovers/internal/catalog"
	"github.com/dmitrijs2005/worldcovers/internal/daterange"
)

// All is the select value that disables an exact-match filter.
const All = "all"

// State is the catalog search form. Text fields are inactive when empty,
// select fields when empty or All, and flags when false.
type State struct {
	Keyword            string `json:"keyword"`
	State              string `json:"state"`
	Town               string `json:"town"`
	BeginYear          string `json:"begin_year"`
	EndYear            string `json:"end_year"`
	Type               string `json:"type"`
	Color              string `json:"color"`
	Valuation          string `json:"valuation"`
	ExcludeManuscripts bool   `json:"exclude_manuscripts"`
	ImagesOnly         bool   `json:"images_only"`
}

// Default returns a state with every filter inactive.
func Default() State {
	return State{State: All, Type: All, Color: All, Valuation: All}
}

// Active reports whether any filter is set.
func (s State) Active() bool {
	return len(s.Predicates()) > 0
}

// Predicates builds one predicate per active filter.
func (s State) Predicates() []Predicate[catalog.Entry] {
	var preds []Predicate[catalog.Entry]

	if q := strings.ToLower(strings.TrimSpace(s.Keyword)); q != "" {
		preds = append(preds, func(e catalog.Entry) bool {
			m := e.Base()
			for _, v := range []string{m.Name, m.Town, m.State, m.Type, m.Color} {
				if strings.Contains(strings.ToLower(v), q) {
					return true
				}
			}
			return false
		})
	}

	if selected(s.State) {
		want := s.State
		preds = append(preds, func(e catalog.Entry) bool { return e.Base().State == want })
	}

	if town := strings.ToLower(strings.TrimSpace(s.Town)); town != "" {
		preds = append(preds, func(e catalog.Entry) bool {
			return strings.Contains(strings.ToLower(e.Base().Town), town)
		})
	}

	if strings.TrimSpace(s.BeginYear) != "" {
		bound := daterange.ParseYear(s.BeginYear)
		preds = append(preds, func(e catalog.Entry) bool {
			return daterange.Bounds(e.Base().DateRange).AtLeast(bound)
		})
	}

	if strings.TrimSpace(s.EndYear) != "" {
		bound := daterange.ParseYear(s.EndYear)
		preds = append(preds, func(e catalog.Entry) bool {
			return daterange.Bounds(e.Base().DateRange).AtMost(bound)
		})
	}

	if selected(s.Type) {
		want := s.Type
		preds = append(preds, func(e catalog.Entry) bool { return e.Base().Type == want })
	}

	if selected(s.Color) {
		want := s.Color
		preds = append(preds, func(e catalog.Entry) bool { return strings.EqualFold(e.Base().Color, want) })
	}

	if selected(s.Valuation) {
		want := s.Valuation
		preds = append(preds, func(e catalog.Entry) bool { return e.Valuation() == want })
	}

	if s.ExcludeManuscripts {
		preds = append(preds, func(e catalog.Entry) bool { return e.Base().Type != catalog.ManuscriptType })
	}

	if s.ImagesOnly {
		preds = append(preds, func(e catalog.Entry) bool { return e.Base().HasImage() })
	}

	return preds
}

// Filter applies the state to entries.
func (s State) Filter(entries []catalog.Entry) []catalog.Entry {
	return Apply(entries, s.Predicates()...)
}

// Query encodes the active filters as URL query parameters.
func (s State) Query() url.Values {
	q := url.Values{}
	set := func(key, v string) {
		if v = strings.TrimSpace(v); v != "" && v != All {
			q.Set(key, v)
		}
	}
	set("q", s.Keyword)
	set("state", s.State)
	set("town", s.Town)
	set("begin_year", s.BeginYear)
	set("end_year", s.EndYear)
	set("type", s.Type)
	set("color", s.Color)
	set("valuation", s.Valuation)
	if s.ExcludeManuscripts {
		q.Set("exclude_manuscripts", "true")
	}
	if s.ImagesOnly {
		q.Set("images_only", "true")
	}
	return q
}

// ParseQuery is the inverse of Query. Missing select values become All.
func ParseQuery(q url.Values) State {
	s := Default()
	s.Keyword = q.Get("q")
	s.Town = q.Get("town")
	s.BeginYear = q.Get("begin_year")
	s.EndYear = q.Get("end_year")
	if v := q.Get("state"); v != "" {
		s.State = v
	}
	if v := q.Get("type"); v != "" {
		s.Type = v
	}
	if v := q.Get("color"); v != "" {
		s.Color = v
	}
	if v := q.Get("valuation"); v != "" {
		s.Valuation = v
	}
	s.ExcludeManuscripts, _ = strconv.ParseBool(q.Get("exclude_manuscripts"))
	s.ImagesOnly, _ = strconv.ParseBool(q.Get("images_only"))
	return s
}

func selected(v string) bool {
	return v != "" && v != All
}
