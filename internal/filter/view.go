package filter

import "github.com/dmitrijs2005/worldcovers/internal/catalog"

// View owns a search form and its current page. Any change to the form
// moves back to page 1. A View is not safe for concurrent use.
type View struct {
	state State
	page  int
	size  int
}

func NewView(size int) *View {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &View{state: Default(), page: 1, size: size}
}

func (v *View) State() State { return v.state }
func (v *View) Page() int    { return v.page }
func (v *View) Size() int    { return v.size }

// Update applies fn to a copy of the form. When the form changes the page
// resets to 1. It reports whether anything changed.
func (v *View) Update(fn func(*State)) bool {
	next := v.state
	fn(&next)
	if next == v.state {
		return false
	}
	v.state = next
	v.page = 1
	return true
}

// Clear restores every filter to its default and returns to page 1.
func (v *View) Clear() {
	v.state = Default()
	v.page = 1
}

// SetPage moves to page n, clamped to 1..pageCount. With no pages the view
// stays on page 1.
func (v *View) SetPage(n, pageCount int) {
	v.page = max(1, min(n, pageCount))
}

// Next advances one page unless already on the last page.
func (v *View) Next(pageCount int) bool {
	if v.page >= pageCount {
		return false
	}
	v.page++
	return true
}

// Prev goes back one page unless already on the first page.
func (v *View) Prev() bool {
	if v.page <= 1 {
		return false
	}
	v.page--
	return true
}

// Results filters entries with the current form and returns the current page.
func (v *View) Results(entries []catalog.Entry) Page[catalog.Entry] {
	return Paginate(v.state.Filter(entries), v.size, v.page)
}
