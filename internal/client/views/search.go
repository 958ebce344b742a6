package views

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/worldcovers/internal/catalog"
	"github.com/dmitrijs2005/worldcovers/internal/filter"
	"github.com/dmitrijs2005/worldcovers/internal/generation"
	"github.com/dmitrijs2005/worldcovers/internal/logging"
)

// ErrSuperseded is returned by a load whose result was discarded because a
// newer load started.
var ErrSuperseded = errors.New("superseded by a newer load")

// EntriesFunc loads the catalog.
type EntriesFunc func(ctx context.Context) ([]catalog.Entry, error)

// SearchView is the catalog search screen: the filter form, the current
// page and the loaded catalog. It is safe for concurrent use.
type SearchView struct {
	mu      sync.Mutex
	form    *filter.View
	entries []catalog.Entry
	loaded  bool
	err     error

	tracker generation.Tracker
	load    EntriesFunc
	log     logging.Logger
}

func NewSearchView(load EntriesFunc, pageSize int, log logging.Logger) *SearchView {
	if log == nil {
		log = logging.Discard()
	}
	return &SearchView{
		form: filter.NewView(pageSize),
		load: load,
		log:  log.With("view", "search"),
	}
}

// Load fetches the catalog. A load started later cancels this one; only
// the newest load replaces the view's data. On failure the view keeps an
// empty catalog and the error.
func (v *SearchView) Load(ctx context.Context) error {
	ctx, ticket := v.tracker.Begin(ctx)
	defer ticket.Done()

	entries, err := v.load(ctx)

	ok := ticket.Publish(func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		v.loaded = true
		v.err = err
		if err != nil {
			v.entries = nil
			return
		}
		v.entries = entries
		v.form.SetPage(v.form.Page(), filter.PageCount(len(v.form.State().Filter(entries)), v.form.Size()))
	})
	if !ok {
		v.log.Debug(ctx, "discarding stale catalog load")
		return ErrSuperseded
	}
	return err
}

// Loaded reports whether a load has completed, and its error.
func (v *SearchView) Loaded() (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded, v.err
}

func (v *SearchView) State() filter.State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.form.State()
}

// Update changes the filters. Any change returns to page 1.
func (v *SearchView) Update(fn func(*filter.State)) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.form.Update(fn)
}

func (v *SearchView) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.form.Clear()
}

func (v *SearchView) Next() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.form.Next(v.pageCount())
}

func (v *SearchView) Prev() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.form.Prev()
}

// SetPage jumps to page n, clamped to the available pages.
func (v *SearchView) SetPage(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.form.SetPage(n, v.pageCount())
}

// Results returns the current page of the filtered catalog.
func (v *SearchView) Results() filter.Page[catalog.Entry] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.form.Results(v.entries)
}

// Entry finds a loaded entry by id.
func (v *SearchView) Entry(id string) (catalog.Entry, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, e := range v.entries {
		if e.Key() == id {
			return e, true
		}
	}
	return nil, false
}

func (v *SearchView) pageCount() int {
	return filter.PageCount(len(v.form.State().Filter(v.entries)), v.form.Size())
}
