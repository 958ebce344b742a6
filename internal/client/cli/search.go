package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/worldcovers/internal/catalog"
	"github.com/dmitrijs2005/worldcovers/internal/client/views"
	"github.com/dmitrijs2005/worldcovers/internal/daterange"
	"github.com/dmitrijs2005/worldcovers/internal/filter"
)

// filterSetters maps "filter" command keys to search form fields.
var filterSetters = map[string]func(s *filter.State, v string) error{
	"keyword":   func(s *filter.State, v string) error { s.Keyword = v; return nil },
	"state":     func(s *filter.State, v string) error { s.State = orAll(v); return nil },
	"town":      func(s *filter.State, v string) error { s.Town = v; return nil },
	"begin":     func(s *filter.State, v string) error { s.BeginYear = v; return nil },
	"end":       func(s *filter.State, v string) error { s.EndYear = v; return nil },
	"type":      func(s *filter.State, v string) error { s.Type = orAll(v); return nil },
	"color":     func(s *filter.State, v string) error { s.Color = orAll(v); return nil },
	"valuation": func(s *filter.State, v string) error { s.Valuation = orAll(v); return nil },
	"manuscripts": func(s *filter.State, v string) error {
		switch strings.ToLower(v) {
		case "exclude", "no", "false":
			s.ExcludeManuscripts = true
		case "include", "yes", "true", "":
			s.ExcludeManuscripts = false
		default:
			return fmt.Errorf("manuscripts must be include or exclude")
		}
		return nil
	},
	"images": func(s *filter.State, v string) error {
		switch strings.ToLower(v) {
		case "only", "yes", "true":
			s.ImagesOnly = true
		case "all", "no", "false", "":
			s.ImagesOnly = false
		default:
			return fmt.Errorf("images must be only or all")
		}
		return nil
	},
}

func orAll(v string) string {
	if v == "" {
		return filter.All
	}
	return v
}

// ensureLoaded loads the catalog on first use.
func (a *App) ensureLoaded(ctx context.Context) error {
	if loaded, _ := a.search.Loaded(); loaded {
		return nil
	}
	return a.loadCatalog(ctx)
}

func (a *App) loadCatalog(ctx context.Context) error {
	err := a.search.Load(ctx)
	if errors.Is(err, views.ErrSuperseded) {
		return nil
	}
	return err
}

// Search reloads the catalog and prints the first page. With arguments the
// keyword filter is set to them.
func (a *App) Search(ctx context.Context, args []string) error {
	if len(args) > 0 {
		keyword := strings.Join(args, " ")
		a.search.Update(func(s *filter.State) { s.Keyword = keyword })
	}
	if err := a.loadCatalog(ctx); err != nil {
		return err
	}
	a.printResults()
	return nil
}

// Filter changes the search form with key=value arguments and prints the
// first page of the results.
func (a *App) Filter(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printFilters()
		return nil
	}
	assigns, err := parseAssignments(args)
	if err != nil {
		return err
	}

	next := a.search.State()
	for _, as := range assigns {
		set, ok := filterSetters[as.key]
		if !ok {
			return fmt.Errorf("unknown filter %q", as.key)
		}
		if err := set(&next, strings.TrimSpace(as.value)); err != nil {
			return err
		}
	}
	a.search.Update(func(s *filter.State) { *s = next })

	if err := a.ensureLoaded(ctx); err != nil {
		return err
	}
	a.printResults()
	return nil
}

func (a *App) ClearFilters(ctx context.Context) error {
	a.search.Clear()
	if err := a.ensureLoaded(ctx); err != nil {
		return err
	}
	a.printResults()
	return nil
}

func (a *App) Next(ctx context.Context) error {
	if !a.search.Next() {
		a.println("Already on the last page")
		return nil
	}
	a.printResults()
	return nil
}

func (a *App) Prev(ctx context.Context) error {
	if !a.search.Prev() {
		a.println("Already on the first page")
		return nil
	}
	a.printResults()
	return nil
}

func (a *App) Page(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: page <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.New("usage: page <n>")
	}
	a.search.SetPage(n)
	a.printResults()
	return nil
}

// Show prints a catalog record.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: show <id>")
	}
	e, ok := a.search.Entry(args[0])
	if !ok {
		rec, err := a.catalogService.Record(ctx, args[0])
		if err != nil {
			return err
		}
		e = catalog.FromRecord(*rec)
	}
	a.printEntry(e)
	return nil
}

func (a *App) printFilters() {
	s := a.search.State()
	a.printf("keyword=%q state=%s town=%q begin=%q end=%q type=%s color=%s valuation=%s manuscripts=%s images=%s\n",
		s.Keyword, s.State, s.Town, s.BeginYear, s.EndYear, s.Type, s.Color, s.Valuation,
		map[bool]string{true: "exclude", false: "include"}[s.ExcludeManuscripts],
		map[bool]string{true: "only", false: "all"}[s.ImagesOnly])
}

func (a *App) printResults() {
	page := a.search.Results()
	if _, err := a.search.Loaded(); err != nil {
		a.println("Could not load the catalog")
		return
	}
	if page.Total == 0 {
		if a.search.State().Active() {
			a.println("No entries match your filters")
			return
		}
		a.println("No entries found")
		return
	}
	for _, e := range page.Items {
		m := e.Base()
		dr := daterange.Display(m.DateRange)
		a.printf("%-36s  %s  [%s, %s | %s-%s | %s | %s]\n",
			e.Key(), m.Name, m.Town, m.State, dr.FirstSeen, dr.LastSeen, m.Type, m.Color)
	}
	a.printf("Page %d of %d (%d entries)\n", page.Number, page.Count, page.Total)
}

func (a *App) printEntry(e catalog.Entry) {
	m, d := e.Base(), e.Info()
	dr := daterange.Display(m.DateRange)

	a.println(m.Name)
	rows := [][2]string{
		{"ID", e.Key()},
		{"Town", m.Town},
		{"State", m.State},
		{"First seen", dr.FirstSeen},
		{"Last seen", dr.LastSeen},
		{"Type", m.Type},
		{"Color", m.Color},
		{"Rarity", catalog.RarityLabel(e)},
		{"Dimensions", d.Dimensions},
		{"Manuscript", d.Manuscript},
		{"Description", d.Description},
		{"References", d.CitationReferences},
		{"Image", m.ImageURL},
	}
	if se, ok := e.(catalog.SubmissionEntry); ok {
		rows = append(rows, [2]string{"Status", se.Submission.Status.Label()})
		rows = append(rows, [2]string{"Submitted", se.Submission.CreatedAt.Format(filter.DateLayout)})
	}
	for _, r := range rows {
		if strings.TrimSpace(r[1]) == "" {
			continue
		}
		a.printf("  %-12s %s\n", r[0]+":", r[1])
	}
}
