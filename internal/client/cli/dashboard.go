package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/worldcovers/internal/catalog"
	"github.com/dmitrijs2005/worldcovers/internal/client/client"
	"github.com/dmitrijs2005/worldcovers/internal/filter"
)

// dashboardKeys maps dashboard filter keys to submission query parameters.
var dashboardKeys = map[string]string{
	"text":   "q",
	"q":      "q",
	"status": "status",
	"state":  "state",
	"from":   "from",
	"to":     "to",
}

// Dashboard lists the contributor's submissions. Arguments are key=value
// filters (text, status, state, from, to) or "clear". The dashboard stays
// mounted and follows the session until logout.
func (a *App) Dashboard(ctx context.Context, args []string) error {
	if len(args) == 1 && strings.EqualFold(args[0], "clear") {
		a.dashboard.Clear()
		args = nil
	}
	if len(args) > 0 {
		q, err := dashboardQuery(a.dashboard.Query(), args)
		if err != nil {
			return err
		}
		a.dashboard.Update(func(cur *filter.SubmissionQuery) { *cur = q })
	}

	if !a.dashboard.Mounted() {
		if err := a.dashboard.Mount(ctx); err != nil {
			return err
		}
	} else if err := a.dashboard.Load(ctx); err != nil {
		return err
	}

	a.printDashboard()
	return nil
}

// dashboardQuery applies key=value filters on top of cur.
func dashboardQuery(cur filter.SubmissionQuery, args []string) (filter.SubmissionQuery, error) {
	assigns, err := parseAssignments(args)
	if err != nil {
		return cur, err
	}

	v := url.Values{}
	for _, as := range assigns {
		key, ok := dashboardKeys[as.key]
		if !ok {
			return cur, fmt.Errorf("unknown filter %q", as.key)
		}
		v.Set(key, strings.TrimSpace(as.value))
	}

	q, err := filter.ParseSubmissionQuery(v)
	if err != nil {
		return cur, err
	}
	if _, ok := v["q"]; !ok {
		q.Text = cur.Text
	}
	if _, ok := v["status"]; !ok {
		q.Status = cur.Status
	}
	if _, ok := v["state"]; !ok {
		q.State = cur.State
	}
	if _, ok := v["from"]; !ok {
		q.From = cur.From
	}
	if _, ok := v["to"]; !ok {
		q.To = cur.To
	}
	return q, nil
}

func (a *App) printDashboard() {
	if err := a.dashboard.Err(); err != nil {
		a.println("Error loading submissions")
		return
	}
	if msg := a.dashboard.Message(); msg != "" {
		a.println(msg)
		return
	}
	for _, s := range a.dashboard.Results() {
		a.printf("%-36s  %-15s %s (%s, %s) %s\n",
			s.ID, s.Status.Label(), s.Name, s.Town, s.State, s.CreatedAt.Format(filter.DateLayout))
	}
	if states := a.dashboard.States(); len(states) > 0 {
		a.printf("States: %s\n", strings.Join(states, ", "))
	}
}

// Submission prints one of the contributor's submissions.
func (a *App) Submission(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: submission <id>")
	}
	if !a.isLoggedIn() {
		return client.ErrUnauthorized
	}
	s, err := a.submissionService.Get(ctx, args[0])
	if err != nil {
		return err
	}
	a.printEntry(catalog.FromSubmission(*s))
	return nil
}

// Publish copies an approved submission into the catalog.
func (a *App) Publish(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: publish <id>")
	}
	if !a.isLoggedIn() {
		return client.ErrUnauthorized
	}
	res, err := a.submissionService.Publish(ctx, args[0])
	if err != nil {
		if errors.Is(err, client.ErrConflict) {
			return errors.New("only approved submissions can be published")
		}
		return err
	}
	if res.Created {
		a.printf("Published as catalog record %s\n", res.Record.ID)
	} else {
		a.printf("Already in the catalog as record %s\n", res.Record.ID)
	}
	return nil
}
