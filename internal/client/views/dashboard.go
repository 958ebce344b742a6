package views

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/worldcovers/internal/catalog"
	"github.com/dmitrijs2005/worldcovers/internal/client/session"
	"github.com/dmitrijs2005/worldcovers/internal/filter"
	"github.com/dmitrijs2005/worldcovers/internal/generation"
	"github.com/dmitrijs2005/worldcovers/internal/logging"
)

// SubmissionsFunc loads the signed-in contributor's submissions.
type SubmissionsFunc func(ctx context.Context) ([]catalog.Submission, error)

// Dashboard messages shown instead of an empty list.
const (
	MsgSignIn        = "Sign in to see your submissions."
	MsgNoSubmissions = "You haven't submitted anything yet."
	MsgNoMatches     = "No submissions found matching your filters."
)

// DashboardView lists the contributor's own submissions. While mounted it
// follows the session: signing in reloads the list, signing out empties it.
type DashboardView struct {
	mu       sync.Mutex
	sessions *session.Store
	list     SubmissionsFunc
	query    filter.SubmissionQuery
	subs     []catalog.Submission
	owner    string
	err      error

	tracker     generation.Tracker
	mountCtx    context.Context
	unsubscribe func()
	log         logging.Logger
}

func NewDashboardView(sessions *session.Store, list SubmissionsFunc, log logging.Logger) *DashboardView {
	if log == nil {
		log = logging.Discard()
	}
	return &DashboardView{
		sessions: sessions,
		list:     list,
		query:    filter.DefaultSubmissionQuery(),
		log:      log.With("view", "dashboard"),
	}
}

// Mount subscribes to session changes and loads the list. Mounting an
// already mounted view only reloads.
func (d *DashboardView) Mount(ctx context.Context) error {
	d.mu.Lock()
	if d.unsubscribe == nil {
		d.mountCtx = ctx
		d.unsubscribe = d.sessions.Subscribe(d.onSession)
	}
	d.mu.Unlock()
	return d.Load(ctx)
}

// Unmount stops following the session and abandons any load in flight.
func (d *DashboardView) Unmount() {
	d.mu.Lock()
	unsubscribe := d.unsubscribe
	d.unsubscribe = nil
	d.mountCtx = nil
	d.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	d.tracker.Cancel()
}

// Mounted reports whether the view follows the session.
func (d *DashboardView) Mounted() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.unsubscribe != nil
}

func (d *DashboardView) onSession(ev session.Event) {
	owner := ownerOf(ev.Session)

	d.mu.Lock()
	ctx := d.mountCtx
	changed := owner != d.owner
	d.mu.Unlock()

	if ctx == nil || !changed {
		return
	}
	if err := d.Load(ctx); err != nil && !errors.Is(err, ErrSuperseded) {
		d.log.Warn(ctx, "error loading submissions", "error", err)
	}
}

// Load fetches the submissions of the current session. Signed out, the list
// is emptied without a request.
func (d *DashboardView) Load(ctx context.Context) error {
	ctx, ticket := d.tracker.Begin(ctx)
	defer ticket.Done()

	owner := ownerOf(d.sessions.Get())
	var (
		subs []catalog.Submission
		err  error
	)
	if owner != "" {
		subs, err = d.list(ctx)
	}

	ok := ticket.Publish(func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.owner = owner
		d.err = err
		d.subs = subs
	})
	if !ok {
		return ErrSuperseded
	}
	return err
}

// SignedIn reports whether the list belongs to a signed-in contributor.
func (d *DashboardView) SignedIn() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.owner != ""
}

func (d *DashboardView) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

func (d *DashboardView) Query() filter.SubmissionQuery {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.query
}

func (d *DashboardView) Update(fn func(*filter.SubmissionQuery)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(&d.query)
}

func (d *DashboardView) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.query = filter.DefaultSubmissionQuery()
}

// Results returns the filtered submissions, newest first as loaded.
func (d *DashboardView) Results() []catalog.Submission {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.query.Filter(d.subs)
}

// States lists the distinct non-empty states of the loaded submissions in
// first-seen order.
func (d *DashboardView) States() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, s := range d.subs {
		if s.State == "" || seen[s.State] {
			continue
		}
		seen[s.State] = true
		out = append(out, s.State)
	}
	return out
}

// Message explains an empty result, or returns "" when there is something
// to show.
func (d *DashboardView) Message() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch {
	case d.owner == "":
		return MsgSignIn
	case len(d.subs) == 0:
		return MsgNoSubmissions
	case len(d.query.Filter(d.subs)) == 0:
		return MsgNoMatches
	}
	return ""
}

func ownerOf(s *session.Session) string {
	if s == nil {
		return ""
	}
	return s.Email
}
