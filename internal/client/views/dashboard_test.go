package views

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/worldcovers/internal/catalog"
	"github.com/dmitrijs2005/worldcovers/internal/client/session"
	"github.com/dmitrijs2005/worldcovers/internal/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeList struct {
	mu    sync.Mutex
	calls int
	subs  []catalog.Submission
	err   error
}

func (f *fakeList) list(context.Context) ([]catalog.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.subs, f.err
}

func (f *fakeList) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func day(d int) time.Time { return time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC) }

func sampleSubs() []catalog.Submission {
	return []catalog.Submission{
		{ID: "s3", Marking: catalog.Marking{Name: "Concord, NH Oval", Town: "Concord", State: "NH"}, Status: catalog.StatusRejected, CreatedAt: day(5)},
		{ID: "s2", Marking: catalog.Marking{Name: "Salem, MA Circle", Town: "Salem", State: "MA"}, Status: catalog.StatusPending, CreatedAt: day(3)},
		{ID: "s1", Marking: catalog.Marking{Name: "Boston, MA Circle", Town: "Boston", State: "MA"}, Status: catalog.StatusApproved, CreatedAt: day(1)},
	}
}

func TestDashboardView_SignedOut(t *testing.T) {
	fl := &fakeList{subs: sampleSubs()}
	d := NewDashboardView(session.NewStore(), fl.list, nil)

	require.NoError(t, d.Mount(context.Background()))
	defer d.Unmount()

	assert.Equal(t, 0, fl.count(), "no request without a session")
	assert.False(t, d.SignedIn())
	assert.Empty(t, d.Results())
	assert.Equal(t, MsgSignIn, d.Message())
}

func TestDashboardView_FollowsSession(t *testing.T) {
	store := session.NewStore()
	fl := &fakeList{subs: sampleSubs()}
	d := NewDashboardView(store, fl.list, nil)

	require.NoError(t, d.Mount(context.Background()))
	assert.True(t, d.Mounted())

	store.Set(session.Session{Email: "ann@example.com", AccessToken: "t"})
	assert.Equal(t, 1, fl.count())
	assert.True(t, d.SignedIn())
	assert.Len(t, d.Results(), 3)

	// Account details arriving for the same user do not reload.
	store.Set(session.Session{Email: "ann@example.com", UserID: "u1", AccessToken: "t"})
	assert.Equal(t, 1, fl.count())

	store.Clear()
	assert.False(t, d.SignedIn())
	assert.Empty(t, d.Results())

	d.Unmount()
	assert.False(t, d.Mounted())

	store.Set(session.Session{Email: "bob@example.com"})
	assert.Equal(t, 1, fl.count(), "unmounted view ignores session changes")
}

func TestDashboardView_Filters(t *testing.T) {
	store := session.NewStore()
	store.Set(session.Session{Email: "ann@example.com"})
	d := NewDashboardView(store, (&fakeList{subs: sampleSubs()}).list, nil)
	require.NoError(t, d.Load(context.Background()))

	assert.Equal(t, []string{"NH", "MA"}, d.States())

	d.Update(func(q *filter.SubmissionQuery) { q.State = "MA" })
	assert.Len(t, d.Results(), 2)

	d.Update(func(q *filter.SubmissionQuery) { q.Text = "salem" })
	got := d.Results()
	require.Len(t, got, 1)
	assert.Equal(t, "s2", got[0].ID)

	d.Update(func(q *filter.SubmissionQuery) { q.Status = string(catalog.StatusApproved) })
	assert.Empty(t, d.Results())
	assert.Equal(t, MsgNoMatches, d.Message())

	d.Clear()
	assert.Equal(t, filter.DefaultSubmissionQuery(), d.Query())
	d.Update(func(q *filter.SubmissionQuery) { q.From = day(2); q.To = day(4) })
	got = d.Results()
	require.Len(t, got, 1)
	assert.Equal(t, "s2", got[0].ID)
	assert.Equal(t, "", d.Message())
}

func TestDashboardView_EmptyAndError(t *testing.T) {
	store := session.NewStore()
	store.Set(session.Session{Email: "ann@example.com"})

	d := NewDashboardView(store, (&fakeList{}).list, nil)
	require.NoError(t, d.Load(context.Background()))
	assert.Equal(t, MsgNoSubmissions, d.Message())

	d = NewDashboardView(store, (&fakeList{err: assert.AnError}).list, nil)
	require.ErrorIs(t, d.Load(context.Background()), assert.AnError)
	assert.ErrorIs(t, d.Err(), assert.AnError)
	assert.Empty(t, d.Results())
}
