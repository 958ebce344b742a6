package filter

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/worldcovers/internal/catalog"
)

// SubmissionQuery filters a contributor's own submissions on the dashboard.
// Zero time bounds are inactive.
type SubmissionQuery struct {
	Text   string
	Status string
	State  string
	From   time.Time
	To     time.Time
}

func DefaultSubmissionQuery() SubmissionQuery {
	return SubmissionQuery{Status: All, State: All}
}

func (q SubmissionQuery) Predicates() []Predicate[catalog.Submission] {
	var preds []Predicate[catalog.Submission]

	if text := strings.ToLower(strings.TrimSpace(q.Text)); text != "" {
		preds = append(preds, func(s catalog.Submission) bool {
			for _, v := range []string{s.Name, s.Town, s.State} {
				if strings.Contains(strings.ToLower(v), text) {
					return true
				}
			}
			return false
		})
	}

	if selected(q.Status) {
		want := catalog.Status(q.Status)
		preds = append(preds, func(s catalog.Submission) bool { return s.Status == want })
	}

	if selected(q.State) {
		want := q.State
		preds = append(preds, func(s catalog.Submission) bool { return s.State == want })
	}

	if !q.From.IsZero() {
		from := q.From
		preds = append(preds, func(s catalog.Submission) bool { return !s.CreatedAt.Before(from) })
	}

	if !q.To.IsZero() {
		to := q.To
		preds = append(preds, func(s catalog.Submission) bool { return !s.CreatedAt.After(to) })
	}

	return preds
}

// Filter applies the query to subs.
func (q SubmissionQuery) Filter(subs []catalog.Submission) []catalog.Submission {
	return Apply(subs, q.Predicates()...)
}

// DateLayout is the format of the from and to bounds.
const DateLayout = "2006-01-02"

// ParseSubmissionQuery reads q, status, state, from and to. Dates are
// YYYY-MM-DD in UTC; "to" includes the whole day.
func ParseSubmissionQuery(v url.Values) (SubmissionQuery, error) {
	q := DefaultSubmissionQuery()
	q.Text = v.Get("q")
	if st := v.Get("status"); st != "" {
		q.Status = st
	}
	if st := v.Get("state"); st != "" {
		q.State = st
	}
	if from := v.Get("from"); from != "" {
		t, err := time.Parse(DateLayout, from)
		if err != nil {
			return q, errors.New("from must be YYYY-MM-DD")
		}
		q.From = t
	}
	if to := v.Get("to"); to != "" {
		t, err := time.Parse(DateLayout, to)
		if err != nil {
			return q, errors.New("to must be YYYY-MM-DD")
		}
		q.To = t.Add(24*time.Hour - time.Nanosecond)
	}
	return q, nil
}
