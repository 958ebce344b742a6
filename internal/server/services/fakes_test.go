package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/worldcovers/internal/catalog"
	"github.com/dmitrijs2005/worldcovers/internal/common"
	"github.com/dmitrijs2005/worldcovers/internal/dbx"
	"github.com/dmitrijs2005/worldcovers/internal/options"
	"github.com/dmitrijs2005/worldcovers/internal/server/models"
	"github.com/dmitrijs2005/worldcovers/internal/server/repositories/catalogrecords"
	"github.com/dmitrijs2005/worldcovers/internal/server/repositories/loginrequests"
	"github.com/dmitrijs2005/worldcovers/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/worldcovers/internal/server/repositories/submissions"
	"github.com/dmitrijs2005/worldcovers/internal/server/repositories/users"
)

func init() {
	bcryptCost = bcrypt.MinCost
}

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// --- users ---

type fakeUsers struct {
	mu      sync.Mutex
	byID    map[string]*models.User
	getErr  error
	created int
}

func newFakeUsers() *fakeUsers { return &fakeUsers{byID: map[string]*models.User{}} }

func (f *fakeUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, x := range f.byID {
		if x.Email == u.Email {
			return nil, common.ErrorConflict
		}
	}
	f.created++
	u.ID = fmt.Sprintf("u%d", f.created)
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

// --- refresh tokens ---

type fakeRefresh struct {
	tokens    map[string]*models.RefreshToken
	createErr error
	deleted   []string
	revoked   []string
}

func newFakeRefresh() *fakeRefresh { return &fakeRefresh{tokens: map[string]*models.RefreshToken{}} }

func (f *fakeRefresh) Create(ctx context.Context, userID, token string, validity time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.tokens[token] = &models.RefreshToken{UserID: userID, Token: token, Expires: time.Now().Add(validity)}
	return nil
}

func (f *fakeRefresh) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if t, ok := f.tokens[token]; ok {
		return t, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeRefresh) Delete(ctx context.Context, token string) error {
	f.deleted = append(f.deleted, token)
	delete(f.tokens, token)
	return nil
}

func (f *fakeRefresh) DeleteByUser(ctx context.Context, userID string) error {
	f.revoked = append(f.revoked, userID)
	for k, t := range f.tokens {
		if t.UserID == userID {
			delete(f.tokens, k)
		}
	}
	return nil
}

// --- catalog records ---

type fakeRecords struct {
	recs    []catalog.Record
	err     error
	created []catalog.Record
}

func (f *fakeRecords) SelectAll(ctx context.Context) ([]catalog.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]catalog.Record{}, f.recs...), nil
}

func (f *fakeRecords) GetByID(ctx context.Context, id string) (*catalog.Record, error) {
	for i := range f.recs {
		if f.recs[i].ID == id {
			return &f.recs[i], nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeRecords) CreateIfAbsent(ctx context.Context, rec *catalog.Record) (*catalog.Record, bool, error) {
	for i := range f.recs {
		r := f.recs[i]
		if r.Name == rec.Name && r.State == rec.State && r.Town == rec.Town && r.DateRange == rec.DateRange && r.Type == rec.Type {
			return &f.recs[i], false, nil
		}
	}
	rec.ID = fmt.Sprintf("r%d", len(f.recs)+1)
	f.recs = append(f.recs, *rec)
	f.created = append(f.created, *rec)
	return rec, true, nil
}

func (f *fakeRecords) Column(ctx context.Context, col models.Column) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []string{}
	for _, r := range f.recs {
		switch col {
		case models.ColumnColor:
			out = append(out, r.Color)
		case models.ColumnType:
			out = append(out, r.Type)
		case models.ColumnState:
			out = append(out, r.State)
		case models.ColumnValuation:
			out = append(out, r.Valuation)
		}
	}
	return out, nil
}

func (f *fakeRecords) Places(ctx context.Context) ([]options.Pair, error) {
	out := []options.Pair{}
	for _, r := range f.recs {
		out = append(out, options.Pair{Town: r.Town, State: r.State})
	}
	return out, nil
}

// --- submissions ---

type fakeSubmissions struct {
	subs []catalog.Submission
}

func (f *fakeSubmissions) Create(ctx context.Context, s *catalog.Submission) (*catalog.Submission, error) {
	s.ID = fmt.Sprintf("s%d", len(f.subs)+1)
	s.CreatedAt = time.Now()
	f.subs = append(f.subs, *s)
	return s, nil
}

func (f *fakeSubmissions) GetByID(ctx context.Context, id string) (*catalog.Submission, error) {
	for i := range f.subs {
		if f.subs[i].ID == id {
			s := f.subs[i]
			return &s, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeSubmissions) SelectByUser(ctx context.Context, userID string) ([]catalog.Submission, error) {
	out := []catalog.Submission{}
	for _, s := range f.subs {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeSubmissions) Column(ctx context.Context, col models.Column) ([]string, error) {
	out := []string{}
	for _, s := range f.subs {
		switch col {
		case models.ColumnColor:
			out = append(out, s.Color)
		case models.ColumnType:
			out = append(out, s.Type)
		case models.ColumnState:
			out = append(out, s.State)
		}
	}
	return out, nil
}

func (f *fakeSubmissions) Places(ctx context.Context) ([]options.Pair, error) {
	out := []options.Pair{}
	for _, s := range f.subs {
		out = append(out, options.Pair{Town: s.Town, State: s.State})
	}
	return out, nil
}

// --- login requests ---

type fakeLoginRequests struct {
	saved []models.LoginRequest
	err   error
}

func (f *fakeLoginRequests) Create(ctx context.Context, req *models.LoginRequest) (*models.LoginRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	req.ID = "lr1"
	f.saved = append(f.saved, *req)
	return req, nil
}

// --- manager ---

type fakeRepoManager struct {
	users   *fakeUsers
	refresh *fakeRefresh
	records *fakeRecords
	subs    *fakeSubmissions
	logins  *fakeLoginRequests
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:   newFakeUsers(),
		refresh: newFakeRefresh(),
		records: &fakeRecords{},
		subs:    &fakeSubmissions{},
		logins:  &fakeLoginRequests{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error      { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                   { return m.users }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository   { return m.refresh }
func (m *fakeRepoManager) CatalogRecords(dbx.DBTX) catalogrecords.Repository { return m.records }
func (m *fakeRepoManager) Submissions(dbx.DBTX) submissions.Repository       { return m.subs }
func (m *fakeRepoManager) LoginRequests(dbx.DBTX) loginrequests.Repository   { return m.logins }

// --- image store ---

type fakeImages struct {
	uploaded  map[string]string
	uploadErr error
}

func (f *fakeImages) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	b, _ := io.ReadAll(body)
	if f.uploaded == nil {
		f.uploaded = map[string]string{}
	}
	f.uploaded[key] = string(b)
	return nil
}

func (f *fakeImages) URL(ctx context.Context, key string) (string, error) {
	return "https://img.example.com/" + key, nil
}
