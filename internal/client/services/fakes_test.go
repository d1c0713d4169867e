package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/meetrec/internal/client/client"
	"github.com/dmitrijs2005/meetrec/internal/client/models"
	"github.com/dmitrijs2005/meetrec/internal/client/repositories/jobs"
	"github.com/dmitrijs2005/meetrec/internal/client/session"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

type fixture struct {
	db     *sql.DB
	store  *session.Store
	guard  *session.Guard
	cache  *jobs.Cache
	client *fakeClient
	ind    *fakeIndicator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupDB(t)
	store := session.NewStore(db)
	return &fixture{
		db:     db,
		store:  store,
		guard:  session.NewGuard(store, nil),
		cache:  jobs.NewCache(db),
		client: &fakeClient{},
		ind:    &fakeIndicator{},
	}
}

func (f *fixture) login(t *testing.T) *models.Credential {
	t.Helper()
	cred := &models.Credential{Token: "tok", TokenType: "bearer", User: &models.User{ID: "u1", Name: "Ann", Email: "ann@example.com"}}
	require.NoError(t, f.store.Set(context.Background(), cred))
	return cred
}

func (f *fixture) jobService(opts ...JobServiceOption) *JobService {
	opts = append([]JobServiceOption{WithIndicator(f.ind), WithRosterCache(f.cache)}, opts...)
	return NewJobService(f.client, f.guard, f.store, opts...)
}

func (f *fixture) authService() AuthService {
	return NewAuthService(f.client, f.store, f.guard, f.cache, nil)
}

// ---- fake client ----

// fakeClient implements client.Client for service tests.
type fakeClient struct {
	LoginRet *models.Credential
	LoginErr error

	SignupErr error

	SubmitRet string
	SubmitErr error

	ListRet []models.Job
	ListErr error

	StopErr error

	UpdateRet *models.User
	UpdateErr error

	// recorded arguments
	Calls         []string
	LastCred      *models.Credential
	LastSubmit    models.JobRequest
	LastStopID    string
	LastSignup    models.SignupRequest
	LastUpdateID  string
	LastUpdate    models.ProfileUpdate
	LastLoginUser string
}

func (f *fakeClient) Login(_ context.Context, username, _ string) (*models.Credential, error) {
	f.Calls = append(f.Calls, "login")
	f.LastLoginUser = username
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Signup(_ context.Context, req models.SignupRequest) error {
	f.Calls = append(f.Calls, "signup")
	f.LastSignup = req
	return f.SignupErr
}

func (f *fakeClient) SubmitJob(_ context.Context, req models.JobRequest, cred *models.Credential) (string, error) {
	f.Calls = append(f.Calls, "submit")
	f.LastSubmit = req
	f.LastCred = cred
	return f.SubmitRet, f.SubmitErr
}

func (f *fakeClient) ListJobs(_ context.Context, cred *models.Credential) ([]models.Job, error) {
	f.Calls = append(f.Calls, "list")
	f.LastCred = cred
	return f.ListRet, f.ListErr
}

func (f *fakeClient) StopJob(_ context.Context, jobID string, cred *models.Credential) error {
	f.Calls = append(f.Calls, "stop")
	f.LastStopID = jobID
	f.LastCred = cred
	return f.StopErr
}

func (f *fakeClient) UpdateProfile(_ context.Context, userID string, upd models.ProfileUpdate, cred *models.Credential) (*models.User, error) {
	f.Calls = append(f.Calls, "update")
	f.LastUpdateID = userID
	f.LastUpdate = upd
	f.LastCred = cred
	return f.UpdateRet, f.UpdateErr
}

var _ client.Client = (*fakeClient)(nil)

// ---- fake indicator ----

type fakeIndicator struct {
	mu      sync.Mutex
	started int
	stopped int
	labels  []string
}

func (f *fakeIndicator) Start(desc string) func() {
	f.mu.Lock()
	f.started++
	f.labels = append(f.labels, desc)
	f.mu.Unlock()
	return func() {
		f.mu.Lock()
		f.stopped++
		f.mu.Unlock()
	}
}

func (f *fakeIndicator) balanced() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.started == f.stopped
}
