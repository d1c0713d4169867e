package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/meetrec/internal/client/client"
	"github.com/dmitrijs2005/meetrec/internal/client/config"
	"github.com/dmitrijs2005/meetrec/internal/client/lifecycle"
	"github.com/dmitrijs2005/meetrec/internal/client/models"
	"github.com/dmitrijs2005/meetrec/internal/client/services"
	"github.com/dmitrijs2005/meetrec/internal/logging"
)

// ------------ output capture ------------

func capturePrint(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = toString(v)
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func stubAnswers(t *testing.T, answers ...string) {
	t.Helper()
	origST, origTD := getSimpleText, getTextWithDefault
	next := func(current string) (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		v := answers[0]
		answers = answers[1:]
		if v == "" {
			return current, nil
		}
		return v, nil
	}
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next("") }
	getTextWithDefault = func(_ *bufio.Reader, _ string, current string, _ io.Writer) (string, error) { return next(current) }
	t.Cleanup(func() {
		getSimpleText = origST
		getTextWithDefault = origTD
	})
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) (string, error) { return pw, nil }
	t.Cleanup(func() { getPassword = orig })
}

// ------------ fakes ------------

type fakeNotifier struct {
	successes []string
	errors    []string
}

func (f *fakeNotifier) Success(msg string) { f.successes = append(f.successes, msg) }
func (f *fakeNotifier) Error(msg string)   { f.errors = append(f.errors, msg) }

type fakeGuard struct {
	cred *models.Credential
}

func (g *fakeGuard) IsAuthenticated(context.Context) bool { return g.cred.Valid() }
func (g *fakeGuard) Require(context.Context) (*models.Credential, error) {
	if !g.cred.Valid() {
		return nil, client.ErrUnauthorized
	}
	return g.cred, nil
}

type fakeAuth struct {
	guard *fakeGuard

	loginUser, loginPass string
	loginCred            *models.Credential
	loginErr             error

	signup    models.SignupRequest
	signupErr error

	logoutCalled bool
	logoutErr    error

	update    models.ProfileUpdate
	updateRet *models.User
	updateErr error
}

func (f *fakeAuth) Login(_ context.Context, user, pass string) (*models.Credential, error) {
	f.loginUser, f.loginPass = user, pass
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if f.guard != nil {
		f.guard.cred = f.loginCred
	}
	return f.loginCred, nil
}

func (f *fakeAuth) Signup(_ context.Context, req models.SignupRequest) error {
	f.signup = req
	return f.signupErr
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalled = true
	if f.logoutErr == nil && f.guard != nil {
		f.guard.cred = nil
	}
	return f.logoutErr
}

func (f *fakeAuth) UpdateProfile(_ context.Context, upd models.ProfileUpdate) (*models.User, error) {
	f.update = upd
	return f.updateRet, f.updateErr
}

type fakeJobs struct {
	roster services.Roster

	submitted []models.JobRequest
	submitID  string
	submitErr error

	refreshCalls int
	refreshRet   []models.Job
	refreshErr   error

	cachedRet []models.Job
	cachedErr error

	stopped []string
	stopErr error

	downloaded []lifecycle.View
	downloadTo string
	downloadEr error

	watchUpdates [][]models.Job
	watchErr     error
}

func (f *fakeJobs) Submit(_ context.Context, req models.JobRequest) (string, error) {
	f.submitted = append(f.submitted, req)
	return f.submitID, f.submitErr
}

func (f *fakeJobs) Refresh(context.Context) ([]models.Job, error) {
	f.refreshCalls++
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	f.roster.Replace(f.refreshRet, time.Now())
	return f.roster.Jobs(), nil
}

func (f *fakeJobs) Cached(context.Context) ([]models.Job, error) { return f.cachedRet, f.cachedErr }

func (f *fakeJobs) Stop(_ context.Context, id string) error {
	f.stopped = append(f.stopped, id)
	return f.stopErr
}

func (f *fakeJobs) Download(_ context.Context, v lifecycle.View) (string, error) {
	f.downloaded = append(f.downloaded, v)
	return f.downloadTo, f.downloadEr
}

func (f *fakeJobs) Watch(_ context.Context, _ time.Duration, onUpdate func([]models.Job)) error {
	for _, u := range f.watchUpdates {
		f.roster.Replace(u, time.Now())
		onUpdate(u)
	}
	return f.watchErr
}

func (f *fakeJobs) Roster() *services.Roster { return &f.roster }

// ------------ app ------------

type testApp struct {
	*App
	auth     *fakeAuth
	jobs     *fakeJobs
	guard    *fakeGuard
	notifier *fakeNotifier
}

func sampleCred() *models.Credential {
	return &models.Credential{Token: "tok", User: &models.User{ID: "u1", Name: "Ann", Email: "ann@example.com", City: "Riga"}}
}

func newTestApp(loggedIn bool) *testApp {
	g := &fakeGuard{}
	if loggedIn {
		g.cred = sampleCred()
	}
	ta := &testApp{
		auth:     &fakeAuth{guard: g, loginCred: sampleCred()},
		jobs:     &fakeJobs{},
		guard:    g,
		notifier: &fakeNotifier{},
	}
	cfg := &config.Config{}
	cfg.LoadDefaults()
	ta.App = &App{
		config:      cfg,
		authService: ta.auth,
		jobService:  ta.jobs,
		guard:       g,
		notifier:    ta.notifier,
		log:         logging.Nop(),
		out:         io.Discard,
		now:         time.Now,
	}
	return ta
}
