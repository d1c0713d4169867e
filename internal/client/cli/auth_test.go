package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/meetrec/internal/client/client"
	"github.com/dmitrijs2005/meetrec/internal/client/models"
)

func TestReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"service detail", &client.APIError{Op: "login", StatusCode: 401, Detail: "Incorrect email or password", Kind: client.ErrAuthentication}, "Incorrect email or password"},
		{"local validation", errors.Join(client.ErrValidation, models.JobRequest{}.Validate()), "meeting link is required"},
		{"network", client.ErrNetwork, "service unreachable"},
		{"other", errors.New("boom"), "Unknown error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reason(tt.err))
		})
	}
}

func TestRegister_Success(t *testing.T) {
	ta := newTestApp(false)
	out := capturePrint(t)
	stubAnswers(t, "Ann", "ann@example.com", "123", "Riga", "RI", "LV")
	stubPassword(t, "secret")

	require.NoError(t, ta.Register(context.Background()))

	assert.Equal(t, models.SignupRequest{
		Name: "Ann", Email: "ann@example.com", Phone: "123", City: "Riga", State: "RI", Country: "LV", Password: "secret",
	}, ta.auth.signup)
	assert.Equal(t, []string{"Account created successfully!"}, ta.notifier.successes)
	assert.Contains(t, *out, "Type 'login' to sign in.")
	assert.False(t, ta.isLoggedIn(context.Background()))
}

func TestRegister_Failure(t *testing.T) {
	ta := newTestApp(false)
	capturePrint(t)
	stubAnswers(t, "Ann", "ann@example.com", "123", "Riga", "RI", "LV")
	stubPassword(t, "secret")
	ta.auth.signupErr = &client.APIError{Op: "signup", StatusCode: 400, Detail: "Email already registered", Kind: client.ErrValidation}

	require.Error(t, ta.Register(context.Background()))
	assert.Equal(t, []string{"Signup failed: Email already registered"}, ta.notifier.errors)
	assert.Empty(t, ta.notifier.successes)
}

func TestLogin_Success(t *testing.T) {
	ta := newTestApp(false)
	stubAnswers(t, "ann@example.com")
	stubPassword(t, "pw")

	require.NoError(t, ta.Login(context.Background()))

	assert.Equal(t, "ann@example.com", ta.auth.loginUser)
	assert.Equal(t, "pw", ta.auth.loginPass)
	assert.Equal(t, []string{"Login successful"}, ta.notifier.successes)
	assert.True(t, ta.isLoggedIn(context.Background()))
	assert.Equal(t, "Ann", ta.status(context.Background()))
}

func TestLogin_Failure(t *testing.T) {
	ta := newTestApp(false)
	stubAnswers(t, "ann@example.com")
	stubPassword(t, "bad")
	ta.auth.loginErr = &client.APIError{Op: "login", StatusCode: 401, Kind: client.ErrAuthentication}

	require.ErrorIs(t, ta.Login(context.Background()), client.ErrAuthentication)
	assert.Equal(t, []string{"Login failed: Unknown error"}, ta.notifier.errors)
	assert.False(t, ta.isLoggedIn(context.Background()))
	assert.Equal(t, "guest", ta.status(context.Background()))
}

func TestLogin_InputError(t *testing.T) {
	ta := newTestApp(false)
	stubAnswers(t)

	require.Error(t, ta.Login(context.Background()))
	assert.Empty(t, ta.auth.loginUser)
	assert.Empty(t, ta.notifier.errors)
}

func TestLogout(t *testing.T) {
	ta := newTestApp(true)
	out := capturePrint(t)
	ta.form = SubmissionForm{MeetingURL: "https://x"}
	ta.jobs.roster.Replace([]models.Job{{ID: "j1"}}, time.Now())

	require.NoError(t, ta.Logout(context.Background()))

	assert.True(t, ta.auth.logoutCalled)
	assert.Zero(t, ta.jobs.roster.Version())
	assert.Empty(t, ta.jobs.roster.Views())
	assert.False(t, ta.isLoggedIn(context.Background()))
	assert.Equal(t, SubmissionForm{}, ta.form)
	assert.Contains(t, *out, "Logged out.")
}

func TestLogout_ErrorPropagates(t *testing.T) {
	ta := newTestApp(true)
	ta.auth.logoutErr = errors.New("clean-fail")

	require.Error(t, ta.Logout(context.Background()))
	assert.Equal(t, []string{"Logout failed."}, ta.notifier.errors)
}
