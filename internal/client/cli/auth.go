package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/meetrec/internal/client/client"
	"github.com/dmitrijs2005/meetrec/internal/client/models"
)

// getSimpleText, getTextWithDefault and getPassword are indirections used
// to facilitate testing.
var (
	getSimpleText      = GetSimpleText
	getTextWithDefault = GetTextWithDefault
	getPassword        = GetPassword
)

// reason is the user-facing cause of a failed call: the service's detail
// when it sent one, the validation message for rejected input, otherwise a
// generic text.
func reason(err error) string {
	if d := client.Detail(err); d != "" {
		return d
	}
	if errors.Is(err, models.ErrInvalidInput) {
		msg := err.Error()
		marker := models.ErrInvalidInput.Error() + ": "
		if i := strings.LastIndex(msg, marker); i >= 0 {
			return msg[i+len(marker):]
		}
		return msg
	}
	if errors.Is(err, client.ErrNetwork) {
		return "service unreachable"
	}
	return "Unknown error"
}

// Register collects the profile fields and a password and creates an
// account. The user logs in separately afterwards.
func (a *App) Register(ctx context.Context) error {
	var req models.SignupRequest
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Enter name", &req.Name},
		{"Enter email", &req.Email},
		{"Enter phone", &req.Phone},
		{"Enter city", &req.City},
		{"Enter state", &req.State},
		{"Enter country", &req.Country},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	req.Password = password

	if err := a.authService.Signup(ctx, req); err != nil {
		a.log.Debug(ctx, "signup failed", "error", err)
		a.notifier.Error("Signup failed: " + reason(err))
		return err
	}

	a.notifier.Success("Account created successfully!")
	printlnFn("Type 'login' to sign in.")
	return nil
}

// Login prompts for credentials and stores the session on success.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	cred, err := a.authService.Login(ctx, userName, password)
	if err != nil {
		a.log.Debug(ctx, "login failed", "error", err)
		a.notifier.Error("Login failed: " + reason(err))
		return err
	}

	a.notifier.Success("Login successful")
	a.log.Debug(ctx, "session started", "user_id", cred.User.ID)
	return nil
}

// Logout forgets the stored credential and the cached roster.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.notifier.Error("Logout failed.")
		return err
	}
	a.form = SubmissionForm{}
	a.jobService.Roster().Reset()
	printlnFn("Logged out.")
	return nil
}
