package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/meetrec/internal/client/models"
	"github.com/dmitrijs2005/meetrec/internal/client/session"
)

func profileLines(u *models.User) string {
	var b strings.Builder
	for _, row := range [][2]string{
		{"Name", u.Name},
		{"Email", u.Email},
		{"Phone", u.Phone},
		{"City", u.City},
		{"State", u.State},
		{"Country", u.Country},
	} {
		fmt.Fprintf(&b, "%-8s %s\n", row[0]+":", row[1])
	}
	return strings.TrimRight(b.String(), "\n")
}

// Profile prints the stored user record.
func (a *App) Profile(ctx context.Context) error {
	cred, err := a.guard.Require(ctx)
	if err != nil {
		a.notifier.Error("User not found or unauthorized.")
		return err
	}
	printlnFn(profileLines(cred.User))
	return nil
}

// EditProfile prompts for each editable field, keeping the current value
// on an empty answer, and saves the result.
func (a *App) EditProfile(ctx context.Context) error {
	cred, err := a.guard.Require(ctx)
	if err != nil {
		a.notifier.Error("User not found or unauthorized.")
		return err
	}

	upd := models.ProfileUpdateFrom(*cred.User)
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Name", &upd.Name},
		{"Phone", &upd.Phone},
		{"City", &upd.City},
		{"State", &upd.State},
		{"Country", &upd.Country},
	}
	for _, f := range fields {
		v, err := getTextWithDefault(a.reader, f.prompt, *f.dst, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	user, err := a.authService.UpdateProfile(ctx, upd)
	if err != nil {
		a.log.Debug(ctx, "profile update failed", "error", err)
		a.notifier.Error(a.failure("Failed to update profile.", err))
		return err
	}

	a.notifier.Success("Profile updated successfully!")
	printlnFn(profileLines(user))
	return nil
}

// WhoAmI shows who is logged in and, for JWT tokens, the token's subject
// and expiry. The token is decoded without verification.
func (a *App) WhoAmI(ctx context.Context) error {
	cred, err := a.guard.Require(ctx)
	if err != nil {
		a.notifier.Error("User not found or unauthorized.")
		return err
	}

	printlnFn(fmt.Sprintf("Logged in as %s <%s> (id %s)", cred.User.Name, cred.User.Email, cred.User.ID))

	info, err := session.InspectToken(cred.Token)
	if err != nil {
		if errors.Is(err, session.ErrOpaqueToken) {
			printlnFn("Token: opaque, no details available")
			return nil
		}
		return err
	}
	if info.Subject != "" {
		printlnFn("Token subject: " + info.Subject)
	}
	switch {
	case info.ExpiresAt.IsZero():
		printlnFn("Token expiry: none")
	case info.Expired(a.now()):
		printlnFn(fmt.Sprintf("Token expired %s", humanize.RelTime(info.ExpiresAt, a.now(), "ago", "from now")))
	default:
		printlnFn(fmt.Sprintf("Token expires %s", humanize.RelTime(info.ExpiresAt, a.now(), "ago", "from now")))
	}
	return nil
}
