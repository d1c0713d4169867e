// Package services contains the application services behind the CLI:
// authentication and profile management, and the recording job workflow.
// Services return errors and never talk to the user; the CLI decides how a
// failure is shown.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/meetrec/internal/client/client"
	"github.com/dmitrijs2005/meetrec/internal/client/models"
	"github.com/dmitrijs2005/meetrec/internal/logging"
)

// CredentialStore persists the session credential.
type CredentialStore interface {
	Set(ctx context.Context, cred *models.Credential) error
	Get(ctx context.Context) (*models.Credential, error)
	Clear(ctx context.Context) error
	UpdateUser(ctx context.Context, u *models.User) error
}

// Guard hands out the current credential or client.ErrUnauthorized.
type Guard interface {
	IsAuthenticated(ctx context.Context) bool
	Require(ctx context.Context) (*models.Credential, error)
}

// AuthService defines the account operations of the CLI.
//
// Contract:
//   - Login: authenticate and persist the credential.
//   - Signup: create an account; the user logs in afterwards.
//   - Logout: drop the stored credential.
//   - UpdateProfile: change the editable profile fields of the current user.
//
// All methods honour context cancellation.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.Credential, error)
	Signup(ctx context.Context, req models.SignupRequest) error
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error)
}

type authService struct {
	client client.Client
	store  CredentialStore
	guard  Guard
	cache  RosterCache
	log    logging.Logger
}

// NewAuthService wires the account operations. cache may be nil; when set,
// Logout also drops the cached roster.
func NewAuthService(c client.Client, store CredentialStore, guard Guard, cache RosterCache, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{client: c, store: store, guard: guard, cache: cache, log: log}
}

// Login exchanges username and password for a credential and stores it.
// Nothing is stored when the service rejects the attempt.
func (a *authService) Login(ctx context.Context, username, password string) (*models.Credential, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", client.ErrValidation)
	}

	cred, err := a.client.Login(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	if err := a.store.Set(ctx, cred); err != nil {
		return nil, fmt.Errorf("credential saving error: %w", err)
	}

	a.log.Info(ctx, "logged in", "user_id", cred.User.ID)
	return cred, nil
}

func (a *authService) Signup(ctx context.Context, req models.SignupRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %w", client.ErrValidation, err)
	}
	if err := a.client.Signup(ctx, req); err != nil {
		return fmt.Errorf("signup error: %w", err)
	}
	a.log.Info(ctx, "account created", "email", req.Email)
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("credential clearing error: %w", err)
	}
	if a.cache != nil {
		if err := a.cache.Clear(ctx); err != nil {
			a.log.Warn(ctx, "clearing roster snapshot failed", "error", err)
		}
	}
	a.log.Info(ctx, "logged out")
	return nil
}

// UpdateProfile sends the new profile and replaces the stored user with the
// record the service returns.
func (a *authService) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error) {
	cred, err := a.guard.Require(ctx)
	if err != nil {
		return nil, err
	}
	if err := upd.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", client.ErrValidation, err)
	}

	user, err := a.client.UpdateProfile(ctx, cred.User.ID, upd, cred)
	if err != nil {
		if client.IsAuthFailure(err) {
			dropSession(ctx, a.store, a.log)
		}
		return nil, fmt.Errorf("update profile error: %w", err)
	}
	// some deployments answer with an empty body
	if user == nil || user.ID == "" {
		merged := *cred.User
		merged.Name, merged.Phone, merged.City, merged.State, merged.Country = upd.Name, upd.Phone, upd.City, upd.State, upd.Country
		user = &merged
	}
	if err := a.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("credential saving error: %w", err)
	}
	return user, nil
}

// dropSession clears the credential after the service rejected it, so the
// guard sends the user back to login.
func dropSession(ctx context.Context, store CredentialStore, log logging.Logger) {
	if err := store.Clear(ctx); err != nil {
		log.Error(ctx, "clearing rejected credential failed", "error", err)
		return
	}
	log.Warn(ctx, "credential rejected by service, session cleared")
}
