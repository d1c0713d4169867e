package client

import (
	"context"

	"github.com/dmitrijs2005/meetrec/internal/client/models"
)

// Client is the remote recording service as seen by this application.
// Every call honours ctx; authenticated calls take the credential
// explicitly instead of reading shared state.
type Client interface {
	Login(ctx context.Context, username, password string) (*models.Credential, error)
	Signup(ctx context.Context, req models.SignupRequest) error
	SubmitJob(ctx context.Context, req models.JobRequest, cred *models.Credential) (string, error)
	ListJobs(ctx context.Context, cred *models.Credential) ([]models.Job, error)
	StopJob(ctx context.Context, jobID string, cred *models.Credential) error
	UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate, cred *models.Credential) (*models.User, error)
}
