package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/meetrec/internal/client/client"
	"github.com/dmitrijs2005/meetrec/internal/client/config"
	"github.com/dmitrijs2005/meetrec/internal/client/feedback"
	"github.com/dmitrijs2005/meetrec/internal/client/lifecycle"
	"github.com/dmitrijs2005/meetrec/internal/client/models"
	"github.com/dmitrijs2005/meetrec/internal/client/repositories/jobs"
	"github.com/dmitrijs2005/meetrec/internal/client/services"
	"github.com/dmitrijs2005/meetrec/internal/client/session"
	"github.com/dmitrijs2005/meetrec/internal/logging"
)

// jobService is the part of services.JobService the commands use.
type jobService interface {
	Submit(ctx context.Context, req models.JobRequest) (string, error)
	Refresh(ctx context.Context) ([]models.Job, error)
	Cached(ctx context.Context) ([]models.Job, error)
	Stop(ctx context.Context, jobID string) error
	Download(ctx context.Context, v lifecycle.View) (string, error)
	Watch(ctx context.Context, interval time.Duration, onUpdate func([]models.Job)) error
	Roster() *services.Roster
}

// SubmissionForm holds the "record" fields between attempts, so a failed
// submission can be retried without typing everything again.
type SubmissionForm struct {
	MeetingURL  string
	Platform    string
	MeetingSlug string
}

func (f SubmissionForm) request() models.JobRequest {
	return models.JobRequest{
		MeetingURL:  strings.TrimSpace(f.MeetingURL),
		Platform:    models.Platform(strings.ToLower(strings.TrimSpace(f.Platform))),
		MeetingSlug: strings.TrimSpace(f.MeetingSlug),
	}
}

type App struct {
	config      *config.Config
	db          *sql.DB
	authService services.AuthService
	jobService  jobService
	guard       services.Guard
	notifier    feedback.Notifier
	log         logging.Logger
	reader      *bufio.Reader
	out         io.Writer
	form        SubmissionForm
	now         func() time.Time
}

// NewApp opens the local database and wires the services for cfg.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err, "path", c.DBPath)
		return nil, err
	}

	opts := []client.HTTPClientOption{client.WithLogger(log)}
	if c.RequestTimeout > 0 {
		opts = append(opts, client.WithTimeout(c.RequestTimeout))
	}
	apiClient, err := client.NewHTTPClient(c.ServerURL, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store := session.NewStore(db)
	guard := session.NewGuard(store, log)
	cache := jobs.NewCache(db)

	as := services.NewAuthService(apiClient, store, guard, cache, log)
	js := services.NewJobService(apiClient, guard, store,
		services.WithIndicator(feedback.NewSpinner(os.Stderr)),
		services.WithRosterCache(cache),
		services.WithJobLogger(log),
		services.WithDownloader(http.DefaultClient, services.DefaultDownloadDir),
	)

	return &App{
		config:      c,
		db:          db,
		authService: as,
		jobService:  js,
		guard:       guard,
		notifier:    feedback.NewConsoleNotifier(os.Stdout),
		log:         log,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		now:         time.Now,
	}, nil
}

// Run starts the REPL and blocks until the user leaves.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to meetrec (type 'help' for commands)")
	runREPL(ctx, a, func() string { return a.status(ctx) }, a.reader)
}

// Close releases the local database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.guard.IsAuthenticated(ctx)
}

func (a *App) status(ctx context.Context) string {
	cred, err := a.guard.Require(ctx)
	if err != nil {
		return "guest"
	}
	if cred.User.Name != "" {
		return cred.User.Name
	}
	return cred.User.Email
}

// sessionLost reports whether the service rejected the credential. The
// roster of the ended session is forgotten so row numbers cannot reach its
// jobs.
func (a *App) sessionLost(err error) bool {
	if !client.IsAuthFailure(err) {
		return false
	}
	a.jobService.Roster().Reset()
	return true
}
