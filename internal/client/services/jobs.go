package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/samber/lo"

	"github.com/dmitrijs2005/meetrec/internal/client/client"
	"github.com/dmitrijs2005/meetrec/internal/client/feedback"
	"github.com/dmitrijs2005/meetrec/internal/client/lifecycle"
	"github.com/dmitrijs2005/meetrec/internal/client/models"
	"github.com/dmitrijs2005/meetrec/internal/filex"
	"github.com/dmitrijs2005/meetrec/internal/logging"
	"github.com/dmitrijs2005/meetrec/internal/netx"
)

// DefaultDownloadDir is created under the working directory for artifacts.
const DefaultDownloadDir = "download"

// RosterCache keeps the last roster across restarts.
type RosterCache interface {
	Save(ctx context.Context, jobs []models.Job) error
	Load(ctx context.Context) ([]models.Job, error)
	Clear(ctx context.Context) error
}

// JobService runs the recording workflow for the logged-in user: submit a
// job, fetch the roster, stop a queued job and download finished ones.
// Every operation checks the guard first and makes no remote call without
// a credential.
type JobService struct {
	client      client.Client
	guard       Guard
	store       CredentialStore
	cache       RosterCache
	indicator   feedback.Indicator
	log         logging.Logger
	roster      *Roster
	http        netx.Doer
	downloadDir string
	now         func() time.Time
}

// JobServiceOption customises NewJobService.
type JobServiceOption func(*JobService)

func WithIndicator(ind feedback.Indicator) JobServiceOption {
	return func(s *JobService) { s.indicator = ind }
}

func WithRosterCache(c RosterCache) JobServiceOption {
	return func(s *JobService) { s.cache = c }
}

func WithDownloader(doer netx.Doer, dir string) JobServiceOption {
	return func(s *JobService) {
		s.http = doer
		s.downloadDir = dir
	}
}

func WithJobLogger(l logging.Logger) JobServiceOption {
	return func(s *JobService) { s.log = l }
}

func NewJobService(c client.Client, guard Guard, store CredentialStore, opts ...JobServiceOption) *JobService {
	s := &JobService{
		client:      c,
		guard:       guard,
		store:       store,
		indicator:   feedback.Nop{},
		log:         logging.Nop(),
		roster:      &Roster{},
		http:        http.DefaultClient,
		downloadDir: DefaultDownloadDir,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Roster is the in-memory roster owned by this service.
func (s *JobService) Roster() *Roster {
	return s.roster
}

// Submit validates req and sends it. The roster is not touched; the new job
// shows up on the next Refresh.
func (s *JobService) Submit(ctx context.Context, req models.JobRequest) (string, error) {
	cred, err := s.guard.Require(ctx)
	if err != nil {
		return "", err
	}
	if err := req.Validate(); err != nil {
		return "", fmt.Errorf("%w: %w", client.ErrValidation, err)
	}

	stop := s.indicator.Start("submitting meeting")
	defer stop()

	id, err := s.client.SubmitJob(ctx, req, cred)
	if err != nil {
		return "", s.fail(ctx, "submit job", err)
	}
	s.log.Info(ctx, "job submitted", "job_id", id, "platform", req.Platform)
	return id, nil
}

// Refresh fetches the roster and replaces the in-memory copy. On failure the
// previous roster is left as it was, unless the service rejected the
// credential, which empties it.
func (s *JobService) Refresh(ctx context.Context) ([]models.Job, error) {
	cred, err := s.guard.Require(ctx)
	if err != nil {
		return nil, err
	}

	stop := s.indicator.Start("loading recordings")
	defer stop()

	jobs, err := s.client.ListJobs(ctx, cred)
	if err != nil {
		return nil, s.fail(ctx, "list jobs", err)
	}

	s.checkMonotonic(ctx, s.roster.Jobs(), jobs)
	s.roster.Replace(jobs, s.now())

	if s.cache != nil {
		if err := s.cache.Save(ctx, jobs); err != nil {
			s.log.Warn(ctx, "saving roster snapshot failed", "error", err)
		}
	}
	s.log.Debug(ctx, "roster refreshed", "jobs", len(jobs))
	return s.roster.Jobs(), nil
}

// Cached returns the snapshot saved by the last successful Refresh, or
// client.ErrLocalDataNotAvailable.
func (s *JobService) Cached(ctx context.Context) ([]models.Job, error) {
	if _, err := s.guard.Require(ctx); err != nil {
		return nil, err
	}
	if s.cache == nil {
		return nil, client.ErrLocalDataNotAvailable
	}
	jobs, err := s.cache.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load roster snapshot: %w", err)
	}
	if len(jobs) == 0 {
		return nil, client.ErrLocalDataNotAvailable
	}
	return jobs, nil
}

// Stop asks the service to cancel a job. The job's state is not checked
// here; the service decides whether the request still applies.
func (s *JobService) Stop(ctx context.Context, jobID string) error {
	cred, err := s.guard.Require(ctx)
	if err != nil {
		return err
	}
	if jobID == "" {
		return fmt.Errorf("%w: job id is required", client.ErrValidation)
	}

	stop := s.indicator.Start("sending stop signal")
	defer stop()

	if err := s.client.StopJob(ctx, jobID, cred); err != nil {
		return s.fail(ctx, "stop job", err)
	}
	s.log.Info(ctx, "stop requested", "job_id", jobID)
	return nil
}

// Download saves the artifact of a rendered job into the download
// directory and returns the file path.
func (s *JobService) Download(ctx context.Context, v lifecycle.View) (string, error) {
	if _, err := s.guard.Require(ctx); err != nil {
		return "", err
	}
	if v.Download == "" {
		return "", fmt.Errorf("%w: recording %q has no download yet", client.ErrValidation, v.Job.MeetingSlug)
	}

	dir, err := filex.EnsureSubdir(s.downloadDir)
	if err != nil {
		return "", err
	}

	stop := s.indicator.Start("downloading " + v.Job.MeetingSlug)
	defer stop()

	path, err := netx.Download(ctx, s.http, v.Download, dir)
	if err != nil {
		return "", fmt.Errorf("download: %w: %w", client.ErrNetwork, err)
	}
	s.log.Info(ctx, "artifact downloaded", "job_id", v.Job.ID, "path", path)
	return path, nil
}

// Watch refreshes the roster every interval, calling onUpdate after each
// successful fetch, until every job is terminal, ctx is done, or a fetch
// fails. A cancelled ctx is not an error.
func (s *JobService) Watch(ctx context.Context, interval time.Duration, onUpdate func([]models.Job)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		jobs, err := s.Refresh(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if onUpdate != nil {
			onUpdate(jobs)
		}
		if lo.EveryBy(jobs, func(j models.Job) bool { return j.Status.Terminal() }) {
			return nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil
		}
	}
}

// fail drops the session and its roster when the service rejected the
// credential.
func (s *JobService) fail(ctx context.Context, op string, err error) error {
	if client.IsAuthFailure(err) {
		dropSession(ctx, s.store, s.log)
		s.roster.Reset()
	}
	s.log.Debug(ctx, "remote call failed", "op", op, "error", err)
	return err
}

// checkMonotonic logs jobs whose status moved backwards. The service is
// authoritative, so nothing is corrected.
func (s *JobService) checkMonotonic(ctx context.Context, prev, next []models.Job) {
	if len(prev) == 0 {
		return
	}
	seen := lo.SliceToMap(prev, func(j models.Job) (string, models.Status) { return j.ID, j.Status })
	for _, j := range next {
		before, ok := seen[j.ID]
		if ok && j.Status.Rank() < before.Rank() {
			s.log.Warn(ctx, "job status went backwards", "job_id", j.ID, "from", before.Raw, "to", j.Status.Raw)
		}
	}
}
