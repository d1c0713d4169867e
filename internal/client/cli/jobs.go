package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/dmitrijs2005/meetrec/internal/client/client"
	"github.com/dmitrijs2005/meetrec/internal/client/lifecycle"
	"github.com/dmitrijs2005/meetrec/internal/client/models"
)

// Record asks for the meeting link, platform and name and submits the job.
// Previous answers are offered as defaults; the form is emptied only after
// the service accepted the job.
func (a *App) Record(ctx context.Context) error {
	form := a.form
	var err error

	if form.MeetingURL, err = getTextWithDefault(a.reader, "Meeting link", form.MeetingURL, a.out); err != nil {
		return err
	}
	if form.Platform, err = getTextWithDefault(a.reader, "Platform (gmeet, zoom, teams)", form.Platform, a.out); err != nil {
		return err
	}
	if form.MeetingSlug, err = getTextWithDefault(a.reader, "Meeting name", form.MeetingSlug, a.out); err != nil {
		return err
	}
	a.form = form

	id, err := a.jobService.Submit(ctx, form.request())
	if err != nil {
		if a.sessionLost(err) {
			a.notifier.Error("User not found. Please login again.")
			return err
		}
		a.notifier.Error("Error submitting video: " + reason(err))
		return err
	}

	a.form = SubmissionForm{}
	msg := "Meeting submitted successfully!"
	if id != "" {
		msg += fmt.Sprintf(" (job %s)", id)
	}
	a.notifier.Success(msg)
	return nil
}

// List fetches and prints the roster. When the service is unreachable the
// last saved roster is printed instead, marked as cached.
func (a *App) List(ctx context.Context) error {
	if _, err := a.jobService.Refresh(ctx); err != nil {
		a.reportFetchError(err)
		if errors.Is(err, client.ErrNetwork) {
			a.printCached(ctx)
		}
		return err
	}
	a.printRoster(a.jobService.Roster().Views())
	return nil
}

// Watch re-fetches the roster every poll interval until every recording is
// finished or the user presses Ctrl-C.
func (a *App) Watch(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	printlnFn(fmt.Sprintf("Watching recordings every %s, press Ctrl-C to stop.", a.config.PollInterval))
	err := a.jobService.Watch(ctx, a.config.PollInterval, func(jobs []models.Job) {
		a.printRoster(lifecycle.RenderRoster(jobs))
	})
	if err != nil {
		a.reportFetchError(err)
		return err
	}
	if lifecycle.AllTerminal(a.jobService.Roster().Views()) {
		printlnFn("All recordings are finished.")
	}
	return nil
}

// Stop cancels the n-th recording of the last listed roster. Only queued
// recordings offer the action.
func (a *App) Stop(ctx context.Context, args []string) error {
	v, err := a.pick(args, "stop")
	if err != nil {
		return err
	}
	if !v.CanCancel {
		a.notifier.Error(fmt.Sprintf("Recording %d is %s and cannot be stopped.", v.Index, v.StatusLabel))
		return errNotAllowed
	}

	if err := a.jobService.Stop(ctx, v.Job.ID); err != nil {
		a.notifier.Error(a.failure("Failed to stop meeting.", err))
		return err
	}
	a.notifier.Success("Stop signal sent successfully!")

	if a.config.RefreshAfterStop {
		return a.List(ctx)
	}
	return nil
}

// Download saves the artifact of the n-th recording into the download
// directory.
func (a *App) Download(ctx context.Context, args []string) error {
	v, err := a.pick(args, "download")
	if err != nil {
		return err
	}
	if v.Download == "" {
		a.notifier.Error(fmt.Sprintf("Recording %d has nothing to download yet.", v.Index))
		return errNotAllowed
	}

	path, err := a.jobService.Download(ctx, v)
	if err != nil {
		a.notifier.Error(a.failure("Failed to download recording.", err))
		return err
	}
	a.notifier.Success("Saved to " + path)
	return nil
}

var (
	errUsage      = errors.New("usage error")
	errNotAllowed = errors.New("action not available")
)

// pick resolves the row number argument against the last listed roster.
func (a *App) pick(args []string, cmd string) (lifecycle.View, error) {
	if len(args) != 1 {
		printlnFn(fmt.Sprintf("Usage: %s <n>", cmd))
		return lifecycle.View{}, errUsage
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		printlnFn(fmt.Sprintf("Usage: %s <n>", cmd))
		return lifecycle.View{}, errUsage
	}

	roster := a.jobService.Roster()
	if roster.Version() == 0 {
		printlnFn("No recordings loaded yet. Run 'list' first.")
		return lifecycle.View{}, errUsage
	}
	v, ok := lifecycle.Find(roster.Views(), n)
	if !ok {
		printlnFn(fmt.Sprintf("No recording number %d.", n))
		return lifecycle.View{}, errUsage
	}
	return v, nil
}

// failure builds the one notification for a failed action, adding the
// login hint when the session ended with it.
func (a *App) failure(msg string, err error) string {
	if a.sessionLost(err) {
		return msg + " Your session has ended, type 'login' to sign in again."
	}
	return msg
}

func (a *App) reportFetchError(err error) {
	if a.sessionLost(err) {
		a.notifier.Error("Please login to view your recordings.")
		return
	}
	a.notifier.Error("Failed to fetch recordings.")
}

func (a *App) printCached(ctx context.Context) {
	jobs, err := a.jobService.Cached(ctx)
	if err != nil {
		if !errors.Is(err, client.ErrLocalDataNotAvailable) {
			a.log.Warn(ctx, "reading cached roster failed", "error", err)
		}
		return
	}
	printlnFn("Showing recordings saved from the last successful fetch:")
	a.printRoster(lifecycle.RenderRoster(jobs))
}

func (a *App) printRoster(views []lifecycle.View) {
	if len(views) == 0 {
		printlnFn("No recordings yet. Use 'record' to add one.")
		return
	}
	printlnFn(lifecycle.Table(views, a.now()))
}
