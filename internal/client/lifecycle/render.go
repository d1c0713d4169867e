// Package lifecycle maps recording jobs to what the user may see and do
// with them. Everything here is a pure function of job state.
package lifecycle

import (
	"github.com/samber/lo"

	"github.com/dmitrijs2005/meetrec/internal/client/models"
)

const (
	ProcessingPlaceholder = "Processing..."
	ActionStop            = "Stop"
	ActionNone            = "N/A"
)

// View is the presentation of one job.
type View struct {
	// Index is the 1-based row number used by commands such as "stop 2".
	Index       int
	Job         models.Job
	StatusLabel string
	// Download is the artifact link, empty when no download is offered.
	Download string
	// CanCancel is true only for queued jobs.
	CanCancel bool
}

// Placeholder is what the download column shows when there is nothing to
// download yet.
func (v View) Placeholder() string {
	if v.Download != "" {
		return ""
	}
	return ProcessingPlaceholder
}

// ActionLabel is the cancel column text.
func (v View) ActionLabel() string {
	if v.CanCancel {
		return ActionStop
	}
	return ActionNone
}

// Render decides the actions for a single job. A completed job without a
// link still shows the placeholder: the artifact, not the status, gates the
// download.
func Render(job models.Job) View {
	v := View{
		Job:         job,
		StatusLabel: job.Status.Label(),
		CanCancel:   job.Status.Kind == models.StatusQueued,
	}
	if job.Status.Kind == models.StatusCompleted && job.ArtifactLink != "" {
		v.Download = job.ArtifactLink
	}
	return v
}

// RenderRoster renders jobs most recent first. jobs is expected in fetch
// order (oldest first) and is not modified.
func RenderRoster(jobs []models.Job) []View {
	reversed := lo.Reverse(append([]models.Job(nil), jobs...))
	return lo.Map(reversed, func(j models.Job, i int) View {
		v := Render(j)
		v.Index = i + 1
		return v
	})
}

// AllTerminal reports whether no job in views can change any more.
func AllTerminal(views []View) bool {
	return lo.EveryBy(views, func(v View) bool { return v.Job.Status.Terminal() })
}

// Find returns the view with the given 1-based index.
func Find(views []View, index int) (View, bool) {
	return lo.Find(views, func(v View) bool { return v.Index == index })
}
