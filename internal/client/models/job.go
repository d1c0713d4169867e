package models

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// StatusKind is the lifecycle state of a recording job.
type StatusKind int

const (
	StatusProcessing StatusKind = iota
	StatusQueued
	StatusStopRequested
	StatusCompleted
	StatusFailed
)

func (k StatusKind) String() string {
	switch k {
	case StatusQueued:
		return "queued"
	case StatusStopRequested:
		return "stop-requested"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "processing"
	}
}

// Status pairs the classified state with the value the service sent, so
// unknown values are still displayed verbatim.
type Status struct {
	Kind StatusKind
	Raw  string
}

// ParseStatus classifies a wire status value. Anything that is not
// recognised is processing.
func ParseStatus(raw string) Status {
	var kind StatusKind
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "in_queue", "queued":
		kind = StatusQueued
	case "successfully_done", "completed":
		kind = StatusCompleted
	case "failed":
		kind = StatusFailed
	case "stop_requested", "stop-requested":
		kind = StatusStopRequested
	default:
		kind = StatusProcessing
	}
	return Status{Kind: kind, Raw: raw}
}

// Terminal reports whether no further transition can happen.
func (s Status) Terminal() bool {
	return s.Kind == StatusCompleted || s.Kind == StatusFailed
}

// Rank orders states along the lifecycle. A job's rank never decreases.
func (s Status) Rank() int {
	switch s.Kind {
	case StatusQueued:
		return 0
	case StatusProcessing, StatusStopRequested:
		return 1
	default:
		return 2
	}
}

// Label is the display form of the raw status.
func (s Status) Label() string {
	if s.Raw == "" {
		return s.Kind.String()
	}
	return strings.ReplaceAll(s.Raw, "_", " ")
}

// Job is a single meeting-recording request.
type Job struct {
	ID           string
	MeetingURL   string
	MeetingSlug  string
	CreatedAt    time.Time
	Status       Status
	ArtifactLink string
	OwnerID      string
}

// Normalize enforces that an artifact link only accompanies a completed
// job. It reports whether a link was dropped.
func (j *Job) Normalize() bool {
	if j.ArtifactLink != "" && j.Status.Kind != StatusCompleted {
		j.ArtifactLink = ""
		return true
	}
	return false
}

// Platform is the meeting provider a bot should join.
type Platform string

const (
	PlatformGMeet Platform = "gmeet"
	PlatformZoom  Platform = "zoom"
	PlatformTeams Platform = "teams"
)

// Platforms lists the supported providers in display order.
var Platforms = []Platform{PlatformGMeet, PlatformZoom, PlatformTeams}

// ParsePlatform accepts a platform code, case-insensitively.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Platforms {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: platform must be one of gmeet, zoom, teams", ErrInvalidInput)
}

// JobRequest is a new recording submission.
type JobRequest struct {
	MeetingURL  string
	Platform    Platform
	MeetingSlug string
}

// Validate checks the submission before it is sent.
func (r JobRequest) Validate() error {
	if strings.TrimSpace(r.MeetingURL) == "" {
		return fmt.Errorf("%w: meeting link is required", ErrInvalidInput)
	}
	if u, err := url.Parse(strings.TrimSpace(r.MeetingURL)); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: meeting link must be an absolute URL", ErrInvalidInput)
	}
	if _, err := ParsePlatform(string(r.Platform)); err != nil {
		return err
	}
	if strings.TrimSpace(r.MeetingSlug) == "" {
		return fmt.Errorf("%w: meeting name is required", ErrInvalidInput)
	}
	return nil
}
