package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/meetrec/internal/client/models"
	"github.com/dmitrijs2005/meetrec/internal/logging"
)

// RequestIDHeaderName correlates client requests with service logs.
const RequestIDHeaderName = "X-Request-ID"

// HTTPDoer is satisfied by *http.Client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPClientOption customises HTTPClient construction.
type HTTPClientOption func(*HTTPClient)

// WithHTTPDoer overrides the underlying HTTP client.
func WithHTTPDoer(doer HTTPDoer) HTTPClientOption {
	return func(c *HTTPClient) {
		c.http = doer
	}
}

// WithTimeout bounds each request. Zero leaves requests unbounded.
func WithTimeout(timeout time.Duration) HTTPClientOption {
	return func(c *HTTPClient) {
		c.http = &http.Client{Timeout: timeout}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l logging.Logger) HTTPClientOption {
	return func(c *HTTPClient) {
		c.log = l
	}
}

// HTTPClient implements Client over the service's REST API.
type HTTPClient struct {
	baseURL   string
	http      HTTPDoer
	log       logging.Logger
	requestID func() string
}

// NewHTTPClient builds a client for the service rooted at baseURL.
func NewHTTPClient(baseURL string, opts ...HTTPClientOption) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server url %q", baseURL)
	}

	c := &HTTPClient{
		baseURL:   strings.TrimRight(u.String(), "/"),
		http:      &http.Client{},
		log:       logging.Nop(),
		requestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *models.User `json:"user"`
}

// Login exchanges a username and password for a credential.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (*models.Credential, error) {
	form := url.Values{"username": {username}, "password": {password}}
	req, err := c.newRequest(ctx, http.MethodPost, "/users/login", strings.NewReader(form.Encode()), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var resp loginResponse
	if err := c.do(req, "login", &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" || resp.User == nil {
		return nil, fmt.Errorf("login: incomplete response: %w", ErrAuthentication)
	}
	return &models.Credential{Token: resp.AccessToken, TokenType: resp.TokenType, User: resp.User}, nil
}

// Signup creates a new account.
func (c *HTTPClient) Signup(ctx context.Context, signup models.SignupRequest) error {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/users", signup, nil)
	if err != nil {
		return err
	}
	return c.do(req, "signup", nil)
}

type submitJobRequest struct {
	MeetingURL  string `json:"meeting_url"`
	Choice      string `json:"choice"`
	MeetingSlug string `json:"meeting_slug"`
}

type submitJobResponse struct {
	ID    string `json:"id"`
	JobID string `json:"job_id"`
	OID   string `json:"_id"`
}

// SubmitJob enqueues a recording and returns the service-assigned job id,
// which may be empty when the service does not report one.
func (c *HTTPClient) SubmitJob(ctx context.Context, job models.JobRequest, cred *models.Credential) (string, error) {
	body := submitJobRequest{MeetingURL: job.MeetingURL, Choice: string(job.Platform), MeetingSlug: job.MeetingSlug}
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/add-job", body, cred)
	if err != nil {
		return "", err
	}

	var resp submitJobResponse
	if err := c.do(req, "submit job", &resp); err != nil {
		return "", err
	}
	for _, id := range []string{resp.ID, resp.JobID, resp.OID} {
		if id != "" {
			return id, nil
		}
	}
	return "", nil
}

type jobDTO struct {
	ID          string `json:"id"`
	OID         string `json:"_id"`
	MeetingURL  string `json:"meeting_url"`
	MeetingSlug string `json:"meeting_slug"`
	CreatedAt   string `json:"created_at"`
	Status      string `json:"status"`
	ZipFileLink string `json:"zip_file_link"`
	UserID      string `json:"user_id"`
}

// ListJobs returns the current user's jobs in the order the service sent
// them (oldest first).
func (c *HTTPClient) ListJobs(ctx context.Context, cred *models.Credential) ([]models.Job, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/meetings/currentuser", nil, cred)
	if err != nil {
		return nil, err
	}

	var dtos []jobDTO
	if err := c.do(req, "list jobs", &dtos); err != nil {
		return nil, err
	}

	jobs := make([]models.Job, 0, len(dtos))
	for _, d := range dtos {
		job := models.Job{
			ID:           d.ID,
			MeetingURL:   d.MeetingURL,
			MeetingSlug:  d.MeetingSlug,
			CreatedAt:    parseTimestamp(d.CreatedAt),
			Status:       models.ParseStatus(d.Status),
			ArtifactLink: d.ZipFileLink,
			OwnerID:      d.UserID,
		}
		if job.ID == "" {
			job.ID = d.OID
		}
		if job.Normalize() {
			c.log.Warn(ctx, "artifact link on unfinished job ignored", "job_id", job.ID, "status", d.Status)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

type stopJobRequest struct {
	MeetingID string `json:"meeting_id"`
}

// StopJob asks the service to cancel a queued job.
func (c *HTTPClient) StopJob(ctx context.Context, jobID string, cred *models.Credential) error {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/meetings/stop", stopJobRequest{MeetingID: jobID}, cred)
	if err != nil {
		return err
	}
	return c.do(req, "stop job", nil)
}

// UpdateProfile changes the editable profile fields and returns the
// updated user record.
func (c *HTTPClient) UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate, cred *models.Credential) (*models.User, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPut, "/users/"+url.PathEscape(userID), upd, cred)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := c.do(req, "update profile", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) newJSONRequest(ctx context.Context, method, path string, body any, cred *models.Credential) (*http.Request, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := c.newRequest(ctx, method, path, bytes.NewReader(b), cred)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader, cred *models.Credential) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeaderName, c.requestID())
	if cred != nil {
		req.Header.Set("Authorization", cred.AuthorizationHeader())
	}
	return req, nil
}

// do sends req and decodes a 2xx JSON body into out (when out is non-nil).
func (c *HTTPClient) do(req *http.Request, op string, out any) error {
	ctx := req.Context()
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "op", op, "error", err)
		return fmt.Errorf("%s: %w: %w", op, ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read response: %w: %w", op, ErrNetwork, err)
	}

	c.log.Debug(ctx, "request done",
		"op", op,
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"request_id", req.Header.Get(RequestIDHeaderName),
		"elapsed", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Detail:     parseDetail(body),
			Kind:       classify(op, resp.StatusCode),
		}
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func classify(op string, status int) error {
	switch {
	case op == "login" && (status == http.StatusBadRequest || status == http.StatusUnauthorized || status == http.StatusForbidden):
		return ErrAuthentication
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return ErrNotFound
	case status >= 500:
		return ErrNetwork
	default:
		return ErrValidation
	}
}

// parseDetail understands both {"detail": "msg"} and the list form
// {"detail": [{"msg": "..."}]} used for field validation errors.
func parseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return strings.TrimSpace(string(body))
	}

	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		return s
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return string(envelope.Detail)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// parseTimestamp accepts RFC 3339 and the zone-less ISO forms some
// backends emit (treated as UTC). Unparseable values yield the zero time.
func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// IsAuthFailure reports whether err should end the session.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
