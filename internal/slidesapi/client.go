// Package slidesapi talks to Google Slides v1 and Drive v3 through the
// generated API clients and converts their resources into the domain
// model.
package slidesapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/slides/v1"

	"slides/internal/auth"
)

const (
	DefaultSlidesBaseURL = "https://slides.googleapis.com"
	DefaultDriveBaseURL  = "https://www.googleapis.com"
	DefaultTimeout       = 30 * time.Second
)

var ErrRemoteRequestFailed = errors.New("remote request failed")

// APIError is a non-2xx reply from either service.
type APIError struct {
	Op         string
	StatusCode int
	Status     string // remote status, e.g. NOT_FOUND
	Message    string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("%s: http %d %s: %s", e.Op, e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: http %d: %s", e.Op, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return ErrRemoteRequestFailed }

type Config struct {
	SlidesBaseURL string
	DriveBaseURL  string
	Timeout       time.Duration
}

// Client is safe for concurrent use. Credentials are resolved from the
// provider on every request, using the context the call was made with.
type Client struct {
	slides *slides.Service
	drive  *drive.Service
	logger *slog.Logger
}

func New(cfg Config, creds auth.Provider, logger *slog.Logger) (*Client, error) {
	if cfg.SlidesBaseURL == "" {
		cfg.SlidesBaseURL = DefaultSlidesBaseURL
	}
	if cfg.DriveBaseURL == "" {
		cfg.DriveBaseURL = DefaultDriveBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	hc := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: &authTransport{creds: creds, base: http.DefaultTransport},
	}
	ctx := context.Background()

	// Generated paths are resolved against the endpoint, so it must end
	// in a slash.
	ss, err := slides.NewService(ctx,
		option.WithHTTPClient(hc),
		option.WithEndpoint(strings.TrimRight(cfg.SlidesBaseURL, "/")+"/"),
	)
	if err != nil {
		return nil, fmt.Errorf("slides service: %w", err)
	}
	ds, err := drive.NewService(ctx,
		option.WithHTTPClient(hc),
		option.WithEndpoint(strings.TrimRight(cfg.DriveBaseURL, "/")+"/drive/v3/"),
	)
	if err != nil {
		return nil, fmt.Errorf("drive service: %w", err)
	}
	return &Client{slides: ss, drive: ds, logger: logger}, nil
}

// ─── Transport ────────────────────────────────────────────

// authTransport authorizes each outgoing request with the credential
// the provider resolves from the request's context.
type authTransport struct {
	creds auth.Provider
	base  http.RoundTripper
}

// credentialError marks failures that happened before anything was sent.
type credentialError struct{ err error }

func (e *credentialError) Error() string { return e.err.Error() }
func (e *credentialError) Unwrap() error { return e.err }

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	fail := func(err error) (*http.Response, error) {
		if req.Body != nil {
			req.Body.Close()
		}
		return nil, &credentialError{err}
	}
	cred, err := t.creds.Credential(req.Context())
	if err != nil {
		return fail(err)
	}
	out := req.Clone(req.Context())
	if err := cred.Authorize(out); err != nil {
		return fail(err)
	}
	return t.base.RoundTrip(out)
}

// ─── Errors ───────────────────────────────────────────────

// wrapErr maps a generated client error onto this package's errors:
// credential failures pass through, remote replies become *APIError and
// anything else is a failed remote request.
func wrapErr(op string, err error) error {
	var credErr *credentialError
	if errors.As(err, &credErr) {
		return credErr.err
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return apiError(op, gerr)
	}
	return fmt.Errorf("%w: %s: %v", ErrRemoteRequestFailed, op, err)
}

func apiError(op string, gerr *googleapi.Error) *APIError {
	e := &APIError{Op: op, StatusCode: gerr.Code, Message: gerr.Message}
	var env struct {
		Error struct {
			Status string `json:"status"`
		} `json:"error"`
	}
	if json.Unmarshal([]byte(gerr.Body), &env) == nil {
		e.Status = env.Error.Status
	}
	if e.Message == "" {
		body := gerr.Body
		if len(body) > 1024 {
			body = body[:1024]
		}
		e.Message = strings.TrimSpace(body)
	}
	return e
}

// remarshal converts between the request/response records of package
// batch and the generated types, which share the same JSON shape.
func remarshal(op string, in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s: encode: %w", op, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode: %w", op, err)
	}
	return nil
}
