// Package httpclient holds the bounded HTTP client shared by the upstream
// fetchers and a small JSON API helper built on it.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	ferrors "git.home.luguber.info/inful/relnotes/internal/foundation/errors"
)

const (
	// DefaultUserAgent mimics a desktop browser; some wiki deployments reject
	// unknown agents.
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// DefaultTimeout bounds a whole request, body included.
	DefaultTimeout = 10 * time.Second

	maxRedirects   = 5
	maxErrorDetail = 512
)

var ErrTooManyRedirects = errors.New("too many redirects")

// New returns a client with a total request timeout and a redirect cap.
func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return ErrTooManyRedirects
			}
			return nil
		},
	}
}

// API issues JSON requests against a base URL.
type API struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

func NewAPI(httpClient *http.Client, baseURL, userAgent string) *API {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &API{httpClient: httpClient, baseURL: baseURL, userAgent: userAgent}
}

// NewRequest builds a request for endpoint (relative to the base URL) with an
// optional JSON body.
func (a *API) NewRequest(ctx context.Context, method, endpoint string, body any) (*http.Request, error) {
	u, err := url.Parse(a.baseURL)
	if err != nil {
		return nil, ferrors.ConfigError("invalid API base URL").
			WithCause(err).
			WithContext("url", a.baseURL).
			Build()
	}
	u.Path = path.Join(strings.TrimSuffix(u.Path, "/"), strings.TrimPrefix(endpoint, "/"))

	var reader io.Reader = http.NoBody
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, ferrors.InternalError("failed to marshal request body").WithCause(err).Build()
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, ferrors.NetworkError("failed to create request").
			WithCause(err).
			WithContext("method", method).
			WithContext("url", u.String()).
			Build()
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", a.userAgent)
	return req, nil
}

// Do executes req and decodes a JSON response into result (when non-nil).
func (a *API) Do(req *http.Request, result any) error {
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return ferrors.NetworkError("request failed").
			WithCause(err).
			WithContext("method", req.Method).
			WithContext("url", req.URL.String()).
			Build()
	}
	defer func() { _ = resp.Body.Close() }()

	if err := CheckStatus(resp); err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return ferrors.ParseError("failed to decode response").
			WithCause(err).
			WithContext("url", req.URL.String()).
			Build()
	}
	return nil
}

// Post is NewRequest plus Do for a JSON POST.
func (a *API) Post(ctx context.Context, endpoint string, body, result any) error {
	req, err := a.NewRequest(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return err
	}
	return a.Do(req, result)
}

// CheckStatus turns a 4xx/5xx response into an upstream error carrying a
// snippet of the body.
func CheckStatus(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorDetail))
	return ferrors.UpstreamError(fmt.Sprintf("upstream returned %s", resp.Status)).
		WithContext("status", resp.StatusCode).
		WithContext("url", resp.Request.URL.String()).
		WithContext("response", strings.ReplaceAll(string(snippet), "\n", " ")).
		Build()
}

// Fetch GETs rawURL and returns at most maxBytes of body.
func Fetch(ctx context.Context, client *http.Client, rawURL, userAgent string, maxBytes int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, ferrors.NetworkError("failed to create request").WithCause(err).WithContext("url", rawURL).Build()
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, ferrors.NetworkError("request failed").WithCause(err).WithContext("url", rawURL).Build()
	}
	defer func() { _ = resp.Body.Close() }()

	if err := CheckStatus(resp); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, ferrors.NetworkError("failed to read response").WithCause(err).WithContext("url", rawURL).Build()
	}
	if int64(len(data)) > maxBytes {
		return nil, ferrors.UpstreamError("response exceeds size limit").
			WithContext("url", rawURL).
			WithContext("limit", maxBytes).
			Build()
	}
	return data, nil
}
