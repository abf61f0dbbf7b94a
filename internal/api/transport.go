// Package api is the typed client for the S.I.S. platform REST API.
// Every call is normalized into the uniform envelope of pkg/models:
// HTTP-level failures (4xx/5xx) and network failures alike come back as a
// failure envelope, never as a Go error, so callers branch on Success only.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"sisexpo/pkg/logger"
	"sisexpo/pkg/models"
)

const defaultTimeout = 30 * time.Second

// Transport performs HTTP requests against the backend and owns the
// cross-cutting policy: auth header, correlation id, language pinning,
// 401 token wipe, 429 logging.
type Transport struct {
	baseURL    string
	language   string
	httpClient *http.Client
	tokens     TokenStore
	limiter    *rate.Limiter

	onUnauthorized func()
	// authLost arms the unauthorized callback; re-armed by SetTokens so a
	// burst of concurrent 401s triggers exactly one redirect.
	authLost atomic.Bool
}

// TransportOptions configures a Transport.
type TransportOptions struct {
	Language       string        // Accept-Language value, defaults to "fr"
	Timeout        time.Duration // fixed per-request timeout, defaults to 30s
	RequestsPerSec float64       // outbound throttle, 0 disables
	OnUnauthorized func()        // invoked once when a 401 invalidates the session
}

// NewTransport creates a transport bound to a base URL and token store.
func NewTransport(baseURL string, tokens TokenStore, opts TransportOptions) *Transport {
	if opts.Language == "" {
		opts.Language = "fr"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	var limiter *rate.Limiter
	if opts.RequestsPerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSec), int(opts.RequestsPerSec)+1)
	}
	return &Transport{
		baseURL:  baseURL,
		language: opts.Language,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		tokens:         tokens,
		limiter:        limiter,
		onUnauthorized: opts.OnUnauthorized,
	}
}

// BaseURL returns the configured backend base URL.
func (t *Transport) BaseURL() string {
	return t.baseURL
}

// SetTokens stores a new token pair and re-arms the unauthorized callback.
// This is the only external mutator of token state.
func (t *Transport) SetTokens(access, refresh string) error {
	if err := t.tokens.Set(access, refresh); err != nil {
		return err
	}
	t.authLost.Store(false)
	return nil
}

// ClearTokens wipes the stored token pair.
func (t *Transport) ClearTokens() error {
	return t.tokens.Clear()
}

// AccessToken returns the currently stored access token.
func (t *Transport) AccessToken() string {
	return t.tokens.Access()
}

// RefreshToken returns the currently stored refresh token.
func (t *Transport) RefreshToken() string {
	return t.tokens.Refresh()
}

func failure(message, code string) models.Envelope {
	return models.Envelope{
		Success:   false,
		Error:     message,
		Code:      code,
		Timestamp: time.Now(),
	}
}

// Do performs a request and folds every outcome into an envelope.
func (t *Transport) Do(ctx context.Context, method, path string, query *Query, body interface{}) models.Envelope {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return failure("network or server error", models.ErrCodeInternal)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := t.newRequest(ctx, method, path, query, bodyReader)
	if err != nil {
		return failure("network or server error", models.ErrCodeInternal)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return t.send(req)
}

// Upload performs a multipart POST of a single file under the given field name.
func (t *Transport) Upload(ctx context.Context, path, field, filename string, r io.Reader) models.Envelope {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return failure("network or server error", models.ErrCodeInternal)
	}
	if _, err := io.Copy(part, r); err != nil {
		return failure("network or server error", models.ErrCodeInternal)
	}
	if err := w.Close(); err != nil {
		return failure("network or server error", models.ErrCodeInternal)
	}

	req, err := t.newRequest(ctx, http.MethodPost, path, nil, &buf)
	if err != nil {
		return failure("network or server error", models.ErrCodeInternal)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return t.send(req)
}

func (t *Transport) newRequest(ctx context.Context, method, path string, query *Query, body io.Reader) (*http.Request, error) {
	target := t.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("X-Request-ID", uuid.NewString())
	req.Header.Set("Accept-Language", t.language)
	if token := t.tokens.Access(); token != "" && !tokenExpired(token) {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

func (t *Transport) send(req *http.Request) models.Envelope {
	if t.limiter != nil {
		if err := t.limiter.Wait(req.Context()); err != nil {
			return failure("network or server error", models.ErrCodeInternal)
		}
	}

	requestID := req.Header.Get("X-Request-ID")
	start := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return failure("network or server error", models.ErrCodeInternal)
	}
	defer resp.Body.Close()

	logger.HTTP(req.Method, req.URL.Path, requestID, resp.StatusCode, int(time.Since(start).Milliseconds()))

	// Tokens must be wiped and the redirect fired before the caller sees
	// the failure envelope.
	if resp.StatusCode == http.StatusUnauthorized {
		t.handleUnauthorized()
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		logger.RateLimited(req.Method, req.URL.Path, requestID)
	}

	return decodeEnvelope(resp)
}

func (t *Transport) handleUnauthorized() {
	if err := t.tokens.Clear(); err != nil {
		logger.Errorf("failed to clear tokens: %v", err)
	}
	if !t.authLost.Swap(true) && t.onUnauthorized != nil {
		t.onUnauthorized()
	}
}

// decodeEnvelope parses the response body into the uniform envelope,
// enforcing the invariant that exactly one of data/error is populated.
func decodeEnvelope(resp *http.Response) models.Envelope {
	var env models.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 && err == io.EOF {
			// 204-style empty success
			return models.Envelope{Success: true, Timestamp: time.Now()}
		}
		return failure("network or server error", models.ErrCodeInternal)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		env.Success = false
	}

	if env.Success {
		env.Error = ""
		env.Code = ""
		env.Details = nil
	} else {
		env.Data = nil
		if env.Error == "" {
			env.Error = "request failed"
		}
		if env.Code == "" {
			env.Code = models.CodeForStatus(resp.StatusCode)
		}
		if env.Code != models.ErrCodeValidation {
			env.Details = nil
		}
	}

	return env
}

// Verb sugar

// Get issues a GET request.
func (t *Transport) Get(ctx context.Context, path string, query *Query) models.Envelope {
	return t.Do(ctx, http.MethodGet, path, query, nil)
}

// Post issues a POST request with a JSON body.
func (t *Transport) Post(ctx context.Context, path string, body interface{}) models.Envelope {
	return t.Do(ctx, http.MethodPost, path, nil, body)
}

// Put issues a PUT request with a JSON body.
func (t *Transport) Put(ctx context.Context, path string, body interface{}) models.Envelope {
	return t.Do(ctx, http.MethodPut, path, nil, body)
}

// Patch issues a PATCH request with a JSON body.
func (t *Transport) Patch(ctx context.Context, path string, body interface{}) models.Envelope {
	return t.Do(ctx, http.MethodPatch, path, nil, body)
}

// Delete issues a DELETE request.
func (t *Transport) Delete(ctx context.Context, path string) models.Envelope {
	return t.Do(ctx, http.MethodDelete, path, nil, nil)
}

// Result is the typed outcome handed to callers after envelope decoding.
type Result[T any] struct {
	Success bool
	Data    *T
	Message string
	Error   string
	Code    string
	Details []models.ValidationDetail
}

// Err converts a failed result into an error, nil on success.
func (r Result[T]) Err() error {
	if r.Success {
		return nil
	}
	return &models.AppError{Code: r.Code, Message: r.Error, Details: r.Details}
}

// Decode unmarshals the envelope's data field into T.
func Decode[T any](env models.Envelope) Result[T] {
	res := Result[T]{
		Success: env.Success,
		Message: env.Message,
		Error:   env.Error,
		Code:    env.Code,
		Details: env.Details,
	}
	if !env.Success {
		return res
	}
	if len(env.Data) > 0 {
		var data T
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return Result[T]{
				Success: false,
				Error:   fmt.Sprintf("failed to decode response data: %v", err),
				Code:    models.ErrCodeInternal,
			}
		}
		res.Data = &data
	}
	return res
}
