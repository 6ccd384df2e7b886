// Package api is the client for the ADCU contractor-management REST API.
// Every exported call returns a normalized Result instead of an error:
// callers branch on Success and show Message as-is.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/Josesitobb/adcu-client/config"
	"github.com/Josesitobb/adcu-client/model"
	"github.com/google/uuid"
)

// SessionStore is the narrow session interface the client depends on.
type SessionStore interface {
	Token() (string, error)
	Profile() (*model.User, error)
	Set(token string, profile *model.User) error
	Clear() error
}

// Client issues requests against the API base URL. A token read from the
// session store is attached as a bearer credential on every request; if no
// token can be read the request goes out unauthenticated. Any 401 response
// clears the stored session before the error is reported.
type Client struct {
	baseURL string
	http    *http.Client
	session SessionStore

	timeout         time.Duration
	uploadTimeout   time.Duration
	analysisTimeout time.Duration
}

// NewClient creates a client for the given API configuration.
func NewClient(cfg *config.APIConfig, sess SessionStore) *Client {
	return &Client{
		baseURL:         cfg.BaseURL,
		http:            &http.Client{},
		session:         sess,
		timeout:         cfg.Timeout,
		uploadTimeout:   cfg.UploadTimeout,
		analysisTimeout: cfg.AnalysisTimeout,
	}
}

// Result is the normalized outcome of an API call.
type Result[T any] struct {
	Success bool
	Data    T
	Message string
	// Status is the HTTP status of the server response; 0 when the request
	// got no response at all (network failure or timeout).
	Status int
	// Code is the structured error code from the server payload, when the
	// server provided one.
	Code string
}

// envelope is the wire shape of every server response. One legacy endpoint
// returns the payload under "date" instead of "data".
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Date    json.RawMessage `json:"date"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
}

// callError carries what the error-mapping policy needs from a failed call.
type callError struct {
	status  int // 0 = no response
	code    string
	message string
}

// Default user-facing messages per failure class.
const (
	msgSuccess       = "success"
	msgNoConnection  = "could not connect to the server"
	msgInvalidData   = "invalid data"
	msgInvalidCreds  = "invalid credentials"
	msgForbidden     = "access denied"
	msgNotFound      = "not found"
	msgInternalError = "internal server error"
	msgRequestFailed = "request failed"
	msgBadResponse   = "failed to decode server response"
)

func statusMessage(status int) string {
	switch {
	case status == http.StatusBadRequest:
		return msgInvalidData
	case status == http.StatusUnauthorized:
		return msgInvalidCreds
	case status == http.StatusForbidden:
		return msgForbidden
	case status == http.StatusNotFound:
		return msgNotFound
	case status >= http.StatusInternalServerError:
		return msgInternalError
	default:
		return msgRequestFailed
	}
}

// do issues one request and unwraps the response envelope. It returns the
// raw data payload and the response status on success, or a callError
// classified per the uniform error-mapping policy. No call is ever retried.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, timeout time.Duration) (json.RawMessage, int, *callError) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, 0, &callError{message: err.Error()}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	// A session read failure is swallowed: the request simply goes out
	// without credentials and the server decides.
	if token, err := c.session.Token(); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, &callError{status: 0, message: msgNoConnection}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, &callError{status: 0, message: msgNoConnection}
	}

	var env envelope
	// A non-JSON body is tolerated; the status code still drives mapping
	_ = json.Unmarshal(raw, &env)

	if resp.StatusCode == http.StatusUnauthorized {
		// Forced local logout, regardless of which call hit the 401
		_ = c.session.Clear()
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Message
		if msg == "" {
			msg = statusMessage(resp.StatusCode)
		}
		return nil, resp.StatusCode, &callError{status: resp.StatusCode, code: env.Code, message: msg}
	}

	data := env.Data
	if len(data) == 0 {
		data = env.Date
	}
	return data, resp.StatusCode, nil
}

// decode turns a raw data payload into a successful Result.
func decode[T any](raw json.RawMessage, status int) Result[T] {
	var data T
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &data); err != nil {
			return Result[T]{Success: false, Message: msgBadResponse, Status: status}
		}
	}
	return Result[T]{Success: true, Data: data, Message: msgSuccess, Status: status}
}

// fail turns a callError into a failed Result.
func fail[T any](cerr *callError) Result[T] {
	return Result[T]{
		Success: false,
		Message: cerr.message,
		Status:  cerr.status,
		Code:    cerr.code,
	}
}

func (c *Client) get(ctx context.Context, path string) (json.RawMessage, int, *callError) {
	return c.do(ctx, http.MethodGet, path, "", nil, c.timeout)
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) (json.RawMessage, int, *callError) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, &callError{message: err.Error()}
	}
	return c.do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(body), c.timeout)
}

// jsonBody marshals a payload for requests that pick their own timeout.
func jsonBody(payload any) io.Reader {
	body, _ := json.Marshal(payload)
	return bytes.NewReader(body)
}

func (c *Client) putJSON(ctx context.Context, path string, payload any) (json.RawMessage, int, *callError) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, &callError{message: err.Error()}
	}
	return c.do(ctx, http.MethodPut, path, "application/json", bytes.NewReader(body), c.timeout)
}
