package httpclient

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// LoggingTransport implements http.RoundTripper and logs every exchange,
// bodies included, at debug level.
type LoggingTransport struct {
	Transport http.RoundTripper
	Logger    *slog.Logger
}

// NewLoggingTransport wraps transport, defaulting to http.DefaultTransport.
// A nil logger discards output.
func NewLoggingTransport(transport http.RoundTripper, logger *slog.Logger) *LoggingTransport {
	if transport == nil {
		transport = http.DefaultTransport
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &LoggingTransport{Transport: transport, Logger: logger}
}

// RoundTrip implements the http.RoundTripper interface.
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqBody := ""
	if req.Body != nil && req.Body != http.NoBody {
		bodyBytes, err := io.ReadAll(req.Body)
		if err == nil {
			reqBody = string(bodyBytes)
			req.Body = io.NopCloser(bytes.NewBuffer(bodyBytes)) // Reset the body
		}
	}

	t.Logger.Debug("outgoing request",
		"method", req.Method,
		"url", req.URL.String(),
		"headers", redact(req.Header),
		"body", reqBody)

	resp, err := t.Transport.RoundTrip(req)
	if err != nil {
		t.Logger.Debug("round trip failed", "method", req.Method, "error", err)
		return nil, err
	}

	respBody := ""
	if resp.Body != nil {
		bodyBytes, err := io.ReadAll(resp.Body)
		if err == nil {
			respBody = string(bodyBytes)
			resp.Body = io.NopCloser(bytes.NewBuffer(bodyBytes)) // Reset the body
		}
	}

	t.Logger.Debug("incoming response",
		"status", resp.Status,
		"headers", resp.Header,
		"body", respBody)

	return resp, nil
}

// BasicAuthTransport implements http.RoundTripper and attaches Basic Auth
// credentials to every request before the server asks for them.
type BasicAuthTransport struct {
	Username  string
	Password  string
	Transport http.RoundTripper
}

// NewBasicAuthTransport creates a new BasicAuthTransport with the given
// credentials and optional underlying transport. If transport is nil,
// http.DefaultTransport will be used.
func NewBasicAuthTransport(username, password string, transport http.RoundTripper) *BasicAuthTransport {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &BasicAuthTransport{
		Username:  username,
		Password:  password,
		Transport: transport,
	}
}

// RoundTrip implements the http.RoundTripper interface. The request is cloned
// so the caller's copy is left untouched.
func (t *BasicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Username == "" {
		return nil, errors.New("basic auth username cannot be empty")
	}
	if t.Transport == nil {
		return nil, errors.New("transport cannot be nil")
	}
	authed := req.Clone(req.Context())
	authed.SetBasicAuth(t.Username, t.Password)
	return t.Transport.RoundTrip(authed)
}

// NewPreemptiveClient returns an http.Client that sends the credentials with
// the first request and logs each exchange. An empty username sends no
// credentials. A zero timeout means none.
func NewPreemptiveClient(username, password string, base http.RoundTripper, timeout time.Duration, logger *slog.Logger) *http.Client {
	var transport http.RoundTripper = NewLoggingTransport(base, logger)
	if username != "" {
		transport = NewBasicAuthTransport(username, password, transport)
	}
	return &http.Client{Transport: transport, Timeout: timeout}
}

func redact(h http.Header) http.Header {
	if h.Get("Authorization") == "" {
		return h
	}
	out := h.Clone()
	out.Set("Authorization", "REDACTED")
	return out
}
