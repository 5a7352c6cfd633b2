package httpclient

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// MethodMkCalendar is the CalDAV collection creation method (RFC 4791, 5.3.1).
const MethodMkCalendar = "MKCALENDAR"

// ConnParams identifies the server a request is addressed to.
type ConnParams struct {
	Scheme string
	Host   string
	Port   int
}

// BaseURL returns the origin of the server with an empty path.
// An empty scheme defaults to http; a zero port is left to the scheme default.
func (p ConnParams) BaseURL() url.URL {
	scheme := p.Scheme
	if scheme == "" {
		scheme = "http"
	}
	host := p.Host
	if p.Port > 0 {
		host = net.JoinHostPort(p.Host, strconv.Itoa(p.Port))
	}
	return url.URL{Scheme: scheme, Host: host}
}

// Request is a single protocol request. Path is a server absolute path.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// Response holds the status and the fully read body of a server reply.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       string
}

// HttpClientWrapper wraps http.Client with CalDAV-specific functionality
type HttpClientWrapper interface {
	Execute(ctx context.Context, conn ConnParams, req Request) (*Response, error)
}

type httpClientWrapper struct {
	client *http.Client
	logger *slog.Logger
}

// resolveURL builds the request URL from the connection parameters and a path.
// Absolute URLs are accepted as-is so callers can follow server-provided hrefs.
func (c *httpClientWrapper) resolveURL(conn ConnParams, path string) (*url.URL, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		u, err := url.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse URL %q: %w", path, err)
		}
		return u, nil
	}
	if conn.Host == "" {
		return nil, fmt.Errorf("no host configured for path %q", path)
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := conn.BaseURL()
	u.Path = path
	return &u, nil
}

// NewHttpClientWrapper creates a new client wrapper around an already
// configured http.Client. Credentials are the client's concern, see
// NewBasicAuthTransport.
func NewHttpClientWrapper(client *http.Client, logger *slog.Logger) (HttpClientWrapper, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &httpClientWrapper{client: client, logger: logger}, nil
}
