package httpclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
)

// Execute sends req to the server described by conn and returns the status
// and body. Any status code is a successful return; only failures to build,
// send or read the exchange produce a *TransportError.
func (c *httpClientWrapper) Execute(ctx context.Context, conn ConnParams, r Request) (*Response, error) {
	c.logger.Debug("starting request",
		"method", r.Method,
		"path", r.Path,
		"data_length", len(r.Body))

	resolvedURL, err := c.resolveURL(conn, r.Path)
	if err != nil {
		c.logger.Debug("failed to resolve URL", "path", r.Path, "error", err)
		return nil, &TransportError{Method: r.Method, URL: r.Path, Err: err}
	}
	target := resolvedURL.String()

	c.logger.Debug("resolved URL", "url", target)

	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return nil, &TransportError{Method: r.Method, URL: target, Err: err}
	}
	for key, values := range r.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "error", err)
		return nil, &TransportError{Method: r.Method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Debug("failed to read response body", "error", err)
		return nil, &TransportError{Method: r.Method, URL: target, Err: err}
	}

	c.logger.Debug("request complete",
		"method", r.Method,
		"url", target,
		"status", resp.Status)
	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       string(data),
	}, nil
}

// Header is a shorthand for building request headers from key/value pairs.
func Header(kv ...string) http.Header {
	h := make(http.Header, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		h.Set(kv[i], kv[i+1])
	}
	return h
}
