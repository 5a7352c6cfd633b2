// Package davclient is a small CalDAV client for exercising servers in tests.
// It stores and removes calendar objects addressed by their UID and creates
// calendar collections, turning each reply into an Outcome.
//
// A Client is bound to one Transport and performs exactly one request per
// call, without retries. It holds no mutable state, so it may be shared by
// goroutines as long as the transport can be; the bundled HTTP transport
// shares its http.Client.
package davclient

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cyp0633/caldavkit/internal/httpclient"
	"github.com/prometheus/client_golang/prometheus"
)

type (
	// Request is one protocol request handed to a Transport.
	Request = httpclient.Request
	// Response is a server reply with its body fully read.
	Response = httpclient.Response
)

// Transport executes protocol requests. A returned error means no status was
// received; any status code, including errors, is a successful return.
type Transport interface {
	Execute(ctx context.Context, conn ConnParams, req Request) (*Response, error)
}

// NewHTTPTransport returns the bundled Transport over client. Credentials are
// expected to be configured on client already, see Credential.HTTPClient.
func NewHTTPTransport(client *http.Client, logger *slog.Logger) (Transport, error) {
	return httpclient.NewHttpClientWrapper(client, logger)
}

// Client issues CalDAV operations through one Transport.
type Client struct {
	transport Transport
	codec     Codec
	status    *StatusInterpreter
	logger    *slog.Logger
	now       func() time.Time
	metrics   *metrics
}

type options struct {
	codec      Codec
	status     *StatusInterpreter
	now        func() time.Time
	registerer prometheus.Registerer
}

// Option configures a Client.
type Option func(*options)

// WithCodec replaces the go-ical codec.
func WithCodec(codec Codec) Option {
	return func(o *options) { o.codec = codec }
}

// WithStatusInterpreter replaces the default status table.
func WithStatusInterpreter(s *StatusInterpreter) Option {
	return func(o *options) { o.status = s }
}

// WithClock sets the source of the time stamped into stored objects.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithRegisterer counts operations by outcome on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// NewClient creates a client bound to transport.
func NewClient(transport Transport, logger *slog.Logger, opts ...Option) (*Client, error) {
	if transport == nil {
		return nil, errors.New("transport is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	o := options{
		codec:  ICalCodec(),
		status: NewStatusInterpreter(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.codec == nil || o.status == nil || o.now == nil {
		return nil, errors.New("codec, status interpreter and clock cannot be nil")
	}

	c := &Client{
		transport: transport,
		codec:     o.codec,
		status:    o.status,
		logger:    logger,
		now:       o.now,
	}
	if o.registerer != nil {
		m, err := newMetrics(o.registerer)
		if err != nil {
			return nil, err
		}
		c.metrics = m
	}
	return c, nil
}
