package caldavtest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cyp0633/caldavkit/davclient"
	"github.com/cyp0633/caldavkit/internal/httpclient"
	"github.com/emersion/go-webdav/caldav"
)

// CalendarDescription is the description given to collections created by
// MakeCalendar.
const CalendarDescription = "Test Calendar"

// Session bundles what one test needs against one collection. Each Session
// owns its http.Client, so sessions can run in parallel.
type Session struct {
	Collection davclient.CollectionHandle
	Client     *davclient.Client
	Verifier   *davclient.Verifier
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewSession builds an authenticated Session for cfg. opts are passed to
// davclient.NewClient.
func NewSession(cfg Config, logger *slog.Logger, opts ...davclient.Option) (*Session, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	return newSession(cfg, cfg.Credential.HTTPClient(cfg.Timeout, logger), logger, opts...)
}

// NewAnonymousSession builds a Session that sends no credentials, for
// checking that a server refuses them.
func NewAnonymousSession(cfg Config, logger *slog.Logger, opts ...davclient.Option) (*Session, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	httpClient := &http.Client{
		Transport: httpclient.NewLoggingTransport(nil, logger),
		Timeout:   cfg.Timeout,
	}
	return newSession(cfg, httpClient, logger, opts...)
}

func newSession(cfg Config, httpClient *http.Client, logger *slog.Logger, opts ...davclient.Option) (*Session, error) {
	transport, err := davclient.NewHTTPTransport(httpClient, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create transport: %w", err)
	}
	client, err := davclient.NewClient(transport, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	verifier, err := davclient.NewVerifier(httpClient, cfg.Credential.Conn())
	if err != nil {
		return nil, err
	}
	return &Session{
		Collection: davclient.FromCredential(cfg.Credential, cfg.Collection),
		Client:     client,
		Verifier:   verifier,
		HTTPClient: httpClient,
		Logger:     logger,
	}, nil
}

// MakeCalendar creates the session's collection.
func (s *Session) MakeCalendar(ctx context.Context) (davclient.Outcome, error) {
	return s.Client.CreateCollection(ctx, s.Collection, CalendarDescription)
}

// PutFixture stores the bundled resource name at <collection>/<UID>.ics.
func (s *Session) PutFixture(ctx context.Context, name string) (davclient.Outcome, error) {
	text, err := LoadFixture(name)
	if err != nil {
		return davclient.Outcome{Operation: davclient.OpPut, Kind: davclient.HardFailure}, err
	}
	return s.Client.Store(ctx, s.Collection, text)
}

// DeleteFixture removes what PutFixture stored for name.
func (s *Session) DeleteFixture(ctx context.Context, name string) (davclient.Outcome, error) {
	text, err := LoadFixture(name)
	if err != nil {
		return davclient.Outcome{Operation: davclient.OpDelete, Kind: davclient.HardFailure}, err
	}
	return s.Client.Remove(ctx, s.Collection, text)
}

// PutAt stores the bundled resource name at an explicit server path.
func (s *Session) PutAt(ctx context.Context, name, path string) (davclient.Outcome, error) {
	text, err := LoadFixture(name)
	if err != nil {
		return davclient.Outcome{Operation: davclient.OpPut, Kind: davclient.HardFailure}, err
	}
	return s.Client.StoreAt(ctx, s.Collection.Conn, path, text)
}

// DeleteAt deletes an explicit server path.
func (s *Session) DeleteAt(ctx context.Context, path string) (davclient.Outcome, error) {
	return s.Client.RemoveAt(ctx, s.Collection.Conn, path)
}

// FetchFixture reads back the object PutFixture stored for name.
func (s *Session) FetchFixture(ctx context.Context, name string) (*caldav.CalendarObject, error) {
	text, err := LoadFixture(name)
	if err != nil {
		return nil, err
	}
	obj, err := davclient.ICalCodec().Decode(text)
	if err != nil {
		return nil, err
	}
	return s.Verifier.Fetch(ctx, s.Collection, obj.Identifier)
}

// ResourcePath is the path PutFixture uses for name.
func (s *Session) ResourcePath(name string) (string, error) {
	text, err := LoadFixture(name)
	if err != nil {
		return "", err
	}
	obj, err := davclient.ICalCodec().Decode(text)
	if err != nil {
		return "", err
	}
	return davclient.ResourcePath(s.Collection, obj.Identifier)
}

// Cleanup deletes the session's collection and everything in it.
func (s *Session) Cleanup(ctx context.Context) error {
	_, err := s.Client.RemoveAt(ctx, s.Collection.Conn, s.Collection.BasePath)
	return err
}
