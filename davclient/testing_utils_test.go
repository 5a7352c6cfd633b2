package davclient

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
)

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

// mockTransport implements Transport for testing
type mockTransport struct {
	mock.Mock
}

func (m *mockTransport) Execute(ctx context.Context, conn ConnParams, req Request) (*Response, error) {
	args := m.Called(ctx, conn, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Response), args.Error(1)
}

// requests returns the requests the mock received, in order.
func (m *mockTransport) requests() []Request {
	var out []Request
	for _, call := range m.Calls {
		out = append(out, call.Arguments.Get(2).(Request))
	}
	return out
}

func methodIs(method string) interface{} {
	return mock.MatchedBy(func(r Request) bool { return r.Method == method })
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t testing.TB, transport Transport, opts ...Option) *Client {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	c, err := NewClient(transport, discardLogger(), opts...)
	if err != nil {
		t.Fatalf("NewClient() unexpected error = %v", err)
	}
	return c
}

func testCollection() CollectionHandle {
	return FromCredential(Credential{
		Host:       "cal.example.com",
		Port:       8443,
		Scheme:     "https",
		WebDAVRoot: "/dav/alice/",
		Username:   "alice",
		Password:   "secret",
	}, "collection")
}

func eventText(uid string) string {
	return fmt.Sprintf(`BEGIN:VCALENDAR
PRODID:-//caldavkit//NONSGML v1.0//EN
VERSION:2.0
BEGIN:VEVENT
UID:%s
SUMMARY:Test Event
DTSTART:20240101T100000Z
DTEND:20240101T110000Z
DTSTAMP:20200101T000000Z
END:VEVENT
END:VCALENDAR
`, uid)
}
