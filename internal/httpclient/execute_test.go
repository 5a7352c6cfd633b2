package httpclient

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// connFor turns an httptest server URL into connection parameters.
func connFor(t *testing.T, rawURL string) ConnParams {
	t.Helper()
	u, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("parse server URL: %v", err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatalf("parse server port: %v", err)
	}
	return ConnParams{Scheme: u.Scheme, Host: u.Hostname(), Port: port}
}

func TestConnParamsBaseURL(t *testing.T) {
	tests := []struct {
		name string
		conn ConnParams
		want string
	}{
		{name: "explicit port", conn: ConnParams{Scheme: "https", Host: "cal.example.com", Port: 8443}, want: "https://cal.example.com:8443"},
		{name: "default scheme", conn: ConnParams{Host: "localhost", Port: 8080}, want: "http://localhost:8080"},
		{name: "no port", conn: ConnParams{Scheme: "https", Host: "cal.example.com"}, want: "https://cal.example.com"},
		{name: "ipv6 host", conn: ConnParams{Scheme: "http", Host: "::1", Port: 80}, want: "http://[::1]:80"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := tt.conn.BaseURL()
			if got := u.String(); got != tt.want {
				t.Errorf("BaseURL() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name          string
		req           Request
		serverHandler func(t *testing.T, w http.ResponseWriter, r *http.Request)
		wantStatus    int
		wantBody      string
	}{
		{
			name: "put with headers and body",
			req: Request{
				Method: http.MethodPut,
				Path:   "/dav/home/cal/evt-1.ics",
				Header: Header("Content-Type", "text/calendar; charset=utf-8"),
				Body:   []byte("BEGIN:VCALENDAR"),
			},
			serverHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPut {
					t.Errorf("expected PUT method, got %s", r.Method)
				}
				if r.URL.Path != "/dav/home/cal/evt-1.ics" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if ct := r.Header.Get("Content-Type"); ct != "text/calendar; charset=utf-8" {
					t.Errorf("unexpected Content-Type %s", ct)
				}
				body, _ := io.ReadAll(r.Body)
				if string(body) != "BEGIN:VCALENDAR" {
					t.Errorf("unexpected body %q", body)
				}
				w.WriteHeader(http.StatusCreated)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "error status is not a transport error",
			req:  Request{Method: http.MethodPut, Path: "/cal/x.ics"},
			serverHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusConflict)
				w.Write([]byte("conflict body"))
			},
			wantStatus: http.StatusConflict,
			wantBody:   "conflict body",
		},
		{
			name: "custom method",
			req:  Request{Method: MethodMkCalendar, Path: "/cal"},
			serverHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				if r.Method != MethodMkCalendar {
					t.Errorf("expected MKCALENDAR method, got %s", r.Method)
				}
				w.WriteHeader(http.StatusCreated)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "path is escaped on the wire",
			req:  Request{Method: http.MethodDelete, Path: "/cal/a b?c.ics"},
			serverHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/cal/a b?c.ics" {
					t.Errorf("unexpected decoded path %q", r.URL.Path)
				}
				if r.URL.RawQuery != "" {
					t.Errorf("identifier leaked into query: %q", r.URL.RawQuery)
				}
				w.WriteHeader(http.StatusNoContent)
			},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.serverHandler(t, w, r)
			}))
			defer server.Close()

			client := &httpClientWrapper{client: server.Client(), logger: discardLogger()}

			resp, err := client.Execute(context.Background(), connFor(t, server.URL), tt.req)
			if err != nil {
				t.Fatalf("Execute() unexpected error = %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("Execute() status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if resp.Body != tt.wantBody {
				t.Errorf("Execute() body = %q, want %q", resp.Body, tt.wantBody)
			}
		})
	}
}

func TestExecuteTransportErrors(t *testing.T) {
	t.Run("missing host", func(t *testing.T) {
		client := &httpClientWrapper{client: http.DefaultClient, logger: discardLogger()}
		_, err := client.Execute(context.Background(), ConnParams{}, Request{Method: http.MethodPut, Path: "/x.ics"})
		var te *TransportError
		if !errors.As(err, &te) {
			t.Fatalf("expected *TransportError, got %v", err)
		}
	})

	t.Run("round trip failure", func(t *testing.T) {
		boom := errors.New("connection refused")
		client := &httpClientWrapper{
			client: &http.Client{Transport: &mockTransport{err: boom}},
			logger: discardLogger(),
		}
		_, err := client.Execute(context.Background(), ConnParams{Host: "example.com"}, Request{Method: http.MethodDelete, Path: "/x.ics"})
		var te *TransportError
		if !errors.As(err, &te) {
			t.Fatalf("expected *TransportError, got %v", err)
		}
		if te.Method != http.MethodDelete {
			t.Errorf("TransportError.Method = %s, want DELETE", te.Method)
		}
		if !errors.Is(err, boom) {
			t.Errorf("expected cause to be preserved, got %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		client := &httpClientWrapper{client: server.Client(), logger: discardLogger()}
		_, err := client.Execute(ctx, connFor(t, server.URL), Request{Method: http.MethodPut, Path: "/x.ics"})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestNewHttpClientWrapperRequiresLogger(t *testing.T) {
	if _, err := NewHttpClientWrapper(http.DefaultClient, nil); err == nil {
		t.Error("NewHttpClientWrapper() with nil logger should fail")
	}
	if _, err := NewHttpClientWrapper(nil, discardLogger()); err != nil {
		t.Errorf("NewHttpClientWrapper() unexpected error = %v", err)
	}
}
