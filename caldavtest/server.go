package caldavtest

import (
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cyp0633/caldavkit/davclient"
	"github.com/cyp0633/caldavkit/internal/httpclient"
	"github.com/cyp0633/caldavkit/internal/xml/mkcalendar"
	"github.com/emersion/go-ical"
	"github.com/google/uuid"
)

// RecordedRequest is a request as the Server received it.
type RecordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   string
}

// StoredObject is a calendar object held by the Server.
type StoredObject struct {
	Data         string
	ETag         string
	LastModified time.Time
}

// Server is an in-memory CalDAV server covering MKCALENDAR, PUT, GET and
// DELETE. Every request is recorded. It requires Basic credentials when a
// username is set.
type Server struct {
	srv      *httptest.Server
	username string
	password string
	logger   *slog.Logger

	mu          sync.Mutex
	collections map[string]mkcalendar.Properties
	objects     map[string]StoredObject
	requests    []RecordedRequest
	injected    map[string][]int
}

// NewServer starts a Server. Close it when done.
func NewServer(username, password string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		username:    username,
		password:    password,
		logger:      logger,
		collections: make(map[string]mkcalendar.Properties),
		objects:     make(map[string]StoredObject),
		injected:    make(map[string][]int),
	}
	s.srv = httptest.NewServer(s)
	return s
}

// URL is the base URL of the server.
func (s *Server) URL() string {
	return s.srv.URL
}

// Close shuts the server down. Later requests fail at the transport.
func (s *Server) Close() {
	s.srv.Close()
}

// Credential returns a credential for this server rooted at root. It panics
// if the listener address cannot be split into host and port.
func (s *Server) Credential(root string) davclient.Credential {
	u, err := url.Parse(s.srv.URL)
	if err != nil {
		panic(fmt.Sprintf("caldavtest: invalid server URL %q: %v", s.srv.URL, err))
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		panic(fmt.Sprintf("caldavtest: invalid server port in %q: %v", s.srv.URL, err))
	}
	return davclient.Credential{
		Host:       u.Hostname(),
		Port:       port,
		Scheme:     u.Scheme,
		WebDAVRoot: root,
		Username:   s.username,
		Password:   s.password,
	}
}

// Config returns a Config for collection on this server, rooted at root.
func (s *Server) Config(root, collection string) Config {
	return Config{
		Credential: s.Credential(root),
		Collection: collection,
		Timeout:    DefaultTimeout,
	}
}

// Fail makes the next request with method answer status, without touching
// the stored state. Calls queue up per method.
func (s *Server) Fail(method string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.injected[method] = append(s.injected[method], status)
}

// Requests returns a copy of everything received so far.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// RequestsWithMethod filters Requests by method.
func (s *Server) RequestsWithMethod(method string) []RecordedRequest {
	var out []RecordedRequest
	for _, r := range s.Requests() {
		if r.Method == method {
			out = append(out, r)
		}
	}
	return out
}

// Object returns the calendar object stored at path.
func (s *Server) Object(path string) (StoredObject, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[path]
	return obj, ok
}

// Collection returns the properties of the collection at path.
func (s *Server) Collection(path string) (mkcalendar.Properties, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	props, ok := s.collections[strings.TrimSuffix(path, "/")]
	return props, ok
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}
	path := r.URL.Path

	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, RecordedRequest{
		Method: r.Method,
		Path:   path,
		Header: r.Header.Clone(),
		Body:   string(body),
	})
	s.logger.Debug("fake server request", "method", r.Method, "path", path)

	if s.username != "" {
		user, pass, ok := r.BasicAuth()
		if !ok || user != s.username || pass != s.password {
			w.Header().Set("WWW-Authenticate", `Basic realm="caldavtest"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
	}

	if queued := s.injected[r.Method]; len(queued) > 0 {
		s.injected[r.Method] = queued[1:]
		http.Error(w, "injected failure", queued[0])
		return
	}

	switch r.Method {
	case httpclient.MethodMkCalendar:
		s.handleMkCalendar(w, path, body)
	case http.MethodPut:
		s.handlePut(w, r, path, body)
	case http.MethodGet:
		s.handleGet(w, path)
	case http.MethodDelete:
		s.handleDelete(w, path)
	default:
		w.Header().Set("Allow", "MKCALENDAR, PUT, GET, DELETE")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleMkCalendar(w http.ResponseWriter, path string, body []byte) {
	path = strings.TrimSuffix(path, "/")
	if _, ok := s.collections[path]; ok {
		http.Error(w, "collection already exists", http.StatusMethodNotAllowed)
		return
	}
	if _, ok := s.objects[path]; ok {
		http.Error(w, "resource already exists", http.StatusMethodNotAllowed)
		return
	}

	var props mkcalendar.Properties
	if len(body) > 0 {
		parsed, err := mkcalendar.ParseRequest(string(body))
		if err != nil {
			http.Error(w, "Failed to parse MKCALENDAR request", http.StatusBadRequest)
			return
		}
		props = parsed
	}
	s.collections[path] = props
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request, path string, body []byte) {
	parent := path[:strings.LastIndex(path, "/")]
	if _, ok := s.collections[parent]; !ok {
		http.Error(w, "parent collection does not exist", http.StatusConflict)
		return
	}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != ical.MIMEType {
		http.Error(w, "expected text/calendar", http.StatusUnsupportedMediaType)
		return
	}
	if _, err := ical.NewDecoder(strings.NewReader(string(body))).Decode(); err != nil {
		http.Error(w, "invalid calendar data: "+err.Error(), http.StatusBadRequest)
		return
	}

	existing, exists := s.objects[path]
	if exists && r.Header.Get("If-None-Match") == "*" {
		http.Error(w, "resource already exists", http.StatusPreconditionFailed)
		return
	}
	if match := r.Header.Get("If-Match"); match != "" && (!exists || match != quote(existing.ETag)) {
		http.Error(w, "etag mismatch", http.StatusPreconditionFailed)
		return
	}

	obj := StoredObject{
		Data:         string(body),
		ETag:         uuid.NewString(),
		LastModified: time.Now().UTC().Truncate(time.Second),
	}
	s.objects[path] = obj

	w.Header().Set("ETag", quote(obj.ETag))
	if exists {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleGet(w http.ResponseWriter, path string) {
	obj, ok := s.objects[path]
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", ical.MIMEType+"; charset=utf-8")
	w.Header().Set("ETag", quote(obj.ETag))
	w.Header().Set("Last-Modified", obj.LastModified.Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, obj.Data)
}

func (s *Server) handleDelete(w http.ResponseWriter, path string) {
	if _, ok := s.objects[path]; ok {
		delete(s.objects, path)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	collection := strings.TrimSuffix(path, "/")
	if _, ok := s.collections[collection]; ok {
		delete(s.collections, collection)
		for p := range s.objects {
			if strings.HasPrefix(p, collection+"/") {
				delete(s.objects, p)
			}
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	http.Error(w, "Not Found", http.StatusNotFound)
}

func quote(etag string) string {
	return strconv.Quote(etag)
}
