package davclient

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cyp0633/caldavkit/internal/httpclient"
)

// ConnParams identifies the server a collection lives on.
type ConnParams = httpclient.ConnParams

// Credential describes one account on a CalDAV server. It is supplied by
// the caller and never modified.
type Credential struct {
	Host       string
	Port       int
	Scheme     string
	WebDAVRoot string
	Username   string
	Password   string
}

// Conn returns the connection parameters of the credential's server.
func (c Credential) Conn() ConnParams {
	return ConnParams{Scheme: c.Scheme, Host: c.Host, Port: c.Port}
}

// HTTPClient returns an http.Client that sends the credential's user and
// password preemptively with every request.
func (c Credential) HTTPClient(timeout time.Duration, logger *slog.Logger) *http.Client {
	return httpclient.NewPreemptiveClient(c.Username, c.Password, nil, timeout, logger)
}

// CollectionHandle scopes operations to one calendar collection.
type CollectionHandle struct {
	BasePath string
	Conn     ConnParams
}

// FromCredential returns the handle of collection under the credential's
// WebDAV root. The two are concatenated as-is, so the root is expected to
// end with a slash.
func FromCredential(cred Credential, collection string) CollectionHandle {
	return CollectionHandle{
		BasePath: cred.WebDAVRoot + collection,
		Conn:     cred.Conn(),
	}
}
