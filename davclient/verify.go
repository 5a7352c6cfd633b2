package davclient

import (
	"context"
	"fmt"

	"github.com/emersion/go-webdav"
	"github.com/emersion/go-webdav/caldav"
)

// Verifier reads calendar objects back from the server, for checking what a
// Store actually left there.
type Verifier struct {
	client *caldav.Client
}

// NewVerifier creates a Verifier talking to the server in conn through
// httpClient, which carries the credentials.
func NewVerifier(httpClient webdav.HTTPClient, conn ConnParams) (*Verifier, error) {
	endpoint := conn.BaseURL()
	client, err := caldav.NewClient(httpClient, endpoint.String())
	if err != nil {
		return nil, fmt.Errorf("failed to create caldav client: %w", err)
	}
	return &Verifier{client: client}, nil
}

// Fetch GETs the calendar object identified by identifier in coll.
func (v *Verifier) Fetch(ctx context.Context, coll CollectionHandle, identifier string) (*caldav.CalendarObject, error) {
	path, err := ResourcePath(coll, identifier)
	if err != nil {
		return nil, err
	}
	obj, err := v.client.GetCalendarObject(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar object %s: %w", path, err)
	}
	return obj, nil
}
