package davclient

import (
	"fmt"

	"github.com/cyp0633/caldavkit/internal/httpclient"
)

// TransportError is the failure type of the bundled HTTP transport.
type TransportError = httpclient.TransportError

// StoreError is returned by Store and StoreAt. StatusCode and Body are set
// when the server answered with a status the PUT policy rejects; otherwise
// Err holds the decode, addressing or transport failure.
type StoreError struct {
	Identifier string
	Path       string
	StatusCode int
	Body       string
	Err        error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("store %s: %v", target(e.Identifier, e.Path), e.Err)
	}
	return fmt.Sprintf("store %s: status %d: %s", target(e.Identifier, e.Path), e.StatusCode, e.Body)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// RemoveError is returned by Remove and RemoveAt.
type RemoveError struct {
	Identifier string
	Path       string
	StatusCode int
	Body       string
	Err        error
}

func (e *RemoveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("remove %s: %v", target(e.Identifier, e.Path), e.Err)
	}
	return fmt.Sprintf("remove %s: status %d: %s", target(e.Identifier, e.Path), e.StatusCode, e.Body)
}

func (e *RemoveError) Unwrap() error {
	return e.Err
}

// CreateCollectionError is returned by CreateCollection.
type CreateCollectionError struct {
	Path       string
	StatusCode int
	Body       string
	Err        error
}

func (e *CreateCollectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("create collection %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("create collection %q: status %d: %s", e.Path, e.StatusCode, e.Body)
}

func (e *CreateCollectionError) Unwrap() error {
	return e.Err
}

func target(identifier, path string) string {
	if identifier == "" {
		return fmt.Sprintf("%q", path)
	}
	return fmt.Sprintf("%s at %q", identifier, path)
}
