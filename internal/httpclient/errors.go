package httpclient

import "fmt"

// TransportError reports a request that never produced a server status:
// a bad URL, a refused connection, a cancelled context or a truncated body.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
