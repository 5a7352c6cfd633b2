package davclient

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidIdentifier is matched by every *InvalidIdentifierError.
var ErrInvalidIdentifier = errors.New("invalid identifier")

// InvalidIdentifierError reports an identifier that cannot name a resource.
type InvalidIdentifierError struct {
	Identifier string
	Reason     string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier %q: %s", e.Identifier, e.Reason)
}

func (e *InvalidIdentifierError) Is(target error) bool {
	return target == ErrInvalidIdentifier
}

// ResourcePath returns the server path of the calendar object identified by
// identifier inside c: <BasePath>/<identifier>.ics. A trailing slash on
// BasePath is not doubled.
func ResourcePath(c CollectionHandle, identifier string) (string, error) {
	if identifier == "" {
		return "", &InvalidIdentifierError{Identifier: identifier, Reason: "empty"}
	}
	if strings.Contains(identifier, "/") {
		return "", &InvalidIdentifierError{Identifier: identifier, Reason: "contains a path separator"}
	}
	return strings.TrimSuffix(c.BasePath, "/") + "/" + identifier + ".ics", nil
}
