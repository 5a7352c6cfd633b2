package davclient

import (
	"context"
	"net/http"
)

// Remove deletes the calendar object described by raw, addressed the same way
// Store addresses it. Only the identifier is read from raw.
//
// Every status the server returns counts as success under the default table;
// transport failures return a *RemoveError.
func (c *Client) Remove(ctx context.Context, coll CollectionHandle, raw string) (Outcome, error) {
	obj, err := c.decode(raw)
	if err != nil {
		return c.fail(OpDelete, &RemoveError{Path: coll.BasePath, Err: err})
	}
	path, err := ResourcePath(coll, obj.Identifier)
	if err != nil {
		return c.fail(OpDelete, &RemoveError{Identifier: obj.Identifier, Path: coll.BasePath, Err: err})
	}
	return c.delete(ctx, coll.Conn, path, obj.Identifier)
}

// RemoveAt deletes whatever lives at path, a resource or a whole collection.
func (c *Client) RemoveAt(ctx context.Context, conn ConnParams, path string) (Outcome, error) {
	return c.delete(ctx, conn, path, "")
}

func (c *Client) delete(ctx context.Context, conn ConnParams, path, identifier string) (Outcome, error) {
	c.logger.Debug("DEL", "path", path, "identifier", identifier)

	resp, err := c.transport.Execute(ctx, conn, Request{
		Method: http.MethodDelete,
		Path:   path,
	})
	if err != nil {
		return c.fail(OpDelete, &RemoveError{Identifier: identifier, Path: path, Err: err})
	}

	out := c.classify(OpDelete, path, resp)
	if out.IsHardFailure() {
		return out, &RemoveError{
			Identifier: identifier,
			Path:       path,
			StatusCode: out.StatusCode,
			Body:       out.Body,
		}
	}
	return out, nil
}
