package davclient

import (
	"context"
	"net/http"
	"time"

	"github.com/cyp0633/caldavkit/internal/httpclient"
	"github.com/samber/mo"
)

const calendarContentType = "text/calendar; charset=utf-8"

// Store uploads the calendar object in raw to <BasePath>/<UID>.ics with PUT.
//
// Store always stamps the current time: DTSTAMP is rewritten to the client
// clock's now before sending, so the server never receives raw byte for byte
// and a round trip does not preserve the original stamp.
//
// 201 and 204 are successes. 412 Precondition Failed returns a BenignConflict
// outcome and a nil error; the object is most likely on the server already.
// Any other status, 409 included, returns a *StoreError with the response
// body. Decode and transport failures are returned as a *StoreError too.
func (c *Client) Store(ctx context.Context, coll CollectionHandle, raw string) (Outcome, error) {
	obj, err := c.decode(raw)
	if err != nil {
		return c.fail(OpPut, &StoreError{Path: coll.BasePath, Err: err})
	}
	path, err := ResourcePath(coll, obj.Identifier)
	if err != nil {
		return c.fail(OpPut, &StoreError{Identifier: obj.Identifier, Path: coll.BasePath, Err: err})
	}
	return c.put(ctx, coll.Conn, path, obj.Identifier, raw, obj.Timestamp)
}

// StoreAt is Store with an explicit resource path. The text is still
// re-stamped but its identifier is not used for addressing.
func (c *Client) StoreAt(ctx context.Context, conn ConnParams, path, raw string) (Outcome, error) {
	var previous mo.Option[time.Time]
	if obj, err := c.codec.Decode(raw); err == nil {
		previous = obj.Timestamp
	}
	return c.put(ctx, conn, path, "", raw, previous)
}

func (c *Client) put(ctx context.Context, conn ConnParams, path, identifier, raw string, previous mo.Option[time.Time]) (Outcome, error) {
	now := c.now()
	stamped, err := c.codec.EncodeWithTimestamp(raw, now)
	if err != nil {
		return c.fail(OpPut, &StoreError{Identifier: identifier, Path: path, Err: err})
	}

	if old, ok := previous.Get(); ok {
		c.logger.Debug("replacing DTSTAMP", "path", path, "old_dtstamp", old, "new_dtstamp", now.UTC())
	} else {
		c.logger.Debug("adding DTSTAMP", "path", path, "new_dtstamp", now.UTC())
	}

	c.logger.Debug("PUT", "path", path, "identifier", identifier)

	resp, err := c.transport.Execute(ctx, conn, Request{
		Method: http.MethodPut,
		Path:   path,
		Header: httpclient.Header("Content-Type", calendarContentType),
		Body:   []byte(stamped),
	})
	if err != nil {
		c.logger.Error("error while storing calendar object", "path", path, "error", err)
		return c.fail(OpPut, &StoreError{Identifier: identifier, Path: path, Err: err})
	}

	out := c.classify(OpPut, path, resp)
	if out.IsHardFailure() {
		return out, &StoreError{
			Identifier: identifier,
			Path:       path,
			StatusCode: out.StatusCode,
			Body:       out.Body,
		}
	}
	return out, nil
}
