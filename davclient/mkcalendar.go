package davclient

import (
	"context"
	"fmt"

	"github.com/cyp0633/caldavkit/internal/httpclient"
	"github.com/cyp0633/caldavkit/internal/xml/mkcalendar"
	"golang.org/x/text/language"
)

// DefaultDescriptionLang tags collection descriptions unless told otherwise.
const DefaultDescriptionLang = "en"

// CreateCollection creates the calendar collection at coll.BasePath with
// MKCALENDAR, describing it with an English calendar-description.
func (c *Client) CreateCollection(ctx context.Context, coll CollectionHandle, description string) (Outcome, error) {
	return c.CreateCollectionLang(ctx, coll, description, DefaultDescriptionLang)
}

// CreateCollectionLang is CreateCollection with the description tagged lang,
// a BCP 47 language tag. An empty lang means DefaultDescriptionLang.
func (c *Client) CreateCollectionLang(ctx context.Context, coll CollectionHandle, description, lang string) (Outcome, error) {
	if lang == "" {
		lang = DefaultDescriptionLang
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return c.fail(OpMkCalendar, &CreateCollectionError{
			Path: coll.BasePath,
			Err:  fmt.Errorf("invalid description language %q: %w", lang, err),
		})
	}

	body, err := mkcalendar.BuildRequest(mkcalendar.Properties{
		Description:     description,
		DescriptionLang: tag.String(),
	})
	if err != nil {
		return c.fail(OpMkCalendar, &CreateCollectionError{Path: coll.BasePath, Err: err})
	}

	c.logger.Debug("MKCALENDAR", "path", coll.BasePath, "description", description, "lang", tag.String())

	resp, err := c.transport.Execute(ctx, coll.Conn, Request{
		Method: httpclient.MethodMkCalendar,
		Path:   coll.BasePath,
		Header: httpclient.Header("Content-Type", "application/xml; charset=utf-8"),
		Body:   body,
	})
	if err != nil {
		return c.fail(OpMkCalendar, &CreateCollectionError{Path: coll.BasePath, Err: err})
	}

	out := c.classify(OpMkCalendar, coll.BasePath, resp)
	if out.IsHardFailure() {
		return out, &CreateCollectionError{
			Path:       coll.BasePath,
			StatusCode: out.StatusCode,
			Body:       out.Body,
		}
	}
	return out, nil
}
