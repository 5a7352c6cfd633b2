package davclient

import (
	"fmt"
	"time"

	"github.com/cyp0633/caldavkit/internal/icalcodec"
	"github.com/samber/mo"
)

// ErrDecode is matched by errors caused by calendar text without a usable
// identifier.
var ErrDecode = icalcodec.ErrDecode

// CalendarObject is the addressing view of a calendar object resource.
type CalendarObject struct {
	Identifier string
	RawText    string
	Timestamp  mo.Option[time.Time]
}

// Codec reads identifiers out of calendar text and re-stamps it for upload.
// Failures of either method should wrap ErrDecode.
type Codec interface {
	Decode(text string) (CalendarObject, error)
	EncodeWithTimestamp(text string, instant time.Time) (string, error)
}

type icalCodec struct{}

// ICalCodec returns the default codec, backed by go-ical. It addresses a
// calendar by the UID of its VEVENT (or VTODO, or VJOURNAL) and re-stamps
// DTSTAMP.
func ICalCodec() Codec {
	return icalCodec{}
}

func (icalCodec) Decode(text string) (CalendarObject, error) {
	obj, err := icalcodec.Decode(text)
	if err != nil {
		return CalendarObject{}, err
	}
	return CalendarObject{
		Identifier: obj.Identifier,
		RawText:    text,
		Timestamp:  obj.Timestamp,
	}, nil
}

func (icalCodec) EncodeWithTimestamp(text string, instant time.Time) (string, error) {
	return icalcodec.EncodeWithTimestamp(text, instant)
}

// decode runs the configured codec and enforces a non-empty identifier.
func (c *Client) decode(text string) (CalendarObject, error) {
	obj, err := c.codec.Decode(text)
	if err != nil {
		return CalendarObject{}, err
	}
	if obj.Identifier == "" {
		return CalendarObject{}, fmt.Errorf("%w: empty identifier", ErrDecode)
	}
	return obj, nil
}
