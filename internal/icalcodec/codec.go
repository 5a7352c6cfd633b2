// Package icalcodec extracts addressing data from iCalendar text and
// re-stamps it for upload.
package icalcodec

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/samber/mo"
)

// ErrDecode is returned when the text is not iCalendar or carries no
// component with a UID.
var ErrDecode = errors.New("cannot decode calendar object")

// identifiable lists the component kinds addressed by their UID, in lookup order.
var identifiable = []string{ical.CompEvent, ical.CompToDo, ical.CompJournal}

// Object is the decoded view of a calendar object resource.
type Object struct {
	Identifier string
	Timestamp  mo.Option[time.Time]
	Calendar   *ical.Calendar
}

// Decode parses text and returns the UID and DTSTAMP of its primary
// component. A VEVENT wins over a VTODO, which wins over a VJOURNAL.
// A missing or unparsable DTSTAMP leaves Timestamp empty.
func Decode(text string) (*Object, error) {
	cal, err := parse(text)
	if err != nil {
		return nil, err
	}

	comp, ok := primaryComponent(cal).Get()
	if !ok {
		return nil, fmt.Errorf("%w: no VEVENT, VTODO or VJOURNAL with a UID", ErrDecode)
	}

	obj := &Object{
		Identifier: uid(comp),
		Calendar:   cal,
	}
	if comp.Props.Get(ical.PropDateTimeStamp) != nil {
		if stamp, err := comp.Props.DateTime(ical.PropDateTimeStamp, time.UTC); err == nil {
			obj.Timestamp = mo.Some(stamp)
		}
	}
	return obj, nil
}

// EncodeWithTimestamp sets DTSTAMP to instant (UTC, second precision) on every
// component that has a UID, adding the property where it is missing. Only
// those DTSTAMP lines change; every other line, its order and the line
// endings are kept as they are in text.
func EncodeWithTimestamp(text string, instant time.Time) (string, error) {
	cal, err := parse(text)
	if err != nil {
		return "", err
	}

	eol := "\n"
	if strings.Contains(text, "\r\n") {
		eol = "\r\n"
	}
	stampLine := ical.PropDateTimeStamp + ":" + instant.UTC().Format(dateTimeUTC) + eol

	var (
		out      strings.Builder
		depth    int
		child    = -1
		stamping bool // inside a component of cal that carries a UID
		stamped  bool
		skipping bool // dropping the folded continuation of a replaced line
	)
	out.Grow(len(text))

	for _, line := range strings.SplitAfter(text, "\n") {
		content := strings.TrimRight(line, "\r\n")
		if skipping {
			if isContinuation(content) {
				continue
			}
			skipping = false
		}

		name := propName(content)
		switch {
		case strings.EqualFold(name, "BEGIN"):
			depth++
			if depth == 2 {
				child++
				stamping = child < len(cal.Children) && uid(cal.Children[child]) != ""
				stamped = false
			}
		case strings.EqualFold(name, "END"):
			if depth == 2 && stamping && !stamped {
				out.WriteString(stampLine)
			}
			if depth == 2 {
				stamping = false
			}
			depth--
		case depth == 2 && stamping && strings.EqualFold(name, ical.PropDateTimeStamp):
			if !stamped {
				out.WriteString(stampLine)
				stamped = true
			}
			skipping = true
			continue
		}
		out.WriteString(line)
	}

	if depth != 0 {
		return "", fmt.Errorf("%w: unbalanced BEGIN/END", ErrDecode)
	}
	return out.String(), nil
}

const dateTimeUTC = "20060102T150405Z"

// propName returns the name of a content line, without parameters or value.
func propName(line string) string {
	if isContinuation(line) {
		return ""
	}
	if i := strings.IndexAny(line, ";:"); i >= 0 {
		return line[:i]
	}
	return line
}

func isContinuation(line string) bool {
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
}

func parse(text string) (*ical.Calendar, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty input", ErrDecode)
	}
	cal, err := ical.NewDecoder(strings.NewReader(text)).Decode()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return cal, nil
}

func primaryComponent(cal *ical.Calendar) mo.Option[*ical.Component] {
	for _, name := range identifiable {
		for _, child := range cal.Children {
			if child.Name == name && uid(child) != "" {
				return mo.Some(child)
			}
		}
	}
	return mo.None[*ical.Component]()
}

func uid(comp *ical.Component) string {
	prop := comp.Props.Get(ical.PropUID)
	if prop == nil {
		return ""
	}
	return strings.TrimSpace(prop.Value)
}
