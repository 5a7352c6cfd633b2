// Package mkcalendar builds and reads MKCALENDAR request bodies (RFC 4791, 5.3.1).
package mkcalendar

import (
	"errors"
	"strings"

	"github.com/beevik/etree"
	davxml "github.com/cyp0633/caldavkit/internal/xml"
)

// Properties are the collection properties set by a MKCALENDAR request.
// Empty fields are omitted from the body.
type Properties struct {
	DisplayName string
	Description string
	// DescriptionLang is written as xml:lang on calendar-description.
	DescriptionLang string
}

// BuildRequest encodes p as a MKCALENDAR request body.
func BuildRequest(p Properties) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	root := doc.CreateElement(davxml.PrefixCalDAV + ":mkcalendar")
	davxml.AddNamespaces(doc)

	if p.DisplayName != "" || p.Description != "" {
		prop := root.CreateElement(davxml.PrefixDAV + ":set").CreateElement(davxml.PrefixDAV + ":prop")
		if p.DisplayName != "" {
			prop.CreateElement(davxml.PrefixDAV + ":displayname").SetText(p.DisplayName)
		}
		if p.Description != "" {
			desc := prop.CreateElement(davxml.PrefixCalDAV + ":calendar-description")
			if p.DescriptionLang != "" {
				desc.CreateAttr("xml:lang", p.DescriptionLang)
			}
			desc.SetText(p.Description)
		}
	}

	return doc.WriteToBytes()
}

// ParseRequest reads the properties of a MKCALENDAR request body. Unknown
// properties are skipped; a body without <set> or <prop> yields no properties.
func ParseRequest(xmlStr string) (Properties, error) {
	var result Properties

	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlStr); err != nil {
		return result, err
	}

	mk := doc.FindElement("//mkcalendar")
	if mk == nil {
		return result, errors.New("invalid MKCALENDAR request: missing mkcalendar element")
	}

	set := mk.FindElement("set")
	if set == nil {
		return result, nil
	}
	prop := set.FindElement("prop")
	if prop == nil {
		return result, nil
	}

	for _, e := range prop.ChildElements() {
		switch strings.ToLower(e.Tag) {
		case "displayname":
			result.DisplayName = e.Text()
		case "calendar-description":
			result.Description = e.Text()
			result.DescriptionLang = e.SelectAttrValue("xml:lang", "")
		}
	}

	return result, nil
}
