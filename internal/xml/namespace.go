package xml

import "github.com/beevik/etree"

// Namespace definitions for CalDAV and WebDAV
const (
	// DAV is the WebDAV namespace
	DAV = "DAV:"
	// CalDAV is the CalDAV namespace
	CalDAV = "urn:ietf:params:xml:ns:caldav"
)

// Prefixes used when writing request bodies.
const (
	PrefixDAV    = "D"
	PrefixCalDAV = "C"
)

// AddNamespaces declares the DAV and CalDAV prefixes on the document root.
// Existing declarations are left alone.
func AddNamespaces(doc *etree.Document) {
	root := doc.Root()
	if root == nil {
		return
	}
	if root.SelectAttr("xmlns:"+PrefixDAV) == nil {
		root.CreateAttr("xmlns:"+PrefixDAV, DAV)
	}
	if root.SelectAttr("xmlns:"+PrefixCalDAV) == nil {
		root.CreateAttr("xmlns:"+PrefixCalDAV, CalDAV)
	}
}
