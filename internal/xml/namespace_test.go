package xml

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rootAttrs(t *testing.T, doc *etree.Document) map[string]string {
	t.Helper()
	root := doc.Root()
	require.NotNil(t, root)
	out := make(map[string]string, len(root.Attr))
	for _, a := range root.Attr {
		out[a.FullKey()] = a.Value
	}
	return out
}

func TestAddNamespacesDeclaresBothPrefixes(t *testing.T) {
	doc := etree.NewDocument()
	doc.CreateElement(PrefixCalDAV + ":mkcalendar")

	AddNamespaces(doc)

	assert.Equal(t, map[string]string{
		"xmlns:" + PrefixDAV:    DAV,
		"xmlns:" + PrefixCalDAV: CalDAV,
	}, rootAttrs(t, doc))
}

func TestAddNamespacesIsIdempotent(t *testing.T) {
	doc := etree.NewDocument()
	doc.CreateElement("root")

	AddNamespaces(doc)
	AddNamespaces(doc)

	assert.Len(t, doc.Root().Attr, 2)
}

func TestAddNamespacesKeepsExistingBinding(t *testing.T) {
	doc := etree.NewDocument()
	root := doc.CreateElement("root")
	root.CreateAttr("xmlns:"+PrefixDAV, "urn:example:other")

	AddNamespaces(doc)

	attrs := rootAttrs(t, doc)
	assert.Equal(t, "urn:example:other", attrs["xmlns:"+PrefixDAV])
	assert.Equal(t, CalDAV, attrs["xmlns:"+PrefixCalDAV])
}

func TestAddNamespacesWithoutRoot(t *testing.T) {
	doc := etree.NewDocument()
	AddNamespaces(doc)
	assert.Nil(t, doc.Root())
}
