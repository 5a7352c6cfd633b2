package davclient

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCredential(t *testing.T) {
	cred := Credential{
		Host:       "localhost",
		Port:       8080,
		Scheme:     "http",
		WebDAVRoot: "/dav/user@example.com/",
		Username:   "user@example.com",
		Password:   "pw",
	}

	handle := FromCredential(cred, "collection_changeme")

	assert.Equal(t, "/dav/user@example.com/collection_changeme", handle.BasePath)
	assert.Equal(t, ConnParams{Scheme: "http", Host: "localhost", Port: 8080}, handle.Conn)
	assert.Equal(t, handle, FromCredential(cred, "collection_changeme"))
}

func TestResourcePath(t *testing.T) {
	tests := []struct {
		name       string
		basePath   string
		identifier string
		want       string
		wantErr    bool
	}{
		{name: "simple", basePath: "/dav/alice/collection", identifier: "evt-123", want: "/dav/alice/collection/evt-123.ics"},
		{name: "trailing slash on base", basePath: "/dav/alice/collection/", identifier: "evt-123", want: "/dav/alice/collection/evt-123.ics"},
		{name: "identifier with at sign", basePath: "/cal", identifier: "0001@example.com", want: "/cal/0001@example.com.ics"},
		{name: "empty identifier", basePath: "/cal", identifier: "", wantErr: true},
		{name: "separator", basePath: "/cal", identifier: "a/b", wantErr: true},
		{name: "only separator", basePath: "/cal", identifier: "/", wantErr: true},
		{name: "traversal", basePath: "/cal", identifier: "../other", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResourcePath(CollectionHandle{BasePath: tt.basePath}, tt.identifier)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidIdentifier)
				var invalid *InvalidIdentifierError
				require.ErrorAs(t, err, &invalid)
				assert.Equal(t, tt.identifier, invalid.Identifier)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResourcePathDeterministicAndInjective(t *testing.T) {
	coll := testCollection()
	seen := make(map[string]string)

	for i := 0; i < 200; i++ {
		id := fmt.Sprintf("evt-%d", i)

		first, err := ResourcePath(coll, id)
		require.NoError(t, err)
		second, err := ResourcePath(coll, id)
		require.NoError(t, err)
		assert.Equal(t, first, second, "path for %s is not deterministic", id)

		if other, dup := seen[first]; dup {
			t.Fatalf("identifiers %s and %s map to the same path %s", other, id, first)
		}
		seen[first] = id
	}
}
