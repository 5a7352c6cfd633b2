package caldavtest

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed testdata/*.ics
var fixtures embed.FS

// LoadFixture returns the text of the bundled calendar resource name,
// e.g. "meeting.ics".
func LoadFixture(name string) (string, error) {
	data, err := fs.ReadFile(fixtures, "testdata/"+name)
	if err != nil {
		return "", fmt.Errorf("problems opening fixture %s: %w", name, err)
	}
	return string(data), nil
}

// MustLoadFixture is LoadFixture for test setup code.
func MustLoadFixture(name string) string {
	text, err := LoadFixture(name)
	if err != nil {
		panic(err)
	}
	return text
}

// FixtureNames lists the bundled calendar resources.
func FixtureNames() ([]string, error) {
	entries, err := fs.ReadDir(fixtures, "testdata")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}
