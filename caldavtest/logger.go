package caldavtest

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/lmittmann/tint"
)

// NewLogger returns a tint logger writing to w. Colors are used only when w
// is a file such as os.Stderr.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	_, isFile := w.(*os.File)
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !isFile,
	}))
}

// TestLogger routes debug logs through t.Log, so they show up only for
// failing or verbose tests.
func TestLogger(t testing.TB) *slog.Logger {
	return NewLogger(testWriter{t}, slog.LevelDebug)
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
