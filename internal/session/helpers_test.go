package session

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/pranavbafna586/MediMind/internal/domain"
	"github.com/pranavbafna586/MediMind/pkg/logger"
)

// pngHeader is enough of a PNG for type sniffing
var pngHeader = []byte{
	0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n',
	0x00, 0x00, 0x00, 0x0d, 'I', 'H', 'D', 'R',
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00,
}

func discardLogger() *slog.Logger {
	log, err := logger.New(io.Discard, "text", "debug")
	if err != nil {
		panic(err)
	}
	return log
}

func newTestSession(backend domain.ChatBackend, opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}
	return New(backend, opts)
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func writePNG(t *testing.T) string {
	t.Helper()
	return writeFile(t, "scan.png", pngHeader)
}
