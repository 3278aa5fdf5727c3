package commands

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pranavbafna586/MediMind/internal/domain"
	"github.com/pranavbafna586/MediMind/internal/session"
	"github.com/pranavbafna586/MediMind/pkg/logger"
)

var pngHeader = []byte{
	0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n',
	0x00, 0x00, 0x00, 0x0d, 'I', 'H', 'D', 'R',
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00,
}

func newTestSession(t *testing.T, backend domain.ChatBackend, opts session.Options) *session.Session {
	t.Helper()
	log, err := logger.New(io.Discard, "text", "error")
	if err != nil {
		t.Fatalf("logger.New() error = %v", err)
	}
	opts.Logger = log
	return session.New(backend, opts)
}

func writePNG(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scan.png")
	if err := os.WriteFile(path, pngHeader, 0600); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}
	return path
}
