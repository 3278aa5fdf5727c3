package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/h2non/filetype"

	"github.com/pranavbafna586/MediMind/internal/domain"
	"github.com/pranavbafna586/MediMind/internal/domain/entity"
	"github.com/pranavbafna586/MediMind/pkg/logger"
)

// sniffLen is enough header bytes for filetype to recognise every image kind
const sniffLen = 262

// AttachResult is delivered once an asynchronous attach settles
type AttachResult struct {
	Path       string
	Attachment *entity.Attachment // nil on failure
	Err        error
}

// AttachmentManager keeps the single pending image of a session
type AttachmentManager struct {
	mu       sync.Mutex
	input    *Input
	current  *entity.Attachment
	maxBytes int64
	resets   uint64
	logger   *slog.Logger
}

// NewAttachmentManager creates an empty attachment slot bound to input
func NewAttachmentManager(input *Input, maxBytes int64, logger *slog.Logger) *AttachmentManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &AttachmentManager{
		input:    input,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// Attach decodes the image at path and makes it the current attachment.
// On failure the slot is left as it was.
func (m *AttachmentManager) Attach(ctx context.Context, path string) (*entity.Attachment, error) {
	att, err := m.Load(path)
	if err != nil {
		logger.WithError(m.logger, err).Warn("attachment rejected", "path", path)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.set(att)
	m.logger.Debug("attachment set", "name", att.Name, "mime", att.MimeType, "size", att.Size)
	return att, nil
}

// AttachAsync runs Attach in the background. The returned channel receives
// exactly one result and is then closed.
func (m *AttachmentManager) AttachAsync(ctx context.Context, path string) <-chan AttachResult {
	out := make(chan AttachResult, 1)
	go func() {
		defer close(out)
		att, err := m.Attach(ctx, path)
		out <- AttachResult{Path: path, Attachment: att, Err: err}
	}()
	return out
}

// Load reads and validates the image at path without touching the slot
func (m *AttachmentManager) Load(path string) (*entity.Attachment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.NewInvalidAttachmentError("cannot open file", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, domain.NewInvalidAttachmentError("cannot stat file", err)
	}
	if info.IsDir() {
		return nil, domain.NewInvalidAttachmentError(fmt.Sprintf("%s is a directory", path), nil)
	}
	if m.maxBytes > 0 && info.Size() > m.maxBytes {
		return nil, domain.NewInvalidAttachmentError(
			fmt.Sprintf("image is %d bytes, limit is %d", info.Size(), m.maxBytes), nil)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, domain.NewInvalidAttachmentError("cannot read file", err)
	}

	return Decode(filepath.Base(path), data)
}

// Decode turns raw bytes into an attachment, rejecting anything that is not an image
func Decode(name string, data []byte) (*entity.Attachment, error) {
	if len(data) == 0 {
		return nil, domain.NewInvalidAttachmentError("file is empty", nil)
	}

	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	if !filetype.IsImage(head) {
		return nil, domain.NewInvalidAttachmentError(fmt.Sprintf("%s is not an image", name), nil)
	}
	kind, err := filetype.Image(head)
	if err != nil {
		return nil, domain.NewInvalidAttachmentError("cannot detect image type", err)
	}

	return &entity.Attachment{
		Name:     name,
		MimeType: kind.MIME.Value,
		Size:     int64(len(data)),
		DataURL:  entity.NewDataURL(kind.MIME.Value, data),
	}, nil
}

func (m *AttachmentManager) set(att *entity.Attachment) {
	m.mu.Lock()
	m.current = att
	m.mu.Unlock()
	m.input.setPlaceholder(domain.PlaceholderWithImage)
}

// Clear discards the current attachment and resets the placeholder. It is
// safe to call when nothing is attached.
func (m *AttachmentManager) Clear() {
	m.mu.Lock()
	had := m.current != nil
	m.current = nil
	m.resets++
	m.mu.Unlock()

	m.input.setPlaceholder(domain.PlaceholderDefault)
	if had {
		m.logger.Debug("attachment cleared")
	}
}

// Current returns a copy of the current attachment, or nil
func (m *AttachmentManager) Current() *entity.Attachment {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	att := *m.current
	return &att
}

// HasAttachment reports whether an image is pending
func (m *AttachmentManager) HasAttachment() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current != nil
}

// Resets counts Clear calls; views compare it to know when to reset their
// file picker so the same file can be chosen again.
func (m *AttachmentManager) Resets() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resets
}
