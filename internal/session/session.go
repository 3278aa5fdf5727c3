package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pranavbafna586/MediMind/internal/domain"
	"github.com/pranavbafna586/MediMind/internal/domain/entity"
	"github.com/pranavbafna586/MediMind/pkg/logger"
)

// Options tune a session
type Options struct {
	// RequestTimeout bounds each backend call; zero waits indefinitely
	RequestTimeout time.Duration
	// KeepAttachmentOnFailure leaves the image attached after a failed analysis
	KeepAttachmentOnFailure bool
	// MaxImageBytes caps attachment size; zero disables the check
	MaxImageBytes int64
	// Now stamps transcript entries; defaults to time.Now
	Now func() time.Time
	// Logger defaults to slog.Default
	Logger *slog.Logger
}

// Session owns everything one chat window needs: the draft input, the
// attachment slot, the transcript and the in-flight gate.
type Session struct {
	id      string
	backend domain.ChatBackend
	opts    Options
	logger  *slog.Logger

	input       *Input
	attachments *AttachmentManager
	transcript  *Transcript

	mu         sync.Mutex
	submitting bool
	inflight   *Request
}

// New creates a session talking to backend
func New(backend domain.ChatBackend, opts Options) *Session {
	id := uuid.New().String()

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	log = logger.WithSessionID(log, id)

	input := NewInput()
	return &Session{
		id:          id,
		backend:     backend,
		opts:        opts,
		logger:      log,
		input:       input,
		attachments: NewAttachmentManager(input, opts.MaxImageBytes, log),
		transcript:  NewTranscript(opts.Now),
	}
}

// ID returns the session ID
func (s *Session) ID() string { return s.id }

// Input returns the draft input
func (s *Session) Input() *Input { return s.input }

// Attachments returns the attachment manager
func (s *Session) Attachments() *AttachmentManager { return s.attachments }

// Transcript returns the transcript
func (s *Session) Transcript() *Transcript { return s.transcript }

// Attach attaches the image at path synchronously
func (s *Session) Attach(ctx context.Context, path string) (*entity.Attachment, error) {
	return s.attachments.Attach(ctx, path)
}

// AttachAsync attaches the image at path in the background
func (s *Session) AttachAsync(ctx context.Context, path string) <-chan AttachResult {
	return s.attachments.AttachAsync(ctx, path)
}

// ClearAttachment discards the pending image, if any
func (s *Session) ClearAttachment() {
	s.attachments.Clear()
}

// Submitting reports whether a request is outstanding
func (s *Session) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}
