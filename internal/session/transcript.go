package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pranavbafna586/MediMind/internal/domain/entity"
)

// Transcript is the append-only list of conversation turns plus at most one
// pending placeholder, which is always rendered last.
type Transcript struct {
	mu       sync.RWMutex
	entries  []entity.MessageEntry
	pending  *entity.MessageEntry
	revision uint64
	now      func() time.Time
}

// NewTranscript creates an empty transcript. now defaults to time.Now.
func NewTranscript(now func() time.Time) *Transcript {
	if now == nil {
		now = time.Now
	}
	return &Transcript{now: now}
}

// Append adds a new entry stamped with the current time and returns it
func (t *Transcript) Append(body string, role entity.Role, image string) entity.MessageEntry {
	entry := entity.MessageEntry{
		ID:        uuid.New().String(),
		Role:      role,
		Body:      body,
		Image:     image,
		Timestamp: t.now(),
	}

	t.mu.Lock()
	t.entries = append(t.entries, entry)
	t.revision++
	t.mu.Unlock()

	return entry
}

// ShowPending inserts the composing placeholder. Returns false if one is
// already shown.
func (t *Transcript) ShowPending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending != nil {
		return false
	}
	t.pending = &entity.MessageEntry{
		ID:        uuid.New().String(),
		Role:      entity.RoleAssistant,
		Timestamp: t.now(),
		Pending:   true,
	}
	t.revision++
	return true
}

// ClearPending removes the placeholder. Returns false if none was shown.
func (t *Transcript) ClearPending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending == nil {
		return false
	}
	t.pending = nil
	t.revision++
	return true
}

// HasPending reports whether the placeholder is shown
func (t *Transcript) HasPending() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pending != nil
}

// Messages returns a copy of the real conversation turns
func (t *Transcript) Messages() []entity.MessageEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]entity.MessageEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Entries returns what a view renders: every turn followed by the
// placeholder when it is shown
func (t *Transcript) Entries() []entity.MessageEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]entity.MessageEntry, len(t.entries), len(t.entries)+1)
	copy(out, t.entries)
	if t.pending != nil {
		out = append(out, *t.pending)
	}
	return out
}

// Len returns the number of real turns
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Revision increases on every change. Views scroll to the end whenever it moves.
func (t *Transcript) Revision() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.revision
}
