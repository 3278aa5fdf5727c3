package session

import (
	"sync"

	"github.com/pranavbafna586/MediMind/internal/domain"
)

// Input holds the text field state: the draft message and its placeholder
type Input struct {
	mu          sync.RWMutex
	text        string
	placeholder string
}

// NewInput creates an empty input with the default placeholder
func NewInput() *Input {
	return &Input{placeholder: domain.PlaceholderDefault}
}

// SetText replaces the draft message
func (in *Input) SetText(text string) {
	in.mu.Lock()
	in.text = text
	in.mu.Unlock()
}

// Text returns the draft message
func (in *Input) Text() string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.text
}

// Clear empties the draft message
func (in *Input) Clear() {
	in.SetText("")
}

// Placeholder returns the hint shown while the draft is empty
func (in *Input) Placeholder() string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.placeholder
}

func (in *Input) setPlaceholder(p string) {
	in.mu.Lock()
	in.placeholder = p
	in.mu.Unlock()
}
