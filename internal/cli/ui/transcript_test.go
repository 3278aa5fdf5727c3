package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/pranavbafna586/MediMind/internal/domain/entity"
)

var stamp = time.Date(2024, 3, 1, 9, 31, 0, 0, time.UTC)

func TestRenderEntry_User(t *testing.T) {
	e := entity.MessageEntry{Role: entity.RoleUser, Body: "hello", Timestamp: stamp}

	out := RenderEntry(e, RenderOptions{Width: 60})
	first := strings.Split(out, "\n")[0]

	bodyAt := strings.Index(first, "hello")
	avatarAt := strings.Index(first, userAvatar)
	if bodyAt < 0 || avatarAt < 0 || bodyAt > avatarAt {
		t.Errorf("want text then avatar on the first line, got %q", first)
	}
	if !strings.HasPrefix(first, " ") {
		t.Errorf("user entry not right-aligned: %q", first)
	}
	if !strings.Contains(out, "09:31") {
		t.Errorf("timestamp missing: %q", out)
	}
}

func TestRenderEntry_Assistant(t *testing.T) {
	e := entity.MessageEntry{Role: entity.RoleAssistant, Body: "drink water", Timestamp: stamp}

	out := RenderEntry(e, RenderOptions{Width: 60, TimeFormat: "15:04:05"})

	if !strings.HasPrefix(out, assistantAvatar) {
		t.Errorf("want avatar first, got %q", out)
	}
	if !strings.Contains(out, "drink water") || !strings.Contains(out, "09:31:00") {
		t.Errorf("body or timestamp missing: %q", out)
	}
}

func TestRenderEntry_Image(t *testing.T) {
	e := entity.MessageEntry{
		Role:      entity.RoleUser,
		Body:      "Please analyze this image",
		Image:     entity.NewDataURL("image/png", []byte("abc")),
		Timestamp: stamp,
	}

	out := RenderEntry(e, RenderOptions{})
	if !strings.Contains(out, "image/png · 3 B") {
		t.Errorf("image chip missing: %q", out)
	}
	if strings.Index(out, "image/png") > strings.Index(out, "Please analyze") {
		t.Errorf("image chip should precede the text: %q", out)
	}
}

func TestRenderEntry_Pending(t *testing.T) {
	e := entity.MessageEntry{Role: entity.RoleAssistant, Pending: true, Timestamp: stamp}

	out := RenderEntry(e, RenderOptions{PendingIndicator: "⣾"})
	if !strings.Contains(out, "⣾") || !strings.Contains(out, "thinking") {
		t.Errorf("pending bubble = %q", out)
	}
	if strings.Contains(out, "09:31") {
		t.Errorf("pending bubble should not show a timestamp: %q", out)
	}
}

func TestRenderTranscript_Order(t *testing.T) {
	entries := []entity.MessageEntry{
		{Role: entity.RoleUser, Body: "first", Timestamp: stamp},
		{Role: entity.RoleAssistant, Body: "second", Timestamp: stamp},
		{Role: entity.RoleAssistant, Pending: true, Timestamp: stamp},
	}

	out := RenderTranscript(entries, RenderOptions{Width: 80})
	a, b, c := strings.Index(out, "first"), strings.Index(out, "second"), strings.Index(out, pendingLabel)
	if a < 0 || b < a || c < b {
		t.Errorf("entries out of order: %q", out)
	}
}

func TestImageLabel(t *testing.T) {
	if got := ImageLabel("not a data url"); got != "image" {
		t.Errorf("ImageLabel() = %q, want image", got)
	}
	if got := ImageLabel(entity.NewDataURL("image/jpeg", make([]byte, 12000))); got != "image/jpeg · 12 kB" {
		t.Errorf("ImageLabel() = %q", got)
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth int
		want     string
	}{
		{name: "short line", text: "fits", maxWidth: 20, want: "fits"},
		{name: "breaks at space", text: "take two tablets after meals", maxWidth: 15, want: "take two\ntablets after\nmeals"},
		{name: "keeps newlines", text: "line one\nline two", maxWidth: 20, want: "line one\nline two"},
		{name: "tiny width disables wrapping", text: "a long line of text", maxWidth: 5, want: "a long line of text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WrapText(tt.text, tt.maxWidth); got != tt.want {
				t.Errorf("WrapText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapText_WideRunes(t *testing.T) {
	text := strings.Repeat("头痛", 20)

	for _, line := range strings.Split(WrapText(text, 16), "\n") {
		if w := runewidth.StringWidth(line); w > 16 {
			t.Errorf("line %q is %d columns wide", line, w)
		}
	}
}

func TestRenderTranscriptTree(t *testing.T) {
	entries := []entity.MessageEntry{
		{Role: entity.RoleUser, Body: "is this normal?", Image: entity.NewDataURL("image/png", []byte("abc")), Timestamp: stamp},
		{Role: entity.RoleAssistant, Body: "It looks fine.\nSee a doctor if it grows.", Timestamp: stamp},
		{Role: entity.RoleAssistant, Pending: true, Timestamp: stamp},
	}

	out := RenderTranscriptTree("0123456789abcdef", entries, "")

	for _, want := range []string{"Session 01234567", "is this normal?", "image/png", "It looks fine. …", "09:31"} {
		if !strings.Contains(out, want) {
			t.Errorf("tree missing %q: %q", want, out)
		}
	}
	if strings.Contains(out, "See a doctor") {
		t.Errorf("tree should show first lines only: %q", out)
	}
	if strings.Contains(out, pendingLabel) {
		t.Errorf("tree should skip the placeholder: %q", out)
	}

	if empty := RenderTranscriptTree("s", nil, ""); !strings.Contains(empty, "(empty)") {
		t.Errorf("empty tree = %q", empty)
	}
}
