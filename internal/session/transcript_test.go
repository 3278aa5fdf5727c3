package session

import (
	"testing"
	"time"

	"github.com/pranavbafna586/MediMind/internal/domain/entity"
)

func fixedClock() func() time.Time {
	t0 := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return t0.Add(time.Duration(n) * time.Minute)
	}
}

func TestTranscript_AppendOrder(t *testing.T) {
	tr := NewTranscript(fixedClock())

	tr.Append("one", entity.RoleUser, "")
	tr.Append("two", entity.RoleAssistant, "")
	tr.Append("three", entity.RoleUser, "data:image/png;base64,AA==")

	msgs := tr.Messages()
	want := []string{"one", "two", "three"}
	if len(msgs) != len(want) {
		t.Fatalf("Len = %d, want %d", len(msgs), len(want))
	}
	for i, body := range want {
		if msgs[i].Body != body {
			t.Errorf("entry %d = %q, want %q", i, msgs[i].Body, body)
		}
		if msgs[i].ID == "" {
			t.Errorf("entry %d has no ID", i)
		}
		if i > 0 && !msgs[i].Timestamp.After(msgs[i-1].Timestamp) {
			t.Errorf("entry %d timestamp not after entry %d", i, i-1)
		}
	}
	if !msgs[2].HasImage() {
		t.Error("image lost on append")
	}
}

func TestTranscript_Pending(t *testing.T) {
	tr := NewTranscript(nil)
	tr.Append("question", entity.RoleUser, "")

	if tr.ClearPending() {
		t.Error("ClearPending() = true with nothing shown")
	}
	if !tr.ShowPending() {
		t.Fatal("ShowPending() = false on first call")
	}
	if tr.ShowPending() {
		t.Error("ShowPending() = true while already shown")
	}

	// an entry appended while pending goes before the placeholder
	tr.Append("follow-up", entity.RoleUser, "")

	entries := tr.Entries()
	if len(entries) != 3 {
		t.Fatalf("Entries() has %d items, want 3", len(entries))
	}
	pending := 0
	for _, e := range entries {
		if e.Pending {
			pending++
		}
	}
	if pending != 1 {
		t.Errorf("%d pending placeholders, want 1", pending)
	}
	if !entries[2].Pending || entries[2].Role != entity.RoleAssistant {
		t.Errorf("last entry = %+v, want the placeholder", entries[2])
	}
	if tr.Len() != 2 || len(tr.Messages()) != 2 {
		t.Error("placeholder counted as a turn")
	}

	if !tr.ClearPending() {
		t.Fatal("ClearPending() = false while shown")
	}
	if tr.HasPending() || len(tr.Entries()) != 2 {
		t.Error("placeholder still present after ClearPending()")
	}
}

func TestTranscript_Revision(t *testing.T) {
	tr := NewTranscript(nil)
	rev := tr.Revision()

	steps := []struct {
		name    string
		do      func()
		changed bool
	}{
		{name: "append", do: func() { tr.Append("a", entity.RoleUser, "") }, changed: true},
		{name: "show pending", do: func() { tr.ShowPending() }, changed: true},
		{name: "show pending again", do: func() { tr.ShowPending() }, changed: false},
		{name: "clear pending", do: func() { tr.ClearPending() }, changed: true},
		{name: "clear pending again", do: func() { tr.ClearPending() }, changed: false},
	}

	for _, s := range steps {
		s.do()
		got := tr.Revision()
		if (got != rev) != s.changed {
			t.Errorf("%s: revision %d -> %d, changed want %v", s.name, rev, got, s.changed)
		}
		rev = got
	}
}
