package entity

import "testing"

func TestDataURLInfo(t *testing.T) {
	tests := []struct {
		name     string
		dataURL  string
		wantMIME string
		wantSize int
		wantOK   bool
	}{
		{name: "no padding", dataURL: NewDataURL("image/png", []byte("abc")), wantMIME: "image/png", wantSize: 3, wantOK: true},
		{name: "two pads", dataURL: NewDataURL("image/jpeg", []byte("abcd")), wantMIME: "image/jpeg", wantSize: 4, wantOK: true},
		{name: "one pad", dataURL: NewDataURL("image/gif", []byte("abcde")), wantMIME: "image/gif", wantSize: 5, wantOK: true},
		{name: "empty payload", dataURL: "data:image/png;base64,", wantMIME: "image/png", wantSize: 0, wantOK: true},
		{name: "not a data url", dataURL: "https://example.com/a.png"},
		{name: "not base64", dataURL: "data:text/plain,hello"},
		{name: "no comma", dataURL: "data:image/png;base64"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mime, size, ok := DataURLInfo(tt.dataURL)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if mime != tt.wantMIME || size != tt.wantSize {
				t.Errorf("got (%q, %d), want (%q, %d)", mime, size, tt.wantMIME, tt.wantSize)
			}
		})
	}
}

func TestMessageEntry(t *testing.T) {
	e := MessageEntry{Role: RoleUser, Body: "hi"}
	if !e.IsUser() || e.HasImage() {
		t.Errorf("entry = %+v", e)
	}
	e = MessageEntry{Role: RoleAssistant, Image: NewDataURL("image/png", []byte{1})}
	if e.IsUser() || !e.HasImage() {
		t.Errorf("entry = %+v", e)
	}
}
