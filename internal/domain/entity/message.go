package entity

import (
	"encoding/base64"
	"strings"
	"time"
)

// Role identifies who authored a transcript entry
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// MessageEntry is one rendered conversation turn. Entries are never mutated
// after they are appended to a transcript.
type MessageEntry struct {
	ID        string    // entry ID (uuid)
	Role      Role      // user or assistant
	Body      string    // message text, rendered verbatim
	Image     string    // optional image as a data URL
	Timestamp time.Time // render time
	Pending   bool      // true only for the "assistant is composing" placeholder
}

// HasImage reports whether the entry carries an embedded image
func (e MessageEntry) HasImage() bool {
	return e.Image != ""
}

// IsUser reports whether the entry was authored by the user
func (e MessageEntry) IsUser() bool {
	return e.Role == RoleUser
}

// Attachment is the single pending image of a session
type Attachment struct {
	Name     string // base name of the source file
	MimeType string // sniffed MIME type, e.g. image/png
	Size     int64  // raw image size in bytes
	DataURL  string // data:<mime>;base64,<payload>
}

// NewDataURL encodes raw bytes as a base64 data URL
func NewDataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DataURLInfo extracts the MIME type and decoded payload size of a base64
// data URL. ok is false when the value is not a base64 data URL.
func DataURLInfo(dataURL string) (mimeType string, size int, ok bool) {
	rest, found := strings.CutPrefix(dataURL, "data:")
	if !found {
		return "", 0, false
	}
	header, payload, found := strings.Cut(rest, ",")
	if !found {
		return "", 0, false
	}
	mimeType, found = strings.CutSuffix(header, ";base64")
	if !found {
		return "", 0, false
	}

	size = base64.StdEncoding.DecodedLen(len(payload))
	size -= strings.Count(payload[max(0, len(payload)-2):], "=")
	return mimeType, size, true
}
