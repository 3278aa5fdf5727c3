package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/pranavbafna586/MediMind/internal/domain/entity"
)

const (
	userAvatar      = "👤"
	assistantAvatar = "🤖"
	pendingLabel    = "MediMind is thinking..."

	defaultTimeFormat = "15:04"
	minBubbleWidth    = 20
)

// RenderOptions controls transcript rendering
type RenderOptions struct {
	Width            int    // available columns; 0 disables wrapping and alignment
	TimeFormat       string // Go time layout for entry timestamps
	PendingIndicator string // shown in the placeholder bubble, e.g. a spinner frame
}

// RenderTranscript renders entries top to bottom, separated by blank lines
func RenderTranscript(entries []entity.MessageEntry, opts RenderOptions) string {
	rows := make([]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, RenderEntry(e, opts))
	}
	return strings.Join(rows, "\n\n")
}

// RenderEntry renders one entry. User entries show the bubble then the
// avatar, right-aligned; assistant entries show the avatar then the bubble.
func RenderEntry(e entity.MessageEntry, opts RenderOptions) string {
	if e.Pending {
		indicator := opts.PendingIndicator
		if indicator == "" {
			indicator = "…"
		}
		bubble := Styles.BotBody.Render(indicator + " " + Styles.Dim.Render(pendingLabel))
		return lipgloss.JoinHorizontal(lipgloss.Top, Styles.Avatar.Render(assistantAvatar), " ", bubble)
	}

	content := entryContent(e, opts)

	if e.IsUser() {
		row := lipgloss.JoinHorizontal(lipgloss.Top, Styles.UserBody.Render(content), " ", Styles.Avatar.Render(userAvatar))
		if opts.Width > 0 {
			return lipgloss.PlaceHorizontal(opts.Width, lipgloss.Right, row)
		}
		return row
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, Styles.Avatar.Render(assistantAvatar), " ", Styles.BotBody.Render(content))
}

// entryContent builds the bubble text: image chip, body, timestamp
func entryContent(e entity.MessageEntry, opts RenderOptions) string {
	var parts []string

	if e.HasImage() {
		parts = append(parts, Styles.ImageChip.Render(ImageLabel(e.Image)))
	}

	body := e.Body
	if w := bubbleWidth(opts.Width); w > 0 {
		body = WrapText(body, w)
	}
	parts = append(parts, body)

	layout := opts.TimeFormat
	if layout == "" {
		layout = defaultTimeFormat
	}
	parts = append(parts, Styles.Dim.Render(e.Timestamp.Format(layout)))

	return strings.Join(parts, "\n")
}

// bubbleWidth leaves room for the avatar, padding and border
func bubbleWidth(width int) int {
	if width <= 0 {
		return 0
	}
	w := width*3/4 - 6
	if w < minBubbleWidth {
		w = minBubbleWidth
	}
	return w
}

// ImageLabel describes an embedded image, e.g. "image/png · 12 kB"
func ImageLabel(dataURL string) string {
	mimeType, size, ok := entity.DataURLInfo(dataURL)
	if !ok {
		return "image"
	}
	return fmt.Sprintf("%s · %s", mimeType, humanize.Bytes(uint64(size)))
}

// RenderTranscriptTree renders a compact summary of a session, one node per turn
func RenderTranscriptTree(sessionID string, entries []entity.MessageEntry, timeFormat string) string {
	if timeFormat == "" {
		timeFormat = defaultTimeFormat
	}

	label := sessionID
	if len(label) > 8 {
		label = label[:8]
	}
	root := tree.Root(Styles.Bold.Render("Session " + label))

	if len(entries) == 0 {
		root.Child(Styles.Dim.Render("(empty)"))
		return root.String()
	}

	for _, e := range entries {
		if e.Pending {
			continue
		}
		who := Styles.Accent.Render(string(e.Role))
		text := firstLine(e.Body)
		if e.HasImage() {
			text = fmt.Sprintf("%s %s", Styles.ImageChip.Render(ImageLabel(e.Image)), text)
		}
		root.Child(fmt.Sprintf("%s %s %s", Styles.Dim.Render(e.Timestamp.Format(timeFormat)), who, text))
	}

	return root.String()
}

func firstLine(s string) string {
	line, _, cut := strings.Cut(s, "\n")
	if cut {
		return line + " …"
	}
	return line
}

// WrapText hard-wraps text to maxWidth display columns, keeping existing
// line breaks and handling wide characters
func WrapText(text string, maxWidth int) string {
	if maxWidth <= 10 {
		return text
	}

	lines := strings.Split(text, "\n")
	var result strings.Builder

	for i, line := range lines {
		if i > 0 {
			result.WriteString("\n")
		}
		result.WriteString(wrapLine(line, maxWidth))
	}

	return result.String()
}

// wrapLine wraps a single line, breaking at the last space when possible
func wrapLine(line string, maxWidth int) string {
	if runewidth.StringWidth(line) <= maxWidth {
		return line
	}

	var result strings.Builder
	var current []rune
	currentWidth := 0

	flush := func(upTo int) {
		result.WriteString(strings.TrimRight(string(current[:upTo]), " "))
		result.WriteString("\n")
		rest := current[upTo:]
		for len(rest) > 0 && rest[0] == ' ' {
			rest = rest[1:]
		}
		current = append([]rune(nil), rest...)
		currentWidth = runewidth.StringWidth(string(current))
	}

	for _, r := range line {
		rw := runewidth.RuneWidth(r)
		if currentWidth+rw > maxWidth && len(current) > 0 {
			breakAt := len(current)
			for i := len(current) - 1; i > 0; i-- {
				if current[i] == ' ' {
					breakAt = i
					break
				}
			}
			flush(breakAt)
		}
		current = append(current, r)
		currentWidth += rw
	}

	result.WriteString(string(current))
	return result.String()
}
