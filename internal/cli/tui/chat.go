package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/pranavbafna586/MediMind/internal/cli/ui"
	"github.com/pranavbafna586/MediMind/internal/domain"
	"github.com/pranavbafna586/MediMind/internal/session"
)

// UI configuration constants
const (
	defaultInputWidth      = 100
	defaultViewportWidth   = 100
	defaultViewportHeight  = 30
	defaultWindowWidth     = 100
	defaultWindowHeight    = 40
	inputCharLimit         = 4000
	inputHeightReserved    = 3
	statusHeightReserved   = 3
	minContentHeight       = 10
	pickerHeight           = 12
	sessionIDDisplayLength = 8

	attachCommand = "/attach"
	clearCommand  = "/clear"
)

// ImageExtensions are the files the picker offers
var ImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp"}

type viewMode int

const (
	modeChat viewMode = iota
	modePicker
)

// Options tune the chat program
type Options struct {
	TimeFormat string
	StartDir   string // picker start directory; defaults to the working directory
}

// ChatProgram encapsulates the chat TUI program
type ChatProgram struct {
	model chatModel
}

// NewChatProgram creates a new chat program bound to sess
func NewChatProgram(ctx context.Context, sess *session.Session, opts Options) *ChatProgram {
	return &ChatProgram{model: initialModel(ctx, sess, opts)}
}

// Run starts the chat TUI program and blocks until the user quits
func (p *ChatProgram) Run() error {
	defer p.model.cancel()
	program := tea.NewProgram(p.model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// chatModel is the Bubble Tea model. The session owns all chat state; the
// model only holds widgets and what is needed to redraw them.
type chatModel struct {
	sess   *session.Session
	ctx    context.Context
	cancel context.CancelFunc

	input       textinput.Model
	contentView viewport.Model
	spinner     spinner.Model
	picker      filepicker.Model

	mode         viewMode
	inflight     *session.Request
	lastRevision uint64
	lastResets   uint64
	startDir     string
	timeFormat   string

	notice string
	err    error

	width  int
	height int
}

// initialModel creates the initial chat model
func initialModel(ctx context.Context, sess *session.Session, opts Options) chatModel {
	ctx, cancel := context.WithCancel(ctx)

	input := textinput.New()
	input.Placeholder = sess.Input().Placeholder()
	input.Focus()
	input.CharLimit = inputCharLimit
	input.Width = defaultInputWidth
	input.Prompt = "› "
	input.PromptStyle = ui.Styles.Prompt
	input.TextStyle = lipgloss.NewStyle()

	contentViewport := viewport.New(defaultViewportWidth, defaultViewportHeight)

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = ui.Styles.Accent

	picker := filepicker.New()
	picker.AllowedTypes = ImageExtensions
	picker.AutoHeight = false
	picker.Height = pickerHeight
	picker.CurrentDirectory = opts.StartDir
	if picker.CurrentDirectory == "" {
		if wd, err := os.Getwd(); err == nil {
			picker.CurrentDirectory = wd
		}
	}

	m := chatModel{
		sess:        sess,
		ctx:         ctx,
		cancel:      cancel,
		input:       input,
		contentView: contentViewport,
		spinner:     spin,
		picker:      picker,
		mode:        modeChat,
		startDir:    picker.CurrentDirectory,
		timeFormat:  opts.TimeFormat,
		width:       defaultWindowWidth,
		height:      defaultWindowHeight,
	}
	m.refreshContent()
	return m
}

// Init initializes the model (Bubble Tea interface)
func (m chatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.picker.Init())
}

// Message type definitions
type (
	submitDoneMsg struct {
		req   *session.Request
		reply string
		err   error
	}
	attachDoneMsg struct{ result session.AttachResult }
)

// Update processes messages and updates the model (Bubble Tea interface)
func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode == modePicker {
			return m, m.handlePickerKey(msg)
		}
		if cmd, handled := m.handleKeyPress(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.handleWindowResize(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.sess.Transcript().HasPending() {
			m.refreshContent()
		}
		return m, cmd

	case submitDoneMsg:
		m.finishSubmit(msg)

	case attachDoneMsg:
		m.finishAttach(msg.result)

	default:
		// directory listings and other picker internals
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input in chat mode. handled reports
// whether the key was consumed and must not reach the text input.
func (m *chatModel) handleKeyPress(msg tea.KeyMsg) (cmd tea.Cmd, handled bool) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.sess.Cancel()
		m.cancel()
		return tea.Quit, true

	case tea.KeyEnter:
		return m.submit(), true

	case tea.KeyCtrlO:
		m.mode = modePicker
		m.notice, m.err = "", nil
		return m.picker.Init(), true

	case tea.KeyCtrlR:
		m.clearAttachment()
		return nil, true

	case tea.KeyCtrlX:
		if m.sess.Cancel() {
			m.notice = "Cancelling request..."
		}
		return nil, true

	case tea.KeyUp:
		m.contentView.LineUp(1)
		return nil, true

	case tea.KeyDown:
		m.contentView.LineDown(1)
		return nil, true

	case tea.KeyPgUp:
		m.contentView.ViewUp()
		return nil, true

	case tea.KeyPgDown:
		m.contentView.ViewDown()
		return nil, true
	}

	return nil, false
}

// handlePickerKey routes keys to the file picker until a file is chosen
func (m *chatModel) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.sess.Cancel()
		m.cancel()
		return tea.Quit
	case tea.KeyEsc:
		m.mode = modeChat
		return nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.mode = modeChat
		m.notice = "Reading " + path + "..."
		return tea.Batch(cmd, attachCmd(m.ctx, m.sess, path))
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.err = fmt.Errorf("%s is not an image", path)
	}
	return cmd
}

// submit runs the slash commands or starts a submission
func (m *chatModel) submit() tea.Cmd {
	text := m.input.Value()
	trimmed := strings.TrimSpace(text)
	m.notice, m.err = "", nil

	switch {
	case trimmed == clearCommand:
		m.input.Reset()
		m.clearAttachment()
		return nil

	case strings.HasPrefix(trimmed, attachCommand+" "):
		path := strings.TrimSpace(strings.TrimPrefix(trimmed, attachCommand))
		m.input.Reset()
		m.notice = "Reading " + path + "..."
		return attachCmd(m.ctx, m.sess, path)
	}

	m.sess.Input().SetText(text)
	req, err := m.sess.Begin(m.ctx)
	if err != nil {
		if domain.IsBusy(err) {
			m.notice = "Still waiting for the previous reply"
		}
		return nil
	}

	m.input.Reset()
	m.inflight = req
	m.refreshContent()
	return executeCmd(m.sess, req)
}

// executeCmd performs the backend call off the UI goroutine
func executeCmd(sess *session.Session, req *session.Request) tea.Cmd {
	return func() tea.Msg {
		reply, err := sess.Execute(req)
		return submitDoneMsg{req: req, reply: reply, err: err}
	}
}

// attachCmd decodes an image off the UI goroutine
func attachCmd(ctx context.Context, sess *session.Session, path string) tea.Cmd {
	return func() tea.Msg {
		return attachDoneMsg{result: <-sess.AttachAsync(ctx, path)}
	}
}

// finishSubmit settles a completed request
func (m *chatModel) finishSubmit(msg submitDoneMsg) {
	m.sess.Finish(msg.req, msg.reply, msg.err)
	if m.inflight == msg.req {
		m.inflight = nil
	}
	m.notice = ""
	if msg.err != nil {
		m.err = msg.err
	}
	m.refreshContent()
}

// finishAttach reports the outcome of an attach
func (m *chatModel) finishAttach(res session.AttachResult) {
	if res.Err != nil {
		m.notice = ""
		m.err = res.Err
	} else {
		m.err = nil
		m.notice = fmt.Sprintf("Attached %s (%s)", res.Attachment.Name, humanize.Bytes(uint64(res.Attachment.Size)))
	}
	m.refreshContent()
}

func (m *chatModel) clearAttachment() {
	if !m.sess.Attachments().HasAttachment() {
		return
	}
	m.sess.ClearAttachment()
	m.notice = "Image removed"
	m.refreshContent()
}

// handleWindowResize handles window size changes
func (m *chatModel) handleWindowResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height

	contentHeight := msg.Height - inputHeightReserved - statusHeightReserved
	if contentHeight < minContentHeight {
		contentHeight = minContentHeight
	}

	m.contentView.Width = msg.Width
	m.contentView.Height = contentHeight
	m.input.Width = msg.Width - 3

	m.refreshContent()
}

// refreshContent re-renders the transcript and follows it to the end
// whenever it changed
func (m *chatModel) refreshContent() {
	m.input.Placeholder = m.sess.Input().Placeholder()

	// a cleared attachment sends the picker back to where it started
	if resets := m.sess.Attachments().Resets(); resets != m.lastResets {
		m.lastResets = resets
		m.picker.CurrentDirectory = m.startDir
	}

	entries := m.sess.Transcript().Entries()
	if len(entries) == 0 {
		m.contentView.SetContent(ui.Styles.Dim.Render("Ask a health question, or press ctrl+o to attach an image."))
		return
	}

	m.contentView.SetContent(ui.RenderTranscript(entries, ui.RenderOptions{
		Width:            m.contentView.Width,
		TimeFormat:       m.timeFormat,
		PendingIndicator: m.spinner.View(),
	}))

	if rev := m.sess.Transcript().Revision(); rev != m.lastRevision {
		m.lastRevision = rev
		m.contentView.GotoBottom()
	}
}

// View renders the UI (Bubble Tea interface)
func (m chatModel) View() string {
	if m.mode == modePicker {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			ui.Styles.Bold.Render("Attach an image"),
			ui.Styles.Dim.Render(m.picker.CurrentDirectory),
			"",
			m.picker.View(),
			"",
			m.renderStatusLine(),
			ui.Styles.Dim.Render("enter select • esc back"),
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderStatus(),
		m.contentView.View(),
		m.renderAttachment(),
		m.input.View(),
		m.renderHelp(),
	)
}

// renderStatus renders the top status bar
func (m chatModel) renderStatus() string {
	id := m.sess.ID()
	if len(id) > sessionIDDisplayLength {
		id = id[:sessionIDDisplayLength]
	}

	status := ui.Styles.Dim.Render("ready")
	if m.sess.Submitting() {
		status = m.spinner.View() + ui.Styles.Accent.Render(" waiting for reply")
	}

	return fmt.Sprintf("%s %s  %s\n%s",
		ui.Styles.Bold.Render("MediMind"),
		ui.Styles.Dim.Render("session "+id),
		status,
		m.renderStatusLine(),
	)
}

// renderStatusLine shows the latest notice or error
func (m chatModel) renderStatusLine() string {
	if m.err != nil {
		return ui.Styles.Error.Render("✗ " + domain.UserMessage(m.err))
	}
	if m.notice != "" {
		return ui.Styles.Dim.Render(m.notice)
	}
	return ""
}

// renderAttachment renders the pending image chip above the input
func (m chatModel) renderAttachment() string {
	att := m.sess.Attachments().Current()
	if att == nil {
		return ""
	}
	return ui.Styles.ImageChip.Render(fmt.Sprintf("🖼  %s · %s", att.Name, ui.ImageLabel(att.DataURL))) +
		ui.Styles.Dim.Render("  ctrl+r to remove")
}

// renderHelp renders the key bindings line
func (m chatModel) renderHelp() string {
	return ui.Styles.Dim.Render("enter send • ctrl+o image • ctrl+r remove image • ctrl+x cancel • ↑/↓ scroll • esc quit")
}
