// Package tui is the terminal front end of richpad: a bubbletea model that
// renders the document sent by the server and turns keys and command lines
// into editing messages.
package tui

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/burntcarrot/richpad/commons"
	"github.com/burntcarrot/richpad/policy"
)

// ServerMsg wraps a message received from the server.
type ServerMsg commons.Message

// Config configures the model.
type Config struct {
	// Send writes a message to the server.
	Send func(commons.Message) error

	// Clipboard is the system clipboard.
	Clipboard Clipboard

	// ReadFile reads files for the load command. Defaults to os.ReadFile.
	ReadFile func(string) ([]byte, error)

	Logger logrus.FieldLogger
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#AF87FF"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
)

var actions = map[string]string{
	"bold":   "bold",
	"italic": "italic",
	"h1":     "header-1",
	"h2":     "header-2",
}

// Model is the bubbletea model of the client.
type Model struct {
	cfg   Config
	input textinput.Model

	doc       commons.Message
	clipboard map[string]string

	status   string
	failed   bool
	Quitting bool
}

// New returns a model with an empty document.
func New(cfg Config) Model {
	if cfg.ReadFile == nil {
		cfg.ReadFile = os.ReadFile
	}
	if cfg.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		cfg.Logger = l
	}

	ti := textinput.New()
	ti.Placeholder = "type text, or :command"
	ti.Prompt = "> "
	ti.Focus()

	return Model{cfg: cfg, input: ti}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Document returns the last document received from the server.
func (m Model) Document() commons.Message {
	return m.doc
}

// Status returns the status line.
func (m Model) Status() string {
	return m.status
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ServerMsg:
		m.receive(commons.Message(msg))
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.Quitting = true
			return m, tea.Quit
		case tea.KeyCtrlB:
			m.send(commons.Message{Type: commons.FormatMessage, Action: "bold"})
			return m, nil
		case tea.KeyCtrlT:
			m.send(commons.Message{Type: commons.FormatMessage, Action: "italic"})
			return m, nil
		case tea.KeyCtrlG:
			m.send(commons.Message{Type: commons.FormatMessage, Action: "header-1"})
			return m, nil
		case tea.KeyCtrlR:
			m.send(commons.Message{Type: commons.FormatMessage, Action: "header-2"})
			return m, nil
		case tea.KeyLeft, tea.KeyRight:
			if m.input.Value() == "" {
				m.moveCursor(msg.Type == tea.KeyRight)
				return m, nil
			}
		case tea.KeyEnter:
			line := m.input.Value()
			m.input.Reset()
			if m.execute(line) {
				m.Quitting = true
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) setStatus(format string, args ...interface{}) {
	m.status = fmt.Sprintf(format, args...)
	m.failed = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.failed = true
	m.cfg.Logger.WithError(err).Warn("command failed")
}

func (m *Model) send(msg commons.Message) {
	m.cfg.Logger.WithField("type", msg.Type).Debug("sending message")
	if err := m.cfg.Send(msg); err != nil {
		m.setError(fmt.Errorf("lost connection: %w", err))
	}
}

func (m *Model) receive(msg commons.Message) {
	switch msg.Type {
	case commons.DocMessage:
		m.doc = msg

	case commons.ClipboardMessage:
		m.clipboard = msg.Clipboard
		text := msg.Clipboard[policy.PlainMimeType]
		if m.cfg.Clipboard != nil {
			if err := m.cfg.Clipboard.WriteAll(text); err != nil {
				m.setError(fmt.Errorf("unable to write the system clipboard: %w", err))
				return
			}
		}
		m.setStatus("copied %d characters", utf8.RuneCountInString(text))

	case commons.ErrorMessage:
		m.setError(fmt.Errorf("server: %s", msg.Error))
	}
}

// moveCursor moves the cursor one rune, collapsing any selection.
func (m *Model) moveCursor(forward bool) {
	pos := 0
	if sel := m.doc.Selection; sel != nil {
		pos = sel.Start
		if forward {
			pos = sel.End
		}
		if sel.Collapsed() {
			if forward {
				pos++
			} else {
				pos--
			}
		}
	}

	if n := utf8.RuneCountInString(m.doc.Text); pos > n {
		pos = n
	}
	if pos < 0 {
		pos = 0
	}
	m.send(commons.Message{Type: commons.SelectMessage, Selection: &commons.Span{Start: pos, End: pos}})
}

// execute runs a command line and reports whether the client should quit.
func (m *Model) execute(line string) bool {
	cmd, err := ParseCommand(line)
	if err != nil {
		m.setError(err)
		return false
	}

	switch cmd.Name {
	case "q", "quit":
		return true

	case "type":
		m.send(commons.Message{Type: commons.InputMessage, Text: cmd.Text})

	case "focus":
		m.send(commons.Message{Type: commons.FocusMessage})

	case "select":
		span, err := parseSpan(cmd.Args)
		if err != nil {
			m.setError(err)
			return false
		}
		m.send(commons.Message{Type: commons.SelectMessage, Selection: &span})

	case "copy":
		m.send(commons.Message{Type: commons.CopyMessage})

	case "cut":
		m.send(commons.Message{Type: commons.CutMessage})

	case "paste":
		if m.cfg.Clipboard == nil {
			m.setError(fmt.Errorf("no system clipboard"))
			return false
		}
		text, err := m.cfg.Clipboard.ReadAll()
		if err != nil {
			m.setError(fmt.Errorf("unable to read the system clipboard: %w", err))
			return false
		}
		m.send(commons.Message{Type: commons.PasteMessage, Clipboard: map[string]string{policy.PlainMimeType: text}})

	case "paste-html":
		if len(m.clipboard) == 0 {
			m.setError(fmt.Errorf("nothing copied yet"))
			return false
		}
		m.send(commons.Message{Type: commons.PasteMessage, Clipboard: m.clipboard})

	case "load":
		data, err := m.cfg.ReadFile(cmd.Args[0])
		if err != nil {
			m.setError(err)
			return false
		}
		m.send(commons.Message{Type: commons.LoadMessage, HTML: string(data)})
		m.setStatus("loaded %s", cmd.Args[0])

	default:
		m.send(commons.Message{Type: commons.FormatMessage, Action: actions[cmd.Name]})
	}
	return false
}

func parseSpan(args []string) (commons.Span, error) {
	var pos [2]int
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return commons.Span{}, fmt.Errorf("invalid offset %q", a)
		}
		pos[i] = n
	}
	if len(args) == 1 {
		pos[1] = pos[0]
	}
	return commons.Span{Start: pos[0], End: pos[1]}.Normalize(), nil
}

func (m Model) View() string {
	if m.Quitting {
		return "\n  See you later!\n\n"
	}

	body, err := Render(m.doc.HTML, m.doc.Selection)
	if err != nil {
		body = errorStyle.Render(err.Error())
	}

	status := statusStyle.Render(m.status)
	if m.failed {
		status = errorStyle.Render(m.status)
	}

	return fmt.Sprintf(
		"%s\n\n%s\n\n%s\n%s\n%s",
		titleStyle.Render("richpad"),
		body,
		status,
		m.input.View(),
		statusStyle.Render("ctrl+b bold · ctrl+t italic · ctrl+g h1 · ctrl+r h2 · ←/→ move · esc quit"),
	) + "\n"
}
