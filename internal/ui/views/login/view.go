package login

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "eductl/internal/modules/session/dto"
	"eductl/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type SessionPort interface {
	Login(ctx context.Context, input sessiondto.LoginInput) (sessiondto.LoginOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// LoggedInMsg bubbles up to the app model so it can re-run the route guard.
type LoggedInMsg struct {
	Message string
	Err     error
}

// ─── model ───────────────────────────────────────────────────────────────────

const (
	fieldIdentifier = iota
	fieldPassword
	fieldCount
)

type Model struct {
	port       SessionPort
	identifier textinput.Model
	password   textinput.Model
	focused    int
	submitting bool
	errText    string
	width      int
	height     int
}

func New(port SessionPort) Model {
	ident := textinput.New()
	ident.Placeholder = "email or phone number"
	ident.CharLimit = 128
	ident.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.CharLimit = 128
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	return Model{port: port, identifier: ident, password: pass}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case LoggedInMsg:
		m.submitting = false
		if msg.Err != nil {
			m.errText = msg.Err.Error()
			m.password.SetValue("")
		}
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.focused = (m.focused + 1) % fieldCount
			if m.focused == fieldIdentifier {
				m.password.Blur()
				return m, m.identifier.Focus()
			}
			m.identifier.Blur()
			return m, m.password.Focus()
		case "enter":
			if m.focused == fieldIdentifier {
				m.focused = fieldPassword
				m.identifier.Blur()
				return m, m.password.Focus()
			}
			m.submitting = true
			m.errText = ""
			return m, m.submitCmd()
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.identifier, cmd = m.identifier.Update(msg)
	cmds = append(cmds, cmd)
	m.password, cmd = m.password.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Edu-Master Admin") + "\n\n")
	sb.WriteString(theme.Muted.Render("sign in to continue") + "\n\n")
	sb.WriteString(m.identifier.View() + "\n")
	sb.WriteString(m.password.View() + "\n\n")
	switch {
	case m.submitting:
		sb.WriteString(theme.Muted.Render("signing in…"))
	case m.errText != "":
		sb.WriteString(theme.Bad.Render(m.errText))
	default:
		sb.WriteString(theme.Muted.Render("enter: submit  tab: switch field"))
	}

	box := theme.Pane.Width(48).Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) submitCmd() tea.Cmd {
	identifier := strings.TrimSpace(m.identifier.Value())
	password := m.password.Value()
	input := sessiondto.LoginInput{Password: password}
	if strings.Contains(identifier, "@") {
		input.Email = identifier
	} else {
		input.PhoneNumber = identifier
	}
	return func() tea.Msg {
		out, err := m.port.Login(context.Background(), input)
		return LoggedInMsg{Message: out.Message, Err: err}
	}
}
