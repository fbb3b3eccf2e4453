package questions

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogdto "eductl/internal/modules/catalog/dto"
	"eductl/internal/ui/theme"
)

type QuestionsPort interface {
	WatchQuestions(ctx context.Context) (catalogdto.WatchOutput[catalogdto.QuestionOutput], error)
	ListQuestions(ctx context.Context) (catalogdto.ListOutput[catalogdto.QuestionOutput], error)
	Unwatch(ctx context.Context, subscriberID string)
}

type WatchedMsg struct {
	Out catalogdto.WatchOutput[catalogdto.QuestionOutput]
	Err error
}

type LoadedMsg struct {
	Out catalogdto.ListOutput[catalogdto.QuestionOutput]
	Err error
}

type ReloadMsg struct{}

type questionItem struct {
	question catalogdto.QuestionOutput
}

func (i questionItem) Title() string {
	text := i.question.Text
	if len(text) > 60 {
		text = text[:60] + "…"
	}
	return text
}
func (i questionItem) Description() string {
	return fmt.Sprintf("%s  %dpt  exam %s", i.question.Type, i.question.Points, i.question.Exam)
}
func (i questionItem) FilterValue() string { return i.question.Text }

type Model struct {
	port    QuestionsPort
	list    list.Model
	detail  viewport.Model
	spinner spinner.Model
	subID   string
	stale   bool
	loading bool
	width   int
	height  int
}

func New(port QuestionsPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Questions"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, list: l, detail: vp, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.watchCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case WatchedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Questions — " + msg.Err.Error()
			return m, nil
		}
		m.subID = msg.Out.SubscriberID
		m.stale = msg.Out.Stale
		cmds = append(cmds, m.setItems(msg.Out.Items))

	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Questions — " + msg.Err.Error()
			return m, nil
		}
		m.stale = msg.Out.Stale
		cmds = append(cmds, m.setItems(msg.Out.Items))

	case ReloadMsg:
		cmds = append(cmds, m.loadCmd())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.loading {
		var lCmd tea.Cmd
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		m.detail.SetContent(m.renderDetail())

		var vCmd tea.Cmd
		m.detail, vCmd = m.detail.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading questions…")
	}

	listW := m.width / 2
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

func (m Model) SelectedID() (string, bool) {
	if item, ok := m.list.SelectedItem().(questionItem); ok {
		return item.question.ID, true
	}
	return "", false
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) ReleaseCmd() tea.Cmd {
	subID := m.subID
	if subID == "" {
		return nil
	}
	return func() tea.Msg {
		m.port.Unwatch(context.Background(), subID)
		return nil
	}
}

func (m *Model) resize() {
	listW := m.width / 2
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = detailW - 4
	m.detail.Height = m.height - 4
}

func (m *Model) setItems(questions []catalogdto.QuestionOutput) tea.Cmd {
	title := "Questions"
	if m.stale {
		title += " (stale)"
	}
	m.list.Title = title
	items := make([]list.Item, len(questions))
	for i, question := range questions {
		items[i] = questionItem{question: question}
	}
	return m.list.SetItems(items)
}

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(questionItem)
	if !ok {
		return theme.Muted.Render("Select a question to see details")
	}
	q := item.question
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Question") + "\n\n")
	sb.WriteString(q.Text + "\n\n")
	sb.WriteString(theme.Muted.Render("id:     ") + q.ID + "\n")
	sb.WriteString(theme.Muted.Render("type:   ") + q.Type + "\n")
	sb.WriteString(fmt.Sprintf("%s%d\n", theme.Muted.Render("points: "), q.Points))
	sb.WriteString(theme.Muted.Render("exam:   ") + q.Exam + "\n")
	if len(q.Options) > 0 {
		sb.WriteString("\n" + theme.Muted.Render("options:") + "\n")
		for _, option := range q.Options {
			marker := "  - "
			if option == q.CorrectAnswer {
				marker = theme.Good.Render("  ✓ ")
			}
			sb.WriteString(marker + option + "\n")
		}
	} else if q.CorrectAnswer != "" {
		sb.WriteString(theme.Muted.Render("answer: ") + q.CorrectAnswer + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render(":: question:delete <id>"))
	return sb.String()
}

func (m Model) watchCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.WatchQuestions(context.Background())
		return WatchedMsg{Out: out, Err: err}
	}
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.ListQuestions(context.Background())
		return LoadedMsg{Out: out, Err: err}
	}
}
