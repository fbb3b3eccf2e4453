package lessons

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

// ─── port ────────────────────────────────────────────────────────────────────

type LessonsPort interface {
	WatchLessons(ctx context.Context) (catalogdto.WatchOutput[catalogdto.LessonOutput], error)
	ListLessons(ctx context.Context) (catalogdto.ListOutput[catalogdto.LessonOutput], error)
	Unwatch(ctx context.Context, subscriberID string)
}

// ─── messages ────────────────────────────────────────────────────────────────

type WatchedMsg struct {
	Out catalogdto.WatchOutput[catalogdto.LessonOutput]
	Err error
}

type LoadedMsg struct {
	Out catalogdto.ListOutput[catalogdto.LessonOutput]
	Err error
}

// ReloadMsg asks the view to re-read its list from the cache.
type ReloadMsg struct{}

// ─── list item ───────────────────────────────────────────────────────────────

type lessonItem struct {
	lesson catalogdto.LessonOutput
}

func (i lessonItem) Title() string { return i.lesson.Title }
func (i lessonItem) Description() string {
	return fmt.Sprintf("%s  %.0f EGP", i.lesson.ClassLevel, i.lesson.Price)
}
func (i lessonItem) FilterValue() string { return i.lesson.Title }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    LessonsPort
	list    list.Model
	detail  viewport.Model
	spinner spinner.Model
	subID   string
	stale   bool
	loading bool
	width   int
	height  int
}

func New(port LessonsPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Lessons"
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
			m.list.Title = "Lessons — " + msg.Err.Error()
			return m, nil
		}
		m.subID = msg.Out.SubscriberID
		m.stale = msg.Out.Stale
		cmds = append(cmds, m.setItems(msg.Out.Items))

	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Lessons — " + msg.Err.Error()
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
			m.spinner.View()+" Loading lessons…")
	}

	listW := m.width * 4 / 10
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

// SelectedID returns the current selection's lesson id, if any.
func (m Model) SelectedID() (string, bool) {
	if item, ok := m.list.SelectedItem().(lessonItem); ok {
		return item.lesson.ID, true
	}
	return "", false
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ReleaseCmd drops the live subscription. Issued when the view stops
// rendering, so invalidations no longer trigger refetches for it.
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

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = detailW - 4
	m.detail.Height = m.height - 4
}

func (m *Model) setItems(lessons []catalogdto.LessonOutput) tea.Cmd {
	title := "Lessons"
	if m.stale {
		title += " (stale)"
	}
	m.list.Title = title
	items := make([]list.Item, len(lessons))
	for i, lesson := range lessons {
		items[i] = lessonItem{lesson: lesson}
	}
	return m.list.SetItems(items)
}

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(lessonItem)
	if !ok {
		return theme.Muted.Render("Select a lesson to see details")
	}
	l := item.lesson
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(l.Title) + "\n\n")
	sb.WriteString(theme.Muted.Render("id:        ") + l.ID + "\n")
	sb.WriteString(theme.Muted.Render("class:     ") + l.ClassLevel + "\n")
	sb.WriteString(fmt.Sprintf("%s%.2f EGP\n", theme.Muted.Render("price:     "), l.Price))
	if l.ScheduledDate != "" {
		sb.WriteString(theme.Muted.Render("scheduled: ") + l.ScheduledDate + "\n")
	}
	if l.Video != "" {
		sb.WriteString(theme.Muted.Render("video:     ") + l.Video + "\n")
	}
	if l.Description != "" {
		sb.WriteString("\n" + l.Description + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render(":: lesson:delete <id>"))
	return sb.String()
}

func (m Model) watchCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.WatchLessons(context.Background())
		return WatchedMsg{Out: out, Err: err}
	}
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.ListLessons(context.Background())
		return LoadedMsg{Out: out, Err: err}
	}
}
