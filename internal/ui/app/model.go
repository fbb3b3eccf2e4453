package app

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogdto "eductl/internal/modules/catalog/dto"
	guarddto "eductl/internal/modules/guard/dto"
	querydto "eductl/internal/modules/query/dto"
	sessiondto "eductl/internal/modules/session/dto"
	"eductl/internal/ui/components"
	"eductl/internal/ui/theme"
	accountsview "eductl/internal/ui/views/accounts"
	examsview "eductl/internal/ui/views/exams"
	lessonsview "eductl/internal/ui/views/lessons"
	loginview "eductl/internal/ui/views/login"
	questionsview "eductl/internal/ui/views/questions"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type catalogPort interface {
	WatchLessons(ctx context.Context) (catalogdto.WatchOutput[catalogdto.LessonOutput], error)
	ListLessons(ctx context.Context) (catalogdto.ListOutput[catalogdto.LessonOutput], error)
	DeleteLesson(ctx context.Context, id string) error
	WatchExams(ctx context.Context) (catalogdto.WatchOutput[catalogdto.ExamOutput], error)
	ListExams(ctx context.Context) (catalogdto.ListOutput[catalogdto.ExamOutput], error)
	DeleteExam(ctx context.Context, id string) error
	WatchQuestions(ctx context.Context) (catalogdto.WatchOutput[catalogdto.QuestionOutput], error)
	ListQuestions(ctx context.Context) (catalogdto.ListOutput[catalogdto.QuestionOutput], error)
	DeleteQuestion(ctx context.Context, id string) error
	WatchAdmins(ctx context.Context) (catalogdto.WatchOutput[catalogdto.AccountOutput], error)
	WatchUsers(ctx context.Context) (catalogdto.WatchOutput[catalogdto.AccountOutput], error)
	ListAdmins(ctx context.Context) (catalogdto.ListOutput[catalogdto.AccountOutput], error)
	ListUsers(ctx context.Context) (catalogdto.ListOutput[catalogdto.AccountOutput], error)
	CreateAdmin(ctx context.Context, input catalogdto.CreateAdminInput) error
	Unwatch(ctx context.Context, subscriberID string)
}

type sessionPort interface {
	Login(ctx context.Context, input sessiondto.LoginInput) (sessiondto.LoginOutput, error)
	Logout(ctx context.Context) error
}

type guardPort interface {
	Evaluate(ctx context.Context, input guarddto.EvaluateInput) (guarddto.EvaluateOutput, error)
}

type queryPort interface {
	Events() <-chan querydto.Event
	Clear(ctx context.Context) error
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabLessons tabID = iota
	tabExams
	tabQuestions
	tabAccounts
	tabCount
)

var tabLabels = [tabCount]string{
	"Lessons", "Exams", "Questions", "Accounts",
}

var tabRoutes = [tabCount]string{
	"lessons", "exams", "questions", "accounts",
}

// ─── async messages ───────────────────────────────────────────────────────────

type guardCheckedMsg struct {
	out guarddto.EvaluateOutput
	err error
}

type queryEventMsg struct {
	event querydto.Event
	open  bool
}

type loggedOutMsg struct{ err error }

type mutationDoneMsg struct {
	label string
	err   error
}

type cacheClearedMsg struct{ err error }

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Delete  key.Binding
	Toggle  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete selected")),
		Toggle:  key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "admins/users")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Delete, k.Toggle},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns the route guard, tab routing,
// the help overlay, and the command palette. Business logic lives behind
// port interfaces; rendering is delegated to sub-views. The login screen is
// the only route served without a session, and passing through it resets
// all view state so nothing from a previous session survives.
type Model struct {
	catalog catalogPort
	session sessionPort
	guard   guardPort
	query   queryPort

	loginView     loginview.Model
	lessonsView   lessonsview.Model
	examsView     examsview.Model
	questionsView questionsview.Model
	accountsView  accountsview.Model

	activeTab tabID
	authed    bool
	checked   bool
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(catalog catalogPort, session sessionPort, guard guardPort, query queryPort) Model {
	m := Model{
		catalog:   catalog,
		session:   session,
		guard:     guard,
		query:     query,
		loginView: loginview.New(session),
		activeTab: tabLessons,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		status:    "ready",
	}
	m.resetConsoleViews()
	return m
}

// resetConsoleViews rebuilds every protected view from scratch. Called on
// construction and after each pass through the login screen.
func (m *Model) resetConsoleViews() {
	m.lessonsView = lessonsview.New(lessonsPortBridge{p: m.catalog})
	m.examsView = examsview.New(examsPortBridge{p: m.catalog})
	m.questionsView = questionsview.New(questionsPortBridge{p: m.catalog})
	m.accountsView = accountsview.New(accountsPortBridge{p: m.catalog})
	m.activeTab = tabLessons
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loginView.Init(),
		m.checkGuardCmd(tabRoutes[tabLessons]),
		m.waitForEventCmd(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case guardCheckedMsg:
		m.checked = true
		if msg.err != nil {
			m.status = "guard: " + msg.err.Error()
			m.authed = false
			return m, nil
		}
		wasAuthed := m.authed
		m.authed = msg.out.Allowed
		if m.authed && !wasAuthed {
			m.resetConsoleViews()
			m.status = "signed in"
			cmds = append(cmds, m.initConsoleCmd())
		}
		if !m.authed {
			m.status = "sign in required"
		}

	case loginview.LoggedInMsg:
		if msg.Err == nil {
			if msg.Message != "" {
				m.status = msg.Message
			}
			cmds = append(cmds, m.checkGuardCmd(tabRoutes[m.activeTab]))
		}
		var cmd tea.Cmd
		m.loginView, cmd = m.loginView.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case loggedOutMsg:
		if msg.err != nil {
			m.status = "logout: " + msg.err.Error()
			return m, nil
		}
		cmds = append(cmds, m.releaseSubscriptionsCmd())
		m.authed = false
		m.loginView = loginview.New(m.session)
		m.resetConsoleViews()
		m.status = "signed out"
		cmds = append(cmds, m.loginView.Init())
		return m, tea.Batch(cmds...)

	case mutationDoneMsg:
		if msg.err != nil {
			m.status = msg.label + " failed: " + msg.err.Error()
		} else {
			m.status = msg.label
		}

	case cacheClearedMsg:
		if msg.err != nil {
			m.status = "cache clear: " + msg.err.Error()
		} else {
			m.status = "cache cleared"
		}

	case queryEventMsg:
		if !msg.open {
			return m, nil
		}
		cmds = append(cmds, m.waitForEventCmd())
		switch msg.event.Kind {
		case querydto.EventSettle:
			if msg.event.Err != nil {
				m.status = msg.event.Label + " failed: " + msg.event.Err.Error()
			} else if msg.event.Label != "" {
				m.status = msg.event.Label
			}
		case querydto.EventUpdate:
			if m.authed {
				cmds = append(cmds, m.broadcastReload()...)
			}
		}
		return m, tea.Batch(cmds...)

	// View-owned messages route to their view regardless of the active tab,
	// so a background refresh lands even while the user is elsewhere.
	case lessonsview.WatchedMsg, lessonsview.LoadedMsg:
		var cmd tea.Cmd
		m.lessonsView, cmd = m.lessonsView.Update(msg)
		return m, cmd

	case examsview.WatchedMsg, examsview.LoadedMsg:
		var cmd tea.Cmd
		m.examsView, cmd = m.examsView.Update(msg)
		return m, cmd

	case questionsview.WatchedMsg, questionsview.LoadedMsg:
		var cmd tea.Cmd
		m.questionsView, cmd = m.questionsView.Update(msg)
		return m, cmd

	case accountsview.WatchedMsg, accountsview.LoadedMsg:
		var cmd tea.Cmd
		m.accountsView, cmd = m.accountsView.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		if !m.authed {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			break
		}

		// Yield to sub-view when its search filter is active.
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		case "d":
			if cmd := m.deleteSelectedCmd(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}

	// Propagate the message to the active screen.
	var tabCmd tea.Cmd
	if !m.authed {
		m.loginView, tabCmd = m.loginView.Update(msg)
		cmds = append(cmds, tabCmd)
		return m, tea.Batch(cmds...)
	}
	switch m.activeTab {
	case tabLessons:
		m.lessonsView, tabCmd = m.lessonsView.Update(msg)
	case tabExams:
		m.examsView, tabCmd = m.examsView.Update(msg)
	case tabQuestions:
		m.questionsView, tabCmd = m.questionsView.Update(msg)
	case tabAccounts:
		m.accountsView, tabCmd = m.accountsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if !m.authed {
		return m.loginView.View()
	}

	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabLessons:
		return m.lessonsView.View()
	case tabExams:
		return m.examsView.View()
	case tabQuestions:
		return m.questionsView.View()
	case tabAccounts:
		return m.accountsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "eductl  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "refresh":
		return m, tea.Batch(m.broadcastReload()...)

	case "lesson:delete":
		if len(parts) < 2 {
			m.status = "usage: lesson:delete <id>"
			return m, nil
		}
		return m, m.mutateCmd("lesson deleted", func(ctx context.Context) error {
			return m.catalog.DeleteLesson(ctx, parts[1])
		})

	case "exam:delete":
		if len(parts) < 2 {
			m.status = "usage: exam:delete <id>"
			return m, nil
		}
		return m, m.mutateCmd("exam deleted", func(ctx context.Context) error {
			return m.catalog.DeleteExam(ctx, parts[1])
		})

	case "question:delete":
		if len(parts) < 2 {
			m.status = "usage: question:delete <id>"
			return m, nil
		}
		return m, m.mutateCmd("question deleted", func(ctx context.Context) error {
			return m.catalog.DeleteQuestion(ctx, parts[1])
		})

	case "admin:create":
		if len(parts) < 5 {
			m.status = "usage: admin:create <name> <email> <phone> <password>"
			return m, nil
		}
		in := catalogdto.CreateAdminInput{
			FullName:        parts[1],
			Email:           parts[2],
			PhoneNumber:     parts[3],
			Password:        parts[4],
			ConfirmPassword: parts[4],
		}
		m.activeTab = tabAccounts
		return m, m.mutateCmd("admin created", func(ctx context.Context) error {
			return m.catalog.CreateAdmin(ctx, in)
		})

	case "cache:clear":
		return m, func() tea.Msg {
			return cacheClearedMsg{err: m.query.Clear(context.Background())}
		}

	case "logout":
		return m, func() tea.Msg {
			return loggedOutMsg{err: m.session.Logout(context.Background())}
		}

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) subViewFiltering() bool {
	switch m.activeTab {
	case tabLessons:
		return m.lessonsView.Filtering()
	case tabExams:
		return m.examsView.Filtering()
	case tabQuestions:
		return m.questionsView.Filtering()
	case tabAccounts:
		return m.accountsView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.loginView, _ = m.loginView.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	m.lessonsView, _ = m.lessonsView.Update(sz)
	m.examsView, _ = m.examsView.Update(sz)
	m.questionsView, _ = m.questionsView.Update(sz)
	m.accountsView, _ = m.accountsView.Update(sz)
}

// broadcastReload fans a reload out to every view; entries already fresh
// in the cache answer without touching the network.
func (m Model) broadcastReload() []tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.lessonsView, cmd = m.lessonsView.Update(lessonsview.ReloadMsg{})
	cmds = append(cmds, cmd)
	m.examsView, cmd = m.examsView.Update(examsview.ReloadMsg{})
	cmds = append(cmds, cmd)
	m.questionsView, cmd = m.questionsView.Update(questionsview.ReloadMsg{})
	cmds = append(cmds, cmd)
	m.accountsView, cmd = m.accountsView.Update(accountsview.ReloadMsg{})
	cmds = append(cmds, cmd)
	return cmds
}

func (m Model) deleteSelectedCmd() tea.Cmd {
	switch m.activeTab {
	case tabLessons:
		if id, ok := m.lessonsView.SelectedID(); ok {
			return m.mutateCmd("lesson deleted", func(ctx context.Context) error {
				return m.catalog.DeleteLesson(ctx, id)
			})
		}
	case tabExams:
		if id, ok := m.examsView.SelectedID(); ok {
			return m.mutateCmd("exam deleted", func(ctx context.Context) error {
				return m.catalog.DeleteExam(ctx, id)
			})
		}
	case tabQuestions:
		if id, ok := m.questionsView.SelectedID(); ok {
			return m.mutateCmd("question deleted", func(ctx context.Context) error {
				return m.catalog.DeleteQuestion(ctx, id)
			})
		}
	}
	return nil
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) checkGuardCmd(route string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.guard.Evaluate(context.Background(), guarddto.EvaluateInput{Route: route})
		return guardCheckedMsg{out: out, err: err}
	}
}

func (m Model) initConsoleCmd() tea.Cmd {
	return tea.Batch(
		m.lessonsView.Init(),
		m.examsView.Init(),
		m.questionsView.Init(),
		m.accountsView.Init(),
	)
}

func (m Model) releaseSubscriptionsCmd() tea.Cmd {
	return tea.Batch(
		m.lessonsView.ReleaseCmd(),
		m.examsView.ReleaseCmd(),
		m.questionsView.ReleaseCmd(),
		m.accountsView.ReleaseCmd(),
	)
}

func (m Model) mutateCmd(label string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{label: label, err: fn(context.Background())}
	}
}

// waitForEventCmd blocks on the cache event channel and re-arms itself
// after every message.
func (m Model) waitForEventCmd() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-m.query.Events()
		return queryEventMsg{event: event, open: ok}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// Each bridge narrows the broad catalog port to the minimal interface a
// sub-view needs, keeping view packages free of the wider surface.

type lessonsPortBridge struct{ p catalogPort }

func (b lessonsPortBridge) WatchLessons(ctx context.Context) (catalogdto.WatchOutput[catalogdto.LessonOutput], error) {
	return b.p.WatchLessons(ctx)
}
func (b lessonsPortBridge) ListLessons(ctx context.Context) (catalogdto.ListOutput[catalogdto.LessonOutput], error) {
	return b.p.ListLessons(ctx)
}
func (b lessonsPortBridge) Unwatch(ctx context.Context, subID string) { b.p.Unwatch(ctx, subID) }

type examsPortBridge struct{ p catalogPort }

func (b examsPortBridge) WatchExams(ctx context.Context) (catalogdto.WatchOutput[catalogdto.ExamOutput], error) {
	return b.p.WatchExams(ctx)
}
func (b examsPortBridge) ListExams(ctx context.Context) (catalogdto.ListOutput[catalogdto.ExamOutput], error) {
	return b.p.ListExams(ctx)
}
func (b examsPortBridge) Unwatch(ctx context.Context, subID string) { b.p.Unwatch(ctx, subID) }

type questionsPortBridge struct{ p catalogPort }

func (b questionsPortBridge) WatchQuestions(ctx context.Context) (catalogdto.WatchOutput[catalogdto.QuestionOutput], error) {
	return b.p.WatchQuestions(ctx)
}
func (b questionsPortBridge) ListQuestions(ctx context.Context) (catalogdto.ListOutput[catalogdto.QuestionOutput], error) {
	return b.p.ListQuestions(ctx)
}
func (b questionsPortBridge) Unwatch(ctx context.Context, subID string) { b.p.Unwatch(ctx, subID) }

type accountsPortBridge struct{ p catalogPort }

func (b accountsPortBridge) WatchAdmins(ctx context.Context) (catalogdto.WatchOutput[catalogdto.AccountOutput], error) {
	return b.p.WatchAdmins(ctx)
}
func (b accountsPortBridge) WatchUsers(ctx context.Context) (catalogdto.WatchOutput[catalogdto.AccountOutput], error) {
	return b.p.WatchUsers(ctx)
}
func (b accountsPortBridge) ListAdmins(ctx context.Context) (catalogdto.ListOutput[catalogdto.AccountOutput], error) {
	return b.p.ListAdmins(ctx)
}
func (b accountsPortBridge) ListUsers(ctx context.Context) (catalogdto.ListOutput[catalogdto.AccountOutput], error) {
	return b.p.ListUsers(ctx)
}
func (b accountsPortBridge) Unwatch(ctx context.Context, subID string) { b.p.Unwatch(ctx, subID) }

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
