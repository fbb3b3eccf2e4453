package accounts

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogdto "eductl/internal/modules/catalog/dto"
	"eductl/internal/ui/theme"
)

type AccountsPort interface {
	WatchAdmins(ctx context.Context) (catalogdto.WatchOutput[catalogdto.AccountOutput], error)
	WatchUsers(ctx context.Context) (catalogdto.WatchOutput[catalogdto.AccountOutput], error)
	ListAdmins(ctx context.Context) (catalogdto.ListOutput[catalogdto.AccountOutput], error)
	ListUsers(ctx context.Context) (catalogdto.ListOutput[catalogdto.AccountOutput], error)
	Unwatch(ctx context.Context, subscriberID string)
}

type WatchedMsg struct {
	Admins bool
	Out    catalogdto.WatchOutput[catalogdto.AccountOutput]
	Err    error
}

type LoadedMsg struct {
	Admins bool
	Out    catalogdto.ListOutput[catalogdto.AccountOutput]
	Err    error
}

type ReloadMsg struct{}

type accountItem struct {
	account catalogdto.AccountOutput
}

func (i accountItem) Title() string { return i.account.FullName }
func (i accountItem) Description() string {
	desc := i.account.Email
	if i.account.Role != "" {
		desc += "  " + i.account.Role
	}
	return desc
}
func (i accountItem) FilterValue() string { return i.account.FullName + " " + i.account.Email }

// Model lists admins by default; "u" flips between admins and users, which
// re-registers the subscription under the other tag type.
type Model struct {
	port    AccountsPort
	list    list.Model
	detail  viewport.Model
	spinner spinner.Model
	admins  bool
	subID   string
	stale   bool
	loading bool
	width   int
	height  int
}

func New(port AccountsPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Admins"
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

	return Model{port: port, list: l, detail: vp, spinner: sp, admins: true, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.watchCmd(true), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case WatchedMsg:
		if msg.Admins != m.admins {
			// Late answer for the mode we already left; release it.
			if msg.Err == nil && msg.Out.SubscriberID != "" {
				return m, m.unwatchCmd(msg.Out.SubscriberID)
			}
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.list.Title = m.modeLabel() + " — " + msg.Err.Error()
			return m, nil
		}
		m.subID = msg.Out.SubscriberID
		m.stale = msg.Out.Stale
		cmds = append(cmds, m.setItems(msg.Out.Items))

	case LoadedMsg:
		if msg.Admins != m.admins {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.list.Title = m.modeLabel() + " — " + msg.Err.Error()
			return m, nil
		}
		m.stale = msg.Out.Stale
		cmds = append(cmds, m.setItems(msg.Out.Items))

	case ReloadMsg:
		cmds = append(cmds, m.loadCmd(m.admins))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		if msg.String() == "u" && !m.Filtering() {
			return m.toggleMode()
		}
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
			m.spinner.View()+" Loading accounts…")
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

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) ReleaseCmd() tea.Cmd {
	subID := m.subID
	if subID == "" {
		return nil
	}
	return m.unwatchCmd(subID)
}

func (m Model) toggleMode() (Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.subID != "" {
		cmds = append(cmds, m.unwatchCmd(m.subID))
		m.subID = ""
	}
	m.admins = !m.admins
	m.loading = true
	cmds = append(cmds, m.watchCmd(m.admins), m.spinner.Tick)
	return m, tea.Batch(cmds...)
}

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = detailW - 4
	m.detail.Height = m.height - 4
}

func (m Model) modeLabel() string {
	if m.admins {
		return "Admins"
	}
	return "Users"
}

func (m *Model) setItems(accounts []catalogdto.AccountOutput) tea.Cmd {
	title := m.modeLabel()
	if m.stale {
		title += " (stale)"
	}
	m.list.Title = title
	items := make([]list.Item, len(accounts))
	for i, account := range accounts {
		items[i] = accountItem{account: account}
	}
	return m.list.SetItems(items)
}

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(accountItem)
	if !ok {
		return theme.Muted.Render("Select an account to see details\n\nu: toggle admins/users")
	}
	a := item.account
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(a.FullName) + "\n\n")
	sb.WriteString(theme.Muted.Render("id:    ") + a.ID + "\n")
	sb.WriteString(theme.Muted.Render("email: ") + a.Email + "\n")
	if a.PhoneNumber != "" {
		sb.WriteString(theme.Muted.Render("phone: ") + a.PhoneNumber + "\n")
	}
	if a.ClassLevel != "" {
		sb.WriteString(theme.Muted.Render("class: ") + a.ClassLevel + "\n")
	}
	sb.WriteString(theme.Muted.Render("role:  ") + a.Role + "\n")
	if a.IsVerified {
		sb.WriteString(theme.Good.Render("verified") + "\n")
	} else {
		sb.WriteString(theme.Muted.Render("unverified") + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("u: toggle admins/users  :: admin:create"))
	return sb.String()
}

func (m Model) watchCmd(admins bool) tea.Cmd {
	return func() tea.Msg {
		if admins {
			out, err := m.port.WatchAdmins(context.Background())
			return WatchedMsg{Admins: true, Out: out, Err: err}
		}
		out, err := m.port.WatchUsers(context.Background())
		return WatchedMsg{Admins: false, Out: out, Err: err}
	}
}

func (m Model) loadCmd(admins bool) tea.Cmd {
	return func() tea.Msg {
		if admins {
			out, err := m.port.ListAdmins(context.Background())
			return LoadedMsg{Admins: true, Out: out, Err: err}
		}
		out, err := m.port.ListUsers(context.Background())
		return LoadedMsg{Admins: false, Out: out, Err: err}
	}
}

func (m Model) unwatchCmd(subID string) tea.Cmd {
	return func() tea.Msg {
		m.port.Unwatch(context.Background(), subID)
		return nil
	}
}
