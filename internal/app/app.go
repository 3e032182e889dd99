package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kevm/bubbleo/navstack"
	"github.com/kevm/bubbleo/window"
	zone "github.com/lrstanley/bubblezone"
	overlay "github.com/rmhubbert/bubbletea-overlay"
	"go.uber.org/zap"

	"github.com/NotMugil/profile-tui/internal/api"
	"github.com/NotMugil/profile-tui/internal/common"
	"github.com/NotMugil/profile-tui/internal/config"
	"github.com/NotMugil/profile-tui/internal/keystore"
	"github.com/NotMugil/profile-tui/internal/notify"
	"github.com/NotMugil/profile-tui/internal/ui/hobbies"
	"github.com/NotMugil/profile-tui/internal/ui/nickname"
	"github.com/NotMugil/profile-tui/internal/ui/profile"
	"github.com/NotMugil/profile-tui/internal/ui/setup"
	"github.com/NotMugil/profile-tui/internal/ui/toast"
)

// LoggedOutToast is shown after the stored token was removed.
const LoggedOutToast = "로그아웃되었습니다."

const logoutPrompt = "로그아웃할까요?"

// Screen is an interface that all screens implement.
type Screen interface {
	Init() tea.Cmd
	Update(tea.Msg) (tea.Model, tea.Cmd)
	View() string
}

// inputFocusable is implemented by screens that have text inputs.
type inputFocusable interface {
	InputFocused() bool
}

// sizable is implemented by screens that can adapt to terminal dimensions.
type sizable interface {
	SetSize(w, h int)
}

// loadable is implemented by screens that report when initial data is ready.
type loadable interface {
	Loaded() bool
}

// navTab defines a navigation tab.
type navTab struct {
	name   string
	zoneID string
}

var navTabs = []navTab{
	{"Profile", "nav-profile"},
	{"Hobbies", "nav-hobbies"},
}

// Options carries the dependencies of the root model.
type Options struct {
	Config config.Config
	Keys   *keystore.Store
	Store  *notify.Store
	Logger *zap.Logger
}

// Model is the root application model.
type Model struct {
	cfg        config.Config
	keystore   *keystore.Store
	store      *notify.Store
	logger     *zap.Logger
	nav        *navstack.Model
	win        *window.Model
	client     *api.Client
	user       *api.Profile
	spinner    spinner.Model
	keys       common.KeyMap
	help       help.Model
	loading    bool
	setupMode  bool
	setupScr   Screen
	width      int
	height     int
	activeTab  int
	confirm    common.Confirm
	toast      *toast.Model
	loader     common.Loader
	tabLoading bool
}

// keyringCheckMsg is returned after checking the keyring for an API token.
type keyringCheckMsg struct {
	token string
	err   error
}

// userLoadedMsg is returned after fetching the profile.
type userLoadedMsg struct {
	user *api.Profile
	err  error
}

// New creates the root application model.
func New(opts Options) Model {
	if opts.Store == nil {
		opts.Store = notify.New()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Keys == nil {
		opts.Keys = keystore.New(opts.Config.Keyring.Service)
	}

	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(common.SpinnerStyle),
	)
	w := window.New(120, 30, 0, 0)
	n := navstack.New(&w)

	return Model{
		cfg:       opts.Config,
		keystore:  opts.Keys,
		store:     opts.Store,
		logger:    opts.Logger,
		nav:       &n,
		win:       &w,
		spinner:   s,
		keys:      common.Keys,
		help:      common.NewHelp(),
		loading:   true,
		setupMode: true,
		toast:     toast.New(opts.Store, opts.Config.UI.ToastDuration),
		loader:    common.NewLoader(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.checkKeyringCmd(), m.toast.Init())
}

// Close releases the toast watcher.
func (m Model) Close() {
	m.toast.Close()
}

func (m Model) checkKeyringCmd() tea.Cmd {
	keys := m.keystore
	return func() tea.Msg {
		token, err := keys.Load()
		return keyringCheckMsg{token: token, err: err}
	}
}

func (m Model) newClient(token string) *api.Client {
	return api.NewClient(m.cfg.API.Endpoint, token,
		api.WithRateLimit(m.cfg.API.RequestsPerMinute),
		api.WithTimeout(m.cfg.API.Timeout),
	)
}

func (m Model) newSetup() *setup.Model {
	verify := setup.ClientVerifier(m.cfg.API.Endpoint,
		api.WithRateLimit(m.cfg.API.RequestsPerMinute),
		api.WithTimeout(m.cfg.API.Timeout),
	)
	s := setup.New(m.keystore, verify, m.cfg.API.Timeout, m.logger.Named("setup"))
	s.SetSize(m.width, m.height)
	return s
}

func (m Model) loadUser() tea.Cmd {
	client, timeout := m.client, m.cfg.API.Timeout
	return func() tea.Msg {
		ctx, cancel := api.RequestContext(timeout)
		defer cancel()
		user, err := client.Profile(ctx)
		return userLoadedMsg{user: user, err: err}
	}
}

// contentHeight returns the available height for screen content.
func (m Model) contentHeight() int {
	overhead := 4
	if m.help.ShowAll {
		overhead++
	}
	return m.height - overhead
}

// pushScreen pushes a new screen onto the navstack.
func (m Model) pushScreen(title string, screen Screen) (Model, tea.Cmd) {
	if s, ok := screen.(sizable); ok && m.width > 0 {
		s.SetSize(m.width, m.contentHeight())
	}
	item := navstack.NavigationItem{Title: title, Model: screen}
	cmd := m.nav.Push(item)
	return m, cmd
}

// switchTab clears the navstack and pushes the given tab screen.
func (m Model) switchTab(idx int) (Model, tea.Cmd) {
	if idx == m.activeTab && len(m.nav.StackSummary()) == 1 {
		cmd := m.nav.Update(navstack.ReloadCurrent{})
		if top := m.nav.Top(); top != nil {
			if s, ok := top.Model.(sizable); ok && m.width > 0 {
				s.SetSize(m.width, m.contentHeight())
			}
		}
		m.tabLoading = true
		loaderCmd := m.loader.Start(m.loaderLabel())
		return m, tea.Batch(cmd, loaderCmd)
	}
	m.activeTab = idx
	_ = m.nav.Clear()
	screen := m.createTabScreen(idx)

	if l, ok := screen.(loadable); ok && l.Loaded() {
		return m.pushScreen(navTabs[idx].name, screen)
	}

	m.tabLoading = true
	loaderCmd := m.loader.Start(m.loaderLabel())
	nm, pushCmd := m.pushScreen(navTabs[idx].name, screen)
	return nm, tea.Batch(pushCmd, loaderCmd)
}

func (m Model) loaderLabel() string {
	if m.user == nil {
		return ""
	}
	return "@" + m.user.DisplayName()
}

// createTabScreen instantiates a screen for the given tab index.
func (m Model) createTabScreen(idx int) Screen {
	timeout := m.cfg.API.Timeout
	switch idx {
	case 1:
		return hobbies.New(m.client, m.logger.Named("hobbies"), timeout)
	default:
		return profile.New(m.client, m.store, m.user, m.logger.Named("profile"), timeout)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The toast sits above every screen, so it sees input first.
	if cmd, handled := m.toast.Update(msg); handled {
		return m, cmd
	}

	switch msg := msg.(type) {
	case common.LoaderFrameMsg:
		if m.tabLoading {
			if top := m.nav.Top(); top != nil {
				if l, ok := top.Model.(loadable); ok && l.Loaded() {
					m.tabLoading = false
					m.loader.Stop()
					return m, nil
				}
			}
			return m, m.loader.Update()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.win.Width = msg.Width
		m.win.Height = msg.Height
		m.help.Width = msg.Width
		if m.setupMode && m.setupScr != nil {
			if s, ok := m.setupScr.(sizable); ok {
				s.SetSize(msg.Width, msg.Height)
			}
			return m, nil
		}
		if top := m.nav.Top(); top != nil {
			if s, ok := top.Model.(sizable); ok {
				s.SetSize(msg.Width, m.contentHeight())
			}
		}
		return m, nil

	case keyringCheckMsg:
		if msg.err != nil || msg.token == "" {
			if msg.err != nil && !errors.Is(msg.err, keystore.ErrNotFound) {
				m.logger.Warn("reading token from keyring failed", zap.Error(msg.err))
			}
			m.loading = false
			m.setupMode = true
			s := m.newSetup()
			m.setupScr = s
			return m, s.Init()
		}
		m.client = m.newClient(msg.token)
		return m, m.loadUser()

	case userLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.logger.Warn("loading profile failed", zap.Error(msg.err))
			m.setupMode = true
			s := m.newSetup()
			m.setupScr = s
			return m, s.Init()
		}
		m.user = msg.user
		m.setupMode = false
		m.setupScr = nil
		m.activeTab = 0
		_ = m.nav.Clear()
		return m.pushScreen(navTabs[0].name, m.createTabScreen(0))

	case setup.SetupCompleteMsg:
		m.client = m.newClient(msg.Token)
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadUser())

	case nickname.ChangedMsg:
		if m.user != nil {
			u := *m.user
			u.Nickname = msg.Nickname
			m.user = &u
		}
		return m, m.nav.Update(msg)

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		if m.setupMode {
			if m.setupScr != nil {
				updated, cmd := m.setupScr.Update(msg)
				m.setupScr = updated.(Screen)
				return m, cmd
			}
			return m, nil
		}
		return m, m.nav.Update(msg)

	case tea.MouseMsg:
		if m.setupMode || m.loading || m.confirm.Active {
			return m, nil
		}
		// The screen sees the press before any tab switch so an open editor
		// can treat a click on the tab bar as outside.
		cmd := m.nav.Update(msg)
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			for i, t := range navTabs {
				if zone.Get(t.zoneID).InBounds(msg) {
					nm, switchCmd := m.switchTab(i)
					return nm, tea.Batch(cmd, switchCmd)
				}
			}
		}
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.setupMode && m.setupScr != nil {
			updated, cmd := m.setupScr.Update(msg)
			m.setupScr = updated.(Screen)
			return m, cmd
		}

		if m.loading || m.tabLoading {
			return m, nil
		}

		if m.confirm.Active {
			if m.confirm.HandleKey(msg) {
				switch m.confirm.Action {
				case "logout":
					return m.logout()
				}
			}
			return m, nil
		}

		if top := m.nav.Top(); top != nil {
			if f, ok := top.Model.(inputFocusable); ok && f.InputFocused() {
				return m, m.nav.Update(msg)
			}
		}

		switch {
		case key.Matches(msg, common.Keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, common.Keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, common.Keys.Logout):
			m.confirm = common.NewConfirm(logoutPrompt, "logout")
			return m, nil
		case key.Matches(msg, common.Keys.Profile):
			return m.switchTab(0)
		case key.Matches(msg, common.Keys.Hobbies):
			return m.switchTab(1)
		case key.Matches(msg, common.Keys.NextTab):
			next := (m.activeTab + 1) % len(navTabs)
			return m.switchTab(next)
		case key.Matches(msg, common.Keys.PrevTab):
			prev := (m.activeTab - 1 + len(navTabs)) % len(navTabs)
			return m.switchTab(prev)
		}

		return m, m.nav.Update(msg)
	}

	if m.setupMode && m.setupScr != nil {
		updated, cmd := m.setupScr.Update(msg)
		m.setupScr = updated.(Screen)
		return m, cmd
	}

	if !m.loading {
		return m, m.nav.Update(msg)
	}

	return m, nil
}

func (m Model) logout() (Model, tea.Cmd) {
	if err := m.keystore.Delete(); err != nil {
		m.logger.Error("deleting token failed", zap.Error(err))
	}
	m.client = nil
	m.user = nil
	m.setupMode = true
	s := m.newSetup()
	m.setupScr = s
	_ = m.nav.Clear()
	m.store.Show(LoggedOutToast)
	return m, s.Init()
}

func (m Model) View() string {
	if m.loading {
		return common.AppStyle.Render(
			fmt.Sprintf("\n  %s Loading...\n", m.spinner.View()),
		)
	}

	if m.setupMode {
		if m.setupScr != nil {
			return zone.Scan(m.toast.Overlay(m.setupScr.View()))
		}
		return ""
	}

	if m.tabLoading {
		return zone.Scan(m.loader.View(m.width, m.height))
	}

	nav := m.renderNav()

	var content string
	if top := m.nav.Top(); top != nil {
		content = top.Model.View()
	}

	help := m.renderHelp()

	output := lipgloss.JoinVertical(lipgloss.Left,
		nav,
		content,
		help,
	)

	if m.confirm.Active {
		fg := m.confirm.View(50)
		output = overlay.Composite(fg, output, overlay.Center, overlay.Center, 0, 0)
	}

	output = m.toast.Overlay(output)

	return zone.Scan(output)
}

func (m Model) renderNav() string {
	var items []string
	for i, t := range navTabs {
		label := fmt.Sprintf(" %d %s ", i+1, t.name)
		var rendered string
		if i == m.activeTab {
			rendered = common.ActiveTabStyle.Render(label)
		} else {
			rendered = common.InactiveTabStyle.Render(label)
		}
		items = append(items, zone.Mark(t.zoneID, rendered))
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top, items...)

	hs := common.HelpStyles()
	shortcuts := common.HelpStyle.Render(
		hs.ShortKey.Render("?") + " " + hs.ShortDesc.Render("help") + "  " +
			hs.ShortKey.Render("ctrl+q") + " " + hs.ShortDesc.Render("logout") + "  " +
			hs.ShortKey.Render("q") + " " + hs.ShortDesc.Render("quit"),
	)

	navW := m.width - 2 // AppStyle padding
	if navW < 40 {
		navW = 80
	}
	gap := navW - lipgloss.Width(tabs) - lipgloss.Width(shortcuts)
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().PaddingLeft(1).Render(
		tabs + strings.Repeat(" ", gap) + shortcuts,
	)
}

func (m Model) renderHelp() string {
	var pageBindings []key.Binding
	if top := m.nav.Top(); top != nil {
		if hb, ok := top.Model.(common.HelpBindable); ok {
			pageBindings = hb.HelpBindings()
		}
	}

	var helpView string
	if m.help.ShowAll {
		var all []key.Binding
		all = append(all, pageBindings...)
		for _, group := range m.keys.FullHelp() {
			all = append(all, group...)
		}
		const colSize = 4
		var groups [][]key.Binding
		for i := 0; i < len(all); i += colSize {
			end := min(i+colSize, len(all))
			groups = append(groups, all[i:end])
		}
		helpView = m.help.FullHelpView(groups)
	} else {
		bindings := make([]key.Binding, 0, len(pageBindings)+3)
		bindings = append(bindings, pageBindings...)
		bindings = append(bindings, m.keys.ShortHelp()...)
		helpView = m.help.ShortHelpView(bindings)
	}

	var userPart string
	if m.user != nil {
		userPart = common.StatusBarStyle.Render("@" + m.user.DisplayName())
	}

	helpWidth := m.width
	if helpWidth <= 0 {
		helpWidth = 80
	}

	lines := strings.SplitN(helpView, "\n", 2)
	firstLine := lines[0]

	combined := lipgloss.NewStyle().Width(helpWidth).PaddingLeft(1).Render(
		lipgloss.JoinHorizontal(lipgloss.Top,
			firstLine,
			lipgloss.PlaceHorizontal(helpWidth-lipgloss.Width(firstLine)-1, lipgloss.Right, userPart),
		),
	)

	if len(lines) > 1 {
		return combined + "\n" + lines[1]
	}
	return combined
}
