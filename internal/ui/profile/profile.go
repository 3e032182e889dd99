package profile

import (
	"time"

	"github.com/76creates/stickers/flexbox"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/NotMugil/profile-tui/internal/api"
	"github.com/NotMugil/profile-tui/internal/common"
	"github.com/NotMugil/profile-tui/internal/notify"
	"github.com/NotMugil/profile-tui/internal/ui/nickname"
	"github.com/NotMugil/profile-tui/internal/ui/tags"
)

// ChangedToast is shown after the nickname was saved.
const ChangedToast = "닉네임이 변경되었습니다."

const (
	avatarWidth  = 20
	avatarHeight = 10
)

// Client is the part of the API the profile screen uses.
type Client interface {
	nickname.Service
	tags.ProfileSource
}

type profileLoadedMsg struct {
	profile   *api.Profile
	avatarArt string
	err       error
}

// Model is the profile screen model.
type Model struct {
	client  Client
	store   *notify.Store
	logger  *zap.Logger
	timeout time.Duration

	profile   *api.Profile
	avatarArt string
	spinner   spinner.Model
	loading   bool
	err       error

	editor  *nickname.Model
	tags    *tags.Model
	flexBox *flexbox.FlexBox
	width   int
	height  int
}

// New creates a new profile screen. profile may be nil; it is (re)loaded on
// Init either way.
func New(client Client, store *notify.Store, profile *api.Profile, logger *zap.Logger, timeout time.Duration) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(common.SpinnerStyle),
	)

	m := &Model{
		client:  client,
		store:   store,
		logger:  logger,
		timeout: timeout,
		spinner: s,
		loading: profile == nil,
		editor: nickname.New(client, "",
			nickname.WithLogger(logger.Named("nickname")),
			nickname.WithTimeout(timeout)),
		tags:    tags.NewStatic(nil),
		flexBox: newProfileFlexBox(),
	}
	if profile != nil {
		m.setProfile(profile)
	}
	return m
}

// newProfileFlexBox creates the layout: 1 row, 2 cells (40% left, 60% right).
func newProfileFlexBox() *flexbox.FlexBox {
	fb := flexbox.New(0, 0)
	row := fb.NewRow().AddCells(
		flexbox.NewCell(2, 1),
		flexbox.NewCell(3, 1),
	)
	fb.AddRows([]*flexbox.Row{row})
	return fb
}

func (m *Model) Init() tea.Cmd {
	if m.loading {
		return tea.Batch(m.spinner.Tick, m.loadProfile())
	}
	return m.loadProfile()
}

// SetSize updates the available terminal dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// InputFocused returns true while the nickname editor is open.
func (m *Model) InputFocused() bool {
	return m.editor.Editing()
}

// Loaded reports whether the first load has finished.
func (m *Model) Loaded() bool {
	return !m.loading
}

func (m *Model) Profile() *api.Profile { return m.profile }

func (m *Model) setProfile(p *api.Profile) {
	m.profile = p
	m.editor.SetNickname(p.Nickname)
	m.tags.SetTags(p.HobbyTags)
}

func (m *Model) loadProfile() tea.Cmd {
	client, timeout, logger := m.client, m.timeout, m.logger
	return func() tea.Msg {
		ctx, cancel := api.RequestContext(timeout)
		defer cancel()
		p, err := client.Profile(ctx)
		if err != nil {
			return profileLoadedMsg{err: err}
		}

		var avatarArt string
		if url := p.Avatar(); url != "" {
			art, artErr := common.RenderAvatar(ctx, url, avatarWidth, avatarHeight)
			if artErr != nil {
				logger.Debug("avatar unavailable", zap.String("url", url), zap.Error(artErr))
			} else {
				avatarArt = art
			}
		}
		return profileLoadedMsg{profile: p, avatarArt: avatarArt}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.logger.Warn("loading profile failed", zap.Error(msg.err))
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.setProfile(msg.profile)
		m.avatarArt = msg.avatarArt
		return m, nil

	case nickname.ChangedMsg:
		if m.profile != nil {
			p := *m.profile
			p.Nickname = msg.Nickname
			m.profile = &p
		}
		m.store.Show(ChangedToast)
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case tea.KeyMsg:
		if m.editor.Editing() {
			break
		}
		if m.loading {
			return m, nil
		}
		if key.Matches(msg, common.Keys.Reload) {
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.loadProfile())
		}
		if m.profile == nil {
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// HelpBindings returns the keys shown in the app's help bar.
func (m *Model) HelpBindings() []key.Binding {
	if m.editor.Editing() {
		return m.editor.HelpBindings()
	}
	return append(m.editor.HelpBindings(), common.Keys.Reload)
}
