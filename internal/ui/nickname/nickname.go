// Package nickname is the inline nickname editor shown on the profile screen.
// A new nickname must be checked with the service before it can be saved.
package nickname

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"go.uber.org/zap"

	"github.com/NotMugil/profile-tui/internal/api"
	"github.com/NotMugil/profile-tui/internal/common"
	"github.com/NotMugil/profile-tui/internal/workflow"
)

const maxLength = 20

// Service is the remote side of the editor. *api.Client satisfies it.
type Service interface {
	CheckNickname(ctx context.Context, candidate string) (*api.NicknameCheck, error)
	UpdateNickname(ctx context.Context, nickname string) error
}

// ChangedMsg is emitted once after a nickname was saved.
type ChangedMsg struct {
	Nickname string
}

type checkedMsg struct {
	ticket workflow.Ticket
	result workflow.CheckResult
	err    error
}

type committedMsg struct {
	ticket workflow.Ticket
	err    error
}

// Model is the nickname editor.
type Model struct {
	service Service
	session *workflow.Session
	logger  *zap.Logger
	timeout time.Duration

	nickname string
	input    textinput.Model
	spinner  spinner.Model
	zoneID   string
	width    int

	// inside reports whether a mouse event landed on the editor.
	inside func(tea.MouseMsg) bool
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger used for failed and discarded calls.
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithTimeout bounds each service call.
func WithTimeout(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// WithMessages overrides the inline error texts.
func WithMessages(msgs workflow.Messages) Option {
	return func(m *Model) {
		m.session = workflow.NewSession(msgs)
	}
}

// New creates a closed editor for the current nickname.
func New(service Service, current string, opts ...Option) *Model {
	ti := textinput.New()
	ti.Placeholder = "새 닉네임"
	ti.CharLimit = maxLength
	ti.Width = 30
	ti.Cursor.Style = common.CursorStyle

	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(common.SpinnerStyle),
	)

	m := &Model{
		service:  service,
		session:  workflow.NewSession(workflow.Messages{}),
		logger:   zap.NewNop(),
		timeout:  api.DefaultTimeout,
		nickname: current,
		input:    ti,
		spinner:  s,
		zoneID:   zone.NewPrefix() + "nickname",
	}
	m.inside = func(msg tea.MouseMsg) bool {
		return zone.Get(m.zoneID).InBounds(msg)
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) SetSize(w int) {
	m.width = w
	m.input.Width = max(w-8, 10)
}

// SetNickname replaces the displayed nickname.
func (m *Model) SetNickname(v string) { m.nickname = v }

func (m *Model) Nickname() string { return m.nickname }

// Editing reports whether the edit surface is open. The parent screen routes
// keys here exclusively while it is.
func (m *Model) Editing() bool { return m.session.Editing() }

func (m *Model) Phase() workflow.Phase { return m.session.Phase() }

// Open starts a fresh edit.
func (m *Model) Open() tea.Cmd {
	m.session.Open()
	m.input.SetValue("")
	m.input.Focus()
	return textinput.Blink
}

// Cancel closes the edit surface. A call still in flight is discarded when
// it returns.
func (m *Model) Cancel() {
	m.session.Cancel()
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case checkedMsg:
		if !m.session.ResolveValidate(msg.ticket, msg.result, msg.err) {
			m.logger.Debug("discarding stale nickname check",
				zap.String("candidate", msg.ticket.Value))
			return m, nil
		}
		if msg.err != nil {
			m.logger.Warn("nickname check failed",
				zap.String("candidate", msg.ticket.Value), zap.Error(msg.err))
		}
		if m.session.Verified() {
			m.input.Blur()
		}
		return m, nil

	case committedMsg:
		value, ok, applied := m.session.ResolveCommit(msg.ticket, msg.err)
		if !applied {
			m.logger.Debug("discarding stale nickname update",
				zap.String("nickname", msg.ticket.Value))
			return m, nil
		}
		if !ok {
			m.logger.Warn("nickname update failed",
				zap.String("nickname", msg.ticket.Value), zap.Error(msg.err))
			m.input.Focus()
			return m, textinput.Blink
		}
		m.nickname = value
		m.input.Blur()
		m.input.SetValue("")
		m.logger.Info("nickname changed", zap.String("nickname", value))
		return m, func() tea.Msg { return ChangedMsg{Nickname: value} }

	case spinner.TickMsg:
		if m.session.Pending() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.MouseMsg:
		if m.session.Editing() &&
			msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft &&
			!m.inside(msg) {
			m.Cancel()
		}
		return m, nil

	case tea.KeyMsg:
		if !m.session.Editing() {
			if key.Matches(msg, common.Keys.Edit) {
				return m, m.Open()
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, common.Keys.Cancel):
			m.Cancel()
			return m, nil
		case key.Matches(msg, common.Keys.Submit):
			return m, m.submit()
		}

		if !m.session.CanEditDraft() {
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.session.SetDraft(m.input.Value())
		return m, cmd
	}
	return m, nil
}

// submit validates an unverified draft or commits a verified one.
func (m *Model) submit() tea.Cmd {
	if m.session.Verified() {
		t, ok := m.session.BeginCommit()
		if !ok {
			return nil
		}
		return tea.Batch(m.spinner.Tick, m.commit(t))
	}

	t, ok := m.session.BeginValidate()
	if !ok {
		return nil
	}
	return tea.Batch(m.spinner.Tick, m.check(t))
}

func (m *Model) check(t workflow.Ticket) tea.Cmd {
	service, timeout := m.service, m.timeout
	return func() tea.Msg {
		ctx, cancel := api.RequestContext(timeout)
		defer cancel()
		res, err := service.CheckNickname(ctx, t.Value)
		if err != nil {
			return checkedMsg{ticket: t, err: err}
		}
		return checkedMsg{ticket: t, result: workflow.CheckResult{
			Exists:  res.Exists,
			Message: res.Message,
		}}
	}
}

func (m *Model) commit(t workflow.Ticket) tea.Cmd {
	service, timeout := m.service, m.timeout
	return func() tea.Msg {
		ctx, cancel := api.RequestContext(timeout)
		defer cancel()
		return committedMsg{ticket: t, err: service.UpdateNickname(ctx, t.Value)}
	}
}

// HelpBindings returns the keys that apply in the current phase.
func (m *Model) HelpBindings() []key.Binding {
	if !m.session.Editing() {
		return []key.Binding{common.Keys.Edit}
	}
	submit := common.Keys.Submit
	if m.session.Verified() {
		submit.SetHelp(submit.Help().Key, "save")
	} else {
		submit.SetHelp(submit.Help().Key, "check")
	}
	return []key.Binding{submit, common.Keys.Cancel}
}

func (m *Model) View() string {
	if !m.session.Editing() {
		name := m.nickname
		if name == "" {
			name = "-"
		}
		return common.LabelStyle.Render("닉네임  ") + common.ValueStyle.Render(name)
	}

	var b strings.Builder
	b.WriteString(common.LabelStyle.Render("닉네임 변경"))
	b.WriteString("\n")
	if m.session.Verified() {
		b.WriteString(common.FocusedBorderStyle.Render(m.input.Value()))
	} else {
		b.WriteString(common.FocusedBorderStyle.Render(m.input.View()))
	}
	b.WriteString("\n")

	switch phase := m.session.Phase(); {
	case phase == workflow.PhaseValidating:
		b.WriteString(fmt.Sprintf("%s 확인 중...", m.spinner.View()))
	case phase == workflow.PhaseCommitting:
		b.WriteString(fmt.Sprintf("%s 저장 중...", m.spinner.View()))
	case m.session.Failed():
		b.WriteString(common.InputErrorStyle.Render(m.session.ErrorMessage()))
	case phase == workflow.PhaseVerified:
		b.WriteString(common.SuccessStyle.Render("✓ 사용 가능한 닉네임입니다."))
	default:
		b.WriteString(common.HelpStyle.Render(fmt.Sprintf("최대 %d자", maxLength)))
	}

	return zone.Mark(m.zoneID, b.String())
}
