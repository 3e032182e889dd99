package tags

import (
	"context"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/NotMugil/profile-tui/internal/api"
	"github.com/NotMugil/profile-tui/internal/common"
)

// EmptyText is shown when the profile has no hobby tags.
const EmptyText = "등록된 취미가 없습니다."


// ProfileSource loads the profile the tags are read from. *api.Client
// satisfies it.
type ProfileSource interface {
	Profile(ctx context.Context) (*api.Profile, error)
}

type loadedMsg struct {
	id   int64
	tags []string
	err  error
}

var nextID atomic.Int64

// Model displays a list of hobby tags.
type Model struct {
	id      int64
	source  ProfileSource
	logger  *zap.Logger
	timeout time.Duration

	tags    []string
	loading bool
	fetched bool
	width   int
}

// New creates a list that fetches its tags from source on Init.
func New(source ProfileSource, logger *zap.Logger, timeout time.Duration) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Model{
		id:      nextID.Add(1),
		source:  source,
		logger:  logger,
		timeout: timeout,
		tags:    []string{},
	}
}

// NewStatic creates a list seeded with tags. It never fetches.
func NewStatic(tags []string) *Model {
	m := New(nil, nil, 0)
	m.SetTags(tags)
	return m
}

// Init fetches the tags the first time it is called.
func (m *Model) Init() tea.Cmd {
	if m.source == nil || m.fetched {
		return nil
	}
	m.fetched = true
	m.loading = true
	return m.fetch()
}

func (m *Model) fetch() tea.Cmd {
	id, source, timeout := m.id, m.source, m.timeout
	return func() tea.Msg {
		ctx, cancel := api.RequestContext(timeout)
		defer cancel()
		p, err := source.Profile(ctx)
		if err != nil {
			return loadedMsg{id: id, err: err}
		}
		return loadedMsg{id: id, tags: p.HobbyTags}
	}
}

func (m *Model) SetTags(tags []string) {
	m.tags = append([]string{}, tags...)
	m.loading = false
}

func (m *Model) Tags() []string { return m.tags }

func (m *Model) Loading() bool { return m.loading }

func (m *Model) SetSize(w int) { m.width = w }

func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if msg, ok := msg.(loadedMsg); ok && msg.id == m.id {
		m.loading = false
		if msg.err != nil {
			m.logger.Warn("loading hobby tags failed", zap.Error(msg.err))
			m.tags = []string{}
			return m, nil
		}
		m.SetTags(msg.tags)
	}
	return m, nil
}

func (m *Model) View() string {
	if m.loading {
		return common.HelpStyle.Render("불러오는 중...")
	}
	if len(m.tags) == 0 {
		return common.HelpStyle.Render(EmptyText)
	}
	return common.RenderTags(m.tags, m.width)
}
