package common

import (
	"math"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
)

const (
	loaderFPS       = 60
	loaderFrequency = 4.0
	loaderDamping   = 0.5
	// the tag turns around once it is this close to its target
	loaderSettle = 0.02
)

type LoaderFrameMsg time.Time

var loaderQuotes = []string{
	"프로필을 불러오는 중...",
	"이름표를 닦는 중...",
	"취미를 세어보는 중...",
	"Fetching your profile...",
	"A good name is worth waiting for.",
	"Almost there...",
}

// Loader slides a name tag across the screen on a spring while a tab waits
// for its first data.
type Loader struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
	active bool
	label  string
	quote  string
}

func NewLoader() Loader {
	return Loader{
		spring: harmonica.NewSpring(harmonica.FPS(loaderFPS), loaderFrequency, loaderDamping),
	}
}

// Start resets the animation. label is drawn inside the sliding tag.
func (l *Loader) Start(label string) tea.Cmd {
	if label == "" {
		label = "@"
	}
	l.active = true
	l.pos, l.vel, l.target = 0, 0, 1
	l.label = label
	l.quote = loaderQuotes[rand.Intn(len(loaderQuotes))]
	return l.tick()
}

func (l *Loader) Stop() { l.active = false }

func (l *Loader) tick() tea.Cmd {
	return tea.Tick(time.Second/loaderFPS, func(t time.Time) tea.Msg {
		return LoaderFrameMsg(t)
	})
}

// Update advances one frame and schedules the next while active.
func (l *Loader) Update() tea.Cmd {
	if !l.active {
		return nil
	}
	l.pos, l.vel = l.spring.Update(l.pos, l.vel, l.target)
	if math.Abs(l.target-l.pos) < loaderSettle {
		l.target = 1 - l.target
	}
	return l.tick()
}

func (l *Loader) View(width, height int) string {
	if width < 20 {
		width = 80
	}
	if height < 5 {
		height = 24
	}

	tag := TagStyle.Bold(true).Foreground(ColorPrimary).Render(l.label)
	track := max(width/2-lipgloss.Width(tag), 0)
	col := min(max(int(math.Round(l.pos*float64(track))), 0), track)
	lane := lipgloss.NewStyle().Width(width / 2).Render(strings.Repeat(" ", col) + tag)

	content := lipgloss.JoinVertical(lipgloss.Center,
		lane,
		"",
		QuoteStyle.Render(Truncate(l.quote, width-4)),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
