package scrambletext

import (
	"log"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/idursun/scramble/internal/scramble"
	"github.com/idursun/scramble/internal/ui/common"
)

var lastID atomic.Uint64

type frameMsg struct {
	id         uint64
	generation int
}

// tickScheduler holds the callback of the pending frame until the matching
// frameMsg arrives.
type tickScheduler struct {
	next func()
}

func (s *tickScheduler) ScheduleNextTick(fn func()) {
	s.next = fn
}

type Model struct {
	id         uint64
	animator   *scramble.Animator
	playback   *scramble.Playback
	scheduler  *tickScheduler
	interval   time.Duration
	generation int
	text       string
	textStyle  lipgloss.Style
	doneStyle  lipgloss.Style
}

func New(animator *scramble.Animator, interval time.Duration) *Model {
	return &Model{
		id:        lastID.Add(1),
		animator:  animator,
		interval:  interval,
		textStyle: common.DefaultPalette.Get("scramble text"),
		doneStyle: common.DefaultPalette.Get("scramble done"),
	}
}

func (m *Model) Init() tea.Cmd {
	return m.Replay()
}

// Replay starts a new playback. Frames still in flight for the previous one
// are dropped when they arrive.
func (m *Model) Replay() tea.Cmd {
	m.generation++
	m.scheduler = &tickScheduler{}
	m.playback = m.animator.Play(m.scheduler, scramble.SinkFunc(m.setText))
	return m.scheduleFrame()
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case frameMsg:
		if msg.id != m.id || msg.generation != m.generation || m.scheduler == nil {
			return nil
		}
		next := m.scheduler.next
		m.scheduler.next = nil
		if next == nil {
			return nil
		}
		next()
		return m.scheduleFrame()
	}
	return nil
}

func (m *Model) scheduleFrame() tea.Cmd {
	if m.scheduler.next == nil {
		log.Printf("scramble %d: settled %q after %d ticks", m.id, m.text, m.playback.Ticks())
		return nil
	}
	id, generation := m.id, m.generation
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return frameMsg{id: id, generation: generation}
	})
}

func (m *Model) setText(text string) {
	m.text = text
}

// Done reports whether the current playback has written its final text.
func (m *Model) Done() bool {
	return m.playback != nil && m.playback.Done()
}

// Text is the latest frame, unstyled.
func (m *Model) Text() string {
	return m.text
}

func (m *Model) View() string {
	if m.Done() {
		return m.doneStyle.Render(m.text)
	}
	return m.textStyle.Render(m.text)
}
