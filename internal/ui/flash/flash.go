package flash

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/idursun/scramble/internal/config"
	"github.com/idursun/scramble/internal/ui/common"
)

type expireMessageMsg struct {
	id uint64
}

type flashMessage struct {
	text   string
	sticky bool
	id     uint64
}

// Model keeps short notices below the scrambles. Non-sticky ones expire
// after the configured timeout.
type Model struct {
	messages     []flashMessage
	textStyle    lipgloss.Style
	warningStyle lipgloss.Style
	currentId    uint64
}

func New() *Model {
	return &Model{
		textStyle:    common.DefaultPalette.Get("flash text"),
		warningStyle: common.DefaultPalette.Get("flash warning"),
	}
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(expireMessageMsg); ok {
		m.removeByID(msg.id)
	}
	return nil
}

// Add shows text and returns the command that will expire it, if any.
func (m *Model) Add(text string) tea.Cmd {
	id := m.add(text, false)
	return m.expire(id)
}

// Warn shows text until it is dismissed.
func (m *Model) Warn(text string) {
	m.add(text, true)
}

func (m *Model) add(text string, sticky bool) uint64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	m.currentId++
	m.messages = append(m.messages, flashMessage{text: text, sticky: sticky, id: m.currentId})
	return m.currentId
}

func (m *Model) expire(id uint64) tea.Cmd {
	if id == 0 {
		return nil
	}
	timeout := config.GetExpiringFlashMessageTimeout(config.Current)
	if timeout <= 0 {
		return nil
	}
	return tea.Tick(timeout, func(time.Time) tea.Msg {
		return expireMessageMsg{id: id}
	})
}

func (m *Model) removeByID(id uint64) {
	for i, message := range m.messages {
		if message.id == id {
			m.messages = append(m.messages[:i], m.messages[i+1:]...)
			return
		}
	}
}

func (m *Model) Any() bool {
	return len(m.messages) > 0
}

func (m *Model) DeleteOldest() {
	if len(m.messages) > 0 {
		m.messages = m.messages[1:]
	}
}

func (m *Model) View() string {
	lines := make([]string, 0, len(m.messages))
	for _, message := range m.messages {
		style := m.textStyle
		if message.sticky {
			style = m.warningStyle
		}
		lines = append(lines, style.Render(message.text))
	}
	return strings.Join(lines, "\n")
}
