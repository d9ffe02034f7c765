package ui

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/idursun/scramble/internal/ui/common"
	"github.com/idursun/scramble/internal/ui/flash"
	"github.com/idursun/scramble/internal/ui/scrambletext"
)

type keyMap struct {
	Quit    key.Binding
	Replay  key.Binding
	Dismiss key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
		Replay: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "replay"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dismiss"),
		),
	}
}

// Model shows one scramble per target, stacked line by line.
type Model struct {
	items          []*scrambletext.Model
	flash          *flash.Model
	keyMap         keyMap
	exitOnComplete bool
	helpStyle      lipgloss.Style
	width          int
}

// NewUI builds the model. Notices stay on screen below the scrambles until
// the program exits.
func NewUI(items []*scrambletext.Model, exitOnComplete bool, notices ...string) *Model {
	m := &Model{
		items:          items,
		flash:          flash.New(),
		keyMap:         defaultKeyMap(),
		exitOnComplete: exitOnComplete,
		helpStyle:      common.DefaultPalette.Get("scramble help"),
	}
	for _, notice := range notices {
		m.flash.Warn(notice)
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.items))
	for _, item := range m.items {
		cmds = append(cmds, item.Init())
	}
	if m.exitOnComplete && m.allDone() {
		return tea.Quit
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, m.keyMap.Quit):
			return tea.Quit
		case key.Matches(msg, m.keyMap.Replay):
			return m.replay()
		case key.Matches(msg, m.keyMap.Dismiss):
			m.flash.DeleteOldest()
		}
		return nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return nil
	}

	cmds := []tea.Cmd{m.flash.Update(msg)}
	for _, item := range m.items {
		cmds = append(cmds, item.Update(msg))
	}
	if m.exitOnComplete && m.allDone() {
		return tea.Quit
	}
	return tea.Batch(cmds...)
}

func (m *Model) replay() tea.Cmd {
	cmds := []tea.Cmd{m.flash.Add("replaying")}
	for _, item := range m.items {
		cmds = append(cmds, item.Replay())
	}
	return tea.Batch(cmds...)
}

func (m *Model) allDone() bool {
	for _, item := range m.items {
		if !item.Done() {
			return false
		}
	}
	return true
}

func (m *Model) View() string {
	lines := make([]string, 0, len(m.items)+1)
	for _, item := range m.items {
		line := item.View()
		if m.width > 0 {
			line = lipgloss.NewStyle().MaxWidth(m.width).Render(line)
		}
		lines = append(lines, line)
	}
	if m.flash.Any() {
		lines = append(lines, m.flash.View())
	}
	if !m.exitOnComplete {
		lines = append(lines, m.helpView())
	}
	return strings.Join(lines, "\n")
}

func (m *Model) helpView() string {
	bindings := []key.Binding{m.keyMap.Replay}
	if m.flash.Any() {
		bindings = append(bindings, m.keyMap.Dismiss)
	}
	bindings = append(bindings, m.keyMap.Quit)
	var parts []string
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return m.helpStyle.Render(strings.Join(parts, " • "))
}

type wrapper struct {
	ui *Model
}

func (w *wrapper) Init() tea.Cmd {
	return w.ui.Init()
}

func (w *wrapper) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return w, w.ui.Update(msg)
}

func (w *wrapper) View() tea.View {
	return tea.NewView(w.ui.View())
}

func New(items []*scrambletext.Model, exitOnComplete bool, notices ...string) tea.Model {
	return &wrapper{ui: NewUI(items, exitOnComplete, notices...)}
}
