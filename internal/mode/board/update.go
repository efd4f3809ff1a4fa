package board

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/soundpad/internal/log"
)

// Update is the event dispatcher.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case TickMsg:
		m.runTick()
		return m, m.tickCmd()

	case copiedMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatUI, "clipboard copy failed", msg.err)
			m.pushFeed(fmt.Sprintf("Clipboard copy failed: %v", msg.err))
		} else {
			m.pushFeed("Bindings copied to clipboard")
		}
		return m, nil
	}

	return m, nil
}

// updateKey resolves a keypress in fixed precedence: exit, stop-all, view
// toggles, mode toggles, volume, help, copy, then the bindable set.
// Anything left reports as unbound.
func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		stopped := m.stopAll()
		m.quitting = true
		m.zones.Close()
		log.Info(log.CatUI, "quit requested", "stopped", stopped)
		return m, tea.Quit

	case key.Matches(msg, m.keys.StopAll):
		stopped := m.stopAll()
		m.pushFeed(fmt.Sprintf("Stopped all (%d sounds)", stopped))
		return m, nil

	case key.Matches(msg, m.keys.Bindings):
		m.showBindings = !m.showBindings
		return m, nil

	case key.Matches(msg, m.keys.Loop):
		if m.machine.ToggleLoop() {
			m.pushFeed("Loop mode ON")
		} else {
			m.pushFeed("Loop mode OFF")
		}
		return m, nil

	case key.Matches(msg, m.keys.Stack):
		if m.machine.ToggleStack() {
			m.pushFeed("Stack mode ON")
		} else {
			m.pushFeed("Stack mode OFF")
		}
		return m, nil

	case key.Matches(msg, m.keys.VolumeUp):
		if m.volume == nil {
			m.pushFeed("Volume control unavailable")
			return m, nil
		}
		m.pushFeed(fmt.Sprintf("Volume %d%%", m.volume.VolumeUp()))
		return m, nil

	case key.Matches(msg, m.keys.VolumeDown):
		if m.volume == nil {
			m.pushFeed("Volume control unavailable")
			return m, nil
		}
		m.pushFeed(fmt.Sprintf("Volume %d%%", m.volume.VolumeDown()))
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		text := BindingsText(m.cat)
		clip := m.clip
		return m, func() tea.Msg {
			return copiedMsg{err: clip.Copy(text)}
		}
	}

	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		if g, ok := m.cat.ByKey(msg.Runes[0]); ok {
			m.trigger(g)
			return m, nil
		}
	}

	m.pushFeed(fmt.Sprintf("No binding for %q", msg.String()))
	return m, nil
}

// updateMouse hit-tests pad zones: left replays the sequence forward,
// right replays the current take.
func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	for _, g := range m.cat.Groups() {
		if !m.zones.Get(padZoneID(g.Name)).InBounds(msg) {
			continue
		}
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.trigger(g)
		case tea.MouseButtonRight:
			m.replay(g)
		}
		return m, nil
	}
	return m, nil
}

func padZoneID(name string) string { return "pad:" + name }
