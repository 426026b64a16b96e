// ABOUTME: Bubble Tea message handling for the progress view
// ABOUTME: Applies GA updates, final results, and the quit keybinding

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles incoming messages: generation progress, the final result,
// and the quit key.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
		return m, nil

	case Update:
		m.latest = msg
		m.haveAny = true
		m.history = append(m.history, msg.BestLength)
		if len(m.history) > maxHistory {
			m.history = m.history[len(m.history)-maxHistory:]
		}
		return m, waitForUpdate(m.updateChan)

	case resultMsg:
		m.done = true
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit

	default:
		return m, nil
	}
}
