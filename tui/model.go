// ABOUTME: Terminal UI model and core state management
// ABOUTME: Bubble Tea model implementation driving the generational engine live

// Package tui provides a live terminal progress view for one GA run, driven
// by the same generation-update channel the plain CLI status line consumes.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// maxHistory bounds how many past best-length samples are kept for the
// numeric history line.
const maxHistory = 30

type keyMap struct {
	Quit key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

// resultMsg carries the GA goroutine's return value into the Bubble Tea
// event loop once runGA unblocks.
type resultMsg struct {
	result Result
	err    error
}

type model struct {
	opts       Options
	updateChan chan Update
	runGA      func(chan<- Update) (Result, error)

	latest  Update
	history []int64
	haveAny bool

	done   bool
	result Result
	err    error
}

func initModel(opts Options, runGA func(chan<- Update) (Result, error)) model {
	return model{
		opts:       opts,
		updateChan: make(chan Update, 8),
		runGA:      runGA,
	}
}

// Run launches the GA under runGA and renders its progress until it
// terminates or the user quits early.
func Run(opts Options, runGA func(chan<- Update) (Result, error)) error {
	m := initModel(opts, runGA)

	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if fm, ok := finalModel.(model); ok && fm.err != nil {
		return fm.err
	}

	return nil
}

// Init starts the GA in the background and begins listening for its
// progress updates.
func (m model) Init() tea.Cmd {
	return tea.Batch(m.startRun(), waitForUpdate(m.updateChan))
}

// startRun runs the GA to completion in a goroutine, reporting the result
// once it returns.
func (m model) startRun() tea.Cmd {
	return func() tea.Msg {
		result, err := m.runGA(m.updateChan)
		close(m.updateChan)
		return resultMsg{result: result, err: err}
	}
}

// waitForUpdate waits for the next GA progress update and returns it as a
// message, or nil once the channel is closed.
func waitForUpdate(updateChan <-chan Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-updateChan
		if !ok {
			return nil
		}
		return u
	}
}
