package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/daysince/internal/logger"
)

// tickMsg refreshes elapsed days while the dashboard is open
type tickMsg time.Time

// Init initializes the model with a tick command
func (m Model) Init() tea.Cmd {
	if m.mode == ModeLogin {
		return tea.Batch(textinput.Blink, tickCmd())
	}
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Every(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.session.Authenticated() {
			m.loadData()
		}
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeLogin:
			return m.updateLogin(msg)
		case ModeAddName, ModeAddTarget:
			return m.updateInput(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}

		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// updateLogin feeds the password screen. Nothing else is reachable until
// the session authenticates.
func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Cancel), key.Matches(msg, keys.Escape):
		return m, tea.Quit

	case key.Matches(msg, keys.Enter):
		if m.session.Attempt(m.input.Value()) {
			logger.Info("Dashboard unlocked")
			m.input.SetValue("")
			m.input.EchoMode = textinput.EchoNormal
			m.input.Blur()
			m.mode = ModeNormal
			m.message = ""
			m.loadData()
			return m, nil
		}
		logger.Warn("Incorrect dashboard password")
		m.input.SetValue("")
		m.message = "😕 Password incorrect"
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleNormalKeys handles key presses on the dashboard
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.timers)-1 {
			m.cursor++
		}

	case key.Matches(msg, keys.Top):
		m.cursor = 0

	case key.Matches(msg, keys.Bottom):
		if len(m.timers) > 0 {
			m.cursor = len(m.timers) - 1
		}

	case key.Matches(msg, keys.Add):
		return m.startAdd()

	case key.Matches(msg, keys.Reset):
		m.handleReset()

	case key.Matches(msg, keys.Delete):
		m.handleDelete()

	case key.Matches(msg, keys.Sort):
		m.sort = m.sort.Next()
		m.loadData()
		m.message = "Sorted: " + m.sort.Label()

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp

	case key.Matches(msg, keys.Escape):
		m.message = ""
	}

	return m, nil
}

func (m Model) startAdd() (tea.Model, tea.Cmd) {
	m.mode = ModeAddName
	m.pendingName = ""
	m.message = ""
	m.input.SetValue("")
	m.input.Placeholder = "Timer name..."
	m.input.Focus()
	return m, textinput.Blink
}

// handleReset restarts the selected timer. Rows are addressed by ID so a
// re-sort between render and key press cannot hit another timer.
func (m *Model) handleReset() {
	t := m.currentTimer()
	if t == nil {
		return
	}
	id, name := t.ID, t.Name
	if _, err := m.store.Reset(context.Background(), id); err != nil {
		m.message = fmt.Sprintf("Error resetting timer: %v", err)
	} else {
		m.message = fmt.Sprintf("Reset: %s", name)
	}
	m.loadData()
	m.selectID(id)
}

func (m *Model) handleDelete() {
	t := m.currentTimer()
	if t == nil {
		return
	}
	name := t.Name
	if err := m.store.Delete(context.Background(), t.ID); err != nil {
		m.message = fmt.Sprintf("Error deleting timer: %v", err)
	} else {
		m.message = fmt.Sprintf("Deleted: %s", name)
	}
	m.loadData()
}

// selectID moves the cursor to the timer with id, if it is still listed
func (m *Model) selectID(id string) {
	for i, t := range m.timers {
		if t.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape), key.Matches(msg, keys.Cancel):
		m.mode = ModeNormal
		m.input.Blur()
		m.message = "Cancelled"
		return m, nil

	case key.Matches(msg, keys.Enter):
		value := strings.TrimSpace(m.input.Value())

		switch m.mode {
		case ModeAddName:
			if value == "" {
				m.mode = ModeNormal
				m.input.Blur()
				return m, nil
			}
			m.pendingName = value
			m.mode = ModeAddTarget
			m.input.SetValue("1")
			m.input.Placeholder = "Target days (≥ 1)"
			m.input.CursorEnd()
			return m, nil

		case ModeAddTarget:
			target, err := strconv.Atoi(value)
			if err != nil || target < 1 {
				m.message = "Target days must be a whole number of at least 1"
				return m, nil
			}
			added, err := m.store.Add(context.Background(), m.pendingName, target)
			if err != nil {
				m.message = fmt.Sprintf("Error adding timer: %v", err)
			} else {
				m.message = fmt.Sprintf("Added: %s", added.Name)
			}
			m.pendingName = ""
			m.mode = ModeNormal
			m.input.Blur()
			m.loadData()
			m.selectID(added.ID)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}
