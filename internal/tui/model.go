package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/existflow/daysince/internal/auth"
	"github.com/existflow/daysince/internal/logger"
	"github.com/existflow/daysince/internal/model"
	"github.com/existflow/daysince/internal/store"
)

// Mode represents the current UI mode
type Mode int

const (
	ModeLogin Mode = iota
	ModeNormal
	ModeAddName
	ModeAddTarget
	ModeHelp
)

// Model is the dashboard model
type Model struct {
	store   *store.Store
	session *auth.Session
	timers  []model.Timer // display order

	// UI state
	width  int
	height int
	mode   Mode
	cursor int
	sort   model.SortCriterion

	// Input
	input       textinput.Model
	pendingName string

	message string
}

// NewModel creates the dashboard. Until session is authenticated only the
// password screen is rendered.
func NewModel(s *store.Store, session *auth.Session, sort model.SortCriterion) Model {
	logger.Info("Initializing TUI model")

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		store:   s,
		session: session,
		mode:    ModeNormal,
		sort:    sort,
		input:   ti,
	}

	if !session.Authenticated() {
		m.startLogin()
		return m
	}

	m.loadData()
	logger.Debug("TUI model initialized", logger.F("timers", len(m.timers)))
	return m
}

// loadData applies the sort to the store and refreshes the rows from it
func (m *Model) loadData() {
	m.store.Sort(m.sort)
	m.timers = m.store.Timers()
	if m.cursor >= len(m.timers) {
		m.cursor = len(m.timers) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) currentTimer() *model.Timer {
	if m.cursor >= 0 && m.cursor < len(m.timers) {
		return &m.timers[m.cursor]
	}
	return nil
}

func (m *Model) startLogin() {
	m.mode = ModeLogin
	m.input.SetValue("")
	m.input.Placeholder = "Password"
	m.input.EchoMode = textinput.EchoPassword
	m.input.EchoCharacter = '•'
	m.input.Focus()
}
