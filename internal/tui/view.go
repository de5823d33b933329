package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.mode == ModeLogin {
		return lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			m.renderLogin(),
			lipgloss.WithWhitespaceChars(" "),
		)
	}

	mainContent := m.renderTimerList()

	switch m.mode {
	case ModeAddName, ModeAddTarget:
		mainContent = lipgloss.Place(
			m.width, m.height-2,
			lipgloss.Center, lipgloss.Center,
			m.renderModal(),
			lipgloss.WithWhitespaceChars(" "),
		)
	case ModeHelp:
		mainContent = m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left, mainContent, m.renderStatusBar())
}

func (m Model) renderLogin() string {
	var s string
	s += HeaderStyle.Render("Timer Dashboard") + "\n\n"
	s += "Password\n"
	s += m.input.View() + "\n"
	if m.session.Failed() {
		s += "\n" + ErrorStyle.Render(m.message)
	}
	s += "\n" + HelpStyle.Render("enter: unlock  esc: quit")
	return ModalStyle.Render(s)
}

func (m Model) renderTimerList() string {
	width := m.width - 4
	now := m.store.Now()
	var s string

	overdue := 0
	for _, t := range m.timers {
		if t.IsOverdue(now) {
			overdue++
		}
	}
	header := fmt.Sprintf("Timer Dashboard (%d timers, %d overdue)", len(m.timers), overdue)
	s += HeaderStyle.Render(header) + "\n"
	s += HelpStyle.Render("Sort timers by: "+m.sort.Label()) + "\n"
	s += lipgloss.NewStyle().Foreground(Border).Render(strings.Repeat("─", max(width-4, 0))) + "\n\n"

	if len(m.timers) == 0 {
		s += HelpStyle.Render("  No timers. Press 'a' to add one.")
	}

	nameWidth := max(width-40, 10)
	for i, t := range m.timers {
		cursor := "  "
		style := RowStyle
		if i == m.cursor {
			cursor = "❯ "
			style = RowSelectedStyle
		}

		elapsed := t.ElapsedDays(now)
		name := style.Render(cursor + fit(t.Name, nameWidth))
		days := DaysStyle(t.IsOverdue(now)).Render(fmt.Sprintf("%10s", plural(elapsed, "day")))
		target := HelpStyle.Render(fmt.Sprintf("  Target: %s", plural(t.TargetDays, "day")))

		s += name + days + target + "\n"
	}

	return ListStyle.Width(m.width).Height(max(m.height-2, 0)).Render(s)
}

func (m Model) renderModal() string {
	var title string
	switch m.mode {
	case ModeAddName:
		title = "New Timer"
	case ModeAddTarget:
		title = fmt.Sprintf("Target days for %q", m.pendingName)
	}

	content := HeaderStyle.Render(title) + "\n\n" + m.input.View()
	if m.mode == ModeAddTarget && m.message != "" {
		content += "\n" + ErrorStyle.Render(m.message)
	}
	content += "\n\n" + HelpStyle.Render("enter: confirm  esc: cancel")
	return ModalStyle.Width(50).Render(content)
}

func (m Model) renderStatusBar() string {
	help := "a:add  r:reset  d:delete  s:sort  ?:help  q:quit"
	if m.message != "" && m.mode == ModeNormal {
		help = m.message
	}
	return StatusBarStyle.Width(m.width).Render(help)
}

func (m Model) renderHelp() string {
	var s string
	s += HeaderStyle.Render("Keyboard Shortcuts") + "\n\n"
	for _, b := range helpBindings {
		h := b.Help()
		s += fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc)
	}
	s += "\n" + HelpStyle.Render("Press any key to close")
	return ListStyle.Width(m.width).Height(max(m.height-2, 0)).Render(s)
}
