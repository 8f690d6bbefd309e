package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/workplan/internal/constants"
	"github.com/julianstephens/workplan/internal/render"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateAddAction:
		content = m.viewAddForm()
	case constants.StateWeight:
		if m.weightCycle < 0 {
			content = m.place(dialogStyle.Render(m.form.View()))
		} else {
			content = m.viewInput("Set weight")
		}
	case constants.StateRename:
		content = m.viewInput("Rename action")
	case constants.StateDate:
		content = m.viewInput("Plan date")
	case constants.StateConfirmation:
		content = m.viewConfirmation()
	default:
		content = m.viewBoard()
	}

	return docStyle.Render(content)
}

func (m Model) viewHeader() string {
	date := m.store.PlanDate()
	if date == "" {
		date = "____-__-__"
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render(render.DefaultTitle),
		"  ",
		dateStyle.Render(date),
	)
}

func (m Model) viewBoard() string {
	status := ""
	if m.status != "" {
		status = statusStyle.Render(m.status)
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		"",
		m.board.View(),
		"",
		status,
		m.help.View(m),
	)
}

func (m Model) viewAddForm() string {
	style := dialogStyle
	if m.flash {
		style = flashDialogStyle
	}
	body := m.form.View()
	if m.flash {
		body = lipgloss.JoinVertical(lipgloss.Left, body, dangerStyle.Render("Name is required"))
	}
	return m.place(style.Render(body))
}

func (m Model) viewInput(title string) string {
	return m.place(dialogStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(title),
		"",
		m.input.View(),
		"",
		warningStyle.Render("enter save • esc cancel"),
	)))
}

func (m Model) viewConfirmation() string {
	return m.place(lipgloss.JoinVertical(lipgloss.Center,
		dangerStyle.Render(m.confirmMessage),
		"",
		"[y] Yes",
		"[n] No",
	))
}

func (m Model) place(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width-4, m.height-2,
		lipgloss.Center, lipgloss.Center,
		content,
	)
}
