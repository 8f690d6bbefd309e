package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/workplan/internal/constants"
	"github.com/julianstephens/workplan/internal/logger"
	"github.com/julianstephens/workplan/internal/plan"
	"github.com/julianstephens/workplan/internal/tui/components/board"
)

// Rows above the board: top padding, header and a blank line
const (
	boardOffsetX = 2
	boardOffsetY = 3
)

type flashDoneMsg struct {
	seq int
}

type printDoneMsg struct {
	path string
	err  error
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.board.SetSize(msg.Width - 2*boardOffsetX)
		m.board.SetOrigin(boardOffsetX, boardOffsetY)
		return m, nil
	}

	switch msg := msg.(type) {
	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flash = false
		}
		return m, nil
	case printDoneMsg:
		if msg.err != nil {
			logger.Error("Failed to print plan", "error", msg.err)
			m.status = fmt.Sprintf("Print failed: %v", msg.err)
		} else {
			m.status = "Sent to browser: " + msg.path
		}
		return m, nil
	case constants.ConfirmationMsg:
		m.confirmMessage = msg.Message
		m.pendingAction = msg.Action
		m.state = constants.StateConfirmation
		return m, nil
	}

	switch m.state {
	case constants.StateAddAction:
		return m.updateAddForm(msg)
	case constants.StateWeight:
		if m.weightCycle < 0 {
			return m.updateWeightForm(msg)
		}
		return m.updateInput(msg)
	case constants.StateRename, constants.StateDate:
		return m.updateInput(msg)
	case constants.StateConfirmation:
		return m.updateConfirmation(msg)
	}

	return m.updateBoard(msg)
}

func (m Model) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.status = ""
		if !m.board.Dragging() {
			switch {
			case key.Matches(msg, m.keys.Quit):
				m.quitting = true
				return m, tea.Quit
			case key.Matches(msg, m.keys.Help):
				m.help.ShowAll = !m.help.ShowAll
				return m, nil
			}
		} else if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case board.AddActionMsg:
		m.addForm = m.newAddFormModel()
		m.form = newAddForm(m.addForm)
		m.flash = false
		m.state = constants.StateAddAction
		return m, m.form.Init()

	case board.RenameActionMsg:
		a, ok := m.store.Action(msg.ID)
		if !ok {
			return m, nil
		}
		m.editingID = a.ID
		m.state = constants.StateRename
		return m, m.startInput("Name: ", a.Name, "")

	case board.WeightActionMsg:
		a, ok := m.store.Action(msg.ID)
		if !ok {
			return m, nil
		}
		if !a.HasWeightTracking {
			m.status = "Weight tracking is off for " + a.Name
			return m, nil
		}
		m.editingID = a.ID
		m.weightCycle = -1
		m.weightForm = &WeightFormModel{}
		m.form = newWeightForm(m.weightForm, a)
		m.state = constants.StateWeight
		return m, m.form.Init()

	case board.DeleteActionMsg:
		id := msg.ID
		store := m.store
		return m, func() tea.Msg {
			return constants.ConfirmationMsg{
				Message: constants.DeleteActionPrompt,
				Action: func() tea.Cmd {
					store.DeleteAction(id, plan.Always)
					return nil
				},
			}
		}

	case board.ToggleBoxMsg:
		m.store.SetBoxState(msg.ID, 0, 0)
		m.status = constants.BoxToggleHint
		return m, nil

	case board.EditDateMsg:
		m.state = constants.StateDate
		return m, m.startInput("Date: ", m.store.PlanDate(), "YYYY-MM-DD")

	case board.PrintMsg:
		if m.printer == nil {
			m.status = "Printing is not configured"
			return m, nil
		}
		m.status = "Preparing print…"
		printer := m.printer
		snapshot := m.store.Snapshot()
		return m, func() tea.Msg {
			path, err := printer.Print(snapshot)
			return printDoneMsg{path: path, err: err}
		}

	case board.ReorderedMsg:
		if a, ok := m.store.Action(msg.ID); ok {
			m.status = "Moved " + a.Name
		}
		return m, nil
	}

	next, cmd := m.board.Update(msg)
	*m.board = next
	return m, cmd
}

func (m Model) updateAddForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.flash = false
		m.state = constants.StateBoard
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		_, err := m.store.AddAction(
			m.addForm.Name,
			plan.ParseCount(m.addForm.Boxes, m.defaults.CycleCount),
			plan.ParseCount(m.addForm.Cycles, m.defaults.TotalCycles),
			m.addForm.TrackWeight,
		)
		if err != nil {
			// Keep the dialog open with the name focused and outline it in red
			m.form = newAddForm(m.addForm)
			m.flash = true
			m.flashSeq++
			seq := m.flashSeq
			return m, tea.Batch(m.form.Init(), tea.Tick(constants.FlashDuration, func(time.Time) tea.Msg {
				return flashDoneMsg{seq: seq}
			}))
		}
		m.addForm = nil
		m.flash = false
		m.board.Select(m.store.Actions()[len(m.store.Actions())-1].ID)
		m.state = constants.StateBoard
	case huh.StateAborted:
		m.flash = false
		m.state = constants.StateBoard
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateWeightForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = constants.StateBoard
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		a, ok := m.store.Action(m.editingID)
		if !ok || m.weightForm.Cycle >= len(a.Cycles) {
			m.state = constants.StateBoard
			return m, nil
		}
		m.weightCycle = m.weightForm.Cycle
		prompt := fmt.Sprintf("Cycle %d (kg): ", m.weightCycle+1)
		cmds = append(cmds, m.startInput(prompt, a.Cycles[m.weightCycle].Weight, "e.g. 82.5"))
	case huh.StateAborted:
		m.state = constants.StateBoard
	}
	return m, tea.Batch(cmds...)
}

// updateInput drives the single-line editor used for rename, weight and date
func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEsc:
			m.endInput()
			return m, nil
		case tea.KeyEnter:
			value := m.input.Value()
			switch m.state {
			case constants.StateRename:
				m.store.RenameAction(m.editingID, value)
			case constants.StateWeight:
				m.store.SetCycleWeight(m.editingID, m.weightCycle, value)
			case constants.StateDate:
				m.store.SetPlanDate(value)
			}
			m.endInput()
			// Rename, weight and date edits do not notify listeners
			m.board.Refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) endInput() {
	m.input.Blur()
	m.input.Reset()
	m.editingID = 0
	m.weightCycle = -1
	m.state = constants.StateBoard
}

func (m Model) updateConfirmation(msg tea.Msg) (tea.Model, tea.Cmd) {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch msgKey.String() {
	case "y", "Y":
		var cmd tea.Cmd
		if m.pendingAction != nil {
			cmd = m.pendingAction()
		}
		m.pendingAction = nil
		m.confirmMessage = ""
		m.state = constants.StateBoard
		return m, cmd
	case "n", "N", "esc":
		m.pendingAction = nil
		m.confirmMessage = ""
		m.state = constants.StateBoard
	}
	return m, nil
}
