// Package board is the card grid of the TUI: selection, keyboard moves and
// mouse drag reordering.
package board

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/workplan/internal/models"
	"github.com/julianstephens/workplan/internal/plan"
	"github.com/julianstephens/workplan/internal/render"
)

type AddActionMsg struct{}

type RenameActionMsg struct {
	ID int64
}

type WeightActionMsg struct {
	ID int64
}

type DeleteActionMsg struct {
	ID int64
}

type ToggleBoxMsg struct {
	ID int64
}

type EditDateMsg struct{}

type PrintMsg struct{}

// ReorderedMsg reports a committed drag
type ReorderedMsg struct {
	ID int64
}

type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Add    key.Binding
	Rename key.Binding
	Weight key.Binding
	Delete key.Binding
	Date   key.Binding
	Box    key.Binding
	Grab   key.Binding
	Cancel key.Binding
	Print  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Rename: key.NewBinding(
			key.WithKeys("enter", "r"),
			key.WithHelp("r", "rename"),
		),
		Weight: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "weight"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Date: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "date"),
		),
		Box: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "box"),
		),
		Grab: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "grab/drop"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel move"),
		),
		Print: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "print"),
		),
	}
}

type Model struct {
	store  *plan.Store
	drag   *plan.Drag
	keys   KeyMap
	cursor int
	width  int

	// Screen position of the grid's top-left corner
	originX int
	originY int

	rendered string
	slots    []plan.Rect
}

func New(store *plan.Store) Model {
	m := Model{
		store: store,
		drag:  plan.NewDrag(store),
		keys:  DefaultKeyMap(),
	}
	m.Refresh()
	return m
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m *Model) SetSize(width int) {
	m.width = width
	m.Refresh()
}

// SetOrigin tells the board where its top-left corner is drawn on screen
func (m *Model) SetOrigin(x, y int) {
	m.originX = x
	m.originY = y
}

// Dragging reports whether a card is currently grabbed
func (m Model) Dragging() bool {
	return m.drag.Phase() == plan.DragDragging
}

// Selected returns the action under the cursor
func (m Model) Selected() (models.Action, bool) {
	actions := m.store.Actions()
	if m.cursor < 0 || m.cursor >= len(actions) {
		return models.Action{}, false
	}
	return actions[m.cursor], true
}

// Select moves the cursor to the action with the given id
func (m *Model) Select(id int64) {
	for i, a := range m.store.Actions() {
		if a.ID == id {
			m.cursor = i
			break
		}
	}
	m.Refresh()
}

// Refresh re-renders the grid from the store. Call it after every change.
func (m *Model) Refresh() {
	p := m.store.Snapshot()
	m.cursor = clamp(m.cursor, 0, len(p.Actions)-1)

	opts := render.TerminalOptions{}
	if m.Dragging() {
		p.Actions = m.drag.Preview(p.Actions)
		opts.Grabbed = m.drag.Source()
	} else if len(p.Actions) > 0 {
		opts.Selected = p.Actions[m.cursor].ID
	}
	m.rendered, m.slots = render.Terminal(p, m.width, opts)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Dragging() {
			return m.updateDragKeys(msg)
		}
		return m.updateKeys(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-m.columns())
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(m.columns())
	case key.Matches(msg, m.keys.Add):
		return m, func() tea.Msg { return AddActionMsg{} }
	case key.Matches(msg, m.keys.Date):
		return m, func() tea.Msg { return EditDateMsg{} }
	case key.Matches(msg, m.keys.Print):
		return m, func() tea.Msg { return PrintMsg{} }
	case key.Matches(msg, m.keys.Rename, m.keys.Weight, m.keys.Delete, m.keys.Box, m.keys.Grab):
		a, ok := m.Selected()
		if !ok {
			return m, nil
		}
		return m.actOn(msg, a)
	}
	return m, nil
}

func (m Model) actOn(msg tea.KeyMsg, a models.Action) (Model, tea.Cmd) {
	id := a.ID
	switch {
	case key.Matches(msg, m.keys.Rename):
		return m, func() tea.Msg { return RenameActionMsg{ID: id} }
	case key.Matches(msg, m.keys.Weight):
		return m, func() tea.Msg { return WeightActionMsg{ID: id} }
	case key.Matches(msg, m.keys.Delete):
		return m, func() tea.Msg { return DeleteActionMsg{ID: id} }
	case key.Matches(msg, m.keys.Box):
		return m, func() tea.Msg { return ToggleBoxMsg{ID: id} }
	case key.Matches(msg, m.keys.Grab):
		if m.drag.Start(id) {
			m.Refresh()
		}
	}
	return m, nil
}

func (m Model) updateDragKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.drag.Nudge(-1)
	case key.Matches(msg, m.keys.Right):
		m.drag.Nudge(1)
	case key.Matches(msg, m.keys.Up):
		m.drag.Nudge(-m.columns())
	case key.Matches(msg, m.keys.Down):
		m.drag.Nudge(m.columns())
	case key.Matches(msg, m.keys.Grab), key.Matches(msg, m.keys.Rename):
		return m.drop()
	case key.Matches(msg, m.keys.Cancel):
		m.drag.Cancel()
	default:
		return m, nil
	}
	m.Refresh()
	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	pointer := plan.Point{
		X: float64(msg.X - m.originX),
		Y: float64(msg.Y - m.originY),
	}

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if m.Dragging() {
			return m, nil
		}
		i := m.slotAt(pointer)
		if i < 0 {
			return m, nil
		}
		m.cursor = i
		if a, ok := m.Selected(); ok {
			m.drag.Start(a.ID)
		}
		m.Refresh()
	case msg.Action == tea.MouseActionMotion && m.Dragging():
		before := m.drag.Pending()
		m.drag.Over(pointer, m.slots)
		if m.drag.Pending() != before {
			m.Refresh()
		}
	case msg.Action == tea.MouseActionRelease && m.Dragging():
		return m.drop()
	}
	return m, nil
}

// drop commits the gesture and keeps the moved card selected
func (m Model) drop() (Model, tea.Cmd) {
	id := m.drag.Source()
	from := m.cursor
	m.drag.End()
	m.Select(id)
	if m.cursor == from {
		return m, nil
	}
	return m, func() tea.Msg { return ReorderedMsg{ID: id} }
}

func (m Model) slotAt(p plan.Point) int {
	for i, r := range m.slots {
		if r.Contains(p) {
			return i
		}
	}
	return -1
}

// columns counts the cards on the first row of the grid
func (m Model) columns() int {
	if len(m.slots) == 0 {
		return 1
	}
	n := 0
	for _, r := range m.slots {
		if r.Y != m.slots[0].Y {
			break
		}
		n++
	}
	return n
}

func (m *Model) moveCursor(delta int) {
	n := len(m.store.Actions())
	if n == 0 {
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, n-1)
	m.Refresh()
}

func (m Model) View() string {
	return m.rendered
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
