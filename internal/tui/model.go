package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/workplan/internal/config"
	"github.com/julianstephens/workplan/internal/constants"
	"github.com/julianstephens/workplan/internal/models"
	"github.com/julianstephens/workplan/internal/plan"
	"github.com/julianstephens/workplan/internal/tui/components/board"
)

// Printer hands the plan to the host for printing
type Printer interface {
	Print(p models.Plan) (string, error)
}

// Options configures the TUI
type Options struct {
	Defaults config.Defaults
	Printer  Printer
}

// AddFormModel backs the add-action dialog
type AddFormModel struct {
	Name        string
	Boxes       string
	Cycles      string
	TrackWeight bool
}

// WeightFormModel backs the cycle picker of the weight dialog
type WeightFormModel struct {
	Cycle int
}

type Model struct {
	store    *plan.Store
	printer  Printer
	defaults config.Defaults

	state  constants.SessionState
	keys   KeyMap
	help   help.Model
	board  *board.Model
	form   *huh.Form
	input  textinput.Model
	width  int
	height int

	addForm    *AddFormModel
	weightForm *WeightFormModel
	// Action being renamed or weighed
	editingID int64
	// weightCycle is -1 while the cycle is being picked
	weightCycle int

	confirmMessage string
	pendingAction  func() tea.Cmd

	// flash outlines the add dialog in red; flashSeq ignores stale clears
	flash    bool
	flashSeq int

	status   string
	quitting bool
}

func NewModel(store *plan.Store, opts Options) Model {
	if opts.Defaults.CycleCount <= 0 {
		opts.Defaults.CycleCount = models.DefaultCycleCount
	}
	if opts.Defaults.TotalCycles <= 0 {
		opts.Defaults.TotalCycles = models.DefaultTotalCycles
	}

	ti := textinput.New()
	ti.CharLimit = 200

	// The board outlives Model copies so the store can re-render it on change
	b := board.New(store)
	store.OnChange(b.Refresh)

	return Model{
		store:       store,
		printer:     opts.Printer,
		defaults:    opts.Defaults,
		state:       constants.StateBoard,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		board:       &b,
		input:       ti,
		weightCycle: -1,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// newAddForm builds the add dialog. Counts are typed as text and parsed
// leniently on submit, so no field-level validation runs.
func newAddForm(fm *AddFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("e.g. Exercise").
				Value(&fm.Name),
			huh.NewInput().
				Title("Boxes per cycle").
				Value(&fm.Boxes),
			huh.NewInput().
				Title("Cycles").
				Value(&fm.Cycles),
			huh.NewConfirm().
				Title("Track weight?").
				Affirmative("Yes").
				Negative("No").
				Value(&fm.TrackWeight),
		).Title("Add action"),
	).WithTheme(huh.ThemeDracula()).WithShowHelp(false)
}

func (m Model) newAddFormModel() *AddFormModel {
	return &AddFormModel{
		Boxes:       strconv.Itoa(m.defaults.CycleCount),
		Cycles:      strconv.Itoa(m.defaults.TotalCycles),
		TrackWeight: m.defaults.TrackWeight,
	}
}

func newWeightForm(fm *WeightFormModel, a models.Action) *huh.Form {
	options := make([]huh.Option[int], len(a.Cycles))
	for i, c := range a.Cycles {
		label := strconv.Itoa(i+1) + "."
		if c.Weight != "" {
			label += " " + c.Weight + " kg"
		}
		options[i] = huh.NewOption(label, i)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Cycle of " + a.Name).
				Options(options...).
				Value(&fm.Cycle),
		),
	).WithTheme(huh.ThemeDracula()).WithShowHelp(false)
}

// startInput focuses the single-line editor with value prefilled
func (m *Model) startInput(prompt, value, placeholder string) tea.Cmd {
	m.input.Prompt = prompt
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}
