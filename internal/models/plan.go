package models

const (
	DefaultCycleCount  = 3
	DefaultTotalCycles = 8
)

// BoxState is the visual state of a single checkbox cell
type BoxState string

const (
	BoxEmpty   BoxState = "empty"
	BoxChecked BoxState = "checked"
	BoxCrossed BoxState = "crossed"
)

// Box is one checkbox cell within a cycle
type Box struct {
	State BoxState `json:"state"`
}

// Cycle is one repetition period of an action
type Cycle struct {
	Boxes  []Box  `json:"boxes"`
	Weight string `json:"weight"` // free text, kg
}

// Action is a trackable habit or task with its own cycle schedule
type Action struct {
	ID                int64   `json:"id"` // creation timestamp in milliseconds
	Name              string  `json:"name"`
	CycleCount        int     `json:"cycleCount"`
	TotalCycles       int     `json:"totalCycles"`
	HasWeightTracking bool    `json:"hasWeightTracking"`
	Cycles            []Cycle `json:"cycles"`
}

// Plan is the full ordered set of actions plus the plan date
type Plan struct {
	Actions  []Action `json:"actions"`
	PlanDate string   `json:"planDate"`
}

// NewAction builds an action with its cycles and boxes generated eagerly.
// Every box starts empty. The shape is fixed for the lifetime of the action.
func NewAction(id int64, name string, cycleCount, totalCycles int, hasWeightTracking bool) Action {
	cycles := make([]Cycle, totalCycles)
	for i := range cycles {
		boxes := make([]Box, cycleCount)
		for j := range boxes {
			boxes[j] = Box{State: BoxEmpty}
		}
		cycles[i] = Cycle{Boxes: boxes}
	}
	return Action{
		ID:                id,
		Name:              name,
		CycleCount:        cycleCount,
		TotalCycles:       totalCycles,
		HasWeightTracking: hasWeightTracking,
		Cycles:            cycles,
	}
}

// DefaultActions returns the two actions seeded on first run
func DefaultActions(id int64) []Action {
	return []Action{
		NewAction(id, "Exercise", DefaultCycleCount, DefaultTotalCycles, true),
		NewAction(id+1, "Meals before 18:00", DefaultCycleCount, DefaultTotalCycles, false),
	}
}

// Clone returns a deep copy of the action
func (a Action) Clone() Action {
	out := a
	out.Cycles = make([]Cycle, len(a.Cycles))
	for i, c := range a.Cycles {
		out.Cycles[i] = Cycle{
			Boxes:  append([]Box(nil), c.Boxes...),
			Weight: c.Weight,
		}
	}
	return out
}

// Clone returns a deep copy of the plan
func (p Plan) Clone() Plan {
	out := Plan{PlanDate: p.PlanDate, Actions: make([]Action, len(p.Actions))}
	for i, a := range p.Actions {
		out.Actions[i] = a.Clone()
	}
	return out
}

// FindAction returns the index of the action with the given id, or -1
func (p Plan) FindAction(id int64) int {
	for i, a := range p.Actions {
		if a.ID == id {
			return i
		}
	}
	return -1
}
