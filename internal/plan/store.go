// Package plan holds the in-memory action plan and the commands that mutate it.
//
// Every mutating command persists the whole plan through the storage provider
// and then notifies change listeners, which re-render. Storage failures are
// logged and otherwise ignored; the in-memory plan stays authoritative.
package plan

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/workplan/internal/constants"
	"github.com/julianstephens/workplan/internal/logger"
	"github.com/julianstephens/workplan/internal/models"
	"github.com/julianstephens/workplan/internal/storage"
)

// ErrNameRequired is returned by AddAction when the trimmed name is empty
var ErrNameRequired = errors.New("action name is required")

// Confirmer answers a yes/no prompt before a destructive command
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Always confirms without asking
var Always Confirmer = ConfirmFunc(func(string) bool { return true })

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source used to mint action ids
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store owns the plan state. It is driven from a single goroutine.
type Store struct {
	provider  storage.Provider
	now       func() time.Time
	plan      models.Plan
	lastID    int64
	listeners []func()
}

func New(provider storage.Provider, opts ...Option) *Store {
	s := &Store{
		provider: provider,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init loads the persisted plan, seeding defaults on first run
func (s *Store) Init() {
	s.load(true)
}

// Reload drops the in-memory plan and reads the persisted one again. It never
// writes: an absent actions key reads as an empty plan.
func (s *Store) Reload() {
	s.load(false)
}

// Close releases the storage provider
func (s *Store) Close() error {
	s.listeners = nil
	return s.provider.Close()
}

// OnChange registers fn to run after every command that changes what is displayed
func (s *Store) OnChange(fn func()) {
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify() {
	for _, fn := range s.listeners {
		fn()
	}
}

// Snapshot returns a deep copy of the current plan
func (s *Store) Snapshot() models.Plan {
	return s.plan.Clone()
}

// Actions returns a deep copy of the ordered action list
func (s *Store) Actions() []models.Action {
	return s.plan.Clone().Actions
}

// Action returns a copy of the action with the given id
func (s *Store) Action(id int64) (models.Action, bool) {
	i := s.plan.FindAction(id)
	if i < 0 {
		return models.Action{}, false
	}
	return s.plan.Actions[i].Clone(), true
}

// PlanDate returns the plan date as entered
func (s *Store) PlanDate() string {
	return s.plan.PlanDate
}

func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// ParseCount parses a count typed by the user. Anything that is not a
// positive integer yields def.
func ParseCount(input string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// AddAction appends a new action with freshly generated empty cycles.
// A blank name leaves the plan untouched and returns ErrNameRequired.
// Non-positive counts fall back to the defaults.
func (s *Store) AddAction(name string, cycleCount, totalCycles int, hasWeightTracking bool) (models.Action, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Action{}, ErrNameRequired
	}
	if cycleCount <= 0 {
		cycleCount = models.DefaultCycleCount
	}
	if totalCycles <= 0 {
		totalCycles = models.DefaultTotalCycles
	}

	action := models.NewAction(s.nextID(), name, cycleCount, totalCycles, hasWeightTracking)
	s.plan.Actions = append(s.plan.Actions, action)
	s.save()
	s.notify()
	return action.Clone(), nil
}

// DeleteAction removes the action after confirm agrees. It reports whether
// an action was removed.
func (s *Store) DeleteAction(id int64, confirm Confirmer) bool {
	if !confirm.Confirm(constants.DeleteActionPrompt) {
		return false
	}
	i := s.plan.FindAction(id)
	if i < 0 {
		return false
	}
	s.plan.Actions = append(s.plan.Actions[:i:i], s.plan.Actions[i+1:]...)
	s.save()
	s.notify()
	return true
}

// RenameAction sets a new name. A blank name keeps the old one.
func (s *Store) RenameAction(id int64, newName string) {
	i := s.plan.FindAction(id)
	if i < 0 {
		return
	}
	if trimmed := strings.TrimSpace(newName); trimmed != "" {
		s.plan.Actions[i].Name = trimmed
	}
	s.save()
}

// SetCycleWeight stores value verbatim as the weight of one cycle
func (s *Store) SetCycleWeight(id int64, cycleIndex int, value string) {
	i := s.plan.FindAction(id)
	if i < 0 {
		return
	}
	cycles := s.plan.Actions[i].Cycles
	if cycleIndex < 0 || cycleIndex >= len(cycles) {
		return
	}
	cycles[cycleIndex].Weight = value
	s.save()
}

// SetBoxState does nothing. Boxes are marked by hand on the printed page,
// so no state transition exists and nothing is persisted or re-rendered.
func (s *Store) SetBoxState(id int64, cycleIndex, boxIndex int) {}

// ReorderActions rebuilds the list in the order of ids. Ids that match no
// action are dropped, as are repeats.
func (s *Store) ReorderActions(ids []int64) {
	byID := make(map[int64]models.Action, len(s.plan.Actions))
	for _, a := range s.plan.Actions {
		byID[a.ID] = a
	}

	ordered := make([]models.Action, 0, len(ids))
	for _, id := range ids {
		a, ok := byID[id]
		if !ok {
			continue
		}
		ordered = append(ordered, a)
		delete(byID, id)
	}

	s.plan.Actions = ordered
	s.save()
	s.notify()
}

// SetPlanDate stores the plan date as entered
func (s *Store) SetPlanDate(date string) {
	s.plan.PlanDate = date
	s.save()
}

// save writes both keys. Failures are logged and never retried.
func (s *Store) save() {
	actions := s.plan.Actions
	if actions == nil {
		actions = []models.Action{}
	}
	data, err := json.Marshal(actions)
	if err != nil {
		logger.Error("Failed to serialize actions", "error", err)
		return
	}
	if err := s.provider.Set(constants.ActionsKey, string(data)); err != nil {
		logger.Error("Failed to save actions", "store", s.provider.GetConfigPath(), "error", err)
		return
	}
	if err := s.provider.Set(constants.DateKey, s.plan.PlanDate); err != nil {
		logger.Error("Failed to save plan date", "store", s.provider.GetConfigPath(), "error", err)
	}
}

// load reads both keys. An absent actions key seeds the defaults when seed is
// set; a read or parse failure leaves an empty plan without reseeding.
func (s *Store) load(seed bool) {
	s.plan = models.Plan{}

	raw, ok, err := s.provider.Get(constants.ActionsKey)
	if err != nil {
		logger.Error("Failed to read actions", "store", s.provider.GetConfigPath(), "error", err)
		return
	}
	switch {
	case !ok && !seed:
		// Nothing saved yet; leave the store untouched
	case !ok:
		s.plan.Actions = models.DefaultActions(s.nextID())
		s.lastID = s.plan.Actions[len(s.plan.Actions)-1].ID
		s.save()
	default:
		var actions []models.Action
		if err := json.Unmarshal([]byte(raw), &actions); err != nil {
			logger.Error("Failed to parse stored actions", "store", s.provider.GetConfigPath(), "error", err)
			return
		}
		s.plan.Actions = actions
		for _, a := range actions {
			if a.ID > s.lastID {
				s.lastID = a.ID
			}
		}
	}

	date, ok, err := s.provider.Get(constants.DateKey)
	if err != nil {
		logger.Error("Failed to read plan date", "store", s.provider.GetConfigPath(), "error", err)
		s.plan.Actions = nil
		return
	}
	if ok && date != "" {
		s.plan.PlanDate = date
	}
}
