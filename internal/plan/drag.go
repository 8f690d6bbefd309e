package plan

import (
	"math"

	"github.com/julianstephens/workplan/internal/models"
)

// Point is a pointer position in display coordinates
type Point struct {
	X, Y float64
}

// Rect is the on-screen box of one card slot
type Rect struct {
	X, Y, W, H float64
}

// Center returns the midpoint of r
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Contains reports whether p falls inside r
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// DragPhase is the state of a drag gesture
type DragPhase int

const (
	DragIdle DragPhase = iota
	DragDragging
)

// Drag tracks one reorder gesture. The store keeps the real order the whole
// time; the gesture only holds the index the dragged card would land on and
// commits it in one ReorderActions call on End.
type Drag struct {
	store   *Store
	phase   DragPhase
	source  int64
	pending int
}

func NewDrag(store *Store) *Drag {
	return &Drag{store: store}
}

func (d *Drag) Phase() DragPhase { return d.phase }

// Source returns the id of the card being dragged
func (d *Drag) Source() int64 { return d.source }

// Pending returns the index the dragged card would be dropped at
func (d *Drag) Pending() int { return d.pending }

// Start begins dragging the action with the given id. It reports false and
// stays idle when the id is unknown or a gesture is already running.
func (d *Drag) Start(id int64) bool {
	if d.phase != DragIdle {
		return false
	}
	i := d.store.plan.FindAction(id)
	if i < 0 {
		return false
	}
	d.phase = DragDragging
	d.source = id
	d.pending = i
	return true
}

// Over moves the pending index to the slot whose centre is nearest the
// pointer. slots are the card rectangles in display order; ties go to the
// lower index. Without a running gesture it does nothing.
func (d *Drag) Over(pointer Point, slots []Rect) {
	if d.phase != DragDragging || len(slots) == 0 {
		return
	}
	best, bestDist := 0, math.Inf(1)
	for i, r := range slots {
		c := r.Center()
		dist := math.Hypot(pointer.X-c.X, pointer.Y-c.Y)
		if dist < bestDist {
			best, bestDist = i, dist
		}
	}
	d.setPending(best)
}

// Nudge shifts the pending index by delta, clamped to the list
func (d *Drag) Nudge(delta int) {
	if d.phase != DragDragging {
		return
	}
	d.setPending(d.pending + delta)
}

func (d *Drag) setPending(i int) {
	last := len(d.store.plan.Actions) - 1
	if i > last {
		i = last
	}
	if i < 0 {
		i = 0
	}
	d.pending = i
}

// Preview returns actions in the order they would have if dropped now.
// Without a running gesture it returns actions unchanged.
func (d *Drag) Preview(actions []models.Action) []models.Action {
	if d.phase != DragDragging {
		return actions
	}
	from := -1
	for i, a := range actions {
		if a.ID == d.source {
			from = i
			break
		}
	}
	if from < 0 {
		return actions
	}

	moved := actions[from]
	rest := make([]models.Action, 0, len(actions))
	rest = append(rest, actions[:from]...)
	rest = append(rest, actions[from+1:]...)

	to := d.pending
	if to > len(rest) {
		to = len(rest)
	}
	out := make([]models.Action, 0, len(actions))
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	return out
}

// End drops the card at the pending index and commits the new order
func (d *Drag) End() {
	if d.phase != DragDragging {
		return
	}
	preview := d.Preview(d.store.plan.Actions)
	ids := make([]int64, len(preview))
	for i, a := range preview {
		ids[i] = a.ID
	}
	d.reset()
	d.store.ReorderActions(ids)
}

// Cancel abandons the gesture without touching the store
func (d *Drag) Cancel() {
	d.reset()
}

func (d *Drag) reset() {
	d.phase = DragIdle
	d.source = 0
	d.pending = 0
}
