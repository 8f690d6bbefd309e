package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/workplan/internal/models"
	"github.com/julianstephens/workplan/internal/plan"
)

// DefaultCardWidth is the width of a card's content and padding
const DefaultCardWidth = 30

// EmptyPlaceholder is shown instead of the grid when the plan has no actions
const EmptyPlaceholder = "No actions yet."

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	selectedCardStyle = cardStyle.
				BorderForeground(lipgloss.Color("205"))

	grabbedCardStyle = cardStyle.
				Border(lipgloss.DoubleBorder()).
				BorderForeground(lipgloss.Color("214"))

	cardTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			MarginBottom(1)

	cycleLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	weightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	unitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Padding(1, 2)
)

// TerminalOptions marks cards for the interactive board
type TerminalOptions struct {
	// Selected is the id of the card under the cursor, 0 for none
	Selected int64
	// Grabbed is the id of the card being dragged, 0 for none
	Grabbed   int64
	CardWidth int
}

// Terminal renders p as a grid of cards that fits in width columns. It also
// returns the rectangle of every card slot, in display order, relative to the
// top-left corner of the returned string.
func Terminal(p models.Plan, width int, opts TerminalOptions) (string, []plan.Rect) {
	if len(p.Actions) == 0 {
		return emptyStyle.Render(EmptyPlaceholder), nil
	}
	if opts.CardWidth <= 0 {
		opts.CardWidth = DefaultCardWidth
	}

	cards := make([]string, len(p.Actions))
	for i, a := range p.Actions {
		cards[i] = renderCard(a, opts)
	}

	cardWidth := lipgloss.Width(cards[0])
	cols := 1
	if width > cardWidth {
		cols = (width + 1) / (cardWidth + 1)
	}

	var (
		rows  []string
		rects = make([]plan.Rect, 0, len(cards))
		y     int
	)
	for start := 0; start < len(cards); start += cols {
		end := min(start+cols, len(cards))

		rowHeight := 0
		for _, c := range cards[start:end] {
			rowHeight = max(rowHeight, lipgloss.Height(c))
		}

		parts := make([]string, 0, 2*(end-start))
		x := 0
		for i, c := range cards[start:end] {
			if i > 0 {
				parts = append(parts, " ")
				x++
			}
			parts = append(parts, c)
			w := lipgloss.Width(c)
			rects = append(rects, plan.Rect{
				X: float64(x),
				Y: float64(y),
				W: float64(w),
				H: float64(rowHeight),
			})
			x += w
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, parts...))
		y += rowHeight
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...), rects
}

func renderCard(a models.Action, opts TerminalOptions) string {
	style := cardStyle
	switch {
	case opts.Grabbed != 0 && a.ID == opts.Grabbed:
		style = grabbedCardStyle
	case opts.Selected != 0 && a.ID == opts.Selected:
		style = selectedCardStyle
	}

	inner := opts.CardWidth - style.GetHorizontalPadding()
	lines := []string{cardTitleStyle.Width(inner).Render(a.Name)}
	for i, c := range a.Cycles {
		lines = append(lines, cycleLine(a, i, c))
	}
	return style.Width(opts.CardWidth).Render(strings.Join(lines, "\n"))
}

func cycleLine(a models.Action, index int, c models.Cycle) string {
	boxes := make([]string, len(c.Boxes))
	for i, b := range c.Boxes {
		boxes[i] = boxGlyph(b.State)
	}
	line := cycleLabelStyle.Render(fmt.Sprintf("%2d.", index+1)) + " " + strings.Join(boxes, " ")
	if a.HasWeightTracking {
		weight := strings.TrimSpace(c.Weight)
		if weight == "" {
			weight = "____"
		}
		line += "  " + weightStyle.Render(weight) + " " + unitStyle.Render("kg")
	}
	return line
}

func boxGlyph(state models.BoxState) string {
	switch state {
	case models.BoxChecked:
		return "[✓]"
	case models.BoxCrossed:
		return "[✗]"
	default:
		return "[ ]"
	}
}
