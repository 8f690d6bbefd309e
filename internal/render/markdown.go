package render

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/julianstephens/workplan/internal/models"
)

// Markdown renders p as a Markdown checklist
func Markdown(p models.Plan) string {
	var b strings.Builder
	b.WriteString("# " + DefaultTitle + "\n\n")

	date := strings.TrimSpace(p.PlanDate)
	if date == "" {
		date = "\\_\\_\\_\\_"
	} else {
		date = escapeMarkdown(date)
	}
	fmt.Fprintf(&b, "**Date:** %s\n", date)

	if len(p.Actions) == 0 {
		b.WriteString("\n_" + EmptyPlaceholder + "_\n")
		return b.String()
	}

	for _, a := range p.Actions {
		fmt.Fprintf(&b, "\n## %s\n\n", escapeMarkdown(a.Name))
		for i, c := range a.Cycles {
			boxes := make([]string, len(c.Boxes))
			for j, box := range c.Boxes {
				boxes[j] = markdownBox(box.State)
			}
			fmt.Fprintf(&b, "%d. %s", i+1, strings.Join(boxes, " "))
			if a.HasWeightTracking {
				weight := strings.TrimSpace(c.Weight)
				if weight == "" {
					weight = "\\_\\_\\_\\_"
				} else {
					weight = escapeMarkdown(weight)
				}
				fmt.Fprintf(&b, " · %s kg", weight)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func markdownBox(state models.BoxState) string {
	switch state {
	case models.BoxChecked:
		return "☑"
	case models.BoxCrossed:
		return "☒"
	default:
		return "☐"
	}
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
	`>`, `\>`,
	`#`, `\#`,
	`|`, `\|`,
	`!`, `\!`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

var (
	mdRendererMu sync.Mutex
	mdRenderers  = map[string]*glamour.TermRenderer{}
)

// RenderMarkdown styles md for the terminal with glamour, wrapping at width.
// Renderers are cached by style and width.
func RenderMarkdown(md string, width int) (string, error) {
	if width < 20 {
		width = 20
	}
	style := markdownStyle()
	key := fmt.Sprintf("%s:%d", style, width)

	mdRendererMu.Lock()
	defer mdRendererMu.Unlock()

	r := mdRenderers[key]
	if r == nil {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", fmt.Errorf("markdown renderer: %w", err)
		}
		mdRenderers[key] = r
	}

	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

func markdownStyle() string {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return "notty"
	}
	if termenv.EnvColorProfile() == termenv.Ascii {
		return "notty"
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

// ApplyColorProfile sets the lipgloss color profile from the environment.
// NO_COLOR forces plain output.
func ApplyColorProfile() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.EnvColorProfile())
}
