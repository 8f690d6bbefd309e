package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/workplan/internal/models"
)

func samplePlan() models.Plan {
	exercise := models.NewAction(1, "Exercise", 3, 2, true)
	exercise.Cycles[0].Weight = "82.5"
	exercise.Cycles[1].Boxes[1].State = models.BoxChecked
	exercise.Cycles[1].Boxes[2].State = models.BoxCrossed
	meals := models.NewAction(2, "Meals", 2, 3, false)
	return models.Plan{
		Actions:  []models.Action{exercise, meals},
		PlanDate: "2026-10-19",
	}
}

func renderHTML(t *testing.T, p models.Plan, opts HTMLOptions) string {
	t.Helper()
	var buf bytes.Buffer
	if err := HTML(&buf, p, opts); err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	return buf.String()
}

func TestHTMLStructure(t *testing.T) {
	out := renderHTML(t, samplePlan(), HTMLOptions{})

	if n := strings.Count(out, `class="action-card"`); n != 2 {
		t.Errorf("expected 2 cards, got %d", n)
	}
	if n := strings.Count(out, `class="cycle-row"`); n != 5 {
		t.Errorf("expected 5 cycle rows, got %d", n)
	}
	if n := strings.Count(out, `class="checkbox-box `); n != 3*2+2*3 {
		t.Errorf("expected 12 boxes, got %d", n)
	}
	if n := strings.Count(out, `class="weight-input"`); n != 2 {
		t.Errorf("expected weight fields only on the tracked action, got %d", n)
	}
	for _, want := range []string{
		`<span class="cycle-label">1.</span>`,
		`<span class="cycle-label">3.</span>`,
		`checkbox-box checked`,
		`checkbox-box crossed`,
		`value="82.5"`,
		`<span class="weight-unit">kg</span>`,
		`2026-10-19`,
		`<title>Action Plan</title>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
	if strings.Contains(out, "window.print") {
		t.Error("print trigger present without AutoPrint")
	}
	if strings.Contains(out, "empty-state") {
		t.Error("placeholder shown for a non-empty plan")
	}
}

func TestHTMLPreservesOrder(t *testing.T) {
	p := samplePlan()
	p.Actions[0], p.Actions[1] = p.Actions[1], p.Actions[0]
	out := renderHTML(t, p, HTMLOptions{})
	if strings.Index(out, ">Meals<") > strings.Index(out, ">Exercise<") {
		t.Error("cards not rendered in list order")
	}
}

func TestHTMLEscapesUserText(t *testing.T) {
	p := samplePlan()
	p.Actions[0].Name = `<script>alert("x")</script>`
	p.Actions[0].Cycles[0].Weight = `"><script>alert(1)</script>`
	out := renderHTML(t, p, HTMLOptions{})

	if strings.Contains(out, "<script>alert") {
		t.Fatalf("unescaped user text in output:\n%s", out)
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Error("expected escaped name")
	}
}

func TestHTMLEmptyPlan(t *testing.T) {
	out := renderHTML(t, models.Plan{}, HTMLOptions{Title: "Week 3"})
	if !strings.Contains(out, "empty-state") {
		t.Error("expected empty-state placeholder")
	}
	if strings.Contains(out, `class="action-card"`) {
		t.Error("expected no cards")
	}
	if !strings.Contains(out, "<title>Week 3</title>") {
		t.Error("expected custom title")
	}
}

func TestHTMLAutoPrint(t *testing.T) {
	out := renderHTML(t, samplePlan(), HTMLOptions{AutoPrint: true})
	if !strings.Contains(out, "window.print()") {
		t.Error("expected print trigger")
	}
}

func TestTerminalEmpty(t *testing.T) {
	out, rects := Terminal(models.Plan{}, 80, TerminalOptions{})
	if !strings.Contains(out, EmptyPlaceholder) {
		t.Errorf("expected placeholder, got %q", out)
	}
	if rects != nil {
		t.Errorf("expected no slots, got %v", rects)
	}
}

func TestTerminalGrid(t *testing.T) {
	p := samplePlan()
	p.Actions = append(p.Actions, models.NewAction(3, "Read", 1, 1, false))

	tests := []struct {
		name     string
		width    int
		wantCols int
	}{
		{"narrow is one column", 10, 1},
		{"two fit", 2*(DefaultCardWidth+2) + 1, 2},
		{"all fit", 200, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, rects := Terminal(p, tt.width, TerminalOptions{})
			if len(rects) != 3 {
				t.Fatalf("expected 3 slots, got %d", len(rects))
			}
			cols := 0
			for _, r := range rects {
				if r.Y == 0 {
					cols++
				}
			}
			if cols != tt.wantCols {
				t.Errorf("expected %d columns, got %d", tt.wantCols, cols)
			}
			for i, r := range rects {
				if r.W != float64(DefaultCardWidth+2) {
					t.Errorf("slot %d: unexpected width %v", i, r.W)
				}
				if r.X+r.W > float64(lipgloss.Width(out)) {
					t.Errorf("slot %d extends past the output", i)
				}
				if r.Y+r.H > float64(lipgloss.Height(out)) {
					t.Errorf("slot %d extends below the output", i)
				}
			}
		})
	}
}

func TestTerminalCardContent(t *testing.T) {
	out, _ := Terminal(samplePlan(), 200, TerminalOptions{})
	for _, want := range []string{"Exercise", "Meals", " 1.", " 3.", "[✓]", "[✗]", "82.5", "kg", "____"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output", want)
		}
	}
}

func TestMarkdown(t *testing.T) {
	p := samplePlan()
	p.Actions[1].Name = "Meals *before* 18:00"
	md := Markdown(p)

	for _, want := range []string{
		"# Action Plan",
		"**Date:** 2026-10-19",
		"## Exercise",
		"1. ☐ ☐ ☐ · 82.5 kg",
		"2. ☐ ☑ ☒ · \\_\\_\\_\\_ kg",
		`## Meals \*before\* 18:00`,
		"3. ☐ ☐\n",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("expected %q in:\n%s", want, md)
		}
	}
}

func TestMarkdownEmpty(t *testing.T) {
	md := Markdown(models.Plan{})
	if !strings.Contains(md, EmptyPlaceholder) {
		t.Errorf("expected placeholder, got %q", md)
	}
}

func TestRenderMarkdownPlain(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	out, err := RenderMarkdown(Markdown(samplePlan()), 80)
	if err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}
	if !strings.Contains(out, "Exercise") {
		t.Errorf("expected action name in rendered output, got %q", out)
	}
	if markdownStyle() != "notty" {
		t.Errorf("expected plain style with NO_COLOR, got %q", markdownStyle())
	}
}
