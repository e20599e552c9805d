package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Counter is the header line: title, task count, done and pending counters.
func Counter(title string, done, pending int) string {
	t := Current()
	total := done + pending
	noun := "tasks"
	if total == 1 {
		noun = "task"
	}
	return fmt.Sprintf("%s  %s  %s %d  %s %d",
		t.Title.Render(title),
		t.Accent.Render(fmt.Sprintf("%d %s", total, noun)),
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), pending,
	)
}

// PanelString frames lines with the current theme's border.
func PanelString(lines []string) string {
	t := Current()
	border := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(strings.Join(lines, "\n"))
}

// Panel draws a framed box to w.
func Panel(w io.Writer, lines []string) {
	fmt.Fprintln(w, PanelString(lines))
}
