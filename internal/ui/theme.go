package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + border.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, DoneText, Help, Dialog, Input      lipgloss.Style

	BoxUnchecked, BoxChecked string
	SymDone, SymPending      string
	Border                   lipgloss.Border
}

// Themes lists the accepted theme names.
var Themes = []string{"classic", "neon", "mono"}

var current = build("classic")

// SetTheme switches the active theme. Unknown names are an error.
func SetTheme(name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if !Known(name) {
		return fmt.Errorf("unknown theme %q (want one of %s)", name, strings.Join(Themes, ", "))
	}
	current = build(name)
	return nil
}

// Known reports whether name is a theme.
func Known(name string) bool {
	for _, t := range Themes {
		if t == name {
			return true
		}
	}
	return false
}

// Expose what renderers need
func Current() Theme { return current }

func build(name string) Theme {
	plain := lipgloss.NewStyle()
	switch name {
	case "neon":
		return Theme{
			Name:         name,
			Title:        plain.Bold(true).Foreground(lipgloss.Color("13")),
			Muted:        plain.Faint(true),
			Accent:       plain.Foreground(lipgloss.Color("14")),
			Success:      plain.Foreground(lipgloss.Color("10")),
			Error:        plain.Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      plain.Foreground(lipgloss.Color("11")),
			Selected:     plain.Bold(true).Foreground(lipgloss.Color("13")),
			DoneText:     plain.Foreground(lipgloss.Color("10")).Strikethrough(true),
			Help:         plain.Faint(true),
			Dialog:       plain.Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("13")).Padding(0, 2),
			Input:        plain.Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("14")).Padding(0, 1),
			BoxUnchecked: "◻", BoxChecked: "◼",
			SymDone: "✔", SymPending: "•",
			Border: lipgloss.RoundedBorder(),
		}
	case "mono":
		return Theme{
			Name:         name,
			Title:        plain,
			Muted:        plain,
			Accent:       plain,
			Success:      plain,
			Error:        plain,
			Pending:      plain,
			Selected:     plain,
			DoneText:     plain,
			Help:         plain,
			Dialog:       plain.Border(lipgloss.NormalBorder()).Padding(0, 2),
			Input:        plain.Border(lipgloss.NormalBorder()).Padding(0, 1),
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			SymDone: "x", SymPending: "-",
			Border: lipgloss.NormalBorder(),
		}
	default: // classic
		return Theme{
			Name:         "classic",
			Title:        plain.Bold(true),
			Muted:        plain.Faint(true),
			Accent:       plain.Foreground(lipgloss.Color("12")),
			Success:      plain.Foreground(lipgloss.Color("42")),
			Error:        plain.Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      plain.Foreground(lipgloss.Color("214")),
			Selected:     plain.Bold(true).Reverse(true),
			DoneText:     plain.Foreground(lipgloss.Color("42")).Strikethrough(true),
			Help:         plain.Faint(true),
			Dialog:       plain.Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12")).Padding(0, 2),
			Input:        plain.Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1),
			BoxUnchecked: "☐", BoxChecked: "☑",
			SymDone: "✔", SymPending: "•",
			Border: lipgloss.RoundedBorder(),
		}
	}
}
