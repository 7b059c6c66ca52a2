// Package tui renders themes in the terminal and drives the interactive
// preset picker.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"brochure/internal/theme"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
)

// Swatches lists every color of the active theme with a color block. Colors
// that are not hex values get an empty block.
func Swatches(active theme.ActiveTheme) string {
	keys := make([]string, 0, len(active.Colors))
	width := 0
	for key := range active.Colors {
		keys = append(keys, key)
		width = max(width, len(key))
	}
	sort.Strings(keys)

	var b strings.Builder
	mode := "light"
	if active.Dark {
		mode = "dark"
	}
	b.WriteString(headingStyle.Render(active.Preset))
	b.WriteString(" ")
	b.WriteString(mutedStyle.Render("(" + mode + ")"))
	b.WriteString("\n")
	for _, key := range keys {
		value := active.Colors[key]
		fmt.Fprintf(&b, "%s %-*s %s\n", block(value), width, key, value)
	}
	return b.String()
}

func block(value string) string {
	if _, err := theme.ParseHex(value); err != nil {
		return "    "
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(value)).Render("    ")
}

// PlainSwatches lists the colors without any styling, for pipes and files.
func PlainSwatches(active theme.ActiveTheme) string {
	keys := make([]string, 0, len(active.Colors))
	for key := range active.Colors {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "%s dark=%t\n", active.Preset, active.Dark)
	for _, key := range keys {
		fmt.Fprintf(&b, "%s\t%s\n", key, active.Colors[key])
	}
	return b.String()
}
