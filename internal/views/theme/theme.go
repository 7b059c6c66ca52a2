// Package theme turns the descriptor's preset names into switcher options.
package theme

import (
	"strings"
	"unicode"

	apptheme "brochure/internal/theme"
)

// Option represents a selectable preset exposed to the UI.
type Option struct {
	Value  string
	Label  string
	Dark   bool
	Active bool
}

// Label renders a preset name for display: "blue-dark" becomes
// "Blue (Dark)" and "light" becomes "Light".
func Label(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	dark := apptheme.IsDarkPreset(name) && name != apptheme.DarkPreset
	base := name
	if dark {
		base = strings.TrimSuffix(name, "-dark")
	}
	words := strings.FieldsFunc(base, func(r rune) bool { return r == '-' || r == '_' })
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	label := strings.Join(words, " ")
	if dark {
		label += " (Dark)"
	}
	return label
}

// Options exposes the presets for rendering in a form control, marking the
// active one.
func Options(presets []string, active string) []Option {
	options := make([]Option, 0, len(presets))
	for _, name := range presets {
		options = append(options, Option{
			Value:  name,
			Label:  Label(name),
			Dark:   apptheme.IsDarkPreset(name),
			Active: name == active,
		})
	}
	return options
}
