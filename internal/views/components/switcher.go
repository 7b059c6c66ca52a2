package components

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"brochure/internal/views/markup"
	viewtheme "brochure/internal/views/theme"
)

// Form endpoints of the theme controls.
const (
	PresetPath = "/preferences/theme"
	TogglePath = "/preferences/theme/toggle"
	SystemPath = "/preferences/system"
)

// ThemeControls is the state the switcher renders.
type ThemeControls struct {
	Options      []viewtheme.Option
	Dark         bool
	CanToggle    bool
	PreferSystem bool
}

// ThemeSwitcher renders the preset picker, the light/dark toggle and the
// follow-system switch. It renders nothing when there are no presets.
func ThemeSwitcher(controls ThemeControls) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(controls.Options) == 0 {
			return nil
		}
		m := markup.New(w)
		m.Raw(`<div class="theme-controls">`)
		m.Raw(`<form method="post"`).Attr("action", PresetPath).Raw(`><label>Theme <select name="preset">`)
		for _, option := range controls.Options {
			m.Raw(`<option`).Attr("value", option.Value)
			if option.Active {
				m.Raw(` selected`)
			}
			m.Raw(`>`).Text(option.Label).Raw(`</option>`)
		}
		m.Raw(`</select></label><button type="submit">Apply</button></form>`)
		m.Render(ctx, LightDarkToggle(controls.Dark, controls.CanToggle))
		m.Raw(`<form method="post"`).Attr("action", SystemPath).Raw(`>`)
		m.Raw(`<input type="hidden" name="enabled"`).Attr("value", strconv.FormatBool(!controls.PreferSystem)).Raw(`>`)
		m.Raw(`<button type="submit"`).Attr("aria-pressed", strconv.FormatBool(controls.PreferSystem)).Raw(`>Match system</button></form>`)
		m.Raw(`</div>`)
		return m.Err()
	})
}

// LightDarkToggle renders the one-click switch to the counterpart preset.
// The button is disabled when the active preset has no counterpart.
func LightDarkToggle(dark, enabled bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		label := "Dark mode"
		if dark {
			label = "Light mode"
		}
		m := markup.New(w)
		m.Raw(`<form method="post"`).Attr("action", TogglePath).Raw(`><button type="submit" class="theme-toggle"`)
		m.Attr("aria-pressed", strconv.FormatBool(dark))
		if !enabled {
			m.Raw(` disabled`)
		}
		m.Raw(`>`).Text(label).Raw(`</button></form>`)
		return m.Err()
	})
}
