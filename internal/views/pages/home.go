package pages

import (
	"context"
	"io"
	"time"

	"github.com/a-h/templ"

	"brochure/internal/content"
	apptheme "brochure/internal/theme"
	"brochure/internal/views/components"
	"brochure/internal/views/layout"
	"brochure/internal/views/markup"
	viewtheme "brochure/internal/views/theme"
)

// Gradient and overlay tokens the hero paints with.
const (
	heroGradientStart     = "primary"
	heroGradientEnd       = "secondary"
	heroGradientDirection = "135deg"
	heroOverlayColor      = "foreground"
	heroOverlayOpacity    = 0.55
)

// HomeData is everything the home page renders. Content is nil when the page
// copy could not be loaded, in which case only the shell renders.
type HomeData struct {
	Content  *content.Home
	Page     layout.Page
	Controls components.ThemeControls
	Hero     components.HeroStyle
}

// NewHomeData reads the store's applied theme into view data. A store that
// failed to initialize yields an unstyled page without theme controls.
func NewHomeData(store *apptheme.Store, home *content.Home, transition time.Duration) HomeData {
	title, description := "", ""
	if home != nil {
		title, description = home.Title(), home.SEO.Description
	}
	data := HomeData{
		Content: home,
		Page:    layout.PageFromStore(store, title, description),
	}
	data.Page.Transition = transition
	if home != nil {
		data.Page.Image = home.SEO.Image
	}

	if store == nil {
		return data
	}
	active, ok := store.Active()
	if !ok {
		return data
	}

	root := store.Root()
	gradient := apptheme.NewGradientReader(root, heroGradientStart, heroGradientEnd, heroGradientDirection)
	overlay := apptheme.NewRGBAReader(root, heroOverlayColor, heroOverlayOpacity)
	data.Hero = components.HeroStyle{Gradient: gradient.Value(), Overlay: overlay.Value()}
	gradient.Close()
	overlay.Close()

	_, canToggle := apptheme.ToggleTarget(active.Descriptor, active.Preset)
	data.Controls = components.ThemeControls{
		Options:      viewtheme.Options(store.Presets(), active.Preset),
		Dark:         active.Dark,
		CanToggle:    canToggle,
		PreferSystem: store.PreferSystem(),
	}
	return data
}

// Home renders the full home page.
func Home(data HomeData) templ.Component {
	return layout.Layout(data.Page, homeBody(data))
}

func homeBody(data HomeData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		home := data.Content
		if home == nil {
			m.Render(ctx, components.Nav("", nil, components.ThemeSwitcher(data.Controls)))
			m.Raw(`<main></main>`)
			return m.Err()
		}
		m.Render(ctx, components.Nav(home.Title(), home.Nav, components.ThemeSwitcher(data.Controls)))
		m.Raw(`<main>`)
		m.Render(ctx, components.Hero(home.Hero, data.Hero))
		m.Render(ctx, components.AboutSection(home.About))
		m.Render(ctx, components.Services(home.Services))
		m.Render(ctx, components.Packages(home.Packages))
		m.Render(ctx, components.Portfolio(home.Portfolio))
		m.Render(ctx, components.Testimonials(home.Testimonials))
		m.Render(ctx, components.TrustedBy(home.TrustedBy))
		m.Render(ctx, components.FAQ(home.FAQ))
		m.Render(ctx, components.CallToAction(home.CTA))
		m.Raw(`</main>`)
		m.Render(ctx, components.Footer(home.Footer))
		return m.Err()
	})
}
