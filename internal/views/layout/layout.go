package layout

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"

	apptheme "brochure/internal/theme"
	"brochure/internal/views/markup"
)

// Page carries the document-level data of a rendered page.
type Page struct {
	Title       string
	Description string
	Image       string

	// Preset is empty when no theme could be loaded; the page then renders
	// without a style surface.
	Preset        string
	Dark          bool
	Surface       apptheme.Snapshot
	Transitioning bool
	Transition    time.Duration
}

// PageFromStore captures the store's current theme for rendering.
func PageFromStore(store *apptheme.Store, title, description string) Page {
	page := Page{Title: title, Description: description}
	if store == nil {
		return page
	}
	active, ok := store.Active()
	if !ok {
		return page
	}
	root := store.Root()
	page.Preset = active.Preset
	page.Dark = active.Dark
	page.Surface = root.Snapshot()
	page.Transitioning = root.Transitioning()
	return page
}

// Layout wraps body in the HTML document, writing the theme's custom
// properties into the head.
func Layout(page Page, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Raw("<!DOCTYPE html>\n<html lang=\"en\"")
		if page.Preset != "" {
			m.Attr("data-theme", page.Preset)
		}
		m.Attr("data-theme-version", strconv.FormatUint(page.Surface.Version, 10))
		m.Raw(">\n<head>\n<meta charset=\"utf-8\">\n<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
		m.Raw("<title>").Text(page.Title).Raw("</title>\n")
		if page.Description != "" {
			m.Raw("<meta name=\"description\"").Attr("content", page.Description).Raw(">\n")
		}
		if page.Image != "" {
			m.Raw("<meta property=\"og:image\"").URLAttr("content", page.Image).Raw(">\n")
		}
		m.Raw("<meta name=\"color-scheme\"").Attr("content", colorScheme(page.Dark)).Raw(">\n")
		if css := page.Surface.CSS(); css != "" {
			m.Raw("<style id=\"theme-surface\"").Attr("data-fingerprint", page.Surface.Fingerprint()).Raw(">\n", css, "</style>\n")
		}
		m.Raw("<style>\n", baseStylesheet(page.Transition), "</style>\n")
		m.Raw("</head>\n<body")
		if page.Transitioning {
			m.Attr("class", apptheme.TransitionClass)
		}
		m.Raw(">\n")
		m.Render(ctx, body)
		m.Raw("\n</body>\n</html>\n")
		return m.Err()
	})
}

func colorScheme(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}

// baseStylesheet styles the page exclusively through the theme's custom
// properties. A zero transition leaves color changes unanimated.
func baseStylesheet(transition time.Duration) string {
	css := `body {
  margin: 0;
  background: var(--color-background);
  color: var(--color-foreground);
  font-family: var(--font-body, system-ui, sans-serif);
}
h1, h2, h3 { font-family: var(--font-heading, serif); }
a { color: var(--color-primary); }
.card {
  background: var(--color-card);
  border: 1px solid var(--color-border);
  border-radius: var(--radius-md, 0.5rem);
  box-shadow: var(--shadow-card, none);
}
.muted { color: var(--color-foregroundMuted); }
.button {
  background: var(--color-primary);
  color: var(--color-primaryForeground);
  border-radius: var(--radius-pill, 9999px);
}
`
	if transition <= 0 {
		return css
	}
	return css + fmt.Sprintf(`.%[1]s, .%[1]s * {
  transition: background-color %[2]dms ease, color %[2]dms ease, border-color %[2]dms ease !important;
}
`, apptheme.TransitionClass, transition.Milliseconds())
}
