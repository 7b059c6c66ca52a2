package components

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"brochure/internal/content"
	viewtheme "brochure/internal/views/theme"
)

func renderComponent(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render component: %v", err)
	}
	return buf.String()
}

func TestNavRendersItemsAndSwitcher(t *testing.T) {
	items := []content.NavItem{{Label: "About", Anchor: "about"}, {Label: "Blog", Href: "https://example.com/blog"}}
	out := renderComponent(t, Nav("Salt & Stone", items, LightDarkToggle(false, true)))
	for _, token := range []string{"Salt &amp; Stone", `href="#about"`, `href="https://example.com/blog"`, TogglePath} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected output to contain %q: %s", token, out)
		}
	}
}

func TestHeroUsesThemeStyle(t *testing.T) {
	hero := content.Hero{Title: "Coastal journeys", CTALabel: "Plan a trip"}
	out := renderComponent(t, Hero(hero, HeroStyle{
		Gradient: "linear-gradient(to right, #ff8800, #0f766e)",
		Overlay:  "rgba(28, 25, 23, 0.6)",
	}))
	for _, token := range []string{
		"background-image: linear-gradient(to right, #ff8800, #0f766e)",
		"background: rgba(28, 25, 23, 0.6)",
		"<h1>Coastal journeys</h1>",
		`href="#cta"`,
	} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected output to contain %q: %s", token, out)
		}
	}
}

func TestHeroWithoutThemeOmitsStyle(t *testing.T) {
	out := renderComponent(t, Hero(content.Hero{Title: "Plain"}, HeroStyle{}))
	if strings.Contains(out, "style=") {
		t.Fatalf("expected no inline style without theme values: %s", out)
	}
}

func TestEmptySectionsRenderNothing(t *testing.T) {
	for name, c := range map[string]templ.Component{
		"services":     Services(content.Section[content.Service]{Heading: "Services"}),
		"testimonials": Testimonials(content.Section[content.Testimonial]{}),
		"faq":          FAQ(content.Section[content.FAQItem]{}),
		"about":        AboutSection(content.About{}),
		"cta":          CallToAction(content.CTA{}),
	} {
		if out := renderComponent(t, c); out != "" {
			t.Fatalf("%s: expected empty output, got %s", name, out)
		}
	}
}

func TestPackagesHighlightFeatured(t *testing.T) {
	out := renderComponent(t, Packages(content.Section[content.Package]{
		Heading: "Packages",
		Items: []content.Package{
			{Name: "Weekend", Price: "$900", Features: []string{"2 nights"}},
			{Name: "Grand", Price: "$4,200", Featured: true},
		},
	}))
	if !strings.Contains(out, `class="card featured"`) {
		t.Fatalf("expected featured package class: %s", out)
	}
	if !strings.Contains(out, "var(--color-primary)") {
		t.Fatalf("expected featured package to use the primary color variable: %s", out)
	}
}

func TestThemeSwitcherMarksActivePreset(t *testing.T) {
	out := renderComponent(t, ThemeSwitcher(ThemeControls{
		Options:   viewtheme.Options([]string{"light", "dark", "blue"}, "dark"),
		Dark:      true,
		CanToggle: true,
	}))
	if !strings.Contains(out, `<option value="dark" selected>Dark</option>`) {
		t.Fatalf("expected dark option to be selected: %s", out)
	}
	if !strings.Contains(out, "Light mode") {
		t.Fatalf("expected toggle to offer light mode: %s", out)
	}
	if !strings.Contains(out, `name="enabled" value="true"`) {
		t.Fatalf("expected system switch to offer enabling: %s", out)
	}
}

func TestThemeSwitcherWithoutPresetsRendersNothing(t *testing.T) {
	if out := renderComponent(t, ThemeSwitcher(ThemeControls{})); out != "" {
		t.Fatalf("expected empty output, got %s", out)
	}
}

func TestLightDarkToggleDisabledWithoutCounterpart(t *testing.T) {
	out := renderComponent(t, LightDarkToggle(false, false))
	if !strings.Contains(out, " disabled") {
		t.Fatalf("expected disabled toggle: %s", out)
	}
}
