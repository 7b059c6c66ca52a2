// Package components renders the home page sections. Every color comes from
// the theme's custom properties, either as var(--color-*) references or as
// values read from the style root.
package components

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"brochure/internal/content"
	"brochure/internal/views/markup"
)

// HeroStyle holds the theme-derived values the hero paints with.
type HeroStyle struct {
	Gradient string
	Overlay  string
}

func Nav(brand string, items []content.NavItem, switcher templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Raw(`<header class="site-header" style="border-bottom: 1px solid var(--color-border)"><nav>`)
		m.Raw(`<a class="brand" href="/">`).Text(brand).Raw(`</a><ul>`)
		for _, item := range items {
			m.Raw(`<li><a`).URLAttr("href", item.Target()).Raw(">").Text(item.Label).Raw(`</a></li>`)
		}
		m.Raw(`</ul>`)
		m.Render(ctx, switcher)
		m.Raw(`</nav></header>`)
		return m.Err()
	})
}

func Hero(hero content.Hero, style HeroStyle) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Raw(`<section id="hero" class="hero"`)
		if style.Gradient != "" {
			m.Attr("style", "background-image: "+style.Gradient)
		}
		m.Raw(">")
		if hero.BackgroundImage != "" {
			m.Raw(`<img class="hero-media" alt=""`).URLAttr("src", hero.BackgroundImage).Raw(">")
		}
		if style.Overlay != "" {
			m.Raw(`<div class="hero-overlay"`).Attr("style", "background: "+style.Overlay).Raw("></div>")
		}
		m.Raw(`<div class="hero-body">`)
		if hero.Eyebrow != "" {
			m.Raw(`<p class="eyebrow" style="color: var(--color-accent)">`).Text(hero.Eyebrow).Raw(`</p>`)
		}
		m.Raw(`<h1>`).Text(hero.Title).Raw(`</h1>`)
		if hero.Description != "" {
			m.Raw(`<p>`).Text(hero.Description).Raw(`</p>`)
		}
		if hero.CTALabel != "" {
			href := hero.CTAHref
			if href == "" {
				href = "#cta"
			}
			m.Raw(`<a class="button"`).URLAttr("href", href).Raw(">").Text(hero.CTALabel).Raw(`</a>`)
		}
		m.Raw(`</div>`)
		if len(hero.Slides) > 0 {
			m.Raw(`<ol class="hero-slides">`)
			for _, slide := range hero.Slides {
				m.Raw(`<li><img`).URLAttr("src", slide.Image).Attr("alt", slide.Caption).Raw(`></li>`)
			}
			m.Raw(`</ol>`)
		}
		if hero.StatLabel != "" {
			m.Raw(`<aside class="card hero-stat"><strong>`).Text(hero.StatLabel).Raw(`</strong><p class="muted">`).Text(hero.StatBody).Raw(`</p></aside>`)
		}
		m.Raw(`</section>`)
		return m.Err()
	})
}

func AboutSection(about content.About) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if about.Heading == "" && len(about.Body) == 0 {
			return nil
		}
		m := markup.New(w)
		m.Raw(`<section id="about" class="about">`)
		m.Raw(`<h2>`).Text(about.Heading).Raw(`</h2>`)
		for _, paragraph := range about.Body {
			m.Raw(`<p>`).Text(paragraph).Raw(`</p>`)
		}
		if about.Image != "" {
			m.Raw(`<img`).URLAttr("src", about.Image).Attr("alt", about.Heading).Raw(`>`)
		}
		m.Raw(`</section>`)
		return m.Err()
	})
}

// section renders a titled list, skipping it entirely when empty.
func section[T any](id string, s content.Section[T], item func(*markup.Writer, T)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(s.Items) == 0 {
			return nil
		}
		m := markup.New(w)
		m.Raw(`<section`).Attr("id", id).Attr("class", id).Raw(`>`)
		if s.Heading != "" {
			m.Raw(`<h2>`).Text(s.Heading).Raw(`</h2>`)
		}
		if s.Intro != "" {
			m.Raw(`<p class="muted">`).Text(s.Intro).Raw(`</p>`)
		}
		m.Raw(`<ul>`)
		for _, it := range s.Items {
			item(m, it)
		}
		m.Raw(`</ul></section>`)
		return m.Err()
	})
}

func Services(s content.Section[content.Service]) templ.Component {
	return section("services", s, func(m *markup.Writer, svc content.Service) {
		m.Raw(`<li class="card">`)
		if svc.Image != "" {
			m.Raw(`<img`).URLAttr("src", svc.Image).Attr("alt", svc.Name).Raw(`>`)
		}
		m.Raw(`<h3>`).Text(svc.Name).Raw(`</h3><p>`).Text(svc.Body).Raw(`</p></li>`)
	})
}

func Packages(s content.Section[content.Package]) templ.Component {
	return section("packages", s, func(m *markup.Writer, pkg content.Package) {
		class := "card"
		if pkg.Featured {
			class = markup.Classes(class, "featured")
		}
		m.Raw(`<li`).Attr("class", class)
		if pkg.Featured {
			m.Attr("style", "border-color: var(--color-primary)")
		}
		m.Raw(`><h3>`).Text(pkg.Name).Raw(`</h3><p class="price">`).Text(pkg.Price).Raw(`</p><ul>`)
		for _, feature := range pkg.Features {
			m.Raw(`<li>`).Text(feature).Raw(`</li>`)
		}
		m.Raw(`</ul>`)
		if pkg.CTALabel != "" {
			m.Raw(`<a class="button" href="#cta">`).Text(pkg.CTALabel).Raw(`</a>`)
		}
		m.Raw(`</li>`)
	})
}

func Testimonials(s content.Section[content.Testimonial]) templ.Component {
	return section("testimonials", s, func(m *markup.Writer, t content.Testimonial) {
		m.Raw(`<li class="card"><blockquote>`).Text(t.Quote).Raw(`</blockquote><p><strong>`).Text(t.Author).Raw(`</strong>`)
		if t.Role != "" {
			m.Raw(` <span class="muted">`).Text(t.Role).Raw(`</span>`)
		}
		m.Raw(`</p></li>`)
	})
}

func FAQ(s content.Section[content.FAQItem]) templ.Component {
	return section("faq", s, func(m *markup.Writer, item content.FAQItem) {
		m.Raw(`<li><details><summary>`).Text(item.Question).Raw(`</summary><p>`).Text(item.Answer).Raw(`</p></details></li>`)
	})
}

func TrustedBy(s content.Section[content.Logo]) templ.Component {
	return section("trusted-by", s, func(m *markup.Writer, logo content.Logo) {
		m.Raw(`<li><img`).URLAttr("src", logo.Image).Attr("alt", logo.Name).Raw(`></li>`)
	})
}

func Portfolio(s content.Section[content.PortfolioItem]) templ.Component {
	return section("portfolio", s, func(m *markup.Writer, item content.PortfolioItem) {
		m.Raw(`<li class="card"><img`).URLAttr("src", item.Image).Attr("alt", item.Title).Raw(`><h3>`).Text(item.Title).Raw(`</h3>`)
		if item.Tag != "" {
			m.Raw(`<span class="tag" style="background: var(--color-accent)">`).Text(item.Tag).Raw(`</span>`)
		}
		m.Raw(`</li>`)
	})
}

func CallToAction(cta content.CTA) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if cta.Heading == "" {
			return nil
		}
		m := markup.New(w)
		m.Raw(`<section id="cta" class="cta" style="background: var(--color-backgroundAlt)"><h2>`).Text(cta.Heading).Raw(`</h2>`)
		m.Raw(`<p>`).Text(cta.Body).Raw(`</p>`)
		if cta.CTALabel != "" {
			href := cta.CTAHref
			if href == "" {
				href = "#"
			}
			m.Raw(`<a class="button"`).URLAttr("href", href).Raw(">").Text(cta.CTALabel).Raw(`</a>`)
		}
		m.Raw(`</section>`)
		return m.Err()
	})
}

func Footer(footer content.Footer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := markup.New(w)
		m.Raw(`<footer class="site-footer" style="border-top: 1px solid var(--color-border)">`)
		if footer.Tagline != "" {
			m.Raw(`<p>`).Text(footer.Tagline).Raw(`</p>`)
		}
		if len(footer.Links) > 0 {
			m.Raw(`<ul>`)
			for _, link := range footer.Links {
				m.Raw(`<li><a`).URLAttr("href", link.Target()).Raw(">").Text(link.Label).Raw(`</a></li>`)
			}
			m.Raw(`</ul>`)
		}
		if footer.Copyright != "" {
			m.Raw(`<p class="muted">`).Text(footer.Copyright).Raw(`</p>`)
		}
		m.Raw(`</footer>`)
		return m.Err()
	})
}
