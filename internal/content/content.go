// Package content loads the page copy rendered by the presentational views.
// The tree is passed to the views verbatim.
package content

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"brochure/internal/resource"
)

// NavItem is a navigation entry. Anchor targets a section on the home page.
type NavItem struct {
	Label  string `json:"label" yaml:"label" validate:"required"`
	Href   string `json:"href,omitempty" yaml:"href,omitempty"`
	Anchor string `json:"anchor,omitempty" yaml:"anchor,omitempty"`
}

// Target returns the link destination for the item.
func (n NavItem) Target() string {
	switch {
	case n.Href != "":
		return n.Href
	case n.Anchor != "":
		return "#" + n.Anchor
	default:
		return "#"
	}
}

// Slide is one hero carousel frame.
type Slide struct {
	Image   string `json:"image" yaml:"image"`
	Caption string `json:"caption,omitempty" yaml:"caption,omitempty"`
}

type Hero struct {
	Eyebrow         string   `json:"eyebrow" yaml:"eyebrow"`
	Title           string   `json:"title" yaml:"title" validate:"required"`
	Description     string   `json:"description" yaml:"description"`
	BackgroundImage string   `json:"backgroundImage" yaml:"backgroundImage"`
	BackgroundVideo string   `json:"backgroundVideo,omitempty" yaml:"backgroundVideo,omitempty"`
	Slides          []Slide  `json:"slides,omitempty" yaml:"slides,omitempty"`
	StatLabel       string   `json:"statLabel" yaml:"statLabel"`
	StatBody        string   `json:"statBody" yaml:"statBody"`
	StatImage       string   `json:"statImage" yaml:"statImage"`
	StatStack       []string `json:"statStack,omitempty" yaml:"statStack,omitempty"`
	CTALabel        string   `json:"ctaLabel" yaml:"ctaLabel"`
	CTAHref         string   `json:"ctaHref,omitempty" yaml:"ctaHref,omitempty"`
}

type About struct {
	Heading string   `json:"heading" yaml:"heading"`
	Body    []string `json:"body" yaml:"body"`
	Image   string   `json:"image,omitempty" yaml:"image,omitempty"`
}

type Service struct {
	Name  string `json:"name" yaml:"name"`
	Body  string `json:"body" yaml:"body"`
	Image string `json:"image,omitempty" yaml:"image,omitempty"`
}

type Package struct {
	Name     string   `json:"name" yaml:"name"`
	Price    string   `json:"price" yaml:"price"`
	Features []string `json:"features" yaml:"features"`
	Featured bool     `json:"featured,omitempty" yaml:"featured,omitempty"`
	CTALabel string   `json:"ctaLabel,omitempty" yaml:"ctaLabel,omitempty"`
}

type Testimonial struct {
	Quote  string `json:"quote" yaml:"quote"`
	Author string `json:"author" yaml:"author"`
	Role   string `json:"role,omitempty" yaml:"role,omitempty"`
	Avatar string `json:"avatar,omitempty" yaml:"avatar,omitempty"`
}

type FAQItem struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

type CTA struct {
	Heading  string `json:"heading" yaml:"heading"`
	Body     string `json:"body" yaml:"body"`
	CTALabel string `json:"ctaLabel" yaml:"ctaLabel"`
	CTAHref  string `json:"ctaHref,omitempty" yaml:"ctaHref,omitempty"`
}

type Logo struct {
	Name  string `json:"name" yaml:"name"`
	Image string `json:"image" yaml:"image"`
}

type PortfolioItem struct {
	Title string `json:"title" yaml:"title"`
	Image string `json:"image" yaml:"image"`
	Tag   string `json:"tag,omitempty" yaml:"tag,omitempty"`
}

type Footer struct {
	Tagline   string    `json:"tagline" yaml:"tagline"`
	Links     []NavItem `json:"links,omitempty" yaml:"links,omitempty" validate:"dive"`
	Copyright string    `json:"copyright" yaml:"copyright"`
}

type SEO struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image,omitempty" yaml:"image,omitempty"`
}

// Section wraps a titled list so sections share a shape.
type Section[T any] struct {
	Heading string `json:"heading" yaml:"heading"`
	Intro   string `json:"intro,omitempty" yaml:"intro,omitempty"`
	Items   []T    `json:"items" yaml:"items"`
}

// Home is the full content tree of the home page.
type Home struct {
	Nav          []NavItem              `json:"nav" yaml:"nav" validate:"dive"`
	Hero         Hero                   `json:"hero" yaml:"hero"`
	About        About                  `json:"about" yaml:"about"`
	Services     Section[Service]       `json:"services" yaml:"services"`
	Packages     Section[Package]       `json:"packages" yaml:"packages"`
	Testimonials Section[Testimonial]   `json:"testimonials" yaml:"testimonials"`
	FAQ          Section[FAQItem]       `json:"faq" yaml:"faq"`
	CTA          CTA                    `json:"cta" yaml:"cta"`
	TrustedBy    Section[Logo]          `json:"trustedBy" yaml:"trustedBy"`
	Portfolio    Section[PortfolioItem] `json:"portfolio" yaml:"portfolio"`
	Footer       Footer                 `json:"footer" yaml:"footer"`
	SEO          SEO                    `json:"seo" yaml:"seo"`
}

// Title returns the SEO title, falling back to the hero title.
func (h *Home) Title() string {
	if h == nil {
		return ""
	}
	if h.SEO.Title != "" {
		return h.SEO.Title
	}
	return h.Hero.Title
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// Load fetches and validates the content tree from src.
func Load(ctx context.Context, src resource.Source) (*Home, error) {
	var home Home
	if err := resource.Fetch(ctx, src, &home); err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	if err := validatorInstance().Struct(&home); err != nil {
		return nil, fmt.Errorf("validate content %s: %w", src.Name(), err)
	}
	return &home, nil
}
