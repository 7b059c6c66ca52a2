package content

import (
	"context"
	"testing"
	"testing/fstest"

	"brochure/internal/resource"
	"brochure/web"
)

func TestLoadEmbeddedHome(t *testing.T) {
	t.Parallel()

	home, err := Load(context.Background(), resource.FS(web.Content, web.ContentPath))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if home.Hero.Title == "" {
		t.Fatal("expected hero title")
	}
	if len(home.Nav) == 0 || len(home.Packages.Items) == 0 || len(home.FAQ.Items) == 0 {
		t.Fatalf("expected populated sections, got %+v", home)
	}
	if got := home.Title(); got != home.SEO.Title {
		t.Fatalf("Title() = %q, want SEO title %q", got, home.SEO.Title)
	}
}

func TestLoadRejectsMissingHeroTitle(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"home.json": {Data: []byte(`{"nav":[{"label":"About","anchor":"about"}],"hero":{"title":""}}`)}}
	if _, err := Load(context.Background(), resource.FS(fsys, "home.json")); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadRejectsUnlabelledNav(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"home.json": {Data: []byte(`{"nav":[{"href":"/x"}],"hero":{"title":"Hi"}}`)}}
	if _, err := Load(context.Background(), resource.FS(fsys, "home.json")); err == nil {
		t.Fatal("expected validation error for nav item without label")
	}
}

func TestNavItemTarget(t *testing.T) {
	t.Parallel()

	cases := []struct {
		item NavItem
		want string
	}{
		{NavItem{Label: "a", Href: "/x", Anchor: "y"}, "/x"},
		{NavItem{Label: "a", Anchor: "faq"}, "#faq"},
		{NavItem{Label: "a"}, "#"},
	}
	for _, tc := range cases {
		if got := tc.item.Target(); got != tc.want {
			t.Fatalf("Target() = %q, want %q", got, tc.want)
		}
	}
}

func TestTitleFallsBackToHero(t *testing.T) {
	t.Parallel()

	home := &Home{Hero: Hero{Title: "Hero"}}
	if got := home.Title(); got != "Hero" {
		t.Fatalf("Title() = %q, want Hero", got)
	}
	var nilHome *Home
	if got := nilHome.Title(); got != "" {
		t.Fatalf("Title() on nil = %q, want empty", got)
	}
}
