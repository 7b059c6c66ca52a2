package theme

import (
	"context"
	"testing/fstest"

	"brochure/internal/resource"
)

const sampleDescriptor = `{
  "colors": {
    "primary": "#ff8800",
    "background": "#ffffff",
    "foreground": "#111827",
    "border": "#e5e7eb",
    "accent": "#f80",
    "overlay": "rgba(0,0,0,0.4)",
    "gray": {"100": "#f3f4f6", "200": "#e5e7eb"}
  },
  "fonts": {"body": "Inter, sans-serif", "heading": "Playfair Display, serif"},
  "borderRadius": {"md": "0.5rem"},
  "shadows": {"card": "0 1px 2px rgba(0,0,0,0.05)"},
  "presets": {
    "light": {},
    "dark": {
      "colors": {"background": "#0b1120", "foreground": "#f9fafb", "gray-100": "#1f2937"}
    },
    "blue": {
      "colors": {"primary": "#2563eb"}
    },
    "blue-dark": {
      "colors": {"primary": "#60a5fa", "background": "#0f172a", "foreground": "#e2e8f0"},
      "fonts": {"heading": "Inter, sans-serif"}
    }
  }
}`

func sampleFS() fstest.MapFS {
	return fstest.MapFS{"content/theme.json": {Data: []byte(sampleDescriptor)}}
}

func sampleLoader() Loader {
	return NewLoader(resource.FS(sampleFS(), "content/theme.json"))
}

func mustDescriptor() *Descriptor {
	d, err := LoadDescriptor(context.Background(), resource.FS(sampleFS(), "content/theme.json"))
	if err != nil {
		panic(err)
	}
	return d
}
