// Package web embeds the static documents and assets served by the site.
package web

import "embed"

// Content holds the default theme descriptor and page content.
//
//go:embed content
var Content embed.FS

// Well-known paths inside Content.
const (
	ThemePath   = "content/theme.json"
	ContentPath = "content/home.json"
)
