// Package markup holds the small HTML writer shared by the view packages.
package markup

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Writer writes HTML fragments and remembers the first write error, so a
// component can emit its markup and check Err once.
type Writer struct {
	w   io.Writer
	err error
}

func New(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup.
func (m *Writer) Raw(parts ...string) *Writer {
	for _, part := range parts {
		if m.err != nil {
			return m
		}
		_, m.err = io.WriteString(m.w, part)
	}
	return m
}

// Text writes escaped text content.
func (m *Writer) Text(value string) *Writer {
	return m.Raw(templ.EscapeString(value))
}

// Attr writes ` name="value"` with the value escaped.
func (m *Writer) Attr(name, value string) *Writer {
	return m.Raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// URLAttr writes a URL attribute, replacing unsafe schemes.
func (m *Writer) URLAttr(name, url string) *Writer {
	return m.Attr(name, string(templ.URL(url)))
}

// Render writes a child component.
func (m *Writer) Render(ctx context.Context, c templ.Component) *Writer {
	if m.err == nil && c != nil {
		m.err = c.Render(ctx, m.w)
	}
	return m
}

// Err returns the first write error.
func (m *Writer) Err() error {
	return m.err
}

// Classes joins the non-empty class names.
func Classes(names ...string) string {
	kept := names[:0:0]
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			kept = append(kept, name)
		}
	}
	return strings.Join(kept, " ")
}
