package markup

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/a-h/templ"
)

type failingWriter struct{ calls int }

func (f *failingWriter) Write(p []byte) (int, error) {
	f.calls++
	return 0, errors.New("closed")
}

func TestWriterEscapesTextAndAttributes(t *testing.T) {
	var buf bytes.Buffer
	m := New(&buf)
	m.Raw("<p").Attr("title", `a "b" <c>`).Raw(">").Text("x < y & z").Raw("</p>")
	if err := m.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<p title="a &#34;b&#34; &lt;c&gt;">x &lt; y &amp; z</p>`
	if got := buf.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestWriterRejectsUnsafeURLs(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).URLAttr("href", "javascript:alert(1)")
	if bytes.Contains(buf.Bytes(), []byte("javascript")) {
		t.Fatalf("expected unsafe URL to be replaced: %s", buf.String())
	}
}

func TestWriterStopsAfterFirstError(t *testing.T) {
	fw := &failingWriter{}
	m := New(fw)
	m.Raw("a", "b").Text("c").Render(context.Background(), templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t.Fatal("child must not render after a failed write")
		return nil
	}))
	if m.Err() == nil {
		t.Fatal("expected write error")
	}
	if fw.calls != 1 {
		t.Fatalf("writes after failure = %d, want 1", fw.calls)
	}
}

func TestClasses(t *testing.T) {
	if got := Classes("a", " ", "", "b "); got != "a b" {
		t.Fatalf("Classes() = %q, want %q", got, "a b")
	}
}
