// Package resource fetches the static documents the site is built from.
//
// Sources never cache: every Open performs a fresh read so edits to the
// theme or content documents are visible on the next load.
package resource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const maxDocumentSize = 4 << 20

// ErrNotFound is returned when the document does not exist at the source.
var ErrNotFound = errors.New("resource not found")

// Source yields the raw bytes of a single document.
type Source interface {
	Name() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

type httpSource struct {
	url    string
	client *http.Client
}

// HTTP returns a Source reading url with a no-store cache policy.
func HTTP(url string, client *http.Client) Source {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &httpSource{url: url, client: client}
}

func (s *httpSource) Name() string { return s.url }

func (s *httpSource) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.url, err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: %w", s.url, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: unexpected status %d", s.url, resp.StatusCode)
	}
	return resp.Body, nil
}

type fsSource struct {
	fsys fs.FS
	name string
}

// FS returns a Source reading name from fsys.
func FS(fsys fs.FS, name string) Source {
	return &fsSource{fsys: fsys, name: strings.TrimPrefix(path.Clean(name), "/")}
}

func (s *fsSource) Name() string { return s.name }

func (s *fsSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := s.fsys.Open(s.name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("open %s: %w", s.name, ErrNotFound)
		}
		return nil, fmt.Errorf("open %s: %w", s.name, err)
	}
	return f, nil
}

// Locate picks where a document comes from: url when set, else the file at
// file, else name inside fallback.
func Locate(url, file string, fallback fs.FS, name string) Source {
	switch {
	case strings.TrimSpace(url) != "":
		return HTTP(strings.TrimSpace(url), nil)
	case strings.TrimSpace(file) != "":
		file = filepath.Clean(strings.TrimSpace(file))
		return &fileSource{path: file, fsSource: fsSource{fsys: os.DirFS(filepath.Dir(file)), name: filepath.Base(file)}}
	default:
		return FS(fallback, name)
	}
}

// fileSource is an fsSource that reports its full path.
type fileSource struct {
	fsSource
	path string
}

func (s *fileSource) Name() string { return s.path }

// Fetch reads the whole document from src and decodes it into v.
func Fetch(ctx context.Context, src Source, v any) error {
	if src == nil {
		return errors.New("resource source is nil")
	}
	rc, err := src.Open(ctx)
	if err != nil {
		return err
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxDocumentSize+1))
	if err != nil {
		return fmt.Errorf("read %s: %w", src.Name(), err)
	}
	if len(data) > maxDocumentSize {
		return fmt.Errorf("read %s: document exceeds %d bytes", src.Name(), maxDocumentSize)
	}
	return Decode(src.Name(), data, v)
}

// Decode parses data as YAML when name carries a YAML extension and as JSON otherwise.
func Decode(name string, data []byte, v any) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Errorf("decode %s: empty document", name)
	}
	switch strings.ToLower(path.Ext(stripQuery(name))) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}
	default:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}
	}
	return nil
}

func stripQuery(name string) string {
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		return name[:i]
	}
	return name
}
