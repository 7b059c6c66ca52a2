package theme

import (
	"encoding/hex"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"
)

// DefaultTransitionWindow is how long the transition class stays on after a commit.
const DefaultTransitionWindow = 300 * time.Millisecond

// TransitionClass is the body class that lets color changes animate.
const TransitionClass = "theme-transition"

var propertyNamePattern = regexp.MustCompile(`^--[A-Za-z0-9_-]+$`)

// Property is a single CSS custom property on the style root.
type Property struct {
	Name  string
	Value string
}

// Snapshot is a consistent view of the style root at one version.
type Snapshot struct {
	Version    uint64
	Properties []Property
}

// RootOption configures a StyleRoot.
type RootOption func(*StyleRoot)

// WithClock overrides the clock used for transition tracking.
func WithClock(now func() time.Time) RootOption {
	return func(r *StyleRoot) {
		if now != nil {
			r.now = now
		}
	}
}

// WithTransitionWindow sets how long Transitioning reports true after a commit.
// A zero window disables the transition class.
func WithTransitionWindow(d time.Duration) RootOption {
	return func(r *StyleRoot) {
		if d >= 0 {
			r.window = d
		}
	}
}

// StyleRoot is the global style surface of one page: the custom properties on
// the document root plus the theme version marker. Commit replaces the whole
// property set at once, so readers never see a mix of two presets.
type StyleRoot struct {
	mu          sync.RWMutex
	props       map[string]string
	version     uint64
	committedAt time.Time
	now         func() time.Time
	window      time.Duration

	observers    map[uint64]func(version uint64)
	nextObserver uint64
}

// NewStyleRoot returns an empty style root at version zero.
func NewStyleRoot(opts ...RootOption) *StyleRoot {
	r := &StyleRoot{
		props:     map[string]string{},
		now:       time.Now,
		window:    DefaultTransitionWindow,
		observers: map[uint64]func(uint64){},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Commit swaps in props as the complete property set, bumps the version and
// notifies observers after the swap.
func (r *StyleRoot) Commit(props []Property) uint64 {
	next := make(map[string]string, len(props))
	for _, p := range props {
		next[p.Name] = p.Value
	}

	r.mu.Lock()
	r.props = next
	r.version++
	version := r.version
	r.committedAt = r.now()
	observers := make([]func(uint64), 0, len(r.observers))
	for _, fn := range r.observers {
		observers = append(observers, fn)
	}
	r.mu.Unlock()

	for _, fn := range observers {
		fn(version)
	}
	return version
}

// Property returns the current value of name or the empty string.
func (r *StyleRoot) Property(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.props[name]
}

// Properties returns the values of names read at a single version.
func (r *StyleRoot) Properties(names ...string) ([]string, uint64) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	values := make([]string, len(names))
	for i, name := range names {
		values[i] = r.props[name]
	}
	return values, r.version
}

// Version returns the theme version marker.
func (r *StyleRoot) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

// Transitioning reports whether the last commit happened within the transition window.
func (r *StyleRoot) Transitioning() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.version == 0 || r.window == 0 {
		return false
	}
	return r.now().Sub(r.committedAt) < r.window
}

// Snapshot returns all properties sorted by name.
func (r *StyleRoot) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	props := make([]Property, 0, len(r.props))
	for name, value := range r.props {
		props = append(props, Property{Name: name, Value: value})
	}
	sort.Slice(props, func(i, j int) bool { return props[i].Name < props[j].Name })
	return Snapshot{Version: r.version, Properties: props}
}

// CSS renders the style root as a :root rule. An empty root renders as "".
func (r *StyleRoot) CSS() string {
	return r.Snapshot().CSS()
}

// CSS renders the snapshot as a :root rule.
func (s Snapshot) CSS() string {
	if len(s.Properties) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(":root {\n")
	for _, p := range s.Properties {
		b.WriteString("  ")
		b.WriteString(p.Name)
		b.WriteString(": ")
		b.WriteString(p.Value)
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// Fingerprint is a short blake2b digest of the rendered CSS, stable across
// commits that produce the same property set.
func (s Snapshot) Fingerprint() string {
	sum := blake2b.Sum256([]byte(s.CSS()))
	return hex.EncodeToString(sum[:12])
}

// Observe registers fn to run after every commit. The returned function removes it.
func (r *StyleRoot) Observe(fn func(version uint64)) func() {
	if fn == nil {
		return func() {}
	}
	r.mu.Lock()
	id := r.nextObserver
	r.nextObserver++
	r.observers[id] = fn
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.observers, id)
			r.mu.Unlock()
		})
	}
}

func (r *StyleRoot) observerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.observers)
}

// safeValue rejects values that could escape a declaration or a style element.
func safeValue(value string) bool {
	return value != "" && !strings.ContainsAny(value, ";{}<>\n\r")
}
