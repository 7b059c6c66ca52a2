package theme

import (
	"strings"
	"sync"
)

// Scheme is an operating-system color scheme.
type Scheme string

const (
	SchemeLight Scheme = "light"
	SchemeDark  Scheme = "dark"
)

// ParseScheme accepts "light" and "dark" in any case, with optional quotes as
// sent in the Sec-CH-Prefers-Color-Scheme header.
func ParseScheme(value string) (Scheme, bool) {
	switch strings.ToLower(strings.Trim(strings.TrimSpace(value), `"`)) {
	case "light":
		return SchemeLight, true
	case "dark":
		return SchemeDark, true
	}
	return "", false
}

// Preset returns the preset a store switches to for this scheme.
func (s Scheme) Preset() string {
	if s == SchemeDark {
		return DarkPreset
	}
	return DefaultPreset
}

// SchemeSource reports the system color scheme and its changes.
type SchemeSource interface {
	Current() (Scheme, bool)
	Subscribe(fn func(Scheme)) (cancel func())
}

// SchemeBroadcaster is a SchemeSource fed by Publish.
type SchemeBroadcaster struct {
	mu      sync.Mutex
	current Scheme
	known   bool
	subs    map[int]func(Scheme)
	nextID  int
}

// NewSchemeBroadcaster returns a broadcaster with no known scheme.
func NewSchemeBroadcaster() *SchemeBroadcaster {
	return &SchemeBroadcaster{subs: map[int]func(Scheme){}}
}

// NewStaticScheme returns a broadcaster that already knows s.
func NewStaticScheme(s Scheme) *SchemeBroadcaster {
	b := NewSchemeBroadcaster()
	b.current, b.known = s, true
	return b
}

func (b *SchemeBroadcaster) Current() (Scheme, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current, b.known
}

func (b *SchemeBroadcaster) Subscribe(fn func(Scheme)) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Publish records s and notifies subscribers when it differs from the last value.
func (b *SchemeBroadcaster) Publish(s Scheme) {
	b.mu.Lock()
	if b.known && b.current == s {
		b.mu.Unlock()
		return
	}
	b.current, b.known = s, true
	subs := make([]func(Scheme), 0, len(b.subs))
	for _, fn := range b.subs {
		subs = append(subs, fn)
	}
	b.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}

func (b *SchemeBroadcaster) subscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
