package theme

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	applog "brochure/internal/log"
)

// State is the lifecycle position of a Store.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// ActiveTheme is the applied theme. A new value replaces the old one on every
// preset switch; its maps are never modified afterwards.
type ActiveTheme struct {
	Descriptor *Descriptor
	Preset     string
	Colors     map[string]string
	Fonts      map[string]string
	Dark       bool
}

// Color returns the resolved color for key or "".
func (a ActiveTheme) Color(key string) string {
	return a.Colors[key]
}

// Option configures a Store.
type Option func(*Store)

// WithStyleRoot makes the store write to root instead of a private one.
func WithStyleRoot(root *StyleRoot) Option {
	return func(s *Store) {
		if root != nil {
			s.root = root
		}
	}
}

// WithSchemeSource connects the store to the system color scheme.
func WithSchemeSource(src SchemeSource) Option {
	return func(s *Store) {
		s.scheme = src
	}
}

// Store owns the active theme of one page. Preset switches are serialized
// through a single path that updates the active theme, commits the style root
// and then notifies subscribers.
type Store struct {
	id     string
	loader Loader
	prefs  Preferences
	root   *StyleRoot
	scheme SchemeSource

	switchMu sync.Mutex

	mu           sync.RWMutex
	state        State
	descriptor   *Descriptor
	active       *ActiveTheme
	preferSystem bool
	watchCtx     context.Context
	stopWatch    func()
	subs         map[uint64]func(ActiveTheme)
	nextSub      uint64
}

// NewStore returns an uninitialized store. A nil prefs keeps preferences in memory.
func NewStore(loader Loader, prefs Preferences, opts ...Option) *Store {
	if prefs == nil {
		prefs = NewMemoryPreferences()
	}
	s := &Store{
		id:     uuid.NewString(),
		loader: loader,
		prefs:  prefs,
		subs:   map[uint64]func(ActiveTheme){},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.root == nil {
		s.root = NewStyleRoot()
	}
	return s
}

// Initialize loads the descriptor and applies the starting preset: the stored
// preset when the descriptor defines it, otherwise DefaultPreset. When the user
// opted in to the system scheme and the stored preset disagrees with it, the
// system preset wins. Calling it again
// once loading started is a no-op. A failed load returns a *LoadError and
// leaves the store uninitialized.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateUninitialized {
		s.mu.Unlock()
		return nil
	}
	s.state = StateLoading
	s.mu.Unlock()

	applog.Debug(ctx, "loading theme descriptor", "store", s.id)
	desc, err := s.load(ctx)
	if err != nil {
		s.mu.Lock()
		s.state = StateUninitialized
		s.mu.Unlock()
		applog.Error(ctx, "theme descriptor unavailable, rendering defaults", "store", s.id, "error", err)
		return err
	}

	preferSystem := parseFlag(s.read(ctx, PreferSystemKey))
	preset := s.startingPreset(ctx, desc, preferSystem)

	s.switchMu.Lock()
	resolved, err := Resolve(desc, preset)
	if err != nil {
		resolved, _ = Resolve(desc, DefaultPreset)
	}
	active := newActive(desc, resolved)
	s.mu.Lock()
	s.descriptor = desc
	s.active = active
	s.preferSystem = preferSystem
	s.watchCtx = context.WithoutCancel(ctx)
	s.state = StateReady
	s.mu.Unlock()
	commit(ctx, s.root, resolved)
	s.notify(*active)
	s.switchMu.Unlock()

	if preferSystem {
		s.watchSystem()
	}
	applog.Debug(ctx, "theme store ready", "store", s.id, "preset", active.Preset, "dark", active.Dark, "preferSystem", preferSystem)
	return nil
}

func (s *Store) load(ctx context.Context) (*Descriptor, error) {
	if s.loader == nil {
		return nil, &LoadError{Source: "<nil>", Err: errors.New("no theme loader configured")}
	}
	desc, err := s.loader.Load(ctx)
	if err == nil && desc == nil {
		err = errors.New("loader returned no descriptor")
	}
	if err != nil {
		var loadErr *LoadError
		if !errors.As(err, &loadErr) {
			err = &LoadError{Source: "loader", Err: err}
		}
		return nil, err
	}
	return desc, nil
}

func (s *Store) startingPreset(ctx context.Context, desc *Descriptor, preferSystem bool) string {
	stored := normalizePreset(s.read(ctx, PresetKey))
	if stored != "" && !desc.HasPreset(stored) {
		applog.Warn(ctx, "stored theme preset not defined, using default", "store", s.id, "stored", stored, "default", DefaultPreset)
		stored = ""
	}
	if preferSystem && s.scheme != nil {
		if scheme, ok := s.scheme.Current(); ok && desc.HasPreset(scheme.Preset()) && !schemeMatches(stored, scheme) {
			return scheme.Preset()
		}
	}
	if stored == "" {
		return DefaultPreset
	}
	return stored
}

// schemeMatches reports whether preset already has the lightness of scheme,
// so following the system keeps an explicit pick such as blue-dark.
func schemeMatches(preset string, scheme Scheme) bool {
	if preset == "" {
		return false
	}
	return IsDarkPreset(preset) == (scheme == SchemeDark)
}

// followScheme applies the preset for scheme unless the active one already matches it.
func (s *Store) followScheme(ctx context.Context, scheme Scheme) error {
	if current, ok := s.Active(); ok && schemeMatches(current.Preset, scheme) {
		return nil
	}
	return s.SetPreset(ctx, scheme.Preset())
}

// SetPreset switches to name, persists it and notifies subscribers. Before
// the store is ready it does nothing and returns nil. An undefined name
// returns an *UnknownPresetError and keeps the current preset.
//
// Subscribers run on the calling goroutine and must not call SetPreset
// themselves.
func (s *Store) SetPreset(ctx context.Context, name string) error {
	s.switchMu.Lock()
	defer s.switchMu.Unlock()

	s.mu.RLock()
	state, desc, current := s.state, s.descriptor, s.active
	s.mu.RUnlock()

	if state != StateReady {
		applog.Debug(ctx, "ignoring preset change before theme is ready", "store", s.id, "preset", name, "state", state.String())
		return nil
	}

	name = normalizePreset(name)
	if !desc.HasPreset(name) {
		err := &UnknownPresetError{Name: name}
		applog.Warn(ctx, "theme preset change rejected", "store", s.id, "error", err, "active", current.Preset)
		return err
	}
	if current != nil && current.Preset == name {
		s.write(ctx, PresetKey, name)
		return nil
	}

	resolved, err := Resolve(desc, name)
	if err != nil {
		return err
	}
	active := newActive(desc, resolved)
	s.mu.Lock()
	s.active = active
	s.mu.Unlock()
	commit(ctx, s.root, resolved)
	s.write(ctx, PresetKey, name)
	s.notify(*active)

	applog.Debug(ctx, "theme preset switched", "store", s.id, "from", current.Preset, "to", name, "dark", active.Dark)
	return nil
}

// Toggle switches between the light and dark variant of the active preset.
func (s *Store) Toggle(ctx context.Context) error {
	s.mu.RLock()
	desc, current := s.descriptor, s.active
	s.mu.RUnlock()
	if current == nil {
		return nil
	}
	target, ok := ToggleTarget(desc, current.Preset)
	if !ok {
		err := &UnknownPresetError{Name: target}
		applog.Warn(ctx, "theme toggle has no counterpart", "store", s.id, "active", current.Preset, "error", err)
		return err
	}
	return s.SetPreset(ctx, target)
}

// SetPreferSystem persists the opt-in flag for following the system scheme.
// Enabling it on a ready store applies the current system scheme right away.
func (s *Store) SetPreferSystem(ctx context.Context, enabled bool) error {
	s.write(ctx, PreferSystemKey, formatFlag(enabled))

	s.mu.Lock()
	s.preferSystem = enabled
	ready := s.state == StateReady
	s.mu.Unlock()

	if !enabled {
		s.stopWatching()
		return nil
	}
	if !ready || s.scheme == nil {
		return nil
	}
	s.watchSystem()
	if scheme, ok := s.scheme.Current(); ok {
		return s.followScheme(ctx, scheme)
	}
	return nil
}

func (s *Store) watchSystem() {
	if s.scheme == nil {
		return
	}
	s.mu.RLock()
	watching := s.stopWatch != nil
	ctx := s.watchCtx
	s.mu.RUnlock()
	if watching {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cancel := s.scheme.Subscribe(func(scheme Scheme) {
		s.onSystemScheme(ctx, scheme)
	})

	s.mu.Lock()
	if s.stopWatch != nil {
		s.mu.Unlock()
		cancel()
		return
	}
	s.stopWatch = cancel
	s.mu.Unlock()
}

func (s *Store) stopWatching() {
	s.mu.Lock()
	cancel := s.stopWatch
	s.stopWatch = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (s *Store) onSystemScheme(ctx context.Context, scheme Scheme) {
	s.mu.RLock()
	enabled := s.preferSystem
	s.mu.RUnlock()
	if !enabled {
		return
	}
	applog.Debug(ctx, "system color scheme changed", "store", s.id, "scheme", string(scheme))
	_ = s.followScheme(ctx, scheme)
}

// Subscribe registers fn to receive every newly applied theme. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(ActiveTheme)) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) notify(active ActiveTheme) {
	s.mu.RLock()
	subs := make([]func(ActiveTheme), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.RUnlock()
	for _, fn := range subs {
		fn(active)
	}
}

// Close removes the system scheme subscription and all subscribers.
func (s *Store) Close() {
	s.stopWatching()
	s.mu.Lock()
	s.subs = map[uint64]func(ActiveTheme){}
	s.mu.Unlock()
}

// Active returns a copy of the applied theme; ok is false before the first load.
func (s *Store) Active() (ActiveTheme, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == nil {
		return ActiveTheme{}, false
	}
	out := *s.active
	out.Colors = maps.Clone(out.Colors)
	out.Fonts = maps.Clone(out.Fonts)
	return out, true
}

// ActivePreset returns the applied preset name or "".
func (s *Store) ActivePreset() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == nil {
		return ""
	}
	return s.active.Preset
}

// Color returns the resolved color for key, or "" before the first load.
func (s *Store) Color(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == nil {
		return ""
	}
	return s.active.Colors[key]
}

// RGBA returns a function composing the color for key with an opacity. The
// function reads the store on every call, so it follows later preset
// switches. It returns "" when the color is unset or not a hex value.
func (s *Store) RGBA(key string) func(opacity float64) string {
	return func(opacity float64) string {
		rgb, err := ParseHex(s.Color(key))
		if err != nil {
			return ""
		}
		return rgb.RGBA(opacity)
	}
}

// Gradient returns a linear-gradient between two colors, or "" if either is unset.
func (s *Store) Gradient(start, end, direction string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == nil {
		return ""
	}
	return gradient(direction, s.active.Colors[start], s.active.Colors[end])
}

func gradient(direction, start, end string) string {
	if start == "" || end == "" {
		return ""
	}
	if strings.TrimSpace(direction) == "" {
		direction = "to right"
	}
	return "linear-gradient(" + direction + ", " + start + ", " + end + ")"
}

// IsDarkMode reports whether the applied preset is a dark one.
func (s *Store) IsDarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active != nil && s.active.Dark
}

// PreferSystem reports whether the store follows the system scheme.
func (s *Store) PreferSystem() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.preferSystem
}

// Presets lists the selectable presets, always including DefaultPreset.
func (s *Store) Presets() []string {
	s.mu.RLock()
	desc := s.descriptor
	s.mu.RUnlock()
	if desc == nil {
		return nil
	}
	names := desc.PresetNames()
	if !slices.Contains(names, DefaultPreset) {
		names = append([]string{DefaultPreset}, names...)
	}
	return names
}

// State returns the lifecycle state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// ID identifies the store in log lines.
func (s *Store) ID() string { return s.id }

// Root returns the style root the store writes to.
func (s *Store) Root() *StyleRoot { return s.root }

// Version returns the style root version marker.
func (s *Store) Version() uint64 { return s.root.Version() }

func (s *Store) read(ctx context.Context, key string) string {
	value, err := s.prefs.Get(ctx, key)
	if err != nil {
		applog.Warn(ctx, "theme preference unreadable", "store", s.id, "key", key, "error", err)
		return ""
	}
	return value
}

func (s *Store) write(ctx context.Context, key, value string) {
	if err := s.prefs.Put(ctx, key, value); err != nil {
		applog.Warn(ctx, "theme preference not persisted", "store", s.id, "key", key, "error", err)
	}
}

func newActive(desc *Descriptor, resolved Resolved) *ActiveTheme {
	return &ActiveTheme{
		Descriptor: desc,
		Preset:     resolved.Preset,
		Colors:     resolved.Colors,
		Fonts:      resolved.Fonts,
		Dark:       resolved.Dark,
	}
}
