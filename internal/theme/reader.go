package theme

import "sync"

// Reader reads values straight from a StyleRoot and refreshes itself on every
// version bump, independent of any Store subscription. Close must be called
// to drop the observer.
type Reader struct {
	root    *StyleRoot
	names   []string
	compute func(values []string) (string, bool)

	mu      sync.RWMutex
	value   string
	version uint64
	cancel  func()
}

func newReader(root *StyleRoot, compute func([]string) (string, bool), names ...string) *Reader {
	r := &Reader{root: root, names: names, compute: compute}
	r.refresh()
	r.cancel = root.Observe(func(uint64) { r.refresh() })
	return r
}

// NewColorReader follows --color-<key>, returning fallback while it is unset.
func NewColorReader(root *StyleRoot, key, fallback string) *Reader {
	return newReader(root, func(values []string) (string, bool) {
		if values[0] == "" {
			return fallback, true
		}
		return values[0], true
	}, ColorPrefix+key)
}

// NewRGBAReader follows the -rgb companion of key composed with opacity.
func NewRGBAReader(root *StyleRoot, key string, opacity float64) *Reader {
	return newReader(root, func(values []string) (string, bool) {
		if values[0] == "" {
			return "", true
		}
		rgb, err := ParseHex(values[1])
		if err != nil {
			return "", true
		}
		return rgb.RGBA(opacity), true
	}, ColorPrefix+key+rgbSuffix, ColorPrefix+key)
}

// NewGradientReader follows a linear-gradient between two colors. The value
// only changes once both colors are set.
func NewGradientReader(root *StyleRoot, start, end, direction string) *Reader {
	return newReader(root, func(values []string) (string, bool) {
		g := gradient(direction, values[0], values[1])
		return g, g != ""
	}, ColorPrefix+start, ColorPrefix+end)
}

func (r *Reader) refresh() {
	values, version := r.root.Properties(r.names...)
	value, ok := r.compute(values)

	r.mu.Lock()
	defer r.mu.Unlock()
	if version < r.version {
		return
	}
	r.version = version
	if ok {
		r.value = value
	}
}

// Value returns the last value read from the root.
func (r *Reader) Value() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value
}

// Version returns the root version the value was read at.
func (r *Reader) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

// Close stops following the root.
func (r *Reader) Close() {
	if r.cancel != nil {
		r.cancel()
	}
}
