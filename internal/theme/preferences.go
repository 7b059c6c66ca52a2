package theme

import (
	"context"
	"strconv"
	"strings"
	"sync"
)

// Storage keys for the persisted theme preference.
const (
	PresetKey       = "theme:preset"
	PreferSystemKey = "theme:prefer-system"
)

// Preferences is durable client-side key-value storage. Get returns "" for
// keys that were never written.
type Preferences interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
}

// MemoryPreferences keeps preferences in process memory.
type MemoryPreferences struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryPreferences returns empty in-memory preferences.
func NewMemoryPreferences() *MemoryPreferences {
	return &MemoryPreferences{values: map[string]string{}}
}

func (m *MemoryPreferences) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

func (m *MemoryPreferences) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func formatFlag(enabled bool) string {
	return strconv.FormatBool(enabled)
}

// parseFlag treats anything unrecognised as false.
func parseFlag(value string) bool {
	enabled, err := strconv.ParseBool(strings.TrimSpace(value))
	return err == nil && enabled
}
