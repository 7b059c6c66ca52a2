package theme

import "fmt"

// LoadError reports that the theme descriptor could not be fetched or did not
// have the expected shape. It is never fatal: the store stays uninitialized and
// consumers fall back to empty values.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load theme descriptor from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// UnknownPresetError reports a preset name that the descriptor does not define.
type UnknownPresetError struct {
	Name string
}

func (e *UnknownPresetError) Error() string {
	return fmt.Sprintf("unknown theme preset %q", e.Name)
}

// MalformedColorError reports a color value that is not #rgb or #rrggbb. Only
// the -rgb companion property of that color is skipped.
type MalformedColorError struct {
	Key   string
	Value string
}

func (e *MalformedColorError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("malformed hex color %q", e.Value)
	}
	return fmt.Sprintf("malformed hex color %q for %q", e.Value, e.Key)
}
