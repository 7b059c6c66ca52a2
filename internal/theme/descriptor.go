package theme

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPreset is the preset applied when nothing valid is stored. It is
	// always selectable even when the descriptor does not define it.
	DefaultPreset = "light"
	// DarkPreset is the preset selected when the system asks for a dark scheme.
	DarkPreset = "dark"

	darkSuffix = "-dark"
)

var presetNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Colors maps semantic color keys to color values. Nested groups in the source
// document are flattened with a dash, so gray.100 becomes gray-100.
type Colors map[string]string

// UnmarshalJSON flattens nested color groups.
func (c *Colors) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := Colors{}
	if err := flattenColors(out, "", raw); err != nil {
		return err
	}
	*c = out
	return nil
}

// UnmarshalYAML flattens nested color groups.
func (c *Colors) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	out := Colors{}
	if err := flattenColors(out, "", raw); err != nil {
		return err
	}
	*c = out
	return nil
}

func flattenColors(out Colors, prefix string, raw any) error {
	switch v := raw.(type) {
	case map[string]any:
		for key, value := range v {
			if err := flattenColors(out, joinKey(prefix, key), value); err != nil {
				return err
			}
		}
	case map[any]any:
		for key, value := range v {
			if err := flattenColors(out, joinKey(prefix, fmt.Sprint(key)), value); err != nil {
				return err
			}
		}
	case string:
		if prefix == "" {
			return errors.New("colors must be an object")
		}
		out[prefix] = strings.TrimSpace(v)
	case nil:
	default:
		return fmt.Errorf("color %q must be a string, got %T", prefix, raw)
	}
	return nil
}

func joinKey(prefix, key string) string {
	key = strings.TrimSpace(key)
	if prefix == "" {
		return key
	}
	return prefix + "-" + key
}

// Preset is a partial override merged onto the base descriptor.
type Preset struct {
	Colors Colors            `json:"colors,omitempty" yaml:"colors,omitempty"`
	Fonts  map[string]string `json:"fonts,omitempty" yaml:"fonts,omitempty"`
}

// Descriptor is the source-of-truth theme document.
type Descriptor struct {
	Colors       Colors            `json:"colors" yaml:"colors" validate:"required"`
	Fonts        map[string]string `json:"fonts" yaml:"fonts" validate:"required"`
	BorderRadius map[string]string `json:"borderRadius,omitempty" yaml:"borderRadius,omitempty"`
	Shadows      map[string]string `json:"shadows,omitempty" yaml:"shadows,omitempty"`
	Presets      map[string]Preset `json:"presets,omitempty" yaml:"presets,omitempty" validate:"omitempty,dive,keys,preset_name,endkeys"`
}

type baseTokens struct {
	Primary     string `validate:"required"`
	Background  string `validate:"required"`
	Foreground  string `validate:"required"`
	BodyFont    string `validate:"required"`
	HeadingFont string `validate:"required"`
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("preset_name", func(fl validator.FieldLevel) bool {
			return presetNamePattern.MatchString(fl.Field().String())
		})
		validateInst = v
	})
	return validateInst
}

// Validate checks that the base descriptor is fully resolvable and that every
// preset only overrides keys the base already defines.
func (d *Descriptor) Validate() error {
	if d == nil {
		return errors.New("descriptor is nil")
	}
	v := validatorInstance()
	if err := v.Struct(d); err != nil {
		return fmt.Errorf("descriptor: %w", err)
	}
	base := baseTokens{
		Primary:     d.Colors["primary"],
		Background:  d.Colors["background"],
		Foreground:  d.Colors["foreground"],
		BodyFont:    d.Fonts["body"],
		HeadingFont: d.Fonts["heading"],
	}
	if err := v.Struct(base); err != nil {
		return fmt.Errorf("descriptor base tokens: %w", err)
	}
	for _, name := range d.PresetNames() {
		preset := d.Presets[name]
		for key := range preset.Colors {
			if _, ok := d.Colors[key]; !ok {
				return fmt.Errorf("preset %q overrides unknown color %q", name, key)
			}
		}
		for key := range preset.Fonts {
			if _, ok := d.Fonts[key]; !ok {
				return fmt.Errorf("preset %q overrides unknown font %q", name, key)
			}
		}
	}
	return nil
}

// PresetNames returns the defined preset names in lexical order.
func (d *Descriptor) PresetNames() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, len(d.Presets))
	for name := range d.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasPreset reports whether name can be applied. The default preset always can.
func (d *Descriptor) HasPreset(name string) bool {
	if d == nil {
		return false
	}
	if name == DefaultPreset {
		return true
	}
	_, ok := d.Presets[name]
	return ok
}

// IsDarkPreset reports whether name denotes a dark scheme.
func IsDarkPreset(name string) bool {
	return name == DarkPreset || strings.HasSuffix(name, darkSuffix)
}

// ToggleTarget returns the light or dark counterpart of current: blue and
// blue-dark swap, as do light and dark. ok is false when d does not define the
// counterpart.
func ToggleTarget(d *Descriptor, current string) (string, bool) {
	var target string
	switch {
	case current == DarkPreset:
		target = DefaultPreset
	case current == DefaultPreset:
		target = DarkPreset
	case strings.HasSuffix(current, darkSuffix):
		target = strings.TrimSuffix(current, darkSuffix)
	default:
		target = current + darkSuffix
	}
	if !d.HasPreset(target) {
		return target, false
	}
	return target, true
}

func normalizePreset(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
