package theme

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sort"

	applog "brochure/internal/log"
)

// Property name prefixes written to the style root.
const (
	ColorPrefix  = "--color-"
	FontPrefix   = "--font-"
	RadiusPrefix = "--radius-"
	ShadowPrefix = "--shadow-"
	rgbSuffix    = "-rgb"
)

// Resolved is a descriptor merged with one preset.
type Resolved struct {
	Preset  string
	Colors  map[string]string
	Fonts   map[string]string
	Radius  map[string]string
	Shadows map[string]string
	Dark    bool
}

// Resolve merges the named preset onto the base descriptor. Every call starts
// from the base maps, so repeated switches never accumulate overrides. An
// unknown preset yields the bare base and an *UnknownPresetError.
func Resolve(d *Descriptor, preset string) (Resolved, error) {
	if d == nil {
		return Resolved{}, errors.New("resolve theme: descriptor is nil")
	}
	preset = normalizePreset(preset)

	resolved := Resolved{
		Preset:  preset,
		Colors:  maps.Clone(map[string]string(d.Colors)),
		Fonts:   maps.Clone(d.Fonts),
		Radius:  maps.Clone(d.BorderRadius),
		Shadows: maps.Clone(d.Shadows),
		Dark:    IsDarkPreset(preset),
	}
	if resolved.Colors == nil {
		resolved.Colors = map[string]string{}
	}
	if resolved.Fonts == nil {
		resolved.Fonts = map[string]string{}
	}

	if !d.HasPreset(preset) {
		resolved.Preset = DefaultPreset
		resolved.Dark = false
		return resolved, &UnknownPresetError{Name: preset}
	}

	override := d.Presets[preset]
	for key, value := range override.Colors {
		if _, ok := resolved.Colors[key]; ok {
			resolved.Colors[key] = value
		}
	}
	for key, value := range override.Fonts {
		if _, ok := resolved.Fonts[key]; ok {
			resolved.Fonts[key] = value
		}
	}
	return resolved, nil
}

// Properties derives the custom properties for r in name order. Colors that
// are not hex values keep their --color-* property but get no -rgb companion;
// each such color is reported in the returned slice.
func (r Resolved) Properties() ([]Property, []error) {
	var (
		props    []Property
		problems []error
	)
	add := func(name, value string) {
		if !propertyNamePattern.MatchString(name) || !safeValue(value) {
			problems = append(problems, fmt.Errorf("skipping unsafe property %s", name))
			return
		}
		props = append(props, Property{Name: name, Value: value})
	}

	for _, key := range sortedKeys(r.Colors) {
		value := r.Colors[key]
		add(ColorPrefix+key, value)
		rgb, err := ParseHex(value)
		if err != nil {
			problems = append(problems, &MalformedColorError{Key: key, Value: value})
			continue
		}
		add(ColorPrefix+key+rgbSuffix, rgb.String())
	}
	for _, key := range sortedKeys(r.Fonts) {
		add(FontPrefix+key, r.Fonts[key])
	}
	for _, key := range sortedKeys(r.Radius) {
		add(RadiusPrefix+key, r.Radius[key])
	}
	for _, key := range sortedKeys(r.Shadows) {
		add(ShadowPrefix+key, r.Shadows[key])
	}
	return props, problems
}

// Apply resolves preset against d and writes the result to root in one
// commit. An unknown preset leaves root untouched.
func Apply(ctx context.Context, root *StyleRoot, d *Descriptor, preset string) (Resolved, error) {
	resolved, err := Resolve(d, preset)
	if err != nil {
		applog.Warn(ctx, "theme preset not applied", "preset", preset, "error", err)
		return resolved, err
	}
	commit(ctx, root, resolved)
	return resolved, nil
}

func commit(ctx context.Context, root *StyleRoot, resolved Resolved) uint64 {
	props, problems := resolved.Properties()
	for _, problem := range problems {
		applog.Warn(ctx, "theme property degraded", "preset", resolved.Preset, "error", problem)
	}
	version := root.Commit(props)
	applog.Debug(ctx, "theme applied", "preset", resolved.Preset, "properties", len(props), "version", version)
	return version
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ColorVar returns the var() reference for a color key.
func ColorVar(key string) string {
	return "var(" + ColorPrefix + key + ")"
}
