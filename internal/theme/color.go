package theme

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var hexPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// RGB holds 8-bit channels of a parsed hex color.
type RGB struct {
	R, G, B uint8
}

// String formats the triple the way the -rgb companion properties expect it.
func (c RGB) String() string {
	return fmt.Sprintf("%d, %d, %d", c.R, c.G, c.B)
}

// RGBA composes the triple with an alpha value clamped to [0, 1].
func (c RGB) RGBA(opacity float64) string {
	switch {
	case opacity < 0:
		opacity = 0
	case opacity > 1:
		opacity = 1
	}
	return fmt.Sprintf("rgba(%s, %s)", c.String(), strconv.FormatFloat(opacity, 'f', -1, 64))
}

// ParseHex parses #rgb and #rrggbb values. Anything else yields a
// *MalformedColorError.
func ParseHex(value string) (RGB, error) {
	value = strings.TrimSpace(value)
	if !hexPattern.MatchString(value) {
		return RGB{}, &MalformedColorError{Value: value}
	}
	c, err := colorful.Hex(strings.ToLower(value))
	if err != nil {
		return RGB{}, &MalformedColorError{Value: value}
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}
