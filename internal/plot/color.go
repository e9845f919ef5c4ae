package plot

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

var hexColor = regexp.MustCompile(`^[0-9a-fA-F]{3}([0-9a-fA-F]{3})?$`)

var namedColors = map[string]drawing.Color{
	"white":       drawing.ColorWhite,
	"black":       drawing.ColorBlack,
	"transparent": drawing.ColorTransparent,
	"window":      drawing.ColorFromHex("efefef"),
}

// ParseColor accepts "#rrggbb", "rrggbb", "#rgb" or one of a few names.
func ParseColor(s string) (drawing.Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[v]; ok {
		return c, nil
	}
	v = strings.TrimPrefix(v, "#")
	if !hexColor.MatchString(v) {
		return drawing.Color{}, fmt.Errorf("invalid color %q (use #rrggbb)", s)
	}
	if len(v) == 3 {
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	}
	return drawing.ColorFromHex(v), nil
}
