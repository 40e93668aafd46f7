package render

import (
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/umputun/swbrowse/pkg/config"
)

// Colors holds the terminal colors used for each request phase.
type Colors struct {
	Loading *color.Color
	Error   *color.Color
	Success *color.Color
	Info    *color.Color
}

// DefaultColors returns the built-in palette.
func DefaultColors() *Colors {
	return &Colors{
		Loading: color.New(color.FgWhite),
		Error:   color.New(color.FgRed),
		Success: color.New(color.FgGreen),
		Info:    color.New(color.FgCyan),
	}
}

// NewColors builds colors from config values in "r,g,b" form.
// malformed or empty values keep the default color.
func NewColors(cfg config.ColorConfig) *Colors {
	c := DefaultColors()
	for _, f := range []struct {
		val string
		dst **color.Color
	}{
		{cfg.Loading, &c.Loading},
		{cfg.Error, &c.Error},
		{cfg.Success, &c.Success},
		{cfg.Info, &c.Info},
	} {
		if rgb, ok := parseRGB(f.val); ok {
			*f.dst = color.RGB(rgb[0], rgb[1], rgb[2])
		}
	}
	return c
}

// parseRGB parses "r,g,b" with each component in 0-255.
func parseRGB(s string) ([3]int, bool) {
	var res [3]int
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return res, false
	}
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 || v > 255 {
			return res, false
		}
		res[i] = v
	}
	return res, true
}
