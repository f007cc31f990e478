// Package theme resolves custom color tokens such as "--green".
package theme

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"gopkg.in/yaml.v3"
)

// Theme maps token names to CSS-style hex colors.
type Theme struct {
	Name   string            `yaml:"name"`
	Tokens map[string]string `yaml:"tokens"`
}

// Default mirrors the dark dashboard palette.
func Default() Theme {
	return Theme{
		Name: "dark",
		Tokens: map[string]string{
			"--green":      "#22c55e",
			"--yellow":     "#eab308",
			"--orange":     "#f97316",
			"--red":        "#ef4444",
			"--chart-line": "#3b82f6",
			"--chart-grid": "#27272a",
			"--chart-text": "#a1a1aa",
			"--chart-pin":  "#f59e0b",
		},
	}
}

// Load reads a YAML theme file. Tokens missing from the file stay unset.
func Load(path string) (Theme, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("read theme: %w", err)
	}
	var t Theme
	if err := yaml.Unmarshal(b, &t); err != nil {
		return Theme{}, fmt.Errorf("parse theme %s: %w", path, err)
	}
	if t.Tokens == nil {
		t.Tokens = map[string]string{}
	}
	return t, nil
}

// Color resolves a token. Unset or malformed values report false.
func (t Theme) Color(token string) (drawing.Color, bool) {
	v, ok := t.Tokens[token]
	if !ok {
		return drawing.Color{}, false
	}
	return ParseHex(v)
}

// ColorOr resolves a token, falling back to def.
func (t Theme) ColorOr(token string, def drawing.Color) drawing.Color {
	if c, ok := t.Color(token); ok {
		return c
	}
	return def
}

// ParseHex parses #rgb, #rrggbb or #rrggbbaa.
func ParseHex(s string) (drawing.Color, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6, 8:
	default:
		return drawing.Color{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return drawing.Color{}, false
	}
	if len(s) == 6 {
		return drawing.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
	}
	return drawing.Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
}
