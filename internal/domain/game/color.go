package game

import (
	"fmt"
	"strings"
)

// Color is the content of a board cell. Black and White double as the two
// players.
type Color int

const (
	Empty Color = iota
	Black
	White
)

// Opponent returns the other player. Empty has no opponent.
func Opponent(c Color) Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

func (c Color) IsPlayer() bool {
	return c == Black || c == White
}

func (c Color) String() string {
	switch c {
	case Black:
		return "B"
	case White:
		return "W"
	default:
		return ""
	}
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor accepts "B"/"W" and "black"/"white" in any case. The empty
// string is an empty cell.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return Empty, nil
	case "b", "black":
		return Black, nil
	case "w", "white":
		return White, nil
	default:
		return Empty, fmt.Errorf("unknown color %q", s)
	}
}
