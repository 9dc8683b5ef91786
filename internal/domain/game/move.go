package game

import (
	"fmt"
	"strconv"
	"strings"

	errs "goban/internal/errors"
)

// MaxBoardSize is the largest board whose columns can all be named: A to Z
// without I.
const MaxBoardSize = 25

// PassVertex is the move token for passing. It is matched case-insensitively.
const PassVertex = "pass"

// Move is a request by Player to play Vertex, either PassVertex or a
// coordinate such as "D4".
type Move struct {
	Player Color  `json:"player" bson:"player"`
	Vertex string `json:"vertex" bson:"vertex"`
}

// @name Moves
type Moves struct {
	Moves []Move `json:"moves"`
}

func (m Move) IsPass() bool {
	return strings.EqualFold(m.Vertex, PassVertex)
}

// ParseVertex converts a coordinate such as "D4" into 0-indexed (row, col) on
// a size x size board. Columns are letters starting at A with I left out, rows
// are numbered from 1 at the bottom.
func ParseVertex(vertex string, size int) (row, col int, err error) {
	if len(vertex) < 2 {
		return 0, 0, fmt.Errorf("%w: %q", errs.ErrIllegalCoordinate, vertex)
	}

	letter := vertex[0]
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	if letter < 'A' || letter > 'Z' {
		return 0, 0, fmt.Errorf("%w: %q", errs.ErrIllegalCoordinate, vertex)
	}
	if letter == 'I' {
		return 0, 0, fmt.Errorf("%w: %q has no column I", errs.ErrIllegalCoordinate, vertex)
	}
	col = int(letter) - 'A'
	if letter > 'I' {
		col--
	}

	row, err = strconv.Atoi(vertex[1:])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", errs.ErrIllegalCoordinate, vertex)
	}
	row--

	if row < 0 || col < 0 || row >= size || col >= size {
		return 0, 0, fmt.Errorf("%w: %q is off a %dx%d board", errs.ErrIllegalCoordinate, vertex, size, size)
	}
	return row, col, nil
}

// FormatVertex is the inverse of ParseVertex.
func FormatVertex(row, col int) string {
	letter := 'A' + rune(col)
	if letter >= 'I' {
		letter++
	}
	return fmt.Sprintf("%c%d", letter, row+1)
}
