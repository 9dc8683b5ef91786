package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "goban/internal/errors"
)

func newTestBoard(t *testing.T, n int) *Board {
	t.Helper()
	return NewBoard(n, newZobrist(n, rand.New(rand.NewPCG(1, 2))))
}

type stone struct {
	color    Color
	row, col int
}

func placeAll(t *testing.T, b *Board, stones ...stone) {
	t.Helper()
	for _, s := range stones {
		require.NoError(t, b.Place(s.color, s.row, s.col), "placing %s at (%d, %d)", s.color, s.row, s.col)
	}
}

func TestNewBoard(t *testing.T) {
	t.Run("Board starts empty with a zero hash", func(t *testing.T) {
		b := newTestBoard(t, 5)

		assert.Equal(t, 5, b.Size())
		assert.Zero(t, b.Hash())
		for _, row := range b.Snapshot() {
			for _, c := range row {
				assert.Equal(t, Empty, c)
			}
		}
	})

	t.Run("Panics on a non-positive size", func(t *testing.T) {
		assert.Panics(t, func() { NewBoard(0, NewZobrist(1)) })
	})

	t.Run("Panics when the zobrist table is too small", func(t *testing.T) {
		assert.Panics(t, func() { NewBoard(9, NewZobrist(5)) })
	})
}

func TestBoard_Place(t *testing.T) {
	t.Run("Places a stone and updates the hash", func(t *testing.T) {
		// Given: an empty board
		b := newTestBoard(t, 3)

		// When: black plays in the center
		err := b.Place(Black, 1, 1)

		// Then: the stone is there and the hash matches the grid
		require.NoError(t, err)
		assert.Equal(t, Black, b.At(1, 1))
		assert.Equal(t, b.zobrist.Hash(b.cells), b.Hash())
	})

	t.Run("Rejects an occupied position without changing the board", func(t *testing.T) {
		// Given: a board with a black stone on (0, 0)
		b := newTestBoard(t, 3)
		placeAll(t, b, stone{Black, 0, 0})
		before, hash := b.Snapshot(), b.Hash()

		// When: white plays on the same point
		err := b.Place(White, 0, 0)

		// Then: the move is rejected and nothing changes
		require.ErrorIs(t, err, errs.ErrOccupiedPosition)
		assert.Equal(t, before, b.Snapshot())
		assert.Equal(t, hash, b.Hash())
	})

	t.Run("Captures a stone with no liberties", func(t *testing.T) {
		// Given: a black stone in the corner with one white neighbour
		b := newTestBoard(t, 3)
		placeAll(t, b, stone{Black, 0, 0}, stone{White, 1, 0})

		// When: white takes the last liberty
		err := b.Place(White, 0, 1)

		// Then: exactly the black stone is removed
		require.NoError(t, err)
		expected := [][]Color{
			{Empty, White, Empty},
			{White, Empty, Empty},
			{Empty, Empty, Empty},
		}
		assert.Equal(t, expected, b.Snapshot())
		assert.Equal(t, b.zobrist.Hash(b.cells), b.Hash())
	})

	t.Run("Captures a whole group", func(t *testing.T) {
		// Given: two connected black stones on the bottom edge
		b := newTestBoard(t, 4)
		placeAll(t, b,
			stone{Black, 0, 1}, stone{Black, 0, 2},
			stone{White, 0, 0}, stone{White, 1, 1}, stone{White, 1, 2},
		)

		// When: white fills the last liberty
		err := b.Place(White, 0, 3)

		// Then: both stones are gone
		require.NoError(t, err)
		assert.Equal(t, Empty, b.At(0, 1))
		assert.Equal(t, Empty, b.At(0, 2))
		assert.Equal(t, b.zobrist.Hash(b.cells), b.Hash())
	})

	t.Run("Rejects suicide without changing the board", func(t *testing.T) {
		// Given: a corner point surrounded by white stones that have liberties
		b := newTestBoard(t, 3)
		placeAll(t, b, stone{White, 1, 0}, stone{White, 0, 1})
		before, hash := b.Snapshot(), b.Hash()

		// When: black plays into the corner
		err := b.Place(Black, 0, 0)

		// Then: the move is suicide and nothing changes
		require.ErrorIs(t, err, errs.ErrSuicide)
		assert.Equal(t, before, b.Snapshot())
		assert.Equal(t, hash, b.Hash())
	})

	t.Run("Rejects suicide of a group", func(t *testing.T) {
		// Given: a black stone whose only liberty is shared with the point being played
		b := newTestBoard(t, 3)
		placeAll(t, b,
			stone{Black, 0, 0},
			stone{White, 1, 0}, stone{White, 1, 1}, stone{White, 0, 2},
		)

		// When: black connects into the last liberty
		err := b.Place(Black, 0, 1)

		// Then: the group would have no liberties
		require.ErrorIs(t, err, errs.ErrSuicide)
		assert.Equal(t, Black, b.At(0, 0))
		assert.Equal(t, Empty, b.At(0, 1))
	})

	t.Run("Capture takes precedence over suicide", func(t *testing.T) {
		// Given: a corner point with no liberties whose white neighbour is in atari
		b := newTestBoard(t, 3)
		placeAll(t, b,
			stone{White, 0, 1}, stone{Black, 0, 2},
			stone{White, 1, 0}, stone{Black, 1, 1},
		)

		// When: black plays the corner
		err := b.Place(Black, 0, 0)

		// Then: the white stone is captured and the move stands
		require.NoError(t, err)
		assert.Equal(t, Black, b.At(0, 0))
		assert.Equal(t, Empty, b.At(0, 1))
		assert.Equal(t, White, b.At(1, 0))
	})

	t.Run("Rejects a ko recapture that repeats a position", func(t *testing.T) {
		// Given: a ko where white has just taken a black stone
		b := newTestBoard(t, 4)
		placeAll(t, b,
			stone{Black, 1, 0}, stone{White, 0, 2},
			stone{Black, 0, 1}, stone{White, 2, 2},
			stone{Black, 2, 1}, stone{White, 1, 3},
			stone{Black, 1, 2},
		)
		afterBlack := b.Hash()
		placeAll(t, b, stone{White, 1, 1})
		require.Equal(t, Empty, b.At(1, 2), "white should have captured")
		before, hash := b.Snapshot(), b.Hash()

		// When: black immediately retakes
		err := b.Place(Black, 1, 2)

		// Then: the board would repeat and the move is rejected
		require.ErrorIs(t, err, errs.ErrRepeatedPosition)
		assert.Equal(t, before, b.Snapshot())
		assert.Equal(t, hash, b.Hash())
		assert.NotEqual(t, afterBlack, b.Hash())
	})

	t.Run("Board stays usable after a rejected move", func(t *testing.T) {
		// Given: a board that just rejected a suicide
		b := newTestBoard(t, 3)
		placeAll(t, b, stone{White, 1, 0}, stone{White, 0, 1})
		require.ErrorIs(t, b.Place(Black, 0, 0), errs.ErrSuicide)

		// When: black plays elsewhere
		err := b.Place(Black, 2, 2)

		// Then: only the new stone is added
		require.NoError(t, err)
		expected := [][]Color{
			{Empty, White, Empty},
			{White, Empty, Empty},
			{Empty, Empty, Black},
		}
		assert.Equal(t, expected, b.Snapshot())
		assert.Equal(t, b.zobrist.Hash(b.cells), b.Hash())
	})

	t.Run("Panics outside the board", func(t *testing.T) {
		b := newTestBoard(t, 3)

		assert.Panics(t, func() { _ = b.Place(Black, 3, 0) })
		assert.Panics(t, func() { _ = b.Place(Black, 0, -1) })
		assert.Panics(t, func() { _ = b.Place(Empty, 0, 0) })
	})
}

func TestBoard_Snapshot(t *testing.T) {
	t.Run("Returns a copy", func(t *testing.T) {
		b := newTestBoard(t, 2)
		placeAll(t, b, stone{Black, 0, 0})

		grid := b.Snapshot()
		grid[0][0] = White

		assert.Equal(t, Black, b.At(0, 0))
	})
}

func TestBoard_AreaScore(t *testing.T) {
	t.Run("Empty board is all dame", func(t *testing.T) {
		b := newTestBoard(t, 4)

		assert.Equal(t, Score{Dame: 16}, b.AreaScore())
	})

	t.Run("Counts stones and single-colour territory", func(t *testing.T) {
		// Given: a black wall down the middle and one white stone on the right
		b := newTestBoard(t, 3)
		placeAll(t, b,
			stone{Black, 0, 1}, stone{Black, 1, 1}, stone{Black, 2, 1},
			stone{White, 1, 2},
		)

		// When: scoring
		score := b.AreaScore()

		// Then: the left column is black territory, the right points are dame
		assert.Equal(t, Score{Black: 6, White: 1, Dame: 2}, score)
	})

	t.Run("Scoring is repeatable and covers every point", func(t *testing.T) {
		b := newTestBoard(t, 5)
		placeAll(t, b,
			stone{Black, 0, 1}, stone{Black, 1, 1}, stone{Black, 1, 0},
			stone{White, 3, 3}, stone{White, 3, 4}, stone{White, 4, 3},
			stone{Black, 2, 2},
		)

		first := b.AreaScore()
		second := b.AreaScore()

		assert.Equal(t, first, second)
		assert.Equal(t, 25, first.Black+first.White+first.Dame)
		assert.Equal(t, Score{Black: 5, White: 4, Dame: 16}, first)
	})
}
