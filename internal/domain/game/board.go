package game

import (
	"fmt"
	"sync"

	errs "goban/internal/errors"
)

// Board is an N x N Go board. It enforces captures, suicide and positional
// superko. Every exported method is safe for concurrent use.
type Board struct {
	mu        sync.Mutex
	n         int
	zobrist   *Zobrist
	cells     []Color
	scratch   []Color
	hash      uint64
	positions map[uint64]struct{}
}

// Score is the result of area scoring. Dame counts empty points that belong
// to neither player.
type Score struct {
	Black int
	White int
	Dame  int
}

// NewBoard creates an empty n x n board hashed with z. It panics if n is not
// positive or z is too small for the board.
func NewBoard(n int, z *Zobrist) *Board {
	if n < 1 {
		panic(fmt.Sprintf("board size must be positive, got %d", n))
	}
	if z == nil || z.Size() < n {
		panic(fmt.Sprintf("zobrist table does not cover a %dx%d board", n, n))
	}
	return &Board{
		n:         n,
		zobrist:   z,
		cells:     make([]Color, n*n),
		scratch:   make([]Color, n*n),
		positions: make(map[uint64]struct{}),
	}
}

func (b *Board) Size() int {
	return b.n
}

// Hash returns the Zobrist hash of the current position.
func (b *Board) Hash() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hash
}

// At returns the stone on (row, col).
func (b *Board) At(row, col int) Color {
	b.mustBeInBounds(row, col)
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cells[row*b.n+col]
}

// Snapshot returns a copy of the grid, indexed [row][col] with row 0 at the
// bottom of the board.
func (b *Board) Snapshot() [][]Color {
	b.mu.Lock()
	defer b.mu.Unlock()

	grid := make([][]Color, b.n)
	for r := range grid {
		grid[r] = make([]Color, b.n)
		copy(grid[r], b.cells[r*b.n:(r+1)*b.n])
	}
	return grid
}

// Place puts a stone of color c on (row, col) and removes any opponent group
// left without liberties. The move is worked out on a scratch copy of the
// grid, which replaces the live grid only if the move is legal; on error the
// board is exactly as it was before the call.
func (b *Board) Place(c Color, row, col int) error {
	if !c.IsPlayer() {
		panic(fmt.Sprintf("cannot place a stone of color %d", c))
	}
	b.mustBeInBounds(row, col)

	b.mu.Lock()
	defer b.mu.Unlock()

	idx := row*b.n + col
	if b.cells[idx] != Empty {
		return errs.ErrOccupiedPosition
	}

	next := b.scratch
	copy(next, b.cells)
	hash := b.hash

	next[idx] = c
	hash ^= b.zobrist.Key(c, idx)

	// Captures are resolved first: taking an opponent group can give the new
	// stone the liberty it needs.
	opponent := Opponent(c)
	for _, nb := range b.neighbors(idx) {
		if next[nb] != opponent {
			continue
		}
		stones, free := b.group(next, nb)
		if free {
			continue
		}
		for _, s := range stones {
			next[s] = Empty
			hash ^= b.zobrist.Key(opponent, s)
		}
	}

	if _, free := b.group(next, idx); !free {
		return errs.ErrSuicide
	}
	if _, seen := b.positions[hash]; seen {
		return errs.ErrRepeatedPosition
	}

	b.cells, b.scratch = next, b.cells
	b.hash = hash
	b.positions[hash] = struct{}{}
	return nil
}

// AreaScore counts every stone for its owner and every empty region for the
// player whose stones alone border it.
func (b *Board) AreaScore() Score {
	b.mu.Lock()
	defer b.mu.Unlock()

	var score Score
	visited := make([]bool, len(b.cells))
	for i, c := range b.cells {
		switch c {
		case Black:
			score.Black++
		case White:
			score.White++
		default:
			if visited[i] {
				continue
			}
			size, byBlack, byWhite := b.region(i, visited)
			switch {
			case byBlack && !byWhite:
				score.Black += size
			case byWhite && !byBlack:
				score.White += size
			default:
				score.Dame += size
			}
		}
	}
	return score
}

// group flood-fills the stones connected to start. If a liberty is found the
// fill stops early and free is true; otherwise stones holds the whole group.
func (b *Board) group(cells []Color, start int) (stones []int, free bool) {
	color := cells[start]
	visited := make([]bool, len(cells))
	visited[start] = true
	queue := []int{start}

	for head := 0; head < len(queue); head++ {
		for _, nb := range b.neighbors(queue[head]) {
			switch {
			case cells[nb] == Empty:
				return nil, true
			case cells[nb] == color && !visited[nb]:
				visited[nb] = true
				queue = append(queue, nb)
			}
		}
	}
	return queue, false
}

// region flood-fills the empty area containing start, marking it in visited,
// and reports which colors touch it.
func (b *Board) region(start int, visited []bool) (size int, byBlack, byWhite bool) {
	visited[start] = true
	queue := []int{start}

	for head := 0; head < len(queue); head++ {
		size++
		for _, nb := range b.neighbors(queue[head]) {
			switch b.cells[nb] {
			case Black:
				byBlack = true
			case White:
				byWhite = true
			default:
				if !visited[nb] {
					visited[nb] = true
					queue = append(queue, nb)
				}
			}
		}
	}
	return size, byBlack, byWhite
}

func (b *Board) neighbors(idx int) []int {
	r, c := idx/b.n, idx%b.n
	out := make([]int, 0, 4)
	if r > 0 {
		out = append(out, idx-b.n)
	}
	if r < b.n-1 {
		out = append(out, idx+b.n)
	}
	if c > 0 {
		out = append(out, idx-1)
	}
	if c < b.n-1 {
		out = append(out, idx+1)
	}
	return out
}

func (b *Board) inBounds(i int) bool {
	return i >= 0 && i < b.n
}

func (b *Board) mustBeInBounds(row, col int) {
	if !b.inBounds(row) || !b.inBounds(col) {
		panic(fmt.Sprintf("position (%d, %d) is outside a %dx%d board", row, col, b.n, b.n))
	}
}
