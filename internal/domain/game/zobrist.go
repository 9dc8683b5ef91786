package game

import (
	"fmt"
	"math/rand/v2"
)

// Zobrist holds one random bitstring per cell and color. A position hash is
// the XOR of the bitstrings of every occupied cell, so placing or removing a
// stone is a single XOR. The table is never modified after construction and
// can be shared by every board whose size does not exceed Size.
type Zobrist struct {
	size  int
	black []uint64
	white []uint64
}

func NewZobrist(size int) *Zobrist {
	return newZobrist(size, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

func newZobrist(size int, r *rand.Rand) *Zobrist {
	if size < 1 {
		panic(fmt.Sprintf("zobrist table size must be positive, got %d", size))
	}
	z := &Zobrist{
		size:  size,
		black: make([]uint64, size*size),
		white: make([]uint64, size*size),
	}
	for i := range z.black {
		z.black[i] = r.Uint64()
		z.white[i] = r.Uint64()
	}
	return z
}

func (z *Zobrist) Size() int {
	return z.size
}

// Key returns the bitstring of a stone of color c on flattened index i.
func (z *Zobrist) Key(c Color, i int) uint64 {
	switch c {
	case Black:
		return z.black[i]
	case White:
		return z.white[i]
	default:
		panic(fmt.Sprintf("no zobrist key for color %d", c))
	}
}

// Hash computes the hash of cells from scratch.
func (z *Zobrist) Hash(cells []Color) uint64 {
	var h uint64
	for i, c := range cells {
		if c != Empty {
			h ^= z.Key(c, i)
		}
	}
	return h
}
