// Package shared holds the value types and board geometry used across the
// engine: squares, colors, piece types, castling rights and en-passant
// targets. It contains no game logic.
package shared

import (
	"fmt"
	"strconv"
)

// Square identifies a board square by zero-based file and rank. A Square is
// just a coordinate pair; whether it lies on a particular board is decided
// by that board's Geometry.
type Square struct {
	File int `json:"file"`
	Rank int `json:"rank"`
}

// Offset returns the square displaced by the given file and rank deltas.
// The result may lie off the board.
func (s Square) Offset(df, dr int) Square {
	return Square{File: s.File + df, Rank: s.Rank + dr}
}

// String renders the square in algebraic notation ("e4") when the file fits
// in a-z, otherwise as an explicit coordinate pair.
func (s Square) String() string {
	if s.File >= 0 && s.File < 26 && s.Rank >= 0 {
		return string(rune('a'+s.File)) + strconv.Itoa(s.Rank+1)
	}
	return fmt.Sprintf("(%d,%d)", s.File, s.Rank)
}

// ParseSquare reads algebraic notation: one file letter followed by a
// one-or-more digit rank.
func ParseSquare(coord string) (Square, bool) {
	if len(coord) < 2 {
		return Square{}, false
	}
	file := coord[0]
	if file < 'a' || file > 'z' {
		return Square{}, false
	}
	rank, err := strconv.Atoi(coord[1:])
	if err != nil || rank < 1 {
		return Square{}, false
	}
	return Square{File: int(file - 'a'), Rank: rank - 1}, true
}

// Geometry describes the dimensions of a board. All coordinate checks go
// through it so that non-standard board sizes work everywhere.
type Geometry struct {
	Files int `json:"files"`
	Ranks int `json:"ranks"`
}

// Contains reports whether the square lies on the board. Off-board squares
// are rejected, never wrapped.
func (g Geometry) Contains(s Square) bool {
	return s.File >= 0 && s.File < g.Files && s.Rank >= 0 && s.Rank < g.Ranks
}

// NumSquares returns the board area.
func (g Geometry) NumSquares() int { return g.Files * g.Ranks }

// Index maps a square to its position in a flat, rank-major array. The
// square must be on the board.
func (g Geometry) Index(s Square) int { return s.Rank*g.Files + s.File }

// SquareAt is the inverse of Index.
func (g Geometry) SquareAt(idx int) Square {
	return Square{File: idx % g.Files, Rank: idx / g.Files}
}

// Line returns the squares strictly between from and to when the two lie on
// a shared rank, file or diagonal, excluding both endpoints. It returns nil
// for non-collinear pairs and for adjacent squares.
func (g Geometry) Line(from, to Square) []Square {
	dr := to.Rank - from.Rank
	df := to.File - from.File
	stepR := normalize(dr)
	stepF := normalize(df)

	aligned := false
	switch {
	case dr == 0 && df != 0:
		aligned = true
	case df == 0 && dr != 0:
		aligned = true
	case abs(dr) == abs(df) && dr != 0:
		aligned = true
	}
	if !aligned {
		return nil
	}

	distance := max(abs(dr), abs(df)) - 1
	if distance <= 0 {
		return nil
	}

	squares := make([]Square, 0, distance)
	sq := from
	for i := 0; i < distance; i++ {
		sq = sq.Offset(stepF, stepR)
		if !g.Contains(sq) {
			return nil
		}
		squares = append(squares, sq)
	}
	return squares
}

// Collinear reports whether two distinct squares share a rank, file or
// diagonal.
func (g Geometry) Collinear(from, to Square) bool {
	dr := to.Rank - from.Rank
	df := to.File - from.File
	if dr == 0 && df == 0 {
		return false
	}
	return dr == 0 || df == 0 || abs(dr) == abs(df)
}

func normalize(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
