package game

// Piece is a single piece on a board. Pieces are owned by their Board and
// have no lifecycle of their own.
type Piece struct {
	ID       int
	Color    Color
	Type     PieceType
	Square   Square
	HasMoved bool
}

// Board maps squares to pieces for a board of configurable dimensions.
type Board struct {
	geom    Geometry
	squares []*Piece
	nextID  int
}

// NewBoard returns an empty board with the given geometry.
func NewBoard(geom Geometry) *Board {
	return &Board{
		geom:    geom,
		squares: make([]*Piece, geom.NumSquares()),
		nextID:  1,
	}
}

func (b *Board) Geometry() Geometry { return b.geom }

// Place puts a new piece on an empty on-board square.
func (b *Board) Place(color Color, pt PieceType, sq Square) (*Piece, error) {
	if !b.geom.Contains(sq) {
		return nil, ErrOutOfBounds
	}
	idx := b.geom.Index(sq)
	if b.squares[idx] != nil {
		return nil, ErrSquareOccupied
	}
	pc := &Piece{
		ID:     b.nextID,
		Color:  color,
		Type:   pt,
		Square: sq,
	}
	b.nextID++
	b.squares[idx] = pc
	return pc, nil
}

// Remove takes the piece off a square, returning it, or nil if the square
// was empty or off the board.
func (b *Board) Remove(sq Square) *Piece {
	if !b.geom.Contains(sq) {
		return nil
	}
	idx := b.geom.Index(sq)
	pc := b.squares[idx]
	b.squares[idx] = nil
	return pc
}

// PieceAt returns the piece on a square. The second return is false for
// empty and off-board squares.
func (b *Board) PieceAt(sq Square) (*Piece, bool) {
	if !b.geom.Contains(sq) {
		return nil, false
	}
	pc := b.squares[b.geom.Index(sq)]
	return pc, pc != nil
}

func (b *Board) IsEmpty(sq Square) bool {
	_, ok := b.PieceAt(sq)
	return !ok
}

// PathClear reports whether every square strictly between from and to is
// empty. Non-collinear pairs yield false; callers only ask about sliding
// pieces.
func (b *Board) PathClear(from, to Square) bool {
	if !b.geom.Collinear(from, to) {
		return false
	}
	for _, sq := range b.geom.Line(from, to) {
		if !b.IsEmpty(sq) {
			return false
		}
	}
	return true
}

// move relocates a piece and marks it as having moved. The destination must
// be empty; captures are removed by the caller first.
func (b *Board) move(from, to Square) {
	pc := b.Remove(from)
	if pc == nil {
		return
	}
	pc.Square = to
	pc.HasMoved = true
	b.squares[b.geom.Index(to)] = pc
}

// ForEach visits every piece on the board.
func (b *Board) ForEach(fn func(*Piece)) {
	for _, pc := range b.squares {
		if pc != nil {
			fn(pc)
		}
	}
}

// KingSquare locates the king of a color.
func (b *Board) KingSquare(color Color) (Square, bool) {
	for _, pc := range b.squares {
		if pc != nil && pc.Color == color && pc.Type == King {
			return pc.Square, true
		}
	}
	return Square{}, false
}

// Clone deep-copies piece placement. Used for speculative move evaluation;
// clones never escape the validator.
func (b *Board) Clone() *Board {
	clone := &Board{
		geom:    b.geom,
		squares: make([]*Piece, len(b.squares)),
		nextID:  b.nextID,
	}
	for i, pc := range b.squares {
		if pc != nil {
			copied := *pc
			clone.squares[i] = &copied
		}
	}
	return clone
}
