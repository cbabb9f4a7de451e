package game

type moveDelta struct {
	dr int
	df int
}

var (
	rookDirections = [...]moveDelta{
		{dr: 1, df: 0},
		{dr: -1, df: 0},
		{dr: 0, df: 1},
		{dr: 0, df: -1},
	}
	bishopDirections = [...]moveDelta{
		{dr: 1, df: 1},
		{dr: 1, df: -1},
		{dr: -1, df: 1},
		{dr: -1, df: -1},
	}
	knightOffsets = [...]moveDelta{
		{dr: 2, df: 1},
		{dr: 1, df: 2},
		{dr: -1, df: 2},
		{dr: -2, df: 1},
		{dr: -2, df: -1},
		{dr: -1, df: -2},
		{dr: 1, df: -2},
		{dr: 2, df: -1},
	}
	kingOffsets = [...]moveDelta{
		{dr: 1, df: 0}, {dr: 1, df: 1}, {dr: 0, df: 1}, {dr: -1, df: 1},
		{dr: -1, df: 0}, {dr: -1, df: -1}, {dr: 0, df: -1}, {dr: 1, df: -1},
	}
)

// MoveRule generates pseudo-legal destinations for a variant piece type from
// board occupancy alone. Rules must not consult check or legality; the
// validator layers those on top.
type MoveRule func(b *Board, pc *Piece) []Square

// RuleSet maps variant piece types to their movement rules.
type RuleSet map[PieceType]MoveRule

// pseudoLegalMoves produces the destination set consistent with the piece's
// movement pattern and board occupancy, ignoring whether the mover's king
// ends up in check.
func (s *GameState) pseudoLegalMoves(pc *Piece) []Square {
	if rule, ok := s.rules[pc.Type]; ok {
		return rule(s.board, pc)
	}
	switch pc.Type {
	case Pawn:
		return s.pawnMoves(pc)
	case Knight:
		return offsetMoves(s.board, pc, knightOffsets[:])
	case Bishop:
		return slidingMoves(s.board, pc, bishopDirections[:])
	case Rook:
		return slidingMoves(s.board, pc, rookDirections[:])
	case Queen:
		moves := slidingMoves(s.board, pc, rookDirections[:])
		return append(moves, slidingMoves(s.board, pc, bishopDirections[:])...)
	case King:
		return s.kingMoves(pc)
	default:
		return nil
	}
}

// pawnForward is +1 for white (toward higher ranks), -1 for black.
func pawnForward(color Color) int {
	if color == White {
		return 1
	}
	return -1
}

func pawnStartRank(geom Geometry, color Color) int {
	if color == White {
		return 1
	}
	return geom.Ranks - 2
}

func pawnFarRank(geom Geometry, color Color) int {
	if color == White {
		return geom.Ranks - 1
	}
	return 0
}

func (s *GameState) pawnMoves(pc *Piece) []Square {
	var moves []Square
	geom := s.board.Geometry()
	dir := pawnForward(pc.Color)

	forward := pc.Square.Offset(0, dir)
	if geom.Contains(forward) && s.board.IsEmpty(forward) {
		moves = append(moves, forward)
		if pc.Square.Rank == pawnStartRank(geom, pc.Color) {
			double := pc.Square.Offset(0, 2*dir)
			if geom.Contains(double) && s.board.IsEmpty(double) {
				moves = append(moves, double)
			}
		}
	}

	for _, df := range []int{-1, 1} {
		target := pc.Square.Offset(df, dir)
		if !geom.Contains(target) {
			continue
		}
		if victim, ok := s.board.PieceAt(target); ok && victim.Color != pc.Color {
			moves = append(moves, target)
		} else if epSq, ok := s.enPassant.Square(); ok && epSq == target {
			moves = append(moves, target)
		}
	}
	return moves
}

func offsetMoves(b *Board, pc *Piece, deltas []moveDelta) []Square {
	var moves []Square
	geom := b.Geometry()
	for _, delta := range deltas {
		target := pc.Square.Offset(delta.df, delta.dr)
		if !geom.Contains(target) {
			continue
		}
		if occupant, ok := b.PieceAt(target); !ok || occupant.Color != pc.Color {
			moves = append(moves, target)
		}
	}
	return moves
}

func slidingMoves(b *Board, pc *Piece, directions []moveDelta) []Square {
	var moves []Square
	geom := b.Geometry()
	for _, delta := range directions {
		target := pc.Square.Offset(delta.df, delta.dr)
		for geom.Contains(target) {
			occupant, ok := b.PieceAt(target)
			if !ok {
				moves = append(moves, target)
				target = target.Offset(delta.df, delta.dr)
				continue
			}
			if occupant.Color != pc.Color {
				moves = append(moves, target)
			}
			break
		}
	}
	return moves
}

func (s *GameState) kingMoves(pc *Piece) []Square {
	moves := offsetMoves(s.board, pc, kingOffsets[:])
	if dest, ok := s.castleDestination(pc, CastleKingside); ok {
		moves = append(moves, dest)
	}
	if dest, ok := s.castleDestination(pc, CastleQueenside); ok {
		moves = append(moves, dest)
	}
	return moves
}

// castleDestination returns the king's castling destination when every
// condition holds: the right is intact, the rook is home, the squares
// between are empty, and neither the king's square nor the squares it
// passes through are attacked.
func (s *GameState) castleDestination(pc *Piece, side CastlingSide) (Square, bool) {
	if pc.Type != King || !s.castling.HasSide(pc.Color, side) {
		return Square{}, false
	}

	geom := s.board.Geometry()
	rank := pc.Square.Rank
	file := pc.Square.File
	step := 1
	rookFile := geom.Files - 1
	if side == CastleQueenside {
		step = -1
		rookFile = 0
	}
	destFile := file + 2*step
	// The king must end strictly short of the rook's corner.
	if step > 0 && destFile >= rookFile || step < 0 && destFile <= rookFile {
		return Square{}, false
	}

	rookSq := Square{File: rookFile, Rank: rank}
	rook, ok := s.board.PieceAt(rookSq)
	if !ok || rook.Color != pc.Color || rook.Type != Rook || rook.HasMoved {
		return Square{}, false
	}

	for f := min(file, rookFile) + 1; f < max(file, rookFile); f++ {
		if !s.board.IsEmpty(Square{File: f, Rank: rank}) {
			return Square{}, false
		}
	}

	enemy := pc.Color.Opposite()
	if squareAttacked(s.board, s.rules, enemy, pc.Square) {
		return Square{}, false
	}
	for f := file + step; f != destFile+step; f += step {
		if squareAttacked(s.board, s.rules, enemy, Square{File: f, Rank: rank}) {
			return Square{}, false
		}
	}

	return Square{File: destFile, Rank: rank}, true
}
