package game

// Attack detection answers "is this square attacked by that color" with
// direct piece-geometry queries. It deliberately never runs legal-move
// generation for the attacker, so legality checks and check tests cannot
// recurse into each other.

func squareAttacked(b *Board, rules RuleSet, by Color, target Square) bool {
	attacked := false
	b.ForEach(func(pc *Piece) {
		if attacked || pc.Color != by || pc.Square == target {
			return
		}
		if pieceAttacks(b, rules, pc, target) {
			attacked = true
		}
	})
	return attacked
}

func pieceAttacks(b *Board, rules RuleSet, pc *Piece, target Square) bool {
	if rule, ok := rules[pc.Type]; ok {
		// Variant rules see occupancy only, so membership is a pure
		// geometry query.
		for _, sq := range rule(b, pc) {
			if sq == target {
				return true
			}
		}
		return false
	}

	dr := target.Rank - pc.Square.Rank
	df := target.File - pc.Square.File

	switch pc.Type {
	case Pawn:
		return dr == pawnForward(pc.Color) && (df == 1 || df == -1)
	case Knight:
		return (absInt(dr) == 2 && absInt(df) == 1) || (absInt(dr) == 1 && absInt(df) == 2)
	case Bishop:
		return absInt(dr) == absInt(df) && dr != 0 && b.PathClear(pc.Square, target)
	case Rook:
		return (dr == 0) != (df == 0) && b.PathClear(pc.Square, target)
	case Queen:
		straight := (dr == 0) != (df == 0)
		diagonal := absInt(dr) == absInt(df) && dr != 0
		return (straight || diagonal) && b.PathClear(pc.Square, target)
	case King:
		return absInt(dr) <= 1 && absInt(df) <= 1 && (dr != 0 || df != 0)
	default:
		return false
	}
}

func kingInCheck(b *Board, rules RuleSet, color Color) bool {
	kingSq, ok := b.KingSquare(color)
	if !ok {
		return false
	}
	return squareAttacked(b, rules, color.Opposite(), kingSq)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
