package game

// Validate checks a requested move against the current state and returns the
// fully classified legal move plus the side effects needed for commit.
//
// The ordering is fixed: generate the pseudo-legal set, classify, apply the
// move to a cloned board, and reject if the mover's own king is attacked in
// the resulting position. The live state is never touched.
func (s *GameState) Validate(req Move) (LegalMove, error) {
	if s.outcome.Terminal() {
		return LegalMove{}, ErrGameOver
	}
	geom := s.board.Geometry()
	if !geom.Contains(req.From) || !geom.Contains(req.To) {
		return LegalMove{}, ErrOutOfBounds
	}

	pc, ok := s.board.PieceAt(req.From)
	if !ok || pc.Color != s.turn {
		return LegalMove{}, ErrNotYourPiece
	}

	if !containsSquare(s.pseudoLegalMoves(pc), req.To) {
		return LegalMove{}, ErrIllegalDestination
	}

	lm := s.classify(pc, req)

	// Speculative apply on a disposable clone; also covers pinned pieces.
	clone := s.board.Clone()
	applyLegal(clone, lm)
	if kingInCheck(clone, s.rules, pc.Color) {
		return LegalMove{}, ErrMovesIntoCheck
	}

	lm.validated = true
	return lm, nil
}

// classify determines the move kind and side effects. Special-move legality
// (castling paths, the en-passant window) was already enforced during
// generation, so classification only records what commit has to do.
func (s *GameState) classify(pc *Piece, req Move) LegalMove {
	lm := LegalMove{Move: req, Kind: MoveNormal}

	if victim, ok := s.board.PieceAt(req.To); ok && victim.Color != pc.Color {
		lm.Kind = MoveCapture
		lm.CaptureSquare = req.To
		lm.HasCapture = true
	}

	switch {
	case pc.Type == Pawn && req.To.File != req.From.File && !lm.HasCapture:
		// Generation only offers an empty diagonal when it is the
		// en-passant target; the victim sits beside the destination.
		lm.Kind = MoveEnPassant
		lm.CaptureSquare = Square{File: req.To.File, Rank: req.From.Rank}
		lm.HasCapture = true
	case pc.Type == King && absInt(req.To.File-req.From.File) == 2:
		rank := req.From.Rank
		if req.To.File > req.From.File {
			lm.Kind = MoveCastleKingside
			lm.RookFrom = Square{File: s.board.Geometry().Files - 1, Rank: rank}
			lm.RookTo = Square{File: req.To.File - 1, Rank: rank}
		} else {
			lm.Kind = MoveCastleQueenside
			lm.RookFrom = Square{File: 0, Rank: rank}
			lm.RookTo = Square{File: req.To.File + 1, Rank: rank}
		}
		lm.RookMove = true
	}

	if pc.Type == Pawn && req.To.Rank == pawnFarRank(s.board.Geometry(), pc.Color) {
		lm.Promotes = true
		lm.PromoteTo = s.promotions.Default()
		if req.HasPromotion && s.promotions.Contains(req.Promotion) {
			lm.PromoteTo = req.Promotion
		}
		lm.Kind = MovePromotion
	}

	return lm
}

// applyLegal mutates a board with a classified move: capture removal, the
// piece relocation, rook relocation for castling and the promotion swap.
// Used both on validator clones and on the live board at commit.
func applyLegal(b *Board, lm LegalMove) {
	if lm.HasCapture {
		b.Remove(lm.CaptureSquare)
	}
	b.move(lm.From, lm.To)
	if lm.RookMove {
		b.move(lm.RookFrom, lm.RookTo)
	}
	if lm.Promotes {
		if pc, ok := b.PieceAt(lm.To); ok {
			pc.Type = lm.PromoteTo
		}
	}
}

func containsSquare(squares []Square, sq Square) bool {
	for _, s := range squares {
		if s == sq {
			return true
		}
	}
	return false
}
