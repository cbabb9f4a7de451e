package game

import (
	"fmt"
	"strings"

	"kasupel/internal/shared"
)

// A game is drawn once 100 half-moves pass with no capture or pawn move.
const fiftyMoveHalfMoveLimit = 100

// GameState is the authoritative state of one game: board, side to move,
// castling rights, en-passant window, draw counters and position history.
// It is mutated only by Commit with a validated move; speculative checks
// always work on disposable board clones.
type GameState struct {
	board      *Board
	rules      RuleSet
	turn       Color
	castling   CastlingRights
	enPassant  EnPassantTarget
	promotions PromotionChoices

	halfMoveClock int
	fullMove      int
	signatures    map[string]int
	history       []LegalMove

	status  Status
	outcome Outcome
}

func newGameState(cfg Config) (*GameState, error) {
	geom := cfg.geometry()
	board := NewBoard(geom)
	for _, pl := range cfg.layout() {
		if _, err := board.Place(pl.Color, pl.Type, pl.Square); err != nil {
			return nil, fmt.Errorf("layout %s %s at %s: %w", pl.Color, pl.Type, pl.Square, err)
		}
	}
	for _, color := range []Color{White, Black} {
		if err := requireOneKing(board, color); err != nil {
			return nil, err
		}
	}

	s := &GameState{
		board:      board,
		rules:      cfg.Rules,
		turn:       White,
		castling:   initialCastlingRights(board),
		enPassant:  shared.NoEnPassantTarget(),
		promotions: cfg.promotionChoices(),
		fullMove:   1,
		signatures: make(map[string]int),
	}
	s.signatures[s.signature()]++
	s.updateStatus()
	return s, nil
}

func requireOneKing(b *Board, color Color) error {
	kings := 0
	b.ForEach(func(pc *Piece) {
		if pc.Color == color && pc.Type == King {
			kings++
		}
	})
	if kings != 1 {
		return fmt.Errorf("%s has %d kings, want exactly one", color, kings)
	}
	return nil
}

// initialCastlingRights grants a right only where the king and the matching
// corner rook stand on the back rank, so custom layouts start with whatever
// rights their arrangement supports.
func initialCastlingRights(b *Board) CastlingRights {
	geom := b.Geometry()
	rights := shared.CastlingNone
	for _, color := range []Color{White, Black} {
		backRank := 0
		if color == Black {
			backRank = geom.Ranks - 1
		}
		kingSq, ok := b.KingSquare(color)
		if !ok || kingSq.Rank != backRank {
			continue
		}
		if rook, ok := b.PieceAt(Square{File: 0, Rank: backRank}); ok && rook.Type == Rook && rook.Color == color {
			rights |= shared.CastlingRight(color, CastleQueenside)
		}
		if rook, ok := b.PieceAt(Square{File: geom.Files - 1, Rank: backRank}); ok && rook.Type == Rook && rook.Color == color {
			rights |= shared.CastlingRight(color, CastleKingside)
		}
	}
	return rights
}

func (s *GameState) Board() *Board              { return s.board }
func (s *GameState) Turn() Color                { return s.turn }
func (s *GameState) Castling() CastlingRights   { return s.castling }
func (s *GameState) EnPassant() EnPassantTarget { return s.enPassant }
func (s *GameState) HalfMoveClock() int         { return s.halfMoveClock }
func (s *GameState) FullMove() int              { return s.fullMove }
func (s *GameState) Status() Status             { return s.status }
func (s *GameState) Outcome() Outcome           { return s.outcome }
func (s *GameState) History() []LegalMove       { return s.history }

// InCheck reports whether the side to move is currently in check.
func (s *GameState) InCheck() bool {
	return s.status == StatusCheck || s.status == StatusCheckmate
}

// Commit advances the game with a move previously accepted by Validate.
// Passing anything else is a programming error and fails before any
// mutation.
func (s *GameState) Commit(lm LegalMove) error {
	if !lm.validated {
		return ErrUnvalidatedMove
	}
	if s.outcome.Terminal() {
		return ErrGameOver
	}
	mover, ok := s.board.PieceAt(lm.From)
	if !ok || mover.Color != s.turn {
		// A stale LegalMove from an earlier position.
		return ErrUnvalidatedMove
	}
	moverColor, moverType := mover.Color, mover.Type

	if moverType == Pawn || lm.HasCapture {
		s.halfMoveClock = 0
	} else {
		s.halfMoveClock++
	}

	if lm.HasCapture {
		if victim, ok := s.board.PieceAt(lm.CaptureSquare); ok {
			s.castling = s.castling.Without(cornerRookRight(s.board.Geometry(), victim.Color, victim.Square))
		}
	}

	applyLegal(s.board, lm)

	switch moverType {
	case King:
		s.castling = s.castling.WithoutColor(moverColor)
	case Rook:
		s.castling = s.castling.Without(cornerRookRight(s.board.Geometry(), moverColor, lm.From))
	}

	s.enPassant = shared.NoEnPassantTarget()
	if moverType == Pawn {
		if diff := lm.To.Rank - lm.From.Rank; diff == 2 || diff == -2 {
			s.enPassant = shared.NewEnPassantTarget(lm.From.Offset(0, diff/2))
		}
	}

	s.history = append(s.history, lm)
	if moverColor == Black {
		s.fullMove++
	}
	s.turn = s.turn.Opposite()

	sig := s.signature()
	s.signatures[sig]++
	switch {
	case s.signatures[sig] >= 3:
		s.concludeDraw(ConclusionThreefoldRepetition)
	case s.halfMoveClock >= fiftyMoveHalfMoveLimit:
		s.concludeDraw(ConclusionFiftyMoveRule)
	default:
		s.updateStatus()
	}
	return nil
}

// cornerRookRight maps a rook's home corner to the castling right it backs.
// Squares elsewhere map to no right.
func cornerRookRight(geom Geometry, color Color, sq Square) CastlingRights {
	backRank := 0
	if color == Black {
		backRank = geom.Ranks - 1
	}
	if sq.Rank != backRank {
		return shared.CastlingNone
	}
	switch sq.File {
	case 0:
		return shared.CastlingRight(color, CastleQueenside)
	case geom.Files - 1:
		return shared.CastlingRight(color, CastleKingside)
	default:
		return shared.CastlingNone
	}
}

func (s *GameState) updateStatus() {
	inCheck := kingInCheck(s.board, s.rules, s.turn)
	hasMove := s.hasAnyLegalMove(s.turn)

	switch {
	case !hasMove && inCheck:
		s.status = StatusCheckmate
		s.outcome = wonBy(ConclusionCheckmate, s.turn.Opposite())
	case !hasMove:
		s.status = StatusStalemate
		s.outcome = drawnBy(ConclusionStalemate)
	case inCheck:
		s.status = StatusCheck
	default:
		s.status = StatusInProgress
	}
}

func (s *GameState) concludeDraw(c Conclusion) {
	s.status = StatusDraw
	s.outcome = drawnBy(c)
}

// conclude ends the game with an outcome decided outside the move rules
// (resignation, agreed draw, flag fall).
func (s *GameState) conclude(o Outcome) error {
	if s.outcome.Terminal() {
		return ErrGameOver
	}
	s.outcome = o
	if !o.HasWinner {
		s.status = StatusDraw
	}
	return nil
}

// hasAnyLegalMove reports whether at least one (origin, destination) pair
// survives the speculative check test for the side.
func (s *GameState) hasAnyLegalMove(color Color) bool {
	found := false
	s.board.ForEach(func(pc *Piece) {
		if found || pc.Color != color {
			return
		}
		for _, to := range s.pseudoLegalMoves(pc) {
			lm := s.classify(pc, Move{From: pc.Square, To: to})
			clone := s.board.Clone()
			applyLegal(clone, lm)
			if !kingInCheck(clone, s.rules, color) {
				found = true
				return
			}
		}
	})
	return found
}

// signature fingerprints the position for repetition detection: placement,
// side to move, castling rights and the en-passant target.
func (s *GameState) signature() string {
	var sb strings.Builder
	for idx, pc := range s.board.squares {
		if pc == nil {
			continue
		}
		fmt.Fprintf(&sb, "%d%s%d,", idx, pc.Type, pc.Color.Index())
	}
	fmt.Fprintf(&sb, "|%s|%s|%s", s.turn, s.castling, s.enPassant)
	return sb.String()
}

// insufficientMaterial reports whether a side could never deliver checkmate:
// a bare king, or king plus a single minor piece.
func insufficientMaterial(b *Board, color Color) bool {
	minors := 0
	sufficient := false
	b.ForEach(func(pc *Piece) {
		if pc.Color != color || pc.Type == King {
			return
		}
		switch pc.Type {
		case Bishop, Knight:
			minors++
		default:
			sufficient = true
		}
	})
	return !sufficient && minors <= 1
}
