// Package game implements the chess rules engine: board model, move
// generation, validation, the game state machine and time control.
package game

import "kasupel/internal/shared"

// Re-exported value types so that consumers of the engine only need this
// package for everyday use.
type (
	Color            = shared.Color
	PieceType        = shared.PieceType
	Square           = shared.Square
	Geometry         = shared.Geometry
	CastlingRights   = shared.CastlingRights
	CastlingSide     = shared.CastlingSide
	EnPassantTarget  = shared.EnPassantTarget
	PromotionChoices = shared.PromotionChoices
)

const (
	White = shared.White
	Black = shared.Black

	Pawn   = shared.Pawn
	Knight = shared.Knight
	Bishop = shared.Bishop
	Rook   = shared.Rook
	Queen  = shared.Queen
	King   = shared.King

	// CustomPieceBase is the first PieceType value free for variants.
	CustomPieceBase = shared.CustomPieceBase

	CastleKingside  = shared.CastleKingside
	CastleQueenside = shared.CastleQueenside
)

var (
	ParseSquare         = shared.ParseSquare
	ParseColor          = shared.ParseColor
	ParsePromotionPiece = shared.ParsePromotionPiece
	RegisterPieceName   = shared.RegisterPieceName
)

// MoveKind classifies a validated move.
type MoveKind uint8

const (
	MoveNormal MoveKind = iota
	MoveCapture
	MoveCastleKingside
	MoveCastleQueenside
	MoveEnPassant
	MovePromotion
)

func (k MoveKind) String() string {
	switch k {
	case MoveNormal:
		return "normal"
	case MoveCapture:
		return "capture"
	case MoveCastleKingside:
		return "castle-kingside"
	case MoveCastleQueenside:
		return "castle-queenside"
	case MoveEnPassant:
		return "en-passant"
	case MovePromotion:
		return "promotion"
	default:
		return "?"
	}
}

// Move is a move request and, once validated and committed, a history
// record. It is immutable after construction.
type Move struct {
	From         Square    `json:"from"`
	To           Square    `json:"to"`
	Promotion    PieceType `json:"promotion,omitempty"`
	HasPromotion bool      `json:"hasPromotion,omitempty"`
}

// LegalMove is a fully classified move produced by Validate, carrying the
// side effects the state machine needs on commit. Only Validate constructs
// accepted LegalMoves; Commit rejects anything else.
type LegalMove struct {
	Move
	Kind MoveKind `json:"kind"`

	// CaptureSquare is where the captured piece sits. For en-passant
	// captures it differs from To.
	CaptureSquare Square `json:"captureSquare,omitempty"`
	HasCapture    bool   `json:"hasCapture,omitempty"`

	// Rook relocation for castling.
	RookFrom Square `json:"rookFrom,omitempty"`
	RookTo   Square `json:"rookTo,omitempty"`
	RookMove bool   `json:"rookMove,omitempty"`

	// PromoteTo is resolved from the request (or the configured default)
	// when the move reaches the far rank.
	PromoteTo PieceType `json:"promoteTo,omitempty"`
	Promotes  bool      `json:"promotes,omitempty"`

	validated bool
}
