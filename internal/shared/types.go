package shared

import (
	"fmt"
	"strings"
)

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) Index() int { return int(c) }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, true
	case "black", "b":
		return Black, true
	default:
		return 0, false
	}
}

// PieceType tags a kind of piece. Values beyond King are available to
// variants; register a display name for them during game setup.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	// CustomPieceBase is the first value free for variant piece types.
	CustomPieceBase
)

var customPieceNames = map[PieceType]string{}

// RegisterPieceName assigns a display name to a variant piece type. Intended
// for configuration time, before any game using the type starts.
func RegisterPieceName(pt PieceType, name string) {
	customPieceNames[pt] = name
}

func (p PieceType) String() string {
	switch p {
	case Pawn:
		return "P"
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	if name, ok := customPieceNames[p]; ok {
		return name
	}
	return fmt.Sprintf("piece(%d)", p)
}

// ---------------------------
// Castling rights
// ---------------------------

type CastlingRights uint8

const (
	CastlingNone          CastlingRights = 0
	CastlingWhiteKingside CastlingRights = 1 << iota
	CastlingWhiteQueenside
	CastlingBlackKingside
	CastlingBlackQueenside
	CastlingAll = CastlingWhiteKingside | CastlingWhiteQueenside | CastlingBlackKingside | CastlingBlackQueenside
)

type CastlingSide uint8

const (
	CastleKingside CastlingSide = iota
	CastleQueenside
)

func (cs CastlingSide) String() string {
	if cs == CastleQueenside {
		return "queenside"
	}
	return "kingside"
}

func CastlingRight(color Color, side CastlingSide) CastlingRights {
	switch {
	case color == White && side == CastleKingside:
		return CastlingWhiteKingside
	case color == White && side == CastleQueenside:
		return CastlingWhiteQueenside
	case color == Black && side == CastleKingside:
		return CastlingBlackKingside
	default:
		return CastlingBlackQueenside
	}
}

func CastlingRightsForColor(color Color) CastlingRights {
	if color == White {
		return CastlingWhiteKingside | CastlingWhiteQueenside
	}
	return CastlingBlackKingside | CastlingBlackQueenside
}

func (cr CastlingRights) Has(right CastlingRights) bool { return cr&right != 0 }

func (cr CastlingRights) HasSide(color Color, side CastlingSide) bool {
	return cr.Has(CastlingRight(color, side))
}

func (cr CastlingRights) Without(right CastlingRights) CastlingRights { return cr &^ right }

func (cr CastlingRights) WithoutColor(color Color) CastlingRights {
	return cr.Without(CastlingRightsForColor(color))
}

func (cr CastlingRights) String() string {
	if cr == CastlingNone {
		return "-"
	}
	var b strings.Builder
	if cr.Has(CastlingWhiteKingside) {
		b.WriteByte('K')
	}
	if cr.Has(CastlingWhiteQueenside) {
		b.WriteByte('Q')
	}
	if cr.Has(CastlingBlackKingside) {
		b.WriteByte('k')
	}
	if cr.Has(CastlingBlackQueenside) {
		b.WriteByte('q')
	}
	return b.String()
}

func (cr CastlingRights) MarshalText() ([]byte, error) { return []byte(cr.String()), nil }

// ---------------------------
// En-passant targets
// ---------------------------

// EnPassantTarget records the square skipped by a double pawn advance. It is
// valid for exactly one subsequent move.
type EnPassantTarget struct {
	square Square
	valid  bool
}

func NewEnPassantTarget(sq Square) EnPassantTarget { return EnPassantTarget{square: sq, valid: true} }

func NoEnPassantTarget() EnPassantTarget { return EnPassantTarget{} }

func (e EnPassantTarget) Valid() bool { return e.valid }

func (e EnPassantTarget) Square() (Square, bool) {
	if !e.valid {
		return Square{}, false
	}
	return e.square, true
}

func (e EnPassantTarget) String() string {
	if !e.valid {
		return "-"
	}
	return e.square.String()
}

func (e EnPassantTarget) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

// ---------------------------
// Promotion choices
// ---------------------------

type PromotionChoices uint8

const (
	PromotionNone  PromotionChoices = 0
	PromoteToQueen PromotionChoices = 1 << iota
	PromoteToRook
	PromoteToBishop
	PromoteToKnight
	PromotionAll = PromoteToQueen | PromoteToRook | PromoteToBishop | PromoteToKnight
)

func (pc PromotionChoices) Contains(pt PieceType) bool {
	switch pt {
	case Queen:
		return pc&PromoteToQueen != 0
	case Rook:
		return pc&PromoteToRook != 0
	case Bishop:
		return pc&PromoteToBishop != 0
	case Knight:
		return pc&PromoteToKnight != 0
	default:
		return false
	}
}

func (pc PromotionChoices) Default() PieceType {
	for _, pt := range []PieceType{Queen, Rook, Bishop, Knight} {
		if pc.Contains(pt) {
			return pt
		}
	}
	return Queen
}

func (pc PromotionChoices) String() string {
	if pc == PromotionNone {
		return "-"
	}
	var b strings.Builder
	for _, pt := range []PieceType{Queen, Rook, Bishop, Knight} {
		if pc.Contains(pt) {
			b.WriteString(pt.String())
		}
	}
	return b.String()
}

func (pc PromotionChoices) MarshalText() ([]byte, error) { return []byte(pc.String()), nil }

func ParsePromotionPiece(s string) (PieceType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "q", "queen":
		return Queen, true
	case "r", "rook":
		return Rook, true
	case "b", "bishop":
		return Bishop, true
	case "n", "knight":
		return Knight, true
	default:
		return 0, false
	}
}
