package game

import (
	"testing"

	"kasupel/internal/shared"
)

func TestValidateRejectsBadRequests(t *testing.T) {
	s := mustState(t, Config{Files: 8, Ranks: 8})

	tests := []struct {
		name string
		move Move
		want error
	}{
		{
			name: "off-board origin",
			move: Move{From: Square{File: 8, Rank: 0}, To: sq("e4")},
			want: ErrOutOfBounds,
		},
		{
			name: "off-board destination",
			move: Move{From: sq("e2"), To: Square{File: 4, Rank: 8}},
			want: ErrOutOfBounds,
		},
		{
			name: "empty origin square",
			move: Move{From: sq("e4"), To: sq("e5")},
			want: ErrNotYourPiece,
		},
		{
			name: "opponent's piece",
			move: Move{From: sq("e7"), To: sq("e5")},
			want: ErrNotYourPiece,
		},
		{
			name: "pawn cannot triple step",
			move: Move{From: sq("e2"), To: sq("e5")},
			want: ErrIllegalDestination,
		},
		{
			name: "knight cannot slide",
			move: Move{From: sq("g1"), To: sq("g3")},
			want: ErrIllegalDestination,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Validate(tt.move); err != tt.want {
				t.Fatalf("Validate(%s->%s) err = %v, want %v", tt.move.From, tt.move.To, err, tt.want)
			}
		})
	}
}

func TestValidateRejectsPinnedPiece(t *testing.T) {
	s := mustState(t, Config{Files: 8, Ranks: 8, Layout: []Placement{
		place(White, King, "e1"), place(White, Queen, "e2"),
		place(Black, King, "a8"), place(Black, Rook, "e8"),
	}})

	// The queen shields the king from the e-file rook. Leaving the file
	// exposes the king; staying on it is fine.
	if _, err := s.Validate(Move{From: sq("e2"), To: sq("d3")}); err != ErrMovesIntoCheck {
		t.Fatalf("pinned queen leaving the file: err = %v", err)
	}
	if _, err := s.Validate(Move{From: sq("e2"), To: sq("e5")}); err != nil {
		t.Fatalf("pinned queen along the file: %v", err)
	}
	if _, err := s.Validate(Move{From: sq("e2"), To: sq("e8")}); err != nil {
		t.Fatalf("pinned queen capturing the pinner: %v", err)
	}
}

func TestValidateRejectsKingWalkingIntoAttack(t *testing.T) {
	s := mustState(t, Config{Files: 8, Ranks: 8, Layout: []Placement{
		place(White, King, "e1"),
		place(Black, King, "a8"), place(Black, Rook, "d8"),
	}})
	if _, err := s.Validate(Move{From: sq("e1"), To: sq("d1")}); err != ErrMovesIntoCheck {
		t.Fatalf("king stepping onto a covered square: err = %v", err)
	}
	if _, err := s.Validate(Move{From: sq("e1"), To: sq("f1")}); err != nil {
		t.Fatalf("king stepping aside: %v", err)
	}
}

func TestEnPassantCapture(t *testing.T) {
	s := mustState(t, Config{Files: 8, Ranks: 8, Layout: []Placement{
		place(White, King, "e1"), place(White, Pawn, "e2"),
		place(Black, King, "e8"), place(Black, Pawn, "d4"),
	}})

	lm, err := s.Validate(Move{From: sq("e2"), To: sq("e4")})
	if err != nil {
		t.Fatalf("double advance: %v", err)
	}
	if err := s.Commit(lm); err != nil {
		t.Fatalf("commit double advance: %v", err)
	}
	if epSq, ok := s.EnPassant().Square(); !ok || epSq != sq("e3") {
		t.Fatalf("en-passant target = %s", s.EnPassant())
	}

	lm, err = s.Validate(Move{From: sq("d4"), To: sq("e3")})
	if err != nil {
		t.Fatalf("en-passant capture: %v", err)
	}
	if lm.Kind != MoveEnPassant {
		t.Fatalf("kind = %s", lm.Kind)
	}
	if lm.CaptureSquare != sq("e4") {
		t.Fatalf("capture square = %s", lm.CaptureSquare)
	}
	if err := s.Commit(lm); err != nil {
		t.Fatalf("commit en-passant: %v", err)
	}
	if !s.board.IsEmpty(sq("e4")) {
		t.Fatal("captured pawn should leave e4")
	}
	if pawn, ok := s.board.PieceAt(sq("e3")); !ok || pawn.Type != Pawn || pawn.Color != Black {
		t.Fatal("black pawn should land on e3")
	}
}

func TestEnPassantWindowExpires(t *testing.T) {
	s := mustState(t, Config{Files: 8, Ranks: 8, Layout: []Placement{
		place(White, King, "e1"), place(White, Pawn, "e2"), place(White, Knight, "b1"),
		place(Black, King, "e8"), place(Black, Pawn, "d4"), place(Black, Knight, "b8"),
	}})

	moves := []Move{
		{From: sq("e2"), To: sq("e4")},
		{From: sq("b8"), To: sq("c6")},
		{From: sq("b1"), To: sq("c3")},
	}
	for _, mv := range moves {
		lm, err := s.Validate(mv)
		if err != nil {
			t.Fatalf("move %s->%s: %v", mv.From, mv.To, err)
		}
		if err := s.Commit(lm); err != nil {
			t.Fatalf("commit %s->%s: %v", mv.From, mv.To, err)
		}
	}

	if s.EnPassant().Valid() {
		t.Fatal("en-passant window should close after the next move")
	}
	if _, err := s.Validate(Move{From: sq("d4"), To: sq("e3")}); err != ErrIllegalDestination {
		t.Fatalf("late en-passant: err = %v", err)
	}
}

func TestPromotion(t *testing.T) {
	layout := []Placement{
		place(White, King, "a1"), place(White, Pawn, "g7"),
		place(Black, King, "h5"),
	}

	t.Run("defaults to queen", func(t *testing.T) {
		s := mustState(t, Config{Files: 8, Ranks: 8, Layout: layout})
		lm, err := s.Validate(Move{From: sq("g7"), To: sq("g8")})
		if err != nil {
			t.Fatalf("promotion move: %v", err)
		}
		if lm.Kind != MovePromotion || !lm.Promotes {
			t.Fatalf("kind = %s", lm.Kind)
		}
		if err := s.Commit(lm); err != nil {
			t.Fatalf("commit: %v", err)
		}
		if pc, ok := s.board.PieceAt(sq("g8")); !ok || pc.Type != Queen {
			t.Fatal("pawn should become a queen")
		}
	})

	t.Run("honors the requested piece", func(t *testing.T) {
		s := mustState(t, Config{Files: 8, Ranks: 8, Layout: layout})
		lm, err := s.Validate(Move{From: sq("g7"), To: sq("g8"), Promotion: Knight, HasPromotion: true})
		if err != nil {
			t.Fatalf("promotion move: %v", err)
		}
		if err := s.Commit(lm); err != nil {
			t.Fatalf("commit: %v", err)
		}
		if pc, ok := s.board.PieceAt(sq("g8")); !ok || pc.Type != Knight {
			t.Fatal("pawn should become a knight")
		}
	})

	t.Run("restricted choices fall back to the allowed default", func(t *testing.T) {
		s := mustState(t, Config{
			Files: 8, Ranks: 8, Layout: layout,
			Promotions: shared.PromoteToRook,
		})
		lm, err := s.Validate(Move{From: sq("g7"), To: sq("g8"), Promotion: Queen, HasPromotion: true})
		if err != nil {
			t.Fatalf("promotion move: %v", err)
		}
		if err := s.Commit(lm); err != nil {
			t.Fatalf("commit: %v", err)
		}
		if pc, ok := s.board.PieceAt(sq("g8")); !ok || pc.Type != Rook {
			t.Fatal("disallowed choice should fall back to the rook")
		}
	})
}

func TestCommitRejectsUnvalidatedMoves(t *testing.T) {
	s := mustState(t, Config{Files: 8, Ranks: 8})

	if err := s.Commit(LegalMove{Move: Move{From: sq("e2"), To: sq("e4")}}); err != ErrUnvalidatedMove {
		t.Fatalf("hand-built move: err = %v", err)
	}

	// A validated move from an earlier position is also refused.
	lm, err := s.Validate(Move{From: sq("e2"), To: sq("e4")})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if err := s.Commit(lm); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := s.Commit(lm); err != ErrUnvalidatedMove {
		t.Fatalf("stale move: err = %v", err)
	}
}
