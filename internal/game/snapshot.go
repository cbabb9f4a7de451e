package game

// PieceState is a serializable representation of a Piece.
type PieceState struct {
	ID        int       `json:"id"`
	Color     Color     `json:"color"`
	ColorName string    `json:"colorName"`
	Type      PieceType `json:"type"`
	TypeName  string    `json:"typeName"`
	Square    Square    `json:"square"`
	HasMoved  bool      `json:"hasMoved"`
}

// ClockState is a serializable view of both clocks, in milliseconds.
type ClockState struct {
	WhiteRemainingMS int64 `json:"whiteRemainingMs"`
	BlackRemainingMS int64 `json:"blackRemainingMs"`
	Running          bool  `json:"running"`
}

// BoardState is the serializable snapshot handed to external layers after
// every submission.
type BoardState struct {
	Geometry      Geometry        `json:"geometry"`
	Pieces        []PieceState    `json:"pieces"`
	Turn          Color           `json:"turn"`
	TurnName      string          `json:"turnName"`
	Status        string          `json:"status"`
	InCheck       bool            `json:"inCheck"`
	GameOver      bool            `json:"gameOver"`
	Outcome       Outcome         `json:"outcome"`
	WinnerName    string          `json:"winnerName,omitempty"`
	Castling      CastlingRights  `json:"castling"`
	EnPassant     EnPassantTarget `json:"enPassant"`
	HalfMoveClock int             `json:"halfMoveClock"`
	FullMove      int             `json:"fullMove"`
	LastMove      *LegalMove      `json:"lastMove,omitempty"`
	Clock         ClockState      `json:"clock"`
}

// Snapshot captures the game for external consumption.
func (g *Game) Snapshot() BoardState {
	s := g.state
	out := s.Outcome()

	snap := BoardState{
		Geometry:      s.board.Geometry(),
		Pieces:        make([]PieceState, 0, 32),
		Turn:          s.turn,
		TurnName:      s.turn.String(),
		Status:        s.status.String(),
		InCheck:       s.InCheck(),
		GameOver:      out.Terminal(),
		Outcome:       out,
		Castling:      s.castling,
		EnPassant:     s.enPassant,
		HalfMoveClock: s.halfMoveClock,
		FullMove:      s.fullMove,
		Clock: ClockState{
			WhiteRemainingMS: g.clock.Remaining(White).Milliseconds(),
			BlackRemainingMS: g.clock.Remaining(Black).Milliseconds(),
			Running:          g.clock.Running(),
		},
	}
	if out.HasWinner {
		snap.WinnerName = out.Winner.String()
	}
	if n := len(s.history); n > 0 {
		last := s.history[n-1]
		snap.LastMove = &last
	}

	s.board.ForEach(func(pc *Piece) {
		snap.Pieces = append(snap.Pieces, PieceState{
			ID:        pc.ID,
			Color:     pc.Color,
			ColorName: pc.Color.String(),
			Type:      pc.Type,
			TypeName:  pc.Type.String(),
			Square:    pc.Square,
			HasMoved:  pc.HasMoved,
		})
	})
	return snap
}
