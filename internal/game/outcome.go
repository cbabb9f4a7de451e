package game

// Status is the informational state of the side to move.
type Status uint8

const (
	StatusInProgress Status = iota
	StatusCheck
	StatusCheckmate
	StatusStalemate
	StatusDraw
)

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "ongoing"
	case StatusCheck:
		return "check"
	case StatusCheckmate:
		return "checkmate"
	case StatusStalemate:
		return "stalemate"
	case StatusDraw:
		return "draw"
	default:
		return "?"
	}
}

// Conclusion is the way a game finished.
type Conclusion uint8

const (
	ConclusionNone Conclusion = iota
	ConclusionCheckmate
	ConclusionResignation
	ConclusionTimeout
	ConclusionStalemate
	ConclusionThreefoldRepetition
	ConclusionFiftyMoveRule
	ConclusionAgreedDraw
	// ConclusionTimeoutInsufficientMaterial is a flag fall against an
	// opponent who could never have delivered mate.
	ConclusionTimeoutInsufficientMaterial
)

func (c Conclusion) String() string {
	switch c {
	case ConclusionNone:
		return "ongoing"
	case ConclusionCheckmate:
		return "checkmate"
	case ConclusionResignation:
		return "resignation"
	case ConclusionTimeout:
		return "timeout"
	case ConclusionStalemate:
		return "stalemate"
	case ConclusionThreefoldRepetition:
		return "threefold-repetition"
	case ConclusionFiftyMoveRule:
		return "fifty-move-rule"
	case ConclusionAgreedDraw:
		return "agreed-draw"
	case ConclusionTimeoutInsufficientMaterial:
		return "timeout-insufficient-material"
	default:
		return "?"
	}
}

func (c Conclusion) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// Outcome is the terminal result of a game. It is derived from game state
// and the clock on every commit, never stored independently of them.
type Outcome struct {
	Conclusion Conclusion `json:"conclusion"`
	HasWinner  bool       `json:"hasWinner"`
	Winner     Color      `json:"winner"`
}

// Ongoing is the zero Outcome.
var Ongoing = Outcome{}

func (o Outcome) Terminal() bool { return o.Conclusion != ConclusionNone }

func wonBy(c Conclusion, winner Color) Outcome {
	return Outcome{Conclusion: c, HasWinner: true, Winner: winner}
}

func drawnBy(c Conclusion) Outcome {
	return Outcome{Conclusion: c}
}
