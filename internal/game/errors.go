package game

import "errors"

var (
	ErrOutOfBounds        = errors.New("square out of bounds")
	ErrNotYourPiece       = errors.New("no piece of yours on that square")
	ErrIllegalDestination = errors.New("illegal destination")
	ErrMovesIntoCheck     = errors.New("move leaves own king in check")
	ErrGameOver           = errors.New("game already over")

	ErrSquareOccupied  = errors.New("square occupied")
	ErrUnvalidatedMove = errors.New("move was not validated")
	ErrDrawNotOffered  = errors.New("no draw offer to accept")
)

// ErrorCode maps engine errors to the stable codes reported to external
// callers. Unknown errors map to the empty string.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrOutOfBounds):
		return "OutOfBounds"
	case errors.Is(err, ErrNotYourPiece):
		return "NotYourPiece"
	case errors.Is(err, ErrIllegalDestination):
		return "IllegalDestination"
	case errors.Is(err, ErrMovesIntoCheck):
		return "MovesIntoCheck"
	case errors.Is(err, ErrGameOver):
		return "GameAlreadyTerminal"
	default:
		return ""
	}
}
