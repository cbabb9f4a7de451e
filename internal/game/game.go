package game

import "fmt"

// Game couples a rules state with its clock and draw-offer bookkeeping.
// One Game is owned by exactly one session; the engine does no locking of
// its own.
type Game struct {
	state      *GameState
	clock      *Clock
	drawOffers [2]bool
}

// New builds a game from a configuration and starts white's clock.
func New(cfg Config) (*Game, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	state, err := newGameState(cfg)
	if err != nil {
		return nil, err
	}
	clock := NewClock(cfg.InitialTime, cfg.Increment, cfg.FixedExtraTime)
	clock.Start(White)
	return &Game{state: state, clock: clock}, nil
}

// MoveResult is what external callers get back from a move submission. The
// caller persists or broadcasts it; the engine holds no such responsibility.
type MoveResult struct {
	Accepted bool       `json:"accepted"`
	Error    string     `json:"error,omitempty"`
	Outcome  Outcome    `json:"outcome"`
	State    BoardState `json:"state"`
}

// SubmitMove validates and, on success, commits a move for the given side,
// then advances the clock. The clock is polled first so a fallen flag ends
// the game before the move is considered.
func (g *Game) SubmitMove(side Color, mv Move) MoveResult {
	if _, timedOut := g.CheckTimeout(); timedOut {
		return g.reject(ErrGameOver)
	}
	if g.state.Outcome().Terminal() {
		return g.reject(ErrGameOver)
	}
	if side != g.state.Turn() {
		return g.reject(ErrNotYourPiece)
	}

	lm, err := g.state.Validate(mv)
	if err != nil {
		return g.reject(err)
	}
	if err := g.state.Commit(lm); err != nil {
		return g.reject(err)
	}
	g.drawOffers = [2]bool{}
	g.clock.OnMoveCommitted(side)
	if g.state.Outcome().Terminal() {
		g.clock.Stop()
	}

	return MoveResult{Accepted: true, Outcome: g.state.Outcome(), State: g.Snapshot()}
}

func (g *Game) reject(err error) MoveResult {
	return MoveResult{
		Error:   ErrorCode(err),
		Outcome: g.Outcome(),
		State:   g.Snapshot(),
	}
}

// CheckTimeout polls the clock and, on a fallen flag, concludes the game:
// a win for the opponent, or a draw when the opponent lacks mating
// material.
func (g *Game) CheckTimeout() (Outcome, bool) {
	if g.state.Outcome().Terminal() {
		return g.state.Outcome(), false
	}
	flagged, ok := g.clock.FlagFallen()
	if !ok {
		return Ongoing, false
	}
	winner := flagged.Opposite()
	var out Outcome
	if insufficientMaterial(g.state.board, winner) {
		out = drawnBy(ConclusionTimeoutInsufficientMaterial)
	} else {
		out = wonBy(ConclusionTimeout, winner)
	}
	_ = g.state.conclude(out)
	g.clock.Stop()
	return out, true
}

// Resign ends the game in the opponent's favor.
func (g *Game) Resign(side Color) error {
	if err := g.state.conclude(wonBy(ConclusionResignation, side.Opposite())); err != nil {
		return err
	}
	g.clock.Stop()
	return nil
}

// OfferDraw records a standing draw offer. When both sides have one open
// the game ends as an agreed draw. Offers are cleared by any committed
// move.
func (g *Game) OfferDraw(side Color) error {
	if g.state.Outcome().Terminal() {
		return ErrGameOver
	}
	g.drawOffers[side.Index()] = true
	if g.drawOffers[White.Index()] && g.drawOffers[Black.Index()] {
		if err := g.state.conclude(drawnBy(ConclusionAgreedDraw)); err != nil {
			return err
		}
		g.clock.Stop()
	}
	return nil
}

// Outcome polls the clock and returns the game's terminal result, or the
// ongoing zero value.
func (g *Game) Outcome() Outcome {
	if out, ok := g.CheckTimeout(); ok {
		return out
	}
	return g.state.Outcome()
}

func (g *Game) State() *GameState { return g.state }
func (g *Game) Clock() *Clock     { return g.clock }
