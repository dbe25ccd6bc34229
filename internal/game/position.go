package game

import (
	"errors"
	"fmt"

	"github.com/notnil/chess"
)

// ErrEngineFault marks a rejection caused by the rules engine failing
// internally rather than by an illegal move.
var ErrEngineFault = errors.New("rules engine fault")

// Position holds the current state of a game-in-progress. It wraps the
// rules engine, which owns legality checking and turn tracking; callers
// never mutate the position except through Apply.
type Position struct {
	g *chess.Game
}

// NewPosition creates a position at the standard starting point.
func NewPosition() *Position {
	return &Position{g: chess.NewGame(chess.UseNotation(chess.UCINotation{}))}
}

// NewPositionFEN loads a position from a serialized snapshot. The
// to-move side and legal-move set survive the round-trip; move history
// does not.
func NewPositionFEN(fen string) (*Position, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("load position: %w", err)
	}
	return &Position{g: chess.NewGame(opt, chess.UseNotation(chess.UCINotation{}))}, nil
}

// Turn returns the side to move.
func (p *Position) Turn() Role {
	if p.g.Position().Turn() == chess.White {
		return RoleWhite
	}
	return RoleBlack
}

// FEN returns the serialized current position.
func (p *Position) FEN() string {
	return p.g.Position().String()
}

// Apply submits a move descriptor to the rules engine. On acceptance
// the position advances and nil is returned; an illegal or malformed
// descriptor yields an error and leaves the position untouched. A panic
// inside the engine is recovered and reported as a rejection.
func (p *Position) Apply(m Move) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrEngineFault, r)
		}
	}()
	if err := p.g.MoveStr(m.UCI()); err != nil {
		return fmt.Errorf("illegal move %s: %w", m.UCI(), err)
	}
	return nil
}

// Outcome reports the game result once the engine declares one, e.g.
// "1-0 by Checkmate".
func (p *Position) Outcome() (string, bool) {
	if p.g.Outcome() == chess.NoOutcome {
		return "", false
	}
	return fmt.Sprintf("%s by %s", p.g.Outcome().String(), p.g.Method().String()), true
}

// LegalMoveCount reports how many moves the engine currently allows.
func (p *Position) LegalMoveCount() int {
	return len(p.g.ValidMoves())
}

// MoveCount reports how many moves have been accepted since this
// position was created.
func (p *Position) MoveCount() int {
	return len(p.g.Moves())
}
