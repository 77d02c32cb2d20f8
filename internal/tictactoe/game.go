package tictactoe

import (
	"errors"
	"fmt"
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusDraw       Status = "draw"
)

var ErrInvalidGameState = errors.New("invalid game state")

// Game holds every board snapshot since the start, the step being viewed and
// the player whose mark goes next. History[0] is always the empty board.
type Game struct {
	History     []Board `json:"history"`
	CurrentStep int     `json:"current_step"`
	NextPlayer  Mark    `json:"next_player"`
}

func NewGame() *Game {
	return &Game{
		History:     []Board{{}},
		CurrentStep: 0,
		NextPlayer:  PlayerX,
	}
}

// Current - returns the board at the viewed step.
func (that *Game) Current() Board {
	return that.History[that.CurrentStep]
}

// ApplyMove - places the next player's mark on cell. Moves on an occupied
// cell, outside the board or after the game is decided are ignored; the
// return value tells whether the move was accepted.
func (that *Game) ApplyMove(cell int) bool {
	if cell < 0 || cell >= BoardSize {
		return false
	}

	current := that.Current()
	if current[cell] != EmptyCell || EvaluateBoard(current) != EmptyCell {
		return false
	}

	next := current
	next[cell] = that.NextPlayer

	// everything after the viewed step is discarded
	that.History = append(that.History[:that.CurrentStep+1:that.CurrentStep+1], next)
	that.CurrentStep++
	that.NextPlayer = that.NextPlayer.Opponent()

	return true
}

// JumpTo - moves the view to a recorded step without touching the history.
func (that *Game) JumpTo(step int) bool {
	if step < 0 || step >= len(that.History) {
		return false
	}

	that.CurrentStep = step
	that.NextPlayer = playerForStep(step)

	return true
}

func (that *Game) Status() Status {
	current := that.Current()

	switch {
	case EvaluateBoard(current) != EmptyCell:
		return StatusWon
	case IsFull(current):
		return StatusDraw
	default:
		return StatusInProgress
	}
}

func (that *Game) Winner() Mark {
	return EvaluateBoard(that.Current())
}

func (that *Game) IsFinished() bool {
	return that.Status() != StatusInProgress
}

// Steps - number of recorded snapshots.
func (that *Game) Steps() int {
	return len(that.History)
}

// MoveCell - returns the cell that was filled to reach step.
func (that *Game) MoveCell(step int) (int, bool) {
	if step <= 0 || step >= len(that.History) {
		return 0, false
	}

	prev, cur := that.History[step-1], that.History[step]
	for i := range cur {
		if prev[i] != cur[i] {
			return i, true
		}
	}

	return 0, false
}

// Validate - checks a game restored from storage.
func (that *Game) Validate() error {
	if len(that.History) == 0 {
		return fmt.Errorf("%w: empty history", ErrInvalidGameState)
	}

	if that.History[0] != (Board{}) {
		return fmt.Errorf("%w: first snapshot is not empty", ErrInvalidGameState)
	}

	if that.CurrentStep < 0 || that.CurrentStep >= len(that.History) {
		return fmt.Errorf("%w: step %d out of range", ErrInvalidGameState, that.CurrentStep)
	}

	if that.NextPlayer != playerForStep(that.CurrentStep) {
		return fmt.Errorf("%w: next player %q at step %d", ErrInvalidGameState, that.NextPlayer, that.CurrentStep)
	}

	return nil
}

func playerForStep(step int) Mark {
	if step%2 == 0 {
		return PlayerX
	}
	return PlayerO
}
