package tictactoe

import "fmt"

// Move is one entry of the history list shown next to the board.
type Move struct {
	Step    int    `json:"step"`
	Label   string `json:"label"`
	Row     int    `json:"row,omitempty"`
	Col     int    `json:"col,omitempty"`
	Current bool   `json:"current"`
}

// View is everything the page needs to draw the game.
type View struct {
	Board       Board  `json:"board"`
	NextPlayer  Mark   `json:"next_player"`
	Status      Status `json:"status"`
	Winner      Mark   `json:"winner,omitempty"`
	WinningLine []int  `json:"winning_line,omitempty"`
	Message     string `json:"message"`
	CurrentStep int    `json:"current_step"`
	Descending  bool   `json:"descending"`
	Moves       []Move `json:"moves"`
}

func NewView(game *Game, descending bool) View {
	view := View{
		Board:       game.Current(),
		NextPlayer:  game.NextPlayer,
		Status:      game.Status(),
		Winner:      game.Winner(),
		CurrentStep: game.CurrentStep,
		Descending:  descending,
		Moves:       make([]Move, 0, game.Steps()),
	}

	if line, ok := WinningLine(view.Board); ok {
		view.WinningLine = line[:]
	}

	view.Message = statusMessage(view.Status, view.Winner, view.NextPlayer)

	for step := range game.Steps() {
		view.Moves = append(view.Moves, newMove(game, step))
	}

	if descending {
		for i, j := 0, len(view.Moves)-1; i < j; i, j = i+1, j-1 {
			view.Moves[i], view.Moves[j] = view.Moves[j], view.Moves[i]
		}
	}

	return view
}

func newMove(game *Game, step int) Move {
	move := Move{
		Step:    step,
		Current: step == game.CurrentStep,
	}

	if cell, ok := game.MoveCell(step); ok {
		move.Row, move.Col = cellLocation(cell)
	}

	switch {
	case move.Current:
		move.Label = fmt.Sprintf("You are at move #%d", step)
	case step == 0:
		move.Label = "Go to game start"
	default:
		move.Label = fmt.Sprintf("Go to move #%d (%d, %d)", step, move.Row, move.Col)
	}

	return move
}

func statusMessage(status Status, winner, next Mark) string {
	switch status {
	case StatusWon:
		return "Winner: " + string(winner)
	case StatusDraw:
		return "Draw"
	default:
		return "Next player: " + string(next)
	}
}
