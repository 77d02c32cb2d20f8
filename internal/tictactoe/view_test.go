package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewView(t *testing.T) {
	t.Run("New game", func(t *testing.T) {
		// When: rendering a new game
		view := NewView(NewGame(), false)

		// Then: the board is empty and X is next
		assert.Equal(t, Board{}, view.Board)
		assert.Equal(t, "Next player: X", view.Message)
		assert.Equal(t, StatusInProgress, view.Status)
		require.Len(t, view.Moves, 1)
		assert.Equal(t, Move{Step: 0, Label: "You are at move #0", Current: true}, view.Moves[0])
	})

	t.Run("Labels carry move locations", func(t *testing.T) {
		// Given: a game with moves on 4 and 2, viewed at step 1
		game := NewGame()
		playMoves(t, game, 4, 2)
		require.True(t, game.JumpTo(1))

		// When: rendering the game
		view := NewView(game, false)

		// Then: each entry is labelled for jumping
		expected := []Move{
			{Step: 0, Label: "Go to game start"},
			{Step: 1, Label: "You are at move #1", Row: 2, Col: 2, Current: true},
			{Step: 2, Label: "Go to move #2 (1, 3)", Row: 1, Col: 3},
		}
		assert.Equal(t, expected, view.Moves)
		assert.Equal(t, "Next player: O", view.Message)
		assert.Equal(t, 1, view.CurrentStep)
	})

	t.Run("Descending order", func(t *testing.T) {
		// Given: a game with three moves
		game := NewGame()
		playMoves(t, game, 0, 1, 2)

		// When: rendering in descending order
		view := NewView(game, true)

		// Then: the latest step comes first
		require.Len(t, view.Moves, 4)
		assert.Equal(t, 3, view.Moves[0].Step)
		assert.Equal(t, 0, view.Moves[3].Step)
		assert.True(t, view.Descending)
	})

	t.Run("Winner is highlighted", func(t *testing.T) {
		// Given: a game won by X on the top row
		game := NewGame()
		playMoves(t, game, 0, 3, 1, 4, 2)

		// When: rendering the game
		view := NewView(game, false)

		// Then: the message and the line point at X
		assert.Equal(t, "Winner: X", view.Message)
		assert.Equal(t, PlayerX, view.Winner)
		assert.Equal(t, []int{0, 1, 2}, view.WinningLine)
		assert.Equal(t, StatusWon, view.Status)
	})

	t.Run("Draw", func(t *testing.T) {
		game := NewGame()
		playMoves(t, game, 0, 1, 2, 4, 3, 5, 7, 6, 8)

		view := NewView(game, false)

		assert.Equal(t, "Draw", view.Message)
		assert.Empty(t, view.WinningLine)
		assert.Equal(t, EmptyCell, view.Winner)
	})
}
