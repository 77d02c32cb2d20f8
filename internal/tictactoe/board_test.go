package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateBoard(t *testing.T) {
	t.Run("Winner X", func(t *testing.T) {
		// Given: a board where X owns the first column
		board := Board{x, o, e, x, o, e, x, e, e}

		// When: evaluating the board
		winner := EvaluateBoard(board)

		// Then: X is the winner
		require.Equal(t, PlayerX, winner)
	})

	t.Run("Winner O on diagonal", func(t *testing.T) {
		// Given: a board where O owns the anti-diagonal
		board := Board{x, x, o, e, o, x, o, e, e}

		// Then: O is the winner
		require.Equal(t, PlayerO, EvaluateBoard(board))
	})

	t.Run("Ongoing game", func(t *testing.T) {
		// Given: a board without a complete line
		board := Board{x, o, x, e, o, e, x, e, e}

		// Then: there is no winner
		require.Equal(t, EmptyCell, EvaluateBoard(board))
		assert.False(t, IsFull(board))
	})

	t.Run("Draw", func(t *testing.T) {
		// Given: a full board without a complete line
		board := Board{o, x, o, o, x, x, x, o, x}

		// Then: the board is full and nobody has won
		assert.Equal(t, EmptyCell, EvaluateBoard(board))
		assert.True(t, IsFull(board))
	})

	t.Run("Empty board", func(t *testing.T) {
		assert.Equal(t, EmptyCell, EvaluateBoard(Board{}))
	})
}

func TestEvaluateBoard_AllBoards(t *testing.T) {
	marks := [3]Mark{e, x, o}

	// Given: every possible assignment of the nine cells
	for code := range 19683 {
		var board Board
		n := code
		for i := range board {
			board[i] = marks[n%3]
			n /= 3
		}

		// When: evaluating the board
		winner := EvaluateBoard(board)

		// Then: a mark is returned iff that mark fills some line
		if winner == EmptyCell {
			for _, combo := range WinCombos {
				a := board[combo[0]]
				uniform := a != EmptyCell && a == board[combo[1]] && a == board[combo[2]]
				require.False(t, uniform, "board %v has line %v", board, combo)
			}
			continue
		}

		found := false
		for _, combo := range WinCombos {
			if board[combo[0]] == winner && board[combo[1]] == winner && board[combo[2]] == winner {
				found = true
				break
			}
		}
		require.True(t, found, "board %v reported winner %s", board, winner)
	}
}

func TestWinningLine(t *testing.T) {
	t.Run("Returns the completed row", func(t *testing.T) {
		board := Board{e, e, e, o, o, o, x, x, e}

		line, ok := WinningLine(board)

		require.True(t, ok)
		assert.Equal(t, [3]int{3, 4, 5}, line)
	})

	t.Run("No line", func(t *testing.T) {
		_, ok := WinningLine(Board{x, o, x})
		assert.False(t, ok)
	})
}

func TestMark_Opponent(t *testing.T) {
	assert.Equal(t, PlayerO, PlayerX.Opponent())
	assert.Equal(t, PlayerX, PlayerO.Opponent())
}

func TestCellLocation(t *testing.T) {
	row, col := cellLocation(0)
	assert.Equal(t, 1, row)
	assert.Equal(t, 1, col)

	row, col = cellLocation(5)
	assert.Equal(t, 2, row)
	assert.Equal(t, 3, col)

	row, col = cellLocation(7)
	assert.Equal(t, 3, row)
	assert.Equal(t, 2, col)
}
