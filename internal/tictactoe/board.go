package tictactoe

// Mark is the value of a single cell: empty or one of the two players.
type Mark string

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
)

const BoardSize = 9

// WinCombos - rows, columns and diagonals of a 3x3 board.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is a snapshot of all nine cells. It is a value type, so assigning a
// Board copies it.
type Board [BoardSize]Mark

// Opponent - returns the mark that plays after this one.
func (m Mark) Opponent() Mark {
	if m == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// EvaluateBoard - returns the mark that owns a complete line, or EmptyCell if nobody does.
func EvaluateBoard(board Board) Mark {
	mark, _ := findWinner(board)
	return mark
}

// WinningLine - returns the cells of the completed line, if there is one.
func WinningLine(board Board) ([3]int, bool) {
	mark, combo := findWinner(board)
	return combo, mark != EmptyCell
}

// IsFull - reports whether no empty cell is left.
func IsFull(board Board) bool {
	for _, cell := range board {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func findWinner(board Board) (Mark, [3]int) {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a, combo
		}
	}

	return EmptyCell, [3]int{}
}

// cellLocation - 1-based row and column of a cell index.
func cellLocation(cell int) (int, int) {
	return cell/3 + 1, cell%3 + 1
}
