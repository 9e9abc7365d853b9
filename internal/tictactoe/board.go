package tictactoe

import (
	"errors"
	"fmt"
	"strings"
)

// Size - number of cells on the 3x3 grid.
const Size = 9

type Mark string

const (
	Empty Mark = ""
	X     Mark = "X"
	O     Mark = "O"
)

// Opponent - returns the other mark, Empty stays Empty.
func (that Mark) Opponent() Mark {
	switch that {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (that Mark) IsPlayer() bool {
	return that == X || that == O
}

var ErrInvalidBoard = errors.New("invalid board")

// Board - 9 cells in row-major order. A cell goes from Empty to a mark once and is never cleared.
type Board struct {
	cells [Size]Mark
}

func NewBoard() *Board {
	return &Board{}
}

// NewBoardFrom - builds a board from the given cells without validating them.
func NewBoardFrom(cells [Size]Mark) *Board {
	return &Board{cells: cells}
}

// ParseBoard - parses 9 characters: x/X, o/O, and one of ".-_ " for an empty cell.
func ParseBoard(s string) (*Board, error) {
	if len(s) != Size {
		return nil, fmt.Errorf("%w: expected %d cells, got %d", ErrInvalidBoard, Size, len(s))
	}

	board := NewBoard()
	for i, ch := range []byte(s) {
		switch ch {
		case 'x', 'X':
			board.cells[i] = X
		case 'o', 'O':
			board.cells[i] = O
		case '.', '-', '_', ' ':
		default:
			return nil, fmt.Errorf("%w: unexpected %q at cell %d", ErrInvalidBoard, ch, i)
		}
	}

	return board, nil
}

func (that *Board) Cells() [Size]Mark {
	return that.cells
}

// At - returns the mark at index, Empty for indices off the board.
func (that *Board) At(index int) Mark {
	if index < 0 || index >= Size {
		return Empty
	}
	return that.cells[index]
}

func (that *Board) Clone() *Board {
	clone := *that
	return &clone
}

func (that *Board) IsEmpty() bool {
	for _, cell := range that.cells {
		if cell != Empty {
			return false
		}
	}
	return true
}

func (that *Board) IsFull() bool {
	for _, cell := range that.cells {
		if cell == Empty {
			return false
		}
	}
	return true
}

// Count - number of occupied cells.
func (that *Board) Count() int {
	n := 0
	for _, cell := range that.cells {
		if cell != Empty {
			n++
		}
	}
	return n
}

// Insert - places mark at index. Returns false without touching the board if the index is
// off the grid, the cell is taken, or mark is not X or O. Whose turn it is is not checked here.
func (that *Board) Insert(mark Mark, index int) bool {
	if index < 0 || index >= Size || that.cells[index] != Empty || !mark.IsPlayer() {
		return false
	}

	that.cells[index] = mark
	return true
}

// AvailableMoves - empty cells in ascending order.
func (that *Board) AvailableMoves() []int {
	moves := make([]int, 0, Size)
	for i, cell := range that.cells {
		if cell == Empty {
			moves = append(moves, i)
		}
	}
	return moves
}

// Terminal - classifies the board. Lines are checked in Lines order and the first match wins.
func (that *Board) Terminal() Result {
	if that.IsEmpty() {
		return Result{Outcome: NonTerminal}
	}

	for _, line := range Lines {
		a, b, c := that.cells[line.Cells[0]], that.cells[line.Cells[1]], that.cells[line.Cells[2]]
		if a != Empty && a == b && b == c {
			return Result{
				Outcome:   Win,
				Winner:    a,
				Direction: line.Direction,
				Line:      line.Index,
			}
		}
	}

	if that.IsFull() {
		return Result{Outcome: Draw}
	}

	return Result{Outcome: NonTerminal}
}

func (that *Board) String() string {
	var sb strings.Builder
	for i, cell := range that.cells {
		if cell == Empty {
			sb.WriteByte('.')
		} else {
			sb.WriteString(string(cell))
		}

		if i%3 == 2 && i != Size-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
