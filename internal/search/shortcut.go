package search

import "github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"

// pair - two cells of a line and the cell that completes it.
type pair struct {
	a, b  int
	reply int
}

// shortcutTable - checked in order before a node is expanded. When both cells of a pair hold
// the same mark, the node's value is the completing cell index itself, whichever mark it is
// and whether or not that cell is free. Parents then compare that index with real scores.
//
// This mixes cell indices into the score domain and can change the chosen move compared to
// plain minimax. It is kept as-is; WithShortcuts(false) turns it off.
var shortcutTable = [24]pair{
	// rows
	{0, 1, 2}, {1, 2, 0}, {0, 2, 1},
	{3, 4, 5}, {3, 5, 4}, {4, 5, 3},
	{6, 7, 8}, {6, 8, 7}, {7, 8, 6},
	// columns
	{0, 3, 6}, {0, 6, 3}, {3, 6, 0},
	{1, 4, 7}, {1, 7, 4}, {4, 7, 1},
	{2, 5, 8}, {2, 8, 5}, {5, 8, 2},
	// diagonals
	{0, 4, 8}, {0, 8, 4}, {4, 8, 0},
	{2, 4, 6}, {2, 6, 4}, {4, 6, 2},
}

func (that *run) shortcut(board *tictactoe.Board) (int, bool) {
	if !that.engine.shortcuts {
		return 0, false
	}

	for _, p := range shortcutTable {
		if mark := board.At(p.a); mark != tictactoe.Empty && mark == board.At(p.b) {
			return p.reply, true
		}
	}

	return 0, false
}
