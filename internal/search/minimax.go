package search

import "github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"

// candidates - root-ply bookkeeping: value -> moves that produced it, in the order searched.
type candidates map[int][]int

func (that candidates) record(value, move int) {
	that[value] = append(that[value], move)
}

// first - lowest-searched move recorded under value. Moves are searched in ascending
// order, so ties go to the lowest index.
func (that candidates) first(value int) int {
	return that[value][0]
}

// run - state of a single root search. It is created per call and dropped afterwards.
type run struct {
	engine     *Engine
	candidates candidates
	nodes      int
	cutoffs    int
}

func (that *run) search(alpha, beta int, board *tictactoe.Board, maximizing bool, depth int) int {
	that.nodes++

	if value, ok := that.evaluate(board, depth); ok {
		return value
	}

	if cell, ok := that.shortcut(board); ok {
		return cell
	}

	return that.expand(alpha, beta, board, maximizing, depth)
}

// evaluate - static value of terminal positions and of positions at the depth limit.
// There is no evaluator for unfinished positions, so they score 0 at the limit.
func (that *run) evaluate(board *tictactoe.Board, depth int) (int, bool) {
	result := board.Terminal()

	switch {
	case result.Outcome == tictactoe.Win && result.Winner == tictactoe.X:
		return WinScore - depth, true
	case result.Outcome == tictactoe.Win && result.Winner == tictactoe.O:
		return -WinScore + depth, true
	case result.Outcome == tictactoe.Draw, depth == that.engine.maxDepth:
		return 0, true
	}

	return 0, false
}

func (that *run) expand(alpha, beta int, board *tictactoe.Board, maximizing bool, depth int) int {
	mark, best := tictactoe.O, WinScore
	if maximizing {
		mark, best = tictactoe.X, -WinScore
	}

	for _, move := range board.AvailableMoves() {
		child := board.Clone()
		child.Insert(mark, move)

		value := that.search(alpha, beta, child, !maximizing, depth+1)

		if maximizing {
			best = max(best, value)
			alpha = max(alpha, best)
		} else {
			best = min(best, value)
			beta = min(beta, best)
		}

		if depth == 0 {
			that.candidates.record(value, move)
		}

		if that.engine.pruning && alpha >= beta {
			that.cutoffs++
			break
		}
	}

	return best
}
