package search

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

func newEngine(t *testing.T, maxDepth int, opts ...Option) *Engine {
	t.Helper()

	engine, err := New(maxDepth, opts...)
	require.NoError(t, err)

	return engine
}

func parse(t *testing.T, s string) *tictactoe.Board {
	t.Helper()

	board, err := tictactoe.ParseBoard(s)
	require.NoError(t, err)

	return board
}

func TestNew(t *testing.T) {
	t.Run("Rejects depths that cannot produce a move", func(t *testing.T) {
		for _, depth := range []int{0, -2, -10} {
			_, err := New(depth)
			assert.ErrorIs(t, err, ErrInvalidDepth, "depth %d", depth)
		}
	})

	t.Run("Accepts unlimited and positive depths", func(t *testing.T) {
		for _, depth := range []int{Unlimited, 1, 4, 9} {
			engine, err := New(depth)
			require.NoError(t, err)
			assert.Equal(t, depth, engine.MaxDepth())
		}
	})
}

func TestEngine_BestMove_BlocksImmediateWin(t *testing.T) {
	t.Run("Shortcut table answers straight away", func(t *testing.T) {
		// Given: X holds 0 and 1, O to move
		engine := newEngine(t, Unlimited)
		board := parse(t, "xx.......")

		// When: analyzing for O
		report, err := engine.Analyze(DefaultAlpha, DefaultBeta, board, false)

		// Then: the pair (0,1) maps to cell 2 without expanding the tree
		require.NoError(t, err)
		assert.Equal(t, 2, report.Move)
		assert.True(t, report.Shortcut)
		assert.Equal(t, 1, report.Nodes)
	})

	t.Run("Plain minimax blocks as well", func(t *testing.T) {
		// Given: the same position without the shortcut table
		engine := newEngine(t, Unlimited, WithShortcuts(false))
		board := parse(t, "xx.......")

		// When: analyzing for O
		report, err := engine.Analyze(DefaultAlpha, DefaultBeta, board, false)

		// Then: O blocks at 2; X still forks and wins on ply 4
		require.NoError(t, err)
		assert.Equal(t, 2, report.Move)
		assert.Equal(t, WinScore-4, report.Score)
		assert.False(t, report.Shortcut)
	})
}

func TestEngine_BestMove_TakesWin(t *testing.T) {
	for _, shortcuts := range []bool{true, false} {
		t.Run(fmt.Sprintf("shortcuts=%v", shortcuts), func(t *testing.T) {
			// Given: X can complete the top row
			engine := newEngine(t, Unlimited, WithShortcuts(shortcuts))
			board := parse(t, "xx.oo....")

			// When: X searches
			move, err := engine.BestMove(board, true, nil)

			// Then: X plays 2
			require.NoError(t, err)
			assert.Equal(t, 2, move)
		})
	}
}

func TestEngine_Analyze_Candidates(t *testing.T) {
	// Given: X to move with one winning cell
	engine := newEngine(t, Unlimited, WithShortcuts(false), WithPruning(false))
	board := parse(t, "xx.oo....")

	// When: analyzing
	report, err := engine.Analyze(DefaultAlpha, DefaultBeta, board, true)

	// Then: the winning cell is the only move recorded under the winning score
	require.NoError(t, err)
	assert.Equal(t, WinScore-1, report.Score)
	assert.Equal(t, []int{2}, report.Candidates[WinScore-1])

	total := 0
	for _, moves := range report.Candidates {
		total += len(moves)
	}
	assert.Equal(t, len(board.AvailableMoves()), total)
}

func TestEngine_BestMove_TieBreakLowestIndex(t *testing.T) {
	for _, maximizing := range []bool{true, false} {
		t.Run(fmt.Sprintf("maximizing=%v", maximizing), func(t *testing.T) {
			// Given: an empty board, where every opening draws with best play
			engine := newEngine(t, Unlimited, WithShortcuts(false))

			// When: searching
			report, err := engine.Analyze(DefaultAlpha, DefaultBeta, tictactoe.NewBoard(), maximizing)

			// Then: the first recorded move under the best score, cell 0, is chosen
			require.NoError(t, err)
			assert.Equal(t, 0, report.Score)
			assert.Equal(t, 0, report.Move)
			assert.Equal(t, 0, report.Candidates[0][0])
		})
	}
}

func TestEngine_BestMove_Deterministic(t *testing.T) {
	engine := newEngine(t, Unlimited)
	board := tictactoe.NewBoard()

	first, err := engine.BestMove(board, true, nil)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		move, err := engine.BestMove(board, true, nil)
		require.NoError(t, err)
		assert.Equal(t, first, move)
	}

	assert.Contains(t, board.AvailableMoves(), first)
}

func TestEngine_BestMove_Callback(t *testing.T) {
	// Given: an ongoing game
	engine := newEngine(t, Unlimited)
	board := parse(t, "x...o....")

	// When: searching with a callback
	var calls []int
	move, err := engine.BestMove(board, true, func(cell int) {
		calls = append(calls, cell)
	})

	// Then: the callback fired exactly once with the returned move
	require.NoError(t, err)
	assert.Equal(t, []int{move}, calls)
}

func TestEngine_BestMove_CallbackOnShortcut(t *testing.T) {
	engine := newEngine(t, Unlimited)

	var calls []int
	move, err := engine.BestMove(parse(t, "xx......."), false, func(cell int) {
		calls = append(calls, cell)
	})

	require.NoError(t, err)
	assert.Equal(t, 2, move)
	assert.Equal(t, []int{2}, calls)
}

func TestEngine_BestMove_DoesNotMutateBoard(t *testing.T) {
	for _, shortcuts := range []bool{true, false} {
		engine := newEngine(t, Unlimited, WithShortcuts(shortcuts))
		board := parse(t, "x...o..x.")
		before := board.Cells()

		_, err := engine.BestMove(board, false, nil)
		require.NoError(t, err)

		assert.Equal(t, before, board.Cells())
	}
}

func TestEngine_BestMove_Errors(t *testing.T) {
	engine := newEngine(t, Unlimited)

	t.Run("Nil board", func(t *testing.T) {
		called := false
		_, err := engine.BestMove(nil, true, func(int) { called = true })

		assert.ErrorIs(t, err, ErrNilBoard)
		assert.False(t, called)
	})

	t.Run("Won board", func(t *testing.T) {
		_, err := engine.BestMove(parse(t, "xxxoo...."), false, nil)
		assert.ErrorIs(t, err, ErrGameOver)
	})

	t.Run("Drawn board", func(t *testing.T) {
		_, err := engine.BestMove(parse(t, "xoxxoooxx"), true, nil)
		assert.ErrorIs(t, err, ErrGameOver)
	})
}

func TestEngine_BestMove_DepthLimit(t *testing.T) {
	t.Run("Sees a win one ply ahead", func(t *testing.T) {
		engine := newEngine(t, 1, WithShortcuts(false))

		move, err := engine.BestMove(parse(t, "xx.oo...."), true, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, move)
	})

	t.Run("Scores unfinished positions at the limit as zero", func(t *testing.T) {
		for _, shortcuts := range []bool{true, false} {
			// Given: a quiet position and a one-ply horizon
			engine := newEngine(t, 1, WithShortcuts(shortcuts))

			// When: X searches
			report, err := engine.Analyze(DefaultAlpha, DefaultBeta, parse(t, "x...o...."), true)

			// Then: every reply scores 0 and the lowest free cell is chosen
			require.NoError(t, err)
			assert.Equal(t, 0, report.Score)
			assert.Equal(t, 1, report.Move)
			assert.Equal(t, []int{1, 2, 3, 5, 6, 7, 8}, report.Candidates[0])
		}
	})
}

func TestEngine_ShortcutNamesOccupiedCell(t *testing.T) {
	// Given: the first matching pair is (0,1) while its completing cell 2 is taken
	engine := newEngine(t, Unlimited)
	board := parse(t, "xxo.o....")

	// When: analyzing for X
	report, err := engine.Analyze(DefaultAlpha, DefaultBeta, board, true)

	// Then: the table answer is returned unchanged
	require.NoError(t, err)
	assert.True(t, report.Shortcut)
	assert.Equal(t, 2, report.Move)
	assert.NotContains(t, board.AvailableMoves(), report.Move)
}

// positions - every non-terminal board reachable with up to plies moves, X first.
func positions(plies int) []*tictactoe.Board {
	result := []*tictactoe.Board{tictactoe.NewBoard()}
	frontier := result

	for ply := 0; ply < plies; ply++ {
		mark := tictactoe.X
		if ply%2 == 1 {
			mark = tictactoe.O
		}

		var next []*tictactoe.Board
		for _, board := range frontier {
			for _, move := range board.AvailableMoves() {
				child := board.Clone()
				child.Insert(mark, move)
				if !child.Terminal().IsTerminal() {
					next = append(next, child)
				}
			}
		}

		result = append(result, next...)
		frontier = next
	}

	return result
}

func TestEngine_PruningMatchesExhaustiveSearch(t *testing.T) {
	for _, depth := range []int{Unlimited, 2, 3} {
		for _, shortcuts := range []bool{true, false} {
			t.Run(fmt.Sprintf("depth=%d/shortcuts=%v", depth, shortcuts), func(t *testing.T) {
				pruned := newEngine(t, depth, WithShortcuts(shortcuts))
				exhaustive := newEngine(t, depth, WithShortcuts(shortcuts), WithPruning(false))

				for _, board := range positions(3) {
					maximizing := board.Count()%2 == 0

					// When: both engines search the same position
					got, err := pruned.Analyze(DefaultAlpha, DefaultBeta, board, maximizing)
					require.NoError(t, err)

					want, err := exhaustive.Analyze(DefaultAlpha, DefaultBeta, board, maximizing)
					require.NoError(t, err)

					// Then: pruning changes how much is visited, never the answer
					require.Equal(t, want.Move, got.Move, "board\n%s", board)
					require.Equal(t, want.Score, got.Score, "board\n%s", board)
					require.LessOrEqual(t, got.Nodes, want.Nodes)
					require.Zero(t, want.Cutoffs)
				}
			})
		}
	}
}

func TestEngine_NeverPicksLosingOpening(t *testing.T) {
	// Given: a full-depth textbook search
	engine := newEngine(t, Unlimited, WithShortcuts(false))
	board := tictactoe.NewBoard()

	// When: X opens
	move, err := engine.BestMove(board, true, nil)
	require.NoError(t, err)
	require.True(t, board.Insert(tictactoe.X, move))

	// Then: O's best reply still only reaches a draw
	report, err := engine.Analyze(DefaultAlpha, DefaultBeta, board, false)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Score)
}

func TestEngine_SelfPlayDraws(t *testing.T) {
	engine := newEngine(t, Unlimited, WithShortcuts(false))

	for opening := 0; opening < tictactoe.Size; opening++ {
		t.Run(fmt.Sprintf("start(%d)", opening), func(t *testing.T) {
			board := tictactoe.NewBoard()
			require.True(t, board.Insert(tictactoe.X, opening))

			mark := tictactoe.O
			for !board.Terminal().IsTerminal() {
				move, err := engine.BestMove(board, mark == tictactoe.X, nil)
				require.NoError(t, err)
				require.True(t, board.Insert(mark, move), "move %d on\n%s", move, board)

				mark = mark.Opponent()
			}

			assert.Equal(t, tictactoe.Draw, board.Terminal().Outcome, "game should end in a draw:\n%s", board)
		})
	}
}
