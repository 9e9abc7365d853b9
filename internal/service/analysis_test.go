package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/search"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

func TestAnalysisService_Analyze(t *testing.T) {
	analysis := NewAnalysisService()

	t.Run("Shortcut at the root", func(t *testing.T) {
		// When: O analyzes a board where X threatens the top row
		report, err := analysis.Analyze(AnalyzeRequest{
			Board:     "xx.......",
			Depth:     search.Unlimited,
			Shortcuts: true,
			Pruning:   true,
		})

		// Then: the table answers without a search
		require.NoError(t, err)
		assert.Equal(t, 2, report.Move)
		assert.True(t, report.Shortcut)
		assert.Equal(t, 1, report.Nodes)
	})

	t.Run("Full search", func(t *testing.T) {
		report, err := analysis.Analyze(AnalyzeRequest{
			Board:   "xx.......",
			Depth:   search.Unlimited,
			Pruning: true,
		})

		require.NoError(t, err)
		assert.Equal(t, 2, report.Move)
		assert.False(t, report.Shortcut)
		assert.Equal(t, 96, report.Score)
		assert.Contains(t, report.Candidates[96], 2)
	})

	t.Run("Errors", func(t *testing.T) {
		_, err := analysis.Analyze(AnalyzeRequest{Board: "xx", Depth: search.Unlimited})
		require.ErrorIs(t, err, tictactoe.ErrInvalidBoard)

		_, err = analysis.Analyze(AnalyzeRequest{Board: ".........", Depth: 0})
		require.ErrorIs(t, err, search.ErrInvalidDepth)

		_, err = analysis.Analyze(AnalyzeRequest{Board: "xxxoo....", Depth: search.Unlimited})
		require.ErrorIs(t, err, search.ErrGameOver)
	})
}
