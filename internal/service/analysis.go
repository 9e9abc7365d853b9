package service

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/search"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

// AnalyzeRequest - a stateless position query. Board uses the ParseBoard notation.
type AnalyzeRequest struct {
	Board      string
	Maximizing bool
	Depth      int
	Shortcuts  bool
	Pruning    bool
}

type AnalysisService interface {
	Analyze(req AnalyzeRequest) (search.Report, error)
}

type analysisService struct{}

func NewAnalysisService() AnalysisService {
	return &analysisService{}
}

func (that *analysisService) Analyze(req AnalyzeRequest) (search.Report, error) {
	board, err := tictactoe.ParseBoard(req.Board)
	if err != nil {
		return search.Report{}, fmt.Errorf("failed to parse board: %w", err)
	}

	engine, err := search.New(req.Depth, search.WithShortcuts(req.Shortcuts), search.WithPruning(req.Pruning))
	if err != nil {
		return search.Report{}, fmt.Errorf("failed to create engine: %w", err)
	}

	report, err := engine.Analyze(search.DefaultAlpha, search.DefaultBeta, board, req.Maximizing)
	if err != nil {
		return search.Report{}, fmt.Errorf("failed to analyze board: %w", err)
	}

	return report, nil
}
