// Package search picks moves for a 3x3 board with minimax and alpha-beta pruning.
//
// Scores are from X's point of view: X maximizes, O minimizes. A win for X at depth d is
// worth 100-d and a win for O -100+d, so faster wins and slower losses are preferred.
package search

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

const (
	// Unlimited - no depth limit, every leaf is a terminal position.
	Unlimited = -1

	WinScore = 100

	DefaultAlpha = -WinScore
	DefaultBeta  = WinScore
)

var (
	ErrInvalidDepth = errors.New("invalid search depth")
	ErrNilBoard     = errors.New("board is nil")
	ErrGameOver     = errors.New("board is already in a terminal state")
)

// Engine - a configured searcher. It keeps no state between calls, so one Engine may be
// shared by any number of games.
type Engine struct {
	maxDepth  int
	shortcuts bool
	pruning   bool
}

type Option func(*Engine)

// WithShortcuts - toggles the two-in-a-line shortcut table (on by default).
func WithShortcuts(enabled bool) Option {
	return func(e *Engine) {
		e.shortcuts = enabled
	}
}

// WithPruning - toggles alpha-beta cut-offs (on by default). Without them the search is plain minimax.
func WithPruning(enabled bool) Option {
	return func(e *Engine) {
		e.pruning = enabled
	}
}

func New(maxDepth int, opts ...Option) (*Engine, error) {
	if maxDepth == 0 || maxDepth < Unlimited {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDepth, maxDepth)
	}

	engine := &Engine{
		maxDepth:  maxDepth,
		shortcuts: true,
		pruning:   true,
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine, nil
}

func (that *Engine) MaxDepth() int {
	return that.maxDepth
}

// Report - outcome of one root search.
type Report struct {
	Move  int `json:"move"`
	Score int `json:"score"`
	// Shortcut - the move came straight from the shortcut table at the root.
	Shortcut bool `json:"shortcut"`
	// Candidates - root moves grouped by the value their subtree returned, in search order.
	Candidates map[int][]int `json:"candidates,omitempty"`
	Nodes      int           `json:"nodes"`
	Cutoffs    int           `json:"cutoffs"`
}

// BestMove - searches board for the side to move and returns the chosen cell.
// onDone, if not nil, is called once with the same cell before BestMove returns.
// The board is not modified.
func (that *Engine) BestMove(board *tictactoe.Board, maximizing bool, onDone func(int)) (int, error) {
	report, err := that.Analyze(DefaultAlpha, DefaultBeta, board, maximizing)
	if err != nil {
		return 0, err
	}

	if onDone != nil {
		onDone(report.Move)
	}

	return report.Move, nil
}

// Analyze - root search with an explicit alpha-beta window.
func (that *Engine) Analyze(alpha, beta int, board *tictactoe.Board, maximizing bool) (Report, error) {
	if board == nil {
		return Report{}, ErrNilBoard
	}

	if board.Terminal().IsTerminal() {
		return Report{}, ErrGameOver
	}

	r := &run{engine: that, candidates: make(candidates)}
	r.nodes++

	if cell, ok := r.shortcut(board); ok {
		return Report{Move: cell, Score: cell, Shortcut: true, Nodes: r.nodes}, nil
	}

	best := r.expand(alpha, beta, board, maximizing, 0)

	return Report{
		Move:       r.candidates.first(best),
		Score:      best,
		Candidates: r.candidates,
		Nodes:      r.nodes,
		Cutoffs:    r.cutoffs,
	}, nil
}
