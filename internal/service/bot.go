package service

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/search"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

// centerCell - the engine's opening move on an empty board.
const centerCell = 4

var ErrNotBotTurn = errors.New("it's not the bot's turn")

// EngineSettings - switches applied to every engine the bot builds.
type EngineSettings struct {
	Shortcuts bool
	Pruning   bool
}

type BotService interface {
	// MakeTurn - plays the engine's move into game and returns the cell.
	MakeTurn(game *entity.Game) (int, error)
	// SuggestMove - the move the engine would play for the side to move, game is not changed.
	SuggestMove(game *entity.Game) (int, error)
}

type botService struct {
	logger   *slog.Logger
	settings EngineSettings
}

func NewBotService(logger *slog.Logger, settings EngineSettings) BotService {
	return &botService{
		logger:   logger.With("component", "bot"),
		settings: settings,
	}
}

func (that *botService) MakeTurn(game *entity.Game) (int, error) {
	if !game.IsBotTurn() {
		return 0, ErrNotBotTurn
	}

	mark := game.BotMark()

	cell, err := that.chooseMove(game, mark)
	if err != nil {
		return 0, err
	}

	if err = game.MakeTurn(mark, cell); err != nil {
		return 0, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return cell, nil
}

func (that *botService) SuggestMove(game *entity.Game) (int, error) {
	if err := game.ConfirmOngoingState(); err != nil {
		return 0, err //nolint: wrapcheck // sentinel is matched by callers
	}

	return that.chooseMove(game, game.Turn)
}

// chooseMove - X maximizes, so the engine maximizes exactly when it plays X.
func (that *botService) chooseMove(game *entity.Game, mark tictactoe.Mark) (int, error) {
	log := that.logger.With("method", "chooseMove", "gameID", game.ID, "mark", mark)

	board := game.Snapshot()
	if board.IsEmpty() {
		return centerCell, nil
	}

	cell, err := that.search(board, game.Depth, mark, that.settings.Shortcuts, log)
	if err != nil {
		return 0, err
	}

	if slices.Contains(board.AvailableMoves(), cell) {
		return cell, nil
	}

	// the shortcut table can name a cell that is already taken
	log.Warn("engine proposed an occupied cell, searching again without shortcuts", "cell", cell)

	return that.search(board, game.Depth, mark, false, log)
}

func (that *botService) search(board *tictactoe.Board, depth int, mark tictactoe.Mark, shortcuts bool, log *slog.Logger) (int, error) {
	engine, err := search.New(depth, search.WithShortcuts(shortcuts), search.WithPruning(that.settings.Pruning))
	if err != nil {
		return 0, fmt.Errorf("failed to create engine: %w", err)
	}

	cell, err := engine.BestMove(board, mark == tictactoe.X, func(cell int) {
		log.Debug("engine picked a move", "cell", cell, "depth", depth, "shortcuts", shortcuts)
	})
	if err != nil {
		return 0, fmt.Errorf("engine failed to pick a move: %w", err)
	}

	return cell, nil
}
