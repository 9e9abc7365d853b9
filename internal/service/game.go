package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/search"
)

// NewGameRequest - Depth nil means the configured default.
type NewGameRequest struct {
	Type        string
	Depth       *int
	HumanStarts bool
}

type GameService interface {
	CreateGame(ctx context.Context, req NewGameRequest) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error

	// MakeTurn - plays cell for the side to move and, in bot games, the engine's reply.
	MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error)
	// Hint - the engine's move for the side to move.
	Hint(ctx context.Context, id string) (int, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameService struct {
	logger *slog.Logger

	gameRepo     gameRepo
	botService   BotService
	defaultDepth int
	newID        func() string
}

func NewGameService(logger *slog.Logger, gameRepo gameRepo, botService BotService, defaultDepth int) GameService {
	return &gameService{
		logger:       logger.With("component", "game"),
		gameRepo:     gameRepo,
		botService:   botService,
		defaultDepth: defaultDepth,
		newID:        uuid.NewString,
	}
}

func (that *gameService) CreateGame(ctx context.Context, req NewGameRequest) (*entity.Game, error) {
	log := that.logger.With("method", "CreateGame")

	depth := that.defaultDepth
	if req.Depth != nil {
		depth = *req.Depth
	}

	if _, err := search.New(depth); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	game, err := entity.NewGame(that.newID(), req.Type, depth, req.HumanStarts)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	// the engine moves first when it plays X
	if game.IsBotTurn() {
		if _, err = that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("failed to make bot turn: %w", err)
		}
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to save game to storage: %w", err)
	}

	log.Info("game created", "gameID", game.ID, "type", game.Type, "depth", game.Depth)

	return game, nil
}

func (that *gameService) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve game from storage: %w", err)
	}
	return game, nil
}

func (that *gameService) DeleteGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	return nil
}

func (that *gameService) MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", id)

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = game.ConfirmOngoingState(); err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	mark := game.Turn
	if game.IsWithBot() {
		mark = game.HumanMark
	}

	if err = game.MakeTurn(mark, cell); err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if game.IsBotTurn() {
		botCell, err := that.botService.MakeTurn(game)
		if err != nil {
			return nil, fmt.Errorf("failed to make bot turn: %w", err)
		}
		log.Debug("bot replied", "cell", botCell)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsFinished() {
		log.Info("game finished", "winner", game.Winner)
	}

	return game, nil
}

func (that *gameService) Hint(ctx context.Context, id string) (int, error) {
	game, err := that.GetGame(ctx, id)
	if err != nil {
		return 0, err
	}

	cell, err := that.botService.SuggestMove(game)
	if err != nil {
		return 0, fmt.Errorf("failed to suggest move: %w", err)
	}

	return cell, nil
}
