package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/search"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

var errInvalidPayload = errors.New("invalid payload")

type gameService interface {
	CreateGame(ctx context.Context, req service.NewGameRequest) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error
	MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error)
	Hint(ctx context.Context, id string) (int, error)
}

type analysisService interface {
	Analyze(req service.AnalyzeRequest) (search.Report, error)
}

type Handlers interface {
	Ping(w http.ResponseWriter, _ *http.Request)

	CreateGame(w http.ResponseWriter, r *http.Request)
	GetGame(w http.ResponseWriter, r *http.Request)
	DeleteGame(w http.ResponseWriter, r *http.Request)
	MakeTurn(w http.ResponseWriter, r *http.Request)
	Hint(w http.ResponseWriter, r *http.Request)

	Analyze(w http.ResponseWriter, r *http.Request)
}

type handlers struct {
	logger *slog.Logger

	gameService     gameService
	analysisService analysisService
}

func NewHandlers(logger *slog.Logger, gameService gameService, analysisService analysisService) Handlers {
	return &handlers{
		logger:          logger.With("component", "handlers"),
		gameService:     gameService,
		analysisService: analysisService,
	}
}

type createGameRequest struct {
	Type        string `json:"type"`
	Depth       *int   `json:"depth"`
	HumanStarts bool   `json:"human_starts"`
}

type turnRequest struct {
	Cell *int `json:"cell"`
}

type hintResponse struct {
	Cell int `json:"cell"`
}

// analyzeRequest - omitted fields mean a full-depth search with shortcuts and pruning.
type analyzeRequest struct {
	Board      string `json:"board"`
	Maximizing bool   `json:"maximizing"`
	Depth      *int   `json:"depth"`
	Shortcuts  *bool  `json:"shortcuts"`
	Pruning    *bool  `json:"pruning"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	var payload createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		that.writeError(w, fmt.Errorf("%w: %w", errInvalidPayload, err))
		return
	}

	if payload.Type == "" {
		payload.Type = entity.WithBotType
	}

	game, err := that.gameService.CreateGame(r.Context(), service.NewGameRequest{
		Type:        payload.Type,
		Depth:       payload.Depth,
		HumanStarts: payload.HumanStarts,
	})
	if err != nil {
		that.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, game)
}

func (that *handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameService.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *handlers) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.gameService.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) MakeTurn(w http.ResponseWriter, r *http.Request) {
	var payload turnRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		that.writeError(w, fmt.Errorf("%w: %w", errInvalidPayload, err))
		return
	}

	if payload.Cell == nil {
		that.writeError(w, fmt.Errorf("%w: cell is required", errInvalidPayload))
		return
	}

	game, err := that.gameService.MakeTurn(r.Context(), chi.URLParam(r, "id"), *payload.Cell)
	if err != nil {
		that.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *handlers) Hint(w http.ResponseWriter, r *http.Request) {
	cell, err := that.gameService.Hint(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, hintResponse{Cell: cell})
}

func (that *handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	var payload analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		that.writeError(w, fmt.Errorf("%w: %w", errInvalidPayload, err))
		return
	}

	req := service.AnalyzeRequest{
		Board:      payload.Board,
		Maximizing: payload.Maximizing,
		Depth:      search.Unlimited,
		Shortcuts:  true,
		Pruning:    true,
	}
	if payload.Depth != nil {
		req.Depth = *payload.Depth
	}
	if payload.Shortcuts != nil {
		req.Shortcuts = *payload.Shortcuts
	}
	if payload.Pruning != nil {
		req.Pruning = *payload.Pruning
	}

	report, err := that.analysisService.Analyze(req)
	if err != nil {
		that.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (that *handlers) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
		writeJSON(w, status, errorResponse{Error: http.StatusText(status)})
		return
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, errInvalidPayload),
		errors.Is(err, entity.ErrInvalidCell),
		errors.Is(err, entity.ErrUnknownGameType),
		errors.Is(err, tictactoe.ErrInvalidBoard),
		errors.Is(err, search.ErrInvalidDepth):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, search.ErrGameOver):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
