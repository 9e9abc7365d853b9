package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerTie = "-"
)

const (
	WithBotType = "bot"
	LocalType   = "local"
)

var (
	ErrInvalidCell       = errors.New("invalid cell index")
	ErrUnknownGameStatus = errors.New("unknown game status")
	ErrUnknownGameType   = errors.New("unknown game type")
)

// WinLine - the line that decided the game, used by clients to draw it.
type WinLine struct {
	Direction tictactoe.Direction `json:"direction"`
	Index     int                 `json:"index"`
}

type Game struct {
	ID        string                         `json:"id"`
	Board     [tictactoe.Size]tictactoe.Mark `json:"board"`
	Winner    string                         `json:"winner"`
	Status    string                         `json:"status"`
	Turn      tictactoe.Mark                 `json:"player_turn"`
	Type      string                         `json:"type"`
	Depth     int                            `json:"depth"`
	HumanMark tictactoe.Mark                 `json:"human_mark,omitempty"`
	WinLine   *WinLine                       `json:"win_line,omitempty"`
	Moves     []int                          `json:"moves"`
	CreatedAt time.Time                      `json:"created_at"`
}

// NewGame - X always moves first, so whoever starts plays X. For local games HumanMark stays empty.
func NewGame(id, gameType string, depth int, humanStarts bool) (*Game, error) {
	game := &Game{
		ID:        id,
		Turn:      tictactoe.X,
		Status:    StatusOngoing,
		Type:      gameType,
		Depth:     depth,
		Moves:     []int{},
		CreatedAt: time.Now().UTC(),
	}

	switch gameType {
	case WithBotType:
		game.HumanMark = tictactoe.O
		if humanStarts {
			game.HumanMark = tictactoe.X
		}
	case LocalType:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGameType, gameType)
	}

	return game, nil
}

// Snapshot - a detached board with the current cells.
func (that *Game) Snapshot() *tictactoe.Board {
	return tictactoe.NewBoardFrom(that.Board)
}

func (that *Game) UpdateGameState() {
	result := that.Snapshot().Terminal()

	switch result.Outcome {
	// one player wins
	case tictactoe.Win:
		that.Winner = string(result.Winner)
		that.WinLine = &WinLine{Direction: result.Direction, Index: result.Line}
		that.Status = StatusFinished
		that.Turn = tictactoe.Empty
	// tie
	case tictactoe.Draw:
		that.Winner = PlayerTie
		that.Status = StatusFinished
		that.Turn = tictactoe.Empty
	// game continue
	default:
		that.Status = StatusOngoing
	}
}

func (that *Game) MakeTurn(mark tictactoe.Mark, cell int) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if cell < 0 || cell >= tictactoe.Size {
		return fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	if that.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	board := that.Snapshot()
	if !board.Insert(mark, cell) {
		return apperror.ErrCellOccupied
	}

	that.Board = board.Cells()
	that.Moves = append(that.Moves, cell)
	that.Turn = mark.Opponent()

	that.UpdateGameState()

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

func (that *Game) IsWithBot() bool {
	return that.Type == WithBotType
}

// BotMark - the engine's mark in a bot game, Empty otherwise.
func (that *Game) BotMark() tictactoe.Mark {
	if !that.IsWithBot() {
		return tictactoe.Empty
	}
	return that.HumanMark.Opponent()
}

// IsBotTurn - true when the engine has to move next.
func (that *Game) IsBotTurn() bool {
	return that.IsWithBot() && that.IsOngoing() && that.Turn == that.BotMark()
}
