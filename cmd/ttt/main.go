// Command ttt plays tic-tac-toe against the engine, or between two people, in the terminal.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/search"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

var (
	depth       = search.Unlimited
	humanStarts = true
	mode        = entity.WithBotType
	shortcuts   = true
	verbose     = false
)

func init() {
	pflag.IntVarP(&depth, "depth", "d", depth, "engine search depth, -1 for unlimited")
	pflag.BoolVar(&humanStarts, "human-starts", humanStarts, "human plays X and moves first (bot mode)")
	pflag.StringVarP(&mode, "mode", "m", mode, "bot or local")
	pflag.BoolVar(&shortcuts, "shortcuts", shortcuts, "let the engine use its two-in-a-line table")
	pflag.BoolVarP(&verbose, "verbose", "v", verbose, "log engine decisions to stderr")
}

func main() {
	pflag.Parse()

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := play(context.Background(), logger, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func play(ctx context.Context, logger *slog.Logger, in io.Reader, out io.Writer) error {
	bot := service.NewBotService(logger, service.EngineSettings{Shortcuts: shortcuts, Pruning: true})
	games := service.NewGameService(logger, repository.NewMemoryGameRepository(0), bot, depth)

	game, err := games.CreateGame(ctx, service.NewGameRequest{Type: mode, Depth: &depth, HumanStarts: humanStarts})
	if err != nil {
		return fmt.Errorf("could not start game: %w", err)
	}

	scanner := bufio.NewScanner(in)
	for game.IsOngoing() {
		render(out, game)
		fmt.Fprintf(out, "%s to move, cell 0-8, \"hint\" or \"quit\": ", game.Turn)

		if !scanner.Scan() {
			return scanner.Err() //nolint: wrapcheck // input closed
		}

		input := strings.TrimSpace(scanner.Text())
		switch input {
		case "quit", "q":
			return nil
		case "hint", "h":
			cell, err := games.Hint(ctx, game.ID)
			if err != nil {
				return fmt.Errorf("could not get hint: %w", err)
			}
			fmt.Fprintf(out, "try %d\n", cell)
			continue
		}

		cell, err := strconv.Atoi(input)
		if err != nil {
			fmt.Fprintln(out, "not a cell number")
			continue
		}

		next, err := games.MakeTurn(ctx, game.ID, cell)
		switch {
		case errors.Is(err, apperror.ErrCellOccupied), errors.Is(err, entity.ErrInvalidCell):
			fmt.Fprintln(out, "that cell can't be played")
			continue
		case err != nil:
			return fmt.Errorf("could not make turn: %w", err)
		}

		game = next
	}

	render(out, game)
	if game.Winner == entity.PlayerTie {
		fmt.Fprintln(out, "draw")
	} else {
		fmt.Fprintf(out, "%s wins\n", game.Winner)
	}

	return nil
}

// render - prints the grid with free cells numbered.
func render(out io.Writer, game *entity.Game) {
	for row := 0; row < 3; row++ {
		cells := make([]string, 3)
		for col := 0; col < 3; col++ {
			i := row*3 + col
			cells[col] = string(game.Board[i])
			if game.Board[i] == tictactoe.Empty {
				cells[col] = strconv.Itoa(i)
			}
		}
		fmt.Fprintf(out, " %s\n", strings.Join(cells, " | "))
	}
}
