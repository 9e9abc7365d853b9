package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

type memoryGame struct {
	games *xsync.MapOf[string, memoryEntry]
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryGameRepository - process-local store with the same contract as the redis one.
// Games are kept as JSON so callers never share a *entity.Game with the store.
func NewMemoryGameRepository(ttl time.Duration) GameRepository {
	return &memoryGame{
		games: xsync.NewMapOf[string, memoryEntry](),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (that *memoryGame) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	payload, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	entry := memoryEntry{payload: payload}
	if that.ttl > 0 {
		entry.expiresAt = that.now().Add(that.ttl)
	}

	that.games.Store(game.ID, entry)

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	entry, ok := that.load(id)
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	var existingGame entity.Game
	if err := json.Unmarshal(entry.payload, &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func (that *memoryGame) DeleteByID(_ context.Context, id string) error {
	if _, ok := that.load(id); !ok {
		return apperror.ErrGameNotFound
	}

	that.games.Delete(id)

	return nil
}

// load - returns a live entry, dropping it if it has expired.
func (that *memoryGame) load(id string) (memoryEntry, bool) {
	entry, ok := that.games.Load(id)
	if !ok {
		return memoryEntry{}, false
	}

	if !entry.expiresAt.IsZero() && !that.now().Before(entry.expiresAt) {
		that.games.Delete(id)
		return memoryEntry{}, false
	}

	return entry, true
}
