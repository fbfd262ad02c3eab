package repository

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

type memoryGame struct {
	cache *expirable.LRU[string, entity.Game]
}

// NewMemoryGameRepository keeps at most capacity games in process memory.
// Games expire ttl after their last write; the least recently used game is
// evicted once capacity is reached.
func NewMemoryGameRepository(capacity int, ttl time.Duration) GameRepository {
	return &memoryGame{
		cache: expirable.NewLRU[string, entity.Game](capacity, nil, ttl),
	}
}

// Values are stored as copies so callers never share a board with the cache.
func (that *memoryGame) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	that.cache.Add(game.ID, *game)

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	game, ok := that.cache.Get(id)
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	return &game, nil
}

func (that *memoryGame) DeleteByID(_ context.Context, id string) error {
	if !that.cache.Remove(id) {
		return apperror.ErrGameNotFound
	}

	return nil
}
