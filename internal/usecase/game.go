package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

type GameUseCase interface {
	StartGame(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	GetOrCreateGame(ctx context.Context, gameID string) (*entity.Game, error)

	MakeTurn(ctx context.Context, gameID string, cell int) (*TurnResult, error)
	ResetGame(ctx context.Context, gameID string) (*entity.Game, error)
	EndGame(ctx context.Context, gameID string) error
}

// TurnResult is what a cell activation produced. Ignored moves leave Game as
// it was and carry the reason.
type TurnResult struct {
	Game    *entity.Game
	Move    tictactoe.Move
	Applied bool
	Reason  string
}

type gameService interface {
	CreateGame(ctx context.Context) (*entity.Game, error)
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	UpdateGame(ctx context.Context, game *entity.Game) error
	DeleteGame(ctx context.Context, gameID string) error
}

type gameUseCase struct {
	logger      *slog.Logger
	gameService gameService
	locker      *sessionLocker
}

func NewGameUseCase(logger *slog.Logger, gameService gameService) GameUseCase {
	return &gameUseCase{
		logger:      logger.With("component", "usecase"),
		gameService: gameService,
		locker:      newSessionLocker(),
	}
}

func (that *gameUseCase) StartGame(ctx context.Context) (*entity.Game, error) {
	game, err := that.gameService.CreateGame(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not start game: %w", err)
	}

	that.logger.Info("game started", "gameID", game.ID)

	return game, nil
}

func (that *gameUseCase) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// GetOrCreateGame returns the session's game, or a new one when the session
// is unknown or has expired.
func (that *gameUseCase) GetOrCreateGame(ctx context.Context, gameID string) (*entity.Game, error) {
	if gameID == "" {
		return that.StartGame(ctx)
	}

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if errors.Is(err, apperror.ErrGameNotFound) {
		return that.StartGame(ctx)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn applies a cell activation. Moves the engine rejects are not
// errors: the game is returned unchanged with Applied set to false.
func (that *gameUseCase) MakeTurn(ctx context.Context, gameID string, cell int) (*TurnResult, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", gameID, "cell", cell)

	unlock := that.locker.Lock(gameID)
	defer unlock()

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	move, err := tictactoe.ApplyMove(game, cell)
	if err != nil {
		if isIgnorable(err) {
			log.Debug("move ignored", "reason", err)

			return &TurnResult{Game: game, Reason: err.Error()}, nil
		}

		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to save turn: %w", err)
	}

	if move.Result.Status != entity.StatusInProgress {
		log.Info("game finished", "status", move.Result.Status, "winner", move.Result.Winner)
	}

	return &TurnResult{Game: game, Move: move, Applied: true}, nil
}

func (that *gameUseCase) ResetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	unlock := that.locker.Lock(gameID)
	defer unlock()

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	tictactoe.Reset(game)

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to save reset: %w", err)
	}

	that.logger.Debug("game reset", "gameID", gameID)

	return game, nil
}

func (that *gameUseCase) EndGame(ctx context.Context, gameID string) error {
	unlock := that.locker.Lock(gameID)
	defer unlock()

	if err := that.gameService.DeleteGame(ctx, gameID); err != nil {
		return fmt.Errorf("failed to end game: %w", err)
	}

	that.logger.Info("game ended", "gameID", gameID)

	return nil
}

func isIgnorable(err error) bool {
	return errors.Is(err, apperror.ErrInvalidCell) ||
		errors.Is(err, apperror.ErrCellOccupied) ||
		errors.Is(err, apperror.ErrGameFinished)
}
