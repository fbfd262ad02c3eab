package tictactoe

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

// Move describes an applied move: the cell to repaint and the state after it.
type Move struct {
	Cell   int           `json:"cell"`
	Mark   entity.Mark   `json:"mark"`
	Result entity.Result `json:"result"`
	Turn   entity.Mark   `json:"player_turn"`
}

// ApplyMove places the current player's mark on cell. A rejected move returns
// an error and leaves the game untouched.
func ApplyMove(gameInstance *entity.Game, cell int) (Move, error) {
	if err := validateMove(gameInstance, cell); err != nil {
		return Move{}, fmt.Errorf("invalid move: %w", err)
	}

	player := gameInstance.Turn
	gameInstance.Board[cell] = player
	gameInstance.UpdatedAt = time.Now().UTC()

	result := updateGameStatus(gameInstance, player)

	return Move{
		Cell:   cell,
		Mark:   player,
		Result: result,
		Turn:   gameInstance.Turn,
	}, nil
}

// Reset clears the board and gives the first move back to X.
func Reset(gameInstance *entity.Game) {
	gameInstance.Board = entity.Board{}
	gameInstance.Turn = entity.PlayerX
	gameInstance.UpdatedAt = time.Now().UTC()
}

// validateMove - checks if the move is valid.
func validateMove(gameInstance *entity.Game, cell int) error {
	if cell < 0 || cell >= len(gameInstance.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if gameInstance.IsFinished() {
		return apperror.ErrGameFinished
	}

	if gameInstance.Board[cell] != entity.EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	return nil
}

// updateGameStatus - win check, then draw check, then pass the turn.
func updateGameStatus(gameInstance *entity.Game, player entity.Mark) entity.Result {
	switch {
	case gameInstance.Board.IsWinFor(player):
		return entity.Result{Status: entity.StatusWon, Winner: player}
	case gameInstance.Board.IsFull():
		return entity.Result{Status: entity.StatusDrawn}
	default:
		gameInstance.Turn = player.Opponent()
		return entity.Result{Status: entity.StatusInProgress}
	}
}
