package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playMoves(t *testing.T, game *entity.Game, cells ...int) {
	t.Helper()

	for _, cell := range cells {
		_, err := ApplyMove(game, cell)
		require.NoError(t, err, "cell %d", cell)
	}
}

func TestApplyMove(t *testing.T) {
	t.Run("ApplyMove", func(t *testing.T) {
		// Given: a new game
		game := entity.NewGame("123")

		// When: player X moves to cell 0
		move, err := ApplyMove(game, 0)
		require.NoError(t, err)

		// Then: the cell holds X and the turn passes to O
		assert.Equal(t, Move{
			Cell:   0,
			Mark:   entity.PlayerX,
			Result: entity.Result{Status: entity.StatusInProgress},
			Turn:   entity.PlayerO,
		}, move)
		assert.Equal(t, entity.Board{entity.PlayerX}, game.Board)
		assert.Equal(t, entity.PlayerO, game.Turn)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: a game where X holds cell 0
		game := entity.NewGame("123")
		playMoves(t, game, 0)
		before := *game

		// When: O tries to move to the same cell
		_, err := ApplyMove(game, 0)

		// Then: ErrCellOccupied is returned and nothing changes
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, before, *game)
	})

	t.Run("Invalid Cell", func(t *testing.T) {
		// Given: a new game
		game := entity.NewGame("123")
		before := *game

		// When: an index outside the board is passed
		_, errHigh := ApplyMove(game, 9)
		_, errNegative := ApplyMove(game, -1)

		// Then: ErrInvalidCell is returned and nothing changes
		assert.ErrorIs(t, errHigh, apperror.ErrInvalidCell)
		assert.ErrorIs(t, errNegative, apperror.ErrInvalidCell)
		assert.Equal(t, before, *game)
	})

	t.Run("Move After Game Finished", func(t *testing.T) {
		// Given: a game X has won on the top row
		game := entity.NewGame("123")
		playMoves(t, game, 0, 3, 1, 4, 2)
		before := *game

		// When: another move is attempted
		_, err := ApplyMove(game, 5)

		// Then: ErrGameFinished is returned and nothing changes
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, before, *game)
	})

	t.Run("Move After Draw", func(t *testing.T) {
		// Given: a drawn game
		game := entity.NewGame("123")
		playMoves(t, game, 0, 1, 2, 4, 3, 5, 7, 6, 8)
		require.Equal(t, entity.StatusDrawn, game.DetermineGameResult().Status)
		before := *game

		// When: a move is attempted on the full board
		_, err := ApplyMove(game, 4)

		// Then: ErrGameFinished is returned and nothing changes
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, before, *game)
	})
}

func TestApplyMove_Scenarios(t *testing.T) {
	t.Run("Top row win for X", func(t *testing.T) {
		// Given: a new game
		game := entity.NewGame("1")

		// When: X@0, O@3, X@1, O@4, X@2
		playMoves(t, game, 0, 3, 1, 4)
		move, err := ApplyMove(game, 2)
		require.NoError(t, err)

		// Then: X wins and the turn does not advance
		assert.Equal(t, entity.Result{Status: entity.StatusWon, Winner: entity.PlayerX}, move.Result)
		assert.Equal(t, entity.PlayerX, game.Turn)
		assert.Equal(t, "Player X wins!", game.StatusText())
	})

	t.Run("Win for O", func(t *testing.T) {
		// Given: a new game
		game := entity.NewGame("1")

		// When: O completes the left column
		playMoves(t, game, 1, 0, 2, 3, 4)
		move, err := ApplyMove(game, 6)
		require.NoError(t, err)

		// Then: O wins
		assert.Equal(t, entity.Result{Status: entity.StatusWon, Winner: entity.PlayerO}, move.Result)
		assert.Equal(t, entity.PlayerO, game.Turn)
	})

	t.Run("Alternating sequence is won by X on the anti-diagonal", func(t *testing.T) {
		// Given: a new game
		game := entity.NewGame("1")

		// When: X@0, O@1, X@2, O@3, X@4, O@5, X@6 is played
		playMoves(t, game, 0, 1, 2, 3, 4, 5)
		move, err := ApplyMove(game, 6)
		require.NoError(t, err)

		// Then: X has completed 2-4-6 and the rest of the sequence is rejected
		assert.Equal(t, entity.Result{Status: entity.StatusWon, Winner: entity.PlayerX}, move.Result)

		_, err = ApplyMove(game, 7)
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		_, err = ApplyMove(game, 8)
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Draw", func(t *testing.T) {
		// Given: a new game
		game := entity.NewGame("1")

		// When: the board fills without a line
		playMoves(t, game, 0, 1, 2, 4, 3, 5, 7, 6)
		move, err := ApplyMove(game, 8)
		require.NoError(t, err)

		// Then: the game is drawn
		assert.Equal(t, entity.Result{Status: entity.StatusDrawn}, move.Result)
		assert.Equal(t, entity.PlayerX, move.Mark)
		assert.Equal(t, "Game ended in a draw!", game.StatusText())
	})
}

func TestApplyMove_TurnParity(t *testing.T) {
	// Given: a new game and a non-terminating sequence of empty cells
	game := entity.NewGame("1")
	cells := []int{4, 0, 8, 2, 1, 7}

	for i, cell := range cells {
		// Then: X is to move iff an even number of moves was applied
		expected := entity.PlayerO
		if i%2 == 0 {
			expected = entity.PlayerX
		}
		require.Equal(t, expected, game.Turn, "before move %d", i)

		move, err := ApplyMove(game, cell)
		require.NoError(t, err)
		require.Equal(t, expected, move.Mark)
		require.Equal(t, entity.StatusInProgress, move.Result.Status)
	}

	// And: the board holds exactly the marks placed
	assert.Equal(t, entity.Board{
		entity.PlayerO, entity.PlayerX, entity.PlayerO,
		entity.EmptyCell, entity.PlayerX, entity.EmptyCell,
		entity.EmptyCell, entity.PlayerO, entity.PlayerX,
	}, game.Board)
	assert.Equal(t, len(cells), game.Board.MarksPlaced())
}

func TestReset(t *testing.T) {
	for name, cells := range map[string][]int{
		"fresh":       nil,
		"in progress": {0, 4},
		"won":         {0, 3, 1, 4, 2},
		"drawn":       {0, 1, 2, 4, 3, 5, 7, 6, 8},
	} {
		t.Run(name, func(t *testing.T) {
			// Given: a game in some state
			game := entity.NewGame("1")
			playMoves(t, game, cells...)

			// When: the game is reset
			Reset(game)

			// Then: the board is empty, X moves and the game is in progress
			assert.Equal(t, "1", game.ID)
			assert.Equal(t, entity.Board{}, game.Board)
			assert.Equal(t, entity.PlayerX, game.Turn)
			assert.Equal(t, entity.Result{Status: entity.StatusInProgress}, game.DetermineGameResult())
			assert.Equal(t, "Player X's turn", game.StatusText())
		})
	}
}
