// Package viewmodel turns game state into what the page draws: one string
// per cell and the status line.
package viewmodel

import (
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/usecase"
)

type BoardView struct {
	GameID   string    `json:"game_id"`
	Cells    [9]string `json:"cells"`
	Status   string    `json:"status"`
	Turn     string    `json:"player_turn,omitempty"`
	Winner   string    `json:"winner,omitempty"`
	Finished bool      `json:"finished"`
}

// MoveView tells the page which single cell to repaint.
type MoveView struct {
	Cell    int       `json:"cell"`
	Mark    string    `json:"mark,omitempty"`
	Applied bool      `json:"applied"`
	Reason  string    `json:"reason,omitempty"`
	Board   BoardView `json:"board"`
}

// ResetView tells the page to blank every cell.
type ResetView struct {
	Clear bool      `json:"clear"`
	Board BoardView `json:"board"`
}

func NewBoardView(game *entity.Game) BoardView {
	result := game.DetermineGameResult()

	view := BoardView{
		GameID:   game.ID,
		Status:   game.StatusText(),
		Winner:   string(result.Winner),
		Finished: result.Status != entity.StatusInProgress,
	}

	if !view.Finished {
		view.Turn = string(game.Turn)
	}

	for idx, mark := range game.Board {
		view.Cells[idx] = string(mark)
	}

	return view
}

func NewMoveView(cell int, turn *usecase.TurnResult) MoveView {
	view := MoveView{
		Cell:    cell,
		Applied: turn.Applied,
		Reason:  turn.Reason,
		Board:   NewBoardView(turn.Game),
	}

	if turn.Applied {
		view.Mark = string(turn.Move.Mark)
	}

	return view
}

func NewResetView(game *entity.Game) ResetView {
	return ResetView{
		Clear: true,
		Board: NewBoardView(game),
	}
}
