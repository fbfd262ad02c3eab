package entity

import (
	"fmt"
	"time"
)

type Mark string

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusDrawn      Status = "drawn"
)

// BoardSize is the number of cells on the board, indexed row-major (row*3+col).
const BoardSize = 9

// WinCombos are the 3 rows, 3 columns and 2 diagonals. Read-only.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

type Board [BoardSize]Mark

// Result is the outcome derived from a board. Winner is set only for StatusWon.
type Result struct {
	Status Status `json:"status"`
	Winner Mark   `json:"winner,omitempty"`
}

// Game is the state owned by a single session. The result is never stored:
// it is recomputed from Board on every read.
type Game struct {
	ID        string    `json:"id"`
	Board     Board     `json:"board"`
	Turn      Mark      `json:"player_turn"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:        id,
		Turn:      PlayerX,
		UpdatedAt: time.Now().UTC(),
	}
}

// IsWinFor reports whether some winning line is entirely held by mark.
func (that *Board) IsWinFor(mark Mark) bool {
	if mark == EmptyCell {
		return false
	}

	for _, combo := range WinCombos {
		if that[combo[0]] == mark && that[combo[1]] == mark && that[combo[2]] == mark {
			return true
		}
	}

	return false
}

func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// MarksPlaced counts non-empty cells.
func (that *Board) MarksPlaced() int {
	count := 0
	for _, cell := range that {
		if cell != EmptyCell {
			count++
		}
	}

	return count
}

// DetermineGameResult evaluates the board: a win for either mark first, then a draw.
func (that *Game) DetermineGameResult() Result {
	for _, mark := range []Mark{PlayerX, PlayerO} {
		if that.Board.IsWinFor(mark) {
			return Result{Status: StatusWon, Winner: mark}
		}
	}

	if that.Board.IsFull() {
		return Result{Status: StatusDrawn}
	}

	return Result{Status: StatusInProgress}
}

func (that *Game) IsFinished() bool {
	return that.DetermineGameResult().Status != StatusInProgress
}

func (that *Game) IsOngoing() bool {
	return !that.IsFinished()
}

// StatusText is the line shown above the board.
func (that *Game) StatusText() string {
	result := that.DetermineGameResult()

	switch result.Status {
	case StatusWon:
		return fmt.Sprintf("Player %s wins!", result.Winner)
	case StatusDrawn:
		return "Game ended in a draw!"
	default:
		return fmt.Sprintf("Player %s's turn", that.Turn)
	}
}

func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (that Mark) IsValid() bool {
	return that == EmptyCell || that == PlayerX || that == PlayerO
}
