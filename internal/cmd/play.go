package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

const prompt = "> "

var playHelp = heredoc.Doc(`
	Cells are numbered 1-9, left to right, top to bottom.
	Type a number to place a mark, "r" to reset, "q" to quit.
`)

func Play() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Plays a hot-seat game in the terminal",
		Long: heredoc.Doc(`
			play starts a game for two players sharing this terminal.
		`) + "\n" + playHelp,
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, _ []string) error {
			return newTerminalGame(cmd.InOrStdin(), cmd.OutOrStdout()).Run()
		},
	}
}

// terminalGame is a hot-seat session: one board, two players, one terminal.
type terminalGame struct {
	in     *bufio.Scanner
	out    *termenv.Output
	writer io.Writer
	game   *entity.Game
}

func newTerminalGame(in io.Reader, out io.Writer, opts ...termenv.OutputOption) *terminalGame {
	return &terminalGame{
		in:     bufio.NewScanner(in),
		out:    termenv.NewOutput(out, opts...),
		writer: out,
		game:   entity.NewGame("terminal"),
	}
}

// Run reads commands until "q" or end of input.
func (that *terminalGame) Run() error {
	fmt.Fprint(that.writer, playHelp)
	that.render()

	for {
		fmt.Fprint(that.writer, prompt)

		if !that.in.Scan() {
			fmt.Fprintln(that.writer)
			return that.in.Err()
		}

		input := strings.ToLower(strings.TrimSpace(that.in.Text()))

		switch input {
		case "":
			continue
		case "q", "quit":
			return nil
		case "r", "reset":
			tictactoe.Reset(that.game)
			that.render()
		default:
			that.move(input)
		}
	}
}

func (that *terminalGame) move(input string) {
	number, err := strconv.Atoi(input)
	if err != nil {
		fmt.Fprintln(that.writer, that.warn(fmt.Sprintf("unknown command %q", input)))
		return
	}

	if _, err = tictactoe.ApplyMove(that.game, number-1); err != nil {
		fmt.Fprintln(that.writer, that.warn(rejectionText(err)))
		return
	}

	that.render()
}

func (that *terminalGame) render() {
	var sb strings.Builder

	sb.WriteString("\n")
	for row := 0; row < 3; row++ {
		if row > 0 {
			sb.WriteString("---+---+---\n")
		}

		cells := make([]string, 3)
		for col := 0; col < 3; col++ {
			cells[col] = " " + that.cell(row*3+col) + " "
		}
		sb.WriteString(strings.Join(cells, "|") + "\n")
	}
	sb.WriteString("\n")

	fmt.Fprint(that.writer, sb.String())
	fmt.Fprintln(that.writer, that.out.String(that.game.StatusText()).Bold().String())
}

func (that *terminalGame) cell(idx int) string {
	switch mark := that.game.Board[idx]; mark {
	case entity.PlayerX:
		return that.out.String(string(mark)).Foreground(that.out.Color("1")).Bold().String()
	case entity.PlayerO:
		return that.out.String(string(mark)).Foreground(that.out.Color("4")).Bold().String()
	default:
		return that.out.String(strconv.Itoa(idx + 1)).Faint().String()
	}
}

func (that *terminalGame) warn(text string) string {
	return that.out.String(text).Foreground(that.out.Color("3")).String()
}

func rejectionText(err error) string {
	switch {
	case errors.Is(err, apperror.ErrInvalidCell):
		return "pick a cell from 1 to 9"
	case errors.Is(err, apperror.ErrCellOccupied):
		return "that cell is taken"
	case errors.Is(err, apperror.ErrGameFinished):
		return `the game is over, type "r" to play again`
	default:
		return err.Error()
	}
}
