package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/viewmodel"
)

// handleConnect attaches the connection to a session, creating one when the
// requested id is unknown or missing.
func (that *Server) handleConnect(ctx context.Context, c *client, msg *Message) error {
	log := that.logger.With("method", "handleConnect")

	var payload ConnectPayload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return c.sendErrorResponse(actionConnect, apperror.ErrInvalidPayload.Error())
		}
	}

	gameID := payload.GameID
	if gameID == "" {
		gameID = c.gameID
	}

	game, err := that.gameUseCase.GetOrCreateGame(ctx, gameID)
	if err != nil {
		log.Error("failed to get or create game", "error", err)

		if sendErr := c.sendErrorResponse(actionConnect, "failed to connect to game"); sendErr != nil {
			return sendErr
		}
		return fmt.Errorf("failed to connect: %w", err)
	}

	c.gameID = game.ID

	view := viewmodel.NewBoardView(game)
	return c.sendMessage(actionConnect, ResponsePayload{Game: &view})
}

// handleTurn applies a cell activation. An ignored move is still answered so
// the page can redraw from the authoritative board.
func (that *Server) handleTurn(ctx context.Context, c *client, msg *Message) error {
	log := that.logger.With("method", "handleTurn", "gameID", c.gameID)

	if c.gameID == "" {
		return c.sendErrorResponse(actionTurn, "not connected to a game")
	}

	var payload TurnPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil || payload.Cell == nil {
		return c.sendErrorResponse(actionTurn, apperror.ErrInvalidPayload.Error())
	}

	turn, err := that.gameUseCase.MakeTurn(ctx, c.gameID, *payload.Cell)
	if err != nil {
		log.Error("failed to make turn", "error", err)

		if sendErr := c.sendErrorResponse(actionTurn, "failed to make turn"); sendErr != nil {
			return sendErr
		}
		return fmt.Errorf("failed to make turn: %w", err)
	}

	view := viewmodel.NewMoveView(*payload.Cell, turn)
	return c.sendMessage(actionTurn, ResponsePayload{Move: &view})
}

func (that *Server) handleReset(ctx context.Context, c *client, _ *Message) error {
	log := that.logger.With("method", "handleReset", "gameID", c.gameID)

	if c.gameID == "" {
		return c.sendErrorResponse(actionReset, "not connected to a game")
	}

	game, err := that.gameUseCase.ResetGame(ctx, c.gameID)
	if err != nil {
		log.Error("failed to reset game", "error", err)

		if sendErr := c.sendErrorResponse(actionReset, "failed to reset game"); sendErr != nil {
			return sendErr
		}
		return fmt.Errorf("failed to reset game: %w", err)
	}

	view := viewmodel.NewResetView(game)
	return c.sendMessage(actionReset, ResponsePayload{Reset: &view})
}
