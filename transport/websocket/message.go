package websocket

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-web/internal/viewmodel"
)

const (
	actionConnect = "connect"
	actionTurn    = "game:turn"
	actionReset   = "game:reset"
	actionError   = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type ConnectPayload struct {
	GameID string `json:"game_id"`
}

type TurnPayload struct {
	Cell *int `json:"cell"`
}

type ResponsePayload struct {
	Game  *viewmodel.BoardView `json:"game,omitempty"`
	Move  *viewmodel.MoveView  `json:"move,omitempty"`
	Reset *viewmodel.ResetView `json:"reset,omitempty"`
	Error string               `json:"error,omitempty"`
}

func (that *client) sendMessage(action string, payload ResponsePayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = that.conn.WriteJSON(Message{Action: action, Payload: payloadJSON}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *client) sendErrorResponse(action, errMsg string) error {
	return that.sendMessage(action, ResponsePayload{Error: errMsg})
}

func isClosed(err error) bool {
	return websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived)
}
