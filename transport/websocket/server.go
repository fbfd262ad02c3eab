package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/usecase"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer.
	maxMessageSize = 1024

	sessionCookie = "user_session"
)

type gameUseCase interface {
	GetOrCreateGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, cell int) (*usecase.TurnResult, error)
	ResetGame(ctx context.Context, gameID string) (*entity.Game, error)
}

type handlerFunc func(ctx context.Context, c *client, msg *Message) error

type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
	upgrader    websocket.Upgrader

	handlers map[string]handlerFunc
}

// client is one page connection. gameID is empty until connect succeeds.
type client struct {
	conn   *websocket.Conn
	gameID string
}

func New(logger *slog.Logger, gameUseCase gameUseCase) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameUseCase: gameUseCase,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionConnect] = server.handleConnect
	server.handlers[actionTurn] = server.handleTurn
	server.handlers[actionReset] = server.handleReset

	return server
}

// ServeHTTP upgrades the request and serves the connection until it closes.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	c := &client{conn: conn}
	if cookie, cookieErr := req.Cookie(sessionCookie); cookieErr == nil {
		c.gameID = cookie.Value
	}

	log.Info("WebSocket connection established", "remote", req.RemoteAddr)

	ctx, cancel := context.WithCancel(req.Context())
	defer cancel()

	go that.keepAlive(ctx, conn)

	if err = that.handleMessages(ctx, c); err != nil && !isClosed(err) {
		log.Error("error handling messages", "error", err)
	}

	log.Info("WebSocket connection closed", "gameID", c.gameID)
}

// handleMessages - processes messages from the client one at a time.
func (that *Server) handleMessages(ctx context.Context, c *client) error {
	log := that.logger.With("method", "handleMessages")

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return err
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, reqBody, err := c.conn.ReadMessage()
		if err != nil {
			return err
		}

		var message Message
		if err = json.Unmarshal(reqBody, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)

			if err = c.sendErrorResponse(actionError, "malformed message"); err != nil {
				return err
			}
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)

			if err = c.sendErrorResponse(actionError, fmt.Sprintf("%s: %s", apperror.ErrUnknownAction, message.Action)); err != nil {
				return err
			}
			continue
		}

		if err = handler(ctx, c, &message); err != nil {
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) {
				return err
			}

			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

// keepAlive pings the peer until ctx is done. WriteControl is safe to call
// alongside the reader's writes.
func (that *Server) keepAlive(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
