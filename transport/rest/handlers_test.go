package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-web/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository"
	"github.com/rocketscienceinc/tictactoe-web/internal/service"
	"github.com/rocketscienceinc/tictactoe-web/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-web/internal/viewmodel"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gameRepo := repository.NewMemoryGameRepository(16, time.Minute)
	gameUseCase := usecase.NewGameUseCase(logger, service.NewGameService(gameRepo))

	socket := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	return New(logger, gameUseCase, socket).Handler()
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var value T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &value))

	return value
}

func createGame(t *testing.T, handler http.Handler) viewmodel.BoardView {
	t.Helper()

	rec := doRequest(t, handler, http.MethodPost, "/api/games", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	return decode[viewmodel.BoardView](t, rec)
}

func TestPingAndPage(t *testing.T) {
	handler := newTestHandler(t)

	t.Run("Ping", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodGet, "/ping", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "pong", rec.Body.String())
	})

	t.Run("Index page", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodGet, "/", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Equal(t, 9, strings.Count(rec.Body.String(), `class="cell"`))
	})

	t.Run("WebSocket route", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodGet, "/ws", nil)

		assert.Equal(t, http.StatusTeapot, rec.Code)
	})
}

func TestGameHandler(t *testing.T) {
	handler := newTestHandler(t)

	t.Run("CreateGame", func(t *testing.T) {
		// When: a game is created
		rec := doRequest(t, handler, http.MethodPost, "/api/games", nil)

		// Then: an empty board is returned and the session cookie is set
		require.Equal(t, http.StatusCreated, rec.Code)
		view := decode[viewmodel.BoardView](t, rec)
		assert.True(t, pkg.IsValidSessionID(view.GameID))
		assert.Equal(t, "Player X's turn", view.Status)
		assert.False(t, view.Finished)
		assert.Contains(t, rec.Header().Get("Set-Cookie"), sessionCookie+"="+view.GameID)
	})

	t.Run("MakeTurn until X wins", func(t *testing.T) {
		// Given: a new game
		game := createGame(t, handler)
		path := "/api/games/" + game.GameID + "/moves"

		// When: X@0, O@3, X@1, O@4, X@2
		var last viewmodel.MoveView
		for _, cell := range []int{0, 3, 1, 4, 2} {
			rec := doRequest(t, handler, http.MethodPost, path, map[string]int{"cell": cell})
			require.Equal(t, http.StatusOK, rec.Code)
			last = decode[viewmodel.MoveView](t, rec)
			require.True(t, last.Applied, "cell %d", cell)
		}

		// Then: X wins and later moves are ignored
		assert.Equal(t, "Player X wins!", last.Board.Status)
		assert.True(t, last.Board.Finished)

		rec := doRequest(t, handler, http.MethodPost, path, map[string]int{"cell": 5})
		require.Equal(t, http.StatusOK, rec.Code)
		ignored := decode[viewmodel.MoveView](t, rec)
		assert.False(t, ignored.Applied)
		assert.Empty(t, ignored.Board.Cells[5])
	})

	t.Run("MakeTurn with missing cell", func(t *testing.T) {
		game := createGame(t, handler)

		rec := doRequest(t, handler, http.MethodPost, "/api/games/"+game.GameID+"/moves", map[string]string{})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("MakeTurn on cell zero", func(t *testing.T) {
		game := createGame(t, handler)

		rec := doRequest(t, handler, http.MethodPost, "/api/games/"+game.GameID+"/moves", map[string]int{"cell": 0})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, decode[viewmodel.MoveView](t, rec).Applied)
	})

	t.Run("ResetGame", func(t *testing.T) {
		// Given: a game with moves
		game := createGame(t, handler)
		doRequest(t, handler, http.MethodPost, "/api/games/"+game.GameID+"/moves", map[string]int{"cell": 4})

		// When: it is reset
		rec := doRequest(t, handler, http.MethodPost, "/api/games/"+game.GameID+"/reset", nil)

		// Then: the board is cleared
		require.Equal(t, http.StatusOK, rec.Code)
		view := decode[viewmodel.ResetView](t, rec)
		assert.True(t, view.Clear)
		assert.Equal(t, [9]string{}, view.Board.Cells)
		assert.Equal(t, "Player X's turn", view.Board.Status)
	})

	t.Run("GetGame and EndGame", func(t *testing.T) {
		// Given: an existing game
		game := createGame(t, handler)
		path := "/api/games/" + game.GameID

		rec := doRequest(t, handler, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, game.GameID, decode[viewmodel.BoardView](t, rec).GameID)

		// When: it is ended
		rec = doRequest(t, handler, http.MethodDelete, path, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		// Then: it can no longer be found
		rec = doRequest(t, handler, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Unknown and invalid ids", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodGet, "/api/games/"+pkg.GenerateNewSessionID(), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = doRequest(t, handler, http.MethodGet, "/api/games/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
