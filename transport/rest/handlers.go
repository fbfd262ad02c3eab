package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-web/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-web/internal/viewmodel"
)

const (
	sessionCookie = "user_session"
	sessionMaxAge = 24 * 60 * 60
)

type errorResponse struct {
	Error string `json:"error"`
}

type turnRequest struct {
	Cell *int `json:"cell" binding:"required"`
}

type gameHandler struct {
	logger      *slog.Logger
	gameUseCase usecase.GameUseCase
}

func newGameHandler(logger *slog.Logger, gameUseCase usecase.GameUseCase) *gameHandler {
	return &gameHandler{
		logger:      logger,
		gameUseCase: gameUseCase,
	}
}

// CreateGame starts a session and remembers it in the user_session cookie.
func (that *gameHandler) CreateGame(ctx *gin.Context) {
	game, err := that.gameUseCase.StartGame(ctx.Request.Context())
	if err != nil {
		that.internalError(ctx, "CreateGame", err)
		return
	}

	setSessionCookie(ctx, game.ID)
	ctx.JSON(http.StatusCreated, viewmodel.NewBoardView(game))
}

func (that *gameHandler) GetGame(ctx *gin.Context) {
	gameID, ok := gameIDParam(ctx)
	if !ok {
		return
	}

	game, err := that.gameUseCase.GetGame(ctx.Request.Context(), gameID)
	if err != nil {
		that.handleError(ctx, "GetGame", err)
		return
	}

	ctx.JSON(http.StatusOK, viewmodel.NewBoardView(game))
}

// MakeTurn answers 200 for ignored moves too; applied tells them apart.
func (that *gameHandler) MakeTurn(ctx *gin.Context) {
	gameID, ok := gameIDParam(ctx)
	if !ok {
		return
	}

	var req turnRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse{Error: apperror.ErrInvalidPayload.Error()})
		return
	}

	turn, err := that.gameUseCase.MakeTurn(ctx.Request.Context(), gameID, *req.Cell)
	if err != nil {
		that.handleError(ctx, "MakeTurn", err)
		return
	}

	ctx.JSON(http.StatusOK, viewmodel.NewMoveView(*req.Cell, turn))
}

func (that *gameHandler) ResetGame(ctx *gin.Context) {
	gameID, ok := gameIDParam(ctx)
	if !ok {
		return
	}

	game, err := that.gameUseCase.ResetGame(ctx.Request.Context(), gameID)
	if err != nil {
		that.handleError(ctx, "ResetGame", err)
		return
	}

	ctx.JSON(http.StatusOK, viewmodel.NewResetView(game))
}

func (that *gameHandler) EndGame(ctx *gin.Context) {
	gameID, ok := gameIDParam(ctx)
	if !ok {
		return
	}

	if err := that.gameUseCase.EndGame(ctx.Request.Context(), gameID); err != nil {
		that.handleError(ctx, "EndGame", err)
		return
	}

	ctx.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	ctx.Status(http.StatusNoContent)
}

func (that *gameHandler) handleError(ctx *gin.Context, method string, err error) {
	if errors.Is(err, apperror.ErrGameNotFound) {
		ctx.JSON(http.StatusNotFound, errorResponse{Error: apperror.ErrGameNotFound.Error()})
		return
	}

	that.internalError(ctx, method, err)
}

func (that *gameHandler) internalError(ctx *gin.Context, method string, err error) {
	that.logger.Error("request failed", "method", method, "error", err)
	ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
}

func gameIDParam(ctx *gin.Context) (string, bool) {
	gameID := ctx.Param("id")
	if !pkg.IsValidSessionID(gameID) {
		ctx.JSON(http.StatusBadRequest, errorResponse{Error: "invalid game id"})
		return "", false
	}

	return gameID, true
}

func setSessionCookie(ctx *gin.Context, gameID string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(sessionCookie, gameID, sessionMaxAge, "/", "", false, true)
}
