package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-web/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	logger *slog.Logger
	router *gin.Engine
}

// New builds the router: the page, the JSON game API and the WebSocket
// endpoint served by socket.
func New(logger *slog.Logger, gameUseCase usecase.GameUseCase, socket http.Handler) *Server {
	log := logger.With("component", "rest")

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	handler := newGameHandler(log, gameUseCase)

	router.GET("/", indexHandler)
	router.GET("/ping", pingHandler)
	router.GET("/ws", gin.WrapH(socket))

	api := router.Group("/api/games")
	api.POST("", handler.CreateGame)
	api.GET("/:id", handler.GetGame)
	api.DELETE("/:id", handler.EndGame)
	api.POST("/:id/moves", handler.MakeTurn)
	api.POST("/:id/reset", handler.ResetGame)

	return &Server{
		logger: log,
		router: router,
	}
}

func (that *Server) Handler() http.Handler {
	return that.router
}

// Start serves on port until ctx is canceled, then shuts down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	that.logger.Info("HTTP server stopped")

	return nil
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		logger.Debug("request",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"status", ctx.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
