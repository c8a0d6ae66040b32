package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

var (
	ErrUnknownAction  = errors.New("unknown action")
	errColumnRequired = errors.New("column is required")
)

type uGame interface {
	State(ctx context.Context) *entity.Game
	MakeTurn(ctx context.Context, playerMark string, column int) (*entity.Game, error)
	Reset(ctx context.Context) (*entity.Game, error)
	CountLines(ctx context.Context, n int, playerMark string) (int, error)
}

type Server struct {
	logger   *slog.Logger
	uGame    uGame
	upgrader websocket.Upgrader

	handlers map[string]func(ctx context.Context, msg *Message) (any, error)
}

func New(logger *slog.Logger, uGame uGame) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		uGame:  uGame,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		handlers: make(map[string]func(context.Context, *Message) (any, error)),
	}

	server.handlers[actionState] = server.handleState
	server.handlers[actionTurn] = server.handleTurn
	server.handlers[actionReset] = server.handleReset
	server.handlers[actionLines] = server.handleLines

	return server
}

// Register mounts the WebSocket endpoint on e.
func (that *Server) Register(e *echo.Echo) {
	e.GET("/ws", that.serve)
}

func (that *Server) serve(c echo.Context) error {
	log := that.logger.With("method", "serve")

	conn, err := that.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return nil
	}
	defer conn.Close()

	log.Info("WebSocket connection established", "remote", c.RealIP())

	ctx := c.Request().Context()
	for {
		var msg Message
		if err = conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Error("error reading message", "error", err)
			}
			return nil
		}

		if err = conn.WriteJSON(that.processMessage(ctx, &msg)); err != nil {
			log.Error("error writing response", "error", err)
			return nil
		}
	}
}

// processMessage - dispatches one message and builds the reply.
func (that *Server) processMessage(ctx context.Context, msg *Message) Response {
	resp := Response{Action: msg.Action}

	handler, ok := that.handlers[msg.Action]
	if !ok {
		resp.Error = fmt.Errorf("%w: %q", ErrUnknownAction, msg.Action).Error()
		return resp
	}

	payload, err := handler(ctx, msg)
	if err != nil {
		that.logger.Debug("action failed", "action", msg.Action, "error", err)
		resp.Error = err.Error()
	}
	resp.Payload = payload

	return resp
}

func (that *Server) handleState(ctx context.Context, _ *Message) (any, error) {
	return that.uGame.State(ctx), nil
}

func (that *Server) handleTurn(ctx context.Context, msg *Message) (any, error) {
	var req turnPayload
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if req.Column == nil {
		return nil, errColumnRequired
	}

	return that.uGame.MakeTurn(ctx, req.Mark, *req.Column)
}

func (that *Server) handleReset(ctx context.Context, _ *Message) (any, error) {
	return that.uGame.Reset(ctx)
}

func (that *Server) handleLines(ctx context.Context, msg *Message) (any, error) {
	var req linesPayload
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	count, err := that.uGame.CountLines(ctx, req.N, req.Mark)
	if err != nil {
		return nil, err
	}

	return linesResult{N: req.N, Mark: req.Mark, Count: count}, nil
}
