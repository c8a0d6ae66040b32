package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/connectfour"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

var (
	errColumnRequired = errors.New("column is required")
	errInvalidQuota   = errors.New("n must be an integer")
)

type gameUseCase interface {
	State(ctx context.Context) *entity.Game
	MakeTurn(ctx context.Context, playerMark string, column int) (*entity.Game, error)
	Reset(ctx context.Context) (*entity.Game, error)
	CountLines(ctx context.Context, n int, playerMark string) (int, error)
	ValidColumns(ctx context.Context) []int
}

type turnRequest struct {
	Mark   string `json:"mark"`
	Column *int   `json:"column"`
}

type linesResponse struct {
	N     int    `json:"n"`
	Mark  string `json:"mark"`
	Count int    `json:"count"`
}

type movesResponse struct {
	Columns []int `json:"columns"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Handlers struct {
	logger *slog.Logger
	game   gameUseCase
}

func New(logger *slog.Logger, game gameUseCase) *Handlers {
	return &Handlers{
		logger: logger.With("component", "rest"),
		game:   game,
	}
}

// Register mounts the REST routes on e.
func (that *Handlers) Register(e *echo.Echo) {
	e.GET("/ping", pingHandler)

	group := e.Group("/game")
	group.GET("", that.getGame)
	group.POST("/turn", that.makeTurn)
	group.POST("/reset", that.reset)
	group.GET("/moves", that.validMoves)
	group.GET("/lines", that.countLines)
}

func (that *Handlers) getGame(c echo.Context) error {
	return c.JSON(http.StatusOK, that.game.State(c.Request().Context()))
}

func (that *Handlers) makeTurn(c echo.Context) error {
	var req turnRequest
	if err := c.Bind(&req); err != nil {
		return that.fail(c, "makeTurn", err)
	}

	if req.Column == nil {
		return that.fail(c, "makeTurn", errColumnRequired)
	}

	game, err := that.game.MakeTurn(c.Request().Context(), req.Mark, *req.Column)
	if err != nil {
		return that.fail(c, "makeTurn", err)
	}

	return c.JSON(http.StatusOK, game)
}

func (that *Handlers) reset(c echo.Context) error {
	game, err := that.game.Reset(c.Request().Context())
	if err != nil {
		return that.fail(c, "reset", err)
	}

	return c.JSON(http.StatusOK, game)
}

func (that *Handlers) validMoves(c echo.Context) error {
	return c.JSON(http.StatusOK, movesResponse{Columns: that.game.ValidColumns(c.Request().Context())})
}

func (that *Handlers) countLines(c echo.Context) error {
	n, err := strconv.Atoi(c.QueryParam("n"))
	if err != nil {
		return that.fail(c, "countLines", errInvalidQuota)
	}

	mark := c.QueryParam("mark")

	count, err := that.game.CountLines(c.Request().Context(), n, mark)
	if err != nil {
		return that.fail(c, "countLines", err)
	}

	return c.JSON(http.StatusOK, linesResponse{N: n, Mark: mark, Count: count})
}

func (that *Handlers) fail(c echo.Context, method string, err error) error {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		return c.JSON(status, errorResponse{Error: http.StatusText(status)})
	}

	return c.JSON(status, errorResponse{Error: err.Error()})
}

// StatusFor maps rule violations to client errors.
func StatusFor(err error) int {
	var httpErr *echo.HTTPError

	switch {
	case errors.Is(err, connectfour.ErrInvalidColumn),
		errors.Is(err, connectfour.ErrUnknownMark),
		errors.Is(err, errColumnRequired),
		errors.Is(err, errInvalidQuota):
		return http.StatusBadRequest
	case errors.Is(err, connectfour.ErrColumnFull),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrGameFinished):
		return http.StatusConflict
	case errors.As(err, &httpErr):
		return httpErr.Code
	default:
		return http.StatusInternalServerError
	}
}
