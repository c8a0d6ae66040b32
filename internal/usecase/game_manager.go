package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/rocketscienceinc/connectfour-backend/internal/event"
)

type eventPublisher interface {
	Publish(ctx context.Context, evt *event.Event) error
}

// GameManager owns the single table of the process. All access to the
// board goes through its mutex; callers always receive clones.
type GameManager struct {
	logger    *slog.Logger
	publisher eventPublisher
	boardSize int

	mu   sync.Mutex
	game *entity.Game
}

func NewGameManager(logger *slog.Logger, boardSize int, publisher eventPublisher) (*GameManager, error) {
	game, err := entity.NewGame(uuid.NewString(), boardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return &GameManager{
		logger:    logger.With("component", "game_manager"),
		publisher: publisher,
		boardSize: boardSize,
		game:      game,
	}, nil
}

// State returns a snapshot of the table.
func (that *GameManager) State(_ context.Context) *entity.Game {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.game.Clone()
}

// MakeTurn plays column for playerMark. An empty mark plays for whoever is to move.
func (that *GameManager) MakeTurn(ctx context.Context, playerMark string, column int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn")

	that.mu.Lock()
	defer that.mu.Unlock()

	if playerMark == "" {
		playerMark = that.game.Turn
	}

	if err := that.game.MakeTurn(playerMark, column); err != nil {
		log.Debug("turn rejected", "mark", playerMark, "column", column, "error", err)
		return that.game.Clone(), fmt.Errorf("failed make turn: %w", err)
	}

	log.Info("turn applied", "game", that.game.ID, "mark", playerMark, "column", column)

	that.publish(ctx, event.New(event.TypeTurn, that.game).WithMove(playerMark, column))

	if that.game.IsFinished() {
		log.Info("game finished", "game", that.game.ID, "winner", that.game.Winner)
		that.publish(ctx, event.New(event.TypeOver, that.game).WithMove(playerMark, column))
	}

	return that.game.Clone(), nil
}

// Reset replaces the table with a fresh one.
func (that *GameManager) Reset(ctx context.Context) (*entity.Game, error) {
	game, err := entity.NewGame(uuid.NewString(), that.boardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.logger.Info("game reset", "previous", that.game.ID, "game", game.ID)
	that.game = game
	that.publish(ctx, event.New(event.TypeReset, game))

	return game.Clone(), nil
}

// CountLines counts the open four-cell windows holding at least n of playerMark's pieces.
func (that *GameManager) CountLines(_ context.Context, n int, playerMark string) (int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	count, err := that.game.LinesOfLength(n, playerMark)
	if err != nil {
		return 0, fmt.Errorf("failed count lines: %w", err)
	}

	return count, nil
}

func (that *GameManager) ValidColumns(_ context.Context) []int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.game.ValidColumns()
}

// publish never fails the caller: the table is the source of truth.
func (that *GameManager) publish(ctx context.Context, evt *event.Event) {
	if err := that.publisher.Publish(ctx, evt); err != nil {
		that.logger.Error("failed to publish event", "type", evt.Type, "error", err)
	}
}

