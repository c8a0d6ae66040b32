package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/connectfour"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/rocketscienceinc/connectfour-backend/internal/event"
)

var errRedisDown = errors.New("redis down")

type mockPublisher struct {
	mock.Mock
}

func (that *mockPublisher) Publish(ctx context.Context, evt *event.Event) error {
	args := that.Called(ctx, evt)
	return args.Error(0)
}

func ofType(eventType string) any {
	return mock.MatchedBy(func(evt *event.Event) bool {
		return evt.Type == eventType
	})
}

func newTestManager(t *testing.T, size int) (*GameManager, *mockPublisher) {
	t.Helper()

	publisher := &mockPublisher{}
	t.Cleanup(func() {
		publisher.AssertExpectations(t)
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager, err := NewGameManager(logger, size, publisher)
	require.NoError(t, err)

	return manager, publisher
}

func TestNewGameManager(t *testing.T) {
	t.Run("Starts with an empty table", func(t *testing.T) {
		manager, _ := newTestManager(t, 4)

		game := manager.State(context.Background())

		assert.NotEmpty(t, game.ID)
		assert.Equal(t, 4, game.Size)
		assert.Equal(t, entity.PlayerX, game.Turn)
		assert.Equal(t, entity.StatusOngoing, game.Status)
	})

	t.Run("Rejects invalid board size", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))

		manager, err := NewGameManager(logger, 0, &mockPublisher{})

		require.ErrorIs(t, err, connectfour.ErrInvalidSize)
		assert.Nil(t, manager)
	})
}

func TestGameManager_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Applies the turn and publishes it", func(t *testing.T) {
		// Given: a manager expecting one turn event
		manager, publisher := newTestManager(t, 4)
		publisher.On("Publish", mock.Anything, ofType(event.TypeTurn)).Return(nil).Once()

		// When: X plays column 3
		game, err := manager.MakeTurn(ctx, entity.PlayerX, 3)

		// Then: the returned snapshot shows the move
		require.NoError(t, err)
		assert.Equal(t, []int{3}, game.Moves)
		assert.Equal(t, entity.PlayerO, game.Turn)
		assert.Equal(t, entity.PlayerX, game.Board[3][0])
	})

	t.Run("Empty mark plays for the player to move", func(t *testing.T) {
		// Given: a manager where X has moved
		manager, publisher := newTestManager(t, 4)
		publisher.On("Publish", mock.Anything, ofType(event.TypeTurn)).Return(nil).Twice()
		_, err := manager.MakeTurn(ctx, "", 0)
		require.NoError(t, err)

		// When: another move is made without a mark
		game, err := manager.MakeTurn(ctx, "", 0)

		// Then: it was played by O
		require.NoError(t, err)
		assert.Equal(t, []string{entity.PlayerX, entity.PlayerO, "", ""}, game.Board[0])
	})

	t.Run("Rejected turn is not published", func(t *testing.T) {
		// Given: a fresh manager with no expected events
		manager, _ := newTestManager(t, 4)

		// When: O tries to move first
		game, err := manager.MakeTurn(ctx, entity.PlayerO, 1)

		// Then: ErrNotYourTurn is returned with the unchanged state
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Empty(t, game.Moves)

		// When: X plays outside the board
		_, err = manager.MakeTurn(ctx, entity.PlayerX, 9)

		// Then: the engine error is preserved
		require.ErrorIs(t, err, connectfour.ErrInvalidColumn)
	})

	t.Run("Winning turn publishes game over", func(t *testing.T) {
		// Given: a manager one move away from X winning
		manager, publisher := newTestManager(t, 4)
		publisher.On("Publish", mock.Anything, ofType(event.TypeTurn)).Return(nil).Times(7)
		publisher.On("Publish", mock.Anything, ofType(event.TypeOver)).Return(nil).Once()
		for _, column := range []int{0, 1, 0, 1, 0, 1} {
			_, err := manager.MakeTurn(ctx, "", column)
			require.NoError(t, err)
		}

		// When: X completes column 0
		game, err := manager.MakeTurn(ctx, entity.PlayerX, 0)

		// Then: the game is over
		require.NoError(t, err)
		assert.Equal(t, entity.StatusFinished, game.Status)
		assert.Equal(t, entity.PlayerX, game.Winner)

		// When: O keeps playing
		_, err = manager.MakeTurn(ctx, entity.PlayerO, 2)

		// Then: ErrGameFinished is returned
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Publish failure does not fail the turn", func(t *testing.T) {
		manager, publisher := newTestManager(t, 4)
		publisher.On("Publish", mock.Anything, ofType(event.TypeTurn)).Return(errRedisDown).Once()

		game, err := manager.MakeTurn(ctx, entity.PlayerX, 2)

		require.NoError(t, err)
		assert.Equal(t, []int{2}, game.Moves)
	})

	t.Run("Snapshots are independent of the table", func(t *testing.T) {
		// Given: a snapshot taken before any move
		manager, publisher := newTestManager(t, 4)
		publisher.On("Publish", mock.Anything, ofType(event.TypeTurn)).Return(nil).Once()
		before := manager.State(ctx)

		// When: a move is made
		_, err := manager.MakeTurn(ctx, entity.PlayerX, 1)
		require.NoError(t, err)

		// Then: the earlier snapshot still shows an empty board
		assert.Empty(t, before.Moves)
		assert.Equal(t, "", before.Board[1][0])
		assert.Equal(t, entity.PlayerX, manager.State(ctx).Board[1][0])
	})
}

func TestGameManager_Reset(t *testing.T) {
	ctx := context.Background()

	// Given: a manager with one move played
	manager, publisher := newTestManager(t, 5)
	publisher.On("Publish", mock.Anything, ofType(event.TypeTurn)).Return(nil).Once()
	publisher.On("Publish", mock.Anything, ofType(event.TypeReset)).Return(nil).Once()
	first, err := manager.MakeTurn(ctx, entity.PlayerX, 4)
	require.NoError(t, err)

	// When: the table is reset
	game, err := manager.Reset(ctx)

	// Then: a new empty table of the same size replaces it
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, game.ID)
	assert.Equal(t, 5, game.Size)
	assert.Empty(t, game.Moves)
	assert.Equal(t, game.ID, manager.State(ctx).ID)
}

func TestGameManager_Queries(t *testing.T) {
	ctx := context.Background()

	// Given: a 4x4 table with column 2 full
	manager, publisher := newTestManager(t, 4)
	publisher.On("Publish", mock.Anything, ofType(event.TypeTurn)).Return(nil).Times(4)
	for i := 0; i < 4; i++ {
		_, err := manager.MakeTurn(ctx, "", 2)
		require.NoError(t, err)
	}

	// Then: column 2 is no longer playable
	assert.Equal(t, []int{0, 1, 3}, manager.ValidColumns(ctx))

	// Then: line counts are available per mark
	count, err := manager.CountLines(ctx, 1, entity.PlayerX)
	require.NoError(t, err)
	assert.Positive(t, count)

	_, err = manager.CountLines(ctx, 1, "?")
	require.ErrorIs(t, err, connectfour.ErrUnknownMark)
}

func TestGameManager_ConcurrentTurns(t *testing.T) {
	ctx := context.Background()

	// Given: a manager accepting any number of events
	manager, publisher := newTestManager(t, 6)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()

	// When: many goroutines play at once
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func(column int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				if _, err := manager.MakeTurn(ctx, "", column%6); err == nil {
					mu.Lock()
					accepted++
					mu.Unlock()
				}
			}
		}(worker)
	}
	wg.Wait()

	// Then: every accepted move is on the board exactly once
	game := manager.State(ctx)
	assert.Len(t, game.Moves, accepted)

	pieces := 0
	for _, column := range game.Board {
		for _, cell := range column {
			if cell != entity.EmptyCell {
				pieces++
			}
		}
	}
	assert.Equal(t, accepted, pieces)
}
