package event

import (
	"context"
	"errors"
	"time"

	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

const (
	TypeTurn  = "game:turn"
	TypeOver  = "game:over"
	TypeReset = "game:reset"
)

// Event announces a change of the table.
type Event struct {
	Type   string    `json:"type"`
	GameID string    `json:"game_id"`
	Size   int       `json:"board_size"`
	Column *int      `json:"column,omitempty"`
	Mark   string    `json:"mark,omitempty"`
	Winner string    `json:"winner,omitempty"`
	Status string    `json:"status"`
	At     time.Time `json:"at"`
}

// New builds an event of eventType from the current game state.
func New(eventType string, game *entity.Game) *Event {
	return &Event{
		Type:   eventType,
		GameID: game.ID,
		Size:   game.Size,
		Winner: game.Winner,
		Status: game.Status,
		At:     time.Now().UTC(),
	}
}

// WithMove records the column and mark of the move that caused the event.
func (that *Event) WithMove(mark string, column int) *Event {
	that.Mark = mark
	that.Column = &column
	return that
}

type Publisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// Multi publishes every event to all of its publishers.
type Multi []Publisher

func (that Multi) Publish(ctx context.Context, event *Event) error {
	var errs []error
	for _, publisher := range that {
		if err := publisher.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (that Multi) Close() error {
	var errs []error
	for _, publisher := range that {
		if err := publisher.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
