package entity

import (
	"fmt"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/connectfour"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""
)

// Game is the table: one board plus what clients need to render it.
type Game struct {
	ID     string     `json:"id"`
	Size   int        `json:"size"`
	Board  [][]string `json:"board"`
	Turn   string     `json:"player_turn"`
	Winner string     `json:"winner"`
	Status string     `json:"status"`
	Moves  []int      `json:"moves"`

	board *connectfour.Board
}

func NewGame(id string, size int) (*Game, error) {
	board, err := connectfour.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	game := &Game{
		ID:    id,
		Size:  size,
		Moves: []int{},
		board: board,
	}
	game.UpdateGameState()

	return game, nil
}

// MakeTurn drops playerMark's piece into column.
func (that *Game) MakeTurn(playerMark string, column int) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	player, err := connectfour.ParsePlayer(playerMark)
	if err != nil {
		return err
	}

	if that.board.Turn() != player {
		return apperror.ErrNotYourTurn
	}

	if err = that.board.ApplyMove(column); err != nil {
		return fmt.Errorf("failed to apply move: %w", err)
	}

	that.Moves = append(that.Moves, column)
	that.UpdateGameState()

	return nil
}

// UpdateGameState refreshes the exported view from the board.
func (that *Game) UpdateGameState() {
	grid := that.board.Grid()
	that.Board = make([][]string, len(grid))
	for column, cells := range grid {
		that.Board[column] = make([]string, len(cells))
		for row, cell := range cells {
			that.Board[column][row] = cell.String()
		}
	}

	switch that.board.Winner() {
	case connectfour.XWins:
		that.Winner = PlayerX
		that.Status = StatusFinished
		that.Turn = ""
	case connectfour.OWins:
		that.Winner = PlayerO
		that.Status = StatusFinished
		that.Turn = ""
	case connectfour.Draw:
		that.Winner = PlayerTie
		that.Status = StatusFinished
		that.Turn = ""
	default:
		that.Winner = ""
		that.Status = StatusOngoing
		that.Turn = that.board.Turn().String()
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

// LinesOfLength counts the open four-cell windows holding at least n of mark's pieces.
func (that *Game) LinesOfLength(n int, playerMark string) (int, error) {
	player, err := connectfour.ParsePlayer(playerMark)
	if err != nil {
		return 0, err
	}

	return that.board.CountLinesOfLength(n, player), nil
}

func (that *Game) ValidColumns() []int {
	return that.board.ValidMoves()
}

// Clone returns a copy that shares no state with the game.
func (that *Game) Clone() *Game {
	clone := &Game{
		ID:    that.ID,
		Size:  that.Size,
		Moves: append([]int{}, that.Moves...),
		board: that.board.Copy(),
	}
	clone.UpdateGameState()

	return clone
}
