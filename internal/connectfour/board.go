package connectfour

import "fmt"

// Board is an N×N Connect Four grid addressed by (column, row), row 0 being
// the bottom. A Board is not safe for concurrent use; take a Copy per goroutine.
type Board struct {
	size    int
	cells   []Cell // column-major: cells[column*size+row]
	heights []int
	xTurn   bool
}

// New returns an empty size×size board with X to move.
func New(size int) (*Board, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	return &Board{
		size:    size,
		cells:   make([]Cell, size*size),
		heights: make([]int, size),
		xTurn:   true,
	}, nil
}

// FromGrid builds a board from grid[column][row] with X to move.
func FromGrid(grid [][]Cell) (*Board, error) {
	return Restore(grid, X)
}

// Restore builds a board from grid[column][row] and the player to move.
// Column heights are derived from the grid, which must obey gravity.
func Restore(grid [][]Cell, turn Player) (*Board, error) {
	if turn != X && turn != O {
		return nil, fmt.Errorf("%w: player %d", ErrUnknownMark, turn)
	}

	size := len(grid)

	board, err := New(size)
	if err != nil {
		return nil, err
	}

	for column, cells := range grid {
		if len(cells) != size {
			return nil, fmt.Errorf("%w: column %d has %d rows, want %d", ErrInvalidSize, column, len(cells), size)
		}

		for row, cell := range cells {
			if cell == Empty {
				continue
			}

			if cell != CellX && cell != CellO {
				return nil, fmt.Errorf("%w: cell value %d", ErrUnknownMark, cell)
			}

			if row != board.heights[column] {
				return nil, fmt.Errorf("%w: column %d row %d", ErrFloatingPiece, column, row)
			}

			board.cells[board.index(column, row)] = cell
			board.heights[column]++
		}
	}

	board.xTurn = turn == X

	return board, nil
}

// Copy returns a deep copy that shares no storage with the board.
func (that *Board) Copy() *Board {
	cells := make([]Cell, len(that.cells))
	copy(cells, that.cells)

	heights := make([]int, len(that.heights))
	copy(heights, that.heights)

	return &Board{
		size:    that.size,
		cells:   cells,
		heights: heights,
		xTurn:   that.xTurn,
	}
}

func (that *Board) Size() int {
	return that.size
}

// Turn returns the player who moves next.
func (that *Board) Turn() Player {
	if that.xTurn {
		return X
	}
	return O
}

// Cell returns the content at (column, row), Empty when out of range.
func (that *Board) Cell(column, row int) Cell {
	if !that.inside(column, row) {
		return Empty
	}
	return that.cells[that.index(column, row)]
}

// Height returns the number of pieces in column.
func (that *Board) Height(column int) int {
	if column < 0 || column >= that.size {
		return 0
	}
	return that.heights[column]
}

// Grid returns a copy of the cells as grid[column][row].
func (that *Board) Grid() [][]Cell {
	grid := make([][]Cell, that.size)
	for column := range grid {
		grid[column] = make([]Cell, that.size)
		copy(grid[column], that.cells[column*that.size:(column+1)*that.size])
	}
	return grid
}

// IsValidMove reports whether a piece can be dropped into column.
func (that *Board) IsValidMove(column int) bool {
	return column >= 0 && column < that.size && that.heights[column] < that.size
}

// ValidMoves lists the playable columns in ascending order.
func (that *Board) ValidMoves() []int {
	moves := make([]int, 0, that.size)
	for column := 0; column < that.size; column++ {
		if that.IsValidMove(column) {
			moves = append(moves, column)
		}
	}
	return moves
}

// ApplyMove drops the current player's piece into column and passes the turn.
// On error the board is left untouched.
func (that *Board) ApplyMove(column int) error {
	if column < 0 || column >= that.size {
		return fmt.Errorf("%w: column %d", ErrInvalidColumn, column)
	}

	if !that.IsValidMove(column) {
		return fmt.Errorf("%w: column %d", ErrColumnFull, column)
	}

	that.cells[that.index(column, that.heights[column])] = that.Turn().Cell()
	that.heights[column]++
	that.xTurn = !that.xTurn

	return nil
}

// Winner evaluates the board. X is checked before O.
func (that *Board) Winner() Outcome {
	if that.CountLinesOfLength(4, X) > 0 {
		return XWins
	}

	if that.CountLinesOfLength(4, O) > 0 {
		return OWins
	}

	for _, cell := range that.cells {
		if cell == Empty {
			return Undecided
		}
	}

	return Draw
}

func (that *Board) index(column, row int) int {
	return column*that.size + row
}

func (that *Board) inside(column, row int) bool {
	return column >= 0 && column < that.size && row >= 0 && row < that.size
}
