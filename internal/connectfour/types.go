package connectfour

import "fmt"

// Cell is the content of one board position.
type Cell uint8

const (
	Empty Cell = iota
	CellX
	CellO
)

func (that Cell) String() string {
	switch that {
	case CellX:
		return "X"
	case CellO:
		return "O"
	default:
		return ""
	}
}

// Player is one of the two sides. The zero value is not a player.
type Player uint8

const (
	X Player = iota + 1
	O
)

// ParsePlayer maps a mark ("X" or "O") to a Player.
func ParsePlayer(mark string) (Player, error) {
	switch mark {
	case "X":
		return X, nil
	case "O":
		return O, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownMark, mark)
}

func (that Player) String() string {
	return that.Cell().String()
}

// Cell returns the cell value occupied by the player's pieces.
func (that Player) Cell() Cell {
	switch that {
	case X:
		return CellX
	case O:
		return CellO
	}

	panic(fmt.Sprintf("connectfour: invalid player %d", that))
}

// Opposite returns the other player.
func Opposite(player Player) Player {
	switch player {
	case X:
		return O
	case O:
		return X
	}

	panic(fmt.Sprintf("connectfour: invalid player %d", player))
}

// Outcome is the result of Board.Winner. The values match the
// numeric codes used by existing clients.
type Outcome uint8

const (
	Undecided Outcome = iota
	XWins
	OWins
	Draw
)

func (that Outcome) String() string {
	switch that {
	case XWins:
		return "x_wins"
	case OWins:
		return "o_wins"
	case Draw:
		return "draw"
	default:
		return "undecided"
	}
}

// IsFinal reports whether no further moves should be played.
func (that Outcome) IsFinal() bool {
	return that != Undecided
}
