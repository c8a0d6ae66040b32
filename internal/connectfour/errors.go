package connectfour

import "errors"

var (
	ErrInvalidSize   = errors.New("invalid board size")
	ErrFloatingPiece = errors.New("piece above an empty cell")
	ErrInvalidColumn = errors.New("invalid column index")
	ErrColumnFull    = errors.New("column is full")
	ErrUnknownMark   = errors.New("unknown player mark")
)
