package config

import "errors"

var ErrInvalidBoardSize = errors.New("board-size must be positive")
