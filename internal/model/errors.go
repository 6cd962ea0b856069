package model

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds        = errors.New("position out of bounds")
	ErrEmptyOrigin        = errors.New("no piece at origin")
	ErrWrongPlayerTurn    = errors.New("not your turn")
	ErrIllegalDestination = errors.New("illegal destination")
)

// MoveError is returned when a move is rejected. The game is left unchanged.
type MoveError struct {
	Move Move
	Err  error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("invalid move %s: %v", e.Move, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// ErrorKind returns a stable identifier for err, or "" if err is not a move error.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrOutOfBounds):
		return "out_of_bounds"
	case errors.Is(err, ErrEmptyOrigin):
		return "empty_origin"
	case errors.Is(err, ErrWrongPlayerTurn):
		return "wrong_player_turn"
	case errors.Is(err, ErrIllegalDestination):
		return "illegal_destination"
	}
	return ""
}
