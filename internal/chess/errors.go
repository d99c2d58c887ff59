package chess

import (
	"errors"
	"fmt"
)

// ErrInvalidSquare is returned when a square is constructed or parsed outside
// the board, or an algebraic string has the wrong shape. Rejected at the
// boundary; an invalid Square never reaches the board.
var ErrInvalidSquare = errors.New("invalid square")

// ErrInvalidFEN is returned when a FEN string cannot be parsed back into a
// position.
var ErrInvalidFEN = errors.New("invalid FEN")

// ErrGameOver is returned when a move, resignation or draw agreement is
// attempted after the game has already resolved.
var ErrGameOver = errors.New("game is over")

// IllegalMoveError reports an executeMove precondition failure. The game is
// unchanged; the caller may retry with a different move.
type IllegalMoveError struct {
	From   Square
	To     Square
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s%s: %s", e.From, e.To, e.Reason)
}

func illegalMove(from, to Square, reason string) error {
	return &IllegalMoveError{From: from, To: to, Reason: reason}
}
