package domain

import "errors"

// Errors returned by domain operations. Callers match them with errors.Is;
// most are wrapped with detail about the offending squares.
var (
	ErrOutOfBounds      = errors.New("out of bounds")
	ErrOccupied         = errors.New("square occupied")
	ErrInvalidSelection = errors.New("invalid selection")
	ErrIllegalMove      = errors.New("illegal move")
	ErrIllegalAttack    = errors.New("illegal attack")
	ErrGameOver         = errors.New("game over")
	ErrInvalidSetup     = errors.New("invalid setup")
)
