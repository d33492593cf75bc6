package domain

import "fmt"

// CanMove reports whether the unit on from may relocate to to.
func CanMove(b *Board, from, to Square) bool { return MoveError(b, from, to) == nil }

// MoveError returns nil for a legal relocation, otherwise an error wrapping
// ErrIllegalMove that names the first rule broken. Rules are checked in
// order: destination empty, destination not water, shape within reach.
func MoveError(b *Board, from, to Square) error {
	if !from.Valid() || !to.Valid() {
		return fmt.Errorf("%w: %w", ErrIllegalMove, ErrOutOfBounds)
	}
	u, ok := b.OccupantAt(from)
	if !ok {
		return fmt.Errorf("%w: no unit on %s", ErrIllegalMove, from)
	}
	if _, taken := b.OccupantAt(to); taken {
		return fmt.Errorf("%w: %s is occupied", ErrIllegalMove, to)
	}
	if b.TerrainAt(to) == Water {
		return fmt.Errorf("%w: cannot move onto water", ErrIllegalMove)
	}
	if !ProfileOf(u.Kind).Move.Allows(from, to) {
		return fmt.Errorf("%w: %s cannot reach %s from %s", ErrIllegalMove, u.Kind, to, from)
	}
	return nil
}
