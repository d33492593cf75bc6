package domain

import "fmt"

// Size is the edge length of the square board.
const Size = 8

// Player identifies one of the two sides.
type Player uint8

const (
	NoPlayer Player = iota
	P1
	P2
)

// Opponent returns the other side.
func (p Player) Opponent() Player {
	switch p {
	case P1:
		return P2
	case P2:
		return P1
	}
	return NoPlayer
}

func (p Player) String() string {
	switch p {
	case P1:
		return "P1"
	case P2:
		return "P2"
	}
	return "none"
}

// Square is a board coordinate, row-major from the P1 home edge.
type Square struct {
	Row int
	Col int
}

// Sq is shorthand for Square{Row: r, Col: c}.
func Sq(r, c int) Square { return Square{Row: r, Col: c} }

// Valid reports whether the square lies on the board.
func (s Square) Valid() bool {
	return s.Row >= 0 && s.Row < Size && s.Col >= 0 && s.Col < Size
}

func (s Square) String() string { return fmt.Sprintf("(%d,%d)", s.Row, s.Col) }

// Terrain tags a square for its whole lifetime.
type Terrain uint8

const (
	Plain Terrain = iota
	Water         // blocks movement
	Red           // nullifies evasion, blocks tower damage from the attacker's square
	Gray          // a unit killed here takes its attacker with it
)

func (t Terrain) String() string {
	switch t {
	case Water:
		return "water"
	case Red:
		return "red"
	case Gray:
		return "gray"
	}
	return "plain"
}

// TerrainMap is a full board of terrain tags stored row-major.
type TerrainMap [Size][Size]Terrain

// Unit is a piece on the board. The zero Unit means "empty".
type Unit struct {
	Kind  UnitKind
	Owner Player
}

func (u Unit) String() string {
	if u.Kind == NoKind {
		return "empty"
	}
	return u.Owner.String() + " " + u.Kind.String()
}

// Board holds occupants and terrain. It knows nothing about the rules.
type Board struct {
	cells   [Size][Size]Unit
	terrain TerrainMap
}

// NewBoard returns an empty board over the given terrain.
func NewBoard(t TerrainMap) *Board {
	return &Board{terrain: t}
}

// OccupantAt returns the unit at sq, if any. Off-board squares are empty.
func (b *Board) OccupantAt(sq Square) (Unit, bool) {
	if !sq.Valid() {
		return Unit{}, false
	}
	u := b.cells[sq.Row][sq.Col]
	return u, u.Kind != NoKind
}

// TerrainAt returns the terrain at sq. Off-board squares read as Plain.
func (b *Board) TerrainAt(sq Square) Terrain {
	if !sq.Valid() {
		return Plain
	}
	return b.terrain[sq.Row][sq.Col]
}

// Place puts u on an empty square.
func (b *Board) Place(sq Square, u Unit) error {
	if !sq.Valid() {
		return ErrOutOfBounds
	}
	if _, ok := b.OccupantAt(sq); ok {
		return ErrOccupied
	}
	b.cells[sq.Row][sq.Col] = u
	return nil
}

// Remove clears sq and returns what was there.
func (b *Board) Remove(sq Square) (Unit, bool) {
	u, ok := b.OccupantAt(sq)
	if ok {
		b.cells[sq.Row][sq.Col] = Unit{}
	}
	return u, ok
}

// MoveUnit relocates the unit at from to the empty square to.
// Moving from an empty square does nothing.
func (b *Board) MoveUnit(from, to Square) error {
	if !from.Valid() || !to.Valid() {
		return ErrOutOfBounds
	}
	u, ok := b.OccupantAt(from)
	if !ok {
		return nil
	}
	if _, taken := b.OccupantAt(to); taken {
		return ErrOccupied
	}
	b.cells[to.Row][to.Col] = u
	b.cells[from.Row][from.Col] = Unit{}
	return nil
}

// Cells returns a copy of the occupant grid.
func (b *Board) Cells() [Size][Size]Unit { return b.cells }

// Terrain returns a copy of the terrain grid.
func (b *Board) Terrain() TerrainMap { return b.terrain }

// Each calls fn for every occupied square in row-major order.
func (b *Board) Each(fn func(Square, Unit)) {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if u := b.cells[r][c]; u.Kind != NoKind {
				fn(Sq(r, c), u)
			}
		}
	}
}

// ParsePlayer accepts "P1"/"P2" or "1"/"2", case-insensitively.
func ParsePlayer(s string) (Player, bool) {
	switch s {
	case "P1", "p1", "1":
		return P1, true
	case "P2", "p2", "2":
		return P2, true
	}
	return NoPlayer, false
}
