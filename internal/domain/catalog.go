package domain

import "strings"

// UnitKind enumerates the piece types.
type UnitKind uint8

const (
	NoKind UnitKind = iota
	Pawn
	Horse
	Archer
	Tower
	GeneralWarrior
	GeneralHunter
	GeneralRanged
)

var kindNames = map[UnitKind]string{
	Pawn:           "pawn",
	Horse:          "horse",
	Archer:         "archer",
	Tower:          "tower",
	GeneralWarrior: "general_warrior",
	GeneralHunter:  "general_hunter",
	GeneralRanged:  "general_ranged",
}

var kindSymbols = map[UnitKind]string{
	Pawn:           "P",
	Horse:          "H",
	Archer:         "A",
	Tower:          "T",
	GeneralWarrior: "GW",
	GeneralHunter:  "GH",
	GeneralRanged:  "GR",
}

func (k UnitKind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "none"
}

// Symbol is the short board label for the kind.
func (k UnitKind) Symbol() string { return kindSymbols[k] }

// ParseKind accepts either the long name ("general_warrior") or the board
// symbol ("GW"), case-insensitively.
func ParseKind(s string) (UnitKind, bool) {
	s = strings.TrimSpace(s)
	for k, n := range kindNames {
		if strings.EqualFold(s, n) || strings.EqualFold(s, kindSymbols[k]) {
			return k, true
		}
	}
	return NoKind, false
}

// Shape is the geometric pattern of a reach.
type Shape uint8

const (
	ShapeNone       Shape = iota
	ShapeAdjacent         // Chebyshev distance
	ShapeLine             // rank, file or exact diagonal
	ShapeOrthogonal       // rank or file only
)

// Reach pairs a shape with its maximum distance.
type Reach struct {
	Shape Shape
	Range int
}

// Allows reports whether to is reachable from from. A square never reaches itself.
func (r Reach) Allows(from, to Square) bool {
	dr := abs(to.Row - from.Row)
	dc := abs(to.Col - from.Col)
	dist := max(dr, dc)
	if dist == 0 || dist > r.Range {
		return false
	}
	switch r.Shape {
	case ShapeAdjacent:
		return true
	case ShapeLine:
		return dr == 0 || dc == 0 || dr == dc
	case ShapeOrthogonal:
		return dr == 0 || dc == 0
	}
	return false
}

// Profile is the static rule data for one unit kind.
type Profile struct {
	Move   Reach
	Attack Reach
	// Evasion is the chance a defender of this kind makes an attack miss.
	Evasion float64
	// Counter is the chance a counter-attack kills the attacker; zero means
	// the kind never counters.
	Counter     float64
	TowerDamage int
	Ranged      bool
	General     bool
}

// CanCounter reports whether a defender with profile p strikes back at an
// attacker with profile attacker after a miss.
func (p Profile) CanCounter(attacker Profile) bool {
	return p.Counter > 0 && !attacker.Ranged && !attacker.General
}

var (
	adjacent = Reach{Shape: ShapeAdjacent, Range: 1}
	gallop   = Reach{Shape: ShapeLine, Range: 3}
)

var catalog = map[UnitKind]Profile{
	Pawn:   {Move: adjacent, Attack: adjacent, Evasion: 0.7, TowerDamage: 2},
	Horse:  {Move: gallop, Attack: adjacent, Evasion: 0.5, TowerDamage: 2},
	Archer: {Move: adjacent, Attack: Reach{Shape: ShapeOrthogonal, Range: 3}, TowerDamage: 1, Ranged: true},
	Tower:  {},
	GeneralWarrior: {
		Move: adjacent, Attack: adjacent, Evasion: 0.8, Counter: 0.8,
		TowerDamage: 2, General: true,
	},
	GeneralHunter: {
		Move: adjacent, Attack: Reach{Shape: ShapeOrthogonal, Range: 4}, Evasion: 0.5,
		TowerDamage: 1, Ranged: true, General: true,
	},
	GeneralRanged: {Move: gallop, Attack: adjacent, Evasion: 0.7, TowerDamage: 2, General: true},
}

// ProfileOf looks up the catalog entry for k. Unknown kinds get the zero
// Profile, which can neither move nor attack.
func ProfileOf(k UnitKind) Profile { return catalog[k] }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
