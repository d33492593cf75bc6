package domain

import (
	"fmt"
	"time"
)

// Placement puts one unit on one square at game start.
type Placement struct {
	Square Square
	Unit   Unit
}

// TerrainGenerator decorates a fresh board. The rule engine only consumes
// the map; how it is drawn belongs to the caller.
type TerrainGenerator interface {
	Generate() TerrainMap
}

// PlainTerrain generates an all-Plain board.
type PlainTerrain struct{}

func (PlainTerrain) Generate() TerrainMap { return TerrainMap{} }

// HomeRow reports whether row belongs to either side's home band, which is
// always Plain.
func HomeRow(row int) bool { return row <= 2 || row >= Size-3 }

// TerrainCap is the most squares of t the interior rows may hold. Plain is
// unlimited and reported as -1.
func TerrainCap(t Terrain) int {
	switch t {
	case Water:
		return 6
	case Red:
		return 2
	case Gray:
		return 1
	}
	return -1
}

// ValidateTerrain enforces Plain home bands and the interior caps.
func ValidateTerrain(t TerrainMap) error {
	counts := map[Terrain]int{}
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			tag := t[r][c]
			if tag == Plain {
				continue
			}
			if HomeRow(r) {
				return fmt.Errorf("%w: %s terrain on home row %d", ErrInvalidSetup, tag, r)
			}
			counts[tag]++
			if counts[tag] > TerrainCap(tag) {
				return fmt.Errorf("%w: more than %d %s squares", ErrInvalidSetup, TerrainCap(tag), tag)
			}
		}
	}
	return nil
}

func p1(k UnitKind, r, c int) Placement { return Placement{Sq(r, c), Unit{Kind: k, Owner: P1}} }
func p2(k UnitKind, r, c int) Placement { return Placement{Sq(r, c), Unit{Kind: k, Owner: P2}} }

// DefaultLayout is the standard opening position.
func DefaultLayout() []Placement {
	units := []Placement{
		p1(GeneralRanged, 0, 0), p1(Horse, 0, 2), p1(GeneralWarrior, 0, 3),
		p1(Archer, 0, 4), p1(GeneralHunter, 0, 5),
		p1(Archer, 1, 0), p1(Horse, 1, 7),
		p1(Tower, 3, 0),

		p2(Horse, 6, 0), p2(Archer, 6, 7),
		p2(GeneralWarrior, 7, 2), p2(Archer, 7, 3), p2(GeneralHunter, 7, 4),
		p2(Horse, 7, 5), p2(GeneralRanged, 7, 7),
		p2(Tower, 4, 7),
	}
	for c := 1; c < Size-1; c++ {
		units = append(units, p1(Pawn, 1, c), p2(Pawn, 6, c))
	}
	return units
}

// Option customises a new game.
type Option func(*setup)

type setup struct {
	terrain TerrainGenerator
	rng     RandomSource
	units   []Placement
	towerHP int
	first   Player
}

// WithTerrain sets the terrain collaborator. Defaults to PlainTerrain.
func WithTerrain(g TerrainGenerator) Option { return func(s *setup) { s.terrain = g } }

// WithRandom sets the combat random source. Defaults to a time-seeded source.
func WithRandom(r RandomSource) Option { return func(s *setup) { s.rng = r } }

// WithLayout replaces the opening position.
func WithLayout(units []Placement) Option {
	return func(s *setup) { s.units = append([]Placement(nil), units...) }
}

// WithTowerHP sets the starting hit points of both towers.
func WithTowerHP(hp int) Option { return func(s *setup) { s.towerHP = hp } }

// WithFirstPlayer sets who moves first. Defaults to P1.
func WithFirstPlayer(p Player) Option { return func(s *setup) { s.first = p } }

func (s *setup) build() (*Board, error) {
	if s.towerHP <= 0 {
		return nil, fmt.Errorf("%w: tower hp must be positive, got %d", ErrInvalidSetup, s.towerHP)
	}
	if s.first != P1 && s.first != P2 {
		return nil, fmt.Errorf("%w: unknown first player", ErrInvalidSetup)
	}
	t := s.terrain.Generate()
	if err := ValidateTerrain(t); err != nil {
		return nil, err
	}
	b := NewBoard(t)
	towers := map[Player]int{}
	for _, pl := range s.units {
		if pl.Unit.Owner != P1 && pl.Unit.Owner != P2 {
			return nil, fmt.Errorf("%w: unit on %s has no owner", ErrInvalidSetup, pl.Square)
		}
		if _, ok := kindNames[pl.Unit.Kind]; !ok {
			return nil, fmt.Errorf("%w: unit on %s has no kind", ErrInvalidSetup, pl.Square)
		}
		if err := b.Place(pl.Square, pl.Unit); err != nil {
			return nil, fmt.Errorf("%w: place %s on %s: %w", ErrInvalidSetup, pl.Unit, pl.Square, err)
		}
		if pl.Unit.Kind == Tower {
			towers[pl.Unit.Owner]++
		}
	}
	for _, p := range []Player{P1, P2} {
		if towers[p] != 1 {
			return nil, fmt.Errorf("%w: %s needs exactly one tower, has %d", ErrInvalidSetup, p, towers[p])
		}
	}
	return b, nil
}

func timeSeeded() RandomSource { return NewRandSource(uint64(time.Now().UnixNano())) }
