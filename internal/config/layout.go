package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jaminalder/tower-siege-chess/internal/domain"
	"github.com/jaminalder/tower-siege-chess/internal/terrain"
)

// Layout is a custom opening read from YAML:
//
//	first: P2
//	tower_hp: 10
//	terrain: ["........", ...]   # eight rows of . W R G, optional
//	units:
//	  - {kind: tower, owner: P1, pos: [3, 0]}
//	  - {kind: GW, owner: P2, pos: [7, 2]}
type Layout struct {
	First   string     `yaml:"first"`
	TowerHP int        `yaml:"tower_hp"`
	Terrain []string   `yaml:"terrain"`
	Units   []UnitSpec `yaml:"units"`
}

// UnitSpec is one placed unit. Kind accepts a name or a board symbol.
type UnitSpec struct {
	Kind  string `yaml:"kind"`
	Owner string `yaml:"owner"`
	Pos   []int  `yaml:"pos"`
}

// LoadLayout reads and validates the layout at path.
func LoadLayout(path string) (*Layout, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load layout: %w", err)
	}
	l, err := ParseLayout(b)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}
	return l, nil
}

// ParseLayout decodes and validates a layout held in memory.
func ParseLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Validate checks the layout by setting up a throwaway game with it.
func (l *Layout) Validate() error {
	opts, err := l.Options()
	if err != nil {
		return err
	}
	opts = append(opts, domain.WithRandom(domain.NewSequenceSource()))
	_, err = domain.New(opts...)
	return err
}

// Options converts the layout into game options. Fields left empty keep the
// defaults, except that a non-empty unit list replaces the whole opening.
func (l *Layout) Options() ([]domain.Option, error) {
	var opts []domain.Option
	if l.First != "" {
		p, ok := domain.ParsePlayer(l.First)
		if !ok {
			return nil, fmt.Errorf("%w: unknown first player %q", domain.ErrInvalidSetup, l.First)
		}
		opts = append(opts, domain.WithFirstPlayer(p))
	}
	if l.TowerHP != 0 {
		opts = append(opts, domain.WithTowerHP(l.TowerHP))
	}
	if len(l.Terrain) > 0 {
		m, err := terrain.Parse(l.Terrain)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidSetup, err)
		}
		opts = append(opts, domain.WithTerrain(terrain.Fixed(m)))
	}
	if len(l.Units) > 0 {
		units := make([]domain.Placement, 0, len(l.Units))
		for i, u := range l.Units {
			pl, err := u.placement()
			if err != nil {
				return nil, fmt.Errorf("%w: unit %d: %w", domain.ErrInvalidSetup, i, err)
			}
			units = append(units, pl)
		}
		opts = append(opts, domain.WithLayout(units))
	}
	return opts, nil
}

func (u UnitSpec) placement() (domain.Placement, error) {
	kind, ok := domain.ParseKind(u.Kind)
	if !ok {
		return domain.Placement{}, fmt.Errorf("unknown kind %q", u.Kind)
	}
	owner, ok := domain.ParsePlayer(u.Owner)
	if !ok {
		return domain.Placement{}, fmt.Errorf("unknown owner %q", u.Owner)
	}
	if len(u.Pos) != 2 {
		return domain.Placement{}, fmt.Errorf("pos needs [row, col], got %v", u.Pos)
	}
	sq := domain.Sq(u.Pos[0], u.Pos[1])
	if !sq.Valid() {
		return domain.Placement{}, fmt.Errorf("pos %s is off the board", sq)
	}
	return domain.Placement{Square: sq, Unit: domain.Unit{Kind: kind, Owner: owner}}, nil
}
