// Package terrain decorates new boards. Home rows stay Plain; the two
// middle rows get a random mix of Water, Red and Gray up to each kind's cap.
package terrain

import (
	"fmt"

	"github.com/jaminalder/tower-siege-chess/internal/domain"
)

var kinds = []domain.Terrain{domain.Plain, domain.Water, domain.Red, domain.Gray}

// Random draws a fresh map on every Generate call.
type Random struct {
	rng domain.RandomSource
}

// NewRandom returns a generator reading from rng.
func NewRandom(rng domain.RandomSource) *Random { return &Random{rng: rng} }

// Generate picks each interior square uniformly among the kinds whose cap is
// not yet reached. Plain never runs out.
func (g *Random) Generate() domain.TerrainMap {
	var m domain.TerrainMap
	used := map[domain.Terrain]int{}
	for r := 0; r < domain.Size; r++ {
		if domain.HomeRow(r) {
			continue
		}
		for c := 0; c < domain.Size; c++ {
			open := available(used)
			t := open[pick(g.rng, len(open))]
			used[t]++
			m[r][c] = t
		}
	}
	return m
}

func available(used map[domain.Terrain]int) []domain.Terrain {
	out := make([]domain.Terrain, 0, len(kinds))
	for _, t := range kinds {
		if limit := domain.TerrainCap(t); limit < 0 || used[t] < limit {
			out = append(out, t)
		}
	}
	return out
}

func pick(rng domain.RandomSource, n int) int {
	i := int(rng.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// Fixed is a generator that always returns the same map.
type Fixed domain.TerrainMap

func (f Fixed) Generate() domain.TerrainMap { return domain.TerrainMap(f) }

// Parse reads eight rows of '.', 'W', 'R' or 'G'.
func Parse(rows []string) (domain.TerrainMap, error) {
	var m domain.TerrainMap
	if len(rows) != domain.Size {
		return m, fmt.Errorf("terrain: want %d rows, got %d", domain.Size, len(rows))
	}
	for r, row := range rows {
		if len(row) != domain.Size {
			return m, fmt.Errorf("terrain: row %d: want %d squares, got %d", r, domain.Size, len(row))
		}
		for c := 0; c < domain.Size; c++ {
			t, ok := symbols[row[c]]
			if !ok {
				return m, fmt.Errorf("terrain: row %d col %d: unknown symbol %q", r, c, row[c])
			}
			m[r][c] = t
		}
	}
	return m, nil
}

// Format renders m in the same form Parse reads.
func Format(m domain.TerrainMap) []string {
	rows := make([]string, domain.Size)
	for r := range m {
		b := make([]byte, domain.Size)
		for c, t := range m[r] {
			b[c] = letters[t]
		}
		rows[r] = string(b)
	}
	return rows
}

var symbols = map[byte]domain.Terrain{
	'.': domain.Plain, 'W': domain.Water, 'R': domain.Red, 'G': domain.Gray,
}

var letters = map[domain.Terrain]byte{
	domain.Plain: '.', domain.Water: 'W', domain.Red: 'R', domain.Gray: 'G',
}
