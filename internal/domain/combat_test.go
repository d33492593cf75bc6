package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	board *Board
	hp    TowerHealth
}

func newFixture(t *testing.T, tm TerrainMap, units ...Placement) *fixture {
	t.Helper()
	b := NewBoard(tm)
	for _, pl := range units {
		require.NoError(t, b.Place(pl.Square, pl.Unit))
	}
	return &fixture{board: b, hp: TowerHealth{P1: DefaultTowerHP, P2: DefaultTowerHP}}
}

func (f *fixture) resolve(t *testing.T, rng RandomSource, from, to Square) AttackOutcome {
	t.Helper()
	out, err := ResolveAttack(f.board, &f.hp, rng, from, to)
	require.NoError(t, err)
	return out
}

func (f *fixture) occupied(sq Square) bool {
	_, ok := f.board.OccupantAt(sq)
	return ok
}

func TestCanAttackRanges(t *testing.T) {
	f := newFixture(t, TerrainMap{},
		p1(Archer, 0, 0), p1(GeneralHunter, 0, 7), p1(Pawn, 2, 2), p1(Tower, 3, 0),
		p2(Pawn, 3, 1), p2(Pawn, 0, 3), p2(Pawn, 4, 7), p2(Pawn, 3, 3), p2(Pawn, 0, 4),
	)
	require.True(t, CanAttack(f.board, Sq(0, 0), Sq(0, 3)), "archer reaches three along the rank")
	require.False(t, CanAttack(f.board, Sq(0, 0), Sq(0, 4)), "archer stops at three")
	require.True(t, CanAttack(f.board, Sq(0, 7), Sq(4, 7)), "hunter reaches four along the file")
	require.True(t, CanAttack(f.board, Sq(0, 7), Sq(0, 4)))
	require.True(t, CanAttack(f.board, Sq(2, 2), Sq(3, 3)), "pawn hits diagonally adjacent")
	require.False(t, CanAttack(f.board, Sq(2, 2), Sq(0, 4)))

	err := AttackError(f.board, Sq(3, 0), Sq(3, 1))
	require.ErrorIs(t, err, ErrIllegalAttack)
	require.Contains(t, err.Error(), "towers cannot attack")

	require.ErrorIs(t, AttackError(f.board, Sq(2, 2), Sq(3, 0)), ErrIllegalAttack, "own tower")
	require.ErrorIs(t, AttackError(f.board, Sq(2, 2), Sq(2, 3)), ErrIllegalAttack, "empty target")
}

func TestTowerHitDamageByAttacker(t *testing.T) {
	tests := []struct {
		kind   UnitKind
		damage int
	}{
		{Pawn, 2}, {Horse, 2}, {GeneralWarrior, 2}, {GeneralRanged, 2},
		{Archer, 1}, {GeneralHunter, 1},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			f := newFixture(t, TerrainMap{}, p1(Tower, 3, 0), p2(tt.kind, 4, 0))
			rng := NewSequenceSource(0)
			out := f.resolve(t, rng, Sq(4, 0), Sq(3, 0))
			require.Equal(t, TowerHit, out.Kind)
			require.Equal(t, tt.damage, out.Damage)
			require.Equal(t, DefaultTowerHP-tt.damage, out.HPRemaining)
			require.Equal(t, ActionsPerTurn, out.Actions)
			require.False(t, out.Destroyed)
			require.Equal(t, 0, rng.Used(), "towers never evade")
		})
	}
}

func TestTowerDestroyedAtZero(t *testing.T) {
	f := newFixture(t, TerrainMap{}, p1(Tower, 3, 0), p2(Horse, 4, 0))
	f.hp.P1 = 3
	out := f.resolve(t, NewSequenceSource(), Sq(4, 0), Sq(3, 0))
	require.Equal(t, 1, out.HPRemaining)
	require.True(t, f.occupied(Sq(3, 0)))

	out = f.resolve(t, NewSequenceSource(), Sq(4, 0), Sq(3, 0))
	require.Equal(t, 0, out.HPRemaining, "hp floors at zero")
	require.True(t, out.Destroyed)
	require.False(t, f.occupied(Sq(3, 0)))
	require.Equal(t, 0, f.hp.Of(P1))
}

func TestTowerCannotBeHitFromRed(t *testing.T) {
	var tm TerrainMap
	tm[4][0] = Red
	f := newFixture(t, tm, p1(Tower, 3, 0), p2(Pawn, 4, 0))
	_, err := ResolveAttack(f.board, &f.hp, NewSequenceSource(), Sq(4, 0), Sq(3, 0))
	require.ErrorIs(t, err, ErrIllegalAttack)
	require.Equal(t, DefaultTowerHP, f.hp.P1)
	require.True(t, f.occupied(Sq(4, 0)))
}

func TestEvasionMissAndHit(t *testing.T) {
	f := newFixture(t, TerrainMap{}, p1(Pawn, 2, 2), p2(Pawn, 3, 2))
	out := f.resolve(t, NewSequenceSource(0.69), Sq(2, 2), Sq(3, 2))
	require.Equal(t, Miss, out.Kind)
	require.Equal(t, 1, out.Actions)
	require.True(t, f.occupied(Sq(3, 2)))

	out = f.resolve(t, NewSequenceSource(0.7), Sq(2, 2), Sq(3, 2))
	require.Equal(t, Hit, out.Kind)
	require.False(t, out.MutualDestruction)
	require.False(t, f.occupied(Sq(3, 2)))
	require.True(t, f.occupied(Sq(2, 2)), "attacker stays where it was")
}

func TestArcherNeverEvades(t *testing.T) {
	f := newFixture(t, TerrainMap{}, p1(Pawn, 2, 2), p2(Archer, 3, 2))
	rng := NewSequenceSource(0)
	out := f.resolve(t, rng, Sq(2, 2), Sq(3, 2))
	require.Equal(t, Hit, out.Kind)
	require.Equal(t, 0, rng.Used())
}

func TestRedTerrainNullifiesEvasion(t *testing.T) {
	var tm TerrainMap
	tm[3][3] = Red
	f := newFixture(t, tm, p1(Pawn, 3, 3), p2(GeneralWarrior, 3, 4))
	rng := NewSequenceSource(0)
	out := f.resolve(t, rng, Sq(3, 3), Sq(3, 4))
	require.Equal(t, Hit, out.Kind)
	require.Equal(t, 0, rng.Used(), "no evasion draw from red terrain")
	require.False(t, f.occupied(Sq(3, 4)))
}

func TestGrayTerrainMutualDestruction(t *testing.T) {
	var tm TerrainMap
	tm[4][4] = Gray
	f := newFixture(t, tm, p1(Archer, 4, 1), p2(Pawn, 4, 4))
	out := f.resolve(t, NewSequenceSource(0.9), Sq(4, 1), Sq(4, 4))
	require.Equal(t, Hit, out.Kind)
	require.True(t, out.MutualDestruction)
	require.False(t, f.occupied(Sq(4, 4)))
	require.False(t, f.occupied(Sq(4, 1)))
}

func TestGrayTerrainSparesAttackerOnMiss(t *testing.T) {
	var tm TerrainMap
	tm[4][4] = Gray
	f := newFixture(t, tm, p1(Pawn, 4, 3), p2(Horse, 4, 4))
	out := f.resolve(t, NewSequenceSource(0.1), Sq(4, 3), Sq(4, 4))
	require.Equal(t, Miss, out.Kind)
	require.True(t, f.occupied(Sq(4, 3)))
	require.True(t, f.occupied(Sq(4, 4)))
}

func TestWarriorCounterAttack(t *testing.T) {
	t.Run("counter kills attacker", func(t *testing.T) {
		f := newFixture(t, TerrainMap{}, p1(Pawn, 2, 2), p2(GeneralWarrior, 3, 2))
		rng := NewSequenceSource(0.5, 0.79)
		out := f.resolve(t, rng, Sq(2, 2), Sq(3, 2))
		require.Equal(t, CounterHit, out.Kind)
		require.Equal(t, 1, out.Actions)
		require.Equal(t, 2, rng.Used())
		require.False(t, f.occupied(Sq(2, 2)))
		require.True(t, f.occupied(Sq(3, 2)))
	})

	t.Run("counter misses", func(t *testing.T) {
		f := newFixture(t, TerrainMap{}, p1(Horse, 2, 2), p2(GeneralWarrior, 3, 2))
		out := f.resolve(t, NewSequenceSource(0.5, 0.8), Sq(2, 2), Sq(3, 2))
		require.Equal(t, CounterMiss, out.Kind)
		require.Equal(t, 1, out.Actions)
		require.True(t, f.occupied(Sq(2, 2)))
	})

	t.Run("no counter against ranged or generals", func(t *testing.T) {
		for _, k := range []UnitKind{Archer, GeneralHunter, GeneralRanged, GeneralWarrior} {
			f := newFixture(t, TerrainMap{}, p1(k, 2, 2), p2(GeneralWarrior, 3, 2))
			rng := NewSequenceSource(0.1)
			out := f.resolve(t, rng, Sq(2, 2), Sq(3, 2))
			require.Equal(t, Miss, out.Kind, k.String())
			require.Equal(t, 1, rng.Used(), k.String())
			require.True(t, f.occupied(Sq(2, 2)), k.String())
		}
	})
}

func TestHunterNeverCounters(t *testing.T) {
	f := newFixture(t, TerrainMap{}, p1(Pawn, 2, 2), p2(GeneralHunter, 3, 2))
	rng := NewSequenceSource(0.2, 0.0)
	out := f.resolve(t, rng, Sq(2, 2), Sq(3, 2))
	require.Equal(t, Miss, out.Kind)
	require.Equal(t, 1, rng.Used(), "evasion is rolled exactly once")
	require.True(t, f.occupied(Sq(2, 2)))
}

func TestEvasionRates(t *testing.T) {
	const trials = 20000
	const tolerance = 0.02
	rates := map[UnitKind]float64{
		Pawn:           0.7,
		GeneralWarrior: 0.8,
		Horse:          0.5,
		GeneralHunter:  0.5,
		GeneralRanged:  0.7,
		Archer:         0,
	}
	for kind, want := range rates {
		t.Run(kind.String(), func(t *testing.T) {
			rng := NewRandSource(42)
			misses := 0
			for i := 0; i < trials; i++ {
				// Archers attack so the warrior never counters and the
				// board resets cleanly.
				f := newFixture(t, TerrainMap{}, p1(Archer, 2, 2), p2(kind, 3, 2))
				out := f.resolve(t, rng, Sq(2, 2), Sq(3, 2))
				if out.Kind == Miss {
					misses++
				}
			}
			require.InDelta(t, want, float64(misses)/trials, tolerance)
		})
	}
}
