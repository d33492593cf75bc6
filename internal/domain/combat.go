package domain

import "fmt"

// DefaultTowerHP is the starting hit points of each tower.
const DefaultTowerHP = 20

// TowerHealth tracks tower hit points per player.
type TowerHealth struct {
	P1 int
	P2 int
}

// Of returns the remaining hit points of p's tower.
func (h TowerHealth) Of(p Player) int {
	if p == P2 {
		return h.P2
	}
	return h.P1
}

// damage lowers p's tower by n, flooring at zero, and returns what is left.
func (h *TowerHealth) damage(p Player, n int) int {
	slot := &h.P1
	if p == P2 {
		slot = &h.P2
	}
	*slot = max(*slot-n, 0)
	return *slot
}

// AttackOutcome is the result of one resolved attack.
type AttackOutcome struct {
	Kind              Kind
	Damage            int
	HPRemaining       int
	Destroyed         bool
	MutualDestruction bool
	// Actions is how many turn actions the attack consumed.
	Actions int
}

// CanAttack reports whether the unit on from may attack the unit on to.
func CanAttack(b *Board, from, to Square) bool { return AttackError(b, from, to) == nil }

// AttackError returns nil for a legal attack, otherwise an error wrapping
// ErrIllegalAttack.
func AttackError(b *Board, from, to Square) error {
	attacker, ok := b.OccupantAt(from)
	if !ok {
		return fmt.Errorf("%w: no unit on %s", ErrIllegalAttack, from)
	}
	defender, ok := b.OccupantAt(to)
	if !ok {
		return fmt.Errorf("%w: nothing to attack on %s", ErrIllegalAttack, to)
	}
	if defender.Owner == attacker.Owner {
		return fmt.Errorf("%w: %s is a friendly unit", ErrIllegalAttack, to)
	}
	if attacker.Kind == Tower {
		return fmt.Errorf("%w: towers cannot attack", ErrIllegalAttack)
	}
	if !ProfileOf(attacker.Kind).Attack.Allows(from, to) {
		return fmt.Errorf("%w: %s out of %s range", ErrIllegalAttack, to, attacker.Kind)
	}
	return nil
}

// ResolveAttack plays out an attack from from on to, mutating the board and
// tower health. On error nothing has changed and no action is consumed.
func ResolveAttack(b *Board, hp *TowerHealth, rng RandomSource, from, to Square) (AttackOutcome, error) {
	if err := AttackError(b, from, to); err != nil {
		return AttackOutcome{}, err
	}
	attacker, _ := b.OccupantAt(from)
	defender, _ := b.OccupantAt(to)
	ap, dp := ProfileOf(attacker.Kind), ProfileOf(defender.Kind)
	fromRed := b.TerrainAt(from) == Red

	if defender.Kind == Tower {
		if fromRed {
			return AttackOutcome{}, fmt.Errorf("%w: towers cannot be hit from red terrain", ErrIllegalAttack)
		}
		left := hp.damage(defender.Owner, ap.TowerDamage)
		out := AttackOutcome{
			Kind:        TowerHit,
			Damage:      ap.TowerDamage,
			HPRemaining: left,
			Actions:     ActionsPerTurn,
		}
		if left <= 0 {
			b.Remove(to)
			out.Destroyed = true
		}
		return out, nil
	}

	// Red under the attacker takes away the defender's chance to evade, so no
	// draw is spent there. Each attack rolls evasion at most once.
	if !fromRed && dp.Evasion > 0 && rng.Float64() < dp.Evasion {
		if !dp.CanCounter(ap) {
			return AttackOutcome{Kind: Miss, Actions: 1}, nil
		}
		return counter(b, rng, dp, from), nil
	}

	out := AttackOutcome{Kind: Hit, Actions: 1}
	if b.TerrainAt(to) == Gray {
		b.Remove(from)
		out.MutualDestruction = true
	}
	b.Remove(to)
	return out, nil
}

// counter resolves a defender's strike back at the attacker on from.
// The missed attack and its counter share a single action.
func counter(b *Board, rng RandomSource, defender Profile, from Square) AttackOutcome {
	if rng.Float64() < defender.Counter {
		b.Remove(from)
		return AttackOutcome{Kind: CounterHit, Actions: 1}
	}
	return AttackOutcome{Kind: CounterMiss, Actions: 1}
}
