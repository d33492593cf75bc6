package app

import (
	"fmt"

	"github.com/jaminalder/tower-siege-chess/internal/domain"
)

// Notice is one player-facing message about an action, in the order it
// should be shown.
type Notice struct {
	Title string
	Text  string
}

// Describe turns an outcome into notices. A selection-only outcome yields
// none.
func Describe(out domain.Outcome) []Notice {
	var ns []Notice
	add := func(title, format string, args ...any) {
		ns = append(ns, Notice{Title: title, Text: fmt.Sprintf(format, args...)})
	}
	att, def := out.Actor, out.Defender

	switch out.Kind {
	case domain.NoOutcome:
		return nil
	case domain.Rejected:
		title := "Invalid Move"
		switch out.Reason {
		case domain.IllegalAttack:
			title = "Invalid Attack"
		case domain.InvalidSelection:
			title = "Invalid Selection"
		}
		add(title, "%v", out.Err)
		return ns
	case domain.GameOver:
		add("Game Over", "%s has already won.", out.Winner)
		return ns
	case domain.Miss:
		add("Miss", "%s missed the attack on %s!", att, def)
	case domain.CounterHit:
		add("Miss", "%s missed the attack on %s!", att, def)
		add("Counter-Attack", "%s counter-attacked and defeated %s!", def, att)
	case domain.CounterMiss:
		add("Miss", "%s missed the attack on %s!", att, def)
		add("Counter-Attack Missed", "The counter-attack by %s missed!", def)
	case domain.Hit:
		if out.MutualDestruction {
			add("Gray Terrain Effect", "%s was on gray terrain, and %s also dies!", def, att)
		}
		add("Hit", "%s defeated %s!", att, def)
	case domain.TowerHit:
		add("Tower Hit", "%s hit %s! %s has %d HP left.", att, def, def, out.HPRemaining)
		if out.Destroyed {
			add("Tower Destroyed", "%s destroyed %s!", att, def)
		}
	}

	if out.Winner != domain.NoPlayer {
		add("Game Over", "%s wins!", out.Winner)
	} else if out.TurnSwitched {
		add("Turn Change", "It's now %s's turn!", out.Player.Opponent())
	}
	return ns
}
