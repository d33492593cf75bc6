package domain

// GameResult is the terminal value of a finished game.
type GameResult struct {
	Winner Player
}

// Evaluate checks both players for a loss, P1 first. A player loses when
// their tower is gone or they have no units other than the tower.
func Evaluate(b *Board) (GameResult, bool) {
	for _, p := range []Player{P1, P2} {
		if defeated(b, p) {
			return GameResult{Winner: p.Opponent()}, true
		}
	}
	return GameResult{}, false
}

func defeated(b *Board, p Player) bool {
	tower, army := false, 0
	b.Each(func(_ Square, u Unit) {
		if u.Owner != p {
			return
		}
		if u.Kind == Tower {
			tower = true
		} else {
			army++
		}
	})
	return !tower || army == 0
}
