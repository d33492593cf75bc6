package domain

// ActionsPerTurn is how many moves or attacks make up one turn.
const ActionsPerTurn = 2

// TurnState tracks whose turn it is and how far into it they are.
type TurnState struct {
	Active      Player
	ActionsUsed int
	Selected    Square
	HasSelected bool
}

// Consume records n actions. When the turn is used up the counter resets,
// the active player flips and the selection is dropped.
func (t *TurnState) Consume(n int) (switched bool) {
	t.ActionsUsed += n
	if t.ActionsUsed < ActionsPerTurn {
		return false
	}
	t.ActionsUsed = 0
	t.Active = t.Active.Opponent()
	t.ClearSelection()
	return true
}

// Select marks sq as the current selection.
func (t *TurnState) Select(sq Square) {
	t.Selected = sq
	t.HasSelected = true
}

// ClearSelection drops the current selection.
func (t *TurnState) ClearSelection() {
	t.Selected = Square{}
	t.HasSelected = false
}
