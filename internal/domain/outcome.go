package domain

// Kind tags what an Act call did.
type Kind uint8

const (
	NoOutcome Kind = iota
	Moved
	Miss
	Hit
	TowerHit
	CounterHit
	CounterMiss
	Rejected
	GameOver
)

func (k Kind) String() string {
	switch k {
	case Moved:
		return "moved"
	case Miss:
		return "miss"
	case Hit:
		return "hit"
	case TowerHit:
		return "tower_hit"
	case CounterHit:
		return "counter_hit"
	case CounterMiss:
		return "counter_miss"
	case Rejected:
		return "rejected"
	case GameOver:
		return "game_over"
	}
	return "none"
}

// Reason classifies a rejection.
type Reason uint8

const (
	NoReason Reason = iota
	InvalidSelection
	IllegalMove
	IllegalAttack
)

func (r Reason) String() string {
	switch r {
	case InvalidSelection:
		return "invalid_selection"
	case IllegalMove:
		return "illegal_move"
	case IllegalAttack:
		return "illegal_attack"
	}
	return "none"
}

// Outcome is the structured result of Act. Rejections and game-over carry
// Err; everything else succeeded and changed the game.
type Outcome struct {
	Kind   Kind
	Reason Reason
	Err    error

	From     Square
	To       Square
	Actor    Unit
	Defender Unit
	Player   Player

	Damage            int
	HPRemaining       int
	Destroyed         bool
	MutualDestruction bool

	// TurnSwitched is set when this action ended the player's turn.
	TurnSwitched bool
	// Winner is set when this action ended the game, or on GameOver.
	Winner Player
}

// Accepted reports whether the action was applied.
func (o Outcome) Accepted() bool {
	return o.Kind != NoOutcome && o.Kind != Rejected && o.Kind != GameOver
}
