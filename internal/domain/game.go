package domain

import "fmt"

// Game is one match. It owns the board, tower health and turn state; the
// presentation layer only calls Select, Act and Snapshot. A Game is not safe
// for concurrent use.
type Game struct {
	board  *Board
	health TowerHealth
	turn   TurnState
	rng    RandomSource
	result *GameResult
}

// Snapshot is a copy of everything needed to draw the game.
type Snapshot struct {
	Cells   [Size][Size]Unit
	Terrain TerrainMap
	TowerHP TowerHealth
	Turn    TurnState
	Over    bool
	Winner  Player
}

// UnitAt returns the unit drawn on sq.
func (s Snapshot) UnitAt(sq Square) (Unit, bool) {
	if !sq.Valid() {
		return Unit{}, false
	}
	u := s.Cells[sq.Row][sq.Col]
	return u, u.Kind != NoKind
}

// New sets up a game with the default layout on Plain terrain unless
// options say otherwise.
func New(opts ...Option) (*Game, error) {
	s := setup{
		terrain: PlainTerrain{},
		units:   DefaultLayout(),
		towerHP: DefaultTowerHP,
		first:   P1,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.rng == nil {
		s.rng = timeSeeded()
	}
	b, err := s.build()
	if err != nil {
		return nil, err
	}
	return &Game{
		board:  b,
		health: TowerHealth{P1: s.towerHP, P2: s.towerHP},
		turn:   TurnState{Active: s.first},
		rng:    s.rng,
	}, nil
}

// Select marks a friendly unit as selected. Anything else clears the
// selection and returns false.
func (g *Game) Select(sq Square) bool {
	if g.result != nil {
		g.turn.ClearSelection()
		return false
	}
	u, ok := g.board.OccupantAt(sq)
	if !ok || u.Owner != g.turn.Active {
		g.turn.ClearSelection()
		return false
	}
	g.turn.Select(sq)
	return true
}

// Act moves or attacks with the unit on from, depending on what stands on
// to. State changes only when the returned outcome is Accepted.
func (g *Game) Act(from, to Square) Outcome {
	if g.result != nil {
		return Outcome{Kind: GameOver, Err: ErrGameOver, From: from, To: to, Winner: g.result.Winner}
	}
	defer g.turn.ClearSelection()

	out := Outcome{From: from, To: to, Player: g.turn.Active}
	if !from.Valid() || !to.Valid() {
		return reject(out, InvalidSelection, fmt.Errorf("%w: %w", ErrInvalidSelection, ErrOutOfBounds))
	}
	actor, ok := g.board.OccupantAt(from)
	if !ok || actor.Owner != g.turn.Active {
		return reject(out, InvalidSelection, fmt.Errorf("%w: no %s unit on %s", ErrInvalidSelection, g.turn.Active, from))
	}
	out.Actor = actor

	target, occupied := g.board.OccupantAt(to)
	switch {
	case !occupied:
		return g.move(out)
	case target.Owner == actor.Owner:
		return reject(out, IllegalMove, fmt.Errorf("%w: %s is held by a friendly unit", ErrIllegalMove, to))
	default:
		out.Defender = target
		return g.attack(out)
	}
}

func (g *Game) move(out Outcome) Outcome {
	if err := MoveError(g.board, out.From, out.To); err != nil {
		return reject(out, IllegalMove, err)
	}
	if err := g.board.MoveUnit(out.From, out.To); err != nil {
		return reject(out, IllegalMove, fmt.Errorf("%w: %w", ErrIllegalMove, err))
	}
	out.Kind = Moved
	out.TurnSwitched = g.turn.Consume(1)
	return out
}

func (g *Game) attack(out Outcome) Outcome {
	res, err := ResolveAttack(g.board, &g.health, g.rng, out.From, out.To)
	if err != nil {
		return reject(out, IllegalAttack, err)
	}
	out.Kind = res.Kind
	out.Damage = res.Damage
	out.HPRemaining = res.HPRemaining
	out.Destroyed = res.Destroyed
	out.MutualDestruction = res.MutualDestruction
	out.TurnSwitched = g.turn.Consume(res.Actions)

	if r, over := Evaluate(g.board); over {
		g.result = &r
		out.Winner = r.Winner
	}
	return out
}

func reject(out Outcome, reason Reason, err error) Outcome {
	out.Kind = Rejected
	out.Reason = reason
	out.Err = err
	return out
}

// Result returns the winner once the game has ended.
func (g *Game) Result() (GameResult, bool) {
	if g.result == nil {
		return GameResult{}, false
	}
	return *g.result, true
}

// Turn returns the current turn state.
func (g *Game) Turn() TurnState { return g.turn }

// TowerHP returns the current tower hit points.
func (g *Game) TowerHP() TowerHealth { return g.health }

// Snapshot copies the current state for rendering.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Cells:   g.board.Cells(),
		Terrain: g.board.Terrain(),
		TowerHP: g.health,
		Turn:    g.turn,
	}
	if g.result != nil {
		s.Over = true
		s.Winner = g.result.Winner
	}
	return s
}
