package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/jaminalder/tower-siege-chess/internal/domain"
	"github.com/jaminalder/tower-siege-chess/internal/terrain"
)

// Errors exposed by the service layer.
var (
	ErrNotFound = errors.New("game not found")
)

// GameState is a copy of one game as the presentation layer sees it.
type GameState struct {
	ID       string
	Seed     uint64
	Snapshot domain.Snapshot
	// Last is the outcome of the most recent action, accepted or not.
	Last     domain.Outcome
	Notices  []Notice
	Created  time.Time
	Updated  time.Time
}

// Selected returns the selected square, if any.
func (gs GameState) Selected() (domain.Square, bool) {
	return gs.Snapshot.Turn.Selected, gs.Snapshot.Turn.HasSelected
}

type entry struct {
	id      string
	seed    uint64
	game    *domain.Game
	last    domain.Outcome
	notices []Notice
	created time.Time
	updated time.Time
}

func (e *entry) state() GameState {
	return GameState{
		ID:       e.id,
		Seed:     e.seed,
		Snapshot: e.game.Snapshot(),
		Last:     e.last,
		Notices:  append([]Notice(nil), e.notices...),
		Created:  e.created,
		Updated:  e.updated,
	}
}

type subscriber struct {
	ch        chan []byte
	closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Service owns every running game. Games are hot-seat: whoever calls
// Select or Act plays for the side whose turn it is.
type Service struct {
	mu     sync.Mutex
	games  map[string]*entry
	subs   map[string]map[*subscriber]struct{}
	render func(GameState) []byte
	log    zerolog.Logger
	seeds  *rand.Rand
	base   []domain.Option
}

// Option configures a Service.
type Option func(*Service)

// WithSeed fixes the seed every game seed is derived from.
func WithSeed(seed uint64) Option {
	return func(s *Service) { s.seeds = rand.New(rand.NewSource(seed)) }
}

// WithLogger replaces the global logger.
func WithLogger(l zerolog.Logger) Option { return func(s *Service) { s.log = l } }

// WithGameOptions applies opts to every new game, after the random terrain
// and combat source and before any per-call options.
func WithGameOptions(opts ...domain.Option) Option {
	return func(s *Service) { s.base = append(s.base, opts...) }
}

// WithRenderer sets the broadcast renderer.
func WithRenderer(renderer func(GameState) []byte) Option {
	return func(s *Service) { s.render = renderer }
}

// NewService creates a service. Without WithSeed, game seeds follow the
// clock.
func NewService(opts ...Option) *Service {
	s := &Service{
		games: make(map[string]*entry),
		subs:  make(map[string]map[*subscriber]struct{}),
		log:   log.Logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.render == nil {
		s.render = func(GameState) []byte { return nil }
	}
	if s.seeds == nil {
		s.seeds = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return s
}

// NewServiceWithRenderer allows injecting a renderer for broadcast payloads.
func NewServiceWithRenderer(renderer func(GameState) []byte, opts ...Option) *Service {
	return NewService(append(opts, WithRenderer(renderer))...)
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(GameState) []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if renderer == nil {
		s.render = func(GameState) []byte { return nil }
		return
	}
	s.render = renderer
}

// CreateGame sets up and registers a new game. Terrain and combat draw from
// two sources derived from one per-game seed, so a game replays from its
// seed.
func (s *Service) CreateGame(opts ...domain.Option) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seed := s.seeds.Uint64()
	all := []domain.Option{
		domain.WithTerrain(terrain.NewRandom(domain.NewRandSource(seed ^ terrainSalt))),
		domain.WithRandom(domain.NewRandSource(seed)),
	}
	all = append(all, s.base...)
	all = append(all, opts...)
	g, err := domain.New(all...)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	e := &entry{id: uuid.NewString(), seed: seed, game: g, created: now, updated: now}
	s.games[e.id] = e
	s.log.Info().Str("game_id", e.id).Uint64("seed", seed).Msg("game created")
	s.log.Debug().Str("game_id", e.id).Strs("terrain", terrain.Format(g.Snapshot().Terrain)).Msg("board terrain")
	gs := e.state()
	return &gs, nil
}

const terrainSalt = 0x9e3779b97f4a7c15

// Get returns a copy of the game state if present.
func (s *Service) Get(id string) (*GameState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.games[id]
	if !ok {
		return nil, false
	}
	gs := e.state()
	return &gs, true
}

// Select marks a unit of the active player. The bool reports whether the
// selection took.
func (s *Service) Select(id string, sq domain.Square) (*GameState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.games[id]
	if !ok {
		return nil, false, ErrNotFound
	}
	took := e.game.Select(sq)
	e.notices = nil
	gs := e.state()
	return &gs, took, nil
}

// Act plays the unit on from against to and broadcasts accepted actions.
func (s *Service) Act(id string, from, to domain.Square) (domain.Outcome, *GameState, error) {
	s.mu.Lock()
	e, ok := s.games[id]
	if !ok {
		s.mu.Unlock()
		return domain.Outcome{}, nil, ErrNotFound
	}
	return s.actAndUnlock(e, from, to)
}

// Click is the single-square input of the board: with nothing selected, or
// on one of the active player's units, it selects; otherwise it acts from
// the selection onto sq. The outcome is NoOutcome when the click only
// changed the selection.
func (s *Service) Click(id string, sq domain.Square) (domain.Outcome, *GameState, error) {
	s.mu.Lock()
	e, ok := s.games[id]
	if !ok {
		s.mu.Unlock()
		return domain.Outcome{}, nil, ErrNotFound
	}
	snap := e.game.Snapshot()
	u, occupied := snap.UnitAt(sq)
	friendly := occupied && u.Owner == snap.Turn.Active
	if !snap.Turn.HasSelected || friendly || snap.Over {
		e.game.Select(sq)
		e.notices = nil
		gs := e.state()
		s.mu.Unlock()
		return domain.Outcome{}, &gs, nil
	}
	return s.actAndUnlock(e, snap.Turn.Selected, sq)
}

// actAndUnlock must be called with s.mu held and releases it.
func (s *Service) actAndUnlock(e *entry, from, to domain.Square) (domain.Outcome, *GameState, error) {
	defer s.mu.Unlock()
	out := s.applyLocked(e, from, to)
	gs := e.state()
	if out.Accepted() {
		s.broadcastLocked(e.id, s.render(gs))
	}
	return out, &gs, nil
}

func (s *Service) applyLocked(e *entry, from, to domain.Square) domain.Outcome {
	out := e.game.Act(from, to)
	e.last = out
	e.notices = Describe(out)
	if !out.Accepted() {
		s.log.Debug().
			Str("game_id", e.id).
			Str("player", out.Player.String()).
			Str("reason", out.Reason.String()).
			Err(out.Err).
			Msg("action rejected")
		return out
	}
	e.updated = time.Now()
	s.log.Info().
		Str("game_id", e.id).
		Str("player", out.Player.String()).
		Str("kind", out.Kind.String()).
		Str("from", from.String()).
		Str("to", to.String()).
		Msg("action")
	if out.Winner != domain.NoPlayer {
		s.log.Info().Str("game_id", e.id).Msgf("game over, %s wins", out.Winner)
	}
	return out
}

// broadcastLocked fans payload out under s.mu. Sends never block, and
// unsubscribing also takes s.mu, so no channel is closed mid-send.
func (s *Service) broadcastLocked(id string, payload []byte) {
	dropped := 0
	set := s.subs[id]
	for sub := range set {
		select {
		case sub.ch <- payload:
		default:
			// drop slow subscriber
			delete(set, sub)
			sub.close()
			dropped++
		}
	}
	if dropped > 0 {
		s.log.Debug().Str("game_id", id).Int("dropped", dropped).Msg("slow subscribers dropped")
	}
}

// Subscribe registers a subscriber for a game. Returns a channel and an
// unsubscribe func. Unknown games yield ErrNotFound.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return nil, func() {}, ErrNotFound
	}
	set := s.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		s.subs[id] = set
	}
	sub := &subscriber{ch: make(chan []byte, 1)}
	set[sub] = struct{}{}

	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			s.mu.Lock()
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
			}
			sub.close()
			s.mu.Unlock()
		})
	}
	go func() {
		<-ctx.Done()
		unsub()
	}()
	return sub.ch, unsub, nil
}
