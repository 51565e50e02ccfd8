package core

import (
	"fmt"
	"sync"
)

// SessionConfig configures a new Session.
type SessionConfig struct {
	Gen      GenParams
	Strategy Strategy // nil means Greedy
	Source   Source   // nil means a clock-seeded source
}

// Snapshot is the pull-based view handed to presentation layers.
// Grid is a private copy; mutating it has no effect on the session.
type Snapshot struct {
	Grid             [][]Terrain
	Runner           Pos
	Pursuer          Pos
	PursuerDir       Dir
	Score            int
	CollectedKeys    int
	TotalKeys        int
	KeysCollected    int
	BottomRowCleared bool
	Paused           bool
	Level            int
	Ticks            uint64
	Strategy         string
}

// Session ties the grid, entities, progression and pursuit together.
// Every exported method holds the session lock, so moves, ticks and restarts
// never observe each other's intermediate state.
type Session struct {
	mu       sync.Mutex
	grid     *Grid
	ents     Entities
	prog     *ProgressionController
	pursuit  *PursuitEngine
	paused   bool
	ticks    uint64
	lastEvts []Event
}

// NewSession generates the first level and returns a ready session.
func NewSession(cfg SessionConfig) (*Session, error) {
	gen, err := NewGenerator(cfg.Gen, cfg.Source)
	if err != nil {
		return nil, err
	}
	lvl, err := gen.Generate()
	if err != nil {
		return nil, err
	}
	return newSession(gen, cfg.Strategy, lvl), nil
}

// NewSessionWithLevel starts a session on a prepared level. Later levels are
// generated from cfg.
func NewSessionWithLevel(cfg SessionConfig, lvl Level) (*Session, error) {
	if lvl.Grid == nil {
		return nil, fmt.Errorf("keyrunner: level has no grid")
	}
	for _, p := range []Pos{lvl.RunnerStart, lvl.PursuerStart} {
		if !lvl.Grid.InBounds(p) {
			return nil, fmt.Errorf("keyrunner: start %v: %w", p, ErrOutOfBounds)
		}
	}
	gen, err := NewGenerator(cfg.Gen, cfg.Source)
	if err != nil {
		return nil, err
	}
	return newSession(gen, cfg.Strategy, lvl), nil
}

func newSession(gen *Generator, s Strategy, lvl Level) *Session {
	sess := &Session{
		prog:    NewProgressionController(gen),
		pursuit: NewPursuitEngine(s),
	}
	sess.grid, sess.lastEvts = sess.prog.Install(lvl, &sess.ents)
	return sess
}

// Move applies a runner intent. Blocked moves are not errors.
// While paused it is a no-op that emits nothing.
func (s *Session) Move(d Dir) (MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !d.Valid() {
		pos := s.ents.runner.Pos
		return MoveResult{From: pos, To: pos}, fmt.Errorf("keyrunner: move %d: %w", d, ErrInvalidDirection)
	}
	if s.paused {
		pos := s.ents.runner.Pos
		return MoveResult{From: pos, To: pos}, nil
	}

	res, grid, err := s.ents.MoveRunner(s.grid, d, s.prog.state.BottomRowCleared)
	if err != nil {
		return res, err
	}
	s.grid = grid

	events := make([]Event, 0, len(res.Events)+2)
	for _, ev := range res.Events {
		events = append(events, ev)
		switch ev.Kind {
		case EventKeyCollected:
			g, more := s.prog.CollectKey(s.grid)
			s.grid = g
			events = append(events, more...)
		case EventLevelExit:
			g, more, err := s.prog.AdvanceLevel(ev.Pos.Col, &s.ents)
			if err != nil {
				res.Events = events
				s.lastEvts = events
				return res, err
			}
			s.grid = g
			events = append(events, more...)
		}
	}
	res.Events = events
	s.lastEvts = events
	return res, nil
}

// MoveNamed parses a direction name and applies it.
func (s *Session) MoveNamed(name string) (MoveResult, error) {
	d, err := ParseDir(name)
	if err != nil {
		s.mu.Lock()
		pos := s.ents.runner.Pos
		s.mu.Unlock()
		return MoveResult{From: pos, To: pos}, err
	}
	return s.Move(d)
}

// Tick advances the pursuer one step. While paused it is a no-op.
func (s *Session) Tick() TickResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.paused {
		pos := s.ents.pursuer.Pos
		return TickResult{From: pos, To: pos}
	}
	s.ticks++
	res := s.pursuit.Tick(s.grid, &s.ents)
	s.lastEvts = res.Events
	return res
}

// TogglePause flips the paused flag and returns the new value.
func (s *Session) TogglePause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = !s.paused
	return s.paused
}

// SetPaused sets the paused flag.
func (s *Session) SetPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = paused
}

// Paused reports whether the session is paused.
func (s *Session) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// Restart discards the current run: score returns to zero and a fresh
// level is generated. The session is unpaused.
func (s *Session) Restart() ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	grid, events, err := s.prog.Restart(&s.ents)
	if err != nil {
		return nil, err
	}
	s.grid = grid
	s.paused = false
	s.ticks = 0
	s.lastEvts = events
	return events, nil
}

// Grid returns the current grid. Grids are never mutated after publication,
// so the caller may keep it.
func (s *Session) Grid() *Grid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid
}

// Progression returns a copy of the progression state.
func (s *Session) Progression() ProgressionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prog.State()
}

// LastEvents returns the events of the most recent operation.
func (s *Session) LastEvents() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.lastEvts))
	copy(out, s.lastEvts)
	return out
}

// Snapshot returns the public state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.prog.State()
	return Snapshot{
		Grid:             s.grid.Cells(),
		Runner:           s.ents.runner.Pos,
		Pursuer:          s.ents.pursuer.Pos,
		PursuerDir:       s.ents.pursuer.LastDir,
		Score:            st.Score,
		CollectedKeys:    st.CollectedKeys,
		TotalKeys:        st.TotalKeys,
		KeysCollected:    st.KeysCollected,
		BottomRowCleared: st.BottomRowCleared,
		Paused:           s.paused,
		Level:            st.Level,
		Ticks:            s.ticks,
		Strategy:         s.pursuit.Strategy().Name(),
	}
}
