package engine

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
)

// State is the session's position in the turn cycle.
type State int

const (
	StateAwaitingPlacement State = iota // Pieces are on offer
	StateReplenishing                   // Tray is empty, Replenish must be called
	StateGameOver                       // Terminal until Restart
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateAwaitingPlacement:
		return "awaiting_placement"
	case StateReplenishing:
		return "replenishing"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// RejectReason explains why a request was not applied.
type RejectReason string

const (
	ReasonNone             RejectReason = ""
	ReasonWrongState       RejectReason = "wrong_state"
	ReasonUnknownPiece     RejectReason = "unknown_piece"
	ReasonIllegalPlacement RejectReason = "illegal_placement"
)

// Result is returned by every session transition.
type Result struct {
	Accepted bool
	Reason   RejectReason
	Piece    Piece     // Placed piece (Place only)
	Anchor   Point     // Anchor used (Place only)
	Score    TurnScore // Points earned (Place only)
	Cleared  LineClear // Lines removed (Place only)
	Events   []Event
	State    State // State after the transition
}

// HighScoreStore persists the best score between sessions.
type HighScoreStore interface {
	LoadHighScore() (int, error)
	SaveHighScore(score int) error
}

// MemoryHighScores keeps the high score in process memory.
type MemoryHighScores struct {
	best int
}

// LoadHighScore returns the stored score.
func (m *MemoryHighScores) LoadHighScore() (int, error) { return m.best, nil }

// SaveHighScore stores the score.
func (m *MemoryHighScores) SaveHighScore(score int) error {
	m.best = score
	return nil
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithHighScores sets the high score collaborator.
func WithHighScores(h HighScoreStore) Option {
	return func(s *Session) {
		if h != nil {
			s.highScores = h
		}
	}
}

// WithCatalog replaces the embedded shape catalog.
func WithCatalog(c *Catalog) Option {
	return func(s *Session) {
		if c != nil {
			s.catalog = c
		}
	}
}

// Session runs one game: it owns the grid, the tray and the score state.
// It is not safe for concurrent use.
type Session struct {
	rules      Rules
	catalog    *Catalog
	rng        *rand.Rand
	generator  *Generator
	highScores HighScoreStore
	logger     *log.Logger

	grid    *Grid
	pending []Piece
	score   ScoreState
	state   State
}

// NewSession creates a session and deals the first batch.
func NewSession(rules Rules, rng *rand.Rand, opts ...Option) (*Session, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("engine: session needs a random source")
	}

	s := &Session{
		rules:      rules,
		rng:        rng,
		highScores: &MemoryHighScores{},
		logger:     discardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.catalog == nil {
		s.catalog = DefaultCatalog()
	}
	for _, sh := range s.catalog.shapes {
		if sh.Rows() > GridSize || sh.Cols() > GridSize {
			return nil, fmt.Errorf("%w: %q does not fit the grid", ErrMalformedShape, sh.Name())
		}
	}
	s.generator = NewGenerator(s.catalog, rules, rng, s.logger)

	high, err := s.highScores.LoadHighScore()
	if err != nil {
		s.logger.Warn("could not load high score", "error", err)
		high = 0
	}
	s.score = newScoreState(high)

	s.Restart()
	return s, nil
}

// Place attempts to put the piece with the given ID at anchor (x, y).
// A rejected attempt leaves the session unchanged.
func (s *Session) Place(pieceID, x, y int) Result {
	if s.state != StateAwaitingPlacement {
		return s.reject(ReasonWrongState)
	}

	idx := s.pieceIndex(pieceID)
	if idx < 0 {
		return s.reject(ReasonUnknownPiece)
	}
	piece := s.pending[idx]

	if !CanPlace(piece.Shape, x, y, s.grid) {
		return s.reject(ReasonIllegalPlacement)
	}

	s.score.Turn++
	turn := s.score.Turn

	placed := make([]Block, 0, piece.Shape.Area())
	for _, p := range piece.Shape.set {
		bx, by := x+p.X, y+p.Y
		if err := s.grid.Occupy(bx, by, piece.Color, turn); err != nil {
			panic(fmt.Sprintf("blocks: invariant violated after validation: %v", err))
		}
		placed = append(placed, Block{X: bx, Y: by, Color: piece.Color, Turn: turn})
	}
	s.pending = append(s.pending[:idx:idx], s.pending[idx+1:]...)

	ts, lc := resolveTurn(&s.score, s.grid, s.rules, len(placed))

	res := Result{
		Accepted: true,
		Piece:    piece,
		Anchor:   Point{X: x, Y: y},
		Score:    ts,
		Cleared:  lc,
	}

	scoreAfterPlacement := s.score.Score - ts.Lines - ts.GridClear
	res.Events = append(res.Events, s.event(EventPlaced, func(e *Event) {
		e.Delta = ts.Placement
		e.Score = scoreAfterPlacement
		e.Blocks = placed
	}))
	if lc.Lines() > 0 {
		res.Events = append(res.Events, s.event(EventLineCleared, func(e *Event) {
			e.Delta = ts.Lines
			e.Score = scoreAfterPlacement + ts.Lines
			e.Lines = lc.Lines()
			e.Blocks = lc.Blocks
		}))
	}
	if ts.GridClear > 0 {
		res.Events = append(res.Events, s.event(EventGridEmptied, func(e *Event) {
			e.Delta = ts.GridClear
		}))
	}
	if ev, ok := s.recordHighScore(); ok {
		res.Events = append(res.Events, ev)
	}

	switch {
	case len(s.pending) == 0:
		s.state = StateReplenishing
	case !s.anyPendingPlaceable():
		res.Events = append(res.Events, s.endGame("no offered piece fits"))
	}

	res.State = s.state
	return res
}

// Replenish deals a new batch once the tray is empty.
func (s *Session) Replenish() Result {
	if s.state != StateReplenishing {
		return s.reject(ReasonWrongState)
	}

	res := Result{Accepted: true}
	batch, err := s.generator.Generate(s.grid)
	if err != nil {
		s.pending = nil
		res.Events = append(res.Events, s.endGame(err.Error()))
		res.State = s.state
		return res
	}

	s.pending = batch.Pieces
	s.state = StateAwaitingPlacement
	res.Events = append(res.Events, s.event(EventBatchReady, func(e *Event) {
		e.Pieces = s.Pieces()
	}))

	if !s.anyPendingPlaceable() {
		res.Events = append(res.Events, s.endGame("no offered piece fits"))
	}

	res.State = s.state
	return res
}

// Restart clears the board and score (keeping the high score) and deals a new batch.
func (s *Session) Restart() Result {
	s.grid = NewGrid()
	s.pending = nil
	s.score = newScoreState(s.score.HighScore)
	s.state = StateReplenishing

	restart := s.event(EventRestart, nil)
	res := s.Replenish()
	res.Events = append([]Event{restart}, res.Events...)
	return res
}

// CanPlace reports whether the pending piece fits at (x, y) without changing anything.
func (s *Session) CanPlace(pieceID, x, y int) bool {
	idx := s.pieceIndex(pieceID)
	if idx < 0 {
		return false
	}
	return CanPlace(s.pending[idx].Shape, x, y, s.grid)
}

// State returns the current session state.
func (s *Session) State() State { return s.state }

// Grid returns a snapshot of the board.
func (s *Session) Grid() *Grid { return s.grid.Clone() }

// Score returns the current score state.
func (s *Session) Score() ScoreState { return s.score }

// Rules returns the rules the session was created with.
func (s *Session) Rules() Rules { return s.rules }

// Catalog returns the shape catalog in use.
func (s *Session) Catalog() *Catalog { return s.catalog }

// Pieces returns the pieces still on offer, in tray order.
func (s *Session) Pieces() []Piece {
	out := make([]Piece, len(s.pending))
	copy(out, s.pending)
	return out
}

// Piece returns the pending piece with the given ID.
func (s *Session) Piece(id int) (Piece, bool) {
	if idx := s.pieceIndex(id); idx >= 0 {
		return s.pending[idx], true
	}
	return Piece{}, false
}

func (s *Session) pieceIndex(id int) int {
	for i, p := range s.pending {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) anyPendingPlaceable() bool {
	for _, p := range s.pending {
		if HasAnyValidPlacement(p.Shape, s.grid) {
			return true
		}
	}
	return false
}

// recordHighScore updates and persists the high score if it was beaten.
func (s *Session) recordHighScore() (Event, bool) {
	if s.score.Score <= s.score.HighScore {
		return Event{}, false
	}
	s.score.HighScore = s.score.Score
	if err := s.highScores.SaveHighScore(s.score.HighScore); err != nil {
		s.logger.Warn("could not save high score", "score", s.score.HighScore, "error", err)
	}
	return s.event(EventHighScore, nil), true
}

func (s *Session) endGame(reason string) Event {
	s.state = StateGameOver
	s.logger.Debug("game over", "reason", reason, "score", s.score.Score, "turn", s.score.Turn)
	return s.event(EventGameOver, func(e *Event) {
		e.Reason = reason
	})
}

func (s *Session) reject(reason RejectReason) Result {
	return Result{Reason: reason, State: s.state}
}

// event builds an event stamped with the current score state.
func (s *Session) event(kind EventKind, fill func(*Event)) Event {
	e := Event{
		Kind:      kind,
		Turn:      s.score.Turn,
		Score:     s.score.Score,
		Combo:     s.score.Combo,
		HighScore: s.score.HighScore,
	}
	if fill != nil {
		fill(&e)
	}
	return e
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
