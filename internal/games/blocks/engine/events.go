package engine

// EventKind identifies what happened during a session transition.
type EventKind int

const (
	EventPlaced EventKind = iota
	EventLineCleared
	EventGridEmptied
	EventHighScore
	EventBatchReady
	EventGameOver
	EventRestart
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventPlaced:
		return "placed"
	case EventLineCleared:
		return "line_cleared"
	case EventGridEmptied:
		return "grid_emptied"
	case EventHighScore:
		return "high_score"
	case EventBatchReady:
		return "batch_ready"
	case EventGameOver:
		return "game_over"
	case EventRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Event is a notification for renderers and other collaborators.
// Score, Combo and HighScore are the values after the event.
type Event struct {
	Kind      EventKind
	Turn      int
	Delta     int // Points this event added
	Score     int
	Combo     int
	HighScore int
	Lines     int     // EventLineCleared
	Blocks    []Block // EventPlaced: placed cells; EventLineCleared: cleared cells
	Pieces    []Piece // EventBatchReady
	Reason    string  // EventGameOver
}

// Cue names a sound for the audio collaborator.
type Cue string

const (
	CuePlaced      Cue = "placed"
	CueLineCleared Cue = "lineCleared"
	CueGridEmptied Cue = "gridEmptied"
	CueGameOver    Cue = "gameOver"
)

// Cue returns the sound cue for the event, if it has one.
func (e Event) Cue() (Cue, bool) {
	switch e.Kind {
	case EventPlaced:
		return CuePlaced, true
	case EventLineCleared:
		return CueLineCleared, true
	case EventGridEmptied:
		return CueGridEmptied, true
	case EventGameOver:
		return CueGameOver, true
	default:
		return "", false
	}
}
