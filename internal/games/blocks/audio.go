package blocks

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockmaster/internal/games/blocks/engine"
)

// Audio receives sound cues. Terminals have no mixer, so the default sink
// only logs the cue; a frontend with sound can attach its own.
type Audio interface {
	Play(cue engine.Cue)
}

// logAudio writes cues to the debug log.
type logAudio struct {
	logger *log.Logger
}

func (a logAudio) Play(cue engine.Cue) {
	a.logger.Debug("audio cue", "cue", cue)
}
