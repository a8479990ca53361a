package session

import (
	"math"

	"github.com/kingrea/skillgap/internal/roles"
	"github.com/kingrea/skillgap/internal/sequencer"
)

const (
	statusIdle     = "Takes ~5 seconds. No waiting for emails."
	statusComplete = "Analysis complete - personalized insights ready below."
)

// ProgressPercent is 0 before the first run, 100 once the result is ready,
// and otherwise the rounded share of steps emitted so far.
func (s *Session) ProgressPercent() int {
	return Percent(s.seq.Snapshot())
}

// Percent computes the progress percentage for a sequencer snapshot.
func Percent(snap sequencer.Snapshot) int {
	if !snap.Started {
		return 0
	}
	total := sequencer.StepCount()
	completed := len(snap.Emitted)
	if snap.ResultReady {
		completed = total
	}
	pct := int(math.Round(100 * float64(completed) / float64(total)))
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	default:
		return pct
	}
}

// ActiveProfile is the fixture profile of the selected role.
func (s *Session) ActiveProfile() roles.Profile {
	return roles.Lookup(s.selection.Role)
}

// Snapshot is the sequencer state as the view should render it.
func (s *Session) Snapshot() sequencer.Snapshot {
	return s.seq.Snapshot()
}

// StatusLine is the hint shown under the start control.
func (s *Session) StatusLine() string {
	snap := s.seq.Snapshot()
	switch {
	case !snap.Started:
		return statusIdle
	case snap.ResultReady:
		return statusComplete
	default:
		return snap.Detail
	}
}

// StartLabel is the caption of the start control.
func (s *Session) StartLabel() string {
	if s.seq.Running() {
		return "Crunching data..."
	}
	return "Generate roadmap"
}
