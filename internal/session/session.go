// internal/session/session.go
//
// Session is the state of one analyzer view: the chosen role, the attached
// CV reference, and the progress sequencer. Every gesture from the view lands
// here. Invalid or premature gestures are silent no-ops; they are only
// reported to the optional observer.

package session

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/kingrea/skillgap/internal/roles"
	"github.com/kingrea/skillgap/internal/sequencer"
)

// FileRef identifies an attached CV. The file is never opened.
type FileRef struct {
	Name string
	Path string
}

// NewFileRef builds a reference from a path typed or dropped into the view.
// Surrounding quotes (added by some terminals on drop) are stripped. It
// returns nil for a blank path, which callers treat as a cancelled pick.
func NewFileRef(path string) *FileRef {
	cleaned := strings.TrimSpace(path)
	cleaned = strings.Trim(cleaned, `"'`)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return nil
	}
	name := filepath.Base(cleaned)
	if name == "." || name == string(filepath.Separator) {
		return nil
	}
	return &FileRef{Name: name, Path: cleaned}
}

// Selection is the user's current choice.
type Selection struct {
	Role       roles.Key
	File       *FileRef
	DragActive bool
}

// IgnoredReason names a gesture that was absorbed without effect.
type IgnoredReason string

const (
	IgnoredNoFile      IgnoredReason = "no file attached"
	IgnoredRunning     IgnoredReason = "analysis already running"
	IgnoredEmptyAttach IgnoredReason = "file selection cancelled"
	IgnoredStaleTimer  IgnoredReason = "stale timer"
	IgnoredOutOfOrder  IgnoredReason = "out of order timer"
)

// ActivityKind classifies an Activity.
type ActivityKind string

const (
	ActivityRole     ActivityKind = "role"
	ActivityAttach   ActivityKind = "attach"
	ActivityStart    ActivityKind = "start"
	ActivityStep     ActivityKind = "step"
	ActivityComplete ActivityKind = "complete"
	ActivityIgnored  ActivityKind = "ignored"
)

// Activity is what the observer hook receives. Role and File always reflect
// the selection at the time of the activity.
type Activity struct {
	Kind   ActivityKind
	Role   roles.Key
	File   string
	Detail string
	Reason IgnoredReason
}

// Observer is notified synchronously after every gesture.
type Observer func(Activity)

// Option customizes a Session.
type Option func(*Session)

// WithRole overrides the initially selected role.
func WithRole(key roles.Key) Option {
	return func(s *Session) { s.selection.Role = key }
}

// WithClock passes a clock through to the sequencer.
func WithClock(clock sequencer.Clock) Option {
	return func(s *Session) { s.clock = clock }
}

// WithObserver registers the observability hook.
func WithObserver(observer Observer) Option {
	return func(s *Session) { s.observer = observer }
}

// Session owns the selection and the sequencer for one view.
type Session struct {
	selection Selection
	seq       *sequencer.Sequencer
	clock     sequencer.Clock
	observer  Observer
}

// New creates a session with the first role selected and no file attached.
func New(opts ...Option) *Session {
	s := &Session{selection: Selection{Role: roles.Keys()[0]}}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	seqOpts := []sequencer.Option{sequencer.WithObserver(s.onSequencerNotice)}
	if s.clock != nil {
		seqOpts = append(seqOpts, sequencer.WithClock(s.clock))
	}
	s.seq = sequencer.New(seqOpts...)
	return s
}

// Selection returns a copy of the current selection.
func (s *Session) Selection() Selection {
	sel := s.selection
	if sel.File != nil {
		file := *sel.File
		sel.File = &file
	}
	return sel
}

// Sequencer exposes the underlying sequencer for delay computation.
func (s *Session) Sequencer() *sequencer.Sequencer {
	return s.seq
}

// SelectRole switches the active profile and hides any finished result. The
// attached file and any run in flight are kept.
func (s *Session) SelectRole(key roles.Key) {
	s.selection.Role = key
	s.seq.ClearResult()
	s.emit(Activity{Kind: ActivityRole})
}

// AttachFile replaces the attached file and resets the sequencer, cancelling
// any run in flight. A nil file is ignored.
func (s *Session) AttachFile(file *FileRef) {
	if file == nil || strings.TrimSpace(file.Name) == "" {
		s.emit(Activity{Kind: ActivityIgnored, Reason: IgnoredEmptyAttach})
		return
	}
	attached := *file
	s.selection.File = &attached
	s.seq.Reset()
	s.emit(Activity{Kind: ActivityAttach})
}

// SetDragActive toggles the drop-zone highlight.
func (s *Session) SetDragActive(active bool) {
	s.selection.DragActive = active
}

// CanStart reports whether the start control is enabled.
func (s *Session) CanStart() bool {
	return s.selection.File != nil && !s.seq.Running()
}

// Start begins a run if a file is attached and no run is in flight. The
// returned event must be delivered back through Fire after Delay(event).
func (s *Session) Start() (sequencer.Event, bool) {
	if s.selection.File == nil {
		s.emit(Activity{Kind: ActivityIgnored, Reason: IgnoredNoFile})
		return sequencer.Event{}, false
	}
	if s.seq.Running() {
		s.emit(Activity{Kind: ActivityIgnored, Reason: IgnoredRunning})
		return sequencer.Event{}, false
	}
	return s.seq.Start()
}

// Fire delivers a scheduled event and returns the next one, if any.
func (s *Session) Fire(ev sequencer.Event) (sequencer.Event, bool) {
	return s.seq.Fire(ev)
}

// Delay is the wait before ev should be delivered.
func (s *Session) Delay(ev sequencer.Event) time.Duration {
	return s.seq.Delay(ev)
}

func (s *Session) onSequencerNotice(n sequencer.Notice) {
	switch n.Kind {
	case sequencer.NoticeStarted:
		s.emit(Activity{Kind: ActivityStart})
	case sequencer.NoticeStep:
		s.emit(Activity{Kind: ActivityStep, Detail: n.Headline})
	case sequencer.NoticeCompleted:
		s.emit(Activity{Kind: ActivityComplete, Detail: roles.Lookup(s.selection.Role).Label})
	case sequencer.NoticeStale:
		s.emit(Activity{Kind: ActivityIgnored, Reason: IgnoredStaleTimer})
	case sequencer.NoticeOutOfOrder:
		s.emit(Activity{Kind: ActivityIgnored, Reason: IgnoredOutOfOrder})
	case sequencer.NoticeIgnoredStart:
		// Start already checked Running; nothing new to report.
	case sequencer.NoticeReset:
		// AttachFile reports the reset as an attach.
	}
}

func (s *Session) fileName() string {
	if s.selection.File == nil {
		return ""
	}
	return s.selection.File.Name
}

func (s *Session) emit(activity Activity) {
	if s.observer == nil {
		return
	}
	activity.Role = s.selection.Role
	activity.File = s.fileName()
	s.observer(activity)
}
