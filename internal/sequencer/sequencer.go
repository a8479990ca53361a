package sequencer

import (
	"strconv"
	"time"
)

// Step is one scripted progress notification.
type Step struct {
	Headline string
	Detail   string
}

var steps = [...]Step{
	{
		Headline: "Analyzing your CV...",
		Detail:   "Extracting skills, keywords, internships, and impact statements.",
	},
	{
		Headline: "Comparing with industry skills...",
		Detail:   "Matching your profile against internship-ready skill matrices.",
	},
	{
		Headline: "Generating your personalized roadmap...",
		Detail:   "Designing 30/60/90 day plan, projects, and talking points.",
	},
}

const (
	// StepInterval separates consecutive steps, measured from run start.
	StepInterval = 1500 * time.Millisecond
	// SettleDelay separates the last step from the completion event.
	SettleDelay = 900 * time.Millisecond
)

// Steps returns the fixed step list.
func Steps() []Step {
	out := make([]Step, len(steps))
	copy(out, steps[:])
	return out
}

// StepCount is the number of steps in every run.
func StepCount() int { return len(steps) }

// Phase is the coarse lifecycle position of the sequencer.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// RunID is the cancellation token of one run. Every Start and Reset issues a
// new token, so events carrying an older one are dropped.
type RunID uint64

// Event is a scheduled timeline entry. Index 0..StepCount()-1 are steps;
// Index == StepCount() is the completion event.
type Event struct {
	Run   RunID
	Index int
	At    time.Duration
}

// Terminal reports whether the event completes the run.
func (e Event) Terminal() bool {
	return e.Index == len(steps)
}

// Timeline lists every event offset of a run, in firing order.
func Timeline() []Event {
	events := make([]Event, 0, len(steps)+1)
	for i := 0; i <= len(steps); i++ {
		events = append(events, Event{Index: i, At: offset(i)})
	}
	return events
}

func offset(index int) time.Duration {
	if index >= len(steps) {
		return time.Duration(len(steps)-1)*StepInterval + SettleDelay
	}
	return time.Duration(index) * StepInterval
}

// Snapshot is a read-only copy of the sequencer state.
type Snapshot struct {
	Run         RunID
	Started     bool
	Running     bool
	Emitted     []string
	Detail      string
	ResultReady bool
}

// Sequencer plays the scripted step timeline. It does not own timers: Start
// and Fire hand back the next Event, and the caller delivers it after
// Delay(event). Callers must serialize calls; the type is not goroutine safe.
type Sequencer struct {
	clock    Clock
	observer Observer

	run       RunID
	startedAt time.Time
	next      int

	started     bool
	running     bool
	emitted     []string
	detail      string
	resultReady bool
}

// Option customizes a Sequencer.
type Option func(*Sequencer)

// WithClock overrides the monotonic clock used to compute delays.
func WithClock(clock Clock) Option {
	return func(s *Sequencer) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithObserver registers a hook that receives a Notice for every transition
// and every ignored request.
func WithObserver(observer Observer) Option {
	return func(s *Sequencer) {
		s.observer = observer
	}
}

// New returns an idle sequencer.
func New(opts ...Option) *Sequencer {
	s := &Sequencer{
		clock:  SystemClock{},
		detail: steps[0].Detail,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Start begins a new run and returns its first event. It is a no-op while a
// run is in flight.
func (s *Sequencer) Start() (Event, bool) {
	if s.running {
		s.notify(Notice{Kind: NoticeIgnoredStart, Run: s.run, Reason: "run already in progress"})
		return Event{}, false
	}
	s.run++
	s.startedAt = s.clock.Now()
	s.next = 0
	s.started = true
	s.running = true
	s.emitted = nil
	s.resultReady = false
	s.notify(Notice{Kind: NoticeStarted, Run: s.run})
	return s.event(0), true
}

// Fire applies ev if it belongs to the current run and is the next expected
// event. It returns the event that follows, if any. Stale or out-of-order
// events leave the state untouched.
func (s *Sequencer) Fire(ev Event) (Event, bool) {
	if ev.Run != s.run || !s.running {
		s.notify(Notice{Kind: NoticeStale, Run: ev.Run, Index: ev.Index, Reason: "run was reset"})
		return Event{}, false
	}
	if ev.Index != s.next {
		s.notify(Notice{Kind: NoticeOutOfOrder, Run: ev.Run, Index: ev.Index, Reason: "expected event " + strconv.Itoa(s.next)})
		return Event{}, false
	}
	s.next++
	if ev.Terminal() {
		s.running = false
		s.resultReady = true
		s.notify(Notice{Kind: NoticeCompleted, Run: ev.Run, Index: ev.Index})
		return Event{}, false
	}
	step := steps[ev.Index]
	s.emitted = append(s.emitted, step.Headline)
	s.detail = step.Detail
	s.notify(Notice{Kind: NoticeStep, Run: ev.Run, Index: ev.Index, Headline: step.Headline})
	return s.event(s.next), true
}

// Delay returns how long to wait before delivering ev, measured against the
// run's monotonic start so jitter in earlier deliveries does not accumulate.
func (s *Sequencer) Delay(ev Event) time.Duration {
	if ev.Run != s.run {
		return 0
	}
	wait := ev.At - s.clock.Now().Sub(s.startedAt)
	if wait < 0 {
		return 0
	}
	return wait
}

// Reset abandons any run in flight and returns to idle.
func (s *Sequencer) Reset() {
	s.run++
	s.next = 0
	s.started = false
	s.running = false
	s.emitted = nil
	s.detail = steps[0].Detail
	s.resultReady = false
	s.notify(Notice{Kind: NoticeReset, Run: s.run})
}

// ClearResult hides a finished result without touching the step log.
func (s *Sequencer) ClearResult() {
	s.resultReady = false
}

// Phase derives the lifecycle position from the current flags.
func (s *Sequencer) Phase() Phase {
	switch {
	case s.running:
		return PhaseRunning
	case s.started:
		return PhaseCompleted
	default:
		return PhaseIdle
	}
}

// Running reports whether a run is in flight.
func (s *Sequencer) Running() bool { return s.running }

// Snapshot copies the current state.
func (s *Sequencer) Snapshot() Snapshot {
	var emitted []string
	if len(s.emitted) > 0 {
		emitted = make([]string, len(s.emitted))
		copy(emitted, s.emitted)
	}
	return Snapshot{
		Run:         s.run,
		Started:     s.started,
		Running:     s.running,
		Emitted:     emitted,
		Detail:      s.detail,
		ResultReady: s.resultReady,
	}
}

func (s *Sequencer) event(index int) Event {
	return Event{Run: s.run, Index: index, At: offset(index)}
}

func (s *Sequencer) notify(n Notice) {
	if s.observer != nil {
		s.observer(n)
	}
}
