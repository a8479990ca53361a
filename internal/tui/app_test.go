package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/skillgap/internal/logbook"
	"github.com/kingrea/skillgap/internal/roles"
	"github.com/kingrea/skillgap/internal/sequencer"
	"github.com/kingrea/skillgap/internal/session"
)

// scheduled records what App asked tea.Tick to deliver.
type scheduled struct {
	delay time.Duration
	msg   tea.Msg
}

type tickRecorder struct {
	pending []scheduled
}

func (r *tickRecorder) tick(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	r.pending = append(r.pending, scheduled{delay: d, msg: fn(time.Time{})})
	return func() tea.Msg { return nil }
}

// pop removes the oldest scheduled message.
func (r *tickRecorder) pop(t *testing.T) scheduled {
	t.Helper()
	if len(r.pending) == 0 {
		t.Fatalf("expected a scheduled event")
	}
	next := r.pending[0]
	r.pending = r.pending[1:]
	return next
}

func newTestApp(t *testing.T, opts ...session.Option) (*App, *tickRecorder, *sequencer.ManualClock) {
	t.Helper()
	clock := sequencer.NewManualClock(time.Unix(0, 0))
	sess := session.New(append([]session.Option{session.WithClock(clock)}, opts...)...)
	rec := &tickRecorder{}
	app := NewApp(sess, WithTicker(rec.tick))
	app.Update(tea.WindowSizeMsg{Width: 200, Height: 60})
	return app, rec, clock
}

func press(app *App, key string) tea.Cmd {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	_, cmd := app.Update(msg)
	return cmd
}

func paste(app *App, text string) {
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text), Paste: true})
}

// deliverAll fires scheduled events in order, advancing the clock by each
// requested delay, until nothing is pending.
func deliverAll(t *testing.T, app *App, rec *tickRecorder, clock *sequencer.ManualClock) {
	t.Helper()
	for len(rec.pending) > 0 {
		next := rec.pop(t)
		clock.Advance(next.delay)
		app.Update(next.msg)
	}
}

func TestStartDisabledWithoutFile(t *testing.T) {
	app, rec, _ := newTestApp(t)
	if cmd := press(app, "g"); cmd != nil {
		t.Fatalf("start without a file must not schedule anything")
	}
	if len(rec.pending) != 0 {
		t.Fatalf("unexpected scheduled events: %d", len(rec.pending))
	}
	if got := app.session.ProgressPercent(); got != 0 {
		t.Fatalf("progress should stay 0, got %d", got)
	}
	if !strings.Contains(app.View(), "Upload your CV to unlock the roadmap.") {
		t.Fatalf("view should prompt for an upload")
	}
}

func TestPasteAttachesFile(t *testing.T) {
	app, _, _ := newTestApp(t)
	paste(app, "'/home/me/cv final.pdf'")
	sel := app.session.Selection()
	if sel.File == nil || sel.File.Name != "cv final.pdf" {
		t.Fatalf("expected cv final.pdf attached, got %+v", sel.File)
	}
	if !strings.Contains(app.View(), "cv final.pdf") {
		t.Fatalf("view should show the attached file name")
	}
}

func TestUploadFocusTogglesDragAndAttachesOnEnter(t *testing.T) {
	app, _, _ := newTestApp(t)
	press(app, "tab")
	if app.focus != focusUpload || !app.session.Selection().DragActive {
		t.Fatalf("tab should focus upload and highlight the drop zone")
	}
	app.upload.SetValue("docs/resume.docx")
	press(app, "enter")
	if app.focus != focusRoles {
		t.Fatalf("enter should return focus to roles")
	}
	if app.session.Selection().DragActive {
		t.Fatalf("drop zone highlight should clear when focus leaves")
	}
	if f := app.session.Selection().File; f == nil || f.Name != "resume.docx" {
		t.Fatalf("expected resume.docx, got %+v", f)
	}
}

func TestUploadEscKeepsPreviousFile(t *testing.T) {
	app, _, _ := newTestApp(t)
	paste(app, "cv.pdf")
	press(app, "tab")
	press(app, "esc")
	if f := app.session.Selection().File; f == nil || f.Name != "cv.pdf" {
		t.Fatalf("esc must keep the previous file, got %+v", f)
	}
}

func TestFullRunThroughUpdate(t *testing.T) {
	app, rec, clock := newTestApp(t)
	paste(app, "cv.pdf")
	if cmd := press(app, "enter"); cmd == nil {
		t.Fatalf("start should return commands")
	}
	if len(rec.pending) != 1 || rec.pending[0].delay != 0 {
		t.Fatalf("first step should be scheduled immediately, got %+v", rec.pending)
	}
	view := app.View()
	if !strings.Contains(view, "Crunching data...") {
		t.Fatalf("running label missing from view")
	}
	deliverAll(t, app, rec, clock)

	snap := app.session.Snapshot()
	if !snap.ResultReady || snap.Running {
		t.Fatalf("expected completed run, got %+v", snap)
	}
	if len(snap.Emitted) != sequencer.StepCount() {
		t.Fatalf("expected %d log lines, got %d", sequencer.StepCount(), len(snap.Emitted))
	}
	view = app.View()
	for _, want := range []string{
		"Analysis complete - personalized insights ready below.",
		"Your Skill Gap Dashboard",
		"Readiness",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestReattachDropsPendingTick(t *testing.T) {
	app, rec, clock := newTestApp(t)
	paste(app, "cv.pdf")
	press(app, "g")
	first := rec.pop(t)
	app.Update(first.msg)
	stale := rec.pop(t)

	paste(app, "other.pdf")
	clock.Advance(stale.delay)
	app.Update(stale.msg)

	snap := app.session.Snapshot()
	if snap.Started || snap.Running || len(snap.Emitted) != 0 {
		t.Fatalf("stale tick must not touch the reset run: %+v", snap)
	}
	if len(rec.pending) != 0 {
		t.Fatalf("stale tick must not schedule a follow-up")
	}
}

func TestRoleKeysSwitchProfile(t *testing.T) {
	app, _, _ := newTestApp(t)
	press(app, "2")
	if got := app.session.Selection().Role; got != roles.Frontend {
		t.Fatalf("expected frontend, got %s", got)
	}
	if app.roleList.Index() != 1 {
		t.Fatalf("list cursor should follow the selection")
	}
	press(app, "down")
	if got := app.session.Selection().Role; got != roles.ML {
		t.Fatalf("expected ml after moving down, got %s", got)
	}
	if !strings.Contains(app.View(), "Ready for "+roles.Lookup(roles.ML).Label+"?") {
		t.Fatalf("start panel should name the selected role")
	}
}

func TestWithRoleSelectsInitialProfile(t *testing.T) {
	app, _, _ := newTestApp(t, session.WithRole(roles.ML))
	if app.roleList.Index() != 2 {
		t.Fatalf("expected list cursor on ml, got %d", app.roleList.Index())
	}
}

func TestJournalPanelShowsActivity(t *testing.T) {
	lb, err := logbook.New(filepath.Join(t.TempDir(), "logs", "session.log"))
	if err != nil {
		t.Fatalf("logbook: %v", err)
	}
	clock := sequencer.NewManualClock(time.Unix(0, 0))
	sess := session.New(session.WithClock(clock), session.WithObserver(Journal(lb)))
	rec := &tickRecorder{}
	app := NewApp(sess, WithLogbook(lb), WithTicker(rec.tick))

	press(app, "g")
	paste(app, "cv.pdf")
	press(app, "L")

	lines, total := lb.Tail(10)
	if total != 2 {
		t.Fatalf("expected 2 journal lines, got %d: %v", total, lines)
	}
	if !strings.Contains(lines[0], "WARN") || !strings.Contains(lines[0], string(session.IgnoredNoFile)) {
		t.Fatalf("first line should record the ignored start: %q", lines[0])
	}
	if !strings.Contains(lines[1], "cv attached: cv.pdf") {
		t.Fatalf("second line should record the attach: %q", lines[1])
	}
	if !strings.Contains(app.View(), "session.log (2 entries)") {
		t.Fatalf("log panel should show the journal tail")
	}
}

func TestRenderDashboardListsProfile(t *testing.T) {
	profile := roles.Lookup(roles.Frontend)
	out := renderDashboard(profile, 160)
	for _, want := range []string{
		profile.Label,
		profile.Skills.Missing[0],
		profile.Roadmap[0].Window,
		profile.Projects[len(profile.Projects)-1].Title,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("dashboard missing %q", want)
		}
	}
}

func TestRenderHidesRunLogBeforeStart(t *testing.T) {
	vm := viewModel{width: 160, profile: roles.Lookup(roles.Backend), startLabel: "Generate roadmap"}
	if strings.Contains(render(vm), "AI Skill Gap Engine") {
		t.Fatalf("run log should stay hidden until a run starts")
	}
	vm.snapshot = sequencer.Snapshot{Started: true, Running: true, Emitted: []string{"Parsing CV"}}
	out := render(vm)
	if !strings.Contains(out, "> Parsing CV") || !strings.Contains(out, "Crunching more signals...") {
		t.Fatalf("run log should list emitted steps while running:\n%s", out)
	}
}
