// internal/tui/app.go
//
// This is the terminal view of the skill gap analyzer. It uses bubbletea,
// which follows The Elm Architecture:
//
// 1. Model: App, which holds the widgets and a *session.Session
// 2. Update: gestures become Session calls; sequencer events arrive as ticks
// 3. View: App assembles a viewModel and render turns it into a string
//
// Bubbletea delivers key presses and timer ticks through Update one at a
// time, so the session never sees concurrent calls.

package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/skillgap/internal/config"
	"github.com/kingrea/skillgap/internal/logbook"
	"github.com/kingrea/skillgap/internal/roles"
	"github.com/kingrea/skillgap/internal/sequencer"
	"github.com/kingrea/skillgap/internal/session"
)

const journalTailLines = 6

// focusArea is which panel receives key presses.
type focusArea int

const (
	focusRoles focusArea = iota
	focusUpload
	focusDashboard
)

// sequenceMsg carries a scheduled sequencer event back into Update.
type sequenceMsg struct {
	event sequencer.Event
}

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithConfig supplies display and upload settings.
func WithConfig(cfg *config.Config) AppOption {
	return func(a *App) {
		if cfg != nil {
			a.config = cfg
		}
	}
}

// WithLogbook enables the journal panel.
func WithLogbook(lb *logbook.Logbook) AppOption {
	return func(a *App) { a.logbook = lb }
}

// WithTicker replaces tea.Tick, letting tests capture scheduled events.
func WithTicker(tick func(time.Duration, func(time.Time) tea.Msg) tea.Cmd) AppOption {
	return func(a *App) {
		if tick != nil {
			a.tick = tick
		}
	}
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	session *session.Session
	config  *config.Config
	logbook *logbook.Logbook
	tick    func(time.Duration, func(time.Time) tea.Msg) tea.Cmd

	// UI components
	roleList  list.Model
	upload    textinput.Model
	progress  progress.Model
	spinner   spinner.Model
	dashboard viewport.Model

	focus     focusArea
	showLog   bool
	statusMsg string

	// Window size (we get this from bubbletea)
	width  int
	height int
}

// roleItem implements list.Item for the role picker.
type roleItem struct {
	profile roles.Profile
}

func (i roleItem) Title() string { return i.profile.Label }
func (i roleItem) Description() string {
	return fmt.Sprintf("%s  %s", i.profile.Headline, strings.Join(firstN(i.profile.Stack, 2), " | "))
}
func (i roleItem) FilterValue() string { return i.profile.Key.String() }

// NewApp creates the view around an existing session.
func NewApp(sess *session.Session, opts ...AppOption) *App {
	if sess == nil {
		sess = session.New()
	}
	items := make([]list.Item, 0, len(roles.Keys()))
	for _, profile := range roles.All() {
		items = append(items, roleItem{profile: profile})
	}
	roleList := list.New(items, list.NewDefaultDelegate(), 40, len(items)*3+2)
	roleList.Title = "Target role"
	roleList.SetShowStatusBar(false)
	roleList.SetFilteringEnabled(false)
	roleList.SetShowHelp(false)
	roleList.SetShowPagination(false)

	upload := textinput.New()
	upload.Placeholder = "path/to/resume.pdf"
	upload.Prompt = "› "
	upload.CharLimit = 4096

	app := &App{
		session:   sess,
		tick:      tea.Tick,
		roleList:  roleList,
		upload:    upload,
		progress:  progress.New(progress.WithDefaultGradient(), progress.WithWidth(40), progress.WithoutPercentage()),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		dashboard: viewport.New(80, 20),
		focus:     focusRoles,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	if app.config == nil {
		app.config = config.Default(".")
	}
	app.showLog = app.config.Project.Display.LogPanel
	app.syncRoleCursor()
	app.refreshDashboard()
	return app
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case sequenceMsg:
		next, ok := a.session.Fire(msg.event)
		a.refreshDashboard()
		if ok {
			return a, a.schedule(next)
		}
		return a, nil

	case spinner.TickMsg:
		if !a.session.Sequencer().Running() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if a.focus == focusUpload {
		return a.handleUploadKey(msg)
	}
	if msg.Paste {
		// Terminals deliver a dropped file as a bracketed paste of its path.
		a.attach(string(msg.Runes))
		return a, nil
	}
	switch key {
	case "q":
		return a, tea.Quit
	case "tab":
		a.setFocus(a.focus + 1)
		return a, nil
	case "shift+tab":
		a.setFocus(a.focus + 2)
		return a, nil
	case "enter", "g":
		return a, a.start()
	case "L":
		a.showLog = !a.showLog
		return a, nil
	case "1", "2", "3":
		idx := int(key[0] - '1')
		a.selectRole(roles.Keys()[idx])
		return a, nil
	}
	switch a.focus {
	case focusRoles:
		switch key {
		case "up", "k":
			a.roleList.CursorUp()
			a.selectRole(roles.Keys()[a.roleList.Index()])
		case "down", "j":
			a.roleList.CursorDown()
			a.selectRole(roles.Keys()[a.roleList.Index()])
		}
	case focusDashboard:
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleUploadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.attach(a.upload.Value())
		a.setFocus(focusRoles)
		return a, nil
	case "esc":
		// Closing the picker without a choice leaves the previous file.
		a.session.AttachFile(nil)
		a.setFocus(focusRoles)
		return a, nil
	case "tab":
		a.setFocus(focusDashboard)
		return a, nil
	case "shift+tab":
		a.setFocus(focusRoles)
		return a, nil
	}
	var cmd tea.Cmd
	a.upload, cmd = a.upload.Update(msg)
	return a, cmd
}

func (a *App) attach(path string) {
	ref := session.NewFileRef(path)
	a.session.AttachFile(ref)
	a.upload.SetValue("")
	if ref != nil {
		a.statusMsg = fmt.Sprintf("Attached %s", ref.Name)
	}
	a.refreshDashboard()
}

func (a *App) selectRole(key roles.Key) {
	a.session.SelectRole(key)
	a.syncRoleCursor()
	a.refreshDashboard()
}

// start launches a run. Without a file, or while running, the control is
// disabled and the key press does nothing.
func (a *App) start() tea.Cmd {
	ev, ok := a.session.Start()
	if !ok {
		return nil
	}
	a.statusMsg = ""
	a.refreshDashboard()
	return tea.Batch(a.schedule(ev), a.spinner.Tick)
}

func (a *App) schedule(ev sequencer.Event) tea.Cmd {
	return a.tick(a.session.Delay(ev), func(time.Time) tea.Msg {
		return sequenceMsg{event: ev}
	})
}

func (a *App) setFocus(area focusArea) {
	a.focus = area % 3
	if a.focus == focusUpload {
		a.upload.Focus()
		a.session.SetDragActive(true)
		return
	}
	a.upload.Blur()
	a.session.SetDragActive(false)
}

func (a *App) syncRoleCursor() {
	selected := a.session.Selection().Role
	for i, key := range roles.Keys() {
		if key == selected {
			a.roleList.Select(i)
			return
		}
	}
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height
	half := max(30, width/2-6)
	a.roleList.SetSize(half, len(roles.Keys())*3+2)
	a.upload.Width = max(10, half-6)
	a.progress.Width = max(10, width-half-14)
	a.dashboard.Width = max(20, width)
	a.dashboard.Height = max(8, height/2)
	a.refreshDashboard()
}

func (a *App) refreshDashboard() {
	if !a.session.Snapshot().ResultReady {
		a.dashboard.SetContent("")
		return
	}
	a.dashboard.SetContent(renderDashboard(a.session.ActiveProfile(), a.dashboard.Width))
}

// View renders the current state to a string.
func (a *App) View() string {
	return render(a.viewModel())
}

func (a *App) viewModel() viewModel {
	sel := a.session.Selection()
	snap := a.session.Snapshot()
	vm := viewModel{
		width:       a.width,
		showHero:    a.config.Project.Display.ShowHero,
		focus:       a.focus,
		profile:     a.session.ActiveProfile(),
		dragActive:  sel.DragActive,
		acceptHint:  a.config.AcceptHint(),
		snapshot:    snap,
		percent:     a.session.ProgressPercent(),
		statusLine:  a.session.StatusLine(),
		startLabel:  a.session.StartLabel(),
		canStart:    a.session.CanStart(),
		uploadInput: a.upload.View(),
		roleList:    a.roleList.View(),
		spinner:     a.spinner.View(),
		statusMsg:   a.statusMsg,
	}
	if sel.File != nil {
		vm.fileName = sel.File.Name
	}
	vm.progressBar = fmt.Sprintf("%s %3d%%", a.progress.ViewAs(float64(vm.percent)/100), vm.percent)
	if snap.ResultReady {
		vm.dashboard = focusedOrPlain(a.focus == focusDashboard).Render(a.dashboard.View())
	}
	if a.showLog && a.logbook != nil {
		vm.journal, vm.journalTotal = a.logbook.Tail(journalTailLines)
		vm.journalName = filepath.Base(a.logbook.Path())
	}
	return vm
}

func focusedOrPlain(focused bool) lipgloss.Style {
	if focused {
		return focusedPanelStyle
	}
	return panelStyle
}
