package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/skillgap/internal/roles"
	"github.com/kingrea/skillgap/internal/sequencer"
)

// viewModel is everything the screen shows. It is assembled by App.View and
// rendered by render without touching App or Session.
type viewModel struct {
	width      int
	showHero   bool
	focus      focusArea
	profile    roles.Profile
	fileName   string
	dragActive bool
	acceptHint string
	snapshot   sequencer.Snapshot
	percent    int
	statusLine string
	startLabel string
	canStart   bool

	// Pre-rendered widget views.
	uploadInput string
	roleList    string
	progressBar string
	spinner     string
	dashboard   string

	journal      []string
	journalTotal int
	journalName  string
	statusMsg    string
}

func render(vm viewModel) string {
	width := vm.width
	if width <= 0 {
		width = 100
	}
	sections := []string{renderHeader()}
	if vm.showHero {
		sections = append(sections, renderHero(width))
	}
	sections = append(sections, renderAnalysis(vm, width))
	if vm.dashboard != "" {
		sections = append(sections, vm.dashboard)
	} else {
		sections = append(sections, mutedStyle.Render(
			fmt.Sprintf("Your Skill Gap Dashboard for %s appears here once the analysis completes.", vm.profile.Label)))
	}
	if journal := renderJournal(vm); journal != "" {
		sections = append(sections, journal)
	}
	sections = append(sections, renderFooter(vm))
	return strings.Join(sections, "\n")
}

func renderHeader() string {
	title := titleStyle.Render("✦ Internship & Skill Gap Analyzer")
	tagline := mutedStyle.Render("Built for ambitious CSE students.")
	return lipgloss.JoinVertical(lipgloss.Left, title, tagline)
}

type statTile struct {
	label   string
	value   string
	caption string
}

var heroStats = []statTile{
	{label: "Skill readiness score", value: "0-100", caption: "Transparent scoring to track growth."},
	{label: "Weekly learning sprints", value: "12", caption: "Plug-and-play roadmap to stay consistent."},
	{label: "Portfolio projects", value: "5", caption: "Standout case studies recruiters notice."},
}

var painPoints = []struct {
	title  string
	detail string
}{
	{title: "Blind job applications", detail: "Spray-and-pray CVs rarely crack ATS filters. We align your resume keywords and skills with the role you want."},
	{title: "Skill confusion", detail: "YouTube tutorials overload you with information. We highlight the exact stack upgrades mentors recommend."},
	{title: "Weak portfolios", detail: "Most projects read like class assignments. We design projects that show business impact and engineering maturity."},
}

func renderHero(width int) string {
	headline := lipgloss.NewStyle().Bold(true).Render("Not Getting Internship Calls? ") +
		headingStyle.Render("Let AI Fix Your Skill Gap.")
	pitch := detailStyle.Width(max(20, width-4)).Render(
		"Upload your CV, pick your dream role, and get a tactical roadmap that pinpoints missing skills, " +
			"portfolio-ready projects, and weekly learning goals.")
	tileWidth := max(18, (width-8)/len(heroStats))
	tiles := make([]string, 0, len(heroStats))
	for _, stat := range heroStats {
		body := lipgloss.JoinVertical(lipgloss.Left,
			mutedStyle.Render(stat.label),
			lipgloss.NewStyle().Bold(true).Render(stat.value),
			mutedStyle.Render(stat.caption),
		)
		tiles = append(tiles, panelStyle.Width(tileWidth).Render(body))
	}
	var pains []string
	for _, p := range painPoints {
		pains = append(pains, fmt.Sprintf("%s %s", headingStyle.Render(strings.ToUpper(p.title)), mutedStyle.Render(p.detail)))
	}
	painBlock := lipgloss.NewStyle().Width(max(20, width-4)).Render(strings.Join(pains, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		headline,
		pitch,
		lipgloss.JoinHorizontal(lipgloss.Top, tiles...),
		painBlock,
	)
}

func renderAnalysis(vm viewModel, width int) string {
	leftWidth := max(30, width/2-2)
	rightWidth := max(30, width-leftWidth-4)
	left := lipgloss.JoinVertical(lipgloss.Left,
		renderUpload(vm, leftWidth),
		renderRoles(vm, leftWidth),
	)
	right := renderStartPanel(vm, rightWidth)
	if log := renderRunLog(vm, rightWidth); log != "" {
		right = lipgloss.JoinVertical(lipgloss.Left, right, log)
	}
	heading := lipgloss.JoinVertical(lipgloss.Left,
		"",
		headingStyle.Render("Upload CV & Choose Target Role"),
		mutedStyle.Render("Private, local-only analysis. Secure | Mentor-backed | Actionable"),
	)
	if width < 70 {
		return lipgloss.JoinVertical(lipgloss.Left, heading, left, right)
	}
	return lipgloss.JoinVertical(lipgloss.Left, heading, lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
}

func renderUpload(vm viewModel, width int) string {
	style := panelStyle
	switch {
	case vm.dragActive:
		style = dropActiveStyle
	case vm.focus == focusUpload:
		style = focusedPanelStyle
	}
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render("Drag & drop your CV (PDF or DOCX)"),
		mutedStyle.Render("We never store or open your file. Only its name is shown."),
	}
	if vm.acceptHint != "" {
		lines = append(lines, mutedStyle.Render("Accepts: "+vm.acceptHint))
	}
	if vm.fileName != "" {
		lines = append(lines, badgeStyle.Render("● "+vm.fileName))
	} else if vm.focus != focusUpload {
		lines = append(lines, promptStyle.Render("[ Browse files ]")+mutedStyle.Render("  tab to focus, or paste a path anywhere"))
	}
	if vm.focus == focusUpload {
		lines = append(lines, vm.uploadInput)
	}
	return style.Width(max(20, width-2)).Render(strings.Join(lines, "\n"))
}

func renderRoles(vm viewModel, width int) string {
	style := panelStyle
	if vm.focus == focusRoles {
		style = focusedPanelStyle
	}
	chips := make([]string, 0, 4)
	for _, tool := range firstN(vm.profile.Stack, 4) {
		chips = append(chips, chipStyle.Render(tool))
	}
	body := lipgloss.JoinVertical(lipgloss.Left, vm.roleList, strings.Join(chips, " "))
	return style.Width(max(20, width-2)).Render(body)
}

func renderStartPanel(vm viewModel, width int) string {
	button := buttonDisabledStyle.Render(vm.startLabel + " →")
	if vm.canStart {
		button = buttonStyle.Render(vm.startLabel + " →")
	}
	upload := "Upload your CV to unlock the roadmap."
	if vm.fileName != "" {
		upload = fmt.Sprintf("Using %s", vm.fileName)
	}
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Ready for %s?", vm.profile.Label)),
		mutedStyle.Render(upload),
		button,
		vm.progressBar,
		detailStyle.Render(vm.statusLine),
	}
	return panelStyle.Width(max(20, width-2)).Render(strings.Join(lines, "\n"))
}

func renderRunLog(vm viewModel, width int) string {
	if !vm.snapshot.Started && !vm.snapshot.Running {
		return ""
	}
	lines := []string{headingStyle.Render("AI Skill Gap Engine")}
	for _, headline := range vm.snapshot.Emitted {
		lines = append(lines, promptStyle.Render(">")+" "+headline)
	}
	if vm.snapshot.Running {
		lines = append(lines, mutedStyle.Render(vm.spinner+" Crunching more signals..."))
	}
	return panelStyle.Width(max(20, width-2)).Render(strings.Join(lines, "\n"))
}

// renderDashboard renders the full result for profile; App feeds it into the
// dashboard viewport.
func renderDashboard(profile roles.Profile, width int) string {
	width = max(30, width)
	var b strings.Builder
	b.WriteString(headingStyle.Render("Your Skill Gap Dashboard"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf(
		"What's working, what needs strengthening, and the plan to become internship-ready for %s.", profile.Label)))
	b.WriteString("\n\n")

	counts := make([]string, 0, 3)
	for _, tone := range roles.Tones() {
		counts = append(counts, toneStyle(tone).Render(fmt.Sprintf("%s %d", titleCase(string(tone)), len(profile.Skills.Bucket(tone)))))
	}
	fmt.Fprintf(&b, "%s %s   %s\n\n",
		lipgloss.NewStyle().Bold(true).Render("Readiness"),
		badgeStyle.Render(fmt.Sprintf("%d/100", profile.Readiness)),
		strings.Join(counts, " · "),
	)

	colWidth := max(20, (width-6)/3)
	columns := make([]string, 0, 3)
	for _, tone := range roles.Tones() {
		style := toneStyle(tone)
		lines := []string{style.Bold(true).Render(toneTitle(tone))}
		for _, skill := range profile.Skills.Bucket(tone) {
			lines = append(lines, style.Render("• "+skill))
		}
		columns = append(columns, panelStyle.Width(colWidth).Render(strings.Join(lines, "\n")))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	b.WriteString("\n\n")

	b.WriteString(headingStyle.Render("90-day roadmap"))
	b.WriteString("\n")
	for _, seg := range profile.Roadmap {
		focus := make([]string, 0, len(seg.Focus))
		for _, f := range seg.Focus {
			focus = append(focus, chipStyle.Render(f))
		}
		fmt.Fprintf(&b, "%s · %s  %s\n", lipgloss.NewStyle().Bold(true).Render(seg.Window), seg.Theme, strings.Join(focus, " "))
		for _, week := range seg.Weeks {
			fmt.Fprintf(&b, "  %s\n", detailStyle.Render(week.Title))
			for _, action := range week.Actions {
				fmt.Fprintf(&b, "    %s %s\n", toneStyle(roles.ToneStrong).Render("✓"), action)
			}
		}
	}
	b.WriteString("\n")

	b.WriteString(headingStyle.Render("Portfolio projects"))
	b.WriteString("\n")
	for _, project := range profile.Projects {
		stack := make([]string, 0, len(project.Stack))
		for _, tech := range project.Stack {
			stack = append(stack, chipStyle.Render(tech))
		}
		card := strings.Join([]string{
			fmt.Sprintf("%s  %s", lipgloss.NewStyle().Bold(true).Render(project.Title), mutedStyle.Render(project.Difficulty)),
			project.Problem,
			strings.Join(stack, " "),
			detailStyle.Render("Impact: " + project.Impact),
		}, "\n")
		b.WriteString(panelStyle.Width(max(20, width-4)).Render(card))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderJournal(vm viewModel) string {
	if len(vm.journal) == 0 {
		return ""
	}
	name := vm.journalName
	if name == "" {
		name = "log"
	}
	head := headingStyle.Render(fmt.Sprintf("LOG · %s (%d entries)", name, vm.journalTotal))
	body := lipgloss.NewStyle().Foreground(colorDim).Render(strings.Join(vm.journal, "\n"))
	return panelStyle.Render(head + "\n" + body)
}

func renderFooter(vm viewModel) string {
	keys := "tab focus · ↑/↓ role · 1-3 pick role · enter/g generate · L log · q quit"
	if vm.focus == focusUpload {
		keys = "enter attach path · esc cancel · tab next"
	}
	lines := []string{}
	if vm.statusMsg != "" {
		lines = append(lines, vm.statusMsg)
	}
	lines = append(lines, keys)
	return lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1).Render(strings.Join(lines, "\n"))
}

func firstN(values []string, n int) []string {
	if len(values) <= n {
		return values
	}
	return values[:n]
}

func titleCase(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	lower := strings.ToLower(value)
	return strings.ToUpper(lower[:1]) + lower[1:]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
